package repository

import (
	"errors"

	"github.com/Mouasahmedislem/paintello-atelier/internal/model/entity"
	"gorm.io/gorm"
)

type RecipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

func (r *RecipeRepository) Create(rec *entity.Recipe) error {
	return r.db.Create(rec).Error
}

func (r *RecipeRepository) GetByID(id string) (*entity.Recipe, error) {
	var rec entity.Recipe
	if err := r.db.Preload("Materials").Where("id = ?", id).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *RecipeRepository) GetByCode(code string) (*entity.Recipe, error) {
	var rec entity.Recipe
	if err := r.db.Preload("Materials").Where("recipe_code = ?", code).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *RecipeRepository) List(productType string, activeOnly bool) ([]entity.Recipe, error) {
	query := r.db.Preload("Materials")
	if productType != "" {
		query = query.Where("product_type = ?", productType)
	}
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var recipes []entity.Recipe
	err := query.Order("recipe_code").Find(&recipes).Error
	return recipes, err
}

// Update 整体替换配方及其物料明细
func (r *RecipeRepository) Update(rec *entity.Recipe) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", rec.ID).Delete(&entity.RecipeMaterial{}).Error; err != nil {
			return err
		}
		return tx.Save(rec).Error
	})
}

func (r *RecipeRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&entity.Recipe{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return entity.ErrNotFound
		}
		return tx.Where("recipe_id = ?", id).Delete(&entity.RecipeMaterial{}).Error
	})
}
