package repository

import (
	"errors"

	"github.com/Mouasahmedislem/paintello-atelier/internal/model/entity"
	"gorm.io/gorm"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(p *entity.Product) error {
	return r.db.Create(p).Error
}

func (r *ProductRepository) GetByID(id string) (*entity.Product, error) {
	var p entity.Product
	if err := r.db.Preload("Creator").Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) GetByCode(code string) (*entity.Product, error) {
	var p entity.Product
	if err := r.db.Where("product_code = ?", code).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// GetByCodes 按业务编码批量查询，返回 code -> product
func (r *ProductRepository) GetByCodes(codes []string) (map[string]*entity.Product, error) {
	var items []entity.Product
	if err := r.db.Where("product_code IN ?", codes).Find(&items).Error; err != nil {
		return nil, err
	}
	result := make(map[string]*entity.Product, len(items))
	for i := range items {
		result[items[i].ProductCode] = &items[i]
	}
	return result, nil
}

type ProductListParams struct {
	Status   string
	Category string
	Page     int
	Limit    int
}

func (r *ProductRepository) List(params ProductListParams) ([]entity.Product, int64, error) {
	query := r.db.Model(&entity.Product{})
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Limit <= 0 {
		params.Limit = 50
	}
	var items []entity.Product
	err := query.Preload("Creator").Order("created_at DESC").
		Offset((params.Page - 1) * params.Limit).Limit(params.Limit).
		Find(&items).Error
	return items, total, err
}

func (r *ProductRepository) Update(p *entity.Product) error {
	return r.db.Save(p).Error
}

func (r *ProductRepository) Delete(id string) error {
	res := r.db.Where("id = ?", id).Delete(&entity.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return entity.ErrNotFound
	}
	return nil
}

// StatusStat 按状态聚合
type StatusStat struct {
	Status   string `json:"status"`
	Count    int64  `json:"count"`
	Quantity int64  `json:"quantity"`
}

func (r *ProductRepository) StatsByStatus() ([]StatusStat, error) {
	var stats []StatusStat
	err := r.db.Model(&entity.Product{}).
		Select("status, COUNT(*) as count, COALESCE(SUM(quantity),0) as quantity").
		Group("status").
		Scan(&stats).Error
	return stats, err
}

func (r *ProductRepository) Count() (int64, error) {
	var total int64
	err := r.db.Model(&entity.Product{}).Count(&total).Error
	return total, err
}
