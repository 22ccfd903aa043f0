package repository

import (
	"errors"
	"time"

	"github.com/Mouasahmedislem/paintello-atelier/internal/model/entity"
	"gorm.io/gorm"
)

type MaterialRepository struct {
	db *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) *MaterialRepository {
	return &MaterialRepository{db: db}
}

func (r *MaterialRepository) Create(m *entity.Material) error {
	return r.db.Create(m).Error
}

func (r *MaterialRepository) GetByID(id string) (*entity.Material, error) {
	var m entity.Material
	if err := r.db.Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *MaterialRepository) GetByCode(code string) (*entity.Material, error) {
	var m entity.Material
	if err := r.db.Where("material_code = ?", code).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

type MaterialListParams struct {
	Type       string
	ActiveOnly bool
}

// List 按名称排序
func (r *MaterialRepository) List(params MaterialListParams) ([]entity.Material, error) {
	query := r.db.Model(&entity.Material{})
	if params.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if params.Type != "" {
		query = query.Where("type = ?", params.Type)
	}
	var items []entity.Material
	err := query.Order("name").Find(&items).Error
	return items, err
}

// ListLowStock 低于自身阈值的在用物料
func (r *MaterialRepository) ListLowStock() ([]entity.Material, error) {
	var items []entity.Material
	err := r.db.Where("current_stock < min_threshold AND is_active = ?", true).
		Order("name").Find(&items).Error
	return items, err
}

func (r *MaterialRepository) Update(m *entity.Material) error {
	return r.db.Save(m).Error
}

func (r *MaterialRepository) Delete(id string) error {
	res := r.db.Where("id = ?", id).Delete(&entity.Material{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return entity.ErrNotFound
	}
	return nil
}

// Restock 单条原子加库存，同时可选覆盖单价/供应商
func (r *MaterialRepository) Restock(id string, qty float64, unitCost *float64, supplier string) (*entity.Material, error) {
	now := time.Now()
	updates := map[string]interface{}{
		"current_stock": gorm.Expr("current_stock + ?", qty),
		"last_restock":  now,
	}
	if unitCost != nil {
		updates["unit_cost"] = *unitCost
	}
	if supplier != "" {
		updates["supplier"] = supplier
	}
	res := r.db.Model(&entity.Material{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, entity.ErrNotFound
	}
	return r.GetByID(id)
}

// ConsumeStock 条件原子扣减: 仅当 current_stock >= qty 时扣减，消除先查后写竞态。
// 可传入事务句柄，在提交阶段参与整体回滚。
func ConsumeStock(db *gorm.DB, code string, qty float64) (*entity.Material, error) {
	res := db.Model(&entity.Material{}).
		Where("material_code = ? AND current_stock >= ?", code, qty).
		Update("current_stock", gorm.Expr("current_stock - ?", qty))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected > 0 {
		var m entity.Material
		if err := db.Where("material_code = ?", code).First(&m).Error; err != nil {
			return nil, err
		}
		return &m, nil
	}

	// 零行受影响: 区分编码不存在和库存不足
	var m entity.Material
	if err := db.Where("material_code = ?", code).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &entity.ReferenceNotFoundError{Kind: "material", Code: code}
		}
		return nil, err
	}
	return nil, &entity.InsufficientStockError{
		MaterialCode: m.MaterialCode,
		Available:    m.CurrentStock,
		Requested:    qty,
		Unit:         m.Unit,
	}
}

// TypeStat 按类型聚合
type TypeStat struct {
	Type       string  `json:"type"`
	Count      int64   `json:"count"`
	TotalStock float64 `json:"total_stock"`
	TotalValue float64 `json:"total_value"`
}

func (r *MaterialRepository) StatsByType() ([]TypeStat, error) {
	var stats []TypeStat
	err := r.db.Model(&entity.Material{}).
		Select("type, COUNT(*) as count, COALESCE(SUM(current_stock),0) as total_stock, COALESCE(SUM(current_stock*unit_cost),0) as total_value").
		Where("is_active = ?", true).
		Group("type").Order("type").
		Scan(&stats).Error
	return stats, err
}
