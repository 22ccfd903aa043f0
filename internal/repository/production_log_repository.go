package repository

import (
	"errors"
	"time"

	"github.com/Mouasahmedislem/paintello-atelier/internal/model/entity"
	"gorm.io/gorm"
)

type ProductionLogRepository struct {
	db *gorm.DB
}

func NewProductionLogRepository(db *gorm.DB) *ProductionLogRepository {
	return &ProductionLogRepository{db: db}
}

func (r *ProductionLogRepository) GetByID(id string) (*entity.ProductionLog, error) {
	var log entity.ProductionLog
	err := r.db.Preload("Operator").Preload("Products").Preload("Materials").Preload("Defects").
		Where("id = ?", id).First(&log).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return &log, nil
}

type LogListParams struct {
	From       *time.Time
	To         *time.Time
	Shift      string
	OperatorID string
	Page       int
	Size       int
}

func (r *ProductionLogRepository) List(params LogListParams) ([]entity.ProductionLog, int64, error) {
	query := r.db.Model(&entity.ProductionLog{})
	if params.From != nil {
		query = query.Where("date >= ?", *params.From)
	}
	if params.To != nil {
		query = query.Where("date < ?", *params.To)
	}
	if params.Shift != "" {
		query = query.Where("shift = ?", params.Shift)
	}
	if params.OperatorID != "" {
		query = query.Where("operator_id = ?", params.OperatorID)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Size <= 0 {
		params.Size = 20
	}
	var logs []entity.ProductionLog
	err := query.Preload("Operator").Preload("Products").Preload("Materials").
		Order("date DESC").
		Offset((params.Page - 1) * params.Size).Limit(params.Size).
		Find(&logs).Error
	return logs, total, err
}

// ListBetween 报表用窗口扫描，预加载全部条目
func (r *ProductionLogRepository) ListBetween(from, to time.Time) ([]entity.ProductionLog, error) {
	var logs []entity.ProductionLog
	err := r.db.Preload("Products").Preload("Materials").Preload("Defects").
		Where("date >= ? AND date < ?", from, to).
		Order("date").Find(&logs).Error
	return logs, err
}

// ListByProductCode 某产品的生产履历
func (r *ProductionLogRepository) ListByProductCode(code string) ([]entity.ProductionLog, error) {
	var ids []string
	err := r.db.Model(&entity.ProductEntry{}).
		Where("product_code = ?", code).
		Distinct("log_id").Pluck("log_id", &ids).Error
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []entity.ProductionLog{}, nil
	}
	var logs []entity.ProductionLog
	err = r.db.Preload("Products").Preload("Materials").
		Where("id IN ?", ids).Order("date DESC").Find(&logs).Error
	return logs, err
}

// Search 按工位/备注/产品编码模糊检索
func (r *ProductionLogRepository) Search(keyword string, limit int) ([]entity.ProductionLog, error) {
	if limit <= 0 {
		limit = 50
	}
	kw := "%" + keyword + "%"
	var ids []string
	if err := r.db.Model(&entity.ProductEntry{}).
		Where("product_code LIKE ?", kw).
		Distinct("log_id").Pluck("log_id", &ids).Error; err != nil {
		return nil, err
	}
	query := r.db.Preload("Products").Preload("Materials").
		Where("workstation LIKE ? OR notes LIKE ?", kw, kw)
	if len(ids) > 0 {
		query = r.db.Preload("Products").Preload("Materials").
			Where("workstation LIKE ? OR notes LIKE ? OR id IN ?", kw, kw, ids)
	}
	var logs []entity.ProductionLog
	err := query.Order("date DESC").Limit(limit).Find(&logs).Error
	return logs, err
}

// Update 管理员修正，只改日志本身，不回放库存/状态副作用
func (r *ProductionLogRepository) Update(log *entity.ProductionLog) error {
	return r.db.Save(log).Error
}

// Delete 连同子表删除
func (r *ProductionLogRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&entity.ProductionLog{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return entity.ErrNotFound
		}
		if err := tx.Where("log_id = ?", id).Delete(&entity.ProductEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("log_id = ?", id).Delete(&entity.MaterialUsage{}).Error; err != nil {
			return err
		}
		return tx.Where("log_id = ?", id).Delete(&entity.DefectRecord{}).Error
	})
}

func (r *ProductionLogRepository) CountBetween(from, to time.Time) (int64, error) {
	var total int64
	err := r.db.Model(&entity.ProductionLog{}).
		Where("date >= ? AND date < ?", from, to).Count(&total).Error
	return total, err
}

// CountFinishedBetween 窗口内动作为 finished 的条目数
func (r *ProductionLogRepository) CountFinishedBetween(from, to time.Time) (int64, error) {
	var total int64
	err := r.db.Model(&entity.ProductEntry{}).
		Joins("JOIN production_logs ON production_logs.id = production_log_products.log_id").
		Where("production_logs.date >= ? AND production_logs.date < ? AND production_log_products.action = ?",
			from, to, entity.ActionFinished).
		Count(&total).Error
	return total, err
}
