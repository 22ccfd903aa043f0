package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/Mouasahmedislem/paintello-atelier/internal/model/entity"
	"github.com/Mouasahmedislem/paintello-atelier/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProductionService 生产日志服务。一次提交要么全部生效要么全部拒绝:
// 校验全部通过后，日志写入、产品状态推进、物料扣减在同一事务内完成。
type ProductionService struct {
	logs      *repository.ProductionLogRepository
	products  *repository.ProductRepository
	materials *repository.MaterialRepository
	db        *gorm.DB
	logger    *zap.Logger
}

func NewProductionService(
	logs *repository.ProductionLogRepository,
	products *repository.ProductRepository,
	materials *repository.MaterialRepository,
	db *gorm.DB,
	logger *zap.Logger,
) *ProductionService {
	return &ProductionService{logs: logs, products: products, materials: materials, db: db, logger: logger}
}

type ProductEntryInput struct {
	ProductCode string `json:"product_code" binding:"required"`
	Action      string `json:"action" binding:"required"`
	Quantity    int    `json:"quantity"`
	TimeSpent   int    `json:"time_spent"`
	Notes       string `json:"notes"`
}

type MaterialUsageInput struct {
	MaterialCode string  `json:"material_code" binding:"required"`
	Quantity     float64 `json:"quantity" binding:"required"`
	ProductCode  string  `json:"product_code"`
}

type DefectInput struct {
	ProductCode string `json:"product_code"`
	DefectType  string `json:"defect_type"`
	Description string `json:"description"`
}

type SubmitLogRequest struct {
	Shift         string               `json:"shift"`
	Workstation   string               `json:"workstation"`
	Products      []ProductEntryInput  `json:"products"`
	MaterialsUsed []MaterialUsageInput `json:"materials_used"`
	Defects       []DefectInput        `json:"defects"`
	Efficiency    *float64             `json:"efficiency"`
	Notes         string               `json:"notes"`
}

// Submit 记录一次班次提交。
// 算法: 先做形状校验，再做产品存在性与物料库存两遍预检，全部通过才进入提交；
// 提交阶段物料扣减仍是条件原子更新，并发下被抢走库存时整个事务回滚。
func (s *ProductionService) Submit(operatorID string, req SubmitLogRequest) (*entity.ProductionLog, error) {
	if err := s.validateShape(&req); err != nil {
		return nil, err
	}

	// 存在性预检: 引用的产品编码必须全部可解析
	productCodes := distinctProductCodes(req.Products)
	found, err := s.products.GetByCodes(productCodes)
	if err != nil {
		return nil, fmt.Errorf("look up products: %w", err)
	}
	for _, code := range productCodes {
		if _, ok := found[code]; !ok {
			return nil, &entity.ReferenceNotFoundError{Kind: "product", Code: code}
		}
	}

	// 库存预检: 物料必须存在且当前库存足够。任何一项不足则整体拒绝
	usageMeta := make(map[string]*entity.Material, len(req.MaterialsUsed))
	for i := range req.MaterialsUsed {
		mu := &req.MaterialsUsed[i]
		mu.MaterialCode = strings.ToUpper(strings.TrimSpace(mu.MaterialCode))
		m, ok := usageMeta[mu.MaterialCode]
		if !ok {
			m, err = s.materials.GetByCode(mu.MaterialCode)
			if err != nil {
				if err == entity.ErrNotFound {
					return nil, &entity.ReferenceNotFoundError{Kind: "material", Code: mu.MaterialCode}
				}
				return nil, fmt.Errorf("look up material %s: %w", mu.MaterialCode, err)
			}
			usageMeta[mu.MaterialCode] = m
		}
		if m.CurrentStock < mu.Quantity {
			return nil, &entity.InsufficientStockError{
				MaterialCode: m.MaterialCode,
				Available:    m.CurrentStock,
				Requested:    mu.Quantity,
				Unit:         m.Unit,
			}
		}
	}

	log := s.buildLog(operatorID, &req, usageMeta)

	// 提交: 日志、状态推进、库存扣减同一事务
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(log).Error; err != nil {
			return fmt.Errorf("persist log: %w", err)
		}

		for _, pe := range log.Products {
			product := found[pe.ProductCode]
			status, _ := entity.StatusForAction(pe.Action)

			updates := map[string]interface{}{"last_updated": log.Date}
			if status != "" {
				updates["status"] = status
			}
			if pe.Action == entity.ActionFinished {
				// 完工件数移出在制数量，下限为零
				remaining := product.Quantity - pe.Quantity
				if remaining < 0 {
					remaining = 0
				}
				updates["quantity"] = remaining
				product.Quantity = remaining
			}
			if err := tx.Model(&entity.Product{}).
				Where("id = ?", product.ID).
				Updates(updates).Error; err != nil {
				return fmt.Errorf("advance product %s: %w", pe.ProductCode, err)
			}
		}

		for _, mu := range log.Materials {
			if _, err := repository.ConsumeStock(tx, mu.MaterialCode, mu.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Production log submitted",
		zap.String("log_id", log.ID),
		zap.String("operator_id", operatorID),
		zap.String("shift", log.Shift),
		zap.Int("products", len(log.Products)),
		zap.Int("materials", len(log.Materials)))

	return s.logs.GetByID(log.ID)
}

func (s *ProductionService) validateShape(req *SubmitLogRequest) error {
	if len(req.Products) == 0 {
		return entity.Validationf("at least one product entry is required")
	}
	if req.Shift == "" {
		req.Shift = entity.ShiftMorning
	}
	if !entity.ValidShift(req.Shift) {
		return entity.Validationf("invalid shift: %s", req.Shift)
	}
	if req.Efficiency != nil && (*req.Efficiency < 0 || *req.Efficiency > 100) {
		return entity.Validationf("efficiency must be between 0 and 100")
	}
	for i := range req.Products {
		pe := &req.Products[i]
		pe.ProductCode = strings.TrimSpace(pe.ProductCode)
		if pe.ProductCode == "" {
			return entity.Validationf("product code is required")
		}
		if !entity.ValidAction(pe.Action) {
			return entity.Validationf("invalid action: %s", pe.Action)
		}
		if pe.Quantity == 0 {
			pe.Quantity = 1
		}
		if pe.Quantity < 1 {
			return entity.Validationf("product quantity must be at least 1")
		}
	}
	for i := range req.MaterialsUsed {
		if req.MaterialsUsed[i].Quantity <= 0 {
			return entity.Validationf("material quantity must be positive")
		}
	}
	return nil
}

func (s *ProductionService) buildLog(operatorID string, req *SubmitLogRequest, usageMeta map[string]*entity.Material) *entity.ProductionLog {
	now := time.Now()
	log := &entity.ProductionLog{
		ID:          uuid.New().String(),
		Date:        now,
		OperatorID:  operatorID,
		Shift:       req.Shift,
		Workstation: req.Workstation,
		Efficiency:  req.Efficiency,
		Notes:       req.Notes,
	}
	for _, pe := range req.Products {
		log.Products = append(log.Products, entity.ProductEntry{
			ID:          uuid.New().String(),
			LogID:       log.ID,
			ProductCode: pe.ProductCode,
			Action:      pe.Action,
			Quantity:    pe.Quantity,
			TimeSpent:   pe.TimeSpent,
			Notes:       pe.Notes,
		})
	}
	for _, mu := range req.MaterialsUsed {
		meta := usageMeta[mu.MaterialCode]
		log.Materials = append(log.Materials, entity.MaterialUsage{
			ID:           uuid.New().String(),
			LogID:        log.ID,
			MaterialCode: mu.MaterialCode,
			MaterialName: meta.Name,
			Quantity:     mu.Quantity,
			ProductCode:  mu.ProductCode,
			Unit:         meta.Unit,
		})
	}
	for _, d := range req.Defects {
		log.Defects = append(log.Defects, entity.DefectRecord{
			ID:          uuid.New().String(),
			LogID:       log.ID,
			ProductCode: d.ProductCode,
			DefectType:  d.DefectType,
			Description: d.Description,
		})
	}
	return log
}

func distinctProductCodes(entries []ProductEntryInput) []string {
	seen := make(map[string]bool, len(entries))
	var codes []string
	for _, pe := range entries {
		if !seen[pe.ProductCode] {
			seen[pe.ProductCode] = true
			codes = append(codes, pe.ProductCode)
		}
	}
	return codes
}

func (s *ProductionService) Get(id string) (*entity.ProductionLog, error) {
	return s.logs.GetByID(id)
}

func (s *ProductionService) List(params repository.LogListParams) ([]entity.ProductionLog, int64, error) {
	if params.Shift != "" && !entity.ValidShift(params.Shift) {
		return nil, 0, entity.Validationf("invalid shift: %s", params.Shift)
	}
	return s.logs.List(params)
}

func (s *ProductionService) Search(keyword string, limit int) ([]entity.ProductionLog, error) {
	if strings.TrimSpace(keyword) == "" {
		return nil, entity.Validationf("search keyword is required")
	}
	return s.logs.Search(keyword, limit)
}

type UpdateLogRequest struct {
	Shift       *string  `json:"shift"`
	Workstation *string  `json:"workstation"`
	Efficiency  *float64 `json:"efficiency"`
	Notes       *string  `json:"notes"`
}

// Update 管理员修正历史记录。只改日志本身，
// 不回放库存与产品状态副作用
func (s *ProductionService) Update(id string, req UpdateLogRequest) (*entity.ProductionLog, error) {
	log, err := s.logs.GetByID(id)
	if err != nil {
		return nil, err
	}
	if req.Shift != nil {
		if !entity.ValidShift(*req.Shift) {
			return nil, entity.Validationf("invalid shift: %s", *req.Shift)
		}
		log.Shift = *req.Shift
	}
	if req.Workstation != nil {
		log.Workstation = *req.Workstation
	}
	if req.Efficiency != nil {
		if *req.Efficiency < 0 || *req.Efficiency > 100 {
			return nil, entity.Validationf("efficiency must be between 0 and 100")
		}
		log.Efficiency = req.Efficiency
	}
	if req.Notes != nil {
		log.Notes = *req.Notes
	}
	if err := s.logs.Update(log); err != nil {
		return nil, fmt.Errorf("update log: %w", err)
	}
	return log, nil
}

// Delete 同样不回放副作用
func (s *ProductionService) Delete(id string) error {
	return s.logs.Delete(id)
}

// LogStats 日志量概览
type LogStats struct {
	LogsToday        int64 `json:"logs_today"`
	LogsThisWeek     int64 `json:"logs_this_week"`
	FinishedThisWeek int64 `json:"finished_this_week"`
}

func (s *ProductionService) Stats() (*LogStats, error) {
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := now.AddDate(0, 0, -7)

	today, err := s.logs.CountBetween(dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	week, err := s.logs.CountBetween(weekStart, now)
	if err != nil {
		return nil, err
	}
	finished, err := s.logs.CountFinishedBetween(weekStart, now)
	if err != nil {
		return nil, err
	}
	return &LogStats{LogsToday: today, LogsThisWeek: week, FinishedThisWeek: finished}, nil
}
