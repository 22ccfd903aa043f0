package service

import (
	"fmt"
	"strings"

	"github.com/Mouasahmedislem/paintello-atelier/internal/model/entity"
	"github.com/Mouasahmedislem/paintello-atelier/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MaterialService 物料台账服务
type MaterialService struct {
	materials *repository.MaterialRepository
	db        *gorm.DB
	logger    *zap.Logger
}

func NewMaterialService(materials *repository.MaterialRepository, db *gorm.DB, logger *zap.Logger) *MaterialService {
	return &MaterialService{materials: materials, db: db, logger: logger}
}

type CreateMaterialRequest struct {
	MaterialCode string  `json:"material_code" binding:"required"`
	Name         string  `json:"name" binding:"required"`
	Type         string  `json:"type" binding:"required"`
	Brand        string  `json:"brand"`
	CurrentStock float64 `json:"current_stock"`
	Unit         string  `json:"unit" binding:"required"`
	MinThreshold float64 `json:"min_threshold"`
	UnitCost     float64 `json:"unit_cost"`
	Supplier     string  `json:"supplier"`
	Location     string  `json:"location"`
	Notes        string  `json:"notes"`
}

func (s *MaterialService) Create(req CreateMaterialRequest) (*entity.Material, error) {
	if !entity.ValidMaterialType(req.Type) {
		return nil, entity.Validationf("invalid material type: %s", req.Type)
	}
	if !entity.ValidMaterialUnit(req.Unit) {
		return nil, entity.Validationf("invalid unit: %s", req.Unit)
	}
	if req.CurrentStock < 0 {
		return nil, entity.Validationf("stock cannot be negative")
	}
	if req.MinThreshold < 0 {
		return nil, entity.Validationf("threshold cannot be negative")
	}
	if req.UnitCost < 0 {
		return nil, entity.Validationf("cost cannot be negative")
	}

	minThreshold := req.MinThreshold
	if minThreshold == 0 {
		minThreshold = 10
	}

	m := &entity.Material{
		ID:           uuid.New().String(),
		MaterialCode: strings.ToUpper(strings.TrimSpace(req.MaterialCode)),
		Name:         strings.TrimSpace(req.Name),
		Type:         req.Type,
		Brand:        req.Brand,
		CurrentStock: req.CurrentStock,
		Unit:         req.Unit,
		MinThreshold: minThreshold,
		UnitCost:     req.UnitCost,
		Supplier:     req.Supplier,
		Location:     req.Location,
		Notes:        req.Notes,
		IsActive:     true,
	}
	if err := s.materials.Create(m); err != nil {
		return nil, fmt.Errorf("create material: %w", err)
	}
	s.logger.Info("Material created",
		zap.String("material_code", m.MaterialCode),
		zap.Float64("current_stock", m.CurrentStock))
	return m, nil
}

// MaterialList 列表及总货值
type MaterialList struct {
	Items      []entity.Material
	TotalValue float64
}

func (s *MaterialService) List(materialType string) (*MaterialList, error) {
	items, err := s.materials.List(repository.MaterialListParams{Type: materialType, ActiveOnly: true})
	if err != nil {
		return nil, err
	}
	var totalValue float64
	for i := range items {
		totalValue += items[i].StockValue()
	}
	return &MaterialList{Items: items, TotalValue: totalValue}, nil
}

func (s *MaterialService) Get(id string) (*entity.Material, error) {
	return s.materials.GetByID(id)
}

func (s *MaterialService) GetByCode(code string) (*entity.Material, error) {
	return s.materials.GetByCode(strings.ToUpper(strings.TrimSpace(code)))
}

type UpdateMaterialRequest struct {
	Name         *string  `json:"name"`
	Type         *string  `json:"type"`
	Brand        *string  `json:"brand"`
	Unit         *string  `json:"unit"`
	MinThreshold *float64 `json:"min_threshold"`
	UnitCost     *float64 `json:"unit_cost"`
	Supplier     *string  `json:"supplier"`
	Location     *string  `json:"location"`
	Notes        *string  `json:"notes"`
	IsActive     *bool    `json:"is_active"`
}

// Update 物料编码创建后不可变，库存只经 restock/consume 变更
func (s *MaterialService) Update(id string, req UpdateMaterialRequest) (*entity.Material, error) {
	m, err := s.materials.GetByID(id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		m.Name = strings.TrimSpace(*req.Name)
	}
	if req.Type != nil {
		if !entity.ValidMaterialType(*req.Type) {
			return nil, entity.Validationf("invalid material type: %s", *req.Type)
		}
		m.Type = *req.Type
	}
	if req.Brand != nil {
		m.Brand = *req.Brand
	}
	if req.Unit != nil {
		if !entity.ValidMaterialUnit(*req.Unit) {
			return nil, entity.Validationf("invalid unit: %s", *req.Unit)
		}
		m.Unit = *req.Unit
	}
	if req.MinThreshold != nil {
		if *req.MinThreshold < 0 {
			return nil, entity.Validationf("threshold cannot be negative")
		}
		m.MinThreshold = *req.MinThreshold
	}
	if req.UnitCost != nil {
		if *req.UnitCost < 0 {
			return nil, entity.Validationf("cost cannot be negative")
		}
		m.UnitCost = *req.UnitCost
	}
	if req.Supplier != nil {
		m.Supplier = *req.Supplier
	}
	if req.Location != nil {
		m.Location = *req.Location
	}
	if req.Notes != nil {
		m.Notes = *req.Notes
	}
	if req.IsActive != nil {
		m.IsActive = *req.IsActive
	}
	if err := s.materials.Update(m); err != nil {
		return nil, fmt.Errorf("update material: %w", err)
	}
	return m, nil
}

func (s *MaterialService) Delete(id string) error {
	return s.materials.Delete(id)
}

type RestockRequest struct {
	Quantity float64  `json:"quantity" binding:"required"`
	UnitCost *float64 `json:"unit_cost"`
	Supplier string   `json:"supplier"`
	Notes    string   `json:"notes"`
}

func (s *MaterialService) Restock(id string, req RestockRequest) (*entity.Material, error) {
	if req.Quantity <= 0 {
		return nil, entity.Validationf("valid quantity is required")
	}
	if req.UnitCost != nil && *req.UnitCost < 0 {
		return nil, entity.Validationf("cost cannot be negative")
	}
	m, err := s.materials.Restock(id, req.Quantity, req.UnitCost, req.Supplier)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Material restocked",
		zap.String("material_code", m.MaterialCode),
		zap.Float64("quantity", req.Quantity),
		zap.Float64("current_stock", m.CurrentStock))
	return m, nil
}

type UseMaterialRequest struct {
	MaterialCode string  `json:"material_code" binding:"required"`
	Quantity     float64 `json:"quantity" binding:"required"`
	ProductCode  string  `json:"product_code"`
}

// UseResult 直接领用的结果
type UseResult struct {
	Material  string  `json:"material"`
	Remaining float64 `json:"remaining"`
	Unit      string  `json:"unit"`
	LowStock  bool    `json:"low_stock"`
}

// Use 日志提交之外的直接消耗，同样走条件原子扣减
func (s *MaterialService) Use(req UseMaterialRequest) (*UseResult, error) {
	if req.Quantity <= 0 {
		return nil, entity.Validationf("valid quantity is required")
	}
	code := strings.ToUpper(strings.TrimSpace(req.MaterialCode))
	m, err := repository.ConsumeStock(s.db, code, req.Quantity)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Material consumed",
		zap.String("material_code", m.MaterialCode),
		zap.Float64("quantity", req.Quantity),
		zap.Float64("remaining", m.CurrentStock))
	return &UseResult{
		Material:  m.Name,
		Remaining: m.CurrentStock,
		Unit:      m.Unit,
		LowStock:  m.IsLowStock(),
	}, nil
}

// LowStockList 低库存清单及提示语
type LowStockList struct {
	Items   []entity.Material
	Warning string
}

func (s *MaterialService) LowStock() (*LowStockList, error) {
	items, err := s.materials.ListLowStock()
	if err != nil {
		return nil, err
	}
	warning := "All materials are sufficiently stocked"
	if len(items) > 0 {
		warning = fmt.Sprintf("%d materials are low on stock", len(items))
	}
	return &LowStockList{Items: items, Warning: warning}, nil
}

func (s *MaterialService) Stats() ([]repository.TypeStat, error) {
	return s.materials.StatsByType()
}
