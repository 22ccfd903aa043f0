package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/Mouasahmedislem/paintello-atelier/internal/model/entity"
	"github.com/Mouasahmedislem/paintello-atelier/internal/repository"
	"github.com/google/uuid"
)

// ProductService 产品生命周期服务
type ProductService struct {
	products *repository.ProductRepository
	logs     *repository.ProductionLogRepository
}

func NewProductService(products *repository.ProductRepository, logs *repository.ProductionLogRepository) *ProductService {
	return &ProductService{products: products, logs: logs}
}

type CreateProductRequest struct {
	ProductCode string     `json:"product_code"`
	Name        string     `json:"name" binding:"required"`
	Category    string     `json:"category"`
	Status      string     `json:"status"`
	Quantity    int        `json:"quantity"`
	Height      float64    `json:"height" binding:"required"`
	Width       float64    `json:"width" binding:"required"`
	Depth       float64    `json:"depth" binding:"required"`
	Weight      float64    `json:"weight"`
	Location    string     `json:"location"`
	Notes       string     `json:"notes"`
	TargetDate  *time.Time `json:"target_date"`
}

func (s *ProductService) Create(req CreateProductRequest, userID string) (*entity.Product, error) {
	category := req.Category
	if category == "" {
		category = entity.ProductCategoryStatue
	}
	if !entity.ValidProductCategory(category) {
		return nil, entity.Validationf("invalid category: %s", category)
	}
	status := req.Status
	if status == "" {
		status = entity.ProductStatusMolding
	}
	if !entity.ValidProductStatus(status) {
		return nil, entity.Validationf("invalid status: %s", status)
	}
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 1 {
		return nil, entity.Validationf("quantity must be at least 1")
	}
	if req.Height <= 0 || req.Width <= 0 || req.Depth <= 0 {
		return nil, entity.Validationf("dimensions are required")
	}

	code := strings.TrimSpace(req.ProductCode)
	if code == "" {
		code = entity.NewProductCode()
	}

	p := &entity.Product{
		ID:          uuid.New().String(),
		ProductCode: code,
		Name:        strings.TrimSpace(req.Name),
		Category:    category,
		Status:      status,
		Quantity:    quantity,
		Height:      req.Height,
		Width:       req.Width,
		Depth:       req.Depth,
		Weight:      req.Weight,
		Location:    req.Location,
		Notes:       req.Notes,
		TargetDate:  req.TargetDate,
		LastUpdated: time.Now(),
		CreatedBy:   userID,
	}
	if err := s.products.Create(p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return p, nil
}

func (s *ProductService) List(params repository.ProductListParams) ([]entity.Product, int64, error) {
	if params.Status != "" && !entity.ValidProductStatus(params.Status) {
		return nil, 0, entity.Validationf("invalid status: %s", params.Status)
	}
	return s.products.List(params)
}

// ProductDetail 产品及其生产履历
type ProductDetail struct {
	entity.Product
	History []entity.ProductionLog `json:"history"`
}

func (s *ProductService) Get(id string) (*ProductDetail, error) {
	p, err := s.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	history, err := s.logs.ListByProductCode(p.ProductCode)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	return &ProductDetail{Product: *p, History: history}, nil
}

type UpdateProductRequest struct {
	Name       *string    `json:"name"`
	Category   *string    `json:"category"`
	Quantity   *int       `json:"quantity"`
	Height     *float64   `json:"height"`
	Width      *float64   `json:"width"`
	Depth      *float64   `json:"depth"`
	Weight     *float64   `json:"weight"`
	Location   *string    `json:"location"`
	Notes      *string    `json:"notes"`
	TargetDate *time.Time `json:"target_date"`
}

func (s *ProductService) Update(id string, req UpdateProductRequest) (*entity.Product, error) {
	p, err := s.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Category != nil {
		if !entity.ValidProductCategory(*req.Category) {
			return nil, entity.Validationf("invalid category: %s", *req.Category)
		}
		p.Category = *req.Category
	}
	if req.Quantity != nil {
		if *req.Quantity < 1 {
			return nil, entity.Validationf("quantity must be at least 1")
		}
		p.Quantity = *req.Quantity
	}
	if req.Height != nil {
		p.Height = *req.Height
	}
	if req.Width != nil {
		p.Width = *req.Width
	}
	if req.Depth != nil {
		p.Depth = *req.Depth
	}
	if req.Weight != nil {
		p.Weight = *req.Weight
	}
	if req.Location != nil {
		p.Location = *req.Location
	}
	if req.Notes != nil {
		p.Notes = *req.Notes
	}
	if req.TargetDate != nil {
		p.TargetDate = req.TargetDate
	}
	p.LastUpdated = time.Now()
	if err := s.products.Update(p); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return p, nil
}

// UpdateStatus 无条件覆盖状态，不强制阶段只能前进
func (s *ProductService) UpdateStatus(id, status string) (*entity.Product, error) {
	if !entity.ValidProductStatus(status) {
		return nil, entity.Validationf("invalid status: %s", status)
	}
	p, err := s.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	p.Status = status
	p.LastUpdated = time.Now()
	if err := s.products.Update(p); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	return p, nil
}

// BatchUpdateStatus 批量覆盖状态，任一产品不存在则整体失败
func (s *ProductService) BatchUpdateStatus(ids []string, status string) (int, error) {
	if len(ids) == 0 {
		return 0, entity.Validationf("product ids are required")
	}
	if !entity.ValidProductStatus(status) {
		return 0, entity.Validationf("invalid status: %s", status)
	}
	updated := 0
	for _, id := range ids {
		if _, err := s.UpdateStatus(id, status); err != nil {
			return updated, err
		}
		updated++
	}
	return updated, nil
}

func (s *ProductService) Delete(id string) error {
	return s.products.Delete(id)
}

// ProductStats 产品统计
type ProductStats struct {
	TotalProducts    int64                   `json:"total_products"`
	ByStatus         []repository.StatusStat `json:"by_status"`
	FinishedThisWeek int64                   `json:"finished_this_week"`
}

func (s *ProductService) Stats() (*ProductStats, error) {
	byStatus, err := s.products.StatsByStatus()
	if err != nil {
		return nil, err
	}
	var total int64
	for _, st := range byStatus {
		total += st.Count
	}
	now := time.Now()
	finished, err := s.logs.CountFinishedBetween(now.AddDate(0, 0, -7), now)
	if err != nil {
		return nil, err
	}
	return &ProductStats{
		TotalProducts:    total,
		ByStatus:         byStatus,
		FinishedThisWeek: finished,
	}, nil
}
