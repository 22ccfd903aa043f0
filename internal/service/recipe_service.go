package service

import (
	"fmt"
	"strings"

	"github.com/Mouasahmedislem/paintello-atelier/internal/model/entity"
	"github.com/Mouasahmedislem/paintello-atelier/internal/repository"
	"github.com/google/uuid"
)

// RecipeService 配方服务，物料需求在保存时即与物料台账对齐
type RecipeService struct {
	recipes   *repository.RecipeRepository
	materials *repository.MaterialRepository
}

func NewRecipeService(recipes *repository.RecipeRepository, materials *repository.MaterialRepository) *RecipeService {
	return &RecipeService{recipes: recipes, materials: materials}
}

type RecipeMaterialInput struct {
	MaterialCode string  `json:"material_code" binding:"required"`
	Quantity     float64 `json:"quantity" binding:"required"`
	Stage        string  `json:"stage"`
}

type CreateRecipeRequest struct {
	RecipeCode      string                `json:"recipe_code"`
	ProductType     string                `json:"product_type" binding:"required"`
	ProductName     string                `json:"product_name"`
	ProductCategory string                `json:"product_category"`
	Height          float64               `json:"height"`
	Width           float64               `json:"width"`
	Depth           float64               `json:"depth"`
	Notes           string                `json:"notes"`
	Materials       []RecipeMaterialInput `json:"materials" binding:"required"`
}

// resolveMaterials 校验明细并补全名称与单位。引用的物料必须已登记
func (s *RecipeService) resolveMaterials(recipeID string, inputs []RecipeMaterialInput) ([]entity.RecipeMaterial, error) {
	if len(inputs) == 0 {
		return nil, entity.Validationf("at least one material is required")
	}
	out := make([]entity.RecipeMaterial, 0, len(inputs))
	for _, in := range inputs {
		code := strings.ToUpper(strings.TrimSpace(in.MaterialCode))
		if in.Quantity <= 0 {
			return nil, entity.Validationf("material quantity must be positive")
		}
		stage := in.Stage
		if stage == "" {
			stage = entity.RecipeStageAll
		}
		if !entity.ValidRecipeStage(stage) {
			return nil, entity.Validationf("invalid stage: %s", stage)
		}
		m, err := s.materials.GetByCode(code)
		if err != nil {
			if err == entity.ErrNotFound {
				return nil, &entity.ReferenceNotFoundError{Kind: "material", Code: code}
			}
			return nil, fmt.Errorf("look up material %s: %w", code, err)
		}
		out = append(out, entity.RecipeMaterial{
			ID:           uuid.New().String(),
			RecipeID:     recipeID,
			MaterialCode: code,
			MaterialName: m.Name,
			Quantity:     in.Quantity,
			Unit:         m.Unit,
			Stage:        stage,
		})
	}
	return out, nil
}

func (s *RecipeService) Create(req CreateRecipeRequest, userID string) (*entity.Recipe, error) {
	if req.ProductCategory != "" && !entity.ValidProductCategory(req.ProductCategory) {
		return nil, entity.Validationf("invalid category: %s", req.ProductCategory)
	}

	code := strings.TrimSpace(req.RecipeCode)
	if code == "" {
		code = entity.NewRecipeCode()
	}

	rec := &entity.Recipe{
		ID:              uuid.New().String(),
		RecipeCode:      code,
		ProductType:     strings.TrimSpace(req.ProductType),
		ProductName:     req.ProductName,
		ProductCategory: req.ProductCategory,
		Height:          req.Height,
		Width:           req.Width,
		Depth:           req.Depth,
		Notes:           req.Notes,
		IsActive:        true,
		CreatedBy:       userID,
	}
	materials, err := s.resolveMaterials(rec.ID, req.Materials)
	if err != nil {
		return nil, err
	}
	rec.Materials = materials

	if err := s.recipes.Create(rec); err != nil {
		return nil, fmt.Errorf("create recipe: %w", err)
	}
	return rec, nil
}

func (s *RecipeService) List(productType string, activeOnly bool) ([]entity.Recipe, error) {
	return s.recipes.List(productType, activeOnly)
}

func (s *RecipeService) Get(id string) (*entity.Recipe, error) {
	return s.recipes.GetByID(id)
}

type UpdateRecipeRequest struct {
	ProductType     *string               `json:"product_type"`
	ProductName     *string               `json:"product_name"`
	ProductCategory *string               `json:"product_category"`
	Height          *float64              `json:"height"`
	Width           *float64              `json:"width"`
	Depth           *float64              `json:"depth"`
	Notes           *string               `json:"notes"`
	IsActive        *bool                 `json:"is_active"`
	Materials       []RecipeMaterialInput `json:"materials"`
}

// Update 配方编码不可变；传入 materials 时整体替换明细
func (s *RecipeService) Update(id string, req UpdateRecipeRequest) (*entity.Recipe, error) {
	rec, err := s.recipes.GetByID(id)
	if err != nil {
		return nil, err
	}
	if req.ProductType != nil {
		rec.ProductType = strings.TrimSpace(*req.ProductType)
	}
	if req.ProductName != nil {
		rec.ProductName = *req.ProductName
	}
	if req.ProductCategory != nil {
		if !entity.ValidProductCategory(*req.ProductCategory) {
			return nil, entity.Validationf("invalid category: %s", *req.ProductCategory)
		}
		rec.ProductCategory = *req.ProductCategory
	}
	if req.Height != nil {
		rec.Height = *req.Height
	}
	if req.Width != nil {
		rec.Width = *req.Width
	}
	if req.Depth != nil {
		rec.Depth = *req.Depth
	}
	if req.Notes != nil {
		rec.Notes = *req.Notes
	}
	if req.IsActive != nil {
		rec.IsActive = *req.IsActive
	}
	if req.Materials != nil {
		materials, err := s.resolveMaterials(rec.ID, req.Materials)
		if err != nil {
			return nil, err
		}
		rec.Materials = materials
	}
	if err := s.recipes.Update(rec); err != nil {
		return nil, fmt.Errorf("update recipe: %w", err)
	}
	return rec, nil
}

func (s *RecipeService) Delete(id string) error {
	return s.recipes.Delete(id)
}

// MaterialRequirement 按批量折算后的单项物料需求
type MaterialRequirement struct {
	MaterialCode string  `json:"material_code"`
	MaterialName string  `json:"material_name"`
	Required     float64 `json:"required"`
	Available    float64 `json:"available"`
	Unit         string  `json:"unit"`
	Sufficient   bool    `json:"sufficient"`
}

// StockCheck 配方可行性结论
type StockCheck struct {
	RecipeCode   string                `json:"recipe_code"`
	BatchSize    int                   `json:"batch_size"`
	CanProduce   bool                  `json:"can_produce"`
	Requirements []MaterialRequirement `json:"requirements"`
}

// CheckStock 按批量核对配方物料是否够产。只读，不扣库存。
// ref 可为配方ID或配方编码
func (s *RecipeService) CheckStock(ref string, batchSize int) (*StockCheck, error) {
	if batchSize < 1 {
		batchSize = 1
	}
	rec, err := s.recipes.GetByID(ref)
	if err == entity.ErrNotFound {
		rec, err = s.recipes.GetByCode(ref)
	}
	if err != nil {
		return nil, err
	}

	check := &StockCheck{
		RecipeCode: rec.RecipeCode,
		BatchSize:  batchSize,
		CanProduce: true,
	}
	for _, rm := range rec.Materials {
		req := MaterialRequirement{
			MaterialCode: rm.MaterialCode,
			MaterialName: rm.MaterialName,
			Required:     rm.Quantity * float64(batchSize),
			Unit:         rm.Unit,
		}
		m, err := s.materials.GetByCode(rm.MaterialCode)
		if err == nil {
			req.Available = m.CurrentStock
		}
		req.Sufficient = req.Available >= req.Required
		if !req.Sufficient {
			check.CanProduce = false
		}
		check.Requirements = append(check.Requirements, req)
	}
	return check, nil
}
