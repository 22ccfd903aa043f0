package entity

import (
	"fmt"
	"time"
)

// RecipeStage 配方物料的使用工序
const (
	RecipeStageMixing    = "mixing"
	RecipeStageMolding   = "molding"
	RecipeStageFinishing = "finishing"
	RecipeStagePainting  = "painting"
	RecipeStageAll       = "all"
)

var recipeStages = map[string]bool{
	RecipeStageMixing:    true,
	RecipeStageMolding:   true,
	RecipeStageFinishing: true,
	RecipeStagePainting:  true,
	RecipeStageAll:       true,
}

// ValidRecipeStage 校验配方工序
func ValidRecipeStage(s string) bool {
	return recipeStages[s]
}

// NewRecipeCode 生成默认配方编码 REC+时间戳后6位
func NewRecipeCode() string {
	ms := time.Now().UnixMilli()
	return fmt.Sprintf("REC%06d", ms%1000000)
}

// Recipe 配方，某一类产品的物料需求清单
type Recipe struct {
	ID              string    `json:"id" gorm:"primaryKey;size:36"`
	RecipeCode      string    `json:"recipe_code" gorm:"size:64;not null;uniqueIndex"`
	ProductType     string    `json:"product_type" gorm:"size:64;not null"`
	ProductName     string    `json:"product_name" gorm:"size:128"`
	ProductCategory string    `json:"product_category" gorm:"size:16"`
	Height          float64   `json:"height" gorm:"type:decimal(8,2)"`
	Width           float64   `json:"width" gorm:"type:decimal(8,2)"`
	Depth           float64   `json:"depth" gorm:"type:decimal(8,2)"`
	Notes           string    `json:"notes" gorm:"type:text"`
	IsActive        bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedBy       string    `json:"created_by" gorm:"size:36"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	Materials []RecipeMaterial `json:"materials" gorm:"foreignKey:RecipeID"`
}

func (Recipe) TableName() string {
	return "recipes"
}

// RecipeMaterial 配方物料需求，数量为单件用量
type RecipeMaterial struct {
	ID           string    `json:"id" gorm:"primaryKey;size:36"`
	RecipeID     string    `json:"recipe_id" gorm:"size:36;not null;index"`
	MaterialCode string    `json:"material_code" gorm:"size:64;not null"`
	MaterialName string    `json:"material_name" gorm:"size:128"`
	Quantity     float64   `json:"quantity" gorm:"type:decimal(12,4);not null"`
	Unit         string    `json:"unit" gorm:"size:16"`
	Stage        string    `json:"stage" gorm:"size:16;not null;default:all"`
	CreatedAt    time.Time `json:"created_at"`
}

func (RecipeMaterial) TableName() string {
	return "recipe_materials"
}
