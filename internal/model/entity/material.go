package entity

import (
	"time"
)

// MaterialType 物料类型
const (
	MaterialTypeCement   = "cement"
	MaterialTypeGypsum   = "gypsum"
	MaterialTypeAdditive = "additive"
	MaterialTypeColor    = "color"
	MaterialTypePrimer   = "primer"
	MaterialTypeFinish   = "finish"
	MaterialTypeTool     = "tool"
	MaterialTypeOther    = "other"
)

// MaterialUnit 计量单位
const (
	MaterialUnitKG     = "kg"
	MaterialUnitL      = "L"
	MaterialUnitBag    = "bag"
	MaterialUnitTube   = "tube"
	MaterialUnitBottle = "bottle"
	MaterialUnitPiece  = "piece"
	MaterialUnitRoll   = "roll"
	MaterialUnitM2     = "m²"
)

var materialTypes = map[string]bool{
	MaterialTypeCement:   true,
	MaterialTypeGypsum:   true,
	MaterialTypeAdditive: true,
	MaterialTypeColor:    true,
	MaterialTypePrimer:   true,
	MaterialTypeFinish:   true,
	MaterialTypeTool:     true,
	MaterialTypeOther:    true,
}

var materialUnits = map[string]bool{
	MaterialUnitKG:     true,
	MaterialUnitL:      true,
	MaterialUnitBag:    true,
	MaterialUnitTube:   true,
	MaterialUnitBottle: true,
	MaterialUnitPiece:  true,
	MaterialUnitRoll:   true,
	MaterialUnitM2:     true,
}

// ValidMaterialType 校验物料类型
func ValidMaterialType(t string) bool {
	return materialTypes[t]
}

// ValidMaterialUnit 校验计量单位
func ValidMaterialUnit(u string) bool {
	return materialUnits[u]
}

// Material 物料实体。不变量: current_stock 在任何已提交操作后不为负
type Material struct {
	ID           string     `json:"id" gorm:"primaryKey;size:36"`
	MaterialCode string     `json:"material_code" gorm:"size:64;not null;uniqueIndex"`
	Name         string     `json:"name" gorm:"size:128;not null"`
	Type         string     `json:"type" gorm:"size:16;not null"`
	Brand        string     `json:"brand" gorm:"size:64"`
	CurrentStock float64    `json:"current_stock" gorm:"type:decimal(12,4);not null;default:0"`
	Unit         string     `json:"unit" gorm:"size:16;not null"`
	MinThreshold float64    `json:"min_threshold" gorm:"type:decimal(12,4);not null;default:10"`
	UnitCost     float64    `json:"unit_cost" gorm:"type:decimal(12,4);default:0"`
	Supplier     string     `json:"supplier" gorm:"size:128"`
	Location     string     `json:"location" gorm:"size:128"`
	Notes        string     `json:"notes" gorm:"type:text"`
	IsActive     bool       `json:"is_active" gorm:"not null;default:true"`
	LastRestock  *time.Time `json:"last_restock"`
	NextRestock  *time.Time `json:"next_restock"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (Material) TableName() string {
	return "materials"
}

// IsLowStock 低库存判定，统一按物料自身阈值，读时计算不落库
func (m *Material) IsLowStock() bool {
	return m.CurrentStock < m.MinThreshold
}

// StockValue 库存货值
func (m *Material) StockValue() float64 {
	return m.CurrentStock * m.UnitCost
}
