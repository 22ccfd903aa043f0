package entity

import (
	"fmt"
	"time"
)

// ProductStatus 产品生产阶段，按工艺顺序排列（状态机不强制只能前进）
const (
	ProductStatusMolding      = "molding"
	ProductStatusDemolded     = "demolded"
	ProductStatusDrying       = "drying"
	ProductStatusReadyToPaint = "ready_to_paint"
	ProductStatusPainting     = "painting"
	ProductStatusFinished     = "finished"
	ProductStatusPackaged     = "packaged"
	ProductStatusShipped      = "shipped"
)

// ProductCategory 产品类别
const (
	ProductCategoryStatue     = "statue"
	ProductCategoryRelief     = "relief"
	ProductCategoryOrnament   = "ornament"
	ProductCategoryCustom     = "custom"
	ProductCategoryDecoration = "decoration"
)

var productStatuses = map[string]bool{
	ProductStatusMolding:      true,
	ProductStatusDemolded:     true,
	ProductStatusDrying:       true,
	ProductStatusReadyToPaint: true,
	ProductStatusPainting:     true,
	ProductStatusFinished:     true,
	ProductStatusPackaged:     true,
	ProductStatusShipped:      true,
}

var productCategories = map[string]bool{
	ProductCategoryStatue:     true,
	ProductCategoryRelief:     true,
	ProductCategoryOrnament:   true,
	ProductCategoryCustom:     true,
	ProductCategoryDecoration: true,
}

// ValidProductStatus 校验产品状态
func ValidProductStatus(s string) bool {
	return productStatuses[s]
}

// ValidProductCategory 校验产品类别
func ValidProductCategory(c string) bool {
	return productCategories[c]
}

// NewProductCode 生成默认产品编码 P+时间戳后6位
func NewProductCode() string {
	ms := time.Now().UnixMilli()
	return fmt.Sprintf("P%06d", ms%1000000)
}

// Product 产品实体，一条记录代表同一批次的若干实物件数
type Product struct {
	ID          string     `json:"id" gorm:"primaryKey;size:36"`
	ProductCode string     `json:"product_code" gorm:"size:64;not null;uniqueIndex"`
	Name        string     `json:"name" gorm:"size:128;not null"`
	Category    string     `json:"category" gorm:"size:16;not null;default:statue;index:idx_products_status_category"`
	Status      string     `json:"status" gorm:"size:16;not null;default:molding;index:idx_products_status_category,priority:1"`
	Quantity    int        `json:"quantity" gorm:"not null;default:1"`
	Height      float64    `json:"height" gorm:"type:decimal(8,2)"` // cm
	Width       float64    `json:"width" gorm:"type:decimal(8,2)"`
	Depth       float64    `json:"depth" gorm:"type:decimal(8,2)"`
	Weight      float64    `json:"weight" gorm:"type:decimal(8,2)"` // kg
	Location    string     `json:"location" gorm:"size:128"`
	Notes       string     `json:"notes" gorm:"type:text"`
	TargetDate  *time.Time `json:"target_date"`
	LastUpdated time.Time  `json:"last_updated"`
	CreatedBy   string     `json:"created_by" gorm:"size:36"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Creator *User `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`
}

func (Product) TableName() string {
	return "products"
}
