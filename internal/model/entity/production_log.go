package entity

import (
	"time"
)

// Shift 班次
const (
	ShiftMorning   = "morning"
	ShiftAfternoon = "afternoon"
	ShiftNight     = "night"
)

// ProductionAction 报工动作
const (
	ActionStarted      = "started"
	ActionDemolded     = "demolded"
	ActionDried        = "dried"
	ActionPrimed       = "primed"
	ActionPainted      = "painted"
	ActionFinished     = "finished"
	ActionPackaged     = "packaged"
	ActionQualityCheck = "quality_check"
)

var shifts = map[string]bool{
	ShiftMorning:   true,
	ShiftAfternoon: true,
	ShiftNight:     true,
}

// actionStatus 报工动作到产品状态的映射，显式建表避免把动作字符串
// 直接写进状态产生枚举外的值；quality_check 不推进状态。
var actionStatus = map[string]string{
	ActionStarted:      ProductStatusMolding,
	ActionDemolded:     ProductStatusDemolded,
	ActionDried:        ProductStatusDrying,
	ActionPrimed:       ProductStatusReadyToPaint,
	ActionPainted:      ProductStatusPainting,
	ActionFinished:     ProductStatusFinished,
	ActionPackaged:     ProductStatusPackaged,
	ActionQualityCheck: "",
}

// ValidShift 校验班次
func ValidShift(s string) bool {
	return shifts[s]
}

// ValidAction 校验报工动作
func ValidAction(a string) bool {
	_, ok := actionStatus[a]
	return ok
}

// StatusForAction 返回动作对应的产品状态，空串表示状态不变
func StatusForAction(a string) (string, bool) {
	s, ok := actionStatus[a]
	return s, ok
}

// ProductionLog 生产日志，一名操作员一个班次的一次提交，写入后为不可变历史
// （管理员修正除外，修正不回放库存/状态副作用）
type ProductionLog struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	Date        time.Time `json:"date" gorm:"not null;index:idx_production_logs_date_operator,priority:1,sort:desc"`
	OperatorID  string    `json:"operator_id" gorm:"size:36;not null;index:idx_production_logs_date_operator,priority:2"`
	Shift       string    `json:"shift" gorm:"size:16;not null;default:morning"`
	Workstation string    `json:"workstation" gorm:"size:64"`
	Efficiency  *float64  `json:"efficiency"` // 0-100
	Notes       string    `json:"notes" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Operator  *User           `json:"operator,omitempty" gorm:"foreignKey:OperatorID"`
	Products  []ProductEntry  `json:"products" gorm:"foreignKey:LogID"`
	Materials []MaterialUsage `json:"materials_used" gorm:"foreignKey:LogID"`
	Defects   []DefectRecord  `json:"defects,omitempty" gorm:"foreignKey:LogID"`
}

func (ProductionLog) TableName() string {
	return "production_logs"
}

// ProductEntry 日志中的产品工作条目
type ProductEntry struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	LogID       string    `json:"log_id" gorm:"size:36;not null;index"`
	ProductCode string    `json:"product_code" gorm:"size:64;not null;index"`
	Action      string    `json:"action" gorm:"size:16;not null"`
	Quantity    int       `json:"quantity" gorm:"not null;default:1"`
	TimeSpent   int       `json:"time_spent"` // 分钟
	Notes       string    `json:"notes" gorm:"size:256"`
	CreatedAt   time.Time `json:"created_at"`
}

func (ProductEntry) TableName() string {
	return "production_log_products"
}

// MaterialUsage 日志中的物料消耗条目
type MaterialUsage struct {
	ID           string    `json:"id" gorm:"primaryKey;size:36"`
	LogID        string    `json:"log_id" gorm:"size:36;not null;index"`
	MaterialCode string    `json:"material_code" gorm:"size:64;not null;index"`
	MaterialName string    `json:"material_name" gorm:"size:128"`
	Quantity     float64   `json:"quantity" gorm:"type:decimal(12,4);not null"`
	ProductCode  string    `json:"product_code" gorm:"size:64"`
	Unit         string    `json:"unit" gorm:"size:16"`
	CreatedAt    time.Time `json:"created_at"`
}

func (MaterialUsage) TableName() string {
	return "production_log_materials"
}

// DefectRecord 缺陷记录
type DefectRecord struct {
	ID              string    `json:"id" gorm:"primaryKey;size:36"`
	LogID           string    `json:"log_id" gorm:"size:36;not null;index"`
	ProductCode     string    `json:"product_code" gorm:"size:64"`
	DefectType      string    `json:"defect_type" gorm:"size:64"`
	Description     string    `json:"description" gorm:"type:text"`
	Resolved        bool      `json:"resolved" gorm:"not null;default:false"`
	ResolutionNotes string    `json:"resolution_notes" gorm:"type:text"`
	CreatedAt       time.Time `json:"created_at"`
}

func (DefectRecord) TableName() string {
	return "production_log_defects"
}
