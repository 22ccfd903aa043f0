package entity

import "gorm.io/gorm"

// AutoMigrate 自动迁移所有表
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// 基础数据
		&User{},
		&Material{},
		&Product{},

		// 生产记录
		&ProductionLog{},
		&ProductEntry{},
		&MaterialUsage{},
		&DefectRecord{},

		// 配方
		&Recipe{},
		&RecipeMaterial{},
	)
}
