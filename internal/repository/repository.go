package repository

import "gorm.io/gorm"

// Repositories 仓库集合
type Repositories struct {
	User          *UserRepository
	Material      *MaterialRepository
	Product       *ProductRepository
	ProductionLog *ProductionLogRepository
	Recipe        *RecipeRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:          NewUserRepository(db),
		Material:      NewMaterialRepository(db),
		Product:       NewProductRepository(db),
		ProductionLog: NewProductionLogRepository(db),
		Recipe:        NewRecipeRepository(db),
	}
}
