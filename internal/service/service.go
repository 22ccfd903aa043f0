package service

import (
	"github.com/Mouasahmedislem/paintello-atelier/internal/config"
	"github.com/Mouasahmedislem/paintello-atelier/internal/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Services 服务集合
type Services struct {
	Auth       *AuthService
	Material   *MaterialService
	Product    *ProductService
	Production *ProductionService
	Report     *ReportService
	Recipe     *RecipeService
}

// NewServices rdb 可为 nil（未配置 Redis 时登出降级为无状态）
func NewServices(repos *repository.Repositories, db *gorm.DB, rdb *redis.Client, cfg *config.Config, logger *zap.Logger) *Services {
	return &Services{
		Auth:       NewAuthService(repos.User, rdb, cfg, logger),
		Material:   NewMaterialService(repos.Material, db, logger),
		Product:    NewProductService(repos.Product, repos.ProductionLog),
		Production: NewProductionService(repos.ProductionLog, repos.Product, repos.Material, db, logger),
		Report:     NewReportService(repos.ProductionLog, repos.Product, repos.Material),
		Recipe:     NewRecipeService(repos.Recipe, repos.Material),
	}
}
