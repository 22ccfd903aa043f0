package handler

import (
	"errors"
	"net/http"

	"github.com/Mouasahmedislem/paintello-atelier/internal/config"
	"github.com/Mouasahmedislem/paintello-atelier/internal/middleware"
	"github.com/Mouasahmedislem/paintello-atelier/internal/model/entity"
	"github.com/Mouasahmedislem/paintello-atelier/internal/service"
	"github.com/gin-gonic/gin"
)

// Handlers HTTP处理器集合
type Handlers struct {
	Auth       *AuthHandler
	Material   *MaterialHandler
	Product    *ProductHandler
	Production *ProductionHandler
	Report     *ReportHandler
	Recipe     *RecipeHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:       NewAuthHandler(services.Auth),
		Material:   NewMaterialHandler(services.Material),
		Product:    NewProductHandler(services.Product),
		Production: NewProductionHandler(services.Production, services.Report),
		Report:     NewReportHandler(services.Report),
		Recipe:     NewRecipeHandler(services.Recipe),
	}
}

// RegisterRoutes 挂载全部业务路由到 /api
func (h *Handlers) RegisterRoutes(r *gin.Engine, cfg *config.Config, checker middleware.TokenChecker) {
	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
	}

	authed := api.Group("")
	authed.Use(middleware.JWTAuth(cfg.JWT.Secret, checker))

	me := authed.Group("/auth")
	{
		me.POST("/logout", h.Auth.Logout)
		me.GET("/me", h.Auth.Me)
		me.PUT("/profile", h.Auth.UpdateProfile)
		me.PUT("/password", h.Auth.UpdatePassword)
	}

	users := authed.Group("/auth/users", middleware.RequireRoles(entity.RoleAdmin))
	{
		users.GET("", h.Auth.ListUsers)
		users.GET("/:id", h.Auth.GetUser)
		users.PUT("/:id", h.Auth.UpdateUser)
		users.DELETE("/:id", h.Auth.DeleteUser)
	}

	materials := authed.Group("/materials")
	{
		materials.GET("", h.Material.List)
		materials.GET("/low-stock", h.Material.LowStock)
		materials.GET("/stats", h.Material.Stats)
		materials.GET("/type/:type", h.Material.ListByType)
		materials.GET("/:id", h.Material.Get)
		materials.POST("", middleware.RequireRoles(entity.RoleAdmin, entity.RoleManager), h.Material.Create)
		materials.PUT("/:id", middleware.RequireRoles(entity.RoleAdmin, entity.RoleManager), h.Material.Update)
		materials.DELETE("/:id", middleware.RequireRoles(entity.RoleAdmin), h.Material.Delete)
		materials.POST("/:id/restock", middleware.RequireRoles(entity.RoleAdmin, entity.RoleManager), h.Material.Restock)
		materials.POST("/use", h.Material.Use)
	}

	products := authed.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/stats", h.Product.Stats)
		products.GET("/status/:status", h.Product.ListByStatus)
		products.GET("/:id", h.Product.Get)
		products.POST("", h.Product.Create)
		products.PUT("/:id", h.Product.Update)
		products.PATCH("/:id/status", h.Product.UpdateStatus)
		products.POST("/batch/status", middleware.RequireRoles(entity.RoleAdmin, entity.RoleManager), h.Product.BatchUpdateStatus)
		products.DELETE("/:id", middleware.RequireRoles(entity.RoleAdmin, entity.RoleManager), h.Product.Delete)
	}

	production := authed.Group("/production")
	{
		production.POST("", h.Production.Submit)
		production.GET("", h.Production.List)
		production.GET("/search", h.Production.Search)
		production.GET("/stats", h.Production.Stats)
		production.GET("/daily", h.Production.Daily)
		production.GET("/performance", h.Production.Performance)
		production.GET("/:id", h.Production.Get)
		production.PUT("/:id", middleware.RequireRoles(entity.RoleAdmin), h.Production.Update)
		production.DELETE("/:id", middleware.RequireRoles(entity.RoleAdmin), h.Production.Delete)
	}

	reports := authed.Group("/reports")
	{
		reports.GET("/daily", h.Report.Daily)
		reports.GET("/weekly", h.Report.Weekly)
		reports.GET("/monthly", h.Report.Monthly)
		reports.GET("/material-consumption", h.Report.MaterialConsumption)
		reports.GET("/productivity", middleware.RequireRoles(entity.RoleAdmin, entity.RoleManager), h.Report.Productivity)
	}

	recipes := authed.Group("/recipes")
	{
		recipes.GET("", h.Recipe.List)
		recipes.GET("/:id", h.Recipe.Get)
		recipes.GET("/:id/check-stock", h.Recipe.CheckStock)
		recipes.POST("", middleware.RequireRoles(entity.RoleAdmin, entity.RoleManager), h.Recipe.Create)
		recipes.PUT("/:id", middleware.RequireRoles(entity.RoleAdmin, entity.RoleManager), h.Recipe.Update)
		recipes.DELETE("/:id", middleware.RequireRoles(entity.RoleAdmin), h.Recipe.Delete)
	}
}

// Success 200 响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// Created 201 响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": data})
}

// Fail 错误响应
func Fail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": false, "error": msg})
}

func BadRequest(c *gin.Context, msg string) {
	Fail(c, http.StatusBadRequest, msg)
}

func NotFound(c *gin.Context, msg string) {
	Fail(c, http.StatusNotFound, msg)
}

func Internal(c *gin.Context) {
	Fail(c, http.StatusInternalServerError, "Internal server error")
}

// FromError 按错误类型映射状态码
func FromError(c *gin.Context, err error) {
	var ve *entity.ValidationError
	var rnf *entity.ReferenceNotFoundError
	var ise *entity.InsufficientStockError

	switch {
	case errors.As(err, &ve), errors.As(err, &rnf), errors.As(err, &ise):
		BadRequest(c, err.Error())
	case errors.Is(err, entity.ErrNotFound):
		NotFound(c, "Resource not found")
	case errors.Is(err, entity.ErrUserExists):
		BadRequest(c, "User with this email or username already exists")
	case errors.Is(err, entity.ErrInvalidCredentials):
		Fail(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, entity.ErrAccountDisabled):
		Fail(c, http.StatusUnauthorized, "Account is deactivated")
	default:
		Internal(c)
	}
}

// UserID 当前登录用户ID，由 JWTAuth 注入
func UserID(c *gin.Context) string {
	return c.GetString("user_id")
}

// CurrentClaims 当前 token 的 claims
func CurrentClaims(c *gin.Context) *middleware.Claims {
	v, ok := c.Get("claims")
	if !ok {
		return nil
	}
	claims, _ := v.(*middleware.Claims)
	return claims
}
