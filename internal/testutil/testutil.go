// Package testutil 测试基础设施: 内存 SQLite、完整路由与令牌签发
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Mouasahmedislem/paintello-atelier/internal/config"
	"github.com/Mouasahmedislem/paintello-atelier/internal/handler"
	"github.com/Mouasahmedislem/paintello-atelier/internal/model/entity"
	"github.com/Mouasahmedislem/paintello-atelier/internal/repository"
	"github.com/Mouasahmedislem/paintello-atelier/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

// OpenDB 每个测试独立的内存库，已完成建表
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:test_%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, entity.AutoMigrate(db))
	return db
}

// TestConfig 测试配置，短时令牌
func TestConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret: "test-secret",
			Expire: time.Hour,
			Issuer: "paintello-atelier-test",
		},
	}
}

// Env 一套完整的被测栈
type Env struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Repos    *repository.Repositories
	Services *service.Services
	Router   *gin.Engine
}

// NewEnv 组装路由级测试环境，Redis 缺省为 nil
func NewEnv(t *testing.T) *Env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := OpenDB(t)
	cfg := TestConfig()
	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, db, nil, cfg, zap.NewNop())
	handlers := handler.NewHandlers(services)

	r := gin.New()
	handlers.RegisterRoutes(r, cfg, services.Auth)

	return &Env{DB: db, Cfg: cfg, Repos: repos, Services: services, Router: r}
}

// SeedUser 直接入库一个用户，密码为 password123
func (e *Env) SeedUser(t *testing.T, role string) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	u := &entity.User{
		ID:           uuid.New().String(),
		Username:     fmt.Sprintf("user_%s", uuid.New().String()[:8]),
		Email:        fmt.Sprintf("%s@test.local", uuid.New().String()[:8]),
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, e.DB.Create(u).Error)
	return u
}

// Token 为用户签发测试令牌
func (e *Env) Token(t *testing.T, u *entity.User) string {
	t.Helper()
	now := time.Now()
	claims := jwt.MapClaims{
		"uid":      u.ID,
		"username": u.Username,
		"role":     u.Role,
		"sub":      u.ID,
		"iss":      e.Cfg.JWT.Issuer,
		"iat":      now.Unix(),
		"exp":      now.Add(e.Cfg.JWT.Expire).Unix(),
		"jti":      uuid.New().String(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(e.Cfg.JWT.Secret))
	require.NoError(t, err)
	return signed
}

// SeedMaterial 入库一条物料
func (e *Env) SeedMaterial(t *testing.T, code string, stock, threshold float64) *entity.Material {
	t.Helper()
	m := &entity.Material{
		ID:           uuid.New().String(),
		MaterialCode: code,
		Name:         "Material " + code,
		Type:         entity.MaterialTypeCement,
		CurrentStock: stock,
		Unit:         entity.MaterialUnitKG,
		MinThreshold: threshold,
		UnitCost:     2.5,
		IsActive:     true,
	}
	require.NoError(t, e.DB.Create(m).Error)
	return m
}

// SeedProduct 入库一个产品
func (e *Env) SeedProduct(t *testing.T, code, status string, quantity int) *entity.Product {
	t.Helper()
	p := &entity.Product{
		ID:          uuid.New().String(),
		ProductCode: code,
		Name:        "Product " + code,
		Category:    entity.ProductCategoryStatue,
		Status:      status,
		Quantity:    quantity,
		Height:      45,
		Width:       20,
		Depth:       15,
		LastUpdated: time.Now(),
	}
	require.NoError(t, e.DB.Create(p).Error)
	return p
}

// DoJSON 发送一次 JSON 请求，token 为空则不带认证头
func (e *Env) DoJSON(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.Router.ServeHTTP(rec, req)
	return rec
}

// Envelope 统一响应外壳
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// ParseEnvelope 解析响应外壳
func ParseEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "body: %s", rec.Body.String())
	return env
}

// DecodeData 将 data 解析到目标结构
func DecodeData(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	env := ParseEnvelope(t, rec)
	require.True(t, env.Success, "expected success envelope, got: %s", rec.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, out))
}
