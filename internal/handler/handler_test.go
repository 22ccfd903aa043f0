package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/Mouasahmedislem/paintello-atelier/internal/model/entity"
	"github.com/Mouasahmedislem/paintello-atelier/internal/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthFlow(t *testing.T) {
	env := testutil.NewEnv(t)

	rec := env.DoJSON(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "sonia",
		"email":    "sonia@atelier.local",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var registered struct {
		User  entity.User `json:"user"`
		Token string      `json:"token"`
	}
	testutil.DecodeData(t, rec, &registered)
	require.NotEmpty(t, registered.Token)
	assert.Empty(t, registered.User.PasswordHash, "password hash must never be serialized")

	rec = env.DoJSON(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "sonia@atelier.local",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var logged struct {
		Token string `json:"token"`
	}
	testutil.DecodeData(t, rec, &logged)

	rec = env.DoJSON(t, http.MethodGet, "/api/auth/me", logged.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var me entity.User
	testutil.DecodeData(t, rec, &me)
	assert.Equal(t, "sonia", me.Username)
}

func TestMissingTokenRejected(t *testing.T) {
	env := testutil.NewEnv(t)

	rec := env.DoJSON(t, http.MethodGet, "/api/materials", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	envl := testutil.ParseEnvelope(t, rec)
	assert.False(t, envl.Success)
	assert.NotEmpty(t, envl.Error)

	rec = env.DoJSON(t, http.MethodGet, "/api/materials", "not-a-token", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMaterialRoleGates(t *testing.T) {
	env := testutil.NewEnv(t)
	operator := env.Token(t, env.SeedUser(t, entity.RoleOperator))
	manager := env.Token(t, env.SeedUser(t, entity.RoleManager))
	admin := env.Token(t, env.SeedUser(t, entity.RoleAdmin))

	body := gin.H{
		"material_code": "CEMENT-WHITE",
		"name":          "White cement",
		"type":          entity.MaterialTypeCement,
		"unit":          entity.MaterialUnitKG,
		"current_stock": 100,
	}

	rec := env.DoJSON(t, http.MethodPost, "/api/materials", operator, body)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, testutil.ParseEnvelope(t, rec).Success)

	rec = env.DoJSON(t, http.MethodPost, "/api/materials", manager, body)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created entity.Material
	testutil.DecodeData(t, rec, &created)

	// 删除仅限管理员
	rec = env.DoJSON(t, http.MethodDelete, "/api/materials/"+created.ID, manager, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
	rec = env.DoJSON(t, http.MethodDelete, "/api/materials/"+created.ID, admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestUserAdministrationAdminOnly(t *testing.T) {
	env := testutil.NewEnv(t)
	operator := env.Token(t, env.SeedUser(t, entity.RoleOperator))
	admin := env.Token(t, env.SeedUser(t, entity.RoleAdmin))

	rec := env.DoJSON(t, http.MethodGet, "/api/auth/users", operator, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.DoJSON(t, http.MethodGet, "/api/auth/users", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var users []entity.User
	testutil.DecodeData(t, rec, &users)
	assert.Len(t, users, 2)
}

func TestSubmitProductionOverHTTP(t *testing.T) {
	env := testutil.NewEnv(t)
	op := env.SeedUser(t, entity.RoleOperator)
	token := env.Token(t, op)
	env.SeedProduct(t, "STATUE-VENUS-45", entity.ProductStatusMolding, 2)
	env.SeedMaterial(t, "CEMENT-WHITE", 1000, 50)

	rec := env.DoJSON(t, http.MethodPost, "/api/production", token, gin.H{
		"shift": entity.ShiftMorning,
		"products": []gin.H{
			{"product_code": "STATUE-VENUS-45", "action": entity.ActionPainted},
		},
		"materials_used": []gin.H{
			{"material_code": "CEMENT-WHITE", "quantity": 150},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())

	var log entity.ProductionLog
	testutil.DecodeData(t, rec, &log)
	assert.Equal(t, op.ID, log.OperatorID)
	require.Len(t, log.Materials, 1)
	assert.Equal(t, 150.0, log.Materials[0].Quantity)
}

func TestSubmitProductionInsufficientStockIs400(t *testing.T) {
	env := testutil.NewEnv(t)
	token := env.Token(t, env.SeedUser(t, entity.RoleOperator))
	env.SeedProduct(t, "STATUE-LION-60", entity.ProductStatusMolding, 1)
	env.SeedMaterial(t, "CEMENT-WHITE", 100, 10)

	rec := env.DoJSON(t, http.MethodPost, "/api/production", token, gin.H{
		"products": []gin.H{
			{"product_code": "STATUE-LION-60", "action": entity.ActionStarted},
		},
		"materials_used": []gin.H{
			{"material_code": "CEMENT-WHITE", "quantity": 250},
		},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	envl := testutil.ParseEnvelope(t, rec)
	assert.False(t, envl.Success)
	assert.Contains(t, envl.Error, "insufficient stock for CEMENT-WHITE")
}

func TestProductionLogAdminGates(t *testing.T) {
	env := testutil.NewEnv(t)
	op := env.SeedUser(t, entity.RoleOperator)
	opToken := env.Token(t, op)
	admin := env.Token(t, env.SeedUser(t, entity.RoleAdmin))
	env.SeedProduct(t, "STATUE-OWL-20", entity.ProductStatusMolding, 1)

	rec := env.DoJSON(t, http.MethodPost, "/api/production", opToken, gin.H{
		"products": []gin.H{
			{"product_code": "STATUE-OWL-20", "action": entity.ActionStarted},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var log entity.ProductionLog
	testutil.DecodeData(t, rec, &log)

	rec = env.DoJSON(t, http.MethodPut, "/api/production/"+log.ID, opToken, gin.H{"workstation": "paint-1"})
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.DoJSON(t, http.MethodPut, "/api/production/"+log.ID, admin, gin.H{"workstation": "paint-1"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.DoJSON(t, http.MethodDelete, "/api/production/"+log.ID, admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.DoJSON(t, http.MethodGet, "/api/production/"+log.ID, opToken, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductLifecycleOverHTTP(t *testing.T) {
	env := testutil.NewEnv(t)
	token := env.Token(t, env.SeedUser(t, entity.RoleOperator))

	rec := env.DoJSON(t, http.MethodPost, "/api/products", token, gin.H{
		"name":   "Venus 45cm",
		"height": 45, "width": 20, "depth": 15,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created entity.Product
	testutil.DecodeData(t, rec, &created)
	assert.Equal(t, entity.ProductStatusMolding, created.Status)
	assert.NotEmpty(t, created.ProductCode)

	rec = env.DoJSON(t, http.MethodPatch, "/api/products/"+created.ID+"/status", token, gin.H{
		"status": entity.ProductStatusDrying,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.DoJSON(t, http.MethodPatch, "/api/products/"+created.ID+"/status", token, gin.H{
		"status": "levitating",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.DoJSON(t, http.MethodGet, "/api/products/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var detail struct {
		entity.Product
		History []json.RawMessage `json:"history"`
	}
	testutil.DecodeData(t, rec, &detail)
	assert.Equal(t, entity.ProductStatusDrying, detail.Status)
	assert.Empty(t, detail.History)
}

func TestDailyReportEndpoint(t *testing.T) {
	env := testutil.NewEnv(t)
	token := env.Token(t, env.SeedUser(t, entity.RoleOperator))

	rec := env.DoJSON(t, http.MethodGet, "/api/reports/daily", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var summary struct {
		TotalLogs int            `json:"total_logs"`
		ByAction  map[string]int `json:"by_action"`
	}
	testutil.DecodeData(t, rec, &summary)
	assert.Zero(t, summary.TotalLogs)
	assert.Empty(t, summary.ByAction)

	rec = env.DoJSON(t, http.MethodGet, "/api/reports/daily?date=bogus", token, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// 效率报表仅限管理层
	rec = env.DoJSON(t, http.MethodGet, "/api/reports/productivity", token, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUnknownResourceIs404(t *testing.T) {
	env := testutil.NewEnv(t)
	token := env.Token(t, env.SeedUser(t, entity.RoleOperator))

	rec := env.DoJSON(t, http.MethodGet, "/api/materials/no-such-id", token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	envl := testutil.ParseEnvelope(t, rec)
	assert.False(t, envl.Success)
}
