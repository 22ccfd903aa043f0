package service_test

import (
	"testing"

	"github.com/Mouasahmedislem/paintello-atelier/internal/model/entity"
	"github.com/Mouasahmedislem/paintello-atelier/internal/service"
	"github.com/Mouasahmedislem/paintello-atelier/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMaterialValidation(t *testing.T) {
	env := testutil.NewEnv(t)
	var ve *entity.ValidationError

	_, err := env.Services.Material.Create(service.CreateMaterialRequest{
		MaterialCode: "X", Name: "X", Type: "plutonium", Unit: entity.MaterialUnitKG,
	})
	require.ErrorAs(t, err, &ve)

	_, err = env.Services.Material.Create(service.CreateMaterialRequest{
		MaterialCode: "X", Name: "X", Type: entity.MaterialTypeCement, Unit: "barrel",
	})
	require.ErrorAs(t, err, &ve)

	_, err = env.Services.Material.Create(service.CreateMaterialRequest{
		MaterialCode: "X", Name: "X", Type: entity.MaterialTypeCement,
		Unit: entity.MaterialUnitKG, CurrentStock: -1,
	})
	require.ErrorAs(t, err, &ve)
}

func TestCreateMaterialDefaultsAndNormalization(t *testing.T) {
	env := testutil.NewEnv(t)

	m, err := env.Services.Material.Create(service.CreateMaterialRequest{
		MaterialCode: " cement-grey ",
		Name:         "Grey cement",
		Type:         entity.MaterialTypeCement,
		Unit:         entity.MaterialUnitKG,
		CurrentStock: 40,
	})
	require.NoError(t, err)
	assert.Equal(t, "CEMENT-GREY", m.MaterialCode)
	assert.Equal(t, 10.0, m.MinThreshold)
	assert.True(t, m.IsActive)
}

func TestRestockAddsStock(t *testing.T) {
	env := testutil.NewEnv(t)
	m := env.SeedMaterial(t, "PAINT-GOLD", 5, 10)

	cost := 7.5
	got, err := env.Services.Material.Restock(m.ID, service.RestockRequest{
		Quantity: 20, UnitCost: &cost, Supplier: "Atelier Supplies",
	})
	require.NoError(t, err)
	assert.Equal(t, 25.0, got.CurrentStock)
	assert.Equal(t, 7.5, got.UnitCost)
	assert.Equal(t, "Atelier Supplies", got.Supplier)
	require.NotNil(t, got.LastRestock)

	_, err = env.Services.Material.Restock(m.ID, service.RestockRequest{Quantity: -3})
	var ve *entity.ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestUseConsumesAtomically(t *testing.T) {
	env := testutil.NewEnv(t)
	env.SeedMaterial(t, "CEMENT-WHITE", 100, 30)

	res, err := env.Services.Material.Use(service.UseMaterialRequest{
		MaterialCode: "cement-white", Quantity: 80,
	})
	require.NoError(t, err)
	assert.Equal(t, 20.0, res.Remaining)
	assert.True(t, res.LowStock)

	// 超量领用被整体拒绝，库存保持不变
	_, err = env.Services.Material.Use(service.UseMaterialRequest{
		MaterialCode: "CEMENT-WHITE", Quantity: 50,
	})
	var ise *entity.InsufficientStockError
	require.ErrorAs(t, err, &ise)
	assert.Equal(t, 20.0, ise.Available)

	m, err := env.Repos.Material.GetByCode("CEMENT-WHITE")
	require.NoError(t, err)
	assert.Equal(t, 20.0, m.CurrentStock)
}

func TestUseUnknownMaterial(t *testing.T) {
	env := testutil.NewEnv(t)

	_, err := env.Services.Material.Use(service.UseMaterialRequest{
		MaterialCode: "GHOST", Quantity: 1,
	})
	var rnf *entity.ReferenceNotFoundError
	require.ErrorAs(t, err, &rnf)
	assert.Equal(t, "GHOST", rnf.Code)
}

func TestLowStockWarning(t *testing.T) {
	env := testutil.NewEnv(t)

	list, err := env.Services.Material.LowStock()
	require.NoError(t, err)
	assert.Empty(t, list.Items)
	assert.Equal(t, "All materials are sufficiently stocked", list.Warning)

	env.SeedMaterial(t, "PIGMENT-BLUE", 2, 10)
	env.SeedMaterial(t, "CEMENT-GREY", 500, 10)

	list, err = env.Services.Material.LowStock()
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "PIGMENT-BLUE", list.Items[0].MaterialCode)
	assert.Equal(t, "1 materials are low on stock", list.Warning)
}

func TestMaterialListTotalValue(t *testing.T) {
	env := testutil.NewEnv(t)
	env.SeedMaterial(t, "CEMENT-GREY", 100, 10) // 100 * 2.5
	env.SeedMaterial(t, "CEMENT-WHITE", 40, 10) // 40 * 2.5

	list, err := env.Services.Material.List("")
	require.NoError(t, err)
	assert.Len(t, list.Items, 2)
	assert.Equal(t, 350.0, list.TotalValue)
}

func TestUpdateMaterialKeepsCodeAndStock(t *testing.T) {
	env := testutil.NewEnv(t)
	m := env.SeedMaterial(t, "RESIN-CLEAR", 60, 10)

	name := "Clear casting resin"
	threshold := 25.0
	got, err := env.Services.Material.Update(m.ID, service.UpdateMaterialRequest{
		Name: &name, MinThreshold: &threshold,
	})
	require.NoError(t, err)
	assert.Equal(t, "RESIN-CLEAR", got.MaterialCode)
	assert.Equal(t, 60.0, got.CurrentStock)
	assert.Equal(t, "Clear casting resin", got.Name)
	assert.Equal(t, 25.0, got.MinThreshold)
}
