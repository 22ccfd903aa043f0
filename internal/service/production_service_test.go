package service_test

import (
	"testing"

	"github.com/Mouasahmedislem/paintello-atelier/internal/model/entity"
	"github.com/Mouasahmedislem/paintello-atelier/internal/service"
	"github.com/Mouasahmedislem/paintello-atelier/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitAdvancesStatusAndConsumesStock(t *testing.T) {
	env := testutil.NewEnv(t)
	op := env.SeedUser(t, entity.RoleOperator)
	env.SeedProduct(t, "STATUE-VENUS-45", entity.ProductStatusMolding, 3)
	env.SeedMaterial(t, "CEMENT-WHITE", 1000, 50)

	log, err := env.Services.Production.Submit(op.ID, service.SubmitLogRequest{
		Shift:       entity.ShiftAfternoon,
		Workstation: "molding-2",
		Products: []service.ProductEntryInput{
			{ProductCode: "STATUE-VENUS-45", Action: entity.ActionPainted, Quantity: 2},
		},
		MaterialsUsed: []service.MaterialUsageInput{
			{MaterialCode: "CEMENT-WHITE", Quantity: 200, ProductCode: "STATUE-VENUS-45"},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, log)
	assert.Equal(t, entity.ShiftAfternoon, log.Shift)
	require.Len(t, log.Products, 1)
	require.Len(t, log.Materials, 1)
	assert.Equal(t, "Material CEMENT-WHITE", log.Materials[0].MaterialName)
	assert.Equal(t, entity.MaterialUnitKG, log.Materials[0].Unit)

	p, err := env.Repos.Product.GetByCode("STATUE-VENUS-45")
	require.NoError(t, err)
	assert.Equal(t, entity.ProductStatusPainting, p.Status)
	assert.Equal(t, 3, p.Quantity)

	m, err := env.Repos.Material.GetByCode("CEMENT-WHITE")
	require.NoError(t, err)
	assert.Equal(t, 800.0, m.CurrentStock)
}

func TestSubmitInsufficientStockRejectsWhole(t *testing.T) {
	env := testutil.NewEnv(t)
	op := env.SeedUser(t, entity.RoleOperator)
	env.SeedProduct(t, "STATUE-LION-60", entity.ProductStatusMolding, 1)
	env.SeedMaterial(t, "CEMENT-WHITE", 1000, 50)

	_, err := env.Services.Production.Submit(op.ID, service.SubmitLogRequest{
		Products: []service.ProductEntryInput{
			{ProductCode: "STATUE-LION-60", Action: entity.ActionStarted},
		},
		MaterialsUsed: []service.MaterialUsageInput{
			{MaterialCode: "CEMENT-WHITE", Quantity: 1200},
		},
	})
	var ise *entity.InsufficientStockError
	require.ErrorAs(t, err, &ise)
	assert.Equal(t, "CEMENT-WHITE", ise.MaterialCode)
	assert.Equal(t, 1000.0, ise.Available)
	assert.Equal(t, 1200.0, ise.Requested)

	// 整体拒绝: 库存不动，也没有留下任何日志
	m, err := env.Repos.Material.GetByCode("CEMENT-WHITE")
	require.NoError(t, err)
	assert.Equal(t, 1000.0, m.CurrentStock)

	var count int64
	require.NoError(t, env.DB.Model(&entity.ProductionLog{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSubmitUnknownProductPersistsNothing(t *testing.T) {
	env := testutil.NewEnv(t)
	op := env.SeedUser(t, entity.RoleOperator)
	env.SeedMaterial(t, "CEMENT-WHITE", 500, 50)

	_, err := env.Services.Production.Submit(op.ID, service.SubmitLogRequest{
		Products: []service.ProductEntryInput{
			{ProductCode: "NO-SUCH-PRODUCT", Action: entity.ActionStarted},
		},
		MaterialsUsed: []service.MaterialUsageInput{
			{MaterialCode: "CEMENT-WHITE", Quantity: 100},
		},
	})
	var rnf *entity.ReferenceNotFoundError
	require.ErrorAs(t, err, &rnf)
	assert.Equal(t, "product", rnf.Kind)

	m, err := env.Repos.Material.GetByCode("CEMENT-WHITE")
	require.NoError(t, err)
	assert.Equal(t, 500.0, m.CurrentStock)

	var logs, entries int64
	require.NoError(t, env.DB.Model(&entity.ProductionLog{}).Count(&logs).Error)
	require.NoError(t, env.DB.Model(&entity.ProductEntry{}).Count(&entries).Error)
	assert.Zero(t, logs)
	assert.Zero(t, entries)
}

func TestSubmitUnknownMaterial(t *testing.T) {
	env := testutil.NewEnv(t)
	op := env.SeedUser(t, entity.RoleOperator)
	env.SeedProduct(t, "STATUE-OWL-20", entity.ProductStatusMolding, 1)

	_, err := env.Services.Production.Submit(op.ID, service.SubmitLogRequest{
		Products: []service.ProductEntryInput{
			{ProductCode: "STATUE-OWL-20", Action: entity.ActionStarted},
		},
		MaterialsUsed: []service.MaterialUsageInput{
			{MaterialCode: "no-such-material", Quantity: 1},
		},
	})
	var rnf *entity.ReferenceNotFoundError
	require.ErrorAs(t, err, &rnf)
	assert.Equal(t, "material", rnf.Kind)
	assert.Equal(t, "NO-SUCH-MATERIAL", rnf.Code)
}

func TestSubmitQualityCheckKeepsStatus(t *testing.T) {
	env := testutil.NewEnv(t)
	op := env.SeedUser(t, entity.RoleOperator)
	env.SeedProduct(t, "STATUE-CAT-30", entity.ProductStatusDrying, 2)

	_, err := env.Services.Production.Submit(op.ID, service.SubmitLogRequest{
		Products: []service.ProductEntryInput{
			{ProductCode: "STATUE-CAT-30", Action: entity.ActionQualityCheck},
		},
	})
	require.NoError(t, err)

	p, err := env.Repos.Product.GetByCode("STATUE-CAT-30")
	require.NoError(t, err)
	assert.Equal(t, entity.ProductStatusDrying, p.Status)
	assert.Equal(t, 2, p.Quantity)
}

func TestSubmitFinishedClampsQuantityAtZero(t *testing.T) {
	env := testutil.NewEnv(t)
	op := env.SeedUser(t, entity.RoleOperator)
	env.SeedProduct(t, "STATUE-DOG-25", entity.ProductStatusPainting, 2)

	_, err := env.Services.Production.Submit(op.ID, service.SubmitLogRequest{
		Products: []service.ProductEntryInput{
			{ProductCode: "STATUE-DOG-25", Action: entity.ActionFinished, Quantity: 5},
		},
	})
	require.NoError(t, err)

	p, err := env.Repos.Product.GetByCode("STATUE-DOG-25")
	require.NoError(t, err)
	assert.Equal(t, entity.ProductStatusFinished, p.Status)
	assert.Equal(t, 0, p.Quantity)
}

func TestSubmitValidation(t *testing.T) {
	env := testutil.NewEnv(t)
	op := env.SeedUser(t, entity.RoleOperator)

	var ve *entity.ValidationError

	_, err := env.Services.Production.Submit(op.ID, service.SubmitLogRequest{})
	require.ErrorAs(t, err, &ve)

	_, err = env.Services.Production.Submit(op.ID, service.SubmitLogRequest{
		Shift: "graveyard",
		Products: []service.ProductEntryInput{
			{ProductCode: "X", Action: entity.ActionStarted},
		},
	})
	require.ErrorAs(t, err, &ve)

	_, err = env.Services.Production.Submit(op.ID, service.SubmitLogRequest{
		Products: []service.ProductEntryInput{
			{ProductCode: "X", Action: "melted"},
		},
	})
	require.ErrorAs(t, err, &ve)

	bad := 120.0
	_, err = env.Services.Production.Submit(op.ID, service.SubmitLogRequest{
		Efficiency: &bad,
		Products: []service.ProductEntryInput{
			{ProductCode: "X", Action: entity.ActionStarted},
		},
	})
	require.ErrorAs(t, err, &ve)
}

func TestSubmitDefaultsShiftToMorning(t *testing.T) {
	env := testutil.NewEnv(t)
	op := env.SeedUser(t, entity.RoleOperator)
	env.SeedProduct(t, "STATUE-FOX-15", entity.ProductStatusMolding, 1)

	log, err := env.Services.Production.Submit(op.ID, service.SubmitLogRequest{
		Products: []service.ProductEntryInput{
			{ProductCode: "STATUE-FOX-15", Action: entity.ActionStarted},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ShiftMorning, log.Shift)
	require.Len(t, log.Products, 1)
	assert.Equal(t, 1, log.Products[0].Quantity)
}

func TestUpdateLogDoesNotReplaySideEffects(t *testing.T) {
	env := testutil.NewEnv(t)
	op := env.SeedUser(t, entity.RoleOperator)
	env.SeedProduct(t, "STATUE-ELK-50", entity.ProductStatusMolding, 1)
	env.SeedMaterial(t, "RESIN-CLEAR", 100, 10)

	log, err := env.Services.Production.Submit(op.ID, service.SubmitLogRequest{
		Products: []service.ProductEntryInput{
			{ProductCode: "STATUE-ELK-50", Action: entity.ActionStarted},
		},
		MaterialsUsed: []service.MaterialUsageInput{
			{MaterialCode: "RESIN-CLEAR", Quantity: 20},
		},
	})
	require.NoError(t, err)

	shift := entity.ShiftNight
	_, err = env.Services.Production.Update(log.ID, service.UpdateLogRequest{Shift: &shift})
	require.NoError(t, err)

	m, err := env.Repos.Material.GetByCode("RESIN-CLEAR")
	require.NoError(t, err)
	assert.Equal(t, 80.0, m.CurrentStock)

	got, err := env.Services.Production.Get(log.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ShiftNight, got.Shift)
}
