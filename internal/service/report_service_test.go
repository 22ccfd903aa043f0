package service_test

import (
	"testing"
	"time"

	"github.com/Mouasahmedislem/paintello-atelier/internal/model/entity"
	"github.com/Mouasahmedislem/paintello-atelier/internal/service"
	"github.com/Mouasahmedislem/paintello-atelier/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailySummaryEmptyDay(t *testing.T) {
	env := testutil.NewEnv(t)

	summary, err := env.Services.Report.Daily(time.Now())
	require.NoError(t, err)
	assert.Zero(t, summary.TotalLogs)
	assert.Zero(t, summary.TotalProducts)
	assert.Zero(t, summary.Finished)
	assert.Zero(t, summary.CompletionRate)
	assert.Empty(t, summary.ByAction)
	assert.Empty(t, summary.MaterialsUsed)
}

func TestDailySummaryAggregates(t *testing.T) {
	env := testutil.NewEnv(t)
	op := env.SeedUser(t, entity.RoleOperator)
	env.SeedProduct(t, "STATUE-VENUS-45", entity.ProductStatusMolding, 4)
	env.SeedProduct(t, "STATUE-LION-60", entity.ProductStatusPainting, 2)
	env.SeedMaterial(t, "CEMENT-WHITE", 1000, 50)

	_, err := env.Services.Production.Submit(op.ID, service.SubmitLogRequest{
		Products: []service.ProductEntryInput{
			{ProductCode: "STATUE-VENUS-45", Action: entity.ActionStarted, Quantity: 2},
			{ProductCode: "STATUE-LION-60", Action: entity.ActionFinished, Quantity: 1},
		},
		MaterialsUsed: []service.MaterialUsageInput{
			{MaterialCode: "CEMENT-WHITE", Quantity: 150},
		},
	})
	require.NoError(t, err)

	_, err = env.Services.Production.Submit(op.ID, service.SubmitLogRequest{
		Shift: entity.ShiftNight,
		Products: []service.ProductEntryInput{
			{ProductCode: "STATUE-VENUS-45", Action: entity.ActionQualityCheck},
		},
		MaterialsUsed: []service.MaterialUsageInput{
			{MaterialCode: "CEMENT-WHITE", Quantity: 50},
		},
	})
	require.NoError(t, err)

	summary, err := env.Services.Report.Daily(time.Now())
	require.NoError(t, err)
	assert.Equal(t, 2, summary.TotalLogs)
	assert.Equal(t, 2, summary.TotalProducts)
	assert.Equal(t, 3, summary.TotalEntries)
	assert.Equal(t, 1, summary.Finished)
	assert.InDelta(t, 100.0/3.0, summary.CompletionRate, 0.01)
	assert.Equal(t, 1, summary.ByAction[entity.ActionStarted])
	assert.Equal(t, 1, summary.ByAction[entity.ActionFinished])
	assert.Equal(t, 1, summary.ByAction[entity.ActionQualityCheck])

	require.Len(t, summary.MaterialsUsed, 1)
	assert.Equal(t, "CEMENT-WHITE", summary.MaterialsUsed[0].MaterialCode)
	assert.Equal(t, 200.0, summary.MaterialsUsed[0].Quantity)
	assert.Equal(t, 500.0, summary.MaterialsUsed[0].Cost) // 200 * 2.5
}

func TestWeeklyWindowStartsMonday(t *testing.T) {
	env := testutil.NewEnv(t)

	// 周三为参照，窗口应从周一开始
	wednesday := time.Date(2026, 8, 26, 15, 0, 0, 0, time.UTC)
	summary, err := env.Services.Report.Weekly(wednesday)
	require.NoError(t, err)
	assert.Equal(t, "2026-08-24", summary.Start)
	assert.Equal(t, "2026-08-30", summary.End)

	sunday := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	summary, err = env.Services.Report.Weekly(sunday)
	require.NoError(t, err)
	assert.Equal(t, "2026-08-24", summary.Start)
}

func TestMonthlyWindow(t *testing.T) {
	env := testutil.NewEnv(t)

	ref := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	summary, err := env.Services.Report.Monthly(ref)
	require.NoError(t, err)
	assert.Equal(t, "2026-02-01", summary.Start)
	assert.Equal(t, "2026-02-28", summary.End)
}

func TestMaterialConsumptionReportTotals(t *testing.T) {
	env := testutil.NewEnv(t)
	op := env.SeedUser(t, entity.RoleOperator)
	env.SeedProduct(t, "STATUE-OWL-20", entity.ProductStatusMolding, 1)
	env.SeedMaterial(t, "CEMENT-GREY", 500, 10)
	env.SeedMaterial(t, "PIGMENT-RED", 100, 10)

	_, err := env.Services.Production.Submit(op.ID, service.SubmitLogRequest{
		Products: []service.ProductEntryInput{
			{ProductCode: "STATUE-OWL-20", Action: entity.ActionStarted},
		},
		MaterialsUsed: []service.MaterialUsageInput{
			{MaterialCode: "CEMENT-GREY", Quantity: 100},
			{MaterialCode: "PIGMENT-RED", Quantity: 4},
		},
	})
	require.NoError(t, err)

	report, err := env.Services.Report.MaterialConsumptionReport(nil, nil)
	require.NoError(t, err)
	require.Len(t, report.Consumption, 2)
	assert.Equal(t, 104.0, report.TotalQuantity)
	assert.Equal(t, 260.0, report.TotalCost) // (100+4) * 2.5
}

func TestProductivityPerOperator(t *testing.T) {
	env := testutil.NewEnv(t)
	op1 := env.SeedUser(t, entity.RoleOperator)
	op2 := env.SeedUser(t, entity.RoleOperator)
	env.SeedProduct(t, "STATUE-CAT-30", entity.ProductStatusMolding, 5)

	eff1, eff2 := 80.0, 60.0
	_, err := env.Services.Production.Submit(op1.ID, service.SubmitLogRequest{
		Efficiency: &eff1,
		Products: []service.ProductEntryInput{
			{ProductCode: "STATUE-CAT-30", Action: entity.ActionFinished, Quantity: 2},
		},
	})
	require.NoError(t, err)
	_, err = env.Services.Production.Submit(op2.ID, service.SubmitLogRequest{
		Efficiency: &eff2,
		Products: []service.ProductEntryInput{
			{ProductCode: "STATUE-CAT-30", Action: entity.ActionQualityCheck},
		},
	})
	require.NoError(t, err)

	now := time.Now()
	report, err := env.Services.Report.Productivity(now.AddDate(0, 0, -1), now.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 2, report.TotalOperators)
	assert.Equal(t, 2, report.TotalLogs)
	assert.Equal(t, 1, report.TotalFinished)
	assert.InDelta(t, 70.0, report.OverallEfficiency, 0.01)

	byID := map[string]int{}
	for _, op := range report.Operators {
		if op.OperatorID == op1.ID {
			byID[op1.ID] = op.Finished
			assert.InDelta(t, 80.0, op.AvgEfficiency, 0.01)
		}
	}
	assert.Equal(t, 1, byID[op1.ID])
}

func TestWeeklyPerformance(t *testing.T) {
	env := testutil.NewEnv(t)
	op := env.SeedUser(t, entity.RoleOperator)
	env.SeedProduct(t, "STATUE-DOG-25", entity.ProductStatusPainting, 3)

	eff := 90.0
	_, err := env.Services.Production.Submit(op.ID, service.SubmitLogRequest{
		Efficiency: &eff,
		Products: []service.ProductEntryInput{
			{ProductCode: "STATUE-DOG-25", Action: entity.ActionFinished, Quantity: 1},
			{ProductCode: "STATUE-DOG-25", Action: entity.ActionQualityCheck},
		},
	})
	require.NoError(t, err)

	perf, err := env.Services.Report.WeeklyPerformance()
	require.NoError(t, err)
	assert.Equal(t, 1, perf.TotalLogs)
	assert.Equal(t, 2, perf.TotalEntries)
	assert.Equal(t, 1, perf.Finished)
	assert.InDelta(t, 50.0, perf.CompletionRate, 0.01)
	assert.InDelta(t, 90.0, perf.AvgEfficiency, 0.01)
}
