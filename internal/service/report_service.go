package service

import (
	"time"

	"github.com/Mouasahmedislem/paintello-atelier/internal/model/entity"
	"github.com/Mouasahmedislem/paintello-atelier/internal/repository"
)

// ReportService 只读聚合，每次请求从源集合重算，不做缓存
type ReportService struct {
	logs      *repository.ProductionLogRepository
	products  *repository.ProductRepository
	materials *repository.MaterialRepository
}

func NewReportService(
	logs *repository.ProductionLogRepository,
	products *repository.ProductRepository,
	materials *repository.MaterialRepository,
) *ReportService {
	return &ReportService{logs: logs, products: products, materials: materials}
}

// MaterialConsumption 窗口内单个物料的消耗合计
type MaterialConsumption struct {
	MaterialCode string  `json:"material_code"`
	MaterialName string  `json:"material_name"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
	Cost         float64 `json:"cost"`
}

// PeriodSummary 某时间窗口的生产汇总
type PeriodSummary struct {
	Start          string                  `json:"start"`
	End            string                  `json:"end"`
	TotalLogs      int                     `json:"total_logs"`
	TotalProducts  int                     `json:"total_products"` // 涉及的不同产品数
	TotalEntries   int                     `json:"total_entries"`
	Finished       int                     `json:"finished"`
	CompletionRate float64                 `json:"completion_rate"` // finished/entries, 百分比
	ByAction       map[string]int          `json:"by_action"`
	MaterialsUsed  []MaterialConsumption   `json:"materials_used"`
	StatusSnapshot []repository.StatusStat `json:"status_snapshot"` // 当前产品状态分布，非窗口内
	LowStock       []entity.Material       `json:"low_stock"`
}

const dateLayout = "2006-01-02"

// summarize 窗口扫描聚合。分母为零时比率报 0 而非错误
func (s *ReportService) summarize(from, to time.Time) (*PeriodSummary, error) {
	logs, err := s.logs.ListBetween(from, to)
	if err != nil {
		return nil, err
	}

	summary := &PeriodSummary{
		Start:    from.Format(dateLayout),
		End:      to.Add(-time.Nanosecond).Format(dateLayout),
		ByAction: map[string]int{},
	}
	summary.TotalLogs = len(logs)

	productSet := map[string]bool{}
	consumption := map[string]*MaterialConsumption{}
	var consumptionOrder []string

	for i := range logs {
		for _, pe := range logs[i].Products {
			productSet[pe.ProductCode] = true
			summary.ByAction[pe.Action]++
			summary.TotalEntries++
			if pe.Action == entity.ActionFinished {
				summary.Finished++
			}
		}
		for _, mu := range logs[i].Materials {
			mc, ok := consumption[mu.MaterialCode]
			if !ok {
				mc = &MaterialConsumption{
					MaterialCode: mu.MaterialCode,
					MaterialName: mu.MaterialName,
					Unit:         mu.Unit,
				}
				consumption[mu.MaterialCode] = mc
				consumptionOrder = append(consumptionOrder, mu.MaterialCode)
			}
			mc.Quantity += mu.Quantity
		}
	}

	summary.TotalProducts = len(productSet)
	if summary.TotalEntries > 0 {
		summary.CompletionRate = float64(summary.Finished) / float64(summary.TotalEntries) * 100
	}

	for _, code := range consumptionOrder {
		mc := consumption[code]
		if m, err := s.materials.GetByCode(code); err == nil {
			mc.Cost = mc.Quantity * m.UnitCost
		}
		summary.MaterialsUsed = append(summary.MaterialsUsed, *mc)
	}

	byStatus, err := s.products.StatsByStatus()
	if err != nil {
		return nil, err
	}
	summary.StatusSnapshot = byStatus

	lowStock, err := s.materials.ListLowStock()
	if err != nil {
		return nil, err
	}
	summary.LowStock = lowStock

	return summary, nil
}

// Daily 当日汇总
func (s *ReportService) Daily(day time.Time) (*PeriodSummary, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return s.summarize(start, start.AddDate(0, 0, 1))
}

// Weekly 周一起算的当周汇总
func (s *ReportService) Weekly(ref time.Time) (*PeriodSummary, error) {
	start := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
	weekday := int(start.Weekday())
	if weekday == 0 {
		weekday = 7 // 周日归入上周
	}
	start = start.AddDate(0, 0, -(weekday - 1))
	return s.summarize(start, start.AddDate(0, 0, 7))
}

// Monthly 当月汇总
func (s *ReportService) Monthly(ref time.Time) (*PeriodSummary, error) {
	start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	return s.summarize(start, start.AddDate(0, 1, 0))
}

// ConsumptionReport 物料消耗报表
type ConsumptionReport struct {
	Start         string                `json:"start"`
	End           string                `json:"end"`
	TotalQuantity float64               `json:"total_quantity"`
	TotalCost     float64               `json:"total_cost"`
	Consumption   []MaterialConsumption `json:"consumption"`
}

// MaterialConsumptionReport 默认最近30天
func (s *ReportService) MaterialConsumptionReport(from, to *time.Time) (*ConsumptionReport, error) {
	end := time.Now()
	if to != nil {
		end = *to
	}
	start := end.AddDate(0, 0, -30)
	if from != nil {
		start = *from
	}

	summary, err := s.summarize(start, end)
	if err != nil {
		return nil, err
	}

	report := &ConsumptionReport{
		Start:       start.Format(dateLayout),
		End:         end.Format(dateLayout),
		Consumption: summary.MaterialsUsed,
	}
	for _, mc := range summary.MaterialsUsed {
		report.TotalQuantity += mc.Quantity
		report.TotalCost += mc.Cost
	}
	return report, nil
}

// OperatorProductivity 单个操作员的窗口产出
type OperatorProductivity struct {
	OperatorID    string  `json:"operator_id"`
	Operator      string  `json:"operator"`
	Logs          int     `json:"logs"`
	TotalEntries  int     `json:"total_entries"`
	Finished      int     `json:"finished"`
	AvgEfficiency float64 `json:"avg_efficiency"`
}

// ProductivityReport 效率报表
type ProductivityReport struct {
	Start             string                 `json:"start"`
	End               string                 `json:"end"`
	TotalOperators    int                    `json:"total_operators"`
	TotalLogs         int                    `json:"total_logs"`
	TotalFinished     int                    `json:"total_finished"`
	OverallEfficiency float64                `json:"overall_efficiency"`
	Operators         []OperatorProductivity `json:"operator_productivity"`
}

func (s *ReportService) Productivity(from, to time.Time) (*ProductivityReport, error) {
	logs, err := s.logs.ListBetween(from, to)
	if err != nil {
		return nil, err
	}

	report := &ProductivityReport{
		Start:     from.Format(dateLayout),
		End:       to.Add(-time.Nanosecond).Format(dateLayout),
		TotalLogs: len(logs),
	}

	perOperator := map[string]*OperatorProductivity{}
	var order []string
	var effSum float64
	var effCount int

	for i := range logs {
		log := &logs[i]
		op, ok := perOperator[log.OperatorID]
		if !ok {
			op = &OperatorProductivity{OperatorID: log.OperatorID}
			if log.Operator != nil {
				op.Operator = log.Operator.Username
			}
			perOperator[log.OperatorID] = op
			order = append(order, log.OperatorID)
		}
		op.Logs++
		for _, pe := range log.Products {
			op.TotalEntries++
			if pe.Action == entity.ActionFinished {
				op.Finished++
				report.TotalFinished++
			}
		}
		if log.Efficiency != nil {
			effSum += *log.Efficiency
			effCount++
		}
	}

	if effCount > 0 {
		report.OverallEfficiency = effSum / float64(effCount)
	}

	for _, id := range order {
		op := perOperator[id]
		var sum float64
		var n int
		for i := range logs {
			if logs[i].OperatorID == id && logs[i].Efficiency != nil {
				sum += *logs[i].Efficiency
				n++
			}
		}
		if n > 0 {
			op.AvgEfficiency = sum / float64(n)
		}
		report.Operators = append(report.Operators, *op)
	}
	report.TotalOperators = len(report.Operators)

	return report, nil
}

// Performance 最近7天完成率与效率
type Performance struct {
	Start          string  `json:"start"`
	End            string  `json:"end"`
	TotalLogs      int     `json:"total_logs"`
	TotalEntries   int     `json:"total_entries"`
	Finished       int     `json:"finished"`
	CompletionRate float64 `json:"completion_rate"`
	AvgEfficiency  float64 `json:"avg_efficiency"`
}

func (s *ReportService) WeeklyPerformance() (*Performance, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -7)
	logs, err := s.logs.ListBetween(start, end)
	if err != nil {
		return nil, err
	}

	perf := &Performance{
		Start:     start.Format(dateLayout),
		End:       end.Format(dateLayout),
		TotalLogs: len(logs),
	}
	var effSum float64
	var effCount int
	for i := range logs {
		for _, pe := range logs[i].Products {
			perf.TotalEntries++
			if pe.Action == entity.ActionFinished {
				perf.Finished++
			}
		}
		if logs[i].Efficiency != nil {
			effSum += *logs[i].Efficiency
			effCount++
		}
	}
	if perf.TotalEntries > 0 {
		perf.CompletionRate = float64(perf.Finished) / float64(perf.TotalEntries) * 100
	}
	if effCount > 0 {
		perf.AvgEfficiency = effSum / float64(effCount)
	}
	return perf, nil
}
