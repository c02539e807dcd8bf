package pipeline

import (
	"math/rand/v2"
	"time"

	"github.com/theirongolddev/seasfin/internal/model"
	"github.com/theirongolddev/seasfin/internal/store"
)

// Report bundles every derived view of a workspace at one instant.
type Report struct {
	Now     time.Time
	Project model.ProjectSettings

	Summary    model.FinancialSummary
	Categories []model.CategoryTotal
	Budget     []model.BudgetLine
	BurnRate   float64 // expenses per month since the project start

	Costs       model.CostSummary
	ODCByStatus model.ODCStatusTotals

	Team          model.TeamCostSummary
	EmployeeCosts []model.EmployeeCost
	CostTrend     []model.CostTrendPoint
	Analytics     model.TeamAnalytics

	Trend    model.Trend
	Forecast model.BudgetForecast

	Timeline        model.TimelineProgress
	Efficiency      model.Efficiency
	TimelineRisk    string
	Recommendations []string
}

// BuildReport derives every metric from a snapshot. rng drives the simulated
// spending trend.
func BuildReport(snap store.Snapshot, now time.Time, rng *rand.Rand) Report {
	r := Report{Now: now, Project: snap.Project}

	r.Summary = FinancialSummary(snap.Project.TotalBudget, snap.Expenses, snap.Revenue)
	r.Categories = ExpenseByCategory(snap.Expenses)
	r.Budget = BudgetVsActual(snap.Budget, snap.Expenses)
	r.BurnRate = BurnRate(r.Summary.TotalExpenses, snap.Project.StartDate, now)

	r.Costs = CostSummary(snap.Contract, snap.Employees, snap.ODCItems, snap.IndirectCosts)
	r.ODCByStatus = ODCTotalsByStatus(snap.ODCItems)

	r.Team = TeamCostSummary(snap.EnhancedEmployees)
	r.EmployeeCosts = EmployeeCosts(snap.EnhancedEmployees)
	r.CostTrend = CostTrend(snap.EnhancedEmployees, now)
	r.Analytics = TeamAnalytics(snap.Employees)

	r.Trend = MonthlyTrend(r.Summary.TotalExpenses, rng)
	r.Forecast = ForecastBudget(r.Trend, snap.Project.TotalBudget)

	r.Timeline = Timeline(snap.Project, now)
	r.Efficiency = EfficiencyScore(r.Summary.BudgetUtilization, r.Timeline.ProgressPercent)
	r.TimelineRisk = TimelineRisk(r.Timeline.RemainingDays)
	r.Recommendations = Recommendations(r.Summary, r.Forecast, len(snap.Employees), r.Timeline.RemainingDays)
	return r
}
