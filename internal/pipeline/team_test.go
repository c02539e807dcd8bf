package pipeline

import (
	"testing"
	"time"

	"github.com/theirongolddev/seasfin/internal/model"
)

func TestTeamCostSummaryVariance(t *testing.T) {
	team := []model.EnhancedEmployee{
		{Name: "A", LCAT: "PM", PricedSalary: 120000, CurrentSalary: 125000, HoursPerMonth: 160},
		{Name: "B", LCAT: "SRE", PricedSalary: 80000, CurrentSalary: 85000, HoursPerMonth: 160},
	}
	s := TeamCostSummary(team)

	if s.CostVariance != 10000 {
		t.Fatalf("CostVariance = %.0f, want 10000", s.CostVariance)
	}
	if !almostEqual(s.CostVariancePct, 5.0) {
		t.Fatalf("CostVariancePct = %v, want 5.0", s.CostVariancePct)
	}
	want := 210000.0 / 12 / 320
	if !almostEqual(s.AverageHourlyRate, want) {
		t.Fatalf("AverageHourlyRate = %v, want %v", s.AverageHourlyRate, want)
	}
}

func TestTeamCostSummaryGuards(t *testing.T) {
	s := TeamCostSummary([]model.EnhancedEmployee{{CurrentSalary: 5000}})
	if s.AverageHourlyRate != 0 {
		t.Fatalf("AverageHourlyRate = %v, want 0 with zero hours", s.AverageHourlyRate)
	}
	if s.CostVariancePct != 0 {
		t.Fatalf("CostVariancePct = %v, want 0 with zero priced", s.CostVariancePct)
	}
	if s.CostVariance != 5000 {
		t.Fatalf("CostVariance = %v, want 5000", s.CostVariance)
	}
}

func TestEmployeeCosts(t *testing.T) {
	costs := EmployeeCosts([]model.EnhancedEmployee{
		{Name: "A", PricedSalary: 120000, CurrentSalary: 132000, HoursPerMonth: 80},
		{Name: "B"},
	})
	a := costs[0]
	if a.BudgetedMonthly != 10000 || a.ActualMonthly != 11000 {
		t.Fatalf("monthly = %v/%v, want 10000/11000", a.BudgetedMonthly, a.ActualMonthly)
	}
	if !almostEqual(a.VariancePct, 10) {
		t.Fatalf("VariancePct = %v, want 10", a.VariancePct)
	}
	if a.PricedHourly != 125 || a.HoursUtilization != 50 {
		t.Fatalf("hourly/utilization = %v/%v, want 125/50", a.PricedHourly, a.HoursUtilization)
	}
	if costs[1].VariancePct != 0 || costs[1].CurrentHourly != 0 {
		t.Fatalf("zero member = %+v, want guarded zeros", costs[1])
	}
}

func TestCostTrend(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	trend := CostTrend([]model.EnhancedEmployee{{PricedSalary: 120000, CurrentSalary: 120000}}, now)

	if len(trend) != 6 {
		t.Fatalf("len(trend) = %d, want 6", len(trend))
	}
	last := trend[5]
	if last.Period != "2025-06" || last.Budgeted != 10000 {
		t.Fatalf("latest point = %+v, want 2025-06 at base", last)
	}
	if !almostEqual(trend[0].Actual, 10000*1.125) {
		t.Fatalf("oldest actual = %v, want %v", trend[0].Actual, 10000*1.125)
	}
	if CostTrend(nil, now) != nil {
		t.Fatal("CostTrend(nil) should be nil")
	}
}

func TestTeamAnalytics(t *testing.T) {
	roster := []model.Employee{
		{Name: "A", Department: "Engineering", LaborCategory: "Analyst", Status: "Active", Salary: 50000},
		{Name: "B", Department: "Engineering", LaborCategory: "Consultant", Status: "On Leave", Salary: 70000},
		{Name: "C", Department: "Finance", LaborCategory: "Analyst", Status: "Active", Salary: 90000},
		{Name: "D", Department: "HR", LaborCategory: "Analyst", Status: "Active", Salary: 110000},
	}
	a := TeamAnalytics(roster)

	if a.Headcount != 4 || a.Active != 3 || a.Departments != 3 {
		t.Fatalf("counts = %d/%d/%d, want 4/3/3", a.Headcount, a.Active, a.Departments)
	}
	if a.MedianSalary != 80000 || a.MinSalary != 50000 || a.MaxSalary != 110000 || a.AverageSalary != 80000 {
		t.Fatalf("salary stats = %+v", a)
	}
	if a.ByDepartment[0].Label != "Engineering" || a.ByDepartment[0].Count != 2 {
		t.Fatalf("ByDepartment[0] = %+v, want Engineering/2", a.ByDepartment[0])
	}
	if a.ByCategory[0].Label != "Analyst" || a.ByCategory[0].Count != 3 {
		t.Fatalf("ByCategory[0] = %+v, want Analyst/3", a.ByCategory[0])
	}
}

func TestFilterEmployees(t *testing.T) {
	roster := []model.Employee{
		{Name: "Ada", Department: "Engineering", Status: "Active", Skills: "Go, SQL"},
		{Name: "Bo", Department: "Finance", Status: "Active"},
		{Name: "Cy", Department: "Engineering", Status: "On Leave"},
	}
	if got := FilterEmployees(roster, EmployeeFilter{Search: "sql"}); len(got) != 1 || got[0].Name != "Ada" {
		t.Fatalf("search sql = %+v, want Ada", got)
	}
	if got := FilterEmployees(roster, EmployeeFilter{Department: "Engineering", Status: "Active"}); len(got) != 1 {
		t.Fatalf("department+status = %d, want 1", len(got))
	}
	if got := FilterEmployees(roster, EmployeeFilter{Search: "engineer"}); len(got) != 2 {
		t.Fatalf("search engineer = %d, want 2", len(got))
	}
}
