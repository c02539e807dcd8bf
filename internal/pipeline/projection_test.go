package pipeline

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/theirongolddev/seasfin/internal/model"
)

func TestMonthlyTrendNonNegativeAndSeasonal(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 7))
	trend := MonthlyTrend(120000, rng)

	if trend.Base != 10000 {
		t.Fatalf("Base = %v, want 10000", trend.Base)
	}
	if len(trend.Points) != TrendMonths {
		t.Fatalf("len(points) = %d, want %d", len(trend.Points), TrendMonths)
	}
	var sum float64
	for i, p := range trend.Points {
		if p.Spending < 0 {
			t.Fatalf("month %d spending = %v, want >= 0", p.Month, p.Spending)
		}
		if p.Month != i+1 {
			t.Fatalf("point %d Month = %d", i, p.Month)
		}
		sum += p.Spending
	}
	mean := sum / TrendMonths
	if math.Abs(mean-10000) > 1500 {
		t.Fatalf("mean = %v, want close to 10000", mean)
	}
}

func TestMonthlyTrendSeeded(t *testing.T) {
	a := MonthlyTrend(5000, rand.New(rand.NewPCG(1, 2)))
	b := MonthlyTrend(5000, rand.New(rand.NewPCG(1, 2)))
	for i := range a.Points {
		if a.Points[i] != b.Points[i] {
			t.Fatalf("point %d differs with same seed: %v vs %v", i, a.Points[i], b.Points[i])
		}
	}
}

func TestMonthlyTrendZeroExpenses(t *testing.T) {
	trend := MonthlyTrend(0, rand.New(rand.NewPCG(3, 4)))
	for _, p := range trend.Points {
		if p.Spending != 0 {
			t.Fatalf("spending = %v, want 0 with no expenses", p.Spending)
		}
	}
}

func TestForecastBudgetRisk(t *testing.T) {
	trend := model.Trend{Points: []model.TrendPoint{{Spending: 60000}, {Spending: 55000}}}

	if f := ForecastBudget(trend, 100000); f.Risk != model.RiskHigh || !almostEqual(f.VariancePct, 15) {
		t.Fatalf("forecast = %+v, want High at 15%%", f)
	}
	if f := ForecastBudget(trend, 108000); f.Risk != model.RiskModerate {
		t.Fatalf("risk = %s, want Moderate", f.Risk)
	}
	if f := ForecastBudget(trend, 0); f.VariancePct != 0 || f.Risk != model.RiskLow {
		t.Fatalf("zero budget forecast = %+v", f)
	}
}

func TestProjectCompounding(t *testing.T) {
	team := []model.EnhancedEmployee{
		{LCAT: "PM", CurrentSalary: 100000},
		{LCAT: "SRE", CurrentSalary: 100000},
	}
	p := Project(team, model.ProjectionParams{Months: 12, SalaryIncrease: 3, Inflation: 2})

	want := 200000 * 1.03 * 1.02
	if math.Abs(p.AnnualCost-want) > 1e-6 {
		t.Fatalf("AnnualCost = %v, want %v", p.AnnualCost, want)
	}
	if len(p.Monthly) != 12 || p.Monthly[0].Month != 1 {
		t.Fatalf("monthly rows = %d", len(p.Monthly))
	}
	if p.TeamSize != 2 {
		t.Fatalf("TeamSize = %v, want 2 without attrition", p.TeamSize)
	}
	if !almostEqual(p.AvgCostPerEmployee, p.AnnualCost/2) {
		t.Fatalf("AvgCostPerEmployee = %v", p.AvgCostPerEmployee)
	}
}

func TestProjectAttritionAndHires(t *testing.T) {
	team := []model.EnhancedEmployee{
		{LCAT: "PM", CurrentSalary: 120000},
		{LCAT: "SRE", CurrentSalary: 60000},
		{LCAT: "SRE", CurrentSalary: 60000},
	}
	p := Project(team, model.ProjectionParams{Months: 6, Attrition: 12, NewHires: 3})

	size := 3.0
	for m := 1; m <= 6; m++ {
		if m > 1 {
			size *= 1 - 0.01
		}
		size += 0.5
	}
	if math.Abs(p.TeamSize-size) > 1e-9 {
		t.Fatalf("TeamSize = %v, want %v", p.TeamSize, size)
	}
	if p.Monthly[0].TeamSize != 3.5 {
		t.Fatalf("month 1 team size = %v, want 3.5 (no attrition in month 1)", p.Monthly[0].TeamSize)
	}
	if want := 240000.0 + 3*80000; math.Abs(p.AnnualCost-want) > 1e-6 {
		t.Fatalf("AnnualCost = %v, want %v", p.AnnualCost, want)
	}
	if len(p.LCATBreakdown) != 2 || p.LCATBreakdown[0].LCAT != "PM" {
		t.Fatalf("LCATBreakdown = %+v", p.LCATBreakdown)
	}
	if math.Abs(p.LCATBreakdown[1].Count-2*size/3) > 1e-9 {
		t.Fatalf("SRE share = %v, want %v", p.LCATBreakdown[1].Count, 2*size/3)
	}
}

func TestProjectEmptyTeam(t *testing.T) {
	p := Project(nil, model.ProjectionParams{Months: 12})
	if p.AnnualCost != 0 || len(p.Monthly) != 0 {
		t.Fatalf("empty projection = %+v", p)
	}
}
