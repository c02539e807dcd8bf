package pipeline

import (
	"math"
	"math/rand/v2"
	"sort"

	"github.com/theirongolddev/seasfin/internal/model"
)

// TrendMonths is the length of the simulated spending series.
const TrendMonths = 12

// MonthlyTrend simulates twelve months of spending around the current
// monthly average. Each month applies a sinusoidal seasonal factor and
// Gaussian noise with a standard deviation of 10% of the base, floored at
// zero. The output depends on rng; pass a seeded generator for repeatable runs.
func MonthlyTrend(totalExpenses float64, rng *rand.Rand) model.Trend {
	base := totalExpenses / math.Max(1, TrendMonths)
	t := model.Trend{Base: base, Points: make([]model.TrendPoint, TrendMonths)}
	for i := 0; i < TrendMonths; i++ {
		seasonal := 1 + 0.1*math.Sin(2*math.Pi*float64(i)/12)
		noise := rng.NormFloat64() * base * 0.1
		t.Points[i] = model.TrendPoint{
			Month:    i + 1,
			Spending: math.Max(0, base*seasonal+noise),
		}
	}
	return t
}

// ForecastBudget compares the total of a simulated trend with the budget.
func ForecastBudget(trend model.Trend, totalBudget float64) model.BudgetForecast {
	var f model.BudgetForecast
	for _, p := range trend.Points {
		f.ProjectedTotal += p.Spending
	}
	f.Variance = f.ProjectedTotal - totalBudget
	if totalBudget > 0 {
		f.VariancePct = f.Variance / totalBudget * 100
	}
	switch {
	case f.VariancePct > 10:
		f.Risk = model.RiskHigh
	case f.VariancePct > 5:
		f.Risk = model.RiskModerate
	default:
		f.Risk = model.RiskLow
	}
	return f
}

// monthlyRate converts an annual percent into the equivalent compounding monthly rate.
func monthlyRate(annualPct float64) float64 {
	return math.Pow(1+annualPct/100, 1.0/12) - 1
}

// Project compounds the team's current annual salary cost forward month by
// month. Attrition shrinks the team linearly from the second month, salary
// increase and inflation compound monthly, and new hires are spread evenly
// across the horizon at the team's average current salary. HoursAdjustment is
// carried in the parameters but does not change cost.
func Project(team []model.EnhancedEmployee, p model.ProjectionParams) model.Projection {
	var proj model.Projection
	if len(team) == 0 || p.Months <= 0 {
		return proj
	}

	var totalCost float64
	lcatCounts := make(map[string]int)
	for _, e := range team {
		totalCost += e.CurrentSalary
		lcatCounts[e.LCAT]++
	}
	avgSalary := totalCost / float64(len(team))
	teamSize := float64(len(team))
	monthlyAttrition := p.Attrition / 100 / 12
	salaryStep := monthlyRate(p.SalaryIncrease)
	inflationStep := monthlyRate(p.Inflation)

	proj.Monthly = make([]model.ProjectionPoint, 0, p.Months)
	for month := 1; month <= p.Months; month++ {
		if month > 1 {
			teamSize *= 1 - monthlyAttrition
		}
		totalCost *= 1 + salaryStep
		totalCost *= 1 + inflationStep
		if p.NewHires > 0 {
			hires := p.NewHires / float64(p.Months)
			totalCost += hires * avgSalary
			teamSize += hires
		}
		proj.Monthly = append(proj.Monthly, model.ProjectionPoint{
			Month:     month,
			TotalCost: totalCost,
			TeamSize:  teamSize,
		})
	}

	proj.AnnualCost = totalCost
	proj.TeamSize = teamSize
	if teamSize > 0 {
		proj.AvgCostPerEmployee = totalCost / teamSize
	}

	scale := teamSize / float64(len(team))
	for lcat, n := range lcatCounts {
		proj.LCATBreakdown = append(proj.LCATBreakdown, model.LCATShare{LCAT: lcat, Count: float64(n) * scale})
	}
	sort.Slice(proj.LCATBreakdown, func(i, j int) bool {
		return proj.LCATBreakdown[i].LCAT < proj.LCATBreakdown[j].LCAT
	})
	return proj
}
