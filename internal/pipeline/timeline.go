package pipeline

import (
	"math"
	"time"

	"github.com/theirongolddev/seasfin/internal/model"
)

const day = 24 * time.Hour

// Timeline reports how far now is through the project's schedule.
func Timeline(p model.ProjectSettings, now time.Time) model.TimelineProgress {
	t := model.TimelineProgress{
		TotalDays:   int(p.EndDate.Sub(p.StartDate) / day),
		ElapsedDays: int(now.Sub(p.StartDate) / day),
	}
	if rem := int(p.EndDate.Sub(now) / day); rem > 0 {
		t.RemainingDays = rem
	}
	if t.TotalDays > 0 {
		pct := float64(t.ElapsedDays) / float64(t.TotalDays) * 100
		t.ProgressPercent = math.Min(math.Max(pct, 0), 100)
	}
	return t
}

// EfficiencyScore relates budget utilization to schedule progress, both in
// percent. A score above 100 means money is being spent faster than time.
func EfficiencyScore(budgetUtil, timeProgress float64) model.Efficiency {
	var e model.Efficiency
	if timeProgress > 0 {
		e.Score = budgetUtil / timeProgress * 100
	}
	switch {
	case e.Score <= 100:
		e.Status = model.EfficiencyOnTrack
	case e.Score <= 120:
		e.Status = model.EfficiencySlightlyBehind
	default:
		e.Status = model.EfficiencyBehind
	}
	switch {
	case budgetUtil > 100:
		e.BudgetRisk = "Budget overrun risk"
	case budgetUtil > 85:
		e.BudgetRisk = "Monitor budget closely"
	default:
		e.BudgetRisk = "Budget on track"
	}
	return e
}

// TimelineRisk classifies the days left until the project end date.
func TimelineRisk(daysRemaining int) string {
	switch {
	case daysRemaining < 30:
		return model.RiskHigh
	case daysRemaining < 90:
		return model.RiskModerate
	default:
		return model.RiskLow
	}
}

// Recommendations lists follow-up actions suggested by the current figures.
func Recommendations(s model.FinancialSummary, f model.BudgetForecast, employeeCount, daysRemaining int) []string {
	var out []string
	if s.BudgetUtilization > 90 {
		out = append(out, "Review and optimize spending in high-cost categories")
	}
	if f.VariancePct > 5 {
		out = append(out, "Consider budget reallocation or scope adjustments")
	}
	if employeeCount == 0 {
		out = append(out, "Add team members to improve project tracking accuracy")
	}
	if daysRemaining < 30 {
		out = append(out, "Prioritize remaining deliverables before the end date")
	}
	if len(out) == 0 {
		out = append(out, "Project is on track; keep monitoring budget and timeline")
	}
	return out
}
