// Package pipeline derives financial metrics from project records. Every
// function is pure: inputs are passed explicitly and never mutated.
package pipeline

import (
	"math"
	"sort"
	"time"

	"github.com/theirongolddev/seasfin/internal/model"
)

// FinancialSummary computes the budget position from recorded expenses and revenue.
func FinancialSummary(totalBudget float64, expenses []model.Expense, revenue []model.Revenue) model.FinancialSummary {
	s := model.FinancialSummary{TotalBudget: totalBudget}
	for _, e := range expenses {
		s.TotalExpenses += e.Amount
	}
	for _, r := range revenue {
		s.TotalRevenue += r.Amount
	}
	s.RemainingBudget = totalBudget - s.TotalExpenses
	if totalBudget > 0 {
		s.BudgetUtilization = s.TotalExpenses / totalBudget * 100
	}
	return s
}

// ExpenseByCategory sums expenses per category. Groups appear in the order
// their category is first seen; use TopCategories for a ranked view.
func ExpenseByCategory(expenses []model.Expense) []model.CategoryTotal {
	idx := make(map[string]int)
	var out []model.CategoryTotal
	for _, e := range expenses {
		i, ok := idx[e.Category]
		if !ok {
			i = len(out)
			idx[e.Category] = i
			out = append(out, model.CategoryTotal{Category: e.Category})
		}
		out[i].Amount += e.Amount
	}
	return out
}

// TopCategories returns up to n groups ordered by amount descending.
// n <= 0 returns all groups.
func TopCategories(groups []model.CategoryTotal, n int) []model.CategoryTotal {
	sorted := append([]model.CategoryTotal(nil), groups...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Amount > sorted[j].Amount
	})
	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// BudgetVsActual lines up each allocated category against its spend.
// Categories with spend but no allocation are appended after the allocated ones.
func BudgetVsActual(categories []model.BudgetCategory, expenses []model.Expense) []model.BudgetLine {
	spent := make(map[string]float64)
	for _, g := range ExpenseByCategory(expenses) {
		spent[g.Category] = g.Amount
	}

	seen := make(map[string]struct{}, len(categories))
	lines := make([]model.BudgetLine, 0, len(categories))
	for _, c := range categories {
		seen[c.Name] = struct{}{}
		lines = append(lines, budgetLine(c.Name, c.Allocated, spent[c.Name]))
	}
	for _, g := range ExpenseByCategory(expenses) {
		if _, ok := seen[g.Category]; ok {
			continue
		}
		lines = append(lines, budgetLine(g.Category, 0, g.Amount))
	}
	return lines
}

func budgetLine(name string, allocated, spent float64) model.BudgetLine {
	l := model.BudgetLine{
		Category:  name,
		Allocated: allocated,
		Spent:     spent,
		Remaining: allocated - spent,
	}
	if allocated > 0 {
		l.UsedPercent = spent / allocated * 100
	}
	return l
}

// avgDaysPerMonth converts elapsed days into months for burn rates.
const avgDaysPerMonth = 30.44

// BurnRate returns the average cost per month between start and now,
// counting at least one month.
func BurnRate(totalCost float64, start, now time.Time) float64 {
	months := 1.0
	if !start.IsZero() && now.After(start) {
		months = math.Max(1, math.Floor(now.Sub(start).Hours()/24/avgDaysPerMonth))
	}
	return totalCost / months
}
