package pipeline

import (
	"math"
	"testing"
	"time"

	"github.com/theirongolddev/seasfin/internal/model"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func expenses(pairs ...any) []model.Expense {
	var out []model.Expense
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, model.Expense{Category: pairs[i].(string), Amount: pairs[i+1].(float64)})
	}
	return out
}

func TestFinancialSummaryUtilization(t *testing.T) {
	ex := expenses("Travel", 1000.0, "Software", 500.0, "Travel", 250.0)
	s := FinancialSummary(10000, ex, []model.Revenue{{Amount: 300}})

	if s.TotalExpenses != 1750 {
		t.Fatalf("TotalExpenses = %.2f, want 1750", s.TotalExpenses)
	}
	if s.RemainingBudget != 8250 {
		t.Fatalf("RemainingBudget = %.2f, want 8250", s.RemainingBudget)
	}
	if !almostEqual(s.BudgetUtilization, 17.5) {
		t.Fatalf("BudgetUtilization = %v, want 17.5", s.BudgetUtilization)
	}
	if s.TotalRevenue != 300 {
		t.Fatalf("TotalRevenue = %.2f, want 300", s.TotalRevenue)
	}
}

func TestFinancialSummaryZeroBudget(t *testing.T) {
	s := FinancialSummary(0, expenses("Travel", 400.0), nil)
	if s.BudgetUtilization != 0 {
		t.Fatalf("BudgetUtilization = %v, want 0", s.BudgetUtilization)
	}
	if s.RemainingBudget != -400 {
		t.Fatalf("RemainingBudget = %.2f, want -400", s.RemainingBudget)
	}
}

func TestExpenseByCategoryConservesTotal(t *testing.T) {
	ex := expenses("Travel", 10.5, "Software", 3.25, "Travel", 4.0, "Equipment", 100.0, "Software", 0.25)
	groups := ExpenseByCategory(ex)

	if len(groups) != 3 {
		t.Fatalf("len(groups) = %d, want 3", len(groups))
	}
	if groups[0].Category != "Travel" || groups[1].Category != "Software" || groups[2].Category != "Equipment" {
		t.Fatalf("group order = %+v, want first-seen order", groups)
	}

	var sum, total float64
	for _, g := range groups {
		sum += g.Amount
	}
	for _, e := range ex {
		total += e.Amount
	}
	if !almostEqual(sum, total) {
		t.Fatalf("sum of groups = %v, want %v", sum, total)
	}
}

func TestExpenseByCategoryEmpty(t *testing.T) {
	if got := ExpenseByCategory(nil); len(got) != 0 {
		t.Fatalf("ExpenseByCategory(nil) = %+v, want empty", got)
	}
}

func TestTopCategories(t *testing.T) {
	groups := ExpenseByCategory(expenses("A", 1.0, "B", 5.0, "C", 3.0))
	top := TopCategories(groups, 2)
	if len(top) != 2 || top[0].Category != "B" || top[1].Category != "C" {
		t.Fatalf("TopCategories = %+v, want B,C", top)
	}
	if groups[0].Category != "A" {
		t.Fatal("TopCategories reordered its input")
	}
}

func TestBudgetVsActual(t *testing.T) {
	cats := []model.BudgetCategory{{Name: "Travel", Allocated: 1000}, {Name: "Software", Allocated: 0}}
	lines := BudgetVsActual(cats, expenses("Travel", 250.0, "Catering", 40.0))

	if len(lines) != 3 {
		t.Fatalf("len(lines) = %d, want 3", len(lines))
	}
	if lines[0].Remaining != 750 || lines[0].UsedPercent != 25 {
		t.Fatalf("Travel line = %+v", lines[0])
	}
	if lines[1].UsedPercent != 0 {
		t.Fatalf("Software UsedPercent = %v, want 0", lines[1].UsedPercent)
	}
	if lines[2].Category != "Catering" || lines[2].Allocated != 0 || lines[2].Spent != 40 {
		t.Fatalf("unallocated line = %+v", lines[2])
	}
}

func TestBurnRate(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	if got := BurnRate(9000, start, start.AddDate(0, 0, 10)); got != 9000 {
		t.Fatalf("BurnRate within first month = %v, want 9000", got)
	}
	if got := BurnRate(9000, start, start.AddDate(0, 0, 92)); got != 3000 {
		t.Fatalf("BurnRate after three months = %v, want 3000", got)
	}
	if got := BurnRate(500, time.Time{}, start); got != 500 {
		t.Fatalf("BurnRate with no start = %v, want 500", got)
	}
}
