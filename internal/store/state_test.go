package store

import (
	"testing"
	"time"

	"github.com/theirongolddev/seasfin/internal/model"
)

func fixedClock() func() time.Time {
	t := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time { return t }
}

func TestAddEmployeeAssignsSequentialIDs(t *testing.T) {
	st := New(WithClock(fixedClock()))

	a := st.AddEmployee(model.Employee{Name: "Ada", LaborCategory: "Analyst"})
	b := st.AddEmployee(model.Employee{Name: "Bo", LaborCategory: "Analyst"})
	if a.ID != 1 || b.ID != 2 {
		t.Fatalf("ids = %d,%d, want 1,2", a.ID, b.ID)
	}
	if !a.CreatedAt.Equal(fixedClock()()) {
		t.Fatalf("CreatedAt = %v, want clock time", a.CreatedAt)
	}

	got := st.Employees()
	if len(got) != 2 || got[0].Name != "Ada" || got[1].Name != "Bo" {
		t.Fatalf("Employees() = %+v, want insertion order", got)
	}
}

func TestNextIDUsesMaxNotLength(t *testing.T) {
	st := New(WithClock(fixedClock()))
	st.Restore(Snapshot{Expenses: []model.Expense{{ID: 7, Category: "Travel"}, {ID: 3, Category: "Software"}}})

	e := st.AddExpense(model.Expense{Category: "Travel", Amount: 10})
	if e.ID != 8 {
		t.Fatalf("new expense id = %d, want 8", e.ID)
	}
	got := st.Expenses()
	if got[0].ID != 7 || got[1].ID != 3 {
		t.Fatalf("existing ids changed: %d,%d", got[0].ID, got[1].ID)
	}
}

func TestUpsertIndirectReplacesByKey(t *testing.T) {
	st := New(WithClock(fixedClock()))

	first, _ := model.NewIndirectCostPeriod("2025-01", 100, 0, 0)
	other, _ := model.NewIndirectCostPeriod("2025-02", 50, 0, 0)
	second, _ := model.NewIndirectCostPeriod("2025-01", 150, 50, 0)

	st.UpsertIndirect(first)
	st.UpsertIndirect(other)
	st.UpsertIndirect(second)

	periods := st.IndirectPeriods()
	if len(periods) != 2 {
		t.Fatalf("len(periods) = %d, want 2", len(periods))
	}
	count := 0
	for _, p := range periods {
		if p.Period == "2025-01" {
			count++
			if p.Total != 200 {
				t.Fatalf("2025-01 total = %.0f, want 200", p.Total)
			}
		}
	}
	if count != 1 {
		t.Fatalf("2025-01 records = %d, want 1", count)
	}
	if periods[1].Period != "2025-01" {
		t.Fatalf("replaced period at position %q, want it last", periods[1].Period)
	}
	if st.Count(IndirectCosts) != 2 {
		t.Fatalf("Count(IndirectCosts) = %d, want 2", st.Count(IndirectCosts))
	}
}

func TestAddODCAssignsRef(t *testing.T) {
	st := New(WithClock(fixedClock()))
	item := st.AddODC(model.ODCItem{Description: "Laptop", Amount: 1800})
	if item.Ref == "" {
		t.Fatal("Ref is empty, want generated key")
	}
	kept := st.AddODC(model.ODCItem{Ref: "po-17", Description: "Course", Amount: 3000})
	if kept.Ref != "po-17" {
		t.Fatalf("Ref = %q, want po-17", kept.Ref)
	}
	if item.Date.IsZero() {
		t.Fatal("Date not defaulted")
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	st := New(WithClock(fixedClock()))
	st.AddEmployee(model.Employee{Name: "Ada", LaborCategory: "Analyst"})
	st.SetBudgetCategory("Personnel", 1)
	st.SetBudgetCategory("Cloud", 500)

	st.Reset()

	if st.Count(Employees) != 0 {
		t.Fatalf("employees after reset = %d, want 0", st.Count(Employees))
	}
	b := st.Budget()
	if len(b) != 5 || b[0].Allocated != 80000 {
		t.Fatalf("budget after reset = %+v, want defaults", b)
	}
	if st.Project().TotalBudget != 153000 {
		t.Fatalf("TotalBudget = %.0f, want 153000", st.Project().TotalBudget)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	st := New(WithClock(fixedClock()))
	st.AddEnhancedEmployee(model.EnhancedEmployee{
		Name: "Kim", LCAT: "SRE",
		Monthly: []model.MonthlyActual{{Month: "01/25", Hours: 160}},
	})
	snap := st.Snapshot()
	snap.EnhancedEmployees[0].Monthly[0].Hours = 1

	if got := st.EnhancedEmployees()[0].Monthly[0].Hours; got != 160 {
		t.Fatalf("state mutated through snapshot: hours = %.0f", got)
	}
}
