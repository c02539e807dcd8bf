// Package store holds the in-memory project state and its SQLite workspace.
package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/theirongolddev/seasfin/internal/model"
)

// Collection names a record collection held by State.
type Collection string

const (
	Employees         Collection = "employees"
	EnhancedEmployees Collection = "enhanced_employees"
	Expenses          Collection = "expenses"
	Revenue           Collection = "revenue"
	ODCItems          Collection = "odc_items"
	IndirectCosts     Collection = "indirect_costs"
)

// Collections lists every collection in display order.
func Collections() []Collection {
	return []Collection{Employees, EnhancedEmployees, Expenses, Revenue, ODCItems, IndirectCosts}
}

// State is the project's working data: the record collections plus the
// singleton settings. It is owned by one caller and is not safe for
// concurrent mutation.
type State struct {
	now func() time.Time

	project  model.ProjectSettings
	budget   []model.BudgetCategory
	contract model.ContractSettings
	rates    model.IndirectRates

	employees []model.Employee
	enhanced  []model.EnhancedEmployee
	expenses  []model.Expense
	revenue   []model.Revenue
	odc       []model.ODCItem

	// Indirect periods are keyed by period; order keeps insertion order.
	periods     map[string]model.IndirectCostPeriod
	periodOrder []string
}

// Option configures a State.
type Option func(*State)

// WithClock sets the time source used for creation timestamps and defaults.
func WithClock(now func() time.Time) Option {
	return func(s *State) { s.now = now }
}

// New returns a State holding default settings and empty collections.
func New(opts ...Option) *State {
	s := &State{now: time.Now}
	for _, o := range opts {
		o(s)
	}
	s.Reset()
	return s
}

// Reset clears every collection and restores default settings.
func (s *State) Reset() {
	now := s.now()
	s.project = model.DefaultProjectSettings(now)
	s.budget = model.DefaultBudgetCategories()
	s.contract = model.ContractSettings{StartDate: s.project.StartDate, EndDate: s.project.EndDate}
	s.rates = model.DefaultIndirectRates()
	s.employees = nil
	s.enhanced = nil
	s.expenses = nil
	s.revenue = nil
	s.odc = nil
	s.periods = make(map[string]model.IndirectCostPeriod)
	s.periodOrder = nil
}

// Now returns the state's current time.
func (s *State) Now() time.Time { return s.now() }

// nextID returns one past the largest id, or 1 for an empty collection.
func nextID[T any](items []T, id func(T) int) int {
	maxID := 0
	for _, it := range items {
		if v := id(it); v > maxID {
			maxID = v
		}
	}
	return maxID + 1
}

// AddEmployee appends a roster entry and returns it with its id and timestamp.
func (s *State) AddEmployee(e model.Employee) model.Employee {
	e.ID = nextID(s.employees, func(x model.Employee) int { return x.ID })
	e.CreatedAt = s.now()
	s.employees = append(s.employees, e)
	return e
}

// AddEnhancedEmployee appends an enhanced team member.
func (s *State) AddEnhancedEmployee(e model.EnhancedEmployee) model.EnhancedEmployee {
	e.ID = nextID(s.enhanced, func(x model.EnhancedEmployee) int { return x.ID })
	e.CreatedAt = s.now()
	s.enhanced = append(s.enhanced, e)
	return e
}

// AddExpense appends an expense.
func (s *State) AddExpense(e model.Expense) model.Expense {
	e.ID = nextID(s.expenses, func(x model.Expense) int { return x.ID })
	e.CreatedAt = s.now()
	s.expenses = append(s.expenses, e)
	return e
}

// AddRevenue appends a revenue entry.
func (s *State) AddRevenue(r model.Revenue) model.Revenue {
	r.ID = nextID(s.revenue, func(x model.Revenue) int { return x.ID })
	r.CreatedAt = s.now()
	s.revenue = append(s.revenue, r)
	return r
}

// AddODC appends an ODC item, assigning a Ref when it has none.
func (s *State) AddODC(item model.ODCItem) model.ODCItem {
	item.ID = nextID(s.odc, func(x model.ODCItem) int { return x.ID })
	if item.Ref == "" {
		item.Ref = uuid.NewString()
	}
	item.CreatedAt = s.now()
	if item.Date.IsZero() {
		item.Date = item.CreatedAt
	}
	s.odc = append(s.odc, item)
	return item
}

// UpsertIndirect stores a period, replacing any record with the same key.
// A replaced period moves to the end of the order and receives a new id.
func (s *State) UpsertIndirect(p model.IndirectCostPeriod) model.IndirectCostPeriod {
	if _, ok := s.periods[p.Period]; ok {
		delete(s.periods, p.Period)
		for i, k := range s.periodOrder {
			if k == p.Period {
				s.periodOrder = append(s.periodOrder[:i], s.periodOrder[i+1:]...)
				break
			}
		}
	}
	p.ID = nextID(s.periodOrder, func(k string) int { return s.periods[k].ID })
	p.CreatedAt = s.now()
	s.periods[p.Period] = p
	s.periodOrder = append(s.periodOrder, p.Period)
	return p
}

// IndirectPeriod returns the record stored under a period key.
func (s *State) IndirectPeriod(period string) (model.IndirectCostPeriod, bool) {
	p, ok := s.periods[period]
	return p, ok
}

// Employees returns the roster in insertion order.
func (s *State) Employees() []model.Employee { return append([]model.Employee(nil), s.employees...) }

// EnhancedEmployees returns the enhanced team in insertion order.
func (s *State) EnhancedEmployees() []model.EnhancedEmployee {
	out := make([]model.EnhancedEmployee, len(s.enhanced))
	for i, e := range s.enhanced {
		e.Monthly = append([]model.MonthlyActual(nil), e.Monthly...)
		out[i] = e
	}
	return out
}

// Expenses returns expenses in insertion order.
func (s *State) Expenses() []model.Expense { return append([]model.Expense(nil), s.expenses...) }

// Revenue returns revenue entries in insertion order.
func (s *State) Revenue() []model.Revenue { return append([]model.Revenue(nil), s.revenue...) }

// ODCItems returns ODC items in insertion order.
func (s *State) ODCItems() []model.ODCItem { return append([]model.ODCItem(nil), s.odc...) }

// IndirectPeriods returns indirect cost periods in insertion order.
func (s *State) IndirectPeriods() []model.IndirectCostPeriod {
	out := make([]model.IndirectCostPeriod, 0, len(s.periodOrder))
	for _, k := range s.periodOrder {
		out = append(out, s.periods[k])
	}
	return out
}

// Count returns the number of records in a collection.
func (s *State) Count(c Collection) int {
	switch c {
	case Employees:
		return len(s.employees)
	case EnhancedEmployees:
		return len(s.enhanced)
	case Expenses:
		return len(s.expenses)
	case Revenue:
		return len(s.revenue)
	case ODCItems:
		return len(s.odc)
	case IndirectCosts:
		return len(s.periodOrder)
	}
	return 0
}

// Project returns the project settings.
func (s *State) Project() model.ProjectSettings { return s.project }

// SetProject replaces the project settings.
func (s *State) SetProject(p model.ProjectSettings) { s.project = p }

// Budget returns the budget categories in display order.
func (s *State) Budget() []model.BudgetCategory {
	return append([]model.BudgetCategory(nil), s.budget...)
}

// SetBudgetCategory sets one allocation, adding the category if new.
func (s *State) SetBudgetCategory(name string, amount float64) {
	for i := range s.budget {
		if s.budget[i].Name == name {
			s.budget[i].Allocated = amount
			return
		}
	}
	s.budget = append(s.budget, model.BudgetCategory{Name: name, Allocated: amount})
}

// Contract returns the contract settings.
func (s *State) Contract() model.ContractSettings { return s.contract }

// SetContract replaces the contract settings.
func (s *State) SetContract(c model.ContractSettings) { s.contract = c }

// Rates returns the indirect rates.
func (s *State) Rates() model.IndirectRates { return s.rates }

// SetRates replaces the indirect rates.
func (s *State) SetRates(r model.IndirectRates) { s.rates = r }
