package store

import "github.com/theirongolddev/seasfin/internal/model"

// Snapshot is a complete, serializable copy of a State.
type Snapshot struct {
	Project           model.ProjectSettings      `json:"project_settings"`
	Budget            []model.BudgetCategory     `json:"budget_categories"`
	Contract          model.ContractSettings     `json:"contract"`
	Rates             model.IndirectRates        `json:"indirect_rates"`
	Employees         []model.Employee           `json:"employees"`
	EnhancedEmployees []model.EnhancedEmployee   `json:"enhanced_employees"`
	Expenses          []model.Expense            `json:"expenses"`
	Revenue           []model.Revenue            `json:"revenue"`
	ODCItems          []model.ODCItem            `json:"odc_items"`
	IndirectCosts     []model.IndirectCostPeriod `json:"indirect_costs"`
}

// Snapshot copies the state.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Project:           s.project,
		Budget:            s.Budget(),
		Contract:          s.contract,
		Rates:             s.rates,
		Employees:         s.Employees(),
		EnhancedEmployees: s.EnhancedEmployees(),
		Expenses:          s.Expenses(),
		Revenue:           s.Revenue(),
		ODCItems:          s.ODCItems(),
		IndirectCosts:     s.IndirectPeriods(),
	}
}

// Restore replaces the state with the snapshot contents. Records keep their
// ids and timestamps. If the snapshot repeats a period key, the later record wins.
func (s *State) Restore(snap Snapshot) {
	s.Reset()
	s.project = snap.Project
	if len(snap.Budget) > 0 {
		s.budget = append([]model.BudgetCategory(nil), snap.Budget...)
	}
	s.contract = snap.Contract
	s.rates = snap.Rates
	s.employees = append([]model.Employee(nil), snap.Employees...)
	s.enhanced = append([]model.EnhancedEmployee(nil), snap.EnhancedEmployees...)
	s.expenses = append([]model.Expense(nil), snap.Expenses...)
	s.revenue = append([]model.Revenue(nil), snap.Revenue...)
	s.odc = append([]model.ODCItem(nil), snap.ODCItems...)
	for _, p := range snap.IndirectCosts {
		if _, ok := s.periods[p.Period]; !ok {
			s.periodOrder = append(s.periodOrder, p.Period)
		}
		s.periods[p.Period] = p
	}
}
