package model

import "time"

// ProjectSettings is the singleton project record.
type ProjectSettings struct {
	Name        string    `json:"project_name"`
	TotalBudget float64   `json:"total_budget"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Department  string    `json:"department"`
	Manager     string    `json:"project_manager"`
}

// DefaultProjectSettings returns the settings a fresh workspace starts with.
// The project runs for one year from now.
func DefaultProjectSettings(now time.Time) ProjectSettings {
	return ProjectSettings{
		Name:        "SEAS Project",
		TotalBudget: 153000,
		StartDate:   now,
		EndDate:     now.AddDate(0, 0, 365),
		Department:  DefaultDepartment,
		Manager:     "Not Assigned",
	}
}

// BudgetCategory is one named allocation.
type BudgetCategory struct {
	Name      string  `json:"name"`
	Allocated float64 `json:"allocated"`
}

// DefaultBudgetCategories returns the starting allocations in display order.
func DefaultBudgetCategories() []BudgetCategory {
	return []BudgetCategory{
		{Name: "Personnel", Allocated: 80000},
		{Name: "Equipment", Allocated: 30000},
		{Name: "Software", Allocated: 15000},
		{Name: "Travel", Allocated: 10000},
		{Name: "Miscellaneous", Allocated: 18000},
	}
}

// ContractSettings is the singleton contract record.
type ContractSettings struct {
	Value     float64   `json:"contract_value"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// IndirectRates are percentage rates for the indirect pools. They are
// configured and displayed but not applied to any derived figure.
type IndirectRates struct {
	Fringe   float64 `json:"fringe_rate"`
	Overhead float64 `json:"overhead_rate"`
	GA       float64 `json:"ga_rate"`
}

// DefaultIndirectRates returns fringe 25%, overhead 45%, G&A 15%.
func DefaultIndirectRates() IndirectRates {
	return IndirectRates{Fringe: 25, Overhead: 45, GA: 15}
}
