package model

import (
	"fmt"
	"strings"
	"time"
)

// Expense is a spend recorded against a budget category. The category is not
// checked against the configured categories.
type Expense struct {
	ID          int       `json:"id"`
	Category    string    `json:"category"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"date"`
}

// NewExpense requires a category.
func NewExpense(category string, amount float64, description string) (Expense, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return Expense{}, fmt.Errorf("category: %w", ErrMissingField)
	}
	return Expense{Category: category, Amount: amount, Description: strings.TrimSpace(description)}, nil
}

// Revenue is an income entry. Nothing records revenue interactively; it
// arrives through snapshot restore.
type Revenue struct {
	ID        int       `json:"id"`
	Source    string    `json:"source"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"date"`
}

// ODC categories.
const (
	ODCTravel        = "Travel"
	ODCEquipment     = "Equipment"
	ODCSoftware      = "Software"
	ODCTraining      = "Training"
	ODCSubcontractor = "Subcontractor"
	ODCMaterials     = "Materials"
	ODCOther         = "Other"
)

// ODCCategories lists the ODC categories in display order.
var ODCCategories = []string{
	ODCTravel, ODCEquipment, ODCSoftware, ODCTraining, ODCSubcontractor, ODCMaterials, ODCOther,
}

// ODC statuses. The order is the intended lifecycle; transitions are not enforced.
const (
	ODCPlanned   = "Planned"
	ODCCommitted = "Committed"
	ODCInvoiced  = "Invoiced"
	ODCPaid      = "Paid"
)

// ODCStatuses lists the ODC statuses in lifecycle order.
var ODCStatuses = []string{ODCPlanned, ODCCommitted, ODCInvoiced, ODCPaid}

// ODCItem is an Other Direct Cost line item. Ref is a stable external key.
type ODCItem struct {
	ID          int       `json:"id"`
	Ref         string    `json:"ref"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Vendor      string    `json:"vendor"`
	Amount      float64   `json:"amount"`
	Date        time.Time `json:"date"`
	Status      string    `json:"status"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewODCItem requires a description, defaulting category to Other and status to Planned.
func NewODCItem(item ODCItem) (ODCItem, error) {
	item.Description = strings.TrimSpace(item.Description)
	if item.Description == "" {
		return ODCItem{}, fmt.Errorf("description: %w", ErrMissingField)
	}
	if strings.TrimSpace(item.Category) == "" {
		item.Category = ODCOther
	}
	if strings.TrimSpace(item.Status) == "" {
		item.Status = ODCPlanned
	}
	return item, nil
}

// IndirectCostPeriod holds the Fringe, Overhead and G&A pools for one period.
// Period is the unique key.
type IndirectCostPeriod struct {
	ID        int       `json:"id"`
	Period    string    `json:"period"`
	Fringe    float64   `json:"fringe"`
	Overhead  float64   `json:"overhead"`
	GA        float64   `json:"ga"`
	Total     float64   `json:"total"`
	CreatedAt time.Time `json:"created_at"`
}

// NewIndirectCostPeriod computes the period total.
func NewIndirectCostPeriod(period string, fringe, overhead, ga float64) (IndirectCostPeriod, error) {
	period = strings.TrimSpace(period)
	if period == "" {
		return IndirectCostPeriod{}, fmt.Errorf("period: %w", ErrMissingField)
	}
	return IndirectCostPeriod{
		Period:   period,
		Fringe:   fringe,
		Overhead: overhead,
		GA:       ga,
		Total:    fringe + overhead + ga,
	}, nil
}
