package pipeline

import (
	"strings"

	"github.com/theirongolddev/seasfin/internal/model"
)

// CostSummary computes the contract P&L from labor, ODC and indirect costs.
// The variance fields are left at zero.
func CostSummary(contract model.ContractSettings, employees []model.Employee,
	odc []model.ODCItem, periods []model.IndirectCostPeriod) model.CostSummary {

	s := model.CostSummary{ContractValue: contract.Value}
	for _, e := range employees {
		s.TotalLabor += e.Salary
	}
	for _, o := range odc {
		s.TotalODC += o.Amount
	}
	for _, p := range periods {
		s.TotalIndirect += p.Total
	}

	s.TotalCosts = s.TotalLabor + s.TotalODC + s.TotalIndirect
	s.ProfitLoss = s.ContractValue - s.TotalCosts
	if s.ContractValue > 0 {
		s.MarginPercent = s.ProfitLoss / s.ContractValue * 100
		s.ContractUtilization = s.TotalCosts / s.ContractValue * 100
	}
	return s
}

// ODCTotalsByStatus sums ODC amounts per lifecycle status.
func ODCTotalsByStatus(items []model.ODCItem) model.ODCStatusTotals {
	var t model.ODCStatusTotals
	for _, o := range items {
		t.Count++
		switch o.Status {
		case model.ODCPlanned:
			t.Planned += o.Amount
		case model.ODCCommitted:
			t.Committed += o.Amount
		case model.ODCInvoiced:
			t.Invoiced += o.Amount
		case model.ODCPaid:
			t.Paid += o.Amount
		default:
			t.Other += o.Amount
		}
	}
	return t
}

// ODCFilter selects ODC items. Empty fields match everything; Search is a
// case-insensitive substring over description, vendor and notes.
type ODCFilter struct {
	Category string
	Status   string
	Search   string
}

// FilterODC returns the items matching f, preserving order.
func FilterODC(items []model.ODCItem, f ODCFilter) []model.ODCItem {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	var out []model.ODCItem
	for _, o := range items {
		if f.Category != "" && o.Category != f.Category {
			continue
		}
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(o.Description), search) &&
			!strings.Contains(strings.ToLower(o.Vendor), search) &&
			!strings.Contains(strings.ToLower(o.Notes), search) {
			continue
		}
		out = append(out, o)
	}
	return out
}
