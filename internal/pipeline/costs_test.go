package pipeline

import (
	"testing"

	"github.com/theirongolddev/seasfin/internal/model"
)

func TestCostSummaryProfitLoss(t *testing.T) {
	employees := []model.Employee{{Salary: 400000}, {Salary: 200000}}
	odc := []model.ODCItem{{Amount: 30000}, {Amount: 20000}}
	periods := []model.IndirectCostPeriod{{Period: "2025-01", Total: 300000}}

	s := CostSummary(model.ContractSettings{Value: 2000000}, employees, odc, periods)

	if s.TotalLabor != 600000 || s.TotalODC != 50000 || s.TotalIndirect != 300000 {
		t.Fatalf("totals = %.0f/%.0f/%.0f, want 600000/50000/300000", s.TotalLabor, s.TotalODC, s.TotalIndirect)
	}
	if s.ProfitLoss != 1050000 {
		t.Fatalf("ProfitLoss = %.0f, want 1050000", s.ProfitLoss)
	}
	if !almostEqual(s.MarginPercent, 52.5) {
		t.Fatalf("MarginPercent = %v, want 52.5", s.MarginPercent)
	}
	if !almostEqual(s.ContractUtilization, 47.5) {
		t.Fatalf("ContractUtilization = %v, want 47.5", s.ContractUtilization)
	}
	if s.LaborVariance != 0 || s.ODCVariance != 0 || s.IndirectVariance != 0 {
		t.Fatalf("variances = %v/%v/%v, want zero", s.LaborVariance, s.ODCVariance, s.IndirectVariance)
	}
}

func TestCostSummaryZeroContract(t *testing.T) {
	s := CostSummary(model.ContractSettings{}, []model.Employee{{Salary: 100}}, nil, nil)
	if s.MarginPercent != 0 || s.ContractUtilization != 0 {
		t.Fatalf("guards = %v/%v, want 0/0", s.MarginPercent, s.ContractUtilization)
	}
	if s.ProfitLoss != -100 {
		t.Fatalf("ProfitLoss = %v, want -100", s.ProfitLoss)
	}
}

func TestODCTotalsByStatus(t *testing.T) {
	items := []model.ODCItem{
		{Amount: 100, Status: model.ODCPlanned},
		{Amount: 200, Status: model.ODCCommitted},
		{Amount: 50, Status: model.ODCPaid},
		{Amount: 25, Status: model.ODCPaid},
		{Amount: 5, Status: "Disputed"},
	}
	got := ODCTotalsByStatus(items)
	if got.Planned != 100 || got.Committed != 200 || got.Paid != 75 || got.Invoiced != 0 || got.Other != 5 {
		t.Fatalf("ODCTotalsByStatus = %+v", got)
	}
	if got.Count != 5 {
		t.Fatalf("Count = %d, want 5", got.Count)
	}
}

func TestFilterODC(t *testing.T) {
	items := []model.ODCItem{
		{Description: "Laptop", Vendor: "Dell", Category: "Equipment", Status: "Planned"},
		{Description: "Flight", Vendor: "Travel Agency", Category: "Travel", Status: "Paid"},
		{Description: "Monitor", Vendor: "DELL", Category: "Equipment", Status: "Paid"},
	}

	if got := FilterODC(items, ODCFilter{Search: "dell"}); len(got) != 2 {
		t.Fatalf("search dell = %d items, want 2", len(got))
	}
	got := FilterODC(items, ODCFilter{Category: "Equipment", Status: "Paid"})
	if len(got) != 1 || got[0].Description != "Monitor" {
		t.Fatalf("category+status filter = %+v, want Monitor", got)
	}
	if got := FilterODC(items, ODCFilter{}); len(got) != 3 {
		t.Fatalf("empty filter = %d items, want 3", len(got))
	}
}
