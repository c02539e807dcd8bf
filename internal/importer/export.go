package importer

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/theirongolddev/seasfin/internal/model"
	"github.com/theirongolddev/seasfin/internal/store"
)

const dateLayout = "2006-01-02"

// EmployeeCSVHeader is the column order of roster exports. It is a superset
// of the import columns, so an export can be imported again.
var EmployeeCSVHeader = []string{
	"id", colEmployeeName, colLaborCategory, colDepartment, colStatus, colSalary,
	colStartDate, colLocation, colManager, colSkills, colNotes, "date_added",
}

// ExportEmployeesCSV writes the roster as CSV.
func ExportEmployeesCSV(w io.Writer, employees []model.Employee) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(EmployeeCSVHeader); err != nil {
		return err
	}
	for _, e := range employees {
		rec := []string{
			strconv.Itoa(e.ID),
			e.Name,
			e.LaborCategory,
			e.Department,
			e.Status,
			strconv.FormatFloat(e.Salary, 'f', 2, 64),
			formatDate(e.StartDate),
			e.Location,
			e.Manager,
			e.Skills,
			e.Notes,
			formatDate(e.CreatedAt),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// FinancialData groups the financial collections and settings of an export.
type FinancialData struct {
	Expenses         []model.Expense            `json:"expenses"`
	Revenue          []model.Revenue            `json:"revenue"`
	BudgetCategories []model.BudgetCategory     `json:"budget_categories"`
	ODCItems         []model.ODCItem            `json:"odc_items"`
	IndirectCosts    []model.IndirectCostPeriod `json:"indirect_costs"`
	Contract         model.ContractSettings     `json:"contract"`
	IndirectRates    model.IndirectRates        `json:"indirect_rates"`
}

// Document is the JSON export format. Sections left out of an export are
// absent from the document and left alone when it is restored.
type Document struct {
	ExportID          string                   `json:"export_id"`
	ExportedAt        time.Time                `json:"exported_at"`
	Employees         []model.Employee         `json:"employees,omitempty"`
	EnhancedEmployees []model.EnhancedEmployee `json:"enhanced_employees,omitempty"`
	ProjectSettings   *model.ProjectSettings   `json:"project_settings,omitempty"`
	FinancialData     *FinancialData           `json:"financial_data,omitempty"`
	FinancialSummary  *model.FinancialSummary  `json:"financial_summary,omitempty"`
}

// Len counts the records carried by the document.
func (d Document) Len() int {
	n := len(d.Employees) + len(d.EnhancedEmployees)
	if f := d.FinancialData; f != nil {
		n += len(f.Expenses) + len(f.Revenue) + len(f.ODCItems) + len(f.IndirectCosts)
	}
	return n
}

// ExportOptions selects the sections written by ExportJSON.
type ExportOptions struct {
	Employees bool
	Financial bool
	Settings  bool
}

// AllSections exports everything.
var AllSections = ExportOptions{Employees: true, Financial: true, Settings: true}

// NewDocument builds an export document from a snapshot.
func NewDocument(snap store.Snapshot, summary model.FinancialSummary, opts ExportOptions, now time.Time) Document {
	d := Document{
		ExportID:   uuid.NewString(),
		ExportedAt: now.UTC(),
	}
	if opts.Employees {
		d.Employees = nonNil(snap.Employees)
		d.EnhancedEmployees = nonNil(snap.EnhancedEmployees)
	}
	if opts.Settings {
		p := snap.Project
		d.ProjectSettings = &p
	}
	if opts.Financial {
		d.FinancialData = &FinancialData{
			Expenses:         nonNil(snap.Expenses),
			Revenue:          nonNil(snap.Revenue),
			BudgetCategories: nonNil(snap.Budget),
			ODCItems:         nonNil(snap.ODCItems),
			IndirectCosts:    nonNil(snap.IndirectCosts),
			Contract:         snap.Contract,
			IndirectRates:    snap.Rates,
		}
		d.FinancialSummary = &summary
	}
	return d
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// ExportJSON writes the selected sections as an indented JSON document.
func ExportJSON(w io.Writer, snap store.Snapshot, summary model.FinancialSummary, opts ExportOptions, now time.Time) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewDocument(snap, summary, opts, now)); err != nil {
		return fmt.Errorf("encoding export: %w", err)
	}
	return nil
}

// RestoreJSON decodes an export document.
func RestoreJSON(r io.Reader) (Document, error) {
	var d Document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Document{}, fmt.Errorf("decoding export: %w", err)
	}
	return d, nil
}

// Apply replaces the state sections present in the document. The financial
// summary is derived and never restored.
func (d Document) Apply(st *store.State) {
	snap := st.Snapshot()
	if d.Employees != nil {
		snap.Employees = d.Employees
	}
	if d.EnhancedEmployees != nil {
		snap.EnhancedEmployees = d.EnhancedEmployees
	}
	if d.ProjectSettings != nil {
		snap.Project = *d.ProjectSettings
	}
	if f := d.FinancialData; f != nil {
		snap.Expenses = f.Expenses
		snap.Revenue = f.Revenue
		snap.ODCItems = f.ODCItems
		snap.IndirectCosts = f.IndirectCosts
		snap.Contract = f.Contract
		snap.Rates = f.IndirectRates
		if f.BudgetCategories != nil {
			snap.Budget = f.BudgetCategories
		}
	}
	st.Restore(snap)
}
