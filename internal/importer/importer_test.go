package importer

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/theirongolddev/seasfin/internal/pipeline"
	"github.com/theirongolddev/seasfin/internal/store"
)

var testNow = time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

func newState() *store.State {
	return store.New(store.WithClock(func() time.Time { return testNow }))
}

func csvTable(t *testing.T, content string) Table {
	t.Helper()
	tbl, err := ReadTable(strings.NewReader(content), "data.csv")
	require.NoError(t, err)
	return tbl
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReadTableCSV(t *testing.T) {
	tbl := csvTable(t, " Employee_Name , labor_category\nAda ,Engineer\n,\nGrace,Admiral\n")

	assert.Equal(t, []string{"Employee_Name", "labor_category"}, tbl.Headers)
	require.Len(t, tbl.Rows, 2, "blank rows are dropped")
	assert.Equal(t, "Ada", tbl.Rows[0][0])
	assert.Equal(t, 0, tbl.Index("employee_name"))
	assert.Equal(t, 0, tbl.Index("Employee Name"))
	assert.Equal(t, -1, tbl.Index("salary"))
}

func TestReadTableRejectsUnknownExtension(t *testing.T) {
	_, err := ReadTable(strings.NewReader("a,b"), "data.txt")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestReadTableEmpty(t *testing.T) {
	_, err := ReadTable(strings.NewReader(""), "data.csv")
	assert.ErrorIs(t, err, ErrEmptySheet)
}

func TestReadTableXLSX(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"employee_name", "labor_category", "salary", "start_date"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"Ada", "Engineer", 85000, 45306}))
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())

	tbl, err := ReadTable(&buf, "roster.xlsx")
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 1)

	emps, report := ParseEmployees(tbl)
	assert.True(t, report.OK(), "issues: %v", report.Issues)
	require.Len(t, emps, 1)
	assert.Equal(t, 85000.0, emps[0].Salary)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), emps[0].StartDate)
}

func TestValidateMissingRequiredValue(t *testing.T) {
	tbl := csvTable(t, "employee_name,labor_category,salary\nAda,Engineer,100\n,Analyst,200\n")

	r := ValidateEmployees(tbl)
	require.Len(t, r.Issues, 1)
	got := r.Issues[0]
	assert.Equal(t, IssueMissingRequired, got.Kind)
	assert.Equal(t, 1, got.Row)
	assert.Equal(t, 0, got.Column)
	assert.Equal(t, "employee_name", got.ColumnName)
	assert.Equal(t, 1, r.ValidCount)
	assert.Equal(t, 1, r.InvalidCount)
}

func TestValidateDuplicateNames(t *testing.T) {
	var b strings.Builder
	b.WriteString("employee_name,labor_category\n")
	for i := 0; i < 12; i++ {
		b.WriteString("Sam,Engineer\n")
	}
	b.WriteString("sam,Engineer\n")
	tbl := csvTable(t, b.String())

	r := ValidateEmployees(tbl)
	require.Len(t, r.Issues, 11, "every occurrence after the first")
	for i, iss := range r.Issues {
		assert.Equal(t, IssueDuplicateName, iss.Kind)
		assert.Equal(t, i+1, iss.Row)
	}
	assert.Len(t, r.Display(), MaxDisplayIssues)
	assert.Equal(t, 11, r.InvalidCount, "counts use the full issue set")
	assert.Equal(t, 2, r.ValidCount, "first Sam and lowercase sam are valid")
}

func TestValidateNumbersAndDates(t *testing.T) {
	tbl := csvTable(t, "employee_name,labor_category,salary,start_date\n"+
		"A,Eng,-5,2024-01-01\n"+
		"B,Eng,abc,\n"+
		"C,Eng,\"$1,200\",not a date\n"+
		"D,Eng,,45306\n")

	r := ValidateEmployees(tbl)
	kinds := make([]IssueKind, 0, len(r.Issues))
	for _, iss := range r.Issues {
		kinds = append(kinds, iss.Kind)
	}
	assert.Equal(t, []IssueKind{IssueInvalidNumber, IssueInvalidNumber, IssueInvalidDate}, kinds)
	assert.Equal(t, 1, r.ValidCount)
}

func TestValidateRejectsSpecialFloats(t *testing.T) {
	tbl := csvTable(t, "employee_name,labor_category,salary\n"+
		"A,Eng,NaN\n"+
		"B,Eng,+Inf\n"+
		"C,Eng,0x1p4\n"+
		"D,Eng,1e3\n")

	r := ValidateEmployees(tbl)
	kinds := make([]IssueKind, 0, len(r.Issues))
	for _, iss := range r.Issues {
		kinds = append(kinds, iss.Kind)
	}
	assert.Equal(t, []IssueKind{IssueInvalidNumber, IssueInvalidNumber, IssueInvalidNumber}, kinds)
	assert.Equal(t, 1, r.ValidCount)
}

func TestDisplayDoesNotAliasIssues(t *testing.T) {
	var body strings.Builder
	body.WriteString("employee_name,labor_category\n")
	for i := 0; i < MaxDisplayIssues+2; i++ {
		body.WriteString(",Eng\n")
	}
	r := ValidateEmployees(csvTable(t, body.String()))
	require.Len(t, r.Issues, MaxDisplayIssues+2)

	shown := r.Display()
	require.Len(t, shown, MaxDisplayIssues)
	_ = append(shown, Issue{Kind: IssueInvalidDate})
	assert.Equal(t, IssueMissingRequired, r.Issues[MaxDisplayIssues].Kind)
}

func TestValidateMissingColumnsShortCircuits(t *testing.T) {
	tbl := csvTable(t, "employee_name,salary\nAda,-1\nAda,2\n")

	r := ValidateEmployees(tbl)
	assert.Equal(t, []string{"labor_category"}, r.MissingColumns)
	assert.Empty(t, r.Issues)
	assert.Equal(t, 0, r.ValidCount)
	assert.Equal(t, 2, r.InvalidCount)
}

func TestImportEmployeesSkipsInvalidRows(t *testing.T) {
	st := newState()
	tbl := csvTable(t, "employee_name,labor_category,salary\nAda,Engineer,100\nAda,Engineer,200\n,Analyst,1\n")

	res, err := ImportEmployees(tbl, st)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)
	assert.Equal(t, 2, res.Skipped)
	emps := st.Employees()
	require.Len(t, emps, 1)
	assert.Equal(t, "Engineering", emps[0].Department)
	assert.Equal(t, "Active", emps[0].Status)
}

func TestImportEmployeesMissingColumns(t *testing.T) {
	st := newState()
	_, err := ImportEmployees(csvTable(t, "name\nAda\n"), st)
	assert.ErrorIs(t, err, ErrMissingColumns)
	assert.Zero(t, st.Count(store.Employees))
}

func TestImportEnhancedEmployees(t *testing.T) {
	st := newState()
	tbl := csvTable(t, "Name,LCAT,priced_salary,current_salary,hours_per_month,hours_01/25,revenue_01/25\n"+
		"Ada,PM,120000,125000,,150,20000\n"+
		"Bob,SRE,oops,1,160,,\n")

	res, err := ImportEnhancedEmployees(tbl, st)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)
	assert.Equal(t, 1, res.Skipped)

	team := st.EnhancedEmployees()
	require.Len(t, team, 1)
	assert.Equal(t, 160.0, team[0].HoursPerMonth)
	require.Len(t, team[0].Monthly, 1)
	assert.Equal(t, "01/25", team[0].Monthly[0].Month)
	assert.Equal(t, 150.0, team[0].Monthly[0].Hours)
	assert.Equal(t, 20000.0, team[0].Monthly[0].Revenue)
}

func TestImportEnhancedRejectsUnknownLCAT(t *testing.T) {
	tbl := csvTable(t, "name,lcat,priced_salary,current_salary,hours_per_month\nAda,Wizard,1,1,160\n")
	_, err := ImportEnhancedEmployees(tbl, newState())
	assert.ErrorIs(t, err, ErrUnknownLCAT)
}

func TestImportODC(t *testing.T) {
	st := newState()
	tbl := csvTable(t, "category,description,amount,status,date\n"+
		"Travel,Flight,2500,Paid,2025-02-01\n"+
		",Laptop,1800,,\n"+
		"Software,,100,,\n"+
		"Software,Licenses,,,\n"+
		"Software,Bad,12x,,\n")

	res, err := ImportODC(tbl, st)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Imported)
	assert.Equal(t, 3, res.Skipped)

	items := st.ODCItems()
	require.Len(t, items, 2)
	assert.Equal(t, "Paid", items[0].Status)
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), items[0].Date)
	assert.Equal(t, "Other", items[1].Category)
	assert.Equal(t, "Planned", items[1].Status)
	assert.Equal(t, testNow, items[1].Date)
}

func TestImportODCSkipsSpecialFloats(t *testing.T) {
	st := newState()
	tbl := csvTable(t, "category,description,amount\n"+
		"Travel,Flight,Inf\n"+
		"Travel,Hotel,NaN\n"+
		"Travel,Taxi,\"$1,200.50\"\n")

	res, err := ImportODC(tbl, st)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)
	assert.Equal(t, 2, res.Skipped)
	require.Len(t, st.ODCItems(), 1)
	assert.Equal(t, 1200.5, st.ODCItems()[0].Amount)
}

func TestImportODCMissingColumns(t *testing.T) {
	_, err := ImportODC(csvTable(t, "category,description\nTravel,Flight\n"), newState())
	require.ErrorIs(t, err, ErrMissingColumns)
	assert.Contains(t, err.Error(), "amount")
}

func TestImportIndirect(t *testing.T) {
	st := newState()
	tbl := csvTable(t, "Indirect Costs,2025-01,,2025-02,Unnamed: 4,2025-03\n"+
		"Fringe,1000,9,200,9,\n"+
		"Overhead,500,9,n/a,9,\n"+
		"G&A,250,9,,9,\n"+
		"Total Indirect,1750,27,200,27,\n")

	res, err := ImportIndirect(tbl, st)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Imported, "blank, Unnamed and all-zero columns are skipped")

	jan, ok := st.IndirectPeriod("2025-01")
	require.True(t, ok)
	assert.Equal(t, 1750.0, jan.Total)
	feb, ok := st.IndirectPeriod("2025-02")
	require.True(t, ok)
	assert.Equal(t, 200.0, feb.Total)
	assert.Equal(t, 0.0, feb.Overhead)
	_, ok = st.IndirectPeriod("2025-03")
	assert.False(t, ok)
}

func TestImportIndirectSpecialFloatsCountAsZero(t *testing.T) {
	st := newState()
	tbl := csvTable(t, "Indirect Costs,2025-01,2025-02,2025-03\n"+
		"Fringe,NaN,Inf,NaN\n"+
		"Overhead,500,,-Inf\n"+
		"G&A,,,\n")

	res, err := ImportIndirect(tbl, st)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)

	jan, ok := st.IndirectPeriod("2025-01")
	require.True(t, ok)
	assert.Equal(t, 0.0, jan.Fringe)
	assert.Equal(t, 500.0, jan.Total)
	_, ok = st.IndirectPeriod("2025-02")
	assert.False(t, ok)
	_, ok = st.IndirectPeriod("2025-03")
	assert.False(t, ok)

	cs := pipeline.CostSummary(st.Contract(), nil, nil, st.IndirectPeriods())
	assert.Equal(t, 500.0, cs.TotalIndirect)
}

func TestImportIndirectReplacesPeriod(t *testing.T) {
	st := newState()
	_, err := ImportIndirect(csvTable(t, "Indirect Costs,2025-01\nFringe,100\n"), st)
	require.NoError(t, err)
	_, err = ImportIndirect(csvTable(t, "Indirect Costs,2025-01\nFringe,300\n"), st)
	require.NoError(t, err)

	periods := st.IndirectPeriods()
	require.Len(t, periods, 1)
	assert.Equal(t, 300.0, periods[0].Total)
}

func TestImportIndirectWrongLayout(t *testing.T) {
	_, err := ImportIndirect(csvTable(t, "Period,Fringe\n2025-01,100\n"), newState())
	assert.ErrorIs(t, err, ErrMissingColumns)
}

func TestImportFilesAppliesInOrder(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i := 0; i < 5; i++ {
		content := fmt.Sprintf("category,description,amount\nTravel,Trip %d,%d\n", i, (i+1)*100)
		paths = append(paths, writeFile(t, dir, fmt.Sprintf("odc%d.csv", i), content))
	}

	st := newState()
	var calls atomic.Int32
	results, err := ImportFiles(context.Background(), st, KindODC, paths, Options{
		Workers:  3,
		Progress: func(current, total int) { calls.Add(1); assert.Equal(t, 5, total) },
	})
	require.NoError(t, err)
	require.Len(t, results, 5)
	assert.Equal(t, int32(5), calls.Load())

	items := st.ODCItems()
	require.Len(t, items, 5)
	for i, item := range items {
		assert.Equal(t, fmt.Sprintf("Trip %d", i), item.Description)
		assert.Equal(t, i+1, item.ID)
	}
}

func TestImportFilesAllOrNothing(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.csv", "category,description,amount\nTravel,Trip,100\n")
	bad := writeFile(t, dir, "bad.txt", "nope")

	st := newState()
	_, err := ImportFiles(context.Background(), st, KindODC, []string{good, bad}, Options{})
	require.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Zero(t, st.Count(store.ODCItems))
}

func TestTemplatesRoundTrip(t *testing.T) {
	for _, kind := range []Kind{KindEmployees, KindEnhanced, KindODC, KindIndirect} {
		for _, format := range []string{FormatCSV, FormatXLSX} {
			t.Run(string(kind)+"/"+format, func(t *testing.T) {
				var buf bytes.Buffer
				require.NoError(t, WriteTemplate(&buf, kind, format, testNow))

				tbl, err := ReadTable(&buf, "template."+format)
				require.NoError(t, err)

				st := newState()
				b, err := Parse(kind, tbl, testNow)
				require.NoError(t, err)
				res := b.Apply(st)
				assert.Positive(t, res.Imported)
				assert.Zero(t, res.Skipped)
			})
		}
	}
}

func TestIndirectTemplateValues(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTemplate(&buf, KindIndirect, FormatCSV, testNow))
	tbl, err := ReadTable(&buf, "indirect.csv")
	require.NoError(t, err)

	periods, err := ParseIndirect(tbl)
	require.NoError(t, err)
	require.Len(t, periods, 24)
	assert.Equal(t, "2025-01", periods[0].Period)
	assert.Equal(t, 26000.0, periods[0].Fringe)
	assert.Equal(t, 22900.0, periods[0].Overhead)
	assert.Equal(t, 15600.0, periods[0].GA)
	assert.Equal(t, "2026-12", periods[23].Period)
}

func TestXLSXTemplateHasInstructions(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTemplate(&buf, KindODC, FormatXLSX, testNow))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"ODC_Data", "Instructions"}, f.GetSheetList())
}

func TestExportEmployeesCSVReimports(t *testing.T) {
	st := newState()
	_, err := ImportEmployees(csvTable(t, "employee_name,labor_category,salary,start_date\nAda,Engineer,100,2024-01-02\n"), st)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, ExportEmployeesCSV(&buf, st.Employees()))
	assert.True(t, strings.HasPrefix(buf.String(), "id,employee_name,labor_category"))

	other := newState()
	res, err := ImportEmployees(csvTable(t, buf.String()), other)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)
	assert.Equal(t, st.Employees()[0].StartDate, other.Employees()[0].StartDate)
}

func TestExportJSONRestore(t *testing.T) {
	st := newState()
	_, err := ImportODC(csvTable(t, "category,description,amount\nTravel,Trip,100\n"), st)
	require.NoError(t, err)
	_, err = ImportEmployees(csvTable(t, "employee_name,labor_category\nAda,Engineer\n"), st)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, ExportJSON(&buf, st.Snapshot(), pipeline.FinancialSummary(st.Project().TotalBudget, st.Expenses(), st.Revenue()), ExportOptions{Financial: true}, testNow))
	assert.Contains(t, buf.String(), `"export_id"`)
	assert.NotContains(t, buf.String(), `"employees"`)

	doc, err := RestoreJSON(&buf)
	require.NoError(t, err)
	assert.Len(t, doc.ExportID, 36)

	target := newState()
	_, err = ImportEmployees(csvTable(t, "employee_name,labor_category\nKeep,Me\n"), target)
	require.NoError(t, err)
	doc.Apply(target)

	assert.Len(t, target.ODCItems(), 1)
	require.Len(t, target.Employees(), 1, "sections absent from the export are left alone")
	assert.Equal(t, "Keep", target.Employees()[0].Name)
}
