package importer

import (
	"fmt"
	"slices"
)

// Roster columns. The first two are required on every row.
const (
	colEmployeeName  = "employee_name"
	colLaborCategory = "labor_category"
	colDepartment    = "department"
	colStatus        = "status"
	colSalary        = "salary"
	colStartDate     = "start_date"
	colLocation      = "location"
	colManager       = "manager"
	colSkills        = "skills"
	colNotes         = "notes"
)

// RequiredEmployeeColumns must be present for a roster import to proceed.
var RequiredEmployeeColumns = []string{colEmployeeName, colLaborCategory}

// IssueKind classifies a validation problem.
type IssueKind string

// Issue kinds.
const (
	IssueMissingRequired IssueKind = "missing_required"
	IssueInvalidNumber   IssueKind = "invalid_number"
	IssueInvalidDate     IssueKind = "invalid_date"
	IssueDuplicateName   IssueKind = "duplicate_name"
)

// MaxDisplayIssues caps how many issues are shown to the user.
const MaxDisplayIssues = 10

// Issue is one problem found in an import file. Row and Column are
// zero-based positions in the data rows and the header.
type Issue struct {
	Kind       IssueKind
	Row        int
	Column     int
	ColumnName string
	Value      string
}

func (i Issue) String() string {
	switch i.Kind {
	case IssueMissingRequired:
		return fmt.Sprintf("row %d: %s is required", i.Row+1, i.ColumnName)
	case IssueInvalidNumber:
		return fmt.Sprintf("row %d: %s %q is not a valid non-negative number", i.Row+1, i.ColumnName, i.Value)
	case IssueInvalidDate:
		return fmt.Sprintf("row %d: %s %q is not a valid date", i.Row+1, i.ColumnName, i.Value)
	case IssueDuplicateName:
		return fmt.Sprintf("row %d: %s %q appears more than once", i.Row+1, i.ColumnName, i.Value)
	}
	return fmt.Sprintf("row %d: %s", i.Row+1, i.Kind)
}

// ValidationReport is the outcome of checking a roster file.
type ValidationReport struct {
	MissingColumns []string
	Issues         []Issue
	TotalRows      int
	ValidCount     int
	InvalidCount   int

	invalid map[int]bool
}

// OK reports whether every row can be imported.
func (r ValidationReport) OK() bool {
	return len(r.MissingColumns) == 0 && len(r.Issues) == 0
}

// RowValid reports whether data row i has no issues.
func (r ValidationReport) RowValid(i int) bool {
	return len(r.MissingColumns) == 0 && !r.invalid[i]
}

// Display returns at most MaxDisplayIssues issues. Counts always cover the full set.
func (r ValidationReport) Display() []Issue {
	if len(r.Issues) > MaxDisplayIssues {
		return slices.Clone(r.Issues[:MaxDisplayIssues])
	}
	return slices.Clone(r.Issues)
}

// ValidateEmployees checks a roster table. Missing required columns stop the
// check before any row is looked at. Otherwise each row is checked for
// required values, a parseable non-negative salary, a parseable start date,
// and a name that appears only once in the file.
func ValidateEmployees(t Table) ValidationReport {
	r := ValidationReport{TotalRows: len(t.Rows), invalid: make(map[int]bool)}
	if r.MissingColumns = t.Missing(RequiredEmployeeColumns...); len(r.MissingColumns) > 0 {
		r.InvalidCount = r.TotalRows
		return r
	}

	nameIdx := t.Index(colEmployeeName)
	salaryIdx := t.Index(colSalary)
	dateIdx := t.Index(colStartDate)
	requiredIdx := make([]int, len(RequiredEmployeeColumns))
	for i, c := range RequiredEmployeeColumns {
		requiredIdx[i] = t.Index(c)
	}

	add := func(kind IssueKind, row, col int, value string) {
		r.Issues = append(r.Issues, Issue{
			Kind:       kind,
			Row:        row,
			Column:     col,
			ColumnName: t.Headers[col],
			Value:      value,
		})
		r.invalid[row] = true
	}

	firstSeen := make(map[string]bool)
	for i, row := range t.Rows {
		for _, idx := range requiredIdx {
			if cellValue(row, idx) == "" {
				add(IssueMissingRequired, i, idx, "")
			}
		}
		if v := cellValue(row, salaryIdx); v != "" {
			if n, err := parseAmount(v); err != nil || n < 0 {
				add(IssueInvalidNumber, i, salaryIdx, v)
			}
		}
		// Numeric dates are spreadsheet serials; only text is checked.
		if v := cellValue(row, dateIdx); v != "" && !isNumeric(v) {
			if _, err := parseDate(v); err != nil {
				add(IssueInvalidDate, i, dateIdx, v)
			}
		}
		if name := cellValue(row, nameIdx); name != "" {
			if firstSeen[name] {
				add(IssueDuplicateName, i, nameIdx, name)
			}
			firstSeen[name] = true
		}
	}

	r.InvalidCount = len(r.invalid)
	r.ValidCount = r.TotalRows - r.InvalidCount
	return r
}
