package importer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/seasfin/internal/model"
)

// ErrUnknownLCAT is returned when an enhanced team file names a labor
// category outside model.LCATOptions.
var ErrUnknownLCAT = errors.New("unknown LCAT values")

// Enhanced team columns.
const (
	colName          = "name"
	colLCAT          = "lcat"
	colPricedSalary  = "priced_salary"
	colCurrentSalary = "current_salary"
	colHoursPerMonth = "hours_per_month"
)

// RequiredEnhancedColumns must be present for an enhanced team import.
var RequiredEnhancedColumns = []string{colName, colLCAT, colPricedSalary, colCurrentSalary, colHoursPerMonth}

// Monthly actual columns are named "hours_MM/YY" and "revenue_MM/YY".
const (
	hoursPrefix   = "hours_"
	revenuePrefix = "revenue_"
)

// ParseEmployees validates a roster table and converts the rows without
// issues. Rows with issues are left out; the report says why.
func ParseEmployees(t Table) ([]model.Employee, ValidationReport) {
	report := ValidateEmployees(t)
	if len(report.MissingColumns) > 0 {
		return nil, report
	}

	idx := func(c string) int { return t.Index(c) }
	var out []model.Employee
	for i, row := range t.Rows {
		if !report.RowValid(i) {
			continue
		}
		e := model.Employee{
			Name:          cellValue(row, idx(colEmployeeName)),
			LaborCategory: cellValue(row, idx(colLaborCategory)),
			Department:    cellValue(row, idx(colDepartment)),
			Status:        cellValue(row, idx(colStatus)),
			Location:      cellValue(row, idx(colLocation)),
			Manager:       cellValue(row, idx(colManager)),
			Skills:        cellValue(row, idx(colSkills)),
			Notes:         cellValue(row, idx(colNotes)),
		}
		if v := cellValue(row, idx(colSalary)); v != "" {
			e.Salary, _ = parseAmount(v)
		}
		if v := cellValue(row, idx(colStartDate)); v != "" {
			e.StartDate, _ = parseDate(v)
		}
		e, err := model.NewEmployee(e)
		if err != nil {
			continue
		}
		out = append(out, e)
	}
	return out, report
}

// ParseEnhancedEmployees converts an enhanced team table. Missing required
// columns or LCAT values outside the known list reject the whole file; rows
// whose numbers do not parse are skipped and counted.
func ParseEnhancedEmployees(t Table) ([]model.EnhancedEmployee, int, error) {
	if missing := t.Missing(RequiredEnhancedColumns...); len(missing) > 0 {
		return nil, 0, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	lcatIdx := t.Index(colLCAT)
	if unknown := unknownLCATs(t, lcatIdx); len(unknown) > 0 {
		return nil, 0, fmt.Errorf("%w: %s", ErrUnknownLCAT, strings.Join(unknown, ", "))
	}

	var (
		out     []model.EnhancedEmployee
		skipped int
	)
	for _, row := range t.Rows {
		e, err := enhancedFromRow(t, row)
		if err != nil {
			skipped++
			continue
		}
		out = append(out, e)
	}
	return out, skipped, nil
}

func enhancedFromRow(t Table, row []string) (model.EnhancedEmployee, error) {
	get := func(c string) string { return cellValue(row, t.Index(c)) }
	e := model.EnhancedEmployee{
		Name:          get(colName),
		LCAT:          get(colLCAT),
		Department:    get(colDepartment),
		Location:      get(colLocation),
		Manager:       get(colManager),
		Skills:        get(colSkills),
		Notes:         get(colNotes),
		HoursPerMonth: model.StandardHoursPerMonth,
	}

	var err error
	if v := get(colPricedSalary); v != "" {
		if e.PricedSalary, err = parseAmount(v); err != nil {
			return e, err
		}
	}
	if v := get(colCurrentSalary); v != "" {
		if e.CurrentSalary, err = parseAmount(v); err != nil {
			return e, err
		}
	}
	if v := get(colHoursPerMonth); v != "" {
		if e.HoursPerMonth, err = parseAmount(v); err != nil {
			return e, err
		}
	}
	if v := get(colStartDate); v != "" {
		if e.StartDate, err = parseDate(v); err != nil {
			return e, err
		}
	}
	e.Monthly = monthlyFromRow(t, row)
	return model.NewEnhancedEmployee(e)
}

// monthlyFromRow collects hours_MM/YY and revenue_MM/YY columns in header order.
func monthlyFromRow(t Table, row []string) []model.MonthlyActual {
	var out []model.MonthlyActual
	pos := make(map[string]int)
	for i, h := range t.Headers {
		lower := strings.ToLower(h)
		var month string
		switch {
		case strings.HasPrefix(lower, hoursPrefix) && lower != colHoursPerMonth:
			month = h[len(hoursPrefix):]
		case strings.HasPrefix(lower, revenuePrefix):
			month = h[len(revenuePrefix):]
		default:
			continue
		}
		v, err := parseAmount(cellValue(row, i))
		if err != nil {
			continue
		}
		j, ok := pos[month]
		if !ok {
			j = len(out)
			pos[month] = j
			out = append(out, model.MonthlyActual{Month: month})
		}
		if strings.HasPrefix(lower, hoursPrefix) {
			out[j].Hours = v
		} else {
			out[j].Revenue = v
		}
	}
	return out
}

func unknownLCATs(t Table, idx int) []string {
	known := make(map[string]bool, len(model.LCATOptions))
	for _, l := range model.LCATOptions {
		known[l] = true
	}
	seen := make(map[string]bool)
	var out []string
	for _, row := range t.Rows {
		v := cellValue(row, idx)
		if v == "" || known[v] || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
