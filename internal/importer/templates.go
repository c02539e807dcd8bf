package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
)

// Template formats.
const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
)

// column documents one template column on the Instructions sheet.
type column struct {
	name     string
	required bool
	help     string
}

type template struct {
	sheet   string
	columns []column
	rows    [][]any
}

// WriteTemplate writes an example import file for kind. xlsx templates have
// a styled header row and an Instructions sheet; csv templates carry only
// the data.
func WriteTemplate(w io.Writer, kind Kind, format string, now time.Time) error {
	tpl, err := templateFor(kind, now)
	if err != nil {
		return err
	}
	switch format {
	case FormatCSV:
		return writeCSVTemplate(w, tpl)
	case FormatXLSX:
		return writeXLSXTemplate(w, tpl)
	}
	return fmt.Errorf("template format %q: %w", format, ErrUnsupportedFormat)
}

func templateFor(kind Kind, now time.Time) (template, error) {
	switch kind {
	case KindEmployees:
		return template{
			sheet: "Employees",
			columns: []column{
				{colEmployeeName, true, "Full name; must be unique in the file"},
				{colLaborCategory, true, "Labor category"},
				{colDepartment, false, "Defaults to Engineering"},
				{colStatus, false, "Active, On Leave, Contractor or Part-time"},
				{colSalary, false, "Annual salary, non-negative"},
				{colStartDate, false, "YYYY-MM-DD"},
				{colLocation, false, ""},
				{colManager, false, ""},
				{colSkills, false, "Comma separated"},
				{colNotes, false, ""},
			},
			rows: [][]any{
				{"John Smith", "Senior Engineer", "Engineering", "Active", 95000, "2024-01-15", "Remote", "Alice Johnson", "Go, SQL", "Tech lead"},
				{"Jane Doe", "Data Analyst", "Analytics", "Active", 78000, "2024-03-01", "On-site", "Bob Wilson", "Python, Tableau", ""},
			},
		}, nil
	case KindEnhanced:
		return template{
			sheet: "Team",
			columns: []column{
				{colName, true, "Full name"},
				{colLCAT, true, "One of the known labor categories"},
				{colDepartment, false, ""},
				{colLocation, false, ""},
				{colPricedSalary, true, "Annual salary priced into the contract"},
				{colCurrentSalary, true, "Annual salary paid today"},
				{colHoursPerMonth, true, "Defaults to 160 when blank"},
				{colStartDate, false, "YYYY-MM-DD"},
				{colManager, false, ""},
				{colSkills, false, ""},
				{colNotes, false, ""},
			},
			rows: [][]any{
				{"John Smith", "PM", "Management", "Remote", 120000, 125000, 160, "2024-01-15", "Alice Johnson", "Project Management, Agile", "Team lead"},
				{"Jane Doe", "SA/Eng Lead", "Engineering", "On-site", 110000, 115000, 160, "2024-02-01", "Bob Wilson", "Python, AWS, React", "Senior developer"},
			},
		}, nil
	case KindODC:
		date := now.Format(dateLayout)
		return template{
			sheet: "ODC_Data",
			columns: []column{
				{colCategory, true, "Travel, Equipment, Software, Training, Subcontractor, Materials or Other"},
				{colDescription, true, "What was bought"},
				{colVendor, false, ""},
				{colAmount, true, "Cost in dollars"},
				{colDate, false, "YYYY-MM-DD; defaults to today"},
				{colStatus, false, "Planned, Committed, Invoiced or Paid; defaults to Planned"},
				{colNotes, false, ""},
			},
			rows: [][]any{
				{"Travel", "Client site visit", "Delta Airlines", 2500, date, "Planned", "Quarterly review"},
				{"Equipment", "Laptop for new hire", "Dell", 1800, date, "Committed", ""},
				{"Software", "Annual IDE licenses", "JetBrains", 1200, date, "Paid", ""},
				{"Training", "Cloud certification course", "AWS", 3000, date, "Planned", ""},
				{"Subcontractor", "UX research support", "Design Co", 15000, date, "Invoiced", ""},
			},
		}, nil
	case KindIndirect:
		return indirectTemplate(now.Year()), nil
	}
	return template{}, fmt.Errorf("no template for %q", kind)
}

// indirectTemplate lays out two years of monthly periods starting in January
// of year, one row per pool plus a total.
func indirectTemplate(year int) template {
	headers := []column{{IndirectHeader, true, "Pool name: Fringe, Overhead or G&A"}}
	fringe := []any{rowFringe}
	overhead := []any{rowOverhead}
	ga := []any{rowGA}
	total := []any{"Total Indirect"}
	for y := year; y < year+2; y++ {
		for m := 1; m <= 12; m++ {
			period := time.Date(y, time.Month(m), 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
			headers = append(headers, column{period, false, ""})
			f, o, g := 25000+1000*m, 22000+900*m, 15000+600*m
			fringe = append(fringe, f)
			overhead = append(overhead, o)
			ga = append(ga, g)
			total = append(total, f+o+g)
		}
	}
	return template{sheet: "Indirect_Costs", columns: headers, rows: [][]any{fringe, overhead, ga, total}}
}

func writeCSVTemplate(w io.Writer, tpl template) error {
	cw := csv.NewWriter(w)
	header := make([]string, len(tpl.columns))
	for i, c := range tpl.columns {
		header[i] = c.name
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range tpl.rows {
		rec := make([]string, len(row))
		for i, v := range row {
			switch v := v.(type) {
			case int:
				rec[i] = strconv.Itoa(v)
			default:
				rec[i] = fmt.Sprint(v)
			}
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeXLSXTemplate(w io.Writer, tpl template) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", tpl.sheet); err != nil {
		return err
	}
	header := make([]any, len(tpl.columns))
	for i, c := range tpl.columns {
		header[i] = c.name
	}
	if err := f.SetSheetRow(tpl.sheet, "A1", &header); err != nil {
		return err
	}
	for i, row := range tpl.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(tpl.sheet, cell, &row); err != nil {
			return err
		}
	}

	style, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"366092"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(tpl.columns), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(tpl.sheet, "A1", last, style); err != nil {
		return err
	}
	lastCol, err := excelize.ColumnNumberToName(len(tpl.columns))
	if err != nil {
		return err
	}
	if err := f.SetColWidth(tpl.sheet, "A", lastCol, 18); err != nil {
		return err
	}

	if err := writeInstructions(f, tpl, style); err != nil {
		return err
	}
	return f.Write(w)
}

func writeInstructions(f *excelize.File, tpl template, headerStyle int) error {
	const sheet = "Instructions"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	rows := [][]any{{"Column", "Required", "Description"}}
	for _, c := range tpl.columns {
		if c.help == "" && !c.required {
			continue
		}
		req := "No"
		if c.required {
			req = "Yes"
		}
		rows = append(rows, []any{c.name, req, c.help})
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(sheet, "A1", "C1", headerStyle); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "C", "C", 60)
}
