package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/seasfin/internal/model"
)

// ODC columns.
const (
	colCategory    = "category"
	colDescription = "description"
	colAmount      = "amount"
	colVendor      = "vendor"
	colDate        = "date"
)

// RequiredODCColumns must be present for an ODC import.
var RequiredODCColumns = []string{colCategory, colDescription, colAmount}

// IndirectHeader is the label of the first column of an indirect cost sheet.
const IndirectHeader = "Indirect Costs"

// Row labels read from an indirect cost sheet. Any other row, such as a
// "Total Indirect" line, is ignored.
const (
	rowFringe   = "Fringe"
	rowOverhead = "Overhead"
	rowGA       = "G&A"
)

// ParseODC converts an ODC table. A row is kept when it has a description and
// an amount that parses; the others are counted as skipped. Blank dates
// default to now.
func ParseODC(t Table, now time.Time) ([]model.ODCItem, int, error) {
	if missing := t.Missing(RequiredODCColumns...); len(missing) > 0 {
		return nil, 0, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	var (
		out     []model.ODCItem
		skipped int
	)
	idx := make(map[string]int, 7)
	for _, c := range []string{colCategory, colDescription, colAmount, colVendor, colStatus, colNotes, colDate} {
		idx[c] = t.Index(c)
	}
	for _, row := range t.Rows {
		get := func(c string) string { return cellValue(row, idx[c]) }
		desc, raw := get(colDescription), get(colAmount)
		if desc == "" || raw == "" {
			skipped++
			continue
		}
		amount, err := parseAmount(raw)
		if err != nil {
			skipped++
			continue
		}
		item := model.ODCItem{
			Category:    get(colCategory),
			Description: desc,
			Vendor:      get(colVendor),
			Amount:      amount,
			Status:      get(colStatus),
			Notes:       get(colNotes),
			Date:        now,
		}
		if v := get(colDate); v != "" {
			if d, err := parseDate(v); err == nil {
				item.Date = d
			}
		}
		item, err = model.NewODCItem(item)
		if err != nil {
			skipped++
			continue
		}
		out = append(out, item)
	}
	return out, skipped, nil
}

// ParseIndirect reads a wide indirect cost sheet: one column per period and
// one row per pool. Values that are blank or not numbers count as zero.
// Columns with blank or "Unnamed" headers are skipped, as are periods whose
// total is not positive.
func ParseIndirect(t Table) ([]model.IndirectCostPeriod, error) {
	if len(t.Headers) == 0 || normalizeHeader(t.Headers[0]) != normalizeHeader(IndirectHeader) {
		return nil, fmt.Errorf("%w: expected %q as the first column", ErrMissingColumns, IndirectHeader)
	}

	pools := make(map[string][]string, 3)
	for _, row := range t.Rows {
		label := cellValue(row, 0)
		for _, want := range []string{rowFringe, rowOverhead, rowGA} {
			if _, seen := pools[want]; !seen && strings.EqualFold(label, want) {
				pools[want] = row
			}
		}
	}
	value := func(pool string, col int) float64 {
		v, err := parseAmount(cellValue(pools[pool], col))
		if err != nil {
			return 0
		}
		return v
	}

	var out []model.IndirectCostPeriod
	for col := 1; col < len(t.Headers); col++ {
		header := t.Headers[col]
		if header == "" || strings.HasPrefix(header, "Unnamed") {
			continue
		}
		p, err := model.NewIndirectCostPeriod(header, value(rowFringe, col), value(rowOverhead, col), value(rowGA, col))
		if err != nil || p.Total <= 0 {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}
