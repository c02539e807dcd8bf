package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/seasfin/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Workspace persists a State between command invocations in a SQLite file.
// Save replaces the whole stored state.
type Workspace struct {
	db   *sql.DB
	path string
}

// OpenWorkspace opens or creates the workspace database at the given path.
func OpenWorkspace(dbPath string) (*Workspace, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, fmt.Errorf("creating workspace dir: %w", err)
	}

	if err := migrateSchema(dbPath); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening workspace db: %w", err)
	}
	return &Workspace{db: db, path: dbPath}, nil
}

// Path returns the workspace file path.
func (w *Workspace) Path() string { return w.path }

// Close closes the workspace database.
func (w *Workspace) Close() error {
	return w.db.Close()
}

const (
	keyProject  = "project"
	keyBudget   = "budget"
	keyContract = "contract"
	keyRates    = "rates"
)

// Save writes the state, replacing everything previously stored.
func (w *Workspace) Save(ctx context.Context, st *State) error {
	snap := st.Snapshot()

	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"settings", "employees", "enhanced_employees", "expenses", "revenue", "odc_items", "indirect_costs"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	settings := map[string]any{
		keyProject:  snap.Project,
		keyBudget:   snap.Budget,
		keyContract: snap.Contract,
		keyRates:    snap.Rates,
	}
	for k, v := range settings {
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encoding %s settings: %w", k, err)
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO settings (key, value) VALUES (?, ?)", k, string(raw)); err != nil {
			return fmt.Errorf("saving %s settings: %w", k, err)
		}
	}

	for i, e := range snap.Employees {
		_, err := tx.ExecContext(ctx, `INSERT INTO employees
			(seq, id, name, labor_category, department, status, salary, start_date,
			 location, manager, skills, notes, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			i, e.ID, e.Name, e.LaborCategory, e.Department, e.Status, e.Salary, formatTime(e.StartDate),
			e.Location, e.Manager, e.Skills, e.Notes, formatTime(e.CreatedAt),
		)
		if err != nil {
			return fmt.Errorf("saving employee %d: %w", e.ID, err)
		}
	}

	for i, e := range snap.EnhancedEmployees {
		monthly, err := json.Marshal(e.Monthly)
		if err != nil {
			return fmt.Errorf("encoding monthly actuals for %q: %w", e.Name, err)
		}
		_, err = tx.ExecContext(ctx, `INSERT INTO enhanced_employees
			(seq, id, name, lcat, department, location, priced_salary, current_salary,
			 hours_per_month, start_date, manager, skills, notes, monthly, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			i, e.ID, e.Name, e.LCAT, e.Department, e.Location, e.PricedSalary, e.CurrentSalary,
			e.HoursPerMonth, formatTime(e.StartDate), e.Manager, e.Skills, e.Notes, string(monthly),
			formatTime(e.CreatedAt),
		)
		if err != nil {
			return fmt.Errorf("saving enhanced employee %d: %w", e.ID, err)
		}
	}

	for i, e := range snap.Expenses {
		_, err := tx.ExecContext(ctx, `INSERT INTO expenses (seq, id, category, amount, description, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			i, e.ID, e.Category, e.Amount, e.Description, formatTime(e.CreatedAt))
		if err != nil {
			return fmt.Errorf("saving expense %d: %w", e.ID, err)
		}
	}

	for i, r := range snap.Revenue {
		_, err := tx.ExecContext(ctx, `INSERT INTO revenue (seq, id, source, amount, created_at)
			VALUES (?, ?, ?, ?, ?)`,
			i, r.ID, r.Source, r.Amount, formatTime(r.CreatedAt))
		if err != nil {
			return fmt.Errorf("saving revenue %d: %w", r.ID, err)
		}
	}

	for i, o := range snap.ODCItems {
		_, err := tx.ExecContext(ctx, `INSERT INTO odc_items
			(seq, id, ref, category, description, vendor, amount, date, status, notes, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			i, o.ID, o.Ref, o.Category, o.Description, o.Vendor, o.Amount, formatTime(o.Date),
			o.Status, o.Notes, formatTime(o.CreatedAt),
		)
		if err != nil {
			return fmt.Errorf("saving odc item %s: %w", o.Ref, err)
		}
	}

	for i, p := range snap.IndirectCosts {
		_, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO indirect_costs
			(period, seq, id, fringe, overhead, ga, total, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			p.Period, i, p.ID, p.Fringe, p.Overhead, p.GA, p.Total, formatTime(p.CreatedAt))
		if err != nil {
			return fmt.Errorf("saving indirect period %s: %w", p.Period, err)
		}
	}

	return tx.Commit()
}

// Initialized reports whether a state has ever been saved to the workspace.
func (w *Workspace) Initialized(ctx context.Context) (bool, error) {
	var n int
	if err := w.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM settings").Scan(&n); err != nil {
		return false, fmt.Errorf("checking workspace: %w", err)
	}
	return n > 0, nil
}

// Load reads the stored state. An empty workspace yields a default State.
func (w *Workspace) Load(ctx context.Context, opts ...Option) (*State, error) {
	st := New(opts...)
	snap := st.Snapshot()

	found, err := w.loadSettings(ctx, &snap)
	if err != nil {
		return nil, err
	}
	if !found {
		return st, nil
	}

	if snap.Employees, err = w.loadEmployees(ctx); err != nil {
		return nil, err
	}
	if snap.EnhancedEmployees, err = w.loadEnhanced(ctx); err != nil {
		return nil, err
	}
	if snap.Expenses, err = w.loadExpenses(ctx); err != nil {
		return nil, err
	}
	if snap.Revenue, err = w.loadRevenue(ctx); err != nil {
		return nil, err
	}
	if snap.ODCItems, err = w.loadODC(ctx); err != nil {
		return nil, err
	}
	if snap.IndirectCosts, err = w.loadIndirect(ctx); err != nil {
		return nil, err
	}

	st.Restore(snap)
	return st, nil
}

func (w *Workspace) loadSettings(ctx context.Context, snap *Snapshot) (bool, error) {
	rows, err := w.db.QueryContext(ctx, "SELECT key, value FROM settings")
	if err != nil {
		return false, fmt.Errorf("loading settings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	found := false
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return false, fmt.Errorf("scanning settings: %w", err)
		}
		var target any
		switch key {
		case keyProject:
			target = &snap.Project
		case keyBudget:
			target = &snap.Budget
		case keyContract:
			target = &snap.Contract
		case keyRates:
			target = &snap.Rates
		default:
			continue
		}
		if err := json.Unmarshal([]byte(value), target); err != nil {
			return false, fmt.Errorf("decoding %s settings: %w", key, err)
		}
		found = true
	}
	return found, rows.Err()
}

func (w *Workspace) loadEmployees(ctx context.Context) ([]model.Employee, error) {
	rows, err := w.db.QueryContext(ctx, `SELECT id, name, labor_category, department, status, salary,
		start_date, location, manager, skills, notes, created_at FROM employees ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("loading employees: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.Employee
	for rows.Next() {
		var e model.Employee
		var dept, status, start, loc, mgr, skills, notes sql.NullString
		var created string
		if err := rows.Scan(&e.ID, &e.Name, &e.LaborCategory, &dept, &status, &e.Salary,
			&start, &loc, &mgr, &skills, &notes, &created); err != nil {
			return nil, fmt.Errorf("scanning employee: %w", err)
		}
		e.Department, e.Status = dept.String, status.String
		e.Location, e.Manager, e.Skills, e.Notes = loc.String, mgr.String, skills.String, notes.String
		e.StartDate = parseTime(start.String)
		e.CreatedAt = parseTime(created)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (w *Workspace) loadEnhanced(ctx context.Context) ([]model.EnhancedEmployee, error) {
	rows, err := w.db.QueryContext(ctx, `SELECT id, name, lcat, department, location, priced_salary,
		current_salary, hours_per_month, start_date, manager, skills, notes, monthly, created_at
		FROM enhanced_employees ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("loading enhanced employees: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.EnhancedEmployee
	for rows.Next() {
		var e model.EnhancedEmployee
		var dept, loc, start, mgr, skills, notes, monthly sql.NullString
		var created string
		if err := rows.Scan(&e.ID, &e.Name, &e.LCAT, &dept, &loc, &e.PricedSalary, &e.CurrentSalary,
			&e.HoursPerMonth, &start, &mgr, &skills, &notes, &monthly, &created); err != nil {
			return nil, fmt.Errorf("scanning enhanced employee: %w", err)
		}
		e.Department, e.Location = dept.String, loc.String
		e.Manager, e.Skills, e.Notes = mgr.String, skills.String, notes.String
		e.StartDate = parseTime(start.String)
		e.CreatedAt = parseTime(created)
		if monthly.Valid && monthly.String != "" && monthly.String != "null" {
			if err := json.Unmarshal([]byte(monthly.String), &e.Monthly); err != nil {
				return nil, fmt.Errorf("decoding monthly actuals for %q: %w", e.Name, err)
			}
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (w *Workspace) loadExpenses(ctx context.Context) ([]model.Expense, error) {
	rows, err := w.db.QueryContext(ctx, `SELECT id, category, amount, description, created_at
		FROM expenses ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("loading expenses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.Expense
	for rows.Next() {
		var e model.Expense
		var desc sql.NullString
		var created string
		if err := rows.Scan(&e.ID, &e.Category, &e.Amount, &desc, &created); err != nil {
			return nil, fmt.Errorf("scanning expense: %w", err)
		}
		e.Description = desc.String
		e.CreatedAt = parseTime(created)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (w *Workspace) loadRevenue(ctx context.Context) ([]model.Revenue, error) {
	rows, err := w.db.QueryContext(ctx, `SELECT id, source, amount, created_at FROM revenue ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("loading revenue: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.Revenue
	for rows.Next() {
		var r model.Revenue
		var source sql.NullString
		var created string
		if err := rows.Scan(&r.ID, &source, &r.Amount, &created); err != nil {
			return nil, fmt.Errorf("scanning revenue: %w", err)
		}
		r.Source = source.String
		r.CreatedAt = parseTime(created)
		out = append(out, r)
	}
	return out, rows.Err()
}

func (w *Workspace) loadODC(ctx context.Context) ([]model.ODCItem, error) {
	rows, err := w.db.QueryContext(ctx, `SELECT id, ref, category, description, vendor, amount, date,
		status, notes, created_at FROM odc_items ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("loading odc items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.ODCItem
	for rows.Next() {
		var o model.ODCItem
		var vendor, date, notes sql.NullString
		var created string
		if err := rows.Scan(&o.ID, &o.Ref, &o.Category, &o.Description, &vendor, &o.Amount, &date,
			&o.Status, &notes, &created); err != nil {
			return nil, fmt.Errorf("scanning odc item: %w", err)
		}
		o.Vendor, o.Notes = vendor.String, notes.String
		o.Date = parseTime(date.String)
		o.CreatedAt = parseTime(created)
		out = append(out, o)
	}
	return out, rows.Err()
}

func (w *Workspace) loadIndirect(ctx context.Context) ([]model.IndirectCostPeriod, error) {
	rows, err := w.db.QueryContext(ctx, `SELECT period, id, fringe, overhead, ga, total, created_at
		FROM indirect_costs ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("loading indirect costs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.IndirectCostPeriod
	for rows.Next() {
		var p model.IndirectCostPeriod
		var created string
		if err := rows.Scan(&p.Period, &p.ID, &p.Fringe, &p.Overhead, &p.GA, &p.Total, &created); err != nil {
			return nil, fmt.Errorf("scanning indirect period: %w", err)
		}
		p.CreatedAt = parseTime(created)
		out = append(out, p)
	}
	return out, rows.Err()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}
