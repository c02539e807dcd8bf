package importer

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/theirongolddev/seasfin/internal/model"
	"github.com/theirongolddev/seasfin/internal/store"
)

// Kind names what an import file contains.
type Kind string

// Import kinds.
const (
	KindEmployees Kind = "employees"
	KindEnhanced  Kind = "enhanced"
	KindODC       Kind = "odc"
	KindIndirect  Kind = "indirect"
	KindSnapshot  Kind = "snapshot"
)

// Kinds lists every import kind.
func Kinds() []Kind {
	return []Kind{KindEmployees, KindEnhanced, KindODC, KindIndirect, KindSnapshot}
}

// ParseKind maps a name to a Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if strings.EqualFold(s, string(k)) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown import kind %q", s)
}

// ImportResult counts what one file contributed.
type ImportResult struct {
	Imported int
	Skipped  int
	Report   *ValidationReport // roster imports only
}

// Batch holds the records parsed from one file, ready to be applied.
type Batch struct {
	Kind     Kind
	Source   string
	Skipped  int
	Report   *ValidationReport
	Document *Document

	Employees []model.Employee
	Enhanced  []model.EnhancedEmployee
	ODC       []model.ODCItem
	Indirect  []model.IndirectCostPeriod
}

// Len returns the number of records the batch will add or replace.
func (b *Batch) Len() int {
	n := len(b.Employees) + len(b.Enhanced) + len(b.ODC) + len(b.Indirect)
	if b.Document != nil {
		n += b.Document.Len()
	}
	return n
}

// Parse converts a table into a batch of the given kind. Snapshots are not
// tables; use ParseFile for them.
func Parse(kind Kind, t Table, now time.Time) (*Batch, error) {
	b := &Batch{Kind: kind}
	var err error
	switch kind {
	case KindEmployees:
		var report ValidationReport
		b.Employees, report = ParseEmployees(t)
		b.Report = &report
		b.Skipped = report.InvalidCount
		if len(report.MissingColumns) > 0 {
			err = fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(report.MissingColumns, ", "))
		}
	case KindEnhanced:
		b.Enhanced, b.Skipped, err = ParseEnhancedEmployees(t)
	case KindODC:
		b.ODC, b.Skipped, err = ParseODC(t, now)
	case KindIndirect:
		b.Indirect, err = ParseIndirect(t)
	default:
		err = fmt.Errorf("kind %q is not a table import", kind)
	}
	return b, err
}

// ParseFile reads and parses one file.
func ParseFile(kind Kind, path string, now time.Time) (*Batch, error) {
	if kind == KindSnapshot {
		f, err := os.Open(path) //nolint:gosec // path comes from the command line
		if err != nil {
			return nil, err
		}
		defer f.Close()
		doc, err := RestoreJSON(f)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		return &Batch{Kind: kind, Source: path, Document: &doc}, nil
	}

	t, err := ReadTableFile(path)
	if err != nil {
		return nil, err
	}
	b, err := Parse(kind, t, now)
	if b != nil {
		b.Source = path
	}
	if err != nil {
		return b, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// Apply adds the batch to the state. Indirect periods replace existing
// periods with the same key; snapshots replace the sections they carry.
func (b *Batch) Apply(st *store.State) ImportResult {
	res := ImportResult{Skipped: b.Skipped, Report: b.Report}
	for _, e := range b.Employees {
		st.AddEmployee(e)
		res.Imported++
	}
	for _, e := range b.Enhanced {
		st.AddEnhancedEmployee(e)
		res.Imported++
	}
	for _, o := range b.ODC {
		st.AddODC(o)
		res.Imported++
	}
	for _, p := range b.Indirect {
		st.UpsertIndirect(p)
		res.Imported++
	}
	if b.Document != nil {
		b.Document.Apply(st)
		res.Imported += b.Document.Len()
	}
	return res
}

// ImportEmployees validates a roster table and adds the rows without issues.
func ImportEmployees(t Table, st *store.State) (ImportResult, error) {
	return importTable(KindEmployees, t, st)
}

// ImportEnhancedEmployees adds the parseable rows of an enhanced team table.
func ImportEnhancedEmployees(t Table, st *store.State) (ImportResult, error) {
	return importTable(KindEnhanced, t, st)
}

// ImportODC adds the complete rows of an ODC table.
func ImportODC(t Table, st *store.State) (ImportResult, error) {
	return importTable(KindODC, t, st)
}

// ImportIndirect upserts the periods of an indirect cost sheet.
func ImportIndirect(t Table, st *store.State) (ImportResult, error) {
	return importTable(KindIndirect, t, st)
}

func importTable(kind Kind, t Table, st *store.State) (ImportResult, error) {
	b, err := Parse(kind, t, st.Now())
	if err != nil {
		var res ImportResult
		if b != nil {
			res.Report = b.Report
		}
		return res, err
	}
	return b.Apply(st), nil
}

// ProgressFunc is called as files finish parsing.
// current is the number of files parsed so far, total is the file count.
type ProgressFunc func(current, total int)

// Options tunes ImportFiles.
type Options struct {
	Workers  int // defaults to GOMAXPROCS
	Progress ProgressFunc
	Now      time.Time
}

// ParseFiles parses files of one kind concurrently. Batches come back in
// argument order. The first unreadable file cancels the rest.
func ParseFiles(ctx context.Context, kind Kind, paths []string, opts Options) ([]*Batch, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	workers := opts.Workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(paths) {
		workers = len(paths)
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	batches := make([]*Batch, len(paths))
	var processed atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			b, err := ParseFile(kind, path, now)
			if err != nil {
				return err
			}
			batches[i] = b
			n := processed.Add(1)
			if opts.Progress != nil {
				opts.Progress(int(n), len(paths))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return batches, nil
}

// ImportFiles parses files concurrently, then applies them to the state one
// at a time in argument order. Nothing is applied if any file fails to parse.
func ImportFiles(ctx context.Context, st *store.State, kind Kind, paths []string, opts Options) ([]ImportResult, error) {
	if opts.Now.IsZero() {
		opts.Now = st.Now()
	}
	batches, err := ParseFiles(ctx, kind, paths, opts)
	if err != nil {
		return nil, err
	}
	results := make([]ImportResult, len(batches))
	for i, b := range batches {
		results[i] = b.Apply(st)
	}
	return results, nil
}
