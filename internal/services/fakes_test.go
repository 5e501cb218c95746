package services

import (
	"context"
	"fmt"
	"reflect"

	"github.com/jackc/pgx/v5"
)

// fakeDB satisfies DB with per-call hooks. Unset hooks behave like an empty
// database: queries return no rows, statements affect nothing.
type fakeDB struct {
	QueryFunc    func(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRowFunc func(ctx context.Context, sql string, args ...any) Row
	ExecFunc     func(ctx context.Context, sql string, args ...any) (Result, error)
}

func (f *fakeDB) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	if f.QueryFunc != nil {
		return f.QueryFunc(ctx, sql, args...)
	}
	return &fakeRows{}, nil
}

func (f *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) Row {
	if f.QueryRowFunc != nil {
		return f.QueryRowFunc(ctx, sql, args...)
	}
	return rowFromValues()
}

func (f *fakeDB) Exec(ctx context.Context, sql string, args ...any) (Result, error) {
	if f.ExecFunc != nil {
		return f.ExecFunc(ctx, sql, args...)
	}
	return fakeResult{}, nil
}

type fakeResult struct {
	rowsAffected int64
}

func (r fakeResult) RowsAffected() int64 {
	return r.rowsAffected
}

type fakeRow struct {
	values []any
	err    error
}

// rowFromValues builds a Row that scans the given values in order. With no
// values it reports pgx.ErrNoRows, matching a miss on a real query.
func rowFromValues(values ...any) *fakeRow {
	return &fakeRow{values: values}
}

func rowWithError(err error) *fakeRow {
	return &fakeRow{err: err}
}

func (r *fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(r.values) == 0 {
		return pgx.ErrNoRows
	}
	if len(dest) != len(r.values) {
		return fmt.Errorf("scan: %d destinations for %d values", len(dest), len(r.values))
	}
	for i, d := range dest {
		if err := assignValue(d, r.values[i]); err != nil {
			return err
		}
	}
	return nil
}

type fakeRows struct {
	rows [][]any
	idx  int
	err  error
}

func (r *fakeRows) Next() bool {
	if r.idx >= len(r.rows) {
		return false
	}
	r.idx++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.rows[r.idx-1]
	if len(dest) != len(row) {
		return fmt.Errorf("scan: %d destinations for %d values", len(dest), len(row))
	}
	for i, d := range dest {
		if err := assignValue(d, row[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeRows) Close() {}

func (r *fakeRows) Err() error { return r.err }

// assignValue copies value into the pointer dest the way a driver scan would,
// including wrapping plain values for pointer destinations (nullable columns).
func assignValue(dest, value any) error {
	dv := reflect.ValueOf(dest)
	if dv.Kind() != reflect.Ptr || dv.IsNil() {
		return fmt.Errorf("scan destination must be a non-nil pointer, got %T", dest)
	}
	elem := dv.Elem()

	if value == nil {
		elem.Set(reflect.Zero(elem.Type()))
		return nil
	}

	v := reflect.ValueOf(value)
	switch {
	case v.Type().AssignableTo(elem.Type()):
		elem.Set(v)
	case elem.Kind() == reflect.Ptr && v.Type().AssignableTo(elem.Type().Elem()):
		p := reflect.New(elem.Type().Elem())
		p.Elem().Set(v)
		elem.Set(p)
	case v.Type().ConvertibleTo(elem.Type()):
		elem.Set(v.Convert(elem.Type()))
	default:
		return fmt.Errorf("cannot scan %T into %T", value, dest)
	}
	return nil
}
