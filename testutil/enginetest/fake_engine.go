// Package enginetest provides an in-memory datalog.Engine double with
// fixture results keyed by rendered query text, for testing executor and
// dispatch code without a database.
package enginetest

import (
	"context"
	"sync"

	"github.com/peergraph/datalog-client-go/datalog"
)

// FakeEngine implements datalog.Engine. Results and errors are fixed per
// rendered query text before the test runs; every call is recorded for
// inspection afterwards.
type FakeEngine struct {
	mu      sync.Mutex
	results map[string][]datalog.Row
	errors  map[string]error
	calls   []RecordedCall
}

// RecordedCall captures one Query invocation.
type RecordedCall struct {
	QueryText string
	Args      []datalog.Value
}

// NewFakeEngine creates an empty FakeEngine. Queries without a fixture
// return an empty result set.
func NewFakeEngine() *FakeEngine {
	return &FakeEngine{
		results: make(map[string][]datalog.Row),
		errors:  make(map[string]error),
	}
}

// FixResult fixes the rows returned for the given rendered query text.
func (f *FakeEngine) FixResult(queryText string, rows ...datalog.Row) *FakeEngine {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.results[queryText] = rows

	return f
}

// FixError fixes the error returned for the given rendered query text.
func (f *FakeEngine) FixError(queryText string, err error) *FakeEngine {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.errors[queryText] = err

	return f
}

// Query implements datalog.Engine.
func (f *FakeEngine) Query(_ context.Context, queryText string, args ...datalog.Value) (datalog.Rows, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	argsCopy := make([]datalog.Value, len(args))
	copy(argsCopy, args)
	f.calls = append(f.calls, RecordedCall{QueryText: queryText, Args: argsCopy})

	if err, exists := f.errors[queryText]; exists {
		return nil, err
	}

	return NewSliceRows(f.results[queryText]...), nil
}

// Calls returns a copy of all recorded Query invocations.
func (f *FakeEngine) Calls() []RecordedCall {
	f.mu.Lock()
	defer f.mu.Unlock()

	calls := make([]RecordedCall, len(f.calls))
	copy(calls, f.calls)

	return calls
}

// CallCount returns the number of recorded Query invocations.
func (f *FakeEngine) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.calls)
}

// LastCall returns the most recent Query invocation and whether one exists.
func (f *FakeEngine) LastCall() (RecordedCall, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.calls) == 0 {
		return RecordedCall{}, false
	}

	return f.calls[len(f.calls)-1], true
}

// Reset clears all fixtures and recorded calls.
func (f *FakeEngine) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.results = make(map[string][]datalog.Row)
	f.errors = make(map[string]error)
	f.calls = nil
}

var _ datalog.Engine = (*FakeEngine)(nil)

// SliceRows implements datalog.Rows over an in-memory slice. Closed returns
// whether Close has been called, so tests can assert the cursor was released.
type SliceRows struct {
	rows   []datalog.Row
	pos    int
	closed bool
}

// NewSliceRows creates a cursor over the given rows.
func NewSliceRows(rows ...datalog.Row) *SliceRows {
	return &SliceRows{rows: rows}
}

func (s *SliceRows) Next() bool {
	if s.closed || s.pos >= len(s.rows) {
		return false
	}
	s.pos++

	return true
}

func (s *SliceRows) Row() (datalog.Row, error) {
	return s.rows[s.pos-1], nil
}

func (s *SliceRows) Close() error {
	s.closed = true

	return nil
}

// Closed reports whether Close has been called.
func (s *SliceRows) Closed() bool {
	return s.closed
}

var _ datalog.Rows = (*SliceRows)(nil)

// ErrRows implements datalog.Rows whose first Row call fails with the given
// error, for testing decode error paths.
type ErrRows struct {
	rowErr  error
	yielded bool
	closed  bool
}

// NewErrRows creates a cursor that yields one failing row.
func NewErrRows(rowErr error) *ErrRows {
	return &ErrRows{rowErr: rowErr}
}

func (e *ErrRows) Next() bool {
	if e.closed || e.yielded {
		return false
	}
	e.yielded = true

	return true
}

func (e *ErrRows) Row() (datalog.Row, error) {
	return nil, e.rowErr
}

func (e *ErrRows) Close() error {
	e.closed = true

	return nil
}

var _ datalog.Rows = (*ErrRows)(nil)
