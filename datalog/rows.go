package datalog

// RowSeq is the lazy, single-pass sequence of raw rows an untyped execution
// returns. Each Execute call produces a fresh RowSeq; one RowSeq must only
// be consumed by one goroutine, since the underlying engine cursor is
// stateful. Iterate with Next/Row, then check Err and Close:
//
//	seq, err := executor.Execute(ctx, query)
//	if err != nil { ... }
//	defer seq.Close()
//	for seq.Next() {
//		row := seq.Row()
//		...
//	}
//	if err := seq.Err(); err != nil { ... }
type RowSeq struct {
	rows    Rows
	current Row
	err     error
	closed  bool
}

func newRowSeq(rows Rows) *RowSeq {
	return &RowSeq{rows: rows}
}

// Next advances to the next row. It reports false once the sequence is
// exhausted, failed, or closed.
func (s *RowSeq) Next() bool {
	if s.closed || s.err != nil {
		return false
	}

	if !s.rows.Next() {
		return false
	}

	row, err := s.rows.Row()
	if err != nil {
		s.err = err
		return false
	}

	s.current = row

	return true
}

// Row returns the row Next advanced to. It must not be retained across
// calls to Next.
func (s *RowSeq) Row() Row {
	return s.current
}

// Err returns the first error encountered while iterating, if any.
func (s *RowSeq) Err() error {
	return s.err
}

// Close releases the underlying engine cursor. It is safe to call more
// than once.
func (s *RowSeq) Close() error {
	if s.closed {
		return nil
	}

	s.closed = true

	return s.rows.Close()
}
