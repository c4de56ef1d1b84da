package datalog

import (
	"errors"
	"fmt"
)

// RowDecoder decodes one native row into the declared output shape R.
// Decoding is all-or-nothing per row: a partially decoded row is never
// surfaced. Implementations are stateless values resolved where a typed
// query is constructed.
type RowDecoder[R any] interface {
	// Arity returns the fixed number of columns a row must have, or a
	// negative value when the shape accepts rows of any length.
	Arity() int

	// DecodeRow decodes a full row. It fails with ErrArityMismatch when the
	// row length disagrees with Arity, and with ErrTypeMismatch when a
	// positional value cannot be coerced.
	DecodeRow(row Row) (R, error)
}

func checkRowArity(declared, actual int) error {
	if declared >= 0 && declared != actual {
		return errors.Join(
			ErrArityMismatch,
			fmt.Errorf("declared output arity %d, row has %d values", declared, actual),
		)
	}

	return nil
}

func decodeAt[T any](codec Codec[T], row Row, position int) (T, error) {
	decoded, err := codec.FromNative(row[position])
	if err != nil {
		var zero T
		return zero, errors.Join(err, fmt.Errorf("at row position %d", position))
	}

	return decoded, nil
}

// Unshaped returns the decoder for raw rows of any length. It never fails.
func Unshaped() RowDecoder[Row] {
	return unshapedDecoder{}
}

type unshapedDecoder struct{}

func (unshapedDecoder) Arity() int {
	return -1
}

func (unshapedDecoder) DecodeRow(row Row) (Row, error) {
	copied := make(Row, len(row))
	copy(copied, row)

	return copied, nil
}

// Shape1 returns the decoder for single-column rows, decoding straight to A
// without a tuple wrapper.
func Shape1[A any](c1 Codec[A]) RowDecoder[A] {
	return shape1[A]{c1: c1}
}

type shape1[A any] struct {
	c1 Codec[A]
}

func (shape1[A]) Arity() int {
	return 1
}

func (d shape1[A]) DecodeRow(row Row) (A, error) {
	var zero A

	if err := checkRowArity(1, len(row)); err != nil {
		return zero, err
	}

	return decodeAt(d.c1, row, 0)
}

// Tuple2 is a decoded two-column row.
type Tuple2[A, B any] struct {
	V1 A
	V2 B
}

// Shape2 returns the decoder for two-column rows.
func Shape2[A, B any](c1 Codec[A], c2 Codec[B]) RowDecoder[Tuple2[A, B]] {
	return shape2[A, B]{c1: c1, c2: c2}
}

type shape2[A, B any] struct {
	c1 Codec[A]
	c2 Codec[B]
}

func (shape2[A, B]) Arity() int {
	return 2
}

func (d shape2[A, B]) DecodeRow(row Row) (Tuple2[A, B], error) {
	var zero Tuple2[A, B]

	if err := checkRowArity(2, len(row)); err != nil {
		return zero, err
	}

	v1, err := decodeAt(d.c1, row, 0)
	if err != nil {
		return zero, err
	}

	v2, err := decodeAt(d.c2, row, 1)
	if err != nil {
		return zero, err
	}

	return Tuple2[A, B]{V1: v1, V2: v2}, nil
}

// Tuple3 is a decoded three-column row.
type Tuple3[A, B, C any] struct {
	V1 A
	V2 B
	V3 C
}

// Shape3 returns the decoder for three-column rows.
func Shape3[A, B, C any](c1 Codec[A], c2 Codec[B], c3 Codec[C]) RowDecoder[Tuple3[A, B, C]] {
	return shape3[A, B, C]{c1: c1, c2: c2, c3: c3}
}

type shape3[A, B, C any] struct {
	c1 Codec[A]
	c2 Codec[B]
	c3 Codec[C]
}

func (shape3[A, B, C]) Arity() int {
	return 3
}

func (d shape3[A, B, C]) DecodeRow(row Row) (Tuple3[A, B, C], error) {
	var zero Tuple3[A, B, C]

	if err := checkRowArity(3, len(row)); err != nil {
		return zero, err
	}

	v1, err := decodeAt(d.c1, row, 0)
	if err != nil {
		return zero, err
	}

	v2, err := decodeAt(d.c2, row, 1)
	if err != nil {
		return zero, err
	}

	v3, err := decodeAt(d.c3, row, 2)
	if err != nil {
		return zero, err
	}

	return Tuple3[A, B, C]{V1: v1, V2: v2, V3: v3}, nil
}

// Tuple4 is a decoded four-column row.
type Tuple4[A, B, C, D any] struct {
	V1 A
	V2 B
	V3 C
	V4 D
}

// Shape4 returns the decoder for four-column rows.
func Shape4[A, B, C, D any](c1 Codec[A], c2 Codec[B], c3 Codec[C], c4 Codec[D]) RowDecoder[Tuple4[A, B, C, D]] {
	return shape4[A, B, C, D]{c1: c1, c2: c2, c3: c3, c4: c4}
}

type shape4[A, B, C, D any] struct {
	c1 Codec[A]
	c2 Codec[B]
	c3 Codec[C]
	c4 Codec[D]
}

func (shape4[A, B, C, D]) Arity() int {
	return 4
}

func (d shape4[A, B, C, D]) DecodeRow(row Row) (Tuple4[A, B, C, D], error) {
	var zero Tuple4[A, B, C, D]

	if err := checkRowArity(4, len(row)); err != nil {
		return zero, err
	}

	v1, err := decodeAt(d.c1, row, 0)
	if err != nil {
		return zero, err
	}

	v2, err := decodeAt(d.c2, row, 1)
	if err != nil {
		return zero, err
	}

	v3, err := decodeAt(d.c3, row, 2)
	if err != nil {
		return zero, err
	}

	v4, err := decodeAt(d.c4, row, 3)
	if err != nil {
		return zero, err
	}

	return Tuple4[A, B, C, D]{V1: v1, V2: v2, V3: v3, V4: v4}, nil
}

// Tuple5 is a decoded five-column row.
type Tuple5[A, B, C, D, E any] struct {
	V1 A
	V2 B
	V3 C
	V4 D
	V5 E
}

// Shape5 returns the decoder for five-column rows.
func Shape5[A, B, C, D, E any](
	c1 Codec[A],
	c2 Codec[B],
	c3 Codec[C],
	c4 Codec[D],
	c5 Codec[E],
) RowDecoder[Tuple5[A, B, C, D, E]] {
	return shape5[A, B, C, D, E]{c1: c1, c2: c2, c3: c3, c4: c4, c5: c5}
}

type shape5[A, B, C, D, E any] struct {
	c1 Codec[A]
	c2 Codec[B]
	c3 Codec[C]
	c4 Codec[D]
	c5 Codec[E]
}

func (shape5[A, B, C, D, E]) Arity() int {
	return 5
}

func (d shape5[A, B, C, D, E]) DecodeRow(row Row) (Tuple5[A, B, C, D, E], error) {
	var zero Tuple5[A, B, C, D, E]

	if err := checkRowArity(5, len(row)); err != nil {
		return zero, err
	}

	v1, err := decodeAt(d.c1, row, 0)
	if err != nil {
		return zero, err
	}

	v2, err := decodeAt(d.c2, row, 1)
	if err != nil {
		return zero, err
	}

	v3, err := decodeAt(d.c3, row, 2)
	if err != nil {
		return zero, err
	}

	v4, err := decodeAt(d.c4, row, 3)
	if err != nil {
		return zero, err
	}

	v5, err := decodeAt(d.c5, row, 4)
	if err != nil {
		return zero, err
	}

	return Tuple5[A, B, C, D, E]{V1: v1, V2: v2, V3: v3, V4: v4, V5: v5}, nil
}
