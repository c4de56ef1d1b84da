package datalog

import (
	"errors"
	"fmt"
)

// The typed query wrappers form a bounded, mechanically written family, one
// per input arity from 0 to MaxInputArity. Go has no variadic type
// parameters, so the family cannot be collapsed into a single generic type;
// writing it out keeps argument counts a compile-time property instead of a
// runtime reflection branch.

// MaxInputArity is the highest declared input arity a typed wrapper supports.
const MaxInputArity = 8

// validateTypedShape checks the construction-time consistency contract of a
// typed wrapper: the declared input arity must equal the number of scalar
// :in sources, and the declared output arity must equal the :find width.
func validateTypedShape(base Query, outputArity, declaredInputArity int) error {
	if scalars := base.In().ScalarArity(); scalars != declaredInputArity {
		return errors.Join(
			ErrInvalidQueryShape,
			fmt.Errorf("declared input arity %d, query has %d scalar input sources", declaredInputArity, scalars),
		)
	}

	if outputArity >= 0 && base.Find().Len() != outputArity {
		return errors.Join(
			ErrInvalidQueryShape,
			fmt.Errorf("declared output arity %d, query finds %d columns", outputArity, base.Find().Len()),
		)
	}

	return nil
}

// TypedQuery0 wraps a query taking no caller arguments and producing rows of
// shape R. Wrapping never alters the rendered query text; it only attaches
// the static shape metadata the dispatch surface and executor rely on.
type TypedQuery0[R any] struct {
	base Query
	out  RowDecoder[R]
}

// NewTypedQuery0 wraps base with output shape out.
func NewTypedQuery0[R any](base Query, out RowDecoder[R]) (TypedQuery0[R], error) {
	if err := validateTypedShape(base, out.Arity(), 0); err != nil {
		return TypedQuery0[R]{}, err
	}

	return TypedQuery0[R]{base: base, out: out}, nil
}

// Base returns the wrapped query, unchanged.
func (q TypedQuery0[R]) Base() Query { return q.base }

// Render renders the wrapped query's canonical text.
func (q TypedQuery0[R]) Render() string { return q.base.Render() }

// TypedQuery1 wraps a query taking one caller argument.
type TypedQuery1[R, A1 any] struct {
	base Query
	out  RowDecoder[R]
	in1  Codec[A1]
}

// NewTypedQuery1 wraps base with output shape out and one input codec.
func NewTypedQuery1[R, A1 any](base Query, out RowDecoder[R], in1 Codec[A1]) (TypedQuery1[R, A1], error) {
	if err := validateTypedShape(base, out.Arity(), 1); err != nil {
		return TypedQuery1[R, A1]{}, err
	}

	return TypedQuery1[R, A1]{base: base, out: out, in1: in1}, nil
}

// Base returns the wrapped query, unchanged.
func (q TypedQuery1[R, A1]) Base() Query { return q.base }

// Render renders the wrapped query's canonical text.
func (q TypedQuery1[R, A1]) Render() string { return q.base.Render() }

// TypedQuery2 wraps a query taking two caller arguments.
type TypedQuery2[R, A1, A2 any] struct {
	base Query
	out  RowDecoder[R]
	in1  Codec[A1]
	in2  Codec[A2]
}

// NewTypedQuery2 wraps base with output shape out and two input codecs.
func NewTypedQuery2[R, A1, A2 any](
	base Query,
	out RowDecoder[R],
	in1 Codec[A1],
	in2 Codec[A2],
) (TypedQuery2[R, A1, A2], error) {
	if err := validateTypedShape(base, out.Arity(), 2); err != nil {
		return TypedQuery2[R, A1, A2]{}, err
	}

	return TypedQuery2[R, A1, A2]{base: base, out: out, in1: in1, in2: in2}, nil
}

// Base returns the wrapped query, unchanged.
func (q TypedQuery2[R, A1, A2]) Base() Query { return q.base }

// Render renders the wrapped query's canonical text.
func (q TypedQuery2[R, A1, A2]) Render() string { return q.base.Render() }

// TypedQuery3 wraps a query taking three caller arguments.
type TypedQuery3[R, A1, A2, A3 any] struct {
	base Query
	out  RowDecoder[R]
	in1  Codec[A1]
	in2  Codec[A2]
	in3  Codec[A3]
}

// NewTypedQuery3 wraps base with output shape out and three input codecs.
func NewTypedQuery3[R, A1, A2, A3 any](
	base Query,
	out RowDecoder[R],
	in1 Codec[A1],
	in2 Codec[A2],
	in3 Codec[A3],
) (TypedQuery3[R, A1, A2, A3], error) {
	if err := validateTypedShape(base, out.Arity(), 3); err != nil {
		return TypedQuery3[R, A1, A2, A3]{}, err
	}

	return TypedQuery3[R, A1, A2, A3]{base: base, out: out, in1: in1, in2: in2, in3: in3}, nil
}

// Base returns the wrapped query, unchanged.
func (q TypedQuery3[R, A1, A2, A3]) Base() Query { return q.base }

// Render renders the wrapped query's canonical text.
func (q TypedQuery3[R, A1, A2, A3]) Render() string { return q.base.Render() }

// TypedQuery4 wraps a query taking four caller arguments.
type TypedQuery4[R, A1, A2, A3, A4 any] struct {
	base Query
	out  RowDecoder[R]
	in1  Codec[A1]
	in2  Codec[A2]
	in3  Codec[A3]
	in4  Codec[A4]
}

// NewTypedQuery4 wraps base with output shape out and four input codecs.
func NewTypedQuery4[R, A1, A2, A3, A4 any](
	base Query,
	out RowDecoder[R],
	in1 Codec[A1],
	in2 Codec[A2],
	in3 Codec[A3],
	in4 Codec[A4],
) (TypedQuery4[R, A1, A2, A3, A4], error) {
	if err := validateTypedShape(base, out.Arity(), 4); err != nil {
		return TypedQuery4[R, A1, A2, A3, A4]{}, err
	}

	return TypedQuery4[R, A1, A2, A3, A4]{base: base, out: out, in1: in1, in2: in2, in3: in3, in4: in4}, nil
}

// Base returns the wrapped query, unchanged.
func (q TypedQuery4[R, A1, A2, A3, A4]) Base() Query { return q.base }

// Render renders the wrapped query's canonical text.
func (q TypedQuery4[R, A1, A2, A3, A4]) Render() string { return q.base.Render() }

// TypedQuery5 wraps a query taking five caller arguments.
type TypedQuery5[R, A1, A2, A3, A4, A5 any] struct {
	base Query
	out  RowDecoder[R]
	in1  Codec[A1]
	in2  Codec[A2]
	in3  Codec[A3]
	in4  Codec[A4]
	in5  Codec[A5]
}

// NewTypedQuery5 wraps base with output shape out and five input codecs.
func NewTypedQuery5[R, A1, A2, A3, A4, A5 any](
	base Query,
	out RowDecoder[R],
	in1 Codec[A1],
	in2 Codec[A2],
	in3 Codec[A3],
	in4 Codec[A4],
	in5 Codec[A5],
) (TypedQuery5[R, A1, A2, A3, A4, A5], error) {
	if err := validateTypedShape(base, out.Arity(), 5); err != nil {
		return TypedQuery5[R, A1, A2, A3, A4, A5]{}, err
	}

	return TypedQuery5[R, A1, A2, A3, A4, A5]{
		base: base, out: out,
		in1: in1, in2: in2, in3: in3, in4: in4, in5: in5,
	}, nil
}

// Base returns the wrapped query, unchanged.
func (q TypedQuery5[R, A1, A2, A3, A4, A5]) Base() Query { return q.base }

// Render renders the wrapped query's canonical text.
func (q TypedQuery5[R, A1, A2, A3, A4, A5]) Render() string { return q.base.Render() }

// TypedQuery6 wraps a query taking six caller arguments.
type TypedQuery6[R, A1, A2, A3, A4, A5, A6 any] struct {
	base Query
	out  RowDecoder[R]
	in1  Codec[A1]
	in2  Codec[A2]
	in3  Codec[A3]
	in4  Codec[A4]
	in5  Codec[A5]
	in6  Codec[A6]
}

// NewTypedQuery6 wraps base with output shape out and six input codecs.
func NewTypedQuery6[R, A1, A2, A3, A4, A5, A6 any](
	base Query,
	out RowDecoder[R],
	in1 Codec[A1],
	in2 Codec[A2],
	in3 Codec[A3],
	in4 Codec[A4],
	in5 Codec[A5],
	in6 Codec[A6],
) (TypedQuery6[R, A1, A2, A3, A4, A5, A6], error) {
	if err := validateTypedShape(base, out.Arity(), 6); err != nil {
		return TypedQuery6[R, A1, A2, A3, A4, A5, A6]{}, err
	}

	return TypedQuery6[R, A1, A2, A3, A4, A5, A6]{
		base: base, out: out,
		in1: in1, in2: in2, in3: in3, in4: in4, in5: in5, in6: in6,
	}, nil
}

// Base returns the wrapped query, unchanged.
func (q TypedQuery6[R, A1, A2, A3, A4, A5, A6]) Base() Query { return q.base }

// Render renders the wrapped query's canonical text.
func (q TypedQuery6[R, A1, A2, A3, A4, A5, A6]) Render() string { return q.base.Render() }

// TypedQuery7 wraps a query taking seven caller arguments.
type TypedQuery7[R, A1, A2, A3, A4, A5, A6, A7 any] struct {
	base Query
	out  RowDecoder[R]
	in1  Codec[A1]
	in2  Codec[A2]
	in3  Codec[A3]
	in4  Codec[A4]
	in5  Codec[A5]
	in6  Codec[A6]
	in7  Codec[A7]
}

// NewTypedQuery7 wraps base with output shape out and seven input codecs.
func NewTypedQuery7[R, A1, A2, A3, A4, A5, A6, A7 any](
	base Query,
	out RowDecoder[R],
	in1 Codec[A1],
	in2 Codec[A2],
	in3 Codec[A3],
	in4 Codec[A4],
	in5 Codec[A5],
	in6 Codec[A6],
	in7 Codec[A7],
) (TypedQuery7[R, A1, A2, A3, A4, A5, A6, A7], error) {
	if err := validateTypedShape(base, out.Arity(), 7); err != nil {
		return TypedQuery7[R, A1, A2, A3, A4, A5, A6, A7]{}, err
	}

	return TypedQuery7[R, A1, A2, A3, A4, A5, A6, A7]{
		base: base, out: out,
		in1: in1, in2: in2, in3: in3, in4: in4, in5: in5, in6: in6, in7: in7,
	}, nil
}

// Base returns the wrapped query, unchanged.
func (q TypedQuery7[R, A1, A2, A3, A4, A5, A6, A7]) Base() Query { return q.base }

// Render renders the wrapped query's canonical text.
func (q TypedQuery7[R, A1, A2, A3, A4, A5, A6, A7]) Render() string { return q.base.Render() }

// TypedQuery8 wraps a query taking eight caller arguments.
type TypedQuery8[R, A1, A2, A3, A4, A5, A6, A7, A8 any] struct {
	base Query
	out  RowDecoder[R]
	in1  Codec[A1]
	in2  Codec[A2]
	in3  Codec[A3]
	in4  Codec[A4]
	in5  Codec[A5]
	in6  Codec[A6]
	in7  Codec[A7]
	in8  Codec[A8]
}

// NewTypedQuery8 wraps base with output shape out and eight input codecs.
func NewTypedQuery8[R, A1, A2, A3, A4, A5, A6, A7, A8 any](
	base Query,
	out RowDecoder[R],
	in1 Codec[A1],
	in2 Codec[A2],
	in3 Codec[A3],
	in4 Codec[A4],
	in5 Codec[A5],
	in6 Codec[A6],
	in7 Codec[A7],
	in8 Codec[A8],
) (TypedQuery8[R, A1, A2, A3, A4, A5, A6, A7, A8], error) {
	if err := validateTypedShape(base, out.Arity(), 8); err != nil {
		return TypedQuery8[R, A1, A2, A3, A4, A5, A6, A7, A8]{}, err
	}

	return TypedQuery8[R, A1, A2, A3, A4, A5, A6, A7, A8]{
		base: base, out: out,
		in1: in1, in2: in2, in3: in3, in4: in4, in5: in5, in6: in6, in7: in7, in8: in8,
	}, nil
}

// Base returns the wrapped query, unchanged.
func (q TypedQuery8[R, A1, A2, A3, A4, A5, A6, A7, A8]) Base() Query { return q.base }

// Render renders the wrapped query's canonical text.
func (q TypedQuery8[R, A1, A2, A3, A4, A5, A6, A7, A8]) Render() string { return q.base.Render() }
