package datalog

import (
	"context"
	"errors"
	"fmt"
)

// The typed dispatch surface: one entry point per declared input arity.
// Calling an entry point with the wrong argument count is a compile error,
// never a runtime branch; only result rows are arity-checked at runtime.
// Each entry point converts its arguments through the wrapper's codecs in
// :in order, aborting on the first argument without a native mapping, and
// returns a fully materialized slice of decoded tuples.

func convertArg[T any](codec Codec[T], arg T, position int) (Value, error) {
	native, err := codec.ToNative(arg)
	if err != nil {
		return Value{}, errors.Join(err, fmt.Errorf("at argument position %d", position))
	}

	return native, nil
}

// Exec0 executes a zero-argument typed query.
func Exec0[R any](ctx context.Context, ex Executor, q TypedQuery0[R]) ([]R, error) {
	return ExecuteTyped(ctx, ex, q.base, q.out, q.base.engineArgs(nil)...)
}

// Exec1 executes a one-argument typed query.
func Exec1[R, A1 any](ctx context.Context, ex Executor, q TypedQuery1[R, A1], a1 A1) ([]R, error) {
	v1, err := convertArg(q.in1, a1, 1)
	if err != nil {
		return nil, err
	}

	return ExecuteTyped(ctx, ex, q.base, q.out, q.base.engineArgs([]Value{v1})...)
}

// Exec2 executes a two-argument typed query.
func Exec2[R, A1, A2 any](ctx context.Context, ex Executor, q TypedQuery2[R, A1, A2], a1 A1, a2 A2) ([]R, error) {
	v1, err := convertArg(q.in1, a1, 1)
	if err != nil {
		return nil, err
	}

	v2, err := convertArg(q.in2, a2, 2)
	if err != nil {
		return nil, err
	}

	return ExecuteTyped(ctx, ex, q.base, q.out, q.base.engineArgs([]Value{v1, v2})...)
}

// Exec3 executes a three-argument typed query.
func Exec3[R, A1, A2, A3 any](
	ctx context.Context,
	ex Executor,
	q TypedQuery3[R, A1, A2, A3],
	a1 A1, a2 A2, a3 A3,
) ([]R, error) {
	v1, err := convertArg(q.in1, a1, 1)
	if err != nil {
		return nil, err
	}

	v2, err := convertArg(q.in2, a2, 2)
	if err != nil {
		return nil, err
	}

	v3, err := convertArg(q.in3, a3, 3)
	if err != nil {
		return nil, err
	}

	return ExecuteTyped(ctx, ex, q.base, q.out, q.base.engineArgs([]Value{v1, v2, v3})...)
}

// Exec4 executes a four-argument typed query.
func Exec4[R, A1, A2, A3, A4 any](
	ctx context.Context,
	ex Executor,
	q TypedQuery4[R, A1, A2, A3, A4],
	a1 A1, a2 A2, a3 A3, a4 A4,
) ([]R, error) {
	v1, err := convertArg(q.in1, a1, 1)
	if err != nil {
		return nil, err
	}

	v2, err := convertArg(q.in2, a2, 2)
	if err != nil {
		return nil, err
	}

	v3, err := convertArg(q.in3, a3, 3)
	if err != nil {
		return nil, err
	}

	v4, err := convertArg(q.in4, a4, 4)
	if err != nil {
		return nil, err
	}

	return ExecuteTyped(ctx, ex, q.base, q.out, q.base.engineArgs([]Value{v1, v2, v3, v4})...)
}

// Exec5 executes a five-argument typed query.
func Exec5[R, A1, A2, A3, A4, A5 any](
	ctx context.Context,
	ex Executor,
	q TypedQuery5[R, A1, A2, A3, A4, A5],
	a1 A1, a2 A2, a3 A3, a4 A4, a5 A5,
) ([]R, error) {
	v1, err := convertArg(q.in1, a1, 1)
	if err != nil {
		return nil, err
	}

	v2, err := convertArg(q.in2, a2, 2)
	if err != nil {
		return nil, err
	}

	v3, err := convertArg(q.in3, a3, 3)
	if err != nil {
		return nil, err
	}

	v4, err := convertArg(q.in4, a4, 4)
	if err != nil {
		return nil, err
	}

	v5, err := convertArg(q.in5, a5, 5)
	if err != nil {
		return nil, err
	}

	return ExecuteTyped(ctx, ex, q.base, q.out, q.base.engineArgs([]Value{v1, v2, v3, v4, v5})...)
}

// Exec6 executes a six-argument typed query.
func Exec6[R, A1, A2, A3, A4, A5, A6 any](
	ctx context.Context,
	ex Executor,
	q TypedQuery6[R, A1, A2, A3, A4, A5, A6],
	a1 A1, a2 A2, a3 A3, a4 A4, a5 A5, a6 A6,
) ([]R, error) {
	v1, err := convertArg(q.in1, a1, 1)
	if err != nil {
		return nil, err
	}

	v2, err := convertArg(q.in2, a2, 2)
	if err != nil {
		return nil, err
	}

	v3, err := convertArg(q.in3, a3, 3)
	if err != nil {
		return nil, err
	}

	v4, err := convertArg(q.in4, a4, 4)
	if err != nil {
		return nil, err
	}

	v5, err := convertArg(q.in5, a5, 5)
	if err != nil {
		return nil, err
	}

	v6, err := convertArg(q.in6, a6, 6)
	if err != nil {
		return nil, err
	}

	return ExecuteTyped(ctx, ex, q.base, q.out, q.base.engineArgs([]Value{v1, v2, v3, v4, v5, v6})...)
}

// Exec7 executes a seven-argument typed query.
func Exec7[R, A1, A2, A3, A4, A5, A6, A7 any](
	ctx context.Context,
	ex Executor,
	q TypedQuery7[R, A1, A2, A3, A4, A5, A6, A7],
	a1 A1, a2 A2, a3 A3, a4 A4, a5 A5, a6 A6, a7 A7,
) ([]R, error) {
	v1, err := convertArg(q.in1, a1, 1)
	if err != nil {
		return nil, err
	}

	v2, err := convertArg(q.in2, a2, 2)
	if err != nil {
		return nil, err
	}

	v3, err := convertArg(q.in3, a3, 3)
	if err != nil {
		return nil, err
	}

	v4, err := convertArg(q.in4, a4, 4)
	if err != nil {
		return nil, err
	}

	v5, err := convertArg(q.in5, a5, 5)
	if err != nil {
		return nil, err
	}

	v6, err := convertArg(q.in6, a6, 6)
	if err != nil {
		return nil, err
	}

	v7, err := convertArg(q.in7, a7, 7)
	if err != nil {
		return nil, err
	}

	return ExecuteTyped(ctx, ex, q.base, q.out, q.base.engineArgs([]Value{v1, v2, v3, v4, v5, v6, v7})...)
}

// Exec8 executes an eight-argument typed query.
func Exec8[R, A1, A2, A3, A4, A5, A6, A7, A8 any](
	ctx context.Context,
	ex Executor,
	q TypedQuery8[R, A1, A2, A3, A4, A5, A6, A7, A8],
	a1 A1, a2 A2, a3 A3, a4 A4, a5 A5, a6 A6, a7 A7, a8 A8,
) ([]R, error) {
	v1, err := convertArg(q.in1, a1, 1)
	if err != nil {
		return nil, err
	}

	v2, err := convertArg(q.in2, a2, 2)
	if err != nil {
		return nil, err
	}

	v3, err := convertArg(q.in3, a3, 3)
	if err != nil {
		return nil, err
	}

	v4, err := convertArg(q.in4, a4, 4)
	if err != nil {
		return nil, err
	}

	v5, err := convertArg(q.in5, a5, 5)
	if err != nil {
		return nil, err
	}

	v6, err := convertArg(q.in6, a6, 6)
	if err != nil {
		return nil, err
	}

	v7, err := convertArg(q.in7, a7, 7)
	if err != nil {
		return nil, err
	}

	v8, err := convertArg(q.in8, a8, 8)
	if err != nil {
		return nil, err
	}

	return ExecuteTyped(ctx, ex, q.base, q.out, q.base.engineArgs([]Value{v1, v2, v3, v4, v5, v6, v7, v8})...)
}
