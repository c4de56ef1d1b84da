package datalog

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EntityID is the domain-side representation of an entity reference.
type EntityID int64

// Ident is the domain-side representation of a keyword, without the leading colon.
type Ident string

// Codec converts between one domain type and the engine's native value
// representation. ToNative is total for the codec's domain type; FromNative
// fails with ErrTypeMismatch when the native value carries a different kind.
//
// Codecs are stateless value types resolved where a typed query is
// constructed, so an unsupported domain type fails to compile rather than
// fail at execution time.
type Codec[T any] interface {
	ToNative(v T) (Value, error)
	FromNative(v Value) (T, error)
}

func typeMismatch[T any](v Value) (T, error) {
	var zero T

	return zero, errors.Join(
		ErrTypeMismatch,
		fmt.Errorf("cannot decode native %s into %T", v.Kind(), zero),
	)
}

// Int64Codec converts int64 values.
type Int64Codec struct{}

func (Int64Codec) ToNative(v int64) (Value, error) {
	return Int(v), nil
}

func (Int64Codec) FromNative(v Value) (int64, error) {
	if n, ok := v.AsInt(); ok {
		return n, nil
	}

	return typeMismatch[int64](v)
}

// Float64Codec converts float64 values.
type Float64Codec struct{}

func (Float64Codec) ToNative(v float64) (Value, error) {
	return Float(v), nil
}

func (Float64Codec) FromNative(v Value) (float64, error) {
	if f, ok := v.AsFloat(); ok {
		return f, nil
	}

	return typeMismatch[float64](v)
}

// StringCodec converts string values.
type StringCodec struct{}

func (StringCodec) ToNative(v string) (Value, error) {
	return String(v), nil
}

func (StringCodec) FromNative(v Value) (string, error) {
	if s, ok := v.AsString(); ok {
		return s, nil
	}

	return typeMismatch[string](v)
}

// BoolCodec converts bool values.
type BoolCodec struct{}

func (BoolCodec) ToNative(v bool) (Value, error) {
	return Bool(v), nil
}

func (BoolCodec) FromNative(v Value) (bool, error) {
	if b, ok := v.AsBool(); ok {
		return b, nil
	}

	return typeMismatch[bool](v)
}

// IdentCodec converts Ident (keyword) values.
type IdentCodec struct{}

func (IdentCodec) ToNative(v Ident) (Value, error) {
	return Keyword(string(v)), nil
}

func (IdentCodec) FromNative(v Value) (Ident, error) {
	if k, ok := v.AsKeyword(); ok {
		return Ident(k), nil
	}

	return typeMismatch[Ident](v)
}

// EntityIDCodec converts EntityID (entity reference) values.
type EntityIDCodec struct{}

func (EntityIDCodec) ToNative(v EntityID) (Value, error) {
	return Ref(int64(v)), nil
}

func (EntityIDCodec) FromNative(v Value) (EntityID, error) {
	if id, ok := v.AsRef(); ok {
		return EntityID(id), nil
	}

	return typeMismatch[EntityID](v)
}

// UUIDCodec converts uuid.UUID values.
type UUIDCodec struct{}

func (UUIDCodec) ToNative(v uuid.UUID) (Value, error) {
	return UUIDVal(v), nil
}

func (UUIDCodec) FromNative(v Value) (uuid.UUID, error) {
	if u, ok := v.AsUUID(); ok {
		return u, nil
	}

	return typeMismatch[uuid.UUID](v)
}

// InstantCodec converts time.Time values.
type InstantCodec struct{}

func (InstantCodec) ToNative(v time.Time) (Value, error) {
	return Instant(v), nil
}

func (InstantCodec) FromNative(v Value) (time.Time, error) {
	if t, ok := v.AsInstant(); ok {
		return t, nil
	}

	return typeMismatch[time.Time](v)
}

// ValueCodec is the identity codec, for positions that should stay native.
type ValueCodec struct{}

func (ValueCodec) ToNative(v Value) (Value, error) {
	return v, nil
}

func (ValueCodec) FromNative(v Value) (Value, error) {
	return v, nil
}

// FromAny converts a dynamically typed domain value to native form. It covers
// the same types as the static codecs and fails with ErrUnsupportedValueType
// for anything else. The typed dispatch surface never needs this; it exists
// for callers that receive arguments without static types, e.g. a CLI.
func FromAny(v any) (Value, error) {
	switch t := v.(type) {
	case Value:
		return t, nil
	case int:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case float64:
		return Float(t), nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case Ident:
		return Keyword(string(t)), nil
	case EntityID:
		return Ref(int64(t)), nil
	case uuid.UUID:
		return UUIDVal(t), nil
	case time.Time:
		return Instant(t), nil
	case []Value:
		return Coll(t...), nil
	default:
		return Value{}, errors.Join(ErrUnsupportedValueType, fmt.Errorf("no native mapping for %T", v))
	}
}
