package datalog

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind enumerates the engine's native value representations.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindInt
	KindFloat
	KindString
	KindBool
	KindKeyword
	KindRef
	KindUUID
	KindInstant
	KindColl
)

// String returns the lowercase name of the kind, used in diagnostics and on the wire.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindKeyword:
		return "keyword"
	case KindRef:
		return "ref"
	case KindUUID:
		return "uuid"
	case KindInstant:
		return "instant"
	case KindColl:
		return "coll"
	default:
		return "invalid"
	}
}

// Value is the engine's tagged native value. It is an immutable value type;
// only the codecs in this package should produce or consume it on behalf of
// domain types.
type Value struct {
	kind Kind
	num  int64
	flt  float64
	str  string
	bl   bool
	uid  uuid.UUID
	inst time.Time
	coll []Value
}

// Int builds a native integer value.
func Int(v int64) Value {
	return Value{kind: KindInt, num: v}
}

// Float builds a native floating point value.
func Float(v float64) Value {
	return Value{kind: KindFloat, flt: v}
}

// String builds a native string value.
func String(v string) Value {
	return Value{kind: KindString, str: v}
}

// Bool builds a native boolean value.
func Bool(v bool) Value {
	return Value{kind: KindBool, bl: v}
}

// Keyword builds a native keyword value. The name is stored without the
// leading colon; rendering adds it back.
func Keyword(name string) Value {
	return Value{kind: KindKeyword, str: strings.TrimPrefix(name, ":")}
}

// Ref builds a native entity reference value.
func Ref(id int64) Value {
	return Value{kind: KindRef, num: id}
}

// UUIDVal builds a native uuid value.
func UUIDVal(u uuid.UUID) Value {
	return Value{kind: KindUUID, uid: u}
}

// Instant builds a native instant (point in time) value.
func Instant(t time.Time) Value {
	return Value{kind: KindInstant, inst: t.UTC()}
}

// Coll builds a native collection value from the given elements.
func Coll(elems ...Value) Value {
	copied := make([]Value, len(elems))
	copy(copied, elems)

	return Value{kind: KindColl, coll: copied}
}

// Kind reports which native representation this value carries.
func (v Value) Kind() Kind {
	return v.kind
}

// AsInt returns the integer payload; ok is false for any other kind.
func (v Value) AsInt() (int64, bool) {
	return v.num, v.kind == KindInt
}

// AsFloat returns the float payload; ok is false for any other kind.
func (v Value) AsFloat() (float64, bool) {
	return v.flt, v.kind == KindFloat
}

// AsString returns the string payload; ok is false for any other kind.
func (v Value) AsString() (string, bool) {
	return v.str, v.kind == KindString
}

// AsBool returns the boolean payload; ok is false for any other kind.
func (v Value) AsBool() (bool, bool) {
	return v.bl, v.kind == KindBool
}

// AsKeyword returns the keyword name without the leading colon; ok is false
// for any other kind.
func (v Value) AsKeyword() (string, bool) {
	return v.str, v.kind == KindKeyword
}

// AsRef returns the referenced entity id; ok is false for any other kind.
func (v Value) AsRef() (int64, bool) {
	return v.num, v.kind == KindRef
}

// AsUUID returns the uuid payload; ok is false for any other kind.
func (v Value) AsUUID() (uuid.UUID, bool) {
	return v.uid, v.kind == KindUUID
}

// AsInstant returns the instant payload; ok is false for any other kind.
func (v Value) AsInstant() (time.Time, bool) {
	return v.inst, v.kind == KindInstant
}

// AsColl returns the collection elements; ok is false for any other kind.
// The returned slice must not be mutated.
func (v Value) AsColl() ([]Value, bool) {
	return v.coll, v.kind == KindColl
}

// Equal reports structural equality between two native values.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case KindInt, KindRef:
		return v.num == other.num
	case KindFloat:
		return v.flt == other.flt
	case KindString, KindKeyword:
		return v.str == other.str
	case KindBool:
		return v.bl == other.bl
	case KindUUID:
		return v.uid == other.uid
	case KindInstant:
		return v.inst.Equal(other.inst)
	case KindColl:
		if len(v.coll) != len(other.coll) {
			return false
		}
		for i := range v.coll {
			if !v.coll[i].Equal(other.coll[i]) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// String renders the value in the engine's literal syntax.
func (v Value) String() string {
	switch v.kind {
	case KindInt, KindRef:
		return strconv.FormatInt(v.num, 10)
	case KindFloat:
		return strconv.FormatFloat(v.flt, 'g', -1, 64)
	case KindString:
		return strconv.Quote(v.str)
	case KindBool:
		return strconv.FormatBool(v.bl)
	case KindKeyword:
		return ":" + v.str
	case KindUUID:
		return fmt.Sprintf("#uuid %q", v.uid.String())
	case KindInstant:
		return fmt.Sprintf("#inst %q", v.inst.Format(time.RFC3339Nano))
	case KindColl:
		parts := make([]string, len(v.coll))
		for i, e := range v.coll {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, " ") + "]"
	default:
		return "#invalid"
	}
}

// Row is one ordered engine result, one native value per :find variable.
type Row = []Value
