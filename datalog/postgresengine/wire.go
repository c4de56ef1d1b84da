package postgresengine

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/peergraph/datalog-client-go/datalog"
)

// ErrMalformedWireValue is returned when a jsonb row from the engine cannot
// be decoded into native values.
var ErrMalformedWireValue = errors.New("malformed wire value")

// The wire form is one JSON value per native value, tagged by kind with a
// single-key object so int/float/ref and string/keyword stay distinguishable
// after a JSON round trip: {"int":1001}, {"str":"alice"}, {"kw":"person/name"},
// {"ref":1001}, {"float":1.5}, {"bool":true}, {"uuid":"..."},
// {"inst":"RFC3339"}, {"coll":[...]}.
const (
	wireTagInt     = "int"
	wireTagFloat   = "float"
	wireTagString  = "str"
	wireTagBool    = "bool"
	wireTagKeyword = "kw"
	wireTagRef     = "ref"
	wireTagUUID    = "uuid"
	wireTagInstant = "inst"
	wireTagColl    = "coll"
)

// encodeArgs encodes the native argument sequence into a single jsonb array.
func encodeArgs(args []datalog.Value) ([]byte, error) {
	wireArgs := make([]any, len(args))

	for i, arg := range args {
		wire, err := valueToWire(arg)
		if err != nil {
			return nil, err
		}
		wireArgs[i] = wire
	}

	return jsoniter.ConfigFastest.Marshal(wireArgs)
}

func valueToWire(v datalog.Value) (any, error) {
	switch v.Kind() {
	case datalog.KindInt:
		n, _ := v.AsInt()
		return map[string]any{wireTagInt: n}, nil
	case datalog.KindFloat:
		f, _ := v.AsFloat()
		return map[string]any{wireTagFloat: f}, nil
	case datalog.KindString:
		s, _ := v.AsString()
		return map[string]any{wireTagString: s}, nil
	case datalog.KindBool:
		b, _ := v.AsBool()
		return map[string]any{wireTagBool: b}, nil
	case datalog.KindKeyword:
		k, _ := v.AsKeyword()
		return map[string]any{wireTagKeyword: k}, nil
	case datalog.KindRef:
		id, _ := v.AsRef()
		return map[string]any{wireTagRef: id}, nil
	case datalog.KindUUID:
		u, _ := v.AsUUID()
		return map[string]any{wireTagUUID: u.String()}, nil
	case datalog.KindInstant:
		t, _ := v.AsInstant()
		return map[string]any{wireTagInstant: t.Format(time.RFC3339Nano)}, nil
	case datalog.KindColl:
		elems, _ := v.AsColl()
		wireElems := make([]any, len(elems))
		for i, e := range elems {
			wire, err := valueToWire(e)
			if err != nil {
				return nil, err
			}
			wireElems[i] = wire
		}
		return map[string]any{wireTagColl: wireElems}, nil
	default:
		return nil, errors.Join(datalog.ErrUnsupportedValueType, fmt.Errorf("no wire form for kind %s", v.Kind()))
	}
}

// decodeWireRow decodes one jsonb row from the engine into native values.
func decodeWireRow(raw []byte) (datalog.Row, error) {
	var elems []json.RawMessage
	if err := jsoniter.ConfigFastest.Unmarshal(raw, &elems); err != nil {
		return nil, errors.Join(ErrMalformedWireValue, err)
	}

	row := make(datalog.Row, len(elems))

	for i, elem := range elems {
		value, err := wireToValue(elem)
		if err != nil {
			return nil, errors.Join(err, fmt.Errorf("at row position %d", i))
		}
		row[i] = value
	}

	return row, nil
}

//nolint:cyclop
func wireToValue(raw json.RawMessage) (datalog.Value, error) {
	var tagged map[string]json.RawMessage
	if err := jsoniter.ConfigFastest.Unmarshal(raw, &tagged); err != nil {
		return datalog.Value{}, errors.Join(ErrMalformedWireValue, err)
	}

	if len(tagged) != 1 {
		return datalog.Value{}, errors.Join(ErrMalformedWireValue, fmt.Errorf("expected one wire tag, got %d", len(tagged)))
	}

	for tag, payload := range tagged {
		switch tag {
		case wireTagInt:
			var n int64
			if err := jsoniter.ConfigFastest.Unmarshal(payload, &n); err != nil {
				return datalog.Value{}, errors.Join(ErrMalformedWireValue, err)
			}
			return datalog.Int(n), nil

		case wireTagFloat:
			var f float64
			if err := jsoniter.ConfigFastest.Unmarshal(payload, &f); err != nil {
				return datalog.Value{}, errors.Join(ErrMalformedWireValue, err)
			}
			return datalog.Float(f), nil

		case wireTagString:
			var s string
			if err := jsoniter.ConfigFastest.Unmarshal(payload, &s); err != nil {
				return datalog.Value{}, errors.Join(ErrMalformedWireValue, err)
			}
			return datalog.String(s), nil

		case wireTagBool:
			var b bool
			if err := jsoniter.ConfigFastest.Unmarshal(payload, &b); err != nil {
				return datalog.Value{}, errors.Join(ErrMalformedWireValue, err)
			}
			return datalog.Bool(b), nil

		case wireTagKeyword:
			var k string
			if err := jsoniter.ConfigFastest.Unmarshal(payload, &k); err != nil {
				return datalog.Value{}, errors.Join(ErrMalformedWireValue, err)
			}
			return datalog.Keyword(k), nil

		case wireTagRef:
			var id int64
			if err := jsoniter.ConfigFastest.Unmarshal(payload, &id); err != nil {
				return datalog.Value{}, errors.Join(ErrMalformedWireValue, err)
			}
			return datalog.Ref(id), nil

		case wireTagUUID:
			var s string
			if err := jsoniter.ConfigFastest.Unmarshal(payload, &s); err != nil {
				return datalog.Value{}, errors.Join(ErrMalformedWireValue, err)
			}
			u, err := uuid.Parse(s)
			if err != nil {
				return datalog.Value{}, errors.Join(ErrMalformedWireValue, err)
			}
			return datalog.UUIDVal(u), nil

		case wireTagInstant:
			var s string
			if err := jsoniter.ConfigFastest.Unmarshal(payload, &s); err != nil {
				return datalog.Value{}, errors.Join(ErrMalformedWireValue, err)
			}
			t, err := time.Parse(time.RFC3339Nano, s)
			if err != nil {
				return datalog.Value{}, errors.Join(ErrMalformedWireValue, err)
			}
			return datalog.Instant(t), nil

		case wireTagColl:
			var elems []json.RawMessage
			if err := jsoniter.ConfigFastest.Unmarshal(payload, &elems); err != nil {
				return datalog.Value{}, errors.Join(ErrMalformedWireValue, err)
			}
			values := make([]datalog.Value, len(elems))
			for i, elem := range elems {
				value, err := wireToValue(elem)
				if err != nil {
					return datalog.Value{}, err
				}
				values[i] = value
			}
			return datalog.Coll(values...), nil

		default:
			return datalog.Value{}, errors.Join(ErrMalformedWireValue, fmt.Errorf("unknown wire tag %q", tag))
		}
	}

	return datalog.Value{}, ErrMalformedWireValue
}
