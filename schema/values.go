package schema

import (
	"bytes"
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Values holds one row worth of field values, keyed by field name.
// A Values map is owned by whoever holds it; the executor never
// retains one after handing it to the caller.
type Values map[string]any

// Clone returns a shallow copy of the values.
func (v Values) Clone() Values {
	c := make(Values, len(v))
	for k, val := range v {
		c[k] = val
	}
	return c
}

// Materializer converts a row of field values into a typed record.
// It is implemented by the record layer; a validation failure there is
// surfaced by the executor as a materialization error.
type Materializer[T any] interface {
	Materialize(Values) (T, error)
}

// MaterializeFunc is a function adapter for the Materializer interface.
type MaterializeFunc[T any] func(Values) (T, error)

// Materialize calls f(v).
func (f MaterializeFunc[T]) Materialize(v Values) (T, error) { return f(v) }

// Equal reports whether two field values are equal under the semantic
// type t. It compares values, not representations: 1.50 equals 1.5 for
// decimals, and two times in different locations compare by instant.
// A nil on exactly one side is always unequal.
func Equal(t Type, a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch t {
	case TypeString:
		as, aok := toString(a)
		bs, bok := toString(b)
		if aok && bok {
			return as == bs
		}
	case TypeInt:
		ai, aok := toInt64(a)
		bi, bok := toInt64(b)
		if aok && bok {
			return ai == bi
		}
	case TypeFloat:
		af, aok := toFloat64(a)
		bf, bok := toFloat64(b)
		if aok && bok {
			return af == bf
		}
	case TypeBool:
		ab, aok := toBool(a)
		bb, bok := toBool(b)
		if aok && bok {
			return ab == bb
		}
	case TypeTime:
		at, aok := toTime(a)
		bt, bok := toTime(b)
		if aok && bok {
			return at.Equal(bt)
		}
	case TypeUUID:
		au, aerr := toUUID(a)
		bu, berr := toUUID(b)
		if aerr == nil && berr == nil {
			return au == bu
		}
	case TypeDecimal:
		ad, aerr := toDecimal(a)
		bd, berr := toDecimal(b)
		if aerr == nil && berr == nil {
			return ad.Equal(bd)
		}
	case TypeBytes:
		ab, aok := toBytes(a)
		bb, bok := toBytes(b)
		if aok && bok {
			return bytes.Equal(ab, bb)
		}
	}
	return reflect.DeepEqual(a, b)
}

// Coerce converts a raw driver value into the canonical Go value for
// the field's semantic type. Drivers disagree on representations
// (sqlite hands back int64 for booleans, []byte for text; uuids and
// decimals arrive as strings), so materialization funnels every column
// through here. A nil stays nil; nullability is enforced by the caller.
func Coerce(f Field, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch f.Type {
	case TypeString:
		if s, ok := toString(v); ok {
			return s, nil
		}
	case TypeInt:
		if i, ok := toInt64(v); ok {
			return i, nil
		}
	case TypeFloat:
		if fv, ok := toFloat64(v); ok {
			return fv, nil
		}
	case TypeBool:
		if b, ok := toBool(v); ok {
			return b, nil
		}
	case TypeTime:
		if t, ok := toTime(v); ok {
			return t, nil
		}
	case TypeUUID:
		u, err := toUUID(v)
		if err != nil {
			return nil, fmt.Errorf("schema: field %q: %w", f.Name, err)
		}
		return u, nil
	case TypeDecimal:
		d, err := toDecimal(v)
		if err != nil {
			return nil, fmt.Errorf("schema: field %q: %w", f.Name, err)
		}
		return d, nil
	case TypeBytes:
		if b, ok := toBytes(v); ok {
			// Copy: the driver may reuse the buffer on the next row.
			return bytes.Clone(b), nil
		}
	}
	return nil, fmt.Errorf("schema: cannot coerce %T into %s field %q", v, f.Type, f.Name)
}

func toString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case []byte:
		return string(s), true
	}
	return "", false
}

func toInt64(v any) (int64, bool) {
	switch i := v.(type) {
	case int64:
		return i, true
	case int:
		return int64(i), true
	case int32:
		return int64(i), true
	case int16:
		return int64(i), true
	case int8:
		return int64(i), true
	case uint:
		return int64(i), true
	case uint32:
		return int64(i), true
	case uint64:
		return int64(i), true
	}
	return 0, false
}

func toFloat64(v any) (float64, bool) {
	switch f := v.(type) {
	case float64:
		return f, true
	case float32:
		return float64(f), true
	case int64:
		return float64(f), true
	case int:
		return float64(f), true
	}
	return 0, false
}

func toBool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case int64:
		// sqlite stores booleans as integers.
		return b != 0, true
	}
	return false, false
}

func toTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return parsed, true
		}
	case []byte:
		if parsed, err := time.Parse(time.RFC3339Nano, string(t)); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

func toUUID(v any) (uuid.UUID, error) {
	switch u := v.(type) {
	case uuid.UUID:
		return u, nil
	case string:
		return uuid.Parse(u)
	case []byte:
		if len(u) == 16 {
			return uuid.FromBytes(u)
		}
		return uuid.ParseBytes(u)
	}
	return uuid.Nil, fmt.Errorf("invalid uuid value of type %T", v)
}

func toDecimal(v any) (decimal.Decimal, error) {
	switch d := v.(type) {
	case decimal.Decimal:
		return d, nil
	case string:
		return decimal.NewFromString(d)
	case []byte:
		return decimal.NewFromString(string(d))
	case float64:
		return decimal.NewFromFloat(d), nil
	case int64:
		return decimal.NewFromInt(d), nil
	case int:
		return decimal.NewFromInt(int64(d)), nil
	}
	return decimal.Decimal{}, fmt.Errorf("invalid decimal value of type %T", v)
}

func toBytes(v any) ([]byte, bool) {
	switch b := v.(type) {
	case []byte:
		return b, true
	case string:
		return []byte(b), true
	}
	return nil, false
}
