package money

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/shopspring/decimal"
)

// Serialize ... Converts a money value of unknown representation into a plain
// float64 for wire transport. nil and unparseable inputs serialize to 0.
//
// Precision loss on decimal-to-float conversion is accepted for display
// values. Settlement math stays on decimal.Decimal, never on the output of
// this function.
func Serialize(value interface{}) float64 {
	switch v := value.(type) {
	case nil:
		return 0
	case decimal.Decimal:
		f, _ := v.Float64()
		return f
	case *decimal.Decimal:
		if v == nil {
			return 0
		}
		f, _ := v.Float64()
		return f
	case decimal.NullDecimal:
		if !v.Valid {
			return 0
		}
		f, _ := v.Decimal.Float64()
		return f
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		return f
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}

// SerializeFields ... Recursively walks an object graph converting every
// decimal-typed field into a float64, leaving other fields untouched.
// Structs and maps come back as map[string]interface{}, slices as
// []interface{}, so the result is directly JSON-encodable.
func SerializeFields(value interface{}) interface{} {
	if value == nil {
		return nil
	}

	if _, ok := value.(decimal.Decimal); ok {
		return Serialize(value)
	}
	if d, ok := value.(*decimal.Decimal); ok {
		if d == nil {
			return nil
		}
		return Serialize(*d)
	}
	if _, ok := value.(decimal.NullDecimal); ok {
		return Serialize(value)
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return SerializeFields(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		out := make([]interface{}, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = SerializeFields(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		out := make(map[string]interface{}, rv.Len())
		for _, key := range rv.MapKeys() {
			out[keyString(key)] = SerializeFields(rv.MapIndex(key).Interface())
		}
		return out
	case reflect.Struct:
		return serializeStruct(rv)
	default:
		return value
	}
}

func serializeStruct(rv reflect.Value) interface{} {
	rt := rv.Type()

	// leave time-like opaque structs alone, they marshal themselves
	if rt.PkgPath() == "time" {
		return rv.Interface()
	}

	out := make(map[string]interface{}, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if field.PkgPath != "" { // unexported
			continue
		}
		name := jsonFieldName(field)
		if name == "-" {
			continue
		}
		out[name] = SerializeFields(rv.Field(i).Interface())
	}
	return out
}

func jsonFieldName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "" {
		return field.Name
	}
	for i := 0; i < len(tag); i++ {
		if tag[i] == ',' {
			if i == 0 {
				return field.Name
			}
			return tag[:i]
		}
	}
	return tag
}

func keyString(key reflect.Value) string {
	if key.Kind() == reflect.String {
		return key.String()
	}
	return fmt.Sprintf("%v", key.Interface())
}
