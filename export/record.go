package export

import (
	"fmt"
	"iter"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Field is a single named value in a Record.
type Field struct {
	Name  string
	Value any
}

// Record is a flat, ordered mapping from field name to scalar value. The
// order fields were first set in is the order Keys returns them in.
type Record []Field

// NewRecord builds a record from alternating names and values.
func NewRecord(kv ...any) Record {
	if len(kv)%2 != 0 {
		panic("export: NewRecord called with odd number of arguments")
	}
	r := make(Record, 0, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		name, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("export: field name %v is not a string", kv[i]))
		}
		r.Set(name, kv[i+1])
	}
	return r
}

// Set replaces the value of name, or appends it if not present.
func (r *Record) Set(name string, value any) {
	for i := range *r {
		if (*r)[i].Name == name {
			(*r)[i].Value = value
			return
		}
	}
	*r = append(*r, Field{Name: name, Value: value})
}

func (r Record) Get(name string) (any, bool) {
	for _, f := range r {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

func (r Record) Keys() []string {
	keys := make([]string, len(r))
	for i, f := range r {
		keys[i] = f.Name
	}
	return keys
}

// FromStruct converts a struct (or pointer to struct) into a Record. Exported
// fields become columns in declaration order, named by their `csv` tag or,
// lacking one, by the field name. A tag of "-" skips the field. Anything
// other than a struct panics.
func FromStruct(v any) Record {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		panic(fmt.Sprintf("export: FromStruct of non-struct %T", v))
	}
	rt := rv.Type()
	r := make(Record, 0, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := sf.Name
		if tag, ok := sf.Tag.Lookup("csv"); ok {
			tag, _, _ = strings.Cut(tag, ",")
			if tag == "-" {
				continue
			}
			if tag != "" {
				name = tag
			}
		}
		r.Set(name, rv.Field(i).Interface())
	}
	return r
}

// Structs returns a sequence of records converted from items with FromStruct.
func Structs[T any](items []T) iter.Seq[Record] {
	return func(yield func(Record) bool) {
		for _, item := range items {
			if !yield(FromStruct(item)) {
				return
			}
		}
	}
}

// Records returns a sequence over a slice of records.
func Records(rs []Record) iter.Seq[Record] {
	return func(yield func(Record) bool) {
		for _, r := range rs {
			if !yield(r) {
				return
			}
		}
	}
}

// formatValue renders a scalar the way it is written to a cell.
func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int8, int16, int32, int64:
		return strconv.FormatInt(reflect.ValueOf(v).Int(), 10)
	case uint, uint8, uint16, uint32, uint64:
		return strconv.FormatUint(reflect.ValueOf(v).Uint(), 10)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case time.Time:
		if v.IsZero() {
			return ""
		}
		return v.Format(time.RFC3339)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
