package admin

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"reflect"
	"time"
)

// MarshalCSV serializes a slice of flat records. The header row comes
// from the first record's field names (csv tag, or the lowercased field
// name); a "-" tag skips the field. An empty set produces no output at
// all, so callers can treat it as a no-op export.
func MarshalCSV(w io.Writer, rows interface{}) (int, error) {
	v := reflect.ValueOf(rows)
	if v.Kind() != reflect.Slice {
		return 0, errors.New("csv export expects a slice")
	}
	if v.Len() == 0 {
		return 0, nil
	}

	elem := v.Index(0).Type()
	if elem.Kind() != reflect.Struct {
		return 0, errors.New("csv export expects a slice of structs")
	}

	var header []string
	var fields []int
	for i := 0; i < elem.NumField(); i++ {
		field := elem.Field(i)
		name := field.Tag.Get("csv")
		if name == "-" {
			continue
		}
		if name == "" {
			name = lowerFirst(field.Name)
		}
		header = append(header, name)
		fields = append(fields, i)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return 0, err
	}
	for i := 0; i < v.Len(); i++ {
		record := make([]string, 0, len(fields))
		for _, f := range fields {
			record = append(record, formatField(v.Index(i).Field(f)))
		}
		if err := cw.Write(record); err != nil {
			return 0, err
		}
	}
	cw.Flush()
	return v.Len(), cw.Error()
}

func formatField(v reflect.Value) string {
	if t, ok := v.Interface().(time.Time); ok {
		return t.Format(time.RFC3339)
	}
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return fmt.Sprintf("%g", v.Float())
	default:
		return fmt.Sprint(v.Interface())
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]|0x20) + s[1:]
}
