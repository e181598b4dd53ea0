package tag

import (
	"encoding"
	"reflect"
	"strconv"
	"strings"
	"time"
)

const tagName = "default"

// ApplyDefaults fills zero-valued fields of the struct pointed to by target
// from their `default` tags. Nested structs are visited recursively; fields
// that already hold a value are left untouched. Slice defaults are
// comma-separated.
//
//	type BenchConfig struct {
//	    Sizes []int `default:"10,1000,100000"`
//	}
func ApplyDefaults(target any) error {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return ErrTargetMustBePointer
	}
	return applyStruct(v.Elem(), "")
}

func applyStruct(v reflect.Value, prefix string) error {
	typ := v.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		fv := v.Field(i)
		if !fv.CanSet() {
			continue
		}

		path := field.Name
		if prefix != "" {
			path = prefix + "." + field.Name
		}

		if fv.Kind() == reflect.Struct && !implementsText(fv) {
			if err := applyStruct(fv, path); err != nil {
				return err
			}
			continue
		}

		def, ok := field.Tag.Lookup(tagName)
		if !ok || !fv.IsZero() {
			continue
		}
		if err := setValue(fv, def); err != nil {
			return &FieldError{Path: path, Kind: fv.Kind(), Value: def, Err: err}
		}
	}
	return nil
}

func implementsText(v reflect.Value) bool {
	if !v.CanAddr() {
		return false
	}
	_, ok := v.Addr().Interface().(encoding.TextUnmarshaler)
	return ok
}

func setValue(v reflect.Value, s string) error {
	if implementsText(v) {
		return v.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s))
	}

	s = strings.TrimSpace(s)
	switch v.Kind() {
	case reflect.String:
		v.SetString(s)
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if v.Type() == reflect.TypeFor[time.Duration]() {
			d, err := time.ParseDuration(s)
			if err != nil {
				return err
			}
			v.SetInt(int64(d))
			return nil
		}
		n, err := strconv.ParseInt(s, 10, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetFloat(f)
	case reflect.Slice:
		if s == "" {
			v.Set(reflect.MakeSlice(v.Type(), 0, 0))
			return nil
		}
		parts := strings.Split(s, ",")
		slice := reflect.MakeSlice(v.Type(), len(parts), len(parts))
		for i, part := range parts {
			if err := setValue(slice.Index(i), part); err != nil {
				return err
			}
		}
		v.Set(slice)
	default:
		return ErrUnsupportedType
	}
	return nil
}
