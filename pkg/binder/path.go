package binder

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cast"
)

// Path returns a binder that fills struct fields tagged `path:"name"` from
// chi URL parameters. Fields tagged `path:"-"` or without a tag are skipped.
// String, integer, float and bool fields are supported.
func Path() func(r *http.Request, v any) error {
	return PathFunc(chi.URLParam)
}

// PathFunc is Path with a custom parameter lookup, for routers other than chi.
func PathFunc(param func(r *http.Request, name string) string) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
			return fmt.Errorf("%w: target must be a pointer to struct", ErrInvalidPath)
		}
		rv = rv.Elem()
		rt := rv.Type()

		for i := range rt.NumField() {
			sf := rt.Field(i)
			name, _, _ := strings.Cut(sf.Tag.Get("path"), ",")
			if name == "" || name == "-" || !sf.IsExported() {
				continue
			}
			raw := param(r, name)
			if raw == "" {
				continue
			}
			if err := setField(rv.Field(i), raw); err != nil {
				return fmt.Errorf("%w: %s: %w", ErrInvalidPath, name, err)
			}
		}
		return nil
	}
}

func setField(f reflect.Value, raw string) error {
	switch f.Kind() {
	case reflect.String:
		f.SetString(raw)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := cast.ToInt64E(raw)
		if err != nil {
			return err
		}
		f.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := cast.ToUint64E(raw)
		if err != nil {
			return err
		}
		f.SetUint(n)
	case reflect.Float32, reflect.Float64:
		n, err := cast.ToFloat64E(raw)
		if err != nil {
			return err
		}
		f.SetFloat(n)
	case reflect.Bool:
		b, err := cast.ToBoolE(raw)
		if err != nil {
			return err
		}
		f.SetBool(b)
	default:
		return fmt.Errorf("unsupported field type %s", f.Type())
	}
	return nil
}
