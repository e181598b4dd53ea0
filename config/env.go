package config

import (
	"encoding"
	"reflect"
	"strings"

	"github.com/spf13/viper"
)

var textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()

// bindEnv registers every mapstructure key of t with v, so environment
// variables apply even to keys no config file mentions.
func bindEnv(v *viper.Viper, t reflect.Type, prefix string) error {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	for i := range t.NumField() {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		name, _, _ := strings.Cut(field.Tag.Get("mapstructure"), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = strings.ToLower(field.Name)
		}
		key := prefix + name

		ft := field.Type
		if ft.Kind() == reflect.Struct && !reflect.PointerTo(ft).Implements(textUnmarshalerType) {
			if err := bindEnv(v, ft, key+"."); err != nil {
				return err
			}
			continue
		}
		if err := v.BindEnv(key); err != nil {
			return err
		}
	}
	return nil
}
