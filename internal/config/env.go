package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
)

// loadFromEnv overrides every field tagged `env` with the variable of that
// name. Map fields tagged `envPrefix` hold structs keyed by name; their fields
// read <prefix><NAME>_<env>, so OAUTH_GOOGLE_CLIENT_ID sets
// OAuth.Providers["google"].ClientID.
func loadFromEnv(config *Config) error {
	return applyEnv(reflect.ValueOf(config).Elem(), "")
}

func applyEnv(v reflect.Value, prefix string) error {
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field, sf := v.Field(i), t.Field(i)

		switch {
		case field.Kind() == reflect.Struct:
			if err := applyEnv(field, prefix); err != nil {
				return err
			}
		case field.Kind() == reflect.Map && sf.Tag.Get("envPrefix") != "":
			if err := applyEnvToEntries(field, sf.Tag.Get("envPrefix")); err != nil {
				return err
			}
		case sf.Tag.Get("env") != "":
			name := prefix + sf.Tag.Get("env")
			raw, ok := os.LookupEnv(name)
			if !ok {
				continue
			}
			if err := setFromEnv(field, raw); err != nil {
				return fmt.Errorf("env %s: %w", name, err)
			}
		}
	}
	return nil
}

// applyEnvToEntries overrides each struct value of m. Map values are not
// addressable, so each is copied out and stored back.
func applyEnvToEntries(m reflect.Value, prefix string) error {
	if m.Type().Elem().Kind() != reflect.Struct {
		return fmt.Errorf("envPrefix needs a map of structs, got %s", m.Type())
	}
	for _, key := range m.MapKeys() {
		entry := reflect.New(m.Type().Elem()).Elem()
		entry.Set(m.MapIndex(key))
		if err := applyEnv(entry, prefix+strings.ToUpper(key.String())+"_"); err != nil {
			return err
		}
		m.SetMapIndex(key, entry)
	}
	return nil
}

func setFromEnv(field reflect.Value, raw string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Int:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid integer: %w", err)
		}
		field.SetInt(int64(n))
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid boolean: %w", err)
		}
		field.SetBool(b)
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice type %s", field.Type())
		}
		// comma separated; blanks dropped
		items := []string{}
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				items = append(items, part)
			}
		}
		field.Set(reflect.ValueOf(items))
	default:
		return fmt.Errorf("unsupported field type %s", field.Kind())
	}
	return nil
}
