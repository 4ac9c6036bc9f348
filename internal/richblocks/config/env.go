// Чтение переменных окружения в поля структуры конфигурации по тегам.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var (
	durationType = reflect.TypeOf(time.Duration(0))
	urlType      = reflect.TypeOf(&url.URL{})
)

// envConfig заполняет поля структуры s из переменных окружения, имя переменной берется из тега key.
// Пустые и отсутствующие переменные пропускаются, поле сохраняет нулевое значение.
func envConfig(key string, s any) error {
	v := reflect.ValueOf(s).Elem()
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		name := field.Tag.Get(key)
		if name == "" {
			continue
		}

		raw, ok := os.LookupEnv(name)
		if !ok || raw == "" {
			continue
		}

		if err := setField(v.Field(i), raw); err != nil {
			return fmt.Errorf("%s incorrect: %w", name, err)
		}

		slog.Info("Set config value",
			slog.String("key", t.Name()+"."+field.Name),
			slog.String("value", logValue(field.Name+name, raw)),
			slog.String("source", "ENVIRONMENT"),
		)
	}
	return nil
}

// setField разбирает raw по типу поля.
func setField(f reflect.Value, raw string) error {
	switch f.Type() {
	case durationType:
		d, err := time.ParseDuration(raw)
		if err != nil {
			return err
		}
		f.SetInt(int64(d))
		return nil
	case urlType:
		u, err := url.Parse(raw)
		if err != nil {
			return err
		}
		f.Set(reflect.ValueOf(u))
		return nil
	}

	switch f.Kind() {
	case reflect.String:
		f.SetString(raw)
	case reflect.Int:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return err
		}
		f.SetInt(int64(n))
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		f.SetBool(b)
	default:
		return fmt.Errorf("unsupported field type %s", f.Type())
	}
	return nil
}

// logValue скрывает секреты: остаются первый и последний символ.
func logValue(name, raw string) string {
	lower := strings.ToLower(name)
	if !strings.Contains(lower, "pass") && !strings.Contains(lower, "secret") && !strings.Contains(lower, "database_url") {
		return raw
	}
	r := []rune(raw)
	if len(r) <= 2 {
		return strings.Repeat("*", len(r))
	}
	return string(r[0]) + strings.Repeat("*", len(r)-2) + string(r[len(r)-1])
}
