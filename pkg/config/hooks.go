package config

import (
	"reflect"
	"strconv"
	"time"

	"github.com/devantler-tech/mssql-init/pkg/utils/envvar"
	mapstructure "github.com/go-viper/mapstructure/v2"
)

// decodeHook expands ${VAR} placeholders and accepts durations either as Go
// duration strings ("20s") or as plain seconds (20, "20").
func decodeHook(expander *envvar.Expander) mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		expandHook(expander),
		secondsDurationHook(),
		mapstructure.StringToTimeDurationHookFunc(),
	)
}

func expandHook(expander *envvar.Expander) mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, _ reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String {
			return data, nil
		}

		value, ok := data.(string)
		if !ok {
			return data, nil
		}

		return expander.Expand(value), nil
	}
}

func secondsDurationHook() mapstructure.DecodeHookFuncType {
	durationType := reflect.TypeFor[time.Duration]()

	return func(_ reflect.Type, to reflect.Type, data any) (any, error) {
		if to != durationType {
			return data, nil
		}

		switch value := data.(type) {
		case int:
			return time.Duration(value) * time.Second, nil
		case int64:
			return time.Duration(value) * time.Second, nil
		case float64:
			return time.Duration(value * float64(time.Second)), nil
		case string:
			seconds, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return data, nil //nolint:nilerr // not a plain number, left to the duration string hook
			}

			return time.Duration(seconds * float64(time.Second)), nil
		default:
			return data, nil
		}
	}
}
