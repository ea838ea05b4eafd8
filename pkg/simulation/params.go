package simulation

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/picogrid/ctwrap/pkg/logger"
)

// ValidateParameters checks cfg against the declared parameters of spec and
// returns a new Config holding every declared parameter in its canonical Go
// type (int, float64, string, time.Duration, bool). Missing parameters take
// their declared default. Keys that are not declared are ignored.
func ValidateParameters(spec ModuleSpec, cfg Config) (Config, error) {
	out := make(Config, len(spec.Parameters))

	for _, param := range spec.Parameters {
		raw, ok := cfg[param.Name]
		if !ok || raw == nil {
			if param.Default == nil {
				if param.Required {
					return nil, &InvalidParameterError{Param: param.Name, Reason: "required parameter not provided"}
				}
				continue
			}
			raw = param.Default
		}

		value, err := CoerceParameter(param, raw)
		if err != nil {
			return nil, err
		}
		out[param.Name] = value
	}

	for key := range cfg {
		if _, ok := spec.Parameter(key); !ok {
			logger.Debugf("%s: ignoring undeclared parameter %q", spec.Name, key)
		}
	}

	return out, nil
}

// CoerceParameter converts raw to the canonical type of param and checks its
// range and options.
func CoerceParameter(param Parameter, raw interface{}) (interface{}, error) {
	invalid := func(reason string) error {
		return &InvalidParameterError{Param: param.Name, Value: raw, Reason: reason}
	}

	switch param.Type {
	case "integer":
		v, err := toInt(raw)
		if err != nil {
			return nil, invalid("must be an integer")
		}
		if err := checkRange(param, float64(v)); err != nil {
			return nil, invalid(err.Error())
		}
		return v, nil

	case "float":
		v, err := toFloat(raw, param.Unit)
		if err != nil {
			return nil, invalid("must be a number")
		}
		if err := checkRange(param, v); err != nil {
			return nil, invalid(err.Error())
		}
		return v, nil

	case "duration":
		v, err := toDuration(raw)
		if err != nil {
			return nil, invalid("invalid duration format (use formats like 5m, 1h30m, 30s)")
		}
		if err := checkRange(param, v.Seconds()); err != nil {
			return nil, invalid(err.Error())
		}
		return v, nil

	case "string":
		v := fmt.Sprintf("%v", raw)
		if len(param.Options) > 0 && !contains(param.Options, v) {
			return nil, invalid("must be one of: " + strings.Join(param.Options, ", "))
		}
		return v, nil

	case "boolean":
		switch v := raw.(type) {
		case bool:
			return v, nil
		case string:
			b, err := strconv.ParseBool(v)
			if err != nil {
				return nil, invalid("must be a boolean")
			}
			return b, nil
		default:
			return nil, invalid("must be a boolean")
		}

	default:
		return nil, fmt.Errorf("unsupported parameter type: %s", param.Type)
	}
}

// checkRange compares v against the optional bounds of param. Duration bounds
// are expressed in seconds.
func checkRange(param Parameter, v float64) error {
	if param.Min != nil {
		minRange, err := toFloat(param.Min, param.Unit)
		if err == nil && v < minRange {
			return fmt.Errorf("value must be at least %g", minRange)
		}
	}
	if param.Max != nil {
		maxRange, err := toFloat(param.Max, param.Unit)
		if err == nil && v > maxRange {
			return fmt.Errorf("value must be at most %g", maxRange)
		}
	}
	return nil
}

func toInt(v interface{}) (int, error) {
	switch val := v.(type) {
	case float64:
		if val != math.Trunc(val) {
			return 0, fmt.Errorf("%v is not integral", val)
		}
		return int(val), nil
	case string:
		return strconv.Atoi(strings.TrimSpace(val))
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if rv.Uint() > math.MaxInt {
			return 0, fmt.Errorf("%v overflows int", v)
		}
		return int(rv.Uint()), nil
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}

// toFloat converts v to a float64. Parameters with unit "s" also accept a
// duration string such as "200ms", converted to seconds.
func toFloat(v interface{}, unit string) (float64, error) {
	var f float64
	switch val := v.(type) {
	case time.Duration:
		f = val.Seconds()
	case string:
		s := strings.TrimSpace(val)
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			if unit != "s" {
				return 0, err
			}
			d, derr := time.ParseDuration(s)
			if derr != nil {
				return 0, derr
			}
			parsed = d.Seconds()
		}
		f = parsed
	default:
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Float32, reflect.Float64:
			f = rv.Float()
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			f = float64(rv.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			f = float64(rv.Uint())
		default:
			return 0, fmt.Errorf("unsupported type %T", v)
		}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%v is not a finite number", f)
	}
	return f, nil
}

// maxSeconds is the longest span, in seconds, a time.Duration can hold
const maxSeconds = float64(math.MaxInt64) / float64(time.Second)

// SecondsToDuration converts seconds to a time.Duration, saturating at the
// limits of the int64 nanosecond range instead of wrapping around.
func SecondsToDuration(seconds float64) time.Duration {
	switch {
	case seconds >= maxSeconds:
		return time.Duration(math.MaxInt64)
	case seconds <= -maxSeconds:
		return time.Duration(math.MinInt64)
	default:
		return time.Duration(seconds * float64(time.Second))
	}
}

// toDuration accepts a duration, a duration string, or a number of seconds
func toDuration(v interface{}) (time.Duration, error) {
	switch val := v.(type) {
	case time.Duration:
		return val, nil
	case string:
		return time.ParseDuration(strings.TrimSpace(val))
	default:
		seconds, err := toFloat(v, "")
		if err != nil {
			return 0, err
		}
		return SecondsToDuration(seconds), nil
	}
}

func contains(options []string, v string) bool {
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}
