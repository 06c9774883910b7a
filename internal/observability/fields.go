package observability

import "go.uber.org/zap"

// Typed field helpers so callers outside this package don't need to import
// zap directly for the common cases.

// String builds a string log field.
func String(key, value string) zap.Field {
	return zap.String(key, value)
}

// Int builds an int log field.
func Int(key string, value int) zap.Field {
	return zap.Int(key, value)
}

// Bool builds a bool log field.
func Bool(key string, value bool) zap.Field {
	return zap.Bool(key, value)
}

// Float64 builds a float64 log field.
func Float64(key string, value float64) zap.Field {
	return zap.Float64(key, value)
}

// Error builds an error log field.
func Error(err error) zap.Field {
	return zap.Error(err)
}
