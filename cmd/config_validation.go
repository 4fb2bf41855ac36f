package cmd

import (
	"fmt"
	"math"
	"net"
	"strconv"
	"strings"

	errors "github.com/Laisky/errors/v2"
	gconfig "github.com/Laisky/go-config/v2"
)

// configGetter retrieves raw configuration values by dotted key path.
type configGetter func(key string) any

// validateStartupConfig validates startup configuration from the shared config source.
// It returns an error when any configured value is malformed or violates constraints.
func validateStartupConfig() error {
	return validateStartupConfigWithGetter(func(key string) any {
		return gconfig.Shared.Get(key)
	})
}

// validateStartupConfigWithGetter validates startup configuration via a key-value getter.
// It accepts a value getter and returns nil when all configured values are valid.
func validateStartupConfigWithGetter(get configGetter) error {
	if get == nil {
		return errors.New("config getter is nil")
	}

	validationErrs := make([]string, 0)

	validateServerConfig(get, &validationErrs)
	validateWebConfig(get, &validationErrs)

	if len(validationErrs) == 0 {
		return nil
	}

	return errors.Errorf("invalid configuration:\n - %s", strings.Join(validationErrs, "\n - "))
}

// validateServerConfig validates listen address and log settings.
// It accepts a getter and an error collector pointer and appends validation errors.
func validateServerConfig(get configGetter, errs *[]string) {
	validateOptionalListenAddr(get, "listen", errs)
	validateOptionalBool(get, "debug", errs)

	raw := get("log-level")
	if raw == nil {
		return
	}

	lvl, parseErr := parseStrictString(raw)
	if parseErr != nil {
		appendValidationError(errs, "log-level must be a string")
		return
	}

	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug", "info", "warn", "error":
	default:
		appendValidationError(errs, "log-level must be one of debug/info/warn/error")
	}
}

// validateWebConfig validates web toggles and CORS hosts.
// It accepts a getter and an error collector pointer and appends validation errors.
func validateWebConfig(get configGetter, errs *[]string) {
	validateOptionalBool(get, "settings.web.metric.enabled", errs)
	validateOptionalBool(get, "settings.web.playground.enabled", errs)

	raw := get("settings.web.cors.allowed_hosts")
	if raw == nil {
		return
	}

	hosts, ok := toStringSlice(raw)
	if !ok {
		appendValidationError(errs, "settings.web.cors.allowed_hosts must be a list of strings")
		return
	}

	for i, host := range hosts {
		if !isValidHost(host) {
			appendValidationError(errs, "settings.web.cors.allowed_hosts[%d] must be a bare host, got %q", i, host)
		}
	}
}

// validateOptionalListenAddr validates an optionally configured host:port key.
// It accepts a getter, the key, and an error collector pointer and appends validation errors.
func validateOptionalListenAddr(get configGetter, key string, errs *[]string) {
	raw := get(key)
	if raw == nil {
		return
	}

	value, parseErr := parseStrictString(raw)
	if parseErr != nil {
		appendValidationError(errs, "%s must be a string", key)
		return
	}

	_, port, err := net.SplitHostPort(strings.TrimSpace(value))
	if err != nil {
		appendValidationError(errs, "%s must look like host:port", key)
		return
	}

	if n, err := strconv.Atoi(port); err != nil || n < 0 || n > math.MaxUint16 {
		appendValidationError(errs, "%s has invalid port %q", key, port)
	}
}

// validateOptionalBool validates an optionally configured boolean key.
// It accepts a getter, the key, and an error collector pointer and appends validation errors.
func validateOptionalBool(get configGetter, key string, errs *[]string) {
	raw := get(key)
	if raw == nil {
		return
	}

	if _, ok := parseStrictBool(raw); !ok {
		appendValidationError(errs, "%s must be a boolean", key)
	}
}

// parseStrictBool parses a value as boolean using strict conversion rules.
// It accepts a raw value and returns the parsed boolean and whether parsing succeeded.
func parseStrictBool(value any) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case int:
		return v != 0, true
	case int64:
		return v != 0, true
	case float64:
		if math.Trunc(v) != v {
			return false, false
		}
		return int64(v) != 0, true
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return false, false
		}
		switch strings.ToLower(trimmed) {
		case "true", "1", "yes":
			return true, true
		case "false", "0", "no":
			return false, true
		default:
			return false, false
		}
	default:
		return false, false
	}
}

// parseStrictString parses a value as a strict string.
// It accepts a raw value and returns the parsed string and an error when parsing fails.
func parseStrictString(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", errors.Errorf("unsupported string type %T", value)
	}
}

// toStringSlice converts yaml/flag list values into strings.
func toStringSlice(value any) ([]string, bool) {
	switch v := value.(type) {
	case []string:
		return v, true
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}

// isValidHost validates a host string without scheme or path components.
// It accepts a host string and returns true when the host is syntactically acceptable.
func isValidHost(host string) bool {
	trimmed := strings.TrimSpace(host)
	if trimmed == "" {
		return false
	}
	if strings.Contains(trimmed, "://") || strings.Contains(trimmed, "/") {
		return false
	}
	return true
}

// appendValidationError appends a formatted validation error to the collector.
// It accepts an error slice pointer, a format string, and format arguments, and has no return value.
func appendValidationError(errs *[]string, format string, args ...any) {
	if errs == nil {
		return
	}
	*errs = append(*errs, fmt.Sprintf(format, args...))
}
