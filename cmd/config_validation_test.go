package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestValidateStartupConfigWithGetterEmpty verifies empty configuration passes validation.
func TestValidateStartupConfigWithGetterEmpty(t *testing.T) {
	err := validateStartupConfigWithGetter(newMapConfigGetter(map[string]any{}))
	require.NoError(t, err)
}

// TestValidateStartupConfigWithGetterNil verifies a nil getter is rejected.
func TestValidateStartupConfigWithGetterNil(t *testing.T) {
	require.Error(t, validateStartupConfigWithGetter(nil))
}

// TestValidateStartupConfigWithGetterInvalidBoolean verifies invalid boolean configuration fails validation.
func TestValidateStartupConfigWithGetterInvalidBoolean(t *testing.T) {
	cfg := map[string]any{
		"settings": map[string]any{
			"web": map[string]any{
				"playground": map[string]any{
					"enabled": "not-a-bool",
				},
			},
		},
	}

	err := validateStartupConfigWithGetter(newMapConfigGetter(cfg))
	require.Error(t, err)
	require.Contains(t, err.Error(), "settings.web.playground.enabled")
}

// TestValidateStartupConfigWithGetterInvalidListen verifies malformed listen addresses fail validation.
func TestValidateStartupConfigWithGetterInvalidListen(t *testing.T) {
	for _, listen := range []any{"localhost", "localhost:http-alt", "localhost:70000", 8080} {
		err := validateStartupConfigWithGetter(newMapConfigGetter(map[string]any{"listen": listen}))
		require.Error(t, err, listen)
		require.Contains(t, err.Error(), "listen")
	}
}

// TestValidateStartupConfigWithGetterInvalidLogLevel verifies unknown log levels fail validation.
func TestValidateStartupConfigWithGetterInvalidLogLevel(t *testing.T) {
	err := validateStartupConfigWithGetter(newMapConfigGetter(map[string]any{"log-level": "verbose"}))
	require.Error(t, err)
	require.Contains(t, err.Error(), "log-level")
}

// TestValidateStartupConfigWithGetterInvalidCORSHosts verifies CORS hosts must be bare hosts.
func TestValidateStartupConfigWithGetterInvalidCORSHosts(t *testing.T) {
	cfg := map[string]any{
		"settings": map[string]any{
			"web": map[string]any{
				"cors": map[string]any{
					"allowed_hosts": []any{"example.com", "https://evil.com", ""},
				},
			},
		},
	}

	err := validateStartupConfigWithGetter(newMapConfigGetter(cfg))
	require.Error(t, err)
	require.Contains(t, err.Error(), "allowed_hosts[1]")
	require.Contains(t, err.Error(), "allowed_hosts[2]")
	require.NotContains(t, err.Error(), "allowed_hosts[0]")

	cfg["settings"].(map[string]any)["web"].(map[string]any)["cors"] = map[string]any{
		"allowed_hosts": "example.com",
	}
	err = validateStartupConfigWithGetter(newMapConfigGetter(cfg))
	require.Error(t, err)
	require.Contains(t, err.Error(), "must be a list of strings")
}

// TestValidateStartupConfigWithGetterValidConfig verifies valid explicit configuration passes validation.
func TestValidateStartupConfigWithGetterValidConfig(t *testing.T) {
	cfg := map[string]any{
		"listen":    "0.0.0.0:8080",
		"debug":     false,
		"log-level": "info",
		"settings": map[string]any{
			"web": map[string]any{
				"metric":     map[string]any{"enabled": true},
				"playground": map[string]any{"enabled": "false"},
				"cors": map[string]any{
					"allowed_hosts": []string{"example.com", "graphql.example.org"},
				},
			},
		},
	}

	err := validateStartupConfigWithGetter(newMapConfigGetter(cfg))
	require.NoError(t, err)
}

// newMapConfigGetter builds a dotted-path getter for nested map-based test configuration.
// It accepts a nested map and returns a getter function compatible with validateStartupConfigWithGetter.
func newMapConfigGetter(root map[string]any) configGetter {
	return func(key string) any {
		if key == "" {
			return nil
		}

		parts := strings.Split(key, ".")
		var current any = root
		for _, part := range parts {
			nextMap, ok := current.(map[string]any)
			if !ok {
				return nil
			}

			next, exists := nextMap[part]
			if !exists {
				return nil
			}
			current = next
		}

		return current
	}
}
