package config

const (
	defaultServerPort = 8080

	defaultCircuitBreakerMaxFailures = 5
	defaultCircuitBreakerHalfOpen    = 1

	defaultRateLimitBurst = 20

	// DefaultBootstrapUserID is the stable identity of the tool-boundary user.
	DefaultBootstrapUserID = "0b2e1f84-93d8-4792-b2e1-6fbbfb376d74"
)

// defaults returns the default configuration values.
// These are loaded first and can be overridden by base.yaml, profile YAML, and env vars.
func defaults() map[string]any {
	return map[string]any{
		"server.host":          "0.0.0.0",
		"server.port":          defaultServerPort,
		"server.read_timeout":  "5s",
		"server.write_timeout": "10s",
		"server.idle_timeout":  "120s",

		"log.level":  "info",
		"log.format": "json",

		"storage.path":                            "/tmp/mcp_per_project_users.json",
		"storage.swallow_write_errors":            false,
		"storage.circuit_breaker.max_failures":    defaultCircuitBreakerMaxFailures,
		"storage.circuit_breaker.timeout":         "30s",
		"storage.circuit_breaker.half_open_limit": defaultCircuitBreakerHalfOpen,

		"bootstrap.user_id":   DefaultBootstrapUserID,
		"bootstrap.user_name": "Test user",

		"rate_limit.requests_per_second": 0,
		"rate_limit.burst":               defaultRateLimitBurst,

		"telemetry.enabled":      false,
		"telemetry.exporter":     "stdout",
		"telemetry.endpoint":     "",
		"telemetry.service_name": "go-task-tracker",
	}
}
