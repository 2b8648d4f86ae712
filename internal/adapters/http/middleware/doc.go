// Package middleware holds the inbound HTTP pipeline of the task API.
//
// Pipeline assembles it in a fixed order:
//
//	Recovery → RequestID → CorrelationID → OpenTelemetry → Logging → RateLimit → Timeout → router
//
// Every rejection the pipeline produces itself (panic 500, 429, 504) is an
// RFC 9457 problem document, like the handlers' own errors. Rate-limited and
// timed-out requests are still traced and logged because they are answered
// inside Logging and OpenTelemetry.
package middleware
