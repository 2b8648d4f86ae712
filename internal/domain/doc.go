// Package domain contains shared domain types used across entity sub-packages.
// Entity-specific types live in sub-packages (domain/task, domain/user).
// This root package holds the error taxonomy and field-level validation
// errors shared by all entities and surfaced unchanged to every adapter.
package domain
