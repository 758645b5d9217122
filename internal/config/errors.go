package config

import "errors"

// Validation errors returned by Config.Validate.
var (
	// ErrConfigNotFound is returned when an explicitly given file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")

	ErrNoURL = errors.New("bulletin URL is empty")

	ErrInvalidTimeout = errors.New("invalid timeout: must be non-negative")

	// ErrNoSMTPHost means no mail server is configured; only dry runs can proceed.
	ErrNoSMTPHost = errors.New("SMTP host is not configured")

	ErrNoSender = errors.New("sender address is not configured")

	ErrNoRecipient = errors.New("recipient address is not configured")
)
