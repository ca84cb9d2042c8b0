// Package config loads application settings from config.yaml, a .env file
// and WORDHOARD_* environment variables, in increasing order of precedence,
// and validates the result.
package config
