// Package config loads and validates the sprintlens YAML configuration:
// HTTP port, optional API-key auth (secret resolved from the environment,
// never stored in the file) and the dataset file location.
package config
