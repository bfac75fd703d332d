// Package config loads sdlog settings from a YAML file and SDLOG_* environment
// variables, and turns them into a storage backend and logger options.
package config
