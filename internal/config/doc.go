// Package config defines host settings for the smart-alarm commands and
// provides helpers to load, validate and save them in YAML format.
//
// The Config type selects the storage backend, the persisted file locations,
// the log level and the startup re-arm behaviour.
package config
