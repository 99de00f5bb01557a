// Package config loads pluck configuration.
//
// Configuration is layered with koanf: embedded defaults, then the manifest
// file (TOML or YAML), then a .env file next to the manifest, then PLUCK_
// environment variables. Nested keys in environment variables are separated
// by a double underscore, so PLUCK_SETTINGS__WORKERS sets settings.workers.
package config
