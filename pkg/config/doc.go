// Package config loads mssql-init settings from defaults, an optional YAML file,
// MSSQL_INIT_* environment variables and command-line flags, in increasing precedence.
package config
