// Package config loads mocut settings with viper.
//
// Precedence, lowest first: built-in defaults, an optional YAML file, and
// environment variables prefixed MOCUT_ with dots replaced by underscores
// (MOCUT_OPERATION_KIND=dtw, MOCUT_STORE_ENABLED=true). The merged result is
// validated with go-playground/validator before it is returned.
package config
