// Package config loads tablekit configuration.
//
// It uses Viper to read a YAML file and environment variables, and godotenv
// to pull secrets such as RESEND_API_KEY from a .env file next to the
// config. Prefixed environment variables override file values:
// TABLEKIT_RESEND_FROM sets resend.from.
//
// # Usage
//
//	var cfg Config
//	err := config.LoadConfig("tablekit", &cfg, config.WithConfigFile(path))
package config
