// Package config loads ssekit configuration from YAML files and the
// environment.
//
// Values resolve in order: YAML file, then SSEKIT_-prefixed environment
// variables (optionally loaded from a .env file), so deployments can
// override any field without editing the file.
//
//	var cfg client.Config
//	if err := config.Load("config.yml", &cfg); err != nil {
//	    ...
//	}
package config
