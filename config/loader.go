package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envPrefix namespaces environment overrides, e.g. SSEKIT_ENDPOINT.
const envPrefix = "SSEKIT"

// Load reads a YAML config file into out, then applies SSEKIT_-prefixed
// environment variable overrides. The file must exist; use LoadEnv first
// if overrides live in a .env file.
func Load(path string, out any) error {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvOverrides(v)

	if err := v.Unmarshal(out); err != nil {
		return fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	return nil
}

// LoadEnv loads environment variables from .env files. Missing files are
// not an error so the same call works in development and production.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("config: load env file %s: %w", f, err)
		}
	}
	return nil
}

// bindEnvOverrides force-binds every prefixed environment variable so
// overrides apply even for keys absent from the YAML file.
func bindEnvOverrides(v *viper.Viper) {
	prefix := envPrefix + "_"
	for _, env := range os.Environ() {
		pair := strings.SplitN(env, "=", 2)
		if len(pair) != 2 || !strings.HasPrefix(pair[0], prefix) {
			continue
		}
		key := strings.ToLower(strings.TrimPrefix(pair[0], prefix))
		// Nested keys use double underscores: SSEKIT_LOGGER__LEVEL -> logger.level
		key = strings.ReplaceAll(key, "__", ".")
		v.Set(key, pair[1])
	}
}
