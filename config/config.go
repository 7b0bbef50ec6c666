// Package config loads the board configuration.
//
// Values are merged from four layers, later layers winning: built-in
// defaults, an optional YAML file, TYPEDBOARD_* environment variables and
// command-line flags. Nested keys use dots ("db.driver"); the environment
// spelling doubles the underscore (TYPEDBOARD_DB__DRIVER).
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// DefaultFile is the configuration file looked up when none is given.
const DefaultFile = "typedboard.yml"

const envPrefix = "TYPEDBOARD_"

// Config is the fully merged board configuration.
type Config struct {
	HTTP     HTTP     `koanf:"http"`
	GraphQL  GraphQL  `koanf:"graphql"`
	DB       DB       `koanf:"db"`
	Schema   Schema   `koanf:"schema"`
	Generate Generate `koanf:"generate"`
	Log      Log      `koanf:"log"`
}

// HTTP configures the serve command.
type HTTP struct {
	Addr string `koanf:"addr"`
}

// GraphQL configures the client-side endpoint.
type GraphQL struct {
	Endpoint string `koanf:"endpoint"`
}

// DB configures the store.
type DB struct {
	Driver string `koanf:"driver"`
	DSN    string `koanf:"dsn"`
}

// Schema configures the publisher.
type Schema struct {
	Artifact string `koanf:"artifact"`
}

// Generate configures the typed request generator.
type Generate struct {
	Queries []string `koanf:"queries"`
	Target  string   `koanf:"target"`
}

// Log configures logging.
type Log struct {
	Level string `koanf:"level"`
}

func defaults() map[string]any {
	return map[string]any{
		"http.addr":        ":8080",
		"graphql.endpoint": "http://localhost:8080/graphql",
		"db.driver":        "sqlite",
		"db.dsn":           "board.db",
		"schema.artifact":  "schema.graphql",
		"generate.queries": []string{"board/queries.graphql"},
		"generate.target":  "board",
		"log.level":        "info",
	}
}

// Load merges all configuration layers. path selects the YAML file; when
// empty, DefaultFile is read if present and skipped otherwise. flags may be
// nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("config: defaults: %w", err)
	}

	explicit := path != ""
	if path == "" {
		path = DefaultFile
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if explicit || !os.IsNotExist(err) {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("config: environment: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, fmt.Errorf("config: flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	return &cfg, nil
}

// envKey maps TYPEDBOARD_DB__DRIVER to db.driver: the double underscore
// separates nesting levels so single underscores stay inside key names.
func envKey(key string) string {
	key = strings.TrimPrefix(key, envPrefix)
	key = strings.ToLower(key)
	return strings.ReplaceAll(key, "__", ".")
}
