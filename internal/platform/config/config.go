// Package config loads freightrouted's process configuration with viper.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything cmd/freightrouted needs to wire the engine and
// its collaborators. None of it is consulted by the core engine itself.
type Config struct {
	LogLevel string

	MongoURI    string
	MongoDB     string
	RedisAddr   string
	RedisDB     int
	PostgresDSN string

	ReloadInterval time.Duration
	DefaultMaxRoutes   int
	DefaultMaxSegments int
	MaterializeWorkers int

	HTTPAddr string
}

// Load reads the configName config file from the given search paths, parsed
// as TOML, falling back to built-in defaults for any key the file omits.
func Load(configName string, paths ...string) (*Config, error) {
	vm := viper.New()
	vm.SetConfigName(configName)
	vm.SetConfigType("toml")
	for _, p := range paths {
		vm.AddConfigPath(p)
	}

	vm.SetDefault("log.level", "info")
	vm.SetDefault("data.mongo.uri", "mongodb://localhost:27017")
	vm.SetDefault("data.mongo.database", "freightroute")
	vm.SetDefault("data.redis.addr", "localhost:6379")
	vm.SetDefault("data.redis.db", 0)
	vm.SetDefault("data.postgres.dsn", "host=localhost user=postgres dbname=freightroute sslmode=disable")
	vm.SetDefault("engine.reload_interval", "5m")
	vm.SetDefault("engine.default_max_routes", 10)
	vm.SetDefault("engine.default_max_segments", 6)
	vm.SetDefault("engine.materialize_workers", 0)
	vm.SetDefault("server.http.addr", ":8080")

	if err := vm.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: read %s: %w", configName, err)
		}
	}

	interval, err := time.ParseDuration(vm.GetString("engine.reload_interval"))
	if err != nil {
		return nil, fmt.Errorf("config: engine.reload_interval: %w", err)
	}

	return &Config{
		LogLevel:           vm.GetString("log.level"),
		MongoURI:           vm.GetString("data.mongo.uri"),
		MongoDB:            vm.GetString("data.mongo.database"),
		RedisAddr:          vm.GetString("data.redis.addr"),
		RedisDB:            vm.GetInt("data.redis.db"),
		PostgresDSN:        vm.GetString("data.postgres.dsn"),
		ReloadInterval:     interval,
		DefaultMaxRoutes:   vm.GetInt("engine.default_max_routes"),
		DefaultMaxSegments: vm.GetInt("engine.default_max_segments"),
		MaterializeWorkers: vm.GetInt("engine.materialize_workers"),
		HTTPAddr:           vm.GetString("server.http.addr"),
	}, nil
}
