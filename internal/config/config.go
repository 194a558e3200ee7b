// Package config loads relocate settings: defaults < relocate.yaml <
// RELOCATE_* environment < command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/katalvlaran/relocate/search"
	"github.com/katalvlaran/relocate/store"
	"github.com/katalvlaran/relocate/store/redis"
	"github.com/katalvlaran/relocate/store/sqlite"
)

// Config keys. Flags bound with BindFlags use the same names with dots
// replaced by dashes.
const (
	KeyLogLevel      = "log.level"
	KeyListen        = "server.listen"
	KeyStoreBackend  = "store.backend"
	KeySQLitePath    = "store.sqlite.path"
	KeyRedisAddr     = "store.redis.addr"
	KeyRedisPassword = "store.redis.password"
	KeyRedisDB       = "store.redis.db"
	KeyRedisTTL      = "store.redis.ttl"
	KeyBound         = "solver.bound"
	KeyTimeLimit     = "solver.time_limit"
	KeyWorkers       = "solver.workers"
	KeySharedMemo    = "solver.shared_memo"
)

// Store backends.
const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the resolved settings tree.
type Config struct {
	LogLevel string
	Listen   string
	Store    StoreConfig
	Solver   SolverConfig
}

// StoreConfig selects and configures the result store.
type StoreConfig struct {
	Backend       string
	SQLitePath    string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisTTL      time.Duration
}

// SolverConfig holds default search settings.
type SolverConfig struct {
	Bound      string
	TimeLimit  time.Duration
	Workers    int
	SharedMemo bool
}

// New returns a viper instance with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyListen, ":8080")
	v.SetDefault(KeyStoreBackend, BackendMemory)
	v.SetDefault(KeySQLitePath, "relocate.db")
	v.SetDefault(KeyRedisAddr, "localhost:6379")
	v.SetDefault(KeyRedisDB, 0)
	v.SetDefault(KeyRedisTTL, time.Duration(0))
	v.SetDefault(KeyBound, search.SimpleBound.String())
	v.SetDefault(KeyTimeLimit, time.Duration(0))
	v.SetDefault(KeyWorkers, 1)
	v.SetDefault(KeySharedMemo, false)

	v.SetEnvPrefix("RELOCATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// FlagName is the command-line flag bound to key.
func FlagName(key string) string {
	return strings.NewReplacer(".", "-", "_", "-").Replace(key)
}

// BindFlags binds every flag of fs whose name matches a key.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for _, key := range []string{
		KeyLogLevel, KeyListen, KeyStoreBackend, KeySQLitePath, KeyRedisAddr,
		KeyRedisPassword, KeyRedisDB, KeyRedisTTL, KeyBound, KeyTimeLimit,
		KeyWorkers, KeySharedMemo,
	} {
		f := fs.Lookup(FlagName(key))
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("config: bind %s: %w", key, err)
		}
	}

	return nil
}

// Load reads file (if non-empty) into v and resolves the Config.
// A missing default file is not an error; a missing explicit file is.
func Load(v *viper.Viper, file string) (Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", file, err)
		}
	} else {
		v.SetConfigName("relocate")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("config: read: %w", err)
			}
		}
	}

	c := Config{
		LogLevel: v.GetString(KeyLogLevel),
		Listen:   v.GetString(KeyListen),
		Store: StoreConfig{
			Backend:       v.GetString(KeyStoreBackend),
			SQLitePath:    v.GetString(KeySQLitePath),
			RedisAddr:     v.GetString(KeyRedisAddr),
			RedisPassword: v.GetString(KeyRedisPassword),
			RedisDB:       v.GetInt(KeyRedisDB),
			RedisTTL:      v.GetDuration(KeyRedisTTL),
		},
		Solver: SolverConfig{
			Bound:      v.GetString(KeyBound),
			TimeLimit:  v.GetDuration(KeyTimeLimit),
			Workers:    v.GetInt(KeyWorkers),
			SharedMemo: v.GetBool(KeySharedMemo),
		},
	}

	return c, c.Validate()
}

// Validate checks enumerations and ranges.
func (c Config) Validate() error {
	switch c.Store.Backend {
	case BackendNone, BackendMemory, BackendSQLite, BackendRedis:
	default:
		return fmt.Errorf("%w: store backend %q", ErrInvalidConfig, c.Store.Backend)
	}
	if _, err := search.ParseBound(c.Solver.Bound); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Solver.Workers < 1 {
		return fmt.Errorf("%w: workers %d", ErrInvalidConfig, c.Solver.Workers)
	}
	if c.Solver.TimeLimit < 0 {
		return fmt.Errorf("%w: time limit %v", ErrInvalidConfig, c.Solver.TimeLimit)
	}

	return nil
}

// SearchOptions turns the solver section into search options.
func (c Config) SearchOptions() []search.Option {
	algo, _ := search.ParseBound(c.Solver.Bound)
	opts := []search.Option{
		search.WithBound(algo),
		search.WithWorkers(c.Solver.Workers),
		search.WithSharedMemo(c.Solver.SharedMemo),
	}
	if c.Solver.TimeLimit > 0 {
		opts = append(opts, search.WithTimeLimit(c.Solver.TimeLimit))
	}

	return opts
}

// OpenStore opens the configured backend. BackendNone yields a nil Store.
func (c Config) OpenStore() (store.Store, error) {
	switch c.Store.Backend {
	case BackendNone:
		return nil, nil
	case BackendMemory:
		return store.NewMemory(), nil
	case BackendSQLite:
		s, err := sqlite.Open(c.Store.SQLitePath)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendRedis:
		return redis.New(c.Store.RedisAddr, c.Store.RedisPassword, c.Store.RedisDB,
			redis.WithTTL(c.Store.RedisTTL)), nil
	default:
		return nil, fmt.Errorf("%w: store backend %q", ErrInvalidConfig, c.Store.Backend)
	}
}
