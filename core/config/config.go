package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	// ErrNilConfig is returned when Load receives a nil pointer.
	ErrNilConfig = errors.New("config: nil config pointer")
	// ErrNotStructPointer is returned when Load receives something other
	// than a pointer to a struct.
	ErrNotStructPointer = errors.New("config: expected pointer to struct")
)

var (
	dotenvOnce sync.Once
	cache      sync.Map // reflect.Type -> any
)

// Load parses environment variables into cfg, which must be a non-nil
// pointer to a struct with env tags. The first call for a given struct
// type reads the environment; later calls for the same type return the
// cached value. A .env file in the working directory is loaded once per
// process before the first parse; its absence is not an error.
func Load[T any](cfg *T) error {
	if cfg == nil {
		return ErrNilConfig
	}

	t := reflect.TypeOf(*cfg)
	if t.Kind() != reflect.Struct {
		return fmt.Errorf("%w, got %s", ErrNotStructPointer, t.Kind())
	}

	if cached, ok := cache.Load(t); ok {
		*cfg = cached.(T)
		return nil
	}

	dotenvOnce.Do(func() {
		// Missing .env is the normal case in production.
		_ = godotenv.Load()
	})

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("config: failed to parse %s: %w", t.Name(), err)
	}

	actual, _ := cache.LoadOrStore(t, *cfg)
	*cfg = actual.(T)
	return nil
}

// MustLoad is Load that panics on failure, for use at startup.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}
