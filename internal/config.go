package internal

import (
	"fmt"
	"time"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	Host    string `env:"HOST,default=0.0.0.0" validate:"required"`
	Port    int    `env:"PORT,default=8080" validate:"min=1,max=65535"`
	BaseURL string `env:"BASE_URL" validate:"omitempty,url"`

	LogLevel       string `env:"LOG_LEVEL,default=INFO" validate:"required"`
	BadgerFilepath string `env:"BADGER_FILEPATH,required=true" validate:"required"`
	BlugeFilepath  string `env:"BLUGE_FILEPATH,required=true" validate:"required"`
	LimitStrings   *int   `env:"LIMIT_STRINGS" validate:"omitempty,min=1"`

	TranslationBaseURL string        `env:"TRANSLATION_BASE_URL,default=https://lingva.ml" validate:"required,url"`
	TranslationTimeout time.Duration `env:"TRANSLATION_TIMEOUT,default=8s" validate:"min=5s,max=15s"`
	TranslationRetries int           `env:"TRANSLATION_RETRIES,default=2" validate:"min=0,max=5"`
	TranslationBackoff time.Duration `env:"TRANSLATION_BACKOFF,default=500ms" validate:"gt=0"`
	CacheCapacity      int           `env:"CACHE_CAPACITY,default=1000" validate:"min=1"`

	PersistenceWorkers    int           `env:"PERSISTENCE_WORKERS,default=2" validate:"min=1"`
	PersistenceBufferSize int           `env:"PERSISTENCE_BUFFER_SIZE,default=256" validate:"min=1"`
	SaveTimeout           time.Duration `env:"SAVE_TIMEOUT,default=2s" validate:"gt=0"`
	QueueCheckInterval    time.Duration `env:"QUEUE_CHECK_INTERVAL,default=30s" validate:"gt=0"`
	RestartInterval       time.Duration `env:"RESTART_INTERVAL,default=200ms" validate:"gt=0"`
	ProcessSampleInterval time.Duration `env:"PROCESS_SAMPLE_INTERVAL,default=15s" validate:"gt=0"`

	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT,default=20s" validate:"gt=0"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s" validate:"gt=0"`
	MaxBodyBytes    int64         `env:"MAX_BODY_BYTES,default=1048576" validate:"min=1"`
	DebugPort       int           `env:"DEBUG_PORT" validate:"omitempty,min=1,max=65535"`
}

var validate = validator.New()

// Load reads the environment into cfg and validates it.
func Load(cfg *Config) error {
	if _, err := env.UnmarshalFromEnviron(cfg); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func (c Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// PublicURL is the advertised base URL, derived from the listen address when unset.
func (c Config) PublicURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return fmt.Sprintf("http://localhost:%d", c.Port)
}
