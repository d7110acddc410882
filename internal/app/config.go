package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/pelletier/go-toml/v2"

	"github.com/Zereker/vecns/internal/domain"
	"github.com/Zereker/vecns/pkg/log"
	"github.com/Zereker/vecns/pkg/mq"
	"github.com/Zereker/vecns/pkg/redis"
	"github.com/Zereker/vecns/pkg/vector"
)

const (
	BackendPinecone = "pinecone"
	BackendMemory   = "memory"
)

// Config holds all configuration values
type Config struct {
	Target   TargetConfig          `toml:"target"`
	Vector   VectorConfig          `toml:"vector"`
	Pinecone vector.PineconeConfig `toml:"pinecone"`
	Run      RunConfig             `toml:"run"`
	Log      log.Config            `toml:"log"`
	Redis    redis.Config          `toml:"redis"`
	Kafka    mq.KafkaConfig        `toml:"kafka"`
}

// TargetConfig names the index and namespace used when none is given on the command line
type TargetConfig struct {
	Index     string `toml:"index"`
	Namespace string `toml:"namespace"`
}

// VectorConfig selects the vector database backend
type VectorConfig struct {
	Backend string `toml:"backend"` // pinecone or memory
}

// RunConfig controls how requests are executed
type RunConfig struct {
	Concurrency int    `toml:"concurrency"`
	Timeout     string `toml:"timeout"`
}

// envBindings maps environment variables onto config keys.
var envBindings = []struct {
	env  string
	path []string
}{
	{"PINECONE_API_KEY", []string{"pinecone", "api_key"}},
	{"PINECONE_CONTROLLER_HOST", []string{"pinecone", "controller_host"}},
	{"VECNS_INDEX", []string{"target", "index"}},
	{"VECNS_NAMESPACE", []string{"target", "namespace"}},
	{"VECNS_BACKEND", []string{"vector", "backend"}},
	{"VECNS_CONCURRENCY", []string{"run", "concurrency"}},
	{"VECNS_TIMEOUT", []string{"run", "timeout"}},
	{"VECNS_LOG_LEVEL", []string{"log", "level"}},
	{"VECNS_LOG_FORMAT", []string{"log", "format"}},
	{"VECNS_REDIS_ENABLED", []string{"redis", "enabled"}},
	{"VECNS_REDIS_ADDR", []string{"redis", "addr"}},
	{"VECNS_KAFKA_ENABLED", []string{"kafka", "enabled"}},
	{"VECNS_KAFKA_BROKERS", []string{"kafka", "brokers"}},
	{"VECNS_KAFKA_TOPIC", []string{"kafka", "topic"}},
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() Config {
	return Config{
		Target: TargetConfig{
			Index:     domain.DefaultIndex,
			Namespace: domain.DefaultNamespace,
		},
		Vector:   VectorConfig{Backend: BackendPinecone},
		Pinecone: vector.PineconeConfig{SourceTag: "vecns"},
		Run: RunConfig{
			Concurrency: 1,
			Timeout:     "60s",
		},
		Log:   log.DefaultConfig(),
		Redis: redis.Config{LockTTL: "30s"},
		Kafka: mq.KafkaConfig{Topic: "vecns.namespace", ClientID: "vecns"},
	}
}

// Validate checks target configuration
func (t *TargetConfig) Validate() error {
	if err := domain.ValidateIndexName(t.Index); err != nil {
		return err
	}
	if t.Namespace != "" {
		return domain.ValidateNamespaceName(t.Namespace)
	}
	return nil
}

// Validate checks vector configuration
func (v *VectorConfig) Validate() error {
	switch v.Backend {
	case BackendPinecone, BackendMemory:
		return nil
	default:
		return fmt.Errorf("invalid backend: %s, must be pinecone or memory", v.Backend)
	}
}

// Validate checks run configuration
func (r *RunConfig) Validate() error {
	if r.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1")
	}
	if _, err := time.ParseDuration(r.Timeout); err != nil {
		return fmt.Errorf("timeout is invalid: %w", err)
	}
	return nil
}

// TimeoutDuration returns the parsed run timeout.
func (r *RunConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(r.Timeout)
	return d
}

// Validate checks all configuration fields
func (c *Config) Validate() error {
	if err := c.Target.Validate(); err != nil {
		return fmt.Errorf("target: %w", err)
	}

	if err := c.Vector.Validate(); err != nil {
		return fmt.Errorf("vector: %w", err)
	}

	if c.Vector.Backend == BackendPinecone {
		if err := c.Pinecone.Validate(); err != nil {
			return fmt.Errorf("pinecone: %w", err)
		}
	}

	if err := c.Run.Validate(); err != nil {
		return fmt.Errorf("run: %w", err)
	}

	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}

	if err := c.Redis.Validate(); err != nil {
		return fmt.Errorf("redis: %w", err)
	}

	if err := c.Kafka.Validate(); err != nil {
		return fmt.Errorf("kafka: %w", err)
	}

	return nil
}

// findEnvFile resolves a relative name against the working directory and
// then each parent directory, returning the first existing file.
// Absolute or unresolved names are returned unchanged.
func findEnvFile(name string) string {
	if filepath.IsAbs(name) {
		return name
	}

	dir, err := os.Getwd()
	if err != nil {
		return name
	}

	for {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return name
		}
		dir = parent
	}
}

// LoadConfig builds the configuration from defaults, the optional TOML file,
// the optional .env file (searched upward from the working directory) and the
// process environment, in increasing priority.
// An empty filename or envFile skips that source; a missing envFile is ignored.
func LoadConfig(filename, envFile string) (Config, error) {
	cfg := DefaultConfig()

	if envFile != "" {
		// godotenv never overrides variables that are already set
		if err := godotenv.Load(findEnvFile(envFile)); err != nil && !os.IsNotExist(err) {
			return cfg, fmt.Errorf("load env file: %w", err)
		}
	}

	if filename != "" {
		data, err := os.ReadFile(filename)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}

		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, fmt.Errorf("apply environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// applyEnv overlays the bound environment variables onto cfg.
func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	overlay := make(map[string]any)
	for _, b := range envBindings {
		value, ok := lookup(b.env)
		if !ok || strings.TrimSpace(value) == "" {
			continue
		}

		section, _ := overlay[b.path[0]].(map[string]any)
		if section == nil {
			section = make(map[string]any)
			overlay[b.path[0]] = section
		}
		section[b.path[1]] = value
	}

	if len(overlay) == 0 {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		TagName:          "toml",
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToSliceHookFunc(","),
	})
	if err != nil {
		return err
	}

	return decoder.Decode(overlay)
}
