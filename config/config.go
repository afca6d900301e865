package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Label-selection policies.
const (
	PolicyTop1  = "top1"
	PolicyMulti = "multi"
)

// Significance-threshold modes.
const (
	SignificanceAdaptive = "adaptive"
	SignificanceFixed    = "fixed"
)

// Bucket rounding modes.
const (
	RoundHalfEven = "half_even"
	RoundHalfUp   = "half_up"
	RoundFloor    = "floor"
)

// Stored record text.
const (
	StoreOriginal   = "original"
	StoreNormalized = "normalized"
)

type Service struct {
	URL     string        `yaml:"url" mapstructure:"url"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
	Retries int           `yaml:"retries" mapstructure:"retries"`
}
type YouTube struct {
	URL      string        `yaml:"url" mapstructure:"url"`
	APIKey   string        `yaml:"api_key" mapstructure:"api_key"`
	PageSize int           `yaml:"page_size" mapstructure:"page_size"`
	Timeout  time.Duration `yaml:"timeout" mapstructure:"timeout"`
	Retries  int           `yaml:"retries" mapstructure:"retries"`
}
type OpenAI struct {
	APIKey  string `yaml:"api_key" mapstructure:"api_key"`
	Model   string `yaml:"model" mapstructure:"model"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}
type Redis struct {
	Addr     string        `yaml:"addr" mapstructure:"addr"`
	Password string        `yaml:"password" mapstructure:"password"`
	DB       int           `yaml:"db" mapstructure:"db"`
	TTL      time.Duration `yaml:"ttl" mapstructure:"ttl"`
}
type Services struct {
	Emotion Service `yaml:"emotion" mapstructure:"emotion"`
	OpenAI  OpenAI  `yaml:"openai" mapstructure:"openai"`
	YouTube YouTube `yaml:"youtube" mapstructure:"youtube"`
	Redis   Redis   `yaml:"redis" mapstructure:"redis"`

	Visualization Service `yaml:"visualization" mapstructure:"visualization"`
}

// Analysis holds the knobs of the comment-to-moment pipeline.
type Analysis struct {
	ConfidenceThreshold float64 `yaml:"confidence_threshold" mapstructure:"confidence_threshold"`
	MaxCommentLength    int     `yaml:"max_comment_length" mapstructure:"max_comment_length"` // 0 disables the guard
	Granularity         int     `yaml:"granularity" mapstructure:"granularity"`               // seconds
	Rounding            string  `yaml:"rounding" mapstructure:"rounding"`
	Significance        string  `yaml:"significance" mapstructure:"significance"`
	MinBucketSize       int     `yaml:"min_bucket_size" mapstructure:"min_bucket_size"` // fixed mode only
	LabelPolicy         string  `yaml:"label_policy" mapstructure:"label_policy"`
	NeutralLabel        string  `yaml:"neutral_label" mapstructure:"neutral_label"`
	StoreText           string  `yaml:"store_text" mapstructure:"store_text"`
	Concurrency         int     `yaml:"concurrency" mapstructure:"concurrency"`
	MaxComments         int     `yaml:"max_comments" mapstructure:"max_comments"`
}

type Server struct {
	Addr           string        `yaml:"addr" mapstructure:"addr"`
	AllowedOrigins []string      `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	RequestTimeout time.Duration `yaml:"request_timeout" mapstructure:"request_timeout"`
}

type Root struct {
	Pipeline struct {
		Name      string `yaml:"name" mapstructure:"name"`
		Version   string `yaml:"version" mapstructure:"version"`
		LogLvl    string `yaml:"log_level" mapstructure:"log_level"`
		LogFormat string `yaml:"log_format" mapstructure:"log_format"`
	} `yaml:"pipeline" mapstructure:"pipeline"`
	Server   Server   `yaml:"server" mapstructure:"server"`
	Analysis Analysis `yaml:"analysis" mapstructure:"analysis"`
	Services Services `yaml:"services" mapstructure:"services"`
}

var defaults = map[string]any{
	"pipeline.name":       "comment-moments",
	"pipeline.version":    "0.1.0",
	"pipeline.log_level":  "info",
	"pipeline.log_format": "text",

	"server.addr":            ":8000",
	"server.allowed_origins": []string{"*"},
	"server.request_timeout": 2 * time.Minute,

	"analysis.confidence_threshold": 0.5,
	"analysis.max_comment_length":   2048,
	"analysis.granularity":          5,
	"analysis.rounding":             RoundHalfEven,
	"analysis.significance":         SignificanceAdaptive,
	"analysis.min_bucket_size":      1,
	"analysis.label_policy":         PolicyTop1,
	"analysis.neutral_label":        "neutral",
	"analysis.store_text":           StoreOriginal,
	"analysis.concurrency":          4,
	"analysis.max_comments":         500,

	"services.emotion.url":     "",
	"services.emotion.timeout": 60 * time.Second,
	"services.emotion.retries": 1,

	"services.openai.api_key":  "",
	"services.openai.model":    "gpt-4o-mini",
	"services.openai.base_url": "",

	"services.youtube.url":       "https://www.googleapis.com/youtube/v3",
	"services.youtube.api_key":   "",
	"services.youtube.page_size": 100,
	"services.youtube.timeout":   30 * time.Second,
	"services.youtube.retries":   1,

	"services.redis.addr":     "",
	"services.redis.password": "",
	"services.redis.db":       0,
	"services.redis.ttl":      24 * time.Hour,

	"services.visualization.url":     "",
	"services.visualization.timeout": 30 * time.Second,
	"services.visualization.retries": 1,
}

// Option customises Load.
type Option func(*viper.Viper) error

// WithFlag overlays a command-line flag onto key when the flag was set.
func WithFlag(key string, f *pflag.Flag) Option {
	return func(v *viper.Viper) error {
		if f == nil {
			return nil
		}
		return v.BindPFlag(key, f)
	}
}

// Load resolves configuration from defaults, the YAML file at path (or a
// guessed location when path is empty), a .env file, MOMENTS_* environment
// variables and bound flags, in increasing precedence, then validates it.
func Load(path string, opts ...Option) (*Root, error) {
	// a missing .env is fine
	_ = godotenv.Load()

	v := viper.New()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}
	v.SetEnvPrefix("MOMENTS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("services.openai.api_key", "MOMENTS_SERVICES_OPENAI_API_KEY", "OPENAI_API_KEY")
	_ = v.BindEnv("services.youtube.api_key", "MOMENTS_SERVICES_YOUTUBE_API_KEY", "YOUTUBE_API_KEY")

	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, err
		}
	}

	if path == "" {
		path = guessPath()
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Root
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the built-in configuration.
func Default() *Root {
	v := viper.New()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}
	var cfg Root
	// decoding our own defaults cannot fail
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func guessPath() string {
	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	guess := []string{
		filepath.Join("config", env, "config.yaml"),
		"config.yaml",
	}
	for _, p := range guess {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
