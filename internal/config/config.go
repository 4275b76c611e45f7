package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v9"
)

// Config holds runtime parameters for the service. Values come from
// environment variables; a config file passed via --config may override
// any non-zero fields afterwards (see Load).
type Config struct {
	// OpenAI-compatible chat endpoint of the inference server.
	OpenAIBaseURL string `env:"OPENAI_BASE_URL" envDefault:"http://localhost:1234/v1" json:"openai_base_url" yaml:"openai_base_url" toml:"openai_base_url"`
	// API key placeholder; LM Studio accepts any value.
	OpenAIAPIKey string `env:"OPENAI_API_KEY" envDefault:"lm-studio" json:"openai_api_key" yaml:"openai_api_key" toml:"openai_api_key"`
	// Base URL of the model lifecycle API.
	LMStudioBaseURL string `env:"LMSTUDIO_BASE_URL" envDefault:"http://localhost:1234" json:"lmstudio_base_url" yaml:"lmstudio_base_url" toml:"lmstudio_base_url"`

	Host string `env:"HOST" envDefault:"127.0.0.1" json:"host" yaml:"host" toml:"host"`
	Port int    `env:"PORT" envDefault:"8000" json:"port" yaml:"port" toml:"port"`

	// Comma-separated CORS allow list; "*" allows any origin.
	CORSOrigins string `env:"CORS_ORIGINS" envDefault:"*" json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`

	DefaultRegularModel string `env:"DEFAULT_REGULAR_MODEL" envDefault:"qwen/qwen3-4b-2507" json:"default_regular_model" yaml:"default_regular_model" toml:"default_regular_model"`
	DefaultVisionModel  string `env:"DEFAULT_VISION_MODEL" envDefault:"qwen3-vl-4b-instruct" json:"default_vision_model" yaml:"default_vision_model" toml:"default_vision_model"`

	// Read timeout for upstream chat calls; streaming responses may run
	// for the full duration.
	LLMTimeout time.Duration `env:"LLM_TIMEOUT" envDefault:"300s" json:"llm_timeout" yaml:"llm_timeout" toml:"llm_timeout"`

	// off|error|info|debug
	LogLevel string `env:"LOG_LEVEL" envDefault:"info" json:"log_level" yaml:"log_level" toml:"log_level"`
}

// FromEnv parses the environment into a Config.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing env config: %w", err)
	}
	return cfg, nil
}

// Addr returns the host:port listen address.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// CORSOriginList splits CORSOrigins into trimmed entries. "*" yields
// a single wildcard entry; an empty string yields nil (CORS disabled).
func (c Config) CORSOriginList() []string {
	if c.CORSOrigins == "*" {
		return []string{"*"}
	}
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
