package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for the sonar service.
type Config struct {
	Port     int            `yaml:"port"`
	Logging  LoggingConfig  `yaml:"logging,omitempty"`
	AI       AIConfig       `yaml:"ai,omitempty"`
	Search   SearchConfig   `yaml:"search,omitempty"`
	Browser  BrowserConfig  `yaml:"browser,omitempty"`
	Pipeline PipelineConfig `yaml:"pipeline,omitempty"`
}

type LoggingConfig struct {
	Level string `yaml:"level,omitempty"`
}

// AIConfig configures the language model connection.
type AIConfig struct {
	APIKey  string `yaml:"api_key,omitempty"`
	BaseURL string `yaml:"base_url,omitempty"`
	Model   string `yaml:"model,omitempty"`
}

// SearchConfig configures the three retrieval backends.
type SearchConfig struct {
	ResultLimit int           `yaml:"result_limit,omitempty"` // items fetched per retrieval call
	SerpAPI     SerpAPIConfig `yaml:"serpapi,omitempty"`
	Naver       NaverConfig   `yaml:"naver,omitempty"`
	CES         CESConfig     `yaml:"ces,omitempty"`
}

type SerpAPIConfig struct {
	APIKey  string `yaml:"api_key,omitempty"`
	BaseURL string `yaml:"base_url,omitempty"`
}

type NaverConfig struct {
	ClientID     string `yaml:"client_id,omitempty"`
	ClientSecret string `yaml:"client_secret,omitempty"`
	BaseURL      string `yaml:"base_url,omitempty"`
}

type CESConfig struct {
	APIKey  string `yaml:"api_key,omitempty"`
	CSEID   string `yaml:"cse_id,omitempty"`
	BaseURL string `yaml:"base_url,omitempty"`
}

// BrowserConfig configures headless-browser page fetching.
type BrowserConfig struct {
	Disabled          bool `yaml:"disabled,omitempty"` // fall back to plain HTTP fetches
	PageLoadTimeoutMs int  `yaml:"page_load_timeout_ms,omitempty"`
}

// PipelineConfig carries the tunable limits of the query pipeline.
type PipelineConfig struct {
	MaxIterations  int `yaml:"max_iterations,omitempty"` // reasoning loop cap
	ContentLimit   int `yaml:"content_limit,omitempty"`  // chars kept per extracted page
	EvidenceLimit  int `yaml:"evidence_limit,omitempty"` // grounding evidence cap for fact-check
	HistoryWindow  int `yaml:"history_window,omitempty"` // memory messages passed to fact-check
	CacheTTLMs     int `yaml:"cache_ttl_ms,omitempty"`   // extraction cache TTL
	CacheSize      int `yaml:"cache_size,omitempty"`     // extraction cache capacity
	SearchTimeoutS int `yaml:"search_timeout_s,omitempty"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Port:    8000,
		Logging: LoggingConfig{Level: "info"},
		AI:      AIConfig{Model: "gpt-4o-mini"},
		Search:  SearchConfig{ResultLimit: 3},
		Browser: BrowserConfig{PageLoadTimeoutMs: 35000},
		Pipeline: PipelineConfig{
			MaxIterations:  5,
			ContentLimit:   2000,
			EvidenceLimit:  2000,
			HistoryWindow:  2,
			CacheTTLMs:     30 * 60 * 1000,
			CacheSize:      1000,
			SearchTimeoutS: 20,
		},
	}
}

// Load reads sonar.yaml from the working directory, falling back to defaults
// when the file does not exist. Environment variables override secrets last.
func Load() (*Config, error) {
	return LoadFromPath(filepath.Join(".", "sonar.yaml"))
}

// LoadFromPath reads configuration from an explicit path.
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() {
	setIfEnv(&c.AI.APIKey, "OPENAI_API_KEY")
	setIfEnv(&c.AI.BaseURL, "OPENAI_BASE_URL")
	setIfEnv(&c.AI.Model, "OPENAI_MODEL")
	setIfEnv(&c.Search.SerpAPI.APIKey, "SERPAPI_API_KEY")
	setIfEnv(&c.Search.Naver.ClientID, "NAVER_CLIENT_ID")
	setIfEnv(&c.Search.Naver.ClientSecret, "NAVER_CLIENT_SECRET")
	setIfEnv(&c.Search.CES.APIKey, "GOOGLE_CSE_API_KEY")
	setIfEnv(&c.Search.CES.CSEID, "CSE_ID")
}

func (c *Config) applyDefaults() {
	d := DefaultConfig()
	if c.Port <= 0 {
		c.Port = d.Port
	}
	if c.Search.ResultLimit <= 0 {
		c.Search.ResultLimit = d.Search.ResultLimit
	}
	if c.Browser.PageLoadTimeoutMs <= 0 {
		c.Browser.PageLoadTimeoutMs = d.Browser.PageLoadTimeoutMs
	}
	if c.Pipeline.MaxIterations <= 0 {
		c.Pipeline.MaxIterations = d.Pipeline.MaxIterations
	}
	if c.Pipeline.ContentLimit <= 0 {
		c.Pipeline.ContentLimit = d.Pipeline.ContentLimit
	}
	if c.Pipeline.EvidenceLimit <= 0 {
		c.Pipeline.EvidenceLimit = d.Pipeline.EvidenceLimit
	}
	if c.Pipeline.HistoryWindow <= 0 {
		c.Pipeline.HistoryWindow = d.Pipeline.HistoryWindow
	}
	if c.Pipeline.CacheTTLMs <= 0 {
		c.Pipeline.CacheTTLMs = d.Pipeline.CacheTTLMs
	}
	if c.Pipeline.CacheSize <= 0 {
		c.Pipeline.CacheSize = d.Pipeline.CacheSize
	}
	if c.Pipeline.SearchTimeoutS <= 0 {
		c.Pipeline.SearchTimeoutS = d.Pipeline.SearchTimeoutS
	}
	if c.AI.Model == "" {
		c.AI.Model = d.AI.Model
	}
}

func setIfEnv(target *string, key string) {
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}
