package model

import "time"

// Config is the complete cfpwatch configuration
type Config struct {
	HTTP         HTTPConfig        `yaml:"http"`
	Cache        CacheConfig       `yaml:"cache"`
	RateLimiting RateLimitConfig   `yaml:"rate_limiting"`
	Concurrency  ConcurrencyConfig `yaml:"concurrency"`
	Search       SearchConfig      `yaml:"search"`
	Resolver     ResolverConfig    `yaml:"resolver"`
	Extract      ExtractConfig     `yaml:"extract"`
	Validation   ValidationConfig  `yaml:"validation"`
	LLM          LLMConfig         `yaml:"llm"`
	Storage      StorageConfig     `yaml:"storage"`
	Logging      LoggingConfig     `yaml:"logging"`
	CatalogPath  string            `yaml:"catalog_path,omitempty"`
}

// HTTPConfig controls page and search fetching
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout"`
	UserAgent     string        `yaml:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes"`
	MaxRetries    int           `yaml:"max_retries"`
	RespectRobots bool          `yaml:"respect_robots"`
	InsecureTLS   bool          `yaml:"insecure_tls"`
	HTTPProxy     string        `yaml:"http_proxy,omitempty"`
	HTTPSProxy    string        `yaml:"https_proxy,omitempty"`
	NoProxy       string        `yaml:"no_proxy,omitempty"`
}

// CacheConfig controls the page/search cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// RateLimitConfig controls per-domain request throttling
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// ConcurrencyConfig controls how many units run at once
type ConcurrencyConfig struct {
	Workers int `yaml:"workers"`
}

// SearchConfig controls the web search backend
type SearchConfig struct {
	Endpoint          string  `yaml:"endpoint"`
	MaxResults        int     `yaml:"max_results"`
	MaxQueries        int     `yaml:"max_queries"`
	RequestsPerSecond float64 `yaml:"requests_per_second"` // search endpoint only
}

// ResolverConfig controls candidate rejection rules
type ResolverConfig struct {
	YearWindow      int `yaml:"year_window"`
	ShortAcronymLen int `yaml:"short_acronym_len"`
}

// ExtractConfig controls the extraction strategies
type ExtractConfig struct {
	KeywordWindow int  `yaml:"keyword_window"`
	ScanRadius    int  `yaml:"scan_radius"`
	MaxPageText   int  `yaml:"max_page_text"`
	MaxSubpages   int  `yaml:"max_subpages"`
	DelegateFirst bool `yaml:"delegate_first"`
}

// ValidationConfig controls the validator
type ValidationConfig struct {
	MinLeadDays int `yaml:"min_lead_days"`
}

// LLMConfig configures the optional delegate extractor
type LLMConfig struct {
	Provider      string `yaml:"provider"` // openai, anthropic, ollama, gemini, "" (disabled)
	Model         string `yaml:"model,omitempty"`
	APIKey        string `yaml:"api_key,omitempty"`
	BaseURL       string `yaml:"base_url,omitempty"`
	Timeout       int    `yaml:"timeout"` // seconds
	MaxTokens     int    `yaml:"max_tokens"`
	MaxInputChars int    `yaml:"max_input_chars"`
	StrictSource  bool   `yaml:"strict_source"`
}

// StorageConfig points at the persisted store and change log
type StorageConfig struct {
	StorePath     string `yaml:"store_path"`
	ChangeLogPath string `yaml:"changelog_path"`
}

// LoggingConfig configures slog output
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:       20 * time.Second,
			UserAgent:     "cfpwatch/1.0 (+https://github.com/ppiankov/cfpwatch)",
			MaxBodyBytes:  5 << 20,
			MaxRetries:    3,
			RespectRobots: true,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "~/.cfpwatch/cache",
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   12 * time.Hour,
		},
		RateLimiting: RateLimitConfig{
			RequestsPerSecond: 1,
			Burst:             2,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 1,
		},
		Search: SearchConfig{
			Endpoint:          "https://html.duckduckgo.com/html/",
			MaxResults:        10,
			MaxQueries:        3,
			RequestsPerSecond: 0.5,
		},
		Resolver: ResolverConfig{
			YearWindow:      30,
			ShortAcronymLen: 5,
		},
		Extract: ExtractConfig{
			KeywordWindow: 120,
			ScanRadius:    200,
			MaxPageText:   20000,
			MaxSubpages:   4,
		},
		Validation: ValidationConfig{
			MinLeadDays: 30,
		},
		LLM: LLMConfig{
			Timeout:       60,
			MaxTokens:     500,
			MaxInputChars: 6000,
			StrictSource:  true,
		},
		Storage: StorageConfig{
			StorePath:     "conference_database.json",
			ChangeLogPath: "deadline_changes.log",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
