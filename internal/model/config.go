package model

import "time"

// Config is the complete runtime configuration
type Config struct {
	Store       StoreConfig       `yaml:"store" mapstructure:"store"`
	Embedding   EmbeddingConfig   `yaml:"embedding" mapstructure:"embedding"`
	Linking     LinkingConfig     `yaml:"linking" mapstructure:"linking"`
	Threat      ThreatConfig      `yaml:"threat" mapstructure:"threat"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Insight     InsightConfig     `yaml:"insight" mapstructure:"insight"`
}

// StoreConfig selects and configures the vector store backend
type StoreConfig struct {
	// Backend is "memory" (embedded, non-persistent) or "milvus"
	Backend         string `yaml:"backend" mapstructure:"backend"`
	MilvusAddress   string `yaml:"milvus_address" mapstructure:"milvus_address"`
	TextCollection  string `yaml:"text_collection" mapstructure:"text_collection"`
	ImageCollection string `yaml:"image_collection" mapstructure:"image_collection"`
	VideoCollection string `yaml:"video_collection" mapstructure:"video_collection"`
	// ScrollLimit caps how many points a full-collection scan reads
	ScrollLimit int `yaml:"scroll_limit" mapstructure:"scroll_limit"`
}

// EmbeddingConfig configures the embedding providers
type EmbeddingConfig struct {
	// Provider is "openai" for text; images always use the CLIP service
	Provider string        `yaml:"provider" mapstructure:"provider"`
	Model    string        `yaml:"model" mapstructure:"model"`
	APIKey   string        `yaml:"api_key" mapstructure:"api_key"`
	BaseURL  string        `yaml:"base_url" mapstructure:"base_url"`
	ClipURL  string        `yaml:"clip_url" mapstructure:"clip_url"`
	Timeout  time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// LinkingConfig holds the similarity policy knobs. The thresholds trade off
// false merges against narrative fragmentation; there is no neutral setting.
type LinkingConfig struct {
	TextThreshold  float64 `yaml:"text_threshold" mapstructure:"text_threshold"`
	ImageThreshold float64 `yaml:"image_threshold" mapstructure:"image_threshold"`
	SearchDepth    int     `yaml:"search_depth" mapstructure:"search_depth"`
}

// ThreatConfig holds the threat level band boundaries
type ThreatConfig struct {
	Critical int `yaml:"critical" mapstructure:"critical"`
	High     int `yaml:"high" mapstructure:"high"`
	Medium   int `yaml:"medium" mapstructure:"medium"`
}

// CacheConfig controls the embedding and aggregation caches
type CacheConfig struct {
	Enabled         bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL             time.Duration `yaml:"ttl" mapstructure:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" mapstructure:"cleanup_interval"`
}

// ConcurrencyConfig controls batch ingestion throughput
type ConcurrencyConfig struct {
	Workers        int     `yaml:"workers" mapstructure:"workers"`
	EmbedPerSecond float64 `yaml:"embed_per_second" mapstructure:"embed_per_second"`
	EmbedBurst     int     `yaml:"embed_burst" mapstructure:"embed_burst"`
}

// InsightConfig configures the optional LLM insight generator.
// Disabled when Provider is empty; the summary never affects scoring.
type InsightConfig struct {
	Provider  string        `yaml:"provider" mapstructure:"provider"`
	Model     string        `yaml:"model" mapstructure:"model"`
	APIKey    string        `yaml:"api_key,omitempty" mapstructure:"api_key"`
	BaseURL   string        `yaml:"base_url,omitempty" mapstructure:"base_url"`
	MaxTokens int           `yaml:"max_tokens" mapstructure:"max_tokens"`
	Timeout   time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Backend:         "memory",
			MilvusAddress:   "localhost:19530",
			TextCollection:  "text_memory",
			ImageCollection: "image_memory",
			VideoCollection: "video_memory",
			ScrollLimit:     1000,
		},
		Embedding: EmbeddingConfig{
			Provider: "openai",
			Model:    "text-embedding-3-small",
			ClipURL:  "http://localhost:8901",
			Timeout:  30 * time.Second,
		},
		Linking: LinkingConfig{
			TextThreshold:  0.75,
			ImageThreshold: 0.80,
			SearchDepth:    3,
		},
		Threat: ThreatConfig{
			Critical: 70,
			High:     50,
			Medium:   30,
		},
		Cache: CacheConfig{
			Enabled:         true,
			TTL:             5 * time.Minute,
			CleanupInterval: 10 * time.Minute,
		},
		Concurrency: ConcurrencyConfig{
			Workers:        4,
			EmbedPerSecond: 5,
			EmbedBurst:     5,
		},
		Insight: InsightConfig{
			Provider:  "", // disabled by default
			Model:     "gpt-4o-mini",
			MaxTokens: 400,
			Timeout:   30 * time.Second,
		},
	}
}
