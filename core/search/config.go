package search

import (
	"time"

	"github.com/goto/ticketsearch/core/relevance"
	"github.com/goto/ticketsearch/core/validator"
)

const (
	IndexModeRealtime  = "realtime"
	IndexModeQueue     = "queue"
	IndexModeScheduled = "scheduled"
)

type Config struct {
	Engine            string            `mapstructure:"engine" yaml:"engine" default:"indexed-fulltext" validate:"oneof=direct-scan indexed-fulltext external-index"`
	EnableFullText    bool              `mapstructure:"enable_fulltext" yaml:"enable_fulltext" default:"true"`
	EnableFuzzy       bool              `mapstructure:"enable_fuzzy" yaml:"enable_fuzzy" default:"true"`
	MinQueryLength    int               `mapstructure:"min_query_length" yaml:"min_query_length" default:"2" validate:"gte=1"`
	ResultsPerPage    int               `mapstructure:"results_per_page" yaml:"results_per_page" default:"50" validate:"gte=1,lte=500"`
	EnableSuggestions bool              `mapstructure:"enable_suggestions" yaml:"enable_suggestions" default:"true"`
	CacheDuration     time.Duration     `mapstructure:"cache_duration" yaml:"cache_duration" default:"5m" validate:"gte=0"`
	FieldWeights      relevance.Weights `mapstructure:"search_field_weights" yaml:"search_field_weights"`
	TrackHistory      bool              `mapstructure:"track_history" yaml:"track_history" default:"true"`
	MaxHistory        int               `mapstructure:"max_history" yaml:"max_history" default:"50" validate:"gte=1"`
	IndexMode         string            `mapstructure:"index_mode" yaml:"index_mode" default:"realtime" validate:"oneof=realtime queue scheduled"`
	MaxCandidates     int               `mapstructure:"max_candidates" yaml:"max_candidates" default:"1000" validate:"gte=1"`
	RebuildInterval   time.Duration     `mapstructure:"rebuild_interval" yaml:"rebuild_interval" default:"1h" validate:"gte=0"`
}

func DefaultConfig() Config {
	return Config{
		Engine:            BackendIndexedFullText,
		EnableFullText:    true,
		EnableFuzzy:       true,
		MinQueryLength:    2,
		ResultsPerPage:    50,
		EnableSuggestions: true,
		CacheDuration:     5 * time.Minute,
		FieldWeights:      relevance.DefaultWeights(),
		TrackHistory:      true,
		MaxHistory:        50,
		IndexMode:         IndexModeRealtime,
		MaxCandidates:     1000,
		RebuildInterval:   time.Hour,
	}
}

func (c Config) Validate() error {
	return validator.ValidateStruct(c)
}

// Chain returns the backend names tried for the configured engine, most
// preferred first.
func (c Config) Chain() []string {
	return chain(c.Engine, c.EnableFullText)
}

func (c Config) Model() relevance.Model {
	return relevance.NewModel(c.FieldWeights, c.EnableFuzzy)
}
