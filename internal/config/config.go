package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// TagRule maps one category tag to the keyword phrases that imply it.
// A rule fires on any phrase hit and emits at most one tag per input.
type TagRule struct {
	Tag string   `yaml:"tag"`
	Any []string `yaml:"any"`
}

type Config struct {
	App struct {
		Port      int    `yaml:"port"`
		DataDir   string `yaml:"data_dir"`
		LogLevel  string `yaml:"log_level"`
		LogFormat string `yaml:"log_format"` // json | console
	} `yaml:"app"`

	Scoring struct {
		// Restaurants below this external rating count are never
		// recommendable, regardless of preferences.
		MinRatingsThreshold int `yaml:"min_ratings_threshold"`
		// Bayesian shrinkage constant M: the rating count at which a
		// restaurant's weighted rating sits halfway between its own
		// average and the corpus mean.
		BayesConfidence    int     `yaml:"bayes_confidence"`
		SentimentWeight    float64 `yaml:"sentiment_weight"`
		KeywordBonusPerHit float64 `yaml:"keyword_bonus_per_hit"`
		KeywordBonusCap    float64 `yaml:"keyword_bonus_cap"`
		TopN               int     `yaml:"top_n"`
		// Thresholds applied when the utterance names none.
		DefaultMinRating  float64 `yaml:"default_min_rating"`
		DefaultMinReviews int     `yaml:"default_min_reviews"`
	} `yaml:"scoring"`

	Tagging struct {
		CuisineRules    []TagRule `yaml:"cuisine_rules"`
		AspectRules     []TagRule `yaml:"aspect_rules"`
		FallbackCuisine string    `yaml:"fallback_cuisine"`
	} `yaml:"tagging"`

	Parser struct {
		CuisineTable  []TagRule `yaml:"cuisine_table"`
		MoodTable     []TagRule `yaml:"mood_table"`
		PriorityTable []TagRule `yaml:"priority_table"`
		Areas         []string  `yaml:"areas"`
	} `yaml:"parser"`

	Salience struct {
		MaxTermsPerDoc int `yaml:"max_terms_per_doc"`
		VocabularyCap  int `yaml:"vocabulary_cap"`
	} `yaml:"salience"`

	Geocoder struct {
		Enabled        bool    `yaml:"enabled"`
		BaseURL        string  `yaml:"base_url"`
		APIKeyEnv      string  `yaml:"api_key_env"`
		KeyringAccount string  `yaml:"keyring_account"`
		TimeoutSeconds int     `yaml:"timeout_seconds"`
		ReqPerSec      float64 `yaml:"req_per_sec"`
		Burst          int     `yaml:"burst"`
		MaxRetries     int     `yaml:"max_retries"`
	} `yaml:"geocoder"`

	Ingest struct {
		Dir           string `yaml:"dir"`
		RescanSeconds int    `yaml:"rescan_seconds"`
	} `yaml:"ingest"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
