package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy plus everything wrong or
// suspicious about it. Errors block startup; warnings are logged and ignored.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}

	out.Parser.Areas = trimList(out.Parser.Areas)

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}

	// scoring sanity
	if out.Scoring.MinRatingsThreshold < 0 {
		res.addErr("scoring.min_ratings_threshold must be >= 0")
	}
	if out.Scoring.BayesConfidence <= 0 {
		res.addErr("scoring.bayes_confidence must be > 0")
	}
	if out.Scoring.SentimentWeight < 0 || out.Scoring.SentimentWeight > 1 {
		res.addErr("scoring.sentiment_weight must be in [0,1]")
	}
	if out.Scoring.KeywordBonusPerHit < 0 {
		res.addErr("scoring.keyword_bonus_per_hit must be >= 0")
	}
	if out.Scoring.KeywordBonusCap < out.Scoring.KeywordBonusPerHit {
		res.addWarn("scoring.keyword_bonus_cap (%.2f) is below the per-hit bonus; at most one hit will count.",
			out.Scoring.KeywordBonusCap)
	}
	if out.Scoring.TopN <= 0 {
		res.addErr("scoring.top_n must be > 0")
	}
	if out.Scoring.DefaultMinRating < 0 || out.Scoring.DefaultMinRating > 5 {
		res.addErr("scoring.default_min_rating must be in [0,5]")
	}

	checkRules := func(name string, rules []TagRule) {
		seen := map[string]bool{}
		for i, r := range rules {
			if r.Tag == "" {
				res.addErr("%s[%d].tag is required", name, i)
			}
			if len(r.Any) == 0 {
				res.addErr("%s[%d].any must have at least 1 phrase", name, i)
			}
			for j, term := range r.Any {
				if strings.TrimSpace(term) == "" {
					res.addErr("%s[%d].any[%d] cannot be empty", name, i, j)
				}
			}
			key := strings.ToLower(r.Tag)
			if seen[key] {
				res.addWarn("%s has duplicate tag %q", name, r.Tag)
			}
			seen[key] = true
		}
	}

	checkRules("tagging.cuisine_rules", out.Tagging.CuisineRules)
	checkRules("tagging.aspect_rules", out.Tagging.AspectRules)
	checkRules("parser.cuisine_table", out.Parser.CuisineTable)
	checkRules("parser.mood_table", out.Parser.MoodTable)
	checkRules("parser.priority_table", out.Parser.PriorityTable)

	if len(out.Tagging.CuisineRules) == 0 {
		res.addErr("tagging.cuisine_rules is empty; every restaurant would fall back to %q", out.Tagging.FallbackCuisine)
	}
	if strings.TrimSpace(out.Tagging.FallbackCuisine) == "" {
		res.addErr("tagging.fallback_cuisine is required")
	}

	if out.Salience.MaxTermsPerDoc <= 0 {
		res.addErr("salience.max_terms_per_doc must be > 0")
	}
	if out.Salience.VocabularyCap <= 0 {
		res.addErr("salience.vocabulary_cap must be > 0")
	}

	if out.Geocoder.Enabled {
		if strings.TrimSpace(out.Geocoder.BaseURL) == "" {
			res.addErr("geocoder.base_url is required when geocoder.enabled=true")
		}
		if out.Geocoder.TimeoutSeconds <= 0 {
			res.addErr("geocoder.timeout_seconds must be > 0")
		}
		if out.Geocoder.MaxRetries <= 0 {
			res.addErr("geocoder.max_retries must be > 0")
		}
	}

	if out.Ingest.RescanSeconds > 0 && out.Ingest.RescanSeconds < 10 {
		res.addWarn("ingest.rescan_seconds is very low (%d); rescans may overlap on large corpora.", out.Ingest.RescanSeconds)
	}

	return out, res
}
