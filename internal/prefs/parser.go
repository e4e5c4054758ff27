package prefs

import (
	"regexp"
	"strconv"
	"strings"

	"dinescout-engine/internal/config"
)

// PreferenceSet is the structured form of a free-text request. Every field
// is optional; a zero field imposes no constraint on its axis. MinRating and
// MinReviews always carry a value (the configured default when the utterance
// named none); the Explicit flags record whether the user asked for it.
type PreferenceSet struct {
	MinRating          float64  `json:"minRating"`
	MinRatingExplicit  bool     `json:"minRatingExplicit"`
	MinReviews         int      `json:"minReviews"`
	MinReviewsExplicit bool     `json:"minReviewsExplicit"`
	Cuisine            string   `json:"cuisine,omitempty"`
	Mood               string   `json:"mood,omitempty"`
	Priority           string   `json:"priority,omitempty"`
	LocationName       string   `json:"locationName,omitempty"`
	FreeKeywords       []string `json:"freeKeywords,omitempty"`
}

// Parser extracts a PreferenceSet from a conversational utterance. Each
// extraction step consumes its matched span before the next step runs, so
// one span is never interpreted as two different fields.
type Parser struct {
	defaultMinRating  float64
	defaultMinReviews int

	ratingPatterns []*regexp.Regexp
	reviewPatterns []*regexp.Regexp
	cuisines       []table
	moods          []table
	priorities     []table
	areas          []*regexp.Regexp
	areaNames      []string
}

type table struct {
	tag      string
	patterns []*regexp.Regexp
}

func New(cfg config.Config) *Parser {
	p := &Parser{
		defaultMinRating:  cfg.Scoring.DefaultMinRating,
		defaultMinReviews: cfg.Scoring.DefaultMinReviews,
	}

	// Order matters within each group: the qualified forms must win over
	// the bare "<number> stars" form so "over 4 stars" consumes "over" too.
	p.ratingPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bover\s+(\d+(?:\.\d+)?)\s+stars?\b`),
		regexp.MustCompile(`(?i)\brating\s+(\d+(?:\.\d+)?)\b`),
		regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s+stars?\b`),
	}
	p.reviewPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bover\s+(\d+)\s+reviews?\b`),
		regexp.MustCompile(`(?i)\bat\s+least\s+(\d+)\s+reviews?\b`),
		regexp.MustCompile(`(?i)\b(\d+)\s+reviews?\b`),
	}

	p.cuisines = compileTables(cfg.Parser.CuisineTable)
	p.moods = compileTables(cfg.Parser.MoodTable)
	p.priorities = compileTables(cfg.Parser.PriorityTable)
	for _, area := range cfg.Parser.Areas {
		a := strings.TrimSpace(area)
		if a == "" {
			continue
		}
		p.areas = append(p.areas, wordPattern(a))
		p.areaNames = append(p.areaNames, a)
	}
	return p
}

func compileTables(rules []config.TagRule) []table {
	out := make([]table, 0, len(rules))
	for _, r := range rules {
		t := table{tag: r.Tag}
		for _, kw := range r.Any {
			kw = strings.TrimSpace(kw)
			if kw == "" {
				continue
			}
			t.patterns = append(t.patterns, wordPattern(kw))
		}
		if len(t.patterns) > 0 {
			out = append(out, t)
		}
	}
	return out
}

func wordPattern(phrase string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(phrase) + `\b`)
}

// Parse never fails: an utterance with nothing recognizable yields a
// PreferenceSet with only the configured defaults.
func (p *Parser) Parse(utterance string) PreferenceSet {
	out := PreferenceSet{
		MinRating:  p.defaultMinRating,
		MinReviews: p.defaultMinReviews,
	}
	rest := utterance

	// 1) minimum rating
	for _, re := range p.ratingPatterns {
		if m := re.FindStringSubmatchIndex(rest); m != nil {
			if v, err := strconv.ParseFloat(rest[m[2]:m[3]], 64); err == nil {
				out.MinRating = v
				out.MinRatingExplicit = true
				rest = cut(rest, m[0], m[1])
			}
			break
		}
	}

	// 2) minimum review count
	for _, re := range p.reviewPatterns {
		if m := re.FindStringSubmatchIndex(rest); m != nil {
			if v, err := strconv.Atoi(rest[m[2]:m[3]]); err == nil {
				out.MinReviews = v
				out.MinReviewsExplicit = true
				rest = cut(rest, m[0], m[1])
			}
			break
		}
	}

	// 3..5) first-match-wins table scans
	out.Cuisine, rest = scanTables(p.cuisines, rest)
	out.Mood, rest = scanTables(p.moods, rest)
	out.Priority, rest = scanTables(p.priorities, rest)

	// 6) area gazetteer
	for i, re := range p.areas {
		if m := re.FindStringIndex(rest); m != nil {
			out.LocationName = p.areaNames[i]
			rest = cut(rest, m[0], m[1])
			break
		}
	}

	// 7) leftover words become free keywords
	out.FreeKeywords = tokenizeLeftover(rest)
	return out
}

func scanTables(tables []table, rest string) (string, string) {
	for _, t := range tables {
		for _, re := range t.patterns {
			if m := re.FindStringIndex(rest); m != nil {
				return t.tag, cut(rest, m[0], m[1])
			}
		}
	}
	return "", rest
}

func cut(s string, start, end int) string {
	return s[:start] + " " + s[end:]
}

// filler words that carry no preference signal on their own
var filler = map[string]bool{
	"a": true, "an": true, "and": true, "at": true, "for": true, "i": true,
	"im": true, "in": true, "is": true, "it": true, "me": true, "my": true,
	"near": true, "of": true, "on": true, "or": true, "place": true,
	"places": true, "restaurant": true, "restaurants": true, "some": true,
	"something": true, "the": true, "to": true, "want": true, "with": true,
	"would": true, "like": true, "looking": true, "find": true, "please": true,
}

func tokenizeLeftover(rest string) []string {
	fields := strings.FieldsFunc(strings.ToLower(rest), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
	seen := map[string]bool{}
	var out []string
	for _, w := range fields {
		if len(w) < 2 || filler[w] || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	return out
}
