package rank

import (
	"sort"
	"strings"

	"dinescout-engine/internal/domain"
	"dinescout-engine/internal/geo"
	"dinescout-engine/internal/prefs"
)

// Reason says which filter stage produced an empty result, so callers can
// tell "widen your radius" apart from "try a different cuisine".
type Reason string

const (
	ReasonNone            Reason = ""
	ReasonNoCandidates    Reason = "no_candidates"
	ReasonBelowFloor      Reason = "below_confidence_floor"
	ReasonOutsideRadius   Reason = "outside_radius"
	ReasonNoLocationMatch Reason = "no_location_match"
	ReasonBelowRating     Reason = "below_rating_floor"
	ReasonBelowReviews    Reason = "below_review_count"
	ReasonNoCuisineMatch  Reason = "no_cuisine_match"
	ReasonNoAspectMatch   Reason = "no_aspect_match"
)

// Config carries the tunable scoring constants.
type Config struct {
	MinRatingsThreshold int
	BayesConfidence     int // shrinkage constant M
	SentimentWeight     float64
	KeywordBonusPerHit  float64
	KeywordBonusCap     float64
	TopN                int
	DefaultMinRating    float64
}

// UserLocation is an optional geographic constraint on a ranking request.
type UserLocation struct {
	Lat     float64
	Lng     float64
	RadiusM float64
}

// Ranked is one scored output row.
type Ranked struct {
	domain.Restaurant
	WeightedRating float64  `json:"weightedRating"`
	FinalScore     float64  `json:"finalScore"`
	DistanceM      *float64 `json:"distanceM,omitempty"`
}

// StageCounts exposes survivor counts per pipeline stage for diagnostics.
type StageCounts struct {
	Input         int `json:"input"`
	AfterFloor    int `json:"afterFloor"`
	AfterGeo      int `json:"afterGeo"`
	AfterLocation int `json:"afterLocation"`
	AfterRating   int `json:"afterRating"`
	AfterReviews  int `json:"afterReviews"`
	AfterCuisine  int `json:"afterCuisine"`
	AfterAspect   int `json:"afterAspect"`
	Scored        int `json:"scored"`
}

// Result is the outcome of one ranking request. An empty Restaurants slice
// is a defined state, not an error; Reason names the stage that emptied it.
type Result struct {
	Restaurants []Ranked    `json:"restaurants"`
	Reason      Reason      `json:"reason,omitempty"`
	Stages      StageCounts `json:"stages"`
	CorpusMean  float64     `json:"corpusMean"`
}

// Rank runs the full scoring pipeline over a corpus snapshot. Scores are
// recomputed on every call; the Bayesian prior is the mean rating of the
// filtered candidate set, so values drift as the corpus changes.
func Rank(records []domain.Restaurant, p prefs.PreferenceSet, cfg Config, loc *UserLocation) Result {
	res := Result{Stages: StageCounts{Input: len(records)}}
	if len(records) == 0 {
		res.Reason = ReasonNoCandidates
		return res
	}

	// 1) global confidence floor: restaurants with too few external
	// ratings are never recommendable, whatever the preferences say.
	candidates := make([]domain.Restaurant, 0, len(records))
	for _, r := range records {
		if r.TotalRatings >= cfg.MinRatingsThreshold {
			candidates = append(candidates, r)
		}
	}
	res.Stages.AfterFloor = len(candidates)
	if len(candidates) == 0 {
		res.Reason = ReasonBelowFloor
		return res
	}

	// 2) geographic filter, when the caller resolved a location
	distances := make(map[string]float64)
	if loc != nil {
		scored := geo.FilterRadius(candidates, loc.Lat, loc.Lng, loc.RadiusM)
		candidates = candidates[:0]
		for _, s := range scored {
			candidates = append(candidates, s.Restaurant)
			distances[s.Restaurant.PlaceID] = s.DistanceM
		}
		if len(candidates) == 0 {
			res.Stages.AfterGeo = 0
			res.Reason = ReasonOutsideRadius
			return res
		}
	}
	res.Stages.AfterGeo = len(candidates)

	// 2b) conversational area name, used as an address substring fallback
	// when the name never made it through geocoding
	if p.LocationName != "" && loc == nil {
		candidates = filter(candidates, func(r domain.Restaurant) bool {
			return strings.Contains(strings.ToLower(r.Address), strings.ToLower(p.LocationName))
		})
		if len(candidates) == 0 {
			res.Stages.AfterLocation = 0
			res.Reason = ReasonNoLocationMatch
			return res
		}
	}
	res.Stages.AfterLocation = len(candidates)

	// 3) preference hard filters. An explicit rating request is a literal
	// floor on the observed rating; the default threshold is applied to
	// the weighted rating after scoring instead, favoring statistically
	// reliable restaurants over small-sample high scorers.
	if p.MinRatingExplicit {
		candidates = filter(candidates, func(r domain.Restaurant) bool {
			return r.AvgRating >= p.MinRating
		})
		if len(candidates) == 0 {
			res.Stages.AfterRating = 0
			res.Reason = ReasonBelowRating
			return res
		}
	}
	res.Stages.AfterRating = len(candidates)

	if p.MinReviews > 0 {
		candidates = filter(candidates, func(r domain.Restaurant) bool {
			return r.TotalRatings >= p.MinReviews
		})
		if len(candidates) == 0 {
			res.Stages.AfterReviews = 0
			res.Reason = ReasonBelowReviews
			return res
		}
	}
	res.Stages.AfterReviews = len(candidates)

	if p.Cuisine != "" {
		candidates = filter(candidates, func(r domain.Restaurant) bool {
			return tagsContain(r.CuisineTags, p.Cuisine)
		})
		if len(candidates) == 0 {
			res.Stages.AfterCuisine = 0
			res.Reason = ReasonNoCuisineMatch
			return res
		}
	}
	res.Stages.AfterCuisine = len(candidates)

	if p.Priority != "" {
		candidates = filter(candidates, func(r domain.Restaurant) bool {
			return tagsContain(r.AspectTags, p.Priority)
		})
		if len(candidates) == 0 {
			res.Stages.AfterAspect = 0
			res.Reason = ReasonNoAspectMatch
			return res
		}
	}
	res.Stages.AfterAspect = len(candidates)

	// 4) score composition over the surviving set
	c := CorpusMean(candidates)
	res.CorpusMean = c

	needles := append([]string{}, p.FreeKeywords...)
	if p.Cuisine != "" {
		needles = append(needles, p.Cuisine)
	}
	if p.Priority != "" {
		needles = append(needles, p.Priority)
	}

	ranked := make([]Ranked, 0, len(candidates))
	for _, r := range candidates {
		wr := WeightedRating(r.AvgRating, r.TotalRatings, c, cfg.BayesConfidence)
		if !p.MinRatingExplicit && wr < cfg.DefaultMinRating {
			continue
		}
		final := wr +
			cfg.SentimentWeight*r.AvgSentimentCompound +
			keywordBonus(needles, r.CombinedKeywords(), cfg.KeywordBonusPerHit, cfg.KeywordBonusCap)

		row := Ranked{Restaurant: r, WeightedRating: wr, FinalScore: final}
		if d, ok := distances[r.PlaceID]; ok {
			dm := d
			row.DistanceM = &dm
		}
		ranked = append(ranked, row)
	}
	res.Stages.Scored = len(ranked)
	if len(ranked) == 0 {
		res.Reason = ReasonBelowRating
		return res
	}

	// 5) order by score, then rating-count evidence, then place id so the
	// full ordering is deterministic
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].FinalScore != ranked[j].FinalScore {
			return ranked[i].FinalScore > ranked[j].FinalScore
		}
		if ranked[i].TotalRatings != ranked[j].TotalRatings {
			return ranked[i].TotalRatings > ranked[j].TotalRatings
		}
		return ranked[i].PlaceID < ranked[j].PlaceID
	})

	topN := cfg.TopN
	if topN <= 0 {
		topN = 5
	}
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	res.Restaurants = ranked
	return res
}

func filter(in []domain.Restaurant, keep func(domain.Restaurant) bool) []domain.Restaurant {
	out := in[:0]
	for _, r := range in {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func tagsContain(tags []string, want string) bool {
	w := strings.ToLower(want)
	for _, t := range tags {
		if strings.Contains(strings.ToLower(t), w) {
			return true
		}
	}
	return false
}
