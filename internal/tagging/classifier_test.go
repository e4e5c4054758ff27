package tagging

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dinescout-engine/internal/config"
)

func testClassifier() *Classifier {
	cfg := config.Config{}
	cfg.Tagging.FallbackCuisine = "General Cuisine"
	cfg.Tagging.CuisineRules = []config.TagRule{
		{Tag: "Italian", Any: []string{"pizza", "pasta", "risotto"}},
		{Tag: "Indian", Any: []string{"curry", "naan"}},
	}
	cfg.Tagging.AspectRules = []config.TagRule{
		{Tag: "Service", Any: []string{"service", "staff", "friendly"}},
		{Tag: "Value", Any: []string{"price", "cheap"}},
	}
	return New(cfg)
}

func TestClassify(t *testing.T) {
	c := testClassifier()

	tests := []struct {
		name    string
		text    string
		cuisine []string
		aspects []string
	}{
		{
			name:    "two phrases one tag",
			text:    "Great pizza and even better pasta.",
			cuisine: []string{"Italian"},
			aspects: []string{},
		},
		{
			name:    "multiple categories",
			text:    "The curry was good, the pizza too, and the staff were lovely.",
			cuisine: []string{"Italian", "Indian"},
			aspects: []string{"Service"},
		},
		{
			name:    "fallback when nothing matches",
			text:    "It was fine I suppose.",
			cuisine: []string{"General Cuisine"},
			aspects: []string{},
		},
		{
			name:    "empty text",
			text:    "",
			cuisine: []string{"General Cuisine"},
			aspects: []string{},
		},
		{
			name:    "case insensitive",
			text:    "PIZZA! Cheap too.",
			cuisine: []string{"Italian"},
			aspects: []string{"Value"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cuisine, aspects := c.Classify(tt.text)
			assert.Equal(t, tt.cuisine, cuisine)
			assert.Equal(t, tt.aspects, aspects)
		})
	}
}

func TestClassifyDeterministic(t *testing.T) {
	c := testClassifier()
	text := "pizza curry staff price"
	c1, a1 := c.Classify(text)
	c2, a2 := c.Classify(text)
	assert.Equal(t, c1, c2)
	assert.Equal(t, a1, a2)
}

func TestDefaultRulesScenario(t *testing.T) {
	// the shipped dictionaries must tag a pizza-and-pasta place Italian
	c := New(config.Default())
	cuisine, _ := c.Classify("amazing pizza, the pasta was great too")
	assert.Contains(t, cuisine, "Italian")
	assert.NotContains(t, cuisine, "General Cuisine")
}
