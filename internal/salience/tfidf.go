package salience

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// Extractor computes corpus-relative salient terms per document using a
// plain TF-IDF weight: tf(term, doc) * log(N / df(term)). The vocabulary is
// capped to the highest-variance terms across the corpus, which bounds
// memory and throws out near-universal terms the stopword list misses.
type Extractor struct {
	MaxTermsPerDoc int
	VocabularyCap  int
}

func New(maxTermsPerDoc, vocabularyCap int) *Extractor {
	if maxTermsPerDoc <= 0 {
		maxTermsPerDoc = 10
	}
	if vocabularyCap <= 0 {
		vocabularyCap = 1000
	}
	return &Extractor{MaxTermsPerDoc: maxTermsPerDoc, VocabularyCap: vocabularyCap}
}

type weighted struct {
	term   string
	weight float64
}

// Extract returns one ordered keyword list per input document, aligned by
// index, highest weight first. Ties break lexicographically so the output
// is stable across runs.
func (e *Extractor) Extract(corpus []string) [][]string {
	docs := make([][]string, len(corpus))
	for i, text := range corpus {
		docs[i] = tokenize(text)
	}

	// term frequencies per doc, document frequency per term
	tfs := make([]map[string]int, len(docs))
	df := make(map[string]int)
	for i, doc := range docs {
		tf := make(map[string]int)
		for _, w := range doc {
			tf[w]++
		}
		tfs[i] = tf
		for w := range tf {
			df[w]++
		}
	}

	vocab := e.capVocabulary(tfs, df, len(docs))

	n := float64(len(docs))
	out := make([][]string, len(docs))
	for i, tf := range tfs {
		var terms []weighted
		for w, cnt := range tf {
			if !vocab[w] {
				continue
			}
			idf := math.Log(n / float64(df[w]))
			weight := float64(cnt) * idf
			if weight <= 0 {
				continue
			}
			terms = append(terms, weighted{term: w, weight: weight})
		}
		sort.Slice(terms, func(a, b int) bool {
			if terms[a].weight != terms[b].weight {
				return terms[a].weight > terms[b].weight
			}
			return terms[a].term < terms[b].term
		})
		if len(terms) > e.MaxTermsPerDoc {
			terms = terms[:e.MaxTermsPerDoc]
		}
		keywords := make([]string, len(terms))
		for j, t := range terms {
			keywords[j] = t.term
		}
		out[i] = keywords
	}
	return out
}

// capVocabulary keeps the VocabularyCap terms whose per-document frequency
// varies the most across the corpus. Constant terms (same count everywhere,
// including zero) carry no signal and drop out first.
func (e *Extractor) capVocabulary(tfs []map[string]int, df map[string]int, nDocs int) map[string]bool {
	if len(df) <= e.VocabularyCap {
		vocab := make(map[string]bool, len(df))
		for w := range df {
			vocab[w] = true
		}
		return vocab
	}

	type variance struct {
		term string
		v    float64
	}
	vars := make([]variance, 0, len(df))
	n := float64(nDocs)
	for w := range df {
		var sum, sumSq float64
		for _, tf := range tfs {
			c := float64(tf[w])
			sum += c
			sumSq += c * c
		}
		mean := sum / n
		vars = append(vars, variance{term: w, v: sumSq/n - mean*mean})
	}
	sort.Slice(vars, func(a, b int) bool {
		if vars[a].v != vars[b].v {
			return vars[a].v > vars[b].v
		}
		return vars[a].term < vars[b].term
	})

	vocab := make(map[string]bool, e.VocabularyCap)
	for _, wv := range vars[:e.VocabularyCap] {
		vocab[wv.term] = true
	}
	return vocab
}

func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := fields[:0]
	for _, w := range fields {
		if len(w) < 2 || stopwords[w] {
			continue
		}
		out = append(out, w)
	}
	return out
}
