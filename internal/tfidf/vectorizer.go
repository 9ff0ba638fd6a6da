// Package tfidf fits a term-frequency/inverse-document-frequency vocabulary
// over a document corpus and transforms texts into fixed-length vectors under
// it. Resume and job vectors are only comparable when produced by the same
// fitted vocabulary, so the vocabulary is an explicit value passed to every
// transform call, never package state.
package tfidf

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"
)

// Options controls how a vocabulary is fitted. The options used at fit time
// are carried inside the persisted artifact so reloads tokenize identically.
type Options struct {
	// MaxFeatures caps the vocabulary at the terms with the highest total
	// corpus count, ties broken alphabetically.
	MaxFeatures int `json:"max_features"`
	// NGramMax is the largest n-gram order kept; 1 keeps unigrams only,
	// 2 adds bigrams of adjacent kept tokens.
	NGramMax int `json:"ngram_max"`
	// StopWords overrides the built-in English list when non-nil.
	StopWords []string `json:"stop_words,omitempty"`
}

// DefaultOptions returns the production fit configuration: 5000 features,
// unigrams and bigrams, English stop words.
func DefaultOptions() Options {
	return Options{MaxFeatures: 5000, NGramMax: 2}
}

func (o Options) validate() error {
	if o.MaxFeatures <= 0 {
		return fmt.Errorf("max features must be positive, got %d", o.MaxFeatures)
	}
	if o.NGramMax < 1 {
		return fmt.Errorf("n-gram order must be at least 1, got %d", o.NGramMax)
	}
	return nil
}

// Vocabulary is a fitted term space: terms in index order, their IDF weights,
// and the options they were fitted with. Immutable after fitting.
type Vocabulary struct {
	Terms     []string  `json:"terms"`
	IDF       []float64 `json:"idf"`
	Documents int       `json:"documents"`
	Options   Options   `json:"options"`

	index map[string]int
}

// Dim returns the vector dimensionality defined by the vocabulary.
func (v *Vocabulary) Dim() int {
	return len(v.Terms)
}

func (v *Vocabulary) buildIndex() {
	v.index = make(map[string]int, len(v.Terms))
	for i, term := range v.Terms {
		v.index[term] = i
	}
}

// Fit builds a vocabulary over the corpus: terms are counted per document,
// the MaxFeatures terms with the highest total corpus count are kept (ties
// alphabetical), the kept terms are sorted alphabetically to fix their
// indices, and each term gets the smooth IDF weight ln((1+n)/(1+df)) + 1.
func Fit(corpus []string, opts Options) (*Vocabulary, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if len(corpus) == 0 {
		return nil, fmt.Errorf("cannot fit vocabulary over an empty corpus")
	}

	stops := stopSet(opts.StopWords)
	totals := make(map[string]int)
	docFreq := make(map[string]int)

	for _, doc := range corpus {
		counts := termCounts(doc, opts.NGramMax, stops)
		for term, n := range counts {
			totals[term] += n
			docFreq[term]++
		}
	}
	if len(totals) == 0 {
		return nil, fmt.Errorf("corpus produced no terms after tokenization")
	}

	terms := make([]string, 0, len(totals))
	for term := range totals {
		terms = append(terms, term)
	}
	if len(terms) > opts.MaxFeatures {
		sort.Slice(terms, func(i, j int) bool {
			if totals[terms[i]] != totals[terms[j]] {
				return totals[terms[i]] > totals[terms[j]]
			}
			return terms[i] < terms[j]
		})
		terms = terms[:opts.MaxFeatures]
	}
	sort.Strings(terms)

	n := len(corpus)
	idf := make([]float64, len(terms))
	for i, term := range terms {
		idf[i] = math.Log(float64(1+n)/float64(1+docFreq[term])) + 1
	}

	vocab := &Vocabulary{
		Terms:     terms,
		IDF:       idf,
		Documents: n,
		Options:   opts,
	}
	vocab.buildIndex()
	return vocab, nil
}

// Transform converts text into its TF-IDF vector under the fitted
// vocabulary: raw term count times IDF per dimension, L2-normalized. Terms
// outside the vocabulary contribute nothing; a text with no known terms
// yields the zero vector, never an error.
func (v *Vocabulary) Transform(text string) []float64 {
	vec := make([]float64, len(v.Terms))
	if v.index == nil {
		v.buildIndex()
	}

	counts := termCounts(text, v.Options.NGramMax, stopSet(v.Options.StopWords))
	for term, n := range counts {
		if i, ok := v.index[term]; ok {
			vec[i] = float64(n) * v.IDF[i]
		}
	}

	l2Normalize(vec)
	return vec
}

// termCounts tokenizes text and counts its n-gram terms.
func termCounts(text string, ngramMax int, stops map[string]struct{}) map[string]int {
	tokens := tokenize(text)
	kept := tokens[:0]
	for _, tok := range tokens {
		if _, stop := stops[tok]; !stop {
			kept = append(kept, tok)
		}
	}

	counts := make(map[string]int)
	for n := 1; n <= ngramMax; n++ {
		for i := 0; i+n <= len(kept); i++ {
			counts[strings.Join(kept[i:i+n], " ")]++
		}
	}
	return counts
}

// tokenize lowercases text and splits it into maximal runs of word
// characters (letters, digits, underscore), dropping single-character runs.
func tokenize(text string) []string {
	text = strings.ToLower(text)
	var tokens []string
	start := -1

	runes := []rune(text)
	for i, r := range runes {
		if isWordChar(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 && i-start >= 2 {
			tokens = append(tokens, string(runes[start:i]))
		}
		start = -1
	}
	if start >= 0 && len(runes)-start >= 2 {
		tokens = append(tokens, string(runes[start:]))
	}
	return tokens
}

func isWordChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// l2Normalize scales vec to unit length in place; the zero vector is left
// unchanged.
func l2Normalize(vec []float64) {
	var sum float64
	for _, x := range vec {
		sum += x * x
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range vec {
		vec[i] /= norm
	}
}
