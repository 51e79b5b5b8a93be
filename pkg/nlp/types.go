package nlp

import "errors"

const (
	IntentUnknown              = "intent_unknown"
	IntentFallbackLenMismatch  = "fallback_intent_vector_length_mismatch"
	IntentFallbackNoPrediction = "fallback_intent_no_prediction"
)

const (
	NormL2   = "l2"
	NormNone = "none"
)

var ErrModelUnavailable = errors.New("tfidf model unavailable")

// TfidfModel mirrors the exported vectorizer artifact.
type TfidfModel struct {
	Vocabulary  map[string]int `json:"vocabulary_"`
	IDF         []float64      `json:"idf_"`
	NgramRange  []int          `json:"ngram_range"`
	SublinearTF bool           `json:"sublinear_tf"`
	Norm        *string        `json:"norm"`
}

// ClassifierModel mirrors the exported linear classifier artifact.
type ClassifierModel struct {
	Coef      [][]float64 `json:"coef_"`
	Intercept []float64   `json:"intercept_"`
	Classes   []string    `json:"classes_"`
}

// EntityDictionary maps an entity type to its canonical surface strings.
type EntityDictionary map[string][]string

type ExtractedEntity struct {
	Type           string `json:"type"`
	Value          any    `json:"value"`
	RawMatchInText string `json:"rawMatchInText"`
}

type INormalizer interface {
	Normalize(text string) []string
}

type IVectorizer interface {
	Vectorize(tokens []string) ([]float64, error)
	Dimension() int
}

type IClassifier interface {
	Predict(vector []float64) string
}

type IExtractor interface {
	Extract(text string) []ExtractedEntity
}

// Analysis is the NLP outcome of one inbound message.
type Analysis struct {
	Tokens   []string          `json:"tokens"`
	Intent   string            `json:"intent"`
	Entities []ExtractedEntity `json:"entities"`
}
