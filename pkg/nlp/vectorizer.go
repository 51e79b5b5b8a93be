package nlp

import (
	"fmt"
	"math"
	"strings"
)

type Vectorizer struct {
	vocabulary  map[string]int
	idf         []float64
	minN, maxN  int
	sublinearTF bool
	l2          bool
}

// NewVectorizer validates the artifact. A nil model yields a vectorizer that
// reports ErrModelUnavailable on every call.
func NewVectorizer(model *TfidfModel) (*Vectorizer, error) {
	if model == nil {
		return &Vectorizer{}, nil
	}
	if len(model.Vocabulary) == 0 || len(model.IDF) == 0 {
		return nil, fmt.Errorf("tfidf model has empty vocabulary or idf")
	}

	seen := make(map[int]string, len(model.Vocabulary))
	for term, idx := range model.Vocabulary {
		if idx < 0 || idx >= len(model.IDF) {
			return nil, fmt.Errorf("vocabulary term %q has index %d outside idf length %d", term, idx, len(model.IDF))
		}
		if other, dup := seen[idx]; dup {
			return nil, fmt.Errorf("vocabulary terms %q and %q share index %d", other, term, idx)
		}
		seen[idx] = term
	}

	minN, maxN := 1, 1
	if len(model.NgramRange) == 2 && model.NgramRange[0] >= 1 && model.NgramRange[0] <= model.NgramRange[1] {
		minN, maxN = model.NgramRange[0], model.NgramRange[1]
	}

	return &Vectorizer{
		vocabulary:  model.Vocabulary,
		idf:         model.IDF,
		minN:        minN,
		maxN:        maxN,
		sublinearTF: model.SublinearTF,
		l2:          model.Norm != nil && *model.Norm == NormL2,
	}, nil
}

func (v *Vectorizer) Dimension() int {
	if v == nil {
		return 0
	}
	return len(v.idf)
}

func (v *Vectorizer) Vectorize(tokens []string) ([]float64, error) {
	if v == nil || len(v.idf) == 0 {
		return nil, ErrModelUnavailable
	}

	vector := make([]float64, len(v.idf))
	for n := v.minN; n <= v.maxN && n <= len(tokens); n++ {
		for i := 0; i+n <= len(tokens); i++ {
			if idx, ok := v.vocabulary[strings.Join(tokens[i:i+n], " ")]; ok {
				vector[idx]++
			}
		}
	}

	var sumSquares float64
	for i, count := range vector {
		if count == 0 {
			continue
		}
		if v.sublinearTF {
			count = 1 + math.Log(count)
		}
		vector[i] = count * v.idf[i]
		sumSquares += vector[i] * vector[i]
	}

	if v.l2 && sumSquares > 0 {
		norm := math.Sqrt(sumSquares)
		for i := range vector {
			vector[i] /= norm
		}
	}

	return vector, nil
}
