package nlp

import (
	"fmt"
	"math"
)

// Classifier scores a feature vector against one weight row per class.
type Classifier struct {
	classes   []string
	coef      [][]float64
	intercept []float64
}

// NewClassifier validates the artifact. A nil model yields a classifier that
// always predicts IntentUnknown.
func NewClassifier(model *ClassifierModel) (*Classifier, error) {
	if model == nil {
		return &Classifier{}, nil
	}
	if len(model.Classes) != len(model.Coef) || len(model.Classes) != len(model.Intercept) {
		return nil, fmt.Errorf("classifier has %d classes, %d weight rows and %d intercepts",
			len(model.Classes), len(model.Coef), len(model.Intercept))
	}
	for i, row := range model.Coef {
		if len(row) != len(model.Coef[0]) {
			return nil, fmt.Errorf("weight row %d has length %d, want %d", i, len(row), len(model.Coef[0]))
		}
	}

	return &Classifier{
		classes:   model.Classes,
		coef:      model.Coef,
		intercept: model.Intercept,
	}, nil
}

func (c *Classifier) Dimension() int {
	if c == nil || len(c.coef) == 0 {
		return 0
	}
	return len(c.coef[0])
}

// Predict returns the class with the strictly greatest score. On ties the
// earliest class wins.
func (c *Classifier) Predict(vector []float64) string {
	if c == nil || len(c.coef) == 0 {
		return IntentUnknown
	}
	if len(vector) != c.Dimension() {
		return IntentFallbackLenMismatch
	}

	best := -1
	bestScore := math.Inf(-1)
	for i, weights := range c.coef {
		score := c.intercept[i]
		for j, w := range weights {
			score += w * vector[j]
		}
		if score > bestScore {
			bestScore = score
			best = i
		}
	}

	if best == -1 {
		return IntentFallbackNoPrediction
	}
	return c.classes[best]
}
