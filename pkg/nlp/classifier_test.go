package nlp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClassifier(t *testing.T) *Classifier {
	t.Helper()
	c, err := NewClassifier(&ClassifierModel{
		Coef: [][]float64{
			{1, 0, 0},
			{0, 1, 0},
			{0, 0, 1},
		},
		Intercept: []float64{0, 0, 0.1},
		Classes:   []string{"saudacao", "solicitar_cotacao_plano", "despedida"},
	})
	require.NoError(t, err)
	return c
}

func TestClassifier_Predict(t *testing.T) {
	c := newTestClassifier(t)

	tests := []struct {
		name   string
		vector []float64
		want   string
	}{
		{name: "first class", vector: []float64{1, 0, 0}, want: "saudacao"},
		{name: "second class", vector: []float64{0, 1, 0}, want: "solicitar_cotacao_plano"},
		{name: "intercept decides zero vector", vector: []float64{0, 0, 0}, want: "despedida"},
		{name: "tie goes to earliest class", vector: []float64{0.5, 0.5, 0}, want: "saudacao"},
		{name: "length mismatch", vector: []float64{1, 0}, want: IntentFallbackLenMismatch},
		{name: "empty vector", vector: nil, want: IntentFallbackLenMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Predict(tt.vector))
		})
	}
}

func TestClassifier_TieBreakIsFirstIndex(t *testing.T) {
	c, err := NewClassifier(&ClassifierModel{
		Coef:      [][]float64{{1}, {1}, {1}},
		Intercept: []float64{0, 0, 0},
		Classes:   []string{"c", "a", "b"},
	})
	require.NoError(t, err)

	assert.Equal(t, "c", c.Predict([]float64{1}))
}

func TestClassifier_Deterministic(t *testing.T) {
	c := newTestClassifier(t)
	vector := []float64{0.3, 0.29, 0.2}

	want := c.Predict(vector)
	for i := 0; i < 10; i++ {
		assert.Equal(t, want, c.Predict(vector))
	}
}

func TestClassifier_NoPrediction(t *testing.T) {
	c, err := NewClassifier(&ClassifierModel{
		Coef:      [][]float64{{1}},
		Intercept: []float64{math.NaN()},
		Classes:   []string{"saudacao"},
	})
	require.NoError(t, err)

	assert.Equal(t, IntentFallbackNoPrediction, c.Predict([]float64{1}))
}

func TestClassifier_MissingModel(t *testing.T) {
	c, err := NewClassifier(nil)
	require.NoError(t, err)

	assert.Equal(t, IntentUnknown, c.Predict([]float64{1, 2}))
	assert.Equal(t, 0, c.Dimension())
}

func TestNewClassifier_RejectsInconsistentModel(t *testing.T) {
	_, err := NewClassifier(&ClassifierModel{
		Coef:      [][]float64{{1, 2}, {1}},
		Intercept: []float64{0, 0},
		Classes:   []string{"a", "b"},
	})
	assert.Error(t, err)

	_, err = NewClassifier(&ClassifierModel{
		Coef:      [][]float64{{1}},
		Intercept: []float64{0, 0},
		Classes:   []string{"a"},
	})
	assert.Error(t, err)
}
