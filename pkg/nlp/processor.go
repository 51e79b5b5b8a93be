package nlp

import (
	"errors"

	"github.com/sirupsen/logrus"
)

type INLPProcessor interface {
	Analyze(text string) *Analysis
}

// NLPProcessor runs normalize -> vectorize -> classify on the message and,
// independently, entity extraction on the raw text.
type NLPProcessor struct {
	log        *logrus.Logger
	normalizer INormalizer
	vectorizer IVectorizer
	classifier IClassifier
	extractor  IExtractor
}

func NewProcessor(
	log *logrus.Logger,
	normalizer INormalizer,
	vectorizer IVectorizer,
	classifier IClassifier,
	extractor IExtractor,
) INLPProcessor {
	return &NLPProcessor{
		log:        log,
		normalizer: normalizer,
		vectorizer: vectorizer,
		classifier: classifier,
		extractor:  extractor,
	}
}

func (p *NLPProcessor) Analyze(text string) *Analysis {
	tokens := p.normalizer.Normalize(text)

	intent := IntentUnknown
	vector, err := p.vectorizer.Vectorize(tokens)
	switch {
	case errors.Is(err, ErrModelUnavailable):
		p.log.WithFields(logrus.Fields{
			"tokens": tokens,
		}).Warn("TF-IDF model unavailable, intent set to unknown")
	case err != nil:
		p.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Error("Failed to vectorize message")
	default:
		intent = p.classifier.Predict(vector)
	}

	if intent == IntentFallbackLenMismatch {
		p.log.WithFields(logrus.Fields{
			"vector_length": len(vector),
		}).Warn("Feature vector length does not match classifier dimension")
	}

	return &Analysis{
		Tokens:   tokens,
		Intent:   intent,
		Entities: p.extractor.Extract(text),
	}
}
