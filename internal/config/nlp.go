package config

import (
	"ChatbotFunil/pkg/artifact"
	"ChatbotFunil/pkg/nlp"

	"github.com/sirupsen/logrus"
)

// NewNLPProcessor assembles the inference pipeline from the loaded artifacts.
// An invalid model is logged and replaced by an unavailable one so the
// service keeps answering with the unknown-intent policy.
func NewNLPProcessor(log *logrus.Logger, bundle *artifact.Bundle) nlp.INLPProcessor {
	vectorizer, err := nlp.NewVectorizer(bundle.Tfidf)
	if err != nil {
		log.WithFields(logrus.Fields{
			"artifact": artifact.FileTfidf,
			"error":    err.Error(),
		}).Error("Invalid TF-IDF model, intent classification disabled")
		vectorizer, _ = nlp.NewVectorizer(nil)
	}

	classifier, err := nlp.NewClassifier(bundle.Classifier)
	if err != nil {
		log.WithFields(logrus.Fields{
			"artifact": artifact.FileClassifier,
			"error":    err.Error(),
		}).Error("Invalid classifier model, intent classification disabled")
		classifier, _ = nlp.NewClassifier(nil)
	}

	if vectorizer.Dimension() != classifier.Dimension() {
		log.WithFields(logrus.Fields{
			"vocabulary_size":      vectorizer.Dimension(),
			"classifier_dimension": classifier.Dimension(),
		}).Warn("TF-IDF vocabulary and classifier dimension differ")
	}

	if bundle.Entities == nil {
		log.WithFields(logrus.Fields{
			"artifact": artifact.FileEntities,
		}).Warn("Entity dictionary unavailable, entity extraction disabled")
	}

	return nlp.NewProcessor(
		log,
		nlp.NewNormalizer(bundle.Stopwords),
		vectorizer,
		classifier,
		nlp.NewEntityExtractor(bundle.Entities),
	)
}
