package artifact

import (
	"ChatbotFunil/internal/entity"
	"ChatbotFunil/pkg/nlp"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

const (
	FileDataset    = "dataset_planos_saude.json"
	FileTfidf      = "tfidf_model.json"
	FileClassifier = "svm_model.json"
	FileEntities   = "entity_dictionaries.json"
	FileStopwords  = "portuguese_stopwords.json"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Bundle holds the parsed artifacts. A nil field means the artifact could
// not be loaded; consumers degrade instead of failing.
type Bundle struct {
	Dataset    entity.Dataset
	Tfidf      *nlp.TfidfModel
	Classifier *nlp.ClassifierModel
	Entities   nlp.EntityDictionary
	Stopwords  []string
}

type Loader struct {
	source Source
	log    *logrus.Logger
}

func NewLoader(source Source, log *logrus.Logger) *Loader {
	return &Loader{source: source, log: log}
}

// Load reads every artifact. Failures are logged per artifact and never
// abort the others.
func (l *Loader) Load() *Bundle {
	bundle := &Bundle{}

	var tfidf nlp.TfidfModel
	if l.decode(FileTfidf, &tfidf) {
		bundle.Tfidf = &tfidf
	}

	var classifier nlp.ClassifierModel
	if l.decode(FileClassifier, &classifier) {
		bundle.Classifier = &classifier
	}

	l.decode(FileDataset, &bundle.Dataset)
	l.decode(FileEntities, &bundle.Entities)
	l.decode(FileStopwords, &bundle.Stopwords)

	return bundle
}

func (l *Loader) decode(name string, dest any) bool {
	fields := logrus.Fields{
		"artifact": name,
		"source":   l.source.String(),
	}

	if err := l.read(name, dest); err != nil {
		fields["error"] = err.Error()
		l.log.WithFields(fields).Error("Failed to load artifact")
		return false
	}

	l.log.WithFields(fields).Info("Artifact loaded")
	return true
}

func (l *Loader) read(name string, dest any) error {
	r, err := l.source.Open(name)
	if err != nil {
		return err
	}
	defer r.Close()

	if err := json.NewDecoder(r).Decode(dest); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}
