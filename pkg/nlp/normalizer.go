package nlp

import (
	"strings"

	"github.com/blevesearch/snowballstem"
	"github.com/blevesearch/snowballstem/portuguese"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

type Normalizer struct {
	stopWords map[string]bool
	lang      language.Tag
}

func NewNormalizer(stopWords []string) *Normalizer {
	set := make(map[string]bool, len(stopWords))
	for _, word := range stopWords {
		set[word] = true
	}

	return &Normalizer{
		stopWords: set,
		lang:      language.BrazilianPortuguese,
	}
}

// Normalize lowercases the text, strips ASCII punctuation, splits on
// whitespace, drops stopwords and stems what is left.
func (n *Normalizer) Normalize(text string) []string {
	if text == "" {
		return []string{}
	}

	// cases.Caser keeps state, so one per call.
	text = cases.Lower(n.lang).String(text)
	text = strings.Map(func(r rune) rune {
		if strings.ContainsRune(punctuation, r) {
			return -1
		}
		return r
	}, text)

	words := strings.Fields(text)
	tokens := make([]string, 0, len(words))
	for _, word := range words {
		if n.stopWords[word] {
			continue
		}
		tokens = append(tokens, stem(word))
	}

	return tokens
}

func stem(word string) string {
	env := snowballstem.NewEnv(word)
	portuguese.Stem(env)
	return env.Current()
}
