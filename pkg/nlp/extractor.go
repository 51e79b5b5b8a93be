package nlp

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	EntityAge   = "idade"
	EntityEmail = "email"
)

var (
	agePattern   = regexp.MustCompile(`(?i)\b(\d{1,2})\s*(anos?)?\b`)
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
)

type dictionaryTerm struct {
	entityType string
	value      string
	pattern    *regexp.Regexp
}

// EntityExtractor merges dictionary matches with the age and email patterns.
// Dictionary types are scanned in lexical order, values in artifact order.
// Without a dictionary nothing is extracted, patterns included.
type EntityExtractor struct {
	terms  []dictionaryTerm
	lang   language.Tag
	loaded bool
}

func NewEntityExtractor(dictionary EntityDictionary) *EntityExtractor {
	types := make([]string, 0, len(dictionary))
	for entityType := range dictionary {
		types = append(types, entityType)
	}
	sort.Strings(types)

	lang := language.BrazilianPortuguese
	var terms []dictionaryTerm
	for _, entityType := range types {
		for _, value := range dictionary[entityType] {
			lowered := cases.Lower(lang).String(strings.TrimSpace(value))
			if lowered == "" {
				continue
			}
			terms = append(terms, dictionaryTerm{
				entityType: entityType,
				value:      value,
				pattern:    wholeWord(lowered),
			})
		}
	}

	return &EntityExtractor{terms: terms, lang: lang, loaded: dictionary != nil}
}

// wholeWord matches the literal only when it is not glued to another letter,
// digit or underscore, accented letters included.
func wholeWord(literal string) *regexp.Regexp {
	return regexp.MustCompile(`(?:^|[^\p{L}\p{N}_])(` + regexp.QuoteMeta(literal) + `)(?:$|[^\p{L}\p{N}_])`)
}

func (e *EntityExtractor) Extract(text string) []ExtractedEntity {
	if e == nil || !e.loaded || strings.TrimSpace(text) == "" {
		return []ExtractedEntity{}
	}

	lowered := cases.Lower(e.lang).String(text)
	var found []ExtractedEntity

	for _, term := range e.terms {
		loc := term.pattern.FindStringSubmatchIndex(lowered)
		if loc == nil {
			continue
		}
		found = append(found, ExtractedEntity{
			Type:           term.entityType,
			Value:          term.value,
			RawMatchInText: lowered[loc[2]:loc[3]],
		})
	}

	for _, match := range agePattern.FindAllStringSubmatch(text, -1) {
		age, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		found = append(found, ExtractedEntity{
			Type:           EntityAge,
			Value:          age,
			RawMatchInText: strings.TrimSpace(match[0]),
		})
	}

	for _, match := range emailPattern.FindAllString(lowered, -1) {
		found = append(found, ExtractedEntity{
			Type:           EntityEmail,
			Value:          match,
			RawMatchInText: match,
		})
	}

	return dedupe(found)
}

func dedupe(entities []ExtractedEntity) []ExtractedEntity {
	seen := make(map[string]bool, len(entities))
	unique := make([]ExtractedEntity, 0, len(entities))
	for _, entity := range entities {
		key := fmt.Sprintf("%s:%v", entity.Type, entity.Value)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, entity)
	}
	return unique
}

// FirstOfType returns the first entity of the given type.
func FirstOfType(entities []ExtractedEntity, entityType string) (ExtractedEntity, bool) {
	for _, entity := range entities {
		if entity.Type == entityType {
			return entity, true
		}
	}
	return ExtractedEntity{}, false
}
