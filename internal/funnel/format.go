package funnel

import (
	"ChatbotFunil/internal/entity"
	"regexp"
	"strings"
)

var placeholderPattern = regexp.MustCompile(`\[([\p{L}\p{N}_]+)\]`)

// Render fills every [placeholder] of the template. Populated slots are
// substituted case-insensitively; anything else becomes the
// pending-information marker. Bracketed tokens carried in by a slot value are
// cleared by a final pass. An empty template is replaced by a fixed apology
// first.
func Render(template string, data entity.QuoteData) string {
	if template == "" {
		template = msgNoResponse
	}

	values := data.Placeholders()
	rendered := placeholderPattern.ReplaceAllStringFunc(template, func(placeholder string) string {
		key := strings.ToLower(placeholder[1 : len(placeholder)-1])
		if value, ok := values[key]; ok {
			return value
		}
		return msgPendingInfo
	})

	return placeholderPattern.ReplaceAllLiteralString(rendered, msgPendingInfo)
}
