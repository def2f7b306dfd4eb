package schedule

import (
	"strings"
	"unicode"
)

// HintLevel grades a schedule name.
type HintLevel string

const (
	HintWarning HintLevel = "warning"
	HintInfo    HintLevel = "info"
	HintGood    HintLevel = "good"
)

// Hint is advisory feedback on a schedule name. Hints never block saving.
type Hint struct {
	Level   HintLevel `json:"level"`
	Message string    `json:"message"`
}

var genericWords = map[string]struct{}{
	"schedule": {}, "schedules": {}, "test": {}, "new": {}, "untitled": {},
	"default": {}, "temp": {}, "my": {}, "plan": {}, "calendar": {},
}

// Validate grades a proposed schedule name. Names that read like a child's
// name score best; generic words and bare numbers draw a warning.
func Validate(name string) []Hint {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return []Hint{{Level: HintWarning, Message: "Give the schedule a name, for example the child's first name."}}
	}
	if isDigits(trimmed) {
		return []Hint{{Level: HintWarning, Message: "A number alone is hard to tell apart later; try the child's name."}}
	}
	if isGeneric(trimmed) {
		return []Hint{{Level: HintWarning, Message: "\"" + trimmed + "\" is generic; naming the schedule after the child keeps the family view readable."}}
	}
	if looksLikeName(trimmed) {
		return []Hint{{Level: HintGood, Message: "Looks like a child's name."}}
	}
	return []Hint{{Level: HintInfo, Message: "Tip: schedules named after each child are easiest to compare."}}
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

func isGeneric(s string) bool {
	for _, w := range strings.Fields(strings.ToLower(s)) {
		if _, ok := genericWords[strings.Trim(w, "'-_#:")]; !ok && !isDigits(w) {
			return false
		}
	}
	return true
}

// looksLikeName accepts one to three capitalised words made of letters,
// apostrophes and hyphens ("Ami", "Mary-Kate", "Leo's").
func looksLikeName(s string) bool {
	words := strings.Fields(s)
	if len(words) > 3 {
		return false
	}
	for _, w := range words {
		first := []rune(w)[0]
		if !unicode.IsUpper(first) {
			return false
		}
		for _, r := range w {
			if !unicode.IsLetter(r) && r != '\'' && r != '-' {
				return false
			}
		}
	}
	return true
}
