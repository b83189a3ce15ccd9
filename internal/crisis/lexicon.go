// Package crisis flags messages that mention self-harm and carries the static
// helpline payload shown alongside those replies.
package crisis

import "strings"

// phrases are matched as lowercase substrings anywhere in a message, including
// inside other words. A match on a benign mention (news, fiction) still flags.
var phrases = []string{
	// English
	"suicide",
	"kill myself",
	"end it all",
	"hurt myself",
	"self harm",
	"want to die",
	"no point living",
	"better off dead",

	// Hindi (Devanagari)
	"मरना चाहता",
	"मरना चाहती",
	"आत्महत्या",
	"जीना नही चाहता",
	"जीना नहीं चाहता",
	"मौत चाहिए",

	// Hindi (romanized)
	"marna hai",
	"marna chahta",
	"marna chahti",
	"jeena nahi chahta",
	"jeena nahi chahti",
	"aatmahatya",
	"khudkushi",
}

// Matcher classifies message text against a fixed phrase list.
type Matcher struct {
	phrases []string
}

// NewMatcher returns a matcher over the built-in lexicon.
func NewMatcher() *Matcher {
	return NewMatcherWithPhrases(phrases)
}

// NewMatcherWithPhrases returns a matcher over a custom lexicon. Blank phrases are ignored.
func NewMatcherWithPhrases(list []string) *Matcher {
	normalized := make([]string, 0, len(list))
	for _, p := range list {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		normalized = append(normalized, p)
	}
	return &Matcher{phrases: normalized}
}

// Classify reports whether text contains any lexicon phrase, ignoring case.
func (m *Matcher) Classify(text string) bool {
	_, ok := m.Match(text)
	return ok
}

// Match returns the first lexicon phrase found in text.
func (m *Matcher) Match(text string) (string, bool) {
	if m == nil || text == "" {
		return "", false
	}
	lower := strings.ToLower(text)
	for _, p := range m.phrases {
		if strings.Contains(lower, p) {
			return p, true
		}
	}
	return "", false
}

// Phrases returns a copy of the lexicon.
func (m *Matcher) Phrases() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.phrases...)
}
