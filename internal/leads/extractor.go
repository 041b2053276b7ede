package leads

import (
	"regexp"
	"strings"
)

// Message is the slice of a conversation the extractor inspects. Only
// user-authored turns are scanned; callers filter by Role.
type Message struct {
	Role    string
	Content string
}

// RoleUser marks visitor-authored messages.
const RoleUser = "user"

// ---------- package-level compiled regexes ----------

var (
	emailRE = regexp.MustCompile(`[\w.\-]+@[\w.\-]+\.[A-Za-z]+`)

	// Optional leading +, digits interspersed with spaces, hyphens or
	// parentheses, a digit at each end. Significant-digit length is
	// checked separately.
	phoneRE = regexp.MustCompile(`\+?\d[\d\s()\-]{7,}\d`)

	// Self-introduction lead-ins followed by one or more capitalized
	// words. The lead-in is case-insensitive, the name words are not.
	nameLeadInRE = regexp.MustCompile(`(?:(?i)\b(?:my name is|i am|i'm|this is))\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`)

	// Fallback: first run of two or more consecutive capitalized words.
	capitalizedRunRE = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)+\b`)
)

const minPhoneDigits = 9

// ExtractCandidate scans user-authored conversation text for a contact
// triple. It returns ok=false unless name, email and phone are all found;
// partial matches are discarded. Matching is lenient (first match wins)
// but conjunctive, so conversational noise never yields half-records.
func ExtractCandidate(history []Message) (Candidate, bool) {
	text := collectUserText(history)
	if text == "" {
		return Candidate{}, false
	}

	email := emailRE.FindString(text)
	phone := findPhone(text)
	name := findName(text)

	if name == "" || email == "" || phone == "" {
		return Candidate{}, false
	}

	return Candidate{
		Name:  name,
		Email: strings.TrimSpace(email),
		Phone: strings.TrimSpace(phone),
	}, true
}

// collectUserText concatenates user message content in order, separated by
// a single space.
func collectUserText(history []Message) string {
	var b strings.Builder
	for _, msg := range history {
		if msg.Role != RoleUser {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(msg.Content)
	}
	return b.String()
}

// findPhone returns the first phone-shaped substring carrying at least
// minPhoneDigits significant digits.
func findPhone(text string) string {
	for _, m := range phoneRE.FindAllString(text, -1) {
		if countDigits(m) >= minPhoneDigits {
			return m
		}
	}
	return ""
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

// findName prefers an explicit self-introduction over incidental
// capitalized phrases, which may be place or product names. Both tiers are
// first-match and therefore deterministic for a fixed input.
func findName(text string) string {
	if m := nameLeadInRE.FindStringSubmatch(text); len(m) == 2 {
		return titleCase(m[1])
	}
	if m := capitalizedRunRE.FindString(text); m != "" {
		return titleCase(m)
	}
	return ""
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
