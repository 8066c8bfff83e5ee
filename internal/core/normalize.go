package core

import (
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultPhoneRegion is the region used to parse phone numbers that carry no
// country code. Configurable via CONVERT_PHONE_REGION; most source lists are
// Brazilian, so +55 is the default.
const DefaultPhoneRegion = "BR"

var (
	emailSplitter = regexp.MustCompile(`[,;\s]+`)
	phoneSplitter = regexp.MustCompile(`[,;\n]+`)
	phoneStripper = regexp.MustCompile(`[\s\-()]`)
)

// NormalizeEmails canonicalizes a multi-value email field: lowercase, split
// on comma/semicolon/whitespace runs, keep tokens containing "@", deduplicate
// preserving first-seen order, rejoin with ", ". There is no validation
// beyond the "@" check; malformed addresses pass through untouched.
func NormalizeEmails(val string) string {
	s := strings.ToLower(strings.TrimSpace(val))
	if s == "" {
		return ""
	}

	seen := make(map[string]bool)
	var out []string
	for _, p := range emailSplitter.Split(s, -1) {
		p = strings.TrimSpace(p)
		if p == "" || !strings.Contains(p, "@") || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return strings.Join(out, ", ")
}

// NormalizePhones canonicalizes a multi-value phone field: split on
// comma/semicolon/newline (not spaces, which appear inside formatted
// numbers), normalize each token, deduplicate preserving order, rejoin
// with ", ".
func NormalizePhones(val, region string) string {
	if strings.TrimSpace(val) == "" {
		return ""
	}

	var out []string
	for _, p := range phoneSplitter.Split(val, -1) {
		n := normalizePhone(strings.TrimSpace(p), region)
		if n == "" {
			continue
		}
		dup := false
		for _, existing := range out {
			if existing == n {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, n)
		}
	}
	return strings.Join(out, ", ")
}

// normalizePhone converts a single token to E.164 when possible. Tokens that
// are not purely digits after stripping separators (e.g. "N/A") and numbers
// that fail to parse or validate are returned as the original trimmed token,
// never discarded.
func normalizePhone(val, region string) string {
	val = strings.TrimSpace(val)
	if val == "" {
		return ""
	}

	s := phoneStripper.ReplaceAllString(val, "")
	if s == "" || !isDialable(s) {
		return val
	}

	parsed, err := phonenumbers.Parse(s, region)
	if err != nil || !phonenumbers.IsValidNumber(parsed) {
		return val
	}
	return phonenumbers.Format(parsed, phonenumbers.E164)
}

// isDialable reports whether s is digits with at most one leading "+".
func isDialable(s string) bool {
	s = strings.TrimPrefix(s, "+")
	if s == "" || strings.Contains(s, "+") {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
