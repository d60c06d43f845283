package models

import (
	"strings"

	"golang.org/x/text/language"
)

// Target names what an approval signs off: the original-language content or
// one translation language.
type Target string

const TargetSource Target = "source"

// MaxLanguageCodeLength matches the width of every language column.
const MaxLanguageCodeLength = 35

func (t Target) IsSource() bool {
	return t == TargetSource
}

func (t Target) String() string {
	return string(t)
}

// ParseTarget accepts "source" or a BCP 47 language code and returns the
// canonical form, so "EN" and "en" address the same ledger partition.
func ParseTarget(raw string) (Target, error) {
	raw = strings.TrimSpace(raw)
	if strings.EqualFold(raw, string(TargetSource)) {
		return TargetSource, nil
	}
	code, err := CanonicalLanguage(raw)
	if err != nil {
		return "", err
	}
	return Target(code), nil
}

// CanonicalLanguage validates a language code and returns its canonical BCP 47
// spelling.
func CanonicalLanguage(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", NewValidationError("language code is required", nil)
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return "", NewValidationError("invalid language code: "+raw, err)
	}
	if tag == language.Und {
		return "", NewValidationError("undetermined language code: "+raw, nil)
	}
	code := tag.String()
	if len(code) > MaxLanguageCodeLength {
		return "", NewValidationError("language code is too long: "+raw, nil)
	}
	return code, nil
}
