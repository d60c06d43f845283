package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"lawfirm-cms/models"
)

// WorkflowPolicy describes which languages the sign-off matrix works with.
// The primary language is the one translators sign off; secondary languages
// belong to foreign counsel.
type WorkflowPolicy struct {
	SourceLanguage           string   `yaml:"source_language"`
	PrimaryLanguage          string   `yaml:"primary_language"`
	SecondaryLanguages       []string `yaml:"secondary_languages"`
	DefaultRequiredLanguages []string `yaml:"default_required_languages"`
}

func DefaultPolicy() WorkflowPolicy {
	return WorkflowPolicy{
		SourceLanguage:           "ja",
		PrimaryLanguage:          "en",
		SecondaryLanguages:       []string{"si", "ta"},
		DefaultRequiredLanguages: []string{"en", "si", "ta"},
	}
}

// LoadPolicy parses YAML bytes into a WorkflowPolicy, filling gaps from
// DefaultPolicy and canonicalising every language code.
func LoadPolicy(data []byte) (WorkflowPolicy, error) {
	var policy WorkflowPolicy
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return WorkflowPolicy{}, fmt.Errorf("parsing workflow policy: %w", err)
	}
	return policy.withDefaults()
}

// LoadPolicyFile reads the policy from path. An empty path yields the default
// policy.
func LoadPolicyFile(path string) (WorkflowPolicy, error) {
	if path == "" {
		return DefaultPolicy().withDefaults()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return WorkflowPolicy{}, fmt.Errorf("reading workflow policy: %w", err)
	}
	return LoadPolicy(data)
}

func (p WorkflowPolicy) withDefaults() (WorkflowPolicy, error) {
	def := DefaultPolicy()
	if p.SourceLanguage == "" {
		p.SourceLanguage = def.SourceLanguage
	}
	if p.PrimaryLanguage == "" {
		p.PrimaryLanguage = def.PrimaryLanguage
	}
	if p.SecondaryLanguages == nil {
		p.SecondaryLanguages = def.SecondaryLanguages
	}
	if p.DefaultRequiredLanguages == nil {
		p.DefaultRequiredLanguages = def.DefaultRequiredLanguages
	}

	var err error
	if p.SourceLanguage, err = models.CanonicalLanguage(p.SourceLanguage); err != nil {
		return WorkflowPolicy{}, fmt.Errorf("source_language: %w", err)
	}
	if p.PrimaryLanguage, err = models.CanonicalLanguage(p.PrimaryLanguage); err != nil {
		return WorkflowPolicy{}, fmt.Errorf("primary_language: %w", err)
	}
	if p.SecondaryLanguages, err = canonicalList(p.SecondaryLanguages); err != nil {
		return WorkflowPolicy{}, fmt.Errorf("secondary_languages: %w", err)
	}
	for _, lang := range p.SecondaryLanguages {
		if lang == p.PrimaryLanguage {
			return WorkflowPolicy{}, fmt.Errorf("secondary_languages: %s is already the primary language", lang)
		}
	}
	if p.DefaultRequiredLanguages, err = canonicalList(p.DefaultRequiredLanguages); err != nil {
		return WorkflowPolicy{}, fmt.Errorf("default_required_languages: %w", err)
	}
	return p, nil
}

func canonicalList(langs []string) ([]string, error) {
	out := make([]string, 0, len(langs))
	seen := make(map[string]bool, len(langs))
	for _, raw := range langs {
		lang, err := models.CanonicalLanguage(raw)
		if err != nil {
			return nil, err
		}
		if seen[lang] {
			continue
		}
		seen[lang] = true
		out = append(out, lang)
	}
	return out, nil
}
