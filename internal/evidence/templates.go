package evidence

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hmcts/sscs-dwp/internal/ccd"
	dErrors "github.com/hmcts/sscs-dwp/pkg/domain-errors"
)

// TemplateRole distinguishes the two cover-letter slots: the letter back to
// whoever submitted the evidence, and the letter to everyone copied in.
type TemplateRole string

const (
	RoleOriginalSender TemplateRole = "originalSender"
	RoleOtherParties   TemplateRole = "otherParties"
)

var allTemplateRoles = []TemplateRole{RoleOriginalSender, RoleOtherParties}

var allLanguages = []ccd.LanguagePreference{ccd.LanguageEnglish, ccd.LanguageWelsh}

// Template is one resolved binding: the rendering service's template id plus
// the human-readable document name the print batch shows.
type Template struct {
	ID      string `yaml:"id"`
	DocName string `yaml:"name"`
}

// TemplateRegistry resolves (language, role) to a template. Built once at
// startup from the bindings file and immutable afterwards; a miss at lookup
// time is a configuration fault, never a runtime branch.
type TemplateRegistry struct {
	bindings map[ccd.LanguagePreference]map[TemplateRole]Template
}

type templateFile struct {
	English map[TemplateRole]Template `yaml:"english"`
	Welsh   map[TemplateRole]Template `yaml:"welsh"`
}

// LoadTemplateRegistry reads the YAML bindings file and validates that every
// (language, role) pair resolves. Absence is a startup failure.
func LoadTemplateRegistry(path string) (*TemplateRegistry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeConfiguration, "failed to read template bindings")
	}
	var parsed templateFile
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeConfiguration, "failed to parse template bindings")
	}

	r := &TemplateRegistry{bindings: map[ccd.LanguagePreference]map[TemplateRole]Template{
		ccd.LanguageEnglish: parsed.English,
		ccd.LanguageWelsh:   parsed.Welsh,
	}}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// NewTemplateRegistry builds a registry from explicit bindings; used by
// tests and by deployments that inject configuration directly.
func NewTemplateRegistry(bindings map[ccd.LanguagePreference]map[TemplateRole]Template) *TemplateRegistry {
	return &TemplateRegistry{bindings: bindings}
}

// Validate checks every (language, role) pair resolves to a template id.
func (r *TemplateRegistry) Validate() error {
	for _, lang := range allLanguages {
		for _, role := range allTemplateRoles {
			t, ok := r.bindings[lang][role]
			if !ok || t.ID == "" {
				return dErrors.Newf(dErrors.CodeConfiguration,
					"no template bound for language %q role %q", lang, role)
			}
		}
	}
	return nil
}

// Lookup resolves the template for a language and role.
func (r *TemplateRegistry) Lookup(lang ccd.LanguagePreference, role TemplateRole) (Template, error) {
	t, ok := r.bindings[lang][role]
	if !ok || t.ID == "" {
		return Template{}, dErrors.New(dErrors.CodeConfiguration,
			fmt.Sprintf("no template bound for language %q role %q", lang, role))
	}
	return t, nil
}
