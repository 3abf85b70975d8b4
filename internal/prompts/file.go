package prompts

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/junolabs/juno/internal/dialogue"
)

// filePayload is the JSON shape accepted for prompt overrides. Every
// field is optional; present entries replace the embedded defaults at
// their key.
type filePayload struct {
	DefaultLanguage string                                  `json:"default_language,omitempty"`
	Languages       []string                                `json:"languages,omitempty"`
	Instructions    map[string]map[string]string            `json:"instructions,omitempty"` // "agent/phase" -> lang -> text
	Crisis          map[string]string                       `json:"crisis,omitempty"`
	Fallback        map[string]string                       `json:"fallback,omitempty"`
	Repeat          map[string]string                       `json:"repeat,omitempty"`
	Welcome         map[string]string                       `json:"welcome,omitempty"`
	Closing         map[string]string                       `json:"closing,omitempty"`
	Summary         map[string]string                       `json:"summary,omitempty"`
	Verses          map[dialogue.Style]map[string][]string  `json:"verses,omitempty"`
}

// Load builds the catalog: embedded defaults, overlaid with the
// configured language set, then with an optional JSON file, then
// validated. An invalid or incomplete catalog is a startup failure,
// never a runtime surprise. Empty language arguments keep the embedded
// values; the prompt file remains the most specific override.
func Load(path, defaultLanguage string, languages []string) (*Catalog, error) {
	c := DefaultCatalog()
	if defaultLanguage != "" {
		c.defaultLanguage = defaultLanguage
	}
	if len(languages) > 0 {
		c.languages = languages
	}
	if path != "" {
		if err := overlayFile(c, path); err != nil {
			return nil, err
		}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func overlayFile(c *Catalog, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read prompt file: %w", err)
	}
	var payload filePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("parse prompt file %s: %w", path, err)
	}

	if payload.DefaultLanguage != "" {
		c.defaultLanguage = payload.DefaultLanguage
	}
	if len(payload.Languages) > 0 {
		c.languages = payload.Languages
	}
	for key, byLang := range payload.Instructions {
		if c.instructions[key] == nil {
			c.instructions[key] = map[string]string{}
		}
		for lang, text := range byLang {
			c.instructions[key][lang] = text
		}
	}
	mergeStrings(c.crisis, payload.Crisis)
	mergeStrings(c.fallback, payload.Fallback)
	mergeStrings(c.repeat, payload.Repeat)
	mergeStrings(c.welcome, payload.Welcome)
	mergeStrings(c.closing, payload.Closing)
	mergeStrings(c.summary, payload.Summary)
	for style, byLang := range payload.Verses {
		if c.verses[style] == nil {
			c.verses[style] = map[string][]string{}
		}
		for lang, list := range byLang {
			c.verses[style][lang] = list
		}
	}
	return nil
}

func mergeStrings(dst, src map[string]string) {
	for k, v := range src {
		dst[k] = v
	}
}
