package prompts

import (
	"fmt"
	"strings"

	"github.com/junolabs/juno/internal/dialogue"
)

// AgentKind enumerates the sub-agents that can answer a turn. Keeping
// this closed means a missing instruction is a startup error instead of
// a silent runtime default.
type AgentKind string

const (
	AgentCompanion AgentKind = "companion"
	AgentJournal   AgentKind = "journal"
	AgentCoach     AgentKind = "coach"
	AgentGuide     AgentKind = "guide"
)

// AgentForStyle maps a session's dialogue style to the agent that
// drives its phase script.
func AgentForStyle(style dialogue.Style) AgentKind {
	switch style {
	case dialogue.StyleJournal:
		return AgentJournal
	case dialogue.StyleCoach:
		return AgentCoach
	default:
		return AgentCompanion
	}
}

// phasesForAgent lists every phase an agent needs an instruction for.
func phasesForAgent(agent AgentKind) []dialogue.Phase {
	switch agent {
	case AgentJournal:
		return dialogue.PhasesFor(dialogue.StyleJournal)
	case AgentCoach:
		return dialogue.PhasesFor(dialogue.StyleCoach)
	default:
		return []dialogue.Phase{dialogue.PhaseChat}
	}
}

// Catalog is the immutable prompt configuration: system instructions
// keyed by (agent, phase, language), plus the fixed per-language reply
// strings the orchestrator needs (crisis, fallback, repeat, welcome,
// closing, summary) and the verse lists appended in the relieve phase.
type Catalog struct {
	defaultLanguage string
	languages       []string

	instructions map[string]map[string]string // agent/phase -> lang -> text
	crisis       map[string]string
	fallback     map[string]string
	repeat       map[string]string
	welcome      map[string]string
	closing      map[string]string
	summary      map[string]string
	verses       map[dialogue.Style]map[string][]string
}

func instructionKey(agent AgentKind, phase dialogue.Phase) string {
	return string(agent) + "/" + string(phase)
}

// DefaultLanguage returns the configured fallback language.
func (c *Catalog) DefaultLanguage() string { return c.defaultLanguage }

// Languages returns the supported language set.
func (c *Catalog) Languages() []string {
	out := make([]string, len(c.languages))
	copy(out, c.languages)
	return out
}

// Supported reports whether a language is configured.
func (c *Catalog) Supported(lang string) bool {
	for _, l := range c.languages {
		if l == lang {
			return true
		}
	}
	return false
}

// NormalizeLanguage maps unknown or blank languages to the default.
func (c *Catalog) NormalizeLanguage(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if c.Supported(lang) {
		return lang
	}
	return c.defaultLanguage
}

// Select returns the system instruction for (agent, phase, language),
// falling back to the default language when the requested one has no
// entry. A missing (agent, phase) pair is a configuration error; it
// should have been caught by Validate at startup.
func (c *Catalog) Select(agent AgentKind, phase dialogue.Phase, lang string) (string, error) {
	byLang, ok := c.instructions[instructionKey(agent, phase)]
	if !ok {
		return "", fmt.Errorf("no instruction configured for agent %q phase %q", agent, phase)
	}
	if text, ok := byLang[c.NormalizeLanguage(lang)]; ok && text != "" {
		return text, nil
	}
	if text, ok := byLang[c.defaultLanguage]; ok && text != "" {
		return text, nil
	}
	return "", fmt.Errorf("no instruction for agent %q phase %q in default language %q", agent, phase, c.defaultLanguage)
}

// CrisisReply returns the fixed crisis-mode reply for a language.
func (c *Catalog) CrisisReply(lang string) string {
	return c.pick(c.crisis, lang)
}

// FallbackReply is substituted when the completion service fails.
func (c *Catalog) FallbackReply(lang string) string {
	return c.pick(c.fallback, lang)
}

// RepeatPrompt is returned for empty or unintelligible input.
func (c *Catalog) RepeatPrompt(lang string) string {
	return c.pick(c.repeat, lang)
}

// Welcome is the session-start greeting.
func (c *Catalog) Welcome(lang string) string {
	return c.pick(c.welcome, lang)
}

// Closing is the fixed end-of-session message.
func (c *Catalog) Closing(lang string) string {
	return c.pick(c.closing, lang)
}

// SummaryInstruction drives the end-of-session summary call.
func (c *Catalog) SummaryInstruction(lang string) string {
	return c.pick(c.summary, lang)
}

// Verse picks a comfort or empowerment verse for a style. The pick
// rotates deterministically with n so tests stay stable.
func (c *Catalog) Verse(style dialogue.Style, lang string, n int) string {
	byLang, ok := c.verses[style]
	if !ok {
		return ""
	}
	list := byLang[c.NormalizeLanguage(lang)]
	if len(list) == 0 {
		list = byLang[c.defaultLanguage]
	}
	if len(list) == 0 {
		return ""
	}
	if n < 0 {
		n = -n
	}
	return list[n%len(list)]
}

func (c *Catalog) pick(m map[string]string, lang string) string {
	if text, ok := m[c.NormalizeLanguage(lang)]; ok && text != "" {
		return text
	}
	return m[c.defaultLanguage]
}

// Validate fails fast on any hole the orchestrator would hit at request
// time: every (agent, phase) pair and every fixed reply must exist in
// the default language.
func (c *Catalog) Validate() error {
	if c.defaultLanguage == "" {
		return fmt.Errorf("prompt catalog has no default language")
	}
	if !c.Supported(c.defaultLanguage) {
		return fmt.Errorf("default language %q is not in the supported set %v", c.defaultLanguage, c.languages)
	}

	for _, agent := range []AgentKind{AgentCompanion, AgentJournal, AgentCoach, AgentGuide} {
		for _, phase := range phasesForAgent(agent) {
			byLang, ok := c.instructions[instructionKey(agent, phase)]
			if !ok || byLang[c.defaultLanguage] == "" {
				return fmt.Errorf("missing instruction for agent %q phase %q in default language %q", agent, phase, c.defaultLanguage)
			}
		}
	}

	fixed := map[string]map[string]string{
		"crisis reply":        c.crisis,
		"fallback reply":      c.fallback,
		"repeat prompt":       c.repeat,
		"welcome message":     c.welcome,
		"closing message":     c.closing,
		"summary instruction": c.summary,
	}
	for name, m := range fixed {
		if m[c.defaultLanguage] == "" {
			return fmt.Errorf("missing %s in default language %q", name, c.defaultLanguage)
		}
	}
	return nil
}
