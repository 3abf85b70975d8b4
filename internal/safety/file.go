package safety

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadLists reads a JSON detection vocabulary override. Fields left
// empty in the file keep the built-in defaults, mirroring how the
// prompt catalog overlays.
func LoadLists(path string) (Lists, error) {
	var lists Lists
	if path == "" {
		return lists, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Lists{}, fmt.Errorf("read safety lists: %w", err)
	}
	var payload struct {
		Phrases   []string `json:"phrases"`
		Keywords  []string `json:"keywords"`
		Negations []string `json:"negations"`
		Dangers   []string `json:"dangers"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return Lists{}, fmt.Errorf("parse safety lists %s: %w", path, err)
	}
	lists.Phrases = payload.Phrases
	lists.Keywords = payload.Keywords
	lists.Negations = payload.Negations
	lists.Dangers = payload.Dangers
	return lists, nil
}
