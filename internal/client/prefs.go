package client

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/haf-search-api/internal/models"
)

// Platform link bases for opening a post in a Hive frontend
var Platforms = map[string]string{
	"peakd":     "https://peakd.com",
	"ecency":    "https://ecency.com",
	"hive.blog": "https://hive.blog",
}

// PostURL builds the link to a post on the chosen platform. Unknown
// platforms fall back to peakd.
func PostURL(platform string, post models.Post) string {
	base, ok := Platforms[platform]
	if !ok {
		base = Platforms["peakd"]
	}
	return fmt.Sprintf("%s/@%s/%s", base, post.Author, post.Permlink)
}

// Preferences are the persisted client-side settings. They sit outside the
// search pipeline: loaded once at startup, saved on change, never consulted
// by Search itself. Keys are fixed for compatibility with earlier clients.
type Preferences struct {
	Keywords []string `json:"hive_keywords"`
	Platform string   `json:"hive_platform"`
	Theme    string   `json:"hive_theme"`
}

// DefaultPreferences returns the out-of-the-box settings
func DefaultPreferences() *Preferences {
	return &Preferences{
		Keywords: []string{},
		Platform: "peakd",
		Theme:    "light",
	}
}

// LoadPreferences reads preferences from the given file. A missing or
// unreadable file yields the defaults; broken preferences must never block
// a search.
func LoadPreferences(path string) *Preferences {
	prefs := DefaultPreferences()

	data, err := os.ReadFile(path)
	if err != nil {
		return prefs
	}
	if err := json.Unmarshal(data, prefs); err != nil {
		return DefaultPreferences()
	}
	if _, ok := Platforms[prefs.Platform]; !ok {
		prefs.Platform = "peakd"
	}
	return prefs
}

// Save writes preferences to the given file
func (p *Preferences) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create preferences directory: %w", err)
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	return nil
}
