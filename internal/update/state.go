package update

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sandeepkv93/taskpager/internal/model"
)

// SessionState survives restarts. SynthesisAnchor pins the day stable due dates
// are computed from, so they do not drift between launches.
type SessionState struct {
	SynthesisAnchor string `json:"synthesis_anchor"`
}

// Anchor returns the stored anchor day, or now's day when none is stored.
func (s SessionState) Anchor(now time.Time) time.Time {
	if day, err := model.ParseDueDate(s.SynthesisAnchor); err == nil {
		return day
	}
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func LoadSessionState(path string) (SessionState, error) {
	var state SessionState
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return state, nil
	}
	raw, err := os.ReadFile(trimmed)
	if err != nil {
		if os.IsNotExist(err) {
			return state, nil
		}
		return state, err
	}
	if strings.TrimSpace(string(raw)) == "" {
		return state, nil
	}
	if err := json.Unmarshal(raw, &state); err != nil {
		return SessionState{}, err
	}
	return state, nil
}

// SaveSessionState writes through a temp file and rename.
func SaveSessionState(path string, state SessionState) error {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil
	}
	dir := filepath.Dir(trimmed)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	payload, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	tmp := trimmed + ".tmp"
	if err := os.WriteFile(tmp, append(payload, '\n'), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, trimmed)
}
