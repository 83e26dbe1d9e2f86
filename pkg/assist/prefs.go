package assist

import (
	"encoding/json"
	"log"
	"strings"

	"github.com/Kaidooo2024/momentum.day/pkg/store"
)

const prefsKey = "assist_preferences"

// Preferences holds what the collaborator has learned about how the
// user likes to work. Free-form keys, persisted alongside the records.
type Preferences map[string]string

// LoadPreferences reads the saved preferences. Corrupt or missing data
// yields an empty set; remembering is best effort.
func LoadPreferences(kv store.KV) Preferences {
	raw, ok := kv.Get(prefsKey)
	if !ok || raw == "" {
		return Preferences{}
	}
	var p Preferences
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		log.Printf("assist: discarding corrupt preferences: %v", err)
		return Preferences{}
	}
	return p
}

// SavePreferences writes the preferences back to local storage.
func SavePreferences(kv store.KV, p Preferences) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return kv.Set(prefsKey, string(data))
}

type prefsEnvelope struct {
	Action      string            `json:"action"`
	Preferences map[string]string `json:"preferences"`
	Message     string            `json:"message"`
}

// parseEnvelope recognizes an update_preferences reply. The model may
// wrap JSON in a fenced code block; anything that is not a well-formed
// envelope is treated as plain text.
func parseEnvelope(reply string) (prefsEnvelope, bool) {
	text := strings.TrimSpace(reply)
	if fenced := strings.TrimPrefix(text, "```json"); fenced != text {
		text = strings.TrimSuffix(strings.TrimSpace(fenced), "```")
	} else if fenced := strings.TrimPrefix(text, "```"); fenced != text {
		text = strings.TrimSuffix(strings.TrimSpace(fenced), "```")
	}
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "{") {
		return prefsEnvelope{}, false
	}
	var env prefsEnvelope
	if err := json.Unmarshal([]byte(text), &env); err != nil {
		return prefsEnvelope{}, false
	}
	if env.Action != "update_preferences" || len(env.Preferences) == 0 {
		return prefsEnvelope{}, false
	}
	return env, true
}
