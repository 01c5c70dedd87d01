package statej

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Language returns the instance's configured language tag.
func (in *Instance) Language() string { return in.cfg.language }

// Translate returns the configured translation for key, falling back to
// the key itself when no entry exists.
func (in *Instance) Translate(key string) string {
	if v, ok := in.cfg.translations[key]; ok {
		return v
	}
	return key
}

// LoadTranslations reads a TOML file of key = "text" pairs, for passing to
// WithTranslations.
func LoadTranslations(path string) (map[string]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("statej: read translations %s: %w", path, err)
	}
	var m map[string]string
	if err := toml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("statej: parse translations %s: %w", path, err)
	}
	return m, nil
}
