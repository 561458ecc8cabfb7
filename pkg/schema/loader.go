package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parse decodes a single wizard definition from JSON or YAML. The source name
// is used in error messages only. Labels, descriptions, and placeholders are
// sanitized to plain text before the definition is validated.
func Parse(data []byte, source string) (Wizard, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Wizard{}, fmt.Errorf("schema: file %s is empty", source)
	}

	var wizard Wizard
	if looksLikeJSON(data) {
		if err := json.Unmarshal(data, &wizard); err != nil {
			return Wizard{}, fmt.Errorf("schema: parse %s: %w", source, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &wizard); err != nil {
			return Wizard{}, fmt.Errorf("schema: parse %s: %w", source, err)
		}
	}

	sanitizeWizard(&wizard)
	if err := wizard.Validate(); err != nil {
		return Wizard{}, fmt.Errorf("schema: invalid definition in %s: %w", source, err)
	}
	return wizard, nil
}

// Store keeps parsed wizard definitions keyed by id. It is safe for
// concurrent readers when treated as immutable after construction.
type Store struct {
	wizards map[string]Wizard
}

// LoadFS walks the provided filesystem and parses JSON/YAML wizard
// definition files. When fsys is nil or no definition files are present, the
// returned store is empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{wizards: make(map[string]Wizard)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDefinitionFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("schema: read %s: %w", path, err)
		}

		wizard, err := Parse(data, path)
		if err != nil {
			return err
		}
		if _, exists := store.wizards[wizard.ID]; exists {
			return fmt.Errorf("schema: duplicate wizard %q (file %s)", wizard.ID, path)
		}
		store.wizards[wizard.ID] = wizard
		return nil
	})
	if err != nil {
		return nil, err
	}

	return store, nil
}

// Wizard returns the definition for the supplied id.
func (s *Store) Wizard(id string) (Wizard, bool) {
	if s == nil {
		return Wizard{}, false
	}
	wizard, ok := s.wizards[id]
	return wizard, ok
}

// Empty reports whether the store holds any definitions.
func (s *Store) Empty() bool {
	return s == nil || len(s.wizards) == 0
}

// IDs lists the loaded wizard ids.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.wizards))
	for id := range s.wizards {
		ids = append(ids, id)
	}
	return ids
}

func isDefinitionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func looksLikeJSON(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[')
}
