// Package templates loads the role template catalog from a directory of
// JSON definition files. The catalog is read-only after load and safely
// shared; changing templates requires a process restart.
package templates

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vtstv/EventBot/internal/domain/entities"
)

// Catalog maps template names to their role schemas.
type Catalog struct {
	templates map[string]*entities.RoleTemplate
}

// Load reads every *.json file in dir. The template name is the file name
// without extension. Malformed files are skipped with a warning, never
// fatal; a missing directory yields an empty catalog.
func Load(dir string, logger *log.Logger) (*Catalog, error) {
	catalog := &Catalog{templates: make(map[string]*entities.RoleTemplate)}
	files, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn("template directory missing, no templates loaded", "dir", dir)
			return catalog, nil
		}
		return nil, fmt.Errorf("read template dir: %w", err)
	}
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".json") {
			continue
		}
		name := strings.TrimSuffix(file.Name(), ".json")
		data, err := os.ReadFile(filepath.Join(dir, file.Name()))
		if err != nil {
			logger.Warn("could not read template file", "file", file.Name(), "error", err)
			continue
		}
		roles, err := decodeRoles(data)
		if err != nil {
			logger.Warn("skipping malformed template", "file", file.Name(), "error", err)
			continue
		}
		catalog.templates[name] = &entities.RoleTemplate{Name: name, Roles: roles}
		logger.Info("loaded template", "name", name, "roles", len(roles))
	}
	return catalog, nil
}

func (c *Catalog) Get(name string) (*entities.RoleTemplate, bool) {
	t, ok := c.templates[name]
	return t, ok
}

func (c *Catalog) Len() int {
	return len(c.templates)
}

// Names returns the template names, sorted for stable presentation.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.templates))
	for name := range c.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type roleDef struct {
	Emoji string `json:"emoji"`
	Limit int    `json:"limit"`
}

// decodeRoles parses {"roles": {name: {emoji, limit}, ...}} preserving the
// declared role order, which a plain map unmarshal would lose. Rendering and
// button order depend on it.
func decodeRoles(data []byte) ([]entities.Role, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}
	var roles []entities.Role
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := keyTok.(string)
		if key != "roles" {
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, err
			}
			continue
		}
		if err := expectDelim(dec, '{'); err != nil {
			return nil, err
		}
		for dec.More() {
			nameTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			roleName, _ := nameTok.(string)
			var def roleDef
			if err := dec.Decode(&def); err != nil {
				return nil, err
			}
			if roleName == "" || def.Limit <= 0 {
				return nil, fmt.Errorf("role %q: limit must be a positive integer", roleName)
			}
			roles = append(roles, entities.Role{Name: roleName, Emoji: def.Emoji, Limit: def.Limit})
		}
		if _, err := dec.Token(); err != nil { // closing }
			return nil, err
		}
	}
	if len(roles) == 0 {
		return nil, fmt.Errorf("template defines no roles")
	}
	return roles, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}
