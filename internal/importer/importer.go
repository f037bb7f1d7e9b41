// Package importer reads exercise catalogs exported by the fitness backend.
package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sadopc/fitlog/internal/catalog"
)

// DefaultCategory is used for entries that carry no category at all.
const DefaultCategory = "General"

type rawEntry struct {
	ID           int64         `json:"id"`
	Name         string        `json:"name"`
	BodyPart     string        `json:"bodyPart"`
	Category     categoryField `json:"category"`
	CategoryName string        `json:"categoryName"`
	Equipment    string        `json:"equipment"`
	Description  string        `json:"description"`
}

// categoryField accepts either "Strength" or {"id": 1, "name": "Strength"}.
type categoryField string

func (c *categoryField) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = categoryField(s)
		return nil
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("category: %w", err)
	}
	*c = categoryField(obj.Name)
	return nil
}

func (r rawEntry) category() string {
	if s := strings.TrimSpace(r.CategoryName); s != "" {
		return s
	}
	if s := strings.TrimSpace(string(r.Category)); s != "" {
		return s
	}
	return DefaultCategory
}

// DecodeCatalog reads a catalog that is either a bare JSON array or an
// object holding the array under "content". Entries without a name are
// dropped.
func DecodeCatalog(r io.Reader) ([]catalog.Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	raw, err := unwrap(data)
	if err != nil {
		return nil, err
	}

	out := make([]catalog.Entry, 0, len(raw))
	for _, e := range raw {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			continue
		}
		out = append(out, catalog.Entry{
			ID:          e.ID,
			Name:        name,
			BodyPart:    strings.TrimSpace(e.BodyPart),
			Category:    e.category(),
			Equipment:   strings.TrimSpace(e.Equipment),
			Description: strings.TrimSpace(e.Description),
		})
	}
	return out, nil
}

// LoadFile decodes the catalog stored at path.
func LoadFile(path string) ([]catalog.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return DecodeCatalog(f)
}

func unwrap(data []byte) ([]rawEntry, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("decode catalog: empty document")
	}

	var entries []rawEntry
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, fmt.Errorf("decode catalog: %w", err)
		}
		return entries, nil
	}

	var envelope struct {
		Content *[]rawEntry `json:"content"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if envelope.Content == nil {
		return nil, fmt.Errorf("decode catalog: no content array")
	}
	return *envelope.Content, nil
}
