package knowledge

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	logx "github.com/jharkhand-tourism-mvp/server/pkg/logger"
)

// Place holds the static facts known about a destination.
type Place struct {
	Description string `json:"description"`
	BestTime    string `json:"best_time"`
	Activities  string `json:"activities"`
}

// Entry pairs a lowercase place name with its facts.
type Entry struct {
	Name  string
	Place Place
}

// Interest maps an interest tag to an ordered list of place names.
type Interest struct {
	Name   string
	Places []string
}

// Base is the chatbot knowledge base: places in file order plus interest
// tags. It is built once at startup and never mutated afterwards, so it is
// safe to share across requests without synchronisation.
type Base struct {
	names     []string
	places    map[string]Place
	interests []Interest
}

// DefaultInterests returns the built-in interest tags in matching order.
func DefaultInterests() []Interest {
	return []Interest{
		{Name: "nature", Places: []string{"netarhat", "patratu", "hundru"}},
		{Name: "wildlife", Places: []string{"betla"}},
		{Name: "pilgrimage", Places: []string{"deoghar"}},
	}
}

// New builds a Base from ordered entries and interest tags. Place names are
// lowercased; lookup order follows the order of entries.
func New(entries []Entry, interests []Interest) *Base {
	b := &Base{
		names:     make([]string, 0, len(entries)),
		places:    make(map[string]Place, len(entries)),
		interests: interests,
	}
	for _, e := range entries {
		name := strings.ToLower(e.Name)
		if _, ok := b.places[name]; !ok {
			b.names = append(b.names, name)
		}
		b.places[name] = e.Place
	}
	return b
}

// Load reads the places file and builds a Base with the default interest
// tags. A missing file is tolerated: the chatbot runs with an empty
// knowledge base and the absence is logged as a warning.
func Load(path string) (*Base, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logx.Warn().Str("path", path).Msg("places file not found, chatbot knowledge base will be empty")
			return New(nil, DefaultInterests()), nil
		}
		return nil, fmt.Errorf("read places file: %w", err)
	}

	entries, err := parsePlaces(data)
	if err != nil {
		return nil, fmt.Errorf("parse places file %s: %w", path, err)
	}
	return New(entries, DefaultInterests()), nil
}

// parsePlaces decodes the JSON object while preserving key order. Lookup
// order is behavioural (first substring match wins), so the file order must
// survive decoding.
func parsePlaces(data []byte) ([]Entry, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected a JSON object, got %v", tok)
	}

	var entries []Entry
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected a string key, got %v", keyTok)
		}

		var p Place
		if err := dec.Decode(&p); err != nil {
			return nil, fmt.Errorf("decode place %q: %w", name, err)
		}
		entries = append(entries, Entry{Name: name, Place: p})
	}

	return entries, nil
}

// Get returns the place facts for a lowercase name.
func (b *Base) Get(name string) (Place, bool) {
	p, ok := b.places[name]
	return p, ok
}

// Names returns all place names in stored order. The returned slice must not
// be modified.
func (b *Base) Names() []string {
	return b.names
}

// Interests returns the interest tags in stored order.
func (b *Base) Interests() []Interest {
	return b.interests
}

// Len returns the number of known places.
func (b *Base) Len() int {
	return len(b.names)
}
