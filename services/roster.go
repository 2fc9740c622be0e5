package services

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/PrayerJournal/models"
)

//go:embed data/roster.yaml
var defaultRoster []byte

// Roster is the fixed, ordered list of people that can receive prayers.
// It is built once at startup and never mutated afterwards.
type Roster struct {
	people []models.Person
	index  map[string]int
}

var roster *Roster

// InitRoster loads the roster from path, or the embedded default when path is empty
func InitRoster(path string) error {
	r, err := LoadRoster(path)
	if err != nil {
		return err
	}
	roster = r
	log.Info().Int("people", len(r.people)).Msg("Roster loaded")
	return nil
}

// GetRoster returns the roster loaded by InitRoster
func GetRoster() *Roster {
	return roster
}

// LoadRoster reads a YAML roster file. An empty path selects the embedded roster.
func LoadRoster(path string) (*Roster, error) {
	data := defaultRoster
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read roster %q: %w", path, err)
		}
		data = b
	}
	return ParseRoster(data)
}

// ParseRoster decodes a YAML list of people and validates it
func ParseRoster(data []byte) (*Roster, error) {
	var people []models.Person
	if err := yaml.Unmarshal(data, &people); err != nil {
		return nil, fmt.Errorf("parse roster: %w", err)
	}
	return NewRoster(people)
}

// NewRoster builds a roster from people in display order.
// Names must be non-blank and unique.
func NewRoster(people []models.Person) (*Roster, error) {
	if len(people) == 0 {
		return nil, fmt.Errorf("roster is empty")
	}

	r := &Roster{
		people: make([]models.Person, len(people)),
		index:  make(map[string]int, len(people)),
	}
	for i, p := range people {
		if strings.TrimSpace(p.Name) == "" {
			return nil, fmt.Errorf("roster entry %d has no name", i)
		}
		if _, dup := r.index[p.Name]; dup {
			return nil, fmt.Errorf("duplicate roster name %q", p.Name)
		}
		r.people[i] = p
		r.index[p.Name] = i
	}
	return r, nil
}

// People returns a copy of the roster in display order
func (r *Roster) People() []models.Person {
	out := make([]models.Person, len(r.people))
	copy(out, r.people)
	return out
}

// Names returns the roster names in display order
func (r *Roster) Names() []string {
	names := make([]string, len(r.people))
	for i, p := range r.people {
		names[i] = p.Name
	}
	return names
}

// Lookup finds a person by exact name
func (r *Roster) Lookup(name string) (models.Person, bool) {
	i, ok := r.index[name]
	if !ok {
		return models.Person{}, false
	}
	return r.people[i], true
}

func (r *Roster) Len() int {
	return len(r.people)
}
