package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PrayerJournal/models"
)

func TestLoadRosterDefault(t *testing.T) {
	r, err := LoadRoster("")
	require.NoError(t, err)

	assert.Equal(t, 12, r.Len())

	people := r.People()
	assert.Equal(t, "Grant", people[0].Name)
	assert.Equal(t, "Galatians 6:8", people[0].Reference)
	assert.Equal(t, "Hunter", people[len(people)-1].Name)

	for _, p := range people {
		assert.NotEmpty(t, p.Scripture, "scripture for %s", p.Name)
		assert.NotEmpty(t, p.Reference, "reference for %s", p.Name)
	}
}

func TestLoadRosterFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.yaml")
	data := `
- name: Ann
  scripture: "The LORD is my shepherd; I shall not want."
  reference: Psalm 23:1
- name: Ben
  scripture: Jesus wept.
  reference: John 11:35
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	r, err := LoadRoster(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ann", "Ben"}, r.Names())

	_, err = LoadRoster(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestNewRosterValidation(t *testing.T) {
	tests := []struct {
		name   string
		people []models.Person
	}{
		{name: "empty roster", people: nil},
		{name: "blank name", people: []models.Person{{Name: "  "}}},
		{name: "duplicate name", people: []models.Person{{Name: "Ann"}, {Name: "Ann"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRoster(tt.people)
			assert.Error(t, err)
		})
	}

	_, err := ParseRoster([]byte("name: [unclosed"))
	assert.Error(t, err)
}

func TestRosterLookup(t *testing.T) {
	r, err := NewRoster([]models.Person{
		{Name: "Grant", Scripture: "s1", Reference: "r1"},
		{Name: "Katie", Scripture: "s2", Reference: "r2"},
	})
	require.NoError(t, err)

	p, ok := r.Lookup("Katie")
	assert.True(t, ok)
	assert.Equal(t, "r2", p.Reference)

	_, ok = r.Lookup("katie")
	assert.False(t, ok, "lookup is case-sensitive")

	_, ok = r.Lookup("NoSuchPerson")
	assert.False(t, ok)
}

func TestRosterPeopleIsACopy(t *testing.T) {
	r, err := NewRoster([]models.Person{{Name: "Grant"}})
	require.NoError(t, err)

	people := r.People()
	people[0].Name = "Changed"

	assert.Equal(t, "Grant", r.People()[0].Name)
	_, ok := r.Lookup("Grant")
	assert.True(t, ok)
}
