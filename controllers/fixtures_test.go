package controllers

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/PrayerJournal/models"
	"github.com/PrayerJournal/services"
)

var fixedNow = time.Date(2026, time.January, 4, 9, 30, 0, 0, time.UTC)

var prayerColumns = []string{"id", "person_name", "author_name", "content", "created_at"}

// MockRoster is a short roster used across the controller tests
func MockRoster(t *testing.T) *services.Roster {
	r, err := services.NewRoster([]models.Person{
		{Name: "Grant", Scripture: "Because the one who sows to the Spirit will reap eternal life.", Reference: "Galatians 6:8"},
		{Name: "Kaitlin", Scripture: "Now if any of you lacks wisdom, he should ask God.", Reference: "James 1:5"},
		{Name: "Ricky", Scripture: "Look at the sky and count the stars.", Reference: "Genesis 15:1-6"},
	})
	if err != nil {
		t.Fatalf("Failed to build roster: %v", err)
	}
	return r
}

// MockPrayerRows returns prayer rows for the given person, one per content
func MockPrayerRows(person string, contents ...string) *sqlmock.Rows {
	rows := sqlmock.NewRows(prayerColumns)
	for i, content := range contents {
		rows.AddRow(int64(i+1), person, "Jane", content, fixedNow.Add(time.Duration(i)*time.Minute))
	}
	return rows
}
