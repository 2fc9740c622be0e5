package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/doug-martin/goqu/v9"

	"github.com/PrayerJournal/models"
)

const (
	PrayersTable = "prayers"

	MaxAuthorNameLength = 100
	MaxContentLength    = 3000
)

var (
	// ErrValidation is returned when a required field is missing, blank or too long
	ErrValidation = errors.New("validation failed")
	// ErrPersonNotFound is returned when a prayer names someone outside the roster
	ErrPersonNotFound = errors.New("person not found")
	// ErrStorage wraps any failure of the underlying database
	ErrStorage = errors.New("storage failure")
)

// PrayerStore owns the persisted prayers. Prayers are append-only.
type PrayerStore interface {
	GetPeopleWithCounts(ctx context.Context) ([]models.PersonWithCount, error)
	GetPrayers(ctx context.Context, personName string) ([]models.Prayer, error)
	CreatePrayer(ctx context.Context, personName, authorName, content string) (models.Prayer, error)
	Ping(ctx context.Context) error
}

// SQLPrayerStore keeps prayers in a single SQL table. It works with both the
// postgres and sqlite3 goqu dialects.
type SQLPrayerStore struct {
	db     *goqu.Database
	roster *Roster
	now    func() time.Time
}

var _ PrayerStore = (*SQLPrayerStore)(nil)

var prayerStore PrayerStore

// InitPrayerStore sets the store used by the API handlers
func InitPrayerStore(store PrayerStore) {
	prayerStore = store
}

// GetPrayerStore returns the store set by InitPrayerStore
func GetPrayerStore() PrayerStore {
	return prayerStore
}

func NewSQLPrayerStore(db *goqu.Database, roster *Roster) *SQLPrayerStore {
	return &SQLPrayerStore{
		db:     db,
		roster: roster,
		now:    time.Now,
	}
}

// WithClock replaces the time source used to stamp created_at
func (s *SQLPrayerStore) WithClock(now func() time.Time) *SQLPrayerStore {
	s.now = now
	return s
}

// GetPeopleWithCounts returns every roster person, in roster order, with the
// number of prayers posted for them.
func (s *SQLPrayerStore) GetPeopleWithCounts(ctx context.Context) ([]models.PersonWithCount, error) {
	var counts []models.PrayerCount
	err := s.db.From(PrayersTable).
		Select(
			goqu.C("person_name"),
			goqu.COUNT("*").As("prayer_count"),
		).
		Where(goqu.C("person_name").In(s.roster.Names())).
		GroupBy(goqu.C("person_name")).
		ScanStructsContext(ctx, &counts)
	if err != nil {
		return nil, fmt.Errorf("%w: count prayers: %v", ErrStorage, err)
	}

	countByName := make(map[string]int, len(counts))
	for _, row := range counts {
		countByName[row.Person_Name] = row.Prayer_Count
	}

	people := s.roster.People()
	result := make([]models.PersonWithCount, len(people))
	for i, p := range people {
		result[i] = models.PersonWithCount{
			Person:       p,
			Prayer_Count: countByName[p.Name],
		}
	}
	return result, nil
}

// GetPrayers lists the prayers for personName, oldest first. Names outside the
// roster are not an error; they simply have no prayers.
func (s *SQLPrayerStore) GetPrayers(ctx context.Context, personName string) ([]models.Prayer, error) {
	var prayers []models.Prayer
	err := s.db.From(PrayersTable).
		Where(goqu.C("person_name").Eq(personName)).
		Order(goqu.C("created_at").Asc(), goqu.C("id").Asc()).
		ScanStructsContext(ctx, &prayers)
	if err != nil {
		return nil, fmt.Errorf("%w: list prayers: %v", ErrStorage, err)
	}

	if prayers == nil {
		prayers = []models.Prayer{}
	}
	return prayers, nil
}

// CreatePrayer validates and appends one prayer and returns the stored row.
// Field checks run before the roster check so that a bad body is reported as
// a validation error even for an unknown person.
func (s *SQLPrayerStore) CreatePrayer(ctx context.Context, personName, authorName, content string) (models.Prayer, error) {
	authorName, content, err := ValidatePrayer(authorName, content)
	if err != nil {
		return models.Prayer{}, err
	}

	if _, ok := s.roster.Lookup(personName); !ok {
		return models.Prayer{}, fmt.Errorf("%w: %q", ErrPersonNotFound, personName)
	}

	row := models.Prayer{
		Person_Name: personName,
		Author_Name: authorName,
		Content:     content,
		Created_At:  s.now().UTC().Truncate(time.Microsecond),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Prayer{}, fmt.Errorf("%w: begin: %v", ErrStorage, err)
	}

	var created models.Prayer
	err = tx.Wrap(func() error {
		id, err := s.insert(ctx, tx, row)
		if err != nil {
			return err
		}

		found, err := tx.From(PrayersTable).
			Where(goqu.C("id").Eq(id)).
			ScanStructContext(ctx, &created)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("prayer %d missing after insert", id)
		}
		return nil
	})
	if err != nil {
		return models.Prayer{}, fmt.Errorf("%w: insert prayer: %v", ErrStorage, err)
	}

	return created, nil
}

// insert writes row and returns its generated id. sqlite3 has no RETURNING
// support in goqu, so it falls back to LastInsertId.
func (s *SQLPrayerStore) insert(ctx context.Context, tx *goqu.TxDatabase, row models.Prayer) (int64, error) {
	insert := tx.Insert(PrayersTable).Rows(row)

	if s.db.Dialect() == "postgres" {
		var id int64
		if _, err := insert.Returning("id").Executor().ScanValContext(ctx, &id); err != nil {
			return 0, err
		}
		return id, nil
	}

	res, err := insert.Executor().ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *SQLPrayerStore) Ping(ctx context.Context) error {
	pinger, ok := s.db.Db.(interface {
		PingContext(context.Context) error
	})
	if !ok {
		return nil
	}
	if err := pinger.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: ping: %v", ErrStorage, err)
	}
	return nil
}

// ValidatePrayer trims both fields and checks they are present and within limits
func ValidatePrayer(authorName, content string) (string, string, error) {
	authorName = strings.TrimSpace(authorName)
	content = strings.TrimSpace(content)

	if authorName == "" || content == "" {
		return "", "", fmt.Errorf("%w: author_name and content are required", ErrValidation)
	}
	if utf8.RuneCountInString(authorName) > MaxAuthorNameLength {
		return "", "", fmt.Errorf("%w: author_name exceeds maximum length of %d characters", ErrValidation, MaxAuthorNameLength)
	}
	if utf8.RuneCountInString(content) > MaxContentLength {
		return "", "", fmt.Errorf("%w: content exceeds maximum length of %d characters", ErrValidation, MaxContentLength)
	}
	return authorName, content, nil
}
