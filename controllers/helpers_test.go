package controllers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/gin-gonic/gin"

	"github.com/PrayerJournal/services"
)

// SetupTestDB backs the global prayer store with a sqlmock database
func SetupTestDB(t *testing.T) (sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}

	store := services.NewSQLPrayerStore(goqu.New("postgres", db), MockRoster(t)).
		WithClock(func() time.Time { return fixedNow })

	originalStore := services.GetPrayerStore()
	services.InitPrayerStore(store)

	cleanup := func() {
		db.Close()
		services.InitPrayerStore(originalStore)
	}

	return mock, cleanup
}

// SetupTestContext creates a test Gin context with a response recorder
func SetupTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

// NewJSONRequest sets a JSON request on c
func NewJSONRequest(c *gin.Context, method, target string, body interface{}) {
	jsonData, _ := json.Marshal(body)
	c.Request = httptest.NewRequest(method, target, bytes.NewBuffer(jsonData))
	c.Request.Header.Set("Content-Type", "application/json")
}
