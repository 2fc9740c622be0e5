package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/PrayerJournal/services"
)

// GetPeople lists the roster with prayer counts
// GET /api/people
func GetPeople(c *gin.Context) {
	people, err := services.GetPrayerStore().GetPeopleWithCounts(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch people")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch people"})
		return
	}

	c.JSON(http.StatusOK, people)
}
