package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/PrayerJournal/models"
	"github.com/PrayerJournal/services"
)

// GetPrayers lists the prayers posted for a person, oldest first
// GET /api/prayers/:name
func GetPrayers(c *gin.Context) {
	name := c.Param("name")

	prayers, err := services.GetPrayerStore().GetPrayers(c.Request.Context(), name)
	if err != nil {
		log.Error().Err(err).Str("person", name).Msg("Failed to fetch prayers")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch prayers"})
		return
	}

	log.Debug().Str("person", name).Int("found", len(prayers)).Msg("Listed prayers")
	c.JSON(http.StatusOK, prayers)
}

// CreatePrayer posts a prayer for a roster person
// POST /api/prayers/:name
func CreatePrayer(c *gin.Context) {
	name := c.Param("name")

	var prayerData models.PrayerCreate
	if err := c.ShouldBindJSON(&prayerData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	prayer, err := services.GetPrayerStore().CreatePrayer(c.Request.Context(), name, prayerData.Author_Name, prayerData.Content)
	switch {
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err)})
		return
	case errors.Is(err, services.ErrPersonNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Person not found"})
		return
	case err != nil:
		log.Error().Err(err).Str("person", name).Msg("Failed to create prayer")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create prayer"})
		return
	}

	log.Info().Str("person", name).Str("author", prayer.Author_Name).Int64("prayerId", prayer.Prayer_ID).Msg("Prayer created")
	c.JSON(http.StatusCreated, prayer)
}

// validationMessage strips the sentinel prefix so clients see only the reason
func validationMessage(err error) string {
	return strings.TrimPrefix(err.Error(), services.ErrValidation.Error()+": ")
}
