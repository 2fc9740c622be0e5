package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/PrayerJournal/services"
)

// Ping reports whether the service and its database are reachable
func Ping(c *gin.Context) {
	if err := services.GetPrayerStore().Ping(c.Request.Context()); err != nil {
		log.Warn().Err(err).Msg("Health check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Database unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
