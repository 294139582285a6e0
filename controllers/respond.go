package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"ClinicCare360/models"
)

// respondError translates an error kind into a status code and a
// human-readable message. Unrecognized errors are storage failures: they are
// logged and attached to the gin context for the error-reporting middleware,
// and the caller only sees the generic fallback message.
func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found."})
	case errors.Is(err, models.ErrNothingMatched):
		c.JSON(http.StatusNotFound, gin.H{"error": "No records found for this patient."})
	case errors.Is(err, models.ErrDuplicateVisit):
		c.JSON(http.StatusConflict, gin.H{"error": "A visit for this patient on this date already exists."})
	case errors.Is(err, models.ErrMissingInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required information for update."})
	case errors.Is(err, models.ErrInvalidField):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid value for one or more patient fields."})
	case errors.Is(err, models.ErrInvalidRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Start date and end date are required."})
	default:
		log.Println("Error from storage:", err)
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
