package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"labrise-backend/services"
	"labrise-backend/store"
	"labrise-backend/utils"
)

// businessID reads the partition id placed in the context by RequireBusiness.
func businessID(c *gin.Context) (string, bool) {
	id := c.GetString("businessId")
	if id == "" {
		utils.RespondWithError(c, http.StatusInternalServerError, "Business ID not found in context")
		return "", false
	}
	return id, true
}

// respondStoreError maps a storage failure to an HTTP response. Corruption is
// reported explicitly rather than masked as a generic failure.
func respondStoreError(c *gin.Context, err error) {
	if store.IsCorrupt(err) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Stored data is corrupt: "+err.Error())
		return
	}
	utils.RespondWithError(c, http.StatusInternalServerError, "Storage error")
}

// respondServiceError maps engine errors onto status codes.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.RespondWithError(c, http.StatusNotFound, "Record not found")
	case services.IsInvalidTransition(err):
		utils.RespondWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrRemovalNotAllowed):
		utils.RespondWithError(c, http.StatusConflict, "Completed items cannot be removed from the queue")
	default:
		respondStoreError(c, err)
	}
}
