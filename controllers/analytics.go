// controllers/analytics.go
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"labrise-backend/services"
	"labrise-backend/utils"
)

// AnalyticsController serves the derived read-only views.
type AnalyticsController struct {
	Analytics *services.AnalyticsService
	History   *services.HistoryService
}

// AnnotateHistoryInput defines the expected JSON structure for annotating a
// history entry
type AnnotateHistoryInput struct {
	Notes  string `json:"notes"`
	Rating *int   `json:"rating" binding:"omitempty,min=1,max=5"`
}

// GetDashboard returns the revenue, ranking, activity, and queue overview
func (ac *AnalyticsController) GetDashboard(c *gin.Context) {
	bid, ok := businessID(c)
	if !ok {
		return
	}

	dashboard, err := ac.Analytics.Dashboard(c.Request.Context(), bid)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// GetRevenue returns the trailing-period revenue, ?days=N (default 7)
func (ac *AnalyticsController) GetRevenue(c *gin.Context) {
	bid, ok := businessID(c)
	if !ok {
		return
	}

	days := 7
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "days must be a non-negative integer")
			return
		}
		days = parsed
	}

	revenue, err := ac.Analytics.RevenueByPeriod(c.Request.Context(), bid, days)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days, "revenue": revenue})
}

// GetHistory returns the full completed-work log
func (ac *AnalyticsController) GetHistory(c *gin.Context) {
	bid, ok := businessID(c)
	if !ok {
		return
	}

	history, err := ac.History.ForBusiness(c.Request.Context(), bid)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

// GetCarHistory returns history entries for one car
func (ac *AnalyticsController) GetCarHistory(c *gin.Context) {
	bid, ok := businessID(c)
	if !ok {
		return
	}

	carID, err := uuid.Parse(c.Param("carId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid car ID format")
		return
	}

	history, err := ac.History.ForCar(c.Request.Context(), bid, carID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

// AnnotateHistory attaches notes and an optional rating to a history entry
func (ac *AnalyticsController) AnnotateHistory(c *gin.Context) {
	bid, ok := businessID(c)
	if !ok {
		return
	}

	historyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid history ID format")
		return
	}

	var input AnnotateHistoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	entry, err := ac.History.Annotate(c.Request.Context(), bid, historyID, input.Notes, input.Rating)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}
