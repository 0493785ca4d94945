package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"labrise-backend/models"
	"labrise-backend/services"
	"labrise-backend/utils"
)

// QueueController exposes the queue lifecycle operations.
type QueueController struct {
	Queue *services.QueueService
}

// EnqueueInput defines the expected JSON structure for adding a car to the queue
type EnqueueInput struct {
	CarID         uuid.UUID   `json:"carId" binding:"required"`
	ServiceIDs    []uuid.UUID `json:"serviceIds" binding:"required,min=1"`
	AssignedStaff *uuid.UUID  `json:"assignedStaff"`
}

// AssignStaffInput defines the expected JSON structure for staff assignment
type AssignStaffInput struct {
	StaffID uuid.UUID `json:"staffId" binding:"required"`
}

// Enqueue adds a car with its requested services to the queue
func (qc *QueueController) Enqueue(c *gin.Context) {
	bid, ok := businessID(c)
	if !ok {
		return
	}

	var input EnqueueInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	item, err := qc.Queue.Enqueue(c.Request.Context(), bid, input.CarID, input.ServiceIDs, input.AssignedStaff)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// GetQueue retrieves the queue, completed items included, optionally filtered
// by a ?status= query
func (qc *QueueController) GetQueue(c *gin.Context) {
	bid, ok := businessID(c)
	if !ok {
		return
	}

	queue, err := qc.Queue.List(c.Request.Context(), bid)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	if q := c.Query("status"); q != "" {
		status := models.QueueStatus(q)
		if !status.Valid() {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid status filter: "+q)
			return
		}
		matched := make([]models.QueueItem, 0)
		for _, item := range queue {
			if item.Status == status {
				matched = append(matched, item)
			}
		}
		c.JSON(http.StatusOK, matched)
		return
	}
	c.JSON(http.StatusOK, queue)
}

// GetQueueItem retrieves one queue item by ID
func (qc *QueueController) GetQueueItem(c *gin.Context) {
	bid, ok := businessID(c)
	if !ok {
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid queue item ID format")
		return
	}

	item, err := qc.Queue.Get(c.Request.Context(), bid, itemID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// StartService moves a waiting item to in_progress
func (qc *QueueController) StartService(c *gin.Context) {
	bid, ok := businessID(c)
	if !ok {
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid queue item ID format")
		return
	}

	item, err := qc.Queue.Start(c.Request.Context(), bid, itemID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// CompleteService moves an in-progress item to completed and records history
func (qc *QueueController) CompleteService(c *gin.Context) {
	bid, ok := businessID(c)
	if !ok {
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid queue item ID format")
		return
	}

	item, err := qc.Queue.Complete(c.Request.Context(), bid, itemID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// AssignStaff sets the staff member responsible for a queue item
func (qc *QueueController) AssignStaff(c *gin.Context) {
	bid, ok := businessID(c)
	if !ok {
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid queue item ID format")
		return
	}

	var input AssignStaffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	item, err := qc.Queue.AssignStaff(c.Request.Context(), bid, itemID, input.StaffID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// RemoveFromQueue deletes a queue item, subject to the removal policy
func (qc *QueueController) RemoveFromQueue(c *gin.Context) {
	bid, ok := businessID(c)
	if !ok {
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid queue item ID format")
		return
	}

	if err := qc.Queue.Remove(c.Request.Context(), bid, itemID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Queue item removed successfully"})
}
