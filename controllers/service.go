// controllers/service.go
package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"labrise-backend/models"
	"labrise-backend/store"
	"labrise-backend/utils"
)

// ServiceController manages the wash-service catalog for a business.
type ServiceController struct {
	Store store.Store
}

// CreateServiceInput defines the expected JSON structure for creating a service
type CreateServiceInput struct {
	Name     string                 `json:"name" binding:"required"`
	Amount   decimal.Decimal        `json:"amount" binding:"required"`
	Duration int                    `json:"duration" binding:"min=0"` // in minutes
	Category models.ServiceCategory `json:"category" binding:"required"`
	CarSizes []models.CarSize       `json:"carSizes" binding:"required,min=1"`
}

// UpdateServiceInput defines the expected JSON structure for updating a service
type UpdateServiceInput struct {
	Name     *string                 `json:"name"`
	Amount   *decimal.Decimal        `json:"amount"`
	Duration *int                    `json:"duration"`
	Category *models.ServiceCategory `json:"category"`
	CarSizes *[]models.CarSize       `json:"carSizes" binding:"omitempty,min=1"`
}

func validCarSizes(sizes []models.CarSize) bool {
	for _, size := range sizes {
		if !size.Valid() {
			return false
		}
	}
	return len(sizes) > 0
}

// CreateService creates a new catalog service
func (sc *ServiceController) CreateService(c *gin.Context) {
	bid, ok := businessID(c)
	if !ok {
		return
	}

	var input CreateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !input.Category.Valid() {
		utils.RespondWithError(c, http.StatusBadRequest, "Category must be basic, premium, or package")
		return
	}
	if !validCarSizes(input.CarSizes) {
		utils.RespondWithError(c, http.StatusBadRequest, "Car sizes must be a non-empty subset of compact, suv, truck")
		return
	}
	if input.Amount.IsNegative() {
		utils.RespondWithError(c, http.StatusBadRequest, "Amount must not be negative")
		return
	}

	service := models.Service{
		ID:        uuid.New(),
		Name:      input.Name,
		Amount:    input.Amount,
		Duration:  input.Duration,
		Category:  input.Category,
		CarSizes:  input.CarSizes,
		CreatedAt: time.Now(),
	}

	services, err := store.ReadCollection[models.Service](c.Request.Context(), sc.Store, store.ServicesKey(bid))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	services = append(services, service)
	if err := store.WriteCollection(c.Request.Context(), sc.Store, store.ServicesKey(bid), services); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create service")
		return
	}

	c.JSON(http.StatusCreated, service)
}

// GetServices retrieves the service catalog
func (sc *ServiceController) GetServices(c *gin.Context) {
	bid, ok := businessID(c)
	if !ok {
		return
	}

	services, err := store.ReadCollection[models.Service](c.Request.Context(), sc.Store, store.ServicesKey(bid))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, services)
}

// GetService retrieves a specific service by ID
func (sc *ServiceController) GetService(c *gin.Context) {
	bid, ok := businessID(c)
	if !ok {
		return
	}

	services, err := store.ReadCollection[models.Service](c.Request.Context(), sc.Store, store.ServicesKey(bid))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	for _, service := range services {
		if service.ID.String() == c.Param("id") {
			c.JSON(http.StatusOK, service)
			return
		}
	}
	utils.RespondWithError(c, http.StatusNotFound, "Service not found")
}

// UpdateService updates an existing service. Past history is unaffected;
// amounts were snapshotted at completion.
func (sc *ServiceController) UpdateService(c *gin.Context) {
	bid, ok := businessID(c)
	if !ok {
		return
	}

	var input UpdateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	services, err := store.ReadCollection[models.Service](c.Request.Context(), sc.Store, store.ServicesKey(bid))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	for i := range services {
		if services[i].ID.String() != c.Param("id") {
			continue
		}
		if input.Name != nil {
			services[i].Name = *input.Name
		}
		if input.Amount != nil {
			if input.Amount.IsNegative() {
				utils.RespondWithError(c, http.StatusBadRequest, "Amount must not be negative")
				return
			}
			services[i].Amount = *input.Amount
		}
		if input.Duration != nil {
			services[i].Duration = *input.Duration
		}
		if input.Category != nil {
			if !input.Category.Valid() {
				utils.RespondWithError(c, http.StatusBadRequest, "Category must be basic, premium, or package")
				return
			}
			services[i].Category = *input.Category
		}
		if input.CarSizes != nil {
			if !validCarSizes(*input.CarSizes) {
				utils.RespondWithError(c, http.StatusBadRequest, "Car sizes must be a non-empty subset of compact, suv, truck")
				return
			}
			services[i].CarSizes = *input.CarSizes
		}

		if err := store.WriteCollection(c.Request.Context(), sc.Store, store.ServicesKey(bid), services); err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update service")
			return
		}
		c.JSON(http.StatusOK, services[i])
		return
	}
	utils.RespondWithError(c, http.StatusNotFound, "Service not found")
}

// DeleteService removes a service from the catalog
func (sc *ServiceController) DeleteService(c *gin.Context) {
	bid, ok := businessID(c)
	if !ok {
		return
	}

	services, err := store.ReadCollection[models.Service](c.Request.Context(), sc.Store, store.ServicesKey(bid))
	if err != nil {
		respondStoreError(c, err)
		return
	}

	filtered := services[:0:0]
	found := false
	for _, service := range services {
		if service.ID.String() == c.Param("id") {
			found = true
			continue
		}
		filtered = append(filtered, service)
	}
	if !found {
		utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		return
	}
	if err := store.WriteCollection(c.Request.Context(), sc.Store, store.ServicesKey(bid), filtered); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete service")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
}
