package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"labrise-backend/models"
	"labrise-backend/store"
	"labrise-backend/utils"
)

// CarController manages the car catalog for a business partition.
type CarController struct {
	Store store.Store
}

type CarOwnerInput struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone" binding:"required"`
}

// CreateCarInput defines the expected JSON structure for registering a car
type CreateCarInput struct {
	LicensePlate string        `json:"licensePlate" binding:"required"`
	Make         string        `json:"make" binding:"required"`
	Color        string        `json:"color"`
	Images       []string      `json:"images"`
	Owner        CarOwnerInput `json:"owner" binding:"required"`
}

// UpdateCarInput defines the expected JSON structure for updating a car
type UpdateCarInput struct {
	LicensePlate *string        `json:"licensePlate"`
	Make         *string        `json:"make"`
	Color        *string        `json:"color"`
	Images       *[]string      `json:"images"`
	Owner        *CarOwnerInput `json:"owner"`
}

// CreateCar registers a new car
func (cc *CarController) CreateCar(c *gin.Context) {
	bid, ok := businessID(c)
	if !ok {
		return
	}

	var input CreateCarInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidatePhone(input.Owner.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid owner phone number format")
		return
	}
	if len(input.Images) > models.MaxCarImages {
		utils.RespondWithError(c, http.StatusBadRequest,
			fmt.Sprintf("A car can carry at most %d images", models.MaxCarImages))
		return
	}

	now := time.Now()
	car := models.Car{
		ID:           uuid.New(),
		LicensePlate: input.LicensePlate,
		Make:         input.Make,
		Color:        input.Color,
		Images:       input.Images,
		Owner: models.CarOwner{
			Name:    input.Owner.Name,
			Address: input.Owner.Address,
			Phone:   input.Owner.Phone,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	cars, err := store.ReadCollection[models.Car](c.Request.Context(), cc.Store, store.CarsKey(bid))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	cars = append(cars, car)
	if err := store.WriteCollection(c.Request.Context(), cc.Store, store.CarsKey(bid), cars); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create car")
		return
	}

	c.JSON(http.StatusCreated, car)
}

// GetCars retrieves all cars, optionally filtered by a ?q= search across
// plate, make, color, and owner name
func (cc *CarController) GetCars(c *gin.Context) {
	bid, ok := businessID(c)
	if !ok {
		return
	}

	cars, err := store.ReadCollection[models.Car](c.Request.Context(), cc.Store, store.CarsKey(bid))
	if err != nil {
		respondStoreError(c, err)
		return
	}

	query := strings.ToLower(strings.TrimSpace(c.Query("q")))
	if query == "" {
		c.JSON(http.StatusOK, cars)
		return
	}

	matched := make([]models.Car, 0)
	for _, car := range cars {
		if strings.Contains(strings.ToLower(car.LicensePlate), query) ||
			strings.Contains(strings.ToLower(car.Make), query) ||
			strings.Contains(strings.ToLower(car.Color), query) ||
			strings.Contains(strings.ToLower(car.Owner.Name), query) {
			matched = append(matched, car)
		}
	}
	c.JSON(http.StatusOK, matched)
}

// GetCar retrieves a specific car by ID
func (cc *CarController) GetCar(c *gin.Context) {
	bid, ok := businessID(c)
	if !ok {
		return
	}

	cars, err := store.ReadCollection[models.Car](c.Request.Context(), cc.Store, store.CarsKey(bid))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	for _, car := range cars {
		if car.ID.String() == c.Param("id") {
			c.JSON(http.StatusOK, car)
			return
		}
	}
	utils.RespondWithError(c, http.StatusNotFound, "Car not found")
}

// UpdateCar updates an existing car
func (cc *CarController) UpdateCar(c *gin.Context) {
	bid, ok := businessID(c)
	if !ok {
		return
	}

	var input UpdateCarInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	cars, err := store.ReadCollection[models.Car](c.Request.Context(), cc.Store, store.CarsKey(bid))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	for i := range cars {
		if cars[i].ID.String() != c.Param("id") {
			continue
		}
		if input.LicensePlate != nil {
			cars[i].LicensePlate = *input.LicensePlate
		}
		if input.Make != nil {
			cars[i].Make = *input.Make
		}
		if input.Color != nil {
			cars[i].Color = *input.Color
		}
		if input.Images != nil {
			if len(*input.Images) > models.MaxCarImages {
				utils.RespondWithError(c, http.StatusBadRequest,
					fmt.Sprintf("A car can carry at most %d images", models.MaxCarImages))
				return
			}
			cars[i].Images = *input.Images
		}
		if input.Owner != nil {
			if !utils.ValidatePhone(input.Owner.Phone) {
				utils.RespondWithError(c, http.StatusBadRequest, "Invalid owner phone number format")
				return
			}
			cars[i].Owner = models.CarOwner{
				Name:    input.Owner.Name,
				Address: input.Owner.Address,
				Phone:   input.Owner.Phone,
			}
		}
		cars[i].UpdatedAt = time.Now()

		if err := store.WriteCollection(c.Request.Context(), cc.Store, store.CarsKey(bid), cars); err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update car")
			return
		}
		c.JSON(http.StatusOK, cars[i])
		return
	}
	utils.RespondWithError(c, http.StatusNotFound, "Car not found")
}

// DeleteCar removes a car. Queue items and history referencing it keep their
// id and resolve to a display fallback.
func (cc *CarController) DeleteCar(c *gin.Context) {
	bid, ok := businessID(c)
	if !ok {
		return
	}

	cars, err := store.ReadCollection[models.Car](c.Request.Context(), cc.Store, store.CarsKey(bid))
	if err != nil {
		respondStoreError(c, err)
		return
	}

	filtered := cars[:0:0]
	found := false
	for _, car := range cars {
		if car.ID.String() == c.Param("id") {
			found = true
			continue
		}
		filtered = append(filtered, car)
	}
	if !found {
		utils.RespondWithError(c, http.StatusNotFound, "Car not found")
		return
	}
	if err := store.WriteCollection(c.Request.Context(), cc.Store, store.CarsKey(bid), filtered); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete car")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Car deleted successfully"})
}
