package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"labrise-backend/models"
	"labrise-backend/store"
	"labrise-backend/utils"
)

// BusinessController manages the tenant directory: the single global
// collection every per-business partition is validated against.
type BusinessController struct {
	Store store.Store
}

// CreateBusinessInput defines the expected JSON structure for creating a business
type CreateBusinessInput struct {
	Name      string `json:"name" binding:"required"`
	OwnerName string `json:"ownerName" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
}

// UpdateBusinessInput defines the expected JSON structure for updating a business
type UpdateBusinessInput struct {
	Name      *string `json:"name"`
	OwnerName *string `json:"ownerName"`
	Phone     *string `json:"phone"`
	IsActive  *bool   `json:"isActive"`
}

// RequireBusiness resolves the :businessId path parameter against the
// directory and stores the id in the request context. Replaces the original
// app's ambient current_user global.
func (bc *BusinessController) RequireBusiness() gin.HandlerFunc {
	return func(c *gin.Context) {
		businessID := c.Param("businessId")
		if _, err := uuid.Parse(businessID); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid business ID format")
			return
		}

		businesses, err := store.ReadCollection[models.Business](c.Request.Context(), bc.Store, store.BusinessesKey)
		if err != nil {
			respondStoreError(c, err)
			return
		}
		for _, b := range businesses {
			if b.ID.String() == businessID {
				c.Set("businessId", businessID)
				c.Next()
				return
			}
		}
		utils.RespondWithError(c, http.StatusNotFound, "Business not found")
	}
}

// CreateBusiness registers a new tenant
func (bc *BusinessController) CreateBusiness(c *gin.Context) {
	var input CreateBusinessInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	business := models.Business{
		ID:        uuid.New(),
		Name:      input.Name,
		OwnerName: input.OwnerName,
		Phone:     input.Phone,
		IsActive:  true,
		CreatedAt: time.Now(),
	}

	businesses, err := store.ReadCollection[models.Business](c.Request.Context(), bc.Store, store.BusinessesKey)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	businesses = append(businesses, business)
	if err := store.WriteCollection(c.Request.Context(), bc.Store, store.BusinessesKey, businesses); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create business")
		return
	}

	c.JSON(http.StatusCreated, business)
}

// GetBusinesses lists the tenant directory
func (bc *BusinessController) GetBusinesses(c *gin.Context) {
	businesses, err := store.ReadCollection[models.Business](c.Request.Context(), bc.Store, store.BusinessesKey)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, businesses)
}

// GetBusiness retrieves one tenant by ID
func (bc *BusinessController) GetBusiness(c *gin.Context) {
	businesses, err := store.ReadCollection[models.Business](c.Request.Context(), bc.Store, store.BusinessesKey)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	for _, b := range businesses {
		if b.ID.String() == c.Param("businessId") {
			c.JSON(http.StatusOK, b)
			return
		}
	}
	utils.RespondWithError(c, http.StatusNotFound, "Business not found")
}

// UpdateBusiness updates an existing tenant
func (bc *BusinessController) UpdateBusiness(c *gin.Context) {
	var input UpdateBusinessInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	businesses, err := store.ReadCollection[models.Business](c.Request.Context(), bc.Store, store.BusinessesKey)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	for i := range businesses {
		if businesses[i].ID.String() != c.Param("businessId") {
			continue
		}
		if input.Name != nil {
			businesses[i].Name = *input.Name
		}
		if input.OwnerName != nil {
			businesses[i].OwnerName = *input.OwnerName
		}
		if input.Phone != nil {
			if !utils.ValidatePhone(*input.Phone) {
				utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
				return
			}
			businesses[i].Phone = *input.Phone
		}
		if input.IsActive != nil {
			businesses[i].IsActive = *input.IsActive
		}
		if err := store.WriteCollection(c.Request.Context(), bc.Store, store.BusinessesKey, businesses); err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update business")
			return
		}
		c.JSON(http.StatusOK, businesses[i])
		return
	}
	utils.RespondWithError(c, http.StatusNotFound, "Business not found")
}

// DeleteBusiness removes a tenant from the directory. Partition collections
// are left behind; they become unreachable through the API.
func (bc *BusinessController) DeleteBusiness(c *gin.Context) {
	businesses, err := store.ReadCollection[models.Business](c.Request.Context(), bc.Store, store.BusinessesKey)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	filtered := businesses[:0:0]
	found := false
	for _, b := range businesses {
		if b.ID.String() == c.Param("businessId") {
			found = true
			continue
		}
		filtered = append(filtered, b)
	}
	if !found {
		utils.RespondWithError(c, http.StatusNotFound, "Business not found")
		return
	}
	if err := store.WriteCollection(c.Request.Context(), bc.Store, store.BusinessesKey, filtered); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete business")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Business deleted successfully"})
}
