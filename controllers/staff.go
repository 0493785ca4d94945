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

// StaffController manages staff members for a business partition.
type StaffController struct {
	Store store.Store
}

// CreateStaffInput defines the expected JSON structure for adding staff
type CreateStaffInput struct {
	Name     string           `json:"name" binding:"required"`
	Email    string           `json:"email" binding:"omitempty,email"`
	Phone    string           `json:"phone" binding:"required"`
	Role     models.StaffRole `json:"role" binding:"required"`
	HireDate *time.Time       `json:"hireDate"`
}

// UpdateStaffInput defines the expected JSON structure for updating staff
type UpdateStaffInput struct {
	Name     *string           `json:"name"`
	Email    *string           `json:"email" binding:"omitempty,email"`
	Phone    *string           `json:"phone"`
	Role     *models.StaffRole `json:"role"`
	IsActive *bool             `json:"isActive"`
}

// CreateStaff adds a staff member. The performance aggregate starts at zero
// and is maintained by the history service.
func (sc *StaffController) CreateStaff(c *gin.Context) {
	bid, ok := businessID(c)
	if !ok {
		return
	}

	var input CreateStaffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !input.Role.Valid() {
		utils.RespondWithError(c, http.StatusBadRequest, "Role must be manager, washer, or cashier")
		return
	}
	if !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	hireDate := time.Now()
	if input.HireDate != nil {
		hireDate = *input.HireDate
	}

	member := models.Staff{
		ID:       uuid.New(),
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Role:     input.Role,
		IsActive: true,
		HireDate: hireDate,
	}

	staff, err := store.ReadCollection[models.Staff](c.Request.Context(), sc.Store, store.StaffKey(bid))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	staff = append(staff, member)
	if err := store.WriteCollection(c.Request.Context(), sc.Store, store.StaffKey(bid), staff); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create staff member")
		return
	}

	c.JSON(http.StatusCreated, member)
}

// GetStaff retrieves all staff members
func (sc *StaffController) GetStaff(c *gin.Context) {
	bid, ok := businessID(c)
	if !ok {
		return
	}

	staff, err := store.ReadCollection[models.Staff](c.Request.Context(), sc.Store, store.StaffKey(bid))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, staff)
}

// GetStaffMember retrieves a specific staff member by ID
func (sc *StaffController) GetStaffMember(c *gin.Context) {
	bid, ok := businessID(c)
	if !ok {
		return
	}

	staff, err := store.ReadCollection[models.Staff](c.Request.Context(), sc.Store, store.StaffKey(bid))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	for _, member := range staff {
		if member.ID.String() == c.Param("id") {
			c.JSON(http.StatusOK, member)
			return
		}
	}
	utils.RespondWithError(c, http.StatusNotFound, "Staff member not found")
}

// UpdateStaff updates an existing staff member
func (sc *StaffController) UpdateStaff(c *gin.Context) {
	bid, ok := businessID(c)
	if !ok {
		return
	}

	var input UpdateStaffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	staff, err := store.ReadCollection[models.Staff](c.Request.Context(), sc.Store, store.StaffKey(bid))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	for i := range staff {
		if staff[i].ID.String() != c.Param("id") {
			continue
		}
		if input.Name != nil {
			staff[i].Name = *input.Name
		}
		if input.Email != nil {
			staff[i].Email = *input.Email
		}
		if input.Phone != nil {
			if !utils.ValidatePhone(*input.Phone) {
				utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
				return
			}
			staff[i].Phone = *input.Phone
		}
		if input.Role != nil {
			if !input.Role.Valid() {
				utils.RespondWithError(c, http.StatusBadRequest, "Role must be manager, washer, or cashier")
				return
			}
			staff[i].Role = *input.Role
		}
		if input.IsActive != nil {
			staff[i].IsActive = *input.IsActive
		}

		if err := store.WriteCollection(c.Request.Context(), sc.Store, store.StaffKey(bid), staff); err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update staff member")
			return
		}
		c.JSON(http.StatusOK, staff[i])
		return
	}
	utils.RespondWithError(c, http.StatusNotFound, "Staff member not found")
}

// DeleteStaff removes a staff member
func (sc *StaffController) DeleteStaff(c *gin.Context) {
	bid, ok := businessID(c)
	if !ok {
		return
	}

	staff, err := store.ReadCollection[models.Staff](c.Request.Context(), sc.Store, store.StaffKey(bid))
	if err != nil {
		respondStoreError(c, err)
		return
	}

	filtered := staff[:0:0]
	found := false
	for _, member := range staff {
		if member.ID.String() == c.Param("id") {
			found = true
			continue
		}
		filtered = append(filtered, member)
	}
	if !found {
		utils.RespondWithError(c, http.StatusNotFound, "Staff member not found")
		return
	}
	if err := store.WriteCollection(c.Request.Context(), sc.Store, store.StaffKey(bid), filtered); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete staff member")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Staff member deleted successfully"})
}
