package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"labrise-backend/models"
	"labrise-backend/services"
	"labrise-backend/store"
	"labrise-backend/utils"
)

// CustomerController exposes the synthesized customer records. Customers are
// not created directly; they come from the car-owner sync.
type CustomerController struct {
	Store store.Store
	Sync  *services.CustomerSyncService
}

// GetCustomers retrieves all customers for the business
func (cc *CustomerController) GetCustomers(c *gin.Context) {
	bid, ok := businessID(c)
	if !ok {
		return
	}

	customers, err := store.ReadCollection[models.Customer](c.Request.Context(), cc.Store, store.CustomersKey(bid))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

// GetCustomer retrieves a specific customer by ID
func (cc *CustomerController) GetCustomer(c *gin.Context) {
	bid, ok := businessID(c)
	if !ok {
		return
	}

	customers, err := store.ReadCollection[models.Customer](c.Request.Context(), cc.Store, store.CustomersKey(bid))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	for _, customer := range customers {
		if customer.ID.String() == c.Param("id") {
			c.JSON(http.StatusOK, customer)
			return
		}
	}
	utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
}

// SyncCustomers upserts customer records from the car catalog's owners
func (cc *CustomerController) SyncCustomers(c *gin.Context) {
	bid, ok := businessID(c)
	if !ok {
		return
	}

	customers, err := cc.Sync.SyncFromCars(c.Request.Context(), bid)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

// LinkCar attaches a car to a customer
func (cc *CustomerController) LinkCar(c *gin.Context) {
	bid, ok := businessID(c)
	if !ok {
		return
	}

	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}
	carID, err := uuid.Parse(c.Param("carId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid car ID format")
		return
	}

	if err := cc.Sync.LinkCar(c.Request.Context(), bid, customerID, carID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Car linked successfully"})
}

// DeleteCustomer removes a customer record
func (cc *CustomerController) DeleteCustomer(c *gin.Context) {
	bid, ok := businessID(c)
	if !ok {
		return
	}

	customers, err := store.ReadCollection[models.Customer](c.Request.Context(), cc.Store, store.CustomersKey(bid))
	if err != nil {
		respondStoreError(c, err)
		return
	}

	filtered := customers[:0:0]
	found := false
	for _, customer := range customers {
		if customer.ID.String() == c.Param("id") {
			found = true
			continue
		}
		filtered = append(filtered, customer)
	}
	if !found {
		utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		return
	}
	if err := store.WriteCollection(c.Request.Context(), cc.Store, store.CustomersKey(bid), filtered); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete customer")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}
