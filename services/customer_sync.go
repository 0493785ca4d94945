package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"labrise-backend/models"
	"labrise-backend/store"
	"labrise-backend/utils"
)

// CustomerSyncService synthesizes Customer records from car owners. The join
// key is the normalized phone number: at most one customer per phone, and an
// existing customer's name and address are never rewritten by later cars
// sharing the phone. New cars are linked to the existing record instead.
type CustomerSyncService struct {
	store store.Store
	log   zerolog.Logger
	now   func() time.Time
}

func NewCustomerSyncService(st store.Store, log zerolog.Logger) *CustomerSyncService {
	return &CustomerSyncService{store: st, log: log, now: time.Now}
}

// SyncFromCars upserts customers for every car owner in the partition and
// returns the resulting customer list. Each synced car is stamped with the id
// of the customer its phone resolved to.
func (s *CustomerSyncService) SyncFromCars(ctx context.Context, businessID string) ([]models.Customer, error) {
	cars, err := store.ReadCollection[models.Car](ctx, s.store, store.CarsKey(businessID))
	if err != nil {
		return nil, err
	}
	customers, err := store.ReadCollection[models.Customer](ctx, s.store, store.CustomersKey(businessID))
	if err != nil {
		return nil, err
	}

	byPhone := make(map[string]int, len(customers))
	for i, c := range customers {
		byPhone[utils.NormalizePhone(c.Phone)] = i
	}

	changed := false
	carsChanged := false
	for i := range cars {
		phone := utils.NormalizePhone(cars[i].Owner.Phone)
		if phone == "" {
			continue
		}
		idx, ok := byPhone[phone]
		if !ok {
			customer := models.Customer{
				ID:        uuid.New(),
				Name:      cars[i].Owner.Name,
				Phone:     cars[i].Owner.Phone,
				Address:   cars[i].Owner.Address,
				Cars:      []uuid.UUID{},
				CreatedAt: s.now(),
			}
			customers = append(customers, customer)
			idx = len(customers) - 1
			byPhone[phone] = idx
			changed = true
		}
		if !customers[idx].HasCar(cars[i].ID) {
			customers[idx].Cars = append(customers[idx].Cars, cars[i].ID)
			changed = true
		}
		if cars[i].CustomerID == nil || *cars[i].CustomerID != customers[idx].ID {
			id := customers[idx].ID
			cars[i].CustomerID = &id
			carsChanged = true
		}
	}

	if changed {
		if err := store.WriteCollection(ctx, s.store, store.CustomersKey(businessID), customers); err != nil {
			return nil, err
		}
	}
	if carsChanged {
		if err := store.WriteCollection(ctx, s.store, store.CarsKey(businessID), cars); err != nil {
			return nil, err
		}
	}
	return customers, nil
}

// LinkCar attaches a car id to an existing customer and stamps the car with
// the customer's id.
func (s *CustomerSyncService) LinkCar(ctx context.Context, businessID string, customerID, carID uuid.UUID) error {
	customers, err := store.ReadCollection[models.Customer](ctx, s.store, store.CustomersKey(businessID))
	if err != nil {
		return err
	}
	for i := range customers {
		if customers[i].ID != customerID {
			continue
		}
		if !customers[i].HasCar(carID) {
			customers[i].Cars = append(customers[i].Cars, carID)
			if err := store.WriteCollection(ctx, s.store, store.CustomersKey(businessID), customers); err != nil {
				return err
			}
		}
		return s.stampCar(ctx, businessID, carID, customerID)
	}
	return ErrNotFound
}

func (s *CustomerSyncService) stampCar(ctx context.Context, businessID string, carID, customerID uuid.UUID) error {
	cars, err := store.ReadCollection[models.Car](ctx, s.store, store.CarsKey(businessID))
	if err != nil {
		return err
	}
	for i := range cars {
		if cars[i].ID != carID {
			continue
		}
		if cars[i].CustomerID != nil && *cars[i].CustomerID == customerID {
			return nil
		}
		id := customerID
		cars[i].CustomerID = &id
		return store.WriteCollection(ctx, s.store, store.CarsKey(businessID), cars)
	}
	return nil
}
