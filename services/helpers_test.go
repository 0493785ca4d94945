package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"labrise-backend/models"
	"labrise-backend/store"
)

// fixture is the catalog every engine test starts from: one car and the two
// services used by the pricing scenarios.
type fixture struct {
	store      *store.Memory
	businessID string
	car        models.Car
	serviceA   models.Service // 15000, 30 min
	serviceB   models.Service // 25000, 45 min
	staff      models.Staff
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		store:      store.NewMemory(),
		businessID: uuid.NewString(),
	}
	ctx := context.Background()

	f.car = models.Car{
		ID:           uuid.New(),
		LicensePlate: "UBA 123X",
		Make:         "Toyota",
		Color:        "silver",
		Owner: models.CarOwner{
			Name:    "Grace Auma",
			Address: "Plot 14, Ntinda",
			Phone:   "+256701111111",
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, store.WriteCollection(ctx, f.store, store.CarsKey(f.businessID), []models.Car{f.car}))

	f.serviceA = models.Service{
		ID:       uuid.New(),
		Name:     "Exterior Wash",
		Amount:   decimal.NewFromInt(15000),
		Duration: 30,
		Category: models.CategoryBasic,
		CarSizes: []models.CarSize{models.SizeCompact, models.SizeSUV},
	}
	f.serviceB = models.Service{
		ID:       uuid.New(),
		Name:     "Full Detail",
		Amount:   decimal.NewFromInt(25000),
		Duration: 45,
		Category: models.CategoryPremium,
		CarSizes: []models.CarSize{models.SizeSUV},
	}
	require.NoError(t, store.WriteCollection(ctx, f.store, store.ServicesKey(f.businessID),
		[]models.Service{f.serviceA, f.serviceB}))

	f.staff = models.Staff{
		ID:       uuid.New(),
		Name:     "Okello James",
		Phone:    "+256702222222",
		Role:     models.RoleWasher,
		IsActive: true,
		HireDate: time.Now(),
	}
	require.NoError(t, store.WriteCollection(ctx, f.store, store.StaffKey(f.businessID), []models.Staff{f.staff}))

	return f
}

func (f *fixture) newEngine(t *testing.T, opts ...QueueOption) (*QueueService, *HistoryService) {
	t.Helper()
	history := NewHistoryService(f.store, zerolog.Nop())
	queue := NewQueueService(f.store, history, zerolog.Nop(), opts...)
	return queue, history
}

func (f *fixture) readStaff(t *testing.T) []models.Staff {
	t.Helper()
	staff, err := store.ReadCollection[models.Staff](context.Background(), f.store, store.StaffKey(f.businessID))
	require.NoError(t, err)
	return staff
}

func (f *fixture) readCars(t *testing.T) []models.Car {
	t.Helper()
	cars, err := store.ReadCollection[models.Car](context.Background(), f.store, store.CarsKey(f.businessID))
	require.NoError(t, err)
	return cars
}

func (f *fixture) readCustomers(t *testing.T) []models.Customer {
	t.Helper()
	customers, err := store.ReadCollection[models.Customer](context.Background(), f.store, store.CustomersKey(f.businessID))
	require.NoError(t, err)
	return customers
}

func (f *fixture) setStaffActive(t *testing.T, active bool) {
	t.Helper()
	staff := f.readStaff(t)
	for i := range staff {
		staff[i].IsActive = active
	}
	require.NoError(t, store.WriteCollection(context.Background(), f.store, store.StaffKey(f.businessID), staff))
}

func (f *fixture) deactivateStaff(t *testing.T) { f.setStaffActive(t, false) }
func (f *fixture) activateStaff(t *testing.T)   { f.setStaffActive(t, true) }
