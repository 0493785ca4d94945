package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labrise-backend/models"
	"labrise-backend/store"
)

func addCar(t *testing.T, f *fixture, plate, ownerName, phone string) models.Car {
	t.Helper()
	ctx := context.Background()

	cars, err := store.ReadCollection[models.Car](ctx, f.store, store.CarsKey(f.businessID))
	require.NoError(t, err)
	car := models.Car{
		ID:           uuid.New(),
		LicensePlate: plate,
		Make:         "Nissan",
		Owner:        models.CarOwner{Name: ownerName, Phone: phone},
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	cars = append(cars, car)
	require.NoError(t, store.WriteCollection(ctx, f.store, store.CarsKey(f.businessID), cars))
	return car
}

func TestSyncCreatesOneCustomerPerPhone(t *testing.T) {
	f := newFixture(t)
	sync := NewCustomerSyncService(f.store, zerolog.Nop())
	ctx := context.Background()

	// Second car reuses the fixture owner's phone under a different name.
	second := addCar(t, f, "UBB 456Y", "G. Auma-Okot", "+256701111111")

	customers, err := sync.SyncFromCars(ctx, f.businessID)
	require.NoError(t, err)
	require.Len(t, customers, 1)

	// The first-seen name wins and is never rewritten.
	assert.Equal(t, "Grace Auma", customers[0].Name)
	assert.Len(t, customers[0].Cars, 2)
	assert.True(t, customers[0].HasCar(f.car.ID))
	assert.True(t, customers[0].HasCar(second.ID))
}

func TestSyncTreatsFormattedPhonesAsEqual(t *testing.T) {
	f := newFixture(t)
	sync := NewCustomerSyncService(f.store, zerolog.Nop())

	addCar(t, f, "UBC 789Z", "Grace A.", "+256 701-111-111")

	customers, err := sync.SyncFromCars(context.Background(), f.businessID)
	require.NoError(t, err)
	assert.Len(t, customers, 1)
	assert.Len(t, customers[0].Cars, 2)
}

func TestSyncIsIdempotent(t *testing.T) {
	f := newFixture(t)
	sync := NewCustomerSyncService(f.store, zerolog.Nop())
	ctx := context.Background()

	first, err := sync.SyncFromCars(ctx, f.businessID)
	require.NoError(t, err)
	second, err := sync.SyncFromCars(ctx, f.businessID)
	require.NoError(t, err)

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.Len(t, second[0].Cars, 1)
}

func TestSyncCreatesDistinctCustomersForDistinctPhones(t *testing.T) {
	f := newFixture(t)
	sync := NewCustomerSyncService(f.store, zerolog.Nop())

	addCar(t, f, "UBD 001A", "Peter Ssali", "+256703333333")

	customers, err := sync.SyncFromCars(context.Background(), f.businessID)
	require.NoError(t, err)
	assert.Len(t, customers, 2)
}

func TestSyncStampsCarsWithCustomerID(t *testing.T) {
	f := newFixture(t)
	sync := NewCustomerSyncService(f.store, zerolog.Nop())
	ctx := context.Background()

	addCar(t, f, "UBB 456Y", "G. Auma-Okot", "+256701111111")

	customers, err := sync.SyncFromCars(ctx, f.businessID)
	require.NoError(t, err)
	require.Len(t, customers, 1)

	for _, car := range f.readCars(t) {
		require.NotNil(t, car.CustomerID, "car %s not stamped", car.LicensePlate)
		assert.Equal(t, customers[0].ID, *car.CustomerID)
	}
}

func TestLinkCar(t *testing.T) {
	f := newFixture(t)
	sync := NewCustomerSyncService(f.store, zerolog.Nop())
	ctx := context.Background()

	customers, err := sync.SyncFromCars(ctx, f.businessID)
	require.NoError(t, err)
	require.Len(t, customers, 1)

	other := addCar(t, f, "UBE 002B", "Someone Else", "+256704444444")

	require.NoError(t, sync.LinkCar(ctx, f.businessID, customers[0].ID, other.ID))
	// Linking again is a no-op.
	require.NoError(t, sync.LinkCar(ctx, f.businessID, customers[0].ID, other.ID))

	got := f.readCustomers(t)
	require.Len(t, got, 1)
	assert.Len(t, got[0].Cars, 2)

	for _, car := range f.readCars(t) {
		if car.ID == other.ID {
			require.NotNil(t, car.CustomerID)
			assert.Equal(t, customers[0].ID, *car.CustomerID)
		}
	}

	assert.ErrorIs(t, sync.LinkCar(ctx, f.businessID, uuid.New(), other.ID), ErrNotFound)
}
