package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"labrise-backend/models"
	"labrise-backend/store"
	"labrise-backend/utils"
)

// LoyaltyPointsPerVisit is credited to the car owner's customer record on
// every completed queue item.
const LoyaltyPointsPerVisit = 10

// HistoryService owns the append-only log of completed work. Amounts and
// service names are captured into the log at completion time, so deleting or
// repricing a catalog entry never rewrites past revenue.
type HistoryService struct {
	store store.Store
	log   zerolog.Logger
	now   func() time.Time
}

func NewHistoryService(st store.Store, log zerolog.Logger) *HistoryService {
	return &HistoryService{store: st, log: log, now: time.Now}
}

// ForBusiness returns the full history log for a business.
func (s *HistoryService) ForBusiness(ctx context.Context, businessID string) ([]models.ServiceHistory, error) {
	return store.ReadCollection[models.ServiceHistory](ctx, s.store, store.HistoryKey(businessID))
}

// ForCar returns the history entries referencing one car.
func (s *HistoryService) ForCar(ctx context.Context, businessID string, carID uuid.UUID) ([]models.ServiceHistory, error) {
	history, err := s.ForBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	matched := make([]models.ServiceHistory, 0)
	for _, h := range history {
		if h.CarID == carID {
			matched = append(matched, h)
		}
	}
	return matched, nil
}

// RecordCompletion appends the history snapshot for a just-completed queue
// item and rolls its revenue into the assigned staff member's performance and
// the car owner's customer record.
func (s *HistoryService) RecordCompletion(ctx context.Context, businessID string, item *models.QueueItem) error {
	catalog, err := store.ReadCollection[models.Service](ctx, s.store, store.ServicesKey(businessID))
	if err != nil {
		return err
	}
	byID := indexServices(catalog)

	lines := make([]models.HistoryLine, 0, len(item.ServiceIDs))
	total := decimal.Zero
	for _, id := range item.ServiceIDs {
		line := models.HistoryLine{ServiceID: id}
		if svc, ok := byID[id]; ok {
			line.ServiceName = svc.Name
			line.Amount = svc.Amount
		} else {
			// Dangling reference at completion time: the line is kept with a
			// zero amount so the car's visit is still on record.
			line.ServiceName = "Unknown Service"
			line.Amount = decimal.Zero
			s.log.Warn().
				Str("business_id", businessID).
				Str("service_id", id.String()).
				Msg("history line references missing service")
		}
		total = total.Add(line.Amount)
		lines = append(lines, line)
	}

	completedAt := s.now()
	if item.CompletedTime != nil {
		completedAt = *item.CompletedTime
	}

	entry := models.ServiceHistory{
		ID:          uuid.New(),
		CarID:       item.CarID,
		Lines:       lines,
		StaffID:     item.AssignedStaff,
		TotalAmount: total,
		Duration:    item.ActualDuration(),
		CompletedAt: completedAt,
	}

	history, err := s.ForBusiness(ctx, businessID)
	if err != nil {
		return err
	}
	history = append(history, entry)
	if err := store.WriteCollection(ctx, s.store, store.HistoryKey(businessID), history); err != nil {
		return err
	}

	if err := s.rollupStaff(ctx, businessID, item.AssignedStaff, total); err != nil {
		return err
	}
	return s.rollupCustomer(ctx, businessID, item.CarID, completedAt)
}

// Annotate attaches notes and an optional 1-5 rating to a history entry and
// folds the rating into the staff member's running average.
func (s *HistoryService) Annotate(ctx context.Context, businessID string, historyID uuid.UUID, notes string, rating *int) (*models.ServiceHistory, error) {
	history, err := s.ForBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	for i := range history {
		if history[i].ID != historyID {
			continue
		}
		if notes != "" {
			history[i].Notes = notes
		}
		ratingChanged := rating != nil
		if ratingChanged {
			history[i].Rating = rating
		}
		if err := store.WriteCollection(ctx, s.store, store.HistoryKey(businessID), history); err != nil {
			return nil, err
		}
		if ratingChanged {
			if err := s.rollupRating(ctx, businessID, history[i].StaffID, history); err != nil {
				return nil, err
			}
		}
		return &history[i], nil
	}
	return nil, ErrNotFound
}

func (s *HistoryService) rollupStaff(ctx context.Context, businessID string, staffID *uuid.UUID, revenue decimal.Decimal) error {
	if staffID == nil {
		return nil
	}
	staff, err := store.ReadCollection[models.Staff](ctx, s.store, store.StaffKey(businessID))
	if err != nil {
		return err
	}
	for i := range staff {
		if staff[i].ID == *staffID {
			staff[i].Performance.ServicesCompleted++
			staff[i].Performance.TotalRevenue = staff[i].Performance.TotalRevenue.Add(revenue)
			return store.WriteCollection(ctx, s.store, store.StaffKey(businessID), staff)
		}
	}
	// Staff deleted between assignment and completion; nothing to roll up.
	return nil
}

// rollupRating recomputes the staff member's average from the rated log
// entries, so unrated completions never dilute it and replacing an entry's
// rating does not double count.
func (s *HistoryService) rollupRating(ctx context.Context, businessID string, staffID *uuid.UUID, history []models.ServiceHistory) error {
	if staffID == nil {
		return nil
	}
	var sum, rated int
	for _, h := range history {
		if h.StaffID != nil && *h.StaffID == *staffID && h.Rating != nil {
			sum += *h.Rating
			rated++
		}
	}
	if rated == 0 {
		return nil
	}
	staff, err := store.ReadCollection[models.Staff](ctx, s.store, store.StaffKey(businessID))
	if err != nil {
		return err
	}
	for i := range staff {
		if staff[i].ID != *staffID {
			continue
		}
		staff[i].Performance.AverageRating = float64(sum) / float64(rated)
		return store.WriteCollection(ctx, s.store, store.StaffKey(businessID), staff)
	}
	return nil
}

func (s *HistoryService) rollupCustomer(ctx context.Context, businessID string, carID uuid.UUID, visitedAt time.Time) error {
	cars, err := store.ReadCollection[models.Car](ctx, s.store, store.CarsKey(businessID))
	if err != nil {
		return err
	}
	car := findCar(cars, carID)
	if car == nil {
		return nil
	}

	customers, err := store.ReadCollection[models.Customer](ctx, s.store, store.CustomersKey(businessID))
	if err != nil {
		return err
	}
	phone := utils.NormalizePhone(car.Owner.Phone)
	for i := range customers {
		if utils.NormalizePhone(customers[i].Phone) == phone {
			customers[i].TotalVisits++
			customers[i].LoyaltyPoints += LoyaltyPointsPerVisit
			t := visitedAt
			customers[i].LastVisit = &t
			return store.WriteCollection(ctx, s.store, store.CustomersKey(businessID), customers)
		}
	}
	return nil
}
