package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"labrise-backend/models"
	"labrise-backend/store"
)

// FallbackServiceDuration is the per-service estimate used when a referenced
// catalog entry cannot be resolved. The substitution is not silent: the item
// is flagged as degraded so the data problem stays visible.
const FallbackServiceDuration = 30

// allowedTransitions is the queue lifecycle as a directed graph. Completed is
// terminal; there is no path back to waiting.
var allowedTransitions = map[models.QueueStatus][]models.QueueStatus{
	models.StatusWaiting:    {models.StatusInProgress},
	models.StatusInProgress: {models.StatusCompleted},
	models.StatusCompleted:  {},
}

// CanTransition reports whether from -> to is a permitted status change.
func CanTransition(from, to models.QueueStatus) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// QueueService manages the set of cars currently being serviced for a
// business partition.
type QueueService struct {
	store                store.Store
	history              *HistoryService
	log                  zerolog.Logger
	allowRemoveCompleted bool
	now                  func() time.Time
}

type QueueOption func(*QueueService)

// WithRemoveCompleted permits removing completed items from the queue.
func WithRemoveCompleted() QueueOption {
	return func(s *QueueService) { s.allowRemoveCompleted = true }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) QueueOption {
	return func(s *QueueService) { s.now = now }
}

func NewQueueService(st store.Store, history *HistoryService, log zerolog.Logger, opts ...QueueOption) *QueueService {
	s := &QueueService{
		store:   st,
		history: history,
		log:     log,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns the full queue for the business, completed items included.
func (s *QueueService) List(ctx context.Context, businessID string) ([]models.QueueItem, error) {
	return store.ReadCollection[models.QueueItem](ctx, s.store, store.QueueKey(businessID))
}

// Get returns a single queue item by id.
func (s *QueueService) Get(ctx context.Context, businessID string, itemID uuid.UUID) (*models.QueueItem, error) {
	queue, err := s.List(ctx, businessID)
	if err != nil {
		return nil, err
	}
	for i := range queue {
		if queue[i].ID == itemID {
			return &queue[i], nil
		}
	}
	return nil, ErrNotFound
}

// Enqueue adds a car with an ordered set of services to the queue. The
// estimate is the sum of catalog durations; unresolvable service ids
// contribute the flat fallback and mark the estimate degraded.
func (s *QueueService) Enqueue(ctx context.Context, businessID string, carID uuid.UUID, serviceIDs []uuid.UUID, assignedStaff *uuid.UUID) (*models.QueueItem, error) {
	cars, err := store.ReadCollection[models.Car](ctx, s.store, store.CarsKey(businessID))
	if err != nil {
		return nil, err
	}
	if findCar(cars, carID) == nil {
		return nil, ErrNotFound
	}

	catalog, err := store.ReadCollection[models.Service](ctx, s.store, store.ServicesKey(businessID))
	if err != nil {
		return nil, err
	}
	byID := indexServices(catalog)

	estimate := 0
	degraded := false
	for _, id := range serviceIDs {
		if svc, ok := byID[id]; ok {
			estimate += svc.Duration
		} else {
			estimate += FallbackServiceDuration
			degraded = true
		}
	}
	if degraded {
		s.log.Warn().
			Str("business_id", businessID).
			Str("car_id", carID.String()).
			Msg("enqueue estimate degraded: unresolved service id")
	}

	item := models.QueueItem{
		ID:               uuid.New(),
		CarID:            carID,
		ServiceIDs:       serviceIDs,
		Status:           models.StatusWaiting,
		EstimatedTime:    estimate,
		EstimateDegraded: degraded,
		AssignedStaff:    assignedStaff,
		CreatedAt:        s.now(),
	}

	queue, err := s.List(ctx, businessID)
	if err != nil {
		return nil, err
	}
	queue = append(queue, item)
	if err := store.WriteCollection(ctx, s.store, store.QueueKey(businessID), queue); err != nil {
		return nil, err
	}
	return &item, nil
}

// Start moves a waiting item to in_progress and records the start time.
func (s *QueueService) Start(ctx context.Context, businessID string, itemID uuid.UUID) (*models.QueueItem, error) {
	return s.transition(ctx, businessID, itemID, models.StatusInProgress)
}

// Complete moves an in-progress item to completed, records the completion
// time, and appends the permanent history record.
func (s *QueueService) Complete(ctx context.Context, businessID string, itemID uuid.UUID) (*models.QueueItem, error) {
	item, err := s.transition(ctx, businessID, itemID, models.StatusCompleted)
	if err != nil {
		return nil, err
	}
	if err := s.history.RecordCompletion(ctx, businessID, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *QueueService) transition(ctx context.Context, businessID string, itemID uuid.UUID, to models.QueueStatus) (*models.QueueItem, error) {
	queue, err := s.List(ctx, businessID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range queue {
		if queue[i].ID == itemID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrNotFound
	}

	item := &queue[idx]
	if !CanTransition(item.Status, to) {
		return nil, &TransitionError{From: item.Status, To: to}
	}

	now := s.now()
	item.Status = to
	switch to {
	case models.StatusInProgress:
		if item.StartTime == nil {
			item.StartTime = &now
		}
	case models.StatusCompleted:
		if item.CompletedTime == nil {
			item.CompletedTime = &now
		}
	}

	if err := store.WriteCollection(ctx, s.store, store.QueueKey(businessID), queue); err != nil {
		return nil, err
	}
	return item, nil
}

// AssignStaff sets or replaces the staff member on an item. Inactive or
// unknown staff ids are rejected.
func (s *QueueService) AssignStaff(ctx context.Context, businessID string, itemID, staffID uuid.UUID) (*models.QueueItem, error) {
	staff, err := store.ReadCollection[models.Staff](ctx, s.store, store.StaffKey(businessID))
	if err != nil {
		return nil, err
	}
	var member *models.Staff
	for i := range staff {
		if staff[i].ID == staffID {
			member = &staff[i]
			break
		}
	}
	if member == nil || !member.IsActive {
		return nil, ErrNotFound
	}

	queue, err := s.List(ctx, businessID)
	if err != nil {
		return nil, err
	}
	for i := range queue {
		if queue[i].ID == itemID {
			queue[i].AssignedStaff = &staffID
			if err := store.WriteCollection(ctx, s.store, store.QueueKey(businessID), queue); err != nil {
				return nil, err
			}
			return &queue[i], nil
		}
	}
	return nil, ErrNotFound
}

// Remove deletes an item from the queue. Completed items are only removable
// when the service was configured to allow it; the history record, not the
// queue entry, is the durable trace of finished work.
func (s *QueueService) Remove(ctx context.Context, businessID string, itemID uuid.UUID) error {
	queue, err := s.List(ctx, businessID)
	if err != nil {
		return err
	}

	filtered := queue[:0:0]
	found := false
	for _, item := range queue {
		if item.ID == itemID {
			if item.Status == models.StatusCompleted && !s.allowRemoveCompleted {
				return ErrRemovalNotAllowed
			}
			found = true
			continue
		}
		filtered = append(filtered, item)
	}
	if !found {
		return ErrNotFound
	}
	return store.WriteCollection(ctx, s.store, store.QueueKey(businessID), filtered)
}

func findCar(cars []models.Car, id uuid.UUID) *models.Car {
	for i := range cars {
		if cars[i].ID == id {
			return &cars[i]
		}
	}
	return nil
}

func indexServices(catalog []models.Service) map[uuid.UUID]models.Service {
	byID := make(map[uuid.UUID]models.Service, len(catalog))
	for _, svc := range catalog {
		byID[svc.ID] = svc
	}
	return byID
}
