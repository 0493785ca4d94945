// services/reminder_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"labrise-backend/models"
	"labrise-backend/store"
	"labrise-backend/utils"
)

// ReminderService sends re-wash SMS reminders to customers whose last visit
// is older than the configured threshold and logs every attempt.
type ReminderService struct {
	store      store.Store
	log        zerolog.Logger
	client     *twilio.RestClient
	fromNumber string
	afterDays  int
	now        func() time.Time
}

type ReminderConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string
	AfterDays  int
}

func NewReminderService(st store.Store, log zerolog.Logger, cfg ReminderConfig) *ReminderService {
	return &ReminderService{
		store: st,
		log:   log,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.AccountSID,
			Password: cfg.AuthToken,
		}),
		fromNumber: cfg.FromNumber,
		afterDays:  cfg.AfterDays,
		now:        time.Now,
	}
}

// StartScheduler runs the daily sweep on the given cron expression.
func (s *ReminderService) StartScheduler(spec string) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		s.SendDailyReminders(context.Background())
	}); err != nil {
		return nil, err
	}
	c.Start()
	s.log.Info().Str("cron", spec).Msg("reminder scheduler started")
	return c, nil
}

// SendDailyReminders processes every active business partition.
func (s *ReminderService) SendDailyReminders(ctx context.Context) {
	s.log.Info().Msg("starting daily reminder processing")

	businesses, err := store.ReadCollection[models.Business](ctx, s.store, store.BusinessesKey)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to read business directory")
		return
	}
	for _, b := range businesses {
		if !b.IsActive {
			continue
		}
		s.ProcessBusinessReminders(ctx, b.ID.String())
	}

	s.log.Info().Msg("daily reminder processing completed")
}

// ProcessBusinessReminders reminds every overdue customer of one business.
func (s *ReminderService) ProcessBusinessReminders(ctx context.Context, businessID string) {
	customers, err := store.ReadCollection[models.Customer](ctx, s.store, store.CustomersKey(businessID))
	if err != nil {
		s.log.Error().Err(err).Str("business_id", businessID).Msg("failed to read customers")
		return
	}

	for _, customer := range customers {
		if customer.LastVisit == nil {
			continue
		}
		if utils.DaysBetween(*customer.LastVisit, s.now()) < s.afterDays {
			continue
		}
		s.sendReminder(ctx, businessID, customer)
	}
}

func (s *ReminderService) sendReminder(ctx context.Context, businessID string, customer models.Customer) {
	message := fmt.Sprintf(
		"Hi %s, it has been a while since your last wash at LaBrise. Drop by any time this week!",
		customer.Name,
	)

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(customer.Phone)
	params.SetFrom(s.fromNumber)
	params.SetBody(message)

	status := "sent"
	errorMsg := ""
	if _, err := s.client.Api.CreateMessage(params); err != nil {
		s.log.Error().Err(err).Str("phone", customer.Phone).Msg("failed to send reminder")
		status = "failed"
		errorMsg = err.Error()
	}

	entry := models.ReminderLog{
		ID:           uuid.New(),
		CustomerID:   customer.ID,
		Message:      message,
		Channel:      "sms",
		Status:       status,
		ErrorMessage: errorMsg,
		SentAt:       s.now(),
	}

	logKey := store.ReminderLogKey(businessID)
	entries, err := store.ReadCollection[models.ReminderLog](ctx, s.store, logKey)
	if err != nil {
		s.log.Error().Err(err).Str("business_id", businessID).Msg("failed to read reminder log")
		return
	}
	entries = append(entries, entry)
	if err := store.WriteCollection(ctx, s.store, logKey, entries); err != nil {
		s.log.Error().Err(err).Str("business_id", businessID).Msg("failed to write reminder log")
	}
}
