package services

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"labrise-backend/models"
	"labrise-backend/store"
	"labrise-backend/utils"
)

// PopularService is one entry of the ranked service counts.
type PopularService struct {
	ServiceID string `json:"serviceId"`
	Name      string `json:"name"`
	Count     int    `json:"count"`
}

// Dashboard is the derived read-only overview for a business.
type Dashboard struct {
	TodayRevenue    decimal.Decimal         `json:"todayRevenue"`
	WeekRevenue     decimal.Decimal         `json:"weekRevenue"`
	MonthRevenue    decimal.Decimal         `json:"monthRevenue"`
	TotalServices   int                     `json:"totalServices"`
	PopularServices []PopularService        `json:"popularServices"`
	RecentActivity  []models.ServiceHistory `json:"recentActivity"`
	QueueByStatus   map[string]int          `json:"queueByStatus"`
}

// AnalyticsService derives revenue, rankings, and the activity feed from the
// persisted history log. Nothing here mutates state.
type AnalyticsService struct {
	history *HistoryService
	store   store.Store
	now     func() time.Time
}

func NewAnalyticsService(st store.Store, history *HistoryService) *AnalyticsService {
	return &AnalyticsService{history: history, store: st, now: time.Now}
}

// RevenueByPeriod sums history totals completed within the trailing period.
// Monotonically non-decreasing in days for fixed data.
func (s *AnalyticsService) RevenueByPeriod(ctx context.Context, businessID string, days int) (decimal.Decimal, error) {
	history, err := s.history.ForBusiness(ctx, businessID)
	if err != nil {
		return decimal.Zero, err
	}
	cutoff := utils.PeriodCutoff(s.now(), days)

	total := decimal.Zero
	for _, h := range history {
		if !h.CompletedAt.Before(cutoff) {
			total = total.Add(h.TotalAmount)
		}
	}
	return total, nil
}

// PopularServices counts service occurrences across the history log and
// returns the top 5. Ties break on ascending service id so the ranking is
// deterministic.
func (s *AnalyticsService) PopularServices(ctx context.Context, businessID string) ([]PopularService, error) {
	history, err := s.history.ForBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	names := make(map[string]string)
	for _, h := range history {
		for _, line := range h.Lines {
			id := line.ServiceID.String()
			counts[id]++
			if line.ServiceName != "" {
				names[id] = line.ServiceName
			}
		}
	}

	ranked := make([]PopularService, 0, len(counts))
	for id, count := range counts {
		name := names[id]
		if name == "" {
			name = "Unknown Service"
		}
		ranked = append(ranked, PopularService{ServiceID: id, Name: name, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].ServiceID < ranked[j].ServiceID
	})

	if len(ranked) > 5 {
		ranked = ranked[:5]
	}
	return ranked, nil
}

// RecentActivity returns the last 10 completed jobs, newest first.
func (s *AnalyticsService) RecentActivity(ctx context.Context, businessID string) ([]models.ServiceHistory, error) {
	history, err := s.history.ForBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].CompletedAt.After(history[j].CompletedAt)
	})
	if len(history) > 10 {
		history = history[:10]
	}
	return history, nil
}

// Dashboard assembles the overview in one pass.
func (s *AnalyticsService) Dashboard(ctx context.Context, businessID string) (*Dashboard, error) {
	history, err := s.history.ForBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	dayCutoff := utils.PeriodCutoff(now, 1)
	weekCutoff := utils.PeriodCutoff(now, 7)
	monthCutoff := utils.PeriodCutoff(now, 30)

	dash := &Dashboard{
		TodayRevenue:  decimal.Zero,
		WeekRevenue:   decimal.Zero,
		MonthRevenue:  decimal.Zero,
		TotalServices: len(history),
		QueueByStatus: make(map[string]int),
	}
	for _, h := range history {
		if !h.CompletedAt.Before(dayCutoff) {
			dash.TodayRevenue = dash.TodayRevenue.Add(h.TotalAmount)
		}
		if !h.CompletedAt.Before(weekCutoff) {
			dash.WeekRevenue = dash.WeekRevenue.Add(h.TotalAmount)
		}
		if !h.CompletedAt.Before(monthCutoff) {
			dash.MonthRevenue = dash.MonthRevenue.Add(h.TotalAmount)
		}
	}

	if dash.PopularServices, err = s.PopularServices(ctx, businessID); err != nil {
		return nil, err
	}
	if dash.RecentActivity, err = s.RecentActivity(ctx, businessID); err != nil {
		return nil, err
	}

	queue, err := store.ReadCollection[models.QueueItem](ctx, s.store, store.QueueKey(businessID))
	if err != nil {
		return nil, err
	}
	for _, item := range queue {
		dash.QueueByStatus[string(item.Status)]++
	}
	return dash, nil
}
