package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labrise-backend/models"
	"labrise-backend/routes"
	"labrise-backend/services"
	"labrise-backend/store"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.NewMemory()
	log := zerolog.Nop()
	history := services.NewHistoryService(st, log)

	return routes.SetupRouter(routes.Deps{
		Store:     st,
		Queue:     services.NewQueueService(st, history, log),
		History:   history,
		Analytics: services.NewAnalyticsService(st, history),
		Sync:      services.NewCustomerSyncService(st, log),
		Log:       log,
		CORS:      []string{"http://localhost:3000"},
	})
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestQueueLifecycleOverHTTP(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/businesses", gin.H{
		"name":      "LaBrise Ntinda",
		"ownerName": "Allan K.",
		"phone":     "+256700000000",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	business := decode[models.Business](t, w)
	base := fmt.Sprintf("/api/businesses/%s", business.ID)

	w = doJSON(t, r, http.MethodPost, base+"/cars", gin.H{
		"licensePlate": "UBA 123X",
		"make":         "Toyota",
		"color":        "silver",
		"owner": gin.H{
			"name":  "Grace Auma",
			"phone": "+256701111111",
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	car := decode[models.Car](t, w)

	w = doJSON(t, r, http.MethodPost, base+"/services", gin.H{
		"name":     "Exterior Wash",
		"amount":   "15000",
		"duration": 30,
		"category": "basic",
		"carSizes": []string{"compact", "suv"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	serviceA := decode[models.Service](t, w)

	w = doJSON(t, r, http.MethodPost, base+"/services", gin.H{
		"name":     "Full Detail",
		"amount":   "25000",
		"duration": 45,
		"category": "premium",
		"carSizes": []string{"suv"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	serviceB := decode[models.Service](t, w)

	w = doJSON(t, r, http.MethodPost, base+"/queue", gin.H{
		"carId":      car.ID,
		"serviceIds": []string{serviceA.ID.String(), serviceB.ID.String()},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	item := decode[models.QueueItem](t, w)
	assert.Equal(t, 75, item.EstimatedTime)
	assert.Equal(t, models.StatusWaiting, item.Status)

	itemPath := fmt.Sprintf("%s/queue/%s", base, item.ID)

	// Completing a waiting item is rejected.
	w = doJSON(t, r, http.MethodPost, itemPath+"/complete", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodPost, itemPath+"/start", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, itemPath+"/complete", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	completed := decode[models.QueueItem](t, w)
	assert.Equal(t, models.StatusCompleted, completed.Status)
	require.NotNil(t, completed.CompletedTime)

	// Completed items cannot be removed under the default policy.
	w = doJSON(t, r, http.MethodDelete, itemPath, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodGet, base+"/analytics", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	dash := decode[services.Dashboard](t, w)
	assert.True(t, dash.TodayRevenue.Equal(decimal.NewFromInt(40000)), w.Body.String())
	assert.Equal(t, 1, dash.TotalServices)
	assert.Equal(t, 1, dash.QueueByStatus["completed"])

	w = doJSON(t, r, http.MethodGet, base+"/analytics/revenue?days=7", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// History endpoint carries the snapshot.
	w = doJSON(t, r, http.MethodGet, base+"/history", nil)
	require.Equal(t, http.StatusOK, w.Code)
	history := decode[[]models.ServiceHistory](t, w)
	require.Len(t, history, 1)
	assert.True(t, history[0].TotalAmount.Equal(decimal.NewFromInt(40000)))
}

func TestUnknownBusinessIsRejected(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/businesses/6b1e0b1a-9158-4c0c-8d6e-2c1f6f7a9b1c/cars", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/businesses/not-a-uuid/cars", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestServiceValidationOverHTTP(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/businesses", gin.H{
		"name":      "LaBrise Kololo",
		"ownerName": "Allan K.",
		"phone":     "+256700000001",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	business := decode[models.Business](t, w)
	base := fmt.Sprintf("/api/businesses/%s", business.ID)

	// Empty car sizes are rejected at the data layer.
	w = doJSON(t, r, http.MethodPost, base+"/services", gin.H{
		"name":     "Wax",
		"amount":   "5000",
		"duration": 15,
		"category": "basic",
		"carSizes": []string{},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, base+"/services", gin.H{
		"name":     "Wax",
		"amount":   "5000",
		"duration": 15,
		"category": "deluxe",
		"carSizes": []string{"suv"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCarImageCapOverHTTP(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/businesses", gin.H{
		"name":      "LaBrise Bugolobi",
		"ownerName": "Allan K.",
		"phone":     "+256700000002",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	business := decode[models.Business](t, w)
	base := fmt.Sprintf("/api/businesses/%s", business.ID)

	tooMany := []string{"a.jpg", "b.jpg", "c.jpg", "d.jpg", "e.jpg"}
	w = doJSON(t, r, http.MethodPost, base+"/cars", gin.H{
		"licensePlate": "UBF 003C",
		"make":         "Honda",
		"images":       tooMany,
		"owner":        gin.H{"name": "Brian O.", "phone": "+256705555555"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, base+"/cars", gin.H{
		"licensePlate": "UBF 003C",
		"make":         "Honda",
		"images":       tooMany[:models.MaxCarImages],
		"owner":        gin.H{"name": "Brian O.", "phone": "+256705555555"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	car := decode[models.Car](t, w)

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("%s/cars/%s", base, car.ID), gin.H{
		"images": tooMany,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQueueStatusFilterOverHTTP(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/businesses", gin.H{
		"name":      "LaBrise Entebbe",
		"ownerName": "Allan K.",
		"phone":     "+256700000003",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	business := decode[models.Business](t, w)
	base := fmt.Sprintf("/api/businesses/%s", business.ID)

	w = doJSON(t, r, http.MethodPost, base+"/cars", gin.H{
		"licensePlate": "UBG 004D",
		"make":         "Subaru",
		"owner":        gin.H{"name": "Janet A.", "phone": "+256706666666"},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	car := decode[models.Car](t, w)

	w = doJSON(t, r, http.MethodPost, base+"/services", gin.H{
		"name":     "Exterior Wash",
		"amount":   "15000",
		"duration": 30,
		"category": "basic",
		"carSizes": []string{"compact"},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	svc := decode[models.Service](t, w)

	enqueue := func() models.QueueItem {
		w := doJSON(t, r, http.MethodPost, base+"/queue", gin.H{
			"carId":      car.ID,
			"serviceIds": []string{svc.ID.String()},
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		return decode[models.QueueItem](t, w)
	}
	first := enqueue()
	enqueue()

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("%s/queue/%s/start", base, first.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, base+"/queue?status=waiting", nil)
	require.Equal(t, http.StatusOK, w.Code)
	waiting := decode[[]models.QueueItem](t, w)
	require.Len(t, waiting, 1)
	assert.Equal(t, models.StatusWaiting, waiting[0].Status)

	w = doJSON(t, r, http.MethodGet, base+"/queue?status=in_progress", nil)
	require.Equal(t, http.StatusOK, w.Code)
	inProgress := decode[[]models.QueueItem](t, w)
	require.Len(t, inProgress, 1)
	assert.Equal(t, first.ID, inProgress[0].ID)

	w = doJSON(t, r, http.MethodGet, base+"/queue?status=done", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
