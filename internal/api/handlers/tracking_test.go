package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fleettrack/internal/config"
	"fleettrack/internal/models"
	"fleettrack/internal/repository"
	"fleettrack/internal/service"
	"fleettrack/pkg/ws"
)

func newTestRouter(t *testing.T, apiKey string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		PositionSource: service.SourceIngest,
		IdleAfter:      5 * time.Minute,
		OfflineAfter:   10 * time.Minute,
	}
	cache, err := repository.NewReportCache(context.Background(), "", time.Minute)
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}
	logger := zap.NewNop()
	tracker := service.NewTracker(cfg, logger, repository.NewMemory(), cache)

	if _, err := tracker.CreateVehicle(context.Background(), &models.InsertVehicle{
		Name:         "Truck 01",
		LicensePlate: "B-1042-TK",
		SpeedLimit:   80,
		Latitude:     52.52,
		Longitude:    13.405,
	}); err != nil {
		t.Fatalf("create vehicle: %v", err)
	}

	handler := NewHandler(logger, tracker, ws.NewHub(logger), apiKey)
	router := gin.New()
	handler.RegisterRoutes(router)
	return router
}

func postTracking(router *gin.Engine, body, apiKey string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/tracking", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestPostTrackingStatusCodes(t *testing.T) {
	router := newTestRouter(t, "")

	tests := []struct {
		name string
		body string
		want int
	}{
		{"valid report", `{"license_plate":"B-1042-TK","latitude":52.53,"longitude":13.41,"speed":40}`, http.StatusOK},
		{"lowercase plate resolves", `{"license_plate":"b-1042-tk","latitude":52.53,"longitude":13.41,"speed":40}`, http.StatusOK},
		{"unknown plate", `{"license_plate":"X-0000-ZZ","latitude":52.53,"longitude":13.41,"speed":40}`, http.StatusNotFound},
		{"latitude out of range", `{"license_plate":"B-1042-TK","latitude":200,"longitude":13.41,"speed":40}`, http.StatusBadRequest},
		{"negative speed", `{"license_plate":"B-1042-TK","latitude":52.53,"longitude":13.41,"speed":-5}`, http.StatusBadRequest},
		{"malformed json", `{"license_plate":`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := postTracking(router, tt.body, ""); w.Code != tt.want {
				t.Errorf("status = %d, want %d, body %s", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestPostTrackingAPIKey(t *testing.T) {
	router := newTestRouter(t, "secret")
	body := `{"license_plate":"B-1042-TK","latitude":52.53,"longitude":13.41,"speed":40}`

	if w := postTracking(router, body, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("missing key: status = %d, want 401", w.Code)
	}
	if w := postTracking(router, body, "wrong"); w.Code != http.StatusUnauthorized {
		t.Errorf("wrong key: status = %d, want 401", w.Code)
	}
	if w := postTracking(router, body, "secret"); w.Code != http.StatusOK {
		t.Errorf("correct key: status = %d, want 200", w.Code)
	}
}

func TestVehicleEndpoints(t *testing.T) {
	router := newTestRouter(t, "")

	// 列表
	req := httptest.NewRequest(http.MethodGet, "/api/vehicles", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("list: status = %d", w.Code)
	}

	// 未知车辆
	req = httptest.NewRequest(http.MethodGet, "/api/vehicles/missing", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("get missing: status = %d, want 404", w.Code)
	}

	// 重复车牌
	body := `{"name":"Truck 99","license_plate":"b-1042-tk","speed_limit":80,"latitude":52.5,"longitude":13.4}`
	req = httptest.NewRequest(http.MethodPost, "/api/vehicles", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate plate: status = %d, want 409", w.Code)
	}
}

func TestReportEndpointsBadWindow(t *testing.T) {
	router := newTestRouter(t, "")

	req := httptest.NewRequest(http.MethodGet, "/api/reports/fleet-stats?start=notatime", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad window: status = %d, want 400", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/reports/fleet-stats", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("default window: status = %d, want 200", w.Code)
	}
}
