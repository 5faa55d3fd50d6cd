// README: Handler tests for identity, role and validation checks.
package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	httptransport "github.com/RitikChahar/RoomSpa/internal/http"
	"github.com/RitikChahar/RoomSpa/internal/modules/earnings"
	"github.com/RitikChahar/RoomSpa/internal/modules/matching"
	"github.com/RitikChahar/RoomSpa/internal/modules/order"
	"github.com/RitikChahar/RoomSpa/internal/modules/therapist"
)

// buildTestRouter wires the full router with nil stores. Every path tested
// here is rejected by identity, role, or validation checks before any store
// method could run.
func buildTestRouter() http.Handler {
	return httptransport.NewRouter(
		order.NewService(nil, nil, nil),
		matching.NewService(nil),
		therapist.NewService(nil),
		earnings.NewService(nil),
	)
}

func doRequest(r http.Handler, method, path string, body any, userID, role string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	if role != "" {
		req.Header.Set("X-User-Role", role)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := doRequest(buildTestRouter(), http.MethodGet, "/health", nil, "", "")
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestMissingIdentity(t *testing.T) {
	r := buildTestRouter()

	w := doRequest(r, http.MethodPost, "/api/bookings", map[string]any{}, "", "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("no identity: expected 401, got %d", w.Code)
	}

	w = doRequest(r, http.MethodPost, "/api/bookings", map[string]any{}, "c1", "admin")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("unknown role: expected 401, got %d", w.Code)
	}
}

func TestRoleGates(t *testing.T) {
	r := buildTestRouter()

	// booking creation is a customer action
	w := doRequest(r, http.MethodPost, "/api/bookings", map[string]any{
		"service": "thai", "price": "100.00", "address": "x",
	}, "t1", "therapist")
	if w.Code != http.StatusForbidden {
		t.Errorf("therapist creating booking: expected 403, got %d", w.Code)
	}

	// lifecycle transitions are therapist actions
	w = doRequest(r, http.MethodPost, "/api/therapist/bookings/b1/accept", nil, "c1", "customer")
	if w.Code != http.StatusForbidden {
		t.Errorf("customer accepting booking: expected 403, got %d", w.Code)
	}

	w = doRequest(r, http.MethodGet, "/api/therapist/earnings", nil, "c1", "customer")
	if w.Code != http.StatusForbidden {
		t.Errorf("customer reading earnings: expected 403, got %d", w.Code)
	}
}

func TestCreateValidationErrors(t *testing.T) {
	r := buildTestRouter()

	w := doRequest(r, http.MethodPost, "/api/bookings", nil, "c1", "customer")
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty body: expected 400, got %d", w.Code)
	}

	w = doRequest(r, http.MethodPost, "/api/bookings", map[string]any{
		"service": "thai", "price": "12.345", "address": "x",
	}, "c1", "customer")
	if w.Code != http.StatusBadRequest {
		t.Errorf("3dp price: expected 400, got %d", w.Code)
	}

	w = doRequest(r, http.MethodPost, "/api/bookings", map[string]any{
		"service": "swedish", "price": "100.00", "address": "x",
	}, "c1", "customer")
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown service: expected 400, got %d", w.Code)
	}
}

func TestNearbyValidationErrors(t *testing.T) {
	r := buildTestRouter()

	cases := []struct {
		name, query string
	}{
		{"missing latitude", "longitude=100.5&services=thai"},
		{"bad latitude", "latitude=abc&longitude=100.5&services=thai"},
		{"bad longitude", "latitude=13.7&longitude=east&services=thai"},
		{"missing services", "latitude=13.7&longitude=100.5"},
		{"unknown service", "latitude=13.7&longitude=100.5&services=swedish"},
		{"negative radius", "latitude=13.7&longitude=100.5&services=thai&radius=-1"},
	}
	for _, tc := range cases {
		w := doRequest(r, http.MethodGet, "/api/therapists/nearby?"+tc.query, nil, "c1", "customer")
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", tc.name, w.Code)
		}
	}
}

func TestEarningsBadPeriod(t *testing.T) {
	r := buildTestRouter()
	w := doRequest(r, http.MethodGet, "/api/therapist/earnings?period=year", nil, "t1", "therapist")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestReviewRatingBounds(t *testing.T) {
	r := buildTestRouter()
	w := doRequest(r, http.MethodPost, "/api/bookings/b1/review", map[string]any{
		"rating": 6,
	}, "c1", "customer")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
