package venue

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

type venueAPIResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func passthrough(next http.Handler) http.Handler { return next }

func notUsed(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) }

func newTestRouter() (http.Handler, *Service) {
	svc := NewService(newFakeRepo())
	return NewHandler(svc).Routes(passthrough, notUsed, notUsed), svc
}

func performVenueRequest(t *testing.T, h http.Handler, method, path string, payload interface{}) (*httptest.ResponseRecorder, venueAPIResponse) {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("encode payload: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out venueAPIResponse
	if rec.Body.Len() > 0 {
		if err := json.NewDecoder(bytes.NewReader(rec.Body.Bytes())).Decode(&out); err != nil {
			t.Fatalf("decode response: %v (%s)", err, rec.Body.String())
		}
	}
	return rec, out
}

func TestCreateVenueEndpoint(t *testing.T) {
	h, _ := newTestRouter()

	rec, out := performVenueRequest(t, h, http.MethodPost, "/", map[string]interface{}{
		"name":        "Garden Pavilion",
		"description": "Open-air pavilion",
		"location":    "City Park",
		"capacity":    150,
		"pricePerDay": 1800,
		"amenities":   []string{"Garden", "Lighting"},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var v VenueResponse
	if err := json.Unmarshal(out.Data, &v); err != nil {
		t.Fatalf("decode venue: %v", err)
	}
	if v.Name != "Garden Pavilion" || !v.IsActive || v.Owner != DefaultOwner {
		t.Fatalf("unexpected venue: %+v", v)
	}
	if len(v.UnavailableDates) != 0 {
		t.Fatalf("new venue must have no blocks: %+v", v.UnavailableDates)
	}
}

func TestCreateVenueValidation(t *testing.T) {
	h, _ := newTestRouter()

	rec, out := performVenueRequest(t, h, http.MethodPost, "/", map[string]interface{}{
		"name":     "Hall",
		"capacity": 0,
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	for _, field := range []string{"description", "location", "capacity", "pricePerDay"} {
		if _, ok := out.Error.Details[field]; !ok {
			t.Fatalf("expected %s in details, got %v", field, out.Error.Details)
		}
	}

	rec, _ = performVenueRequest(t, h, http.MethodPost, "/", map[string]interface{}{
		"name": "Hall", "description": "d", "location": "l", "capacity": "lots", "pricePerDay": 1,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric capacity, got %d", rec.Code)
	}
}

func TestGetVenueNotFound(t *testing.T) {
	h, _ := newTestRouter()

	rec, out := performVenueRequest(t, h, http.MethodGet, "/"+uuid.New().String(), nil)
	if rec.Code != http.StatusNotFound || out.Error.Message != "Venue not found" {
		t.Fatalf("expected 404 Venue not found, got %d %+v", rec.Code, out.Error)
	}

	rec, _ = performVenueRequest(t, h, http.MethodGet, "/not-a-uuid", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad id, got %d", rec.Code)
	}
}

func TestBlockAndUnblockEndpoints(t *testing.T) {
	h, svc := newTestRouter()
	v := createTestVenue(t, svc, "Hall")
	base := "/" + v.ID.String()

	rec, _ := performVenueRequest(t, h, http.MethodPost, base+"/block-dates", map[string]interface{}{
		"dates":  []string{"2030-07-04", "2030-07-05"},
		"reason": "Private event",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec, out := performVenueRequest(t, h, http.MethodDelete, base+"/unblock-dates", map[string]interface{}{
		"dates": []string{"2030-07-04"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var got VenueResponse
	if err := json.Unmarshal(out.Data, &got); err != nil {
		t.Fatalf("decode venue: %v", err)
	}
	if len(got.UnavailableDates) != 1 || got.UnavailableDates[0].Date.String() != "2030-07-05" {
		t.Fatalf("unexpected blocks: %+v", got.UnavailableDates)
	}

	rec, _ = performVenueRequest(t, h, http.MethodPost, base+"/block-dates", map[string]interface{}{
		"dates": []string{},
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for empty dates, got %d", rec.Code)
	}
}

func TestDeleteVenueEndpoint(t *testing.T) {
	h, svc := newTestRouter()
	v := createTestVenue(t, svc, "Hall")

	rec, _ := performVenueRequest(t, h, http.MethodDelete, "/"+v.ID.String(), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec, out := performVenueRequest(t, h, http.MethodGet, "/"+v.ID.String(), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("inactive venue should still resolve, got %d", rec.Code)
	}
	var got VenueResponse
	json.Unmarshal(out.Data, &got)
	if got.IsActive || got.Lifecycle != LifecycleInactive {
		t.Fatalf("expected inactive venue, got %+v", got)
	}
}
