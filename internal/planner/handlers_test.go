package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amble-health/amble/internal/userctx"
)

func acceptRequest(t *testing.T, userID string, generation uint64) *http.Request {
	t.Helper()
	body, _ := json.Marshal(AcceptRequest{Generation: generation})
	req := httptest.NewRequest(http.MethodPost, "/v1/plan/accept", bytes.NewReader(body))
	return req.WithContext(userctx.WithUserID(req.Context(), userID))
}

func TestHandleAccept_Success(t *testing.T) {
	service, _ := newTestService(&mockEntriesRepo{})
	handler := NewHandler(service)

	gen := service.RegisterCandidate(context.Background(), "2", grilledSalmon(), 0)

	w := httptest.NewRecorder()
	handler.HandleAccept(w, acceptRequest(t, "2", gen))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var response AcceptResponse
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Entry.MealID != 7 || response.Entry.Status != "Accepted" {
		t.Errorf("unexpected entry: %+v", response.Entry)
	}
	if response.Totals.TotalCalories != 420 {
		t.Errorf("expected totals 420, got %d", response.Totals.TotalCalories)
	}
}

func TestHandleAccept_NoCandidate(t *testing.T) {
	service, _ := newTestService(&mockEntriesRepo{})
	handler := NewHandler(service)

	w := httptest.NewRecorder()
	handler.HandleAccept(w, acceptRequest(t, "2", 0))

	if w.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", w.Code)
	}

	var body map[string]map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["error"]["code"] != "no_candidate" {
		t.Errorf("expected code 'no_candidate', got '%s'", body["error"]["code"])
	}
}

func TestHandleAccept_EmptyBodyAcceptsLiveCandidate(t *testing.T) {
	service, _ := newTestService(&mockEntriesRepo{})
	handler := NewHandler(service)

	service.RegisterCandidate(context.Background(), "2", grilledSalmon(), 0)

	req := httptest.NewRequest(http.MethodPost, "/v1/plan/accept", nil)
	req = req.WithContext(userctx.WithUserID(req.Context(), "2"))

	w := httptest.NewRecorder()
	handler.HandleAccept(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201 for bodyless accept, got %d: %s", w.Code, w.Body.String())
	}
}

func TestHandleWeek_ReturnsSevenDays(t *testing.T) {
	service, _ := newTestService(&mockEntriesRepo{})
	handler := NewHandler(service)
	ctx := context.Background()

	gen := service.RegisterCandidate(ctx, "2", grilledSalmon(), 4)
	if _, err := service.Accept(ctx, "2", gen); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/plan/week", nil)
	req = req.WithContext(userctx.WithUserID(req.Context(), "2"))

	w := httptest.NewRecorder()
	handler.HandleWeek(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var response WeekResponse
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(response.Days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(response.Days))
	}
	if len(response.Days[4].Entries) != 1 || response.Days[4].Entries[0].MealName != "Grilled Salmon" {
		t.Errorf("expected meal on day 4, got %+v", response.Days[4])
	}
}

func TestHandleCancel(t *testing.T) {
	service, _ := newTestService(&mockEntriesRepo{})
	handler := NewHandler(service)

	service.RegisterCandidate(context.Background(), "2", grilledSalmon(), 0)

	req := httptest.NewRequest(http.MethodPost, "/v1/plan/cancel", nil)
	req = req.WithContext(userctx.WithUserID(req.Context(), "2"))

	w := httptest.NewRecorder()
	handler.HandleCancel(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var response CancelResponse
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !response.Cancelled {
		t.Error("expected cancelled=true")
	}
}
