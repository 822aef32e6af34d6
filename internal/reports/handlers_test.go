package reports

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/amble-health/amble/internal/storage"
	"github.com/amble-health/amble/internal/storage/memory"
	"github.com/amble-health/amble/internal/userctx"
	"github.com/amble-health/amble/internal/vitals"
)

type mockShopping struct {
	items []storage.Ingredient
}

func (m *mockShopping) ShoppingList(ctx context.Context, userID string) []storage.Ingredient {
	return m.items
}

type mockTotals struct {
	totals vitals.Totals
}

func (m *mockTotals) Totals(userID, date string) vitals.Totals {
	return m.totals
}

func newTestService() *Service {
	shopping := &mockShopping{items: []storage.Ingredient{
		{Name: "Salmon Fillet", Quantity: "200g", SmartGroup: "Seafood"},
		{Name: "Olive Oil", Quantity: "2 tbsp", SmartGroup: "Oils"},
		{Name: "Asparagus", Quantity: "1 bunch", SmartGroup: "Produce"},
	}}
	totals := &mockTotals{totals: vitals.Totals{
		TotalCalories: 420,
		TotalProtein:  38,
		TotalFat:      28,
		TotalCarbs:    4,
		MealCount:     1,
	}}

	gen := NewGenerator(shopping, totals)
	return NewService(memory.New(), gen, nil, 50, 900)
}

func requestWithUser(method, target string, body []byte) *http.Request {
	var r *http.Request
	if body != nil {
		r = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	return r.WithContext(userctx.WithUserID(r.Context(), "2"))
}

func TestCreateReportCSV(t *testing.T) {
	h := NewHandlers(newTestService())

	body := []byte(`{"format":"csv","for_date":"2026-08-29"}`)
	r := requestWithUser(http.MethodPost, "/v1/reports", body)
	w := httptest.NewRecorder()

	h.HandleCreate(w, r)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var dto ReportDTO
	if err := json.NewDecoder(w.Body).Decode(&dto); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if dto.Format != FormatCSV {
		t.Errorf("expected format csv, got %s", dto.Format)
	}
	if dto.Status != StatusReady {
		t.Errorf("expected status ready, got %s", dto.Status)
	}
	if dto.SizeBytes == 0 {
		t.Error("expected non-zero size")
	}
	if !strings.Contains(dto.DownloadURL, "/v1/reports/") {
		t.Errorf("expected local download URL, got %s", dto.DownloadURL)
	}
}

func TestCreateReportInvalidFormat(t *testing.T) {
	h := NewHandlers(newTestService())

	r := requestWithUser(http.MethodPost, "/v1/reports", []byte(`{"format":"xlsx"}`))
	w := httptest.NewRecorder()

	h.HandleCreate(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "invalid_format") {
		t.Errorf("expected invalid_format error, got %s", w.Body.String())
	}
}

func TestCreateReportInvalidDate(t *testing.T) {
	h := NewHandlers(newTestService())

	r := requestWithUser(http.MethodPost, "/v1/reports", []byte(`{"format":"pdf","for_date":"29-08-2026"}`))
	w := httptest.NewRecorder()

	h.HandleCreate(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestDownloadCSVContent(t *testing.T) {
	svc := newTestService()
	h := NewHandlers(svc)

	report, err := svc.CreateReport(context.Background(), "2", CreateReportRequest{Format: FormatCSV, ForDate: "2026-08-29"})
	if err != nil {
		t.Fatalf("create report: %v", err)
	}

	r := requestWithUser(http.MethodGet, "/v1/reports/"+report.ID.String()+"/download", nil)
	r.SetPathValue("id", report.ID.String())
	w := httptest.NewRecorder()

	h.HandleDownload(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("expected text/csv, got %s", ct)
	}

	rows, err := csv.NewReader(w.Body).ReadAll()
	if err != nil {
		t.Fatalf("parse CSV: %v", err)
	}
	// header + three items
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	if rows[0][0] != "category" || rows[0][1] != "name" {
		t.Errorf("unexpected header: %v", rows[0])
	}
	if rows[1][1] != "Salmon Fillet" || rows[1][0] != "Seafood" {
		t.Errorf("unexpected first row: %v", rows[1])
	}
}

func TestDownloadPDFHasMagicBytes(t *testing.T) {
	svc := newTestService()

	report, err := svc.CreateReport(context.Background(), "2", CreateReportRequest{Format: FormatPDF, ForDate: "2026-08-29"})
	if err != nil {
		t.Fatalf("create report: %v", err)
	}

	data, contentType, err := svc.ReportData(context.Background(), "2", report.ID)
	if err != nil {
		t.Fatalf("report data: %v", err)
	}
	if contentType != "application/pdf" {
		t.Errorf("expected application/pdf, got %s", contentType)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("expected PDF magic bytes")
	}
}

func TestListReportsScopedToUser(t *testing.T) {
	svc := newTestService()
	h := NewHandlers(svc)

	if _, err := svc.CreateReport(context.Background(), "2", CreateReportRequest{Format: FormatCSV}); err != nil {
		t.Fatalf("create report: %v", err)
	}
	if _, err := svc.CreateReport(context.Background(), "other", CreateReportRequest{Format: FormatCSV}); err != nil {
		t.Fatalf("create report: %v", err)
	}

	r := requestWithUser(http.MethodGet, "/v1/reports", nil)
	w := httptest.NewRecorder()

	h.HandleList(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp ReportsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Reports) != 1 {
		t.Fatalf("expected 1 report for user 2, got %d", len(resp.Reports))
	}
}

func TestDeleteReport(t *testing.T) {
	svc := newTestService()
	h := NewHandlers(svc)

	report, err := svc.CreateReport(context.Background(), "2", CreateReportRequest{Format: FormatCSV})
	if err != nil {
		t.Fatalf("create report: %v", err)
	}

	r := requestWithUser(http.MethodDelete, "/v1/reports/"+report.ID.String(), nil)
	r.SetPathValue("id", report.ID.String())
	w := httptest.NewRecorder()

	h.HandleDelete(w, r)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}

	if _, err := svc.GetReport(context.Background(), "2", report.ID); err != ErrReportNotFound {
		t.Errorf("expected ErrReportNotFound after delete, got %v", err)
	}
}

func TestDeleteForeignReportNotFound(t *testing.T) {
	svc := newTestService()

	report, err := svc.CreateReport(context.Background(), "other", CreateReportRequest{Format: FormatCSV})
	if err != nil {
		t.Fatalf("create report: %v", err)
	}

	if err := svc.DeleteReport(context.Background(), "2", report.ID); err != ErrReportNotFound {
		t.Errorf("expected ErrReportNotFound for foreign report, got %v", err)
	}
}
