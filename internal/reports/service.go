package reports

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/amble-health/amble/internal/blob"
	"github.com/amble-health/amble/internal/storage"
	"github.com/google/uuid"
)

// Errors
var (
	ErrInvalidFormat  = fmt.Errorf("invalid format")
	ErrInvalidDate    = fmt.Errorf("invalid date format")
	ErrReportNotFound = fmt.Errorf("report not found")
)

// Service handles report business logic
type Service struct {
	reportsStorage storage.ReportsStorage
	generator      *Generator
	blobStore      blob.Store
	maxListLimit   int
	presignTTL     int
	localMode      bool // true if no S3 configured
	now            func() time.Time
}

// NewService creates a new reports service
func NewService(
	reportsStorage storage.ReportsStorage,
	generator *Generator,
	blobStore blob.Store,
	maxListLimit int,
	presignTTL int,
) *Service {
	return &Service{
		reportsStorage: reportsStorage,
		generator:      generator,
		blobStore:      blobStore,
		maxListLimit:   maxListLimit,
		presignTTL:     presignTTL,
		localMode:      blobStore == nil,
		now:            time.Now,
	}
}

// CreateReport generates and stores a new shopping list export
func (s *Service) CreateReport(ctx context.Context, userID string, req CreateReportRequest) (*Report, error) {
	if req.Format != FormatPDF && req.Format != FormatCSV {
		return nil, ErrInvalidFormat
	}

	if req.ForDate == "" {
		req.ForDate = s.now().UTC().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", req.ForDate); err != nil {
		return nil, ErrInvalidDate
	}

	data, err := s.generator.GenerateReport(ctx, userID, req)
	if err != nil {
		return nil, fmt.Errorf("failed to generate report: %w", err)
	}

	report := &storage.ReportMeta{
		UserID:    userID,
		Format:    req.Format,
		ForDate:   req.ForDate,
		SizeBytes: int64(len(data)),
		Status:    StatusReady,
	}

	if s.localMode {
		// Local mode: store data alongside metadata
		report.Data = data
	} else {
		objectKey := fmt.Sprintf("reports/%s/%s_%s.%s",
			userID,
			req.ForDate,
			uuid.New().String(),
			req.Format,
		)

		if _, err = s.blobStore.PutObject(ctx, objectKey, data, contentTypeFor(req.Format)); err != nil {
			return nil, fmt.Errorf("failed to upload to object storage: %w", err)
		}

		report.ObjectKey = &objectKey
	}

	if err := s.reportsStorage.CreateReport(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to save report metadata: %w", err)
	}

	return s.toReport(report), nil
}

// GetReport retrieves a report by ID, scoped to the requesting user
func (s *Service) GetReport(ctx context.Context, userID string, id uuid.UUID) (*Report, error) {
	meta, err := s.reportsStorage.GetReport(ctx, id)
	if err != nil {
		return nil, ErrReportNotFound
	}
	if meta.UserID != userID {
		return nil, ErrReportNotFound
	}

	return s.toReport(meta), nil
}

// ListReports lists the user's reports, most recent first
func (s *Service) ListReports(ctx context.Context, userID string, limit, offset int) ([]Report, error) {
	if limit <= 0 || limit > s.maxListLimit {
		limit = s.maxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	metaList, err := s.reportsStorage.ListReports(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	reports := make([]Report, len(metaList))
	for i, meta := range metaList {
		reports[i] = *s.toReport(&meta)
	}

	return reports, nil
}

// DeleteReport removes a report and its stored object
func (s *Service) DeleteReport(ctx context.Context, userID string, id uuid.UUID) error {
	meta, err := s.reportsStorage.GetReport(ctx, id)
	if err != nil {
		return ErrReportNotFound
	}
	if meta.UserID != userID {
		return ErrReportNotFound
	}

	if !s.localMode && meta.ObjectKey != nil {
		if err := s.blobStore.DeleteObject(ctx, *meta.ObjectKey); err != nil {
			// Metadata deletion is more important than the blob
			log.Printf("WARN reports: failed to delete object %s: %v", *meta.ObjectKey, err)
		}
	}

	if err := s.reportsStorage.DeleteReport(ctx, id); err != nil {
		return fmt.Errorf("failed to delete report metadata: %w", err)
	}

	return nil
}

// DownloadURL builds the URL the client should follow to fetch bytes
func (s *Service) DownloadURL(ctx context.Context, report *Report, baseURL string) (string, error) {
	if s.localMode {
		return fmt.Sprintf("%s/v1/reports/%s/download", strings.TrimSuffix(baseURL, "/"), report.ID.String()), nil
	}

	if report.ObjectKey == nil {
		return "", fmt.Errorf("object key is missing")
	}

	presignedURL, err := s.blobStore.PresignGet(ctx, *report.ObjectKey, s.presignTTL)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return presignedURL, nil
}

// ReportData returns the raw bytes for local-mode downloads
func (s *Service) ReportData(ctx context.Context, userID string, id uuid.UUID) ([]byte, string, error) {
	report, err := s.GetReport(ctx, userID, id)
	if err != nil {
		return nil, "", err
	}

	if s.localMode {
		return report.Data, contentTypeFor(report.Format), nil
	}

	if report.ObjectKey == nil {
		return nil, "", fmt.Errorf("object key is missing")
	}

	data, err := s.blobStore.GetObject(ctx, *report.ObjectKey)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch object: %w", err)
	}

	return data, contentTypeFor(report.Format), nil
}

func (s *Service) toReport(meta *storage.ReportMeta) *Report {
	return &Report{
		ID:        meta.ID,
		UserID:    meta.UserID,
		Format:    meta.Format,
		ForDate:   meta.ForDate,
		ObjectKey: meta.ObjectKey,
		SizeBytes: meta.SizeBytes,
		Status:    meta.Status,
		Error:     meta.Error,
		CreatedAt: meta.CreatedAt,
		Data:      meta.Data,
	}
}

func contentTypeFor(format string) string {
	if format == FormatCSV {
		return "text/csv"
	}
	return "application/pdf"
}
