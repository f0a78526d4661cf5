package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/sekolah-go-api/internal/observability"
	"github.com/noah-isme/sekolah-go-api/pkg/storage"
)

var (
	// ErrFileTooLarge indicates the upload exceeds the configured size cap.
	ErrFileTooLarge = errors.New("file exceeds the maximum allowed size")
	// ErrFileTypeNotAllowed indicates the extension or detected content type
	// is outside the allow list.
	ErrFileTypeNotAllowed = errors.New("file type not allowed")
)

var (
	imageExtensions    = map[string]struct{}{".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}}
	documentExtensions = map[string]struct{}{
		".pdf": {}, ".doc": {}, ".docx": {}, ".ppt": {}, ".pptx": {},
		".xls": {}, ".xlsx": {}, ".zip": {},
	}
)

// UploadService validates incoming files and hands them to the configured
// storage backend.
type UploadService interface {
	SaveImage(ctx context.Context, category string, file *multipart.FileHeader) (string, error)
	SaveDocument(ctx context.Context, category string, file *multipart.FileHeader) (string, error)
	Remove(ctx context.Context, category, fileName string)
}

type uploadService struct {
	storage  storage.FileStorage
	maxBytes int64
	logger   zerolog.Logger
	tracer   trace.Tracer
}

// NewUploadService constructs the upload service. maxMB bounds individual
// file size.
func NewUploadService(store storage.FileStorage, maxMB int, logger zerolog.Logger) UploadService {
	if maxMB <= 0 {
		maxMB = 10
	}

	return &uploadService{
		storage:  store,
		maxBytes: int64(maxMB) << 20,
		logger:   logger.With().Str("component", "upload_service").Logger(),
		tracer:   otel.Tracer("github.com/noah-isme/sekolah-go-api/internal/service/upload"),
	}
}

func (s *uploadService) SaveImage(ctx context.Context, category string, file *multipart.FileHeader) (string, error) {
	return s.save(ctx, category, file, imageExtensions, "image/")
}

func (s *uploadService) SaveDocument(ctx context.Context, category string, file *multipart.FileHeader) (string, error) {
	return s.save(ctx, category, file, documentExtensions, "")
}

// Remove is best effort; a stale file on disk is preferable to failing the
// admin action that triggered the cleanup.
func (s *uploadService) Remove(ctx context.Context, category, fileName string) {
	if fileName == "" {
		return
	}
	if err := s.storage.Remove(ctx, category, fileName); err != nil {
		s.logger.Warn().Err(err).Str("file", fileName).Msg("failed to remove stored file")
	}
}

func (s *uploadService) save(ctx context.Context, category string, file *multipart.FileHeader, allowed map[string]struct{}, mimePrefix string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "upload.save")
	defer span.End()
	span.SetAttributes(
		attribute.String("upload.category", category),
		attribute.Int64("upload.size", file.Size),
	)

	start := time.Now()
	defer func() {
		observability.UploadLatency().Observe(time.Since(start).Seconds())
	}()

	if file.Size > s.maxBytes {
		span.SetStatus(codes.Error, "file too large")
		observability.UploadRejected().WithLabelValues("too_large").Inc()
		return "", ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if _, ok := allowed[ext]; !ok {
		span.SetStatus(codes.Error, "extension rejected")
		observability.UploadRejected().WithLabelValues("extension").Inc()
		return "", ErrFileTypeNotAllowed
	}

	reader, err := file.Open()
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer reader.Close()

	// Sniff the actual content; the extension alone is attacker controlled.
	detected, err := mimetype.DetectReader(reader)
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("failed to inspect upload: %w", err)
	}
	if mimePrefix != "" && !strings.HasPrefix(detected.String(), mimePrefix) {
		span.SetStatus(codes.Error, "content type rejected")
		observability.UploadRejected().WithLabelValues("content_type").Inc()
		return "", ErrFileTypeNotAllowed
	}

	if _, err := reader.Seek(0, 0); err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("failed to rewind upload: %w", err)
	}

	fileName, err := s.storage.Save(ctx, category, file.Filename, reader)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "storage write failed")
		observability.UploadRejected().WithLabelValues("storage").Inc()
		return "", err
	}

	s.logger.Info().Str("category", category).Str("file", fileName).Str("mime", detected.String()).Msg("file stored")
	return fileName, nil
}
