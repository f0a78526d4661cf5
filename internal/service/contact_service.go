package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/noah-isme/sekolah-go-api/internal/dto"
	"github.com/noah-isme/sekolah-go-api/internal/models"
	"github.com/noah-isme/sekolah-go-api/internal/observability"
	"github.com/noah-isme/sekolah-go-api/internal/repository"
	"github.com/noah-isme/sekolah-go-api/pkg/recaptcha"
)

var (
	// ErrCaptchaFailed indicates the captcha token was missing or rejected.
	ErrCaptchaFailed = errors.New("captcha verification failed")
	// ErrContactDuplicate indicates the sender already submitted recently.
	ErrContactDuplicate = errors.New("message already received, please wait before sending another")
	// ErrMessageNotFound indicates the inbox message does not exist.
	ErrMessageNotFound = errors.New("message not found")
)

// ContactService handles the public contact form and the admin inbox.
type ContactService interface {
	Submit(ctx context.Context, req dto.ContactSubmitRequest, remoteIP string) error
	List(ctx context.Context, search string, page, pageSize int) (dto.ContactMessageListResponse, error)
	Get(ctx context.Context, id uint) (dto.ContactMessageResponse, error)
	Delete(ctx context.Context, id uint) error
	Info(ctx context.Context) (dto.ContactInfoResponse, error)
	UpdateInfo(ctx context.Context, req dto.ContactInfoRequest) (dto.ContactInfoResponse, error)
}

type contactService struct {
	messages  repository.ContactMessageRepository
	info      repository.ContactInfoRepository
	admins    repository.AdminRepository
	captcha   recaptcha.Verifier
	cache     *redis.Client
	validator *validator.Validate
	logger    zerolog.Logger
	dedupeTTL time.Duration
	tracer    trace.Tracer
	now       func() time.Time
}

// NewContactService constructs the contact service. cache may be nil; the
// dedupe check then falls back to a database lookup.
func NewContactService(
	messages repository.ContactMessageRepository,
	info repository.ContactInfoRepository,
	admins repository.AdminRepository,
	captcha recaptcha.Verifier,
	cache *redis.Client,
	validator *validator.Validate,
	dedupeTTL time.Duration,
	logger zerolog.Logger,
) ContactService {
	if dedupeTTL <= 0 {
		dedupeTTL = 5 * time.Minute
	}

	return &contactService{
		messages:  messages,
		info:      info,
		admins:    admins,
		captcha:   captcha,
		cache:     cache,
		validator: validator,
		logger:    logger.With().Str("component", "contact_service").Logger(),
		dedupeTTL: dedupeTTL,
		tracer:    otel.Tracer("github.com/noah-isme/sekolah-go-api/internal/service/contact"),
		now:       time.Now,
	}
}

func (s *contactService) Submit(ctx context.Context, req dto.ContactSubmitRequest, remoteIP string) error {
	ctx, span := s.tracer.Start(ctx, "contact.submit")
	defer span.End()

	if err := s.validator.Struct(req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation failed")
		observability.ContactSubmissions().WithLabelValues("invalid").Inc()
		return err
	}

	if s.captcha != nil {
		if err := s.captcha.Verify(ctx, req.CaptchaToken, remoteIP); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "captcha rejected")
			observability.ContactSubmissions().WithLabelValues("captcha_failed").Inc()
			return ErrCaptchaFailed
		}
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	span.SetAttributes(attribute.String("contact.email", email))

	duplicate, err := s.isDuplicate(ctx, email)
	if err != nil {
		span.RecordError(err)
		return err
	}
	if duplicate {
		span.SetStatus(codes.Error, "duplicate submission")
		observability.ContactSubmissions().WithLabelValues("duplicate").Inc()
		return ErrContactDuplicate
	}

	// Every admin starts with the message unread.
	adminIDs, err := s.admins.ListIDs(ctx)
	if err != nil {
		span.RecordError(err)
		return err
	}

	message := models.ContactMessage{
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Subject:  strings.TrimSpace(req.Subject),
		Message:  strings.TrimSpace(req.Message),
		UnreadBy: adminIDs,
	}

	if err := s.messages.Create(ctx, &message); err != nil {
		// Nothing was stored, so the sender must not sit out the window.
		s.releaseDedupe(ctx, email)
		span.RecordError(err)
		span.SetStatus(codes.Error, "persistence failed")
		observability.ContactSubmissions().WithLabelValues("error").Inc()
		return err
	}

	observability.ContactSubmissions().WithLabelValues("ok").Inc()
	s.logger.Info().Uint("message_id", message.ID).Str("email", email).Msg("contact message received")
	return nil
}

// isDuplicate prefers the Redis reservation; when Redis is absent or down it
// degrades to a recent-row lookup so the window still holds, just without
// atomicity.
func (s *contactService) isDuplicate(ctx context.Context, email string) (bool, error) {
	if s.cache != nil {
		ok, err := s.cache.SetNX(ctx, dedupeKey(email), 1, s.dedupeTTL).Result()
		if err == nil {
			return !ok, nil
		}
		s.logger.Warn().Err(err).Msg("redis dedupe unavailable, falling back to database")
	}

	return s.messages.ExistsFromEmailSince(ctx, email, s.now().Add(-s.dedupeTTL))
}

// releaseDedupe drops the reservation taken by isDuplicate.
func (s *contactService) releaseDedupe(ctx context.Context, email string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, dedupeKey(email)).Err(); err != nil {
		s.logger.Warn().Err(err).Str("email", email).Msg("failed to release dedupe reservation")
	}
}

func dedupeKey(email string) string {
	return fmt.Sprintf("contact:dedupe:%s", email)
}

func (s *contactService) List(ctx context.Context, search string, page, pageSize int) (dto.ContactMessageListResponse, error) {
	filter := repository.ContactMessageFilter{Search: strings.TrimSpace(search), Page: page, PageSize: pageSize}
	messages, total, err := s.messages.List(ctx, filter)
	if err != nil {
		return dto.ContactMessageListResponse{}, err
	}

	return dto.ContactMessageListResponse{
		Items:      dto.NewContactMessageResponseSlice(messages),
		Pagination: dto.NewPaginationMeta(page, pageSize, total),
	}, nil
}

func (s *contactService) Get(ctx context.Context, id uint) (dto.ContactMessageResponse, error) {
	message, err := s.messages.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ContactMessageResponse{}, ErrMessageNotFound
		}
		return dto.ContactMessageResponse{}, err
	}
	return dto.NewContactMessageResponse(message), nil
}

func (s *contactService) Delete(ctx context.Context, id uint) error {
	if _, err := s.messages.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMessageNotFound
		}
		return err
	}
	return s.messages.Delete(ctx, id)
}

func (s *contactService) Info(ctx context.Context) (dto.ContactInfoResponse, error) {
	info, err := s.info.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ContactInfoResponse{}, nil
		}
		return dto.ContactInfoResponse{}, err
	}
	return dto.NewContactInfoResponse(info), nil
}

func (s *contactService) UpdateInfo(ctx context.Context, req dto.ContactInfoRequest) (dto.ContactInfoResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.ContactInfoResponse{}, err
	}

	info := models.ContactInfo{
		Address: strings.TrimSpace(req.Address),
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:   strings.TrimSpace(req.Phone),
		Hours:   strings.TrimSpace(req.Hours),
		MapURL:  strings.TrimSpace(req.MapURL),
	}

	if err := s.info.Upsert(ctx, &info); err != nil {
		return dto.ContactInfoResponse{}, err
	}
	return dto.NewContactInfoResponse(info), nil
}
