package service

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"

	"github.com/noah-isme/sekolah-go-api/internal/dto"
	"github.com/noah-isme/sekolah-go-api/internal/models"
	"github.com/noah-isme/sekolah-go-api/internal/observability"
	"github.com/noah-isme/sekolah-go-api/internal/repository"
)

const notificationPreviewLimit = 50

// Actor identifies the administrator performing a recorded action.
type Actor struct {
	ID       uint
	Username string
}

// AuditService records administrative actions in the append-only ledger and
// projects the unread items into the notification dropdown.
type AuditService interface {
	// Record appends a ledger entry. Failures are logged and swallowed so a
	// ledger outage never blocks the action being recorded.
	Record(ctx context.Context, actor Actor, action, description string, metadata map[string]any)
	RecentNotifications(ctx context.Context, adminID uint) ([]dto.NotificationView, error)
	MarkAllRead(ctx context.Context, adminID uint) error
	List(ctx context.Context, limit int) ([]dto.AuditLogResponse, error)
}

type auditService struct {
	logs         repository.AuditLogRepository
	messages     repository.ContactMessageRepository
	admins       repository.AdminRepository
	logger       zerolog.Logger
	limitPerKind int
	tracer       trace.Tracer
}

// NewAuditService constructs the ledger service. limitPerKind caps how many
// unread items of each kind the dropdown shows.
func NewAuditService(
	logs repository.AuditLogRepository,
	messages repository.ContactMessageRepository,
	admins repository.AdminRepository,
	limitPerKind int,
	logger zerolog.Logger,
) AuditService {
	if limitPerKind <= 0 {
		limitPerKind = 3
	}

	return &auditService{
		logs:         logs,
		messages:     messages,
		admins:       admins,
		logger:       logger.With().Str("component", "audit_service").Logger(),
		limitPerKind: limitPerKind,
		tracer:       otel.Tracer("github.com/noah-isme/sekolah-go-api/internal/service/audit"),
	}
}

func (s *auditService) Record(ctx context.Context, actor Actor, action, description string, metadata map[string]any) {
	ctx, span := s.tracer.Start(ctx, "audit.record")
	defer span.End()
	span.SetAttributes(
		attribute.Int("audit.admin_id", int(actor.ID)),
		attribute.String("audit.action", action),
	)

	ids, err := s.admins.ListIDs(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "admin enumeration failed")
		observability.AuditEntries().WithLabelValues("error").Inc()
		s.logger.Error().Err(err).Str("action", action).Msg("failed to enumerate admins for ledger entry")
		return
	}

	// Every admin except the actor starts with the entry unread.
	unread := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id != actor.ID {
			unread = append(unread, id)
		}
	}

	entry := models.AuditLog{
		AdminID:     actor.ID,
		Username:    actor.Username,
		Action:      action,
		Description: description,
		Metadata:    datatypes.JSONMap(metadata),
		UnreadBy:    unread,
	}

	if err := s.logs.Create(ctx, &entry); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "ledger write failed")
		observability.AuditEntries().WithLabelValues("error").Inc()
		s.logger.Error().Err(err).Str("action", action).Msg("failed to append ledger entry")
		return
	}

	observability.AuditEntries().WithLabelValues("ok").Inc()
}

// RecentNotifications merges unread contact messages and ledger entries into
// the dropdown view: messages first, then logs, each newest first and capped
// per kind. Reading never marks anything as read.
func (s *auditService) RecentNotifications(ctx context.Context, adminID uint) ([]dto.NotificationView, error) {
	ctx, span := s.tracer.Start(ctx, "audit.recent_notifications")
	defer span.End()

	messages, err := s.messages.ListUnread(ctx, adminID, s.limitPerKind)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	entries, err := s.logs.ListUnread(ctx, adminID, s.limitPerKind)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	views := make([]dto.NotificationView, 0, len(messages)+len(entries))
	for _, msg := range messages {
		views = append(views, dto.NotificationView{
			Kind:       dto.NotificationKindMessage,
			Title:      fmt.Sprintf("%s sent a message", msg.Name),
			Content:    previewText(msg.Message),
			Icon:       "ti ti-mail",
			Time:       msg.CreatedAt,
			Badge:      "New Message",
			BadgeClass: "bg-light-primary",
		})
	}
	for _, entry := range entries {
		views = append(views, dto.NotificationView{
			Kind:       dto.NotificationKindLog,
			Title:      fmt.Sprintf("%s performed %s", entry.Username, entry.Action),
			Content:    previewText(entry.Description),
			Icon:       "ti ti-activity",
			Time:       entry.CreatedAt,
			Badge:      "Admin Activity",
			BadgeClass: "bg-light-success",
		})
	}

	span.SetAttributes(attribute.Int("notifications.count", len(views)))
	return views, nil
}

func (s *auditService) MarkAllRead(ctx context.Context, adminID uint) error {
	ctx, span := s.tracer.Start(ctx, "audit.mark_all_read")
	defer span.End()

	if err := s.messages.ClearUnread(ctx, adminID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "message unread clear failed")
		return err
	}

	if err := s.logs.ClearUnread(ctx, adminID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "ledger unread clear failed")
		return err
	}

	s.logger.Info().Uint("admin_id", adminID).Msg("notifications marked read")
	return nil
}

func (s *auditService) List(ctx context.Context, limit int) ([]dto.AuditLogResponse, error) {
	entries, err := s.logs.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	return dto.NewAuditLogResponseSlice(entries), nil
}

// previewText caps the preview at 50 characters and appends an ellipsis only
// when the source text was longer.
func previewText(text string) string {
	if utf8.RuneCountInString(text) <= notificationPreviewLimit {
		return text
	}

	runes := []rune(text)
	return string(runes[:notificationPreviewLimit]) + "..."
}
