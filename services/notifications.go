package services

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"time"

	"github.com/sidhant-sriv/rentease-api/mailer"
	"github.com/sidhant-sriv/rentease-api/models"
	"github.com/sidhant-sriv/rentease-api/repository"
)

// Notice is a message for one user, stored in-app and mirrored by email.
type Notice struct {
	UserID     uint
	Email      string
	Type       models.NotificationType
	Title      string
	Message    string
	EntityType string
	EntityID   uint
	ActionURL  string
}

// Notifier delivers notices on a best-effort basis. Implementations must not
// block the caller on delivery.
type Notifier interface {
	Notify(ctx context.Context, n Notice)
}

type EmailSender interface {
	Send(ctx context.Context, to, subject, htmlBody string) (mailer.Delivery, error)
}

type NotificationService struct {
	store    repository.Store
	mail     EmailSender
	log      *slog.Logger
	dispatch func(func())
	timeout  time.Duration
	now      func() time.Time
}

type NotificationOption func(*NotificationService)

// WithDispatcher replaces the goroutine used to deliver each notice.
func WithDispatcher(dispatch func(func())) NotificationOption {
	return func(s *NotificationService) { s.dispatch = dispatch }
}

func NewNotificationService(store repository.Store, mail EmailSender, log *slog.Logger, opts ...NotificationOption) *NotificationService {
	s := &NotificationService{
		store:    store,
		mail:     mail,
		log:      log,
		dispatch: func(f func()) { go f() },
		timeout:  15 * time.Second,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Notify records n and emails it in the background. Failures are logged,
// never returned.
func (s *NotificationService) Notify(ctx context.Context, n Notice) {
	ctx = context.WithoutCancel(ctx)
	s.dispatch(func() {
		ctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()
		s.deliver(ctx, n)
	})
}

func (s *NotificationService) deliver(ctx context.Context, n Notice) {
	row := &models.Notification{
		UserID:            n.UserID,
		Type:              n.Type,
		Title:             n.Title,
		Message:           n.Message,
		RelatedEntityType: n.EntityType,
		RelatedEntityID:   n.EntityID,
		ActionURL:         n.ActionURL,
	}
	if err := s.store.CreateNotification(ctx, row); err != nil {
		s.log.Error("notification.store_failed", "user_id", n.UserID, "type", n.Type, "error", err)
		return
	}
	if n.Email == "" {
		return
	}

	d, err := s.mail.Send(ctx, n.Email, n.Title, renderEmail(n))
	if errors.Is(err, mailer.ErrDisabled) {
		return
	}
	if err != nil {
		s.log.Warn("notification.email_failed", "notification_id", row.ID, "type", n.Type, "error", err)
		return
	}

	sentAt := s.now()
	row.EmailSent = true
	row.EmailSentAt = &sentAt
	if d.MessageID != "" {
		row.SendgridMessageID = &d.MessageID
	}
	if err := s.store.UpdateNotification(ctx, row); err != nil {
		s.log.Error("notification.update_failed", "notification_id", row.ID, "error", err)
	}
}

func renderEmail(n Notice) string {
	body := fmt.Sprintf("<h2>%s</h2><p>%s</p>", html.EscapeString(n.Title), html.EscapeString(n.Message))
	if n.ActionURL != "" {
		body += fmt.Sprintf(`<p><a href="%s">View details</a></p>`, html.EscapeString(n.ActionURL))
	}
	return body
}

func (s *NotificationService) List(ctx context.Context, actor Actor) ([]models.Notification, error) {
	ns, err := s.store.ListNotifications(ctx, actor.UserID)
	if err != nil {
		return nil, storeErr("notifications.list", "notification", err)
	}
	return ns, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, actor Actor, id uint) error {
	return storeErr("notifications.mark_read", "notification", s.store.MarkNotificationRead(ctx, actor.UserID, id))
}
