package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"kgtransfer/config"
	"kgtransfer/internal/domain"
	"kgtransfer/internal/logger"
	"kgtransfer/internal/models"
	"kgtransfer/internal/ws"
	"kgtransfer/pkg/mailer"

	"github.com/avast/retry-go/v4"
)

const sendTimeout = 2 * time.Minute

// NotificationService tells the office about new submissions: an email to the
// notification address and an event on the admin websocket feed. Delivery runs
// in the background and never fails the request that triggered it.
type NotificationService struct {
	mailer     mailer.Mailer
	hub        *ws.Hub
	settings   *SettingsService
	cfg        config.SMTPConfig
	log        logger.Logger
	retryDelay time.Duration
	wg         sync.WaitGroup
}

// NewNotificationService accepts a nil mailer (email disabled) or nil hub.
func NewNotificationService(m mailer.Mailer, hub *ws.Hub, settings *SettingsService, cfg config.SMTPConfig, log logger.Logger) *NotificationService {
	if cfg.Attempts == 0 {
		cfg.Attempts = 1
	}
	return &NotificationService{
		mailer:     m,
		hub:        hub,
		settings:   settings,
		cfg:        cfg,
		log:        log,
		retryDelay: 2 * time.Second,
	}
}

func (s *NotificationService) ContactRequestCreated(req *models.ContactRequest) {
	s.hub.Publish(domain.EventContactRequestCreated, req)
	var b strings.Builder
	writeField(&b, "Имя", req.Name)
	writeField(&b, "Телефон", req.Phone)
	writeField(&b, "Email", req.Email)
	writeField(&b, "Страница", req.SourcePage)
	writeField(&b, "Сообщение", req.Message)
	s.send(mailer.Message{
		Subject: fmt.Sprintf("Новое обращение с сайта #%d", req.ID),
		Body:    b.String(),
		ReplyTo: req.Email,
	}, domain.EventContactRequestCreated, req.ID)
}

func (s *NotificationService) ApplicationRequestCreated(req *models.ApplicationRequest) {
	s.hub.Publish(domain.EventApplicationRequestCreated, req)
	var b strings.Builder
	writeField(&b, "Имя", req.Name)
	writeField(&b, "Телефон", req.Phone)
	writeField(&b, "Email", req.Email)
	writeField(&b, "Откуда", req.FromCity)
	writeField(&b, "Куда", req.ToCity)
	if req.TravelDate != nil {
		writeField(&b, "Дата поездки", req.TravelDate.Format("02.01.2006"))
	}
	writeField(&b, "Пассажиров", fmt.Sprint(req.Passengers))
	writeField(&b, "Комментарий", req.Comment)
	s.send(mailer.Message{
		Subject: fmt.Sprintf("Новая заявка на поездку #%d", req.ID),
		Body:    b.String(),
		ReplyTo: req.Email,
	}, domain.EventApplicationRequestCreated, req.ID)
}

func (s *NotificationService) TransferRequestCreated(req *models.TransferRequest) {
	s.hub.Publish(domain.EventTransferRequestCreated, req)
	var b strings.Builder
	writeField(&b, "Номер", req.Reference)
	writeField(&b, "Имя", req.Name)
	writeField(&b, "Телефон", req.Phone)
	writeField(&b, "Email", req.Email)
	writeField(&b, "Откуда", req.FromAddress)
	writeField(&b, "Куда", req.ToAddress)
	writeField(&b, "Подача", req.PickupAt.Format("02.01.2006 15:04"))
	writeField(&b, "Пассажиров", fmt.Sprint(req.Passengers))
	if req.ChildSeat {
		writeField(&b, "Детское кресло", "да")
	}
	if req.EstimatedPrice > 0 {
		writeField(&b, "Оценка", fmt.Sprintf("%d %s, %.0f км", req.EstimatedPrice, req.Currency, req.DistanceKm))
	}
	writeField(&b, "Комментарий", req.Comment)
	s.send(mailer.Message{
		Subject: "Новый заказ трансфера " + req.Reference,
		Body:    b.String(),
		ReplyTo: req.Email,
	}, domain.EventTransferRequestCreated, req.ID)
}

// ReviewSubmitted only reaches the admin feed; moderation happens in the panel.
func (s *NotificationService) ReviewSubmitted(rv *models.Review) {
	s.hub.Publish(domain.EventReviewSubmitted, rv)
}

// Wait blocks until in-flight deliveries finish.
func (s *NotificationService) Wait() {
	s.wg.Wait()
}

func (s *NotificationService) send(msg mailer.Message, event string, id uint) {
	if s.mailer == nil {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()

		msg.To = s.recipient(ctx)
		if msg.To == "" {
			s.log.Warn("notification skipped: no recipient", "event", event, "id", id)
			return
		}
		err := retry.Do(
			func() error { return s.mailer.Send(ctx, msg) },
			retry.Context(ctx),
			retry.Attempts(s.cfg.Attempts),
			retry.Delay(s.retryDelay),
			retry.DelayType(retry.BackOffDelay),
			retry.LastErrorOnly(true),
			retry.OnRetry(func(n uint, err error) {
				s.log.Warn("notification email failed, retrying", "event", event, "id", id, "attempt", n+1, "error", err)
			}),
		)
		if err != nil {
			s.log.Error("notification email not delivered", "event", event, "id", id, "error", err)
			return
		}
		s.log.Info("notification email sent", "event", event, "id", id)
	}()
}

func (s *NotificationService) recipient(ctx context.Context) string {
	if s.settings != nil {
		if to := s.settings.NotificationEmail(ctx); to != "" {
			return to
		}
	}
	return s.cfg.To
}

func writeField(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "%s: %s\n", label, value)
}
