// Package notify finds events starting a fixed number of days ahead and emails every active member
// about each of them, one message at a time with a pause between sends.
package notify

//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store
//go:generate moq -out mocks/mailer.go -pkg mocks -skip-ensure -fmt goimports . Mailer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/assocweb/ingest/pkg/domain"
)

// ErrDelivery wraps failed sends
var ErrDelivery = errors.New("delivery failed")

// Store provides upcoming events, recipients and mail settings
type Store interface {
	FindUpcoming(ctx context.Context, c domain.Collection, from, to time.Time) ([]domain.ContentRecord, error)
	ListActiveRecipients(ctx context.Context) ([]domain.Recipient, error)
	GetSettings(ctx context.Context, keys ...string) (map[string]string, error)
}

// Mailer delivers a single message
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// MailerFactory builds a mailer from the settings in effect for a dispatch run
type MailerFactory func(cfg SMTPConfig) (Mailer, error)

// Config holds dispatcher configuration
type Config struct {
	DaysAhead int            // events starting this many days from today, default 7
	Pacing    time.Duration  // pause between consecutive sends, default 2s
	Location  *time.Location // zone defining "today", default local
	SMTP      SMTPConfig     // used where settings don't define a value
	SiteName  string
}

// eventSources are queried for upcoming events, results are merged in this order
var eventSources = []struct {
	collection domain.Collection
	eventType  domain.EventType
}{
	{domain.CollectionFair, domain.EventFair},
	{domain.CollectionTraining, domain.EventTraining},
	{domain.CollectionProject, domain.EventProject},
	{domain.CollectionHoliday, domain.EventHoliday},
}

// Dispatcher sends notifications about upcoming events
type Dispatcher struct {
	store     Store
	newMailer MailerFactory
	cfg       Config
	now       func() time.Time
}

// NewDispatcher makes a dispatcher, nil newMailer uses the SMTP mailer
func NewDispatcher(store Store, newMailer MailerFactory, cfg Config) *Dispatcher {
	if cfg.DaysAhead <= 0 {
		cfg.DaysAhead = 7
	}
	if cfg.Pacing < 0 {
		cfg.Pacing = 0
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if newMailer == nil {
		newMailer = func(c SMTPConfig) (Mailer, error) { return NewSMTPMailer(c) }
	}
	return &Dispatcher{store: store, newMailer: newMailer, cfg: cfg, now: time.Now}
}

// Window returns the half-open day [from, to) checked by a run at now
func (d *Dispatcher) Window(now time.Time) (from, to time.Time) {
	y, m, day := now.In(d.cfg.Location).Date()
	from = time.Date(y, m, day, 0, 0, 0, 0, d.cfg.Location).AddDate(0, 0, d.cfg.DaysAhead)
	return from, from.AddDate(0, 0, 1)
}

// Dispatch notifies every active recipient about every event starting in the window.
// Sends are sequential, failures are collected and don't stop the loop.
func (d *Dispatcher) Dispatch(ctx context.Context) (domain.DispatchOutcome, error) {
	outcome := domain.DispatchOutcome{Errors: []domain.DeliveryFailure{}}
	from, to := d.Window(d.now())

	events, err := d.upcoming(ctx, from, to)
	if err != nil {
		return outcome, err
	}
	if len(events) == 0 {
		lgr.Printf("[INFO] no events between %s and %s", from.Format(time.RFC3339), to.Format(time.RFC3339))
		return outcome, nil
	}

	recipients, err := d.store.ListActiveRecipients(ctx)
	if err != nil {
		return outcome, fmt.Errorf("list recipients: %w", err)
	}
	if len(recipients) == 0 {
		lgr.Printf("[INFO] %d upcoming events, no active recipients", len(events))
		return outcome, nil
	}

	stored, err := d.store.GetSettings(ctx, settingKeys...)
	if err != nil {
		return outcome, fmt.Errorf("read settings: %w", err)
	}
	smtpCfg, siteName := mergeSettings(d.cfg.SMTP, d.cfg.SiteName, stored)
	mailer, err := d.newMailer(smtpCfg)
	if err != nil {
		return outcome, fmt.Errorf("make mailer: %w", err)
	}

	lgr.Printf("[INFO] dispatching %d events to %d recipients", len(events), len(recipients))
	attempts := 0
	for _, ev := range events {
		for _, rcp := range recipients {
			if attempts > 0 {
				if err := d.pause(ctx); err != nil {
					return outcome, fmt.Errorf("dispatch interrupted after %d sends: %w", attempts, err)
				}
			}
			attempts++

			if err := d.send(ctx, mailer, ev, rcp, siteName); err != nil {
				lgr.Printf("[WARN] %v", err)
				outcome.Failed++
				outcome.Errors = append(outcome.Errors, domain.DeliveryFailure{Recipient: rcp.Email, Error: err.Error()})
				continue
			}
			outcome.Sent++
		}
	}
	lgr.Printf("[INFO] dispatch completed, %d sent, %d failed", outcome.Sent, outcome.Failed)
	return outcome, nil
}

func (d *Dispatcher) send(ctx context.Context, mailer Mailer, ev domain.NotificationEvent, rcp domain.Recipient, siteName string) error {
	msg, err := render(ev, rcp, siteName, d.cfg.DaysAhead)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDelivery, rcp.Email, err)
	}
	if err := mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDelivery, rcp.Email, err)
	}
	lgr.Printf("[DEBUG] sent %q to %s", msg.Subject, rcp.Email)
	return nil
}

// upcoming queries all event collections concurrently and merges them in source order
func (d *Dispatcher) upcoming(ctx context.Context, from, to time.Time) ([]domain.NotificationEvent, error) {
	found := make([][]domain.ContentRecord, len(eventSources))
	g, gctx := errgroup.WithContext(ctx)
	for i, src := range eventSources {
		g.Go(func() error {
			recs, err := d.store.FindUpcoming(gctx, src.collection, from, to)
			if err != nil {
				return fmt.Errorf("find upcoming %s: %w", src.collection, err)
			}
			found[i] = recs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var events []domain.NotificationEvent
	for i, src := range eventSources {
		for _, rec := range found[i] {
			events = append(events, domain.NotificationEvent{
				Type:        src.eventType,
				Title:       rec.Title,
				Description: rec.Description,
				Date:        rec.StartDate.In(d.cfg.Location),
				EndDate:     inLocation(rec.EndDate, d.cfg.Location),
				Location:    rec.Location,
			})
		}
	}
	return events, nil
}

func (d *Dispatcher) pause(ctx context.Context) error {
	if d.cfg.Pacing == 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d.cfg.Pacing)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func inLocation(t *time.Time, loc *time.Location) *time.Time {
	if t == nil {
		return nil
	}
	v := t.In(loc)
	return &v
}
