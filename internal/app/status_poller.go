// internal/app/status_poller.go
package app

import (
	"context"
	"time"

	"homework_status_bot/internal/domain/delivery"
	"homework_status_bot/internal/domain/homework"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// HomeworkAPI fetches the raw homework status payload changed since a unix time.
type HomeworkAPI interface {
	FetchUpdates(ctx context.Context, since int64) (any, error)
}

// StatusPoller checks the homework API once per call to Poll and reports
// changes to the chat. It is not safe for concurrent use; the scheduler
// never runs two polls at once.
type StatusPoller struct {
	api      HomeworkAPI
	notifier *Notifier
	journal  delivery.Repository // nil disables the journal
	logger   *logrus.Entry
	now      func() time.Time
	state    homework.PollState
}

func NewStatusPoller(
	api HomeworkAPI,
	notifier *Notifier,
	journal delivery.Repository,
	logger *logrus.Entry,
	now func() time.Time,
) *StatusPoller {
	if now == nil {
		now = time.Now
	}
	return &StatusPoller{
		api:      api,
		notifier: notifier,
		journal:  journal,
		logger:   logger,
		now:      now,
		state:    homework.PollState{LastSeen: now().Unix()},
	}
}

// State returns a copy of the current poll state.
func (p *StatusPoller) State() homework.PollState {
	return p.state
}

// Poll runs one iteration: fetch, validate, format, and notify when the
// message differs from the last one delivered. Failures before sending are
// reported to the chat like a status change. Send failures are only logged.
func (p *StatusPoller) Poll(ctx context.Context) {
	pollID := uuid.NewString()
	logCtx := p.logger.WithFields(logrus.Fields{
		"poll_id":   pollID,
		"from_date": p.state.LastSeen,
	})
	startedAt := p.now()

	kind := delivery.KindStatus
	message, err := p.checkStatus(ctx, logCtx)
	if err != nil {
		if ctx.Err() != nil {
			logCtx.WithError(err).Info("Poll interrupted by shutdown")
			return
		}
		logCtx.WithError(err).Error("Homework status check failed")
		kind = delivery.KindFailure
		message = homework.FailureMessage(err)
	}

	if message == p.state.LastSentMessage {
		logCtx.Debug("No changes since the last message, nothing to send")
		p.state.LastSeen = startedAt.Unix()
		return
	}

	sendErr := p.notifier.Notify(message)
	p.record(ctx, logCtx, pollID, kind, message, sendErr)
	if sendErr != nil {
		// Keep the cursor so the same change is picked up and sent again next time.
		logCtx.WithError(sendErr).Error("Failed to send message to Telegram")
		return
	}

	logCtx.WithField("kind", kind).Info("Message delivered")
	p.state.LastSentMessage = message
	p.state.LastSeen = startedAt.Unix()
}

func (p *StatusPoller) checkStatus(ctx context.Context, logCtx *logrus.Entry) (string, error) {
	payload, err := p.api.FetchUpdates(ctx, p.state.LastSeen)
	if err != nil {
		return "", err
	}

	resp, err := homework.Validate(payload)
	if err != nil {
		return "", err
	}
	logCtx.WithFields(logrus.Fields{
		"current_date": resp.CurrentDate,
		"homeworks":    len(resp.Homeworks),
	}).Debug("Homework API response validated")

	rec, err := resp.Latest()
	if err != nil {
		return "", err
	}

	return homework.FormatStatus(rec)
}

func (p *StatusPoller) record(ctx context.Context, logCtx *logrus.Entry, pollID string, kind delivery.Kind, text string, sendErr error) {
	if p.journal == nil {
		return
	}
	d := &delivery.Delivery{
		ID:     uuid.NewString(),
		PollID: pollID,
		ChatID: p.notifier.ChatID(),
		Kind:   kind,
		Text:   text,
	}
	if sendErr != nil {
		d.Error = sendErr.Error()
	}
	if err := p.journal.Record(ctx, d); err != nil {
		logCtx.WithError(err).Warn("Failed to record delivery in journal")
	}
}
