package usecase

import (
	"context"
	"fmt"
	"time"

	"go-ats-core/internal/domain"
	"go-ats-core/pkg/logger"
	"go-ats-core/pkg/mailtemplate"
)

type outboxUsecase struct {
	outbox      domain.OutboxRepository
	catalog     *mailtemplate.Catalog
	sender      domain.EmailSender
	batchSize   int
	maxAttempts int
}

func NewOutboxUsecase(
	outbox domain.OutboxRepository,
	catalog *mailtemplate.Catalog,
	sender domain.EmailSender,
	batchSize, maxAttempts int,
) domain.OutboxUsecase {
	if batchSize <= 0 {
		batchSize = 50
	}
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	return &outboxUsecase{
		outbox:      outbox,
		catalog:     catalog,
		sender:      sender,
		batchSize:   batchSize,
		maxAttempts: maxAttempts,
	}
}

// Drain delivers every due row once. Successes are marked sent,
// failures keep the row for the next drain until it dead-letters.
func (u *outboxUsecase) Drain(ctx context.Context) (*domain.DrainResult, error) {
	due, err := u.outbox.FetchDue(ctx, time.Now(), u.batchSize)
	if err != nil {
		return nil, err
	}

	result := &domain.DrainResult{}
	for _, mail := range due {
		if err := u.deliver(ctx, mail); err != nil {
			result.Failed++
			dead, markErr := u.outbox.MarkFailed(ctx, mail.ID, err.Error(), u.maxAttempts)
			if markErr != nil {
				logger.Log.Error("Failed to record delivery failure", "outbox_id", mail.ID, "error", markErr)
				continue
			}
			if dead {
				result.Dead++
				logger.Log.Warn("Outbox row dead-lettered",
					"outbox_id", mail.ID, "template", mail.TemplateID, "attempts", mail.Attempts+1)
			} else {
				logger.Log.Warn("Email delivery failed, will retry",
					"outbox_id", mail.ID, "template", mail.TemplateID, "error", err)
			}
			continue
		}

		if err := u.outbox.MarkSent(ctx, mail.ID); err != nil {
			// The send happened; a failed mark means a duplicate on the
			// next drain (at-least-once delivery).
			logger.Log.Error("Failed to mark outbox row sent", "outbox_id", mail.ID, "error", err)
			continue
		}
		result.Sent++
	}

	if len(due) > 0 {
		logger.Log.Info("Outbox drain finished",
			"due", len(due), "sent", result.Sent, "failed", result.Failed, "dead", result.Dead)
	}
	return result, nil
}

func (u *outboxUsecase) deliver(ctx context.Context, mail domain.QueuedEmail) error {
	tpl := u.catalog.Get(mail.TemplateID)
	if tpl == nil {
		return fmt.Errorf("unknown template id %q", mail.TemplateID)
	}
	subject, body := mailtemplate.Render(*tpl, mail.Variables)
	return u.sender.Send(ctx, mail.Recipient, subject, body)
}

func (u *outboxUsecase) Stats(ctx context.Context) (map[string]int64, error) {
	return u.outbox.CountByStatus(ctx)
}
