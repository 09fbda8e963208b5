package scanner

import (
	"context"
	"fmt"

	"github.com/AbdullahHad/WaadFinal/internal/constants"
	"github.com/AbdullahHad/WaadFinal/internal/messages"
	"github.com/AbdullahHad/WaadFinal/internal/models"
	"github.com/AbdullahHad/WaadFinal/internal/notify"
	"github.com/rs/zerolog"
)

// Outcome is the result of one dispatch attempt.
type Outcome int

const (
	OutcomeSkipped Outcome = iota
	OutcomeSent
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSent:
		return "sent"
	case OutcomeFailed:
		return "failed"
	default:
		return "skipped"
	}
}

// Dispatcher pushes the overdue pop-up to a commitment's owner. Delivery is fire-and-forget:
// the stored alert is the durable record whether or not the push arrives.
type Dispatcher struct {
	channel notify.Channel
	log     zerolog.Logger
}

// NewDispatcher creates a new Dispatcher sending through channel
func NewDispatcher(channel notify.Channel, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		channel: channel,
		log:     log,
	}
}

// Dispatch sends one notification for commitment. Unassigned commitments are skipped.
// Failures are logged and reported, never returned.
func (d *Dispatcher) Dispatch(ctx context.Context, commitment models.Commitment, alert models.Alert) (outcome Outcome) {
	userID := commitment.OwnerKey()
	if userID == "" {
		d.log.Debug().Uint64("commitment_id", commitment.ID).Msg("Commitment has no owner, notification skipped")
		return OutcomeSkipped
	}

	defer func() {
		if r := recover(); r != nil {
			d.log.Error().Uint64("commitment_id", commitment.ID).Str("user_id", userID).
				Err(fmt.Errorf("panic: %v", r)).Msg("Notification channel panicked")
			outcome = OutcomeFailed
		}
	}()

	payload := messages.OverdueNotification(commitment.Title)
	if err := d.channel.SendToUser(ctx, userID, constants.NotificationEvent, payload); err != nil {
		d.log.Warn().Err(err).
			Uint64("commitment_id", commitment.ID).
			Uint64("alert_id", alert.ID).
			Str("user_id", userID).
			Msg("Failed to send overdue notification")
		return OutcomeFailed
	}

	return OutcomeSent
}
