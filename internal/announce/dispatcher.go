package announce

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/slack-go/slack"

	"github.com/yuchengtw/duty-roster-bot/internal/domain"
	"github.com/yuchengtw/duty-roster-bot/internal/domain/contract"
	"github.com/yuchengtw/duty-roster-bot/internal/domain/entity"
)

// Dispatcher delivers announcements to a messaging group. Exactly one
// outbound call per Send; failures are surfaced to the caller, never retried.
type Dispatcher struct {
	api contract.SlackAPI
	dm  contract.DataManager
}

// NewDispatcher wires the dispatcher. api is nil when the deployment has no
// bot token; dm may be nil when there is no delivery log (console use).
func NewDispatcher(api contract.SlackAPI, dm contract.DataManager) *Dispatcher {
	return &Dispatcher{api: api, dm: dm}
}

// Send delivers a to the given group. Missing credentials or target are
// configuration errors and produce no network call.
func (d *Dispatcher) Send(ctx context.Context, groupID string, a Announcement) error {
	if d.api == nil {
		return fmt.Errorf("%w: messaging bot token is not set", domain.ErrServerConfig)
	}
	if groupID == "" {
		return fmt.Errorf("%w: announcement group is not set", domain.ErrServerConfig)
	}

	_, _, err := d.api.PostMessageContext(ctx, groupID,
		slack.MsgOptionText(a.AltText, false),
		slack.MsgOptionBlocks(a.Blocks...),
	)
	d.record(groupID, a, err)

	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDispatch, err)
	}
	return nil
}

// record appends the attempt to the delivery log. A log write failure never
// fails the send.
func (d *Dispatcher) record(groupID string, a Announcement, sendErr error) {
	if d.dm == nil {
		return
	}

	delivery := &entity.Delivery{
		GroupID: groupID,
		Kind:    string(a.Kind),
		Duty:    a.Duty,
		OK:      sendErr == nil,
		SentAt:  time.Now().UTC(),
	}
	if sendErr != nil {
		delivery.Error = sendErr.Error()
	}

	if err := d.dm.Delivery().Record(delivery); err != nil {
		log.Printf("Failed to record delivery for group %s: %v", groupID, err)
	}
}
