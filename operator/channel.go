// Package operator provides transports for the operator channel: publishing
// confirmation prompts out to human moderators, and feeding their answers
// back into the gate.
//
// Adapters implement gate.Notifier for the outbound side; inbound delivery
// calls gate.Deliver directly (see the console adapter here, or the HTTP
// route in cmd/warden).
package operator

import (
	"context"
	"errors"

	"github.com/warden-social/warden/gate"
)

// MultiChannel fans one prompt out to several transports, eg console plus a
// slack channel.
type MultiChannel []gate.Notifier

var _ gate.Notifier = (MultiChannel)(nil)

func (m MultiChannel) Publish(ctx context.Context, req gate.Request) error {
	var errs []error
	for _, ch := range m {
		if err := ch.Publish(ctx, req); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
