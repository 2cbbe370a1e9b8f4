// Package notify builds the outbound messages billing hands to the
// notification dispatcher once state has been committed.
package notify

import (
	"context"

	"trm.app/billing/model"
)

type Publisher interface {
	Publish(ctx context.Context, n *model.Notification) error
}
