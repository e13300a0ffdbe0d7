package port

import (
	"context"

	"github.com/stocktrail/po-approval/internal/domain/entity"
	"github.com/stocktrail/po-approval/internal/domain/workflow"
)

// Notifier delivers out-of-band notifications after a successful transition.
// Delivery failures must not fail the transition itself.
type Notifier interface {
	NotifyTransition(ctx context.Context, order *entity.PurchaseOrder, action workflow.Action, actor entity.Actor, comment string) error
}
