package queries

import (
	"context"
	"slices"

	"storehouse/internal/core/domain/model/filter"
	"storehouse/internal/core/domain/model/kernel"
	"storehouse/internal/core/domain/model/order"
	"storehouse/internal/core/domain/model/user"
	"storehouse/internal/core/domain/services"
	"storehouse/internal/core/ports"

	"github.com/samber/lo"
)

// QueueStanding is one line of the queue report.
type QueueStanding struct {
	OrderID    kernel.UUID
	CustomerID user.ID
	Quantity   int
	Position   int
	WaitTime   int
}

type GetQueueReportQueryHandler struct {
	orders     ports.OrderReader
	calculator services.QueueCalculator
}

func NewGetQueueReportQueryHandler(
	orders ports.OrderReader,
	calculator services.QueueCalculator,
) GetQueueReportQueryHandler {
	return GetQueueReportQueryHandler{orders: orders, calculator: calculator}
}

// Handle lists every RESERVED order with its position and wait time, front of
// the queue first. Callers that are not EMPLOYEE or ADMIN get authz.ErrNotAuthorized.
func (h GetQueueReportQueryHandler) Handle(ctx context.Context, query GetQueueReportQuery) ([]QueueStanding, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	caller := query.Caller()
	if !caller.IsEmployeeEquivalent() {
		return nil, caller.Deny("read the queue report")
	}

	page, err := h.orders.FindByFilter(ctx, filter.OrderFilter{Status: lo.ToPtr(order.Reserved)})
	if err != nil {
		return nil, err
	}

	report := make([]QueueStanding, 0, len(page.Rows))
	for _, o := range page.Rows {
		position, err := h.calculator.Position(ctx, o.CustomerID())
		if err != nil {
			return nil, err
		}
		wait, err := h.calculator.WaitTime(ctx, o.CustomerID())
		if err != nil {
			return nil, err
		}
		// the order left the queue between the scan and the measurement
		if position == services.NotQueued || wait == services.NotQueued {
			continue
		}
		report = append(report, QueueStanding{
			OrderID:    o.ID(),
			CustomerID: o.CustomerID(),
			Quantity:   o.CalculateTotalQuantity(),
			Position:   position,
			WaitTime:   wait,
		})
	}

	slices.SortStableFunc(report, func(a, b QueueStanding) int {
		return a.Position - b.Position
	})
	return report, nil
}
