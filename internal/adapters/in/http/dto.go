package http

import (
	"time"

	"storehouse/internal/core/application/usecases/queries"
	"storehouse/internal/core/domain/model/filter"
	"storehouse/internal/core/domain/model/order"
	"storehouse/internal/core/domain/model/user"
	"storehouse/internal/core/ports"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type ItemRequest struct {
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

type PlaceOrderRequest struct {
	CustomerID int64         `json:"customerId"`
	Items      []ItemRequest `json:"items"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

type CreateUserRequest struct {
	Kind  string   `json:"kind"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

type ItemResponse struct {
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

type HistoryEntryResponse struct {
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type OrderResponse struct {
	ID         string                 `json:"id"`
	CreatedAt  time.Time              `json:"createdAt"`
	CustomerID int64                  `json:"customerId"`
	Status     string                 `json:"status"`
	Quantity   int                    `json:"quantity"`
	TotalPrice decimal.Decimal        `json:"totalPrice"`
	Items      []ItemResponse         `json:"items"`
	History    []HistoryEntryResponse `json:"history"`
}

type UserResponse struct {
	ID        int64     `json:"id"`
	Kind      string    `json:"kind"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Roles     []string  `json:"roles"`
	Premium   bool      `json:"premium"`
	CreatedAt time.Time `json:"createdAt"`
}

type PageResponse[T any] struct {
	NumberOfRows int `json:"numberOfRows"`
	Rows         []T `json:"rows"`
}

// QueueStandingResponse carries either a position or a wait time. Value is
// -1 when the customer holds no reserved order.
type QueueStandingResponse struct {
	CustomerID int64 `json:"customerId"`
	Queued     bool  `json:"queued"`
	Value      int   `json:"value"`
}

type CustomerStandingResponse struct {
	CustomerID int64  `json:"customerId"`
	Name       string `json:"name"`
	Position   int    `json:"position"`
	WaitTime   int    `json:"waitTime"`
}

type QueueReportEntryResponse struct {
	OrderID    string `json:"orderId"`
	CustomerID int64  `json:"customerId"`
	Quantity   int    `json:"quantity"`
	Position   int    `json:"position"`
	WaitTime   int    `json:"waitTime"`
}

type IntakeMessageResponse struct {
	OrderID    string    `json:"orderId"`
	CustomerID int64     `json:"customerId"`
	Quantity   int       `json:"quantity"`
	Priority   int       `json:"priority"`
	EnqueuedAt time.Time `json:"enqueuedAt"`
}

// IntakeBatchResponse lists the admitted messages in delivery order.
type IntakeBatchResponse struct {
	Quantity int                     `json:"quantity"`
	Messages []IntakeMessageResponse `json:"messages"`
}

func toItems(items []ItemRequest) []order.Item {
	return lo.Map(items, func(i ItemRequest, _ int) order.Item {
		return order.NewItem(i.Quantity, i.Price)
	})
}

func toOrderResponse(o *order.Order) OrderResponse {
	return OrderResponse{
		ID:         o.ID().String(),
		CreatedAt:  o.CreatedAt(),
		CustomerID: int64(o.CustomerID()),
		Status:     o.Status().String(),
		Quantity:   o.CalculateTotalQuantity(),
		TotalPrice: o.TotalPrice(),
		Items: lo.Map(o.Items(), func(i order.Item, _ int) ItemResponse {
			return ItemResponse{Quantity: i.Quantity, Price: i.Price}
		}),
		History: lo.Map(o.History(), func(h order.HistoryEntry, _ int) HistoryEntryResponse {
			return HistoryEntryResponse{Status: h.Status().String(), CreatedAt: h.CreatedAt()}
		}),
	}
}

func toOrderResponses(orders []*order.Order) []OrderResponse {
	return lo.Map(orders, func(o *order.Order, _ int) OrderResponse { return toOrderResponse(o) })
}

func toUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:        int64(u.ID()),
		Kind:      u.Kind().String(),
		Name:      u.Name(),
		Email:     u.Email(),
		Roles:     lo.Map(u.Roles(), func(r user.Role, _ int) string { return r.String() }),
		Premium:   u.IsPremium(),
		CreatedAt: u.CreatedAt(),
	}
}

func toPageResponse[T, R any](page filter.Page[T], convert func(T) R) PageResponse[R] {
	return PageResponse[R]{
		NumberOfRows: page.NumberOfRows,
		Rows:         lo.Map(page.Rows, func(row T, _ int) R { return convert(row) }),
	}
}

func toCustomerStandingResponse(s queries.CustomerStanding) CustomerStandingResponse {
	return CustomerStandingResponse{
		CustomerID: int64(s.Customer.ID()),
		Name:       s.Customer.Name(),
		Position:   s.Position,
		WaitTime:   s.WaitTime,
	}
}

func toQueueReportResponse(report []queries.QueueStanding) []QueueReportEntryResponse {
	return lo.Map(report, func(s queries.QueueStanding, _ int) QueueReportEntryResponse {
		return QueueReportEntryResponse{
			OrderID:    s.OrderID.String(),
			CustomerID: int64(s.CustomerID),
			Quantity:   s.Quantity,
			Position:   s.Position,
			WaitTime:   s.WaitTime,
		}
	})
}

func toIntakeBatchResponse(batch []ports.IntakeMessage) IntakeBatchResponse {
	return IntakeBatchResponse{
		Quantity: lo.SumBy(batch, func(m ports.IntakeMessage) int { return m.Quantity }),
		Messages: lo.Map(batch, func(m ports.IntakeMessage, _ int) IntakeMessageResponse {
			return IntakeMessageResponse{
				OrderID:    m.OrderID.String(),
				CustomerID: int64(m.CustomerID),
				Quantity:   m.Quantity,
				Priority:   int(m.Priority),
				EnqueuedAt: m.EnqueuedAt,
			}
		}),
	}
}
