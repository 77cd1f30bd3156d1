package http

import (
	"context"
	"net/http"

	"storehouse/internal/core/application/usecases/commands"
	"storehouse/internal/core/application/usecases/queries"
	"storehouse/internal/core/domain/model/filter"
	"storehouse/internal/core/domain/model/order"
	"storehouse/internal/core/domain/model/user"
	"storehouse/internal/core/ports"

	"github.com/labstack/echo/v4"
)

type (
	CreateUserHandler interface {
		Handle(ctx context.Context, cmd commands.CreateUserCommand) (*user.User, error)
	}

	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (*order.Order, error)
	}

	FindOrdersHandler interface {
		Handle(ctx context.Context, query queries.FindOrdersQuery) (filter.Page[*order.Order], error)
	}

	FindAllOrdersHandler interface {
		Handle(ctx context.Context, query queries.FindAllOrdersQuery) ([]*order.Order, error)
	}

	GetReservedOrdersHandler interface {
		Handle(ctx context.Context, query queries.GetReservedOrdersQuery) ([]*order.Order, error)
	}

	QueueStandingHandler interface {
		Handle(ctx context.Context, query queries.GetQueueStandingQuery) (int, error)
	}

	GetQueueReportHandler interface {
		Handle(ctx context.Context, query queries.GetQueueReportQuery) ([]queries.QueueStanding, error)
	}

	GetCustomerStandingHandler interface {
		Handle(ctx context.Context, query queries.GetQueueStandingQuery) (queries.CustomerStanding, error)
	}

	CancelActiveOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CancelActiveOrderCommand) (*order.Order, error)
	}

	ReceiveOrdersHandler interface {
		Handle(ctx context.Context, cmd commands.ReceiveOrdersCommand) ([]ports.IntakeMessage, error)
	}

	FindUsersHandler interface {
		Handle(ctx context.Context, query queries.FindUsersQuery) (filter.Page[*user.User], error)
	}

	GetUserByEmailHandler interface {
		Handle(ctx context.Context, query queries.GetUserByEmailQuery) (*user.User, error)
	}
)

// Handlers groups the use cases exposed over HTTP.
type Handlers struct {
	// Command handlers
	PlaceOrder        commands.PlaceOrderHandler
	UpdateOrderStatus commands.UpdateOrderStatusHandler
	CancelActiveOrder CancelActiveOrderHandler
	ReceiveOrders     ReceiveOrdersHandler
	CreateUser        CreateUserHandler

	// Query handlers
	GetOrder            GetOrderHandler
	FindOrders          FindOrdersHandler
	FindAllOrders       FindAllOrdersHandler
	GetReservedOrders   GetReservedOrdersHandler
	GetQueuePosition    QueueStandingHandler
	GetQueueWaitTime    QueueStandingHandler
	GetCustomerStanding GetCustomerStandingHandler
	GetQueueReport      GetQueueReportHandler
	FindUsers           FindUsersHandler
	GetUserByEmail      GetUserByEmailHandler
}

// Server maps HTTP requests onto the application use cases.
//
// Authentication happens in front of the service. The gateway forwards the
// caller as X-Caller-ID and a comma-separated X-Caller-Roles header.
type Server struct {
	h Handlers
}

func NewServer(h Handlers) *Server {
	return &Server{h: h}
}

// Register mounts the API routes under /api/v1 and the health check.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	api := e.Group("/api/v1")

	api.POST("/orders", s.PlaceOrder)
	api.GET("/orders", s.FindOrders)
	api.GET("/orders/all", s.FindAllOrders)
	api.GET("/orders/reserved", s.GetReservedOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.PUT("/orders/:id/status", s.UpdateOrderStatus)

	api.GET("/customers/:id/queue/position", s.GetQueuePosition)
	api.GET("/customers/:id/queue/wait-time", s.GetQueueWaitTime)
	api.GET("/customers/:id/queue", s.GetCustomerStanding)
	api.POST("/customers/:id/order/cancel", s.CancelActiveOrder)

	api.GET("/queue/report", s.GetQueueReport)
	api.POST("/intake/batches", s.ReceiveOrders)

	api.POST("/users", s.CreateUser)
	api.GET("/users", s.FindUsers)
	api.GET("/users/by-email", s.GetUserByEmail)
}
