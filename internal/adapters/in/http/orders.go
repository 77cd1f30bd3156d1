package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"storehouse/internal/core/application/usecases/commands"
	"storehouse/internal/core/application/usecases/queries"
	"storehouse/internal/core/domain/model/filter"
	"storehouse/internal/core/domain/model/kernel"
	"storehouse/internal/core/domain/model/order"
	"storehouse/internal/core/domain/model/user"
	"storehouse/internal/core/domain/services"
	"storehouse/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"
)

// PlaceOrder handles POST /api/v1/orders.
func (s *Server) PlaceOrder(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return fail(c, err)
	}

	var req PlaceOrderRequest
	if err = c.Bind(&req); err != nil {
		return fail(c, err)
	}

	cmd, err := commands.NewPlaceOrderCommand(caller, user.ID(req.CustomerID), toItems(req.Items))
	if err != nil {
		return fail(c, err)
	}

	placed, err := s.h.PlaceOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, toOrderResponse(placed))
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	id, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return fail(c, err)
	}

	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return fail(c, err)
	}

	found, err := s.h.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, toOrderResponse(found))
}

// FindOrders handles GET /api/v1/orders with optional startDate, endDate
// (RFC 3339), customerId, status, tier and pagination parameters.
// Callers other than staff only see their own orders.
func (s *Server) FindOrders(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return fail(c, err)
	}

	f, err := orderFilterFrom(c)
	if err != nil {
		return fail(c, err)
	}

	query, err := queries.NewFindOrdersQuery(caller, f)
	if err != nil {
		return fail(c, err)
	}

	page, err := s.h.FindOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, toPageResponse(page, toOrderResponse))
}

// FindAllOrders handles GET /api/v1/orders/all?orderField=. Staff only.
func (s *Server) FindAllOrders(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return fail(c, err)
	}

	orders, err := s.h.FindAllOrders.Handle(c.Request().Context(),
		queries.NewFindAllOrdersQuery(caller, c.QueryParam("orderField")))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, toOrderResponses(orders))
}

// GetReservedOrders handles GET /api/v1/orders/reserved.
func (s *Server) GetReservedOrders(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return fail(c, err)
	}

	orders, err := s.h.GetReservedOrders.Handle(c.Request().Context(), queries.NewGetReservedOrdersQuery(caller))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, toOrderResponses(orders))
}

// UpdateOrderStatus handles PUT /api/v1/orders/:id/status.
func (s *Server) UpdateOrderStatus(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return fail(c, err)
	}

	id, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return fail(c, err)
	}

	var req UpdateOrderStatusRequest
	if err = c.Bind(&req); err != nil {
		return fail(c, err)
	}

	status, err := order.StatusFromString(req.Status)
	if err != nil {
		return fail(c, errs.NewFieldNotValidErrorWithCause("status", err))
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(caller, id, status)
	if err != nil {
		return fail(c, err)
	}

	updated, err := s.h.UpdateOrderStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, toOrderResponse(updated))
}

// GetQueuePosition handles GET /api/v1/customers/:id/queue/position.
func (s *Server) GetQueuePosition(c echo.Context) error {
	return s.queueStanding(c, s.h.GetQueuePosition)
}

// GetQueueWaitTime handles GET /api/v1/customers/:id/queue/wait-time.
func (s *Server) GetQueueWaitTime(c echo.Context) error {
	return s.queueStanding(c, s.h.GetQueueWaitTime)
}

func (s *Server) queueStanding(c echo.Context, handler QueueStandingHandler) error {
	id, err := customerIDParam(c)
	if err != nil {
		return fail(c, err)
	}

	query, err := queries.NewGetQueueStandingQuery(id)
	if err != nil {
		return fail(c, err)
	}

	value, err := handler.Handle(c.Request().Context(), query)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, QueueStandingResponse{
		CustomerID: int64(id),
		Queued:     value != services.NotQueued,
		Value:      value,
	})
}

// GetCustomerStanding handles GET /api/v1/customers/:id/queue. A customer
// without a reserved order is reported as 404.
func (s *Server) GetCustomerStanding(c echo.Context) error {
	id, err := customerIDParam(c)
	if err != nil {
		return fail(c, err)
	}

	query, err := queries.NewGetQueueStandingQuery(id)
	if err != nil {
		return fail(c, err)
	}

	standing, err := s.h.GetCustomerStanding.Handle(c.Request().Context(), query)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, toCustomerStandingResponse(standing))
}

// CancelActiveOrder handles POST /api/v1/customers/:id/order/cancel.
func (s *Server) CancelActiveOrder(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return fail(c, err)
	}

	id, err := customerIDParam(c)
	if err != nil {
		return fail(c, err)
	}

	cmd, err := commands.NewCancelActiveOrderCommand(caller, id)
	if err != nil {
		return fail(c, err)
	}

	cancelled, err := s.h.CancelActiveOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, toOrderResponse(cancelled))
}

// GetQueueReport handles GET /api/v1/queue/report. Staff only.
func (s *Server) GetQueueReport(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return fail(c, err)
	}

	report, err := s.h.GetQueueReport.Handle(c.Request().Context(), queries.NewGetQueueReportQuery(caller))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, toQueueReportResponse(report))
}

// ReceiveOrders handles POST /api/v1/intake/batches: it admits the next
// intake batch on demand, outside the schedule. Staff only.
func (s *Server) ReceiveOrders(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return fail(c, err)
	}

	batch, err := s.h.ReceiveOrders.Handle(c.Request().Context(), commands.NewReceiveOrdersCommandFor(caller))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, toIntakeBatchResponse(batch))
}

func customerIDParam(c echo.Context) (user.ID, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, errs.NewFieldNotValidErrorWithCause("customerId", err)
	}
	return user.ID(id), nil
}

func orderFilterFrom(c echo.Context) (filter.OrderFilter, error) {
	var (
		f          filter.OrderFilter
		start, end time.Time
		customerID int64
	)

	err := echo.QueryParamsBinder(c).
		Time("startDate", &start, time.RFC3339).
		Time("endDate", &end, time.RFC3339).
		Int64("customerId", &customerID).
		BindError()
	if err != nil {
		return filter.OrderFilter{}, bindingError(err)
	}

	if c.QueryParam("startDate") != "" {
		f.StartDate = &start
	}
	if c.QueryParam("endDate") != "" {
		f.EndDate = &end
	}
	if c.QueryParam("customerId") != "" {
		f.CustomerID = lo.ToPtr(user.ID(customerID))
	}

	if raw := c.QueryParam("status"); raw != "" {
		status, err := order.StatusFromString(raw)
		if err != nil {
			return filter.OrderFilter{}, errs.NewFieldNotValidErrorWithCause("status", err)
		}
		f.Status = &status
	}

	switch c.QueryParam("tier") {
	case "":
	case "premium":
		f.Tier = filter.PremiumTier
	case "standard":
		f.Tier = filter.StandardTier
	default:
		return filter.OrderFilter{}, errs.NewFieldNotValidError("tier")
	}

	f.GenericFilter, err = genericFilterFrom(c)
	return f, err
}

// genericFilterFrom reads firstResult, maxResults, orderField and orderMode.
// Without any of them the scan is unpaginated.
func genericFilterFrom(c echo.Context) (filter.GenericFilter, error) {
	params := []string{"firstResult", "maxResults", "orderField", "orderMode"}
	if !lo.SomeBy(params, func(p string) bool { return c.QueryParam(p) != "" }) {
		return filter.GenericFilter{}, nil
	}

	var p filter.PaginationData
	err := echo.QueryParamsBinder(c).
		Int("firstResult", &p.FirstResult).
		Int("maxResults", &p.MaxResults).
		String("orderField", &p.OrderField).
		BindError()
	if err != nil {
		return filter.GenericFilter{}, bindingError(err)
	}

	if p.OrderMode, err = filter.OrderModeFromString(c.QueryParam("orderMode")); err != nil {
		return filter.GenericFilter{}, err
	}
	return filter.GenericFilter{Pagination: &p}, nil
}

func bindingError(err error) error {
	var be *echo.BindingError
	if errors.As(err, &be) {
		return errs.NewFieldNotValidErrorWithCause(be.Field, be.Internal)
	}
	return err
}
