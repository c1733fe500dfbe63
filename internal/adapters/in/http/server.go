// Package http exposes the order lifecycle over a REST API. Orders are
// created and inspected here; validation and allocation verdicts arrive over
// the message broker, not over HTTP.
package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the JSON body for failed requests.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewOrderRequest is the JSON body for order creation.
type NewOrderRequest struct {
	CustomerID string         `json:"customerId"`
	Lines      []NewOrderLine `json:"lines"`
}

// NewOrderLine is one requested line of a new order.
type NewOrderLine struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

// OrderResponse is the JSON view of an order.
type OrderResponse struct {
	ID         string              `json:"id"`
	CustomerID string              `json:"customerId"`
	Status     string              `json:"status"`
	Version    int64               `json:"version"`
	Lines      []OrderLineResponse `json:"lines"`
}

// OrderLineResponse is the JSON view of one order line.
type OrderLineResponse struct {
	ID                string `json:"id"`
	SKU               string `json:"sku"`
	Quantity          int    `json:"quantity"`
	AllocatedQuantity int    `json:"allocatedQuantity"`
}

// Server handles HTTP requests and coordinates between the REST surface and
// the application use cases.
type Server struct {
	createOrderHandler commands.CreateOrderCommandHandler
	pickUpOrderHandler commands.PickUpOrderCommandHandler
	cancelOrderHandler commands.CancelOrderCommandHandler

	getOrderHandler queries.GetOrderQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	pickUpOrderHandler commands.PickUpOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
) *Server {
	return &Server{
		createOrderHandler: createOrderHandler,
		pickUpOrderHandler: pickUpOrderHandler,
		cancelOrderHandler: cancelOrderHandler,
		getOrderHandler:    getOrderHandler,
	}
}

// RegisterRoutes mounts the API on the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/orders", s.CreateOrder)
	e.GET("/api/v1/orders/:orderId", s.GetOrder)
	e.POST("/api/v1/orders/:orderId/pickup", s.PickUpOrder)
	e.POST("/api/v1/orders/:orderId/cancel", s.CancelOrder)
}

// CreateOrder handles POST /api/v1/orders - registers a new order and starts
// its lifecycle. The response carries the status the validation kickoff left
// the order in.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request NewOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	customerID, err := kernel.UUIDFromString(request.CustomerID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid customer id: " + request.CustomerID,
		})
	}

	lines := make([]commands.OrderLineSpec, len(request.Lines))
	for i, line := range request.Lines {
		lines[i] = commands.OrderLineSpec{
			LineID:   kernel.NewUUID(),
			SKU:      line.SKU,
			Quantity: line.Quantity,
		}
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), customerID, lines)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order data: " + err.Error(),
		})
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to create order",
		})
	}

	return ctx.JSON(http.StatusCreated, toOrderResponse(created))
}

// GetOrder handles GET /api/v1/orders/:orderId - retrieves one order with its
// lines.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id: " + ctx.Param("orderId"),
		})
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id: " + ctx.Param("orderId"),
		})
	}

	view, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusNotFound, ErrorResponse{
				Code:    http.StatusNotFound,
				Message: "Order not found",
			})
		}
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve order",
		})
	}

	response := OrderResponse{
		ID:         view.ID.String(),
		CustomerID: view.CustomerID.String(),
		Status:     view.Status,
		Version:    view.Version,
		Lines:      make([]OrderLineResponse, len(view.Lines)),
	}
	for i, line := range view.Lines {
		response.Lines[i] = OrderLineResponse{
			ID:                line.ID.String(),
			SKU:               line.SKU,
			Quantity:          line.Quantity,
			AllocatedQuantity: line.AllocatedQuantity,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// PickUpOrder handles POST /api/v1/orders/:orderId/pickup - marks an
// allocated order as picked up. Pickup requests for orders in any other
// status are accepted and ignored.
func (s *Server) PickUpOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id: " + ctx.Param("orderId"),
		})
	}

	cmd, err := commands.NewPickUpOrderCommand(orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id: " + ctx.Param("orderId"),
		})
	}

	if handleErr := s.pickUpOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to pick up order",
		})
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:orderId/cancel - cancels an order.
// Cancellation requests for orders past pickup are accepted and ignored.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id: " + ctx.Param("orderId"),
		})
	}

	cmd, err := commands.NewCancelOrderCommand(orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id: " + ctx.Param("orderId"),
		})
	}

	if handleErr := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to cancel order",
		})
	}

	return ctx.NoContent(http.StatusNoContent)
}

func toOrderResponse(o *order.Order) OrderResponse {
	response := OrderResponse{
		ID:         o.ID().String(),
		CustomerID: o.CustomerID().String(),
		Status:     o.Status().String(),
		Version:    o.Version(),
		Lines:      make([]OrderLineResponse, len(o.Lines())),
	}
	for i, line := range o.Lines() {
		response.Lines[i] = OrderLineResponse{
			ID:                line.ID().String(),
			SKU:               line.SKU(),
			Quantity:          line.Quantity(),
			AllocatedQuantity: line.AllocatedQuantity(),
		}
	}
	return response
}
