// Package http provides the inbound HTTP adapter. It translates REST
// requests into commands and queries and maps domain errors onto HTTP
// status codes.
package http

import (
	"errors"
	"net/http"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/partner"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler         commands.CreateOrderCommandHandler
	acceptOrderHandler         commands.AcceptOrderCommandHandler
	declineOrderHandler        commands.DeclineOrderCommandHandler
	startPreparingHandler      commands.StartPreparingCommandHandler
	markReadyHandler           commands.MarkReadyCommandHandler
	cancelOrderHandler         commands.CancelOrderCommandHandler
	assignDeliveryHandler      commands.AssignDeliveryCommandHandler
	startDeliveryHandler       commands.StartDeliveryCommandHandler
	markDeliveredHandler       commands.MarkDeliveredCommandHandler
	markPaymentHandler         commands.MarkPaymentReceivedCommandHandler
	updateItemPackingHandler   commands.UpdateItemPackingCommandHandler
	registerPartnerHandler     commands.RegisterPartnerCommandHandler
	partnerAvailabilityHandler commands.SetPartnerAvailabilityCommandHandler

	// Query handlers
	getOrderHandler          queries.GetOrderQueryHandler
	getOrdersByStatusHandler queries.GetOrdersByStatusQueryHandler
	getPartnersHandler       queries.GetAvailablePartnersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	acceptOrderHandler commands.AcceptOrderCommandHandler,
	declineOrderHandler commands.DeclineOrderCommandHandler,
	startPreparingHandler commands.StartPreparingCommandHandler,
	markReadyHandler commands.MarkReadyCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	assignDeliveryHandler commands.AssignDeliveryCommandHandler,
	startDeliveryHandler commands.StartDeliveryCommandHandler,
	markDeliveredHandler commands.MarkDeliveredCommandHandler,
	markPaymentHandler commands.MarkPaymentReceivedCommandHandler,
	updateItemPackingHandler commands.UpdateItemPackingCommandHandler,
	registerPartnerHandler commands.RegisterPartnerCommandHandler,
	partnerAvailabilityHandler commands.SetPartnerAvailabilityCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getOrdersByStatusHandler queries.GetOrdersByStatusQueryHandler,
	getPartnersHandler queries.GetAvailablePartnersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:         createOrderHandler,
		acceptOrderHandler:         acceptOrderHandler,
		declineOrderHandler:        declineOrderHandler,
		startPreparingHandler:      startPreparingHandler,
		markReadyHandler:           markReadyHandler,
		cancelOrderHandler:         cancelOrderHandler,
		assignDeliveryHandler:      assignDeliveryHandler,
		startDeliveryHandler:       startDeliveryHandler,
		markDeliveredHandler:       markDeliveredHandler,
		markPaymentHandler:         markPaymentHandler,
		updateItemPackingHandler:   updateItemPackingHandler,
		registerPartnerHandler:     registerPartnerHandler,
		partnerAvailabilityHandler: partnerAvailabilityHandler,
		getOrderHandler:            getOrderHandler,
		getOrdersByStatusHandler:   getOrdersByStatusHandler,
		getPartnersHandler:         getPartnersHandler,
	}
}

// RegisterRoutes wires the REST surface onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetOrdersByStatus)
	api.GET("/orders/:orderID", s.GetOrder)
	api.POST("/orders/:orderID/accept", s.AcceptOrder)
	api.POST("/orders/:orderID/decline", s.DeclineOrder)
	api.POST("/orders/:orderID/prepare", s.StartPreparing)
	api.POST("/orders/:orderID/ready", s.MarkReady)
	api.POST("/orders/:orderID/cancel", s.CancelOrder)
	api.POST("/orders/:orderID/assignment", s.AssignDelivery)
	api.POST("/orders/:orderID/dispatch", s.StartDelivery)
	api.POST("/orders/:orderID/delivered", s.MarkDelivered)
	api.POST("/orders/:orderID/payment", s.MarkPaymentReceived)
	api.PUT("/orders/:orderID/items/:itemID/packing", s.UpdateItemPacking)

	api.POST("/partners", s.RegisterPartner)
	api.GET("/partners/available", s.GetAvailablePartners)
	api.PUT("/partners/:partnerID/availability", s.SetPartnerAvailability)
}

// Error is the JSON error body returned on failures.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// NewOrderItemRequest is one checklist line of an incoming order.
type NewOrderItemRequest struct {
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	Unit       string          `json:"unit"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// NewOrderRequest is the body of POST /orders.
type NewOrderRequest struct {
	OrderNumber     string                `json:"order_number"`
	CustomerName    string                `json:"customer_name"`
	CustomerPhone   string                `json:"customer_phone"`
	CustomerAddress string                `json:"customer_address"`
	PaymentAmount   decimal.Decimal       `json:"payment_amount"`
	Items           []NewOrderItemRequest `json:"items"`
}

// CreateOrder handles POST /api/v1/orders - registers an externally placed
// order with the engine.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req NewOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	orderID := kernel.NewUUID()
	items := make([]commands.NewOrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, commands.NewOrderItem{
			ID:         kernel.NewUUID(),
			Name:       item.Name,
			Quantity:   item.Quantity,
			Unit:       item.Unit,
			TotalPrice: item.TotalPrice,
		})
	}

	cmd, err := commands.NewCreateOrderCommand(
		orderID,
		req.OrderNumber,
		commands.NewOrderCustomer{
			Name:    req.CustomerName,
			Phone:   req.CustomerPhone,
			Address: req.CustomerAddress,
		},
		items,
		req.PaymentAmount,
	)
	if err != nil {
		return s.badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if handleErr := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.mapDomainError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": orderID.String()})
}

// AcceptOrder handles POST /api/v1/orders/:orderID/accept.
func (s *Server) AcceptOrder(ctx echo.Context) error {
	orderID, err := s.pathUUID(ctx, "orderID")
	if err != nil {
		return s.badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewAcceptOrderCommand(orderID)
	if err != nil {
		return s.badRequest(ctx, err.Error())
	}

	if handleErr := s.acceptOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.mapDomainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReasonRequest carries the mandatory reason of a decline or cancellation.
type ReasonRequest struct {
	Reason string `json:"reason"`
}

// DeclineOrder handles POST /api/v1/orders/:orderID/decline.
func (s *Server) DeclineOrder(ctx echo.Context) error {
	orderID, err := s.pathUUID(ctx, "orderID")
	if err != nil {
		return s.badRequest(ctx, "Invalid order id")
	}

	var req ReasonRequest
	if err = ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewDeclineOrderCommand(orderID, req.Reason)
	if err != nil {
		return s.badRequest(ctx, err.Error())
	}

	if handleErr := s.declineOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.mapDomainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// StartPreparing handles POST /api/v1/orders/:orderID/prepare.
func (s *Server) StartPreparing(ctx echo.Context) error {
	orderID, err := s.pathUUID(ctx, "orderID")
	if err != nil {
		return s.badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewStartPreparingCommand(orderID)
	if err != nil {
		return s.badRequest(ctx, err.Error())
	}

	if handleErr := s.startPreparingHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.mapDomainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// PackingProgressResponse reports how much of the checklist was packed when
// the order was marked ready.
type PackingProgressResponse struct {
	Packed int `json:"packed"`
	Total  int `json:"total"`
}

// MarkReady handles POST /api/v1/orders/:orderID/ready. Marking ready never
// requires a complete checklist; the response reports the packed counts so
// the seller sees what an override skipped.
func (s *Server) MarkReady(ctx echo.Context) error {
	orderID, err := s.pathUUID(ctx, "orderID")
	if err != nil {
		return s.badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewMarkReadyCommand(orderID)
	if err != nil {
		return s.badRequest(ctx, err.Error())
	}

	progress, handleErr := s.markReadyHandler.Handle(ctx.Request().Context(), cmd)
	if handleErr != nil {
		return s.mapDomainError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusOK, PackingProgressResponse{
		Packed: progress.Packed,
		Total:  progress.Total,
	})
}

// CancelOrder handles POST /api/v1/orders/:orderID/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := s.pathUUID(ctx, "orderID")
	if err != nil {
		return s.badRequest(ctx, "Invalid order id")
	}

	var req ReasonRequest
	if err = ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, req.Reason)
	if err != nil {
		return s.badRequest(ctx, err.Error())
	}

	if handleErr := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.mapDomainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AssignDeliveryRequest names the partner chosen from the registry snapshot.
type AssignDeliveryRequest struct {
	PartnerID string `json:"partner_id"`
}

// AssignDeliveryResponse reports whether the reservation won. A lost
// reservation race is a normal outcome, not a server fault.
type AssignDeliveryResponse struct {
	Success bool `json:"success"`
}

// AssignDelivery handles POST /api/v1/orders/:orderID/assignment.
func (s *Server) AssignDelivery(ctx echo.Context) error {
	orderID, err := s.pathUUID(ctx, "orderID")
	if err != nil {
		return s.badRequest(ctx, "Invalid order id")
	}

	var req AssignDeliveryRequest
	if err = ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	partnerID, err := kernel.UUIDFromString(req.PartnerID)
	if err != nil {
		return s.badRequest(ctx, "Invalid partner id")
	}

	cmd, err := commands.NewAssignDeliveryCommand(orderID, partnerID)
	if err != nil {
		return s.badRequest(ctx, err.Error())
	}

	if handleErr := s.assignDeliveryHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		if errors.Is(handleErr, partner.ErrPartnerUnavailable) {
			return ctx.JSON(http.StatusConflict, AssignDeliveryResponse{Success: false})
		}
		return s.mapDomainError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusOK, AssignDeliveryResponse{Success: true})
}

// StartDelivery handles POST /api/v1/orders/:orderID/dispatch.
func (s *Server) StartDelivery(ctx echo.Context) error {
	orderID, err := s.pathUUID(ctx, "orderID")
	if err != nil {
		return s.badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewStartDeliveryCommand(orderID)
	if err != nil {
		return s.badRequest(ctx, err.Error())
	}

	if handleErr := s.startDeliveryHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.mapDomainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// MarkDelivered handles POST /api/v1/orders/:orderID/delivered.
func (s *Server) MarkDelivered(ctx echo.Context) error {
	orderID, err := s.pathUUID(ctx, "orderID")
	if err != nil {
		return s.badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewMarkDeliveredCommand(orderID)
	if err != nil {
		return s.badRequest(ctx, err.Error())
	}

	if handleErr := s.markDeliveredHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.mapDomainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// MarkPaymentReceived handles POST /api/v1/orders/:orderID/payment.
func (s *Server) MarkPaymentReceived(ctx echo.Context) error {
	orderID, err := s.pathUUID(ctx, "orderID")
	if err != nil {
		return s.badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewMarkPaymentReceivedCommand(orderID)
	if err != nil {
		return s.badRequest(ctx, err.Error())
	}

	if handleErr := s.markPaymentHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.mapDomainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateItemPackingRequest sets or clears one item's packed flag.
type UpdateItemPackingRequest struct {
	Packed bool `json:"packed"`
}

// UpdateItemPacking handles PUT /api/v1/orders/:orderID/items/:itemID/packing.
func (s *Server) UpdateItemPacking(ctx echo.Context) error {
	orderID, err := s.pathUUID(ctx, "orderID")
	if err != nil {
		return s.badRequest(ctx, "Invalid order id")
	}

	itemID, err := s.pathUUID(ctx, "itemID")
	if err != nil {
		return s.badRequest(ctx, "Invalid item id")
	}

	var req UpdateItemPackingRequest
	if err = ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewUpdateItemPackingCommand(orderID, itemID, req.Packed)
	if err != nil {
		return s.badRequest(ctx, err.Error())
	}

	if handleErr := s.updateItemPackingHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.mapDomainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// OrderItemResponse is one checklist line of the order read model.
type OrderItemResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	Unit       string          `json:"unit"`
	TotalPrice decimal.Decimal `json:"total_price"`
	IsPacked   bool            `json:"is_packed"`
}

// OrderAssignmentResponse is the delivery binding of the order read model.
type OrderAssignmentResponse struct {
	PartnerID             string    `json:"partner_id"`
	PartnerName           string    `json:"partner_name"`
	PartnerPhone          string    `json:"partner_phone"`
	EstimatedDeliveryTime time.Time `json:"estimated_delivery_time"`
	AssignedAt            time.Time `json:"assigned_at"`
}

// OrderHistoryResponse is one status history entry of the order read model.
type OrderHistoryResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note,omitempty"`
}

// OrderResponse is the full order read model.
type OrderResponse struct {
	ID               string                   `json:"id"`
	OrderNumber      string                   `json:"order_number"`
	Status           string                   `json:"status"`
	PaymentAmount    decimal.Decimal          `json:"payment_amount"`
	PaymentStatus    string                   `json:"payment_status"`
	CustomerName     string                   `json:"customer_name"`
	CustomerPhone    string                   `json:"customer_phone"`
	CustomerAddress  string                   `json:"customer_address"`
	Items            []OrderItemResponse      `json:"items"`
	Assignment       *OrderAssignmentResponse `json:"assignment,omitempty"`
	History          []OrderHistoryResponse   `json:"history"`
	AvailableActions []string                 `json:"available_actions"`
	PackedCount      int                      `json:"packed_count"`
	TotalCount       int                      `json:"total_count"`
	CreatedAt        time.Time                `json:"created_at"`
}

// GetOrder handles GET /api/v1/orders/:orderID.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := s.pathUUID(ctx, "orderID")
	if err != nil {
		return s.badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return s.badRequest(ctx, err.Error())
	}

	result, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.mapDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(result))
}

// OrderSummaryResponse is one line of a stage listing.
type OrderSummaryResponse struct {
	ID            string          `json:"id"`
	OrderNumber   string          `json:"order_number"`
	CustomerName  string          `json:"customer_name"`
	PaymentAmount decimal.Decimal `json:"payment_amount"`
	PackedCount   int             `json:"packed_count"`
	TotalCount    int             `json:"total_count"`
	CreatedAt     time.Time       `json:"created_at"`
}

// GetOrdersByStatus handles GET /api/v1/orders?status=preparing.
func (s *Server) GetOrdersByStatus(ctx echo.Context) error {
	status, err := order.StatusFromString(ctx.QueryParam("status"))
	if err != nil {
		return s.badRequest(ctx, "Invalid status")
	}

	query, err := queries.NewGetOrdersByStatusQuery(status)
	if err != nil {
		return s.badRequest(ctx, err.Error())
	}

	results, err := s.getOrdersByStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.mapDomainError(ctx, err)
	}

	response := make([]OrderSummaryResponse, len(results))
	for i, summary := range results {
		response[i] = OrderSummaryResponse{
			ID:            summary.ID.String(),
			OrderNumber:   summary.OrderNumber,
			CustomerName:  summary.CustomerName,
			PaymentAmount: summary.PaymentAmount,
			PackedCount:   summary.PackedCount,
			TotalCount:    summary.TotalCount,
			CreatedAt:     summary.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// RegisterPartnerRequest is the body of POST /partners.
type RegisterPartnerRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
}

// RegisterPartner handles POST /api/v1/partners.
func (s *Server) RegisterPartner(ctx echo.Context) error {
	var req RegisterPartnerRequest
	if err := ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	partnerID := kernel.NewUUID()
	cmd, err := commands.NewRegisterPartnerCommand(partnerID, req.Name, req.PhoneNumber)
	if err != nil {
		return s.badRequest(ctx, "Invalid partner data: "+err.Error())
	}

	if handleErr := s.registerPartnerHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.mapDomainError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": partnerID.String()})
}

// PartnerResponse is the read model of one available partner.
type PartnerResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
}

// GetAvailablePartners handles GET /api/v1/partners/available.
func (s *Server) GetAvailablePartners(ctx echo.Context) error {
	query := queries.NewGetAvailablePartnersQuery(ctx.QueryParam("name"))

	results, err := s.getPartnersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.mapDomainError(ctx, err)
	}

	response := make([]PartnerResponse, len(results))
	for i, p := range results {
		response[i] = PartnerResponse{
			ID:          p.ID.String(),
			Name:        p.Name,
			PhoneNumber: p.PhoneNumber,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// SetAvailabilityRequest toggles a partner's shift state.
type SetAvailabilityRequest struct {
	Available bool `json:"available"`
}

// SetPartnerAvailability handles PUT /api/v1/partners/:partnerID/availability.
func (s *Server) SetPartnerAvailability(ctx echo.Context) error {
	partnerID, err := s.pathUUID(ctx, "partnerID")
	if err != nil {
		return s.badRequest(ctx, "Invalid partner id")
	}

	var req SetAvailabilityRequest
	if err = ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewSetPartnerAvailabilityCommand(partnerID, req.Available)
	if err != nil {
		return s.badRequest(ctx, err.Error())
	}

	if handleErr := s.partnerAvailabilityHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.mapDomainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func toOrderResponse(result queries.GetOrderQueryResponse) OrderResponse {
	items := make([]OrderItemResponse, len(result.Items))
	for i, item := range result.Items {
		items[i] = OrderItemResponse{
			ID:         item.ID.String(),
			Name:       item.Name,
			Quantity:   item.Quantity,
			Unit:       item.Unit,
			TotalPrice: item.TotalPrice,
			IsPacked:   item.IsPacked,
		}
	}

	history := make([]OrderHistoryResponse, len(result.History))
	for i, entry := range result.History {
		history[i] = OrderHistoryResponse{
			Status:    entry.Status,
			Timestamp: entry.Timestamp,
			Note:      entry.Note,
		}
	}

	actions := make([]string, len(result.AvailableActions))
	for i, action := range result.AvailableActions {
		actions[i] = string(action)
	}

	var assignment *OrderAssignmentResponse
	if result.Assignment != nil {
		assignment = &OrderAssignmentResponse{
			PartnerID:             result.Assignment.PartnerID.String(),
			PartnerName:           result.Assignment.PartnerName,
			PartnerPhone:          result.Assignment.PartnerPhone,
			EstimatedDeliveryTime: result.Assignment.EstimatedDeliveryTime,
			AssignedAt:            result.Assignment.AssignedAt,
		}
	}

	return OrderResponse{
		ID:               result.ID.String(),
		OrderNumber:      result.OrderNumber,
		Status:           result.Status,
		PaymentAmount:    result.PaymentAmount,
		PaymentStatus:    result.PaymentStatus,
		CustomerName:     result.CustomerName,
		CustomerPhone:    result.CustomerPhone,
		CustomerAddress:  result.CustomerAddress,
		Items:            items,
		Assignment:       assignment,
		History:          history,
		AvailableActions: actions,
		PackedCount:      result.PackedCount,
		TotalCount:       result.TotalCount,
		CreatedAt:        result.CreatedAt,
	}
}

func (s *Server) pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(name))
}

func (s *Server) badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// mapDomainError translates domain failures onto HTTP status codes: unknown
// objects map to 404, lifecycle conflicts to 409, validation failures to
// 400, anything else to 500.
func (s *Server) mapDomainError(ctx echo.Context, err error) error {
	var notFound *errs.ObjectNotFoundError

	switch {
	case errors.As(err, &notFound), errors.Is(err, order.ErrItemNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, order.ErrOrderTerminal),
		errors.Is(err, order.ErrIllegalTransition),
		errors.Is(err, order.ErrPackingNotAllowed),
		errors.Is(err, partner.ErrPartnerUnavailable),
		errors.Is(err, partner.ErrPartnerHasActiveOrder):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}
