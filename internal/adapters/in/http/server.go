package http

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"lastmile/internal/adapters/out/advisor"
	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/application/usecases/queries"
	"lastmile/internal/core/domain/model/delivery"
	"lastmile/internal/core/ports"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	bookDeliveryHandler   commands.BookDeliveryCommandHandler
	verifyDeliveryHandler commands.VerifyDeliveryCommandHandler
	overrideStatusHandler commands.OverrideDeliveryStatusCommandHandler

	// Query handlers
	dailyDeliveriesHandler queries.GetDailyDeliveriesQueryHandler

	slotAdvisor ports.SlotAdvisor
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	bookDeliveryHandler commands.BookDeliveryCommandHandler,
	verifyDeliveryHandler commands.VerifyDeliveryCommandHandler,
	overrideStatusHandler commands.OverrideDeliveryStatusCommandHandler,
	dailyDeliveriesHandler queries.GetDailyDeliveriesQueryHandler,
	slotAdvisor ports.SlotAdvisor,
) *Server {
	return &Server{
		bookDeliveryHandler:    bookDeliveryHandler,
		verifyDeliveryHandler:  verifyDeliveryHandler,
		overrideStatusHandler:  overrideStatusHandler,
		dailyDeliveriesHandler: dailyDeliveriesHandler,
		slotAdvisor:            slotAdvisor,
	}
}

// RegisterRoutes mounts all endpoints on the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/deliveries", s.BookDelivery)
	api.POST("/deliveries/:id/verify", s.VerifyDelivery)
	api.PUT("/deliveries/:id/status", s.OverrideDeliveryStatus)
	api.GET("/deliveries/today", s.GetTodayDeliveries)
	api.GET("/slots/recommendation", s.GetSlotRecommendation)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// ErrorResponse is the JSON body returned for any failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// BookDeliveryRequest is the JSON body for booking a delivery.
type BookDeliveryRequest struct {
	Sender          string `json:"sender"`
	Recipient       string `json:"recipient"`
	Phone           string `json:"phone"`
	Address         string `json:"address"`
	Slot            string `json:"slot"`
	Area            int    `json:"area"`
	Weekday         int    `json:"weekday"`
	PastSuccessRate int    `json:"past_success_rate"`
}

// BookDeliveryResponse reports the booked delivery back to the sender.
// The confirmation code is returned here once so the sender has a fallback
// channel beside the SMS notification.
type BookDeliveryResponse struct {
	ID            int64    `json:"id"`
	Code          string   `json:"code"`
	Slot          string   `json:"slot"`
	PredictedSlot *string  `json:"predicted_slot,omitempty"`
	Confidence    *float64 `json:"confidence,omitempty"`
}

// BookDelivery handles POST /api/v1/deliveries - books a new delivery.
func (s *Server) BookDelivery(ctx echo.Context) error {
	started := time.Now()

	var req BookDeliveryRequest
	if err := ctx.Bind(&req); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	slot, err := delivery.SlotFromString(req.Slot)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid delivery data: "+err.Error())
	}

	cmd, err := commands.NewBookDeliveryCommand(
		req.Sender, req.Recipient, req.Phone, req.Address,
		slot, req.Area, req.Weekday, req.PastSuccessRate,
	)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid delivery data: "+err.Error())
	}

	result, err := s.bookDeliveryHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorJSON(ctx, http.StatusInternalServerError, "Failed to book delivery")
	}

	metrics.BookingsTotal.Inc()
	metrics.BookingDuration.Observe(time.Since(started).Seconds())
	if result.PredictedSlot == nil {
		metrics.AdvisorFallbacksTotal.Inc()
	}

	response := BookDeliveryResponse{
		ID:         int64(result.DeliveryID),
		Code:       result.Code,
		Slot:       slot.String(),
		Confidence: result.Confidence,
	}
	if result.PredictedSlot != nil {
		predicted := result.PredictedSlot.String()
		response.PredictedSlot = &predicted
	}

	return ctx.JSON(http.StatusCreated, response)
}

// VerifyDelivery handles POST /api/v1/deliveries/:id/verify - closes a
// delivery with the recipient's confirmation code. The body is multipart:
// a "code" field plus an optional "photo" file with the proof of delivery.
func (s *Server) VerifyDelivery(ctx echo.Context) error {
	deliveryID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid delivery id")
	}

	code := ctx.FormValue("code")

	var proof io.Reader
	if fileHeader, fileErr := ctx.FormFile("photo"); fileErr == nil {
		file, openErr := fileHeader.Open()
		if openErr != nil {
			return errorJSON(ctx, http.StatusBadRequest, "Failed to read proof photo")
		}
		defer file.Close()
		proof = file
	}

	cmd, err := commands.NewVerifyDeliveryCommand(delivery.ID(deliveryID), code, proof)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid verification data: "+err.Error())
	}

	if handleErr := s.verifyDeliveryHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.verificationError(ctx, handleErr)
	}

	metrics.VerificationsTotal.WithLabelValues("success").Inc()
	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) verificationError(ctx echo.Context, err error) error {
	var notFound *errs.ObjectNotFoundError
	switch {
	case errors.As(err, &notFound):
		return errorJSON(ctx, http.StatusNotFound, "Delivery not found")
	case errors.Is(err, delivery.ErrInvalidCode):
		metrics.VerificationsTotal.WithLabelValues("invalid_code").Inc()
		return errorJSON(ctx, http.StatusUnprocessableEntity, "Confirmation code does not match")
	case errors.Is(err, delivery.ErrAlreadyDelivered):
		metrics.VerificationsTotal.WithLabelValues("already_delivered").Inc()
		return errorJSON(ctx, http.StatusConflict, "Delivery is already delivered")
	default:
		return errorJSON(ctx, http.StatusInternalServerError, "Failed to verify delivery")
	}
}

// OverrideStatusRequest is the JSON body for an administrative status change.
type OverrideStatusRequest struct {
	Status string `json:"status"`
}

// OverrideDeliveryStatus handles PUT /api/v1/deliveries/:id/status - forces
// a delivery into Delivered or Cancelled without code verification.
func (s *Server) OverrideDeliveryStatus(ctx echo.Context) error {
	deliveryID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid delivery id")
	}

	var req OverrideStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	status, err := delivery.StatusFromString(req.Status)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid status: "+err.Error())
	}

	cmd, err := commands.NewOverrideDeliveryStatusCommand(delivery.ID(deliveryID), status)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid override data: "+err.Error())
	}

	if handleErr := s.overrideStatusHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		var notFound *errs.ObjectNotFoundError
		var invalid *errs.ValueIsInvalidError
		switch {
		case errors.As(handleErr, &notFound):
			return errorJSON(ctx, http.StatusNotFound, "Delivery not found")
		case errors.Is(handleErr, delivery.ErrAlreadyDelivered):
			return errorJSON(ctx, http.StatusConflict, "Delivery is already delivered")
		case errors.As(handleErr, &invalid):
			return errorJSON(ctx, http.StatusBadRequest, "Invalid override data: "+handleErr.Error())
		default:
			return errorJSON(ctx, http.StatusInternalServerError, "Failed to override delivery status")
		}
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeliveryItem is one delivery row in the daily listing.
type DeliveryItem struct {
	ID            int64    `json:"id"`
	Sender        string   `json:"sender"`
	Recipient     string   `json:"recipient"`
	Phone         string   `json:"phone"`
	Address       string   `json:"address"`
	Slot          string   `json:"slot"`
	PredictedSlot *string  `json:"predicted_slot,omitempty"`
	Confidence    *float64 `json:"confidence,omitempty"`
	Status        string   `json:"status"`
	ProofPath     *string  `json:"proof_path,omitempty"`
	CreatedAt     string   `json:"created_at"`
}

// GetTodayDeliveries handles GET /api/v1/deliveries/today - lists the
// deliveries created today in booking order.
func (s *Server) GetTodayDeliveries(ctx echo.Context) error {
	query, err := queries.NewGetDailyDeliveriesQuery(time.Now().UTC())
	if err != nil {
		return errorJSON(ctx, http.StatusInternalServerError, "Failed to build daily query")
	}

	deliveries, err := s.dailyDeliveriesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, http.StatusInternalServerError, "Failed to retrieve deliveries")
	}

	response := make([]DeliveryItem, len(deliveries))
	for i, record := range deliveries {
		response[i] = DeliveryItem{
			ID:            record.ID,
			Sender:        record.Sender,
			Recipient:     record.Recipient,
			Phone:         record.Phone,
			Address:       record.Address,
			Slot:          record.Slot,
			PredictedSlot: record.PredictedSlot,
			Confidence:    record.Confidence,
			Status:        record.Status,
			ProofPath:     record.ProofPath,
			CreatedAt:     record.CreatedAt.Format(time.RFC3339),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// SlotRecommendationResponse is the advisor's answer for a feature triple.
type SlotRecommendationResponse struct {
	Slot       string  `json:"slot"`
	Confidence float64 `json:"confidence"`
}

// GetSlotRecommendation handles GET /api/v1/slots/recommendation - asks the
// advisor for a delivery window given area, weekday and past_success_rate
// query parameters.
func (s *Server) GetSlotRecommendation(ctx echo.Context) error {
	area, err := strconv.Atoi(ctx.QueryParam("area"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid area")
	}
	weekday, err := strconv.Atoi(ctx.QueryParam("weekday"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid weekday")
	}
	rate, err := strconv.Atoi(ctx.QueryParam("past_success_rate"))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid past_success_rate")
	}

	slot, confidence, err := s.slotAdvisor.Recommend(area, weekday, rate)
	if err != nil {
		var outOfRange *errs.ValueIsOutOfRangeError
		switch {
		case errors.Is(err, advisor.ErrModelUnavailable):
			return errorJSON(ctx, http.StatusServiceUnavailable, "Slot model unavailable")
		case errors.As(err, &outOfRange):
			return errorJSON(ctx, http.StatusBadRequest, "Invalid features: "+err.Error())
		default:
			return errorJSON(ctx, http.StatusInternalServerError, "Failed to recommend a slot")
		}
	}

	return ctx.JSON(http.StatusOK, SlotRecommendationResponse{
		Slot:       slot.String(),
		Confidence: confidence,
	})
}

func errorJSON(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, ErrorResponse{Code: code, Message: message})
}
