package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Eursukkul/booking-microservice/storefront-service/internal/dto"
	"github.com/Eursukkul/booking-microservice/storefront-service/internal/middleware"
	"github.com/Eursukkul/booking-microservice/storefront-service/internal/models"
	"github.com/Eursukkul/booking-microservice/storefront-service/internal/service"
)

type BookingHandler struct {
	svc service.BookingService
}

func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func (h *BookingHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/bookings", h.ListBookings)
	g.GET("/bookings/:id", h.GetBooking)
	g.DELETE("/bookings/:id", h.CancelBooking)
}

func (h *BookingHandler) ListBookings(c echo.Context) error {
	var status *models.BookingStatus
	if s := c.QueryParam("status"); s != "" && s != "all" {
		bs := models.BookingStatus(s)
		status = &bs
	}

	bookings, err := h.svc.ListBookings(c.Request().Context(), middleware.UserID(c), status)
	if err != nil {
		return err
	}

	resp := make([]dto.BookingResponse, len(bookings))
	for i := range bookings {
		resp[i] = dto.ToBookingResponse(&bookings[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	booking, err := h.svc.GetBooking(c.Request().Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) CancelBooking(c echo.Context) error {
	booking, err := h.svc.CancelBooking(c.Request().Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}
