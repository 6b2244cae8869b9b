package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Eursukkul/booking-microservice/storefront-service/internal/checkout"
	"github.com/Eursukkul/booking-microservice/storefront-service/internal/dto"
	"github.com/Eursukkul/booking-microservice/storefront-service/internal/middleware"
)

type CheckoutHandler struct {
	manager      *checkout.Manager
	cartViewPath string
}

func NewCheckoutHandler(manager *checkout.Manager, cartViewPath string) *CheckoutHandler {
	return &CheckoutHandler{manager: manager, cartViewPath: cartViewPath}
}

func (h *CheckoutHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/checkout", h.Begin)
	g.GET("/checkout", h.Get)
	g.PUT("/checkout/details", h.SubmitDetails)
	g.POST("/checkout/back", h.Back)
	g.PUT("/checkout/payment", h.SubmitPayment)
	g.DELETE("/checkout", h.Abandon)
}

// refusal turns the cart-state refusals of checkout into their responses:
// an empty cart redirects to the cart view, missing travel dates are 422.
func (h *CheckoutHandler) refusal(c echo.Context, err error) error {
	if errors.Is(err, checkout.ErrEmptyCart) {
		return c.Redirect(http.StatusSeeOther, h.cartViewPath)
	}
	var missing *checkout.MissingDatesError
	if errors.As(err, &missing) {
		return c.JSON(http.StatusUnprocessableEntity, dto.MissingDatesResponse{
			Message:    missing.Error(),
			PackageIDs: missing.PackageIDs,
		})
	}
	return err
}

func (h *CheckoutHandler) Begin(c echo.Context) error {
	s, err := h.manager.Begin(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return h.refusal(c, err)
	}
	return c.JSON(http.StatusCreated, dto.ToCheckoutResponse(s.Snapshot()))
}

func (h *CheckoutHandler) Get(c echo.Context) error {
	s, err := h.manager.Session(middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToCheckoutResponse(s.Snapshot()))
}

func (h *CheckoutHandler) SubmitDetails(c echo.Context) error {
	var req checkout.TravelerDetails
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	s, err := h.manager.Session(middleware.UserID(c))
	if err != nil {
		return err
	}
	if err := s.SubmitDetails(req); err != nil {
		return h.refusal(c, err)
	}
	return c.JSON(http.StatusOK, dto.ToCheckoutResponse(s.Snapshot()))
}

func (h *CheckoutHandler) Back(c echo.Context) error {
	s, err := h.manager.Session(middleware.UserID(c))
	if err != nil {
		return err
	}
	if err := s.Back(); err != nil {
		return h.refusal(c, err)
	}
	return c.JSON(http.StatusOK, dto.ToCheckoutResponse(s.Snapshot()))
}

func (h *CheckoutHandler) SubmitPayment(c echo.Context) error {
	var req checkout.PaymentDetails
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	s, err := h.manager.Session(middleware.UserID(c))
	if err != nil {
		return err
	}
	if _, err := s.SubmitPayment(c.Request().Context(), req); err != nil {
		return h.refusal(c, err)
	}
	return c.JSON(http.StatusOK, dto.ToCheckoutResponse(s.Snapshot()))
}

func (h *CheckoutHandler) Abandon(c echo.Context) error {
	if err := h.manager.Abandon(middleware.UserID(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
