package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Eursukkul/booking-microservice/storefront-service/internal/cart"
	"github.com/Eursukkul/booking-microservice/storefront-service/internal/dto"
	"github.com/Eursukkul/booking-microservice/storefront-service/internal/middleware"
	"github.com/Eursukkul/booking-microservice/storefront-service/internal/models"
)

// CartStores hands out the cart of a user.
type CartStores interface {
	Store(ctx context.Context, userID string) (*cart.Store, error)
}

// PackageLookup resolves a package id to the full package.
type PackageLookup interface {
	Get(ctx context.Context, id string) (*models.Package, error)
}

type CartHandler struct {
	carts     CartStores
	packages  PackageLookup
	heartbeat time.Duration
}

func NewCartHandler(carts CartStores, packages PackageLookup) *CartHandler {
	return &CartHandler{carts: carts, packages: packages, heartbeat: 25 * time.Second}
}

func (h *CartHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/cart", h.GetCart)
	g.POST("/cart/items", h.AddItem)
	g.DELETE("/cart/items/:id", h.RemoveItem)
	g.PUT("/cart/items/:id/travel-date", h.SetTravelDate)
	g.GET("/cart/badge", h.GetBadge)
	g.GET("/cart/badge/stream", h.StreamBadge)
}

func (h *CartHandler) store(c echo.Context) (*cart.Store, error) {
	return h.carts.Store(c.Request().Context(), middleware.UserID(c))
}

func (h *CartHandler) GetCart(c echo.Context) error {
	s, err := h.store(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToCartResponse(s))
}

func (h *CartHandler) AddItem(c echo.Context) error {
	var req dto.AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	pkg, err := h.packages.Get(ctx, req.PackageID)
	if err != nil {
		return err
	}
	s, err := h.store(c)
	if err != nil {
		return err
	}
	if err := s.Add(ctx, *pkg); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dto.ToCartResponse(s))
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	s, err := h.store(c)
	if err != nil {
		return err
	}
	if err := s.Remove(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToCartResponse(s))
}

func (h *CartHandler) SetTravelDate(c echo.Context) error {
	var req dto.SetTravelDateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	date, err := time.Parse(time.DateOnly, req.TravelDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "travel_date must be YYYY-MM-DD")
	}

	s, err := h.store(c)
	if err != nil {
		return err
	}
	if err := s.SetTravelDate(c.Request().Context(), c.Param("id"), date); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToCartResponse(s))
}

func (h *CartHandler) GetBadge(c echo.Context) error {
	s, err := h.store(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.BadgeResponse{Count: s.Len()})
}

// StreamBadge mounts a badge for the lifetime of the connection and sends a
// count event on connect and after every cart change.
func (h *CartHandler) StreamBadge(c echo.Context) error {
	s, err := h.store(c)
	if err != nil {
		return err
	}

	badge := cart.Mount(s)
	defer badge.Unmount()

	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set(echo.HeaderCacheControl, "no-cache")
	w.Header().Set(echo.HeaderConnection, "keep-alive")
	w.WriteHeader(http.StatusOK)

	if err := writeCount(w, badge.Count()); err != nil {
		return nil
	}

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-badge.Changed():
			if err := writeCount(w, badge.Count()); err != nil {
				return nil
			}
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return nil
			}
			w.Flush()
		}
	}
}

func writeCount(w *echo.Response, n int) error {
	if _, err := fmt.Fprintf(w, "event: count\ndata: %d\n\n", n); err != nil {
		return err
	}
	w.Flush()
	return nil
}
