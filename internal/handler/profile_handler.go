package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Eursukkul/booking-microservice/storefront-service/internal/dto"
	"github.com/Eursukkul/booking-microservice/storefront-service/internal/middleware"
	"github.com/Eursukkul/booking-microservice/storefront-service/internal/service"
)

type ProfileHandler struct {
	svc service.ProfileService
}

func NewProfileHandler(svc service.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

func (h *ProfileHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/profile", h.GetProfile)
	g.PUT("/profile", h.UpdateProfile)
}

func (h *ProfileHandler) GetProfile(c echo.Context) error {
	profile, err := h.svc.GetProfile(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	var req dto.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	profile, err := h.svc.UpdateProfile(c.Request().Context(), middleware.UserID(c), service.ProfileUpdate{
		FullName:          req.FullName,
		Email:             req.Email,
		Age:               req.Age,
		Country:           req.Country,
		Phone:             req.Phone,
		Address:           req.Address,
		Gender:            req.Gender,
		BloodType:         req.BloodType,
		Allergies:         req.Allergies,
		MedicalConditions: req.MedicalConditions,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}
