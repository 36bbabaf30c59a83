package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/parkwise/parking-client/internal/core/ports"
)

// AdminHandler serves the admin views and lot/user management actions. Role
// enforcement happens twice: the route guard keeps non-admin sessions out,
// and the server independently answers 403.
type AdminHandler struct {
	admin ports.AdminAPI
}

func NewAdminHandler(admin ports.AdminAPI) *AdminHandler {
	return &AdminHandler{admin: admin}
}

func (h *AdminHandler) Dashboard(c echo.Context) error {
	dash, err := h.admin.Dashboard(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dash)
}

func (h *AdminHandler) Users(c echo.Context) error {
	users, err := h.admin.Users(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

func (h *AdminHandler) DeleteUser(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	if err := h.admin.DeleteUser(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHandler) Lots(c echo.Context) error {
	lots, err := h.admin.Lots(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, lots)
}

type lotForm struct {
	Name          string  `json:"prime_location_name" form:"prime_location_name" validate:"required"`
	PricePerHour  float64 `json:"price"               form:"price"               validate:"required,gt=0"`
	Address       string  `json:"address"             form:"address"`
	PinCode       string  `json:"pin_code"            form:"pin_code"`
	NumberOfSpots int     `json:"number_of_spots"     form:"number_of_spots"     validate:"required,gt=0"`
}

func (h *AdminHandler) CreateLot(c echo.Context) error {
	var form lotForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	lot, err := h.admin.CreateLot(c.Request().Context(), ports.LotInput{
		Name:          form.Name,
		PricePerHour:  form.PricePerHour,
		Address:       form.Address,
		PinCode:       form.PinCode,
		NumberOfSpots: form.NumberOfSpots,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, lot)
}

func (h *AdminHandler) UpdateLot(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid lot id")
	}

	var form lotForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	lot, err := h.admin.UpdateLot(c.Request().Context(), id, ports.LotInput{
		Name:          form.Name,
		PricePerHour:  form.PricePerHour,
		Address:       form.Address,
		PinCode:       form.PinCode,
		NumberOfSpots: form.NumberOfSpots,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, lot)
}

// DeleteLot relays the server's decision; occupied lots are refused upstream.
func (h *AdminHandler) DeleteLot(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid lot id")
	}
	if err := h.admin.DeleteLot(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHandler) LotSpots(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid lot id")
	}

	result, err := h.admin.LotSpots(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.admin.StatsSummary(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"lot_stats": stats})
}
