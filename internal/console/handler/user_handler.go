package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/parkwise/parking-client/internal/core/domain"
	"github.com/parkwise/parking-client/internal/core/ports"
	"github.com/parkwise/parking-client/internal/core/service"
)

// UserHandler serves the end-user dashboard and booking actions.
type UserHandler struct {
	bookings ports.BookingAPI
	profile  ports.ProfileAPI
	export   ports.ExportAPI
	public   ports.PublicAPI
	log      zerolog.Logger
}

func NewUserHandler(bookings ports.BookingAPI, profile ports.ProfileAPI, export ports.ExportAPI, public ports.PublicAPI, log zerolog.Logger) *UserHandler {
	return &UserHandler{bookings: bookings, profile: profile, export: export, public: public, log: log}
}

// activeBookingView augments a booking with its live meter readings. The
// estimated cost is display-only; the binding charge arrives with release.
type activeBookingView struct {
	domain.Booking
	ElapsedHours   int     `json:"elapsed_hours"`
	ElapsedMinutes int     `json:"elapsed_minutes"`
	EstimatedCost  float64 `json:"estimated_cost"`
}

// Dashboard fetches lots and active bookings concurrently, joins them, and
// renders the live meter for any active booking.
func (h *UserHandler) Dashboard(c echo.Context) error {
	g, ctx := errgroup.WithContext(c.Request().Context())

	var lots []domain.ParkingLot
	var active []domain.Booking
	g.Go(func() error {
		var err error
		lots, err = h.public.PublicLots(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		active, err = h.bookings.ActiveBookings(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	rates := make(map[int]float64, len(lots))
	for _, lot := range lots {
		rates[lot.ID] = lot.PricePerHour
	}

	now := time.Now().UTC()
	views := make([]activeBookingView, 0, len(active))
	for _, b := range active {
		hours, minutes := service.Elapsed(b, now)
		views = append(views, activeBookingView{
			Booking:        b,
			ElapsedHours:   hours,
			ElapsedMinutes: minutes,
			EstimatedCost:  service.EstimatedCost(b, now, rates[b.LotID]),
		})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"lots":            lots,
		"active_bookings": views,
	})
}

type bookForm struct {
	LotID         int    `json:"lot_id"         form:"lot_id"         validate:"required,gt=0"`
	VehicleNumber string `json:"vehicle_number" form:"vehicle_number"`
}

func (h *UserHandler) Book(c echo.Context) error {
	var form bookForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.bookings.Book(c.Request().Context(), ports.BookInput{
		LotID:         form.LotID,
		VehicleNumber: form.VehicleNumber,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, result)
}

func (h *UserHandler) Release(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	result, err := h.bookings.Release(c.Request().Context(), id)
	if err != nil {
		return err
	}
	h.log.Info().Int("booking_id", id).Float64("final_cost", result.FinalCost).Msg("booking released")
	return c.JSON(http.StatusOK, result)
}

func (h *UserHandler) History(c echo.Context) error {
	history, err := h.bookings.History(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, history)
}

func (h *UserHandler) Stats(c echo.Context) error {
	stats, err := h.profile.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *UserHandler) Profile(c echo.Context) error {
	profile, err := h.profile.Profile(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var input ports.ProfileUpdate
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	profile, err := h.profile.UpdateProfile(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

func (h *UserHandler) TriggerExport(c echo.Context) error {
	job, err := h.export.TriggerExport(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, job)
}

func (h *UserHandler) ExportStatus(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid job id")
	}

	job, err := h.export.ExportStatus(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, job)
}

func (h *UserHandler) DownloadExport(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid job id")
	}

	data, filename, err := h.export.DownloadExport(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if filename == "" {
		filename = "parking_history.csv"
	}
	c.Response().Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK, "text/csv", data)
}
