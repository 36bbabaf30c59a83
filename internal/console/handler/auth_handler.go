package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/parkwise/parking-client/internal/core/ports"
	"github.com/parkwise/parking-client/internal/core/service"
)

// AuthHandler serves the login/register/logout flows. Successful credential
// changes end in a browser redirect to the role's home, mirroring the guard
// rules.
type AuthHandler struct {
	auth    ports.AuthAPI
	session ports.Session
}

func NewAuthHandler(auth ports.AuthAPI, session ports.Session) *AuthHandler {
	return &AuthHandler{auth: auth, session: session}
}

type loginForm struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
	Role     string `json:"role"     form:"role"     validate:"omitempty,oneof=admin user"`
}

type registerForm struct {
	Username      string `json:"username"       form:"username" validate:"required,min=3"`
	Password      string `json:"password"       form:"password" validate:"required,min=4"`
	Email         string `json:"email"          form:"email"    validate:"omitempty,email"`
	FullName      string `json:"full_name"      form:"full_name"`
	VehicleNumber string `json:"vehicle_number" form:"vehicle_number"`
	Phone         string `json:"phone"          form:"phone"`
	Address       string `json:"address"        form:"address"`
	PinCode       string `json:"pin_code"       form:"pin_code"`
}

// LoginPage is the guest-only login view stub.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"view": "login"})
}

// RegisterPage is the guest-only registration view stub.
func (h *AuthHandler) RegisterPage(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"view": "register"})
}

// Login authenticates and redirects to the session role's home view.
func (h *AuthHandler) Login(c echo.Context) error {
	var form loginForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	cred, err := h.auth.Login(c.Request().Context(), form.Username, form.Password, form.Role)
	if err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, service.HomeFor(cred.Role()))
}

// Register creates an account and lands the fresh session on the user home.
func (h *AuthHandler) Register(c echo.Context) error {
	var form registerForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	_, err := h.auth.Register(c.Request().Context(), ports.RegisterInput{
		Username:      form.Username,
		Password:      form.Password,
		Email:         form.Email,
		FullName:      form.FullName,
		VehicleNumber: form.VehicleNumber,
		Phone:         form.Phone,
		Address:       form.Address,
		PinCode:       form.PinCode,
	})
	if err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, service.UserHome)
}

// Logout clears the session and returns to the login view.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.auth.Logout(c.Request().Context()); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, service.LoginPath)
}

// SessionInfo reports the derived session state, mainly for the shell to
// decide what chrome to draw.
func (h *AuthHandler) SessionInfo(c echo.Context) error {
	state := h.session.State()
	resp := map[string]any{
		"authenticated": state.Authenticated,
		"role":          state.Role,
	}
	if state.User != nil {
		resp["user"] = state.User
	}
	if !state.TokenExpiry.IsZero() {
		resp["token_expiry"] = state.TokenExpiry
	}
	return c.JSON(http.StatusOK, resp)
}
