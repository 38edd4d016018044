package httpv1

import (
	"errors"
	"net/http"

	logginghelper "github.com/Egor213/LogKeeper/internal/controller/common/logging"
	"github.com/Egor213/LogKeeper/internal/controller/validators"
	"github.com/Egor213/LogKeeper/internal/service"
	"github.com/labstack/echo/v4"
)

type userRoutes struct {
	authService service.Auth
}

func newUserRoutes(g *echo.Group, as service.Auth) {
	r := &userRoutes{authService: as}
	g.POST("", r.register)
}

type registerRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
	Confirm  string `json:"confirm"`
}

type registerResponse struct {
	Name string `json:"name"`
}

func (r *userRoutes) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := validators.ValidateRegistration(req.Name, req.Password, req.Confirm); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := r.authService.Register(c.Request().Context(), req.Name, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrUserAlreadyExists):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrEmptyUserName),
		errors.Is(err, service.ErrEmptyPassword),
		errors.Is(err, service.ErrUserNameTooLong):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		logginghelper.LogError(req.Name, "register", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusCreated, registerResponse{Name: req.Name})
}
