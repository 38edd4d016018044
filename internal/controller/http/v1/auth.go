package httpv1

import (
	"errors"

	"github.com/Egor213/LogKeeper/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const userKey = "user"

// basicAuthValidator accepts requests whose credentials match an account and
// stores the account name in the context.
func basicAuthValidator(auth service.Auth) middleware.BasicAuthValidator {
	return func(name, password string, c echo.Context) (bool, error) {
		user, err := auth.Authenticate(c.Request().Context(), name, password)
		switch {
		case err == nil:
			c.Set(userKey, user.Name)
			return true, nil
		case errors.Is(err, service.ErrStorage):
			return false, err
		default:
			return false, nil
		}
	}
}

func currentUser(c echo.Context) string {
	name, _ := c.Get(userKey).(string)
	return name
}
