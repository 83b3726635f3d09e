package http

import (
	"strconv"

	"ecshop/internal/core/domain/model/kernel"
	"ecshop/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Identity headers injected by the API gateway after it validates the
// caller's credentials. This service trusts them as-is.
const (
	HeaderUserID       = "X-User-Id"
	HeaderUserRole     = "X-User-Role"
	HeaderGuestSession = "X-Guest-Session"
)

const roleAdmin = "admin"

// principalFrom builds the caller's principal from the gateway headers:
// a user id when authenticated, otherwise a guest session id.
func principalFrom(ctx echo.Context) (kernel.Principal, error) {
	if id, ok := userIDFrom(ctx); ok {
		return kernel.NewUserPrincipal(id)
	}

	if sessionID := ctx.Request().Header.Get(HeaderGuestSession); sessionID != "" {
		principal, err := kernel.NewGuestPrincipal(sessionID)
		if err != nil {
			return kernel.Principal{}, errs.NewValidationErrorWithCause(
				errs.CodeUserOrSessionRequired,
				"guest session id must be a UUID",
				err,
			)
		}
		return principal, nil
	}

	return kernel.Principal{}, errs.NewValidationError(
		errs.CodeUserOrSessionRequired,
		"a user or guest session is required",
	)
}

// userIDFrom returns the authenticated user's id, if any.
func userIDFrom(ctx echo.Context) (int64, bool) {
	raw := ctx.Request().Header.Get(HeaderUserID)
	if raw == "" {
		return 0, false
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// isAdmin reports whether the gateway marked the caller as an admin.
func isAdmin(ctx echo.Context) bool {
	return ctx.Request().Header.Get(HeaderUserRole) == roleAdmin
}
