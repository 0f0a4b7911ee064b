// Package handler contains the echo handlers of the users API.
package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"usersvc/config"
	"usersvc/internal/delivery/api/response"
	domainerrors "usersvc/internal/domain/errors"
	"usersvc/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	UserUC usecase.UserUsecase
	Config *config.Config
	Logger *slog.Logger
}

// UserHandler holds dependencies for user-related handlers
type UserHandler struct {
	userUC          usecase.UserUsecase
	emptyListPolicy string
	logger          *slog.Logger
}

// NewUserHandler is the constructor for UserHandler
func NewUserHandler(params UserHandlerParams) *UserHandler {
	policy := config.EmptyListNotFound
	if params.Config != nil && params.Config.Users != nil {
		policy = params.Config.Users.EmptyListPolicy
	}

	return &UserHandler{
		userUC:          params.UserUC,
		emptyListPolicy: policy,
		logger:          params.Logger,
	}
}

// CreateUser handles POST /users
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req usecase.CreateUserInput
	if err := decodeStrict(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	user, err := h.userUC.CreateUser(c.Request().Context(), &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, user)
}

// GetUser handles GET /users/:id
func (h *UserHandler) GetUser(c echo.Context) error {
	id, ok := parseUserID(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrUserNotFound)
	}

	user, err := h.userUC.GetUser(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, user)
}

// ListUsers handles GET /users
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.userUC.ListUsers(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if len(users) == 0 && h.emptyListPolicy == config.EmptyListNotFound {
		return response.HandleAppError(c, domainerrors.ErrUsersNotFound)
	}

	return response.Success(c, http.StatusOK, users)
}

// UpdateUser handles PUT and PATCH /users/:id. Both are partial updates.
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, ok := parseUserID(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrUserNotFound)
	}

	var req usecase.UpdateUserInput
	if err := decodeStrict(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	user, err := h.userUC.UpdateUser(c.Request().Context(), id, &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, user)
}

// DeleteUser handles DELETE /users/:id
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, ok := parseUserID(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrUserNotFound)
	}

	if err := h.userUC.DeleteUser(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// parseUserID accepts positive decimal ids only. Anything else names no record.
func parseUserID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}

	return id, true
}

// decodeStrict decodes exactly one JSON object into dst and rejects unknown
// fields, so a misspelled field is never silently dropped.
func decodeStrict(c echo.Context, dst any) error {
	dec := json.NewDecoder(c.Request().Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return domainerrors.ErrInvalidData.WithDetails("request body is required")
		}

		return domainerrors.ErrInvalidData.WithDetails(err.Error())
	}
	if dec.More() {
		return domainerrors.ErrInvalidData.WithDetails("request body must contain a single JSON object")
	}

	return nil
}
