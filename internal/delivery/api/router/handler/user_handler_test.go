package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"usersvc/config"
	domainerrors "usersvc/internal/domain/errors"
	mockUsecase "usersvc/internal/mocks/usecase"
	"usersvc/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details string `json:"details"`
	} `json:"error"`
}

func newTestHandler(t *testing.T, policy string) (*UserHandler, *mockUsecase.MockUserUsecase) {
	t.Helper()

	uc := mockUsecase.NewMockUserUsecase(t)
	cfg := &config.Config{Users: &config.UsersConfig{EmptyListPolicy: policy}}

	return NewUserHandler(UserHandlerParams{
		UserUC: uc,
		Config: cfg,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}), uc
}

func serve(t *testing.T, h echo.HandlerFunc, method, target, body string, params ...string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	e := echo.New()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	c := e.NewContext(req, rec)
	if len(params) == 2 {
		c.SetParamNames(params[0])
		c.SetParamValues(params[1])
	}

	require.NoError(t, h(c))

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}

	return rec, env
}

func sampleOutput(id int64) *usecase.UserOutput {
	return &usecase.UserOutput{
		ID:        id,
		FirstName: "A",
		LastName:  "B",
		Email:     "a@x.com",
		CreatedAt: "2024-05-01T12:00:00.000000Z",
		UpdatedAt: "2024-05-01T12:00:00.000000Z",
	}
}

func TestUserHandler_CreateUser(t *testing.T) {
	h, uc := newTestHandler(t, config.EmptyListNotFound)

	uc.EXPECT().
		CreateUser(mock.Anything, &usecase.CreateUserInput{FirstName: "A", LastName: "B", Email: "a@x.com", Password: "p1"}).
		Return(sampleOutput(1), nil)

	rec, env := serve(t, h.CreateUser, http.MethodPost, "/users",
		`{"first_name":"A","last_name":"B","email":"a@x.com","password":"p1"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
	assert.NotContains(t, rec.Body.String(), "salt")

	var out usecase.UserOutput
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Equal(t, int64(1), out.ID)
}

func TestUserHandler_CreateUser_RejectsMalformedBodies(t *testing.T) {
	h, _ := newTestHandler(t, config.EmptyListNotFound)

	for _, body := range []string{
		"",
		"not json",
		`{"first_name":"A","last_name":"B","email":"a@x.com","password":"p1","admin":true}`,
		`{"first_name":1}`,
		`{"first_name":"A"}{"first_name":"B"}`,
	} {
		rec, env := serve(t, h.CreateUser, http.MethodPost, "/users", body)

		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		require.NotNil(t, env.Error, body)
		assert.Equal(t, "Invalid data", env.Error.Message, body)
	}
}

func TestUserHandler_CreateUser_EmailConflict(t *testing.T) {
	h, uc := newTestHandler(t, config.EmptyListNotFound)

	uc.EXPECT().CreateUser(mock.Anything, mock.Anything).
		Return(nil, domainerrors.ErrEmailAlreadyRegistered.WrapMessage("email already exists"))

	rec, env := serve(t, h.CreateUser, http.MethodPost, "/users",
		`{"first_name":"A","last_name":"B","email":"a@x.com","password":"p1"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "EMAIL_ALREADY_REGISTERED", env.Error.Code)
	assert.Equal(t, "Email already registered", env.Error.Message)
}

func TestUserHandler_CreateUser_ValidationDetails(t *testing.T) {
	h, uc := newTestHandler(t, config.EmptyListNotFound)

	uc.EXPECT().CreateUser(mock.Anything, mock.Anything).
		Return(nil, domainerrors.ErrInvalidData.WithDetails("email: must be a valid email address"))

	rec, env := serve(t, h.CreateUser, http.MethodPost, "/users",
		`{"first_name":"A","last_name":"B","email":"nope","password":"p1"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "email: must be a valid email address", env.Error.Details)
}

func TestUserHandler_GetUser(t *testing.T) {
	h, uc := newTestHandler(t, config.EmptyListNotFound)

	uc.EXPECT().GetUser(mock.Anything, int64(1)).Return(sampleOutput(1), nil)
	uc.EXPECT().GetUser(mock.Anything, int64(2)).Return(nil, domainerrors.ErrUserNotFound)

	rec, _ := serve(t, h.GetUser, http.MethodGet, "/users/1", "", "id", "1")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env := serve(t, h.GetUser, http.MethodGet, "/users/2", "", "id", "2")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found", env.Error.Message)
}

func TestUserHandler_NonIntegerIDIsNotFound(t *testing.T) {
	h, _ := newTestHandler(t, config.EmptyListNotFound)

	for _, id := range []string{"abc", "0", "-1", "1.5", "99999999999999999999"} {
		rec, env := serve(t, h.GetUser, http.MethodGet, "/users/"+id, "", "id", id)
		assert.Equal(t, http.StatusNotFound, rec.Code, id)
		assert.Equal(t, "User not found", env.Error.Message, id)

		rec, _ = serve(t, h.DeleteUser, http.MethodDelete, "/users/"+id, "", "id", id)
		assert.Equal(t, http.StatusNotFound, rec.Code, id)

		rec, _ = serve(t, h.UpdateUser, http.MethodPut, "/users/"+id, `{"first_name":"X"}`, "id", id)
		assert.Equal(t, http.StatusNotFound, rec.Code, id)
	}
}

func TestUserHandler_ListUsers_Policies(t *testing.T) {
	h, uc := newTestHandler(t, config.EmptyListNotFound)
	uc.EXPECT().ListUsers(mock.Anything).Return([]*usecase.UserOutput{}, nil)

	rec, env := serve(t, h.ListUsers, http.MethodGet, "/users", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "No users found", env.Error.Message)

	h, uc = newTestHandler(t, config.EmptyListEmpty)
	uc.EXPECT().ListUsers(mock.Anything).Return([]*usecase.UserOutput{}, nil)

	rec, env = serve(t, h.ListUsers, http.MethodGet, "/users", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestUserHandler_ListUsers(t *testing.T) {
	h, uc := newTestHandler(t, config.EmptyListNotFound)
	uc.EXPECT().ListUsers(mock.Anything).Return([]*usecase.UserOutput{sampleOutput(1), sampleOutput(2)}, nil)

	rec, env := serve(t, h.ListUsers, http.MethodGet, "/users", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var out []usecase.UserOutput
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Len(t, out, 2)
}

func TestUserHandler_UpdateUser(t *testing.T) {
	h, uc := newTestHandler(t, config.EmptyListNotFound)

	email := "b@x.com"
	uc.EXPECT().UpdateUser(mock.Anything, int64(1), &usecase.UpdateUserInput{Email: &email}).
		Return(sampleOutput(1), nil)

	rec, _ := serve(t, h.UpdateUser, http.MethodPatch, "/users/1", `{"email":"b@x.com"}`, "id", "1")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUserHandler_UpdateUser_UnknownField(t *testing.T) {
	h, _ := newTestHandler(t, config.EmptyListNotFound)

	rec, env := serve(t, h.UpdateUser, http.MethodPut, "/users/1", `{"nickname":"x"}`, "id", "1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid data", env.Error.Message)
}

func TestUserHandler_DeleteUser(t *testing.T) {
	h, uc := newTestHandler(t, config.EmptyListNotFound)

	uc.EXPECT().DeleteUser(mock.Anything, int64(1)).Return(nil)

	rec, _ := serve(t, h.DeleteUser, http.MethodDelete, "/users/1", "", "id", "1")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Zero(t, rec.Body.Len())
}

func TestHealthCheck(t *testing.T) {
	rec, env := serve(t, HealthCheck, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, string(env.Data))
}
