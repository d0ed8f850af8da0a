package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/edutech/internal/app/models"
	"github.com/yigit/edutech/internal/app/models/dto"
	"github.com/yigit/edutech/internal/middleware"
)

func newUserRouter(t *testing.T, svc *stubUsers) *gin.Engine {
	t.Helper()
	ctrl := NewUserController(svc, inr(t))

	r := gin.New()
	r.POST("/users", middleware.ValidateRequest[dto.RegisterRequest](), ctrl.Register)
	r.GET("/users/:userId", ctrl.GetUser)
	r.PUT("/users/:userId/profile", middleware.ValidateRequest[dto.ProfileRequest](), ctrl.UpdateProfile)
	return r
}

func TestRegisterUser(t *testing.T) {
	r := newUserRouter(t, &stubUsers{users: map[int64]*models.User{}})

	body := `{"email":"ada@example.com","role":"teacher","firstName":"Ada","lastName":"Lovelace","university":"MIT"}`
	w := do(r, http.MethodPost, "/users", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	env := decode[dto.UserResponse](t, w)
	assert.Equal(t, models.RoleTeacher, env.Data.Role)
	assert.Equal(t, "MIT", env.Data.Profile.University)
	assert.Equal(t, []int64{}, env.Data.PurchasedCourseIDs)

	w = do(r, http.MethodPost, "/users", body)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(r, http.MethodPost, "/users", `{"email":"nope","firstName":"A","lastName":"B","role":"admin"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAndUpdateUser(t *testing.T) {
	svc := &stubUsers{users: map[int64]*models.User{
		1: {ID: 1, Email: "student@example.com", Role: models.RoleStudent},
	}}
	r := newUserRouter(t, svc)

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/users/1", "").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/users/2", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/users/0", "").Code)

	w := do(r, http.MethodPut, "/users/1/profile", `{"firstName":"John","lastName":"Smith","website":"https://example.com"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "John", decode[dto.UserResponse](t, w).Data.Profile.FirstName)

	w = do(r, http.MethodPut, "/users/1/profile", `{"firstName":"John","lastName":"Smith","website":"not a url"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
