package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/edutech/internal/app/models"
	"github.com/yigit/edutech/internal/app/models/dto"
	"github.com/yigit/edutech/internal/app/services"
	"github.com/yigit/edutech/internal/middleware"
	"github.com/yigit/edutech/internal/pkg/currency"
)

// UserController handles user accounts
type UserController struct {
	userService services.UserService
	currency    *currency.Currency
}

// NewUserController creates a new UserController
func NewUserController(userService services.UserService, cur *currency.Currency) *UserController {
	return &UserController{
		userService: userService,
		currency:    cur,
	}
}

// Register creates an account
// @Summary Register a user
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Account information"
// @Success 201 {object} dto.APIResponse{data=dto.UserResponse} "User created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Router /users [post]
func (uc *UserController) Register(c *gin.Context) {
	req, ok := middleware.ValidatedBody[dto.RegisterRequest](c)
	if !ok {
		badQuery(c, "body", "Invalid user data")
		return
	}

	user, err := uc.userService.Register(c.Request.Context(), req.Email, models.RoleType(req.Role), req.ProfileRequest.ToModel())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.FromUser(uc.currency, user), "User created successfully"))
}

// GetUser retrieves a user
// @Summary Get user
// @Tags users
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "User retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{userId} [get]
func (uc *UserController) GetUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId", "User")
	if !ok {
		return
	}

	user, err := uc.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromUser(uc.currency, user), ""))
}

// UpdateProfile replaces a user's profile
// @Summary Update profile
// @Tags users
// @Accept json
// @Produce json
// @Param userId path int true "User ID"
// @Param request body dto.ProfileRequest true "Profile"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Profile updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{userId}/profile [put]
func (uc *UserController) UpdateProfile(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId", "User")
	if !ok {
		return
	}

	req, ok := middleware.ValidatedBody[dto.ProfileRequest](c)
	if !ok {
		badQuery(c, "body", "Invalid profile data")
		return
	}

	user, err := uc.userService.UpdateProfile(c.Request.Context(), userID, req.ToModel())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromUser(uc.currency, user), "Profile updated successfully"))
}
