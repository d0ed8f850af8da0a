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

// SubscriptionController handles subscription plans
type SubscriptionController struct {
	walletService services.WalletService
	currency      *currency.Currency
}

// NewSubscriptionController creates a new SubscriptionController
func NewSubscriptionController(walletService services.WalletService, cur *currency.Currency) *SubscriptionController {
	return &SubscriptionController{
		walletService: walletService,
		currency:      cur,
	}
}

// GetPlans lists the subscription offers
// @Summary Subscription plans
// @Tags subscriptions
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.PlanResponse} "Plans retrieved successfully"
// @Router /subscriptions/plans [get]
func (sc *SubscriptionController) GetPlans(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromPlans(sc.currency, sc.walletService.Plans()), ""))
}

// GetSubscription returns the stored subscription
// @Summary Get subscription
// @Tags subscriptions
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.SubscriptionResponse} "Subscription retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "No subscription found"
// @Router /users/{userId}/subscription [get]
func (sc *SubscriptionController) GetSubscription(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId", "User")
	if !ok {
		return
	}

	sub, active, err := sc.walletService.GetSubscription(c.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromSubscription(sc.currency, sub, active), ""))
}

// Subscribe charges a plan and starts a one month subscription
// @Summary Subscribe
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param userId path int true "User ID"
// @Param request body dto.SubscribeRequest true "Plan"
// @Success 201 {object} dto.APIResponse{data=dto.WalletOperationResponse} "Subscription started"
// @Failure 400 {object} dto.ErrorResponse "Unknown plan"
// @Failure 402 {object} dto.ErrorResponse "Insufficient balance"
// @Router /users/{userId}/subscription [post]
func (sc *SubscriptionController) Subscribe(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId", "User")
	if !ok {
		return
	}

	req, ok := middleware.ValidatedBody[dto.SubscribeRequest](c)
	if !ok {
		badQuery(c, "body", "Invalid subscription data")
		return
	}

	user, tx, err := sc.walletService.Subscribe(c.Request.Context(), userID, models.PlanType(req.Plan))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSuccessResponse(
		dto.NewWalletOperationResponse(sc.currency, user, tx, sc.walletService.SubscriptionActive(*user)),
		"Subscription started",
	))
}

// CancelSubscription removes the subscription without a refund
// @Summary Cancel subscription
// @Tags subscriptions
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.WalletOperationResponse} "Subscription cancelled"
// @Failure 404 {object} dto.ErrorResponse "No subscription found"
// @Router /users/{userId}/subscription [delete]
func (sc *SubscriptionController) CancelSubscription(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId", "User")
	if !ok {
		return
	}

	user, err := sc.walletService.CancelSubscription(c.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewWalletOperationResponse(sc.currency, user, nil, false), "Subscription cancelled"))
}
