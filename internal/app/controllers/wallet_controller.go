package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/edutech/internal/app/models"
	"github.com/yigit/edutech/internal/app/models/dto"
	"github.com/yigit/edutech/internal/app/services"
	"github.com/yigit/edutech/internal/middleware"
	"github.com/yigit/edutech/internal/pkg/currency"
	"github.com/yigit/edutech/internal/pkg/helpers"
	"github.com/yigit/edutech/internal/pkg/websocket"
)

// WalletController handles balances, purchases and course access
type WalletController struct {
	walletService services.WalletService
	userService   services.UserService
	currency      *currency.Currency
	events        *websocket.Handler
}

// NewWalletController creates a new WalletController. events may be nil to disable the event stream.
func NewWalletController(
	walletService services.WalletService,
	userService services.UserService,
	cur *currency.Currency,
	events *websocket.Handler,
) *WalletController {
	return &WalletController{
		walletService: walletService,
		userService:   userService,
		currency:      cur,
		events:        events,
	}
}

// GetWallet returns the wallet summary
// @Summary Get wallet
// @Tags wallet
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.WalletResponse} "Wallet retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{userId}/wallet [get]
func (wc *WalletController) GetWallet(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId", "User")
	if !ok {
		return
	}

	wallet, err := wc.walletService.GetWallet(c.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromWallet(wc.currency, wallet), ""))
}

// Deposit adds funds to the wallet
// @Summary Add funds
// @Description Amount may carry at most two decimal places
// @Tags wallet
// @Accept json
// @Produce json
// @Param userId path int true "User ID"
// @Param request body dto.DepositRequest true "Deposit"
// @Success 201 {object} dto.APIResponse{data=dto.WalletOperationResponse} "Funds added successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid amount"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{userId}/wallet/deposits [post]
func (wc *WalletController) Deposit(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId", "User")
	if !ok {
		return
	}

	req, ok := middleware.ValidatedBody[dto.DepositRequest](c)
	if !ok {
		badQuery(c, "body", "Invalid deposit data")
		return
	}

	amount, err := wc.currency.Parse(req.Amount)
	if err != nil {
		badQuery(c, "amount", "Amount must be a number with at most two decimal places")
		return
	}

	user, tx, err := wc.walletService.Deposit(c.Request.Context(), userID, amount)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSuccessResponse(
		dto.NewWalletOperationResponse(wc.currency, user, tx, wc.walletService.SubscriptionActive(*user)),
		"Funds added successfully",
	))
}

// GetTransactions lists the ledger, newest first
// @Summary Transaction history
// @Tags wallet
// @Produce json
// @Param userId path int true "User ID"
// @Param type query string false "deposit or payment"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(12)
// @Success 200 {object} dto.APIResponse{data=dto.TransactionListResponse} "Transactions retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Unknown transaction type"
// @Router /users/{userId}/wallet/transactions [get]
func (wc *WalletController) GetTransactions(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId", "User")
	if !ok {
		return
	}
	page, size := helpers.ParsePaginationParams(c)

	txs, total, err := wc.walletService.History(c.Request.Context(), userID, models.TransactionType(c.Query("type")), page, size)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.TransactionListResponse{
		Transactions: dto.FromTransactions(wc.currency, txs),
		Pagination:   helpers.NewPaginationInfo(total, page, size),
	}, ""))
}

// Events streams wallet changes over a WebSocket
// @Summary Wallet event stream
// @Tags wallet
// @Param userId path int true "User ID"
// @Router /users/{userId}/wallet/events [get]
func (wc *WalletController) Events(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId", "User")
	if !ok {
		return
	}
	if wc.events == nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Event stream is disabled")
		c.AbortWithStatusJSON(http.StatusNotFound, dto.NewErrorResponse(errorDetail))
		return
	}
	if _, err := wc.userService.GetUser(c.Request.Context(), userID); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	wc.events.Serve(c, userID)
}

// PurchaseCourse buys a course, or claims it under an active subscription
// @Summary Purchase course
// @Description Buying an owned course succeeds without a second charge
// @Tags wallet
// @Produce json
// @Param userId path int true "User ID"
// @Param courseId path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.WalletOperationResponse} "Course unlocked"
// @Failure 402 {object} dto.ErrorResponse "Insufficient balance"
// @Failure 404 {object} dto.ErrorResponse "User or course not found"
// @Router /users/{userId}/courses/{courseId}/purchase [post]
func (wc *WalletController) PurchaseCourse(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId", "User")
	if !ok {
		return
	}
	courseID, ok := parseIDParam(c, "courseId", "Course")
	if !ok {
		return
	}

	user, tx, err := wc.walletService.PurchaseCourse(c.Request.Context(), userID, courseID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(
		dto.NewWalletOperationResponse(wc.currency, user, tx, wc.walletService.SubscriptionActive(*user)),
		"Course unlocked",
	))
}

// GetCourseAccess tells whether a course is unlocked
// @Summary Course access
// @Tags wallet
// @Produce json
// @Param userId path int true "User ID"
// @Param courseId path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.AccessResponse} "Access resolved"
// @Failure 404 {object} dto.ErrorResponse "User or course not found"
// @Router /users/{userId}/courses/{courseId}/access [get]
func (wc *WalletController) GetCourseAccess(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId", "User")
	if !ok {
		return
	}
	courseID, ok := parseIDParam(c, "courseId", "Course")
	if !ok {
		return
	}

	state, source, err := wc.walletService.CourseAccess(c.Request.Context(), userID, courseID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.AccessResponse{CourseID: courseID, State: state, Source: source}, ""))
}

// GetMyCourses lists the courses the user has unlocked
// @Summary My courses
// @Tags wallet
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.CourseResponse} "Courses retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{userId}/courses [get]
func (wc *WalletController) GetMyCourses(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId", "User")
	if !ok {
		return
	}

	courses, err := wc.walletService.Entitlements(c.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromCourses(wc.currency, courses), ""))
}
