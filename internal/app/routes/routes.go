package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/edutech/internal/app/controllers"
	"github.com/yigit/edutech/internal/app/models/dto"
	"github.com/yigit/edutech/internal/middleware"
)

// Controllers groups every HTTP handler set
type Controllers struct {
	Course       *controllers.CourseController
	Teacher      *controllers.TeacherController
	User         *controllers.UserController
	Wallet       *controllers.WalletController
	Subscription *controllers.SubscriptionController
	Health       *controllers.HealthController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, ctrl Controllers) {
	router.GET("/ping", ctrl.Health.Ping)

	// API version group
	v1 := router.Group("/api/v1")
	v1.GET("/health", ctrl.Health.Health)

	courses := v1.Group("/courses")
	{
		courses.GET("", ctrl.Course.ListCourses)
		courses.GET("/facets", ctrl.Course.GetFacets)
		courses.GET("/popular", ctrl.Course.GetPopular)
		courses.GET("/top-rated", ctrl.Course.GetTopRated)
		courses.GET("/:id", ctrl.Course.GetCourseByID)
		courses.POST("", middleware.ValidateRequest[dto.CreateCourseRequest](), ctrl.Course.CreateCourse)
	}

	teachers := v1.Group("/teachers")
	{
		teachers.GET("", ctrl.Teacher.ListTeachers)
		teachers.GET("/:slug", ctrl.Teacher.GetTeacher)
	}

	v1.GET("/subscriptions/plans", ctrl.Subscription.GetPlans)

	users := v1.Group("/users")
	{
		users.POST("", middleware.ValidateRequest[dto.RegisterRequest](), ctrl.User.Register)

		user := users.Group("/:userId")
		{
			user.GET("", ctrl.User.GetUser)
			user.PUT("/profile", middleware.ValidateRequest[dto.ProfileRequest](), ctrl.User.UpdateProfile)
			user.GET("/teaching", ctrl.Teacher.GetTeachingStats)

			// Wallet
			user.GET("/wallet", ctrl.Wallet.GetWallet)
			user.POST("/wallet/deposits", middleware.ValidateRequest[dto.DepositRequest](), ctrl.Wallet.Deposit)
			user.GET("/wallet/transactions", ctrl.Wallet.GetTransactions)
			user.GET("/wallet/events", ctrl.Wallet.Events)

			// Entitlements
			user.GET("/courses", ctrl.Wallet.GetMyCourses)
			user.POST("/courses/:courseId/purchase", ctrl.Wallet.PurchaseCourse)
			user.GET("/courses/:courseId/access", ctrl.Wallet.GetCourseAccess)

			// Subscription
			user.GET("/subscription", ctrl.Subscription.GetSubscription)
			user.POST("/subscription", middleware.ValidateRequest[dto.SubscribeRequest](), ctrl.Subscription.Subscribe)
			user.DELETE("/subscription", ctrl.Subscription.CancelSubscription)
		}
	}
}
