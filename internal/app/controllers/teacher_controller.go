package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/edutech/internal/app/models/dto"
	"github.com/yigit/edutech/internal/app/services"
	"github.com/yigit/edutech/internal/middleware"
	"github.com/yigit/edutech/internal/pkg/currency"
)

// TeacherController serves the teacher directory and dashboards
type TeacherController struct {
	catalogService services.CatalogService
	currency       *currency.Currency
}

// NewTeacherController creates a new TeacherController
func NewTeacherController(catalogService services.CatalogService, cur *currency.Currency) *TeacherController {
	return &TeacherController{
		catalogService: catalogService,
		currency:       cur,
	}
}

// ListTeachers returns everyone who teaches a catalog course
// @Summary Teacher directory
// @Tags teachers
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.TeacherResponse} "Teachers retrieved successfully"
// @Router /teachers [get]
func (tc *TeacherController) ListTeachers(c *gin.Context) {
	teachers, err := tc.catalogService.Teachers(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromTeachers(teachers), ""))
}

// GetTeacher returns a teacher profile with their courses
// @Summary Teacher profile
// @Tags teachers
// @Produce json
// @Param slug path string true "Teacher slug, e.g. alex-johnson"
// @Success 200 {object} dto.APIResponse{data=dto.TeacherProfileResponse} "Teacher retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Teacher not found"
// @Router /teachers/{slug} [get]
func (tc *TeacherController) GetTeacher(c *gin.Context) {
	summary, courses, err := tc.catalogService.Teacher(c.Request.Context(), c.Param("slug"))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.TeacherProfileResponse{
		TeacherResponse: dto.FromTeacher(*summary),
		Courses:         dto.FromCourses(tc.currency, courses),
	}, ""))
}

// GetTeachingStats returns the dashboard totals of a teacher account
// @Summary Teacher dashboard
// @Description Students, revenue and published courses of the courses credited to the account's name
// @Tags teachers
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.TeachingStatsResponse} "Dashboard retrieved successfully"
// @Failure 403 {object} dto.ErrorResponse "User is not a teacher"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{userId}/teaching [get]
func (tc *TeacherController) GetTeachingStats(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId", "User")
	if !ok {
		return
	}

	stats, err := tc.catalogService.TeachingStats(c.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromTeachingStats(tc.currency, stats), ""))
}
