package controllers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/yigit/edutech/internal/app/models"
	"github.com/yigit/edutech/internal/app/models/dto"
	"github.com/yigit/edutech/internal/app/services"
	"github.com/yigit/edutech/internal/domain/catalog"
	"github.com/yigit/edutech/internal/middleware"
	"github.com/yigit/edutech/internal/pkg/currency"
	"github.com/yigit/edutech/internal/pkg/helpers"
)

// CourseController handles catalog browsing and course uploads
type CourseController struct {
	catalogService services.CatalogService
	currency       *currency.Currency
}

// NewCourseController creates a new CourseController
func NewCourseController(catalogService services.CatalogService, cur *currency.Currency) *CourseController {
	return &CourseController{
		catalogService: catalogService,
		currency:       cur,
	}
}

// ListCourses runs a catalog query
// @Summary List courses
// @Description Filters, sorts and paginates the course catalog. Price bounds are inclusive.
// @Tags courses
// @Produce json
// @Param q query string false "Search text matched against title, description and teacher"
// @Param category query []string false "Categories" collectionFormat(multi)
// @Param university query []string false "Universities" collectionFormat(multi)
// @Param level query []string false "Levels" collectionFormat(multi)
// @Param minPrice query number false "Minimum price"
// @Param maxPrice query number false "Maximum price"
// @Param minRating query number false "Minimum rating"
// @Param sort query string false "popularity, newest, price-asc, price-desc or rating" default(popularity)
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(12)
// @Success 200 {object} dto.APIResponse{data=dto.CourseListResponse} "Courses retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid query"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	spec, ok := c.parseFilterSpec(ctx)
	if !ok {
		return
	}

	courses, err := c.catalogService.ListCourses(ctx.Request.Context(), spec)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	items, pagination := helpers.Paginate(courses, page, size)

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.CourseListResponse{
		Courses:    dto.FromCourses(c.currency, items),
		Pagination: pagination,
	}, ""))
}

// parseFilterSpec builds a FilterSpec from the query string
func (c *CourseController) parseFilterSpec(ctx *gin.Context) (catalog.FilterSpec, bool) {
	spec := catalog.FilterSpec{
		SearchText:   ctx.Query("q"),
		Categories:   queryList(ctx, "category"),
		Universities: queryList(ctx, "university"),
		SortKey:      catalog.ParseSortKey(ctx.DefaultQuery("sort", string(catalog.SortPopularity))),
	}
	for _, l := range queryList(ctx, "level") {
		spec.Levels = append(spec.Levels, models.Level(l))
	}

	minStr, maxStr := ctx.Query("minPrice"), ctx.Query("maxPrice")
	if minStr != "" || maxStr != "" {
		r := catalog.PriceRange{Min: decimal.Zero, Max: decimal.NewFromInt(math.MaxInt64)}
		if minStr != "" {
			v, err := c.currency.Parse(minStr)
			if err != nil || v.IsNegative() {
				badQuery(ctx, "minPrice", "minPrice must be a non-negative amount")
				return spec, false
			}
			r.Min = v
		}
		if maxStr != "" {
			v, err := c.currency.Parse(maxStr)
			if err != nil || v.IsNegative() {
				badQuery(ctx, "maxPrice", "maxPrice must be a non-negative amount")
				return spec, false
			}
			r.Max = v
		}
		spec.PriceRange = &r
	}

	if s := ctx.Query("minRating"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			badQuery(ctx, "minRating", "minRating must be a number")
			return spec, false
		}
		spec.MinRating = v
	}

	return spec, true
}

// GetFacets lists the available filter values
// @Summary Catalog facets
// @Tags courses
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.FacetsResponse} "Facets retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/facets [get]
func (c *CourseController) GetFacets(ctx *gin.Context) {
	facets, err := c.catalogService.Facets(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromFacets(facets), ""))
}

// GetPopular lists the most enrolled courses
// @Summary Popular courses
// @Tags courses
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.CourseResponse} "Courses retrieved successfully"
// @Router /courses/popular [get]
func (c *CourseController) GetPopular(ctx *gin.Context) {
	courses, err := c.catalogService.Popular(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromCourses(c.currency, courses), ""))
}

// GetTopRated lists the best rated courses
// @Summary Top rated courses
// @Tags courses
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.CourseResponse} "Courses retrieved successfully"
// @Router /courses/top-rated [get]
func (c *CourseController) GetTopRated(ctx *gin.Context) {
	courses, err := c.catalogService.TopRated(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromCourses(c.currency, courses), ""))
}

// GetCourseByID retrieves one course
// @Summary Get course details
// @Tags courses
// @Produce json
// @Param id path int true "Course ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse} "Course retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID format"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id} [get]
func (c *CourseController) GetCourseByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Course")
	if !ok {
		return
	}

	course, err := c.catalogService.GetCourse(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromCourse(c.currency, *course), ""))
}

// CreateCourse publishes a course uploaded by a teacher
// @Summary Upload a course
// @Tags courses
// @Accept json
// @Produce json
// @Param request body dto.CreateCourseRequest true "Course information"
// @Success 201 {object} dto.APIResponse{data=dto.CourseResponse} "Course created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "User is not a teacher"
// @Failure 409 {object} dto.ErrorResponse "Course already exists"
// @Router /courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	req, ok := middleware.ValidatedBody[dto.CreateCourseRequest](ctx)
	if !ok {
		badQuery(ctx, "body", "Invalid course data")
		return
	}

	course, err := req.ToModel(c.currency)
	if err != nil {
		badQuery(ctx, "price", "Price must be a number with at most two decimal places")
		return
	}

	created, err := c.catalogService.CreateCourse(ctx.Request.Context(), req.TeacherID, course)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.FromCourse(c.currency, *created), "Course created successfully"))
}
