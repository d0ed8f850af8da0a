package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/edutech/internal/app/models/dto"
)

// parseIDParam reads a positive int64 path parameter, answering 400 when it is malformed
func parseIDParam(ctx *gin.Context, name, label string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+label+" ID")
		errorDetail = errorDetail.WithField(name).WithDetails(label + " ID must be a positive number")
		ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// queryList collects a multi-valued query parameter. Both name and name[] are
// accepted, and comma separated values are split.
func queryList(ctx *gin.Context, name string) []string {
	var out []string
	for _, raw := range append(ctx.QueryArray(name), ctx.QueryArray(name+"[]")...) {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

func badQuery(ctx *gin.Context, field, message string) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message).WithField(field)
	ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
}
