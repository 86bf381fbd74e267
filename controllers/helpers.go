package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pronet/middleware"
	"pronet/utils"
)

// parsePagination normalizes page/page_size query values.
func parsePagination(pageStr, sizeStr string) (int, int) {
	page, pageSize := 1, 10
	if v := strings.TrimSpace(pageStr); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	if v := strings.TrimSpace(sizeStr); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			pageSize = n
		}
	}
	return page, pageSize
}

// parseLimitOffset normalizes limit/offset query values with a default limit.
func parseLimitOffset(ctx *gin.Context, defaultLimit int) (int, int) {
	limit, offset := defaultLimit, 0
	if v := strings.TrimSpace(ctx.Query("limit")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	if v := strings.TrimSpace(ctx.Query("offset")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}

// uuidParam parses a UUID path parameter, writing a 400 on failure.
func uuidParam(ctx *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// authedUserID pulls the authenticated user from the request context.
func authedUserID(ctx *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.CurrentUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
	}
	return id, ok
}
