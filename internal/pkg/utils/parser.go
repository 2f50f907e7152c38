package utils

import (
	"net/http"
	"strconv"
	"vitaltrend-service/internal/pkg/constvars"
)

func ParsePaginationParams(r *http.Request) (page, pageSize int) {
	page = 1
	pageSize = 10

	if raw := r.URL.Query().Get(constvars.URLQueryParamPage); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			page = parsed
		}
	}
	if raw := r.URL.Query().Get(constvars.URLQueryParamPageSize); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 100 {
			pageSize = parsed
		}
	}

	return page, pageSize
}
