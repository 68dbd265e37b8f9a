package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// pageWindow applies json-server style pagination. When neither _page
// nor _limit is present the full list is returned, which is what the
// composed views (blocked users, statistics) rely on.
func pageWindow[E any](c *gin.Context, items []E) []E {
	pageStr := c.Query("_page")
	limitStr := c.Query("_limit")
	if pageStr == "" && limitStr == "" {
		return items
	}

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		limit = 10
	}

	start := (page - 1) * limit
	if start > len(items) {
		start = len(items)
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
