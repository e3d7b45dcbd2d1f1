package handlers

import (
	"net/http"
	"strconv"

	"slate/services/availability"
	"slate/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SearchHandler struct {
	Searcher availability.Searcher
	Logger   *zap.Logger
}

func NewSearchHandler(s availability.Searcher, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{Searcher: s, Logger: logger}
}

// SearchHandler proxies a restaurant search to the configured provider.
func (h *SearchHandler) SearchHandler(c *gin.Context) {
	location := c.Query("location")
	if location == "" {
		utils.JSONError(c, http.StatusBadRequest, "Location is required", "")
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 || limit > 50 {
		limit = 10
	}
	params := availability.SearchParams{
		Term:       c.Query("term"),
		Location:   location,
		Categories: c.Query("categories"),
		Price:      c.Query("price"),
		Limit:      limit,
		SortBy:     c.DefaultQuery("sort_by", "best_match"),
	}
	businesses, err := h.Searcher.Search(c.Request.Context(), params)
	if err != nil {
		h.Logger.Error("Restaurant search error", zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "Search provider error", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"businesses": businesses})
}
