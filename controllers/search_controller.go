package controllers

import (
	"strconv"

	"robolibrary/services"
	"robolibrary/utils"

	"github.com/gin-gonic/gin"
)

type SearchController struct {
	searchService *services.SearchService
}

func NewSearchController(searchService *services.SearchService) *SearchController {
	return &SearchController{searchService: searchService}
}

// Search matches folder names and content titles against the q parameter.
func (sc *SearchController) Search(c *gin.Context) {
	query := c.Query("q")

	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)
	if err != nil || limit < 0 {
		utils.BadRequestResponse(c, "Invalid limit parameter", c.Query("limit"))
		return
	}

	result, err := sc.searchService.Search(c.Request.Context(), query, limit)
	if err != nil {
		utils.DomainErrorResponse(c, err, "Search failed")
		return
	}

	utils.SuccessResponse(c, "Search completed successfully", result)
}
