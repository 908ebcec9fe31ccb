package handler

import (
	"catalog_api/internal/domain/tag/client"
	"catalog_api/pkg/response"

	"github.com/gin-gonic/gin"
)

type TagHandler struct {
	lookup client.TagLookup
}

func NewTagHandler(lookup client.TagLookup) *TagHandler {
	return &TagHandler{lookup: lookup}
}

// SearchTags 查询外部实体作为候选标签
// @Summary 候选标签
// @Tags Tag
// @Produce json
// @Param query query string false "关键字"
// @Success 200 {array} client.Suggestion
// @Failure 500 {object} response.Response
// @Router /tags/search [get]
func (h *TagHandler) SearchTags(c *gin.Context) {
	result, err := h.lookup.Search(c.Request.Context(), c.Query("query"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, result)
}
