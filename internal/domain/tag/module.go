package tag

import (
	"catalog_api/internal/domain/tag/client"
	"catalog_api/internal/domain/tag/handler"
	"catalog_api/internal/pkg/registry"
)

// TagModule 外部标签查询模块
type TagModule struct{}

func init() {
	registry.Register(&TagModule{})
}

func (m *TagModule) Name() string {
	return "tag"
}

func (m *TagModule) Priority() int {
	return 20
}

func (m *TagModule) Init(ctx *registry.ModuleContext) error {
	lookup := client.NewWikidataClient(ctx.Config.TagLookup, ctx.Metrics)
	h := handler.NewTagHandler(lookup)

	ctx.Router.GET("/tags/search", h.SearchTags)
	return nil
}
