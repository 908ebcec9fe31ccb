package post

import (
	"catalog_api/internal/domain/post/handler"
	"catalog_api/internal/domain/post/repository"
	"catalog_api/internal/domain/post/service"
	"catalog_api/internal/pkg/middleware"
	"catalog_api/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// PostModule 帖子、评论、关注模块
type PostModule struct{}

func init() {
	registry.Register(&PostModule{})
}

func (m *PostModule) Name() string {
	return "post"
}

func (m *PostModule) Priority() int {
	return 10
}

func (m *PostModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入
	postRepo := repository.NewPostRepository(ctx.DB)
	scores := repository.NewScoreReader(ctx.SQLX)
	postService := service.NewPostService(postRepo, scores, ctx.Uploader, ctx.Metrics)
	commentService := service.NewCommentService(postRepo, scores, ctx.Metrics)
	postHandler := handler.NewPostHandler(postService, commentService)

	// 2. 路由注册
	setupRoutes(ctx.Router, postHandler, ctx.Auth)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.PostHandler, auth *middleware.SessionResolver) {
	// 公开路由
	r.GET("/posts", h.ListPosts)
	r.GET("/posts/hot", h.HotPosts)
	r.GET("/posts/search", h.SearchPosts)
	r.GET("/posts/:id", h.GetPost)
	r.GET("/tags", h.ListTags)

	// 需要登录
	authed := r.Group("")
	authed.Use(auth.AuthMiddleware())
	{
		authed.POST("/posts", h.CreatePost)
		authed.DELETE("/posts/:id", h.DeletePost)
		authed.POST("/posts/:id/comments", h.AddComment)
		authed.POST("/posts/:id/interested", h.ToggleInterest)
		authed.POST("/comments/:id/vote", h.VoteComment)
		authed.DELETE("/comments/:id", h.DeleteComment)
	}
}
