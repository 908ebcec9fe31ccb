package handler

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"catalog_api/internal/domain/post/service"
	"catalog_api/internal/pkg/middleware"
	"catalog_api/pkg/apperr"
	"catalog_api/pkg/response"
	"catalog_api/pkg/utils"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	posts    service.PostService
	comments service.CommentService
}

func NewPostHandler(posts service.PostService, comments service.CommentService) *PostHandler {
	return &PostHandler{posts: posts, comments: comments}
}

// CreatePost 发布帖子
// @Summary 发布帖子
// @Tags Post
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "标题"
// @Param description formData string false "描述"
// @Param tags formData []string false "标签，可重复" collectionFormat(multi)
// @Param image formData file false "图片"
// @Success 200 {object} PostView
// @Failure 400 {object} response.Response
// @Router /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		response.FromError(c, apperr.Unauthenticated("Not authenticated"))
		return
	}

	input, err := bindCreatePost(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	post, err := h.posts.CreatePost(c.Request.Context(), actor, *input)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, toPostView(post))
}

// ListPosts 帖子列表（最新在前）
// @Summary 帖子列表
// @Tags Post
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {array} PostView
// @Router /posts [get]
func (h *PostHandler) ListPosts(c *gin.Context) {
	var p utils.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		response.FromError(c, apperr.Validation(err.Error()))
		return
	}

	posts, err := h.posts.ListPosts(c.Request.Context(), p.Page, p.Limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, toPostViews(posts))
}

// HotPosts 按关注数排序
// @Summary 热门帖子
// @Tags Post
// @Produce json
// @Success 200 {array} PostView
// @Router /posts/hot [get]
func (h *PostHandler) HotPosts(c *gin.Context) {
	posts, err := h.posts.HotPosts(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, toPostViews(posts))
}

// SearchPosts 按标题或描述搜索
// @Summary 搜索帖子
// @Tags Post
// @Produce json
// @Param query query string false "关键字"
// @Success 200 {array} PostView
// @Router /posts/search [get]
func (h *PostHandler) SearchPosts(c *gin.Context) {
	posts, err := h.posts.SearchPosts(c.Request.Context(), c.Query("query"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, toPostViews(posts))
}

// GetPost 帖子详情
// @Summary 帖子详情
// @Tags Post
// @Produce json
// @Param id path int true "帖子ID"
// @Success 200 {object} PostDetailView
// @Failure 404 {object} response.Response
// @Router /posts/{id} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	post, err := h.posts.GetPost(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, toPostDetailView(post))
}

// DeletePost 删除帖子（仅作者）
// @Summary 删除帖子
// @Tags Post
// @Produce json
// @Security BearerAuth
// @Param id path int true "帖子ID"
// @Success 200 {object} MessageView
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /posts/{id} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)
	id, err := parseID(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	if err := h.posts.DeletePost(c.Request.Context(), actor, id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, MessageView{Message: "Post deleted"})
}

// ToggleInterest 关注/取消关注
// @Summary 切换关注
// @Tags Post
// @Produce json
// @Security BearerAuth
// @Param id path int true "帖子ID"
// @Success 200 {object} InterestView
// @Failure 404 {object} response.Response
// @Router /posts/{id}/interested [post]
func (h *PostHandler) ToggleInterest(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)
	id, err := parseID(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	result, err := h.posts.ToggleInterest(c.Request.Context(), actor, id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, InterestView{InterestCount: result.InterestCount, Interested: result.Interested})
}

// AddComment 发表评论
// @Summary 发表评论
// @Tags Comment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "帖子ID"
// @Param input body CommentInput true "评论内容"
// @Success 200 {object} CommentView
// @Failure 404 {object} response.Response
// @Router /posts/{id}/comments [post]
func (h *PostHandler) AddComment(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)
	id, err := parseID(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	var input CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.FromError(c, apperr.Validation(err.Error()))
		return
	}

	comment, err := h.comments.AddComment(c.Request.Context(), actor, id, input.Content)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, toCommentView(comment))
}

// VoteComment 评论投票
// @Summary 评论投票
// @Tags Comment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "评论ID"
// @Param input body VoteInput true "是否赞成"
// @Success 200 {object} CommentView
// @Failure 404 {object} response.Response
// @Router /comments/{id}/vote [post]
func (h *PostHandler) VoteComment(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)
	id, err := parseID(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	var input VoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.FromError(c, apperr.Validation(err.Error()))
		return
	}

	comment, err := h.comments.VoteComment(c.Request.Context(), actor, id, *input.IsUpvote)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, toCommentView(comment))
}

// DeleteComment 删除评论（仅作者）
// @Summary 删除评论
// @Tags Comment
// @Produce json
// @Security BearerAuth
// @Param id path int true "评论ID"
// @Success 200 {object} MessageView
// @Router /comments/{id} [delete]
func (h *PostHandler) DeleteComment(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)
	id, err := parseID(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	if err := h.comments.DeleteComment(c.Request.Context(), actor, id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, MessageView{Message: "Comment deleted"})
}

// ListTags 已有标签
// @Summary 标签列表
// @Tags Tag
// @Produce json
// @Success 200 {array} TagView
// @Router /tags [get]
func (h *PostHandler) ListTags(c *gin.Context) {
	tags, err := h.posts.ListTags(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, toTagViews(tags))
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.Validation("Invalid id")
	}
	return uint(id), nil
}

// bindCreatePost 解析 multipart 表单
func bindCreatePost(c *gin.Context) (*service.CreatePostInput, error) {
	input := &service.CreatePostInput{
		Title:       c.PostForm("title"),
		Description: formString(c, "description"),
		Material:    formString(c, "material"),
		Color:       formString(c, "color"),
		Shape:       formString(c, "shape"),
		Location:    formString(c, "location"),
		Smell:       formString(c, "smell"),
		Taste:       formString(c, "taste"),
		Origin:      formString(c, "origin"),
		Tags:        service.ParseTagInputs(c.PostFormArray("tags")),
	}

	var err error
	if input.Length, err = formFloat(c, "length"); err != nil {
		return nil, err
	}
	if input.Width, err = formFloat(c, "width"); err != nil {
		return nil, err
	}
	if input.Height, err = formFloat(c, "height"); err != nil {
		return nil, err
	}
	if input.Weight, err = formFloat(c, "weight"); err != nil {
		return nil, err
	}

	file, err := c.FormFile("image")
	switch {
	case err == nil:
		input.Image = file
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		return nil, apperr.Validation("Invalid image upload")
	}
	return input, nil
}

func formString(c *gin.Context, key string) *string {
	v, ok := c.GetPostForm(key)
	if !ok {
		return nil
	}
	return &v
}

func formFloat(c *gin.Context, key string) (*float64, error) {
	v := strings.TrimSpace(c.PostForm(key))
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	// 只接受有限值，Inf/NaN 无法 JSON 编码
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return nil, apperr.Validation(key + " must be a number")
	}
	return &f, nil
}
