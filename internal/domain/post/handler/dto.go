package handler

import (
	"time"

	"catalog_api/internal/domain/post/model"
)

// TagView 标签
type TagView struct {
	ID          uint   `json:"id"`
	Label       string `json:"label"`
	WikidataURL string `json:"wikidata_url"`
	Description string `json:"description"`
}

// PostView 帖子列表项
type PostView struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Description   *string   `json:"description"`
	Material      *string   `json:"material"`
	Length        *float64  `json:"length"`
	Width         *float64  `json:"width"`
	Height        *float64  `json:"height"`
	Color         *string   `json:"color"`
	Shape         *string   `json:"shape"`
	Weight        *float64  `json:"weight"`
	Location      *string   `json:"location"`
	Smell         *string   `json:"smell"`
	Taste         *string   `json:"taste"`
	Origin        *string   `json:"origin"`
	ImageURL      *string   `json:"image_url"`
	Creator       string    `json:"creator"`
	OwnerID       uint      `json:"owner_id"`
	Tags          []TagView `json:"tags"`
	InterestCount int64     `json:"interest_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// CommentUser 评论作者
type CommentUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// CommentView 评论
type CommentView struct {
	ID        uint        `json:"id"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"created_at"`
	PostID    uint        `json:"post_id"`
	User      CommentUser `json:"user"`
	Score     int64       `json:"score"`
}

// PostDetailView 帖子详情
type PostDetailView struct {
	PostView
	Comments []CommentView `json:"comments"`
}

// InterestView 关注切换结果
type InterestView struct {
	InterestCount int64 `json:"interest_count"`
	Interested    bool  `json:"interested"`
}

// CommentInput 评论输入
type CommentInput struct {
	Content string `json:"content" binding:"required"`
}

// VoteInput 投票输入
type VoteInput struct {
	IsUpvote *bool `json:"is_upvote" binding:"required"`
}

// MessageView 操作结果
type MessageView struct {
	Message string `json:"message"`
}

func toTagView(t model.Tag) TagView {
	return TagView{ID: t.ID, Label: t.Label, WikidataURL: t.WikidataURL, Description: t.Description}
}

func toTagViews(tags []model.Tag) []TagView {
	views := make([]TagView, 0, len(tags))
	for _, t := range tags {
		views = append(views, toTagView(t))
	}
	return views
}

func toPostView(p *model.Post) PostView {
	return PostView{
		ID:            p.ID,
		Title:         p.Title,
		Description:   p.Description,
		Material:      p.Material,
		Length:        p.Length,
		Width:         p.Width,
		Height:        p.Height,
		Color:         p.Color,
		Shape:         p.Shape,
		Weight:        p.Weight,
		Location:      p.Location,
		Smell:         p.Smell,
		Taste:         p.Taste,
		Origin:        p.Origin,
		ImageURL:      p.ImageURL,
		Creator:       p.Owner.Username,
		OwnerID:       p.OwnerID,
		Tags:          toTagViews(p.Tags),
		InterestCount: p.InterestCount,
		CreatedAt:     p.CreatedAt,
	}
}

func toPostViews(posts []model.Post) []PostView {
	views := make([]PostView, 0, len(posts))
	for i := range posts {
		views = append(views, toPostView(&posts[i]))
	}
	return views
}

func toCommentView(c *model.Comment) CommentView {
	return CommentView{
		ID:        c.ID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		PostID:    c.PostID,
		User:      CommentUser{ID: c.User.ID, Username: c.User.Username},
		Score:     c.Score,
	}
}

func toPostDetailView(p *model.Post) PostDetailView {
	comments := make([]CommentView, 0, len(p.Comments))
	for i := range p.Comments {
		comments = append(comments, toCommentView(&p.Comments[i]))
	}
	return PostDetailView{PostView: toPostView(p), Comments: comments}
}
