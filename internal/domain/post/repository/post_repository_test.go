package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"catalog_api/internal/domain/post/model"
	userModel "catalog_api/internal/domain/user/model"
	"catalog_api/internal/pkg/testdb"
	"catalog_api/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

func createUser(t *testing.T, db *gorm.DB, username string) *userModel.User {
	t.Helper()
	u := &userModel.User{Username: username, HashedPassword: "x"}
	require.NoError(t, db.Create(u).Error)
	return u
}

func createPost(t *testing.T, repo PostRepository, owner *userModel.User, title string, desc *string, labels ...string) *model.Post {
	t.Helper()
	tags := make([]model.Tag, 0, len(labels))
	for _, l := range labels {
		tags = append(tags, model.Tag{Label: l, Description: model.TagPlaceholderDescription})
	}
	p := &model.Post{Title: title, Description: desc, OwnerID: owner.ID}
	require.NoError(t, repo.CreatePost(context.Background(), p, tags))
	return p
}

func TestPostRepository_CreatePostReusesTags(t *testing.T) {
	db := testdb.Open(t)
	repo := NewPostRepository(db)
	owner := createUser(t, db, "alice")

	first := createPost(t, repo, owner, "Found a spoon", nil, "Metal", "Wood")
	second := createPost(t, repo, owner, "Old chair", nil, "Wood")

	tags, err := repo.ListTags(context.Background())
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "Metal", tags[0].Label)
	assert.Equal(t, "Wood", tags[1].Label)

	got, err := repo.FindPostByID(context.Background(), second.ID)
	require.NoError(t, err)
	require.Len(t, got.Tags, 1)
	assert.Equal(t, first.Tags[1].ID, got.Tags[0].ID)
	assert.Equal(t, "alice", got.Owner.Username)
	assert.Equal(t, int64(0), got.InterestCount)
}

func TestPostRepository_CreatePostKeepsExistingTag(t *testing.T) {
	db := testdb.Open(t)
	repo := NewPostRepository(db)
	owner := createUser(t, db, "alice")

	// 另一个请求已先写入同名标签
	existing := &model.Tag{Label: "Wood", WikidataURL: "http://www.wikidata.org/entity/Q287", Description: "hard fibrous material"}
	require.NoError(t, db.Create(existing).Error)

	post := &model.Post{Title: "Old chair", OwnerID: owner.ID}
	tags := []model.Tag{{Label: "Wood", Description: model.TagPlaceholderDescription}}
	require.NoError(t, repo.CreatePost(context.Background(), post, tags))

	require.Len(t, post.Tags, 1)
	assert.Equal(t, existing.ID, post.Tags[0].ID)
	assert.Equal(t, "hard fibrous material", post.Tags[0].Description)

	var count int64
	require.NoError(t, db.Model(&model.Tag{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestPostRepository_CreatePostSameNewTagConcurrently(t *testing.T) {
	db := testdb.Open(t)
	repo := NewPostRepository(db)
	owner := createUser(t, db, "alice")

	const workers = 8
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			post := &model.Post{Title: fmt.Sprintf("post %d", i), OwnerID: owner.ID}
			errs[i] = repo.CreatePost(context.Background(), post, []model.Tag{{Label: "Metal"}})
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}

	tags, err := repo.ListTags(context.Background())
	require.NoError(t, err)
	require.Len(t, tags, 1)

	var links int64
	require.NoError(t, db.Table("post_tags").Where("tag_id = ?", tags[0].ID).Count(&links).Error)
	assert.Equal(t, int64(workers), links)
}

func TestPostRepository_FindPostByIDNotFound(t *testing.T) {
	db := testdb.Open(t)
	repo := NewPostRepository(db)

	_, err := repo.FindPostByID(context.Background(), 999)
	assert.True(t, database.IsNotFound(err))

	exists, err := repo.PostExists(context.Background(), 999)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestPostRepository_ListPostsNewestFirst(t *testing.T) {
	db := testdb.Open(t)
	repo := NewPostRepository(db)
	owner := createUser(t, db, "alice")

	a := createPost(t, repo, owner, "A", nil)
	b := createPost(t, repo, owner, "B", nil)
	c := createPost(t, repo, owner, "C", nil)

	all, err := repo.ListPosts(context.Background(), 0, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []uint{c.ID, b.ID, a.ID}, []uint{all[0].ID, all[1].ID, all[2].ID})

	page, err := repo.ListPosts(context.Background(), 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, b.ID, page[0].ID)
}

func TestPostRepository_HotPostsOrdering(t *testing.T) {
	db := testdb.Open(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	p1 := createPost(t, repo, alice, "one", nil)
	p2 := createPost(t, repo, alice, "two", nil)
	p3 := createPost(t, repo, alice, "three", nil)

	require.NoError(t, repo.CreateInterest(ctx, &model.PostInterest{PostID: p2.ID, UserID: alice.ID}))
	require.NoError(t, repo.CreateInterest(ctx, &model.PostInterest{PostID: p2.ID, UserID: bob.ID}))
	require.NoError(t, repo.CreateInterest(ctx, &model.PostInterest{PostID: p3.ID, UserID: bob.ID}))

	hot, err := repo.HotPosts(ctx)
	require.NoError(t, err)
	require.Len(t, hot, 3)
	assert.Equal(t, p2.ID, hot[0].ID)
	assert.Equal(t, int64(2), hot[0].InterestCount)
	assert.Equal(t, p3.ID, hot[1].ID)
	assert.Equal(t, p1.ID, hot[2].ID)
	assert.Equal(t, int64(0), hot[2].InterestCount)
}

func TestPostRepository_SearchPosts(t *testing.T) {
	db := testdb.Open(t)
	repo := NewPostRepository(db)
	owner := createUser(t, db, "alice")

	spoon := createPost(t, repo, owner, "Found a Spoon", nil)
	bowl := createPost(t, repo, owner, "Bowl", strPtr("wooden, goes with a spoon"))
	createPost(t, repo, owner, "Chair", strPtr("100% oak"))

	found, err := repo.SearchPosts(context.Background(), "SPOON")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, spoon.ID, found[0].ID)
	assert.Equal(t, bowl.ID, found[1].ID)

	// 通配符按字面匹配
	found, err = repo.SearchPosts(context.Background(), "%")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Chair", found[0].Title)
}

func TestPostRepository_DeletePostCascades(t *testing.T) {
	db := testdb.Open(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	post := createPost(t, repo, alice, "Found a spoon", nil, "Metal")
	comment := &model.Comment{PostID: post.ID, UserID: bob.ID, Content: "Nice find"}
	require.NoError(t, repo.CreateComment(ctx, comment))
	require.NoError(t, repo.UpsertVote(ctx, &model.CommentVote{CommentID: comment.ID, UserID: alice.ID, IsUpvote: true}))
	require.NoError(t, repo.CreateInterest(ctx, &model.PostInterest{PostID: post.ID, UserID: bob.ID}))

	require.NoError(t, repo.DeletePost(ctx, post.ID))

	var count int64
	require.NoError(t, db.Model(&model.Comment{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&model.CommentVote{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&model.PostInterest{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Table("post_tags").Count(&count).Error)
	assert.Zero(t, count)

	// 标签本身保留
	tags, err := repo.ListTags(ctx)
	require.NoError(t, err)
	assert.Len(t, tags, 1)

	err = repo.DeletePost(ctx, post.ID)
	assert.True(t, database.IsNotFound(err))
}

func TestPostRepository_UpsertVoteKeepsLatest(t *testing.T) {
	db := testdb.Open(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	sqlxDB, err := database.NewSQLX(db)
	require.NoError(t, err)
	scores := NewScoreReader(sqlxDB)

	post := createPost(t, repo, alice, "Found a spoon", nil)
	comment := &model.Comment{PostID: post.ID, UserID: bob.ID, Content: "Nice find"}
	require.NoError(t, repo.CreateComment(ctx, comment))

	score, err := scores.Score(ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), score)

	require.NoError(t, repo.UpsertVote(ctx, &model.CommentVote{CommentID: comment.ID, UserID: alice.ID, IsUpvote: true}))
	require.NoError(t, repo.UpsertVote(ctx, &model.CommentVote{CommentID: comment.ID, UserID: alice.ID, IsUpvote: false}))
	require.NoError(t, repo.UpsertVote(ctx, &model.CommentVote{CommentID: comment.ID, UserID: bob.ID, IsUpvote: false}))

	var votes int64
	require.NoError(t, db.Model(&model.CommentVote{}).Count(&votes).Error)
	assert.Equal(t, int64(2), votes)

	score, err = scores.Score(ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(-2), score)
}

func TestPostRepository_Interest(t *testing.T) {
	db := testdb.Open(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	alice := createUser(t, db, "alice")
	post := createPost(t, repo, alice, "Found a spoon", nil)

	require.NoError(t, repo.CreateInterest(ctx, &model.PostInterest{PostID: post.ID, UserID: alice.ID}))
	has, err := repo.HasInterest(ctx, post.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, has)

	err = repo.CreateInterest(ctx, &model.PostInterest{PostID: post.ID, UserID: alice.ID})
	assert.True(t, database.IsUniqueViolation(err))

	require.NoError(t, repo.DeleteInterest(ctx, post.ID, alice.ID))
	count, err := repo.CountInterest(ctx, post.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestPostRepository_FindPostWithComments(t *testing.T) {
	db := testdb.Open(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	post := createPost(t, repo, alice, "Found a spoon", nil)

	require.NoError(t, repo.CreateComment(ctx, &model.Comment{PostID: post.ID, UserID: bob.ID, Content: "first"}))
	require.NoError(t, repo.CreateComment(ctx, &model.Comment{PostID: post.ID, UserID: alice.ID, Content: "second"}))

	got, err := repo.FindPostWithComments(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, got.Comments, 2)
	assert.Equal(t, "first", got.Comments[0].Content)
	assert.Equal(t, "bob", got.Comments[0].User.Username)
	assert.Equal(t, "alice", got.Comments[1].User.Username)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\`, escapeLike(`c:\`))
}
