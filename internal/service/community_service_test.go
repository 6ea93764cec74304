package service

import (
	"context"
	"english_edu_backend/internal/model"
	"english_edu_backend/internal/repository"
	"english_edu_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCommunityService(t *testing.T) (*CommunityService, *gorm.DB) {
	db := newTestDB(t)
	// No redis in tests: view counting is skipped, everything else works.
	svc := NewCommunityService(repository.NewPostRepository(db), repository.NewCommentRepository(db), nil)
	return svc, db
}

func seedUser(t *testing.T, db *gorm.DB, name string) *model.User {
	t.Helper()
	user := &model.User{Name: name, Email: name + "@test.dev", Password: "x", Role: model.Student}
	require.NoError(t, repository.NewUserRepository(db).Create(user))
	return user
}

func newQuestionPost(t *testing.T, svc *CommunityService, authorID uint) *model.Post {
	t.Helper()
	post, err := svc.CreatePost(authorID, &CreatePostRequest{
		Type:     model.PostQuestion,
		Category: model.CategoryGrammar,
		Title:    "현재완료가 헷갈려요",
		Content:  "since와 for 차이가 뭔가요?",
		Tags:     "grammar,present-perfect",
	})
	require.NoError(t, err)
	return post
}

func TestCreateAndGetPost(t *testing.T) {
	svc, db := newCommunityService(t)
	author := seedUser(t, db, "author")

	post := newQuestionPost(t, svc, author.ID)
	assert.NotEmpty(t, post.ID)
	assert.Equal(t, author.ID, post.AuthorID)
	assert.Equal(t, "author", post.Author.Name)

	got, err := svc.GetPost(context.Background(), post.ID, "")
	require.NoError(t, err)
	assert.Equal(t, post.Title, got.Title)
	// Without redis the view counter stays untouched.
	assert.Equal(t, 0, got.Views)
}

func TestListPostsFilters(t *testing.T) {
	svc, db := newCommunityService(t)
	author := seedUser(t, db, "author")

	newQuestionPost(t, svc, author.ID)
	_, err := svc.CreatePost(author.ID, &CreatePostRequest{
		Type:     model.PostTip,
		Category: model.CategoryListening,
		Title:    "쉐도잉 팁",
		Content:  "짧은 문장부터.",
	})
	require.NoError(t, err)

	posts, total, err := svc.ListPosts(1, 10, string(model.CategoryGrammar), "", "")
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, posts, 1)
	assert.Equal(t, model.CategoryGrammar, posts[0].Category)

	posts, total, err = svc.ListPosts(1, 10, "", "", "쉐도잉")
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "쉐도잉 팁", posts[0].Title)
}

func TestCommentsAndReplies(t *testing.T) {
	svc, db := newCommunityService(t)
	author := seedUser(t, db, "author")
	replier := seedUser(t, db, "replier")

	post := newQuestionPost(t, svc, author.ID)

	root, err := svc.CreateComment(replier.ID, post.ID, &CreateCommentRequest{Content: "since는 시점, for는 기간이에요."})
	require.NoError(t, err)

	reply, err := svc.CreateComment(author.ID, post.ID, &CreateCommentRequest{Content: "감사합니다!", ParentID: &root.ID})
	require.NoError(t, err)
	require.NotNil(t, reply.ParentID)
	assert.Equal(t, root.ID, *reply.ParentID)

	// Replying to a reply attaches to the root comment.
	nested, err := svc.CreateComment(replier.ID, post.ID, &CreateCommentRequest{Content: "천만에요", ParentID: &reply.ID})
	require.NoError(t, err)
	assert.Equal(t, root.ID, *nested.ParentID)

	comments, total, err := svc.ListComments(post.ID, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total) // one root thread
	require.Len(t, comments, 3)
}

func TestToggleLike(t *testing.T) {
	svc, db := newCommunityService(t)
	author := seedUser(t, db, "author")
	liker := seedUser(t, db, "liker")

	post := newQuestionPost(t, svc, author.ID)

	liked, err := svc.ToggleLike(liker.ID, "post", post.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	got, err := svc.GetPost(context.Background(), post.ID, "")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Upvotes)

	liked, err = svc.ToggleLike(liker.ID, "post", post.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	got, err = svc.GetPost(context.Background(), post.ID, "")
	require.NoError(t, err)
	assert.Equal(t, 0, got.Upvotes)

	_, err = svc.ToggleLike(liker.ID, "picture", post.ID)
	assert.Error(t, err)
}

func TestAcceptComment(t *testing.T) {
	svc, db := newCommunityService(t)
	author := seedUser(t, db, "author")
	replier := seedUser(t, db, "replier")

	post := newQuestionPost(t, svc, author.ID)
	comment, err := svc.CreateComment(replier.ID, post.ID, &CreateCommentRequest{Content: "정답입니다"})
	require.NoError(t, err)

	// Only the post author can accept.
	err = svc.AcceptComment(replier.ID, post.ID, comment.ID)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	require.NoError(t, svc.AcceptComment(author.ID, post.ID, comment.ID))

	got, err := svc.GetPost(context.Background(), post.ID, "")
	require.NoError(t, err)
	assert.True(t, got.IsResolved)
	require.NotNil(t, got.AcceptedCommentID)
	assert.Equal(t, comment.ID, *got.AcceptedCommentID)
}

func TestUpdatePostPermissions(t *testing.T) {
	svc, db := newCommunityService(t)
	author := seedUser(t, db, "author")
	other := seedUser(t, db, "other")

	post := newQuestionPost(t, svc, author.ID)

	_, err := svc.UpdatePost(other.ID, model.Student, post.ID, &UpdatePostRequest{Title: "제목 변경"})
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	tags := "grammar"
	updated, err := svc.UpdatePost(author.ID, model.Student, post.ID, &UpdatePostRequest{
		Title: "현재완료 질문 (해결됨)",
		Tags:  &tags,
	})
	require.NoError(t, err)
	assert.Equal(t, "현재완료 질문 (해결됨)", updated.Title)
	assert.Equal(t, "grammar", updated.Tags)
	// Untouched fields survive a partial edit.
	assert.Equal(t, post.Content, updated.Content)
}

func TestDeletePostPermissions(t *testing.T) {
	svc, db := newCommunityService(t)
	author := seedUser(t, db, "author")
	other := seedUser(t, db, "other")

	post := newQuestionPost(t, svc, author.ID)

	err := svc.DeletePost(other.ID, model.Student, post.ID)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	// Admins may delete anyone's post.
	require.NoError(t, svc.DeletePost(other.ID, model.Admin, post.ID))

	_, err = svc.GetPost(context.Background(), post.ID, "")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
