package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lentera-api/internal/dto"
	"github.com/noah-isme/lentera-api/internal/models"
	"github.com/noah-isme/lentera-api/internal/repository"
)

func newDiscussionFixture(t *testing.T) DiscussionService {
	t.Helper()
	db := setupServiceDB(t, &models.Discussion{})
	validate := validator.New(validator.WithRequiredStructEnabled())
	return NewDiscussionService(repository.NewDiscussionRepository(db), validate, zerolog.Nop())
}

func TestDiscussionServiceAddPostUpdatesActivity(t *testing.T) {
	svc := newDiscussionFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, dto.DiscussionCreateRequest{
		Topic:   "Study strategies",
		Subject: "General",
	})
	require.NoError(t, err)
	require.Nil(t, created.LastActivityAt)

	withPost, err := svc.AddPost(ctx, created.ID, dto.DiscussionPostRequest{
		AuthorName: "Ayu",
		Content:    "How do you all plan revision weeks?",
	})
	require.NoError(t, err)
	require.Len(t, withPost.Posts, 1)
	require.Equal(t, 1, withPost.RepliesCount)
	require.NotNil(t, withPost.LastActivityAt)
	require.Equal(t, "Ayu", withPost.Posts[0].Author.Name)
}

func TestDiscussionServiceSanitizesContent(t *testing.T) {
	svc := newDiscussionFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, dto.DiscussionCreateRequest{Topic: "Security corner"})
	require.NoError(t, err)

	withPost, err := svc.AddPost(ctx, created.ID, dto.DiscussionPostRequest{
		AuthorName: "Budi",
		Content:    `hello <script>alert("x")</script>world`,
	})
	require.NoError(t, err)
	require.NotContains(t, withPost.Posts[0].Content, "<script>")
	require.Contains(t, withPost.Posts[0].Content, "hello")
}

func TestDiscussionServiceAddReplyAndLikes(t *testing.T) {
	svc := newDiscussionFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, dto.DiscussionCreateRequest{Topic: "Exam prep"})
	require.NoError(t, err)

	_, err = svc.AddPost(ctx, created.ID, dto.DiscussionPostRequest{AuthorName: "Citra", Content: "Any tips?"})
	require.NoError(t, err)

	withReply, err := svc.AddReply(ctx, created.ID, 1, dto.DiscussionPostRequest{
		AuthorName: "Dewi",
		Content:    "Past papers help a lot.",
	})
	require.NoError(t, err)
	require.Len(t, withReply.Posts[0].Replies, 1)
	require.Equal(t, 2, withReply.RepliesCount)

	liked, err := svc.LikePost(ctx, created.ID, 1)
	require.NoError(t, err)
	require.Equal(t, 1, liked.Posts[0].Likes)

	likedReply, err := svc.LikeReply(ctx, created.ID, 1, 1)
	require.NoError(t, err)
	require.Equal(t, 1, likedReply.Posts[0].Replies[0].Likes)

	_, err = svc.AddReply(ctx, created.ID, 9, dto.DiscussionPostRequest{AuthorName: "Eka", Content: "hello"})
	require.ErrorIs(t, err, ErrPostNotFound)
}

func TestDiscussionServiceMissingThread(t *testing.T) {
	svc := newDiscussionFixture(t)
	ctx := context.Background()

	_, err := svc.Get(ctx, 3)
	require.ErrorIs(t, err, ErrDiscussionNotFound)

	_, err = svc.AddPost(ctx, 3, dto.DiscussionPostRequest{AuthorName: "Fajar", Content: "anyone?"})
	require.ErrorIs(t, err, ErrDiscussionNotFound)
}
