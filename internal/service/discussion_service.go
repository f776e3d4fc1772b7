package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/noah-isme/lentera-api/internal/dto"
	"github.com/noah-isme/lentera-api/internal/models"
	"github.com/noah-isme/lentera-api/internal/repository"
)

var (
	// ErrDiscussionNotFound indicates the requested discussion does not exist.
	ErrDiscussionNotFound = errors.New("discussion not found")
	// ErrPostNotFound indicates the post id does not exist in the thread.
	ErrPostNotFound = errors.New("post not found")
	// ErrReplyNotFound indicates the reply id does not exist under the post.
	ErrReplyNotFound = errors.New("reply not found")
)

// DiscussionService exposes discussion thread use cases.
type DiscussionService interface {
	List(ctx context.Context, filter repository.DiscussionFilter) ([]dto.DiscussionResponse, error)
	Get(ctx context.Context, id uint) (dto.DiscussionResponse, error)
	Create(ctx context.Context, payload dto.DiscussionCreateRequest) (dto.DiscussionResponse, error)
	Update(ctx context.Context, id uint, payload dto.DiscussionUpdateRequest) (dto.DiscussionResponse, error)
	Delete(ctx context.Context, id uint) error
	AddPost(ctx context.Context, id uint, payload dto.DiscussionPostRequest) (dto.DiscussionResponse, error)
	AddReply(ctx context.Context, id, postID uint, payload dto.DiscussionPostRequest) (dto.DiscussionResponse, error)
	LikePost(ctx context.Context, id, postID uint) (dto.DiscussionResponse, error)
	LikeReply(ctx context.Context, id, postID, replyID uint) (dto.DiscussionResponse, error)
}

type discussionService struct {
	repo      repository.DiscussionRepository
	validator *validator.Validate
	logger    zerolog.Logger
	tracer    trace.Tracer
	sanitizer *bluemonday.Policy
	now       func() time.Time
}

// NewDiscussionService constructs a discussion service.
func NewDiscussionService(repo repository.DiscussionRepository, validate *validator.Validate, logger zerolog.Logger) DiscussionService {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("br")

	return &discussionService{
		repo:      repo,
		validator: validate,
		logger:    logger.With().Str("component", "discussion_service").Logger(),
		tracer:    otel.Tracer("github.com/noah-isme/lentera-api/internal/service/discussion"),
		sanitizer: policy,
		now:       time.Now,
	}
}

func (s *discussionService) List(ctx context.Context, filter repository.DiscussionFilter) ([]dto.DiscussionResponse, error) {
	discussions, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return dto.NewDiscussionResponseSlice(discussions), nil
}

func (s *discussionService) Get(ctx context.Context, id uint) (dto.DiscussionResponse, error) {
	discussion, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.DiscussionResponse{}, ErrDiscussionNotFound
		}

		return dto.DiscussionResponse{}, err
	}

	return dto.NewDiscussionResponse(discussion), nil
}

func (s *discussionService) Create(ctx context.Context, payload dto.DiscussionCreateRequest) (dto.DiscussionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.DiscussionResponse{}, err
	}

	discussion := models.Discussion{
		Topic:       payload.Topic,
		Subject:     payload.Subject,
		Description: payload.Description,
	}

	if err := s.repo.Create(ctx, &discussion); err != nil {
		return dto.DiscussionResponse{}, err
	}

	s.logger.Info().Uint("discussion_id", discussion.ID).Msg("discussion created")

	return dto.NewDiscussionResponse(discussion), nil
}

func (s *discussionService) Update(ctx context.Context, id uint, payload dto.DiscussionUpdateRequest) (dto.DiscussionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.DiscussionResponse{}, err
	}

	discussion, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.DiscussionResponse{}, ErrDiscussionNotFound
		}

		return dto.DiscussionResponse{}, err
	}

	if payload.Topic != nil {
		discussion.Topic = *payload.Topic
	}
	if payload.Subject != nil {
		discussion.Subject = *payload.Subject
	}
	if payload.Description != nil {
		discussion.Description = *payload.Description
	}

	if err := s.repo.Update(ctx, &discussion); err != nil {
		return dto.DiscussionResponse{}, err
	}

	return dto.NewDiscussionResponse(discussion), nil
}

func (s *discussionService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDiscussionNotFound
		}
		return err
	}

	s.logger.Info().Uint("discussion_id", id).Msg("discussion deleted")
	return nil
}

func (s *discussionService) AddPost(ctx context.Context, id uint, payload dto.DiscussionPostRequest) (dto.DiscussionResponse, error) {
	ctx, span := s.tracer.Start(ctx, "discussion.add_post", trace.WithAttributes(attribute.Int("discussion.id", int(id))))
	defer span.End()

	if err := s.validator.Struct(payload); err != nil {
		return dto.DiscussionResponse{}, err
	}

	discussion, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.DiscussionResponse{}, ErrDiscussionNotFound
		}

		return dto.DiscussionResponse{}, err
	}

	now := s.now()
	posts := []models.Post(discussion.Posts)
	post := models.Post{
		ID: uint(len(posts) + 1),
		Author: models.PostAuthor{
			Name:      payload.AuthorName,
			AvatarURL: payload.AuthorAvatarURL,
		},
		Content:   s.sanitizer.Sanitize(payload.Content),
		CreatedAt: now.UTC().Format(time.RFC3339),
		Replies:   []models.Reply{},
	}
	posts = append(posts, post)

	discussion.Posts = datatypes.NewJSONSlice(posts)
	discussion.RepliesCount++
	discussion.LastActivityAt = &now

	if err := s.repo.Update(ctx, &discussion); err != nil {
		return dto.DiscussionResponse{}, err
	}

	return dto.NewDiscussionResponse(discussion), nil
}

func (s *discussionService) AddReply(ctx context.Context, id, postID uint, payload dto.DiscussionPostRequest) (dto.DiscussionResponse, error) {
	ctx, span := s.tracer.Start(ctx, "discussion.add_reply", trace.WithAttributes(
		attribute.Int("discussion.id", int(id)),
		attribute.Int("post.id", int(postID)),
	))
	defer span.End()

	if err := s.validator.Struct(payload); err != nil {
		return dto.DiscussionResponse{}, err
	}

	discussion, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.DiscussionResponse{}, ErrDiscussionNotFound
		}

		return dto.DiscussionResponse{}, err
	}

	now := s.now()
	found := false
	posts := []models.Post(discussion.Posts)
	for i := range posts {
		if posts[i].ID != postID {
			continue
		}
		found = true
		posts[i].Replies = append(posts[i].Replies, models.Reply{
			ID: uint(len(posts[i].Replies) + 1),
			Author: models.PostAuthor{
				Name:      payload.AuthorName,
				AvatarURL: payload.AuthorAvatarURL,
			},
			Content:   s.sanitizer.Sanitize(payload.Content),
			CreatedAt: now.UTC().Format(time.RFC3339),
		})
	}
	if !found {
		return dto.DiscussionResponse{}, ErrPostNotFound
	}

	discussion.Posts = datatypes.NewJSONSlice(posts)
	discussion.RepliesCount++
	discussion.LastActivityAt = &now

	if err := s.repo.Update(ctx, &discussion); err != nil {
		return dto.DiscussionResponse{}, err
	}

	return dto.NewDiscussionResponse(discussion), nil
}

func (s *discussionService) LikePost(ctx context.Context, id, postID uint) (dto.DiscussionResponse, error) {
	discussion, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.DiscussionResponse{}, ErrDiscussionNotFound
		}

		return dto.DiscussionResponse{}, err
	}

	found := false
	posts := []models.Post(discussion.Posts)
	for i := range posts {
		if posts[i].ID == postID {
			found = true
			posts[i].Likes++
		}
	}
	if !found {
		return dto.DiscussionResponse{}, ErrPostNotFound
	}

	discussion.Posts = datatypes.NewJSONSlice(posts)
	if err := s.repo.Update(ctx, &discussion); err != nil {
		return dto.DiscussionResponse{}, err
	}

	return dto.NewDiscussionResponse(discussion), nil
}

func (s *discussionService) LikeReply(ctx context.Context, id, postID, replyID uint) (dto.DiscussionResponse, error) {
	discussion, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.DiscussionResponse{}, ErrDiscussionNotFound
		}

		return dto.DiscussionResponse{}, err
	}

	postFound := false
	replyFound := false
	posts := []models.Post(discussion.Posts)
	for i := range posts {
		if posts[i].ID != postID {
			continue
		}
		postFound = true
		for j := range posts[i].Replies {
			if posts[i].Replies[j].ID == replyID {
				replyFound = true
				posts[i].Replies[j].Likes++
			}
		}
	}
	if !postFound {
		return dto.DiscussionResponse{}, ErrPostNotFound
	}
	if !replyFound {
		return dto.DiscussionResponse{}, ErrReplyNotFound
	}

	discussion.Posts = datatypes.NewJSONSlice(posts)
	if err := s.repo.Update(ctx, &discussion); err != nil {
		return dto.DiscussionResponse{}, err
	}

	return dto.NewDiscussionResponse(discussion), nil
}
