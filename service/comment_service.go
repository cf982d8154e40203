package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/streamhive/video-service/apperror"
	"github.com/streamhive/video-service/domain"
	"github.com/streamhive/video-service/repository"
)

type CommentService interface {
	Create(ctx context.Context, ownerID, videoID, content string) (*domain.Comment, error)
	Update(ctx context.Context, actorID, commentID, content string) (*domain.Comment, error)
	Delete(ctx context.Context, actorID, commentID string) error
	ListByVideo(ctx context.Context, videoID string) ([]domain.Comment, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Comment, error)
}

type commentService struct {
	comments repository.CommentRepository
	videos   repository.VideoRepository
	users    repository.UserRepository
}

func NewCommentService(comments repository.CommentRepository, videos repository.VideoRepository, users repository.UserRepository) CommentService {
	return &commentService{comments: comments, videos: videos, users: users}
}

func (s *commentService) Create(ctx context.Context, ownerID, videoID, content string) (*domain.Comment, error) {
	if _, err := s.videos.FindByID(ctx, videoID); err != nil {
		return nil, err
	}

	now := time.Now()
	comment := &domain.Comment{
		ID:        uuid.New().String(),
		Owner:     ownerID,
		Video:     videoID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	// the (owner, video) unique index turns a duplicate into a Conflict
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) Update(ctx context.Context, actorID, commentID, content string) (*domain.Comment, error) {
	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.Owner != actorID {
		return nil, apperror.Unauthorized("only the comment owner can update the comment")
	}
	return s.comments.Update(ctx, commentID, content)
}

// Delete permits the comment owner, the owner of the commented video, or an
// admin.
func (s *commentService) Delete(ctx context.Context, actorID, commentID string) error {
	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.Owner != actorID {
		video, err := s.videos.FindByID(ctx, comment.Video)
		if err == nil && video.Owner == actorID {
			return s.comments.Delete(ctx, commentID)
		}

		actor, err := s.users.FindByID(ctx, actorID)
		if err != nil {
			return err
		}
		if !actor.IsAdmin() {
			return apperror.Unauthorized("only the comment owner, video owner or an admin can delete the comment")
		}
	}
	return s.comments.Delete(ctx, commentID)
}

func (s *commentService) ListByVideo(ctx context.Context, videoID string) ([]domain.Comment, error) {
	return s.comments.FindByVideo(ctx, videoID)
}

func (s *commentService) ListByOwner(ctx context.Context, ownerID string) ([]domain.Comment, error) {
	return s.comments.FindByOwner(ctx, ownerID)
}
