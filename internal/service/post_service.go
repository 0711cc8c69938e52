package service

import (
	"context"
	"time"

	"scribe/internal/models"
	"scribe/internal/observability"
	"scribe/internal/repository"
)

type PostService struct {
	postRepo repository.PostRepository
	now      func() time.Time
}

type CreatePostInput struct {
	Title   string
	Content string
}

// ReplacePostInput overwrites every mutable field.
type ReplacePostInput struct {
	Title   string
	Content string
}

// PatchPostInput changes only the non-nil fields.
type PatchPostInput struct {
	Title   *string
	Content *string
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{
		postRepo: postRepo,
		now:      time.Now,
	}
}

// List returns every post, newest first.
func (s *PostService) List(ctx context.Context) ([]models.Post, error) {
	return s.postRepo.List(ctx)
}

func (s *PostService) Create(ctx context.Context, requester *models.User, in CreatePostInput) (*models.Post, error) {
	if requester == nil {
		return nil, models.NewUnauthenticatedError("Not authenticated")
	}
	post := &models.Post{
		Title:      in.Title,
		Content:    in.Content,
		DatePosted: s.now().UTC(),
		UserID:     requester.ID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	observability.PostsWritten.WithLabelValues("create").Inc()
	return post, nil
}

func (s *PostService) Get(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

func (s *PostService) Replace(ctx context.Context, id uint, requester *models.User, in ReplacePostInput) (*models.Post, error) {
	post, err := s.owned(ctx, id, requester, "update")
	if err != nil {
		return nil, err
	}
	post.Title = in.Title
	post.Content = in.Content
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	observability.PostsWritten.WithLabelValues("replace").Inc()
	return post, nil
}

func (s *PostService) Patch(ctx context.Context, id uint, requester *models.User, in PatchPostInput) (*models.Post, error) {
	post, err := s.owned(ctx, id, requester, "update")
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		post.Title = *in.Title
	}
	if in.Content != nil {
		post.Content = *in.Content
	}
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	observability.PostsWritten.WithLabelValues("patch").Inc()
	return post, nil
}

func (s *PostService) Delete(ctx context.Context, id uint, requester *models.User) error {
	if _, err := s.owned(ctx, id, requester, "delete"); err != nil {
		return err
	}
	if err := s.postRepo.Delete(ctx, id); err != nil {
		return err
	}
	observability.PostsWritten.WithLabelValues("delete").Inc()
	return nil
}

// owned loads a post and checks requester owns it. Absence is reported before ownership.
func (s *PostService) owned(ctx context.Context, id uint, requester *models.User, action string) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if requester == nil || post.UserID != requester.ID {
		return nil, models.NewForbiddenError("Not authorized to " + action + " this post")
	}
	return post, nil
}
