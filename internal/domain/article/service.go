package article

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	articles Repository
}

func NewService(articles Repository) *Service {
	return &Service{articles: articles}
}

func (s *Service) Create(ctx context.Context, a *Article) error {
	if a.AuthorID == uuid.Nil {
		return fmt.Errorf("author_id is required")
	}
	if a.Title == "" {
		return fmt.Errorf("title is required")
	}
	if a.Body == "" {
		return fmt.Errorf("body is required")
	}
	if a.Slug == "" {
		a.Slug = Slugify(a.Title)
	}
	// Articles start as drafts; publishing is a separate action.
	a.Published = false
	a.PublishedAt = nil
	return s.articles.Create(ctx, a)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Article, error) {
	return s.articles.GetByID(ctx, id)
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (*Article, error) {
	return s.articles.GetBySlug(ctx, slug)
}

func (s *Service) Update(ctx context.Context, a *Article) error {
	current, err := s.articles.GetByID(ctx, a.ID)
	if err != nil {
		return err
	}
	if a.Title == "" {
		return fmt.Errorf("title is required")
	}
	if a.Slug == "" {
		a.Slug = Slugify(a.Title)
	}
	a.Published = current.Published
	a.PublishedAt = current.PublishedAt
	return s.articles.Update(ctx, a)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.articles.Delete(ctx, id)
}

// Publish makes a draft visible to patients. Idempotent.
func (s *Service) Publish(ctx context.Context, id uuid.UUID) (*Article, error) {
	a, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Published {
		return a, nil
	}
	now := time.Now()
	a.Published = true
	a.PublishedAt = &now
	if err := s.articles.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) List(ctx context.Context, publishedOnly bool, limit, offset int) ([]*Article, int, error) {
	return s.articles.List(ctx, publishedOnly, limit, offset)
}
