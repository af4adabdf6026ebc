package service

import (
	"context"
	"regexp"
	"strings"

	"locali/internal/domain"
	"locali/internal/port"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases name and joins its alphanumeric runs with hyphens.
func Slugify(name string) string {
	s := strings.ToLower(strings.ReplaceAll(name, "&", " "))
	return strings.Trim(nonSlugChars.ReplaceAllString(s, "-"), "-")
}

// CategoryService defines the category contract.
type CategoryService interface {
	List(ctx context.Context) ([]domain.Category, error)
	Create(ctx context.Context, name, slug string) (*domain.Category, error)
}

type categoryService struct {
	repo port.CategoryRepository
}

// NewCategoryService creates a new CategoryService implementation.
func NewCategoryService(repo port.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.repo.List(ctx)
}

func (s *categoryService) Create(ctx context.Context, name, slug string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if slug = Slugify(slug); slug == "" {
		slug = Slugify(name)
	}
	if name == "" || slug == "" {
		return nil, domain.ErrInvalidCategory
	}

	c := &domain.Category{Name: name, Slug: slug}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
