package service

import (
	"context"
	"log/slog"

	"github.com/dukerupert/shelf/internal/domain"
	"github.com/dukerupert/shelf/internal/repository"
)

// CategoryService provides catalog categories and their admin maintenance.
type CategoryService interface {
	Create(ctx context.Context, input domain.CategoryInput) (*domain.Category, error)
	List(ctx context.Context, page domain.PageRequest) ([]domain.Category, error)
	Get(ctx context.Context, id int64) (*domain.Category, error)
	Update(ctx context.Context, id int64, input domain.CategoryInput) (*domain.Category, error)
	Delete(ctx context.Context, id int64) error
}

type categoryService struct {
	repo   repository.Querier
	logger *slog.Logger
}

// NewCategoryService creates a new CategoryService instance
func NewCategoryService(repo repository.Querier, logger *slog.Logger) CategoryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &categoryService{
		repo:   repo,
		logger: logger.With("service", "category"),
	}
}

func (s *categoryService) Create(ctx context.Context, input domain.CategoryInput) (*domain.Category, error) {
	row, err := s.repo.CreateCategory(ctx, repository.CreateCategoryParams{
		Name:        input.Name,
		Description: repository.Text(input.Description),
	})
	if err != nil {
		return nil, domain.Internal(err, "category.create", "failed to create category")
	}

	s.logger.Info("category created", "category_id", row.ID)
	category := toDomainCategory(row)
	return &category, nil
}

func (s *categoryService) List(ctx context.Context, page domain.PageRequest) ([]domain.Category, error) {
	rows, err := s.repo.ListCategories(ctx, repository.ListCategoriesParams{
		Limit:  page.Limit(),
		Offset: page.Offset(),
	})
	if err != nil {
		return nil, domain.Internal(err, "category.list", "failed to list categories")
	}

	categories := make([]domain.Category, len(rows))
	for i, r := range rows {
		categories[i] = toDomainCategory(r)
	}
	return categories, nil
}

func (s *categoryService) Get(ctx context.Context, id int64) (*domain.Category, error) {
	const op = "category.get"

	row, err := s.repo.GetCategoryByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, categoryNotFound(op, id)
		}
		return nil, domain.Internal(err, op, "failed to get category")
	}

	category := toDomainCategory(row)
	return &category, nil
}

// Update replaces name and description of a live category.
func (s *categoryService) Update(ctx context.Context, id int64, input domain.CategoryInput) (*domain.Category, error) {
	const op = "category.update"

	row, err := s.repo.UpdateCategory(ctx, repository.UpdateCategoryParams{
		ID:          id,
		Name:        input.Name,
		Description: repository.Text(input.Description),
	})
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, categoryNotFound(op, id)
		}
		return nil, domain.Internal(err, op, "failed to update category")
	}

	category := toDomainCategory(row)
	return &category, nil
}

// Delete soft-deletes the category. Book links are kept in storage but no
// longer reported.
func (s *categoryService) Delete(ctx context.Context, id int64) error {
	const op = "category.delete"

	n, err := s.repo.SoftDeleteCategory(ctx, id)
	if err != nil {
		return domain.Internal(err, op, "failed to delete category")
	}
	if n == 0 {
		return categoryNotFound(op, id)
	}

	s.logger.Info("category deleted", "category_id", id)
	return nil
}

func categoryNotFound(op string, id int64) error {
	return notFound(domain.ErrCategoryNotFound, op, "There is no category by id: %d", id)
}
