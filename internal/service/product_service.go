// internal/service/product_service.go
package service

import (
	"context"
	"errors"

	"github.com/stylesense/backend/internal/domain"
	"github.com/stylesense/backend/internal/repository"
)

var (
	ErrInvalidProduct = errors.New("invalid product")
)

var validCategories = map[string]bool{
	"Men":   true,
	"Women": true,
}

var validSubCategories = map[string]bool{
	"T-Shirts": true,
	"Jeans":    true,
	"Jackets":  true,
	"Dresses":  true,
}

type ProductService struct {
	repo repository.ProductRepository
}

func NewProductService(repo repository.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

func (s *ProductService) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	return s.repo.List(ctx, filter)
}

func (s *ProductService) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ProductService) Create(ctx context.Context, p *domain.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	return s.repo.Create(ctx, p)
}

func (s *ProductService) Update(ctx context.Context, p *domain.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	return s.repo.Update(ctx, p)
}

func (s *ProductService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func validateProduct(p *domain.Product) error {
	switch {
	case p.Name == "":
		return errors.Join(ErrInvalidProduct, errors.New("name is required"))
	case p.Price < 0:
		return errors.Join(ErrInvalidProduct, errors.New("price must not be negative"))
	case p.Stock < 0:
		return errors.Join(ErrInvalidProduct, errors.New("stock must not be negative"))
	case !validCategories[p.Category]:
		return errors.Join(ErrInvalidProduct, errors.New("unknown category"))
	case !validSubCategories[p.SubCategory]:
		return errors.Join(ErrInvalidProduct, errors.New("unknown subcategory"))
	}
	return nil
}
