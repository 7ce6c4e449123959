package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nkhangg/gostore/internal/logging"
	"github.com/nkhangg/gostore/internal/models"
	"github.com/nkhangg/gostore/internal/repo"
)

type CatalogService struct {
	Repo *repo.GormRepo
}

func NewCatalogService(r *repo.GormRepo) *CatalogService {
	return &CatalogService{Repo: r}
}

type ProductInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
}

func validateProduct(in ProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if strings.TrimSpace(in.Description) == "" {
		return fmt.Errorf("%w: description is required", ErrValidation)
	}
	if in.Price <= 0 {
		return fmt.Errorf("%w: price must be greater than zero", ErrValidation)
	}
	return nil
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.Repo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return products, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, fmt.Errorf("%w: product not found", ErrNotFound)
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return product, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.create_product")

	if err := validateProduct(in); err != nil {
		l.Warn("create_product_failed", "status", 400, "error", err)
		return nil, err
	}

	product := &models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Image:       in.Image,
	}
	if err := s.Repo.CreateProduct(ctx, product); err != nil {
		l.Error("create_product_failed", "status", 500, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	l.Info("create_product_success", "product_id", product.ID)
	return product, nil
}

// UpdateProduct overwrites name, description, price and image in place.
func (s *CatalogService) UpdateProduct(ctx context.Context, id uint, in ProductInput) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.update_product")

	if err := validateProduct(in); err != nil {
		l.Warn("update_product_failed", "status", 400, "error", err)
		return nil, err
	}

	product, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			l.Warn("update_product_failed", "status", 404, "reason", "product not found")
			return nil, fmt.Errorf("%w: product not found", ErrNotFound)
		}
		l.Error("update_product_failed", "status", 500, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	product.Name = in.Name
	product.Description = in.Description
	product.Price = in.Price
	product.Image = in.Image

	if err := s.Repo.SaveProduct(ctx, product); err != nil {
		l.Error("update_product_failed", "status", 500, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	l.Info("update_product_success", "product_id", product.ID)
	return product, nil
}

// DeleteProduct refuses to remove a product while any cart or order line
// still references it. Check and delete run in one transaction.
func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	l := logging.FromContext(ctx).With("svc", "catalog.delete_product")

	err := s.Repo.WithinTx(ctx, func(tx *repo.GormRepo) error {
		refs, err := tx.CountProductRefs(ctx, id)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}
		if refs > 0 {
			return fmt.Errorf("%w: product is referenced by cart or order lines", ErrConflict)
		}
		if err := tx.DeleteProduct(ctx, id); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return fmt.Errorf("%w: product not found", ErrNotFound)
			}
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrConflict):
			l.Warn("delete_product_failed", "status", 409, "reason", "product still referenced")
		case errors.Is(err, ErrNotFound):
			l.Warn("delete_product_failed", "status", 404, "reason", "product not found")
		default:
			l.Error("delete_product_failed", "status", 500, "error", err)
		}
		return err
	}

	l.Info("delete_product_success", "product_id", id)
	return nil
}
