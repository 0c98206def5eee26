package backends

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-gateway/core"
	"github.com/goliatone/go-gateway/store/memory"
)

// ProductService is the in-process product backend.
type ProductService struct {
	repo *memory.ProductRepository
	now  func() time.Time
}

func NewProductService(repo *memory.ProductRepository, options ...ProductServiceOption) *ProductService {
	if repo == nil {
		repo = memory.NewProductRepository()
	}
	service := &ProductService{
		repo: repo,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, option := range options {
		if option == nil {
			continue
		}
		option(service)
	}
	return service
}

type ProductServiceOption func(*ProductService)

func WithProductClock(now func() time.Time) ProductServiceOption {
	return func(s *ProductService) {
		s.now = now
	}
}

func (s *ProductService) CreateProduct(ctx context.Context, req core.CreateProductRequest) (core.Product, error) {
	now := s.now()
	return s.repo.Create(ctx, core.Product{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Price:       req.Price,
		UserID:      req.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func (s *ProductService) GetProduct(ctx context.Context, req core.GetProductRequest) (core.Product, error) {
	return s.repo.Get(ctx, req.ProductID)
}

// UpdateProduct applies partial updates; zero values keep the stored value.
func (s *ProductService) UpdateProduct(ctx context.Context, req core.UpdateProductRequest) (core.Product, error) {
	return s.repo.Update(ctx, req.ProductID, func(product core.Product) core.Product {
		if name := strings.TrimSpace(req.Name); name != "" {
			product.Name = name
		}
		if description := strings.TrimSpace(req.Description); description != "" {
			product.Description = description
		}
		if req.Price > 0 {
			product.Price = req.Price
		}
		product.UpdatedAt = s.now()
		return product
	})
}

func (s *ProductService) DeleteProduct(ctx context.Context, req core.DeleteProductRequest) (core.DeleteProductResponse, error) {
	if s.repo.Delete(ctx, req.ProductID) {
		return core.DeleteProductResponse{
			Success: true,
			Message: fmt.Sprintf("product %d deleted", req.ProductID),
		}, nil
	}
	return core.DeleteProductResponse{
		Success: false,
		Message: fmt.Sprintf("product %d not found", req.ProductID),
	}, nil
}

func (s *ProductService) ListProducts(ctx context.Context, req core.ListProductsRequest) (core.ListProductsResponse, error) {
	page := core.PageRequest{Page: req.Page, Limit: req.Limit}.Normalize()
	products, total := s.repo.List(ctx, page)
	return core.ListProductsResponse{
		Products: products,
		Total:    total,
		Page:     page.Page,
		Limit:    page.Limit,
	}, nil
}

func (s *ProductService) GetProductsByUser(ctx context.Context, req core.GetProductsByUserRequest) (core.GetProductsByUserResponse, error) {
	products := s.repo.ListByUser(ctx, req.UserID)
	return core.GetProductsByUserResponse{
		Products: products,
		Total:    len(products),
	}, nil
}

var _ core.ProductBackend = (*ProductService)(nil)
