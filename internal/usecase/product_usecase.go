package usecase

import (
	"context"
	"io"
	"net/http"
	"strings"

	"medstore/internal/domain/model"
	repo "medstore/internal/repository"
)

// ImageStorage is the collaborator that turns raw image bytes into a stable
// reference string.
type ImageStorage interface {
	Upload(ctx context.Context, body io.Reader, filename string, contentType string) (string, error)
}

type ProductUsecase struct {
	productRepo repo.ProductRepository
	images      ImageStorage
}

// DI
func NewProductUsecase(productRepo repo.ProductRepository, images ImageStorage) *ProductUsecase {
	return &ProductUsecase{
		productRepo: productRepo,
		images:      images,
	}
}

type ImageUpload struct {
	Content     io.Reader
	Filename    string
	ContentType string
}

type CreateProductInput struct {
	Name        string
	Description string
	Price       float64
	Category    string
	InStock     bool
	Images      []ImageUpload
}

// UpdateProductInput merges only supplied fields. Nil pointers leave the
// current value untouched. ExistingImages == nil means keep the image list;
// otherwise it replaces the list and NewImages are appended after upload.
type UpdateProductInput struct {
	Name           *string
	Description    *string
	Price          *float64
	Category       *string
	InStock        *bool
	ExistingImages []string
	NewImages      []ImageUpload
}

func (u *ProductUsecase) List(ctx context.Context, category string) ([]model.Product, error) {
	products, err := u.productRepo.List(ctx, category)
	if err != nil {
		return []model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return products, nil
}

func (u *ProductUsecase) Get(ctx context.Context, id int64) (model.Product, error) {
	if id <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := u.productRepo.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

func (u *ProductUsecase) Create(ctx context.Context, in CreateProductInput) (model.Product, error) {
	if strings.TrimSpace(in.Name) == "" ||
		strings.TrimSpace(in.Description) == "" ||
		strings.TrimSpace(in.Category) == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "name, description, price and category are required")
	}
	if in.Price <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid price")
	}
	if len(in.Images) == 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "at least one image is required")
	}

	urls, err := u.uploadAll(ctx, in.Images)
	if err != nil {
		return model.Product{}, err
	}

	p := model.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Images:      urls,
		Category:    in.Category,
		InStock:     in.InStock,
	}

	created, err := u.productRepo.Create(ctx, p)
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

func (u *ProductUsecase) Update(ctx context.Context, id int64, in UpdateProductInput) (model.Product, error) {
	if id <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := u.productRepo.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		if *in.Price <= 0 {
			return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid price")
		}
		p.Price = *in.Price
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.InStock != nil {
		p.InStock = *in.InStock
	}

	if in.ExistingImages != nil || len(in.NewImages) > 0 {
		images := in.ExistingImages
		if images == nil {
			images = p.Images
		}
		uploaded, err := u.uploadAll(ctx, in.NewImages)
		if err != nil {
			return model.Product{}, err
		}
		p.Images = append(append([]string{}, images...), uploaded...)
	}

	if err := u.productRepo.Update(ctx, p); err != nil {
		if err == repo.ErrNotFound {
			return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
		}
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

// Delete is a hard delete. Existing orders keep their snapshots, so there is
// no referential check.
func (u *ProductUsecase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.productRepo.Delete(ctx, id)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *ProductUsecase) uploadAll(ctx context.Context, uploads []ImageUpload) ([]string, error) {
	urls := make([]string, 0, len(uploads))
	for _, img := range uploads {
		url, err := u.images.Upload(ctx, img.Content, img.Filename, img.ContentType)
		if err != nil {
			return nil, NewHTTPError(http.StatusInternalServerError, "image upload failed")
		}
		urls = append(urls, url)
	}
	return urls, nil
}
