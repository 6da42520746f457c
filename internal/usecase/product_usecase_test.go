package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"medstore/internal/domain/model"
	repo "medstore/internal/repository"
	"medstore/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool      { return &b }

func validCreate() usecase.CreateProductInput {
	return usecase.CreateProductInput{
		Name:        "Digital Thermometer",
		Description: "Fast-read digital thermometer",
		Price:       10,
		Category:    "devices",
		InStock:     true,
		Images: []usecase.ImageUpload{
			{Content: strings.NewReader("img-1"), Filename: "front.jpg", ContentType: "image/jpeg"},
		},
	}
}

func TestProductGet_InvalidID(t *testing.T) {
	uc := usecase.NewProductUsecase(new(ProductRepoMock), new(ImageStorageMock))

	_, err := uc.Get(context.Background(), 0)

	assertErrStatus(t, err, 400)
}

func TestProductGet_NotFound(t *testing.T) {
	products := new(ProductRepoMock)
	products.On("FindByID", mock.Anything, int64(99)).Return(model.Product{}, repo.ErrNotFound)
	uc := usecase.NewProductUsecase(products, new(ImageStorageMock))

	_, err := uc.Get(context.Background(), 99)

	assertErrStatus(t, err, 404)
	assertErrContains(t, err, "product not found")
}

func TestProductList_CategoryFilterPassedThrough(t *testing.T) {
	products := new(ProductRepoMock)
	products.On("List", mock.Anything, "devices").
		Return([]model.Product{{ID: 1, Category: "devices"}}, nil)
	uc := usecase.NewProductUsecase(products, new(ImageStorageMock))

	out, err := uc.List(context.Background(), "devices")

	assert.NoError(t, err)
	assert.Len(t, out, 1)
	products.AssertExpectations(t)
}

func TestProductCreate_Validation(t *testing.T) {
	uc := usecase.NewProductUsecase(new(ProductRepoMock), new(ImageStorageMock))

	in := validCreate()
	in.Name = "  "
	_, err := uc.Create(context.Background(), in)
	assertErrStatus(t, err, 400)

	in = validCreate()
	in.Price = 0
	_, err = uc.Create(context.Background(), in)
	assertErrStatus(t, err, 400)
	assertErrContains(t, err, "invalid price")

	in = validCreate()
	in.Images = nil
	_, err = uc.Create(context.Background(), in)
	assertErrStatus(t, err, 400)
	assertErrContains(t, err, "at least one image")
}

func TestProductCreate_UploadsAllImagesInOrder(t *testing.T) {
	images := new(ImageStorageMock)
	images.On("Upload", mock.Anything, mock.Anything, "front.jpg", "image/jpeg").
		Return("https://cdn.example.com/front.jpg", nil)
	images.On("Upload", mock.Anything, mock.Anything, "back.jpg", "image/jpeg").
		Return("https://cdn.example.com/back.jpg", nil)

	products := new(ProductRepoMock)
	products.On("Create", mock.Anything, mock.Anything).Return(nil, nil)

	uc := usecase.NewProductUsecase(products, images)

	in := validCreate()
	in.Images = append(in.Images, usecase.ImageUpload{
		Content: strings.NewReader("img-2"), Filename: "back.jpg", ContentType: "image/jpeg",
	})

	created, err := uc.Create(context.Background(), in)

	assert.NoError(t, err)
	assert.Equal(t,
		[]string{"https://cdn.example.com/front.jpg", "https://cdn.example.com/back.jpg"},
		[]string(created.Images))
	assert.True(t, created.InStock)
	images.AssertExpectations(t)
	products.AssertExpectations(t)
}

func TestProductCreate_UploadFailure(t *testing.T) {
	images := new(ImageStorageMock)
	images.On("Upload", mock.Anything, mock.Anything, "front.jpg", "image/jpeg").
		Return("", errors.New("s3 is down"))

	products := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(products, images)

	_, err := uc.Create(context.Background(), validCreate())

	assertErrStatus(t, err, 500)
	assertErrContains(t, err, "image upload failed")
	products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductUpdate_PartialMergeKeepsImages(t *testing.T) {
	existing := model.Product{
		ID:          5,
		Name:        "Digital Thermometer",
		Description: "Fast-read digital thermometer",
		Price:       10,
		Images:      []string{"https://cdn.example.com/front.jpg"},
		Category:    "devices",
		InStock:     true,
	}

	products := new(ProductRepoMock)
	products.On("FindByID", mock.Anything, int64(5)).Return(existing, nil)
	products.On("Update", mock.Anything, mock.Anything).Return(nil)
	uc := usecase.NewProductUsecase(products, new(ImageStorageMock))

	updated, err := uc.Update(context.Background(), 5, usecase.UpdateProductInput{
		Price:   f64Ptr(12.5),
		InStock: boolPtr(false),
	})

	assert.NoError(t, err)
	assert.Equal(t, 12.5, updated.Price)
	assert.False(t, updated.InStock)
	// untouched fields keep their values
	assert.Equal(t, "Digital Thermometer", updated.Name)
	assert.Equal(t, []string{"https://cdn.example.com/front.jpg"}, []string(updated.Images))
}

func TestProductUpdate_ReplaceAndAppendImages(t *testing.T) {
	existing := model.Product{
		ID:          5,
		Name:        "Digital Thermometer",
		Description: "Fast-read digital thermometer",
		Price:       10,
		Images:      []string{"https://cdn.example.com/front.jpg", "https://cdn.example.com/old.jpg"},
		Category:    "devices",
		InStock:     true,
	}

	images := new(ImageStorageMock)
	images.On("Upload", mock.Anything, mock.Anything, "side.jpg", "image/jpeg").
		Return("https://cdn.example.com/side.jpg", nil)

	products := new(ProductRepoMock)
	products.On("FindByID", mock.Anything, int64(5)).Return(existing, nil)
	products.On("Update", mock.Anything, mock.Anything).Return(nil)
	uc := usecase.NewProductUsecase(products, images)

	updated, err := uc.Update(context.Background(), 5, usecase.UpdateProductInput{
		ExistingImages: []string{"https://cdn.example.com/front.jpg"},
		NewImages: []usecase.ImageUpload{
			{Content: strings.NewReader("img"), Filename: "side.jpg", ContentType: "image/jpeg"},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t,
		[]string{"https://cdn.example.com/front.jpg", "https://cdn.example.com/side.jpg"},
		[]string(updated.Images))
}

func TestProductUpdate_AppendOnlyKeepsCurrentImages(t *testing.T) {
	existing := model.Product{
		ID:       5,
		Name:     "Digital Thermometer",
		Price:    10,
		Images:   []string{"https://cdn.example.com/front.jpg"},
		Category: "devices",
	}

	images := new(ImageStorageMock)
	images.On("Upload", mock.Anything, mock.Anything, "side.jpg", "image/jpeg").
		Return("https://cdn.example.com/side.jpg", nil)

	products := new(ProductRepoMock)
	products.On("FindByID", mock.Anything, int64(5)).Return(existing, nil)
	products.On("Update", mock.Anything, mock.Anything).Return(nil)
	uc := usecase.NewProductUsecase(products, images)

	updated, err := uc.Update(context.Background(), 5, usecase.UpdateProductInput{
		NewImages: []usecase.ImageUpload{
			{Content: strings.NewReader("img"), Filename: "side.jpg", ContentType: "image/jpeg"},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t,
		[]string{"https://cdn.example.com/front.jpg", "https://cdn.example.com/side.jpg"},
		[]string(updated.Images))
}

func TestProductUpdate_InvalidPrice(t *testing.T) {
	products := new(ProductRepoMock)
	products.On("FindByID", mock.Anything, int64(5)).Return(model.Product{ID: 5, Price: 10}, nil)
	uc := usecase.NewProductUsecase(products, new(ImageStorageMock))

	_, err := uc.Update(context.Background(), 5, usecase.UpdateProductInput{Price: f64Ptr(-1)})

	assertErrStatus(t, err, 400)
	assertErrContains(t, err, "invalid price")
	products.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestProductUpdate_NotFound(t *testing.T) {
	products := new(ProductRepoMock)
	products.On("FindByID", mock.Anything, int64(99)).Return(model.Product{}, repo.ErrNotFound)
	uc := usecase.NewProductUsecase(products, new(ImageStorageMock))

	_, err := uc.Update(context.Background(), 99, usecase.UpdateProductInput{Name: strPtr("x")})

	assertErrStatus(t, err, 404)
}

func TestProductDelete(t *testing.T) {
	products := new(ProductRepoMock)
	products.On("Delete", mock.Anything, int64(5)).Return(nil)
	products.On("Delete", mock.Anything, int64(99)).Return(repo.ErrNotFound)
	uc := usecase.NewProductUsecase(products, new(ImageStorageMock))

	assert.NoError(t, uc.Delete(context.Background(), 5))

	err := uc.Delete(context.Background(), 99)
	assertErrStatus(t, err, 404)
	assertErrContains(t, err, "product not found")
}
