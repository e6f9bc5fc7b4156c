package usecase

import (
	"context"
	"strings"

	"github.com/DRSN-tech/catalog-admin/pkg/e"
)

// ImageUseCase загружает и отдаёт изображения товаров.
type ImageUseCase struct {
	imagesInfra ImagesInfra
}

func NewImageUC(imagesInfra ImagesInfra) *ImageUseCase {
	return &ImageUseCase{imagesInfra: imagesInfra}
}

func (i *ImageUseCase) Upload(ctx context.Context, req *UploadImageReq) (*UploadImageRes, error) {
	const op = "ImageUseCase.Upload"

	if len(req.Data) == 0 {
		return nil, e.Wrap(op, e.ErrNoImages)
	}

	if !strings.HasPrefix(req.MimeType, "image/") {
		return nil, e.Wrap(op, e.ErrUnsupportedMediaType)
	}

	res, err := i.imagesInfra.UploadImage(ctx, req)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return res, nil
}

func (i *ImageUseCase) Get(ctx context.Context, key string) (*ImageObject, error) {
	const op = "ImageUseCase.Get"

	if !validKey(key) {
		return nil, e.Wrap(op, e.ErrImageNotFound)
	}

	obj, err := i.imagesInfra.GetImage(ctx, key)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return obj, nil
}

func (i *ImageUseCase) Delete(ctx context.Context, key string) error {
	const op = "ImageUseCase.Delete"

	if !validKey(key) {
		return e.Wrap(op, e.ErrImageNotFound)
	}

	if err := i.imagesInfra.DeleteImage(ctx, key); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// validKey отсекает пустые ключи и выход за пределы бакета.
func validKey(key string) bool {
	return strings.TrimSpace(key) != "" && !strings.Contains(key, "..") && !strings.Contains(key, "/")
}
