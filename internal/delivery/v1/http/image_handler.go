package http

import (
	"io"
	"net/http"
	"strconv"

	"github.com/DRSN-tech/catalog-admin/internal/usecase"
	"github.com/DRSN-tech/catalog-admin/pkg/e"
	"github.com/DRSN-tech/catalog-admin/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

// UploadImageResponse — ответ загрузки: путь для поля image_path товара.
type UploadImageResponse struct {
	Key       string `json:"key"`
	ImagePath string `json:"image_path"`
}

type ImageHandler struct {
	imageUC      usecase.ImageUC
	logger       logger.Logger
	maxImageSize int64
}

func NewImageHandler(imageUC usecase.ImageUC, logger logger.Logger, maxImageSize int64) *ImageHandler {
	return &ImageHandler{imageUC: imageUC, logger: logger, maxImageSize: maxImageSize}
}

// uploadImage
//
//	@Summary		Загрузка изображения товара
//	@Description	Сохраняет изображение в хранилище и возвращает путь для поля image_path
//	@Tags			images
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			image	formData	file				true	"Изображение (jpeg, png, webp, gif)"
//	@Success		201		{object}	UploadImageResponse	"Изображение сохранено"
//	@Failure		400		{object}	ErrorResponse		"Ошибка валидации"
//	@Failure		413		{object}	ErrorResponse		"Файл слишком большой"
//	@Failure		415		{object}	ErrorResponse		"Неподдерживаемый тип"
//	@Router			/api/v1/images [post]
func (h *ImageHandler) uploadImage(w http.ResponseWriter, r *http.Request) {
	const maxMemory = 8 << 20

	// Запас на заголовки multipart
	r.Body = http.MaxBytesReader(w, r.Body, h.maxImageSize+1<<20)

	if err := ensureMultipartForm(r, maxMemory); err != nil {
		h.logger.Warnf("%d upload image: %v", http.StatusBadRequest, err)
		WriteError(w, err)
		return
	}

	_, fh, err := r.FormFile("image")
	if err != nil {
		h.logger.Warnf("upload image: missing form file: %v", err)
		WriteError(w, e.Wrap(whereami.WhereAmI(), e.ErrNoImages))
		return
	}

	data, mimeType, err := readImage(fh, h.maxImageSize)
	if err != nil {
		h.logger.Warnf("upload image %s: %v", fh.Filename, err)
		WriteError(w, err)
		return
	}

	res, err := h.imageUC.Upload(r.Context(), usecase.NewUploadImageReq(data, mimeType, fh.Filename))
	if err != nil {
		h.logError("upload image", err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, UploadImageResponse{Key: res.Key, ImagePath: res.ImagePath})
}

// getImage
//
//	@Summary		Получение изображения товара
//	@Tags			images
//	@Produce		octet-stream
//	@Param			key	path		string			true	"Ключ изображения"
//	@Success		200	{file}		binary			"Содержимое изображения"
//	@Failure		404	{object}	ErrorResponse	"Изображение не найдено"
//	@Router			/images/{key} [get]
func (h *ImageHandler) getImage(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	obj, err := h.imageUC.Get(r.Context(), key)
	if err != nil {
		h.logError("get image "+key, err)
		WriteError(w, err)
		return
	}
	defer obj.Body.Close()

	w.Header().Set("Content-Type", obj.ContentType)
	w.Header().Set("Cache-Control", "public, max-age=86400, immutable")
	if obj.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(obj.Size, 10))
	}
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, obj.Body); err != nil {
		h.logger.Warnf("stream image %s: %v", key, err)
	}
}

// deleteImage
//
//	@Summary		Удаление изображения товара
//	@Tags			images
//	@Param			key	path	string	true	"Ключ изображения"
//	@Success		204
//	@Failure		404	{object}	ErrorResponse	"Изображение не найдено"
//	@Router			/api/v1/images/{key} [delete]
func (h *ImageHandler) deleteImage(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	if err := h.imageUC.Delete(r.Context(), key); err != nil {
		h.logError("delete image "+key, err)
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ImageHandler) logError(action string, err error) {
	if code, _ := ToHTTPResponse(err); code >= http.StatusInternalServerError {
		h.logger.Errorf(err, "%s", action)
		return
	}
	h.logger.Warnf("%s: %v", action, err)
}
