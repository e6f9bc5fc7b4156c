package infrastructure

import "github.com/DRSN-tech/catalog-admin/pkg/e"

// GetExtensionFromMIME возвращает расширение файла по MIME-типу изображения.
// Поддерживает jpeg, png, webp, gif. Для остальных — e.ErrUnsupportedMediaType.
func GetExtensionFromMIME(mime string) (string, error) {
	switch mime {
	case "image/jpeg", "image/jpg":
		return "jpg", nil
	case "image/png":
		return "png", nil
	case "image/webp":
		return "webp", nil
	case "image/gif":
		return "gif", nil
	default:
		return "", e.ErrUnsupportedMediaType
	}
}

// ImagePath возвращает путь, по которому HTTP-шлюз отдаёт изображение с ключом key.
func ImagePath(key string) string {
	return "/images/" + key
}
