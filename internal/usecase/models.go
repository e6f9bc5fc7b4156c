package usecase

import (
	"io"
	"time"

	"github.com/DRSN-tech/catalog-admin/internal/domain"
)

// PRODUCT USECASE

// AddProductReq — запрос на добавление товара. Пустая категория означает категорию по умолчанию.
type AddProductReq struct {
	Category  string
	Name      string
	Price     float64
	ImagePath string
}

// IMAGES

// UploadImageReq — запрос на загрузку изображения товара.
type UploadImageReq struct {
	Data     []byte // байты изображения
	MimeType string // определённый по содержимому Content-Type
	Name     string // оригинальное имя файла (для логов и ключа)
}

// UploadImageRes — результат загрузки: ключ объекта и путь для поля image_path.
type UploadImageRes struct {
	Key       string
	ImagePath string
}

// ImageObject — изображение, читаемое из хранилища. Body закрывает вызывающий.
type ImageObject struct {
	Body        io.ReadCloser
	Size        int64
	ContentType string
}

// OUTBOX

type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
)

// OutboxEvent — запись transactional outbox с уже сериализованным событием.
type OutboxEvent struct {
	ID          int64
	EventID     string
	EventType   domain.ProductEventType
	ProductID   int64
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// WriteRawMessageReq — сообщение для записи в брокер как есть.
type WriteRawMessageReq struct {
	ProductID int64
	Payload   []byte
}

// MAPPERS

func NewAddProductReq(category string, name string, price float64, imagePath string) *AddProductReq {
	return &AddProductReq{
		Category:  category,
		Name:      name,
		Price:     price,
		ImagePath: imagePath,
	}
}

func NewUploadImageReq(data []byte, mimeType string, name string) *UploadImageReq {
	return &UploadImageReq{
		Data:     data,
		MimeType: mimeType,
		Name:     name,
	}
}

func NewUploadImageRes(key string, imagePath string) *UploadImageRes {
	return &UploadImageRes{
		Key:       key,
		ImagePath: imagePath,
	}
}

func NewOutboxEvent(eventID string, eventType domain.ProductEventType, productID int64, payload []byte) *OutboxEvent {
	return &OutboxEvent{
		EventID:   eventID,
		EventType: eventType,
		ProductID: productID,
		Payload:   payload,
		Status:    Pending,
		CreatedAt: time.Now().UTC(),
	}
}

func NewWriteRawMessageReq(productID int64, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		ProductID: productID,
		Payload:   payload,
	}
}
