package converter

import "time"

type ProductRedisModel struct {
	ID        int64     `json:"id"`
	Category  string    `json:"category"`
	Name      string    `json:"product_name"`
	Price     float64   `json:"price"`
	ImagePath string    `json:"image_path"`
	CreatedAt time.Time `json:"created"`
}
