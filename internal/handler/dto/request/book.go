package request

type ListBookRequest struct {
	Title      string   `json:"title" binding:"required"`
	Author     string   `json:"author" binding:"required"`
	Condition  string   `json:"condition" binding:"required"`
	Categories []string `json:"categories"`
	PriceCents int64    `json:"price_cents" binding:"min=0"`
}
