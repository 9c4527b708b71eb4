package domain

// Product represents a product in the catalog. Price is stored in minor
// currency units so totals never need fractional rounding.
type Product struct {
	ID          string `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Price       int64  `json:"price" db:"price"`
	Description string `json:"description" db:"description"`
	SKU         string `json:"sku" db:"sku"`
	ImageURL    string `json:"image_url" db:"image_url"`
	Stock       int    `json:"stock" db:"stock"`
}
