package domain

import "time"

// Category категория товара в каталоге
type Category string

const (
	CategoryAll       Category = "All"
	CategoryFurniture Category = "Furniture"
	CategoryLighting  Category = "Lighting"
	CategoryDecor     Category = "Decor"
	CategoryTextiles  Category = "Textiles"
)

// PriceBucket ценовой диапазон для фильтрации
type PriceBucket string

const (
	PriceAll     PriceBucket = "all"
	PriceUnder50 PriceBucket = "under50"
	Price50to150 PriceBucket = "50to150"
	PriceOver150 PriceBucket = "over150"
)

// SortOrder порядок сортировки выдачи каталога
type SortOrder string

const (
	SortRecommended SortOrder = "recommended"
	SortNewest      SortOrder = "newest"
	SortPriceLow    SortOrder = "priceLow"
	SortPriceHigh   SortOrder = "priceHigh"
)

// Product товар каталога; после загрузки не меняется
type Product struct {
	ID            int64    `json:"id"`
	Slug          string   `json:"slug"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	OriginalPrice float64  `json:"originalPrice,omitempty"`
	Description   string   `json:"description"`
	Image         string   `json:"image"`
	Category      Category `json:"category"`
	Tag           string   `json:"tag,omitempty"`
	Colors        []string `json:"colors,omitempty"`
}

// Rating детерминированный рейтинг товара в диапазоне 3..5
func (p Product) Rating() int {
	return int(3 + p.ID%3)
}

// CartItem позиция корзины; Price — снимок цены на момент первого добавления
type CartItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Quantity int64   `json:"quantity"`
}

// ShippingMethod способ доставки
type ShippingMethod string

const (
	ShippingFree    ShippingMethod = "free"
	ShippingExpress ShippingMethod = "express"
	ShippingPickup  ShippingMethod = "pickup"
)

// ShippingRates стоимость доставки по способам
var ShippingRates = map[ShippingMethod]float64{
	ShippingFree:    0,
	ShippingExpress: 15,
	ShippingPickup:  12,
}

// Coupon код купона и ставка скидки на подытог корзины
type Coupon struct {
	Code string  `json:"code"`
	Rate float64 `json:"rate"`
}

// Totals расчёт стоимости корзины
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Discount float64 `json:"discount"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

// Order заказ, формируется при оформлении корзины
type Order struct {
	ID        string         `json:"id"`
	Items     []CartItem     `json:"items"`
	Totals    Totals         `json:"totals"`
	Coupon    string         `json:"coupon,omitempty"`
	Shipping  ShippingMethod `json:"shipping"`
	CreatedAt time.Time      `json:"created_at"`
}
