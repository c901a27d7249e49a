package repository

import (
	"context"
	"errors"
	"strings"

	"maison/internal/domain"
)

// ErrNotFound возвращается, когда сущность не найдена
var ErrNotFound = errors.New("not found")

// ProductFilter параметры фильтрации каталога. Все предикаты
// объединяются по И: подстрока ищется в имени или описании,
// ценовые границы включительные.
type ProductFilter struct {
	Query    string
	Category domain.Category
	MinPrice *float64
	MaxPrice *float64
}

// CatalogRepository интерфейс каталога товаров (только чтение)
type CatalogRepository interface {
	List(ctx context.Context, f ProductFilter) ([]domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
}

// CartRepository хранит корзину между сессиями: id товара -> позиция.
// Load вызывается при инициализации CartService, Save — после каждой мутации.
type CartRepository interface {
	Load(ctx context.Context) (map[string]domain.CartItem, error)
	Save(ctx context.Context, items map[string]domain.CartItem) error
}

// helper: case-insensitive contains
func containsIgnoreCase(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func matchesFilter(p domain.Product, f ProductFilter) bool {
	if f.Category != "" && f.Category != domain.CategoryAll && p.Category != f.Category {
		return false
	}
	if f.Query != "" && !containsIgnoreCase(p.Name, f.Query) && !containsIgnoreCase(p.Description, f.Query) {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	return true
}
