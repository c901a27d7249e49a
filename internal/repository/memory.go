package repository

import (
	"context"
	"maps"
	"sync"

	"maison/internal/domain"
)

// MemoryCatalog неизменяемый снимок каталога в памяти.
// Порядок products — исходный порядок каталога, он важен
// для стабильной сортировки выдачи.
type MemoryCatalog struct {
	products []domain.Product
	byID     map[int64]int
	bySlug   map[string]int
}

func NewMemoryCatalog(products []domain.Product) *MemoryCatalog {
	c := &MemoryCatalog{
		products: make([]domain.Product, len(products)),
		byID:     make(map[int64]int, len(products)),
		bySlug:   make(map[string]int, len(products)),
	}
	copy(c.products, products)
	for i, p := range c.products {
		c.byID[p.ID] = i
		c.bySlug[p.Slug] = i
	}
	return c
}

var _ CatalogRepository = (*MemoryCatalog)(nil)

// List возвращает товары, прошедшие фильтр, в порядке каталога
func (c *MemoryCatalog) List(ctx context.Context, f ProductFilter) ([]domain.Product, error) {
	out := make([]domain.Product, 0)
	for _, p := range c.products {
		if matchesFilter(p, f) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (c *MemoryCatalog) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	// return copy
	cp := c.products[i]
	return &cp, nil
}

func (c *MemoryCatalog) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	i, ok := c.bySlug[slug]
	if !ok {
		return nil, ErrNotFound
	}
	cp := c.products[i]
	return &cp, nil
}

// MemoryCart хранилище корзины в памяти; живёт в пределах процесса
type MemoryCart struct {
	mu    sync.RWMutex
	items map[string]domain.CartItem
}

func NewMemoryCart() *MemoryCart {
	return &MemoryCart{items: make(map[string]domain.CartItem)}
}

var _ CartRepository = (*MemoryCart)(nil)

func (m *MemoryCart) Load(ctx context.Context) (map[string]domain.CartItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]domain.CartItem, len(m.items))
	maps.Copy(out, m.items)
	return out, nil
}

func (m *MemoryCart) Save(ctx context.Context, items map[string]domain.CartItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = make(map[string]domain.CartItem, len(items))
	maps.Copy(m.items, items)
	return nil
}
