package service

import (
	"context"
	"sort"

	"maison/internal/domain"
	"maison/internal/repository"
)

// PageSize размер страницы выдачи каталога
const PageSize = 8

// markupRatio наценка для вычисления originalPrice, когда она не задана
const markupRatio = 1.2

// QueryParams параметры выборки каталога
type QueryParams struct {
	Category domain.Category
	Price    domain.PriceBucket
	Sort     domain.SortOrder
	Query    string
	Visible  int
}

// QueryResult страница отфильтрованной и отсортированной выдачи
type QueryResult struct {
	Items   []domain.Product `json:"items"`
	Total   int              `json:"total"`
	Visible int              `json:"visible"`
	HasMore bool             `json:"has_more"`
}

// CatalogService выборка, сортировка и пагинация каталога
type CatalogService struct {
	repo repository.CatalogRepository
}

func NewCatalogService(repo repository.CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

// Query применяет фильтры по И (категория, ценовой диапазон, поисковая
// строка), сортирует стабильно и отдаёт первые Visible позиций.
// Одинаковые параметры на неизменном каталоге дают одинаковую выдачу.
func (s *CatalogService) Query(ctx context.Context, p QueryParams) (*QueryResult, error) {
	list, err := s.repo.List(ctx, repository.ProductFilter{
		Query:    p.Query,
		Category: p.Category,
	})
	if err != nil {
		return nil, err
	}

	filtered := list[:0]
	for _, prod := range list {
		if matchesBucket(prod.Price, p.Price) {
			filtered = append(filtered, prod)
		}
	}

	sortProducts(filtered, p.Sort)
	for i := range filtered {
		if filtered[i].OriginalPrice == 0 {
			filtered[i].OriginalPrice = filtered[i].Price * markupRatio
		}
	}

	total := len(filtered)
	visible := p.Visible
	if visible <= 0 {
		visible = PageSize
	}
	if visible > total {
		visible = total
	}
	return &QueryResult{
		Items:   filtered[:visible],
		Total:   total,
		Visible: visible,
		HasMore: visible < total,
	}, nil
}

// NextVisible курсор "показать ещё": плюс страница, не дальше конца выдачи
func NextVisible(visible, total int) int {
	v := visible + PageSize
	if v > total {
		v = total
	}
	return v
}

// Search контракт поиска: подстрока в имени или описании И ценовые границы
func (s *CatalogService) Search(ctx context.Context, q string, minPrice, maxPrice *float64) ([]domain.Product, error) {
	return s.repo.List(ctx, repository.ProductFilter{
		Query:    q,
		MinPrice: minPrice,
		MaxPrice: maxPrice,
	})
}

// GetByID товар по идентификатору
func (s *CatalogService) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

// GetBySlug карточка товара
func (s *CatalogService) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	if slug == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.GetBySlug(ctx, slug)
}

// NewArrivals последние поступления: новейшие товары каталога
func (s *CatalogService) NewArrivals(ctx context.Context, limit int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = 5
	}
	list, err := s.repo.List(ctx, repository.ProductFilter{})
	if err != nil {
		return nil, err
	}
	sortProducts(list, domain.SortNewest)
	if limit > len(list) {
		limit = len(list)
	}
	return list[:limit], nil
}

func matchesBucket(price float64, b domain.PriceBucket) bool {
	switch b {
	case domain.PriceUnder50:
		return price < 50
	case domain.Price50to150:
		return price >= 50 && price <= 150
	case domain.PriceOver150:
		return price > 150
	default:
		return true
	}
}

// sortProducts сортирует стабильно: равные элементы остаются
// в порядке каталога. Рейтинг детерминирован (Product.Rating),
// поэтому recommended-выдача воспроизводима.
func sortProducts(list []domain.Product, order domain.SortOrder) {
	sort.SliceStable(list, func(i, j int) bool {
		switch order {
		case domain.SortNewest:
			return list[i].ID > list[j].ID
		case domain.SortPriceLow:
			return list[i].Price < list[j].Price
		case domain.SortPriceHigh:
			return list[i].Price > list[j].Price
		default:
			return list[i].Rating() > list[j].Rating()
		}
	})
}
