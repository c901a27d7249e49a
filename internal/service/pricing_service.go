package service

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"maison/internal/domain"
	"maison/internal/repository"
)

var (
	ErrInvalidCoupon   = errors.New("invalid coupon")
	ErrCouponApplied   = errors.New("coupon already applied")
	ErrUnknownShipping = errors.New("unknown shipping method")
)

// DefaultCoupons известные коды купонов и их ставки
var DefaultCoupons = map[string]float64{
	"DISCOUNT10": 0.10,
}

// PricingService считает стоимость корзины: подытог, скидку, доставку, итог.
// Держит состояние сессии — применённый купон и выбранный способ доставки.
type PricingService struct {
	catalog repository.CatalogRepository
	coupons map[string]float64

	mu       sync.Mutex
	applied  *domain.Coupon
	shipping domain.ShippingMethod
}

func NewPricingService(catalog repository.CatalogRepository, coupons map[string]float64) *PricingService {
	if coupons == nil {
		coupons = DefaultCoupons
	}
	return &PricingService{
		catalog:  catalog,
		coupons:  coupons,
		shipping: domain.ShippingFree,
	}
}

// ApplyCoupon применяет код к корзине. Неизвестный код и повторное
// применение — явные ошибки, а не тихий no-op: повторный тот же код
// скидку не меняет, другой код при активном купоне отклоняется.
func (s *PricingService) ApplyCoupon(code string) (*domain.Coupon, error) {
	rate, ok := s.coupons[code]
	if !ok {
		return nil, ErrInvalidCoupon
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.applied != nil {
		return nil, ErrCouponApplied
	}
	s.applied = &domain.Coupon{Code: code, Rate: rate}
	cp := *s.applied
	return &cp, nil
}

// Coupon активный купон или nil
func (s *PricingService) Coupon() *domain.Coupon {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.applied == nil {
		return nil
	}
	cp := *s.applied
	return &cp
}

// SetShipping выбирает способ доставки из известного набора
func (s *PricingService) SetShipping(m domain.ShippingMethod) error {
	if _, ok := domain.ShippingRates[m]; !ok {
		return ErrUnknownShipping
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shipping = m
	return nil
}

// Shipping текущий способ доставки
func (s *PricingService) Shipping() domain.ShippingMethod {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shipping
}

// Reset сбрасывает купон и доставку; вызывается после оформления заказа
func (s *PricingService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applied = nil
	s.shipping = domain.ShippingFree
}

// Quote выводит стоимость корзины. Итог не бывает отрицательным.
func (s *PricingService) Quote(ctx context.Context, items []domain.CartItem) domain.Totals {
	var t domain.Totals
	for _, it := range items {
		t.Subtotal += s.effectivePrice(ctx, it) * float64(it.Quantity)
	}
	s.mu.Lock()
	if s.applied != nil {
		t.Discount = t.Subtotal * s.applied.Rate
	}
	t.Shipping = domain.ShippingRates[s.shipping]
	s.mu.Unlock()
	t.Total = t.Subtotal - t.Discount + t.Shipping
	if t.Total < 0 {
		t.Total = 0
	}
	return t
}

// Reconcile сверяет позиции с каталогом: цена и изображение берутся
// из актуальной карточки товара, когда она доступна
func (s *PricingService) Reconcile(ctx context.Context, items []domain.CartItem) []domain.CartItem {
	out := make([]domain.CartItem, len(items))
	for i, it := range items {
		if p := s.resolve(ctx, it.ID); p != nil {
			it.Price = p.Price
			it.Image = p.Image
		}
		out[i] = it
	}
	return out
}

// effectivePrice предпочитает актуальную цену каталога; если товар
// больше не резолвится, остаётся цена-снимок из корзины
func (s *PricingService) effectivePrice(ctx context.Context, item domain.CartItem) float64 {
	if p := s.resolve(ctx, item.ID); p != nil {
		return p.Price
	}
	return item.Price
}

func (s *PricingService) resolve(ctx context.Context, id string) *domain.Product {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil
	}
	p, err := s.catalog.GetByID(ctx, n)
	if err != nil {
		return nil
	}
	return p
}
