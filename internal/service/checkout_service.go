package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"maison/internal/domain"
)

var ErrEmptyCart = errors.New("cart is empty")

// CheckoutService оформляет заказ из оценённой корзины
type CheckoutService struct {
	cart    *CartService
	pricing *PricingService
}

func NewCheckoutService(cart *CartService, pricing *PricingService) *CheckoutService {
	return &CheckoutService{cart: cart, pricing: pricing}
}

// FinalizeOrder формирует заказ и очищает корзину. Идентификатор и снимок
// заказа создаются до очистки: сбой между этими шагами не потеряет корзину
// без ссылки на заказ. Заказ возвращается и при ошибке сохранения очистки.
func (s *CheckoutService) FinalizeOrder(ctx context.Context) (*domain.Order, error) {
	items := s.cart.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	order := &domain.Order{
		ID:        uuid.NewString(),
		Items:     items,
		Totals:    s.pricing.Quote(ctx, items),
		Shipping:  s.pricing.Shipping(),
		CreatedAt: time.Now().UTC(),
	}
	if c := s.pricing.Coupon(); c != nil {
		order.Coupon = c.Code
	}
	if err := s.cart.Clear(ctx); err != nil {
		return order, err
	}
	s.pricing.Reset()
	return order, nil
}
