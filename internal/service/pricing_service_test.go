package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"maison/internal/domain"
	"maison/internal/repository"
)

func emptyCatalog() repository.CatalogRepository {
	return repository.NewMemoryCatalog(nil)
}

func TestPricingService_QuoteScenario(t *testing.T) {
	ctx := context.Background()
	s := NewPricingService(emptyCatalog(), nil)

	items := []domain.CartItem{
		{ID: "A", Name: "A", Price: 10, Quantity: 2},
		{ID: "B", Name: "B", Price: 5, Quantity: 1},
	}

	tot := s.Quote(ctx, items)
	require.Equal(t, 25.0, tot.Subtotal)
	require.Equal(t, 0.0, tot.Discount)
	require.Equal(t, 0.0, tot.Shipping)
	require.Equal(t, 25.0, tot.Total)

	_, err := s.ApplyCoupon("DISCOUNT10")
	require.NoError(t, err)

	tot = s.Quote(ctx, items)
	require.Equal(t, 2.5, tot.Discount)
	require.Equal(t, 22.5, tot.Total)
}

func TestPricingService_SubtotalCommutative(t *testing.T) {
	ctx := context.Background()
	s := NewPricingService(emptyCatalog(), nil)

	a := domain.CartItem{ID: "A", Price: 10, Quantity: 2}
	b := domain.CartItem{ID: "B", Price: 5, Quantity: 1}
	c := domain.CartItem{ID: "C", Price: 3.33, Quantity: 4}

	first := s.Quote(ctx, []domain.CartItem{a, b, c})
	second := s.Quote(ctx, []domain.CartItem{c, a, b})
	require.Equal(t, first.Subtotal, second.Subtotal)
}

func TestPricingService_CouponOutcomes(t *testing.T) {
	s := NewPricingService(emptyCatalog(), nil)

	_, err := s.ApplyCoupon("NOPE")
	require.ErrorIs(t, err, ErrInvalidCoupon)
	require.Nil(t, s.Coupon())

	c, err := s.ApplyCoupon("DISCOUNT10")
	require.NoError(t, err)
	require.Equal(t, 0.10, c.Rate)

	// applying again is rejected explicitly, discount unchanged
	_, err = s.ApplyCoupon("DISCOUNT10")
	require.ErrorIs(t, err, ErrCouponApplied)
	require.Equal(t, "DISCOUNT10", s.Coupon().Code)
}

func TestPricingService_Shipping(t *testing.T) {
	ctx := context.Background()
	s := NewPricingService(emptyCatalog(), nil)
	items := []domain.CartItem{{ID: "A", Price: 100, Quantity: 1}}

	require.Equal(t, domain.ShippingFree, s.Shipping())

	require.NoError(t, s.SetShipping(domain.ShippingExpress))
	require.Equal(t, 115.0, s.Quote(ctx, items).Total)

	require.NoError(t, s.SetShipping(domain.ShippingPickup))
	require.Equal(t, 112.0, s.Quote(ctx, items).Total)

	require.ErrorIs(t, s.SetShipping("drone"), ErrUnknownShipping)
	// selection unchanged after rejection
	require.Equal(t, domain.ShippingPickup, s.Shipping())
}

func TestPricingService_TotalNeverNegative(t *testing.T) {
	ctx := context.Background()
	s := NewPricingService(emptyCatalog(), map[string]float64{"ALL": 2.0})
	_, err := s.ApplyCoupon("ALL")
	require.NoError(t, err)

	tot := s.Quote(ctx, []domain.CartItem{{ID: "A", Price: 10, Quantity: 1}})
	require.GreaterOrEqual(t, tot.Total, 0.0)
	require.Equal(t, 0.0, tot.Total)
}

func TestPricingService_PrefersCurrentCatalogPrice(t *testing.T) {
	ctx := context.Background()
	catalog := repository.NewMemoryCatalog([]domain.Product{
		{ID: 1, Slug: "sofa", Name: "Sofa", Price: 150, Image: "/sofa-new.jpg"},
	})
	s := NewPricingService(catalog, nil)

	// cart snapshot holds a stale price; the live catalog price wins
	items := []domain.CartItem{{ID: "1", Price: 199, Quantity: 2}}
	require.Equal(t, 300.0, s.Quote(ctx, items).Subtotal)

	// product gone from the catalog: fall back to the snapshot
	items = []domain.CartItem{{ID: "77", Price: 20, Quantity: 1}}
	require.Equal(t, 20.0, s.Quote(ctx, items).Subtotal)
}

func TestPricingService_ReconcileRefreshesResolvable(t *testing.T) {
	ctx := context.Background()
	catalog := repository.NewMemoryCatalog([]domain.Product{
		{ID: 1, Slug: "sofa", Name: "Sofa", Price: 150, Image: "/sofa-new.jpg"},
	})
	s := NewPricingService(catalog, nil)

	items := s.Reconcile(ctx, []domain.CartItem{
		{ID: "1", Name: "Sofa", Price: 199, Image: "/sofa-old.jpg", Quantity: 1},
		{ID: "77", Name: "Gone", Price: 20, Image: "/gone.jpg", Quantity: 1},
	})
	require.Equal(t, 150.0, items[0].Price)
	require.Equal(t, "/sofa-new.jpg", items[0].Image)
	require.Equal(t, 20.0, items[1].Price)
	require.Equal(t, "/gone.jpg", items[1].Image)
}

func TestPricingService_Reset(t *testing.T) {
	s := NewPricingService(emptyCatalog(), nil)
	_, err := s.ApplyCoupon("DISCOUNT10")
	require.NoError(t, err)
	require.NoError(t, s.SetShipping(domain.ShippingExpress))

	s.Reset()
	require.Nil(t, s.Coupon())
	require.Equal(t, domain.ShippingFree, s.Shipping())
}
