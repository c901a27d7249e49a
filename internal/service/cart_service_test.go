package service

import (
	"context"
	"testing"

	"maison/internal/domain"
	"maison/internal/repository"
)

func setupCart(t *testing.T) *CartService {
	t.Helper()
	s, err := NewCartService(context.Background(), repository.NewMemoryCart())
	if err != nil {
		t.Fatalf("new cart: %v", err)
	}
	return s
}

func sofa() domain.CartItem {
	return domain.CartItem{ID: "1", Name: "Sofa", Price: 199, Image: "/sofa.jpg"}
}

func lamp() domain.CartItem {
	return domain.CartItem{ID: "2", Name: "Lamp", Price: 24.99, Image: "/lamp.jpg"}
}

func TestCartService_AddIncrementsQuantity(t *testing.T) {
	ctx := context.Background()
	s := setupCart(t)

	for i := 0; i < 3; i++ {
		if err := s.AddItem(ctx, sofa()); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	items := s.Items()
	if len(items) != 1 {
		t.Fatalf("expected single entry, got %d", len(items))
	}
	if items[0].Quantity != 3 {
		t.Fatalf("quantity expected 3, got %d", items[0].Quantity)
	}
}

func TestCartService_FirstSeenSnapshotRetained(t *testing.T) {
	ctx := context.Background()
	s := setupCart(t)

	if err := s.AddItem(ctx, sofa()); err != nil {
		t.Fatal(err)
	}
	// same id with different price/name must not refresh the snapshot
	changed := sofa()
	changed.Name = "Sofa v2"
	changed.Price = 999
	if err := s.AddItem(ctx, changed); err != nil {
		t.Fatal(err)
	}

	items := s.Items()
	if items[0].Name != "Sofa" || items[0].Price != 199 {
		t.Fatalf("snapshot refreshed: %+v", items[0])
	}
	if items[0].Quantity != 2 {
		t.Fatalf("quantity expected 2, got %d", items[0].Quantity)
	}
}

func TestCartService_UpdateQuantity(t *testing.T) {
	ctx := context.Background()
	s := setupCart(t)
	if err := s.AddItem(ctx, sofa()); err != nil {
		t.Fatal(err)
	}

	if err := s.UpdateQuantity(ctx, "1", 5); err != nil {
		t.Fatal(err)
	}
	if got := s.Items()[0].Quantity; got != 5 {
		t.Fatalf("quantity expected 5, got %d", got)
	}

	// zero and below remove the entry
	if err := s.UpdateQuantity(ctx, "1", 0); err != nil {
		t.Fatal(err)
	}
	if len(s.Items()) != 0 {
		t.Fatalf("expected empty cart")
	}

	// absent id is a no-op
	if err := s.UpdateQuantity(ctx, "404", 2); err != nil {
		t.Fatal(err)
	}
	if len(s.Items()) != 0 {
		t.Fatalf("no-op created an item")
	}
}

func TestCartService_RemoveAndClear(t *testing.T) {
	ctx := context.Background()
	s := setupCart(t)
	_ = s.AddItem(ctx, sofa())
	_ = s.AddItem(ctx, lamp())

	if err := s.RemoveItem(ctx, "1"); err != nil {
		t.Fatal(err)
	}
	if items := s.Items(); len(items) != 1 || items[0].ID != "2" {
		t.Fatalf("remove: %v", items)
	}

	// removing an absent id is not an error
	if err := s.RemoveItem(ctx, "missing"); err != nil {
		t.Fatal(err)
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	if len(s.Items()) != 0 {
		t.Fatalf("clear left items")
	}
}

func TestCartService_InsertionOrderPreserved(t *testing.T) {
	ctx := context.Background()
	s := setupCart(t)
	_ = s.AddItem(ctx, lamp())
	_ = s.AddItem(ctx, sofa())
	_ = s.AddItem(ctx, lamp())

	items := s.Items()
	if len(items) != 2 || items[0].ID != "2" || items[1].ID != "1" {
		t.Fatalf("order broken: %v", items)
	}
}

func TestCartService_PersistsEveryMutation(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryCart()
	s, err := NewCartService(ctx, repo)
	if err != nil {
		t.Fatal(err)
	}
	_ = s.AddItem(ctx, sofa())
	_ = s.AddItem(ctx, lamp())
	_ = s.UpdateQuantity(ctx, "1", 4)

	// a second service over the same repo sees the persisted layout
	restored, err := NewCartService(ctx, repo)
	if err != nil {
		t.Fatal(err)
	}
	items := restored.Items()
	if len(items) != 2 {
		t.Fatalf("restore: %v", items)
	}
	byID := map[string]domain.CartItem{}
	for _, it := range items {
		byID[it.ID] = it
	}
	if byID["1"].Quantity != 4 || byID["2"].Quantity != 1 {
		t.Fatalf("restored quantities: %v", byID)
	}
}
