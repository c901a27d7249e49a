package service

import (
	"context"
	"errors"
	"slices"
	"sort"
	"sync"

	"maison/internal/domain"
	"maison/internal/repository"
)

var ErrInvalidInput = errors.New("invalid input")

// CartService управляет корзиной покупателя. Позиции ключуются id товара,
// порядок добавления сохраняется для отображения. Мутации сериализуются
// и применяются в порядке поступления; после каждой корзина сохраняется.
type CartService struct {
	repo repository.CartRepository

	mu    sync.Mutex
	items map[string]domain.CartItem
	order []string
}

// NewCartService поднимает корзину из сохранённого состояния.
// Сохранённая раскладка не несёт порядка добавления, поэтому
// восстановленные позиции упорядочиваются по id.
func NewCartService(ctx context.Context, repo repository.CartRepository) (*CartService, error) {
	items, err := repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	order := make([]string, 0, len(items))
	for id := range items {
		order = append(order, id)
	}
	sort.Strings(order)
	return &CartService{repo: repo, items: items, order: order}, nil
}

// AddItem добавляет товар в корзину. Повторное добавление того же id
// увеличивает количество на 1; имя, цена и изображение не обновляются —
// остаётся снимок первого добавления.
func (s *CartService) AddItem(ctx context.Context, item domain.CartItem) error {
	if item.ID == "" {
		return ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.items[item.ID]; ok {
		existing.Quantity++
		s.items[item.ID] = existing
	} else {
		item.Quantity = 1
		s.items[item.ID] = item
		s.order = append(s.order, item.ID)
	}
	return s.persistLocked(ctx)
}

// RemoveItem удаляет позицию; отсутствующий id — не ошибка
func (s *CartService) RemoveItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return nil
	}
	s.removeLocked(id)
	return s.persistLocked(ctx)
}

// UpdateQuantity выставляет количество ровно в quantity.
// Количество <= 0 эквивалентно удалению позиции.
func (s *CartService) UpdateQuantity(ctx context.Context, id string, quantity int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.items[id]
	if !ok {
		return nil
	}
	if quantity <= 0 {
		s.removeLocked(id)
	} else {
		existing.Quantity = quantity
		s.items[id] = existing
	}
	return s.persistLocked(ctx)
}

// Clear опустошает корзину целиком
func (s *CartService) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[string]domain.CartItem)
	s.order = s.order[:0]
	return s.persistLocked(ctx)
}

// Items снимок позиций в порядке добавления
func (s *CartService) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CartItem, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id])
	}
	return out
}

func (s *CartService) removeLocked(id string) {
	delete(s.items, id)
	if i := slices.Index(s.order, id); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
}

func (s *CartService) persistLocked(ctx context.Context) error {
	snapshot := make(map[string]domain.CartItem, len(s.items))
	for id, it := range s.items {
		snapshot[id] = it
	}
	return s.repo.Save(ctx, snapshot)
}
