package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"maison/internal/domain"
)

// NewJSONCatalog загружает снимок каталога из JSON-файла.
// Каталог — внешний источник, после загрузки данные не меняются.
func NewJSONCatalog(path string) (*MemoryCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return NewMemoryCatalog(products), nil
}

// FileCartStore хранит корзину в JSON-файле: id товара -> позиция.
// Файл перезаписывается целиком после каждой мутации.
type FileCartStore struct {
	mu   sync.Mutex
	path string
}

func NewFileCartStore(path string) *FileCartStore {
	return &FileCartStore{path: path}
}

var _ CartRepository = (*FileCartStore)(nil)

// Load возвращает пустую корзину, если файла ещё нет
func (s *FileCartStore) Load(ctx context.Context) (map[string]domain.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]domain.CartItem), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cart: %w", err)
	}
	items := make(map[string]domain.CartItem)
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return items, nil
}

// Save пишет во временный файл и переименовывает, чтобы не оставить
// частично записанную корзину при сбое
func (s *FileCartStore) Save(ctx context.Context, items map[string]domain.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write cart: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace cart: %w", err)
	}
	return nil
}
