package memory

import (
	"sync"

	"github.com/apozdnyakova/weblarek/internal/domain"
)

// productRepositoryInMemory — простая in-memory реализация ProductRepository.
type productRepositoryInMemory struct {
	mu    sync.RWMutex
	order []string
	items map[string]domain.Product
}

// NewProductRepository возвращает in-memory каталог для локальной разработки и тестов.
func NewProductRepository() domain.ProductRepository {
	return &productRepositoryInMemory{
		items: make(map[string]domain.Product),
	}
}

// List возвращает товары в порядке загрузки каталога.
func (r *productRepositoryInMemory) List() ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Product, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.items[id])
	}
	return result, nil
}

// Get возвращает товар или ErrProductNotFound, если его нет.
func (r *productRepositoryInMemory) Get(id string) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return p, nil
}

// ReplaceAll заменяет каталог целиком, без инкрементального слияния.
func (r *productRepositoryInMemory) ReplaceAll(products []domain.Product) error {
	items := make(map[string]domain.Product, len(products))
	order := make([]string, 0, len(products))
	for _, p := range products {
		if _, dup := items[p.ID]; dup {
			continue
		}
		items[p.ID] = p
		order = append(order, p.ID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = items
	r.order = order
	return nil
}

var _ domain.ProductRepository = (*productRepositoryInMemory)(nil)
