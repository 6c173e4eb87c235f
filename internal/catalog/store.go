package catalog

import (
	"context"
	"sync"
	"sync/atomic"

	log "github.com/sirupsen/logrus"

	"github.com/apozdnyakova/weblarek/internal/domain"
	"github.com/apozdnyakova/weblarek/internal/events"
)

// Store хранит загруженный каталог товаров на время сессии страницы.
// Каталог заменяется только целиком; точечных мутаций нет.
type Store struct {
	mu     sync.RWMutex
	items  []domain.Product
	byID   map[string]domain.Product
	client domain.Client
	bus    *events.Bus
	logger *log.Entry

	// seq — монотонный номер запроса каталога. Применяется только результат
	// последнего запроса: ответ перегнанного повторным кликом запроса отбрасывается.
	seq atomic.Uint64
}

// NewStore создаёт пустой каталог, привязанный к шине и API-клиенту.
func NewStore(client domain.Client, bus *events.Bus, logger *log.Entry) *Store {
	if logger == nil {
		logger = log.New().WithField("component", "catalog")
	}
	return &Store{
		byID:   make(map[string]domain.Product),
		client: client,
		bus:    bus,
		logger: logger,
	}
}

// Refresh загружает каталог с сервера и заменяет текущий. Устаревший ответ
// (начатый раньше более свежего запроса) не применяется.
func (s *Store) Refresh(ctx context.Context) error {
	seq := s.seq.Add(1)

	list, err := s.client.FetchCatalog(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("catalog fetch failed")
		return err
	}

	if s.seq.Load() != seq {
		s.logger.WithField("seq", seq).Debug("stale catalog response dropped")
		return nil
	}

	s.SetProducts(list.Items)
	return nil
}

// SetProducts заменяет каталог целиком и публикует productsLoaded.
func (s *Store) SetProducts(products []domain.Product) {
	items := make([]domain.Product, len(products))
	copy(items, products)

	byID := make(map[string]domain.Product, len(items))
	for _, p := range items {
		byID[p.ID] = p
	}

	s.mu.Lock()
	s.items = items
	s.byID = byID
	s.mu.Unlock()

	s.logger.WithField("count", len(items)).Info("catalog replaced")
	s.bus.Publish(events.EventProductsLoaded, items)
}

// GetByID возвращает товар или ErrProductNotFound.
func (s *Store) GetByID(id string) (domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.byID[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return p, nil
}

// GetAll возвращает копию текущего каталога в порядке загрузки.
func (s *Store) GetAll() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Product, len(s.items))
	copy(out, s.items)
	return out
}

// Len возвращает размер каталога.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
