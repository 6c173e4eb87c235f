package cart

import (
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/apozdnyakova/weblarek/internal/domain"
	"github.com/apozdnyakova/weblarek/internal/events"
)

// Store хранит строки корзины и черновик заказа, собираемый по шагам оформления.
//
// Инварианты: на один товар — не больше одной строки; порядок строк — порядок
// добавления; сумма всегда пересчитывается по текущим строкам, не кэшируется.
type Store struct {
	mu     sync.RWMutex
	items  []domain.Product
	index  map[string]struct{}
	draft  *domain.OrderDraft
	bus    *events.Bus
	logger *log.Entry
}

// NewStore создаёт пустую корзину, привязанную к шине событий.
func NewStore(bus *events.Bus, logger *log.Entry) *Store {
	if logger == nil {
		logger = log.New().WithField("component", "cart")
	}
	return &Store{
		index:  make(map[string]struct{}),
		bus:    bus,
		logger: logger,
	}
}

// AddItem добавляет товар в корзину. Повторное добавление того же товара
// возвращает ErrDuplicateItem и не меняет состояние: строки не сливаются
// и не дублируются.
func (s *Store) AddItem(p domain.Product) error {
	s.mu.Lock()
	if _, exists := s.index[p.ID]; exists {
		s.mu.Unlock()
		return domain.ErrDuplicateItem
	}
	s.items = append(s.items, p)
	s.index[p.ID] = struct{}{}
	s.mu.Unlock()

	s.logger.WithField("product_id", p.ID).Debug("item added to cart")
	s.bus.Publish(events.EventCartUpdated, nil)
	return nil
}

// RemoveItem удаляет строку корзины. Отсутствие товара — no-op, не ошибка.
func (s *Store) RemoveItem(id string) {
	s.mu.Lock()
	if _, exists := s.index[id]; !exists {
		s.mu.Unlock()
		return
	}
	for i, item := range s.items {
		if item.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	delete(s.index, id)
	s.mu.Unlock()

	s.logger.WithField("product_id", id).Debug("item removed from cart")
	s.bus.Publish(events.EventCartUpdated, nil)
}

// Clear опустошает корзину и сбрасывает черновик заказа.
func (s *Store) Clear() {
	s.mu.Lock()
	s.items = nil
	s.index = make(map[string]struct{})
	s.draft = nil
	s.mu.Unlock()

	s.logger.Debug("cart cleared")
	s.bus.Publish(events.EventCartUpdated, nil)
}

// Items возвращает строки корзины в порядке добавления.
func (s *Store) Items() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Product, len(s.items))
	copy(out, s.items)
	return out
}

// Len возвращает число строк корзины.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// HasItem сообщает, лежит ли товар в корзине. Используется карточкой товара
// для переключения кнопки «купить/убрать».
func (s *Store) HasItem(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.index[id]
	return ok
}

// Total возвращает сумму цен строк корзины; отсутствующая цена считается нулём.
func (s *Store) Total() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total int64
	for _, item := range s.items {
		total += item.PriceValue()
	}
	return total
}

// SetOrderDetails фиксирует способ оплаты и адрес из первого шага оформления.
func (s *Store) SetOrderDetails(payment domain.PaymentMethod, address string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = &domain.OrderDraft{Payment: payment, Address: address}
}

// OrderDetails возвращает черновик заказа или ErrOrderDraftNotSet, если первый
// шаг оформления ещё не завершён. Вызов до первого шага — нарушение контракта
// потока оформления.
func (s *Store) OrderDetails() (domain.OrderDraft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.draft == nil {
		return domain.OrderDraft{}, domain.ErrOrderDraftNotSet
	}
	return *s.draft, nil
}
