package events

import (
	"regexp"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Handler — обработчик события шины.
type Handler func(payload any)

// Subscription — подписка на события; возвращается из Subscribe и передаётся
// в Unsubscribe. Функции в Go несравнимы, поэтому отписка идёт по дескриптору,
// а не по паре (паттерн, обработчик).
type Subscription struct {
	id      uint64
	pattern string
	re      *regexp.Regexp
	handler Handler
}

// Pattern возвращает исходный паттерн подписки.
func (s *Subscription) Pattern() string {
	return s.pattern
}

// matches проверяет, попадает ли имя события под паттерн подписки.
func (s *Subscription) matches(event string) bool {
	if s.pattern == Wildcard {
		return true
	}
	if s.re != nil {
		return s.re.MatchString(event)
	}
	return s.pattern == event
}

// Wildcard подписывает обработчик на все события шины.
const Wildcard = "*"

// метасимволы, по которым паттерн распознаётся как регулярное выражение.
const regexpMeta = `^$.*+?()[]{}|\`

// Bus — синхронная шина «издатель-подписчик». Все компоненты витрины общаются
// только через неё, без прямых вызовов друг друга.
//
// Доставка синхронная, в порядке подписки. На каждый Publish снимается снимок
// списка подписчиков, поэтому подписка или отписка из обработчика никогда не
// влияет на текущую рассылку.
type Bus struct {
	mu     sync.RWMutex
	subs   []*Subscription
	nextID uint64
	logger *log.Entry
}

// NewBus создаёт пустую шину событий.
func NewBus() *Bus {
	return &Bus{
		logger: log.WithField("component", "events"),
	}
}

// Subscribe регистрирует обработчик для паттерна события. Паттерн может быть
// точным именем, Wildcard или регулярным выражением (распознаётся по
// метасимволам). Некорректное выражение возвращает ошибку компиляции.
func (b *Bus) Subscribe(pattern string, handler Handler) (*Subscription, error) {
	sub := &Subscription{pattern: pattern, handler: handler}

	if pattern != Wildcard && strings.ContainsAny(pattern, regexpMeta) {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, err
		}
		sub.re = re
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	sub.id = b.nextID
	b.subs = append(b.subs, sub)
	return sub, nil
}

// Unsubscribe удаляет подписку. Повторная или чужая отписка — no-op.
func (b *Bus) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.id == sub.id {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}

// Reset снимает все подписки разом.
func (b *Bus) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = nil
}

// Publish рассылает событие всем подписчикам, чьи паттерны совпали с именем.
// Событие без подписчиков — не ошибка. Паника обработчика не перехватывается:
// её распространение — ответственность вызывающей стороны.
func (b *Bus) Publish(event string, payload any) {
	b.mu.RLock()
	snapshot := make([]*Subscription, len(b.subs))
	copy(snapshot, b.subs)
	b.mu.RUnlock()

	delivered := 0
	for _, sub := range snapshot {
		if sub.matches(event) {
			sub.handler(payload)
			delivered++
		}
	}

	b.logger.WithFields(log.Fields{
		"event":     event,
		"delivered": delivered,
	}).Trace("event published")
}

// SubscriberCount возвращает текущее число подписок (для тестов и диагностики).
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
