package modal

import (
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/apozdnyakova/weblarek/internal/events"
)

// Типы содержимого модального окна.
const (
	ContentProduct  = "product"
	ContentCart     = "cart"
	ContentCheckout = "checkout"
	ContentContacts = "contacts"
	ContentSuccess  = "success"
)

// Surface — узкий интерфейс страницы, который нужен модальному окну:
// показать содержимое и заблокировать прокрутку на время показа.
type Surface interface {
	Show(content string)
	ScrollLock(locked bool)
}

// Presenter владеет состоянием единственного модального окна витрины:
// открыто/закрыто и текущее содержимое. Любой компонент заполняет окно
// через SetContent и закрывает его публикацией closeModal.
type Presenter struct {
	mu          sync.Mutex
	open        bool
	content     string
	contentType string

	surface Surface
	bus     *events.Bus
	logger  *log.Entry
	sub     *events.Subscription
}

// NewPresenter создаёт презентер и подписывает его на запросы закрытия с шины.
func NewPresenter(surface Surface, bus *events.Bus, logger *log.Entry) (*Presenter, error) {
	if logger == nil {
		logger = log.New().WithField("component", "modal")
	}
	p := &Presenter{
		surface: surface,
		bus:     bus,
		logger:  logger,
	}

	sub, err := bus.Subscribe(events.EventCloseModal, func(any) { p.Close() })
	if err != nil {
		return nil, err
	}
	p.sub = sub
	return p, nil
}

// SetContent атомарно заменяет содержимое окна; промежуточного пустого
// состояния снаружи не видно. Если окно открыто, новое содержимое сразу
// показывается на поверхности.
func (p *Presenter) SetContent(content, contentType string) {
	p.mu.Lock()
	p.content = content
	if contentType != "" {
		p.contentType = contentType
	}
	show := p.open
	p.mu.Unlock()

	if show {
		p.surface.Show(content)
	}
}

// Open открывает окно и блокирует прокрутку страницы.
func (p *Presenter) Open() {
	p.mu.Lock()
	if p.open {
		p.mu.Unlock()
		return
	}
	p.open = true
	content := p.content
	p.mu.Unlock()

	p.surface.ScrollLock(true)
	if content != "" {
		p.surface.Show(content)
	}
	p.logger.Debug("modal opened")
}

// Close закрывает окно, сбрасывает тип содержимого, снимает блокировку
// прокрутки и публикует modalClosed. Закрытие уже закрытого окна — no-op.
func (p *Presenter) Close() {
	p.mu.Lock()
	if !p.open {
		p.mu.Unlock()
		return
	}
	p.open = false
	p.content = ""
	p.contentType = ""
	p.mu.Unlock()

	p.surface.ScrollLock(false)
	p.logger.Debug("modal closed")
	p.bus.Publish(events.EventModalClosed, nil)
}

// IsOpen сообщает, открыто ли окно.
func (p *Presenter) IsOpen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.open
}

// ContentType возвращает тип текущего содержимого (пустая строка, если окно закрыто).
func (p *Presenter) ContentType() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.contentType
}
