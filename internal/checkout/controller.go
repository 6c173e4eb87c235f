package checkout

import (
	"context"
	"errors"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/apozdnyakova/weblarek/internal/api"
	"github.com/apozdnyakova/weblarek/internal/cart"
	"github.com/apozdnyakova/weblarek/internal/catalog"
	"github.com/apozdnyakova/weblarek/internal/domain"
	"github.com/apozdnyakova/weblarek/internal/events"
	"github.com/apozdnyakova/weblarek/internal/metrics"
	"github.com/apozdnyakova/weblarek/internal/modal"
	"github.com/apozdnyakova/weblarek/internal/view"
)

// Step описывает шаг линейного потока оформления.
type Step string

const (
	// StepBrowsing — пользователь просматривает каталог.
	StepBrowsing Step = "browsing"
	// StepProductDetail — открыта карточка товара.
	StepProductDetail Step = "product_detail"
	// StepCartOpen — открыта корзина.
	StepCartOpen Step = "cart_open"
	// StepOrderDetails — первый шаг оформления: оплата и адрес.
	StepOrderDetails Step = "order_details"
	// StepContacts — второй шаг оформления: email и телефон.
	StepContacts Step = "contacts"
	// StepSubmitting — заказ отправляется на сервер.
	StepSubmitting Step = "submitting"
	// StepSuccess — заказ подтверждён, корзина очищена.
	StepSuccess Step = "success"
)

// Controller ведёт пользователя по шагам оформления:
// каталог → карточка → корзина → оплата и адрес → контакты → отправка → успех.
// Все переходы запускаются событиями шины; при отказе сервера поток остаётся
// на шаге контактов, и пользователь может повторить отправку без потери данных.
type Controller struct {
	bus     *events.Bus
	catalog *catalog.Store
	cart    *cart.Store
	modal   *modal.Presenter
	views   *view.Set
	page    *view.Page
	client  domain.Client
	logger  *log.Entry
	metrics *metrics.CheckoutMetrics

	ctx context.Context

	mu   sync.Mutex
	step Step
	subs []*events.Subscription
}

// Deps — зависимости контроллера; все передаются явно.
type Deps struct {
	Bus     *events.Bus
	Catalog *catalog.Store
	Cart    *cart.Store
	Modal   *modal.Presenter
	Views   *view.Set
	Page    *view.Page
	Client  domain.Client
	Logger  *log.Entry
}

// NewController создаёт контроллер с метриками.
func NewController(deps Deps) *Controller {
	return newController(deps, metrics.NewCheckoutMetrics())
}

// NewControllerWithoutMetrics создаёт контроллер без метрик (для тестов).
func NewControllerWithoutMetrics(deps Deps) *Controller {
	return newController(deps, nil)
}

func newController(deps Deps, m *metrics.CheckoutMetrics) *Controller {
	logger := deps.Logger
	if logger == nil {
		logger = log.New().WithField("component", "checkout")
	}
	return &Controller{
		bus:     deps.Bus,
		catalog: deps.Catalog,
		cart:    deps.Cart,
		modal:   deps.Modal,
		views:   deps.Views,
		page:    deps.Page,
		client:  deps.Client,
		logger:  logger,
		metrics: m,
		step:    StepBrowsing,
	}
}

// Bind подписывает контроллер на события шины. Контекст используется для
// сетевых операций, запущенных из обработчиков.
func (c *Controller) Bind(ctx context.Context) error {
	c.ctx = ctx

	bindings := []struct {
		event   string
		handler events.Handler
	}{
		{events.EventProductSelected, c.asString(c.handleProductSelected)},
		{events.EventAddToCart, c.asProduct(c.handleAddToCart)},
		{events.EventRemoveFromCart, c.asString(c.handleRemoveFromCart)},
		{events.EventCartUpdated, func(any) { c.handleCartUpdated() }},
		{events.EventCartOpened, func(any) { c.handleCartOpened() }},
		{events.EventCheckout, func(any) { c.handleCheckout() }},
		{events.EventOrderStepCompleted, c.asOrderStep(c.handleOrderStep)},
		{events.EventFormSubmitted, c.asContacts(c.handleFormSubmitted)},
		{events.EventModalClosed, func(any) { c.handleModalClosed() }},
	}

	for _, b := range bindings {
		sub, err := c.bus.Subscribe(b.event, b.handler)
		if err != nil {
			c.Unbind()
			return err
		}
		c.subs = append(c.subs, sub)
	}
	return nil
}

// Unbind снимает все подписки контроллера.
func (c *Controller) Unbind() {
	for _, sub := range c.subs {
		c.bus.Unsubscribe(sub)
	}
	c.subs = nil
}

// Step возвращает текущий шаг потока.
func (c *Controller) Step() Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step
}

func (c *Controller) setStep(s Step) {
	c.mu.Lock()
	c.step = s
	c.mu.Unlock()
}

// requireStep проверяет, что поток находится на ожидаемом шаге.
func (c *Controller) requireStep(expected Step, event string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.step != expected {
		c.logger.WithFields(log.Fields{
			"event":    event,
			"step":     c.step,
			"expected": expected,
		}).Warn("event ignored on wrong step")
		return false
	}
	return true
}

// --- обработчики переходов ---

// handleProductSelected открывает карточку товара. Неизвестный идентификатор
// прерывает переход без смены шага.
func (c *Controller) handleProductSelected(id string) {
	product, err := c.catalog.GetByID(id)
	if err != nil {
		c.logger.WithError(err).WithField("product_id", id).Warn("product lookup failed")
		c.notify(domain.UserMessage(err))
		return
	}

	c.showDetail(product)
	c.modal.Open()
	c.setStep(StepProductDetail)
}

// handleAddToCart кладёт товар в корзину и сразу возвращает пользователя
// к каталогу, закрывая модальное окно. Повторное добавление отклоняется.
func (c *Controller) handleAddToCart(product domain.Product) {
	if !product.Purchasable() {
		c.notify(domain.UserMessage(domain.ErrNotPurchasable))
		return
	}

	if err := c.cart.AddItem(product); err != nil {
		if errors.Is(err, domain.ErrDuplicateItem) {
			if c.metrics != nil {
				c.metrics.RecordDuplicateAdd()
			}
			c.notify(domain.UserMessage(err))
			return
		}
		c.logger.WithError(err).Error("add to cart failed")
		return
	}

	c.modal.Close()
}

func (c *Controller) handleRemoveFromCart(id string) {
	c.cart.RemoveItem(id)

	// Карточка товара переключает кнопку обратно на «в корзину».
	if c.modal.IsOpen() && c.modal.ContentType() == modal.ContentProduct {
		if product, err := c.catalog.GetByID(id); err == nil {
			c.showDetail(product)
		}
	}
}

// handleCartUpdated обновляет счётчик корзины и перерисовывает открытую корзину.
func (c *Controller) handleCartUpdated() {
	n := c.cart.Len()
	if c.page != nil {
		c.page.SetBasketCount(n)
	}
	if c.metrics != nil {
		c.metrics.SetCartItems(n)
	}

	if c.modal.IsOpen() && c.modal.ContentType() == modal.ContentCart {
		c.showCart()
	}
}

// handleCartOpened показывает содержимое корзины с итогом.
func (c *Controller) handleCartOpened() {
	c.showCart()
	c.modal.Open()
	c.setStep(StepCartOpen)
}

// handleCheckout начинает оформление. Пустая корзина не пропускается дальше:
// кнопка оформления для неё неактивна.
func (c *Controller) handleCheckout() {
	if !c.requireStep(StepCartOpen, events.EventCheckout) {
		return
	}
	if c.cart.Len() == 0 {
		c.notify(domain.UserMessage(domain.ErrCartEmpty))
		return
	}

	if c.metrics != nil {
		c.metrics.RecordCheckoutStarted()
	}
	c.showOrderForm(nil)
	c.setStep(StepOrderDetails)
}

// handleOrderStep проверяет оплату и адрес. При ошибках поток остаётся на шаге,
// ошибки показываются у полей, кнопка отправки неактивна.
func (c *Controller) handleOrderStep(p events.OrderStepPayload) {
	if !c.requireStep(StepOrderDetails, events.EventOrderStepCompleted) {
		return
	}

	fieldErrors := make(map[string]string)
	if err := domain.ValidatePayment(p.Payment); err != nil {
		fieldErrors["payment"] = domain.UserMessage(err)
	}
	if err := domain.ValidateAddress(p.Address); err != nil {
		fieldErrors["address"] = domain.UserMessage(err)
	}

	if len(fieldErrors) > 0 {
		c.showOrderForm(fieldErrors)
		c.bus.Publish(events.EventFormErrors, events.FormErrorsPayload{
			Step:   string(StepOrderDetails),
			Errors: fieldErrors,
		})
		return
	}

	c.cart.SetOrderDetails(p.Payment, p.Address)
	c.showContactsForm(nil)
	c.setStep(StepContacts)
}

// handleFormSubmitted проверяет контакты, собирает заказ и отправляет его.
// Отказ сервера возвращает поток на шаг контактов без потери введённых данных.
func (c *Controller) handleFormSubmitted(p events.ContactsPayload) {
	if !c.requireStep(StepContacts, events.EventFormSubmitted) {
		return
	}

	fieldErrors := make(map[string]string)
	if err := domain.ValidateEmail(p.Email); err != nil {
		fieldErrors["email"] = domain.UserMessage(err)
	}
	if err := domain.ValidatePhone(p.Phone); err != nil {
		fieldErrors["phone"] = domain.UserMessage(err)
	}

	if len(fieldErrors) > 0 {
		c.showContactsForm(fieldErrors)
		c.bus.Publish(events.EventFormErrors, events.FormErrorsPayload{
			Step:   string(StepContacts),
			Errors: fieldErrors,
		})
		return
	}

	draft, err := c.cart.OrderDetails()
	if err != nil {
		// Контакты без первого шага — нарушение контракта потока.
		c.logger.WithError(err).Error("order draft missing on contacts step")
		c.notify(domain.UserMessage(err))
		return
	}

	items := c.cart.Items()
	order := domain.Order{
		Payment: draft.Payment,
		Email:   p.Email,
		Phone:   p.Phone,
		Address: draft.Address,
		// Сумма пересчитывается в момент отправки, кэшу не доверяем.
		Total: c.cart.Total(),
		Items: make([]string, 0, len(items)),
	}
	for _, item := range items {
		order.Items = append(order.Items, item.ID)
	}

	c.submit(order)
}

func (c *Controller) submit(order domain.Order) {
	c.setStep(StepSubmitting)

	start := time.Now()
	confirmation, err := c.client.SubmitOrder(c.ctx, order)
	if c.metrics != nil {
		c.metrics.RecordSubmitDuration(time.Since(start))
	}

	if err != nil {
		// Нефатально: сообщение пользователю, данные шагов сохранены для повтора.
		c.logger.WithError(err).Warn("order submission failed")
		if c.metrics != nil {
			c.metrics.RecordCheckoutFailed()
		}
		c.setStep(StepContacts)
		c.showContactsForm(nil)
		c.notify(submitMessage(err))
		c.bus.Publish(events.EventOrderFailed, events.NoticePayload{Message: submitMessage(err)})
		return
	}

	c.logger.WithFields(log.Fields{
		"order_id": confirmation.ID,
		"total":    confirmation.Total,
	}).Info("order confirmed")

	c.cart.Clear()
	c.showSuccess(confirmation.Total)
	c.setStep(StepSuccess)
	if c.metrics != nil {
		c.metrics.RecordCheckoutCompleted()
	}
	c.bus.Publish(events.EventOrderCompleted, confirmation)
}

// handleModalClosed возвращает поток к каталогу. Черновик заказа, не дошедший
// до успеха, неявно бросается.
func (c *Controller) handleModalClosed() {
	c.mu.Lock()
	if c.step != StepSubmitting {
		c.step = StepBrowsing
	}
	c.mu.Unlock()
}

// --- рендеринг в модальное окно ---

func (c *Controller) showDetail(product domain.Product) {
	body, err := c.views.Detail.Render(product, c.cart.HasItem(product.ID))
	if err != nil {
		c.logger.WithError(err).Error("detail render failed")
		return
	}
	c.modal.SetContent(body, modal.ContentProduct)
}

func (c *Controller) showCart() {
	body, err := c.views.Cart.Render(c.cart.Items(), c.cart.Total())
	if err != nil {
		c.logger.WithError(err).Error("cart render failed")
		return
	}
	c.modal.SetContent(body, modal.ContentCart)
}

func (c *Controller) showOrderForm(fieldErrors map[string]string) {
	body, err := c.views.Order.Render(fieldErrors)
	if err != nil {
		c.logger.WithError(err).Error("order form render failed")
		return
	}
	c.modal.SetContent(body, modal.ContentCheckout)
}

func (c *Controller) showContactsForm(fieldErrors map[string]string) {
	body, err := c.views.Contacts.Render(fieldErrors)
	if err != nil {
		c.logger.WithError(err).Error("contacts form render failed")
		return
	}
	c.modal.SetContent(body, modal.ContentContacts)
}

func (c *Controller) showSuccess(total int64) {
	body, err := c.views.Success.Render(total)
	if err != nil {
		c.logger.WithError(err).Error("success render failed")
		return
	}
	c.modal.SetContent(body, modal.ContentSuccess)
}

func (c *Controller) notify(message string) {
	c.bus.Publish(events.EventNotice, events.NoticePayload{Message: message})
}

// submitMessage достаёт пользовательское сообщение из ошибки отправки:
// для ответа сервера — текст из поля error, для транспортной ошибки — как есть.
func submitMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

// --- адаптеры payload ---

func (c *Controller) asString(h func(string)) events.Handler {
	return func(payload any) {
		s, ok := payload.(string)
		if !ok {
			c.logger.WithField("payload", payload).Warn("expected string payload")
			return
		}
		h(s)
	}
}

func (c *Controller) asProduct(h func(domain.Product)) events.Handler {
	return func(payload any) {
		p, ok := payload.(domain.Product)
		if !ok {
			c.logger.WithField("payload", payload).Warn("expected product payload")
			return
		}
		h(p)
	}
}

func (c *Controller) asOrderStep(h func(events.OrderStepPayload)) events.Handler {
	return func(payload any) {
		p, ok := payload.(events.OrderStepPayload)
		if !ok {
			c.logger.WithField("payload", payload).Warn("expected order step payload")
			return
		}
		h(p)
	}
}

func (c *Controller) asContacts(h func(events.ContactsPayload)) events.Handler {
	return func(payload any) {
		p, ok := payload.(events.ContactsPayload)
		if !ok {
			c.logger.WithField("payload", payload).Warn("expected contacts payload")
			return
		}
		h(p)
	}
}
