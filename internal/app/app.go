package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/apozdnyakova/weblarek/internal/api"
	"github.com/apozdnyakova/weblarek/internal/cart"
	"github.com/apozdnyakova/weblarek/internal/catalog"
	"github.com/apozdnyakova/weblarek/internal/checkout"
	"github.com/apozdnyakova/weblarek/internal/domain"
	"github.com/apozdnyakova/weblarek/internal/events"
	"github.com/apozdnyakova/weblarek/internal/modal"
	"github.com/apozdnyakova/weblarek/internal/view"
)

// Config — настройки сессии витрины.
type Config struct {
	// APIBaseURL — базовый URL REST API, например https://host/api/weblarek.
	APIBaseURL string
	// CDNBaseURL дополняет относительные пути картинок товаров; пустое значение
	// оставляет пути как есть.
	CDNBaseURL string
	// RequestTimeout — таймаут HTTP-запросов к API.
	RequestTimeout time.Duration
}

// DefaultConfig возвращает настройки сессии по умолчанию.
func DefaultConfig() Config {
	return Config{
		APIBaseURL:     "http://localhost:8081",
		RequestTimeout: 15 * time.Second,
	}
}

// App собирает все компоненты витрины в одну интерактивную сессию:
// шина событий, каталог, корзина, модальное окно и контроллер оформления.
// Команды читаются из in, вывод идёт на страницу поверх out.
type App struct {
	cfg        Config
	bus        *events.Bus
	page       *view.Page
	views      *view.Set
	modal      *modal.Presenter
	catalog    *catalog.Store
	cart       *cart.Store
	controller *checkout.Controller
	logger     *log.Entry

	in io.Reader
}

// New собирает сессию витрины. Все зависимости создаются здесь и передаются
// компонентам явно; битый шаблон отображения — ошибка сборки.
func New(cfg Config, in io.Reader, out io.Writer, logger *log.Entry) (*App, error) {
	if logger == nil {
		logger = log.New().WithField("component", "app")
	}

	bus := events.NewBus()
	page := view.NewPage(out)

	views, err := view.NewDefaultSet()
	if err != nil {
		return nil, fmt.Errorf("build views: %w", err)
	}

	presenter, err := modal.NewPresenter(page, bus, logger.WithField("component", "modal"))
	if err != nil {
		return nil, fmt.Errorf("build modal: %w", err)
	}

	var client domain.Client = api.NewClient(cfg.APIBaseURL, api.WithTimeout(cfg.RequestTimeout))
	if cfg.CDNBaseURL != "" {
		client = api.NewCDNClient(client, cfg.CDNBaseURL)
	}

	catalogStore := catalog.NewStore(client, bus, logger.WithField("component", "catalog"))
	cartStore := cart.NewStore(bus, logger.WithField("component", "cart"))

	controller := checkout.NewController(checkout.Deps{
		Bus:     bus,
		Catalog: catalogStore,
		Cart:    cartStore,
		Modal:   presenter,
		Views:   views,
		Page:    page,
		Client:  client,
		Logger:  logger.WithField("component", "checkout"),
	})

	a := &App{
		cfg:        cfg,
		bus:        bus,
		page:       page,
		views:      views,
		modal:      presenter,
		catalog:    catalogStore,
		cart:       cartStore,
		controller: controller,
		logger:     logger,
		in:         in,
	}

	// Страница показывает каталог после каждой полной замены и нефатальные
	// сообщения пользователю.
	if _, err := bus.Subscribe(events.EventProductsLoaded, func(any) { a.showCatalog() }); err != nil {
		return nil, err
	}
	if _, err := bus.Subscribe(events.EventNotice, func(payload any) {
		if n, ok := payload.(events.NoticePayload); ok {
			page.Show("! " + n.Message)
		}
	}); err != nil {
		return nil, err
	}

	return a, nil
}

// Bus возвращает шину событий сессии (для тестов и расширений).
func (a *App) Bus() *events.Bus {
	return a.bus
}

// Run подключает контроллер, загружает каталог и крутит цикл команд до EOF,
// команды quit или отмены контекста.
func (a *App) Run(ctx context.Context) error {
	if err := a.controller.Bind(ctx); err != nil {
		return fmt.Errorf("bind controller: %w", err)
	}
	defer a.controller.Unbind()

	if err := a.catalog.Refresh(ctx); err != nil {
		// Пустой каталог не фатален: команда refresh повторит загрузку.
		a.logger.WithError(err).Warn("initial catalog load failed")
		a.page.Show("! Не удалось загрузить каталог: " + err.Error())
	}

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(a.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
		close(lines)
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				if err := <-scanErr; err != nil {
					return fmt.Errorf("read commands: %w", err)
				}
				return nil
			}
			if quit := a.dispatch(ctx, line); quit {
				return nil
			}
		}
	}
}

// dispatch разбирает одну команду сессии и публикует соответствующее событие.
// Возвращает true для команды выхода.
func (a *App) dispatch(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	cmd, args := fields[0], fields[1:]
	switch cmd {
	case "help":
		a.page.Show(helpText)
	case "list":
		a.showCatalog()
	case "refresh":
		if err := a.catalog.Refresh(ctx); err != nil {
			a.page.Show("! Не удалось загрузить каталог: " + err.Error())
		}
	case "show":
		if len(args) != 1 {
			a.page.Show("! Использование: show <id>")
			return false
		}
		a.bus.Publish(events.EventProductSelected, args[0])
	case "add":
		if len(args) != 1 {
			a.page.Show("! Использование: add <id>")
			return false
		}
		product, err := a.catalog.GetByID(args[0])
		if err != nil {
			a.page.Show("! " + domain.UserMessage(err))
			return false
		}
		a.bus.Publish(events.EventAddToCart, product)
	case "remove":
		if len(args) != 1 {
			a.page.Show("! Использование: remove <id>")
			return false
		}
		a.bus.Publish(events.EventRemoveFromCart, args[0])
	case "cart":
		a.bus.Publish(events.EventCartOpened, nil)
	case "checkout":
		a.bus.Publish(events.EventCheckout, nil)
	case "order":
		if len(args) < 2 {
			a.page.Show("! Использование: order <online|cash> <адрес доставки>")
			return false
		}
		a.bus.Publish(events.EventOrderStepCompleted, events.OrderStepPayload{
			Payment: domain.PaymentMethod(args[0]),
			Address: strings.Join(args[1:], " "),
		})
	case "contacts":
		if len(args) != 2 {
			a.page.Show("! Использование: contacts <email> <телефон>")
			return false
		}
		a.bus.Publish(events.EventFormSubmitted, events.ContactsPayload{
			Email: args[0],
			Phone: args[1],
		})
	case "close":
		a.bus.Publish(events.EventCloseModal, nil)
	case "quit", "exit":
		return true
	default:
		a.page.Show("! Неизвестная команда: " + cmd + " (help — список команд)")
	}
	return false
}

func (a *App) showCatalog() {
	body, err := a.views.Catalog.Render(a.catalog.GetAll())
	if err != nil {
		a.logger.WithError(err).Error("catalog render failed")
		return
	}
	a.page.Show(body)
	a.page.Show(fmt.Sprintf("Корзина: %d", a.page.BasketCount()))
}

const helpText = `Команды витрины:
  list                         показать каталог
  refresh                      перезагрузить каталог с сервера
  show <id>                    открыть карточку товара
  add <id>                     положить товар в корзину
  remove <id>                  убрать товар из корзины
  cart                         открыть корзину
  checkout                     начать оформление
  order <online|cash> <адрес>  первый шаг оформления
  contacts <email> <телефон>   второй шаг и отправка заказа
  close                        закрыть модальное окно
  quit                         выход`
