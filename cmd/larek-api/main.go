package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/apozdnyakova/weblarek/internal/domain"
	"github.com/apozdnyakova/weblarek/internal/health"
	"github.com/apozdnyakova/weblarek/internal/messaging/kafka"
	"github.com/apozdnyakova/weblarek/internal/server"
	"github.com/apozdnyakova/weblarek/internal/storage/memory"
	"github.com/apozdnyakova/weblarek/internal/storage/postgres"
)

// setupLogger настраивает формат и уровень логирования сервиса.
func setupLogger() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.InfoLevel)
	if v := os.Getenv("LAREK_LOG_LEVEL"); v != "" {
		if level, err := log.ParseLevel(v); err == nil {
			log.SetLevel(level)
		}
	}
}

// readConfig формирует конфигурацию сервера, позволяя переопределить адрес
// через переменные окружения.
func readConfig() server.Config {
	cfg := server.DefaultConfig()
	if v := os.Getenv("LAREK_HTTP_ADDR"); v != "" {
		cfg.Addr = v
	}
	return cfg
}

// price — помощник для указателей на цену в демо-каталоге.
func price(v int64) *int64 { return &v }

// seedCatalog наполняет пустой каталог демо-товарами, чтобы витрина работала
// сразу после запуска без внешнего наполнения.
func seedCatalog(repo domain.ProductRepository, logger *log.Entry) error {
	existing, err := repo.List()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	products := []domain.Product{
		{
			ID:          uuid.NewString(),
			Title:       "+1 час в сутках",
			Description: "Если планируете решать задачи в тренажёре, берите два.",
			Image:       "/5_Dots.svg",
			Category:    domain.CategorySoftSkill,
			Price:       price(750),
		},
		{
			ID:          uuid.NewString(),
			Title:       "HEX-леденец",
			Description: "Лизните, чтобы понять, как это работает.",
			Image:       "/Shell.svg",
			Category:    domain.CategoryOther,
			Price:       price(1450),
		},
		{
			ID:          uuid.NewString(),
			Title:       "Мамка-таймер",
			Description: "Будет стоять над душой и не давать прокрастинировать.",
			Image:       "/Asterisk_2.svg",
			Category:    domain.CategorySoftSkill,
			Price:       nil,
		},
		{
			ID:          uuid.NewString(),
			Title:       "Фреймворк куки судьбы",
			Description: "Откройте куки, чтобы узнать, какой фреймворк учить дальше.",
			Image:       "/Soft_Flower.svg",
			Category:    domain.CategoryAdditional,
			Price:       price(2500),
		},
		{
			ID:          uuid.NewString(),
			Title:       "Кнопка «Замьютить кота»",
			Description: "Если орёт кот, нажмите кнопку.",
			Image:       "/Polygon.svg",
			Category:    domain.CategoryButton,
			Price:       price(2000),
		},
	}

	if err := repo.ReplaceAll(products); err != nil {
		return err
	}
	logger.WithField("count", len(products)).Info("каталог наполнен демо-товарами")
	return nil
}

func main() {
	setupLogger()
	cfg := readConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := log.WithField("component", "larek-api")
	logger.WithField("addr", cfg.Addr).Info("запускаем API ларька")

	var (
		products domain.ProductRepository
		orders   domain.OrderRepository
		pgStore  *postgres.Store
	)
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		store, err := postgres.Open(ctx, dsn)
		if err != nil {
			log.WithError(err).Fatal("не удалось подключиться к PostgreSQL")
		}
		defer store.Close()
		if err := store.EnsureSchema(ctx); err != nil {
			log.WithError(err).Fatal("не удалось подготовить схему БД")
		}
		pgStore = store
		products = postgres.NewProductRepository(store)
		orders = postgres.NewOrderRepository(store)
		logger.Info("хранилище: PostgreSQL")
	} else {
		products = memory.NewProductRepository()
		orders = memory.NewOrderRepository()
		logger.Info("хранилище: in-memory")
	}

	if err := seedCatalog(products, logger); err != nil {
		log.WithError(err).Fatal("не удалось наполнить каталог")
	}

	var producer *kafka.Producer
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		p, err := kafka.NewProducer(strings.Split(brokers, ","))
		if err != nil {
			log.WithError(err).Fatal("не удалось подключиться к Kafka")
		}
		producer = p
		defer func() {
			if err := producer.Close(); err != nil {
				logger.WithError(err).Warn("ошибка при закрытии Kafka producer")
			}
		}()
		logger.WithField("brokers", brokers).Info("события заказов публикуются в Kafka")
	}

	productHandler := server.NewProductHandler(products, logger.WithField("component", "product-handler"))
	var orderHandler *server.OrderHandler
	if producer != nil {
		orderHandler = server.NewOrderHandlerWithKafka(products, orders, producer, logger.WithField("component", "order-handler"))
	} else {
		orderHandler = server.NewOrderHandler(products, orders, logger.WithField("component", "order-handler"))
	}

	srv := server.New(cfg, productHandler, orderHandler, logger.WithField("component", "server"))
	if pgStore != nil {
		srv.RegisterChecker("postgres", health.NewSimpleChecker("postgres", func() error {
			return pgStore.Ping(context.Background())
		}))
	}

	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("сервер завершился с ошибкой")
	}

	logger.Info("API ларька остановлен")
}
