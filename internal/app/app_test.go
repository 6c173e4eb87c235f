package app_test

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/apozdnyakova/weblarek/internal/app"
	"github.com/apozdnyakova/weblarek/internal/domain"
	"github.com/apozdnyakova/weblarek/internal/server"
	"github.com/apozdnyakova/weblarek/internal/storage/memory"
)

func loggerForTests() *logrus.Entry {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logger.SetLevel(logrus.DebugLevel)
	return logger.WithField("component", "test")
}

func price(v int64) *int64 { return &v }

// newBackend поднимает реальный API ларька поверх in-memory хранилищ.
func newBackend(t *testing.T) *httptest.Server {
	t.Helper()

	products := memory.NewProductRepository()
	orders := memory.NewOrderRepository()
	require.NoError(t, products.ReplaceAll([]domain.Product{
		{ID: "p1", Title: "+1 час в сутках", Category: domain.CategorySoftSkill, Price: price(750)},
		{ID: "p2", Title: "HEX-леденец", Category: domain.CategoryOther, Price: price(1450)},
	}))

	logger := loggerForTests()
	srv := server.New(
		server.DefaultConfig(),
		server.NewProductHandler(products, logger),
		server.NewOrderHandler(products, orders, logger),
		logger,
	)

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func runSession(t *testing.T, backendURL, script string) string {
	t.Helper()

	out := &bytes.Buffer{}
	session, err := app.New(app.Config{
		APIBaseURL:     backendURL,
		RequestTimeout: 5 * time.Second,
	}, strings.NewReader(script), out, loggerForTests())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, session.Run(ctx))

	return out.String()
}

func TestApp_FullCheckoutSession(t *testing.T) {
	backend := newBackend(t)

	script := strings.Join([]string{
		"add p1",
		"add p2",
		"cart",
		"checkout",
		"order online ул. Пушкина, 10",
		"contacts user@example.com +79991234567",
		"quit",
	}, "\n")

	out := runSession(t, backend.URL, script)

	require.Contains(t, out, "=== Каталог ===")
	require.Contains(t, out, "+1 час в сутках")
	require.Contains(t, out, "Итого: 2200 синапсов")
	require.Contains(t, out, "Заказ оформлен!")
	require.Contains(t, out, "Списано 2200 синапсов")
}

func TestApp_DuplicateAddShowsNotice(t *testing.T) {
	backend := newBackend(t)

	script := strings.Join([]string{
		"add p1",
		"add p1",
		"quit",
	}, "\n")

	out := runSession(t, backend.URL, script)
	require.Contains(t, out, "! Товар уже в корзине.")
}

func TestApp_ValidationErrorsShownInForm(t *testing.T) {
	backend := newBackend(t)

	script := strings.Join([]string{
		"add p1",
		"cart",
		"checkout",
		"order online St",
		"quit",
	}, "\n")

	out := runSession(t, backend.URL, script)
	require.Contains(t, out, "Адрес должен содержать от 8 до 40 символов.")
	require.Contains(t, out, "(кнопка неактивна)")
}

func TestApp_UnknownCommand(t *testing.T) {
	backend := newBackend(t)

	out := runSession(t, backend.URL, "frobnicate\nquit")
	require.Contains(t, out, "! Неизвестная команда: frobnicate")
}

func TestApp_UnknownProduct(t *testing.T) {
	backend := newBackend(t)

	out := runSession(t, backend.URL, "add ghost\nquit")
	require.Contains(t, out, "! Товар не найден.")
}

func TestApp_EOFEndsSession(t *testing.T) {
	backend := newBackend(t)

	// сессия без команды quit завершается по концу ввода
	out := runSession(t, backend.URL, "list\n")
	require.Contains(t, out, "=== Каталог ===")
}

func TestApp_BackendDownIsNotFatal(t *testing.T) {
	out := &bytes.Buffer{}
	session, err := app.New(app.Config{
		APIBaseURL:     "http://127.0.0.1:1",
		RequestTimeout: time.Second,
	}, strings.NewReader("quit\n"), out, loggerForTests())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, session.Run(ctx))
	require.Contains(t, out.String(), "Не удалось загрузить каталог")
}

func TestDefaultConfig(t *testing.T) {
	cfg := app.DefaultConfig()
	require.Equal(t, "http://localhost:8081", cfg.APIBaseURL)
	require.Equal(t, 15*time.Second, cfg.RequestTimeout)
}
