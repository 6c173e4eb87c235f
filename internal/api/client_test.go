package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/apozdnyakova/weblarek/internal/api"
	"github.com/apozdnyakova/weblarek/internal/domain"
)

func price(v int64) *int64 { return &v }

func testBackend(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /product/", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(domain.ProductList{
			Total: 2,
			Items: []domain.Product{
				{ID: "p1", Title: "+1 час в сутках", Price: price(750)},
				{ID: "p2", Title: "Мамка-таймер", Price: nil},
			},
		})
	})
	mux.HandleFunc("GET /product/p1", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(domain.Product{ID: "p1", Title: "+1 час в сутках", Price: price(750)})
	})
	mux.HandleFunc("GET /product/ghost", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "товар не найден"})
	})
	mux.HandleFunc("POST /order", func(w http.ResponseWriter, r *http.Request) {
		var order domain.Order
		if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "некорректное тело запроса"})
			return
		}
		if order.Total == 0 {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "out of stock"})
			return
		}
		_ = json.NewEncoder(w).Encode(domain.OrderConfirmation{ID: "order-1", Total: order.Total})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_FetchCatalog(t *testing.T) {
	srv := testBackend(t)
	client := api.NewClient(srv.URL)

	list, err := client.FetchCatalog(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, list.Total)
	require.Len(t, list.Items, 2)
	require.Equal(t, "p1", list.Items[0].ID)
	require.Nil(t, list.Items[1].Price)
}

func TestClient_FetchProduct(t *testing.T) {
	srv := testBackend(t)
	client := api.NewClient(srv.URL)

	p, err := client.FetchProduct(context.Background(), "p1")
	require.NoError(t, err)
	require.Equal(t, "+1 час в сутках", p.Title)
}

func TestClient_FetchProductNotFound(t *testing.T) {
	srv := testBackend(t)
	client := api.NewClient(srv.URL)

	_, err := client.FetchProduct(context.Background(), "ghost")
	require.Error(t, err)

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	require.Equal(t, "товар не найден", apiErr.Error())
}

func TestClient_SubmitOrder(t *testing.T) {
	srv := testBackend(t)
	client := api.NewClient(srv.URL)

	confirmation, err := client.SubmitOrder(context.Background(), domain.Order{
		Payment: domain.PaymentOnline,
		Email:   "user@example.com",
		Phone:   "+7 999 123-45-67",
		Address: "ул. Пушкина, 10",
		Total:   750,
		Items:   []string{"p1"},
	})
	require.NoError(t, err)
	require.Equal(t, "order-1", confirmation.ID)
	require.Equal(t, int64(750), confirmation.Total)
}

func TestClient_SubmitOrderRejected(t *testing.T) {
	srv := testBackend(t)
	client := api.NewClient(srv.URL)

	_, err := client.SubmitOrder(context.Background(), domain.Order{Total: 0})
	require.Error(t, err)

	// сообщение сервера доступно дословно, без технических префиксов
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "out of stock", apiErr.Error())
}

func TestClient_TransportError(t *testing.T) {
	client := api.NewClient("http://127.0.0.1:1")

	_, err := client.FetchCatalog(context.Background())
	require.Error(t, err)

	var apiErr *api.Error
	require.False(t, errors.As(err, &apiErr), "transport failure is not an API error")
}

func TestCDNClient_ResolvesImageURLs(t *testing.T) {
	srv := testBackend(t)

	inner := api.NewClient(srv.URL)
	client := api.NewCDNClient(inner, "https://cdn.example.com/content/")

	list, err := client.FetchCatalog(context.Background())
	require.NoError(t, err)
	for _, p := range list.Items {
		if p.Image == "" {
			continue
		}
		require.True(t, len(p.Image) > 8 && p.Image[:8] == "https://", "image %q must be absolute", p.Image)
	}
}

func TestCDNClient_KeepsAbsoluteURLs(t *testing.T) {
	tests := []struct {
		name  string
		image string
		want  string
	}{
		{"relative", "/5_Dots.svg", "https://cdn.example.com/5_Dots.svg"},
		{"no leading slash", "Shell.svg", "https://cdn.example.com/Shell.svg"},
		{"absolute", "https://other.example.com/x.svg", "https://other.example.com/x.svg"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_ = json.NewEncoder(w).Encode(domain.Product{ID: "p1", Image: tt.image})
			}))
			defer srv.Close()

			client := api.NewCDNClient(api.NewClient(srv.URL), "https://cdn.example.com")
			p, err := client.FetchProduct(context.Background(), "p1")
			require.NoError(t, err)
			require.Equal(t, tt.want, p.Image)
		})
	}
}
