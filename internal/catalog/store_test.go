package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/apozdnyakova/weblarek/internal/catalog"
	"github.com/apozdnyakova/weblarek/internal/domain"
	"github.com/apozdnyakova/weblarek/internal/events"
)

// stubClient отдаёт заранее заданный каталог; onFetch позволяет вмешаться
// в момент запроса.
type stubClient struct {
	list    domain.ProductList
	err     error
	onFetch func()
}

func (c *stubClient) FetchCatalog(context.Context) (domain.ProductList, error) {
	if c.onFetch != nil {
		c.onFetch()
	}
	return c.list, c.err
}

func (c *stubClient) FetchProduct(_ context.Context, id string) (domain.Product, error) {
	for _, p := range c.list.Items {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, domain.ErrProductNotFound
}

func (c *stubClient) SubmitOrder(context.Context, domain.Order) (domain.OrderConfirmation, error) {
	return domain.OrderConfirmation{}, errors.New("not implemented")
}

func price(v int64) *int64 { return &v }

func products(ids ...string) []domain.Product {
	out := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.Product{ID: id, Title: "товар " + id, Price: price(100)})
	}
	return out
}

func TestStore_RefreshReplacesCatalogAndPublishes(t *testing.T) {
	bus := events.NewBus()
	client := &stubClient{list: domain.ProductList{Total: 2, Items: products("p1", "p2")}}
	store := catalog.NewStore(client, bus, nil)

	var loaded []domain.Product
	if _, err := bus.Subscribe(events.EventProductsLoaded, func(payload any) {
		loaded = payload.([]domain.Product)
	}); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	if err := store.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	if store.Len() != 2 {
		t.Errorf("expected 2 products, got %d", store.Len())
	}
	if len(loaded) != 2 {
		t.Errorf("productsLoaded must carry the new catalog, got %v", loaded)
	}
}

func TestStore_RefreshError(t *testing.T) {
	bus := events.NewBus()
	client := &stubClient{err: errors.New("connection refused")}
	store := catalog.NewStore(client, bus, nil)

	if err := store.Refresh(context.Background()); err == nil {
		t.Fatal("expected refresh error")
	}
	if store.Len() != 0 {
		t.Errorf("failed refresh must not touch catalog, got %d items", store.Len())
	}
}

func TestStore_StaleRefreshIsDropped(t *testing.T) {
	bus := events.NewBus()
	client := &stubClient{list: domain.ProductList{Total: 1, Items: products("stale")}}
	store := catalog.NewStore(client, bus, nil)

	// Пока первый запрос в полёте, успевает завершиться более свежий.
	first := true
	client.onFetch = func() {
		if !first {
			return
		}
		first = false
		client.list = domain.ProductList{Total: 1, Items: products("fresh")}
		if err := store.Refresh(context.Background()); err != nil {
			t.Fatalf("inner refresh: %v", err)
		}
		client.list = domain.ProductList{Total: 1, Items: products("stale")}
	}

	if err := store.Refresh(context.Background()); err != nil {
		t.Fatalf("outer refresh: %v", err)
	}

	if _, err := store.GetByID("fresh"); err != nil {
		t.Errorf("fresh catalog must win, got error %v", err)
	}
	if _, err := store.GetByID("stale"); !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("stale response must be dropped, got %v", err)
	}
}

func TestStore_GetByID(t *testing.T) {
	bus := events.NewBus()
	store := catalog.NewStore(&stubClient{}, bus, nil)
	store.SetProducts(products("p1"))

	if _, err := store.GetByID("p1"); err != nil {
		t.Errorf("GetByID(p1): %v", err)
	}
	if _, err := store.GetByID("ghost"); !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestStore_GetAllReturnsCopy(t *testing.T) {
	bus := events.NewBus()
	store := catalog.NewStore(&stubClient{}, bus, nil)
	store.SetProducts(products("p1", "p2"))

	all := store.GetAll()
	all[0].ID = "mutated"

	if _, err := store.GetByID("p1"); err != nil {
		t.Errorf("mutating the returned slice must not affect the store: %v", err)
	}
}
