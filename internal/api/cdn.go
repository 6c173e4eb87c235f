package api

import (
	"context"
	"strings"

	"github.com/apozdnyakova/weblarek/internal/domain"
)

// CDNClient оборачивает клиент API и превращает относительные пути картинок
// товаров в абсолютные URL CDN. Остальные вызовы проходят без изменений.
type CDNClient struct {
	inner domain.Client
	base  string
}

// NewCDNClient создаёт обёртку с базовым URL CDN.
func NewCDNClient(inner domain.Client, cdnBaseURL string) *CDNClient {
	return &CDNClient{
		inner: inner,
		base:  strings.TrimSuffix(cdnBaseURL, "/"),
	}
}

// FetchCatalog возвращает каталог с абсолютными URL картинок.
func (c *CDNClient) FetchCatalog(ctx context.Context) (domain.ProductList, error) {
	list, err := c.inner.FetchCatalog(ctx)
	if err != nil {
		return domain.ProductList{}, err
	}
	for i := range list.Items {
		list.Items[i].Image = c.resolve(list.Items[i].Image)
	}
	return list, nil
}

// FetchProduct возвращает товар с абсолютным URL картинки.
func (c *CDNClient) FetchProduct(ctx context.Context, id string) (domain.Product, error) {
	p, err := c.inner.FetchProduct(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}
	p.Image = c.resolve(p.Image)
	return p, nil
}

// SubmitOrder передаёт заказ внутреннему клиенту как есть.
func (c *CDNClient) SubmitOrder(ctx context.Context, order domain.Order) (domain.OrderConfirmation, error) {
	return c.inner.SubmitOrder(ctx, order)
}

func (c *CDNClient) resolve(image string) string {
	if image == "" || c.base == "" || strings.HasPrefix(image, "http://") || strings.HasPrefix(image, "https://") {
		return image
	}
	return c.base + "/" + strings.TrimPrefix(image, "/")
}

var _ domain.Client = (*CDNClient)(nil)
