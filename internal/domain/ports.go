package domain

import "context"

// Client — абстракция над REST API магазина. Ядро витрины зависит только от неё,
// транспортные детали остаются в реализации.
type Client interface {
	// FetchCatalog загружает весь каталог товаров.
	FetchCatalog(ctx context.Context) (ProductList, error)
	// FetchProduct загружает один товар по идентификатору.
	FetchProduct(ctx context.Context, id string) (Product, error)
	// SubmitOrder отправляет собранный заказ. Ошибка сервера содержит
	// пользовательское сообщение из поля error ответа.
	SubmitOrder(ctx context.Context, order Order) (OrderConfirmation, error)
}
