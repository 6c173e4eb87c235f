package domain

// ProductRepository — хранилище каталога на стороне сервера.
type ProductRepository interface {
	// List возвращает все товары каталога.
	List() ([]Product, error)
	// Get возвращает товар или ErrProductNotFound.
	Get(id string) (Product, error)
	// ReplaceAll заменяет каталог целиком, без инкрементального слияния.
	ReplaceAll(products []Product) error
}

// OrderRepository — хранилище принятых заказов на стороне сервера.
type OrderRepository interface {
	// Create сохраняет новый заказ; повторный ID даёт ErrOrderExists.
	Create(order StoredOrder) error
	// Get возвращает заказ или ErrOrderNotFound.
	Get(id string) (StoredOrder, error)
	// List возвращает последние заказы, ограничивая выборку limit (если >0).
	List(limit int) ([]StoredOrder, error)
}
