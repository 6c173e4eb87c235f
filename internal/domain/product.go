package domain

// Category — категория товара каталога.
type Category string

// Категории витрины.
const (
	CategorySoftSkill  Category = "софт-скил"
	CategoryHardSkill  Category = "хард-скил"
	CategoryButton     Category = "кнопка"
	CategoryAdditional Category = "дополнительное"
	CategoryOther      Category = "другое"
)

// Product — товар каталога. Цена необязательна: товар без цены показывается
// как «Бесценно» и купить его нельзя.
type Product struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Title       string   `json:"title"`
	Category    Category `json:"category"`
	Price       *int64   `json:"price"`
}

// Purchasable сообщает, можно ли положить товар в корзину.
func (p Product) Purchasable() bool {
	return p.Price != nil && *p.Price > 0
}

// PriceValue возвращает цену товара; отсутствующая цена считается нулём.
func (p Product) PriceValue() int64 {
	if p.Price == nil {
		return 0
	}
	return *p.Price
}

// ProductList — ответ каталога: общее число и список товаров.
type ProductList struct {
	Total int       `json:"total"`
	Items []Product `json:"items"`
}
