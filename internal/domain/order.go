package domain

import "time"

// PaymentMethod описывает способ оплаты заказа.
type PaymentMethod string

const (
	// PaymentOnline — оплата картой онлайн.
	PaymentOnline PaymentMethod = "online"
	// PaymentCash — оплата при получении.
	PaymentCash PaymentMethod = "cash"
)

// Valid проверяет, что способ оплаты входит в допустимый набор.
func (m PaymentMethod) Valid() bool {
	return m == PaymentOnline || m == PaymentCash
}

// OrderDraft — черновик заказа, собираемый по шагам оформления.
// Первый шаг фиксирует оплату и адрес; контакты добираются вторым шагом.
type OrderDraft struct {
	Payment PaymentMethod
	Address string
}

// Order — итоговый payload оформления, отправляемый на сервер одним запросом.
type Order struct {
	Payment PaymentMethod `json:"payment"`
	Email   string        `json:"email"`
	Phone   string        `json:"phone"`
	Address string        `json:"address"`
	// Total пересчитывается по позициям корзины в момент отправки.
	Total int64 `json:"total"`
	// Items — идентификаторы товаров в порядке добавления в корзину.
	Items []string `json:"items"`
}

// OrderConfirmation — ответ сервера на успешное создание заказа.
type OrderConfirmation struct {
	ID    string `json:"id"`
	Total int64  `json:"total"`
}

// StoredOrder — заказ, принятый сервером и сохранённый в репозитории.
type StoredOrder struct {
	ID        string
	Order     Order
	CreatedAt time.Time
}

// ValidateInvariants проверяет базовые инварианты заказа и возвращает список замечаний.
func (o *Order) ValidateInvariants() []error {
	var errs []error

	if !o.Payment.Valid() {
		errs = append(errs, ErrPaymentInvalid)
	}
	if err := ValidateEmail(o.Email); err != nil {
		errs = append(errs, err)
	}
	if err := ValidatePhone(o.Phone); err != nil {
		errs = append(errs, err)
	}
	if err := ValidateAddress(o.Address); err != nil {
		errs = append(errs, err)
	}
	if len(o.Items) == 0 {
		errs = append(errs, ErrItemsRequired)
	}
	if o.Total < 0 {
		errs = append(errs, ErrTotalNegative)
	}

	// Позиции заказа не повторяются: одна строка корзины на товар.
	seen := make(map[string]struct{}, len(o.Items))
	for _, id := range o.Items {
		if _, dup := seen[id]; dup {
			errs = append(errs, ErrDuplicateItem)
			break
		}
		seen[id] = struct{}{}
	}

	return errs
}
