package domain

import "errors"

var (
	// ErrProductNotFound возвращается, если товар не найден в каталоге или репозитории.
	ErrProductNotFound = errors.New("product not found")
	// ErrDuplicateItem — попытка добавить товар, который уже лежит в корзине.
	ErrDuplicateItem = errors.New("item already in cart")
	// ErrNotPurchasable — товар без цены нельзя положить в корзину.
	ErrNotPurchasable = errors.New("product is not purchasable")
	// ErrOrderDraftNotSet — детали заказа запрошены до завершения первого шага оформления.
	ErrOrderDraftNotSet = errors.New("order details are not set")
	// ErrCartEmpty — оформление нельзя начать с пустой корзиной.
	ErrCartEmpty = errors.New("cart is empty")
	// Ошибка отсутствующего email.
	ErrEmailRequired = errors.New("email is required")
	// Ошибка email, не прошедшего проверку формата.
	ErrEmailInvalid = errors.New("email is invalid")
	// Ошибка отсутствующего телефона.
	ErrPhoneRequired = errors.New("phone is required")
	// Ошибка телефона, не прошедшего проверку формата.
	ErrPhoneInvalid = errors.New("phone is invalid")
	// Ошибка отсутствующего адреса доставки.
	ErrAddressRequired = errors.New("address is required")
	// Ошибка адреса вне допустимой длины (8–40 символов).
	ErrAddressLength = errors.New("address must be 8-40 characters long")
	// Ошибка отсутствующего способа оплаты.
	ErrPaymentRequired = errors.New("payment method is required")
	// Ошибка неизвестного способа оплаты.
	ErrPaymentInvalid = errors.New("payment method is invalid")
	// Ошибка заказа без единой позиции.
	ErrItemsRequired = errors.New("order must contain at least one item")
	// Ошибка отрицательной суммы заказа.
	ErrTotalNegative = errors.New("order total must be non-negative")
	// ErrTotalMismatch — сумма заказа не совпала с суммой позиций на сервере.
	ErrTotalMismatch = errors.New("order total does not match items sum")
	// ErrOrderNotFound возвращается, если заказ не найден в репозитории.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderExists — заказ с таким идентификатором уже сохранён.
	ErrOrderExists = errors.New("order already exists")
)

// IsValidation сообщает, относится ли ошибка к локальной валидации полей формы.
// Такие ошибки превращаются в подсказки у полей и никогда не уходят в сеть.
func IsValidation(err error) bool {
	for _, v := range []error{
		ErrEmailRequired, ErrEmailInvalid,
		ErrPhoneRequired, ErrPhoneInvalid,
		ErrAddressRequired, ErrAddressLength,
		ErrPaymentRequired, ErrPaymentInvalid,
	} {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}
