package domain

import "errors"

// UserMessage переводит доменную ошибку в текст для показа пользователю.
// Неизвестные ошибки показываются как есть.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrEmailRequired):
		return "Введите Email."
	case errors.Is(err, ErrEmailInvalid):
		return "Введите корректный Email."
	case errors.Is(err, ErrPhoneRequired):
		return "Введите номер телефона."
	case errors.Is(err, ErrPhoneInvalid):
		return "Введите корректный номер телефона (цифры, пробелы, скобки, + и -, не более 20 символов)."
	case errors.Is(err, ErrAddressRequired):
		return "Введите адрес доставки."
	case errors.Is(err, ErrAddressLength):
		return "Адрес должен содержать от 8 до 40 символов."
	case errors.Is(err, ErrPaymentRequired), errors.Is(err, ErrPaymentInvalid):
		return "Выберите способ оплаты."
	case errors.Is(err, ErrDuplicateItem):
		return "Товар уже в корзине."
	case errors.Is(err, ErrNotPurchasable):
		return "Бесценный товар нельзя купить."
	case errors.Is(err, ErrCartEmpty):
		return "Корзина пуста."
	case errors.Is(err, ErrProductNotFound):
		return "Товар не найден."
	default:
		return err.Error()
	}
}
