package events

import "github.com/apozdnyakova/weblarek/internal/domain"

// Имена событий шины. Совпадают один в один с событиями витрины:
// отображения публикуют действия пользователя, модели — изменения состояния.
const (
	// EventProductsLoaded — каталог загружен и заменён целиком; payload []domain.Product.
	EventProductsLoaded = "productsLoaded"
	// EventProductSelected — пользователь выбрал карточку товара; payload string (ID).
	EventProductSelected = "productSelected"
	// EventAddToCart — запрос на добавление товара; payload domain.Product.
	EventAddToCart = "addToCart"
	// EventRemoveFromCart — запрос на удаление товара; payload string (ID).
	EventRemoveFromCart = "removeFromCart"
	// EventCartUpdated — состав корзины изменился; payload отсутствует.
	EventCartUpdated = "cartUpdated"
	// EventCartOpened — пользователь открыл корзину; payload отсутствует.
	EventCartOpened = "cartOpened"
	// EventCheckout — нажата кнопка «Оформить» в корзине; payload отсутствует.
	EventCheckout = "checkout"
	// EventOrderStepCompleted — отправлен первый шаг оформления; payload OrderStepPayload.
	EventOrderStepCompleted = "orderStepCompleted"
	// EventFormSubmitted — отправлена форма контактов; payload ContactsPayload.
	EventFormSubmitted = "formSubmitted"
	// EventCloseModal — запрос на закрытие модального окна из любого компонента.
	EventCloseModal = "closeModal"
	// EventModalClosed — модальное окно закрылось; payload отсутствует.
	EventModalClosed = "modalClosed"
	// EventOrderCompleted — заказ подтверждён сервером; payload domain.OrderConfirmation.
	EventOrderCompleted = "orderCompleted"
	// EventOrderFailed — сервер отклонил заказ; payload NoticePayload.
	EventOrderFailed = "orderFailed"
	// EventFormErrors — шаг оформления не прошёл валидацию; payload FormErrorsPayload.
	EventFormErrors = "formErrors"
	// EventNotice — нефатальное сообщение пользователю; payload NoticePayload.
	EventNotice = "notice"
)

// OrderStepPayload — данные первого шага оформления.
type OrderStepPayload struct {
	Payment domain.PaymentMethod
	Address string
}

// ContactsPayload — данные формы контактов.
type ContactsPayload struct {
	Email string
	Phone string
}

// NoticePayload — сообщение, показываемое пользователю без смены шага.
type NoticePayload struct {
	Message string
}

// FormErrorsPayload — ошибки полей конкретного шага оформления.
// Пока ошибки не пусты, кнопка отправки шага остаётся неактивной.
type FormErrorsPayload struct {
	Step   string
	Errors map[string]string
}
