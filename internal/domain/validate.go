package domain

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Регулярные выражения совпадают с правилами форм оформления:
// стандартный шаблон адреса почты и телефон из цифр, пробелов, скобок, «+» и «-».
var (
	emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-z]{2,}$`)
	phoneRe = regexp.MustCompile(`^[\d\s()+-]{1,20}$`)
)

const (
	addressMinLen = 8
	addressMaxLen = 40
)

// ValidateEmail проверяет поле email формы контактов.
func ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return ErrEmailRequired
	}
	if !emailRe.MatchString(email) {
		return ErrEmailInvalid
	}
	return nil
}

// ValidatePhone проверяет поле телефона формы контактов.
func ValidatePhone(phone string) error {
	if strings.TrimSpace(phone) == "" {
		return ErrPhoneRequired
	}
	if !phoneRe.MatchString(phone) {
		return ErrPhoneInvalid
	}
	return nil
}

// ValidateAddress проверяет адрес доставки: непустой, длиной от 8 до 40 символов.
// Длина считается в рунах, адрес может быть кириллическим.
func ValidateAddress(address string) error {
	if strings.TrimSpace(address) == "" {
		return ErrAddressRequired
	}
	if n := utf8.RuneCountInString(address); n < addressMinLen || n > addressMaxLen {
		return ErrAddressLength
	}
	return nil
}

// ValidatePayment проверяет выбранный способ оплаты первого шага оформления.
func ValidatePayment(method PaymentMethod) error {
	if method == "" {
		return ErrPaymentRequired
	}
	if !method.Valid() {
		return ErrPaymentInvalid
	}
	return nil
}
