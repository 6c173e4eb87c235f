package domain

import (
	"errors"
	"testing"
)

func validOrder() Order {
	return Order{
		Payment: PaymentOnline,
		Email:   "user@example.com",
		Phone:   "+7 999 123-45-67",
		Address: "ул. Пушкина, 10",
		Total:   2200,
		Items:   []string{"p1", "p2"},
	}
}

func TestOrder_ValidateInvariants(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Order)
		want   error
	}{
		{"valid", func(*Order) {}, nil},
		{"bad payment", func(o *Order) { o.Payment = "crypto" }, ErrPaymentInvalid},
		{"bad email", func(o *Order) { o.Email = "nope" }, ErrEmailInvalid},
		{"bad phone", func(o *Order) { o.Phone = "abc" }, ErrPhoneInvalid},
		{"short address", func(o *Order) { o.Address = "St" }, ErrAddressLength},
		{"no items", func(o *Order) { o.Items = nil }, ErrItemsRequired},
		{"negative total", func(o *Order) { o.Total = -1 }, ErrTotalNegative},
		{"duplicate items", func(o *Order) { o.Items = []string{"p1", "p1"} }, ErrDuplicateItem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := validOrder()
			tt.mutate(&order)

			errs := order.ValidateInvariants()
			if tt.want == nil {
				if len(errs) != 0 {
					t.Errorf("expected no errors, got %v", errs)
				}
				return
			}

			found := false
			for _, err := range errs {
				if errors.Is(err, tt.want) {
					found = true
				}
			}
			if !found {
				t.Errorf("expected %v among %v", tt.want, errs)
			}
		})
	}
}

func TestProduct_Purchasable(t *testing.T) {
	priced := int64(750)
	zero := int64(0)

	tests := []struct {
		name string
		p    Product
		want bool
	}{
		{"priced", Product{Price: &priced}, true},
		{"priceless", Product{Price: nil}, false},
		{"zero price", Product{Price: &zero}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Purchasable(); got != tt.want {
				t.Errorf("Purchasable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProduct_PriceValue(t *testing.T) {
	priced := int64(1450)
	if got := (Product{Price: &priced}).PriceValue(); got != 1450 {
		t.Errorf("PriceValue() = %d, want 1450", got)
	}
	if got := (Product{}).PriceValue(); got != 0 {
		t.Errorf("PriceValue() for priceless product = %d, want 0", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(ErrEmailRequired); got != "Введите Email." {
		t.Errorf("UserMessage(ErrEmailRequired) = %q", got)
	}
	if got := UserMessage(ErrDuplicateItem); got != "Товар уже в корзине." {
		t.Errorf("UserMessage(ErrDuplicateItem) = %q", got)
	}
	unknown := errors.New("out of stock")
	if got := UserMessage(unknown); got != "out of stock" {
		t.Errorf("UserMessage(unknown) = %q, want passthrough", got)
	}
}
