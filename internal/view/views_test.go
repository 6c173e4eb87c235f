package view

import (
	"strings"
	"testing"

	"github.com/apozdnyakova/weblarek/internal/domain"
)

func price(v int64) *int64 { return &v }

func TestFormatPrice(t *testing.T) {
	if got := FormatPrice(price(750)); got != "750 синапсов" {
		t.Errorf("FormatPrice(750) = %q", got)
	}
	if got := FormatPrice(nil); got != "Бесценно" {
		t.Errorf("FormatPrice(nil) = %q, want Бесценно", got)
	}
}

func TestNewCatalogView_EmptySourceIsError(t *testing.T) {
	if _, err := NewCatalogView(""); err == nil {
		t.Error("expected error for empty template source")
	}
	if _, err := NewCatalogView("{{.Broken"); err == nil {
		t.Error("expected error for broken template source")
	}
}

func TestCatalogView_Render(t *testing.T) {
	v, err := NewCatalogView(DefaultCatalogTemplate)
	if err != nil {
		t.Fatalf("new view: %v", err)
	}

	out, err := v.Render([]domain.Product{
		{ID: "p1", Title: "+1 час в сутках", Category: domain.CategorySoftSkill, Price: price(750)},
		{ID: "p2", Title: "Мамка-таймер", Category: domain.CategorySoftSkill},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	for _, want := range []string{"+1 час в сутках", "750 синапсов", "Бесценно"} {
		if !strings.Contains(out, want) {
			t.Errorf("catalog output missing %q:\n%s", want, out)
		}
	}
}

func TestDetailData_Affordance(t *testing.T) {
	tests := []struct {
		name string
		data DetailData
		want string
	}{
		{"priceless", DetailData{Product: domain.Product{}}, "(недоступно)"},
		{"in cart", DetailData{Product: domain.Product{Price: price(100)}, InCart: true}, "[убрать из корзины]"},
		{"purchasable", DetailData{Product: domain.Product{Price: price(100)}}, "[в корзину]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.data.Affordance(); got != tt.want {
				t.Errorf("Affordance() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCartView_Render(t *testing.T) {
	v, err := NewCartView(DefaultCartTemplate)
	if err != nil {
		t.Fatalf("new view: %v", err)
	}

	out, err := v.Render([]domain.Product{
		{ID: "p1", Title: "HEX-леденец", Price: price(1450)},
	}, 1450)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "1. HEX-леденец") {
		t.Errorf("expected numbered line, got:\n%s", out)
	}
	if !strings.Contains(out, "Итого: 1450 синапсов") {
		t.Errorf("expected total line, got:\n%s", out)
	}
	if !strings.Contains(out, "[Оформить]") {
		t.Errorf("expected active checkout button, got:\n%s", out)
	}
}

func TestCartView_RenderEmpty(t *testing.T) {
	v, err := NewCartView(DefaultCartTemplate)
	if err != nil {
		t.Fatalf("new view: %v", err)
	}

	out, err := v.Render(nil, 0)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "Корзина пуста") {
		t.Errorf("expected empty cart message, got:\n%s", out)
	}
	if !strings.Contains(out, "(оформление недоступно)") {
		t.Errorf("checkout must be disabled for empty cart, got:\n%s", out)
	}
}

func TestFormView_RenderErrors(t *testing.T) {
	v, err := NewFormView("contacts", DefaultContactsFormTemplate)
	if err != nil {
		t.Fatalf("new view: %v", err)
	}

	out, err := v.Render(map[string]string{
		"phone": "Введите номер телефона.",
		"email": "Введите Email.",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	// ошибки в устойчивом алфавитном порядке полей
	emailIdx := strings.Index(out, "email: Введите Email.")
	phoneIdx := strings.Index(out, "phone: Введите номер телефона.")
	if emailIdx < 0 || phoneIdx < 0 || emailIdx > phoneIdx {
		t.Errorf("expected ordered field errors, got:\n%s", out)
	}
	if !strings.Contains(out, "(кнопка неактивна)") {
		t.Errorf("submit must be disabled with errors, got:\n%s", out)
	}
}

func TestFormView_RenderClean(t *testing.T) {
	v, err := NewFormView("order", DefaultOrderFormTemplate)
	if err != nil {
		t.Fatalf("new view: %v", err)
	}

	out, err := v.Render(nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "[Далее]") {
		t.Errorf("expected active submit button, got:\n%s", out)
	}
}

func TestSuccessView_Render(t *testing.T) {
	v, err := NewSuccessView(DefaultSuccessTemplate)
	if err != nil {
		t.Fatalf("new view: %v", err)
	}

	out, err := v.Render(2200)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "Списано 2200 синапсов") {
		t.Errorf("expected total in success screen, got:\n%s", out)
	}
}

func TestNewDefaultSet(t *testing.T) {
	set, err := NewDefaultSet()
	if err != nil {
		t.Fatalf("new default set: %v", err)
	}
	if set.Catalog == nil || set.Detail == nil || set.Cart == nil ||
		set.Order == nil || set.Contacts == nil || set.Success == nil {
		t.Error("all views must be constructed")
	}
}
