package view

import (
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/apozdnyakova/weblarek/internal/domain"
)

// Отображения витрины — чистая презентация. Каждое отображение получает источник
// шаблона в конструкторе; отсутствующий или битый шаблон — ошибка конструирования,
// а не паника во время рендеринга.

// funcMap — общие помощники шаблонов.
var funcMap = template.FuncMap{
	"price": FormatPrice,
}

// FormatPrice печатает цену в синапсах; товар без цены — «Бесценно».
func FormatPrice(price *int64) string {
	if price == nil {
		return "Бесценно"
	}
	return fmt.Sprintf("%d синапсов", *price)
}

func parse(name, src string) (*template.Template, error) {
	if strings.TrimSpace(src) == "" {
		return nil, fmt.Errorf("template %q: empty source", name)
	}
	tmpl, err := template.New(name).Funcs(funcMap).Parse(src)
	if err != nil {
		return nil, fmt.Errorf("template %q: %w", name, err)
	}
	return tmpl, nil
}

func execute(tmpl *template.Template, data any) (string, error) {
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render %q: %w", tmpl.Name(), err)
	}
	return sb.String(), nil
}

// DefaultCatalogTemplate — список карточек каталога.
const DefaultCatalogTemplate = `=== Каталог ===
{{- range .}}
[{{.ID}}] {{.Title}} — {{price .Price}} ({{.Category}})
{{- end}}`

// CatalogView рендерит список товаров галереи.
type CatalogView struct {
	tmpl *template.Template
}

// NewCatalogView создаёт отображение каталога с заданным шаблоном.
func NewCatalogView(tmplSrc string) (*CatalogView, error) {
	tmpl, err := parse("catalog", tmplSrc)
	if err != nil {
		return nil, err
	}
	return &CatalogView{tmpl: tmpl}, nil
}

// Render возвращает готовый блок каталога.
func (v *CatalogView) Render(products []domain.Product) (string, error) {
	return execute(v.tmpl, products)
}

// DetailData — данные карточки товара.
type DetailData struct {
	Product domain.Product
	// InCart переключает кнопку карточки между «в корзину» и «убрать из корзины».
	InCart bool
}

// Affordance возвращает подпись кнопки карточки. Товар без цены купить нельзя —
// кнопка недоступна.
func (d DetailData) Affordance() string {
	switch {
	case !d.Product.Purchasable():
		return "(недоступно)"
	case d.InCart:
		return "[убрать из корзины]"
	default:
		return "[в корзину]"
	}
}

// DefaultDetailTemplate — карточка товара в модальном окне.
const DefaultDetailTemplate = `{{.Product.Title}}
Категория: {{.Product.Category}}
{{.Product.Description}}
Цена: {{price .Product.Price}}
{{.Affordance}}`

// DetailView рендерит карточку товара.
type DetailView struct {
	tmpl *template.Template
}

// NewDetailView создаёт отображение карточки с заданным шаблоном.
func NewDetailView(tmplSrc string) (*DetailView, error) {
	tmpl, err := parse("detail", tmplSrc)
	if err != nil {
		return nil, err
	}
	return &DetailView{tmpl: tmpl}, nil
}

// Render возвращает готовую карточку товара.
func (v *DetailView) Render(p domain.Product, inCart bool) (string, error) {
	return execute(v.tmpl, DetailData{Product: p, InCart: inCart})
}

// CartData — данные списка корзины.
type CartData struct {
	Items []domain.Product
	Total int64
	// CanCheckout выключает кнопку оформления для пустой корзины.
	CanCheckout bool
}

// DefaultCartTemplate — содержимое корзины с итогом.
const DefaultCartTemplate = `=== Корзина ===
{{- if .Items}}
{{- range $i, $p := .Items}}
{{inc $i}}. {{$p.Title}} — {{price $p.Price}}
{{- end}}
Итого: {{.Total}} синапсов
{{- else}}
Корзина пуста
{{- end}}
{{if .CanCheckout}}[Оформить]{{else}}(оформление недоступно){{end}}`

// CartView рендерит список строк корзины и итог.
type CartView struct {
	tmpl *template.Template
}

// NewCartView создаёт отображение корзины с заданным шаблоном.
func NewCartView(tmplSrc string) (*CartView, error) {
	tmpl, err := template.New("cart").Funcs(template.FuncMap{
		"price": FormatPrice,
		"inc":   func(i int) int { return i + 1 },
	}).Parse(tmplSrc)
	if err != nil {
		return nil, fmt.Errorf("template %q: %w", "cart", err)
	}
	return &CartView{tmpl: tmpl}, nil
}

// Render возвращает готовый блок корзины.
func (v *CartView) Render(items []domain.Product, total int64) (string, error) {
	return execute(v.tmpl, CartData{
		Items:       items,
		Total:       total,
		CanCheckout: len(items) > 0,
	})
}

// FormData — данные формы шага оформления.
type FormData struct {
	// Errors — сообщения по полям; пока они не пусты, кнопка отправки неактивна.
	Errors map[string]string
}

// ErrorLines возвращает ошибки полей в устойчивом порядке.
func (d FormData) ErrorLines() []string {
	if len(d.Errors) == 0 {
		return nil
	}
	fields := make([]string, 0, len(d.Errors))
	for f := range d.Errors {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		lines = append(lines, f+": "+d.Errors[f])
	}
	return lines
}

// CanSubmit сообщает, активна ли кнопка отправки шага.
func (d FormData) CanSubmit() bool {
	return len(d.Errors) == 0
}

// DefaultOrderFormTemplate — первый шаг оформления: оплата и адрес.
const DefaultOrderFormTemplate = `=== Оформление: оплата и адрес ===
Способ оплаты: (онлайн | при получении) — выбор одного снимает другой
Адрес доставки: ________
{{- range .ErrorLines}}
! {{.}}
{{- end}}
{{if .CanSubmit}}[Далее]{{else}}(кнопка неактивна){{end}}`

// DefaultContactsFormTemplate — второй шаг оформления: контакты.
const DefaultContactsFormTemplate = `=== Оформление: контакты ===
Email: ________
Телефон: ________
{{- range .ErrorLines}}
! {{.}}
{{- end}}
{{if .CanSubmit}}[Оплатить]{{else}}(кнопка неактивна){{end}}`

// FormView рендерит форму одного шага оформления.
type FormView struct {
	tmpl *template.Template
}

// NewFormView создаёт отображение формы с заданным шаблоном.
func NewFormView(name, tmplSrc string) (*FormView, error) {
	tmpl, err := parse(name, tmplSrc)
	if err != nil {
		return nil, err
	}
	return &FormView{tmpl: tmpl}, nil
}

// Render возвращает форму с ошибками полей (или без них).
func (v *FormView) Render(fieldErrors map[string]string) (string, error) {
	return execute(v.tmpl, FormData{Errors: fieldErrors})
}

// SuccessData — данные экрана подтверждения.
type SuccessData struct {
	Total int64
}

// DefaultSuccessTemplate — подтверждение оформленного заказа.
const DefaultSuccessTemplate = `Заказ оформлен!
Списано {{.Total}} синапсов`

// SuccessView рендерит экран успешного оформления.
type SuccessView struct {
	tmpl *template.Template
}

// NewSuccessView создаёт отображение подтверждения с заданным шаблоном.
func NewSuccessView(tmplSrc string) (*SuccessView, error) {
	tmpl, err := parse("success", tmplSrc)
	if err != nil {
		return nil, err
	}
	return &SuccessView{tmpl: tmpl}, nil
}

// Render возвращает экран подтверждения со списанной суммой.
func (v *SuccessView) Render(total int64) (string, error) {
	return execute(v.tmpl, SuccessData{Total: total})
}

// Set собирает все отображения витрины с шаблонами по умолчанию.
type Set struct {
	Catalog  *CatalogView
	Detail   *DetailView
	Cart     *CartView
	Order    *FormView
	Contacts *FormView
	Success  *SuccessView
}

// NewDefaultSet создаёт комплект отображений со встроенными шаблонами.
func NewDefaultSet() (*Set, error) {
	catalog, err := NewCatalogView(DefaultCatalogTemplate)
	if err != nil {
		return nil, err
	}
	detail, err := NewDetailView(DefaultDetailTemplate)
	if err != nil {
		return nil, err
	}
	cart, err := NewCartView(DefaultCartTemplate)
	if err != nil {
		return nil, err
	}
	order, err := NewFormView("order", DefaultOrderFormTemplate)
	if err != nil {
		return nil, err
	}
	contacts, err := NewFormView("contacts", DefaultContactsFormTemplate)
	if err != nil {
		return nil, err
	}
	success, err := NewSuccessView(DefaultSuccessTemplate)
	if err != nil {
		return nil, err
	}
	return &Set{
		Catalog:  catalog,
		Detail:   detail,
		Cart:     cart,
		Order:    order,
		Contacts: contacts,
		Success:  success,
	}, nil
}
