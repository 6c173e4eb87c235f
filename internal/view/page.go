package view

import (
	"fmt"
	"io"
	"sync"
)

// Page — поверхность вывода витрины: владеет приёмником рендеринга,
// счётчиком корзины в шапке и флагом блокировки прокрутки.
// Компоненты получают её явно, без обращения к глобальному состоянию.
type Page struct {
	mu           sync.Mutex
	out          io.Writer
	scrollLocked bool
	basketCount  int
}

// NewPage создаёт страницу с заданным приёмником вывода.
func NewPage(out io.Writer) *Page {
	return &Page{out: out}
}

// Show выводит отрендеренный блок на страницу.
func (p *Page) Show(content string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out, content)
}

// ScrollLock переключает блокировку прокрутки на время открытого модального окна.
func (p *Page) ScrollLock(locked bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.scrollLocked = locked
}

// ScrollLocked сообщает текущее состояние блокировки прокрутки.
func (p *Page) ScrollLocked() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.scrollLocked
}

// SetBasketCount обновляет счётчик товаров на кнопке корзины.
func (p *Page) SetBasketCount(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.basketCount = n
}

// BasketCount возвращает значение счётчика корзины.
func (p *Page) BasketCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.basketCount
}
