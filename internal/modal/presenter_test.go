package modal_test

import (
	"sync"
	"testing"

	"github.com/apozdnyakova/weblarek/internal/events"
	"github.com/apozdnyakova/weblarek/internal/modal"
)

// fakeSurface записывает показанные блоки и состояние блокировки прокрутки.
type fakeSurface struct {
	mu     sync.Mutex
	shown  []string
	locked bool
}

func (s *fakeSurface) Show(content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shown = append(s.shown, content)
}

func (s *fakeSurface) ScrollLock(locked bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locked = locked
}

func (s *fakeSurface) shownCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.shown)
}

func newPresenter(t *testing.T) (*modal.Presenter, *fakeSurface, *events.Bus) {
	t.Helper()
	bus := events.NewBus()
	surface := &fakeSurface{}
	p, err := modal.NewPresenter(surface, bus, nil)
	if err != nil {
		t.Fatalf("new presenter: %v", err)
	}
	return p, surface, bus
}

func TestPresenter_OpenShowsContentAndLocksScroll(t *testing.T) {
	p, surface, _ := newPresenter(t)

	p.SetContent("карточка товара", modal.ContentProduct)
	p.Open()

	if !p.IsOpen() {
		t.Error("expected modal to be open")
	}
	if !surface.locked {
		t.Error("expected scroll to be locked while open")
	}
	if surface.shownCount() != 1 || surface.shown[0] != "карточка товара" {
		t.Errorf("expected content shown once, got %v", surface.shown)
	}
	if p.ContentType() != modal.ContentProduct {
		t.Errorf("ContentType() = %q", p.ContentType())
	}
}

func TestPresenter_SetContentWhileOpenReplaces(t *testing.T) {
	p, surface, _ := newPresenter(t)

	p.SetContent("корзина", modal.ContentCart)
	p.Open()
	p.SetContent("оформление", modal.ContentCheckout)

	if surface.shownCount() != 2 {
		t.Fatalf("expected content re-shown on replace, got %v", surface.shown)
	}
	if surface.shown[1] != "оформление" {
		t.Errorf("expected new content shown, got %q", surface.shown[1])
	}
	if p.ContentType() != modal.ContentCheckout {
		t.Errorf("ContentType() = %q, want checkout", p.ContentType())
	}
}

func TestPresenter_SetContentWhileClosedDoesNotShow(t *testing.T) {
	p, surface, _ := newPresenter(t)

	p.SetContent("карточка", modal.ContentProduct)

	if surface.shownCount() != 0 {
		t.Errorf("closed modal must not show content, got %v", surface.shown)
	}
	if p.IsOpen() {
		t.Error("SetContent must not open the modal")
	}
}

func TestPresenter_ClosePublishesModalClosed(t *testing.T) {
	p, surface, bus := newPresenter(t)

	closed := 0
	if _, err := bus.Subscribe(events.EventModalClosed, func(any) { closed++ }); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	p.SetContent("корзина", modal.ContentCart)
	p.Open()
	p.Close()

	if p.IsOpen() {
		t.Error("expected modal to be closed")
	}
	if surface.locked {
		t.Error("expected scroll unlocked after close")
	}
	if p.ContentType() != "" {
		t.Errorf("expected content type cleared, got %q", p.ContentType())
	}
	if closed != 1 {
		t.Errorf("expected 1 modalClosed event, got %d", closed)
	}

	// закрытие закрытого окна — no-op без события
	p.Close()
	if closed != 1 {
		t.Errorf("close of closed modal must not publish, got %d", closed)
	}
}

func TestPresenter_CloseModalEventClosesWindow(t *testing.T) {
	p, _, bus := newPresenter(t)

	p.SetContent("корзина", modal.ContentCart)
	p.Open()

	bus.Publish(events.EventCloseModal, nil)

	if p.IsOpen() {
		t.Error("expected closeModal event to close the window")
	}
}

func TestPresenter_ReopenShowsLastContent(t *testing.T) {
	p, surface, _ := newPresenter(t)

	p.SetContent("корзина", modal.ContentCart)
	p.Open()
	p.Open() // повторное открытие — no-op

	if surface.shownCount() != 1 {
		t.Errorf("double open must not re-show, got %v", surface.shown)
	}
}
