package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/apozdnyakova/weblarek/internal/domain"
	"github.com/apozdnyakova/weblarek/internal/messaging/kafka"
)

// OrderHandler принимает заказы витрины. Сумма заказа не принимается на веру:
// она пересчитывается по ценам каталога на сервере.
type OrderHandler struct {
	products domain.ProductRepository
	orders   domain.OrderRepository
	producer *kafka.Producer // опциональный Kafka producer для событий заказов
	logger   *log.Entry
}

// NewOrderHandler создаёт обработчик заказов.
func NewOrderHandler(products domain.ProductRepository, orders domain.OrderRepository, logger *log.Entry) *OrderHandler {
	if logger == nil {
		logger = log.New().WithField("component", "order-handler")
	}
	return &OrderHandler{products: products, orders: orders, logger: logger}
}

// NewOrderHandlerWithKafka создаёт обработчик, публикующий события заказов в Kafka.
func NewOrderHandlerWithKafka(products domain.ProductRepository, orders domain.OrderRepository, producer *kafka.Producer, logger *log.Entry) *OrderHandler {
	h := NewOrderHandler(products, orders, logger)
	h.producer = producer
	return h
}

// Create обрабатывает POST /order: валидирует payload, сверяет позиции и сумму
// с каталогом, сохраняет заказ и отвечает {id, total}.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var order domain.Order

	body := http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(body).Decode(&order); err != nil {
		respondError(w, http.StatusBadRequest, "некорректное тело запроса")
		return
	}

	if errs := order.ValidateInvariants(); len(errs) > 0 {
		respondError(w, http.StatusBadRequest, domain.UserMessage(errs[0]))
		return
	}

	// Сверяем позиции с каталогом и пересчитываем сумму на сервере.
	var total int64
	for _, id := range order.Items {
		product, err := h.products.Get(id)
		if err != nil {
			if errors.Is(err, domain.ErrProductNotFound) {
				respondError(w, http.StatusBadRequest, fmt.Sprintf("товар %s не найден", id))
				return
			}
			h.logger.WithError(err).WithField("product_id", id).Error("product lookup failed")
			respondError(w, http.StatusInternalServerError, "не удалось создать заказ")
			return
		}
		if !product.Purchasable() {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("товар %s нельзя купить", id))
			return
		}
		total += product.PriceValue()
	}
	if total != order.Total {
		respondError(w, http.StatusBadRequest, "неверная сумма заказа")
		return
	}

	stored := domain.StoredOrder{
		ID:        uuid.NewString(),
		Order:     order,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.orders.Create(stored); err != nil {
		h.logger.WithError(err).Error("create order failed")
		respondError(w, http.StatusInternalServerError, "не удалось создать заказ")
		return
	}

	h.logger.WithFields(log.Fields{
		"order_id": stored.ID,
		"total":    total,
		"items":    len(order.Items),
	}).Info("order accepted")

	h.publishOrderEvent(stored)

	respondJSON(w, http.StatusOK, domain.OrderConfirmation{
		ID:    stored.ID,
		Total: total,
	})
}

// publishOrderEvent публикует событие заказа в Kafka (если producer настроен).
func (h *OrderHandler) publishOrderEvent(order domain.StoredOrder) {
	if h.producer == nil {
		return
	}

	event := kafka.NewOrderEvent(kafka.EventTypeOrderCreated, order.ID, order.Order.Total, order.Order.Items, map[string]interface{}{
		"payment": string(order.Order.Payment),
	})
	if err := h.producer.PublishEvent(kafka.TopicOrderEvents, order.ID, event); err != nil {
		// Kafka опциональна: ошибка публикации не ломает приём заказа.
		h.logger.WithError(err).WithField("order_id", order.ID).Warn("failed to publish order event to kafka")
	}
}
