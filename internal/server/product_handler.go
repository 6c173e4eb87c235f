package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/apozdnyakova/weblarek/internal/domain"
)

// ProductHandler отдаёт каталог: список и карточку товара.
type ProductHandler struct {
	repo   domain.ProductRepository
	logger *log.Entry
}

// NewProductHandler создаёт обработчик каталога.
func NewProductHandler(repo domain.ProductRepository, logger *log.Entry) *ProductHandler {
	if logger == nil {
		logger = log.New().WithField("component", "product-handler")
	}
	return &ProductHandler{repo: repo, logger: logger}
}

// List обрабатывает GET /product/ и возвращает {total, items}.
func (h *ProductHandler) List(w http.ResponseWriter, _ *http.Request) {
	products, err := h.repo.List()
	if err != nil {
		h.logger.WithError(err).Error("list products failed")
		respondError(w, http.StatusInternalServerError, "не удалось получить список товаров")
		return
	}
	if products == nil {
		products = []domain.Product{}
	}

	respondJSON(w, http.StatusOK, domain.ProductList{
		Total: len(products),
		Items: products,
	})
}

// Get обрабатывает GET /product/{id}.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := h.repo.Get(id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "товар не найден")
			return
		}
		h.logger.WithError(err).WithField("product_id", id).Error("get product failed")
		respondError(w, http.StatusInternalServerError, "не удалось получить товар")
		return
	}

	respondJSON(w, http.StatusOK, product)
}
