package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/apozdnyakova/weblarek/internal/domain"
)

const defaultTimeout = 15 * time.Second

// Error — ошибка уровня API: сервер ответил не-2xx статусом. Message берётся из
// поля error ответа и показывается пользователю как есть.
type Error struct {
	StatusCode int
	Message    string
}

// Error возвращает пользовательское сообщение без технических префиксов.
func (e *Error) Error() string {
	return e.Message
}

// Client ходит в REST API магазина: каталог, карточка товара, создание заказа.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Entry
}

// Option настраивает клиент при создании.
type Option func(*Client)

// WithTimeout задаёт таймаут HTTP-запросов.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient подменяет HTTP-клиент (для тестов).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient создаёт клиент API с базовым URL вида https://host/api/weblarek.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     log.WithField("component", "api-client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchCatalog запрашивает каталог: GET /product/.
func (c *Client) FetchCatalog(ctx context.Context) (domain.ProductList, error) {
	var list domain.ProductList
	if err := c.get(ctx, "/product/", &list); err != nil {
		return domain.ProductList{}, err
	}
	return list, nil
}

// FetchProduct запрашивает один товар: GET /product/{id}.
func (c *Client) FetchProduct(ctx context.Context, id string) (domain.Product, error) {
	var p domain.Product
	if err := c.get(ctx, "/product/"+id, &p); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

// SubmitOrder отправляет заказ: POST /order. Отклонённый сервером заказ
// возвращается как *Error с сообщением из ответа.
func (c *Client) SubmitOrder(ctx context.Context, order domain.Order) (domain.OrderConfirmation, error) {
	body, err := json.Marshal(order)
	if err != nil {
		return domain.OrderConfirmation{}, fmt.Errorf("marshal order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/order", bytes.NewReader(body))
	if err != nil {
		return domain.OrderConfirmation{}, fmt.Errorf("build order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var confirmation domain.OrderConfirmation
	if err := c.do(req, &confirmation); err != nil {
		return domain.OrderConfirmation{}, err
	}
	return confirmation, nil
}

func (c *Client) get(ctx context.Context, uri string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+uri, nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", uri, err)
	}
	req.Header.Set("Accept", "application/json")
	return c.do(req, out)
}

// do выполняет запрос и декодирует ответ. Не-2xx статус превращается в *Error
// с сообщением из JSON-поля error (или статусом ответа, если тела нет).
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithError(err).WithField("url", req.URL.String()).Warn("api request failed")
		return fmt.Errorf("request %s: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.apiError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response %s: %w", req.URL.Path, err)
	}
	return nil
}

func (c *Client) apiError(resp *http.Response) error {
	apiErr := &Error{
		StatusCode: resp.StatusCode,
		Message:    resp.Status,
	}

	var envelope struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && envelope.Error != "" {
		apiErr.Message = envelope.Error
	}

	c.logger.WithFields(log.Fields{
		"status":  resp.StatusCode,
		"message": apiErr.Message,
	}).Warn("api returned error")
	return apiErr
}

var _ domain.Client = (*Client)(nil)
