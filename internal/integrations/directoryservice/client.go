package directoryservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с DirectoryService
// DirectoryService владеет бизнесами и услугами; движок доступности
// обращается к нему только за чтением их метаданных
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента DirectoryService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetBusiness получает бизнес по ID
func (c *Client) GetBusiness(ctx context.Context, businessID int64) (*Business, error) {
	url := fmt.Sprintf("%s/internal/businesses/%d", c.baseURL, businessID)

	var business Business
	if err := c.getJSON(ctx, url, &business, ErrBusinessNotFound); err != nil {
		return nil, err
	}

	return &business, nil
}

// GetService получает услугу бизнеса по ID
func (c *Client) GetService(ctx context.Context, businessID, serviceID int64) (*Service, error) {
	url := fmt.Sprintf("%s/internal/businesses/%d/services/%d", c.baseURL, businessID, serviceID)

	var service Service
	if err := c.getJSON(ctx, url, &service, ErrServiceNotFound); err != nil {
		return nil, err
	}

	return &service, nil
}

// getJSON выполняет GET и декодирует JSON-ответ
// notFound возвращается при статусе 404
func (c *Client) getJSON(ctx context.Context, url string, dst interface{}, notFound error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return notFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
