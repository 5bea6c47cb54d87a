package companyservice

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

// Client клиент для работы с CompanyService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента CompanyService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetCompany получает компанию по ID
func (c *Client) GetCompany(ctx context.Context, companyID int64) (*Company, error) {
	url := fmt.Sprintf("%s/internal/companies/%d", c.baseURL, companyID)

	body, err := c.get(ctx, url, ErrCompanyNotFound)
	if err != nil {
		return nil, err
	}

	var company Company
	if err := json.Unmarshal(body, &company); err != nil {
		return nil, fmt.Errorf("%w: failed to decode company: %v", ErrInvalidResponse, err)
	}

	return &company, nil
}

// GetService получает услугу компании по ID
func (c *Client) GetService(ctx context.Context, companyID, serviceID int64) (*Service, error) {
	url := fmt.Sprintf("%s/internal/companies/%d/services/%d", c.baseURL, companyID, serviceID)

	body, err := c.get(ctx, url, ErrServiceNotFound)
	if err != nil {
		return nil, err
	}

	var service Service
	if err := json.Unmarshal(body, &service); err != nil {
		return nil, fmt.Errorf("%w: failed to decode service: %v", ErrInvalidResponse, err)
	}

	return &service, nil
}

// get выполняет GET запрос и обрабатывает общие статус-коды
func (c *Client) get(ctx context.Context, url string, notFoundErr error) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, notFoundErr
	default:
		body, _ := io.ReadAll(resp.Body)
		c.log.Warn("companyservice: unexpected status %d from %s", resp.StatusCode, url)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %v", ErrInvalidResponse, err)
	}

	return body, nil
}
