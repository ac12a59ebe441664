package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	employeeDomain "github.com/davicafu/teamhub/internal/employee/domain"
	"github.com/davicafu/teamhub/pkg/envelope"
)

// Mensajes usados cuando el servidor no envía uno propio.
const (
	FetchFailedMessage  = "Falha ao buscar funcionários."
	AddFailedMessage    = "Falha ao adicionar funcionário."
	UpdateFailedMessage = "Falha ao atualizar funcionário."
	DeleteFailedMessage = "Falha ao excluir funcionário."
)

const defaultTimeout = 10 * time.Second

// APIError es cualquier fallo de una llamada a la API. StatusCode vale 0 si
// la petición no llegó a tener respuesta.
type APIError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string { return e.Message }

func (e *APIError) Unwrap() error { return e.Err }

// EmployeeAPIClient habla con el backend de funcionários por HTTP.
type EmployeeAPIClient struct {
	baseURL string
	client  *http.Client
	log     *zap.Logger
}

func NewEmployeeAPIClient(baseURL string, client *http.Client, log *zap.Logger) *EmployeeAPIClient {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &EmployeeAPIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		log:     log,
	}
}

func (c *EmployeeAPIClient) GetEmployees(ctx context.Context) ([]employeeDomain.Employee, error) {
	list, err := call[[]employeeDomain.Employee](ctx, c, http.MethodGet, "/employees", nil, FetchFailedMessage)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []employeeDomain.Employee{}
	}
	return list, nil
}

func (c *EmployeeAPIClient) AddEmployee(ctx context.Context, e employeeDomain.NewEmployee) (employeeDomain.InsertResult, error) {
	return call[employeeDomain.InsertResult](ctx, c, http.MethodPost, "/employees", e, AddFailedMessage)
}

func (c *EmployeeAPIClient) UpdateEmployee(ctx context.Context, id string, patch employeeDomain.EmployeePatch) (employeeDomain.Employee, error) {
	return call[employeeDomain.Employee](ctx, c, http.MethodPut, "/employees/"+url.PathEscape(id), patch, UpdateFailedMessage)
}

func (c *EmployeeAPIClient) DeleteEmployee(ctx context.Context, id string) (employeeDomain.Employee, error) {
	return call[employeeDomain.Employee](ctx, c, http.MethodDelete, "/employees/"+url.PathEscape(id), nil, DeleteFailedMessage)
}

// ---- Helpers ----

func call[T any](ctx context.Context, c *EmployeeAPIClient, method, path string, payload any, fallback string) (T, error) {
	var zero T

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return zero, &APIError{Message: fallback, Err: err}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return zero, &APIError{Message: fallback, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		c.log.Warn("⚠️ API inalcanzable", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return zero, &APIError{Message: fallback, Err: err}
	}
	defer res.Body.Close()

	var env envelope.Response[T]
	decodeErr := json.NewDecoder(res.Body).Decode(&env)

	if res.StatusCode < 200 || res.StatusCode > 299 {
		msg := fallback
		if decodeErr == nil && env.Message != "" {
			msg = env.Message
		}
		c.log.Debug("API respondió con error",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", res.StatusCode),
			zap.String("message", msg))
		return zero, &APIError{StatusCode: res.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return zero, &APIError{
			StatusCode: res.StatusCode,
			Message:    fallback,
			Err:        fmt.Errorf("respuesta ilegible: %w", decodeErr),
		}
	}

	return env.Body, nil
}
