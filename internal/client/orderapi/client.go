package orderapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prathameshmate/ClickShop/internal/domain"
	apperrors "github.com/prathameshmate/ClickShop/pkg/errors"
)

// HTTPDoer is the interface for executing HTTP requests.
// Both httpclient.Client and httpclient.CircuitBreakerClient satisfy this.
type HTTPDoer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// Client talks to the upstream order API. The wire format is the legacy one
// the order API speaks: amounts travel as decimal strings ("310.00") and
// quantities as strings, so this client owns all conversion between that
// format and the minor-unit integers used everywhere else.
type Client struct {
	httpClient HTTPDoer
	baseURL    string
	logger     *slog.Logger
}

// New creates an order API client.
func New(httpClient HTTPDoer, baseURL string, logger *slog.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger,
	}
}

type wireItem struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Quantity  string `json:"quantity"`
	Img       string `json:"img,omitempty"`
}

type placeOrderRequest struct {
	Items       []wireItem `json:"items"`
	TotalAmount string     `json:"totalAmount"`
	Token       string     `json:"token"`
}

type wireOrder struct {
	OrderID     string     `json:"orderId"`
	Items       []wireItem `json:"items"`
	TotalAmount string     `json:"totalAmount"`
	Status      string     `json:"status"`
	PlacedAt    string     `json:"placedAt"`
}

// apiResponse is the order API's uniform envelope.
type apiResponse struct {
	Success      bool            `json:"success"`
	Message      string          `json:"message"`
	Data         json.RawMessage `json:"data"`
	ErrorMessage string          `json:"errorMessage"`
}

// PlaceOrder submits an order draft and returns the upstream order ID.
// The bearer token authenticates the user with the order API; a 498 response
// means it has expired.
func (c *Client) PlaceOrder(ctx context.Context, draft *domain.OrderDraft, token string) (string, error) {
	req := placeOrderRequest{
		Items:       make([]wireItem, len(draft.Items)),
		TotalAmount: draft.FormattedTotal(),
		Token:       token,
	}
	for i, item := range draft.Items {
		req.Items[i] = wireItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     domain.FormatAmount(item.Price),
			Quantity:  strconv.Itoa(item.Quantity),
			Img:       item.ImageURL,
		}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal place order request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/orders", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create place order request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(ctx, httpReq)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrSubmissionFailed, "call order API: "+err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode == apperrors.StatusSessionExpired {
		return "", apperrors.SessionExpired("")
	}

	var envelope apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return "", apperrors.SubmissionFailed(fmt.Sprintf("order API returned status %d", resp.StatusCode))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !envelope.Success {
		msg := envelope.ErrorMessage
		if msg == "" {
			msg = envelope.Message
		}
		return "", apperrors.SubmissionFailed(msg)
	}

	var data struct {
		OrderID string `json:"orderId"`
	}
	if len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, &data); err != nil {
			return "", fmt.Errorf("decode place order response: %w", err)
		}
	}

	c.logger.InfoContext(ctx, "order placed with upstream API",
		slog.String("order_id", data.OrderID),
	)

	return data.OrderID, nil
}

// PastOrders fetches the user's order history.
func (c *Client) PastOrders(ctx context.Context, token string) ([]domain.Order, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/orders", nil)
	if err != nil {
		return nil, fmt.Errorf("create past orders request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(ctx, httpReq)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrServiceUnavail, "call order API: "+err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode == apperrors.StatusSessionExpired {
		return nil, apperrors.SessionExpired("")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.ServiceUnavailable(fmt.Sprintf("order API returned status %d", resp.StatusCode))
	}

	var envelope apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode past orders response: %w", err)
	}
	if !envelope.Success {
		return nil, apperrors.ServiceUnavailable(envelope.ErrorMessage)
	}

	var wireOrders []wireOrder
	if len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, &wireOrders); err != nil {
			return nil, fmt.Errorf("decode past orders data: %w", err)
		}
	}

	orders := make([]domain.Order, 0, len(wireOrders))
	for _, wo := range wireOrders {
		order, err := wo.toDomain()
		if err != nil {
			return nil, fmt.Errorf("order %s: %w", wo.OrderID, err)
		}
		orders = append(orders, order)
	}

	return orders, nil
}

func (w wireOrder) toDomain() (domain.Order, error) {
	total, err := parseAmount(w.TotalAmount)
	if err != nil {
		return domain.Order{}, fmt.Errorf("total amount %q: %w", w.TotalAmount, err)
	}

	placedAt, err := time.Parse(time.RFC3339, w.PlacedAt)
	if err != nil {
		return domain.Order{}, fmt.Errorf("placed at %q: %w", w.PlacedAt, err)
	}

	items := make([]domain.OrderItem, len(w.Items))
	for i, wi := range w.Items {
		price, err := parseAmount(wi.Price)
		if err != nil {
			return domain.Order{}, fmt.Errorf("item %s price %q: %w", wi.ProductID, wi.Price, err)
		}
		qty, err := strconv.Atoi(wi.Quantity)
		if err != nil {
			return domain.Order{}, fmt.Errorf("item %s quantity %q: %w", wi.ProductID, wi.Quantity, err)
		}
		items[i] = domain.OrderItem{
			ProductID: wi.ProductID,
			Name:      wi.Name,
			Price:     price,
			Quantity:  qty,
			ImageURL:  wi.Img,
		}
	}

	return domain.Order{
		OrderID:     w.OrderID,
		Items:       items,
		TotalAmount: total,
		Status:      w.Status,
		PlacedAt:    placedAt,
	}, nil
}

// parseAmount converts a decimal string like "310.00" into minor units. The
// order API always sends two fractional digits but bare integers appear in
// older records, so both forms parse.
func parseAmount(s string) (int64, error) {
	whole, frac, found := strings.Cut(strings.TrimSpace(s), ".")

	negative := strings.HasPrefix(whole, "-")
	whole = strings.TrimPrefix(whole, "-")

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount")
	}

	var cents int64
	if found {
		if len(frac) != 2 {
			return 0, fmt.Errorf("invalid amount")
		}
		cents, err = strconv.ParseInt(frac, 10, 64)
		if err != nil || cents < 0 {
			return 0, fmt.Errorf("invalid amount")
		}
	}

	minor := units*100 + cents
	if negative {
		minor = -minor
	}
	return minor, nil
}
