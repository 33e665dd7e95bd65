package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/contest-api/internal/config"
)

// CheckoutSession — запись шлюза о платежной сессии. PaymentIntentID —
// идентификатор транзакции, который служит ключом идемпотентности
// при фиксации оплаты.
type CheckoutSession struct {
	ID              string
	URL             string
	PaymentIntentID string
	PaymentStatus   string
	Currency        string
	AmountTotal     int64
	Metadata        map[string]string
}

// IsPaid сообщает, подтверждает ли шлюз оплату сессии
func (s *CheckoutSession) IsPaid() bool {
	return s.PaymentStatus == "paid"
}

// CheckoutGateway определяет операции платежного шлюза
type CheckoutGateway interface {
	// CreateCheckoutSession создает сессию оплаты и возвращает её с redirect URL
	CreateCheckoutSession(ctx context.Context, params CreateCheckoutParams) (*CheckoutSession, error)
	// GetCheckoutSession возвращает авторитетную запись сессии по её ID
	GetCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error)
}

// CreateCheckoutParams описывает создаваемую сессию оплаты
type CreateCheckoutParams struct {
	ContestID        string
	ContestName      string
	ParticipantEmail string
	ParticipantID    string
	// EntryPrice в основной денежной единице; шлюз принимает минорные единицы
	EntryPrice float64
	Currency   string
}

// StripeCheckoutGateway реализует CheckoutGateway поверх Stripe REST API
type StripeCheckoutGateway struct {
	cfg        config.PaymentConfig
	httpClient *http.Client
}

// NewStripeCheckoutGateway создает новый клиент платежного шлюза
func NewStripeCheckoutGateway(cfg config.PaymentConfig) (*StripeCheckoutGateway, error) {
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("payment secret key is required")
	}
	if cfg.APIBase == "" {
		cfg.APIBase = "https://api.stripe.com"
	}
	return &StripeCheckoutGateway{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// CreateCheckoutSession создает Stripe Checkout Session в режиме payment
func (g *StripeCheckoutGateway) CreateCheckoutSession(ctx context.Context, params CreateCheckoutParams) (*CheckoutSession, error) {
	currency := strings.ToLower(params.Currency)
	if currency == "" {
		currency = "usd"
	}

	values := url.Values{}
	values.Set("mode", "payment")
	values.Set("success_url", g.cfg.SuccessURL)
	values.Set("cancel_url", g.cfg.CancelURL)
	values.Set("client_reference_id", uuid.NewString())
	values.Set("customer_email", params.ParticipantEmail)
	values.Set("line_items[0][quantity]", "1")
	values.Set("line_items[0][price_data][currency]", currency)
	values.Set("line_items[0][price_data][product_data][name]", params.ContestName)
	values.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(int64(params.EntryPrice*100), 10))
	values.Set("metadata[contest_id]", params.ContestID)
	values.Set("metadata[user_id]", params.ParticipantID)
	values.Set("metadata[user_email]", params.ParticipantEmail)

	var payload stripeSessionPayload
	if err := g.doForm(ctx, http.MethodPost, "/v1/checkout/sessions", values, &payload); err != nil {
		return nil, err
	}
	return payload.toSession(), nil
}

// GetCheckoutSession возвращает авторитетную запись сессии
func (g *StripeCheckoutGateway) GetCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, fmt.Errorf("session id is required")
	}

	var payload stripeSessionPayload
	path := "/v1/checkout/sessions/" + url.PathEscape(sessionID)
	if err := g.doForm(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return nil, err
	}
	return payload.toSession(), nil
}

func (g *StripeCheckoutGateway) doForm(ctx context.Context, method, path string, values url.Values, dest interface{}) error {
	var body io.Reader
	if values != nil {
		body = strings.NewReader(values.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, g.cfg.APIBase+path, body)
	if err != nil {
		return fmt.Errorf("failed to create gateway request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.cfg.SecretKey)
	if values != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("gateway responded status=%d body=%s", resp.StatusCode, string(raw))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("failed to parse gateway response: %w", err)
	}
	return nil
}

type stripeSessionPayload struct {
	ID            string            `json:"id"`
	URL           string            `json:"url"`
	PaymentIntent string            `json:"payment_intent"`
	PaymentStatus string            `json:"payment_status"`
	Currency      string            `json:"currency"`
	AmountTotal   int64             `json:"amount_total"`
	Metadata      map[string]string `json:"metadata"`
}

func (p *stripeSessionPayload) toSession() *CheckoutSession {
	return &CheckoutSession{
		ID:              p.ID,
		URL:             p.URL,
		PaymentIntentID: p.PaymentIntent,
		PaymentStatus:   p.PaymentStatus,
		Currency:        p.Currency,
		AmountTotal:     p.AmountTotal,
		Metadata:        p.Metadata,
	}
}
