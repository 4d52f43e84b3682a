package adapters

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"stock_watchlist/internal/feature/kite/domain/entity"
	"stock_watchlist/internal/feature/kite/usecase"
)

// Config は Kite Connect の設定です。
type Config struct {
	APIKey    string `envconfig:"KITE_API_KEY"`
	APISecret string `envconfig:"KITE_API_SECRET"`
	BaseURL   string `envconfig:"KITE_API_BASE_URL" default:"https://api.kite.trade"`
	LoginBase string `envconfig:"KITE_LOGIN_URL" default:"https://kite.zerodha.com/connect/login"`
}

func (c Config) IsConfigured() bool {
	return strings.TrimSpace(c.APIKey) != "" && strings.TrimSpace(c.APISecret) != ""
}

// LoginURL builds the Kite login URL for apiKey. redirectParams is passed back
// to the callback untouched.
func LoginURL(loginBase, apiKey, redirectParams string) string {
	q := url.Values{}
	q.Set("v", "3")
	q.Set("api_key", apiKey)
	if redirectParams != "" {
		q.Set("redirect_params", redirectParams)
	}
	return loginBase + "?" + q.Encode()
}

type kiteClient struct {
	cfg  Config
	http *http.Client
}

var _ usecase.Client = (*kiteClient)(nil)

// NewKiteClient creates a Kite Connect client on httpClient.
func NewKiteClient(cfg Config, httpClient *http.Client) *kiteClient {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &kiteClient{cfg: cfg, http: httpClient}
}

func (c *kiteClient) IsConfigured() bool {
	return c.cfg.IsConfigured()
}

func (c *kiteClient) LoginURL(redirectParams string) string {
	return LoginURL(c.cfg.LoginBase, c.cfg.APIKey, redirectParams)
}

// checksum は sha256(api_key + request_token + api_secret) の16進表現です。
func checksum(apiKey, requestToken, apiSecret string) string {
	sum := sha256.Sum256([]byte(apiKey + requestToken + apiSecret))
	return hex.EncodeToString(sum[:])
}

type sessionResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	ErrorType string `json:"error_type"`
	Data      struct {
		UserID      string `json:"user_id"`
		UserName    string `json:"user_name"`
		AccessToken string `json:"access_token"`
	} `json:"data"`
}

// GenerateSession exchanges a one-time request token at POST /session/token.
func (c *kiteClient) GenerateSession(ctx context.Context, requestToken string) (*entity.Session, error) {
	form := url.Values{}
	form.Set("api_key", c.cfg.APIKey)
	form.Set("request_token", requestToken)
	form.Set("checksum", checksum(c.cfg.APIKey, requestToken, c.cfg.APISecret))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/session/token", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Kite-Version", "3")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call kite api: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var parsed sessionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &usecase.APIError{StatusCode: resp.StatusCode, ErrorType: "InvalidResponse", Message: strings.TrimSpace(string(body))}
	}
	if resp.StatusCode != http.StatusOK || parsed.Status != "success" {
		return nil, &usecase.APIError{StatusCode: resp.StatusCode, ErrorType: parsed.ErrorType, Message: parsed.Message}
	}
	if parsed.Data.AccessToken == "" {
		return nil, &usecase.APIError{StatusCode: resp.StatusCode, ErrorType: "InvalidResponse", Message: "response has no access_token"}
	}

	return &entity.Session{
		UserID:      parsed.Data.UserID,
		UserName:    parsed.Data.UserName,
		AccessToken: parsed.Data.AccessToken,
	}, nil
}
