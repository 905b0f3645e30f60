package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/platewise/platewise-backend/internal/pkg/envutil"
	"github.com/platewise/platewise-backend/internal/pkg/logger"
)

// Client sends transactional email. Subscription lifecycle mail is
// best-effort: callers log failures and move on.
type Client interface {
	Send(ctx context.Context, req SendEmailRequest) error
}

type Config struct {
	APIKey           string
	BaseURL          string
	DefaultFromEmail string
	DefaultFromName  string
	Timeout          time.Duration
}

func ConfigFromEnv(log *logger.Logger) Config {
	timeoutSec := envutil.GetEnvAsInt("SENDGRID_TIMEOUT_SECONDS", 30, log)
	return Config{
		APIKey:           strings.TrimSpace(os.Getenv("SENDGRID_API_KEY")),
		BaseURL:          strings.TrimSpace(os.Getenv("SENDGRID_BASE_URL")),
		DefaultFromEmail: strings.TrimSpace(os.Getenv("SENDGRID_FROM_EMAIL")),
		DefaultFromName:  strings.TrimSpace(os.Getenv("SENDGRID_FROM_NAME")),
		Timeout:          time.Duration(timeoutSec) * time.Second,
	}
}

// NewFromEnv returns a SendGrid-backed client, or a logging no-op client when
// no API key is configured so local setups work without an account.
func NewFromEnv(log *logger.Logger) (Client, error) {
	cfg := ConfigFromEnv(log)
	if cfg.APIKey == "" {
		log.Warn("SENDGRID_API_KEY not set, email delivery disabled")
		return &noopClient{log: log.With("client", "NoopEmailClient")}, nil
	}
	return New(log, cfg)
}

func New(log *logger.Logger, cfg Config) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("missing SENDGRID_API_KEY")
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = "https://api.sendgrid.com"
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &client{
		log:        log.With("client", "SendGridClient"),
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

type EmailAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type SendEmailRequest struct {
	From    EmailAddress
	To      []EmailAddress
	Subject string
	Text    string
	HTML    string
}

type client struct {
	log        *logger.Logger
	cfg        Config
	httpClient *http.Client
}

// SendGrid mail send wire types.
type mailSendRequest struct {
	Personalizations []personalization `json:"personalizations"`
	From             EmailAddress      `json:"from"`
	Subject          string            `json:"subject,omitempty"`
	Content          []mailContent     `json:"content,omitempty"`
}

type personalization struct {
	To []EmailAddress `json:"to"`
}

type mailContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

func (c *client) Send(ctx context.Context, req SendEmailRequest) error {
	if strings.TrimSpace(req.From.Email) == "" {
		req.From.Email = c.cfg.DefaultFromEmail
		if strings.TrimSpace(req.From.Name) == "" {
			req.From.Name = c.cfg.DefaultFromName
		}
	}
	if strings.TrimSpace(req.From.Email) == "" {
		return fmt.Errorf("sendgrid: From.Email required (or set SENDGRID_FROM_EMAIL)")
	}
	if len(req.To) == 0 {
		return fmt.Errorf("sendgrid: at least one recipient required")
	}

	var content []mailContent
	if strings.TrimSpace(req.Text) != "" {
		content = append(content, mailContent{Type: "text/plain", Value: req.Text})
	}
	if strings.TrimSpace(req.HTML) != "" {
		content = append(content, mailContent{Type: "text/html", Value: req.HTML})
	}
	if len(content) == 0 {
		return fmt.Errorf("sendgrid: empty message body")
	}

	body, err := json.Marshal(mailSendRequest{
		Personalizations: []personalization{{To: req.To}},
		From:             req.From,
		Subject:          strings.TrimSpace(req.Subject),
		Content:          content,
	})
	if err != nil {
		return fmt.Errorf("sendgrid: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/v3/mail/send", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("sendgrid: build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("sendgrid: send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("sendgrid: send failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}
	return nil
}

type noopClient struct {
	log *logger.Logger
}

func (n *noopClient) Send(_ context.Context, req SendEmailRequest) error {
	n.log.Info("Email delivery disabled, dropping message", "subject", req.Subject, "recipients", len(req.To))
	return nil
}
