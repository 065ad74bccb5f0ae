package mail

import (
	"Journaly/internal/api/config"
	"Journaly/internal/pkg/logger"
	"context"
	log "log/slog"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// Sender 发送一封通知邮件
type Sender interface {
	Send(ctx context.Context, job *Job) error
}

type Client struct {
	http     *resty.Client
	from     string
	fromName string
	siteURL  string
}

type sendRequest struct {
	From     string   `json:"from"`
	FromName string   `json:"from_name,omitempty"`
	To       string   `json:"to"`
	Subject  string   `json:"subject"`
	HTML     string   `json:"html"`
	Tags     []string `json:"tags,omitempty"`
}

type sendResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

func NewClient(cfg config.MailConfig, siteURL string) *Client {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	httpClient := resty.New().
		SetBaseURL(cfg.URL).
		SetTimeout(timeout).
		SetTransport(logger.NewHTTPTransport("mail")).
		SetAuthToken(cfg.ApiKey).
		SetHeader("Content-Type", "application/json").
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal)

	return &Client{
		http:     httpClient,
		from:     cfg.From,
		fromName: cfg.FromName,
		siteURL:  siteURL,
	}
}

// Send 渲染并调用邮件服务商接口
func (c *Client) Send(ctx context.Context, job *Job) error {
	if job.To == "" {
		return errors.Errorf("mail job %s has no recipient", job.ID)
	}

	subject, body, err := Render(job, c.siteURL)
	if err != nil {
		return errors.Wrapf(err, "render mail job %s", job.ID)
	}

	var result sendResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(&sendRequest{
			From:     c.from,
			FromName: c.fromName,
			To:       job.To,
			Subject:  subject,
			HTML:     body,
			Tags:     []string{string(job.Kind)},
		}).
		SetResult(&result).
		Post("/send")
	if err != nil {
		return errors.Wrap(err, "mail provider request failed")
	}
	if resp.IsError() {
		return errors.Errorf("mail provider responded %d: %s", resp.StatusCode(), resp.String())
	}

	log.InfoContext(ctx, "mail sent", "job_id", job.ID, "kind", job.Kind, "provider_id", result.ID)
	return nil
}
