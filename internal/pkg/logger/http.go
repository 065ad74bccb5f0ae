package logger

import (
	"bytes"
	"io"
	log "log/slog"
	"net/http"
	"time"
)

const bodyLogLimit = 1000

// HTTPTransport 记录外部 HTTP 调用，只在失败时附带响应体
type HTTPTransport struct {
	Name      string
	Transport http.RoundTripper
}

func NewHTTPTransport(name string) *HTTPTransport {
	return &HTTPTransport{Name: name, Transport: http.DefaultTransport}
}

func (t *HTTPTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.Transport.RoundTrip(req)
	elapsed := time.Since(start)

	fields := []any{
		log.String("target", t.Name),
		log.String("method", req.Method),
		log.String("path", req.URL.Path),
		log.Duration("latency", elapsed),
	}

	if err != nil {
		log.ErrorContext(req.Context(), "HTTP Call Error", append(fields, log.Any("err", err))...)
		return nil, err
	}
	fields = append(fields, log.Int("status", resp.StatusCode))

	if resp.StatusCode >= http.StatusBadRequest {
		var resBody []byte
		if resp.Body != nil {
			resBody, _ = io.ReadAll(resp.Body)
			resp.Body = io.NopCloser(bytes.NewBuffer(resBody))
		}
		log.WarnContext(req.Context(), "HTTP Call Failed", append(fields, log.String("res_body", truncate(string(resBody), bodyLogLimit)))...)
	} else if elapsed > 500*time.Millisecond {
		log.WarnContext(req.Context(), "HTTP Call Slow", fields...)
	} else {
		log.InfoContext(req.Context(), "HTTP Call", fields...)
	}
	return resp, nil
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "...[truncated]"
}
