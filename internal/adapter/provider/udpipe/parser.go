// Package udpipe implements provider.DependencyParser against a UDPipe REST
// service (the /process endpoint of udpipe_server or LINDAT's hosted instance).
package udpipe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/KleeAn/automated-dictionary-linking/internal/provider"
)

const (
	defaultBaseURL = "http://localhost:8001"
	defaultModel   = "german-hdt-ud-2.12"
)

// Parser sends text to a UDPipe REST service and decodes the CoNLL-U result.
type Parser struct {
	baseURL    string
	model      string
	httpClient *http.Client
	log        *slog.Logger
}

// NewParser creates a Parser against the default local UDPipe service.
func NewParser(logger *slog.Logger) *Parser {
	return NewParserWithURL(defaultBaseURL, defaultModel, logger)
}

// NewParserWithURL creates a Parser with a custom base URL and model name.
func NewParserWithURL(baseURL, model string, logger *slog.Logger) *Parser {
	if model == "" {
		model = defaultModel
	}
	return &Parser{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        logger.With("adapter", "udpipe"),
	}
}

// Parse runs tokenizer, tagger and parser over text and returns the parsed
// sentences.
func (p *Parser) Parse(ctx context.Context, text string) ([]provider.Sentence, error) {
	form := url.Values{
		"tokenizer": {""},
		"tagger":    {""},
		"parser":    {""},
		"model":     {p.model},
		"data":      {text},
	}

	p.log.DebugContext(ctx, "udpipe request", slog.Int("text_len", len(text)))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.baseURL+"/process", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("udpipe: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.doWithRetry(ctx, req, form)
	if err != nil {
		p.log.ErrorContext(ctx, "udpipe request failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("udpipe: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("udpipe: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("udpipe: read body: %w", err)
	}

	var apiResp struct {
		Result string `json:"result"`
	}
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("udpipe: decode json: %w", err)
	}

	sentences, err := decodeCoNLLU(apiResp.Result)
	if err != nil {
		return nil, fmt.Errorf("udpipe: %w", err)
	}

	p.log.DebugContext(ctx, "udpipe response",
		slog.Int("status", resp.StatusCode),
		slog.Int("sentences", len(sentences)),
	)
	return sentences, nil
}

// doWithRetry executes the request with a single retry on 5xx or network
// errors. The request body is rebuilt for the second attempt.
func (p *Parser) doWithRetry(ctx context.Context, req *http.Request, form url.Values) (*http.Response, error) {
	resp, err := p.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}
	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	p.log.WarnContext(ctx, "udpipe retry", slog.String("reason", reason))

	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	time.Sleep(500 * time.Millisecond)

	retryReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		req.URL.String(), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	retryReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return p.httpClient.Do(retryReq)
}
