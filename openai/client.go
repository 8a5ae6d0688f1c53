package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/ooba"
	"github.com/sirupsen/logrus"
)

// Interface compliance check.
var _ ooba.Client = (*Client)(nil)

// Client implements [ooba.Client] over HTTP.
// A Client is safe for concurrent use; every call owns its own stream.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	log        logrus.FieldLogger
}

// Option configures a [Client].
type Option func(*Client)

// WithBaseURL sets the server base URL. Useful for testing with httptest.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(url, "/") }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithAPIKey sets a bearer token. Local servers usually run without one.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithModel sets the model used when a request leaves Model empty.
func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Client) { c.log = log }
}

// New creates a new [Client] with the given options.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: newHTTPClient(),
		log:        discardLogger(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// newHTTPClient bounds connection setup but not the response: generation
// on a local model can take minutes, and streams are bounded by the
// caller's context instead.
func newHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// StreamChat sends a streaming chat request and returns a stream of
// fragments carrying non-empty content.
func (c *Client) StreamChat(ctx context.Context, req ooba.ChatRequest) (ooba.Stream[ooba.ChatFragment], error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("openai: %w", err)
	}
	resp, err := c.post(ctx, chatPath, c.chatBody(req, true), true)
	if err != nil {
		return nil, err
	}
	return newStream[ooba.ChatFragment](ctx, resp.Body, decodeChat, c.log.WithField("path", chatPath)), nil
}

// StreamCompletion sends a streaming completion request and returns a
// stream of text tokens.
func (c *Client) StreamCompletion(ctx context.Context, req ooba.CompletionRequest) (ooba.Stream[string], error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("openai: %w", err)
	}
	resp, err := c.post(ctx, completionsPath, c.completionBody(req, true), true)
	if err != nil {
		return nil, err
	}
	return newStream[string](ctx, resp.Body, decodeCompletion, c.log.WithField("path", completionsPath)), nil
}

// Chat sends a chat request and waits for the whole response.
func (c *Client) Chat(ctx context.Context, req ooba.ChatRequest) (ooba.ChatResponse, error) {
	if err := req.Validate(); err != nil {
		return ooba.ChatResponse{}, fmt.Errorf("openai: %w", err)
	}
	resp, err := c.post(ctx, chatPath, c.chatBody(req, false), false)
	if err != nil {
		return ooba.ChatResponse{}, err
	}
	body, err := readBody(ctx, resp)
	if err != nil {
		return ooba.ChatResponse{}, err
	}

	var apiResp apiChatResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return ooba.ChatResponse{}, malformedFrame(string(body), "invalid chat response", err)
	}
	if len(apiResp.Choices) == 0 || apiResp.Choices[0].Message == nil {
		return ooba.ChatResponse{}, malformedFrame(string(body), "chat response has no message", nil)
	}
	choice := apiResp.Choices[0]
	return ooba.ChatResponse{
		ID:      apiResp.ID,
		Model:   apiResp.Model,
		Created: unixTime(apiResp.Created),
		Message: ooba.Message{
			Role:      ooba.Role(choice.Message.Role),
			Content:   choice.Message.Content,
			Timestamp: time.Now(),
		},
		FinishReason: deref(choice.FinishReason),
		Usage:        convertUsage(apiResp.Usage),
	}, nil
}

// Complete sends a completion request and waits for the whole response.
func (c *Client) Complete(ctx context.Context, req ooba.CompletionRequest) (ooba.CompletionResponse, error) {
	if err := req.Validate(); err != nil {
		return ooba.CompletionResponse{}, fmt.Errorf("openai: %w", err)
	}
	resp, err := c.post(ctx, completionsPath, c.completionBody(req, false), false)
	if err != nil {
		return ooba.CompletionResponse{}, err
	}
	body, err := readBody(ctx, resp)
	if err != nil {
		return ooba.CompletionResponse{}, err
	}

	var apiResp apiCompletionResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return ooba.CompletionResponse{}, malformedFrame(string(body), "invalid completion response", err)
	}
	if len(apiResp.Choices) == 0 || apiResp.Choices[0].Text == nil {
		return ooba.CompletionResponse{}, malformedFrame(string(body), "completion response has no text", nil)
	}
	choice := apiResp.Choices[0]
	return ooba.CompletionResponse{
		ID:           apiResp.ID,
		Model:        apiResp.Model,
		Created:      unixTime(apiResp.Created),
		Text:         *choice.Text,
		FinishReason: deref(choice.FinishReason),
		Usage:        convertUsage(apiResp.Usage),
	}, nil
}

// post sends body to path and returns the response once the server has
// answered with a success status. Any other status is classified before a
// single byte of output is handed to the caller.
func (c *Client) post(ctx context.Context, path string, body any, streaming bool) (*http.Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("openai: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("openai: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if streaming {
		httpReq.Header.Set("Accept", "text/event-stream")
	} else {
		httpReq.Header.Set("Accept", "application/json")
	}
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	log := c.log.WithFields(logrus.Fields{"path": path, "stream": streaming})
	log.Debug("sending request")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, classifyTransport(ctx, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		e := classifyResponse(resp)
		log.WithField("status", resp.StatusCode).Debug("request rejected")
		return nil, e
	}
	if streaming && !isEventStream(resp.Header.Get("Content-Type")) {
		log.WithField("content_type", resp.Header.Get("Content-Type")).Warn("streaming response is not text/event-stream")
	}
	return resp, nil
}

func (c *Client) chatBody(req ooba.ChatRequest, stream bool) apiChatRequest {
	msgs := make([]apiMessage, len(req.Messages))
	for i, m := range req.Messages {
		msgs[i] = apiMessage{Role: string(m.Role), Content: m.Content}
	}
	return apiChatRequest{
		Model:       c.modelFor(req.Model),
		Messages:    msgs,
		Stream:      stream,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		TopP:        req.TopP,
		Stop:        req.Stop,
	}
}

func (c *Client) completionBody(req ooba.CompletionRequest, stream bool) apiCompletionRequest {
	return apiCompletionRequest{
		Model:       c.modelFor(req.Model),
		Prompt:      req.Prompt,
		Stream:      stream,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		TopP:        req.TopP,
		Stop:        req.Stop,
	}
}

func (c *Client) modelFor(model string) string {
	if model == "" {
		return c.model
	}
	return model
}

// readBody reads and closes a successful non-streaming response.
func readBody(ctx context.Context, resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransport(ctx, err)
	}
	return body, nil
}

func isEventStream(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	return err == nil && mt == "text/event-stream"
}

func convertUsage(u *apiUsage) ooba.Usage {
	if u == nil {
		return ooba.Usage{}
	}
	return ooba.Usage{PromptTokens: u.PromptTokens, CompletionTokens: u.CompletionTokens}
}

func unixTime(sec int64) time.Time {
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
