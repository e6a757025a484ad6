package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/sandeepkv93/taskpager/internal/logger"
	"github.com/sandeepkv93/taskpager/internal/model"
)

const (
	DefaultBaseURL = "https://jsonplaceholder.typicode.com"
	DefaultTimeout = 10 * time.Second

	totalCountHeader = "X-Total-Count"
	requestIDHeader  = "X-Request-ID"
	jsonContentType  = "application/json; charset=UTF-8"
)

type Config struct {
	BaseURL     string
	Timeout     time.Duration
	Synthesizer Synthesizer
	Logger      *zap.Logger
	// HTTPClient is optional; tests inject one dialing an in-memory listener.
	HTTPClient *fasthttp.Client
}

// Client implements Service over fasthttp.
type Client struct {
	baseURL string
	timeout time.Duration
	synth   Synthesizer
	logger  *zap.Logger
	http    *fasthttp.Client
}

var _ Service = (*Client)(nil)

func New(cfg Config) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	synth := cfg.Synthesizer
	if synth == nil {
		synth = StableSynthesizer{Anchor: time.Now()}
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			Name:                "taskpager",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxIdleConnDuration: 30 * time.Second,
		}
	}
	return &Client{
		baseURL: baseURL,
		timeout: timeout,
		synth:   synth,
		logger:  log.Named("api"),
		http:    httpClient,
	}
}

func (c *Client) ListTasks(ctx context.Context, page, pageSize int) (model.Page, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = model.DefaultPageSize
	}
	uri := fmt.Sprintf("%s/todos?_page=%d&_limit=%d", c.baseURL, page, pageSize)
	res, err := c.do(ctx, "list", fasthttp.MethodGet, uri, nil)
	if err != nil {
		return model.Page{}, err
	}

	var records []todoRecord
	if err := json.Unmarshal(res.body, &records); err != nil {
		return model.Page{}, remoteErr("list", res.status, fmt.Errorf("decode body: %w", err))
	}

	tasks := make([]model.Task, 0, len(records))
	for _, r := range records {
		tasks = append(tasks, r.toTask(c.synth))
	}

	// without a usable header, count what this and the earlier pages must hold
	total, err := strconv.Atoi(strings.TrimSpace(res.total))
	if err != nil || total < 0 {
		total = (page-1)*pageSize + len(tasks)
	}
	return model.Page{Tasks: tasks, Total: total}, nil
}

func (c *Client) CreateTask(ctx context.Context, data model.TaskFormData) (model.Task, error) {
	res, err := c.do(ctx, "create", fasthttp.MethodPost, c.baseURL+"/todos", data)
	if err != nil {
		return model.Task{}, err
	}
	var echo echoRecord
	if err := json.Unmarshal(res.body, &echo); err != nil {
		return model.Task{}, remoteErr("create", res.status, fmt.Errorf("decode body: %w", err))
	}
	if echo.ID == nil || *echo.ID <= 0 {
		return model.Task{}, remoteErr("create", res.status, errMissingID)
	}
	return echo.patch().Apply(data.WithID(*echo.ID)), nil
}

func (c *Client) UpdateTask(ctx context.Context, id int, patch model.TaskPatch) (model.TaskPatch, error) {
	uri := fmt.Sprintf("%s/todos/%d", c.baseURL, id)
	res, err := c.do(ctx, "update", fasthttp.MethodPatch, uri, patch)
	if err != nil {
		return model.TaskPatch{}, err
	}
	var echo echoRecord
	if err := json.Unmarshal(res.body, &echo); err != nil {
		return model.TaskPatch{}, remoteErr("update", res.status, fmt.Errorf("decode body: %w", err))
	}
	return restrict(echo.patch(), patch), nil
}

func (c *Client) DeleteTask(ctx context.Context, id int) error {
	uri := fmt.Sprintf("%s/todos/%d", c.baseURL, id)
	_, err := c.do(ctx, "delete", fasthttp.MethodDelete, uri, nil)
	return err
}

type response struct {
	status int
	body   []byte
	total  string
}

func (c *Client) do(ctx context.Context, op, method, uri string, payload any) (response, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	if err := ctx.Err(); err != nil {
		return response{}, remoteErr(op, 0, err)
	}

	reqID := uuid.NewString()
	ctx = logger.ContextWithRequestID(ctx, reqID)
	log := logger.WithRequestID(ctx, c.logger).With(
		zap.String("op", op),
		zap.String("method", method),
		zap.String("uri", uri),
	)

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(uri)
	req.Header.SetMethod(method)
	req.Header.Set(requestIDHeader, reqID)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return response{}, remoteErr(op, 0, fmt.Errorf("encode body: %w", err))
		}
		req.Header.SetContentType(jsonContentType)
		req.SetBody(body)
	}

	deadline, _ := ctx.Deadline()
	start := time.Now()
	err := c.http.DoDeadline(req, resp, deadline)
	elapsed := time.Since(start)
	if err != nil {
		log.Warn("remote call failed", zap.Duration("elapsed", elapsed), zap.Error(err))
		return response{}, remoteErr(op, 0, err)
	}

	status := resp.StatusCode()
	if status < fasthttp.StatusOK || status >= fasthttp.StatusMultipleChoices {
		log.Warn("remote call rejected", zap.Int("status", status), zap.Duration("elapsed", elapsed))
		return response{}, remoteErr(op, status, nil)
	}

	log.Debug("remote call ok", zap.Int("status", status), zap.Duration("elapsed", elapsed))
	return response{
		status: status,
		body:   append([]byte(nil), resp.Body()...),
		total:  string(resp.Header.Peek(totalCountHeader)),
	}, nil
}
