// Package placeholder serves a local /todos collection shaped like the public
// jsonplaceholder API. Writes are echoed but never stored.
package placeholder

import (
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/fasthttp/router"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/sandeepkv93/taskpager/internal/storage"
)

const (
	defaultPageLimit = 10
	requestIDHeader  = "X-Request-ID"
	totalCountHeader = "X-Total-Count"
)

type Server struct {
	repo    storage.Repository
	logger  *zap.Logger
	latency time.Duration
}

func NewServer(repo storage.Repository, logger *zap.Logger, latency time.Duration) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{repo: repo, logger: logger.Named("placeholder"), latency: latency}
}

func (s *Server) Router() *router.Router {
	r := router.New()
	r.GET("/health", s.health)
	r.GET("/todos", s.listTodos)
	r.POST("/todos", s.createTodo)
	r.GET("/todos/{id}", s.getTodo)
	r.PATCH("/todos/{id}", s.patchTodo)
	r.PUT("/todos/{id}", s.patchTodo)
	r.DELETE("/todos/{id}", s.deleteTodo)
	return r
}

// Handler wraps the router with request logging and artificial latency.
func (s *Server) Handler() fasthttp.RequestHandler {
	next := s.Router().Handler
	return func(ctx *fasthttp.RequestCtx) {
		start := time.Now()
		reqID := string(ctx.Request.Header.Peek(requestIDHeader))
		if reqID == "" {
			reqID = uuid.NewString()
		}
		ctx.Response.Header.Set(requestIDHeader, reqID)

		if s.latency > 0 {
			time.Sleep(s.latency)
		}
		next(ctx)

		s.logger.Info("request",
			zap.String("request_id", reqID),
			zap.ByteString("method", ctx.Method()),
			zap.ByteString("path", ctx.Path()),
			zap.Int("status", ctx.Response.StatusCode()),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
}

func (s *Server) health(ctx *fasthttp.RequestCtx) {
	respondJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listTodos(ctx *fasthttp.RequestCtx) {
	args := ctx.QueryArgs()
	filter := storage.TodoListFilter{UserID: queryInt(args, "userId")}

	total, err := s.repo.CountTodos(ctx, filter)
	if err != nil {
		s.internalError(ctx, "count todos", err)
		return
	}

	page, limit := queryInt(args, "_page"), queryInt(args, "_limit")
	switch {
	case page > 0:
		if limit <= 0 {
			limit = defaultPageLimit
		}
		filter.Limit = limit
		filter.Offset = (page - 1) * limit
	case limit > 0:
		filter.Limit = limit
	}

	todos, err := s.repo.ListTodos(ctx, filter)
	if err != nil {
		s.internalError(ctx, "list todos", err)
		return
	}

	out := make([]todoJSON, 0, len(todos))
	for _, t := range todos {
		out = append(out, toJSON(t))
	}
	ctx.Response.Header.Set(totalCountHeader, strconv.Itoa(total))
	ctx.Response.Header.Set("Access-Control-Expose-Headers", totalCountHeader)
	respondJSON(ctx, fasthttp.StatusOK, out)
}

func (s *Server) getTodo(ctx *fasthttp.RequestCtx) {
	id, ok := pathID(ctx)
	if !ok {
		respondJSON(ctx, fasthttp.StatusNotFound, struct{}{})
		return
	}
	todo, err := s.repo.GetTodo(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		respondJSON(ctx, fasthttp.StatusNotFound, struct{}{})
		return
	}
	if err != nil {
		s.internalError(ctx, "get todo", err)
		return
	}
	respondJSON(ctx, fasthttp.StatusOK, toJSON(todo))
}

// createTodo echoes the payload with the id the next insert would get.
func (s *Server) createTodo(ctx *fasthttp.RequestCtx) {
	body, ok := decodeObject(ctx)
	if !ok {
		return
	}
	total, err := s.repo.CountTodos(ctx, storage.TodoListFilter{})
	if err != nil {
		s.internalError(ctx, "count todos", err)
		return
	}
	body["id"] = total + 1
	respondJSON(ctx, fasthttp.StatusCreated, body)
}

// patchTodo echoes the stored record overlaid with the payload.
func (s *Server) patchTodo(ctx *fasthttp.RequestCtx) {
	id, ok := pathID(ctx)
	if !ok {
		respondJSON(ctx, fasthttp.StatusNotFound, struct{}{})
		return
	}
	body, ok := decodeObject(ctx)
	if !ok {
		return
	}

	merged := map[string]any{}
	todo, err := s.repo.GetTodo(ctx, id)
	switch {
	case err == nil:
		merged["userId"] = todo.UserID
		merged["title"] = todo.Title
		merged["completed"] = todo.Completed
	case !errors.Is(err, storage.ErrNotFound):
		s.internalError(ctx, "get todo", err)
		return
	}
	for k, v := range body {
		merged[k] = v
	}
	merged["id"] = id
	respondJSON(ctx, fasthttp.StatusOK, merged)
}

func (s *Server) deleteTodo(ctx *fasthttp.RequestCtx) {
	if _, ok := pathID(ctx); !ok {
		respondJSON(ctx, fasthttp.StatusNotFound, struct{}{})
		return
	}
	respondJSON(ctx, fasthttp.StatusOK, struct{}{})
}

func (s *Server) internalError(ctx *fasthttp.RequestCtx, op string, err error) {
	s.logger.Error(op+" failed", zap.Error(err))
	respondJSON(ctx, fasthttp.StatusInternalServerError, map[string]string{"error": "internal error"})
}

type todoJSON struct {
	UserID    int    `json:"userId"`
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

func toJSON(t storage.Todo) todoJSON {
	return todoJSON{UserID: t.UserID, ID: t.ID, Title: t.Title, Completed: t.Completed}
}

func respondJSON(ctx *fasthttp.RequestCtx, status int, payload any) {
	ctx.Response.Header.SetContentType("application/json; charset=utf-8")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(payload)
	ctx.SetBody(body)
}

func decodeObject(ctx *fasthttp.RequestCtx) (map[string]any, bool) {
	body := map[string]any{}
	if len(ctx.PostBody()) == 0 {
		return body, true
	}
	if err := json.Unmarshal(ctx.PostBody(), &body); err != nil {
		respondJSON(ctx, fasthttp.StatusBadRequest, struct{}{})
		return nil, false
	}
	return body, true
}

func pathID(ctx *fasthttp.RequestCtx) (int, bool) {
	raw, _ := ctx.UserValue("id").(string)
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func queryInt(args *fasthttp.Args, key string) int {
	n, err := args.GetUint(key)
	if err != nil {
		return 0
	}
	return n
}
