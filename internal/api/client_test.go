package api

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"

	"github.com/sandeepkv93/taskpager/internal/model"
)

func newTestClient(t *testing.T, handler fasthttp.RequestHandler) *Client {
	t.Helper()
	ln := fasthttputil.NewInmemoryListener()
	srv := &fasthttp.Server{Handler: handler}
	go func() { _ = srv.Serve(ln) }()
	t.Cleanup(func() { _ = ln.Close() })

	anchor := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)
	return New(Config{
		BaseURL:     "http://todos.test/",
		Timeout:     2 * time.Second,
		Synthesizer: StableSynthesizer{Anchor: anchor},
		HTTPClient: &fasthttp.Client{
			Dial: func(string) (net.Conn, error) { return ln.Dial() },
		},
	})
}

func TestListTasksMapsRecordsAndTotal(t *testing.T) {
	var gotURI, gotRequestID string
	client := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		gotURI = string(ctx.RequestURI())
		gotRequestID = string(ctx.Request.Header.Peek("X-Request-ID"))
		ctx.Response.Header.Set("x-total-count", "200")
		ctx.SetContentType("application/json")
		ctx.SetBodyString(`[
			{"userId":1,"id":6,"title":"qui ullam ratione","completed":false},
			{"userId":1,"id":8,"title":"quo adipisci enim","completed":true}
		]`)
	})

	page, err := client.ListTasks(context.Background(), 2, 5)
	if err != nil {
		t.Fatalf("ListTasks error: %v", err)
	}
	if gotURI != "/todos?_page=2&_limit=5" {
		t.Fatalf("unexpected request uri %q", gotURI)
	}
	if gotRequestID == "" {
		t.Fatal("expected X-Request-ID header")
	}
	if page.Total != 200 {
		t.Fatalf("expected total 200, got %d", page.Total)
	}
	if len(page.Tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(page.Tasks))
	}
	first, second := page.Tasks[0], page.Tasks[1]
	if first.ID != 6 || first.Title != "qui ullam ratione" || first.Status {
		t.Fatalf("unexpected first task: %+v", first)
	}
	if !second.Status {
		t.Fatalf("expected completed to map onto status: %+v", second)
	}
	for _, task := range page.Tasks {
		if err := task.Validate(); err != nil {
			t.Fatalf("synthesized task invalid: %v", err)
		}
	}
}

func TestListTasksFallsBackWhenTotalMissing(t *testing.T) {
	client := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		ctx.SetBodyString(`[{"userId":1,"id":1,"title":"a","completed":false}]`)
	})
	page, err := client.ListTasks(context.Background(), 1, 5)
	if err != nil {
		t.Fatalf("ListTasks error: %v", err)
	}
	if page.Total != 1 {
		t.Fatalf("expected total to fall back to 1, got %d", page.Total)
	}

	page, err = client.ListTasks(context.Background(), 3, 5)
	if err != nil {
		t.Fatalf("ListTasks error: %v", err)
	}
	if page.Total != 11 {
		t.Fatalf("expected total to count earlier pages (11), got %d", page.Total)
	}
}

func TestListTasksFailureIsRemoteError(t *testing.T) {
	client := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
	})
	_, err := client.ListTasks(context.Background(), 1, 5)
	if !errors.Is(err, ErrRemote) {
		t.Fatalf("expected ErrRemote, got %v", err)
	}
	var remote *RemoteError
	if !errors.As(err, &remote) || remote.Status != 500 || remote.Op != "list" {
		t.Fatalf("unexpected remote error: %#v", err)
	}
}

func TestListTasksMalformedBody(t *testing.T) {
	client := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		ctx.SetBodyString(`{"not":"a list"`)
	})
	if _, err := client.ListTasks(context.Background(), 1, 5); !errors.Is(err, ErrRemote) {
		t.Fatalf("expected ErrRemote for malformed body, got %v", err)
	}
}

func TestCreateTaskSendsFormAndUsesAssignedID(t *testing.T) {
	var sent map[string]any
	var method string
	client := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		method = string(ctx.Method())
		_ = json.Unmarshal(ctx.PostBody(), &sent)
		ctx.SetStatusCode(fasthttp.StatusCreated)
		body := append([]byte(`{"id":201,`), ctx.PostBody()[1:]...)
		ctx.SetBody(body)
	})

	form := model.TaskFormData{Title: "Write report", Priority: model.PriorityHigh, DueDate: "2024-06-01"}
	task, err := client.CreateTask(context.Background(), form)
	if err != nil {
		t.Fatalf("CreateTask error: %v", err)
	}
	if method != fasthttp.MethodPost {
		t.Fatalf("expected POST, got %s", method)
	}
	if sent["title"] != "Write report" || sent["priority"] != "High" || sent["dueDate"] != "2024-06-01" || sent["status"] != false {
		t.Fatalf("unexpected payload: %v", sent)
	}
	want := model.Task{ID: 201, Title: "Write report", Priority: model.PriorityHigh, DueDate: "2024-06-01"}
	if task != want {
		t.Fatalf("unexpected task: %+v", task)
	}
}

func TestCreateTaskWithoutIDFails(t *testing.T) {
	client := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		ctx.SetBodyString(`{"title":"x"}`)
	})
	form := model.TaskFormData{Title: "x", Priority: model.PriorityLow, DueDate: "2024-06-01"}
	if _, err := client.CreateTask(context.Background(), form); !errors.Is(err, ErrRemote) {
		t.Fatalf("expected ErrRemote, got %v", err)
	}
}

func TestUpdateTaskSendsOnlyPatchAndRestrictsEcho(t *testing.T) {
	var sent map[string]any
	var path, method string
	client := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		path = string(ctx.Path())
		method = string(ctx.Method())
		_ = json.Unmarshal(ctx.PostBody(), &sent)
		ctx.SetBodyString(`{"userId":1,"id":3,"title":"stored title","completed":false,"priority":"High"}`)
	})

	high := model.PriorityHigh
	echo, err := client.UpdateTask(context.Background(), 3, model.TaskPatch{Priority: &high})
	if err != nil {
		t.Fatalf("UpdateTask error: %v", err)
	}
	if path != "/todos/3" || method != fasthttp.MethodPatch {
		t.Fatalf("unexpected request %s %s", method, path)
	}
	if len(sent) != 1 || sent["priority"] != "High" {
		t.Fatalf("expected only priority in payload, got %v", sent)
	}
	if echo.Priority == nil || *echo.Priority != model.PriorityHigh {
		t.Fatalf("expected echoed priority, got %+v", echo)
	}
	if echo.Title != nil || echo.Status != nil {
		t.Fatalf("expected unsent fields dropped, got %v", echo.Fields())
	}
}

func TestUpdateTaskAcceptsCompletedAlias(t *testing.T) {
	client := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		ctx.SetBodyString(`{"id":4,"completed":true}`)
	})
	done := true
	echo, err := client.UpdateTask(context.Background(), 4, model.TaskPatch{Status: &done})
	if err != nil {
		t.Fatalf("UpdateTask error: %v", err)
	}
	if echo.Status == nil || !*echo.Status {
		t.Fatalf("expected status from completed alias, got %+v", echo)
	}
}

func TestDeleteTask(t *testing.T) {
	var path, method string
	client := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		path = string(ctx.Path())
		method = string(ctx.Method())
		ctx.SetBodyString(`{}`)
	})
	if err := client.DeleteTask(context.Background(), 9); err != nil {
		t.Fatalf("DeleteTask error: %v", err)
	}
	if path != "/todos/9" || method != fasthttp.MethodDelete {
		t.Fatalf("unexpected request %s %s", method, path)
	}
}

func TestDeleteTaskNotFound(t *testing.T) {
	client := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusNotFound)
	})
	err := client.DeleteTask(context.Background(), 9)
	var remote *RemoteError
	if !errors.As(err, &remote) || remote.Status != 404 {
		t.Fatalf("expected 404 remote error, got %v", err)
	}
}

func TestCancelledContextFailsFast(t *testing.T) {
	client := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		t.Error("handler should not be reached")
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := client.DeleteTask(ctx, 1); !errors.Is(err, context.Canceled) || !errors.Is(err, ErrRemote) {
		t.Fatalf("expected cancelled remote error, got %v", err)
	}
}
