package http

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	c "github.com/d0ngw/hitcounter/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockController struct {
	BaseController
}

func (p *MockController) Index(w http.ResponseWriter, r *http.Request) {
	err := r.ParseForm()
	if err != nil {
		w.Write([]byte("Error:" + err.Error()))
		return
	}
	ret := fmt.Sprintf("method:%s, param id:%s, path id:%s", r.Method, r.FormValue("id"), r.PathValue("id"))
	w.Write([]byte(ret))
}

func (p *MockController) Conflict(w http.ResponseWriter, r *http.Request) error {
	return NewStatusError(http.StatusConflict, "Item %s already exists", r.PathValue("id"))
}

func (p *MockController) Panic(w http.ResponseWriter, r *http.Request) {
	panic("unexpected")
}

func newMockService(t *testing.T) *Service {
	controller := &MockController{
		BaseController: BaseController{
			Name: "Mock",
			PatternMethods: map[string]string{
				"GET /{$}":               "Index",
				"GET /index/{id}":        "Index",
				"POST /conflict/{id}":    "Conflict",
				"GET /panic":             "Panic",
				"localhost/host/{id...}": "Index",
			},
		},
	}

	httpConfig := NewConfig("127.0.0.1:0")
	httpConfig.CORSOrigins = []string{"*"}
	httpConfig.AccessLog = true
	require.NoError(t, httpConfig.RegMiddleware(RecoverMiddleware))
	require.NoError(t, httpConfig.RegMiddleware(SecurityHeadersMiddleware))
	require.NoError(t, httpConfig.RegController(controller))

	httpSvc := &Service{Conf: httpConfig}
	require.NoError(t, httpSvc.Init())
	return httpSvc
}

func getBody(t *testing.T, resp *http.Response) string {
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestHttpServer(t *testing.T) {
	httpSvc := newMockService(t)
	ok := httpSvc.Start()
	require.True(t, ok)
	defer httpSvc.Stop()

	base := "http://" + httpSvc.ListenAddr()
	resp, err := http.Get(base)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, "method:GET, param id:, path id:", getBody(t, resp))

	resp, err = http.Get(base + "/index/id1?id=id2")
	require.NoError(t, err)
	assert.EqualValues(t, "method:GET, param id:id2, path id:id1", getBody(t, resp))

	resp, err = http.Get(base + "/nothing?id=id2")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"status":404,"error":"Not Found","message":"Resource not found: GET /nothing"}`, getBody(t, resp))
}

func TestServiceNotFoundAndErrors(t *testing.T) {
	handler := newMockService(t).Handler()
	require.NotNil(t, handler)

	var logs bytes.Buffer
	c.SetLogger(c.NewZapLoggerWithWriter(&c.LogConfig{Level: "debug", NoCaller: true}, &logs))
	defer c.SetLogger(c.NewZapLogger(&c.LogConfig{Level: "info", NoCaller: true}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/index/a", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"status":404,"error":"Not Found","message":"Resource not found: PATCH /index/a"}`, w.Body.String())
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/conflict/x", nil))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"status":409,"error":"Conflict","message":"Item x already exists"}`, w.Body.String())
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"status":500,"error":"Internal Server Error","message":"Internal Server Error"}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "unexpected")

	assert.Regexp(t, `WARN\s+Resource not found: PATCH /index/a`, logs.String())
	assert.Regexp(t, `WARN\s+Item x already exists`, logs.String())
	assert.Regexp(t, `ERROR\s+GET /panic panic:unexpected`, logs.String())
	assert.Contains(t, logs.String(), "goroutine")

	w = httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/index/a", nil)
	r.Header.Set("Origin", "http://example.com")
	handler.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestServiceInitConflict(t *testing.T) {
	httpConfig := NewConfig("127.0.0.1:0")
	h := func(w http.ResponseWriter, r *http.Request) {}
	require.NoError(t, httpConfig.RegHandleFunc("GET /a/{x}", h))
	require.NoError(t, httpConfig.RegHandleFunc("GET /a/{y}", h))
	assert.Error(t, httpConfig.RegHandleFunc("GET /a/{y}", h))
	assert.Error(t, httpConfig.RegHandleFunc("GET /b", nil))

	httpSvc := &Service{Conf: httpConfig}
	assert.Error(t, httpSvc.Init())
	assert.Nil(t, httpSvc.Handler())
	assert.False(t, httpSvc.Start())
}

func TestServiceStopWaitsForRequests(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	httpConfig := NewConfig("127.0.0.1:0")
	require.NoError(t, httpConfig.RegHandleFunc("GET /slow", func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
		w.Write([]byte("done"))
	}))
	httpSvc := &Service{Conf: httpConfig}
	require.NoError(t, httpSvc.Init())
	require.True(t, httpSvc.Start())
	base := "http://" + httpSvc.ListenAddr()

	type result struct {
		body string
		err  error
	}
	results := make(chan result, 1)
	go func() {
		resp, err := http.Get(base + "/slow")
		if err != nil {
			results <- result{err: err}
			return
		}
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		results <- result{body: string(body), err: err}
	}()
	<-entered

	stopped := make(chan bool, 1)
	go func() {
		stopped <- httpSvc.Stop()
	}()

	select {
	case <-stopped:
		t.Fatal("Stop returned while a request was in flight")
	case <-time.After(100 * time.Millisecond):
	}
	close(release)

	res := <-results
	require.NoError(t, res.err)
	assert.Equal(t, "done", res.body)
	assert.True(t, <-stopped)

	_, err := http.Get(base + "/slow")
	assert.Error(t, err)
}
