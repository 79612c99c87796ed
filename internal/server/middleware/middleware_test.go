package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestID_Generated(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r)
	}))

	req := httptest.NewRequest(http.MethodGet, "/plan", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	_, err := uuid.Parse(seen)
	require.NoError(t, err)
	assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
}

func TestRequestID_Incoming(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{name: "valid uuid kept", incoming: uuid.NewString(), keep: true},
		{name: "garbage replaced", incoming: "<script>", keep: false},
		{name: "empty replaced", incoming: "", keep: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			handler := RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				seen = GetRequestID(r)
			}))

			req := httptest.NewRequest(http.MethodGet, "/plan", nil)
			req.Header.Set(RequestIDHeader, tt.incoming)
			handler.ServeHTTP(httptest.NewRecorder(), req)

			if tt.keep {
				assert.Equal(t, tt.incoming, seen)
			} else {
				assert.NotEqual(t, tt.incoming, seen)
				assert.NotEmpty(t, seen)
			}
		})
	}
}

func TestGetRequestID_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/plan", nil)
	assert.Empty(t, GetRequestID(req))
}

func TestLogging(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	handler := RequestID(Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("té"))
	})))

	req := httptest.NewRequest(http.MethodPut, "/plan/idea", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	fields := entry.ContextMap()
	assert.Equal(t, "request", entry.Message)
	assert.Equal(t, "PUT", fields["method"])
	assert.Equal(t, "/plan/idea", fields["path"])
	assert.Equal(t, int64(http.StatusTeapot), fields["status"])
	assert.Equal(t, int64(len("té")), fields["bytes"])
	assert.NotEmpty(t, fields["request_id"])
}

func TestLogging_ServerErrorsWarn(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	handler := Logging(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/plan/fill", nil))

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zap.WarnLevel, logs.All()[0].Level)
}

func TestRecover(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	handler := Recover(zap.New(core))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/plan", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 1, logs.Len())
}

func TestCORS(t *testing.T) {
	called := false
	handler := CORS("")(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/plan", nil))
	assert.False(t, called, "preflight is answered by the middleware")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PUT")

	w = httptest.NewRecorder()
	CORS("https://eduplan.example")(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	})).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/plan", nil))
	assert.True(t, called)
	assert.Equal(t, "https://eduplan.example", w.Header().Get("Access-Control-Allow-Origin"))
}
