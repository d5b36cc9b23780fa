package logger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInit(t *testing.T) {
	originalLog := log.Load()
	defer log.Store(originalLog)

	t.Run("Production", func(t *testing.T) {
		Init("production")
		assert.NotNil(t, log.Load())
	})

	t.Run("Development", func(t *testing.T) {
		Init("development")
		assert.NotNil(t, log.Load())
	})

	t.Run("Silent", func(t *testing.T) {
		Init("silent")
		assert.NotNil(t, log.Load())
		assert.False(t, log.Load().Core().Enabled(zapcore.ErrorLevel))
	})
}

func TestL(t *testing.T) {
	originalLog := log.Load()
	defer log.Store(originalLog)

	t.Run("Defaults to a no-op logger", func(t *testing.T) {
		log.Store(nil)

		l := L()

		assert.NotNil(t, l)
		assert.Same(t, l, log.Load())
		assert.False(t, l.Core().Enabled(zapcore.ErrorLevel))
	})

	t.Run("Concurrent first use", func(t *testing.T) {
		log.Store(nil)

		const workers = 16
		got := make([]*zap.Logger, workers)
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				got[i] = L()
			}(i)
		}
		wg.Wait()

		for _, l := range got {
			assert.Same(t, got[0], l)
		}
	})
}

func TestSet(t *testing.T) {
	originalLog := log.Load()
	defer log.Store(originalLog)

	core, observed := observer.New(zapcore.InfoLevel)
	Set(zap.New(core))

	L().Info("from host logger")
	assert.Equal(t, 1, observed.Len())

	Set(nil)
	assert.NotNil(t, L())
}

func TestContextFunctions(t *testing.T) {
	ctx := context.Background()
	reqID := "test-request-id-123"

	t.Run("WithRequestID", func(t *testing.T) {
		newCtx := WithRequestID(ctx, reqID)
		assert.Equal(t, reqID, newCtx.Value(requestIDKey))
	})

	t.Run("RequestIDFrom", func(t *testing.T) {
		assert.Equal(t, reqID, RequestIDFrom(WithRequestID(ctx, reqID)))
		assert.Equal(t, "", RequestIDFrom(ctx))
	})

	t.Run("EnsureRequestID keeps existing", func(t *testing.T) {
		withID := WithRequestID(ctx, reqID)
		got, id := EnsureRequestID(withID)
		assert.Equal(t, reqID, id)
		assert.Equal(t, withID, got)
	})

	t.Run("EnsureRequestID generates", func(t *testing.T) {
		got, id := EnsureRequestID(ctx)
		assert.NotEmpty(t, id)
		assert.Equal(t, id, RequestIDFrom(got))
	})
}

func TestFromCtx(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	originalLog := log.Load()
	log.Store(zap.New(core))
	defer log.Store(originalLog)

	t.Run("WithRequestID", func(t *testing.T) {
		ctx := WithRequestID(context.Background(), "req-abc-123")

		FromCtx(ctx).Info("test message with id")

		logs := observed.TakeAll()
		assert.Len(t, logs, 1)
		assert.Equal(t, "req-abc-123", logs[0].ContextMap()["request_id"])
	})

	t.Run("WithoutRequestID", func(t *testing.T) {
		FromCtx(context.Background()).Info("test message without id")

		logs := observed.TakeAll()
		assert.Len(t, logs, 1)
		_, ok := logs[0].ContextMap()["request_id"]
		assert.False(t, ok)
	})
}

func TestSync(t *testing.T) {
	assert.NotPanics(t, func() {
		Sync()
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r.Context())
	}))

	t.Run("Generates ID when missing", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/ipn", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
		assert.Equal(t, w.Header().Get(RequestIDHeader), seen)
	})

	t.Run("Preserves existing ID", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/ipn", nil)
		req.Header.Set(RequestIDHeader, "test-id-123")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, "test-id-123", w.Header().Get(RequestIDHeader))
		assert.Equal(t, "test-id-123", seen)
	})
}

func TestLoggingMiddleware(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	originalLog := log.Load()
	log.Store(zap.New(core))
	defer log.Store(originalLog)

	handler := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	req := httptest.NewRequest("POST", "/ipn", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	logs := observed.TakeAll()
	assert.Len(t, logs, 1)
	assert.Equal(t, "incoming request", logs[0].Message)
	assert.Equal(t, "/ipn", logs[0].ContextMap()["path"])
	assert.EqualValues(t, http.StatusUnauthorized, logs[0].ContextMap()["status"])
}
