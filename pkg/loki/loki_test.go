package loki

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"github.com/stretchr/testify/assert"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type MockLogger struct{}

func (m *MockLogger) Error(msg string, args ...any) {
}

func Test_ConfigValidation(t *testing.T) {
	cfg := Config{}
	_, err := New(context.Background(), cfg, &MockLogger{})
	assert.Error(t, err)

	cfg.Url = "SomeUrl"
	pusher, err := New(context.Background(), cfg, &MockLogger{})
	assert.NoError(t, err)
	assert.Equal(t, cfg.Url, pusher.config.Url)
	assert.Equal(t, 1000, pusher.config.BatchMaxSize)
	assert.Equal(t, 5*time.Second, pusher.config.BatchMaxWait)
	assert.Equal(t, map[string]string{}, pusher.config.Labels)
}

func Test_Push_WhenBatchFull_ShouldSendToServer(t *testing.T) {

	received := make(chan pushRequest, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gz, err := gzip.NewReader(r.Body)
		assert.NoError(t, err)

		var req pushRequest
		assert.NoError(t, json.NewDecoder(gz).Decode(&req))
		received <- req
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	cfg := Config{Url: server.URL, BatchMaxSize: 2, Labels: map[string]string{"app": "test"}}
	pusher, err := New(context.Background(), cfg, &MockLogger{})
	assert.NoError(t, err)
	defer pusher.Stop()

	_ = pusher.Push(LogEntry{Level: "error", Message: "first"})
	_ = pusher.Push(LogEntry{Level: "error", Message: "second"})

	select {
	case req := <-received:
		assert.Len(t, req.Streams, 1)
		assert.Equal(t, "test", req.Streams[0].Stream["app"])
		assert.Len(t, req.Streams[0].Values, 2)
	case <-time.After(3 * time.Second):
		t.Fatal("no push request received")
	}
}
