package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solana-withdraw-alerts/internal/config"
	"solana-withdraw-alerts/internal/dedup"
	"solana-withdraw-alerts/internal/services"
)

type captureNotifier struct {
	sent []string
}

func (c *captureNotifier) Send(ctx context.Context, text string) error {
	c.sent = append(c.sent, text)
	return nil
}

func newTestServer(t *testing.T) (*gin.Engine, *captureNotifier) {
	t.Helper()
	notifier := &captureNotifier{}
	processor := services.NewProcessor(dedup.NewMemory(100), notifier, nil, zerolog.Nop())

	r, _ := NewServer(config.Config{HTTPAddr: ":0"})
	NewWebhookController(processor, zerolog.Nop()).RegisterWebhookRoutes(r.Group(""))
	return r, notifier
}

func postWebhook(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const withdrawalBody = `{
	"signature": "abc123",
	"timestamp": 1700000000,
	"type": "WITHDRAW_SOL",
	"fee": 5000000,
	"tokenTransfers": [
		{"fromUserAccount": "A", "toUserAccount": "B", "mint": "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v", "tokenAmount": 10}
	]
}`

func TestHealth(t *testing.T) {
	r, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestWebhook_SingleWithdrawalEvent(t *testing.T) {
	r, notifier := newTestServer(t)

	w := postWebhook(r, withdrawalBody)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"received": true}`, w.Body.String())

	require.Len(t, notifier.sent, 1)
	msg := notifier.sent[0]
	for _, want := range []string{"USDC", "10", "A", "B", "abc123", "0.005", "https://solscan.io/tx/abc123"} {
		assert.Contains(t, msg, want)
	}
}

func TestWebhook_ArrayPayload(t *testing.T) {
	r, notifier := newTestServer(t)

	body := `[` + withdrawalBody + `, {"signature": "dep1", "timestamp": 1700000001, "type": "DEPOSIT"}]`
	w := postWebhook(r, body)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"received": true}`, w.Body.String())
	assert.Len(t, notifier.sent, 1, "only the withdrawal event alerts")
}

func TestWebhook_DuplicateDeliverySuppressed(t *testing.T) {
	r, notifier := newTestServer(t)

	postWebhook(r, withdrawalBody)
	w := postWebhook(r, withdrawalBody)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, notifier.sent, 1, "redelivery inside the dedup window must not re-alert")
}

func TestWebhook_DepositMarkedButSilent(t *testing.T) {
	notifier := &captureNotifier{}
	store := dedup.NewMemory(100)
	processor := services.NewProcessor(store, notifier, nil, zerolog.Nop())
	r, _ := NewServer(config.Config{HTTPAddr: ":0"})
	NewWebhookController(processor, zerolog.Nop()).RegisterWebhookRoutes(r.Group(""))

	w := postWebhook(r, `{"signature": "dep1", "timestamp": 1700000000, "type": "DEPOSIT"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, notifier.sent)

	seen, err := store.Seen(context.Background(), "dep1")
	require.NoError(t, err)
	assert.True(t, seen, "non-matching signature still recorded")
}

// ctxNotifier fails like the real notifier does once its context is
// cancelled, and records what each send observed.
type ctxNotifier struct {
	sent    []string
	ctxErrs []error
}

func (c *ctxNotifier) Send(ctx context.Context, text string) error {
	c.ctxErrs = append(c.ctxErrs, ctx.Err())
	if err := ctx.Err(); err != nil {
		return err
	}
	c.sent = append(c.sent, text)
	return nil
}

func TestWebhook_SenderDisconnectDoesNotDropAlerts(t *testing.T) {
	notifier := &ctxNotifier{}
	store := dedup.NewMemory(100)
	processor := services.NewProcessor(store, notifier, nil, zerolog.Nop())
	r, _ := NewServer(config.Config{HTTPAddr: ":0"})
	NewWebhookController(processor, zerolog.Nop()).RegisterWebhookRoutes(r.Group(""))

	// Simulate the sender timing out and disconnecting mid-batch:
	// net/http cancels the request context.
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(withdrawalBody))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(cancelled)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Len(t, notifier.sent, 1, "delivery must outlive the request")
	require.Len(t, notifier.ctxErrs, 1)
	assert.NoError(t, notifier.ctxErrs[0], "notifier must not observe the request cancellation")

	// The signature was marked, so the alert has to have gone out now:
	// the sender's redelivery will be suppressed.
	seen, err := store.Seen(context.Background(), "abc123")
	require.NoError(t, err)
	assert.True(t, seen)
}

func TestWebhook_MalformedBodyStillAcked(t *testing.T) {
	r, notifier := newTestServer(t)

	for _, body := range []string{``, `not json`, `{"signature": 42}`, `[{"signature":`} {
		w := postWebhook(r, body)
		assert.Equal(t, http.StatusOK, w.Code, "body %q", body)
		assert.JSONEq(t, `{"received": true}`, w.Body.String(), "body %q", body)
	}
	assert.Empty(t, notifier.sent)
}

func TestDecodeEvents(t *testing.T) {
	events, err := decodeEvents([]byte(`  ` + withdrawalBody))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "abc123", events[0].Signature)

	events, err = decodeEvents([]byte(`[` + withdrawalBody + `]`))
	require.NoError(t, err)
	require.Len(t, events, 1)

	_, err = decodeEvents([]byte(``))
	assert.Error(t, err)
}
