package orders

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deliverylivre/storefront/apiclient"
	"github.com/deliverylivre/storefront/models"
)

type fakeClipboard struct {
	mu     sync.Mutex
	copied []string
}

func (c *fakeClipboard) WriteAll(text string) error {
	c.mu.Lock()
	c.copied = append(c.copied, text)
	c.mu.Unlock()
	return nil
}

func newTestPix(t *testing.T, code models.PixCode) (*PixManager, *int64) {
	t.Helper()
	var requests int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&requests, 1)
		json.NewEncoder(w).Encode(code)
	}))
	t.Cleanup(server.Close)

	m := NewPixManager(apiclient.New(server.URL, 2*time.Second))
	return m, &requests
}

func TestRequestStoresCode(t *testing.T) {
	now := time.Now()
	m, _ := newTestPix(t, models.PixCode{Code: "000201...//pix", ExpiresAt: now.Add(5 * time.Minute).Unix()})
	m.now = func() time.Time { return now }

	require.NoError(t, m.Request(context.Background(), 7))

	code, held := m.Code(7)
	assert.True(t, held)
	assert.Equal(t, "000201...//pix", code.Code)

	remaining, ok := m.Remaining(7)
	assert.True(t, ok)
	assert.Equal(t, 5*time.Minute, remaining)
}

func TestRequestSkippedWhileCodeActive(t *testing.T) {
	now := time.Now()
	m, requests := newTestPix(t, models.PixCode{Code: "abc", ExpiresAt: now.Add(time.Minute).Unix()})
	m.now = func() time.Time { return now }

	require.NoError(t, m.Request(context.Background(), 7))
	require.NoError(t, m.Request(context.Background(), 7))
	assert.EqualValues(t, 1, atomic.LoadInt64(requests), "an active code must not be re-requested")
}

func TestRequestReissuesAfterExpiry(t *testing.T) {
	now := time.Now()
	m, requests := newTestPix(t, models.PixCode{Code: "abc", ExpiresAt: now.Add(time.Minute).Unix()})
	current := now
	m.now = func() time.Time { return current }

	require.NoError(t, m.Request(context.Background(), 7))
	current = now.Add(2 * time.Minute)
	require.NoError(t, m.Request(context.Background(), 7))
	assert.EqualValues(t, 2, atomic.LoadInt64(requests))
}

func TestRequestEmptyCode(t *testing.T) {
	m, _ := newTestPix(t, models.PixCode{Code: ""})
	assert.ErrorIs(t, m.Request(context.Background(), 7), ErrPixEmpty)
	_, held := m.Code(7)
	assert.False(t, held)
}

func TestSweepDropsExpiredCodes(t *testing.T) {
	now := time.Now()
	m := NewPixManager(nil)
	m.now = func() time.Time { return now }
	m.codes[1] = models.PixCode{Code: "expired", ExpiresAt: now.Unix()}
	m.codes[2] = models.PixCode{Code: "active", ExpiresAt: now.Add(time.Minute).Unix()}

	m.sweep()

	_, held := m.Code(1)
	assert.False(t, held, "a code expiring now is discarded")
	_, held = m.Code(2)
	assert.True(t, held)
}

func TestRemainingClampsAtZero(t *testing.T) {
	now := time.Now()
	m := NewPixManager(nil)
	m.now = func() time.Time { return now }
	m.codes[1] = models.PixCode{Code: "late", ExpiresAt: now.Add(-time.Minute).Unix()}

	remaining, ok := m.Remaining(1)
	assert.True(t, ok)
	assert.Equal(t, time.Duration(0), remaining)

	_, ok = m.Remaining(99)
	assert.False(t, ok)
}

func TestFormatCountdown(t *testing.T) {
	assert.Equal(t, "5:00", FormatCountdown(5*time.Minute))
	assert.Equal(t, "1:05", FormatCountdown(65*time.Second))
	assert.Equal(t, "0:09", FormatCountdown(9*time.Second))
	assert.Equal(t, "0:00", FormatCountdown(0))
	assert.Equal(t, "0:00", FormatCountdown(-3*time.Second))
}

func TestResolveDisplayText(t *testing.T) {
	cases := []struct {
		name string
		code string
		want string
	}{
		{"raw emv payload", "00020126580014br.gov.bcb.pix", "00020126580014br.gov.bcb.pix"},
		{"payload field", `{"payload":"emv-1"}`, "emv-1"},
		{"copy field", `{"copy":"emv-2"}`, "emv-2"},
		{"copia field", `{"copia":"emv-3"}`, "emv-3"},
		{"pix field", `{"pix":"emv-4"}`, "emv-4"},
		{"code field", `{"code":"emv-5"}`, "emv-5"},
		{"payload preferred over code", `{"code":"low","payload":"high"}`, "high"},
		{"components composed", `{"chave":"k","valor":12.5,"txid":"t1"}`, "chave:k valor:12.5 txid:t1"},
		{"unrecognized json returned verbatim", `{"something":"else"}`, `{"something":"else"}`},
		{"empty string field skipped", `{"payload":"","code":"emv-6"}`, "emv-6"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, resolveDisplayText(tc.code))
		})
	}
}

func TestCopyWritesResolvedCode(t *testing.T) {
	now := time.Now()
	m := NewPixManager(nil)
	m.now = func() time.Time { return now }
	clip := &fakeClipboard{}
	m.clip = clip
	m.codes[3] = models.PixCode{Code: `{"payload":"emv-copy"}`, ExpiresAt: now.Add(time.Minute).Unix()}

	text, err := m.Copy(3)
	require.NoError(t, err)
	assert.Equal(t, "emv-copy", text)
	assert.Equal(t, []string{"emv-copy"}, clip.copied)

	_, err = m.Copy(99)
	assert.ErrorIs(t, err, ErrNoPixCode)
}

func TestSweepLoopExpiresCodes(t *testing.T) {
	var mu sync.Mutex
	now := time.Now()
	m := NewPixManager(nil)
	m.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}
	m.codes[1] = models.PixCode{Code: "x", ExpiresAt: now.Add(20 * time.Millisecond).Unix()}

	m.Start(5 * time.Millisecond)
	defer m.Stop()

	mu.Lock()
	now = now.Add(time.Minute)
	mu.Unlock()

	assert.Eventually(t, func() bool {
		_, held := m.Code(1)
		return !held
	}, time.Second, 5*time.Millisecond)

	m.Stop() // second Stop is a no-op
}
