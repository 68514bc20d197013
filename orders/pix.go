package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"

	"github.com/deliverylivre/storefront/apiclient"
	"github.com/deliverylivre/storefront/logger"
	"github.com/deliverylivre/storefront/models"
)

var (
	ErrNoPixCode = errors.New("no PIX code held for this order")
	ErrPixEmpty  = errors.New("backend returned no PIX code")
)

// Clipboard abstracts the system clipboard so tests can observe copies.
type Clipboard interface {
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// PixManager holds PIX payment codes in memory, keyed by order id, and runs
// the local expiry sweep. Lifecycle per code:
//
//	no code -> requesting -> active(code, expiresAt) -> expired (deleted)
//
// An expired code is never re-requested automatically; the user must select
// PIX again.
type PixManager struct {
	api  *apiclient.Client
	clip Clipboard
	now  func() time.Time

	mu    sync.Mutex
	codes map[int]models.PixCode

	stopOnce sync.Once
	stop     chan struct{}
}

func NewPixManager(api *apiclient.Client) *PixManager {
	return &PixManager{
		api:   api,
		clip:  systemClipboard{},
		now:   time.Now,
		codes: make(map[int]models.PixCode),
		stop:  make(chan struct{}),
	}
}

// Start launches the recurring expiry sweep. The mobile client runs this on
// a 1-second interval.
func (m *PixManager) Start(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.sweep()
			case <-m.stop:
				return
			}
		}
	}()
}

// Stop halts the sweep loop. Safe to call more than once.
func (m *PixManager) Stop() {
	m.stopOnce.Do(func() { close(m.stop) })
}

// Request fetches a PIX code for the order unless an active one is already
// held.
func (m *PixManager) Request(ctx context.Context, orderID int) error {
	m.mu.Lock()
	code, held := m.codes[orderID]
	m.mu.Unlock()
	if held && code.ExpiresAt > m.now().Unix() {
		return nil
	}

	var resp models.PixCode
	if err := m.api.GetJSON(ctx, fmt.Sprintf("/orders-driver/%d/pix", orderID), &resp); err != nil {
		return err
	}
	if resp.Code == "" {
		return ErrPixEmpty
	}

	m.mu.Lock()
	m.codes[orderID] = resp
	m.mu.Unlock()

	logger.Debug("pix code stored", zap.Int("order_id", orderID))
	return nil
}

// Code returns the held code for an order, if any.
func (m *PixManager) Code(orderID int) (models.PixCode, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	code, ok := m.codes[orderID]
	return code, ok
}

// Remaining reports the time left before the order's code expires. ok is
// false when no code is held.
func (m *PixManager) Remaining(orderID int) (time.Duration, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	code, ok := m.codes[orderID]
	if !ok {
		return 0, false
	}
	remaining := time.Duration(code.ExpiresAt-m.now().Unix()) * time.Second
	if remaining < 0 {
		remaining = 0
	}
	return remaining, true
}

// sweep deletes every entry whose expiry has passed.
func (m *PixManager) sweep() {
	now := m.now().Unix()
	m.mu.Lock()
	defer m.mu.Unlock()
	for orderID, code := range m.codes {
		if code.ExpiresAt <= now {
			delete(m.codes, orderID)
			logger.Debug("pix code expired", zap.Int("order_id", orderID))
		}
	}
}

// FormatCountdown renders a remaining duration as "m:ss".
func FormatCountdown(d time.Duration) string {
	secs := int(d.Seconds())
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// DisplayText resolves the copyable string for an order's held code.
func (m *PixManager) DisplayText(orderID int) (string, error) {
	code, ok := m.Code(orderID)
	if !ok {
		return "", ErrNoPixCode
	}
	return resolveDisplayText(code.Code), nil
}

// Copy writes the resolved code to the system clipboard and returns what
// was copied.
func (m *PixManager) Copy(orderID int) (string, error) {
	text, err := m.DisplayText(orderID)
	if err != nil {
		return "", err
	}
	if err := m.clip.WriteAll(text); err != nil {
		return "", err
	}
	return text, nil
}

// resolveDisplayText extracts a human-copyable string from the backend's
// code. The response shape varies across backend revisions: the code may be
// the raw EMV payload, or JSON carrying it under one of several field names,
// or JSON with only the chave/valor/txid components.
func resolveDisplayText(code string) string {
	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(code), &parsed); err != nil {
		return code
	}

	for _, key := range []string{"payload", "copy", "copia", "pix", "code"} {
		if s, ok := parsed[key].(string); ok && s != "" {
			return s
		}
	}
	if parsed["chave"] != nil || parsed["valor"] != nil || parsed["txid"] != nil {
		return fmt.Sprintf("chave:%v valor:%v txid:%v", parsed["chave"], parsed["valor"], parsed["txid"])
	}
	return code
}
