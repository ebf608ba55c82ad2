package xrplclient

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/config"
	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/observability/metrics"
)

const eventChanSize = 256

type Client struct {
	cfg *config.XRPLConfig

	// mu guards conn and pending; every websocket write happens under it
	mu      sync.Mutex
	conn    *websocket.Conn
	pending map[string]chan *message

	events   chan Event
	running  atomic.Bool
	stopCh   chan struct{}
	stopOnce sync.Once
}

func NewClient(cfg *config.XRPLConfig) *Client {
	return &Client{
		cfg:     cfg,
		pending: make(map[string]chan *message),
		events:  make(chan Event, eventChanSize),
		stopCh:  make(chan struct{}),
	}
}

func (c *Client) Start(ctx context.Context) error {
	conn, err := c.connect(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", c.cfg.Endpoint, err)
	}
	c.setConn(conn)
	c.running.Store(true)

	go c.run(ctx)
	return nil
}

func (c *Client) Stop() {
	c.stopOnce.Do(func() {
		close(c.stopCh)
	})
	c.mu.Lock()
	if c.conn != nil {
		_ = c.conn.Close()
	}
	c.mu.Unlock()
}

func (c *Client) IsRunning() bool {
	return c.running.Load()
}

func (c *Client) Events() <-chan Event {
	return c.events
}

func (c *Client) RequestLedger(ctx context.Context, sequence uint64) (*RawLedger, error) {
	msg, err := c.request(ctx, request{
		Command:      "ledger",
		LedgerIndex:  sequence,
		Transactions: true,
		Expand:       true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ledger %d: %w", sequence, err)
	}

	var result LedgerResult
	if err := json.Unmarshal(msg.Result, &result); err != nil {
		return nil, fmt.Errorf("failed to decode ledger %d result: %w", sequence, err)
	}
	if result.Ledger.LedgerIndex == "" && result.LedgerIndex > 0 {
		result.Ledger.LedgerIndex = json.Number(fmt.Sprintf("%d", result.LedgerIndex))
	}
	return &result.Ledger, nil
}

func (c *Client) RequestServerInfo(ctx context.Context) (*ServerInfo, error) {
	msg, err := c.request(ctx, request{Command: "server_info"})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch server info: %w", err)
	}

	var result serverInfoResult
	if err := json.Unmarshal(msg.Result, &result); err != nil {
		return nil, fmt.Errorf("failed to decode server info result: %w", err)
	}
	return &result.Info, nil
}

// connect dials the endpoint and subscribes to the ledger and server
// streams. The subscribe response is routed like any other reply and
// discarded since no pending entry exists for it.
func (c *Client) connect(ctx context.Context) (*websocket.Conn, error) {
	dialer := websocket.Dialer{HandshakeTimeout: c.cfg.RequestTimeout}
	conn, _, err := dialer.DialContext(ctx, c.cfg.Endpoint, nil)
	if err != nil {
		return nil, err
	}

	sub := request{
		ID:      uuid.NewString(),
		Command: "subscribe",
		Streams: []string{"ledger", "server"},
	}
	if err := conn.WriteJSON(sub); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return conn, nil
}

func (c *Client) setConn(conn *websocket.Conn) {
	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()
}

// run owns the read loop and reconnection. Backoff doubles up to the
// configured cap and resets to the base delay after a successful dial.
func (c *Client) run(ctx context.Context) {
	defer c.running.Store(false)

	delay := c.cfg.ReconnectBaseDelay
	for {
		c.readLoop(ctx)
		c.failPending()

		if ctx.Err() != nil || c.stopped() {
			return
		}

		for {
			metrics.IncWsReconnects()
			log.Ctx(ctx).Info().
				Dur("delay", delay).
				Str("endpoint", c.cfg.Endpoint).
				Msg("reconnecting to XRPL websocket")

			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return
			case <-c.stopCh:
				return
			}

			conn, err := c.connect(ctx)
			if err != nil {
				log.Ctx(ctx).Warn().Err(err).Msg("reconnect attempt failed")
				delay = min(delay*2, c.cfg.ReconnectMaxDelay)
				continue
			}

			c.setConn(conn)
			delay = c.cfg.ReconnectBaseDelay
			break
		}
	}
}

func (c *Client) readLoop(ctx context.Context) {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil && !c.stopped() {
				log.Ctx(ctx).Warn().Err(err).Msg("websocket read failed")
			}
			_ = conn.Close()
			return
		}

		var msg message
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Ctx(ctx).Warn().Err(err).Msg("dropping unparseable websocket frame")
			continue
		}

		c.dispatch(ctx, &msg)
	}
}

// dispatch routes command replies to their pending caller and stream
// messages to the event channel. A reply whose caller already timed out has
// no pending entry and is discarded.
func (c *Client) dispatch(ctx context.Context, msg *message) {
	if msg.ID != "" {
		c.mu.Lock()
		ch, ok := c.pending[msg.ID]
		if ok {
			delete(c.pending, msg.ID)
		}
		c.mu.Unlock()
		if ok {
			ch <- msg
		}
		return
	}

	var event Event
	switch msg.Type {
	case "ledgerClosed":
		event = Event{
			Type: EventLedgerClosed,
			LedgerClosed: &LedgerClosedNotice{
				LedgerIndex: msg.LedgerIndex,
				LedgerTime:  msg.LedgerTime,
				TxnCount:    msg.TxnCount,
			},
		}
	case "serverStatus":
		event = Event{
			Type: EventServerStatus,
			ServerStatus: &ServerStatus{
				LoadBase:     msg.LoadBase,
				LoadFactor:   msg.LoadFactor,
				BaseFeeDrops: msg.BaseFee,
			},
		}
	default:
		return
	}

	select {
	case c.events <- event:
	default:
		log.Ctx(ctx).Warn().Str("type", string(event.Type)).Msg("event channel full, dropping event")
	}
}

func (c *Client) request(ctx context.Context, req request) (*message, error) {
	req.ID = uuid.NewString()
	ch := make(chan *message, 1)

	c.mu.Lock()
	if c.conn == nil {
		c.mu.Unlock()
		return nil, fmt.Errorf("websocket is not connected")
	}
	c.pending[req.ID] = ch
	err := c.conn.WriteJSON(req)
	c.mu.Unlock()

	if err != nil {
		c.removePending(req.ID)
		return nil, err
	}

	select {
	case msg := <-ch:
		if msg == nil {
			return nil, fmt.Errorf("connection closed while waiting for response")
		}
		if msg.Status != "" && msg.Status != "success" {
			if msg.ErrorMessage != "" {
				return nil, fmt.Errorf("request failed: %s", msg.ErrorMessage)
			}
			return nil, fmt.Errorf("request failed: %s", msg.Error)
		}
		return msg, nil
	case <-time.After(c.cfg.RequestTimeout):
		c.removePending(req.ID)
		return nil, fmt.Errorf("request %s timed out after %s", req.Command, c.cfg.RequestTimeout)
	case <-ctx.Done():
		c.removePending(req.ID)
		return nil, ctx.Err()
	}
}

func (c *Client) removePending(id string) {
	c.mu.Lock()
	delete(c.pending, id)
	c.mu.Unlock()
}

// failPending unblocks callers waiting on a connection that just died.
func (c *Client) failPending() {
	c.mu.Lock()
	for id, ch := range c.pending {
		delete(c.pending, id)
		ch <- nil
	}
	c.mu.Unlock()
}

func (c *Client) stopped() bool {
	select {
	case <-c.stopCh:
		return true
	default:
		return false
	}
}
