package xrplclient

import "context"

type XRPLInterface interface {
	// Start connects and begins delivering stream events. It returns once
	// the first connection attempt finished; reconnection afterwards is
	// handled internally with capped exponential backoff.
	Start(ctx context.Context) error
	Stop()
	IsRunning() bool
	// Events delivers ledger-closed notices and server status updates. The
	// channel is buffered; the consumer is the service's event processor.
	Events() <-chan Event
	// RequestLedger fetches one ledger with transactions expanded.
	RequestLedger(ctx context.Context, sequence uint64) (*RawLedger, error)
	// RequestServerInfo fetches the server_info document.
	RequestServerInfo(ctx context.Context) (*ServerInfo, error)
}
