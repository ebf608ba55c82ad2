package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/clients/xrplclient"
)

// SubscribeToLedgerEvents fans the websocket stream into the engine event
// queue. The goroutine only translates and enqueues; all state changes
// happen in the processor.
func (s *Service) SubscribeToLedgerEvents(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("ledger event subscription stopped")
				return
			case event, ok := <-s.xrpl.Events():
				if !ok {
					log.Info().Msg("ledger event stream closed")
					return
				}
				switch event.Type {
				case xrplclient.EventLedgerClosed:
					if event.LedgerClosed != nil {
						s.enqueue(ledgerNoticeEvent{notice: *event.LedgerClosed})
					}
				case xrplclient.EventServerStatus:
					if event.ServerStatus != nil {
						s.enqueue(serverStatusEvent{status: *event.ServerStatus})
					}
				default:
					log.Warn().
						Str("event_type", string(event.Type)).
						Msg("unexpected stream event")
				}
			}
		}
	}()
}
