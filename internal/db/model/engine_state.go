package model

import (
	"sort"

	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/types"
)

const EngineStateCollection = "engine_state"

const (
	// RecentLedgersID keys the bounded recent-ledger blob.
	RecentLedgersID = "recent_ledgers"
	// DailyRollupsID keys the per-day rollup table.
	DailyRollupsID = "daily_rollups"
)

// RecentLedgersDocument is the persisted session window: the most recent
// ledgers plus the save timestamp.
type RecentLedgersDocument struct {
	ID      string         `bson:"_id"`
	Ledgers []types.Ledger `bson:"ledgers"`
	SavedAt int64          `bson:"saved_at"`
}

// DailyRollupsDocument maps calendar-day keys to rollup records, capped to
// the retention horizon by the persistence adapter before each save.
type DailyRollupsDocument struct {
	ID      string                  `bson:"_id"`
	Days    map[string]RollupRecord `bson:"days"`
	SavedAt int64                   `bson:"saved_at"`
}

// RollupRecord is the storable form of a DayRollup. Wallet addresses are a
// sorted list; an empty list means the source only carried aggregates.
type RollupRecord struct {
	TxCount         uint64   `bson:"tx_count"`
	ActiveWallets   uint64   `bson:"active_wallets"`
	WalletAddresses []string `bson:"wallet_addresses,omitempty"`
}

// FromDayRollup converts the in-memory rollup into its storable record.
func FromDayRollup(r *types.DayRollup) RollupRecord {
	rec := RollupRecord{
		TxCount:       r.TxCount,
		ActiveWallets: r.ActiveWallets,
	}
	if len(r.WalletAddresses) > 0 {
		rec.WalletAddresses = make([]string, 0, len(r.WalletAddresses))
		for addr := range r.WalletAddresses {
			rec.WalletAddresses = append(rec.WalletAddresses, addr)
		}
		sort.Strings(rec.WalletAddresses)
	}
	return rec
}

// ToDayRollup restores the in-memory rollup for a given day key.
func (rec RollupRecord) ToDayRollup(date string) *types.DayRollup {
	out := &types.DayRollup{
		Date:          date,
		TxCount:       rec.TxCount,
		ActiveWallets: rec.ActiveWallets,
	}
	if len(rec.WalletAddresses) > 0 {
		out.WalletAddresses = make(map[string]struct{}, len(rec.WalletAddresses))
		for _, addr := range rec.WalletAddresses {
			out.WalletAddresses[addr] = struct{}{}
		}
	}
	return out
}
