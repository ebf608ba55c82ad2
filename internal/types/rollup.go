package types

// DayRollup is the per-day aggregate the reconciler produces. After
// reconciliation there is exactly one canonical DayRollup per calendar day.
// WalletAddresses is nil for aggregate-only sources (a remote day that never
// revealed identities), which is why rolling unique-wallet figures over such
// days are upper-bound estimates rather than exact unions.
type DayRollup struct {
	Date            string              `json:"date" bson:"date"`
	TxCount         uint64              `json:"tx_count" bson:"tx_count"`
	ActiveWallets   uint64              `json:"active_wallets" bson:"active_wallets"`
	WalletAddresses map[string]struct{} `json:"-" bson:"-"`
}

// Clone returns a deep copy so merge steps never alias wallet sets between
// sources.
func (r *DayRollup) Clone() *DayRollup {
	out := &DayRollup{
		Date:          r.Date,
		TxCount:       r.TxCount,
		ActiveWallets: r.ActiveWallets,
	}
	if r.WalletAddresses != nil {
		out.WalletAddresses = make(map[string]struct{}, len(r.WalletAddresses))
		for addr := range r.WalletAddresses {
			out.WalletAddresses[addr] = struct{}{}
		}
	}
	return out
}

// RemoteSnapshot is the canonical daily-snapshot document produced by the
// scheduled snapshot job. It is a read-only input to reconciliation.
type RemoteSnapshot struct {
	LastUpdated int64                 `json:"lastUpdated"`
	FirstSeen   map[string]string     `json:"firstSeen"`
	Days        map[string]*RemoteDay `json:"days"`
}

// RemoteDay is one day entry of a remote snapshot. WalletAddresses may be
// empty when the snapshot only carries aggregate counts.
type RemoteDay struct {
	TxCount         uint64   `json:"txCount"`
	ActiveWallets   uint64   `json:"activeWallets"`
	WalletAddresses []string `json:"walletAddresses,omitempty"`
	TPS             float64  `json:"tps,omitempty"`
	AvgFee          float64  `json:"avgFee,omitempty"`
	NodeCount       int      `json:"nodeCount,omitempty"`
	ValidatorCount  int      `json:"validatorCount,omitempty"`
}

// Rollup converts a remote day entry into the canonical rollup shape.
func (d *RemoteDay) Rollup(date string) *DayRollup {
	out := &DayRollup{
		Date:          date,
		TxCount:       d.TxCount,
		ActiveWallets: d.ActiveWallets,
	}
	if len(d.WalletAddresses) > 0 {
		out.WalletAddresses = make(map[string]struct{}, len(d.WalletAddresses))
		for _, addr := range d.WalletAddresses {
			out.WalletAddresses[addr] = struct{}{}
		}
	}
	return out
}
