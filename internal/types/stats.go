package types

// PeakHourNone is the sentinel peak hour when no transactions were seen in
// the trailing window.
const PeakHourNone = -1

// StatsSnapshot is the flat record handed to presentation. Field names and
// units are stable: fees in drops, intervals in seconds, days as UTC
// "YYYY-MM-DD" strings.
type StatsSnapshot struct {
	TPS               float64           `json:"tps"`
	AvgFeeDrops       float64           `json:"avg_fee_drops"`
	LedgerIntervalSec float64           `json:"ledger_interval_sec"`
	ActiveWallets24h  uint64            `json:"active_wallets_24h"`
	DailyActive       []DailyActive     `json:"daily_active"`
	TxTypes           map[string]uint64 `json:"tx_types"`
	PeakHourUTC       int               `json:"peak_hour_utc"`
	Retention         RetentionStats    `json:"retention"`
	LatestSequence    uint64            `json:"latest_sequence"`
	ComputedAt        int64             `json:"computed_at"`
}

// DailyActive is one day of the active-wallet history plus its rolling
// multi-window figures. Estimated7d/Estimated30d flag windows where at least
// one day lacked wallet identities, making the figure a sum of per-day
// counts (an upper bound) instead of an exact set union.
type DailyActive struct {
	Date         string `json:"date"`
	Count        uint64 `json:"count"`
	Rolling7d    uint64 `json:"rolling_7d"`
	Rolling30d   uint64 `json:"rolling_30d"`
	Estimated7d  bool   `json:"estimated_7d,omitempty"`
	Estimated30d bool   `json:"estimated_30d,omitempty"`
}

// RetentionStats carries cohort retention percentages per horizon. A nil
// value means no cohort has matured for that horizon yet.
type RetentionStats struct {
	D3  *float64 `json:"d3"`
	D7  *float64 `json:"d7"`
	D30 *float64 `json:"d30"`
}

// NetworkInfo is an externally supplied authoritative metrics view. Zero
// fields mean "not provided"; the stats calculator falls back to locally
// derived estimates per field.
type NetworkInfo struct {
	TPS               float64 `json:"tps"`
	AvgFeeXRP         float64 `json:"avg_fee_xrp"`
	LedgerIntervalSec float64 `json:"ledger_interval_sec"`
}

// DropsPerXRP converts the coarse fee unit of authoritative sources into
// the drops used internally.
const DropsPerXRP = 1_000_000
