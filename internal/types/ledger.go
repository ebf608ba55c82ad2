package types

// Ledger is the canonical, normalized form of one closed ledger. It is
// immutable once built by the normalizer; the session store owns it.
type Ledger struct {
	Sequence     uint64        `json:"sequence" bson:"sequence"`
	CloseTimeMs  int64         `json:"close_time_ms" bson:"close_time_ms"`
	Transactions []Transaction `json:"transactions" bson:"transactions"`
}

// Transaction is the fixed-shape transaction every downstream component
// consumes. A hash-only transaction keeps every other field at its zero
// value; it is never dropped.
type Transaction struct {
	Type        string  `json:"type" bson:"type"`
	Account     string  `json:"account" bson:"account"`
	Destination string  `json:"destination" bson:"destination"`
	FeeDrops    uint64  `json:"fee_drops" bson:"fee_drops"`
	Amount      *Amount `json:"amount,omitempty" bson:"amount,omitempty"`
	Hash        string  `json:"hash" bson:"hash"`
}

// Amount is a delivered amount. Native XRP amounts are expressed in drops
// with currency "XRP"; issued currencies keep their issuer currency code.
type Amount struct {
	Value    string `json:"value" bson:"value"`
	Currency string `json:"currency" bson:"currency"`
}

// IntervalSample pairs the close-time delta between two consecutive
// accepted ledgers with the transaction count of the later one. The session
// store keeps a sliding window of these for throughput estimation.
type IntervalSample struct {
	IntervalSec float64 `json:"interval_sec"`
	TxnCount    int     `json:"txn_count"`
}
