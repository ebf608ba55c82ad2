package xrplclient

import "encoding/json"

type EventType string

const (
	EventLedgerClosed EventType = "ledgerClosed"
	EventServerStatus EventType = "serverStatus"
)

// Event is one message from the subscribed streams, fanned into the
// service's single event queue.
type Event struct {
	Type         EventType
	LedgerClosed *LedgerClosedNotice
	ServerStatus *ServerStatus
}

// LedgerClosedNotice is the lightweight "ledger closed" stream message. It
// carries no transactions; the service requests the full ledger by sequence.
type LedgerClosedNotice struct {
	LedgerIndex uint64 `json:"ledger_index"`
	LedgerTime  int64  `json:"ledger_time"`
	TxnCount    int    `json:"txn_count"`
}

// ServerStatus is the server stream message with current load figures. Fees
// here are in drops, scaled by load_factor/load_base.
type ServerStatus struct {
	LoadBase     int64  `json:"load_base"`
	LoadFactor   int64  `json:"load_factor"`
	BaseFeeDrops uint64 `json:"base_fee"`
}

// RawLedger is the unparsed ledger returned by the ledger command with
// transactions expanded. CloseTime is seconds since the XRP Ledger epoch; a
// nil value means the server omitted it. Each transaction is either a hash
// string or a (possibly nested) transaction object, so they stay raw until
// the normalizer decodes them.
type RawLedger struct {
	LedgerIndex  json.Number       `json:"ledger_index"`
	CloseTime    *int64            `json:"close_time"`
	Transactions []json.RawMessage `json:"transactions"`
}

// LedgerResult is the result payload of the ledger command.
type LedgerResult struct {
	Ledger      RawLedger `json:"ledger"`
	LedgerIndex uint64    `json:"ledger_index"`
	Validated   bool      `json:"validated"`
}

// ServerInfo is the result payload of the server_info command. The base fee
// is expressed in XRP here; the engine converts it to drops.
type ServerInfo struct {
	LoadFactor      float64 `json:"load_factor"`
	ValidatedLedger struct {
		Seq        uint64  `json:"seq"`
		BaseFeeXRP float64 `json:"base_fee_xrp"`
	} `json:"validated_ledger"`
}

type serverInfoResult struct {
	Info ServerInfo `json:"info"`
}

// message is the envelope of every inbound websocket frame: command
// responses carry an id and a result, stream messages carry a type with the
// payload inline.
type message struct {
	ID           string          `json:"id,omitempty"`
	Type         string          `json:"type,omitempty"`
	Status       string          `json:"status,omitempty"`
	Result       json.RawMessage `json:"result,omitempty"`
	Error        string          `json:"error,omitempty"`
	ErrorMessage string          `json:"error_message,omitempty"`

	// inline stream fields
	LedgerIndex uint64 `json:"ledger_index,omitempty"`
	LedgerTime  int64  `json:"ledger_time,omitempty"`
	TxnCount    int    `json:"txn_count,omitempty"`
	LoadBase    int64  `json:"load_base,omitempty"`
	LoadFactor  int64  `json:"load_factor,omitempty"`
	BaseFee     uint64 `json:"base_fee,omitempty"`
}

type request struct {
	ID           string   `json:"id"`
	Command      string   `json:"command"`
	LedgerIndex  any      `json:"ledger_index,omitempty"`
	Transactions bool     `json:"transactions,omitempty"`
	Expand       bool     `json:"expand,omitempty"`
	Streams      []string `json:"streams,omitempty"`
}
