package services

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/clients/xrplclient"
	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/types"
	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/utils"
)

// innerPayloadKeys are the alternate keys a nested transaction payload may
// hide under, tried in order.
var innerPayloadKeys = [...]string{"tx_json", "transaction"}

// normalizeLedger converts a raw ledger into the canonical form. It is a
// pure transform: the only side effect path is the caller logging and
// dropping ledgers without a sequence. A missing close time falls back to
// now, which makes replay non-deterministic; the substitution is confined
// here on purpose.
func normalizeLedger(raw *xrplclient.RawLedger, now time.Time) (*types.Ledger, error) {
	if raw.LedgerIndex == "" {
		return nil, fmt.Errorf("raw ledger is missing a sequence identifier")
	}
	seq, err := strconv.ParseUint(raw.LedgerIndex.String(), 10, 64)
	if err != nil || seq == 0 {
		return nil, fmt.Errorf("raw ledger has invalid sequence %q", raw.LedgerIndex.String())
	}

	closeTimeMs := now.UnixMilli()
	if raw.CloseTime != nil {
		closeTimeMs = utils.RippleTimeToUnixMs(*raw.CloseTime)
	}

	txs := make([]types.Transaction, 0, len(raw.Transactions))
	for _, rawTx := range raw.Transactions {
		txs = append(txs, decodeTransaction(rawTx))
	}

	return &types.Ledger{
		Sequence:     seq,
		CloseTimeMs:  closeTimeMs,
		Transactions: txs,
	}, nil
}

// decodeTransaction accepts every transaction shape the upstream emits: a
// bare hash string, a flat object, or an object whose payload sits one
// level down. Missing fields default to empty/zero; nothing is dropped.
func decodeTransaction(raw json.RawMessage) types.Transaction {
	var hash string
	if err := json.Unmarshal(raw, &hash); err == nil {
		return types.Transaction{Hash: hash}
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return types.Transaction{}
	}

	for _, key := range innerPayloadKeys {
		inner, ok := obj[key]
		if !ok {
			continue
		}
		var innerObj map[string]json.RawMessage
		if err := json.Unmarshal(inner, &innerObj); err == nil {
			// the hash often lives on the envelope, not the payload
			if _, ok := innerObj["hash"]; !ok {
				if h, ok := obj["hash"]; ok {
					innerObj["hash"] = h
				}
			}
			obj = innerObj
		}
		break
	}

	return types.Transaction{
		Type:        decodeString(obj["TransactionType"]),
		Account:     decodeString(obj["Account"]),
		Destination: decodeString(obj["Destination"]),
		FeeDrops:    decodeUint(obj["Fee"]),
		Amount:      decodeAmount(obj["Amount"]),
		Hash:        decodeString(obj["hash"]),
	}
}

func decodeString(raw json.RawMessage) string {
	if raw == nil {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

func decodeUint(raw json.RawMessage) uint64 {
	if raw == nil {
		return 0
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return 0
		}
		return v
	}
	var v uint64
	if err := json.Unmarshal(raw, &v); err == nil {
		return v
	}
	return 0
}

func decodeAmount(raw json.RawMessage) *types.Amount {
	if raw == nil {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		// native amounts are drop strings
		return &types.Amount{Value: s, Currency: "XRP"}
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return &types.Amount{Value: n.String(), Currency: "XRP"}
	}
	var issued struct {
		Value    string `json:"value"`
		Currency string `json:"currency"`
	}
	if err := json.Unmarshal(raw, &issued); err == nil {
		return &types.Amount{Value: issued.Value, Currency: issued.Currency}
	}
	return nil
}
