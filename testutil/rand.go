package testutil

import (
	"strings"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/types"
)

const addressAlphabet = "rpshnaf39wBUDNEGHJKLM4PQRST7VWXYZ2bcdeCg65jkm8oFqi1tuvAxyz"

var txTypes = []string{
	"Payment",
	"OfferCreate",
	"OfferCancel",
	"TrustSet",
	"EscrowCreate",
	"NFTokenMint",
}

// RandomAddress generates a plausible XRPL classic address.
func RandomAddress() string {
	var builder strings.Builder
	builder.WriteByte('r')
	for range 33 {
		builder.WriteByte(addressAlphabet[gofakeit.Number(0, len(addressAlphabet)-1)])
	}
	return builder.String()
}

// RandomTxHash generates a 64-character uppercase hex transaction hash.
func RandomTxHash() string {
	return strings.ToUpper(gofakeit.HexUint(256)[2:])
}

func RandomTransaction() types.Transaction {
	return types.Transaction{
		Type:        txTypes[gofakeit.Number(0, len(txTypes)-1)],
		Account:     RandomAddress(),
		Destination: RandomAddress(),
		FeeDrops:    uint64(gofakeit.Number(10, 5000)),
		Hash:        RandomTxHash(),
	}
}

// RandomLedger builds a ledger with the given sequence and close time
// carrying txns random transactions.
func RandomLedger(sequence uint64, closeTimeMs int64, txns int) *types.Ledger {
	ledger := &types.Ledger{
		Sequence:    sequence,
		CloseTimeMs: closeTimeMs,
	}
	for range txns {
		ledger.Transactions = append(ledger.Transactions, RandomTransaction())
	}
	return ledger
}
