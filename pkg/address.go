package pkg

import (
	"fmt"
	"strings"
)

// base58 alphabet used by XRPL classic addresses. Note the ordering differs
// from Bitcoin's alphabet.
const xrplAlphabet = "rpshnaf39wBUDNEGHJKLM4PQRST7VWXYZ2bcdeCg65jkm8oFqi1tuvAxyz"

const (
	minAddressLen = 25
	maxAddressLen = 35
)

// ValidateXRPLAddress checks that address has the shape of an XRPL classic
// address: leading 'r', valid length, alphabet-only characters. It does not
// verify the embedded checksum.
func ValidateXRPLAddress(address string) error {
	if len(address) < minAddressLen || len(address) > maxAddressLen {
		return fmt.Errorf("address length %d out of range", len(address))
	}
	if address[0] != 'r' {
		return fmt.Errorf("address must start with 'r'")
	}
	for _, c := range address {
		if !strings.ContainsRune(xrplAlphabet, c) {
			return fmt.Errorf("address contains invalid character %q", c)
		}
	}

	return nil
}
