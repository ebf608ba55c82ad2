package pkg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateXRPLAddress(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		err := ValidateXRPLAddress("rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh")
		assert.NoError(t, err)
	})
	t.Run("wrong prefix", func(t *testing.T) {
		err := ValidateXRPLAddress("xHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh")
		assert.Error(t, err)
	})
	t.Run("too short", func(t *testing.T) {
		err := ValidateXRPLAddress("rHb9CJAWyB4")
		assert.Error(t, err)
	})
	t.Run("invalid character", func(t *testing.T) {
		// '0' is not part of the address alphabet
		err := ValidateXRPLAddress("r0b9CJAWyB4rj91VRWn96DkukG4bwdtyTh")
		assert.Error(t, err)
	})
	t.Run("too long", func(t *testing.T) {
		err := ValidateXRPLAddress("r" + strings.Repeat("a", 40))
		assert.Error(t, err)
	})
}
