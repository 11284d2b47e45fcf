package domain

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// NormalizeHolderAddress returns the canonical form of a fraction holder address.
// Holder addresses are opaque; EVM addresses are rewritten to their EIP-55 checksum
// form so the same wallet never ends up with two holding rows.
func NormalizeHolderAddress(address string) string {
	address = strings.TrimSpace(address)
	if strings.HasPrefix(address, "0x") && common.IsHexAddress(address) {
		return common.HexToAddress(address).Hex()
	}
	return address
}

// NormalizeTxHash validates a transaction hash supplied by the blockchain submitter.
// Hex hashes must be 32 bytes and are lowercased; anything else is kept as an opaque string.
func NormalizeTxHash(hash string) (string, error) {
	hash = strings.TrimSpace(hash)
	if hash == "" {
		return "", fmt.Errorf("%w: transaction hash is required", ErrValidation)
	}
	if len(hash) > MAX_FINGERPRINT_LENGTH {
		return "", fmt.Errorf("%w: transaction hash is too long", ErrValidation)
	}

	if strings.HasPrefix(hash, "0x") || strings.HasPrefix(hash, "0X") {
		b, err := hexutil.Decode("0x" + hash[2:])
		if err != nil {
			return "", fmt.Errorf("%w: invalid hex transaction hash: %v", ErrValidation, err)
		}
		if len(b) != common.HashLength {
			return "", fmt.Errorf("%w: transaction hash must be %d bytes", ErrValidation, common.HashLength)
		}
		return common.BytesToHash(b).Hex(), nil
	}

	return hash, nil
}
