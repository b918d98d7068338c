package subscription

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// codeSpace is the number of possible verification codes.
const codeSpace = 1000000

// NewCode returns a uniform random verification code in [0, 999999],
// formatted as a zero-padded 6-digit decimal string. Codes are scoped
// per-email; collisions across different emails are allowed.
func NewCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeSpace))
	if err != nil {
		return "", fmt.Errorf("generate verification code: %w", err)
	}
	return formatCode(n.Int64()), nil
}

func formatCode(n int64) string {
	return fmt.Sprintf("%06d", n)
}
