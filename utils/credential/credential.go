package credential

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Alphabet 大小寫英文加數字共 62 個字元
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

var alphabetSize = big.NewInt(int64(len(Alphabet)))

// Generate 以 crypto/rand 均勻抽樣產生臨時密碼
func Generate(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("credential length must be positive, got %d", length)
	}
	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", fmt.Errorf("read random: %w", err)
		}
		b[i] = Alphabet[n.Int64()]
	}
	return string(b), nil
}
