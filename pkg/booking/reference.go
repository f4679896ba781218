package booking

import (
	"crypto/rand"
	"math/big"
	"time"
)

const transactionAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewTransactionId builds a receipt number of the form GYM-YYYYMMDD-XXXXXX.
func NewTransactionId(now time.Time) string {
	suffix := make([]byte, 6)
	max := big.NewInt(int64(len(transactionAlphabet)))
	for i := range suffix {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the OS source is unavailable
			n = big.NewInt(now.UnixNano() % int64(len(transactionAlphabet)))
		}
		suffix[i] = transactionAlphabet[n.Int64()]
	}
	return "GYM-" + now.UTC().Format("20060102") + "-" + string(suffix)
}
