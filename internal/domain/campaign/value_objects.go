package campaign

import (
	"crypto/rand"
	"math/big"
	"strings"
)

type Code string

func (c Code) String() string { return string(c) }

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateCode returns a campaign code of the form XXXX-XXXX-XXXX drawn from
// uppercase letters and digits.
func GenerateCode() string {
	var b strings.Builder
	b.Grow(14)
	for i := 0; i < 12; i++ {
		if i > 0 && i%4 == 0 {
			b.WriteByte('-')
		}
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		if err != nil {
			// crypto/rand only fails when the platform entropy source is broken
			panic(err)
		}
		b.WriteByte(codeAlphabet[n.Int64()])
	}
	return b.String()
}
