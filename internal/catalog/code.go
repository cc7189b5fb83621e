package catalog

import (
	"crypto/rand"
	"math/big"
)

// codeAlphabet excludes easily confused characters (0/O, 1/I) so codes
// survive being read aloud or handwritten.
const (
	codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	codeLength   = 8
)

// NewInviteCode returns a fresh human-shareable ticket code.
func NewInviteCode() string {
	max := big.NewInt(int64(len(codeAlphabet)))
	code := make([]byte, codeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the platform source is
			// broken; there is no useful recovery for code minting.
			panic(err)
		}
		code[i] = codeAlphabet[n.Int64()]
	}
	return string(code)
}
