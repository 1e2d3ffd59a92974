package alarm

import (
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/riseup/internal/rng"
)

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewID returns a short identifier: the creation time in base 36 followed
// by four random base-36 characters.
func NewID(src rng.Source, now time.Time) string {
	var b strings.Builder
	b.WriteString(strconv.FormatInt(now.UnixMilli(), 36))
	for i := 0; i < 4; i++ {
		b.WriteByte(idAlphabet[src.IntN(len(idAlphabet))])
	}
	return b.String()
}
