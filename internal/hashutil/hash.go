package hashutil

import (
	"crypto/sha1"
	"encoding/hex"
	"sort"
	"strings"

	"github.com/bloops-games/fishbowl/internal/bytespool"
)

const fingerprintLen = 12

// Fingerprint is a short order-independent digest of a set of titles. Case and
// surrounding whitespace are ignored.
func Fingerprint(titles []string) string {
	normalized := make([]string, len(titles))
	for i, title := range titles {
		normalized[i] = strings.ToLower(strings.TrimSpace(title))
	}
	sort.Strings(normalized)

	buf := bytespool.Get()
	defer bytespool.Put(buf)

	for _, title := range normalized {
		buf.WriteString(title)
		buf.WriteByte(0)
	}

	sum := sha1.Sum(buf.Bytes())
	return hex.EncodeToString(sum[:])[:fingerprintLen]
}
