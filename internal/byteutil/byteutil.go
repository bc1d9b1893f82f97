package byteutil

import "encoding/binary"

// EncodeInt64ToBytes encodes id big-endian so byte order matches numeric order for non-negative ids.
func EncodeInt64ToBytes(id int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(id))
	return b
}
