// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"encoding/binary"
	"math"
)

// ClampInt16 saturates a wide sum into the int16 range instead of wrapping.
func ClampInt16(s int32) int16 {
	if s < math.MinInt16 {
		return math.MinInt16
	}
	if s > math.MaxInt16 {
		return math.MaxInt16
	}
	return int16(s)
}

// Int16sFromLE decodes little-endian 16-bit PCM bytes. A trailing odd byte is
// ignored.
func Int16sFromLE(b []byte) []int16 {
	out := make([]int16, len(b)/2)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(b[2*i:]))
	}
	return out
}
