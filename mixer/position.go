// SPDX-License-Identifier: EPL-2.0

package mixer

// PositionUnit is the number of position steps per second.
const PositionUnit = 128

// PositionToIndex converts a position in 1/128 s to a sample index at rate,
// clamped to [0, end].
func PositionToIndex(pos, rate, end int) int {
	if pos <= 0 || rate <= 0 {
		return 0
	}
	idx := int64(pos) * int64(rate) / PositionUnit
	if idx > int64(end) {
		return end
	}
	return int(idx)
}
