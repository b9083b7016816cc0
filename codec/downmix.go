// SPDX-License-Identifier: EPL-2.0

package codec

// Downmix converts interleaved PCM to mono by averaging each frame.
//
// Mono input is returned as is, without copying. A trailing partial frame is
// dropped.
func Downmix(p *PCM) []int16 {
	if p == nil || p.Channels <= 0 {
		return nil
	}
	if p.Channels == 1 {
		return p.Samples
	}

	channels := p.Channels
	frames := len(p.Samples) / channels
	dst := make([]int16, frames)
	src := p.Samples

	// Averages stay inside the int16 range, so no clamping is needed.
	switch channels {
	case 2: // Stereo (most common)
		for f := range frames {
			idx := f << 1
			dst[f] = int16((int32(src[idx]) + int32(src[idx+1])) / 2)
		}
	case 4: // Quad
		for f := range frames {
			idx := f << 2
			sum := int32(src[idx]) + int32(src[idx+1]) + int32(src[idx+2]) + int32(src[idx+3])
			dst[f] = int16(sum / 4)
		}
	default:
		for f := range frames {
			var sum int32
			base := f * channels
			for c := range channels {
				sum += int32(src[base+c])
			}
			dst[f] = int16(sum / int32(channels))
		}
	}

	return dst
}
