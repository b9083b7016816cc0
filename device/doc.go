// SPDX-License-Identifier: EPL-2.0

// Package device opens audio outputs that pull mono signed 16-bit
// little-endian samples from a callback.
//
// Three backends are registered by default:
//
//   - "oto" plays through github.com/ebitengine/oto/v3
//   - "malgo" plays through miniaudio (github.com/gen2brain/malgo)
//   - "null" has no hardware and only calls back on Null.Pull
//
// Devices start paused. The callback runs on a goroutine owned by the
// backend and must fill the whole stream each time.
package device
