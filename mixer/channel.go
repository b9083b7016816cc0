// SPDX-License-Identifier: EPL-2.0

package mixer

// Channel is one playback slot: a cursor over a borrowed Sample.
//
// Channel is not safe for concurrent use; the Mixer serializes access.
type Channel struct {
	sample  *Sample
	current int
	playing bool
	loop    bool

	start, end         int
	loopStart, loopEnd int
}

// newChannel returns a playing channel over the whole of s with the given
// loop region. loopStart <= loopEnd <= s.Len() must hold.
func newChannel(s *Sample, loopStart, loopEnd int, loop bool) Channel {
	end := s.Len()
	return Channel{
		sample:    s,
		current:   0,
		playing:   true,
		loop:      loop,
		start:     0,
		end:       end,
		loopStart: loopStart,
		loopEnd:   loopEnd,
	}
}

// Next returns the sample under the cursor and advances it. An idle channel
// returns silence.
func (c *Channel) Next() int16 {
	if !c.playing {
		return 0
	}

	bound := c.end
	if c.loop {
		bound = c.loopEnd
	}

	if c.current >= bound {
		// Wrapping reads sample[loopStart], which must exist.
		if !c.loop || c.loopStart >= len(c.sample.data) {
			c.playing = false
			return 0
		}
		c.current = c.loopStart
	}

	s := c.sample.data[c.current]
	c.current++
	return s
}

// Stop makes the channel idle immediately.
func (c *Channel) Stop() {
	c.playing = false
}

// StopLoop lets the channel run on to the end of the sample instead of
// wrapping.
func (c *Channel) StopLoop() {
	c.loop = false
	if c.current > c.end {
		c.playing = false
	}
}

func (c *Channel) Playing() bool { return c.playing }

// Looping reports whether the loop flag is set.
func (c *Channel) Looping() bool { return c.loop }

// Position returns the cursor as a sample index.
func (c *Channel) Position() int { return c.current }

// LoopRegion returns the [start, end) sample range the channel wraps within.
func (c *Channel) LoopRegion() (int, int) { return c.loopStart, c.loopEnd }
