// SPDX-License-Identifier: EPL-2.0

package mixer

// Play starts s on channel ch from the beginning, replacing whatever the
// channel was doing. With loop set the whole sample repeats.
func (m *Mixer) Play(ch int, s *Sample, loop bool) error {
	if err := checkIndex("channel", ch, NumChannels); err != nil {
		return err
	}
	if s == nil {
		return ErrNoSample
	}

	c := newChannel(s, 0, s.Len(), loop)

	m.mu.Lock()
	m.channels[ch] = c
	m.mu.Unlock()

	return nil
}

// PlayRegion starts s on channel ch and loops it between two positions
// given in 1/128 s. Positions past the end of the sample are clamped to it.
func (m *Mixer) PlayRegion(ch int, s *Sample, loopStartPos, loopEndPos int) error {
	if err := checkIndex("channel", ch, NumChannels); err != nil {
		return err
	}
	if s == nil {
		return ErrNoSample
	}

	end := s.Len()
	loopStart := PositionToIndex(loopStartPos, s.Rate(), end)
	loopEnd := PositionToIndex(loopEndPos, s.Rate(), end)
	if loopStart > loopEnd {
		return ErrInvalidLoopRegion
	}

	c := newChannel(s, loopStart, loopEnd, true)

	m.mu.Lock()
	m.channels[ch] = c
	m.mu.Unlock()

	return nil
}

func (m *Mixer) Stop(ch int) error {
	if err := checkIndex("channel", ch, NumChannels); err != nil {
		return err
	}

	m.mu.Lock()
	m.channels[ch].Stop()
	m.mu.Unlock()

	return nil
}

func (m *Mixer) StopLoop(ch int) error {
	if err := checkIndex("channel", ch, NumChannels); err != nil {
		return err
	}

	m.mu.Lock()
	m.channels[ch].StopLoop()
	m.mu.Unlock()

	return nil
}

func (m *Mixer) IsPlaying(ch int) (bool, error) {
	if err := checkIndex("channel", ch, NumChannels); err != nil {
		return false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return m.channels[ch].Playing(), nil
}

// StopAll silences every channel and drops their sample references.
func (m *Mixer) StopAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.channels {
		m.channels[i] = Channel{}
	}
}

// Snapshot returns a copy of channel ch's state.
func (m *Mixer) Snapshot(ch int) (Channel, error) {
	if err := checkIndex("channel", ch, NumChannels); err != nil {
		return Channel{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return m.channels[ch], nil
}
