package timeline

import "sort"

// Channel binds a scalar to the value a tween moves it to (To) or from (From).
type Channel struct {
	ptr   *float64
	value float64
}

// Prop creates a channel for ptr.
func Prop(ptr *float64, value float64) Channel {
	return Channel{ptr: ptr, value: value}
}

type tween struct {
	start    float64
	duration float64
	ease     Ease
	channels []Channel
	from     []float64
	to       []float64
	order    int
	// immediate tweens (From) know both ends at build time
	immediate bool
}

func (tw *tween) render(t float64) {
	p := 1.0
	if tw.duration > 0 {
		p = (t - tw.start) / tw.duration
		if p < 0 {
			p = 0
		} else if p > 1 {
			p = 1
		}
	}
	e := tw.ease(p)
	for i, ch := range tw.channels {
		*ch.ptr = tw.from[i] + (tw.to[i]-tw.from[i])*e
	}
}

// Timeline is a sequence of tweens on shared scalars. It is either scrubbed with
// Seek (no clock of its own) or played forward once with Play and Advance.
// A Timeline is not safe for concurrent use.
type Timeline struct {
	tweens   []*tween
	base     map[*float64]float64
	resolved bool

	time    float64
	started bool
	playing bool
}

// New returns an empty timeline.
func New() *Timeline {
	return &Timeline{base: make(map[*float64]float64)}
}

// To adds a tween at absolute position start that moves each channel from the
// value in effect at that point of the timeline to the channel value.
func (tl *Timeline) To(start, duration float64, ease Ease, chans ...Channel) *Timeline {
	tl.add(&tween{
		start:    start,
		duration: duration,
		ease:     orDefault(ease),
		channels: chans,
	})
	return tl
}

// Then appends a To tween at the current end of the timeline.
func (tl *Timeline) Then(duration float64, ease Ease, chans ...Channel) *Timeline {
	return tl.To(tl.Duration(), duration, ease, chans...)
}

// From adds a tween that moves each channel from the channel value back to the
// value it holds right now. The channels jump to their start values immediately.
func (tl *Timeline) From(start, duration float64, ease Ease, chans ...Channel) *Timeline {
	tw := &tween{
		start:     start,
		duration:  duration,
		ease:      orDefault(ease),
		channels:  chans,
		from:      make([]float64, len(chans)),
		to:        make([]float64, len(chans)),
		immediate: true,
	}
	for i, ch := range chans {
		tw.from[i] = ch.value
		tw.to[i] = *ch.ptr
		*ch.ptr = ch.value
		if _, ok := tl.base[ch.ptr]; !ok {
			tl.base[ch.ptr] = ch.value
		}
	}
	tl.add(tw)
	return tl
}

func (tl *Timeline) add(tw *tween) {
	tw.order = len(tl.tweens)
	tl.tweens = append(tl.tweens, tw)
	tl.resolved = false
}

// Duration returns the end time of the last tween.
func (tl *Timeline) Duration() float64 {
	end := 0.0
	for _, tw := range tl.tweens {
		if e := tw.start + tw.duration; e > end {
			end = e
		}
	}
	return end
}

// resolve fixes the start values of To tweens from the current channel values
// and the tweens scheduled before them.
func (tl *Timeline) resolve() {
	if tl.resolved {
		return
	}
	sort.SliceStable(tl.tweens, func(i, j int) bool {
		if tl.tweens[i].start != tl.tweens[j].start {
			return tl.tweens[i].start < tl.tweens[j].start
		}
		return tl.tweens[i].order < tl.tweens[j].order
	})

	projected := make(map[*float64]float64)
	for _, tw := range tl.tweens {
		if tw.immediate {
			for i, ch := range tw.channels {
				projected[ch.ptr] = tw.to[i]
			}
			continue
		}
		tw.from = make([]float64, len(tw.channels))
		tw.to = make([]float64, len(tw.channels))
		for i, ch := range tw.channels {
			f, ok := projected[ch.ptr]
			if !ok {
				f = *ch.ptr
				if _, known := tl.base[ch.ptr]; !known {
					tl.base[ch.ptr] = f
				}
			}
			tw.from[i] = f
			tw.to[i] = ch.value
			projected[ch.ptr] = ch.value
		}
	}
	tl.resolved = true
}

// Seek renders the timeline at absolute time t. The result depends only on t,
// so seeking backward and forward yields identical channel values.
func (tl *Timeline) Seek(t float64) {
	tl.resolve()
	if t < 0 {
		t = 0
	}
	tl.time = t

	for ptr, v := range tl.base {
		*ptr = v
	}
	for _, tw := range tl.tweens {
		if t < tw.start {
			continue
		}
		tw.render(t)
	}
}

// Play starts forward playback from zero. It only succeeds once per timeline;
// later calls return false and change nothing.
func (tl *Timeline) Play() bool {
	if tl.started {
		return false
	}
	tl.started = true
	tl.playing = true
	tl.Seek(0)
	return true
}

// Advance moves the playhead of a playing timeline by dt seconds.
func (tl *Timeline) Advance(dt float64) {
	if !tl.playing || dt <= 0 {
		return
	}
	t := tl.time + dt
	if d := tl.Duration(); t >= d {
		t = d
		tl.playing = false
	}
	tl.Seek(t)
}

// Time returns the playhead position.
func (tl *Timeline) Time() float64 { return tl.time }

// Started reports whether Play has been called.
func (tl *Timeline) Started() bool { return tl.started }

// Playing reports whether the timeline is advancing.
func (tl *Timeline) Playing() bool { return tl.playing }

// Done reports whether a played timeline reached its end.
func (tl *Timeline) Done() bool { return tl.started && !tl.playing }

func orDefault(e Ease) Ease {
	if e == nil {
		return Power1Out
	}
	return e
}
