package content

import (
	"math/rand/v2"
	"time"
)

// Typewriter computes when each character of a title appears.
type Typewriter struct {
	opts AnimationOptions
	rng  *rand.Rand
}

// NewTypewriter returns a typewriter for opts. The same seed always yields
// the same schedule.
func NewTypewriter(opts AnimationOptions, seed uint64) *Typewriter {
	return &Typewriter{opts: opts, rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Schedule returns, for every rune of text, the offset from the start of the
// animation at which it becomes visible. Offsets never decrease.
//
// The base step spreads Duration over the text. With Randomize each step is
// scaled by a factor in [1-SpeedVariation, 1+SpeedVariation] and, with
// PauseProbability, followed by a pause of up to MaxPauseDuration.
func (t *Typewriter) Schedule(text string) []time.Duration {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	base := seconds(t.opts.Duration) / time.Duration(len(runes))
	offset := seconds(t.opts.Delay)
	out := make([]time.Duration, len(runes))

	for i := range runes {
		step := base
		if t.opts.Randomize {
			variation := min(max(t.opts.SpeedVariation, 0), 1)
			factor := 1 + variation*(2*t.rng.Float64()-1)
			step = time.Duration(float64(base) * factor)
			if t.opts.PauseProbability > 0 && t.rng.Float64() < t.opts.PauseProbability {
				step += time.Duration(t.rng.Float64() * float64(seconds(t.opts.MaxPauseDuration)))
			}
		}
		offset += max(step, 0)
		out[i] = offset
	}
	return out
}

// FixedSchedule reveals one rune of text every delay, starting after the
// first delay. It drives the loading screen.
func FixedSchedule(text string, delay time.Duration) []time.Duration {
	n := len([]rune(text))
	out := make([]time.Duration, n)
	for i := range out {
		out[i] = time.Duration(i+1) * delay
	}
	return out
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
