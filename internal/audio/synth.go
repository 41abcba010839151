package audio

import "math"

// Sound identifies an effect.
type Sound int

const (
	SoundBump Sound = iota
	SoundDie
	SoundGrow
	SoundShrink
	SoundRespawn
	SoundSpeed
	SoundGameOver
)

func (s Sound) String() string {
	switch s {
	case SoundBump:
		return "bump"
	case SoundDie:
		return "die"
	case SoundGrow:
		return "grow"
	case SoundShrink:
		return "shrink"
	case SoundRespawn:
		return "respawn"
	case SoundSpeed:
		return "speed"
	case SoundGameOver:
		return "game-over"
	}
	return "unknown"
}

// Generate renders an effect as interleaved stereo float32 LE samples.
func Generate(kind Sound) []byte {
	switch kind {
	case SoundBump:
		return genBump()
	case SoundDie:
		return genDie()
	case SoundGrow:
		return genGrow()
	case SoundShrink:
		return genShrink()
	case SoundRespawn:
		return genRespawn()
	case SoundSpeed:
		return genSpeed()
	case SoundGameOver:
		return genGameOver()
	}
	return nil
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both channels of frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	for c := 0; c < ChannelCount; c++ {
		o := i*8 + c*4
		buf[o] = byte(v)
		buf[o+1] = byte(v >> 8)
		buf[o+2] = byte(v >> 16)
		buf[o+3] = byte(v >> 24)
	}
}

// softSat applies gentle saturation instead of hard clipping.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/x
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// adsr returns an envelope at normalized progress [0,1].
// attack/decay/release are fractions of the total duration.
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}

// fm returns an FM-synthesized sample.
func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

// lcg advances seed and returns a noise sample in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

func makeBuf(n int) []byte { return make([]byte, n*8) }

// genBump: short descending thud.
func genBump() []byte {
	n := int(0.14 * SampleRate)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.015, 0.55, 0.1, 0.25)
		freq := 300 - 200*p
		s := fm(t, freq, 1.5, 2.8*(1-p)) * env * 0.52
		s += math.Sin(2*math.Pi*freq*2*t) * env * 0.1
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genDie: falling sub boom with a noise crack.
func genDie() []byte {
	n := int(0.45 * SampleRate)
	buf := makeBuf(n)
	seed := uint64(77777)
	lp := 0.0
	phase := 0.0
	for i := 0; i < n; i++ {
		p := float64(i) / float64(n)
		freq := 140 * math.Pow(30.0/140.0, p*1.8)
		phase += 2 * math.Pi * freq / SampleRate
		sub := math.Sin(phase) * math.Exp(-p*5) * 0.6
		crack := 0.0
		if p < 0.03 {
			crack = lcg(&seed) * (1 - p/0.03) * 0.7
		}
		lp = lp*0.9 + lcg(&seed)*0.1
		body := lp * math.Exp(-p*4) * 0.4
		putStereoF32(buf, i, softSat((sub+crack+body)*0.86))
	}
	return buf
}

// genGrow: snappy rising FM pop.
func genGrow() []byte {
	n := int(0.09 * SampleRate)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.01, 0.5, 0.0, 0.1)
		freq := 480 + 720*p
		s := fm(t, freq, 2.0, 3.5*env) * env * 0.5
		s += math.Sin(2*math.Pi*freq*3*t) * env * 0.06
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genShrink: the grow pop played downwards.
func genShrink() []byte {
	n := int(0.1 * SampleRate)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.01, 0.5, 0.0, 0.1)
		freq := 900 - 600*p
		s := fm(t, freq, 2.0, 2.0*env) * env * 0.4
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// bells mixes staggered FM bell notes.
func bells(notes []float64, step, tail float64, ratio float64) []byte {
	noteStep := int(step * SampleRate)
	total := len(notes)*noteStep + int(tail*SampleRate)
	mix := make([]float64, total)
	for fi, freq := range notes {
		start := fi * noteStep
		dur := total - start
		for j := 0; j < dur; j++ {
			t := float64(start+j) / SampleRate
			np := float64(j) / float64(dur)
			env := adsr(np, 0.003, 0.65, 0.04, 0.28)
			s := fm(t, freq, ratio, 5.5*env) * env * 0.28
			s += math.Sin(2*math.Pi*freq*2*t) * env * 0.07
			mix[start+j] += s
		}
	}
	buf := makeBuf(total)
	for i, s := range mix {
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genRespawn: ascending bell staircase.
func genRespawn() []byte {
	return bells([]float64{440, 554.37, 659.25, 880}, 0.07, 0.2, 3.5)
}

// genSpeed: quick bright arpeggio.
func genSpeed() []byte {
	return bells([]float64{523.25, 659.25, 783.99, 1046.5}, 0.05, 0.15, 2.756)
}

// genGameOver: slow descending minor chord.
func genGameOver() []byte {
	n := int(0.75 * SampleRate)
	notes := []struct{ freq, onset float64 }{
		{329.63, 0.00},
		{261.63, 0.14},
		{220.00, 0.28},
	}
	mix := make([]float64, n)
	for _, note := range notes {
		start := int(note.onset * SampleRate)
		for i := start; i < n; i++ {
			t := float64(i) / SampleRate
			np := float64(i-start) / float64(n-start)
			env := adsr(np, 0.008, 0.25, 0.3, 0.45)
			freq := note.freq * (1 - np*0.025)
			s := fm(t, freq, 2.0, 2.0*env) * env * 0.32
			s += math.Sin(2*math.Pi*freq*0.5*t) * env * 0.1
			mix[i] += s
		}
	}
	buf := makeBuf(n)
	for i, s := range mix {
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}
