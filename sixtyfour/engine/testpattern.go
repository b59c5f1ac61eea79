package engine

// TestPattern geometry: the frame is exactly the screen window.
const (
	PatternWidth  = 392
	PatternHeight = 272
)

// Pattern selects the image drawn by TestPattern.
type Pattern int

const (
	PatternBars Pattern = iota
	PatternChecker
	PatternGradient
	PatternBorder
	patternCount
)

func (p Pattern) String() string {
	switch p {
	case PatternBars:
		return "bars"
	case PatternChecker:
		return "checker"
	case PatternGradient:
		return "gradient"
	case PatternBorder:
		return "border"
	}
	return "unknown"
}

// animation step, in emulated microseconds
const patternStepMicros = 30 * 16667

// TestPattern is an engine that draws static test images. Every frame byte
// carries junk in its high nibble so only a correctly masked scan-out shows
// the intended colours. Any key press advances to the next pattern.
type TestPattern struct {
	frame   []byte
	pattern Pattern
	phase   int
	accum   uint32
	dirty   bool
	presses int
}

var _ Engine = (*TestPattern)(nil)

func NewTestPattern(p Pattern) *TestPattern {
	t := &TestPattern{
		frame:   make([]byte, PatternWidth*PatternHeight),
		pattern: p % patternCount,
		dirty:   true,
	}
	t.draw()
	return t
}

func (t *TestPattern) Pattern() Pattern { return t.pattern }

// Presses returns the number of KeyDown calls received.
func (t *TestPattern) Presses() int { return t.presses }

func (t *TestPattern) DisplayInfo() DisplayInfo {
	return DisplayInfo{
		Frame: Frame{
			Dim:    Dim{Width: PatternWidth, Height: PatternHeight},
			Buffer: t.frame,
		},
		Screen:  Rect{Width: PatternWidth, Height: PatternHeight},
		Palette: Palette,
	}
}

func (t *TestPattern) Exec(micros uint32) {
	t.accum += micros
	if t.accum >= patternStepMicros {
		t.accum %= patternStepMicros
		t.phase = (t.phase + 1) % 16
		t.dirty = true
	}
	if t.dirty {
		t.draw()
	}
}

func (t *TestPattern) KeyDown(code int) {
	t.presses++
	t.pattern = (t.pattern + 1) % patternCount
	t.dirty = true
}

func (t *TestPattern) KeyUp(code int) {}

func (t *TestPattern) Free() {
	t.frame = nil
}

func (t *TestPattern) draw() {
	t.dirty = false
	for y := 0; y < PatternHeight; y++ {
		for x := 0; x < PatternWidth; x++ {
			junk := byte((x ^ y) << 4)
			t.frame[y*PatternWidth+x] = junk | t.colorAt(x, y)
		}
	}
}

func (t *TestPattern) colorAt(x, y int) byte {
	switch t.pattern {
	case PatternBars:
		return byte((x*16/PatternWidth + t.phase) & 0x0F)
	case PatternChecker:
		if (x/8+y/8+t.phase)&1 == 0 {
			return ColorWhite
		}
		return ColorBlack
	case PatternGradient:
		return byte((y*16/PatternHeight + t.phase) & 0x0F)
	case PatternBorder:
		if x == 0 || y == 0 || x == PatternWidth-1 || y == PatternHeight-1 {
			return ColorWhite
		}
		return ColorBlue
	}
	return ColorBlack
}
