package gifenc

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"io"
	"time"
)

// EncodingError wraps a fault from GIF serialization or the underlying
// writer. Fatal to the run.
type EncodingError struct {
	Err error
}

func (e *EncodingError) Error() string { return fmt.Sprintf("encode gif: %v", e.Err) }

func (e *EncodingError) Unwrap() error { return e.Err }

// Encoder accumulates frames in presentation order and serializes them as a
// looping GIF. The color palette is built statefully across frames: colors
// are admitted first come until all 256 entries are taken, later colors
// map to their nearest admitted entry. Frames must therefore be added in
// sequence order; the encoder is not safe for concurrent use.
type Encoder struct {
	palette color.Palette
	index   map[color.RGBA]uint8
	frames  []*image.Paletted
	delays  []int
	bounds  image.Rectangle
}

// NewEncoder returns an empty encoder.
func NewEncoder() *Encoder {
	return &Encoder{index: make(map[color.RGBA]uint8)}
}

// Add appends one frame with its display delay. All frames must share the
// same dimensions as the first.
func (e *Encoder) Add(img *image.RGBA, delay time.Duration) error {
	if len(e.frames) == 0 {
		e.bounds = img.Bounds()
	} else if img.Bounds() != e.bounds {
		return &EncodingError{Err: fmt.Errorf("frame %d bounds %v differ from %v", len(e.frames), img.Bounds(), e.bounds)}
	}

	frame := image.NewPaletted(e.bounds, nil)
	for y := e.bounds.Min.Y; y < e.bounds.Max.Y; y++ {
		for x := e.bounds.Min.X; x < e.bounds.Max.X; x++ {
			frame.SetColorIndex(x, y, e.paletteIndex(img.RGBAAt(x, y)))
		}
	}
	frame.Palette = e.palette

	e.frames = append(e.frames, frame)
	e.delays = append(e.delays, Quantize(delay))
	return nil
}

// paletteIndex returns the palette slot for a color, admitting it when the
// palette still has room. Lookups are cached, including nearest matches, so
// the mapping stays deterministic and cheap.
func (e *Encoder) paletteIndex(c color.RGBA) uint8 {
	if idx, ok := e.index[c]; ok {
		return idx
	}
	if len(e.palette) < 256 {
		e.palette = append(e.palette, c)
		idx := uint8(len(e.palette) - 1)
		e.index[c] = idx
		return idx
	}
	idx := uint8(e.palette.Index(c))
	e.index[c] = idx
	return idx
}

// FrameCount reports how many frames were added.
func (e *Encoder) FrameCount() int { return len(e.frames) }

// Delays exposes the quantized per-frame delays in centiseconds.
func (e *Encoder) Delays() []int { return e.delays }

// Encode writes the accumulated animation, looping forever.
func (e *Encoder) Encode(w io.Writer) error {
	if len(e.frames) == 0 {
		return &EncodingError{Err: fmt.Errorf("no frames to encode")}
	}

	// Every frame shares the final palette; intermediate indices are stable
	// because the palette only grows.
	for _, frame := range e.frames {
		frame.Palette = e.palette
	}

	anim := &gif.GIF{
		Image:     e.frames,
		Delay:     e.delays,
		LoopCount: 0,
		Config: image.Config{
			ColorModel: e.palette,
			Width:      e.bounds.Dx(),
			Height:     e.bounds.Dy(),
		},
	}
	if err := gif.EncodeAll(w, anim); err != nil {
		return &EncodingError{Err: err}
	}
	return nil
}
