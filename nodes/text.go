package nodes

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/joshuapare/memlens/draw"
	"github.com/joshuapare/memlens/memory"
)

// TextEncoding selects how a TextNode interprets its bytes.
type TextEncoding int

const (
	EncodingUTF8 TextEncoding = iota
	EncodingUTF16
	EncodingWindows1252
)

// CharSize returns the width of one code unit in bytes.
func (e TextEncoding) CharSize() int {
	if e == EncodingUTF16 {
		return 2
	}
	return 1
}

func (e TextEncoding) String() string {
	switch e {
	case EncodingUTF16:
		return "UTF16"
	case EncodingWindows1252:
		return "Text1252"
	default:
		return "UTF8"
	}
}

func (e TextEncoding) codec() encoding.Encoding {
	switch e {
	case EncodingUTF16:
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	case EncodingWindows1252:
		return charmap.Windows1252
	default:
		return encoding.Nop
	}
}

// Text node field ids.
const (
	TextID   = 0
	LengthID = 1
)

// TextNode is a fixed length, NUL terminated character buffer.
type TextNode struct {
	BaseNode
	encoding TextEncoding
	length   int // in code units
}

// NewTextNode creates a text node of length code units.
func NewTextNode(enc TextEncoding, length int) *TextNode {
	return &TextNode{encoding: enc, length: max(length, 1)}
}

func (t *TextNode) Encoding() TextEncoding { return t.encoding }

// Length returns the buffer length in code units.
func (t *TextNode) Length() int { return t.length }

// SetLength resizes the buffer and relays the parent layout.
func (t *TextNode) SetLength(n int) {
	t.length = max(n, 1)
	notifySizeChanged(t)
}

func (t *TextNode) MemorySize() int { return t.length * t.encoding.CharSize() }

func (t *TextNode) TypeName() string { return t.encoding.String() }

func (t *TextNode) CalculateDrawnHeight(view ViewInfo) int { return view.Font.Height }

// decode returns the text up to the first NUL.
func (t *TextNode) decode(mem *memory.Snapshot) (string, bool) {
	b, ok := mem.Bytes(t.offset, t.MemorySize())
	if !ok || !mem.IsValidOffset(t.offset, t.MemorySize()) {
		return "", false
	}
	cs := t.encoding.CharSize()
	end := len(b)
	for i := 0; i+cs <= len(b); i += cs {
		if b[i] == 0 && (cs == 1 || b[i+1] == 0) {
			end = i
			break
		}
	}
	s, err := t.encoding.codec().NewDecoder().Bytes(b[:end])
	if err != nil {
		return "", false
	}
	return strings.ToValidUTF8(string(s), "."), true
}

func (t *TextNode) Draw(view ViewInfo, x, y int) DrawResult {
	var res DrawResult
	p := newPainter(view, t, y, &res)
	colors := view.Settings.Colors

	x = p.leafStart(x, draw.IconText)
	x = p.typeAndName(x)
	x = p.text(x, colors.Index, NoneID, "[")
	x = p.text(x, colors.Index, LengthID, strconv.Itoa(t.length))
	x = p.text(x, colors.Index, NoneID, "]")
	x = p.space(x, 1)

	if s, ok := t.decode(view.Memory); ok {
		x = p.text(x, colors.Text, NoneID, "= '")
		x = p.text(x, colors.Text, TextID, sanitize(s))
		x = p.text(x, colors.Text, NoneID, "'")
	} else {
		x = p.text(x, colors.Invalid, NoneID, "= <invalid>")
	}
	x = p.space(x, 1)
	x = p.comment(x)
	p.finish(x)
	return res
}

// sanitize replaces control characters so the text stays on one row.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7F {
			return '.'
		}
		return r
	}, s)
}

func (t *TextNode) Update(spot HotSpot) error {
	if t.updateCommon(spot) {
		return nil
	}
	switch spot.ID {
	case LengthID:
		n, err := parseCount(spot.Text, t.encoding.CharSize(), "length")
		if err != nil {
			return err
		}
		t.SetLength(n)
		return nil
	case TextID:
		data, err := t.encode(spot.Text)
		if err != nil {
			return err
		}
		return writeMemory(spot, spot.Address, data)
	}
	return nil
}

// encode converts s to the buffer bytes, truncated to the buffer and NUL
// padded.
func (t *TextNode) encode(s string) ([]byte, error) {
	if !utf8.ValidString(s) {
		return nil, fmt.Errorf("%w: text is not valid UTF-8", ErrInvalidInput)
	}
	b, err := t.encoding.codec().NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	out := make([]byte, t.MemorySize())
	n := copy(out, b)
	// Keep whole code units only.
	n -= n % t.encoding.CharSize()
	clear(out[n:])
	return out, nil
}
