package nodes

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/joshuapare/memlens/draw"
	"github.com/joshuapare/memlens/memory"
)

// Array field ids.
const (
	CountID    = 0
	PreviousID = 1
	NextID     = 2
)

// ArrayNode repeats one element node Count times. Only the element at the
// current index is drawn when the array is open.
type ArrayNode struct {
	BaseNode
	element Node
	count   int
	current int
}

// NewArrayNode creates an array of count elements of element's kind.
func NewArrayNode(element Node, count int) *ArrayNode {
	a := &ArrayNode{count: max(count, 1)}
	a.SetElement(element)
	return a
}

// Element returns the wrapped node.
func (a *ArrayNode) Element() Node { return a.element }

// SetElement replaces the wrapped node.
func (a *ArrayNode) SetElement(n Node) {
	if a.element != nil {
		setParent(a.element, nil)
	}
	setParent(n, a)
	n.SetOffset(0)
	a.element = n
	notifySizeChanged(a)
}

// Count returns the number of elements.
func (a *ArrayNode) Count() int { return a.count }

// SetCount resizes the array. The current index is clamped.
func (a *ArrayNode) SetCount(n int) {
	a.count = max(n, 1)
	a.current = min(a.current, a.count-1)
	notifySizeChanged(a)
}

// CurrentIndex returns the index of the element drawn.
func (a *ArrayNode) CurrentIndex() int { return a.current }

func (a *ArrayNode) MemorySize() int { return a.count * a.element.MemorySize() }

func (a *ArrayNode) TypeName() string { return "Array" }

func (a *ArrayNode) ClearSelection() {
	a.selected = false
	a.element.ClearSelection()
}

func (a *ArrayNode) Draw(view ViewInfo, x, y int) DrawResult {
	var res DrawResult
	p := newPainter(view, a, y, &res)
	colors := view.Settings.Colors

	p.selection()
	x = p.space(x, textPadding)
	tx := x
	x = p.openClose(x)
	x = p.icon(x, draw.IconArray, HotSpotNone, 0)
	x = p.addressOffset(x)
	x = p.typeAndName(x)
	x = p.text(x, colors.Index, NoneID, "[")
	x = p.text(x, colors.Index, CountID, strconv.Itoa(a.count))
	x = p.text(x, colors.Index, NoneID, "]")
	x = p.space(x, 1)

	x = p.icon(x, draw.IconLeftArrow, HotSpotClick, PreviousID)
	x = p.text(x, colors.Index, NoneID, fmt.Sprintf("(%d)", a.current))
	x = p.icon(x, draw.IconRightArrow, HotSpotClick, NextID)
	x = p.space(x, 1)

	x = p.text(x, colors.Type, NoneID, "<"+a.element.TypeName()+">")
	x = p.icon(x, draw.IconChangeType, HotSpotChangeWrappedType, 0)
	x = p.space(x, 1)
	x = p.comment(x)
	p.finish(x)

	if a.IsLevelOpen(view.Level) {
		inner := view.Nested(a.offset + a.current*a.element.MemorySize())
		res.absorb(DrawSafe(a.element, inner, tx, y+view.Font.Height), 0)
	}
	return res
}

func (a *ArrayNode) CalculateDrawnHeight(view ViewInfo) int {
	h := view.Font.Height
	if a.IsLevelOpen(view.Level) {
		h += a.element.CalculateDrawnHeight(view.Nested(a.offset))
	}
	return h
}

func (a *ArrayNode) Update(spot HotSpot) error {
	if a.updateCommon(spot) {
		return nil
	}
	switch {
	case spot.Type == HotSpotEdit && spot.ID == CountID:
		n, err := parseCount(spot.Text, a.element.MemorySize(), "count")
		if err != nil {
			return err
		}
		a.SetCount(n)
	case spot.Type == HotSpotClick && spot.ID == PreviousID:
		a.current = max(a.current-1, 0)
	case spot.Type == HotSpotClick && spot.ID == NextID:
		a.current = min(a.current+1, a.count-1)
	}
	return nil
}

// parseCount parses a positive number of units of unitSize bytes. The units
// together must fit in one snapshot window.
func parseCount(text string, unitSize int, what string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %q is not a positive %s", ErrInvalidInput, text, what)
	}
	if unitSize > 0 && n > memory.MaxWindow/unitSize {
		return 0, fmt.Errorf("%w: %s %d needs more than %d bytes", ErrInvalidInput, what, n, memory.MaxWindow)
	}
	return n, nil
}
