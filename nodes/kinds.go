package nodes

import (
	"slices"
	"sync"
)

// Kind is a node type the user can create or change a node into.
type Kind struct {
	Name string
	New  func() Node
}

var (
	kindsMu sync.RWMutex
	kinds   = []Kind{
		{Name: "Hex64", New: func() Node { return NewHex64Node() }},
		{Name: "Hex32", New: func() Node { return NewHex32Node() }},
		{Name: "Hex16", New: func() Node { return NewHex16Node() }},
		{Name: "Hex8", New: func() Node { return NewHex8Node() }},
		{Name: "Int64", New: func() Node { return NewInt64Node() }},
		{Name: "Int32", New: func() Node { return NewInt32Node() }},
		{Name: "Float", New: func() Node { return NewFloatNode() }},
		{Name: "Double", New: func() Node { return NewDoubleNode() }},
		{Name: "UTF8", New: func() Node { return NewTextNode(EncodingUTF8, 16) }},
		{Name: "UTF16", New: func() Node { return NewTextNode(EncodingUTF16, 16) }},
		{Name: "Text1252", New: func() Node { return NewTextNode(EncodingWindows1252, 16) }},
		{Name: "Struct", New: func() Node {
			s := NewStructNode("")
			_ = s.AddNode(NewHex64Node())
			return s
		}},
		{Name: "Array", New: func() Node { return NewArrayNode(NewHex64Node(), 4) }},
	}
)

// Kinds returns the registered kinds in menu order.
func Kinds() []Kind {
	kindsMu.RLock()
	defer kindsMu.RUnlock()
	return slices.Clone(kinds)
}

// KindByName looks a kind up by name.
func KindByName(name string) (Kind, bool) {
	kindsMu.RLock()
	defer kindsMu.RUnlock()
	i := slices.IndexFunc(kinds, func(k Kind) bool { return k.Name == name })
	if i < 0 {
		return Kind{}, false
	}
	return kinds[i], true
}

// Register adds a kind, replacing any kind of the same name.
func Register(k Kind) {
	kindsMu.Lock()
	defer kindsMu.Unlock()
	if i := slices.IndexFunc(kinds, func(e Kind) bool { return e.Name == k.Name }); i >= 0 {
		kinds[i] = k
		return
	}
	kinds = append(kinds, k)
}

// PaddingNodes returns the fewest hex nodes covering size bytes, largest
// first.
func PaddingNodes(size int) []Node {
	var out []Node
	for size > 0 {
		switch {
		case size >= 8:
			out = append(out, NewHex64Node())
			size -= 8
		case size >= 4:
			out = append(out, NewHex32Node())
			size -= 4
		case size >= 2:
			out = append(out, NewHex16Node())
			size -= 2
		default:
			out = append(out, NewHex8Node())
			size--
		}
	}
	return out
}
