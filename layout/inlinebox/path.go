package inlinebox

import (
	"fmt"
	"sync"
)

// Identifier addresses an inline box within an InlineBoxes store.
// Identifiers are equal if both of their fields are equal.
type Identifier struct {
	IndexOfStartInTree int // index of the box's start token
	IndexInInlineBoxes int // index of the box in insertion order
}

func (id Identifier) String() string {
	return fmt.Sprintf("%d/%d", id.IndexInInlineBoxes, id.IndexOfStartInTree)
}

// PathToken opens or closes an inline box.
type PathToken struct {
	End bool       // false for start tokens
	ID  Identifier // box which is opened or closed
}

// Start creates a start token for a box.
func Start(id Identifier) PathToken {
	return PathToken{ID: id}
}

// End creates an end token for a box.
func End(id Identifier) PathToken {
	return PathToken{End: true, ID: id}
}

// IsStart is true for tokens opening a box.
func (t PathToken) IsStart() bool {
	return !t.End
}

// Reverse turns a start token into an end token and vice versa.
func (t PathToken) Reverse() PathToken {
	return PathToken{End: !t.End, ID: t.ID}
}

func (t PathToken) String() string {
	if t.End {
		return fmt.Sprintf("End(%d)", t.ID.IndexInInlineBoxes)
	}
	return fmt.Sprintf("Start(%d)", t.ID.IndexInInlineBoxes)
}

// InlineBoxes is an append-only store of the inline boxes of an inline
// formatting context, together with their nesting, encoded as a sequence
// of path tokens.
//
// Boxes are started and ended by the box tree builder, which has to pair
// calls in a well-nested manner. After construction, the store is frozen
// and may be read concurrently.
type InlineBoxes struct {
	mu     sync.RWMutex
	boxes  []*InlineBox
	tokens []PathToken
	frozen bool
}

// NewInlineBoxes creates an empty store.
func NewInlineBoxes() *InlineBoxes {
	return &InlineBoxes{}
}

// StartInlineBox appends an inline box and opens it. It returns the new
// identifier of the box, which is stored with the box as well.
func (ib *InlineBoxes) StartInlineBox(box *InlineBox) Identifier {
	ib.mu.Lock()
	defer ib.mu.Unlock()
	assertThat(!ib.frozen, "cannot start box in frozen store")
	id := Identifier{
		IndexOfStartInTree: len(ib.tokens),
		IndexInInlineBoxes: len(ib.boxes),
	}
	box.Lock()
	box.identifier = id
	box.Unlock()
	ib.boxes = append(ib.boxes, box)
	ib.tokens = append(ib.tokens, Start(id))
	return id
}

// EndInlineBox closes an inline box.
func (ib *InlineBoxes) EndInlineBox(id Identifier) {
	ib.mu.Lock()
	defer ib.mu.Unlock()
	assertThat(!ib.frozen, "cannot end box in frozen store")
	ib.tokens = append(ib.tokens, End(id))
}

// Freeze disallows further modifications.
func (ib *InlineBoxes) Freeze() {
	ib.mu.Lock()
	defer ib.mu.Unlock()
	ib.frozen = true
}

// Len returns the number of inline boxes.
func (ib *InlineBoxes) Len() int {
	ib.mu.RLock()
	defer ib.mu.RUnlock()
	return len(ib.boxes)
}

// Get returns the inline box for an identifier.
func (ib *InlineBoxes) Get(id Identifier) *InlineBox {
	ib.mu.RLock()
	defer ib.mu.RUnlock()
	return ib.boxes[id.IndexInInlineBoxes]
}

// Boxes returns the inline boxes in insertion order.
func (ib *InlineBoxes) Boxes() []*InlineBox {
	ib.mu.RLock()
	defer ib.mu.RUnlock()
	return append([]*InlineBox(nil), ib.boxes...)
}

// Tokens returns a copy of the token sequence.
func (ib *InlineBoxes) Tokens() []PathToken {
	ib.mu.RLock()
	defer ib.mu.RUnlock()
	return append([]PathToken(nil), ib.tokens...)
}

// GetPath returns the tokens which move the current position from box
// from to box to. A nil from denotes the root of the inline formatting
// context. Pairs of tokens entering and immediately leaving a box are
// omitted. If to precedes from, the path runs backwards: the tokens
// are in reverse order and every token is flipped.
func (ib *InlineBoxes) GetPath(from *Identifier, to Identifier) []PathToken {
	if from != nil && *from == to {
		return nil
	}
	ib.mu.RLock()
	defer ib.mu.RUnlock()
	fromIndex := 0
	if from != nil {
		fromIndex = from.IndexOfStartInTree
	}
	toIndex := to.IndexOfStartInTree
	reversed := toIndex < fromIndex
	// exclude the boundary token at the position we leave
	if toIndex > fromIndex && from != nil {
		fromIndex++
	} else if toIndex < fromIndex {
		toIndex++
	}
	lo, hi := min(fromIndex, toIndex), max(fromIndex, toIndex)
	var path []PathToken
	for _, token := range ib.tokens[lo : hi+1] {
		if l := len(path); l > 0 && token.Reverse() == path[l-1] {
			path = path[:l-1]
		} else {
			path = append(path, token)
		}
	}
	if reversed {
		for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
			path[i], path[j] = path[j], path[i]
		}
		for i := range path {
			path[i] = path[i].Reverse()
		}
	}
	tracer().Debugf("path %v → %s = %v", from, to, path)
	return path
}
