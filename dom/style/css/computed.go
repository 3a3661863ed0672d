package css

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"fortio.org/safecast"
	"github.com/npillmayer/reflow/dom/style"
)

// ComputedStyle is an immutable snapshot of the computed style of an element.
// Computed styles are shared by readers (DOM nodes, boxes, fragments) and
// are never mutated after construction; a restyle produces a new snapshot.
type ComputedStyle struct {
	Display  DisplayMode
	Position PositionT
	Order    int32 // CSS `order` for flex and grid items
	Width    DimenT
	Height   DimenT
	Color    color.Color
	props    *style.PropertyMap
}

// DefaultStyle is the style of anonymous boxes which are not tied to an element.
var DefaultStyle = &ComputedStyle{
	Display:  BlockMode | InnerBlockMode,
	Position: Static(),
	Width:    Auto(),
	Height:   Auto(),
}

// Compute creates a computed style snapshot from the cascaded properties
// of an element. Errors are reported for malformed property values; the
// returned style is valid in any case, with defaults for malformed values.
func Compute(props *style.PropertyMap) (*ComputedStyle, error) {
	cs := &ComputedStyle{props: props}
	var errs []string
	var err error
	if cs.Display, err = ParseDisplay(cs.Get("display").String()); err != nil {
		errs = append(errs, err.Error())
	}
	if cs.Position, err = ParsePosition(cs.Get); err != nil {
		errs = append(errs, err.Error())
	}
	if cs.Position.IsUnset() {
		cs.Position = Static()
	}
	if cs.Order, err = ParseOrder(cs.Get("order")); err != nil {
		errs = append(errs, err.Error())
	}
	if cs.Width, err = ParseDimen(cs.Get("width")); err != nil {
		errs = append(errs, err.Error())
	}
	if cs.Height, err = ParseDimen(cs.Get("height")); err != nil {
		errs = append(errs, err.Error())
	}
	cs.Color = cs.Get("color").Color()
	if len(errs) > 0 {
		return cs, fmt.Errorf("computing style: %s", strings.Join(errs, "; "))
	}
	return cs, nil
}

// ParseOrder parses the CSS `order` property. An empty property is 0.
func ParseOrder(p style.Property) (int32, error) {
	if p.IsEmpty() || p.IsInitial() {
		return 0, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(p.String()))
	if err != nil {
		return 0, fmt.Errorf("illegal order %q: %w", p, err)
	}
	return safecast.Conv[int32](n)
}

// Get returns the computed value of a property, or NullStyle.
func (cs *ComputedStyle) Get(key string) style.Property {
	if cs == nil || cs.props == nil {
		return style.NullStyle
	}
	p, _ := cs.props.Property(key)
	return p
}

// Properties returns the property map the snapshot has been computed from.
func (cs *ComputedStyle) Properties() *style.PropertyMap {
	if cs == nil {
		return nil
	}
	return cs.props
}

// IsDisplayNone is true for elements which do not generate boxes at all.
func (cs *ComputedStyle) IsDisplayNone() bool {
	return cs.Display.IsNone()
}

// IsAbsolutelyPositioned is true for `position: absolute` and `position: fixed`.
func (cs *ComputedStyle) IsAbsolutelyPositioned() bool {
	return cs.Position.IsOutOfFlow()
}

// InlineSizeDependsOnContent is true if the outer inline size of a box with this
// style is determined by its content, i.e. the width is not fixed or relative
// to the containing block.
func (cs *ComputedStyle) InlineSizeDependsOnContent() bool {
	return !cs.Width.IsAbsolute() && !cs.Width.IsPercent()
}

func (cs *ComputedStyle) String() string {
	if cs == nil {
		return "<no style>"
	}
	return fmt.Sprintf("{%s pos=%s order=%d w=%s}", cs.Display.FullString(), cs.Position, cs.Order, cs.Width)
}
