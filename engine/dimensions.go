package engine

// Dimensions is a capability abstraction over how a board's actual and
// stored widths are determined (§3, §4.2). Go has no const-generic array
// lengths, so unlike a monomorphizing language the four named variants in
// spec.md (Square, Fixed, Custom, FixedWithStoredWidth) collapse to one
// representation here; the constructors below exist to keep the call
// sites self-documenting about which variant a caller intends. See
// DESIGN.md for the Open Question this resolves.
type Dimensions struct {
	ActualWidth  int
	ActualHeight int
	StoredWidth  int
}

// SquareDimensions builds a Dimensions for a board whose width equals its
// height, with no stored-width padding.
func SquareDimensions(width int) Dimensions {
	return Dimensions{ActualWidth: width, ActualHeight: width, StoredWidth: width}
}

// FixedDimensions builds a Dimensions for a known, fixed width and
// height, with no stored-width padding.
func FixedDimensions(width, height int) Dimensions {
	return Dimensions{ActualWidth: width, ActualHeight: height, StoredWidth: width}
}

// CustomDimensions builds a Dimensions for a width and height known only
// at runtime (e.g. decoded from a snapshot). Representation-wise this is
// identical to FixedDimensions; the distinction exists purely for the
// caller's intent, matching spec.md's Custom variant.
func CustomDimensions(width, height int) Dimensions {
	return FixedDimensions(width, height)
}

// FixedWithStoredWidthDimensions builds a Dimensions whose stored width
// exceeds its actual width, e.g. to align rows on a shift-friendly
// stride. storedWidth must be >= width.
func FixedWithStoredWidthDimensions(width, height, storedWidth int) Dimensions {
	return Dimensions{ActualWidth: width, ActualHeight: height, StoredWidth: storedWidth}
}

// Cells returns the number of cell slots a board with these dimensions
// occupies in the backing array.
func (d Dimensions) Cells() int {
	return d.StoredWidth * d.ActualHeight
}

// InBounds reports whether pos lies within the actual (not stored) board
// extents.
func (d Dimensions) InBounds(pos Position) bool {
	return pos.X >= 0 && pos.X < d.ActualWidth && pos.Y >= 0 && pos.Y < d.ActualHeight
}

// IndexFromPosition converts a Position to a CellIndex using the stored
// width.
func (d Dimensions) IndexFromPosition(pos Position) CellIndex {
	return CellIndex(pos.Y*d.StoredWidth + pos.X)
}

// PositionFromIndex converts a CellIndex back to a Position.
func (d Dimensions) PositionFromIndex(idx CellIndex) Position {
	x := int(idx) % d.StoredWidth
	y := int(idx) / d.StoredWidth
	return Position{X: x, Y: y}
}

// wrapped folds an out-of-bounds position by a single step on each axis.
// This is a debug-asserted one-step wrap, not a general modulo: callers
// (GenerateState) never produce offsets larger than one cell, so a
// position more than one step out of bounds indicates a bug upstream.
func (d Dimensions) wrapped(pos Position) Position {
	x, y := pos.X, pos.Y
	if x < 0 {
		assertSingleStep(x, -1)
		x = d.ActualWidth - 1
	} else if x >= d.ActualWidth {
		assertSingleStep(x, d.ActualWidth)
		x = 0
	}
	if y < 0 {
		assertSingleStep(y, -1)
		y = d.ActualHeight - 1
	} else if y >= d.ActualHeight {
		assertSingleStep(y, d.ActualHeight)
		y = 0
	}
	return Position{X: x, Y: y}
}

// AsWrappedCellIndex folds pos onto the board (single-step wrap only) and
// returns the corresponding CellIndex.
func (d Dimensions) AsWrappedCellIndex(pos Position) CellIndex {
	return d.IndexFromPosition(d.wrapped(pos))
}

func assertSingleStep(got, boundary int) {
	if debugAssertionsEnabled {
		diff := got - boundary
		if diff > 1 || diff < -1 {
			panic("engine: wrap helper received an offset larger than one cell")
		}
	}
}

// BoardCapacity names one of the fixed-size board specializations the
// original engine monomorphizes over. In Go it is purely a sizing/stride
// hint returned by BestFit; the underlying Board always reserves
// MaxBoardCells, see board.go.
type BoardCapacity int

const (
	CapacityTiny7 BoardCapacity = iota
	CapacityStandard11
	CapacityLarge15
	CapacityGiant19
	CapacityArcadeMaze19x21
	CapacityHuge25
	CapacityMassive50
)

func (c BoardCapacity) String() string {
	switch c {
	case CapacityTiny7:
		return "tiny7"
	case CapacityStandard11:
		return "standard11"
	case CapacityLarge15:
		return "large15"
	case CapacityGiant19:
		return "giant19"
	case CapacityArcadeMaze19x21:
		return "arcade_maze_19x21"
	case CapacityHuge25:
		return "huge25"
	case CapacityMassive50:
		return "massive50"
	default:
		return "unknown"
	}
}

type capacityPreset struct {
	capacity BoardCapacity
	width    int
	height   int
}

// presets are declared in ascending area order: BestFit's "smallest
// enclosing" search depends on this order.
var presets = [...]capacityPreset{
	{CapacityTiny7, 7, 7},
	{CapacityStandard11, 11, 11},
	{CapacityLarge15, 15, 15},
	{CapacityGiant19, 19, 19},
	{CapacityArcadeMaze19x21, 19, 21},
	{CapacityHuge25, 25, 25},
	{CapacityMassive50, 50, 50},
}

// BestFit picks the smallest compile-time board specialization that fits
// the declared width, height and agent count, preferring an exact
// dimension match over the smallest enclosing variant (§4.7).
func BestFit(width, height, agents int) (BoardCapacity, bool) {
	if agents > MaxAgents {
		return 0, false
	}
	for _, p := range presets {
		if p.width == width && p.height == height {
			return p.capacity, true
		}
	}
	for _, p := range presets {
		if p.capacity == CapacityArcadeMaze19x21 {
			// The arcade maze is a fixed, non-rectangular layout: it can
			// only be chosen on an exact match, handled above.
			continue
		}
		if p.width >= width && p.height >= height {
			return p.capacity, true
		}
	}
	return 0, false
}

// StoredWidth returns the shift-friendly stride BestFit's capacity
// suggests for a board of the given actual width: the smallest power of
// two at least as large as width.
func StoredWidth(width int) int {
	w := 1
	for w < width {
		w <<= 1
	}
	return w
}
