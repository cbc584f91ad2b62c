// Package doc holds the pagination policy for multi-page documents: the pure
// mapping from a logical page index to the physical single or dual page unit
// that gets rendered.
package doc

// PageMode describes how logical page indices group into render units.
type PageMode int

const (
	Single      PageMode = iota
	DualEvenOdd          // 0, 1-2, 3-4, ...
	DualOddEven          // 0-1, 2-3, 4-5, ...
)

// ParsePageMode maps the configuration token to a PageMode. Unknown tokens
// fall back to Single.
func ParsePageMode(value string) PageMode {
	switch value {
	case "deo":
		return DualEvenOdd
	case "doe":
		return DualOddEven
	}
	return Single
}

func (m PageMode) String() string {
	switch m {
	case DualEvenOdd:
		return "deo"
	case DualOddEven:
		return "doe"
	}
	return "single"
}

// Pages is the physical unit rendered for one logical index: either a lone
// page or a left/right pair starting at Left.
type Pages struct {
	Left int
	Dual bool
}

// SinglePage returns the unit for one page rendered alone.
func SinglePage(index int) Pages {
	return Pages{Left: index}
}

// DualPage returns the unit for the pair (left, left+1).
func DualPage(left int) Pages {
	return Pages{Left: left, Dual: true}
}

// Contains reports whether the logical index falls inside the unit.
func (p Pages) Contains(index int) bool {
	if p.Dual {
		return index == p.Left || index == p.Left+1
	}
	return index == p.Left
}

// PagesFor computes the render unit for logical index i in a document whose
// last valid page index is last.
//
//	Single(len=4)  DualEvenOdd(len=6)  DualOddEven(len=7)
//	      0               0                  0 1
//	      1              1 2                 2 3
//	      2              3 4                 4 5
//	      3               5                   6
func PagesFor(i, last int, mode PageMode) Pages {
	switch mode {
	case DualEvenOdd:
		if i == 0 {
			return SinglePage(0)
		}
		left := (i-1)&^1 | 1
		if left == last {
			return SinglePage(left)
		}
		return DualPage(left)
	case DualOddEven:
		left := i &^ 1
		if left == last {
			return SinglePage(left)
		}
		return DualPage(left)
	}
	return SinglePage(i)
}
