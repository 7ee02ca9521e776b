package pagex

// DefaultTake bounds listings when the caller doesn't ask for a size.
const DefaultTake = 5

// PageRequest is classic page/offset pagination, used by the smaller
// catalog listings where resumability doesn't matter.
type PageRequest struct {
	Page int
	Take int
}

// Normalize clamps out-of-range values to usable defaults.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Take < 1 {
		p.Take = DefaultTake
	}
	return p
}

// Offset returns the rows to skip for the normalized page.
func (p PageRequest) Offset() int {
	p = p.Normalize()
	return (p.Page - 1) * p.Take
}
