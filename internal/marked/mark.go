package marked

import "fmt"

// Mark tags the half-open byte range [Start, End) of a Text with Flag.
type Mark[F comparable] struct {
	Flag  F
	Start int
	End   int
}

// Len returns the size of the range in bytes.
func (m Mark[F]) Len() int { return m.End - m.Start }

// Empty reports whether the range has zero size.
func (m Mark[F]) Empty() bool { return m.Start == m.End }

// Contains reports whether other lies inside m (boundaries included).
func (m Mark[F]) Contains(other Mark[F]) bool {
	return other.Start >= m.Start && other.End <= m.End
}

func (m Mark[F]) String() string {
	return fmt.Sprintf("[%d,%d) %v", m.Start, m.End, m.Flag)
}
