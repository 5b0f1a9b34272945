// Package stats accumulates the client-side aggregates: a windowed
// running mean/standard deviation over integer samples, and the mean
// of successive differences used by delay estimation.
package stats

import (
	"math/big"

	"github.com/ddirect/container/fifo"
	"golang.org/x/exp/constraints"
)

// Stats keeps a windowed running mean and sample standard deviation.
// Sums are held in big.Int so squared samples cannot overflow.
type Stats[T constraints.Signed] struct {
	sum        big.Int
	sum2       big.Int
	t1         big.Int
	t2         big.Int
	t3         big.Int
	window     fifo.Fifo[T]
	maxSamples int
}

// New returns a Stats keeping at most maxSamples samples; older ones
// are evicted as new ones arrive. maxSamples <= 0 means unbounded.
func New[T constraints.Signed](maxSamples int) *Stats[T] {
	return &Stats[T]{maxSamples: maxSamples}
}

func (s *Stats[T]) Add(x T) {
	if s.maxSamples > 0 && s.window.Len() >= s.maxSamples {
		s.evict()
	}
	t := s.t1.SetInt64(int64(x))
	s.sum.Add(&s.sum, t)
	s.sum2.Add(&s.sum2, t.Mul(t, t))
	s.window.Enqueue(x)
}

func (s *Stats[T]) evict() {
	if x, ok := s.window.Dequeue(); ok {
		t := s.t1.SetInt64(int64(x))
		s.sum.Sub(&s.sum, t)
		s.sum2.Sub(&s.sum2, t.Mul(t, t))
	}
}

func (s *Stats[T]) Count() int {
	return s.window.Len()
}

func (s *Stats[T]) Mean() T {
	n := s.Count()
	if n < 1 {
		return 0
	}
	return T(s.t2.Div(&s.sum, s.t1.SetUint64(uint64(n))).Int64())
}

func (s *Stats[T]) StdDev() T {
	n := uint64(s.Count())
	if n < 2 {
		return 0
	}
	// Sqrt((n*sum2 - sum*sum) / (n*(n-1)))
	t1 := &s.t1
	t2 := &s.t2
	t3 := &s.t3

	t1.SetUint64(n)                                     // t1 = n
	t2.Sub(t2.Mul(t1, &s.sum2), t3.Mul(&s.sum, &s.sum)) // t2 = n*sum2 - (sum*sum)
	t3.Mul(t1, t3.SetUint64(n-1))                       // t3 = n*(n-1)

	return T(t2.Div(t2, t3).Sqrt(t2).Uint64())
}

// DeltaMean feeds the successive differences of a sample stream into a
// Stats. With fewer than two samples the mean is zero.
type DeltaMean[T constraints.Signed] struct {
	diffs *Stats[T]
	last  T
	seen  bool
}

func NewDeltaMean[T constraints.Signed](maxSamples int) *DeltaMean[T] {
	return &DeltaMean[T]{diffs: New[T](maxSamples)}
}

func (d *DeltaMean[T]) Add(x T) {
	if d.seen {
		d.diffs.Add(x - d.last)
	}
	d.last = x
	d.seen = true
}

func (d *DeltaMean[T]) Mean() T {
	return d.diffs.Mean()
}

func (d *DeltaMean[T]) Count() int {
	return d.diffs.Count()
}
