// Package filter keeps a fixed number of recent integer samples and reports
// statistics over them using scaled integer arithmetic.
package filter

import (
	"fmt"
	"strconv"
	"strings"
)

// Buffer is a fixed-capacity ring of samples. The oldest sample is evicted
// once the buffer is full. A Buffer is not safe for concurrent use.
type Buffer struct {
	values []int64
	size   int
	index  int
	filled bool
}

// New returns an empty Buffer holding up to capacity samples. A capacity
// below one returns ErrInvalidCapacity.
func New(capacity int) (*Buffer, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	return &Buffer{
		values: make([]int64, capacity),
		size:   capacity,
	}, nil
}

// Put stores value as the newest sample.
func (b *Buffer) Put(value int64) {
	b.values[b.index] = value
	b.index = (b.index + 1) % b.size
	if b.index == 0 {
		b.filled = true
	}
}

// Len is the number of retained samples, at most Cap.
func (b *Buffer) Len() int {
	if b.filled {
		return b.size
	}
	return b.index
}

// Cap is the capacity given to New.
func (b *Buffer) Cap() int {
	return b.size
}

// Values returns a copy of the retained samples, oldest first.
func (b *Buffer) Values() []int64 {
	length := b.Len()
	result := make([]int64, 0, length)
	if length == 0 {
		return result
	}
	if b.filled {
		result = append(result, b.values[b.index:]...)
	}
	result = append(result, b.values[:b.index]...)
	return result
}

// Last returns the newest sample, or ErrEmpty.
func (b *Buffer) Last() (int64, error) {
	if b.Len() == 0 {
		return 0, ErrEmpty
	}
	return b.values[(b.index-1+b.size)%b.size], nil
}

// Reset drops every sample. The capacity is kept.
func (b *Buffer) Reset() {
	b.index = 0
	b.filled = false
}

// Describe renders occupancy and the retained samples for debugging.
func (b *Buffer) Describe() string {
	var sb strings.Builder
	sb.WriteString("stored values count: ")
	sb.WriteString(strconv.Itoa(b.Len()))
	sb.WriteString(" of ")
	sb.WriteString(strconv.Itoa(b.size))
	sb.WriteString("\nvalues:")
	for _, v := range b.Values() {
		sb.WriteByte(' ')
		sb.WriteString(strconv.FormatInt(v, 10))
	}
	sb.WriteByte('\n')
	return sb.String()
}

func (b *Buffer) String() string {
	return b.Describe()
}
