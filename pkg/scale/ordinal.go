package scale

import "hash/fnv"

// Ordinal maps categories onto a cyclic list of output values.
// Category i of the domain gets output i modulo the output count.
type Ordinal[T any] struct {
	domain []string
	index  map[string]int
	output []T
}

// NewOrdinal builds an ordinal scale from domain to output.
func NewOrdinal[T any](domain []string, output []T) *Ordinal[T] {
	o := &Ordinal[T]{index: make(map[string]int, len(domain)), output: output}
	for _, d := range domain {
		if _, dup := o.index[d]; dup {
			continue
		}
		o.index[d] = len(o.domain)
		o.domain = append(o.domain, d)
	}
	return o
}

// Domain returns the distinct categories in insertion order.
func (o *Ordinal[T]) Domain() []string { return o.domain }

// Scale returns the output for d. Categories outside the domain are placed
// by a hash of their name, so the mapping stays total and deterministic.
func (o *Ordinal[T]) Scale(d string) T {
	var zero T
	if len(o.output) == 0 {
		return zero
	}
	i, ok := o.index[d]
	if !ok {
		h := fnv.New32a()
		_, _ = h.Write([]byte(d))
		i = int(h.Sum32() % uint32(len(o.output)))
	}
	return o.output[i%len(o.output)]
}
