package dataset

import "math"

// Stack is one category's records and its per-metric values.
type Stack struct {
	Key     string    `json:"key"`
	Records []Record  `json:"-"`
	Values  []float64 `json:"values"` // per metric, in Key order
}

// Total returns the sum of all metric values of the stack.
func (s Stack) Total() float64 {
	var sum float64
	for _, v := range s.Values {
		sum += v
	}
	return sum
}

// DataSet groups records into stacks by their dimension value.
// It is an immutable snapshot of the records passed to New.
type DataSet struct {
	key     Key
	records []Record
	stacks  []Stack
	index   map[string]int
}

// New groups records by key.Dimension. Categories keep the order in which
// they are first encountered; metric values of records sharing a category
// are summed.
func New(records []Record, key Key) *DataSet {
	d := &DataSet{
		key:     key,
		records: append([]Record(nil), records...),
		index:   make(map[string]int),
	}
	for _, r := range d.records {
		cat := r.Label(key.Dimension)
		i, ok := d.index[cat]
		if !ok {
			i = len(d.stacks)
			d.index[cat] = i
			d.stacks = append(d.stacks, Stack{Key: cat, Values: make([]float64, len(key.Metrics))})
		}
		s := &d.stacks[i]
		s.Records = append(s.Records, r)
		for m, field := range key.Metrics {
			s.Values[m] += r.Number(field)
		}
	}
	return d
}

// Key returns the key the records were grouped by.
func (d *DataSet) Key() Key { return d.key }

// Records returns the input records in their original order.
func (d *DataSet) Records() []Record { return d.records }

// Len returns the number of stacks.
func (d *DataSet) Len() int { return len(d.stacks) }

// Stacks returns all stacks in category order.
func (d *DataSet) Stacks() []Stack { return d.stacks }

// Categories returns the distinct dimension values in first-encountered order.
func (d *DataSet) Categories() []string {
	cats := make([]string, len(d.stacks))
	for i, s := range d.stacks {
		cats[i] = s.Key
	}
	return cats
}

// Find returns the stack of the given category.
func (d *DataSet) Find(key string) (Stack, bool) {
	i, ok := d.index[key]
	if !ok {
		return Stack{}, false
	}
	return d.stacks[i], true
}

// Extent returns the minimum and maximum of fn over all stacks.
// NaN projections are skipped; ok is false when no stack produced a number.
func (d *DataSet) Extent(fn func(Stack) float64) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, s := range d.stacks {
		v := fn(s)
		if math.IsNaN(v) {
			continue
		}
		ok = true
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if !ok {
		return math.NaN(), math.NaN(), false
	}
	return lo, hi, true
}
