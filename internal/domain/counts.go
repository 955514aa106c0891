package domain

import "sort"

// CategoryCount is one entry of a frequency table.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Counter counts string occurrences while remembering first-seen order.
type Counter struct {
	index map[string]int
	items []CategoryCount
}

func NewCounter() *Counter {
	return &Counter{index: make(map[string]int)}
}

// Add increments name by one.
func (c *Counter) Add(name string) {
	if i, ok := c.index[name]; ok {
		c.items[i].Count++
		return
	}
	c.index[name] = len(c.items)
	c.items = append(c.items, CategoryCount{Name: name, Count: 1})
}

// Len is the number of distinct names seen.
func (c *Counter) Len() int {
	return len(c.items)
}

// Sorted returns every entry ordered by count descending, ties in first-seen order.
func (c *Counter) Sorted() []CategoryCount {
	out := make([]CategoryCount, len(c.items))
	copy(out, c.items)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// Top returns at most n entries of Sorted.
func (c *Counter) Top(n int) []CategoryCount {
	out := c.Sorted()
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// CountsMap flattens ordered counts into a map.
func CountsMap(counts []CategoryCount) map[string]int {
	m := make(map[string]int, len(counts))
	for _, c := range counts {
		m[c.Name] = c.Count
	}
	return m
}
