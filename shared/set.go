package shared

import "sort"

// IndexSet is a set of path indices.
type IndexSet map[int]bool

func (s IndexSet) AsSortedSlice() []int {
	ret := make([]int, 0, len(s))
	for key, value := range s {
		if value {
			ret = append(ret, key)
		}
	}
	sort.Ints(ret)
	return ret
}

func (s IndexSet) Has(i int) bool {
	return s[i]
}

func SetOf(members ...int) IndexSet {
	ret := make(IndexSet, len(members))
	for _, member := range members {
		ret[member] = true
	}
	return ret
}
