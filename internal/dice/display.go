package dice

import "sort"

// GroupForDisplay buckets equal dice together, largest group first and
// higher faces first among groups of the same size.
func GroupForDisplay(rolls []int) []Group {
	idx := make(map[int]int, Sides)
	var groups []Group
	for _, r := range rolls {
		i, ok := idx[r]
		if !ok {
			i = len(groups)
			idx[r] = i
			groups = append(groups, Group{Value: r})
		}
		groups[i].Dice = append(groups[i].Dice, r)
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Size() != groups[j].Size() {
			return groups[i].Size() > groups[j].Size()
		}
		return groups[i].Value > groups[j].Value
	})
	return groups
}

// MatchCount counts dice showing base plus wild sixes. With no base
// resolved only the sixes count.
func MatchCount(rolls []int, base int) int {
	n := 0
	for _, r := range rolls {
		if r == Wild || (base != NoBase && r == base) {
			n++
		}
	}
	return n
}
