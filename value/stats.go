package value

// TreeStats contains statistical information about a document tree
type TreeStats struct {
	Nodes   int `json:"nodes"`   // Total number of nodes, including the root
	Nulls   int `json:"nulls"`   // Number of null nodes
	Arrays  int `json:"arrays"`  // Number of arrays
	Objects int `json:"objects"` // Number of objects
	Scalars int `json:"scalars"` // Number of bool, number and string nodes
	Depth   int `json:"depth"`   // Nesting depth; a lone scalar has depth 1
}

// Stats returns statistics for the tree rooted at v
func Stats(v *Value) TreeStats {
	var stats TreeStats
	collectStats(v, 1, &stats)
	return stats
}

func collectStats(v *Value, depth int, stats *TreeStats) {
	stats.Nodes++
	if depth > stats.Depth {
		stats.Depth = depth
	}
	switch v.Kind() {
	case KindNull:
		stats.Nulls++
	case KindArray:
		stats.Arrays++
		for _, item := range v.items {
			collectStats(item, depth+1, stats)
		}
	case KindObject:
		stats.Objects++
		for _, m := range v.object.members {
			collectStats(m.Value, depth+1, stats)
		}
	default:
		stats.Scalars++
	}
}
