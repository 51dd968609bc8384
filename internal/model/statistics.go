package model

import "sort"

// Statistics summarizes the closet.
type Statistics struct {
	CategoryDistribution map[string]int `json:"category_distribution"`
	RecentlyWorn         []Garment      `json:"recently_worn"`
	TotalItems           int            `json:"total_items"`
	Favorites            int            `json:"favorites"`
	NeverWornCount       int            `json:"never_worn_count"`
}

// CategoryCount is one bar of the category distribution chart.
type CategoryCount struct {
	Category string
	Count    int
	Percent  int
}

// SortedDistribution returns the category distribution ordered by count, largest first.
// Percent is rounded against the distribution total.
func (s Statistics) SortedDistribution() []CategoryCount {
	total := 0
	for _, n := range s.CategoryDistribution {
		total += n
	}
	if total == 0 {
		return nil
	}

	counts := make([]CategoryCount, 0, len(s.CategoryDistribution))
	for category, n := range s.CategoryDistribution {
		counts = append(counts, CategoryCount{
			Category: category,
			Count:    n,
			Percent:  int(float64(n)/float64(total)*100 + 0.5),
		})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Category < counts[j].Category
	})
	return counts
}

// FilterOptions lists the values present in the catalog for each filter.
type FilterOptions struct {
	Categories []string `json:"categories"`
	Colors     []string `json:"colors"`
	Styles     []string `json:"styles"`
}
