package ranking

import "sort"

// Priority is a checklist item's urgency as produced by the audit scan.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// rank orders priorities for display: high before medium before low.
// Unknown values sort last.
func (p Priority) rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	}
	return 3
}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool { return p.rank() < 3 }

// Known recommendation categories. Only a subset can conflict: for
// those, a page can logically carry a single directive, so two keywords
// recommending different values for the same page contradict each other.
const (
	CategoryTitleTag         = "title-tag"
	CategoryMetaDescription  = "meta-description"
	CategoryHeadingStructure = "heading-structure"
	CategorySchemaMarkup     = "schema-markup"
	CategoryContent          = "content"
	CategoryInternalLinking  = "internal-linking"
	CategoryImageAlt         = "image-alt"
	CategoryPageSpeed        = "page-speed"
)

var knownCategories = map[string]bool{
	CategoryTitleTag:         true,
	CategoryMetaDescription:  true,
	CategoryHeadingStructure: true,
	CategorySchemaMarkup:     true,
	CategoryContent:          true,
	CategoryInternalLinking:  true,
	CategoryImageAlt:         true,
	CategoryPageSpeed:        true,
}

// conflictingCategories are the single-instance categories where two
// directives for one page cannot both be acted on.
var conflictingCategories = map[string]bool{
	CategoryTitleTag:         true,
	CategoryMetaDescription:  true,
	CategoryHeadingStructure: true,
	CategorySchemaMarkup:     true,
}

// ValidCategory reports whether c is a known recommendation category.
// Callers validate at the boundary; the resolver itself accepts any
// string and simply treats unknown categories as non-conflicting.
func ValidCategory(c string) bool { return knownCategories[c] }

// ChecklistItem is one recommendation produced by an audit scan,
// attributed to exactly one source keyword for the duration of a group
// scan.
type ChecklistItem struct {
	ID       string   `json:"id"`
	Category string   `json:"category"`
	Task     string   `json:"task"`
	Page     string   `json:"page"`
	Priority Priority `json:"priority"`
	Impact   string   `json:"impact,omitempty"`
}

// KeywordScan is one keyword's audit checklist plus its value score.
// Keywords not yet scanned are simply absent and contribute nothing.
type KeywordScan struct {
	Keyword string
	Value   int
	Items   []ChecklistItem
}

// RankedItem is a checklist item annotated with its conflict outcome.
type RankedItem struct {
	Keyword      string        `json:"keyword"`
	Task         ChecklistItem `json:"task"`
	KeywordValue int           `json:"keyword_value"`
	IsConflict   bool          `json:"is_conflict"`
	IsPrimary    bool          `json:"is_primary"`
}

// ConflictGroup reports the competing directives for one (page,
// category) pair. Exactly one member is primary; the rest stay in the
// group for auditability rather than being dropped.
type ConflictGroup struct {
	Page     string       `json:"page"`
	Category string       `json:"category"`
	Items    []RankedItem `json:"items"`
}

// Result is the ranked output of a group scan.
type Result struct {
	// Ranked holds the primary items, ordered for display: priority
	// rank first, then keyword value descending.
	Ranked []RankedItem `json:"ranked"`
	// Deprioritized holds the suppressed conflict losers, same ordering.
	// Every input item appears in exactly one of the two lists.
	Deprioritized []RankedItem    `json:"deprioritized"`
	Conflicts     []ConflictGroup `json:"conflicts"`
}

type groupKey struct {
	page     string
	category string
}

// Resolve flattens the scans into one annotated list, detects
// conflicting directives in single-instance categories, picks each
// group's winner by keyword value, and orders everything for display.
// The item count is conserved: every checklist item fed in comes out in
// either Ranked or Deprioritized.
func Resolve(scans []KeywordScan) Result {
	var items []RankedItem
	for _, scan := range scans {
		for _, it := range scan.Items {
			items = append(items, RankedItem{
				Keyword:      scan.Keyword,
				Task:         it,
				KeywordValue: scan.Value,
				IsPrimary:    true,
			})
		}
	}

	// Group by (page, category), restricted to conflicting categories.
	// Iterate by index so annotations land on the flattened items.
	groups := make(map[groupKey][]int)
	var order []groupKey
	for i, item := range items {
		if !conflictingCategories[item.Task.Category] {
			continue
		}
		key := groupKey{page: item.Task.Page, category: item.Task.Category}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], i)
	}

	var conflicts []ConflictGroup
	for _, key := range order {
		idxs := groups[key]
		if len(idxs) <= 1 {
			continue
		}

		// Stable sort keeps input order between equal-value keywords,
		// so the winner is deterministic.
		sort.SliceStable(idxs, func(a, b int) bool {
			return items[idxs[a]].KeywordValue > items[idxs[b]].KeywordValue
		})

		group := ConflictGroup{Page: key.page, Category: key.category}
		for rank, idx := range idxs {
			items[idx].IsConflict = true
			items[idx].IsPrimary = rank == 0
			group.Items = append(group.Items, items[idx])
		}
		conflicts = append(conflicts, group)
	}

	var result Result
	result.Conflicts = conflicts
	for _, item := range items {
		if item.IsPrimary {
			result.Ranked = append(result.Ranked, item)
		} else {
			result.Deprioritized = append(result.Deprioritized, item)
		}
	}
	sortForDisplay(result.Ranked)
	sortForDisplay(result.Deprioritized)
	return result
}

// sortForDisplay orders items by priority rank, then keyword value
// descending. Stable, so equal items keep their scan order.
func sortForDisplay(items []RankedItem) {
	sort.SliceStable(items, func(a, b int) bool {
		ra, rb := items[a].Task.Priority.rank(), items[b].Task.Priority.rank()
		if ra != rb {
			return ra < rb
		}
		return items[a].KeywordValue > items[b].KeywordValue
	})
}
