package core

import (
	"sort"
	"strings"
)

// PrefixRule binds one POD prefix to a destination category.
type PrefixRule struct {
	Prefix   string
	Category Category
}

// DefaultPrefixRules is the built-in routing table: Hungarian electricity
// PODs start with the HU country code, gas PODs with 39.
func DefaultPrefixRules() []PrefixRule {
	return []PrefixRule{
		{Prefix: "HU", Category: CategoryElectricity},
		{Prefix: "39", Category: CategoryGas},
	}
}

// Router maps a POD to a destination category and folder via prefix rules.
// A POD matching no configured prefix is Unrouted and must not be written
// anywhere.
type Router struct {
	rules   []PrefixRule
	folders map[Category]string
}

// NewRouter creates a router from a prefix table and the per-category
// destination folders. Rules are ordered longest prefix first so the most
// specific configured prefix always wins.
func NewRouter(rules []PrefixRule, folders map[Category]string) *Router {
	ordered := make([]PrefixRule, len(rules))
	copy(ordered, rules)
	for i := range ordered {
		ordered[i].Prefix = strings.ToUpper(ordered[i].Prefix)
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i].Prefix) > len(ordered[j].Prefix)
	})

	f := make(map[Category]string, len(folders))
	for cat, folder := range folders {
		f[cat] = folder
	}

	return &Router{rules: ordered, folders: f}
}

// Route decides the destination for a POD.
func (r *Router) Route(pod string) RoutingDecision {
	upper := strings.ToUpper(strings.TrimSpace(pod))
	if upper == "" {
		return RoutingDecision{Category: CategoryUnrouted}
	}

	for _, rule := range r.rules {
		if strings.HasPrefix(upper, rule.Prefix) {
			return RoutingDecision{
				Category: rule.Category,
				Folder:   r.folders[rule.Category],
			}
		}
	}

	return RoutingDecision{Category: CategoryUnrouted}
}
