package catalog

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"clinicdesk/internal/domain"
)

// ErrUnresolvedZone a zone name with no catalog entry. Callers keep the
// raw name visible and editable instead of aborting.
var ErrUnresolvedZone = errors.New("zone name not present in catalog")

// Catalog in-memory set of canonical zones, loaded once from the
// backend and replaced wholesale on refresh. Read by the form, the grid
// and the filters; written only through Replace.
type Catalog struct {
	mu    sync.RWMutex
	zones []domain.Zone
	byID  map[string]domain.Zone
}

func New() *Catalog {
	return &Catalog{byID: map[string]domain.Zone{}}
}

// Replace swaps in a freshly fetched zone set.
func (c *Catalog) Replace(zones []domain.Zone) {
	sorted := make([]domain.Zone, len(zones))
	copy(sorted, zones)
	coll := newCollator()
	sort.SliceStable(sorted, func(i, j int) bool {
		return coll.CompareString(sorted[i].Name, sorted[j].Name) < 0
	})

	byID := make(map[string]domain.Zone, len(sorted))
	for _, z := range sorted {
		byID[z.ZoneID] = z
	}

	c.mu.Lock()
	c.zones = sorted
	c.byID = byID
	c.mu.Unlock()
}

// All returns the zones in collated name order.
func (c *Catalog) All() []domain.Zone {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Zone, len(c.zones))
	copy(out, c.zones)
	return out
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.zones)
}

// Search returns the zones visible for the given patient gender whose
// canonical or alias name contains term, case-insensitively. An empty
// term is the browse affordance: every visible zone is returned.
func (c *Catalog) Search(term, gender string) []domain.Zone {
	needle := strings.ToLower(strings.TrimSpace(term))

	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []domain.Zone
	for _, z := range c.zones {
		if !z.VisibleFor(gender) {
			continue
		}
		if needle == "" {
			out = append(out, z)
			continue
		}
		if strings.Contains(strings.ToLower(z.Name), needle) ||
			(z.AliasName != "" && strings.Contains(strings.ToLower(z.AliasName), needle)) {
			out = append(out, z)
		}
	}
	return out
}

// ResolveByName exact case-insensitive match on the canonical name
// only, used when reconstructing a procedure's zones from read data.
func (c *Catalog) ResolveByName(name string) (domain.Zone, bool) {
	name = strings.TrimSpace(name)
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, z := range c.zones {
		if strings.EqualFold(z.Name, name) {
			return z, true
		}
	}
	return domain.Zone{}, false
}

// ResolveByAnyName exact case-insensitive match on the canonical or the
// alias name. The normalization boundary uses this wider match because
// inbound records may carry either spelling.
func (c *Catalog) ResolveByAnyName(name string) (domain.Zone, bool) {
	name = strings.TrimSpace(name)
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, z := range c.zones {
		if strings.EqualFold(z.Name, name) {
			return z, true
		}
		if z.AliasName != "" && strings.EqualFold(z.AliasName, name) {
			return z, true
		}
	}
	return domain.Zone{}, false
}

// ResolveByID direct lookup for already-id-bound assignments.
func (c *Catalog) ResolveByID(id string) (domain.Zone, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	z, ok := c.byID[id]
	return z, ok
}

// newCollator builds the locale-aware, case-insensitive collator used
// for every user-facing name ordering. The UI language is Bulgarian but
// zone aliases are Latin-script, so collation has to handle both.
func newCollator() *collate.Collator {
	return collate.New(language.Bulgarian, collate.IgnoreCase)
}

// Compare exposes the module's collation rule for other packages that
// order names (patient sort, grid columns).
func Compare(a, b string) int {
	return newCollator().CompareString(a, b)
}
