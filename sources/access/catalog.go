package access

import (
	"relaybot/sources/configuration"
	"sort"
	"time"
)

type Package struct {
	Name       string
	DailyLimit int
	Price      int64
	Features   []string
	Duration   time.Duration
}

// Catalog is the static set of purchasable packages, loaded once at startup.
type Catalog struct {
	packages map[string]Package
	ordered  []Package
}

func NewCatalog(config *configuration.Config) *Catalog {
	packages := make(map[string]Package, len(config.Packages))
	for name, pkg := range config.Packages {
		packages[name] = Package{
			Name:       name,
			DailyLimit: pkg.DailyLimit,
			Price:      pkg.Price,
			Features:   append([]string(nil), pkg.Features...),
			Duration:   time.Duration(pkg.DurationDays) * 24 * time.Hour,
		}
	}
	return newCatalog(packages)
}

func newCatalog(packages map[string]Package) *Catalog {
	ordered := make([]Package, 0, len(packages))
	for _, pkg := range packages {
		ordered = append(ordered, pkg)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Price != ordered[j].Price {
			return ordered[i].Price < ordered[j].Price
		}
		return ordered[i].Name < ordered[j].Name
	})
	return &Catalog{packages: packages, ordered: ordered}
}

func (x *Catalog) Lookup(name string) (Package, bool) {
	pkg, ok := x.packages[name]
	return pkg, ok
}

// Packages returns every package, cheapest first.
func (x *Catalog) Packages() []Package {
	return append([]Package(nil), x.ordered...)
}

func (x *Catalog) Names() []string {
	names := make([]string, 0, len(x.ordered))
	for _, pkg := range x.ordered {
		names = append(names, pkg.Name)
	}
	return names
}
