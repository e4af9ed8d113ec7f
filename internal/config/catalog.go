package config

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/MKhiriev/penny-sync/internal/validators"
	"github.com/MKhiriev/penny-sync/models"
)

const apiChangesHeader = "X-Use-2026-API-Changes"

// Catalog is the static list of synchronized resources.
//
// A TOML catalog looks like:
//
//	[[resource]]
//	name = "customers"
//	class = "changelog"
//
//	[[resource]]
//	name = "fec"
//	class = "export"
//	export_kind = "fecs"
//	export_current_year = true
type Catalog struct {
	Resources []models.Resource `toml:"resource"`
}

// DefaultCatalog returns the built-in resource list.
func DefaultCatalog() Catalog {
	v2026 := func() map[string]string { return map[string]string{apiChangesHeader: "true"} }

	return Catalog{Resources: []models.Resource{
		{Name: "customers", Class: models.ClassChangelog},
		{Name: "suppliers", Class: models.ClassChangelog},
		{Name: "customer_invoices", Class: models.ClassChangelog},
		{Name: "supplier_invoices", Class: models.ClassChangelog},
		{Name: "products", Class: models.ClassChangelog},
		{Name: "transactions", Class: models.ClassChangelog},
		{Name: "ledger_entry_lines", Class: models.ClassChangelog, Headers: v2026()},

		{Name: "ledger_entries", Class: models.ClassFull, Headers: v2026()},
		{Name: "ledger_accounts", Class: models.ClassFull, Headers: v2026()},
		{Name: "bank_accounts", Class: models.ClassFull},
		{Name: "fiscal_years", Class: models.ClassFull, Headers: v2026()},

		{Name: "analytical_ledger", Class: models.ClassExport, ExportKind: "analytical_general_ledgers", ExportCurrentYear: true},
		{Name: "fec", Class: models.ClassExport, ExportKind: "fecs", ExportCurrentYear: true},
	}}
}

// LoadCatalog reads a TOML catalog. An empty path yields [DefaultCatalog].
func LoadCatalog(path string) (Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}

	var c Catalog
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return Catalog{}, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}
	if err := c.Validate(); err != nil {
		return Catalog{}, err
	}
	return c, nil
}

// Validate checks every entry with [validators.ResourceValidator] and
// rejects duplicate names.
func (c Catalog) Validate() error {
	if len(c.Resources) == 0 {
		return fmt.Errorf("%w: no resources", ErrInvalidCatalog)
	}

	v := validators.NewResourceValidator()
	seen := make(map[string]struct{}, len(c.Resources))
	for _, r := range c.Resources {
		if err := v.Validate(context.Background(), r); err != nil {
			return fmt.Errorf("%w: resource %q: %w", ErrInvalidCatalog, r.Name, err)
		}
		if _, dup := seen[r.Name]; dup {
			return fmt.Errorf("%w: duplicate resource %q", ErrInvalidCatalog, r.Name)
		}
		seen[r.Name] = struct{}{}
	}
	return nil
}

// Ordered returns resources grouped by class in processing order,
// keeping catalog order within a class.
func (c Catalog) Ordered() []models.Resource {
	out := make([]models.Resource, 0, len(c.Resources))
	for _, class := range models.ClassOrder {
		for _, r := range c.Resources {
			if r.Class == class {
				out = append(out, r)
			}
		}
	}
	return out
}

func (c Catalog) Names() []string {
	names := make([]string, 0, len(c.Resources))
	for _, r := range c.Ordered() {
		names = append(names, r.Name)
	}
	return names
}

// Select returns the named resources in processing order. No names selects all.
func (c Catalog) Select(names []string) ([]models.Resource, error) {
	ordered := c.Ordered()
	if len(names) == 0 {
		return ordered, nil
	}

	var unknown []string
	for _, n := range names {
		if !slices.ContainsFunc(ordered, func(r models.Resource) bool { return r.Name == n }) {
			unknown = append(unknown, n)
		}
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("%w: %s (available: %s)", ErrUnknownResource,
			strings.Join(unknown, ", "), strings.Join(c.Names(), ", "))
	}

	selected := make([]models.Resource, 0, len(names))
	for _, r := range ordered {
		if slices.Contains(names, r.Name) {
			selected = append(selected, r)
		}
	}
	return selected, nil
}
