package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MKhiriev/penny-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()
	require.NoError(t, c.Validate())

	assert.Equal(t, []string{
		"customers", "suppliers", "customer_invoices", "supplier_invoices", "products", "transactions", "ledger_entry_lines",
		"ledger_entries", "ledger_accounts", "bank_accounts", "fiscal_years",
		"analytical_ledger", "fec",
	}, c.Names())

	selected, err := c.Select([]string{"ledger_entry_lines"})
	require.NoError(t, err)
	require.Len(t, selected, 1)
	assert.Equal(t, "true", selected[0].Headers["X-Use-2026-API-Changes"])
}

func TestLoadCatalog_EmptyPathIsDefault(t *testing.T) {
	c, err := LoadCatalog("")
	require.NoError(t, err)
	assert.Equal(t, DefaultCatalog(), c)
}

func TestLoadCatalog_TOML(t *testing.T) {
	p := filepath.Join(t.TempDir(), "catalog.toml")
	body := `
[[resource]]
name = "fec"
class = "export"
export_kind = "fecs"
export_current_year = true

[[resource]]
name = "customers"
class = "changelog"
endpoint = "/customers"

[resource.headers]
X-Use-2026-API-Changes = "true"

[[resource]]
name = "bank_accounts"
class = "full"
`
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))

	c, err := LoadCatalog(p)
	require.NoError(t, err)
	require.Len(t, c.Resources, 3)

	ordered := c.Ordered()
	assert.Equal(t, "customers", ordered[0].Name)
	assert.Equal(t, "bank_accounts", ordered[1].Name)
	assert.Equal(t, "fec", ordered[2].Name)

	assert.Equal(t, "fecs", ordered[2].ExportKind)
	assert.True(t, ordered[2].ExportCurrentYear)
	assert.Equal(t, "true", ordered[0].Headers["X-Use-2026-API-Changes"])
}

func TestLoadCatalog_Invalid(t *testing.T) {
	tests := map[string]string{
		"syntax":      "[[resource]\nname=",
		"empty":       "",
		"bad class":   "[[resource]]\nname = \"a\"\nclass = \"weekly\"\n",
		"bad name":    "[[resource]]\nname = \"Customers; DROP\"\nclass = \"full\"\n",
		"reserved":    "[[resource]]\nname = \"sync_state\"\nclass = \"full\"\n",
		"duplicate":   "[[resource]]\nname = \"a\"\nclass = \"full\"\n[[resource]]\nname = \"a\"\nclass = \"full\"\n",
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			p := filepath.Join(t.TempDir(), "catalog.toml")
			require.NoError(t, os.WriteFile(p, []byte(body), 0o600))

			_, err := LoadCatalog(p)
			assert.ErrorIs(t, err, ErrInvalidCatalog)
		})
	}
}

func TestCatalog_Select(t *testing.T) {
	c := Catalog{Resources: []models.Resource{
		{Name: "fec", Class: models.ClassExport},
		{Name: "customers", Class: models.ClassChangelog},
		{Name: "bank_accounts", Class: models.ClassFull},
	}}

	all, err := c.Select(nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	some, err := c.Select([]string{"fec", "customers"})
	require.NoError(t, err)
	require.Len(t, some, 2)
	assert.Equal(t, "customers", some[0].Name)
	assert.Equal(t, "fec", some[1].Name)

	_, err = c.Select([]string{"customers", "invoices"})
	require.ErrorIs(t, err, ErrUnknownResource)
	assert.Contains(t, err.Error(), "invoices")
	assert.Contains(t, err.Error(), "available: customers, bank_accounts, fec")
}
