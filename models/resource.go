package models

import "fmt"

// ResourceClass selects the reconciliation path of a resource.
type ResourceClass string

const (
	ClassChangelog ResourceClass = "changelog"
	ClassFull      ResourceClass = "full"
	ClassExport    ResourceClass = "export"
)

// ClassOrder is the order in which resource classes are processed within a run.
var ClassOrder = []ResourceClass{ClassChangelog, ClassFull, ClassExport}

func ParseResourceClass(s string) (ResourceClass, error) {
	switch c := ResourceClass(s); c {
	case ClassChangelog, ClassFull, ClassExport:
		return c, nil
	default:
		return "", fmt.Errorf("unknown resource class %q", s)
	}
}

// Resource describes one synchronized remote collection and its local table.
type Resource struct {
	// Name is both the resource identifier and the local table name.
	Name  string        `toml:"name" json:"name"`
	Class ResourceClass `toml:"class" json:"class"`
	// Endpoint is the list path, relative to the API base URL. Defaults to "/" + Name.
	Endpoint string `toml:"endpoint" json:"endpoint,omitempty"`
	// ChangelogResource is the path segment under /changelogs/. Defaults to Name.
	ChangelogResource string `toml:"changelog_resource" json:"changelog_resource,omitempty"`
	// ExportKind is the path segment under /exports/. Defaults to Name.
	ExportKind string `toml:"export_kind" json:"export_kind,omitempty"`
	// Headers are sent with every request for this resource (API version opt-ins).
	Headers map[string]string `toml:"headers" json:"headers,omitempty"`
	// ExportBody is the JSON body of the export request.
	ExportBody map[string]any `toml:"export_body" json:"export_body,omitempty"`
	// ExportCurrentYear adds period_start and period_end covering the current calendar year.
	ExportCurrentYear bool `toml:"export_current_year" json:"export_current_year,omitempty"`
}

func (r Resource) ListPath() string {
	if r.Endpoint != "" {
		return r.Endpoint
	}
	return "/" + r.Name
}

func (r Resource) ChangelogName() string {
	if r.ChangelogResource != "" {
		return r.ChangelogResource
	}
	return r.Name
}

func (r Resource) ExportName() string {
	if r.ExportKind != "" {
		return r.ExportKind
	}
	return r.Name
}
