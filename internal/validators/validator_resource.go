package validators

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/MKhiriev/penny-sync/models"
)

const (
	FieldName              = "name"
	FieldClass             = "class"
	FieldEndpoint          = "endpoint"
	FieldChangelogResource = "changelog_resource"
	FieldExportKind        = "export_kind"
	FieldHeaders           = "headers"
	FieldExportOptions     = "export_options"
)

var (
	tableNamePattern   = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)
	pathSegmentPattern = regexp.MustCompile(`^[A-Za-z0-9_\-]+$`)
	headerNamePattern  = regexp.MustCompile(`^[A-Za-z0-9\-]+$`)
)

// reservedNames are tables owned by the synchronizer itself.
var reservedNames = []string{"sync_state"}

type ResourceValidator struct {
}

func NewResourceValidator() Validator {
	return &ResourceValidator{}
}

func (v *ResourceValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Resource:
		return v.validateResource(ctx, value, fields...)
	case *models.Resource:
		return v.validateResource(ctx, *value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *ResourceValidator) validateResource(ctx context.Context, r models.Resource, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldClass, FieldEndpoint, FieldChangelogResource, FieldExportKind, FieldHeaders, FieldExportOptions}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if !tableNamePattern.MatchString(r.Name) {
				return fmt.Errorf("%w: %q", ErrInvalidName, r.Name)
			}
			if isReserved(r.Name) {
				return fmt.Errorf("%w: %q", ErrReservedName, r.Name)
			}
		case FieldClass:
			if _, err := models.ParseResourceClass(string(r.Class)); err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidClass, err)
			}
		case FieldEndpoint:
			if r.Endpoint != "" && !strings.HasPrefix(r.Endpoint, "/") {
				return fmt.Errorf("%w: %q", ErrInvalidEndpoint, r.Endpoint)
			}
		case FieldChangelogResource:
			if r.ChangelogResource != "" && !pathSegmentPattern.MatchString(r.ChangelogResource) {
				return fmt.Errorf("%w: %q", ErrInvalidPathSegment, r.ChangelogResource)
			}
		case FieldExportKind:
			if r.ExportKind != "" && !pathSegmentPattern.MatchString(r.ExportKind) {
				return fmt.Errorf("%w: %q", ErrInvalidPathSegment, r.ExportKind)
			}
		case FieldHeaders:
			for name := range r.Headers {
				if !headerNamePattern.MatchString(name) {
					return fmt.Errorf("%w: %q", ErrInvalidHeader, name)
				}
			}
		case FieldExportOptions:
			if r.Class != models.ClassExport && (len(r.ExportBody) > 0 || r.ExportCurrentYear) {
				return ErrExportOptionsOnList
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func isReserved(name string) bool {
	if strings.HasPrefix(name, "goose_") {
		return true
	}
	for _, n := range reservedNames {
		if n == name {
			return true
		}
	}
	return false
}
