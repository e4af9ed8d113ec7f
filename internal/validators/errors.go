package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidName         = errors.New("resource name is not a valid table name")
	ErrReservedName        = errors.New("resource name is reserved")
	ErrInvalidClass        = errors.New("invalid resource class")
	ErrInvalidEndpoint     = errors.New("endpoint must be an absolute path")
	ErrInvalidPathSegment  = errors.New("changelog resource and export kind must be single path segments")
	ErrInvalidHeader       = errors.New("invalid header name")
	ErrExportOptionsOnList = errors.New("export options are only allowed on export resources")
)
