package extract

import "errors"

// Extraction errors. ErrNotAPackage and ErrUnknownPackageKind describe
// invalid client input; they surface as a client problem, not a server
// fault. Everything else extraction raises is fatal to the request.
var (
	ErrNotAPackage        = errors.New("not a valid package")
	ErrUnknownPackageKind = errors.New("package is neither word nor powerpoint")
)
