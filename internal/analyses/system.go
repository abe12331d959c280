package analyses

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/veridict/veridict/pkg/pagination"
)

// System defines the public contract for analysis-history operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Analysis], error)

	Find(ctx context.Context, id uuid.UUID) (*Analysis, error)
	Create(ctx context.Context, cmd CreateCommand) (*Analysis, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// OpenReport returns a stream over the stored JSON report for the
	// analysis. The caller closes the reader.
	OpenReport(ctx context.Context, id uuid.UUID) (io.ReadCloser, error)
	// OpenFile returns a stream over the originally submitted file along
	// with its recorded metadata. The caller closes the reader.
	OpenFile(ctx context.Context, id uuid.UUID) (io.ReadCloser, *Analysis, error)
}
