package ports

import (
	"context"

	"github.com/bookblog/server/internal/core/domain/logexport"
)

// LogExportService copies the application log into a downloadable file in the background.
type LogExportService interface {
	// CreateExport queues a new export and returns it in PENDING state.
	CreateExport(ctx context.Context) (*logexport.Task, error)
	GetTask(ctx context.Context, id string) (*logexport.Task, error)
	// ExportFile returns the path of a COMPLETED export.
	ExportFile(ctx context.Context, id string) (string, error)
}
