package app

import "github.com/alexanderramin/pilot/internal/domain"

type ExportRequest struct {
	// RunID may be an unambiguous prefix.
	RunID string
	Kind  domain.ExportKind
}

type ExportResponse struct {
	Record   *domain.ExportRecord
	Warnings []Warning
}
