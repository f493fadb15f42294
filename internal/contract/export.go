package contract

import "github.com/alexanderramin/pilot/internal/app"

type ExportRequest = app.ExportRequest

type ExportResponse = app.ExportResponse

type RunSummary = app.RunSummary
