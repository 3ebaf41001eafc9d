package report

import "errors"

var (
	ErrInvalidPeriod      = errors.New("invalid report period")
	ErrUnsupportedExport  = errors.New("unsupported export type or format")
	ErrReportNotAvailable = errors.New("report not loaded")
)
