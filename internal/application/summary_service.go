package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/resort-points-editor/internal/aggregate"
	"github.com/example/resort-points-editor/internal/points"
)

// SummaryService produces per-resort point summaries. Staged workspace
// edits are folded in before aggregation so a summary always reflects what
// serialization would produce.
type SummaryService struct {
	baseYear string
	cache    *summaryCache
	logger   *slog.Logger
}

// NewSummaryService constructs a summary service. baseYear is the preferred
// reference year when a document carries it.
func NewSummaryService(baseYear string, now func() time.Time) *SummaryService {
	return NewSummaryServiceWithLogger(baseYear, now, nil)
}

// NewSummaryServiceWithLogger constructs a summary service with a specified logger.
func NewSummaryServiceWithLogger(baseYear string, now func() time.Time, logger *slog.Logger) *SummaryService {
	if baseYear == "" {
		baseYear = "2025"
	}
	return &SummaryService{
		baseYear: baseYear,
		cache:    newSummaryCache(0, 0, now),
		logger:   defaultLogger(logger),
	}
}

func (s *SummaryService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "SummaryService", operation, attrs...)
}

// Summarize builds the weekly and holiday point summary for one resort. An
// empty year picks the reference year policy: the configured base year when
// the document covers it, otherwise the earliest year present.
func (s *SummaryService) Summarize(ctx context.Context, ws *Workspace, resortID, year string) (summary aggregate.Summary, err error) {
	if s == nil {
		err = fmt.Errorf("SummaryService is nil")
		return
	}

	logger := s.loggerWith(ctx, "Summarize", "resort_id", resortID, "year", year)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to summarize resort", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("reference_year", summary.ReferenceYear).InfoContext(ctx, "summary computed")
	}()

	var doc *points.Document
	doc, err = ws.Snapshot()
	if err != nil {
		return
	}

	resort := doc.FindResort(resortID)
	if resort == nil {
		err = fmt.Errorf("%w: resort %s", ErrNotFound, resortID)
		return
	}

	if year == "" {
		year = s.baseYear
	}
	referenceYear := aggregate.ReferenceYear(resort, year)

	key := buildSummaryCacheKey(ws.ID(), resortID, referenceYear, ws.Revision())
	if cached, ok := s.cache.Get(key); ok {
		summary = cached
		return
	}

	summary = aggregate.BuildSummary(resort, referenceYear)
	if rate, ok := doc.Configuration.MaintenanceRates[referenceYear]; ok {
		summary.MaintenanceRate = &rate
	}
	s.cache.Store(key, summary)
	return
}
