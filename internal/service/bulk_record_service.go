package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/edu-records-api/internal/dto"
	"github.com/noah-isme/edu-records-api/internal/observability"
	"github.com/noah-isme/edu-records-api/internal/repository"
)

// ReportInvalidator drops cached reports for the given students.
type ReportInvalidator interface {
	Invalidate(ctx context.Context, studentIDs ...uint)
}

// BulkHooks carries the optional collaborators notified after a bulk commit.
type BulkHooks struct {
	Publisher   RecordEventPublisher
	Invalidator ReportInvalidator
}

type bulkRecorder struct {
	tracer      trace.Tracer
	publisher   RecordEventPublisher
	invalidator ReportInvalidator
	logger      zerolog.Logger
	now         func() time.Time
}

func newBulkRecorder(hooks BulkHooks, logger zerolog.Logger) *bulkRecorder {
	publisher := hooks.Publisher
	if publisher == nil {
		publisher = noopRecordPublisher{}
	}
	return &bulkRecorder{
		tracer:      otel.Tracer("github.com/noah-isme/edu-records-api/internal/service/bulk"),
		publisher:   publisher,
		invalidator: hooks.Invalidator,
		logger:      logger,
		now:         time.Now,
	}
}

// runBulk executes write under a span, records metrics and, once committed,
// publishes the record event and invalidates affected reports.
func runBulk[T repository.EnrolledRecord](
	ctx context.Context,
	r *bulkRecorder,
	kind string,
	records []T,
	write func(context.Context, []T) (repository.BulkResult, error),
) (dto.BulkWriteResponse, error) {
	ctx, span := r.tracer.Start(ctx, kind+".bulk_create")
	defer span.End()
	span.SetAttributes(attribute.String("record.kind", kind), attribute.Int("batch.size", len(records)))

	start := r.now()
	result, err := write(ctx, records)
	observability.BulkLatency().WithLabelValues(kind).Observe(time.Since(start).Seconds())

	if err != nil {
		var enrollmentErr *repository.BulkEnrollmentError
		switch {
		case errors.As(err, &enrollmentErr):
			observability.BulkWrites().WithLabelValues(kind, "not_enrolled").Inc()
			span.SetAttributes(attribute.Int("batch.failed_index", enrollmentErr.Index))
			span.SetStatus(codes.Error, "not enrolled")
			return dto.BulkWriteResponse{}, &Error{Kind: KindRelationship, Message: enrollmentErr.Error(), cause: err}
		case errors.Is(err, repository.ErrEmptyBatch):
			observability.BulkWrites().WithLabelValues(kind, "invalid").Inc()
			span.SetStatus(codes.Error, "empty batch")
			return dto.BulkWriteResponse{}, &Error{Kind: KindInvalid, Message: "records must contain at least one item", cause: err}
		default:
			observability.BulkWrites().WithLabelValues(kind, "error").Inc()
			span.RecordError(err)
			span.SetStatus(codes.Error, "bulk write failed")
			r.logger.Error().Err(err).Str("kind", kind).Int("batch_size", len(records)).Msg("bulk write rolled back")
			return dto.BulkWriteResponse{}, err
		}
	}

	observability.BulkWrites().WithLabelValues(kind, "committed").Inc()
	observability.BulkRecords().WithLabelValues(kind, "inserted").Add(float64(result.Inserted))
	observability.BulkRecords().WithLabelValues(kind, "skipped").Add(float64(result.Skipped))
	span.SetAttributes(attribute.Int("batch.inserted", result.Inserted), attribute.Int("batch.skipped", result.Skipped))

	studentIDs, courseIDs := distinctPairs(records)
	event := RecordEvent{
		Kind:       kind,
		Inserted:   result.Inserted,
		Skipped:    result.Skipped,
		Total:      result.Total,
		StudentIDs: studentIDs,
		CourseIDs:  courseIDs,
		OccurredAt: r.now().UTC(),
	}
	if err := r.publisher.PublishRecords(ctx, event); err != nil {
		r.logger.Warn().Err(err).Str("kind", kind).Msg("failed to publish record event")
	}
	if r.invalidator != nil && result.Inserted > 0 {
		r.invalidator.Invalidate(ctx, studentIDs...)
	}

	r.logger.Info().
		Str("kind", kind).
		Int("inserted", result.Inserted).
		Int("skipped", result.Skipped).
		Int("total", result.Total).
		Msg("bulk write committed")

	return dto.BulkWriteResponse{Inserted: result.Inserted, Total: result.Total}, nil
}

func distinctPairs[T repository.EnrolledRecord](records []T) ([]uint, []uint) {
	students := make(map[uint]struct{})
	courses := make(map[uint]struct{})
	for _, record := range records {
		studentID, courseID := record.Pair()
		students[studentID] = struct{}{}
		courses[courseID] = struct{}{}
	}
	return sortedKeys(students), sortedKeys(courses)
}

func sortedKeys(set map[uint]struct{}) []uint {
	keys := make([]uint, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func invalidate(ctx context.Context, invalidator ReportInvalidator, studentIDs ...uint) {
	if invalidator != nil {
		invalidator.Invalidate(ctx, studentIDs...)
	}
}
