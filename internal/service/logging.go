package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"campusapi/internal/model"
	"campusapi/internal/validation"
)

// StudentMiddleware decorates a StudentService.
type StudentMiddleware func(StudentService) StudentService

// DocumentMiddleware decorates a DocumentService.
type DocumentMiddleware func(DocumentService) DocumentService

// logFailure logs client errors at warn and everything else at error.
func logFailure(log *zap.Logger, err error) {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrNotFound), errors.Is(err, ErrConflict):
		log.Warn(err.Error())
	default:
		log.Error(err.Error())
	}
}

func StudentLoggingMiddleware(log *zap.Logger) StudentMiddleware {
	log = log.With(
		zap.String("service", "students"),
	)

	return func(next StudentService) StudentService {
		log.Info("service initialized")

		return &studentLoggingMiddleware{
			log:  log,
			next: next,
		}
	}
}

type studentLoggingMiddleware struct {
	log  *zap.Logger
	next StudentService
}

func (mw *studentLoggingMiddleware) List(ctx context.Context, skip, limit int) ([]model.Student, error) {
	log := mw.log.With(
		zap.String("action", "list_students"),
		zap.Int("skip", skip),
		zap.Int("limit", limit),
	)

	students, err := mw.next.List(ctx, skip, limit)
	if err != nil {
		logFailure(log, err)
		return nil, err
	}

	log.Debug("students listed", zap.Int("count", len(students)))
	return students, nil
}

func (mw *studentLoggingMiddleware) Get(ctx context.Context, id int64) (*model.Student, error) {
	log := mw.log.With(
		zap.String("action", "get_student"),
		zap.Int64("student_id", id),
	)

	student, err := mw.next.Get(ctx, id)
	if err != nil {
		logFailure(log, err)
		return nil, err
	}

	log.Debug("student fetched")
	return student, nil
}

func (mw *studentLoggingMiddleware) Create(ctx context.Context, req validation.CreateStudentRequest) (*model.Student, error) {
	log := mw.log.With(
		zap.String("action", "create_student"),
	)

	student, err := mw.next.Create(ctx, req)
	if err != nil {
		logFailure(log, err)
		return nil, err
	}

	log.Info("student created", zap.Int64("student_id", student.ID))
	return student, nil
}

func (mw *studentLoggingMiddleware) Update(ctx context.Context, id int64, req validation.UpdateStudentRequest) (*model.Student, error) {
	log := mw.log.With(
		zap.String("action", "update_student"),
		zap.Int64("student_id", id),
	)

	student, err := mw.next.Update(ctx, id, req)
	if err != nil {
		logFailure(log, err)
		return nil, err
	}

	log.Info("student updated")
	return student, nil
}

func (mw *studentLoggingMiddleware) Delete(ctx context.Context, id int64) error {
	log := mw.log.With(
		zap.String("action", "delete_student"),
		zap.Int64("student_id", id),
	)

	if err := mw.next.Delete(ctx, id); err != nil {
		logFailure(log, err)
		return err
	}

	log.Info("student deleted")
	return nil
}

func DocumentLoggingMiddleware(log *zap.Logger) DocumentMiddleware {
	log = log.With(
		zap.String("service", "documents"),
	)

	return func(next DocumentService) DocumentService {
		log.Info("service initialized")

		return &documentLoggingMiddleware{
			log:  log,
			next: next,
		}
	}
}

type documentLoggingMiddleware struct {
	log  *zap.Logger
	next DocumentService
}

func (mw *documentLoggingMiddleware) ListAll(ctx context.Context) (*model.DocumentList, error) {
	log := mw.log.With(
		zap.String("action", "list_documents"),
	)

	list, err := mw.next.ListAll(ctx)
	if err != nil {
		logFailure(log, err)
		return nil, err
	}

	log.Debug("documents listed",
		zap.Int("total", list.Total),
		zap.Int("total_chunks", list.TotalChunks),
	)
	return list, nil
}

func (mw *documentLoggingMiddleware) SearchByFilename(ctx context.Context, query string) ([]model.DocumentSummary, error) {
	log := mw.log.With(
		zap.String("action", "search_documents"),
		zap.String("query", query),
	)

	docs, err := mw.next.SearchByFilename(ctx, query)
	if err != nil {
		logFailure(log, err)
		return nil, err
	}

	log.Debug("documents searched", zap.Int("count", len(docs)))
	return docs, nil
}

func (mw *documentLoggingMiddleware) DeleteBySource(ctx context.Context, filename string) (*model.DeleteResult, error) {
	log := mw.log.With(
		zap.String("action", "delete_document"),
		zap.String("filename", filename),
	)

	res, err := mw.next.DeleteBySource(ctx, filename)
	if err != nil {
		logFailure(log, err)
		return nil, err
	}

	log.Info("document deleted", zap.Int("deleted_chunks", res.DeletedChunks))
	return res, nil
}

func (mw *documentLoggingMiddleware) DeleteAll(ctx context.Context) (*model.DeleteResult, error) {
	log := mw.log.With(
		zap.String("action", "delete_all_documents"),
	)

	res, err := mw.next.DeleteAll(ctx)
	if err != nil {
		logFailure(log, err)
		return nil, err
	}

	log.Warn("all documents deleted", zap.Int("deleted_chunks", res.DeletedChunks))
	return res, nil
}

func (mw *documentLoggingMiddleware) Stats(ctx context.Context) (*model.DocumentStats, error) {
	log := mw.log.With(
		zap.String("action", "document_stats"),
	)

	stats, err := mw.next.Stats(ctx)
	if err != nil {
		logFailure(log, err)
		return nil, err
	}

	log.Debug("stats computed", zap.Int("total_files", stats.TotalFiles))
	return stats, nil
}

func (mw *documentLoggingMiddleware) Snapshot(ctx context.Context) (*model.Snapshot, error) {
	log := mw.log.With(
		zap.String("action", "snapshot_documents"),
	)

	snap, err := mw.next.Snapshot(ctx)
	if err != nil {
		logFailure(log, err)
		return nil, err
	}

	log.Info("snapshot stored",
		zap.String("key", snap.Key),
		zap.Int64("size", snap.Size),
	)
	return snap, nil
}
