package service

import (
	"context"
	"database/sql"
	"errors"

	"campusapi/internal/database"
	"campusapi/internal/model"
	"campusapi/internal/repository"
	"campusapi/internal/validation"
)

// StudentService defines the use cases for student records.
type StudentService interface {
	// List returns one page of students ordered by id.
	List(ctx context.Context, skip, limit int) ([]model.Student, error)

	// Get returns a student by id.
	Get(ctx context.Context, id int64) (*model.Student, error)

	// Create validates the payload, enforces email uniqueness and stores a new student.
	Create(ctx context.Context, req validation.CreateStudentRequest) (*model.Student, error)

	// Update merges the provided fields into an existing student.
	Update(ctx context.Context, id int64, req validation.UpdateStudentRequest) (*model.Student, error)

	// Delete removes a student by id.
	Delete(ctx context.Context, id int64) error
}

type studentService struct {
	repo repository.StudentRepository
}

// NewStudentService constructs a StudentService over the given repository.
func NewStudentService(repo repository.StudentRepository) StudentService {
	return &studentService{repo: repo}
}

func (s *studentService) List(ctx context.Context, skip, limit int) ([]model.Student, error) {
	if errs := validation.Page(skip, limit); errs != nil {
		return nil, NewValidationError(errs)
	}
	students, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: skip})
	if err != nil {
		return nil, classifyDB("list students", err)
	}
	return students, nil
}

func (s *studentService) Get(ctx context.Context, id int64) (*model.Student, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	return s.find(ctx, id)
}

func (s *studentService) Create(ctx context.Context, req validation.CreateStudentRequest) (*model.Student, error) {
	if errs := req.Validate(); errs != nil {
		return nil, NewValidationError(errs)
	}
	if err := s.ensureEmailFree(ctx, req.Email); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &model.Student{
		Name:  req.Name,
		Email: req.Email,
		Age:   *req.Age,
		Grade: req.Grade,
	})
	if err != nil {
		if database.IsUniqueViolation(err, repository.StudentEmailConstraint) {
			return nil, conflict("email %s is already registered", req.Email)
		}
		return nil, classifyDB("create student", err)
	}
	return created, nil
}

func (s *studentService) Update(ctx context.Context, id int64, req validation.UpdateStudentRequest) (*model.Student, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	if errs := req.Validate(); errs != nil {
		return nil, NewValidationError(errs)
	}

	current, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	next := *current
	if req.Name != nil {
		next.Name = *req.Name
	}
	if req.Email != nil && *req.Email != current.Email {
		if err := s.ensureEmailFree(ctx, *req.Email); err != nil {
			return nil, err
		}
		next.Email = *req.Email
	}
	if req.Age != nil {
		next.Age = *req.Age
	}
	if req.Grade != nil {
		next.Grade = *req.Grade
	}

	updated, err := s.repo.Update(ctx, &next)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, notFound("student %d", id)
		case database.IsUniqueViolation(err, repository.StudentEmailConstraint):
			return nil, conflict("email %s is already registered", next.Email)
		}
		return nil, classifyDB("update student", err)
	}
	return updated, nil
}

func (s *studentService) Delete(ctx context.Context, id int64) error {
	if err := checkID(id); err != nil {
		return err
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return classifyDB("delete student", err)
	}
	if !deleted {
		return notFound("student %d", id)
	}
	return nil
}

func (s *studentService) find(ctx context.Context, id int64) (*model.Student, error) {
	st, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound("student %d", id)
		}
		return nil, classifyDB("get student", err)
	}
	return st, nil
}

func (s *studentService) ensureEmailFree(ctx context.Context, email string) error {
	_, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return conflict("email %s is already registered", email)
	case errors.Is(err, sql.ErrNoRows):
		return nil
	default:
		return classifyDB("check email", err)
	}
}

func checkID(id int64) error {
	if id <= 0 {
		return NewValidationError(map[string]string{"id": "must be a positive integer"})
	}
	return nil
}
