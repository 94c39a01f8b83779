package repository

import (
	"context"

	"campusapi/internal/model"
)

// StudentEmailConstraint is the unique constraint guarding students.email.
const StudentEmailConstraint = "students_email_key"

// StudentRepository defines data access for students using SQL queries only.
// No business logic here, strictly persistence operations.
// Lookups that match no row return sql.ErrNoRows unchanged.
type StudentRepository interface {
	// List returns one page of students ordered by id.
	List(ctx context.Context, pq PageQuery) ([]model.Student, error)

	// FindByID returns a student by its ID.
	FindByID(ctx context.Context, id int64) (*model.Student, error)

	// FindByEmail returns the student owning the given email.
	FindByEmail(ctx context.Context, email string) (*model.Student, error)

	// Create inserts a new row. The ID is generated by the database and the
	// stored row is returned.
	Create(ctx context.Context, s *model.Student) (*model.Student, error)

	// Update overwrites every mutable column of the row identified by s.ID.
	Update(ctx context.Context, s *model.Student) (*model.Student, error)

	// Delete removes a student by ID and reports whether a row was removed.
	Delete(ctx context.Context, id int64) (bool, error)
}
