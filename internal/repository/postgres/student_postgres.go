package postgres

import (
	"context"
	"database/sql"

	"campusapi/internal/model"
	"campusapi/internal/repository"
)

// StudentPostgres is a PostgreSQL implementation of repository.StudentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type StudentPostgres struct {
	db *sql.DB
}

// NewStudentPostgres creates a new StudentPostgres repository.
func NewStudentPostgres(db *sql.DB) *StudentPostgres {
	return &StudentPostgres{db: db}
}

var _ repository.StudentRepository = (*StudentPostgres)(nil)

// List returns students using LIMIT/OFFSET pagination.
func (r *StudentPostgres) List(ctx context.Context, pq repository.PageQuery) ([]model.Student, error) {
	const q = `
		SELECT id, name, email, age, grade
		FROM students
		ORDER BY id
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, q, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Student, 0)
	for rows.Next() {
		var s model.Student
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Age, &s.Grade); err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// FindByID fetches a single student by its ID.
func (r *StudentPostgres) FindByID(ctx context.Context, id int64) (*model.Student, error) {
	const q = `
		SELECT id, name, email, age, grade
		FROM students
		WHERE id = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, q, id))
}

// FindByEmail fetches a single student by email.
func (r *StudentPostgres) FindByEmail(ctx context.Context, email string) (*model.Student, error) {
	const q = `
		SELECT id, name, email, age, grade
		FROM students
		WHERE email = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, q, email))
}

// Create inserts a new student row and returns the stored record.
func (r *StudentPostgres) Create(ctx context.Context, s *model.Student) (*model.Student, error) {
	const q = `
		INSERT INTO students (name, email, age, grade)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, email, age, grade
	`
	return r.scanOne(r.db.QueryRowContext(ctx, q, s.Name, s.Email, s.Age, s.Grade))
}

// Update overwrites the mutable columns and returns the stored record.
func (r *StudentPostgres) Update(ctx context.Context, s *model.Student) (*model.Student, error) {
	const q = `
		UPDATE students
		SET name = $2, email = $3, age = $4, grade = $5
		WHERE id = $1
		RETURNING id, name, email, age, grade
	`
	return r.scanOne(r.db.QueryRowContext(ctx, q, s.ID, s.Name, s.Email, s.Age, s.Grade))
}

// Delete removes a student by ID.
func (r *StudentPostgres) Delete(ctx context.Context, id int64) (bool, error) {
	const q = `DELETE FROM students WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *StudentPostgres) scanOne(row *sql.Row) (*model.Student, error) {
	var s model.Student
	if err := row.Scan(&s.ID, &s.Name, &s.Email, &s.Age, &s.Grade); err != nil {
		return nil, err
	}
	return &s, nil
}
