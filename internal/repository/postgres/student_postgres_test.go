package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"campusapi/internal/model"
	"campusapi/internal/repository"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

var studentColumns = []string{"id", "name", "email", "age", "grade"}

func TestStudentPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewStudentPostgres(db)
	ctx := context.Background()

	in := &model.Student{Name: "Nguyen Van A", Email: "a@example.com", Age: 20, Grade: "12A1"}

	rows := sqlmock.NewRows(studentColumns).AddRow(int64(7), in.Name, in.Email, in.Age, in.Grade)
	mock.ExpectQuery("INSERT INTO students").
		WithArgs(in.Name, in.Email, in.Age, in.Grade).
		WillReturnRows(rows)

	result, err := repo.Create(ctx, in)

	assert.NoError(t, err)
	assert.Equal(t, int64(7), result.ID)
	assert.Equal(t, in.Email, result.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewStudentPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(studentColumns).AddRow(int64(1), "A", "a@example.com", 18, "12A1")

		mock.ExpectQuery("SELECT (.+) FROM students WHERE id = ?").
			WithArgs(int64(1)).
			WillReturnRows(rows)

		s, err := repo.FindByID(ctx, 1)

		assert.NoError(t, err)
		assert.Equal(t, int64(1), s.ID)
		assert.Equal(t, 18, s.Age)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM students WHERE id = ?").
			WithArgs(int64(99)).
			WillReturnError(sql.ErrNoRows)

		s, err := repo.FindByID(ctx, 99)

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, s)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentPostgres_FindByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewStudentPostgres(db)

	mock.ExpectQuery("SELECT (.+) FROM students WHERE email = ?").
		WithArgs("a@example.com").
		WillReturnRows(sqlmock.NewRows(studentColumns).AddRow(int64(3), "A", "a@example.com", 18, "12A1"))

	s, err := repo.FindByEmail(context.Background(), "a@example.com")

	assert.NoError(t, err)
	assert.Equal(t, int64(3), s.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewStudentPostgres(db)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		rows := sqlmock.NewRows(studentColumns).
			AddRow(int64(1), "A", "a@example.com", 18, "12A1").
			AddRow(int64(2), "B", "b@example.com", 17, "11B2")

		mock.ExpectQuery("SELECT (.+) FROM students ORDER BY id").
			WithArgs(100, 0).
			WillReturnRows(rows)

		res, err := repo.List(ctx, repository.PageQuery{Limit: 100, Offset: 0})

		assert.NoError(t, err)
		assert.Len(t, res, 2)
		assert.Equal(t, "b@example.com", res[1].Email)
	})

	t.Run("empty table returns empty slice", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM students ORDER BY id").
			WithArgs(10, 20).
			WillReturnRows(sqlmock.NewRows(studentColumns))

		res, err := repo.List(ctx, repository.PageQuery{Limit: 10, Offset: 20})

		assert.NoError(t, err)
		assert.NotNil(t, res)
		assert.Empty(t, res)
	})

	t.Run("query error", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM students ORDER BY id").
			WithArgs(10, 0).
			WillReturnError(errors.New("db down"))

		res, err := repo.List(ctx, repository.PageQuery{Limit: 10})

		assert.Error(t, err)
		assert.Nil(t, res)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentPostgres_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewStudentPostgres(db)
	in := &model.Student{ID: 5, Name: "New", Email: "new@example.com", Age: 19, Grade: "12A2"}

	mock.ExpectQuery("UPDATE students SET (.+) WHERE id = ?").
		WithArgs(in.ID, in.Name, in.Email, in.Age, in.Grade).
		WillReturnRows(sqlmock.NewRows(studentColumns).AddRow(in.ID, in.Name, in.Email, in.Age, in.Grade))

	out, err := repo.Update(context.Background(), in)

	assert.NoError(t, err)
	assert.Equal(t, *in, *out)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentPostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewStudentPostgres(db)
	ctx := context.Background()

	mock.ExpectExec("DELETE FROM students WHERE id = ?").
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM students WHERE id = ?").
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.Delete(ctx, 1)
	assert.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, 1)
	assert.NoError(t, err)
	assert.False(t, deleted)

	assert.NoError(t, mock.ExpectationsWereMet())
}
