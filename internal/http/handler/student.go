package handler

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"campusapi/internal/service"
	"campusapi/internal/validation"
)

// decodeJSON decodes the request body with the app's JSON decoder. Syntax
// and type errors become validation errors so they surface as 422.
func decodeJSON(c *fiber.Ctx, out any) error {
	body := c.Body()
	if len(body) == 0 {
		return service.NewValidationError(map[string]string{"body": "request body is required"})
	}
	if err := c.App().Config().JSONDecoder(body, out); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return service.NewValidationError(map[string]string{typeErr.Field: "must be of type " + typeErr.Type.String()})
		}
		return service.NewValidationError(map[string]string{"body": "malformed JSON"})
	}
	return nil
}

func queryInt(c *fiber.Ctx, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, service.NewValidationError(map[string]string{key: "must be an integer"})
	}
	return v, nil
}

func pathID(c *fiber.Ctx) (int64, error) {
	id, errs := validation.ParseID(c.Params("id"))
	if errs != nil {
		return 0, service.NewValidationError(errs)
	}
	return id, nil
}

// ListStudents godoc
// @Summary List students
// @Tags students
// @Produce json
// @Param skip query int false "Rows to skip" default(0)
// @Param limit query int false "Maximum rows" default(100)
// @Success 200 {array} model.Student
// @Failure 422 {object} errorPayload
// @Failure 503 {object} errorPayload
// @Router /api/v1/students/ [get]
func ListStudents(svc service.StudentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		skip, err := queryInt(c, "skip", 0)
		if err != nil {
			return writeServiceError(c, err)
		}
		limit, err := queryInt(c, "limit", validation.DefaultLimit)
		if err != nil {
			return writeServiceError(c, err)
		}

		students, err := svc.List(c.UserContext(), skip, limit)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(students)
	}
}

// GetStudent godoc
// @Summary Get a student
// @Tags students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} model.Student
// @Failure 404 {object} errorPayload
// @Failure 422 {object} errorPayload
// @Router /api/v1/students/{id} [get]
func GetStudent(svc service.StudentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c)
		if err != nil {
			return writeServiceError(c, err)
		}

		student, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(student)
	}
}

// CreateStudent godoc
// @Summary Create a student
// @Tags students
// @Accept json
// @Produce json
// @Param student body validation.CreateStudentRequest true "Student"
// @Success 201 {object} model.Student
// @Failure 409 {object} errorPayload
// @Failure 422 {object} errorPayload
// @Router /api/v1/students/ [post]
func CreateStudent(svc service.StudentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req validation.CreateStudentRequest
		if err := decodeJSON(c, &req); err != nil {
			return writeServiceError(c, err)
		}

		student, err := svc.Create(c.UserContext(), req)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(student)
	}
}

// UpdateStudent godoc
// @Summary Update a student
// @Description Only the provided fields are changed.
// @Tags students
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param student body validation.UpdateStudentRequest true "Fields to change"
// @Success 200 {object} model.Student
// @Failure 404 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Failure 422 {object} errorPayload
// @Router /api/v1/students/{id} [put]
func UpdateStudent(svc service.StudentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c)
		if err != nil {
			return writeServiceError(c, err)
		}
		var req validation.UpdateStudentRequest
		if err := decodeJSON(c, &req); err != nil {
			return writeServiceError(c, err)
		}

		student, err := svc.Update(c.UserContext(), id, req)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(student)
	}
}

// DeleteStudent godoc
// @Summary Delete a student
// @Tags students
// @Param id path int true "Student ID"
// @Success 204
// @Failure 404 {object} errorPayload
// @Router /api/v1/students/{id} [delete]
func DeleteStudent(svc service.StudentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c)
		if err != nil {
			return writeServiceError(c, err)
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
