package mocks

import (
	"context"

	"campusapi/internal/model"
	"campusapi/internal/service"
	"campusapi/internal/validation"
	"github.com/stretchr/testify/mock"
)

type MockStudentService struct {
	mock.Mock
}

var _ service.StudentService = (*MockStudentService)(nil)

func (m *MockStudentService) List(ctx context.Context, skip, limit int) ([]model.Student, error) {
	args := m.Called(ctx, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Student), args.Error(1)
}

func (m *MockStudentService) Get(ctx context.Context, id int64) (*model.Student, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Student), args.Error(1)
}

func (m *MockStudentService) Create(ctx context.Context, req validation.CreateStudentRequest) (*model.Student, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Student), args.Error(1)
}

func (m *MockStudentService) Update(ctx context.Context, id int64, req validation.UpdateStudentRequest) (*model.Student, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Student), args.Error(1)
}

func (m *MockStudentService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
