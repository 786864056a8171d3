package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"edu-backoffice/internal/model"
)

type mockLeadSource struct{ mock.Mock }

func (m *mockLeadSource) List(ctx context.Context, kind model.LeadKind) ([]model.Lead, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Lead), args.Error(1)
}

func (m *mockLeadSource) Count(ctx context.Context, kind model.LeadKind) (int64, error) {
	args := m.Called(ctx, kind)
	return args.Get(0).(int64), args.Error(1)
}

type mockMemberSource struct{ mock.Mock }

func (m *mockMemberSource) ListByRole(ctx context.Context, role model.Role) ([]model.Member, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Member), args.Error(1)
}

func (m *mockMemberSource) CountByRole(ctx context.Context, role model.Role) (int64, error) {
	args := m.Called(ctx, role)
	return args.Get(0).(int64), args.Error(1)
}

type mockCourseSource struct{ mock.Mock }

func (m *mockCourseSource) List(ctx context.Context) ([]model.Course, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Course), args.Error(1)
}

func (m *mockCourseSource) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockPostCatalog struct{ mock.Mock }

func (m *mockPostCatalog) List(ctx context.Context) ([]model.BlogPost, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BlogPost), args.Error(1)
}

func (m *mockPostCatalog) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockReportRunner struct{ mock.Mock }

func (m *mockReportRunner) RunReport(ctx context.Context, query ReportQuery) ([]ReportRow, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ReportRow), args.Error(1)
}
