package service

import (
	"context"

	"counselor-api/internal/domain"
	"counselor-api/internal/repository"
)

// MockCounselorRepository is a mock implementation of CounselorRepository
type MockCounselorRepository struct {
	PutFunc          func(ctx context.Context, counselor *domain.Counselor) error
	GetFunc          func(ctx context.Context, counselorID string) (*domain.Counselor, error)
	UpdateFieldsFunc func(ctx context.Context, counselorID string, assignments map[string]interface{}) (*domain.Counselor, error)
	ScanAllFunc      func(ctx context.Context) ([]*domain.Counselor, error)
}

func (m *MockCounselorRepository) Put(ctx context.Context, counselor *domain.Counselor) error {
	if m.PutFunc != nil {
		return m.PutFunc(ctx, counselor)
	}
	return nil
}

func (m *MockCounselorRepository) Get(ctx context.Context, counselorID string) (*domain.Counselor, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, counselorID)
	}
	return nil, repository.ErrNotFound
}

func (m *MockCounselorRepository) UpdateFields(ctx context.Context, counselorID string, assignments map[string]interface{}) (*domain.Counselor, error) {
	if m.UpdateFieldsFunc != nil {
		return m.UpdateFieldsFunc(ctx, counselorID, assignments)
	}
	return nil, nil
}

func (m *MockCounselorRepository) ScanAll(ctx context.Context) ([]*domain.Counselor, error) {
	if m.ScanAllFunc != nil {
		return m.ScanAllFunc(ctx)
	}
	return nil, nil
}

var _ repository.CounselorRepository = (*MockCounselorRepository)(nil)
