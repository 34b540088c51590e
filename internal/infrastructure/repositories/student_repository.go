package repositories

import (
	"context"
	"fmt"
	"net/url"

	"github.com/you/wifiattend/domain"
)

// StudentRepositoryImpl implements domain.StudentRepository over the record store
type StudentRepositoryImpl struct {
	client RecordClient
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(client RecordClient) domain.StudentRepository {
	return &StudentRepositoryImpl{client: client}
}

// FindByCredentials implements domain.StudentRepository
func (r *StudentRepositoryImpl) FindByCredentials(ctx context.Context, rollNo, password string) ([]domain.Student, error) {
	query := url.Values{}
	query.Set("rollNo", rollNo)
	query.Set("password", password)

	var students []domain.Student
	if err := r.client.List(ctx, StudentsCollection, query, &students); err != nil {
		return nil, fmt.Errorf("failed to query students: %w", err)
	}
	return students, nil
}
