package repositories

import (
	"context"
	"fmt"
	"net/url"

	"github.com/you/wifiattend/domain"
)

// TeacherRepositoryImpl implements domain.TeacherRepository over the record store
type TeacherRepositoryImpl struct {
	client RecordClient
}

// NewTeacherRepository creates a new teacher repository
func NewTeacherRepository(client RecordClient) domain.TeacherRepository {
	return &TeacherRepositoryImpl{client: client}
}

// FindByCredentials implements domain.TeacherRepository
func (r *TeacherRepositoryImpl) FindByCredentials(ctx context.Context, email, password string) ([]domain.Teacher, error) {
	query := url.Values{}
	query.Set("email", email)
	query.Set("password", password)

	var teachers []domain.Teacher
	if err := r.client.List(ctx, TeachersCollection, query, &teachers); err != nil {
		return nil, fmt.Errorf("failed to query teachers: %w", err)
	}
	return teachers, nil
}
