package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/you/wifiattend/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(Models()...); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	return db
}

func uintPtr(v uint) *uint { return &v }

func TestRecordRepository_CreateAssignsIDs(t *testing.T) {
	repo := NewRecordRepository(setupTestDB(t))
	ctx := context.Background()

	first, err := repo.Create(ctx, OTPSessionsCollection, []byte(`{"id":99,"teacherId":1,"otp":"4821","ssid":"ClassroomWifi"}`))
	require.NoError(t, err)
	second, err := repo.Create(ctx, OTPSessionsCollection, []byte(`{"teacherId":1,"otp":"1234","ssid":"ClassroomWifi"}`))
	require.NoError(t, err)

	s1 := first.(*DBOTPSession)
	s2 := second.(*DBOTPSession)
	assert.Equal(t, uint(1), s1.ID, "client supplied ids are ignored")
	assert.Equal(t, uint(2), s2.ID)
	assert.False(t, s1.CreatedAt.IsZero())
}

func TestRecordRepository_CreateInvalid(t *testing.T) {
	repo := NewRecordRepository(setupTestDB(t))

	_, err := repo.Create(context.Background(), OTPSessionsCollection, []byte(`{"teacherId":"abc"}`))
	assert.True(t, errors.Is(err, ErrInvalidRecord))

	_, err = repo.Create(context.Background(), "grades", []byte(`{}`))
	assert.True(t, errors.Is(err, ErrUnknownCollection))
}

func TestRecordRepository_AttendanceDefaultsDate(t *testing.T) {
	repo := NewRecordRepository(setupTestDB(t))

	rec, err := repo.Create(context.Background(), AttendanceCollection, []byte(`{"studentId":3,"ssid":"Lab","status":"Present"}`))
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), rec.(*DBAttendance).Date, time.Minute)
}

func TestRecordRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRecordRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Create(&DBTeacher{Name: "Ada", Email: "ada@school.edu", Password: "pw1"}).Error)
	require.NoError(t, db.Create(&DBTeacher{Name: "Bob", Email: "bob@school.edu", Password: "pw2"}).Error)
	require.NoError(t, db.Create(&DBSchedule{Subject: "Math", Time: "09:00-10:00", Room: "R101", TeacherID: uintPtr(1), Date: "2026-10-18"}).Error)
	require.NoError(t, db.Create(&DBSchedule{Subject: "Art", Time: "11:00-12:00", Room: "R7", TeacherID: uintPtr(2), Date: "2026-10-18"}).Error)
	require.NoError(t, db.Create(&DBSchedule{Subject: "Math", Time: "09:00-10:00", Room: "R101", StudentID: uintPtr(1), Date: "2026-10-19"}).Error)

	base := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(&DBAttendance{StudentID: 1, SSID: "Lab", Date: base.Add(time.Duration(i) * time.Hour), Status: domain.StatusPresent}).Error)
	}

	tests := []struct {
		name        string
		collection  string
		query       ListQuery
		check       func(t *testing.T, out any)
		expectedErr error
	}{
		{
			name:       "credentials match",
			collection: TeachersCollection,
			query:      ListQuery{Filters: map[string]string{"email": "ada@school.edu", "password": "pw1"}},
			check: func(t *testing.T, out any) {
				teachers := *out.(*[]DBTeacher)
				require.Len(t, teachers, 1)
				assert.Equal(t, "Ada", teachers[0].Name)
			},
		},
		{
			name:       "wrong password matches nothing",
			collection: TeachersCollection,
			query:      ListQuery{Filters: map[string]string{"email": "ada@school.edu", "password": "nope"}},
			check: func(t *testing.T, out any) {
				assert.Empty(t, *out.(*[]DBTeacher))
			},
		},
		{
			name:       "numeric filter",
			collection: SchedulesCollection,
			query:      ListQuery{Filters: map[string]string{"teacherId": "1", "date": "2026-10-18"}},
			check: func(t *testing.T, out any) {
				entries := *out.(*[]DBSchedule)
				require.Len(t, entries, 1)
				assert.Equal(t, "Math", entries[0].Subject)
			},
		},
		{
			name:       "non numeric id matches nothing",
			collection: SchedulesCollection,
			query:      ListQuery{Filters: map[string]string{"teacherId": "abc"}},
			check: func(t *testing.T, out any) {
				assert.Empty(t, *out.(*[]DBSchedule))
			},
		},
		{
			name:       "insertion order without sort",
			collection: AttendanceCollection,
			query:      ListQuery{},
			check: func(t *testing.T, out any) {
				records := *out.(*[]DBAttendance)
				require.Len(t, records, 3)
				assert.Equal(t, uint(1), records[0].ID)
				assert.Equal(t, uint(3), records[2].ID)
			},
		},
		{
			name:       "sort desc with limit",
			collection: AttendanceCollection,
			query:      ListQuery{Sort: "date", Order: "desc", Limit: 2},
			check: func(t *testing.T, out any) {
				records := *out.(*[]DBAttendance)
				require.Len(t, records, 2)
				assert.Equal(t, uint(3), records[0].ID)
				assert.Equal(t, uint(2), records[1].ID)
			},
		},
		{
			name:        "unknown filter field",
			collection:  TeachersCollection,
			query:       ListQuery{Filters: map[string]string{"salary": "1"}},
			expectedErr: ErrInvalidQuery,
		},
		{
			name:        "bad order",
			collection:  AttendanceCollection,
			query:       ListQuery{Sort: "date", Order: "sideways"},
			expectedErr: ErrInvalidQuery,
		},
		{
			name:        "unknown collection",
			collection:  "grades",
			expectedErr: ErrUnknownCollection,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := repo.List(ctx, tt.collection, tt.query)
			if tt.expectedErr != nil {
				assert.True(t, errors.Is(err, tt.expectedErr), "expected %v, got %v", tt.expectedErr, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, out)
		})
	}
}

func TestRecordRepository_GetAndDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRecordRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Create(&DBOTPSession{TeacherID: 1, OTP: "4821", SSID: "ClassroomWifi"}).Error)

	rec, err := repo.Get(ctx, OTPSessionsCollection, "1")
	require.NoError(t, err)
	assert.Equal(t, "4821", rec.(*DBOTPSession).OTP)

	require.NoError(t, repo.Delete(ctx, OTPSessionsCollection, "1"))

	_, err = repo.Get(ctx, OTPSessionsCollection, "1")
	assert.True(t, errors.Is(err, domain.ErrRecordNotFound))

	err = repo.Delete(ctx, OTPSessionsCollection, "1")
	assert.True(t, errors.Is(err, domain.ErrRecordNotFound))

	err = repo.Delete(ctx, OTPSessionsCollection, "not-a-number")
	assert.True(t, errors.Is(err, domain.ErrRecordNotFound))
}
