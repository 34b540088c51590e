package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/you/wifiattend/internal/infrastructure/repositories"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the record store database. Postgres DSNs ("postgres://..."
// or "host=...") use the postgres driver; anything else is a sqlite file.
func Open(dsn string) (*gorm.DB, error) {
	config := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	if isPostgres(dsn) {
		db, err := gorm.Open(postgres.Open(dsn), config)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres: %w", err)
		}
		return db, nil
	}

	db, err := gorm.Open(sqlite.Open(dsn), config)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// sqlite allows a single writer
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

func isPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") ||
		strings.HasPrefix(dsn, "postgresql://") ||
		strings.Contains(dsn, "host=")
}

// AutoMigrate creates or updates every record store table
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(repositories.Models()...); err != nil {
		return fmt.Errorf("failed to migrate record store tables: %w", err)
	}
	return nil
}

// Demo credentials written by Seed
const (
	DemoTeacherEmail    = "teacher@school.edu"
	DemoTeacherPassword = "teacher123"
	DemoStudentRollNo   = "S001"
	DemoStudentPassword = "student123"
)

// Seed fills an empty store with one teacher, one student and their
// schedules for today (YYYY-MM-DD). A store that already has teachers is
// left alone.
func Seed(ctx context.Context, db *gorm.DB, today string) error {
	var count int64
	if err := db.WithContext(ctx).Model(&repositories.DBTeacher{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count teachers: %w", err)
	}
	if count > 0 {
		return nil
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		teacher := repositories.DBTeacher{Name: "Demo Teacher", Email: DemoTeacherEmail, Password: DemoTeacherPassword}
		if err := tx.Create(&teacher).Error; err != nil {
			return fmt.Errorf("failed to seed teacher: %w", err)
		}
		student := repositories.DBStudent{Name: "Demo Student", RollNo: DemoStudentRollNo, Password: DemoStudentPassword}
		if err := tx.Create(&student).Error; err != nil {
			return fmt.Errorf("failed to seed student: %w", err)
		}

		schedules := []repositories.DBSchedule{
			{Subject: "Mathematics", Time: "09:00-10:00", Room: "R101", TeacherID: &teacher.ID, Date: today},
			{Subject: "Physics", Time: "11:00-12:00", Room: "Lab 2", TeacherID: &teacher.ID, Date: today},
			{Subject: "Mathematics", Time: "09:00-10:00", Room: "R101", StudentID: &student.ID, Date: today},
			{Subject: "Chemistry", Time: "13:00-14:00", Room: "Lab 1", StudentID: &student.ID, Date: today},
		}
		if err := tx.Create(&schedules).Error; err != nil {
			return fmt.Errorf("failed to seed schedules: %w", err)
		}
		return nil
	})
}
