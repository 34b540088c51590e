package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/you/wifiattend/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Record store errors
var (
	ErrUnknownCollection = errors.New("unknown collection")
	ErrInvalidQuery      = errors.New("invalid query")
	ErrInvalidRecord     = errors.New("invalid record")
)

// DBTeacher is the teachers table. JSON tags follow the REST wire format.
type DBTeacher struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:255" json:"name"`
	Email    string `gorm:"index;size:255" json:"email"`
	Password string `gorm:"size:255" json:"password"`
}

func (DBTeacher) TableName() string { return "teachers" }

// DBStudent is the students table
type DBStudent struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:255" json:"name"`
	RollNo   string `gorm:"column:roll_no;index;size:64" json:"rollNo"`
	Password string `gorm:"size:255" json:"password"`
}

func (DBStudent) TableName() string { return "students" }

// DBSchedule is the schedules table
type DBSchedule struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Subject   string `gorm:"size:255" json:"subject"`
	Time      string `gorm:"column:time_range;size:32" json:"time"`
	Room      string `gorm:"size:64" json:"room"`
	TeacherID *uint  `gorm:"index" json:"teacherId,omitempty"`
	StudentID *uint  `gorm:"index" json:"studentId,omitempty"`
	Date      string `gorm:"index;size:10" json:"date"`
}

func (DBSchedule) TableName() string { return "schedules" }

// DBOTPSession is the otp_sessions table
type DBOTPSession struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TeacherID uint      `gorm:"index" json:"teacherId"`
	OTP       string    `gorm:"column:otp;size:16" json:"otp"`
	SSID      string    `gorm:"column:ssid;size:255" json:"ssid"`
	CreatedAt time.Time `json:"createdAt"`
}

func (DBOTPSession) TableName() string { return "otp_sessions" }

// DBAttendance is the attendance table
type DBAttendance struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StudentID uint      `gorm:"index" json:"studentId"`
	SSID      string    `gorm:"column:ssid;size:255" json:"ssid"`
	Date      time.Time `gorm:"index" json:"date"`
	Status    string    `gorm:"size:32" json:"status"`
}

func (DBAttendance) TableName() string { return "attendance" }

// BeforeCreate stamps records posted without a date
func (a *DBAttendance) BeforeCreate(tx *gorm.DB) error {
	if a.Date.IsZero() {
		a.Date = time.Now().UTC()
	}
	return nil
}

// Models lists every table of the record store, for migrations
func Models() []any {
	return []any{&DBTeacher{}, &DBStudent{}, &DBSchedule{}, &DBOTPSession{}, &DBAttendance{}}
}

type fieldKind int

const (
	textField fieldKind = iota
	numberField
	timeField
)

type field struct {
	column string
	kind   fieldKind
}

type collectionSpec struct {
	one    func() any
	many   func() any
	fields map[string]field
}

var idField = field{column: "id", kind: numberField}

var collections = map[string]collectionSpec{
	TeachersCollection: {
		one:  func() any { return &DBTeacher{} },
		many: func() any { return &[]DBTeacher{} },
		fields: map[string]field{
			"id":       idField,
			"name":     {column: "name"},
			"email":    {column: "email"},
			"password": {column: "password"},
		},
	},
	StudentsCollection: {
		one:  func() any { return &DBStudent{} },
		many: func() any { return &[]DBStudent{} },
		fields: map[string]field{
			"id":       idField,
			"name":     {column: "name"},
			"rollNo":   {column: "roll_no"},
			"password": {column: "password"},
		},
	},
	SchedulesCollection: {
		one:  func() any { return &DBSchedule{} },
		many: func() any { return &[]DBSchedule{} },
		fields: map[string]field{
			"id":        idField,
			"subject":   {column: "subject"},
			"time":      {column: "time_range"},
			"room":      {column: "room"},
			"teacherId": {column: "teacher_id", kind: numberField},
			"studentId": {column: "student_id", kind: numberField},
			"date":      {column: "date"},
		},
	},
	OTPSessionsCollection: {
		one:  func() any { return &DBOTPSession{} },
		many: func() any { return &[]DBOTPSession{} },
		fields: map[string]field{
			"id":        idField,
			"teacherId": {column: "teacher_id", kind: numberField},
			"otp":       {column: "otp"},
			"ssid":      {column: "ssid"},
			"createdAt": {column: "created_at", kind: timeField},
		},
	},
	AttendanceCollection: {
		one:  func() any { return &DBAttendance{} },
		many: func() any { return &[]DBAttendance{} },
		fields: map[string]field{
			"id":        idField,
			"studentId": {column: "student_id", kind: numberField},
			"ssid":      {column: "ssid"},
			"date":      {column: "date", kind: timeField},
			"status":    {column: "status"},
		},
	},
}

// ListQuery is a json-server style list request
type ListQuery struct {
	Filters map[string]string
	Sort    string
	Order   string
	Limit   int
}

// RecordRepositoryImpl stores the record store collections using GORM
type RecordRepositoryImpl struct {
	db *gorm.DB
}

// NewRecordRepository creates a new record repository
func NewRecordRepository(db *gorm.DB) *RecordRepositoryImpl {
	return &RecordRepositoryImpl{db: db}
}

// List returns a pointer to a slice of the collection's records. Without a
// sort the records come back in insertion order.
func (r *RecordRepositoryImpl) List(ctx context.Context, collection string, q ListQuery) (any, error) {
	spec, ok := collections[collection]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}

	out := spec.many()
	tx := r.db.WithContext(ctx).Model(spec.one())
	for name, raw := range q.Filters {
		f, ok := spec.fields[name]
		if !ok || f.kind == timeField {
			return nil, fmt.Errorf("%w: cannot filter %s on %q", ErrInvalidQuery, collection, name)
		}
		value, ok := f.parse(raw)
		if !ok {
			// a non-numeric value can never equal a numeric column
			return out, nil
		}
		tx = tx.Where(clause.Eq{Column: clause.Column{Name: f.column}, Value: value})
	}

	var desc bool
	if q.Sort != "" {
		f, ok := spec.fields[q.Sort]
		if !ok {
			return nil, fmt.Errorf("%w: cannot sort %s on %q", ErrInvalidQuery, collection, q.Sort)
		}
		switch strings.ToLower(q.Order) {
		case "", "asc":
		case "desc":
			desc = true
		default:
			return nil, fmt.Errorf("%w: order must be asc or desc", ErrInvalidQuery)
		}
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: f.column}, Desc: desc})
	}
	// ties follow the requested direction
	tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: desc})

	if q.Limit < 0 {
		return nil, fmt.Errorf("%w: negative limit", ErrInvalidQuery)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	if err := tx.Find(out).Error; err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", collection, err)
	}
	return out, nil
}

// Create decodes body as one record, stores it with a fresh id and returns it
func (r *RecordRepositoryImpl) Create(ctx context.Context, collection string, body []byte) (any, error) {
	spec, ok := collections[collection]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}

	rec := spec.one()
	if err := json.Unmarshal(body, rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	// ids are always assigned by the store
	reflect.ValueOf(rec).Elem().FieldByName("ID").SetUint(0)
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, fmt.Errorf("failed to create %s record: %w", collection, err)
	}
	return rec, nil
}

// Get returns one record by id
func (r *RecordRepositoryImpl) Get(ctx context.Context, collection, id string) (any, error) {
	spec, ok := collections[collection]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return nil, domain.ErrRecordNotFound
	}

	rec := spec.one()
	err = r.db.WithContext(ctx).Where("id = ?", n).First(rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, err
	}
	return rec, nil
}

// Delete removes one record by id
func (r *RecordRepositoryImpl) Delete(ctx context.Context, collection, id string) error {
	spec, ok := collections[collection]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return domain.ErrRecordNotFound
	}

	result := r.db.WithContext(ctx).Where("id = ?", n).Delete(spec.one())
	if result.Error != nil {
		return fmt.Errorf("failed to delete %s record: %w", collection, result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

func (f field) parse(raw string) (any, bool) {
	if f.kind == numberField {
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, false
		}
		return n, true
	}
	return raw, true
}
