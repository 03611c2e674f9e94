package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicBooking/pkg/psqlbuilder"
)

const (
	table = "appointments"

	// SQLSTATE unique_violation
	uniqueViolationCode = "23505"

	liveSlotIndex = "appointments_one_live_per_slot"
)

var columns = []string{
	"id",
	"doctor_id",
	"patient_id",
	"availability_id",
	"appointment_date",
	"start_time",
	"end_time",
	"request_status",
	"appointment_status",
	"notes",
	"created_at",
	"updated_at",
	"deleted_at",
}

// Repository репозиторий записей на прием
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись на прием
// Вторая живая запись на тот же слот отклоняется частичным уникальным индексом и возвращается как ErrSlotTaken
func (r *Repository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"doctor_id",
			"patient_id",
			"availability_id",
			"appointment_date",
			"start_time",
			"end_time",
			"request_status",
			"appointment_status",
			"notes",
		).
		Values(
			a.DoctorID,
			a.PatientID,
			a.AvailabilityID,
			a.AppointmentDate.Format(domain.DateFormat),
			a.StartTime,
			a.EndTime,
			a.RequestStatus,
			nullableStatus(a.AppointmentStatus),
			a.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&a.ID, &createdAt, &updatedAt)
	if isLiveSlotViolation(err) {
		return nil, ErrSlotTaken
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return a, nil
}

// GetByIDForDoctor получает запись, только если она принадлежит врачу
// Чужая запись неотличима от несуществующей
func (r *Repository) GetByIDForDoctor(ctx context.Context, id, doctorID int64) (*domain.Appointment, error) {
	return r.getOne(ctx, "GetByIDForDoctor", squirrel.Eq{"id": id, "doctor_id": doctorID, "deleted_at": nil})
}

// GetByIDForParticipant получает запись, если пользователь является ее пациентом или врачом
func (r *Repository) GetByIDForParticipant(ctx context.Context, id, userID int64) (*domain.Appointment, error) {
	return r.getOne(ctx, "GetByIDForParticipant", squirrel.And{
		squirrel.Eq{"id": id, "deleted_at": nil},
		squirrel.Or{
			squirrel.Eq{"patient_id": userID},
			squirrel.Eq{"doctor_id": userID},
		},
	})
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Sqlizer) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(where)

	// Внутри транзакции блокируем строку до завершения перехода статуса
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	a, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan appointment: %v", ErrScanRow, op, err)
	}

	return a, nil
}

// UpdateStatus сохраняет обе оси статуса и время приема
func (r *Repository) UpdateStatus(ctx context.Context, a *domain.Appointment) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("request_status", a.RequestStatus).
		Set("appointment_status", nullableStatus(a.AppointmentStatus)).
		Set("start_time", a.StartTime).
		Set("end_time", a.EndTime).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": a.ID, "deleted_at": nil}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrAppointmentNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	a.UpdatedAt = updatedAt.Time
	return nil
}

// ListPendingByDoctor возвращает страницу заявок врача в статусе pending, новые первыми
func (r *Repository) ListPendingByDoctor(ctx context.Context, doctorID int64, page domain.PageRequest) ([]*domain.Appointment, int, error) {
	return r.listPage(ctx, "ListPendingByDoctor", squirrel.Eq{
		"doctor_id":      doctorID,
		"request_status": domain.RequestStatusPending,
		"deleted_at":     nil,
	}, page)
}

// ListByPatient возвращает страницу записей пациента, новые первыми
func (r *Repository) ListByPatient(ctx context.Context, patientID int64, page domain.PageRequest) ([]*domain.Appointment, int, error) {
	return r.listPage(ctx, "ListByPatient", squirrel.Eq{
		"patient_id": patientID,
		"deleted_at": nil,
	}, page)
}

func (r *Repository) listPage(ctx context.Context, op string, where squirrel.Sqlizer, page domain.PageRequest) ([]*domain.Appointment, int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	countQuery, countArgs, err := psqlbuilder.Select("COUNT(*)").
		From(table).
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %s - build count query: %v", ErrBuildQuery, op, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: %s - scan count: %v", ErrScanRow, op, err)
	}

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(where).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(page.PerPage)).
		Offset(uint64(page.Offset())).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	items, err := scanAppointments(rows)
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// CountLiveByAvailabilityIDs считает живые записи, удерживающие любой из слотов
func (r *Repository) CountLiveByAvailabilityIDs(ctx context.Context, availabilityIDs []int64) (int, error) {
	if len(availabilityIDs) == 0 {
		return 0, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(table).
		Where(squirrel.Eq{
			"availability_id": availabilityIDs,
			"request_status":  domain.LiveRequestStatuses,
			"deleted_at":      nil,
		}).
		Where("appointment_status IS DISTINCT FROM ?", domain.AppointmentStatusCancelled).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountLiveByAvailabilityIDs - build count query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountLiveByAvailabilityIDs - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

func nullableStatus(s domain.AppointmentStatus) interface{} {
	if s == domain.AppointmentStatusNone {
		return nil
	}
	return string(s)
}

func isLiveSlotViolation(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == uniqueViolationCode && pqErr.Constraint == liveSlotIndex
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var a domain.Appointment
	var (
		availabilityID       sql.NullInt64
		appointmentStatus    sql.NullString
		notes                sql.NullString
		createdAt, updatedAt sql.NullTime
		deletedAt            sql.NullTime
	)

	err := row.Scan(
		&a.ID,
		&a.DoctorID,
		&a.PatientID,
		&availabilityID,
		&a.AppointmentDate,
		&a.StartTime,
		&a.EndTime,
		&a.RequestStatus,
		&appointmentStatus,
		&notes,
		&createdAt,
		&updatedAt,
		&deletedAt,
	)
	if err != nil {
		return nil, err
	}

	if availabilityID.Valid {
		a.AvailabilityID = &availabilityID.Int64
	}
	if appointmentStatus.Valid {
		a.AppointmentStatus = domain.AppointmentStatus(appointmentStatus.String)
	}
	if notes.Valid {
		a.Notes = &notes.String
	}
	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time
	if deletedAt.Valid {
		a.DeletedAt = &deletedAt.Time
	}

	return &a, nil
}

func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	items := make([]*domain.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}
		items = append(items, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows iteration: %v", ErrScanRow, err)
	}
	return items, nil
}
