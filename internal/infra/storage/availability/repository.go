package availability

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicBooking/pkg/psqlbuilder"
)

const table = "availabilities"

var columns = []string{
	"id",
	"doctor_id",
	"date",
	"start_time",
	"end_time",
	"is_booked",
	"created_at",
	"updated_at",
	"deleted_at",
}

// Repository репозиторий слотов доступности врачей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает не удаленный слот по ID
// Внутри транзакции строка блокируется (FOR UPDATE) до конца транзакции:
// проверка "слот свободен" и его бронирование выполняются под одной блокировкой
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.AvailabilitySlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id, "deleted_at": nil})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return slot, nil
}

// MarkBooked помечает слот занятым, только если он свободен (compare-and-set)
// Возвращает ErrSlotAlreadyBooked, если слот занят, удален или отсутствует
func (r *Repository) MarkBooked(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("is_booked", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "is_booked": false, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkBooked - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkBooked - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkBooked - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSlotAlreadyBooked
	}

	return nil
}

// MarkFree снимает флаг занятости со слота
func (r *Repository) MarkFree(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("is_booked", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkFree - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkFree - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkFree - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// ListByDoctorAndDate возвращает не удаленные слоты врача на дату, отсортированные по началу
// Внутри транзакции строки блокируются
func (r *Repository) ListByDoctorAndDate(ctx context.Context, doctorID int64, date time.Time) ([]*domain.AvailabilitySlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{
			"doctor_id":  doctorID,
			"date":       date.Format(domain.DateFormat),
			"deleted_at": nil,
		}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDoctorAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDoctorAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// ListFreeByDoctors возвращает свободные слоты указанных врачей
// Если onDate задан - только на эту дату, иначе начиная с fromDate
func (r *Repository) ListFreeByDoctors(ctx context.Context, doctorIDs []int64, fromDate time.Time, onDate *time.Time) ([]*domain.AvailabilitySlot, error) {
	if len(doctorIDs) == 0 {
		return []*domain.AvailabilitySlot{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{
			"doctor_id":  doctorIDs,
			"is_booked":  false,
			"deleted_at": nil,
		}).
		OrderBy("date ASC", "start_time ASC")

	if onDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"date": onDate.Format(domain.DateFormat)})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"date": fromDate.Format(domain.DateFormat)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListFreeByDoctors - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListFreeByDoctors - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// SoftDeleteByDoctorAndDate мягко удаляет все слоты врача на дату
func (r *Repository) SoftDeleteByDoctorAndDate(ctx context.Context, doctorID int64, date time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("deleted_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"doctor_id":  doctorID,
			"date":       date.Format(domain.DateFormat),
			"deleted_at": nil,
		}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: SoftDeleteByDoctorAndDate - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: SoftDeleteByDoctorAndDate - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: SoftDeleteByDoctorAndDate - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// CreateBatch вставляет набор свободных слотов одним запросом
func (r *Repository) CreateBatch(ctx context.Context, slots []*domain.AvailabilitySlot) ([]*domain.AvailabilitySlot, error) {
	if len(slots) == 0 {
		return slots, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert(table).
		Columns("doctor_id", "date", "start_time", "end_time", "is_booked").
		Suffix("RETURNING id, created_at, updated_at")

	for _, slot := range slots {
		insertBuilder = insertBuilder.Values(
			slot.DoctorID,
			slot.Date.Format(domain.DateFormat),
			slot.StartTime,
			slot.EndTime,
			false,
		)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - execute insert: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	// Postgres возвращает строки multi-row INSERT в порядке VALUES
	i := 0
	for rows.Next() {
		if i >= len(slots) {
			return nil, fmt.Errorf("%w: CreateBatch - more rows returned than inserted", ErrScanRow)
		}
		var createdAt, updatedAt sql.NullTime
		if err := rows.Scan(&slots[i].ID, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: CreateBatch - scan returning: %v", ErrScanRow, err)
		}
		slots[i].IsBooked = false
		slots[i].CreatedAt = createdAt.Time
		slots[i].UpdatedAt = updatedAt.Time
		i++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - rows iteration: %v", ErrScanRow, err)
	}

	return slots, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSlot(row rowScanner) (*domain.AvailabilitySlot, error) {
	var slot domain.AvailabilitySlot
	var createdAt, updatedAt, deletedAt sql.NullTime

	err := row.Scan(
		&slot.ID,
		&slot.DoctorID,
		&slot.Date,
		&slot.StartTime,
		&slot.EndTime,
		&slot.IsBooked,
		&createdAt,
		&updatedAt,
		&deletedAt,
	)
	if err != nil {
		return nil, err
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time
	if deletedAt.Valid {
		slot.DeletedAt = &deletedAt.Time
	}

	return &slot, nil
}

func scanSlots(rows *sql.Rows) ([]*domain.AvailabilitySlot, error) {
	slots := make([]*domain.AvailabilitySlot, 0)
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows iteration: %v", ErrScanRow, err)
	}
	return slots, nil
}
