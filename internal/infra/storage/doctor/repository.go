package doctor

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicBooking/pkg/psqlbuilder"
)

const table = "doctors"

var columns = []string{
	"d.user_id",
	"d.first_name",
	"d.last_name",
	"d.specialization",
	"d.clinic_name",
	"d.clinic_city",
	"d.consultation_fees",
	"d.created_at",
}

// Repository справочник врачей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория врачей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByUserID получает профиль врача по ID пользователя
func (r *Repository) GetByUserID(ctx context.Context, userID int64) (*domain.Doctor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table + " d").
		Where(squirrel.Eq{"d.user_id": userID, "d.deleted_at": nil}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	doc, err := scanDoctor(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDoctorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - scan doctor: %v", ErrScanRow, err)
	}

	return doc, nil
}

// Exists проверяет наличие активного профиля врача
func (r *Repository) Exists(ctx context.Context, userID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	subQuery, args, err := psqlbuilder.Select("1").
		From(table).
		Where(squirrel.Eq{"user_id": userID, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: Exists - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	query := "SELECT EXISTS (" + subQuery + ")"
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: Exists - scan: %v", ErrScanRow, err)
	}

	return exists, nil
}

// ListAvailable возвращает страницу врачей по фильтру
// Без OnDate в выдачу попадают все подходящие врачи, с OnDate - только имеющие свободный слот на эту дату
func (r *Repository) ListAvailable(ctx context.Context, filter domain.AvailableDoctorsFilter, page domain.PageRequest) ([]*domain.Doctor, int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	where := buildFilter(filter)

	countQuery, countArgs, err := psqlbuilder.Select("COUNT(*)").
		From(table + " d").
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: ListAvailable - build count query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: ListAvailable - scan count: %v", ErrScanRow, err)
	}

	query, args, err := psqlbuilder.Select(columns...).
		From(table + " d").
		Where(where).
		OrderBy("d.user_id ASC").
		Limit(uint64(page.PerPage)).
		Offset(uint64(page.Offset())).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: ListAvailable - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: ListAvailable - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	doctors, err := scanDoctors(rows)
	if err != nil {
		return nil, 0, err
	}

	return doctors, total, nil
}

// ListAvailableOnDate возвращает всех врачей со свободным слотом на дату, без пагинации
func (r *Repository) ListAvailableOnDate(ctx context.Context, filter domain.AvailableDoctorsFilter) ([]*domain.Doctor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table + " d").
		Where(buildFilter(filter)).
		OrderBy("d.user_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailableOnDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailableOnDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanDoctors(rows)
}

func buildFilter(filter domain.AvailableDoctorsFilter) squirrel.And {
	where := squirrel.And{squirrel.Eq{"d.deleted_at": nil}}

	if filter.Specialization != nil {
		where = append(where, squirrel.Eq{"d.specialization": *filter.Specialization})
	}
	if filter.City != nil {
		where = append(where, squirrel.Eq{"d.clinic_city": *filter.City})
	}
	if filter.OnDate != nil {
		where = append(where, squirrel.Expr(
			"EXISTS (SELECT 1 FROM availabilities a WHERE a.doctor_id = d.user_id "+
				"AND a.date = ? AND a.is_booked = false AND a.deleted_at IS NULL)",
			filter.OnDate.Format(domain.DateFormat),
		))
	}

	return where
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDoctor(row rowScanner) (*domain.Doctor, error) {
	var doc domain.Doctor
	var createdAt sql.NullTime

	err := row.Scan(
		&doc.UserID,
		&doc.FirstName,
		&doc.LastName,
		&doc.Specialization,
		&doc.ClinicName,
		&doc.ClinicCity,
		&doc.ConsultationFees,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	doc.CreatedAt = createdAt.Time
	doc.Availabilities = make([]*domain.AvailabilitySlot, 0)

	return &doc, nil
}

func scanDoctors(rows *sql.Rows) ([]*domain.Doctor, error) {
	doctors := make([]*domain.Doctor, 0)
	for rows.Next() {
		doc, err := scanDoctor(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanDoctors - scan row: %v", ErrScanRow, err)
		}
		doctors = append(doctors, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanDoctors - rows iteration: %v", ErrScanRow, err)
	}
	return doctors, nil
}
