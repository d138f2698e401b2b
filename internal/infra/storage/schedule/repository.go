package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/aknyshev/salon-booking-engine/internal/domain"
	"github.com/aknyshev/salon-booking-engine/pkg/psqlbuilder"
	"github.com/aknyshev/salon-booking-engine/pkg/txmanager"
)

// DBExecutor интерфейс для работы с БД (поддерживает *sql.DB и *sql.Tx)
type DBExecutor = txmanager.Executor

// Repository репозиторий расписаний: общесалонный график, персональные
// графики мастеров и исключения (time-off)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetWorkingHours получает общесалонный график на день недели (0=вс..6=сб)
func (r *Repository) GetWorkingHours(ctx context.Context, weekday int) (*domain.WorkingHours, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"weekday",
		"is_closed",
		"start_minutes",
		"end_minutes",
	).
		From("working_hours").
		Where(squirrel.Eq{"weekday": weekday}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWorkingHours - build select query: %v", ErrBuildQuery, err)
	}

	var wh domain.WorkingHours
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&wh.ID,
		&wh.Weekday,
		&wh.IsClosed,
		&wh.StartMinutes,
		&wh.EndMinutes,
	)

	if err == sql.ErrNoRows {
		return nil, ErrWorkingHoursNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetWorkingHours - scan row: %v", ErrScanRow, err)
	}

	return &wh, nil
}

// GetMasterWorkingHours получает персональный график мастера на день недели.
// Отсутствие строки означает, что мастер в этот день не принимает —
// общесалонный график НЕ используется как fallback.
func (r *Repository) GetMasterWorkingHours(ctx context.Context, masterID int64, weekday int) (*domain.MasterWorkingHours, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"master_id",
		"weekday",
		"is_closed",
		"start_minutes",
		"end_minutes",
	).
		From("master_working_hours").
		Where(squirrel.Eq{
			"master_id": masterID,
			"weekday":   weekday,
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetMasterWorkingHours - build select query: %v", ErrBuildQuery, err)
	}

	var wh domain.MasterWorkingHours
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&wh.ID,
		&wh.MasterID,
		&wh.Weekday,
		&wh.IsClosed,
		&wh.StartMinutes,
		&wh.EndMinutes,
	)

	if err == sql.ErrNoRows {
		return nil, ErrWorkingHoursNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetMasterWorkingHours - scan row: %v", ErrScanRow, err)
	}

	return &wh, nil
}

// GetTimeOff получает исключения на дату.
// Если masterID задан, возвращаются общесалонные исключения плюс
// исключения этого мастера; иначе — только общесалонные.
func (r *Repository) GetTimeOff(ctx context.Context, date time.Time, masterID *int64) ([]*domain.TimeOff, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"master_id",
		"date",
		"start_minutes",
		"end_minutes",
		"reason",
	).
		From("time_off").
		Where(squirrel.Eq{"date": date.Format(domain.DateFormat)}).
		OrderBy("start_minutes ASC")

	if masterID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.Eq{"master_id": nil},
			squirrel.Eq{"master_id": *masterID},
		})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"master_id": nil})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetTimeOff - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetTimeOff - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var result []*domain.TimeOff
	for rows.Next() {
		var to domain.TimeOff
		if err := rows.Scan(
			&to.ID,
			&to.MasterID,
			&to.Date,
			&to.StartMinutes,
			&to.EndMinutes,
			&to.Reason,
		); err != nil {
			return nil, fmt.Errorf("%w: GetTimeOff - scan row: %v", ErrScanRow, err)
		}
		result = append(result, &to)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetTimeOff - iterate rows: %v", ErrExecQuery, err)
	}

	return result, nil
}
