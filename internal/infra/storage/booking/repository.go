package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/Sangharshdeveloper/saloon-booking-management/internal/domain"
	"github.com/Sangharshdeveloper/saloon-booking-management/pkg/dbmetrics"
	"github.com/Sangharshdeveloper/saloon-booking-management/pkg/psqlbuilder"
)

// Repository репозиторий для работы с бронированиями и их строками услуг
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// bookingColumns колонки таблицы bookings в порядке сканирования
var bookingColumns = []string{
	"booking_id",
	"vendor_id",
	"customer_id",
	"booking_date",
	"total_amount",
	"payment_method",
	"payment_status",
	"booking_status",
	"booking_type",
	"notes",
	"cancellation_reason",
	"cancelled_by",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// CreateWithLines создает бронирование вместе со строками услуг.
// Вызывается только внутри транзакции (через txmanager) - бронирование
// без строк или строки без бронирования не должны существовать.
func (r *Repository) CreateWithLines(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	if len(b.Lines) == 0 {
		return nil, ErrNoServiceLines
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"vendor_id",
			"customer_id",
			"booking_date",
			"total_amount",
			"payment_method",
			"payment_status",
			"booking_status",
			"booking_type",
			"notes",
		).
		Values(
			b.VendorID,
			b.CustomerID,
			b.BookingDate,
			b.TotalAmount,
			b.PaymentMethod,
			b.PaymentStatus,
			b.Status,
			b.Type,
			b.Notes,
		).
		Suffix("RETURNING booking_id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateWithLines - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&b.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateWithLines - execute insert: %w", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	// Вставляем строки услуг одним запросом
	insertLines := psqlbuilder.Insert("booking_services").
		Columns(
			"booking_id",
			"service_id",
			"service_name",
			"service_price",
			"start_time",
			"end_time",
			"duration_minutes",
		)

	for _, line := range b.Lines {
		insertLines = insertLines.Values(
			b.ID,
			line.ServiceID,
			line.ServiceName,
			line.ServicePrice,
			line.StartTime,
			line.EndTime,
			line.DurationMinutes,
		)
	}

	query, args, err = insertLines.Suffix("RETURNING line_id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateWithLines - build lines insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateWithLines - execute lines insert: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	i := 0
	for rows.Next() {
		if i >= len(b.Lines) {
			break
		}
		if err := rows.Scan(&b.Lines[i].ID); err != nil {
			return nil, fmt.Errorf("%w: CreateWithLines - scan line id: %v", ErrScanRow, err)
		}
		b.Lines[i].BookingID = b.ID
		i++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CreateWithLines - rows error: %w", ErrScanRow, err)
	}

	return b, nil
}

// GetByID получает бронирование со строками услуг
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"booking_id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}

	lines, err := r.getLines(ctx, executor, []int64{b.ID})
	if err != nil {
		return nil, err
	}
	b.Lines = lines[b.ID]

	return b, nil
}

// GetActiveLinesForDate возвращает строки услуг активных бронирований
// (confirmed/completed) салона на дату, отсортированные по времени начала.
// Единственный источник данных для детектора пересечений.
//
// Внутри транзакции блокирует строки бронирований (FOR UPDATE OF b):
// конкурентная проверка занятости того же салона и даты будет ждать
// завершения текущей транзакции.
func (r *Repository) GetActiveLinesForDate(ctx context.Context, vendorID int64, date time.Time) ([]domain.BookingServiceLine, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	activeStatuses := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		activeStatuses[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select(
		"bs.line_id",
		"bs.booking_id",
		"bs.service_id",
		"bs.service_name",
		"bs.service_price",
		"bs.start_time",
		"bs.end_time",
		"bs.duration_minutes",
	).
		From("booking_services bs").
		Join("bookings b ON b.booking_id = bs.booking_id").
		Where(squirrel.Eq{
			"b.vendor_id":      vendorID,
			"b.booking_date":   date,
			"b.booking_status": activeStatuses,
		}).
		OrderBy("bs.start_time ASC")

	// Блокировка только в транзакции - для решающей проверки при создании
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF b")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveLinesForDate - build select query: %v", ErrBuildQuery, err)
	}

	// Ошибка драйвера сохраняется в цепочке: конфликт сериализации (40001)
	// на чтении с блокировкой должен быть различим через errors.As
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveLinesForDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	lines := make([]domain.BookingServiceLine, 0)
	for rows.Next() {
		var line domain.BookingServiceLine
		err := rows.Scan(
			&line.ID,
			&line.BookingID,
			&line.ServiceID,
			&line.ServiceName,
			&line.ServicePrice,
			&line.StartTime,
			&line.EndTime,
			&line.DurationMinutes,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetActiveLinesForDate - scan line: %v", ErrScanRow, err)
		}
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetActiveLinesForDate - rows error: %w", ErrScanRow, err)
	}

	return lines, nil
}

// GetByCustomer получает бронирования клиента, опционально по статусу
func (r *Repository) GetByCustomer(ctx context.Context, customerID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("booking_date DESC, created_at DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking_status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomer - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryBookings(ctx, executor, query, args)
}

// GetByVendorWithFilter получает бронирования салона с фильтрацией
// по дате и статусу. По умолчанию отменённые и no-show исключаются.
func (r *Repository) GetByVendorWithFilter(ctx context.Context, filter domain.VendorBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"vendor_id": filter.VendorID})

	if filter.Date != nil {
		selectBuilder = selectBuilder.
			Where(squirrel.Eq{"booking_date": *filter.Date}).
			OrderBy("created_at ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date DESC, created_at DESC")
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking_status": *filter.Status})
	} else if !filter.IncludeInactive {
		inactiveStatuses := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactiveStatuses[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"booking_status": inactiveStatuses})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByVendorWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryBookings(ctx, executor, query, args)
}

// Cancel отменяет бронирование с фиксацией причины и инициатора
func (r *Repository) Cancel(ctx context.Context, id int64, reason *string, by domain.ActorRole) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("booking_status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_by", by).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"booking_id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("booking_status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"booking_id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// queryBookings выполняет запрос списка бронирований и подгружает строки услуг
func (r *Repository) queryBookings(ctx context.Context, executor DBExecutor, query string, args []interface{}) ([]*domain.Booking, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: queryBookings - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	ids := make([]int64, 0)

	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
		ids = append(ids, b.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: queryBookings - rows error: %v", ErrScanRow, err)
	}

	if len(bookings) == 0 {
		return bookings, nil
	}

	lines, err := r.getLines(ctx, executor, ids)
	if err != nil {
		return nil, err
	}

	for _, b := range bookings {
		b.Lines = lines[b.ID]
	}

	return bookings, nil
}

// getLines загружает строки услуг для набора бронирований одним запросом
func (r *Repository) getLines(ctx context.Context, executor DBExecutor, bookingIDs []int64) (map[int64][]domain.BookingServiceLine, error) {
	query, args, err := psqlbuilder.Select(
		"line_id",
		"booking_id",
		"service_id",
		"service_name",
		"service_price",
		"start_time",
		"end_time",
		"duration_minutes",
	).
		From("booking_services").
		Where(squirrel.Eq{"booking_id": bookingIDs}).
		OrderBy("booking_id ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getLines - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getLines - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	lines := make(map[int64][]domain.BookingServiceLine)
	for rows.Next() {
		var line domain.BookingServiceLine
		err := rows.Scan(
			&line.ID,
			&line.BookingID,
			&line.ServiceID,
			&line.ServiceName,
			&line.ServicePrice,
			&line.StartTime,
			&line.EndTime,
			&line.DurationMinutes,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: getLines - scan line: %v", ErrScanRow, err)
		}
		lines[line.BookingID] = append(lines[line.BookingID], line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getLines - rows error: %v", ErrScanRow, err)
	}

	return lines, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку таблицы bookings
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.VendorID,
		&b.CustomerID,
		&b.BookingDate,
		&b.TotalAmount,
		&b.PaymentMethod,
		&b.PaymentStatus,
		&b.Status,
		&b.Type,
		&b.Notes,
		&b.CancellationReason,
		&b.CancelledBy,
		&b.CancelledAt,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanBooking - scan row: %v", ErrScanRow, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}
