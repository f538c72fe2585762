package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	intconfig "travelnest/internal/config"
	intdb "travelnest/internal/db"
	"travelnest/internal/domain"
	"travelnest/internal/domain/models"
	"travelnest/internal/utils"
)

type BookingRepository struct {
	DB *sql.DB
	tx *sql.Tx
}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r BookingRepository) q() intdb.Querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db()
}

// WithTx returns a copy bound to tx.
func (r BookingRepository) WithTx(tx *sql.Tx) BookingRepository {
	r.tx = tx
	return r
}

const bookingColumns = `b.id, b.booking_number, b.name, b.phone, b.pickup, b.` + "`drop`" + `, b.trip_type, b.car,
		       b.price, b.travel_date, b.travel_time, b.status, b.created_at`

// NextSequence atomically bumps the per-day counter and returns the new value.
// LAST_INSERT_ID(expr) makes the bumped value visible through the insert id of
// this statement, so no second read is needed and concurrent callers never
// observe the same number.
func (r BookingRepository) NextSequence(ctx context.Context, day string) (int64, error) {
	res, err := r.q().ExecContext(ctx, `
		INSERT INTO booking_sequences (seq_date, last_value)
		VALUES (?, LAST_INSERT_ID(1))
		ON DUPLICATE KEY UPDATE last_value = LAST_INSERT_ID(last_value + 1)`, day)
	if err != nil {
		return 0, fmt.Errorf("bump booking sequence: %w", err)
	}
	seq, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read booking sequence: %w", err)
	}
	return seq, nil
}

// Create assigns a booking number and inserts the booking as PENDING in one
// transaction.
func (r BookingRepository) Create(ctx context.Context, in models.BookingInput) (models.Booking, error) {
	now := utils.NowUTC()
	var price float64
	if in.Price != nil {
		price = *in.Price
	}
	b := models.Booking{
		Name:       in.Name,
		Phone:      in.Phone,
		Pickup:     in.Pickup,
		Drop:       in.Drop,
		TripType:   in.TripType,
		Car:        in.Car,
		Price:      utils.RoundMoney(price),
		TravelDate: in.TravelDate,
		TravelTime: in.TravelTime,
		Status:     domain.BookingPending,
		CreatedAt:  now,
	}

	err := intdb.WithTx(ctx, r.db(), func(tx *sql.Tx) error {
		repo := r.WithTx(tx)
		seq, err := repo.NextSequence(ctx, utils.CompactDate(now))
		if err != nil {
			return err
		}
		b.BookingNumber = utils.FormatBookingNumber(now, seq)

		res, err := tx.ExecContext(ctx, `
			INSERT INTO bookings (booking_number, name, phone, pickup, `+"`drop`"+`, trip_type, car,
			                      price, travel_date, travel_time, status, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			b.BookingNumber, b.Name, b.Phone, b.Pickup, b.Drop, b.TripType, b.Car,
			b.Price, b.TravelDate, b.TravelTime, string(b.Status), b.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert booking: %w", err)
		}
		b.ID, err = res.LastInsertId()
		return err
	})
	if err != nil {
		return models.Booking{}, err
	}
	return b, nil
}

func (r BookingRepository) GetByID(ctx context.Context, id int64) (models.Booking, error) {
	if id <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "booking_id", Msg: "invalid id"}
	}
	row := r.q().QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings b WHERE b.id = ? LIMIT 1`, id)

	b, err := scanBooking(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Booking{}, domain.NotFoundError{Resource: "booking", Err: err}
	}
	if err != nil {
		return models.Booking{}, fmt.Errorf("get booking %d: %w", id, err)
	}
	return b, nil
}

// List returns every booking newest first with the derived invoice flag.
func (r BookingRepository) List(ctx context.Context) ([]models.BookingListItem, error) {
	rows, err := r.q().QueryContext(ctx, `
		SELECT `+bookingColumns+`, (i.id IS NOT NULL) AS invoice_exists
		FROM bookings b
		LEFT JOIN invoices i ON i.booking_id = b.id
		ORDER BY b.created_at DESC, b.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	out := []models.BookingListItem{}
	for rows.Next() {
		var (
			item   models.BookingListItem
			status string
		)
		if err := rows.Scan(
			&item.ID,
			&item.BookingNumber,
			&item.Name,
			&item.Phone,
			&item.Pickup,
			&item.Drop,
			&item.TripType,
			&item.Car,
			&item.Price,
			&item.TravelDate,
			&item.TravelTime,
			&status,
			&item.CreatedAt,
			&item.InvoiceExists,
		); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		item.Status = domain.BookingStatus(status)
		out = append(out, item)
	}
	return out, rows.Err()
}

// UpdateStatus overwrites the status. The DSN sets clientFoundRows, so zero
// affected rows means the id does not exist.
func (r BookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	res, err := r.q().ExecContext(ctx, `UPDATE bookings SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}
	if n == 0 {
		return domain.NotFoundError{Resource: "booking"}
	}
	return nil
}

func scanBooking(row *sql.Row) (models.Booking, error) {
	var (
		b      models.Booking
		status string
	)
	err := row.Scan(
		&b.ID,
		&b.BookingNumber,
		&b.Name,
		&b.Phone,
		&b.Pickup,
		&b.Drop,
		&b.TripType,
		&b.Car,
		&b.Price,
		&b.TravelDate,
		&b.TravelTime,
		&status,
		&b.CreatedAt,
	)
	b.Status = domain.BookingStatus(status)
	return b, err
}
