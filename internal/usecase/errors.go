package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"healthcare-booking/internal/availability"
	"healthcare-booking/internal/delivery/http/middleware"
	"healthcare-booking/internal/domain/entity"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrUnauthenticated   = errors.New("caller not found in context")
	ErrInvalidDateFormat = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidSlotTime   = errors.New("invalid appointment time, use H:MM AM/PM or HH:MM")

	// ErrAvailabilityUnknown means the booked slots of a doctor could not be loaded.
	// No slots are offered and no booking is accepted while it persists.
	ErrAvailabilityUnknown = errors.New("doctor availability is temporarily unknown")

	// ErrSlotTaken is returned when another booking claimed the slot between validation and write
	ErrSlotTaken = errors.New("failed to book appointment, the slot was just taken")
)

const (
	slotUniqueIndex = "idx_appointments_doctor_slot"

	dateLayout = "2006-01-02"
)

// actorFromContext returns the authenticated caller set by the auth middleware
func actorFromContext(ctx context.Context) (entity.Actor, error) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		return entity.Actor{}, ErrUnauthenticated
	}
	return actor, nil
}

// Clock reports the current time in the clinic's time zone
type Clock struct {
	Location *time.Location
	Now      func() time.Time
}

func NewClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return Clock{Location: loc, Now: time.Now}
}

func (c Clock) now() time.Time {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	return now().In(loc)
}

func (c Clock) today() time.Time {
	return availability.StartOfDay(c.now())
}

// parseDate reads a YYYY-MM-DD date as midnight in the clinic's time zone
func (c Clock) parseDate(s string) (time.Time, error) {
	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	date, err := time.ParseInLocation(dateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return date, nil
}

// parseSlot accepts a slot label ("2:00 PM") or a 24-hour time and returns both forms
func parseSlot(s string) (label string, clock string, err error) {
	if clock, err := availability.To24Hour(s); err == nil {
		label, _ := availability.To12Hour(clock)
		return label, clock, nil
	}
	clock, err = availability.NormalizeClock(s)
	if err != nil {
		return "", "", ErrInvalidSlotTime
	}
	label, err = availability.To12Hour(clock)
	if err != nil {
		return "", "", ErrInvalidSlotTime
	}
	return label, clock, nil
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint violation
// containing the specified constraint name
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}

// isForeignKeyError checks if the error is a PostgreSQL foreign key violation
// containing the specified constraint name
func isForeignKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23503 = foreign_key_violation
		if pgErr.Code == "23503" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}
