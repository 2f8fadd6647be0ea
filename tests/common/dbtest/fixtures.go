//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// bcrypt hash of "password123"
const testPasswordHash = "$2a$12$uhAjVE9f92IGYv3E25pJNetg.27lVt0p7jmLWjqjmhOg92ldPS0A."

func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx,
		"INSERT INTO users (id, email, password_hash, role) VALUES ($1, $2, $3, $4) ON CONFLICT (email) DO NOTHING",
		userID, email, testPasswordHash, role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
	}

	return userID
}

func CreateTestTutorProfile(t *testing.T, db DBLike, userID uuid.UUID, headline string) uuid.UUID {
	t.Helper()

	profileID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		"INSERT INTO tutor_profiles (id, user_id, headline) VALUES ($1, $2, $3)",
		profileID, userID, headline)
	require.NoError(t, err)

	return profileID
}

func CreateTestBooking(t *testing.T, db DBLike, studentID, tutorProfileID uuid.UUID, status string) uuid.UUID {
	t.Helper()

	bookingID := uuid.New()
	ctx := context.Background()
	startsAt := time.Now().Add(-2 * time.Hour)
	endsAt := startsAt.Add(time.Hour)

	_, err := db.Exec(ctx,
		"INSERT INTO bookings (id, student_id, tutor_profile_id, status, starts_at, ends_at) VALUES ($1, $2, $3, $4, $5, $6)",
		bookingID, studentID, tutorProfileID, status, startsAt, endsAt)
	require.NoError(t, err)

	return bookingID
}

// GetTutorAggregate reads the derived pair straight off the profile row.
func GetTutorAggregate(t *testing.T, db DBLike, tutorProfileID uuid.UUID) (float64, int) {
	t.Helper()

	var rating float64
	var total int
	err := db.QueryRow(context.Background(),
		"SELECT rating, total_reviews FROM tutor_profiles WHERE id = $1", tutorProfileID).
		Scan(&rating, &total)
	require.NoError(t, err)

	return rating, total
}

func CountReviewsForBooking(t *testing.T, db DBLike, bookingID uuid.UUID) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM reviews WHERE booking_id = $1", bookingID).Scan(&n)
	require.NoError(t, err)

	return n
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return nil
}
