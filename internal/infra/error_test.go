//go:build unit

package infra_test

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"rental-booking/internal/infra"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want infra.RepositoryErrorKind
	}{
		{name: "no rows", err: pgx.ErrNoRows, want: infra.KindNotFound},
		{name: "wrapped no rows", err: fmt.Errorf("scan: %w", pgx.ErrNoRows), want: infra.KindNotFound},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, want: infra.KindDuplicateKey},
		{name: "foreign key violation", err: &pgconn.PgError{Code: "23503"}, want: infra.KindForeignKeyViolated},
		{name: "exclusion violation", err: fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23P01"}), want: infra.KindConflict},
		{name: "serialization failure", err: &pgconn.PgError{Code: "40001"}, want: infra.KindDBFailure},
		{name: "plain error", err: errors.New("connection refused"), want: infra.KindDBFailure},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, infra.KindOf(tc.err))
		})
	}
}

func TestClassifyDBErr(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	assert.NoError(t, infra.ClassifyDBErr(logger, "noop", nil))

	cause := &pgconn.PgError{Code: "23P01", ConstraintName: "reservations_no_overlap"}
	err := infra.ClassifyDBErr(logger, "failed to create reservation", cause)
	require.Error(t, err)
	assert.True(t, infra.IsKind(err, infra.KindConflict))
	assert.False(t, infra.IsKind(err, infra.KindDBFailure))
	assert.Contains(t, err.Error(), "failed to create reservation")

	var pgErr *pgconn.PgError
	require.ErrorAs(t, err, &pgErr)
	assert.Equal(t, "reservations_no_overlap", pgErr.ConstraintName)
}

func TestIsKind(t *testing.T) {
	err := fmt.Errorf("tx: %w", infra.NewRepoErr(infra.KindNotFound, "reservation not found"))

	assert.True(t, infra.IsKind(err, infra.KindNotFound))
	assert.False(t, infra.IsKind(err, infra.KindConflict))
	assert.False(t, infra.IsKind(errors.New("other"), infra.KindNotFound))
	assert.Equal(t, "NOT_FOUND: reservation not found", infra.NewRepoErr(infra.KindNotFound, "reservation not found").Error())
}
