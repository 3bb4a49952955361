package reservation

import (
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
	"github.com/m04kA/SMC-BeautyBooking/pkg/ptr"
)

func TestProfessionalQuery_SingleDayLocksInTransaction(t *testing.T) {
	date := time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC)
	filter := domain.ProfessionalReservationsFilter{ProfessionalID: 7, StartDate: &date, EndDate: &date}

	query, args, err := professionalQuery(filter, true).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "FROM reservations")
	assert.Contains(t, query, "status IN ($4,$5)")
	assert.Contains(t, query, "ORDER BY start_time ASC")
	assert.Contains(t, query, "FOR UPDATE")
	assert.Equal(t, []interface{}{int64(7), date, date, "pending", "accepted"}, args)

	query, _, err = professionalQuery(filter, false).ToSql()
	require.NoError(t, err)
	assert.NotContains(t, query, "FOR UPDATE")
}

func TestProfessionalQuery_RangeNeverLocks(t *testing.T) {
	start := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC)
	filter := domain.ProfessionalReservationsFilter{ProfessionalID: 7, StartDate: &start, EndDate: &end, IncludeInactive: true}

	query, args, err := professionalQuery(filter, true).ToSql()
	require.NoError(t, err)

	assert.NotContains(t, query, "FOR UPDATE")
	assert.NotContains(t, query, "status IN")
	assert.NotContains(t, query, "status =")
	assert.Contains(t, query, "ORDER BY reservation_date DESC, start_time DESC")
	assert.Len(t, args, 3)
}

func TestProfessionalQuery_ExplicitStatus(t *testing.T) {
	filter := domain.ProfessionalReservationsFilter{ProfessionalID: 7, Status: ptr.Ptr(domain.StatusRejected)}

	query, args, err := professionalQuery(filter, false).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "status = $2")
	assert.Equal(t, domain.StatusRejected, args[1])
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pq.Error{Code: "23505"}))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", &pq.Error{Code: "23505"})))
	assert.False(t, isUniqueViolation(&pq.Error{Code: "40001"}))
	assert.False(t, isUniqueViolation(fmt.Errorf("plain")))
}
