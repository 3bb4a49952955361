package get_professional_reservations

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToServiceRequest_SingleDate(t *testing.T) {
	req, err := ToServiceRequest(7, 7, url.Values{
		"date":      {"2024-06-03"},
		"startDate": {"2024-01-01"},
	})

	require.NoError(t, err)
	require.NotNil(t, req.StartDate)
	require.NotNil(t, req.EndDate)
	assert.Equal(t, "2024-06-03", req.StartDate.Format("2006-01-02"))
	assert.True(t, req.StartDate.Equal(*req.EndDate))
	assert.False(t, req.IncludeInactive)
}

func TestToServiceRequest_Range(t *testing.T) {
	req, err := ToServiceRequest(7, 7, url.Values{
		"startDate":       {"2024-06-01"},
		"endDate":         {"2024-06-30"},
		"status":          {"accepted"},
		"includeInactive": {"true"},
	})

	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", req.StartDate.Format("2006-01-02"))
	assert.Equal(t, "2024-06-30", req.EndDate.Format("2006-01-02"))
	require.NotNil(t, req.Status)
	assert.Equal(t, "accepted", *req.Status)
	assert.True(t, req.IncludeInactive)
}

func TestToServiceRequest_Invalid(t *testing.T) {
	for _, q := range []url.Values{
		{"date": {"03.06.2024"}},
		{"startDate": {"2024-13-01"}},
		{"endDate": {"tomorrow"}},
		{"includeInactive": {"maybe"}},
	} {
		_, err := ToServiceRequest(7, 7, q)
		assert.Error(t, err, "%v", q)
	}
}
