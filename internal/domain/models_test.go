package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEmployeeResponseRoundTrip(t *testing.T) {
	fixture := EmployeeResponse{
		Message: "ok",
		Employees: []Employee{
			{Name: "Alice", Profile: "Engineer"},
			{Name: "Bob", Profile: "Designer"},
			{Name: "Alice", Profile: "Engineer"},
		},
	}
	raw, err := json.Marshal(fixture)
	require.NoError(t, err)

	got, err := DecodeEmployeeResponse(raw)
	require.NoError(t, err)
	assert.Equal(t, fixture, got)
}

func TestDecodeEmployeeResponseMissingEmployees(t *testing.T) {
	for _, body := range []string{`{"message":"x"}`, `{"message":"x","employees":null}`} {
		got, err := DecodeEmployeeResponse([]byte(body))
		require.NoError(t, err, body)
		assert.Equal(t, "x", got.Message)
		assert.NotNil(t, got.Employees)
		assert.Empty(t, got.Employees)
	}
}

func TestDecodeEmployeeResponseRejectsBadShape(t *testing.T) {
	cases := []string{
		``,
		`   `,
		`not json`,
		`{"message": 5}`,
		`{"employees": {"name": "Alice"}}`,
		`[]`,
		`null`,
		` null `,
		`"employees"`,
	}
	for _, body := range cases {
		_, err := DecodeEmployeeResponse([]byte(body))
		assert.Error(t, err, "body %q", body)
	}
}
