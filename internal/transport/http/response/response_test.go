package response

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOKEnvelopeShape(t *testing.T) {
	b, err := json.Marshal(OK(map[string]string{"k": "v"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"data":{"k":"v"}}`, string(b))

	// nil data still serializes a data object so clients never see null.
	b, err = json.Marshal(OK(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"data":{}}`, string(b))
}

func TestFailEnvelopeShape(t *testing.T) {
	b, err := json.Marshal(Fail("boom"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"error":"boom"}`, string(b))

	assert.Equal(t, "request failed", Fail("").Error)
}

func TestPaginatedPageCount(t *testing.T) {
	cases := []struct {
		total int64
		limit int
		pages int
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{41, 20, 3},
	}
	for _, tc := range cases {
		env := Paginated([]int{}, 1, tc.limit, tc.total)
		pd, ok := env.Data.(PageData)
		require.True(t, ok)
		assert.Equal(t, tc.pages, pd.Pagination.Pages, "total=%d limit=%d", tc.total, tc.limit)
	}
}

func TestPaginatedSerializedShape(t *testing.T) {
	b, err := json.Marshal(Paginated([]string{"a"}, 2, 10, 11))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"success": true,
		"data": {
			"items": ["a"],
			"pagination": {"page": 2, "limit": 10, "total": 11, "pages": 2}
		}
	}`, string(b))
}
