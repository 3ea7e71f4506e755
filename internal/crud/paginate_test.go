package crud

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		total    int64
		number   int
		numPages int
		hasNext  bool
		hasPrev  bool
	}{
		{"default first page", "", 25, 1, 3, true, false},
		{"middle page", "2", 25, 2, 3, true, true},
		{"last keyword", "last", 25, 3, 3, false, true},
		{"exact multiple", "2", 20, 2, 2, false, true},
		{"empty table still has page one", "", 0, 1, 1, false, false},
		{"last on empty table", "last", 0, 1, 1, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Paginate(tt.raw, tt.total, 10)
			require.NoError(t, err)
			assert.Equal(t, tt.number, p.Number)
			assert.Equal(t, tt.numPages, p.NumPages)
			assert.Equal(t, tt.hasNext, p.HasNext)
			assert.Equal(t, tt.hasPrev, p.HasPrevious)
			assert.Equal(t, tt.total, p.Count)
		})
	}
}

func TestPaginate_Invalid(t *testing.T) {
	for _, raw := range []string{"0", "-1", "4", "abc", "1.5"} {
		t.Run(raw, func(t *testing.T) {
			_, err := Paginate(raw, 25, 10)
			assert.ErrorIs(t, err, ErrInvalidPage)
		})
	}
}

func TestPage_Offset(t *testing.T) {
	p, err := Paginate("3", 25, 10)
	require.NoError(t, err)
	assert.Equal(t, 20, p.Offset())
}

func TestPaginate_DefaultsPerPage(t *testing.T) {
	p, err := Paginate("", 11, 0)
	require.NoError(t, err)
	assert.Equal(t, 10, p.PerPage)
	assert.Equal(t, 2, p.NumPages)
}
