package crud

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 50))
	assert.Equal(t, strings.Repeat("a", 50), Truncate(strings.Repeat("a", 50), 50))
	assert.Equal(t, strings.Repeat("a", 50)+"...", Truncate(strings.Repeat("a", 51), 50))
	// counts runes, not bytes
	assert.Equal(t, "ééé...", Truncate("éééé", 3))
}

func TestMessages(t *testing.T) {
	assert.Equal(t, `Location "HQ" created successfully!`, createdMessage("Location", "HQ"))
	assert.Equal(t, `Fire Truck "Tesla" updated successfully!`, updatedMessage("Fire Truck", "Tesla"))
	assert.Equal(t, `"HQ" deleted successfully!`, deletedMessage("HQ"))

	long := strings.Repeat("x", 60)
	assert.Equal(t, `"`+strings.Repeat("x", 50)+`..." deleted successfully!`, deletedMessage(long))
}
