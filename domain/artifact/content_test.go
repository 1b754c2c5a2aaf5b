package artifact

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestContent(t *testing.T) {
	at := time.Date(2024, 10, 3, 12, 34, 56, 789000000, time.UTC)

	got := Content(at)

	assert.Equal(t, Greeting+"\nFile created at: 2024-10-03T12:34:56.789Z", got)
}

func TestFormatTimestamp_ConvertsToUTC(t *testing.T) {
	zone := time.FixedZone("UTC+2", 2*60*60)
	at := time.Date(2024, 10, 3, 14, 0, 0, 0, zone)

	assert.Equal(t, "2024-10-03T12:00:00.000Z", FormatTimestamp(at))
}

func TestContent_SingleTrailingLineWithoutNewline(t *testing.T) {
	got := Content(time.Now())
	assert.Equal(t, 1, strings.Count(got, "\n"))
	assert.False(t, strings.HasSuffix(got, "\n"))
}
