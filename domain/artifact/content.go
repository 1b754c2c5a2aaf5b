package artifact

import (
	"fmt"
	"time"
)

// Greeting is the fixed first line of every generated artifact
const Greeting = "Hello, this is a simple text file created by drive-uploader!"

// TimestampLayout is ISO-8601 in UTC with millisecond precision
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// FormatTimestamp renders t in TimestampLayout
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Content returns the artifact body for a file generated at t
func Content(t time.Time) string {
	return fmt.Sprintf("%s\nFile created at: %s", Greeting, FormatTimestamp(t))
}
