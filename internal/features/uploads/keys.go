package uploads

import (
	"regexp"
	"strconv"
	"time"
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9.]`)

// SanitizeFilename replaces every character other than ASCII letters, digits
// and dots with an underscore.
func SanitizeFilename(name string) string {
	return unsafeFilenameChars.ReplaceAllString(name, "_")
}

// ObjectKey builds the storage key "{unix millis}-{sanitized name}"
func ObjectKey(at time.Time, filename string) string {
	return strconv.FormatInt(at.UnixMilli(), 10) + "-" + SanitizeFilename(filename)
}
