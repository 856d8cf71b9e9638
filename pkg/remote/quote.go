package remote

import (
	"strings"
)

// Quote wraps `s` in single quotes for safe interpolation into a remote
// shell command. Tracked paths come from user input, so they can contain
// spaces, globs, or worse -- every path that ends up in a command string
// must go through here.
func Quote(s string) string {
	return "'" + strings.Replace(s, "'", `'\''`, -1) + "'"
}
