package version

import "fmt"

const (
	Version = "0.1.0"
	Date    = "20250612"
)

// String returns the banner printed by -v/--version.
func String() string {
	return fmt.Sprintf("vhash %s (%s)", Version, Date)
}
