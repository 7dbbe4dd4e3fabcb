// ABOUTME: Version constants for the feedwire player
// ABOUTME: Identifies the product in logs and the TUI header
package version

const (
	Version      = "0.1.0"
	Product      = "Feedwire Player"
	Manufacturer = "Feedwire Audio"
)
