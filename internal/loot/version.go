package loot

import "fmt"

// Version is the library version.
const Version = "1.0.0"

// Info returns the library identifier string.
func Info() string {
	return fmt.Sprintf("praeda %s", Version)
}
