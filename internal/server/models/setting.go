package models

// Setting is one key/value pair of site-wide configuration
// (site name, logo, description).
type Setting struct {
	Key   string
	Value string
}
