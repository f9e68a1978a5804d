// Package types contains common types used across the application
package types

// Descriptor describes one report in the catalog listing.
type Descriptor struct {
	Name           string   `json:"name"`
	Title          string   `json:"title"`
	Section        string   `json:"section"`
	Kind           string   `json:"kind"`
	Available      bool     `json:"available"`
	MissingColumns []string `json:"missing_columns,omitempty"`
}
