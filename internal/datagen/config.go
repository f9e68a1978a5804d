package datagen

import "time"

// Config holds configuration for the dataset generator
type Config struct {
	OutDir           string        // Directory for the generated CSV files
	Seasons          int           // Number of seasons to generate
	StartYear        int           // Calendar year of the first season
	MatchesPerSeason int           // Fixtures per season
	OversPerInnings  int           // Overs per innings
	Seed             int64         // RNG seed, 0 picks one from the clock
	BaseURL          string        // Base URL of a running service to verify against
	Timeout          time.Duration // HTTP request timeout
	Verify           bool          // Verify a running service after generating
	LogFile          string        // Log file for generator output
	Verbose          bool          // Enable verbose logging
}

// Table mirrors the report payload served by GET /reports/{name}.
type Table struct {
	Name    string `json:"name"`
	Title   string `json:"title"`
	Section string `json:"section"`
	Kind    string `json:"kind"`
	XLabel  string `json:"x_label,omitempty"`
	YLabel  string `json:"y_label,omitempty"`
	Rows    []Row  `json:"rows"`
}

// Row mirrors one chart row in a report payload.
type Row struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// RefreshAck mirrors the response from POST /refresh.
type RefreshAck struct {
	Status   string `json:"status"`
	Reloaded bool   `json:"reloaded"`
}

// Stats holds generator statistics
type Stats struct {
	MatchesGenerated    int
	DeliveriesGenerated int
	ReportsChecked      int
	ReportsMatched      int
	ReportsMismatched   int
	StartTime           time.Time
	EndTime             time.Time
	Duration            time.Duration
}
