package smoke

import (
	"io"
	"time"

	"github.com/SiddharthSingh5771/MedAssist-AI/internal/domain/schema"
	"github.com/SiddharthSingh5771/MedAssist-AI/pkg/logger"
)

// Config holds configuration for a smoke run.
type Config struct {
	BaseURL    string        // Base URL of the service
	Patients   int           // Number of synthetic patients to submit
	Workers    int           // Number of concurrent workers
	Timeout    time.Duration // HTTP request timeout
	Seed       uint64        // Seed for patient generation
	Incomplete float64       // Share of patients sent with a required field missing
	OutputFile string        // Optional JSON dump of the generated patients
	Verbose    bool          // Log every response
	Progress   io.Writer     // Progress bar sink; nil disables the bar
	Logger     logger.Logger // Defaults to logger.Nop()
}

// Patient is one synthetic request.
type Patient struct {
	ID             string         `json:"id"`
	Disease        schema.Disease `json:"disease"`
	Body           any            `json:"body"`
	ExpectRejected bool           `json:"expect_rejected"`
}

// Stats holds run statistics.
type Stats struct {
	Generated  int
	Submitted  int
	Verified   int
	Rejected   int
	Mismatched int
	Failed     int
	Tiers      map[string]int
	StartTime  time.Time
	Duration   time.Duration
}
