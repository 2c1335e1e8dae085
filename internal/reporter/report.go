package reporter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"daysquare/internal/batch"
	"daysquare/internal/parser"

	"gopkg.in/yaml.v3"
)

// Report represents a batch parsing report
type Report struct {
	Timestamp   time.Time     `json:"timestamp" yaml:"timestamp"`
	TotalLines  int           `json:"total_lines" yaml:"total_lines"`
	ParsedLines int           `json:"parsed_lines" yaml:"parsed_lines"`
	FailedLines int           `json:"failed_lines" yaml:"failed_lines"`
	Duration    time.Duration `json:"duration" yaml:"duration"`
	Results     []LineResult  `json:"results" yaml:"results"`
}

// LineResult represents the outcome for a single line
type LineResult struct {
	Name       string                     `json:"name" yaml:"name"`
	Line       string                     `json:"line" yaml:"line"`
	Status     string                     `json:"status" yaml:"status"`
	Error      string                     `json:"error,omitempty" yaml:"error,omitempty"`
	Descriptor *parser.EndpointDescriptor `json:"descriptor,omitempty" yaml:"descriptor,omitempty"`
}

const (
	StatusParsed   = "PARSED"
	StatusRejected = "REJECTED"
)

// Reporter handles the generation of parse reports
type Reporter struct {
	config ReportingConfig
	now    func() time.Time
}

// ReportingConfig holds the configuration for reporting
type ReportingConfig struct {
	Format    []string
	OutputDir string
}

// NewReporter creates a new instance of Reporter
func NewReporter(config ReportingConfig) *Reporter {
	return &Reporter{
		config: config,
		now:    time.Now,
	}
}

// BuildReport summarizes batch results
func (r *Reporter) BuildReport(results []batch.Result) Report {
	report := Report{
		Timestamp:  r.now(),
		TotalLines: len(results),
		Results:    make([]LineResult, len(results)),
	}

	for i, result := range results {
		report.Duration += result.Duration
		lr := LineResult{
			Name:       result.Name,
			Line:       result.Line,
			Descriptor: result.Descriptor,
		}
		if result.Error != nil {
			report.FailedLines++
			lr.Status = StatusRejected
			lr.Error = result.Error.Error()
		} else {
			report.ParsedLines++
			lr.Status = StatusParsed
		}
		report.Results[i] = lr
	}
	return report
}

// GenerateReport writes the report in every configured format and returns
// the written file paths
func (r *Reporter) GenerateReport(results []batch.Result) ([]string, error) {
	report := r.BuildReport(results)

	if err := os.MkdirAll(r.config.OutputDir, 0755); err != nil {
		return nil, err
	}

	var written []string
	for _, format := range r.config.Format {
		var (
			data []byte
			err  error
		)
		switch format {
		case "json":
			data, err = json.MarshalIndent(report, "", "  ")
		case "yaml":
			data, err = yaml.Marshal(report)
		default:
			return written, fmt.Errorf("unsupported report format: %s", format)
		}
		if err != nil {
			return written, fmt.Errorf("failed to generate %s report: %w", format, err)
		}

		reportPath := filepath.Join(r.config.OutputDir, fmt.Sprintf("report_%s.%s", report.Timestamp.Format("20060102_150405"), format))
		if err := os.WriteFile(reportPath, data, 0644); err != nil {
			return written, fmt.Errorf("failed to write %s report: %w", format, err)
		}
		written = append(written, reportPath)
	}

	return written, nil
}
