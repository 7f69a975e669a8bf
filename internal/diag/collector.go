// Package diag collects structured failure records from every stage of a
// conversion without interrupting best-effort processing. A Collector is an
// explicitly passed collaborator, one per batch; it is not safe for
// concurrent use (documents are processed sequentially, and a parallel
// mode would give each worker its own collector and merge afterwards).
package diag

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Severity grades a record.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Category names the failure domain of a record.
type Category string

const (
	CategoryParsing       Category = "parsing"
	CategoryConfiguration Category = "configuration"
	CategoryValidation    Category = "validation"
	CategoryConversion    Category = "conversion"
	CategorySystem        Category = "system"
	CategoryNetwork       Category = "network"
	CategoryPermission    Category = "permission"
	CategoryDependency    Category = "dependency"
)

// Record is one diagnostic with its context fields.
type Record struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Severity  Severity  `json:"severity"`
	Category  Category  `json:"category"`
	Message   string    `json:"message"`
	FilePath  string    `json:"file_path,omitempty"`
	Component string    `json:"component,omitempty"`
	Operation string    `json:"operation,omitempty"`
}

// Context carries the optional fields of a record.
type Context struct {
	FilePath  string
	Component string
	Operation string
}

// Summary aggregates the collected records.
type Summary struct {
	Total      int              `json:"total"`
	BySeverity map[Severity]int `json:"by_severity"`
	ByCategory map[Category]int `json:"by_category"`
}

// Collector accumulates records append-only and mirrors each one to the
// logger as it arrives.
type Collector struct {
	log     *zap.SugaredLogger
	records []Record
}

// NewCollector returns a collector logging through log. A nil logger
// disables mirroring (used by tests).
func NewCollector(log *zap.SugaredLogger) *Collector {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Collector{log: log}
}

// Add records one diagnostic.
func (c *Collector) Add(sev Severity, cat Category, msg string, ctx Context) Record {
	rec := Record{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		Severity:  sev,
		Category:  cat,
		Message:   msg,
		FilePath:  ctx.FilePath,
		Component: ctx.Component,
		Operation: ctx.Operation,
	}
	c.records = append(c.records, rec)

	kv := []any{
		"id", rec.ID,
		"category", string(cat),
		"component", ctx.Component,
		"operation", ctx.Operation,
	}
	if ctx.FilePath != "" {
		kv = append(kv, "file", ctx.FilePath)
	}
	switch sev {
	case SeverityCritical, SeverityHigh:
		c.log.Errorw(msg, kv...)
	case SeverityMedium:
		c.log.Warnw(msg, kv...)
	default:
		c.log.Infow(msg, kv...)
	}
	return rec
}

// Warnf is shorthand for a medium-severity record with a formatted message.
func (c *Collector) Warnf(cat Category, ctx Context, format string, args ...any) Record {
	return c.Add(SeverityMedium, cat, fmt.Sprintf(format, args...), ctx)
}

// Errorf is shorthand for a high-severity record with a formatted message.
func (c *Collector) Errorf(cat Category, ctx Context, format string, args ...any) Record {
	return c.Add(SeverityHigh, cat, fmt.Sprintf(format, args...), ctx)
}

// Records returns a copy of everything collected so far.
func (c *Collector) Records() []Record {
	out := make([]Record, len(c.records))
	copy(out, c.records)
	return out
}

// Len reports the number of collected records.
func (c *Collector) Len() int { return len(c.records) }

// Merge appends all records of other, preserving order. Used to fold
// per-worker collectors into a batch collector.
func (c *Collector) Merge(other *Collector) {
	c.records = append(c.records, other.records...)
}

// Summarize aggregates counts by severity and category.
func (c *Collector) Summarize() Summary {
	s := Summary{
		Total:      len(c.records),
		BySeverity: map[Severity]int{},
		ByCategory: map[Category]int{},
	}
	for _, r := range c.records {
		s.BySeverity[r.Severity]++
		s.ByCategory[r.Category]++
	}
	return s
}
