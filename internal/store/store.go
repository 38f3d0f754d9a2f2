// Package store persists completed assessments and the metal-properties
// catalog in SQLite via GORM. It is the single owner of the schema; callers
// get typed operations and never touch SQL.
package store

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/metalpath/metalpath/internal/engine"
	"github.com/metalpath/metalpath/internal/factors"
	"github.com/metalpath/metalpath/internal/logging"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Store errors, comparable with errors.Is().
var (
	// ErrAssessmentNotFound indicates an unknown assessment id.
	ErrAssessmentNotFound = constError("assessment not found")

	// ErrMetalNotFound indicates a metal with no catalog row.
	ErrMetalNotFound = constError("metal not found in catalog")
)

// List bounds, matching the API defaults.
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// recentAssessmentCount is how many assessments the dashboard shows.
const recentAssessmentCount = 5

// Aggregate display precision.
const (
	carbonDecimals      = 2
	scoreDecimals       = 1
	circularityDecimals = 3
)

// Open opens (creating if necessary) the SQLite database at path. The GORM
// logger is silenced; the store does its own structured logging.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}
	return db, nil
}

// Store provides database operations for assessments and the metal catalog.
type Store struct {
	db *gorm.DB
}

// New creates a Store on an open database handle.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// AutoMigrate creates or updates the schema and seeds the metal-properties
// catalog from the shipped factor tables. Seeding upserts by metal, so a
// catalog refresh on upgrade never duplicates rows.
func (s *Store) AutoMigrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&Assessment{}, &MetalProperty{}); err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}

	for _, props := range factors.Catalog() {
		row, err := newMetalProperty(props)
		if err != nil {
			return err
		}
		if err := s.db.WithContext(ctx).Save(row).Error; err != nil {
			return fmt.Errorf("seeding catalog row %s: %w", row.Metal, err)
		}
	}

	logging.FromContext(ctx).Debug().
		Str("component", "store").
		Str("operation", "migrate").
		Int("catalog_rows", len(factors.Catalog())).
		Msg("Schema migrated and catalog seeded")
	return nil
}

// SaveAssessment persists a completed result for a user and returns the
// stored record. A zero CreatedAt is stamped with the current time.
func (s *Store) SaveAssessment(ctx context.Context, result engine.AssessmentResult, userID string) (*Assessment, error) {
	record, err := NewAssessment(result, userID)
	if err != nil {
		return nil, err
	}
	return s.saveRecord(ctx, record)
}

func (s *Store) saveRecord(ctx context.Context, record *Assessment) (*Assessment, error) {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, fmt.Errorf("saving assessment: %w", err)
	}

	logging.FromContext(ctx).Info().
		Str("component", "store").
		Str("operation", "save_assessment").
		Str("assessment_id", record.ID).
		Str("metal_type", record.Metal).
		Msg("Assessment saved")
	return record, nil
}

// GetAssessment retrieves one assessment by id.
func (s *Store) GetAssessment(ctx context.Context, id string) (*Assessment, error) {
	var record Assessment
	err := s.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: %s", ErrAssessmentNotFound, id)
		}
		return nil, fmt.Errorf("loading assessment %s: %w", id, err)
	}
	return &record, nil
}

// ListAssessments returns a user's assessments, newest first. A non-positive
// limit falls back to DefaultListLimit; limits above MaxListLimit are capped.
func (s *Store) ListAssessments(ctx context.Context, userID string, limit int) ([]Assessment, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	var records []Assessment
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("listing assessments for %s: %w", userID, err)
	}
	return records, nil
}

// Stats aggregates one user's assessment history for the dashboard. A user
// with no assessments gets zero-valued aggregates and an empty recent list.
func (s *Store) Stats(ctx context.Context, userID string) (*DashboardStats, error) {
	var row struct {
		Total             int64
		AvgCarbon         float64
		AvgSustainability float64
		AvgCircularity    float64
	}
	err := s.db.WithContext(ctx).Model(&Assessment{}).
		Select(`COUNT(*) AS total,
			COALESCE(AVG(carbon_footprint), 0) AS avg_carbon,
			COALESCE(AVG(sustainability_score), 0) AS avg_sustainability,
			COALESCE(AVG(circularity_index), 0) AS avg_circularity`).
		Where("user_id = ?", userID).
		Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("aggregating stats for %s: %w", userID, err)
	}

	recent, err := s.ListAssessments(ctx, userID, recentAssessmentCount)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TotalAssessments:  row.Total,
		AvgCarbonKg:       roundTo(row.AvgCarbon, carbonDecimals),
		AvgSustainability: roundTo(row.AvgSustainability, scoreDecimals),
		AvgCircularity:    roundTo(row.AvgCircularity, circularityDecimals),
		Recent:            recent,
	}, nil
}

// ListMetalProperties returns the full metal catalog in name order.
func (s *Store) ListMetalProperties(ctx context.Context) ([]MetalProperty, error) {
	var rows []MetalProperty
	err := s.db.WithContext(ctx).Order("metal_type ASC").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("listing metal catalog: %w", err)
	}
	return rows, nil
}

// GetMetalProperties returns the catalog row for one metal.
func (s *Store) GetMetalProperties(ctx context.Context, metal string) (*MetalProperty, error) {
	var row MetalProperty
	err := s.db.WithContext(ctx).First(&row, "metal_type = ?", metal).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: %s", ErrMetalNotFound, metal)
		}
		return nil, fmt.Errorf("loading catalog row %s: %w", metal, err)
	}
	return &row, nil
}

func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
