package schema

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"gorm.io/gorm"

	"vetiver/internal/infrastructure/persistence/models"
	"vetiver/internal/shared/constants"
	"vetiver/internal/shared/errors"
	"vetiver/internal/shared/logger"
)

// Capabilities describes which optional schema features the connected
// database currently supports.
type Capabilities struct {
	TicketsTable   bool `json:"tickets_table"`
	VersionColumns bool `json:"version_columns"`
	SoftDelete     bool `json:"soft_delete"`
	FullText       bool `json:"full_text"`
}

// Complete reports whether the schema supports every required feature.
// Full-text search is optional; queries fall back to LIKE without it.
func (c Capabilities) Complete() bool {
	return c.TicketsTable && c.VersionColumns && c.SoftDelete
}

// Missing lists the required features the schema lacks.
func (c Capabilities) Missing() []string {
	var missing []string
	if !c.TicketsTable {
		missing = append(missing, "tickets table")
	}
	if !c.VersionColumns {
		missing = append(missing, "version columns")
	}
	if !c.SoftDelete {
		missing = append(missing, "soft-delete columns")
	}
	return missing
}

// Detector probes the database schema for the features the repository
// depends on. Probe results are cached for the lifetime of the process;
// the schema does not change under a running server except through the
// detector's own upgrade path.
type Detector struct {
	db     *gorm.DB
	logger logger.Interface

	mu       sync.Mutex
	cached   *Capabilities
	upgraded bool
}

// NewDetector creates a schema capability detector.
func NewDetector(db *gorm.DB) *Detector {
	return &Detector{
		db:     db,
		logger: logger.NewLogger().With("component", "schema.detector"),
	}
}

// Capabilities returns the cached capability set, probing on first use.
func (d *Detector) Capabilities(ctx context.Context) (Capabilities, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cached != nil {
		return *d.cached, nil
	}

	caps, err := d.probe(ctx)
	if err != nil {
		return Capabilities{}, err
	}

	d.cached = &caps
	return caps, nil
}

// Detect forces a fresh probe, replacing the cached capability set.
func (d *Detector) Detect(ctx context.Context) (Capabilities, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	caps, err := d.probe(ctx)
	if err != nil {
		return Capabilities{}, err
	}

	d.cached = &caps
	return caps, nil
}

// Ensure verifies that the schema supports every required feature,
// attempting a single in-place upgrade via AutoMigrate if it does not.
// A schema that remains incomplete after the upgrade attempt is reported
// as incompatible; the upgrade is never retried within the same process.
func (d *Detector) Ensure(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	caps := d.cached
	if caps == nil {
		probed, err := d.probe(ctx)
		if err != nil {
			return err
		}
		caps = &probed
		d.cached = caps
	}

	if caps.Complete() {
		return nil
	}

	if d.upgraded {
		return errors.NewSchemaIncompatibleError(
			fmt.Sprintf("database schema is missing required features: %s", strings.Join(caps.Missing(), ", ")))
	}

	d.logger.Warnw("schema missing required features, attempting upgrade",
		"missing", strings.Join(caps.Missing(), ", "))
	d.upgraded = true

	if err := d.db.WithContext(ctx).AutoMigrate(&models.TicketModel{}, &models.TicketEventModel{}); err != nil {
		d.logger.Errorw("schema upgrade failed", "error", err)
		return errors.NewSchemaIncompatibleError(
			fmt.Sprintf("schema upgrade failed: %v", err))
	}

	probed, err := d.probe(ctx)
	if err != nil {
		return err
	}
	d.cached = &probed

	if !probed.Complete() {
		return errors.NewSchemaIncompatibleError(
			fmt.Sprintf("database schema is missing required features after upgrade: %s", strings.Join(probed.Missing(), ", ")))
	}

	d.logger.Infow("schema upgraded successfully")
	return nil
}

// Invalidate discards the cached capability set. Callers invalidate after
// operations that may change the schema, such as a search index rebuild.
func (d *Detector) Invalidate() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cached = nil
}

func (d *Detector) probe(ctx context.Context) (Capabilities, error) {
	db := d.db.WithContext(ctx)
	migrator := db.Migrator()

	var caps Capabilities

	caps.TicketsTable = migrator.HasTable(&models.TicketModel{})
	if !caps.TicketsTable {
		return caps, nil
	}

	caps.VersionColumns = migrator.HasColumn(&models.TicketModel{}, "version_ts") &&
		migrator.HasColumn(&models.TicketModel{}, "version_str")
	caps.SoftDelete = migrator.HasColumn(&models.TicketModel{}, "is_deleted") &&
		migrator.HasColumn(&models.TicketModel{}, "deleted_at")

	fullText, err := d.probeFullText(db)
	if err != nil {
		// A failed index probe downgrades search, it does not block startup.
		d.logger.Warnw("full-text index probe failed", "error", err)
		fullText = false
	}
	caps.FullText = fullText

	return caps, nil
}

// probeFullText checks for a FULLTEXT index on the tickets table. Only
// MySQL supports them; every other dialect falls back to LIKE search.
func (d *Detector) probeFullText(db *gorm.DB) (bool, error) {
	if db.Dialector.Name() != "mysql" {
		return false, nil
	}

	var count int64
	err := db.Raw(
		"SELECT COUNT(1) FROM information_schema.statistics WHERE table_schema = DATABASE() AND table_name = ? AND index_type = 'FULLTEXT'",
		constants.TableTickets,
	).Scan(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to probe full-text index: %w", err)
	}

	return count > 0, nil
}
