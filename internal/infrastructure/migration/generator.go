package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"vetiver/internal/shared/logger"
)

// Generator handles creation of new versioned migration file pairs
type Generator struct {
	scriptsPath string
	logger      logger.Interface
}

// NewGenerator creates a new migration generator
func NewGenerator(scriptsPath string) *Generator {
	return &Generator{
		scriptsPath: scriptsPath,
		logger:      logger.NewLogger().With("component", "migration.generator"),
	}
}

// CreateMigration creates a new migration file pair (up and down)
func (g *Generator) CreateMigration(name string) error {
	g.logger.Infow("creating new migration", "name", name)

	timestamp := time.Now().Format("20060102150405")

	upFileName := fmt.Sprintf("%s_%s.up.sql", timestamp, name)
	downFileName := fmt.Sprintf("%s_%s.down.sql", timestamp, name)

	upFilePath := filepath.Join(g.scriptsPath, upFileName)
	downFilePath := filepath.Join(g.scriptsPath, downFileName)

	if err := os.MkdirAll(g.scriptsPath, 0755); err != nil {
		return fmt.Errorf("failed to create scripts directory: %w", err)
	}

	upContent := g.generateUpMigrationTemplate(name)
	if err := g.writeFile(upFilePath, upContent); err != nil {
		return fmt.Errorf("failed to create up migration file: %w", err)
	}

	downContent := g.generateDownMigrationTemplate(name)
	if err := g.writeFile(downFilePath, downContent); err != nil {
		return fmt.Errorf("failed to create down migration file: %w", err)
	}

	g.logger.Infow("migration files created successfully",
		"up_file", upFilePath,
		"down_file", downFilePath)

	return nil
}

// writeFile writes content to a file
func (g *Generator) writeFile(filePath, content string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = file.WriteString(content)
	return err
}

// generateUpMigrationTemplate generates a template for up migration
func (g *Generator) generateUpMigrationTemplate(name string) string {
	return fmt.Sprintf(`-- Migration: %s
-- Created: %s
-- Description: Add description here

-- Add your SQL statements here

`, name, time.Now().Format("2006-01-02 15:04:05"))
}

// generateDownMigrationTemplate generates a template for down migration
func (g *Generator) generateDownMigrationTemplate(name string) string {
	return fmt.Sprintf(`-- Rollback Migration: %s
-- Created: %s
-- Description: Add rollback description here

-- Add your rollback SQL statements here

`, name, time.Now().Format("2006-01-02 15:04:05"))
}

// CreateTicketsTableMigration creates the initial tickets table migration pair
func (g *Generator) CreateTicketsTableMigration() error {
	g.logger.Infow("creating initial tickets table migration")

	// Use a fixed timestamp for the initial migration
	timestamp := "000001"
	name := "create_tickets_table"

	upFileName := fmt.Sprintf("%s_%s.up.sql", timestamp, name)
	downFileName := fmt.Sprintf("%s_%s.down.sql", timestamp, name)

	upFilePath := filepath.Join(g.scriptsPath, upFileName)
	downFilePath := filepath.Join(g.scriptsPath, downFileName)

	if err := os.MkdirAll(g.scriptsPath, 0755); err != nil {
		return fmt.Errorf("failed to create scripts directory: %w", err)
	}

	upContent := g.generateTicketsTableUpMigration()
	if err := g.writeFile(upFilePath, upContent); err != nil {
		return fmt.Errorf("failed to create tickets table up migration: %w", err)
	}

	downContent := g.generateTicketsTableDownMigration()
	if err := g.writeFile(downFilePath, downContent); err != nil {
		return fmt.Errorf("failed to create tickets table down migration: %w", err)
	}

	g.logger.Infow("tickets table migration created successfully",
		"up_file", upFilePath,
		"down_file", downFilePath)

	return nil
}

// generateTicketsTableUpMigration generates the up migration for the tickets table
func (g *Generator) generateTicketsTableUpMigration() string {
	return `-- Migration: Create tickets table
-- Created: Initial migration
-- Description: Create the tickets table with versioning and soft-delete fields

CREATE TABLE IF NOT EXISTS tickets (
    id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
    ` + "`date`" + ` VARCHAR(32) NOT NULL,
    issue TEXT NOT NULL,
    department VARCHAR(128),
    name VARCHAR(128),
    solution TEXT,
    remarks TEXT,
    ` + "`type`" + ` VARCHAR(64),
    version_ts BIGINT NOT NULL DEFAULT 0,
    version_str VARCHAR(32),
    is_deleted TINYINT(1) NOT NULL DEFAULT 0,
    deleted_at BIGINT NULL,
    created_at BIGINT NOT NULL,
    updated_at BIGINT NOT NULL,
    INDEX idx_tickets_active_date (is_deleted, ` + "`date`" + `),
    INDEX idx_tickets_trash_time (is_deleted, deleted_at),
    INDEX idx_tickets_type (` + "`type`" + `)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`
}

// generateTicketsTableDownMigration generates the down migration for the tickets table
func (g *Generator) generateTicketsTableDownMigration() string {
	return `-- Rollback Migration: Create tickets table
-- Created: Initial migration rollback
-- Description: Drop the tickets table

DROP TABLE IF EXISTS tickets;
`
}
