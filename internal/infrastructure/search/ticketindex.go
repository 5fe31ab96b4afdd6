package search

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"gorm.io/gorm"

	"vetiver/internal/infrastructure/schema"
	"vetiver/internal/shared/constants"
	"vetiver/internal/shared/logger"
)

// likeEscaper neutralizes LIKE metacharacters in user-supplied terms. The
// escape character is '!' because its SQL literal is identical across
// dialects, unlike backslash.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// TicketIndex matches free-text search terms against the ticket text columns.
// It prefers the MySQL FULLTEXT index and degrades to substring matching when
// the index or the engine support is absent.
type TicketIndex struct {
	db       *gorm.DB
	detector *schema.Detector
	folder   cases.Caser
	logger   logger.Interface
}

// NewTicketIndex creates a ticket search index over the given connection.
func NewTicketIndex(db *gorm.DB, detector *schema.Detector) *TicketIndex {
	return &TicketIndex{
		db:       db,
		detector: detector,
		folder:   cases.Fold(),
		logger:   logger.NewLogger().With("component", "search.ticketindex"),
	}
}

// Scope returns a query scope restricting rows to those whose issue,
// solution, or remarks contain the term.
func (i *TicketIndex) Scope(ctx context.Context, term string) func(*gorm.DB) *gorm.DB {
	useFullText := false
	if caps, err := i.detector.Capabilities(ctx); err == nil {
		useFullText = caps.FullText
	} else {
		i.logger.Warnw("capability probe failed, falling back to substring search", "error", err)
	}

	if useFullText {
		return func(tx *gorm.DB) *gorm.DB {
			return tx.Where("MATCH(issue, solution, remarks) AGAINST(? IN NATURAL LANGUAGE MODE)", term)
		}
	}

	pattern := "%" + likeEscaper.Replace(i.folder.String(term)) + "%"
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where(
			"LOWER(issue) LIKE ? ESCAPE '!' OR LOWER(solution) LIKE ? ESCAPE '!' OR LOWER(remarks) LIKE ? ESCAPE '!'",
			pattern, pattern, pattern,
		)
	}
}

// Rebuild makes sure the full-text index exists after a bulk mutation.
// InnoDB maintains an existing FULLTEXT index incrementally, so the only
// work is creating a missing one; engines without FULLTEXT support no-op.
func (i *TicketIndex) Rebuild(ctx context.Context) error {
	if i.db.Dialector.Name() != "mysql" {
		return nil
	}

	caps, err := i.detector.Capabilities(ctx)
	if err != nil {
		return fmt.Errorf("failed to probe search capabilities: %w", err)
	}
	if caps.FullText {
		return nil
	}

	stmt := fmt.Sprintf("ALTER TABLE %s ADD FULLTEXT INDEX idx_tickets_search (issue, solution, remarks)", constants.TableTickets)
	if err := i.db.WithContext(ctx).Exec(stmt).Error; err != nil {
		return fmt.Errorf("failed to create full-text index: %w", err)
	}

	i.detector.Invalidate()
	i.logger.Infow("full-text index created")
	return nil
}
