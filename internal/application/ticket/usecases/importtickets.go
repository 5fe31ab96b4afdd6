package usecases

import (
	"context"
	"fmt"
	"time"

	"vetiver/internal/application/ticket/dto"
	"vetiver/internal/domain/ticket"
	"vetiver/internal/infrastructure/cache"
	"vetiver/internal/shared/errors"
	"vetiver/internal/shared/logger"
)

// importChunkSize is the default and upper bound for rows per write
// statement. At a dozen columns per row this stays far below the engine's
// per-statement placeholder ceiling.
const importChunkSize = 500

type ImportTicketsCommand struct {
	Records []dto.ImportRecord
	DryRun  bool
}

type ImportTicketsResult struct {
	DryRun              bool `json:"dry_run"`
	Total               int  `json:"total"`
	Inserts             int  `json:"inserts"`
	Updates             int  `json:"updates"`
	Skips               int  `json:"skips"`
	SkippedNewerOrEqual int  `json:"skipped_newer_or_equal"`
	IndexRebuilt        bool `json:"index_rebuilt,omitempty"`
}

type importClass int

const (
	classInsert importClass = iota
	classUpdate
	classSkipNoVersion
	classSkipNewerOrEqual
)

type importRow struct {
	entity     *ticket.Ticket
	hasVersion bool
	class      importClass
}

// ImportTicketsUseCase reconciles an external record collection against the
// store with a never-downgrade guarantee: a record without version
// information can insert as new but never overwrites an existing row.
//
// Preview and apply share one classification pass over one version
// snapshot, so their counts agree on identical store state. Apply routes
// only insert- and update-classified rows to SQL; the write itself
// re-checks freshness inside the statement, closing the race between the
// snapshot read and the write.
type ImportTicketsUseCase struct {
	ticketRepo ticket.TicketRepository
	events     ticket.EventRepository
	txMgr      TransactionRunner
	index      SearchRebuilder
	statsCache cache.StatsCache
	chunkSize  int
	logger     logger.Interface
}

func NewImportTicketsUseCase(
	ticketRepo ticket.TicketRepository,
	events ticket.EventRepository,
	txMgr TransactionRunner,
	index SearchRebuilder,
	statsCache cache.StatsCache,
	chunkSize int,
	logger logger.Interface,
) *ImportTicketsUseCase {
	if chunkSize <= 0 || chunkSize > importChunkSize {
		chunkSize = importChunkSize
	}
	return &ImportTicketsUseCase{
		ticketRepo: ticketRepo,
		events:     events,
		txMgr:      txMgr,
		index:      index,
		statsCache: statsCache,
		chunkSize:  chunkSize,
		logger:     logger,
	}
}

func (uc *ImportTicketsUseCase) Execute(ctx context.Context, cmd ImportTicketsCommand) (*ImportTicketsResult, error) {
	result := &ImportTicketsResult{DryRun: cmd.DryRun, Total: len(cmd.Records)}
	if len(cmd.Records) == 0 {
		return result, nil
	}

	// Normalize and validate everything before touching storage; a single
	// bad record rejects the whole request.
	now := time.Now()
	rows := make([]importRow, 0, len(cmd.Records))
	ids := make([]uint, 0, len(cmd.Records))
	for i, rec := range cmd.Records {
		entity, err := buildImportTicket(rec, now)
		if err != nil {
			return nil, errors.NewValidationError(fmt.Sprintf("record %d: %v", i, err))
		}
		rows = append(rows, importRow{entity: entity, hasVersion: rec.Version.HasValue()})
		if entity.ID != 0 {
			ids = append(ids, entity.ID)
		}
	}

	stored, err := uc.ticketRepo.VersionsByID(ctx, ids)
	if err != nil {
		uc.logger.Errorw("failed to snapshot stored versions", "error", err)
		return nil, err
	}

	for i := range rows {
		rows[i].class = classifyImport(rows[i], stored)
		switch rows[i].class {
		case classInsert:
			result.Inserts++
		case classUpdate:
			result.Updates++
		case classSkipNoVersion:
			result.Skips++
		case classSkipNewerOrEqual:
			result.Skips++
			result.SkippedNewerOrEqual++
		}
	}

	if cmd.DryRun {
		uc.logger.Infow("import preview",
			"total", result.Total, "inserts", result.Inserts,
			"updates", result.Updates, "skips", result.Skips)
		return result, nil
	}

	if err := uc.applyRows(ctx, rows); err != nil {
		return nil, err
	}

	if result.Inserts+result.Updates > 0 {
		recordEvent(ctx, uc.events, uc.logger, nil, ticket.EventActionImport, map[string]any{
			"total":   result.Total,
			"inserts": result.Inserts,
			"updates": result.Updates,
			"skips":   result.Skips,
		})
		invalidateStats(ctx, uc.statsCache, uc.logger)
		result.IndexRebuilt = uc.rebuildIndex(ctx)
	}

	uc.logger.Infow("import applied",
		"total", result.Total, "inserts", result.Inserts,
		"updates", result.Updates, "skips", result.Skips,
		"skipped_newer_or_equal", result.SkippedNewerOrEqual)
	return result, nil
}

// buildImportTicket normalizes one incoming record into a persistable
// entity. The version resolves to its numeric value here, so every row the
// writer sees carries a comparable version_ts; an unresolvable display
// string keeps TS zero and survives for the lexicographic fallback.
func buildImportTicket(rec dto.ImportRecord, now time.Time) (*ticket.Ticket, error) {
	t := &ticket.Ticket{
		ID:         rec.ID,
		Date:       rec.Date,
		Issue:      rec.Issue,
		Department: rec.Department,
		Name:       rec.Name,
		Solution:   rec.Solution,
		Remarks:    rec.Remarks,
		Type:       rec.Type,
		IsDeleted:  rec.IsDeleted,
		DeletedAt:  rec.DeletedAt,
	}

	if rec.Version.HasValue() {
		t.Version = ticket.Version{TS: rec.Version.Resolved(), Str: rec.Version.Str}.Clamp()
	} else {
		t.Version = ticket.MintVersion(now)
	}

	if !t.IsDeleted {
		t.DeletedAt = nil
	} else if t.DeletedAt == nil {
		deletedAt := t.Version.TS
		if deletedAt <= 0 {
			deletedAt = now.UnixMilli()
		}
		t.DeletedAt = &deletedAt
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func classifyImport(row importRow, stored map[uint]ticket.Version) importClass {
	if row.entity.ID == 0 {
		return classInsert
	}
	storedVersion, exists := stored[row.entity.ID]
	if !exists {
		return classInsert
	}
	if !row.hasVersion {
		return classSkipNoVersion
	}
	if row.entity.Version.NewerThan(storedVersion) {
		return classUpdate
	}
	return classSkipNewerOrEqual
}

// applyRows routes classified rows to the three write primitives. Skips
// never reach SQL, which keeps apply counts identical to preview counts.
func (uc *ImportTicketsUseCase) applyRows(ctx context.Context, rows []importRow) error {
	var creates, ignoring, upserts []*ticket.Ticket
	for _, row := range rows {
		switch row.class {
		case classInsert:
			switch {
			case row.entity.ID == 0:
				creates = append(creates, row.entity)
			case row.hasVersion:
				upserts = append(upserts, row.entity)
			default:
				// Version-less with an explicit id: insert-or-ignore, so a
				// row created concurrently under that id is never overwritten.
				ignoring = append(ignoring, row.entity)
			}
		case classUpdate:
			upserts = append(upserts, row.entity)
		}
	}

	if err := uc.writeChunks(ctx, creates, uc.ticketRepo.CreateBatch); err != nil {
		return err
	}
	if err := uc.writeChunks(ctx, ignoring, uc.ticketRepo.InsertIgnoring); err != nil {
		return err
	}
	return uc.writeChunks(ctx, upserts, uc.ticketRepo.UpsertIfNewer)
}

// writeChunks applies one write primitive in bounded chunks, each inside
// its own transaction. A failing chunk aborts the run; chunks already
// committed stay committed, and rerunning the same import is safe because
// applied rows reclassify as skips.
func (uc *ImportTicketsUseCase) writeChunks(ctx context.Context, rows []*ticket.Ticket, write func(context.Context, []*ticket.Ticket) error) error {
	for start := 0; start < len(rows); start += uc.chunkSize {
		end := start + uc.chunkSize
		if end > len(rows) {
			end = len(rows)
		}
		chunk := rows[start:end]

		err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
			return write(txCtx, chunk)
		})
		if err != nil {
			uc.logger.Errorw("import batch failed", "offset", start, "size", len(chunk), "error", err)
			return fmt.Errorf("import batch starting at record %d failed: %w", start, err)
		}
	}
	return nil
}

// rebuildIndex refreshes the search index after a mutating apply.
// Best-effort: the imported rows are already committed, so a rebuild
// failure is reported in the result rather than rolling anything back.
func (uc *ImportTicketsUseCase) rebuildIndex(ctx context.Context) bool {
	if uc.index == nil {
		return false
	}
	if err := uc.index.Rebuild(ctx); err != nil {
		uc.logger.Warnw("search index rebuild failed after import", "error", err)
		return false
	}
	return true
}
