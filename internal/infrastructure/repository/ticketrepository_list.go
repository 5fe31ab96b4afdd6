package repository

import (
	"context"
	"fmt"
	"strconv"

	"vetiver/internal/domain/ticket"
	"vetiver/internal/infrastructure/persistence/models"
	"vetiver/internal/shared/constants"
	"vetiver/internal/shared/db"
	"vetiver/internal/shared/keyset"
)

// List retrieves one page of tickets. With a cursor the page is bounded on
// the (sort key, id) composite, so concurrent inserts elsewhere in the range
// neither duplicate nor skip rows across page boundaries; without one,
// classic offset paging applies. Rows always come back in ascending
// sort-key order regardless of traversal direction.
func (r *TicketRepositoryImpl) List(ctx context.Context, q ticket.ListQuery) (*ticket.ListPage, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.TicketModel{}).Scopes(db.InState(q.Trash))

	// Active listings sort on the business date, trash listings on the
	// moment of deletion. Ties always break on id.
	sortKey := "`date`"
	if q.Trash {
		sortKey = "deleted_at"
	}

	if q.From != "" {
		query = query.Where("`date` >= ?", q.From)
	}
	if q.To != "" {
		query = query.Where("`date` <= ?", q.To)
	}
	if q.Type != "" {
		query = query.Where("`type` = ?", q.Type)
	}
	if q.Search != "" {
		query = query.Scopes(r.index.Scope(ctx, q.Search))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count tickets", "error", err)
		return nil, fmt.Errorf("failed to count tickets: %w", err)
	}

	cursor := q.Cursor
	var keyVal interface{}
	if cursor != nil {
		keyVal = cursor.Key
		if q.Trash {
			// Trash cursors carry deleted_at as a decimal millisecond
			// string; an unparsable key degrades to offset mode.
			ms, err := strconv.ParseInt(cursor.Key, 10, 64)
			if err != nil {
				cursor = nil
			} else {
				keyVal = ms
			}
		}
	}

	page := q.Page
	if page < 1 {
		page = constants.DefaultPage
	}
	pageSize := q.PageSize
	if pageSize < 1 {
		pageSize = constants.DefaultPageSize
	}

	if cursor != nil {
		if q.Direction == keyset.DirectionPrev {
			query = query.
				Where(fmt.Sprintf("%s < ? OR (%s = ? AND id < ?)", sortKey, sortKey), keyVal, keyVal, cursor.ID).
				Order(fmt.Sprintf("%s DESC, id DESC", sortKey))
		} else {
			query = query.
				Where(fmt.Sprintf("%s > ? OR (%s = ? AND id > ?)", sortKey, sortKey), keyVal, keyVal, cursor.ID).
				Order(fmt.Sprintf("%s ASC, id ASC", sortKey))
		}
		query = query.Limit(pageSize)
	} else {
		query = query.
			Order(fmt.Sprintf("%s ASC, id ASC", sortKey)).
			Offset((page - 1) * pageSize).
			Limit(pageSize)
	}

	var rows []models.TicketModel
	if err := query.Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list tickets", "error", err)
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}

	// Backward pages are fetched descending and flipped so the client sees
	// one consistent ascending order either way.
	if cursor != nil && q.Direction == keyset.DirectionPrev {
		reverseTicketRows(rows)
	}

	result := &ticket.ListPage{
		Items: r.mapper.ToEntities(rows),
		Total: total,
	}

	if len(rows) > 0 {
		first := &rows[0]
		last := &rows[len(rows)-1]
		result.PrevCursor = keyset.Encode(keyset.Cursor{Key: sortKeyValue(first, q.Trash), ID: first.ID})
		result.NextCursor = keyset.Encode(keyset.Cursor{Key: sortKeyValue(last, q.Trash), ID: last.ID})
	}

	return result, nil
}

// Stats aggregates record counts across the whole store: lifecycle totals,
// active records per type, and active records per calendar month.
func (r *TicketRepositoryImpl) Stats(ctx context.Context) (*ticket.Stats, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var total int64
	if err := tx.Model(&models.TicketModel{}).Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count tickets for stats", "error", err)
		return nil, fmt.Errorf("failed to count tickets: %w", err)
	}

	var deleted int64
	if err := tx.Model(&models.TicketModel{}).Scopes(db.Trashed()).Count(&deleted).Error; err != nil {
		r.logger.Errorw("failed to count trashed tickets for stats", "error", err)
		return nil, fmt.Errorf("failed to count trashed tickets: %w", err)
	}

	type bucket struct {
		Label string
		Count int64
	}

	var byType []bucket
	if err := tx.Model(&models.TicketModel{}).
		Scopes(db.Active()).
		Select("COALESCE(NULLIF(`type`, ''), 'unspecified') AS label, COUNT(*) AS count").
		Group("label").
		Order("COUNT(*) DESC").
		Find(&byType).Error; err != nil {
		r.logger.Errorw("failed to aggregate tickets by type", "error", err)
		return nil, fmt.Errorf("failed to aggregate tickets by type: %w", err)
	}

	// The date column leads with YYYY-MM, so the month bucket is a prefix.
	var byMonth []bucket
	if err := tx.Model(&models.TicketModel{}).
		Scopes(db.Active()).
		Select("SUBSTR(`date`, 1, 7) AS label, COUNT(*) AS count").
		Group("label").
		Order("label ASC").
		Find(&byMonth).Error; err != nil {
		r.logger.Errorw("failed to aggregate tickets by month", "error", err)
		return nil, fmt.Errorf("failed to aggregate tickets by month: %w", err)
	}

	stats := &ticket.Stats{
		Total:   total,
		Active:  total - deleted,
		Deleted: deleted,
		ByType:  make([]ticket.StatCount, len(byType)),
		ByMonth: make([]ticket.StatCount, len(byMonth)),
	}
	for i, b := range byType {
		stats.ByType[i] = ticket.StatCount{Label: b.Label, Count: b.Count}
	}
	for i, b := range byMonth {
		stats.ByMonth[i] = ticket.StatCount{Label: b.Label, Count: b.Count}
	}

	return stats, nil
}

// sortKeyValue renders the row's sort key for cursor encoding.
func sortKeyValue(m *models.TicketModel, trash bool) string {
	if trash {
		if m.DeletedAt == nil {
			return "0"
		}
		return strconv.FormatInt(*m.DeletedAt, 10)
	}
	return m.Date
}

func reverseTicketRows(rows []models.TicketModel) {
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
}
