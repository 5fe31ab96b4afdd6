package usecases

import (
	"context"

	"vetiver/internal/domain/ticket"
	"vetiver/internal/shared/logger"
)

type mockTicketRepository struct {
	CreateFunc         func(ctx context.Context, t *ticket.Ticket) error
	GetByIDFunc        func(ctx context.Context, id uint) (*ticket.Ticket, error)
	UpdateFunc         func(ctx context.Context, t *ticket.Ticket, expected ticket.Version, force bool) error
	SoftDeleteFunc     func(ctx context.Context, id uint, v ticket.Version) error
	RestoreFunc        func(ctx context.Context, id uint, v ticket.Version) error
	PurgeFunc          func(ctx context.Context, id uint) error
	ListFunc           func(ctx context.Context, q ticket.ListQuery) (*ticket.ListPage, error)
	VersionsByIDFunc   func(ctx context.Context, ids []uint) (map[uint]ticket.Version, error)
	CreateBatchFunc    func(ctx context.Context, tickets []*ticket.Ticket) error
	UpsertIfNewerFunc  func(ctx context.Context, tickets []*ticket.Ticket) error
	InsertIgnoringFunc func(ctx context.Context, tickets []*ticket.Ticket) error
	StatsFunc          func(ctx context.Context) (*ticket.Stats, error)
}

func (m *mockTicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) GetByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockTicketRepository) Update(ctx context.Context, t *ticket.Ticket, expected ticket.Version, force bool) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, t, expected, force)
	}
	return nil
}

func (m *mockTicketRepository) SoftDelete(ctx context.Context, id uint, v ticket.Version) error {
	if m.SoftDeleteFunc != nil {
		return m.SoftDeleteFunc(ctx, id, v)
	}
	return nil
}

func (m *mockTicketRepository) Restore(ctx context.Context, id uint, v ticket.Version) error {
	if m.RestoreFunc != nil {
		return m.RestoreFunc(ctx, id, v)
	}
	return nil
}

func (m *mockTicketRepository) Purge(ctx context.Context, id uint) error {
	if m.PurgeFunc != nil {
		return m.PurgeFunc(ctx, id)
	}
	return nil
}

func (m *mockTicketRepository) List(ctx context.Context, q ticket.ListQuery) (*ticket.ListPage, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, q)
	}
	return nil, nil
}

func (m *mockTicketRepository) VersionsByID(ctx context.Context, ids []uint) (map[uint]ticket.Version, error) {
	if m.VersionsByIDFunc != nil {
		return m.VersionsByIDFunc(ctx, ids)
	}
	return map[uint]ticket.Version{}, nil
}

func (m *mockTicketRepository) CreateBatch(ctx context.Context, tickets []*ticket.Ticket) error {
	if m.CreateBatchFunc != nil {
		return m.CreateBatchFunc(ctx, tickets)
	}
	return nil
}

func (m *mockTicketRepository) UpsertIfNewer(ctx context.Context, tickets []*ticket.Ticket) error {
	if m.UpsertIfNewerFunc != nil {
		return m.UpsertIfNewerFunc(ctx, tickets)
	}
	return nil
}

func (m *mockTicketRepository) InsertIgnoring(ctx context.Context, tickets []*ticket.Ticket) error {
	if m.InsertIgnoringFunc != nil {
		return m.InsertIgnoringFunc(ctx, tickets)
	}
	return nil
}

func (m *mockTicketRepository) Stats(ctx context.Context) (*ticket.Stats, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx)
	}
	return nil, nil
}

type mockEventRepository struct {
	AppendFunc       func(ctx context.Context, e *ticket.Event) error
	ListByTicketFunc func(ctx context.Context, ticketID uint, limit int) ([]*ticket.Event, error)
}

func (m *mockEventRepository) Append(ctx context.Context, e *ticket.Event) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, e)
	}
	return nil
}

func (m *mockEventRepository) ListByTicket(ctx context.Context, ticketID uint, limit int) ([]*ticket.Event, error) {
	if m.ListByTicketFunc != nil {
		return m.ListByTicketFunc(ctx, ticketID, limit)
	}
	return nil, nil
}

type mockStatsCache struct {
	GetFunc        func(ctx context.Context) (*ticket.Stats, error)
	SetFunc        func(ctx context.Context, stats *ticket.Stats) error
	InvalidateFunc func(ctx context.Context) error
}

func (m *mockStatsCache) Get(ctx context.Context) (*ticket.Stats, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx)
	}
	return nil, nil
}

func (m *mockStatsCache) Set(ctx context.Context, stats *ticket.Stats) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, stats)
	}
	return nil
}

func (m *mockStatsCache) Invalidate(ctx context.Context) error {
	if m.InvalidateFunc != nil {
		return m.InvalidateFunc(ctx)
	}
	return nil
}

type mockTransactionRunner struct {
	RunInTransactionFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTransactionRunner) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTransactionFunc != nil {
		return m.RunInTransactionFunc(ctx, fn)
	}
	return fn(ctx)
}

type mockSearchRebuilder struct {
	RebuildFunc func(ctx context.Context) error
}

func (m *mockSearchRebuilder) Rebuild(ctx context.Context) error {
	if m.RebuildFunc != nil {
		return m.RebuildFunc(ctx)
	}
	return nil
}

type mockLogger struct {
	DebugFunc  func(msg string, args ...any)
	InfoFunc   func(msg string, args ...any)
	WarnFunc   func(msg string, args ...any)
	ErrorFunc  func(msg string, args ...any)
	FatalFunc  func(msg string, args ...any)
	InfowFunc  func(msg string, keysAndValues ...interface{})
	ErrorwFunc func(msg string, keysAndValues ...interface{})
	WarnwFunc  func(msg string, keysAndValues ...interface{})
	DebugwFunc func(msg string, keysAndValues ...interface{})
	FatalwFunc func(msg string, keysAndValues ...interface{})
	WithFunc   func(args ...any) interface{}
	NamedFunc  func(name string) interface{}
}

func (m *mockLogger) Debug(msg string, args ...any) {
	if m.DebugFunc != nil {
		m.DebugFunc(msg, args...)
	}
}

func (m *mockLogger) Info(msg string, args ...any) {
	if m.InfoFunc != nil {
		m.InfoFunc(msg, args...)
	}
}

func (m *mockLogger) Warn(msg string, args ...any) {
	if m.WarnFunc != nil {
		m.WarnFunc(msg, args...)
	}
}

func (m *mockLogger) Error(msg string, args ...any) {
	if m.ErrorFunc != nil {
		m.ErrorFunc(msg, args...)
	}
}

func (m *mockLogger) Fatal(msg string, args ...any) {
	if m.FatalFunc != nil {
		m.FatalFunc(msg, args...)
	}
}

func (m *mockLogger) With(args ...any) logger.Interface {
	if m.WithFunc != nil {
		if result, ok := m.WithFunc(args...).(logger.Interface); ok {
			return result
		}
	}
	return m
}

func (m *mockLogger) Named(name string) logger.Interface {
	if m.NamedFunc != nil {
		if result, ok := m.NamedFunc(name).(logger.Interface); ok {
			return result
		}
	}
	return m
}

func (m *mockLogger) Infow(msg string, keysAndValues ...interface{}) {
	if m.InfowFunc != nil {
		m.InfowFunc(msg, keysAndValues...)
	}
}

func (m *mockLogger) Errorw(msg string, keysAndValues ...interface{}) {
	if m.ErrorwFunc != nil {
		m.ErrorwFunc(msg, keysAndValues...)
	}
}

func (m *mockLogger) Warnw(msg string, keysAndValues ...interface{}) {
	if m.WarnwFunc != nil {
		m.WarnwFunc(msg, keysAndValues...)
	}
}

func (m *mockLogger) Debugw(msg string, keysAndValues ...interface{}) {
	if m.DebugwFunc != nil {
		m.DebugwFunc(msg, keysAndValues...)
	}
}

func (m *mockLogger) Fatalw(msg string, keysAndValues ...interface{}) {
	if m.FatalwFunc != nil {
		m.FatalwFunc(msg, keysAndValues...)
	}
}
