package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/edguillen/research-digest/app/research"
	"github.com/edguillen/research-digest/app/store"
)

// Daily run records expire after two days, so the evening dedup only ever
// sees the same calendar day's morning run.
const dailyRecordTTL = 48 * time.Hour

// DailyRunRecord is one calendar date's worth of urgent items and run
// timestamps. The morning job writes the morning branch preserving any
// evening branch and vice versa.
type DailyRunRecord struct {
	Date               string                `json:"date"`
	MorningUrgentItems []research.UrgentItem `json:"morningUrgentItems"`
	EveningUrgentItems []research.UrgentItem `json:"eveningUrgentItems,omitempty"`
	LastMorningRun     *time.Time            `json:"lastMorningRun,omitempty"`
	LastEveningRun     *time.Time            `json:"lastEveningRun,omitempty"`
}

// DailyRunLedger keys records by local calendar date. The schedule is
// expected to run the morning job before the evening job on the same day;
// there is no ordering guard beyond that operational precondition. An
// evening run without a morning record simply compares against nothing.
type DailyRunLedger struct {
	store store.Store
}

func NewDailyRunLedger(s store.Store) *DailyRunLedger {
	return &DailyRunLedger{store: s}
}

func todayKey() string {
	return "research_urgent_" + time.Now().Format("2006-01-02")
}

func (l *DailyRunLedger) load(ctx context.Context) (*DailyRunRecord, error) {
	raw, found, err := l.store.Get(ctx, todayKey())
	if err != nil {
		return nil, fmt.Errorf("failed to load daily record: %w", err)
	}
	if !found {
		return nil, nil
	}

	var record DailyRunRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, fmt.Errorf("failed to decode daily record: %w", err)
	}

	return &record, nil
}

func (l *DailyRunLedger) save(ctx context.Context, record DailyRunRecord) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode daily record: %w", err)
	}

	if err := l.store.Set(ctx, todayKey(), string(raw), dailyRecordTTL); err != nil {
		return fmt.Errorf("failed to save daily record: %w", err)
	}

	return nil
}

// SaveMorning overwrites the morning branch of today's record, preserving
// any evening branch already present, and stamps the morning run time.
func (l *DailyRunLedger) SaveMorning(ctx context.Context, items []research.UrgentItem) error {
	existing, err := l.load(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	record := DailyRunRecord{
		Date:               now.Format("2006-01-02"),
		MorningUrgentItems: items,
		LastMorningRun:     &now,
	}
	if existing != nil {
		record.EveningUrgentItems = existing.EveningUrgentItems
		record.LastEveningRun = existing.LastEveningRun
	}

	if err := l.save(ctx, record); err != nil {
		return err
	}

	slog.Info("Saved morning urgent items", "count", len(items))
	return nil
}

// LoadMorning returns today's morning items, empty when no record exists.
func (l *DailyRunLedger) LoadMorning(ctx context.Context) ([]research.UrgentItem, error) {
	record, err := l.load(ctx)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return []research.UrgentItem{}, nil
	}

	return record.MorningUrgentItems, nil
}

// SaveEvening writes the evening branch, preserving the morning branch,
// and stamps the evening run time.
func (l *DailyRunLedger) SaveEvening(ctx context.Context, items []research.UrgentItem) error {
	existing, err := l.load(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	record := DailyRunRecord{
		Date:               now.Format("2006-01-02"),
		MorningUrgentItems: []research.UrgentItem{},
		EveningUrgentItems: items,
		LastEveningRun:     &now,
	}
	if existing != nil {
		record.MorningUrgentItems = existing.MorningUrgentItems
		record.LastMorningRun = existing.LastMorningRun
	}

	if err := l.save(ctx, record); err != nil {
		return err
	}

	slog.Info("Saved evening urgent items", "count", len(items))
	return nil
}

// LastRunTimestamps returns today's run timestamps; either may be nil when
// that run has not yet happened.
func (l *DailyRunLedger) LastRunTimestamps(ctx context.Context) (morning, evening *time.Time, err error) {
	record, err := l.load(ctx)
	if err != nil {
		return nil, nil, err
	}
	if record == nil {
		return nil, nil, nil
	}

	return record.LastMorningRun, record.LastEveningRun, nil
}
