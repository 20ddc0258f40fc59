package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/fasttrack/pkg/daylog"
	"tableflip.dev/fasttrack/pkg/entry"
)

// Persistence defines the persistence contract for tracker state. The tracker
// treats it as an external key-value blob store: load once, save best-effort.
type Persistence interface {
	Load(ctx context.Context) (*State, error)
	Save(s *State) error
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		Transform:    flatTransform,
		CacheSizeMax: 1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

// flatTransform stores every key at the root of the base path.
func flatTransform(string) []string { return []string{} }

func (p *persistence) readJSON(key string, target interface{}) (bool, error) {
	if !p.d.Has(key) {
		return false, nil
	}
	val, err := p.d.Read(key)
	if err != nil {
		return false, fmt.Errorf("store: read %s: %w", key, err)
	}
	if err := json.Unmarshal(val, target); err != nil {
		return false, fmt.Errorf("store: decode %s: %w", key, err)
	}
	return true, nil
}

func (p *persistence) writeJSON(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", key, err)
	}
	if err := p.d.Write(key, data); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func (p *persistence) Load(ctx context.Context) (*State, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s := NewState()

	var hours int
	if ok, err := p.readJSON(keyFastingWindowHours, &hours); err != nil {
		return nil, err
	} else if ok && hours > 0 {
		s.FastingWindowHours = hours
	}
	if ok, err := p.readJSON(keyEatingWindowHours, &hours); err != nil {
		return nil, err
	} else if ok && hours > 0 {
		s.EatingWindowHours = hours
	}

	var ts entry.Timestamp
	if ok, err := p.readJSON(keyFastingStartTime, &ts); err != nil {
		return nil, err
	} else if ok && !ts.IsZero() {
		start := ts
		s.FastingStartTime = &start
	}

	if _, err := p.readJSON(keyIsFasting, &s.IsFasting); err != nil {
		return nil, err
	}
	if _, err := p.readJSON(keyDailyWaterIntake, &s.DailyWaterIntake); err != nil {
		return nil, err
	}

	var target float64
	if ok, err := p.readJSON(keyDailyTarget, &target); err != nil {
		return nil, err
	} else if ok && target > 0 {
		s.DailyTarget = target
	}

	if _, err := p.readJSON(keyWaterEntries, &s.WaterEntries); err != nil {
		return nil, err
	}
	if _, err := p.readJSON(keyFastingHistory, &s.FastingHistory); err != nil {
		return nil, err
	}

	var logs []*daylog.Log
	ok, err := p.readJSON(keyDailyLogs, &logs)
	if err != nil {
		return nil, err
	}
	s.DailyLogs = logs
	s.HasDailyLogs = ok

	var reset entry.Timestamp
	if ok, err := p.readJSON(keyLastWaterReset, &reset); err != nil {
		return nil, err
	} else if ok && !reset.IsZero() {
		r := reset
		s.LastWaterReset = &r
	}

	return s, nil
}

func (p *persistence) Save(s *State) error {
	if s == nil {
		return fmt.Errorf("store: nil state")
	}
	if err := p.writeJSON(keyFastingWindowHours, s.FastingWindowHours); err != nil {
		return err
	}
	if err := p.writeJSON(keyEatingWindowHours, s.EatingWindowHours); err != nil {
		return err
	}
	if err := p.writeJSON(keyFastingStartTime, s.FastingStartTime); err != nil {
		return err
	}
	if err := p.writeJSON(keyIsFasting, s.IsFasting); err != nil {
		return err
	}
	if err := p.writeJSON(keyDailyWaterIntake, s.DailyWaterIntake); err != nil {
		return err
	}
	if err := p.writeJSON(keyDailyTarget, s.DailyTarget); err != nil {
		return err
	}
	if err := p.writeJSON(keyWaterEntries, s.WaterEntries); err != nil {
		return err
	}
	if err := p.writeJSON(keyFastingHistory, s.FastingHistory); err != nil {
		return err
	}
	if err := p.writeJSON(keyDailyLogs, s.DailyLogs); err != nil {
		return err
	}
	return p.writeJSON(keyLastWaterReset, s.LastWaterReset)
}
