package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/KNICEX/signal-tracker/internal/entity"
	"github.com/samber/lo"
)

// SignalStore 信号的唯一可信存储
// Every mutation is persisted as a full snapshot before it is acknowledged.
type SignalStore interface {
	Add(ctx context.Context, signal entity.Signal) (entity.Signal, error)
	Get(ctx context.Context, id int64) (entity.Signal, bool)
	List(ctx context.Context) []entity.Signal
	Update(ctx context.Context, signal entity.Signal) error
	Delete(ctx context.Context, id int64) (bool, error)
}

type snapshot struct {
	NextId  int64                   `json:"next_id"`
	Signals map[int64]entity.Signal `json:"signals"`
}

type fileStore struct {
	path string

	mu      sync.Mutex
	nextId  int64
	signals map[int64]entity.Signal
}

// NewSignalStore loads the snapshot at path. A missing file yields an empty
// store; a file that exists but cannot be parsed is a startup error.
func NewSignalStore(path string) (SignalStore, error) {
	st := &fileStore{
		path:    path,
		nextId:  1,
		signals: make(map[int64]entity.Signal),
	}
	if err := st.load(); err != nil {
		return nil, err
	}
	return st, nil
}

func (st *fileStore) load() error {
	data, err := os.ReadFile(st.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read signal snapshot %s: %w", st.path, err)
	}

	var snap snapshot
	if err = json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("parse signal snapshot %s: %w", st.path, err)
	}
	if snap.NextId > 0 {
		st.nextId = snap.NextId
	}
	if snap.Signals != nil {
		st.signals = snap.Signals
	}
	return nil
}

// save rewrites the whole snapshot, caller must hold st.mu.
// The temp-file/rename dance keeps the previous snapshot intact on a crash.
func (st *fileStore) save() error {
	data, err := json.MarshalIndent(snapshot{
		NextId:  st.nextId,
		Signals: st.signals,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal signal snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(st.path), ".signals-*.json")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err = tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err = os.Rename(tmp.Name(), st.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("replace snapshot %s: %w", st.path, err)
	}
	return nil
}

func (st *fileStore) Add(ctx context.Context, signal entity.Signal) (entity.Signal, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	signal.Id = st.nextId
	st.signals[signal.Id] = signal.Clone()
	st.nextId++

	if err := st.save(); err != nil {
		delete(st.signals, signal.Id)
		st.nextId--
		return entity.Signal{}, err
	}
	return signal, nil
}

func (st *fileStore) Get(ctx context.Context, id int64) (entity.Signal, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	signal, ok := st.signals[id]
	if !ok {
		return entity.Signal{}, false
	}
	return signal.Clone(), true
}

// List returns active signals first, then by ascending id.
func (st *fileStore) List(ctx context.Context) []entity.Signal {
	st.mu.Lock()
	defer st.mu.Unlock()

	signals := lo.MapToSlice(st.signals, func(_ int64, signal entity.Signal) entity.Signal {
		return signal.Clone()
	})
	sort.Slice(signals, func(i, j int) bool {
		if signals[i].Active != signals[j].Active {
			return signals[i].Active
		}
		return signals[i].Id < signals[j].Id
	})
	return signals
}

func (st *fileStore) Update(ctx context.Context, signal entity.Signal) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	prev, existed := st.signals[signal.Id]
	st.signals[signal.Id] = signal.Clone()

	if err := st.save(); err != nil {
		if existed {
			st.signals[signal.Id] = prev
		} else {
			delete(st.signals, signal.Id)
		}
		return err
	}
	return nil
}

func (st *fileStore) Delete(ctx context.Context, id int64) (bool, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	prev, ok := st.signals[id]
	if !ok {
		return false, nil
	}
	delete(st.signals, id)

	if err := st.save(); err != nil {
		st.signals[id] = prev
		return false, err
	}
	return true, nil
}
