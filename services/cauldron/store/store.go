// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package store persists finished solution tables in BadgerDB.
//
// # Key Layout
//
//	latest                      → run ID of the most recent save
//	run/<id>/meta               → JSON RunMeta
//	run/<id>/state/<00000>      → rendered path, e.g. "SENGENW"
//
// Only final tables are stored. Intermediate search state never is.
//
// # Thread Safety
//
// Store is safe for concurrent use; every operation runs in its own
// BadgerDB transaction.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/AleutianAI/cauldron/services/cauldron/action"
	"github.com/AleutianAI/cauldron/services/cauldron/liquid"
	"github.com/AleutianAI/cauldron/services/cauldron/solver"
	cbadger "github.com/AleutianAI/cauldron/services/cauldron/storage/badger"
)

var tracer = otel.Tracer("cauldron.store")

var (
	// ErrNoRuns is returned by Latest when nothing has been saved.
	ErrNoRuns = errors.New("no stored runs")

	// ErrRunNotFound is returned when a run ID has no metadata.
	ErrRunNotFound = errors.New("run not found")
)

const (
	latestKey = "latest"
	runPrefix = "run/"
)

func metaKey(id string) []byte {
	return []byte(runPrefix + id + "/meta")
}

func stateKey(id string, d liquid.Data) []byte {
	return []byte(runPrefix + id + "/state/" + d.String())
}

// RunMeta describes one saved table.
type RunMeta struct {
	ID        string      `json:"id"`
	CreatedAt time.Time   `json:"created_at"`
	Start     liquid.Data `json:"start"`
	Reached   int         `json:"reached"`
	MaxLength int         `json:"max_length"`
}

// Store reads and writes solution tables.
type Store struct {
	db     *cbadger.DB
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// New wraps an open database. A nil logger means slog.Default().
func New(db *cbadger.DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		db:     db,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// SaveTable writes every entry of t under a fresh run ID and makes that
// run the latest.
func (s *Store) SaveTable(ctx context.Context, t *solver.Table) (RunMeta, error) {
	meta := RunMeta{
		ID:        s.newID(),
		CreatedAt: s.now().UTC(),
		Start:     t.Start(),
		Reached:   t.Reached(),
		MaxLength: t.MaxLength(),
	}

	ctx, span := tracer.Start(ctx, "Store.SaveTable",
		trace.WithAttributes(
			attribute.String("run_id", meta.ID),
			attribute.Int("states", meta.Reached),
		),
	)
	defer span.End()

	rawMeta, err := json.Marshal(meta)
	if err != nil {
		return RunMeta{}, fmt.Errorf("encode run meta: %w", err)
	}

	err = s.db.WithTxn(ctx, func(txn *badger.Txn) error {
		var setErr error
		t.Each(func(d liquid.Data, p action.Path) {
			if setErr == nil {
				setErr = txn.Set(stateKey(meta.ID, d), []byte(action.Render(p)))
			}
		})
		if setErr != nil {
			return setErr
		}
		if err := txn.Set(metaKey(meta.ID), rawMeta); err != nil {
			return err
		}
		return txn.Set([]byte(latestKey), []byte(meta.ID))
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return RunMeta{}, fmt.Errorf("save run %s: %w", meta.ID, err)
	}

	s.logger.Info("stored solution table",
		slog.String("run_id", meta.ID),
		slog.Int("reached", meta.Reached),
	)
	return meta, nil
}

// Latest returns the metadata of the most recently saved run.
func (s *Store) Latest(ctx context.Context) (RunMeta, error) {
	ctx, span := tracer.Start(ctx, "Store.Latest")
	defer span.End()

	var meta RunMeta
	err := s.db.WithReadTxn(ctx, func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(latestKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNoRuns
		}
		if err != nil {
			return err
		}
		id, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		meta, err = readMeta(txn, string(id))
		return err
	})
	if err != nil {
		return RunMeta{}, err
	}
	return meta, nil
}

// Run returns the metadata of run id.
func (s *Store) Run(ctx context.Context, id string) (RunMeta, error) {
	var meta RunMeta
	err := s.db.WithReadTxn(ctx, func(txn *badger.Txn) error {
		var err error
		meta, err = readMeta(txn, id)
		return err
	})
	return meta, err
}

// Lookup returns the stored path for state in run id. ok is false when
// the run exists but the state was not reached.
func (s *Store) Lookup(ctx context.Context, id string, state liquid.Data) (action.Path, bool, error) {
	ctx, span := tracer.Start(ctx, "Store.Lookup",
		trace.WithAttributes(
			attribute.String("run_id", id),
			attribute.Int("state", int(state)),
		),
	)
	defer span.End()

	var (
		path  action.Path
		found bool
	)
	err := s.db.WithReadTxn(ctx, func(txn *badger.Txn) error {
		if _, err := readMeta(txn, id); err != nil {
			return err
		}
		item, err := txn.Get(stateKey(id, state))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		raw, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		path, err = action.Parse(string(raw))
		if err != nil {
			return fmt.Errorf("stored path for %s: %w", state, err)
		}
		found = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return path, found, nil
}

// ListRuns returns every stored run, oldest first.
func (s *Store) ListRuns(ctx context.Context) ([]RunMeta, error) {
	ctx, span := tracer.Start(ctx, "Store.ListRuns")
	defer span.End()

	var runs []RunMeta
	err := s.db.WithReadTxn(ctx, func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(runPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			if !strings.HasSuffix(string(item.Key()), "/meta") {
				continue
			}
			raw, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			var meta RunMeta
			if err := json.Unmarshal(raw, &meta); err != nil {
				return fmt.Errorf("decode run meta %s: %w", item.Key(), err)
			}
			runs = append(runs, meta)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(runs, func(a, b RunMeta) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	span.SetAttributes(attribute.Int("runs", len(runs)))
	return runs, nil
}

func readMeta(txn *badger.Txn, id string) (RunMeta, error) {
	item, err := txn.Get(metaKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return RunMeta{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return RunMeta{}, err
	}
	raw, err := item.ValueCopy(nil)
	if err != nil {
		return RunMeta{}, err
	}
	var meta RunMeta
	if err := json.Unmarshal(raw, &meta); err != nil {
		return RunMeta{}, fmt.Errorf("decode run meta %s: %w", id, err)
	}
	return meta, nil
}
