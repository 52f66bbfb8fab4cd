// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-fin-keeper/internal/adapter"
	"github.com/MKhiriev/go-fin-keeper/internal/codec"
	"github.com/MKhiriev/go-fin-keeper/internal/crypto"
	"github.com/MKhiriev/go-fin-keeper/internal/logger"
	"github.com/MKhiriev/go-fin-keeper/internal/store"
	"github.com/MKhiriev/go-fin-keeper/models"
)

// plaintextCheck stands in for the old key check of a rotation that starts
// from plaintext records.
const plaintextCheck = "plaintext"

type reKeyOrchestrator struct {
	keychain crypto.KeyChainService
	records  adapter.RecordStore
	ledger   store.RotationLedger
	codec    *codec.Codec
	ids      store.IDGenerator

	uploadConcurrency int

	logger *logger.Logger
}

// NewReKeyOrchestrator builds a [ReKeyOrchestrator]. It always decrypts with
// a strict copy of c: a record that does not open is an error, never a
// placeholder to upload. uploadConcurrency bounds the parallel uploads within
// one entity type; values below 1 mean sequential.
func NewReKeyOrchestrator(
	keychain crypto.KeyChainService,
	records adapter.RecordStore,
	ledger store.RotationLedger,
	c *codec.Codec,
	ids store.IDGenerator,
	uploadConcurrency int,
	logger *logger.Logger,
) ReKeyOrchestrator {
	if uploadConcurrency < 1 {
		uploadConcurrency = 1
	}
	return &reKeyOrchestrator{
		keychain:          keychain,
		records:           records,
		ledger:            ledger,
		codec:             c.Strict(),
		ids:               ids,
		uploadConcurrency: uploadConcurrency,
		logger:            logger,
	}
}

// rekeyItem is one record moving through the rotation.
type rekeyItem struct {
	entity models.EntityType
	id     string
	raw    models.Record
	plain  models.Record
	sealed models.Record

	// done is set when the record is already under the new key.
	done bool
	// heal is set when done was detected from the ciphertext rather than
	// the ledger, so the ledger entry must be written.
	heal bool
}

func (it *rekeyItem) key() models.EntityKey {
	return models.EntityKey{Type: it.entity, ID: it.id}
}

// rekeyRun is the per-call state of one rotation.
type rekeyRun struct {
	mu       sync.Mutex
	job      models.ReEncryptionJob
	progress ProgressFunc
}

func (r *rekeyRun) report(phase models.ReEncryptionPhase, current, total int, entity models.EntityType) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reportLocked(phase, current, total, entity)
}

func (r *rekeyRun) reportLocked(phase models.ReEncryptionPhase, current, total int, entity models.EntityType) {
	r.job.Phase = phase
	r.job.Current = current
	r.job.Total = total
	r.job.EntityType = entity
	if r.progress != nil {
		r.progress(r.job.Progress())
	}
}

// fail turns err into a *ReKeyError carrying the position of the failure and
// emits the error report.
func (r *rekeyRun) fail(err error, entity models.EntityType) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entity == "" {
		entity = r.job.EntityType
	}
	rkErr := &ReKeyError{
		Phase:      r.job.Phase,
		Current:    r.job.Current,
		Total:      r.job.Total,
		EntityType: entity,
		Err:        err,
	}
	r.job.Err = err
	r.reportLocked(models.PhaseError, r.job.Current, r.job.Total, entity)
	return rkErr
}

func (o *reKeyOrchestrator) ReEncryptAllData(ctx context.Context, req ReKeyRequest, progress ProgressFunc) (ReKeyResult, error) {
	run := &rekeyRun{job: models.ReEncryptionJob{ID: o.ids.Generate()}, progress: progress}
	log := &logger.Logger{Logger: o.logger.With().Str("job_id", run.job.ID).Int64("user_id", req.UserID).Logger()}
	log.Info().Str("func", "reKeyOrchestrator.ReEncryptAllData").Bool("from_plaintext", req.FromPlaintext).Msg("key rotation started")

	// deriving_keys
	run.report(models.PhaseDerivingKeys, 0, 1, "")
	oldKey, newKey, err := o.deriveKeys(req)
	if err != nil {
		return ReKeyResult{}, run.fail(err, "")
	}
	run.report(models.PhaseDerivingKeys, 1, 1, "")

	oldCheck := plaintextCheck
	if oldKey != nil {
		oldCheck = oldKey.Check()
	}
	rotation, resumed, err := o.ledger.StartRotation(ctx, req.UserID, oldCheck, newKey.Check())
	if err != nil {
		return ReKeyResult{}, run.fail(fmt.Errorf("start rotation: %w", err), "")
	}
	migrated := map[models.EntityKey]struct{}{}
	if resumed {
		if migrated, err = o.ledger.MigratedEntities(ctx, rotation.ID); err != nil {
			return ReKeyResult{}, run.fail(fmt.Errorf("load ledger: %w", err), "")
		}
		log.Info().Str("rotation_id", rotation.ID).Int("migrated", len(migrated)).Msg("resuming key rotation")
	}

	// fetching_data
	types := models.AllEntityTypes()
	byType := make(map[models.EntityType][]*rekeyItem, len(types))
	var items []*rekeyItem

	run.report(models.PhaseFetchingData, 0, len(types), "")
	for i, et := range types {
		if err = ctx.Err(); err != nil {
			return ReKeyResult{}, run.fail(err, et)
		}
		recs, err := o.records.List(ctx, et)
		if err != nil {
			return ReKeyResult{}, run.fail(fmt.Errorf("list %s: %w", et, err), et)
		}
		for _, rec := range recs {
			id, ok := rec.ID()
			if !ok {
				return ReKeyResult{}, run.fail(fmt.Errorf("%w: %s", ErrMissingRecordID, et), et)
			}
			it := &rekeyItem{entity: et, id: id, raw: rec}
			byType[et] = append(byType[et], it)
			items = append(items, it)
		}
		run.report(models.PhaseFetchingData, i+1, len(types), et)
	}
	total := len(items)

	// decrypting
	run.report(models.PhaseDecrypting, 0, total, "")
	for i, it := range items {
		if err = ctx.Err(); err != nil {
			return ReKeyResult{}, run.fail(err, it.entity)
		}
		_, ledgered := migrated[it.key()]
		if err = o.open(ctx, it, oldKey, newKey, ledgered); err != nil {
			log.Err(err).Str("func", "reKeyOrchestrator.ReEncryptAllData").Str("entity_type", it.entity.String()).Str("entity_id", it.id).Msg("record could not be decrypted")
			return ReKeyResult{}, run.fail(fmt.Errorf("decrypt %s %s: %w", it.entity, it.id, err), it.entity)
		}
		run.report(models.PhaseDecrypting, i+1, total, it.entity)
	}

	// re_encrypting
	run.report(models.PhaseReEncrypting, 0, total, "")
	for i, it := range items {
		if !it.done {
			if it.sealed, err = o.codec.ResealRecord(ctx, it.entity, it.raw, it.plain, newKey); err != nil {
				return ReKeyResult{}, run.fail(fmt.Errorf("encrypt %s %s: %w", it.entity, it.id, err), it.entity)
			}
		}
		run.report(models.PhaseReEncrypting, i+1, total, it.entity)
	}

	// uploading
	run.report(models.PhaseUploading, 0, total, "")
	for _, et := range types {
		if err = o.upload(ctx, run, rotation.ID, byType[et], total, log); err != nil {
			return ReKeyResult{}, run.fail(err, et)
		}
	}

	if err = o.ledger.SetStatus(ctx, rotation.ID, models.RotationDataMigrated); err != nil {
		return ReKeyResult{}, run.fail(fmt.Errorf("update rotation status: %w", err), "")
	}
	run.report(models.PhaseComplete, total, total, "")

	log.Info().
		Str("rotation_id", rotation.ID).
		Int("total", total).
		Int("migrated", run.job.Migrated).
		Int("resumed", run.job.Resumed).
		Msg("key rotation finished")

	return ReKeyResult{
		JobID:      run.job.ID,
		RotationID: rotation.ID,
		Total:      total,
		Migrated:   run.job.Migrated,
		Resumed:    run.job.Resumed,
		NewKey:     newKey,
	}, nil
}

func (o *reKeyOrchestrator) deriveKeys(req ReKeyRequest) (oldKey, newKey *crypto.Key, err error) {
	if len(req.Salt) == 0 {
		return nil, nil, ErrInvalidEncryptionSalt
	}

	newKey, err = o.keychain.DeriveKey(req.NewPassword, req.Salt)
	if err != nil {
		return nil, nil, fmt.Errorf("derive new key: %w", err)
	}
	if req.FromPlaintext {
		return nil, newKey, nil
	}

	oldKey, err = o.keychain.DeriveKey(req.OldPassword, req.Salt)
	if err != nil {
		return nil, nil, fmt.Errorf("derive old key: %w", err)
	}
	if oldKey.Equal(newKey) {
		return nil, nil, ErrSamePassword
	}
	return oldKey, newKey, nil
}

// open decrypts it into it.plain, or marks it done when its ciphertext
// already opens under newKey.
func (o *reKeyOrchestrator) open(ctx context.Context, it *rekeyItem, oldKey, newKey *crypto.Key, ledgered bool) error {
	if ledgered {
		if _, err := o.codec.DecryptRecord(ctx, it.entity, it.raw, newKey); err == nil {
			it.done = true
			return nil
		}
		// the ledger is ahead of the server; migrate the record again
		o.logger.Warn().Str("entity_type", it.entity.String()).Str("entity_id", it.id).Msg("ledgered record does not open with the new key")
	}

	if !codec.HasCiphertext(it.raw) {
		it.plain = it.raw
		return nil
	}

	var oldErr error
	if oldKey != nil {
		plain, err := o.codec.DecryptRecord(ctx, it.entity, it.raw, oldKey)
		if err == nil {
			it.plain = plain
			return nil
		}
		var decErr *codec.DecryptionErrors
		if !errors.As(err, &decErr) {
			return err
		}
		oldErr = err
	}

	// uploaded by an earlier run whose ledger write was lost
	if _, err := o.codec.DecryptRecord(ctx, it.entity, it.raw, newKey); err == nil {
		it.done = true
		it.heal = true
		return nil
	}

	if oldErr != nil {
		return oldErr
	}
	return ErrCiphertextWithoutKey
}

// upload sends the records of one entity type, at most uploadConcurrency at
// a time. A record counts as migrated only once Update succeeded.
func (o *reKeyOrchestrator) upload(ctx context.Context, run *rekeyRun, rotationID string, items []*rekeyItem, total int, log *logger.Logger) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.uploadConcurrency)

	for _, it := range items {
		it := it
		g.Go(func() error {
			if !it.done {
				if err := o.records.Update(gctx, it.entity, it.id, it.sealed); err != nil {
					return fmt.Errorf("upload %s %s: %w", it.entity, it.id, err)
				}
			}
			if !it.done || it.heal {
				if err := o.ledger.MarkMigrated(gctx, rotationID, it.key()); err != nil {
					// a rerun detects the record by its ciphertext
					log.Warn().Err(err).Str("entity_type", it.entity.String()).Str("entity_id", it.id).Msg("failed to record migrated entity")
				}
			}

			run.mu.Lock()
			if it.done {
				run.job.Resumed++
			} else {
				run.job.Migrated++
			}
			run.reportLocked(models.PhaseUploading, run.job.Current+1, total, it.entity)
			run.mu.Unlock()
			return nil
		})
	}
	return g.Wait()
}
