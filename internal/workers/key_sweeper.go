// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-forum/internal/logger"
	"github.com/MKhiriev/go-forum/internal/store"
)

// KeySweeper periodically deletes expired authentication keys.
type KeySweeper struct {
	authKeyRepository store.AuthKeyRepository
	interval          time.Duration

	now    func() time.Time
	logger *logger.Logger
}

func NewKeySweeper(authKeyRepository store.AuthKeyRepository, interval time.Duration, logger *logger.Logger) *KeySweeper {
	return &KeySweeper{
		authKeyRepository: authKeyRepository,
		interval:          interval,
		now:               time.Now,
		logger:            logger,
	}
}

// Run sweeps once immediately and then every interval until ctx is cancelled.
func (k *KeySweeper) Run(ctx context.Context) {
	k.logger.Info().Dur("interval", k.interval).Msg("key sweeper started")
	defer k.logger.Info().Msg("key sweeper stopped")

	ticker := time.NewTicker(k.interval)
	defer ticker.Stop()

	for {
		k.sweep(ctx)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if ctx.Err() != nil {
				return
			}
		}
	}
}

func (k *KeySweeper) sweep(ctx context.Context) {
	deleted, err := k.authKeyRepository.DeleteExpired(ctx, k.now())
	if err != nil {
		if ctx.Err() == nil {
			k.logger.Err(err).Str("func", "*KeySweeper.sweep").Msg("error deleting expired authentication keys")
		}
		return
	}
	if deleted > 0 {
		k.logger.Info().Int64("deleted", deleted).Msg("expired authentication keys deleted")
	}
}
