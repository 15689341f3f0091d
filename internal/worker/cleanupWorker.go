package worker

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nrandle/image-downloader/internal/database"
)

// TokenCleanupWorker expires unredeemed CSV preparation tokens.
type TokenCleanupWorker struct {
	tokens   database.TokenStore
	interval time.Duration
}

func NewTokenCleanupWorker(tokens database.TokenStore, interval time.Duration) *TokenCleanupWorker {
	return &TokenCleanupWorker{
		tokens:   tokens,
		interval: interval,
	}
}

func (w *TokenCleanupWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logrus.Info("Token cleanup worker started")

	for {
		select {
		case <-ctx.Done():
			logrus.Info("Token cleanup worker stopped")
			return
		case <-ticker.C:
			if removed := w.tokens.Cleanup(); removed > 0 {
				logrus.Infof("Expired %d stale preparation token(s)", removed)
			}
		}
	}
}
