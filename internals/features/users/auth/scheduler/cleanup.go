package scheduler

import (
	"log"
	"os"
	"strconv"
	"time"

	"gorm.io/gorm"

	authRepo "teacha_backend/internals/features/users/auth/repository"
)

// StartTokenCleanupScheduler periodically drops expired blacklist entries and
// refresh tokens so the tables stay small.
func StartTokenCleanupScheduler(db *gorm.DB) {
	go func() {
		interval := 24 * time.Hour
		if val := os.Getenv("TOKEN_CLEANUP_INTERVAL_HOURS"); val != "" {
			if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
				interval = time.Duration(parsed) * time.Hour
			}
		}

		for {
			log.Println("[CLEANUP] pruning token_blacklist...")
			if n, err := authRepo.DeleteExpiredBlacklistEntries(db); err != nil {
				log.Printf("[CLEANUP ERROR] blacklist prune failed: %v", err)
			} else if n > 0 {
				log.Printf("[CLEANUP] %d expired blacklist entries removed", n)
			}

			log.Println("[CLEANUP] pruning refresh_tokens...")
			if n, err := authRepo.DeleteExpiredRefreshTokens(db); err != nil {
				log.Printf("[CLEANUP ERROR] refresh token prune failed: %v", err)
			} else if n > 0 {
				log.Printf("[CLEANUP] %d expired refresh tokens removed", n)
			}

			time.Sleep(interval)
		}
	}()
}
