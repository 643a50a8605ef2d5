// Package profile is the single access point for profile and log data.
// It reconciles the local sqlite cache against the remote authoritative
// service: cache-first reads, write-through cache updates with best-effort
// asynchronous remote writes, and synchronous remote confirmation for
// identity-sensitive operations.
package profile

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Snape93/nutrition-sub006/internal/metrics"
	"github.com/Snape93/nutrition-sub006/internal/model"
	"github.com/Snape93/nutrition-sub006/internal/remote"
	"github.com/google/uuid"
)

// backgroundTimeout bounds detached remote writes. Caller cancellation does
// not abort them; they run to completion or to this deadline.
const backgroundTimeout = 10 * time.Second

// Store is the local cache surface the repository needs.
type Store interface {
	UpsertUser(ctx context.Context, p model.UserProfile) error
	GetUser(ctx context.Context, id string) (model.UserProfile, bool, error)
	ApplyPatch(ctx context.Context, id string, patch model.ProfilePatch) (bool, error)
	DeleteUser(ctx context.Context, id string) error
	InsertLog(ctx context.Context, e model.LogEntry) (int64, error)
	QueryLogs(ctx context.Context, kind model.LogKind, userID string, start, end time.Time) ([]model.LogEntry, error)
	DeleteLog(ctx context.Context, kind model.LogKind, id int64) error
}

// Remote is the slice of the remote client the repository needs.
type Remote interface {
	GetUser(ctx context.Context, id string) (model.UserProfile, error)
	UpdateUser(ctx context.Context, id string, patch model.ProfilePatch) error
	UpdateCredentials(ctx context.Context, id string, patch remote.CredentialsPatch) error
	DeleteUser(ctx context.Context, id string) error
	PostLog(ctx context.Context, entry model.LogEntry) error
	GetLogs(ctx context.Context, kind model.LogKind, userID string, from, to time.Time) ([]model.LogEntry, error)
	CalculateDailyGoal(ctx context.Context, in remote.DailyGoalInput) (float64, error)
}

// Repository is constructed once by the composition root and injected into
// consumers.
type Repository struct {
	store  Store
	remote Remote
	logger *log.Logger

	wg sync.WaitGroup
}

func New(store Store, rc Remote, logger *log.Logger) *Repository {
	if logger == nil {
		logger = log.Default()
	}
	return &Repository{store: store, remote: rc, logger: logger}
}

// Wait blocks until all in-flight background writes have finished. Tests
// and shutdown paths use it; request paths never do.
func (r *Repository) Wait() {
	r.wg.Wait()
}

// GetUser resolves a profile cache-first. On a cache miss it queries the
// remote and populates the cache. Remote failure falls back to any cached
// copy; with neither, the result is ErrNotFound.
func (r *Repository) GetUser(ctx context.Context, id string) (model.UserProfile, error) {
	cached, found, err := r.store.GetUser(ctx, id)
	if err != nil {
		return model.UserProfile{}, err
	}
	if found {
		return cached, nil
	}

	fetched, err := r.remote.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, remote.ErrNotFound) {
			return model.UserProfile{}, err
		}
		r.logger.Printf("profile: remote read for %s failed, no cached copy: %v", id, err)
		return model.UserProfile{}, fmt.Errorf("get user %s: %w", id, remote.ErrNotFound)
	}
	if fetched.ID == "" {
		fetched.ID = id
	}
	if err := r.store.UpsertUser(ctx, fetched); err != nil {
		// Serving the result matters more than caching it.
		r.logger.Printf("profile: cache populate for %s failed: %v", id, err)
	}
	return fetched, nil
}

// UpdateProfile is write-through: the cache is updated synchronously and
// always succeeds for valid ids; the remote update happens in the
// background, best-effort, single attempt. When the patch touches goal
// inputs the daily calorie goal is recomputed before the method returns.
func (r *Repository) UpdateProfile(ctx context.Context, id string, patch model.ProfilePatch) error {
	found, err := r.store.ApplyPatch(ctx, id, patch)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("update user %s: %w", id, remote.ErrNotFound)
	}

	if patch.TouchesGoalInputs() {
		updated, found, err := r.store.GetUser(ctx, id)
		if err != nil {
			return err
		}
		if found {
			goal := r.DailyGoal(ctx, updated)
			patch.DailyCalorieGoal = &goal
			if _, err := r.store.ApplyPatch(ctx, id, model.ProfilePatch{DailyCalorieGoal: &goal}); err != nil {
				return err
			}
		}
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		bg, cancel := context.WithTimeout(context.Background(), backgroundTimeout)
		defer cancel()
		if err := r.remote.UpdateUser(bg, id, patch); err != nil {
			r.logger.Printf("profile: background update for %s failed: %v", id, err)
		}
	}()
	return nil
}

// DailyGoal resolves the daily calorie goal for a profile: the remote
// computation is the primary path, the local metrics engine the fallback.
// It never fails; a remote error is logged and the fallback value returned.
func (r *Repository) DailyGoal(ctx context.Context, p model.UserProfile) float64 {
	if p.Age != nil && p.Sex != nil && p.WeightKg != nil && p.HeightCm != nil &&
		p.ActivityLevel != nil && p.Goal != nil {
		goal, err := r.remote.CalculateDailyGoal(ctx, remote.DailyGoalInput{
			Age:           *p.Age,
			Sex:           *p.Sex,
			WeightKg:      *p.WeightKg,
			HeightCm:      *p.HeightCm,
			ActivityLevel: *p.ActivityLevel,
			Goal:          *p.Goal,
		})
		if err == nil {
			return goal
		}
		r.logger.Printf("profile: remote goal computation for %s failed, using local formula: %v", p.ID, err)
	}
	return metrics.DailyCalorieGoal(p)
}

// ChangeEmail is identity-sensitive: the remote must confirm before the
// cache is touched, and failure propagates to the caller.
func (r *Repository) ChangeEmail(ctx context.Context, id, email string) error {
	if err := r.remote.UpdateCredentials(ctx, id, remote.CredentialsPatch{Email: email}); err != nil {
		return err
	}
	cached, found, err := r.store.GetUser(ctx, id)
	if err != nil || !found {
		return err
	}
	cached.Email = email
	return r.store.UpsertUser(ctx, cached)
}

// ChangePassword is identity-sensitive; the password never lands in the
// local cache.
func (r *Repository) ChangePassword(ctx context.Context, id, password string) error {
	return r.remote.UpdateCredentials(ctx, id, remote.CredentialsPatch{Password: password})
}

// DeleteAccount is identity-sensitive: remote confirmation first, then the
// local cache is purged.
func (r *Repository) DeleteAccount(ctx context.Context, id string) error {
	if err := r.remote.DeleteUser(ctx, id); err != nil {
		return err
	}
	return r.store.DeleteUser(ctx, id)
}

// AppendLog persists the entry locally, then submits it to the remote in
// the background with no delivery guarantee. The returned id is the local
// one; the entry's generated client id travels with the remote submission.
func (r *Repository) AppendLog(ctx context.Context, entry model.LogEntry) (int64, error) {
	if entry.ClientID == "" {
		entry.ClientID = uuid.NewString()
	}
	id, err := r.store.InsertLog(ctx, entry)
	if err != nil {
		return 0, err
	}
	entry.ID = id

	r.wg.Add(1)
	go func(e model.LogEntry) {
		defer r.wg.Done()
		bg, cancel := context.WithTimeout(context.Background(), backgroundTimeout)
		defer cancel()
		if err := r.remote.PostLog(bg, e); err != nil {
			r.logger.Printf("profile: background %s log submit for %s failed: %v", e.Kind, e.UserID, err)
		}
	}(entry)
	return id, nil
}

// DeleteLog removes a local entry by id. The remote service has no
// delete endpoint for logs; removal applies to the cache only.
func (r *Repository) DeleteLog(ctx context.Context, kind model.LogKind, id int64) error {
	return r.store.DeleteLog(ctx, kind, id)
}

// QueryLogs prefers the remote, which is the source of truth for
// cross-device consistency, and degrades to the cache on remote failure.
// No data is an empty ordered slice, never an error.
func (r *Repository) QueryLogs(ctx context.Context, kind model.LogKind, userID string, start, end time.Time) ([]model.LogEntry, error) {
	entries, err := r.remote.GetLogs(ctx, kind, userID, start, end)
	if err == nil {
		return entries, nil
	}
	r.logger.Printf("profile: remote %s log query for %s failed, serving cache: %v", kind, userID, err)
	return r.store.QueryLogs(ctx, kind, userID, start, end)
}
