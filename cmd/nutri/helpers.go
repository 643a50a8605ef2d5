package nutri

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Snape93/nutrition-sub006/internal/app"
	"github.com/Snape93/nutrition-sub006/internal/cache"
	"github.com/Snape93/nutrition-sub006/internal/config"
	"github.com/Snape93/nutrition-sub006/internal/profile"
	"github.com/Snape93/nutrition-sub006/internal/progress"
	"github.com/Snape93/nutrition-sub006/internal/remote"
)

// appContext is the composition root: one repository and one aggregator
// instance wired from config, shared by whatever the command runs.
type appContext struct {
	repo       *profile.Repository
	aggregator *progress.Aggregator
	client     *remote.Client
	userID     string
}

func withApp(run func(*appContext) error) error {
	cfg := config.Load()

	path := dbPath
	if path == "" {
		path = cfg.DBPath
	}
	if path == "" {
		resolved, err := app.DefaultDBPath()
		if err != nil {
			return err
		}
		path = resolved
	}
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	sqldb, err := cache.Open(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()
	if err := cache.ApplyMigrations(sqldb); err != nil {
		return err
	}

	client := &remote.Client{
		BaseURL: cfg.RemoteBaseURL,
		APIKey:  cfg.CatalogAPIKey,
		HTTPClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
	logger := log.New(os.Stderr, "nutri: ", log.LstdFlags)
	repo := profile.New(cache.NewStore(sqldb), client, logger)
	aggregator := progress.NewAggregator(repo, progress.NoSteps{}, logger)

	ctx := &appContext{
		repo:       repo,
		aggregator: aggregator,
		client:     client,
		userID:     resolveUserID(),
	}
	runErr := run(ctx)
	// Let background remote writes drain before the process exits.
	repo.Wait()
	return runErr
}

func resolveUserID() string {
	if userID != "" {
		return userID
	}
	return os.Getenv("NUTRI_USER")
}

func requireUser(a *appContext) error {
	if a.userID == "" {
		return fmt.Errorf("user id is required (--user or NUTRI_USER)")
	}
	return nil
}

func parseDateOrNow(date string) (time.Time, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return time.Now(), nil
	}
	t, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", date)
	}
	return t, nil
}

func parseDate(name, date string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(date), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s %q (expected YYYY-MM-DD)", name, date)
	}
	return t, nil
}
