package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matheuskafuri/newsdesk/internal/cache"
	"github.com/matheuskafuri/newsdesk/internal/logger"
	"github.com/matheuskafuri/newsdesk/internal/query"
	"github.com/matheuskafuri/newsdesk/internal/tui"
)

func runTUI(cmd *cobra.Command, args []string) error {
	e, err := newEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	prefs, closePrefs := openPrefs(e.log)
	defer closePrefs()

	err = tui.Run(tui.RunOpts{
		Client:      e.client,
		Prefs:       prefs,
		Logger:      e.log,
		Query:       query.Values(flagQuery),
		PageSize:    e.cfg.PageSize,
		TopKeywords: e.cfg.TopKeywords,
		TrendDays:   e.cfg.TrendDays,
	})
	if err != nil {
		return fmt.Errorf("running reader: %w", err)
	}
	return nil
}

// openPrefs opens the preference database, falling back to an in-memory
// store so the reader still starts when the data dir is not writable.
func openPrefs(log logger.Logger) (cache.PrefStore, func()) {
	db, err := cache.Open(cache.DefaultPath())
	if err != nil {
		log.Warn("preferences unavailable, theme will not persist", logger.Error(err))
		return &cache.MemoryStore{}, func() {}
	}
	return db, func() { db.Close() }
}
