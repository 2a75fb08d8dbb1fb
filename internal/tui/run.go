package tui

import (
	"context"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/danieljhkim/scenable/internal/engine"
	"github.com/danieljhkim/scenable/internal/watch"
)

// Run starts the editor and blocks until the user quits. The manifest is
// watched for external changes while the editor runs.
func Run(ctx context.Context, eng *engine.Engine, logger *slog.Logger, opts ...tea.ProgramOption) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(New(ctx, eng), opts...)

	path, err := eng.ManifestPath()
	if err != nil {
		return err
	}

	w, err := watch.New(path, func(c watch.Change) {
		logger.Debug("manifest changed on disk", "op", c.Op.String(), "events", c.Events)
		p.Send(DiskChangedMsg{Change: c})
	}, &watch.Options{Logger: logger})
	if err != nil {
		logger.Warn("not watching scenery_packs.ini", "error", err)
	} else {
		defer w.Stop()
		if err := w.Start(ctx); err != nil {
			logger.Warn("not watching scenery_packs.ini", "error", err)
		}
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("editor failed: %w", err)
	}
	return nil
}
