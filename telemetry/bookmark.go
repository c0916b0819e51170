package telemetry

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/warren/config"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkPredatorRecovery BookmarkType = "predator_recovery"
	BookmarkPreyCrash        BookmarkType = "prey_crash"
	BookmarkStableEcosystem  BookmarkType = "stable_ecosystem"
	BookmarkExtinction       BookmarkType = "extinction"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Step        int32        `csv:"step"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"step", b.Step,
		"description", b.Description,
	)
}

// BookmarkDetector detects interesting moments in the population history.
type BookmarkDetector struct {
	cfg config.BookmarksConfig

	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	// State tracking
	recentFoxMin       int  // minimum fox count since the last recovery
	recentRabbitPeak   int  // peak rabbit count since the last crash
	stableWindowsCount int  // consecutive windows with stable populations
	extinct            bool // extinction already reported
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int, cfg config.BookmarksConfig) *BookmarkDetector {
	if historySize < 5 {
		historySize = 5 // minimum for stable ecosystem detection
	}
	return &BookmarkDetector{
		cfg:          cfg,
		history:      make([]WindowStats, historySize),
		historySize:  historySize,
		recentFoxMin: -1,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if bd.historyFull || bd.historyIdx > 0 {
		if b := bd.checkPredatorRecovery(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
		if b := bd.checkPreyCrash(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}
	if b := bd.checkExtinction(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)

	if b := bd.checkStableEcosystem(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	if bd.recentFoxMin < 0 || stats.Foxes < bd.recentFoxMin {
		bd.recentFoxMin = stats.Foxes
	}
	if stats.Rabbits > bd.recentRabbitPeak {
		bd.recentRabbitPeak = stats.Rabbits
	}

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

// recent returns up to n most recent windows, oldest first.
func (bd *BookmarkDetector) recent(n int) []WindowStats {
	count := bd.historyIdx
	if bd.historyFull {
		count = bd.historySize
	}
	n = min(n, count)
	out := make([]WindowStats, 0, n)
	for i := n; i > 0; i-- {
		idx := (bd.historyIdx - i + bd.historySize) % bd.historySize
		out = append(out, bd.history[idx])
	}
	return out
}

func (bd *BookmarkDetector) checkPredatorRecovery(stats WindowStats) *Bookmark {
	cfg := bd.cfg.PredatorRecovery
	if bd.recentFoxMin <= 0 || bd.recentFoxMin > cfg.MinPopulation {
		return nil
	}

	threshold := bd.recentFoxMin * cfg.RecoveryMultiplier
	if stats.Foxes >= threshold && stats.Foxes >= cfg.MinFinal {
		oldMin := bd.recentFoxMin
		bd.recentFoxMin = stats.Foxes

		return &Bookmark{
			Type:        BookmarkPredatorRecovery,
			Step:        stats.WindowEndStep,
			Description: fmt.Sprintf("Fox population recovered from %d to %d", oldMin, stats.Foxes),
		}
	}

	return nil
}

func (bd *BookmarkDetector) checkPreyCrash(stats WindowStats) *Bookmark {
	cfg := bd.cfg.PreyCrash
	if bd.recentRabbitPeak == 0 {
		return nil
	}

	dropPercent := 1.0 - float64(stats.Rabbits)/float64(bd.recentRabbitPeak)
	if dropPercent > cfg.DropPercent && stats.Rabbits <= bd.recentRabbitPeak-cfg.MinDrop {
		oldPeak := bd.recentRabbitPeak
		bd.recentRabbitPeak = stats.Rabbits

		return &Bookmark{
			Type:        BookmarkPreyCrash,
			Step:        stats.WindowEndStep,
			Description: fmt.Sprintf("Rabbits crashed %.0f%% from peak %d to %d", dropPercent*100, oldPeak, stats.Rabbits),
		}
	}

	return nil
}

func (bd *BookmarkDetector) checkExtinction(stats WindowStats) *Bookmark {
	if bd.extinct || stats.Viable {
		return nil
	}
	bd.extinct = true
	return &Bookmark{
		Type:        BookmarkExtinction,
		Step:        stats.WindowEndStep,
		Description: fmt.Sprintf("Field no longer viable: %d rabbits, %d foxes", stats.Rabbits, stats.Foxes),
	}
}

// checkStableEcosystem fires once when both populations have held a low
// coefficient of variation over the configured number of windows.
func (bd *BookmarkDetector) checkStableEcosystem(stats WindowStats) *Bookmark {
	cfg := bd.cfg.StableEcosystem
	if stats.Rabbits < cfg.MinPrey || stats.Foxes < cfg.MinPred {
		bd.stableWindowsCount = 0
		return nil
	}

	window := bd.recent(4)
	if len(window) < 4 {
		return nil
	}

	rabbits := make([]float64, len(window))
	foxes := make([]float64, len(window))
	for i, h := range window {
		rabbits[i] = float64(h.Rabbits)
		foxes[i] = float64(h.Foxes)
	}

	if coefficientOfVariation(rabbits) < cfg.CVThreshold && coefficientOfVariation(foxes) < cfg.CVThreshold {
		bd.stableWindowsCount++
	} else {
		bd.stableWindowsCount = 0
	}

	if bd.stableWindowsCount == cfg.StableWindows {
		return &Bookmark{
			Type:        BookmarkStableEcosystem,
			Step:        stats.WindowEndStep,
			Description: fmt.Sprintf("Stable ecosystem with %d rabbits, %d foxes over %d windows", stats.Rabbits, stats.Foxes, cfg.StableWindows),
		}
	}

	return nil
}

func coefficientOfVariation(values []float64) float64 {
	mean, std := stat.PopMeanStdDev(values, nil)
	if mean == 0 {
		return 0
	}
	return std / mean
}
