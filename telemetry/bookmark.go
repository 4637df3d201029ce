package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkMergeCascade BookmarkType = "merge_cascade"
	BookmarkMassRunaway  BookmarkType = "mass_runaway"
	BookmarkBodyCrash    BookmarkType = "body_crash"
	BookmarkStableSystem BookmarkType = "stable_system"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int32        `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector detects interesting moments in the simulation.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	// State tracking
	recentBodyPeak     int  // peak body count in recent history
	runawayActive      bool // a runaway bookmark fired and has not cleared
	stableWindowsCount int  // consecutive quiet windows
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 5 {
		historySize = 5 // minimum for stable system detection
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if bd.historyFull || bd.historyIdx > 0 {
		// Merge cascade: merge rate > 2x rolling average
		if b := bd.checkMergeCascade(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}

		// Mass runaway: one body holds nearly all system mass
		if b := bd.checkMassRunaway(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}

		// Body crash: population dropped >30% from recent peak
		if b := bd.checkBodyCrash(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}

		// Stable system: multiple bodies with no contacts over 5+ windows
		if b := bd.checkStableSystem(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	// Update history
	bd.addToHistory(stats)

	// Track body count peak
	if stats.Bodies > bd.recentBodyPeak {
		bd.recentBodyPeak = stats.Bodies
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

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

func (bd *BookmarkDetector) checkMergeCascade(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var totalMerges int
	for _, h := range history {
		totalMerges += h.Merges
	}
	avgMerges := float64(totalMerges) / float64(len(history))
	if avgMerges == 0 {
		return nil
	}

	if float64(stats.Merges) > avgMerges*2.0 && stats.Merges >= 3 {
		return &Bookmark{
			Type:        BookmarkMergeCascade,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("%d merges is %.1fx average (%.1f)", stats.Merges, float64(stats.Merges)/avgMerges, avgMerges),
		}
	}

	return nil
}

func (bd *BookmarkDetector) checkMassRunaway(stats WindowStats) *Bookmark {
	if stats.Bodies < 2 || stats.TotalMass == 0 {
		bd.runawayActive = false
		return nil
	}

	share := stats.MassMax / stats.TotalMass
	if share < 0.9 {
		bd.runawayActive = false
		return nil
	}
	if bd.runawayActive {
		return nil // fire once per runaway episode
	}
	bd.runawayActive = true

	return &Bookmark{
		Type:        BookmarkMassRunaway,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Heaviest body holds %.0f%% of system mass across %d bodies", share*100, stats.Bodies),
	}
}

func (bd *BookmarkDetector) checkBodyCrash(stats WindowStats) *Bookmark {
	if bd.recentBodyPeak == 0 {
		return nil
	}

	dropPercent := 1.0 - float64(stats.Bodies)/float64(bd.recentBodyPeak)
	if dropPercent > 0.30 && stats.Bodies < bd.recentBodyPeak-5 {
		// Reset peak after crash
		oldPeak := bd.recentBodyPeak
		bd.recentBodyPeak = stats.Bodies

		return &Bookmark{
			Type:        BookmarkBodyCrash,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Bodies dropped %.0f%% from peak %d to %d", dropPercent*100, oldPeak, stats.Bodies),
		}
	}

	return nil
}

func (bd *BookmarkDetector) checkStableSystem(stats WindowStats) *Bookmark {
	// Need a populated, quiet system
	if stats.Bodies < 2 || stats.Contacts > 0 {
		bd.stableWindowsCount = 0
		return nil
	}

	bd.stableWindowsCount++

	if bd.stableWindowsCount == 5 { // trigger exactly once at 5 windows
		return &Bookmark{
			Type:        BookmarkStableSystem,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("%d bodies with no contacts over 5+ windows", stats.Bodies),
		}
	}

	return nil
}
