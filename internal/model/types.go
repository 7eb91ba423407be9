// Package model defines shared data structures.
package model

import "time"

// Config defines practice settings.
type Config struct {
	SentencesPath string
	StatsPath     string
	History       bool
	HistoryPath   string
	LowFloor      int
}

// StatsRecord is the lifetime best/worst score document.
type StatsRecord struct {
	HighScore int `json:"high_score"`
	LowScore  int `json:"low_score"`
}

// HistoryConfig defines filters for the round history report.
type HistoryConfig struct {
	Since *time.Time
	Last  int
}

// RoundResult captures a completed typing round.
type RoundResult struct {
	ID         int64
	StartedAt  time.Time
	EndedAt    time.Time
	Target     string
	Chars      int
	DurationMs int64
	WPM        int
	NewHigh    bool
}
