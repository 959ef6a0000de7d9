package analytics

import "time"

// Pointer helpers for the nullable fact columns.

func Float64(v float64) *float64 { return &v }

func Int(v int) *int { return &v }

func Time(t time.Time) *time.Time { return &t }
