package util

import (
	"strconv"
	"testing"
	"time"
)

func TestParseTimeRFC3339(t *testing.T) {
	s := "2025-03-10T10:10:10Z"
	got, ok := ParseTime(s)
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.UTC().Format(time.RFC3339) != s {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseTimePlainDate(t *testing.T) {
	got, ok := ParseTime("2025-03-10")
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Year() != 2025 || got.Month() != time.March || got.Day() != 10 {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseTimeUnix(t *testing.T) {
	ts := time.Date(2025, 3, 10, 10, 10, 10, 0, time.UTC).Unix()
	got, ok := ParseTime(strconv.FormatInt(ts, 10))
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Unix() != ts {
		t.Fatalf("unexpected unix %v", got.Unix())
	}
}

func TestParseTimeDefault(t *testing.T) {
	def := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	got := ParseTimeDefault("", def)
	if !got.Equal(def) {
		t.Fatalf("expected default")
	}
}

func TestTruncatePeriodDaily(t *testing.T) {
	in := time.Date(2025, 3, 10, 17, 45, 3, 0, time.UTC)
	got := TruncatePeriod(in, "daily")
	want := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestTruncatePeriodWeeklyStartsMonday(t *testing.T) {
	// 2025-03-12 is a Wednesday; week starts 2025-03-10 (Monday)
	in := time.Date(2025, 3, 12, 8, 0, 0, 0, time.UTC)
	got := TruncatePeriod(in, "weekly")
	want := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	// A Monday truncates to itself
	if got2 := TruncatePeriod(want, "weekly"); !got2.Equal(want) {
		t.Fatalf("monday should be stable, got %v", got2)
	}
	// A Sunday belongs to the preceding Monday
	sun := time.Date(2025, 3, 16, 23, 59, 0, 0, time.UTC)
	if got3 := TruncatePeriod(sun, "weekly"); !got3.Equal(want) {
		t.Fatalf("sunday should fold back, got %v", got3)
	}
}

func TestTruncatePeriodMonthly(t *testing.T) {
	in := time.Date(2025, 3, 31, 23, 0, 0, 0, time.UTC)
	got := TruncatePeriod(in, "monthly")
	want := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestPeriodKey(t *testing.T) {
	ts := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	if k := PeriodKey(ts, "monthly"); k != "2025-03" {
		t.Fatalf("unexpected monthly key %q", k)
	}
	if k := PeriodKey(ts, "daily"); k != "2025-03-01" {
		t.Fatalf("unexpected daily key %q", k)
	}
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	b := a.AddDate(0, 0, 45)
	if d := DaysBetween(a, b); d != 45 {
		t.Fatalf("got %d want 45", d)
	}
	if d := DaysBetween(b, a); d != 0 {
		t.Fatalf("negative spans clamp to 0, got %d", d)
	}
}
