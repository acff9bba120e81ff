package main

import (
	"context"
	"testing"

	"cavegen/pkg/sims/caves"
)

func TestRunSeedStopsWhenScheduleFinishes(t *testing.T) {
	cfg := caves.DefaultConfig()
	cfg.Width, cfg.Height = 12, 10
	res, err := runSeed(context.Background(), "caves", cfg, 3, 100)
	if err != nil {
		t.Fatalf("runSeed: %v", err)
	}
	if res.gens != 6 || res.width != 96 || res.height != 80 {
		t.Fatalf("gens=%d size=%dx%d, want 6 at 96x80", res.gens, res.width, res.height)
	}
	if res.liveRatio < 0 || res.liveRatio > 1 {
		t.Fatalf("live ratio %f out of range", res.liveRatio)
	}
}

func TestRunSeedDetectsStableField(t *testing.T) {
	cfg := caves.DefaultConfig()
	cfg.Width, cfg.Height = 8, 8
	cfg.Schedule, _ = caves.ParseSchedule("bogus")
	res, err := runSeed(context.Background(), "caves", cfg, 1, 5)
	if err != nil {
		t.Fatalf("runSeed: %v", err)
	}
	// The first step empties the field; the second repeats it.
	if res.stableAt != 2 || res.liveRatio != 0 {
		t.Fatalf("stableAt=%d live=%f, want 2 and 0", res.stableAt, res.liveRatio)
	}
}

func TestRunSeedHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := runSeed(ctx, "life", caves.LifeConfig(), 1, 10); err == nil {
		t.Fatal("expected context error")
	}
}
