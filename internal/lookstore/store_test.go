package lookstore

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"stylist/internal/domain"
)

func testPlan(lookID string) *domain.StylePlan {
	return &domain.StylePlan{
		LookID:   lookID,
		Slots:    []string{domain.SlotTop, domain.SlotShoe},
		Queries:  map[string]string{domain.SlotTop: "red silk blouse", domain.SlotShoe: "black heels"},
		Budget:   1500,
		Currency: "EUR",
		Region:   "NL",
	}
}

func TestCreateAndGet(t *testing.T) {
	s := New()
	job := s.Create(testPlan("look-1"))
	if job.Status != domain.JobStatusQueued {
		t.Fatalf("status = %q, want queued", job.Status)
	}
	got, ok := s.Get("look-1")
	if !ok {
		t.Fatalf("expected job to exist")
	}
	if got.ID != "look-1" {
		t.Fatalf("id = %q, want look-1", got.ID)
	}
	// The returned copy must not alias store state.
	got.Progress["top"] = 99
	fresh, _ := s.Get("look-1")
	if fresh.Progress["top"] == 99 {
		t.Fatalf("mutating a returned job leaked into the store")
	}
}

func TestUpdateAbsentIsNoop(t *testing.T) {
	s := New()
	if _, ok := s.Update("missing", func(j *domain.Job) { j.Status = domain.JobStatusFailed }); ok {
		t.Fatalf("update of absent job should report not found")
	}
	s.SetProgress("missing", "top", 3)
	s.AppendLog("missing", "ignored")
	s.AppendError("missing", domain.JobError{Message: "ignored"})
	if _, ok := s.Get("missing"); ok {
		t.Fatalf("mutators must not resurrect absent jobs")
	}
}

func TestUpdateRefreshesUpdatedAt(t *testing.T) {
	s := New()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }
	s.Create(testPlan("look-1"))
	s.now = func() time.Time { return base.Add(5 * time.Second) }
	job, ok := s.Update("look-1", func(j *domain.Job) { j.Status = domain.JobStatusRunning })
	if !ok {
		t.Fatalf("expected job")
	}
	if !job.UpdatedAt.Equal(base.Add(5 * time.Second)) {
		t.Fatalf("UpdatedAt = %v, want refreshed", job.UpdatedAt)
	}
}

func TestTrailCaps(t *testing.T) {
	s := New()
	s.Create(testPlan("look-1"))
	for i := 0; i < maxTrail+50; i++ {
		s.AppendLog("look-1", fmt.Sprintf("line %d", i))
		s.AppendError("look-1", domain.JobError{Slot: "top", Message: fmt.Sprintf("err %d", i)})
	}
	job, _ := s.Get("look-1")
	if len(job.Logs) != maxTrail {
		t.Fatalf("logs = %d entries, want %d", len(job.Logs), maxTrail)
	}
	if job.Logs[len(job.Logs)-1] != fmt.Sprintf("line %d", maxTrail+49) {
		t.Fatalf("expected most recent log last, got %q", job.Logs[len(job.Logs)-1])
	}
	if len(job.Errors) != maxTrail {
		t.Fatalf("errors = %d entries, want %d", len(job.Errors), maxTrail)
	}
}

func TestConcurrentProgress(t *testing.T) {
	s := New()
	s.Create(testPlan("look-1"))
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			s.SetProgress("look-1", "top", n)
			s.AppendLog("look-1", "progress")
		}(i)
	}
	wg.Wait()
	job, _ := s.Get("look-1")
	if len(job.Logs) != 32 {
		t.Fatalf("logs = %d, want 32", len(job.Logs))
	}
}

func TestFingerprintIgnoresLookID(t *testing.T) {
	a := testPlan("look-a")
	b := testPlan("look-b")
	if Fingerprint(a) != Fingerprint(b) {
		t.Fatalf("identical intent with different look ids must share a fingerprint")
	}
}

func TestFingerprintSensitivity(t *testing.T) {
	base := testPlan("look-1")
	cases := map[string]*domain.StylePlan{
		"query":    testPlan("look-1"),
		"budget":   testPlan("look-1"),
		"currency": testPlan("look-1"),
		"region":   testPlan("look-1"),
	}
	cases["query"].Queries[domain.SlotTop] = "green blouse"
	cases["budget"].Budget = 900
	cases["currency"].Currency = "USD"
	cases["region"].Region = "DE"
	for name, plan := range cases {
		if Fingerprint(plan) == Fingerprint(base) {
			t.Fatalf("changing %s must change the fingerprint", name)
		}
	}
}

func TestMemoryCacheTTL(t *testing.T) {
	c := NewMemoryCache()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }
	result := &domain.LookResult{LookID: "look-1", Status: domain.JobStatusComplete}
	c.Set("fp", result, time.Minute)

	if got, ok := c.Get("fp"); !ok || got.LookID != "look-1" {
		t.Fatalf("expected cached result before expiry")
	}
	c.now = func() time.Time { return base.Add(time.Minute + time.Second) }
	if _, ok := c.Get("fp"); ok {
		t.Fatalf("expired entry must not be returned")
	}
	// Expired entries are purged on read.
	c.mu.Lock()
	_, present := c.entries["fp"]
	c.mu.Unlock()
	if present {
		t.Fatalf("expired entry should have been purged")
	}
}

func TestMemoryCacheDefaultTTL(t *testing.T) {
	c := NewMemoryCache()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }
	c.Set("fp", &domain.LookResult{}, 0)
	c.now = func() time.Time { return base.Add(DefaultCacheTTL - time.Second) }
	if _, ok := c.Get("fp"); !ok {
		t.Fatalf("entry should live for the default TTL")
	}
	c.now = func() time.Time { return base.Add(DefaultCacheTTL + time.Second) }
	if _, ok := c.Get("fp"); ok {
		t.Fatalf("entry should expire after the default TTL")
	}
}
