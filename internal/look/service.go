// Package look runs the generation pipeline end to end: plan intake,
// concurrent per-slot discovery, validation, assembly, and job bookkeeping.
package look

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"stylist/internal/domain"
	"stylist/internal/infra"
	"stylist/internal/lookstore"
	"stylist/internal/obs"
	"stylist/internal/outfit"
	"stylist/internal/providers/discovery"
	"stylist/internal/search"
	"stylist/internal/validate"
)

const (
	// DefaultStallAfter is how long a non-terminal job may sit without an
	// update before a poll marks it partial and restarts the worker.
	DefaultStallAfter = 2 * time.Second

	// defaultCandidateLimit caps what each adapter returns per slot.
	defaultCandidateLimit = 10

	// maxSlotWorkers bounds concurrent slot searches; the unified searcher
	// additionally bounds in-flight adapter calls.
	maxSlotWorkers = 3
)

// Archive persists finished looks outside the in-memory store. It is
// optional; the service runs without one.
type Archive interface {
	SaveLook(ctx context.Context, job *domain.Job, result *domain.LookResult) error
}

// Options configures a Service. Zero values fall back to defaults; only
// Store and Searcher are required.
type Options struct {
	Store      *lookstore.Store
	Cache      lookstore.ResultCache
	Searcher   *search.Unified
	Assembler  *outfit.Assembler
	Archive    Archive
	Logger     infra.Logger
	CacheTTL   time.Duration
	StallAfter time.Duration
}

// Service owns the look job lifecycle. Submit is the only way a job comes
// into being; Get is the only read path and doubles as the stall watchdog.
type Service struct {
	store      *lookstore.Store
	cache      lookstore.ResultCache
	searcher   *search.Unified
	assembler  *outfit.Assembler
	archive    Archive
	logger     infra.Logger
	cacheTTL   time.Duration
	stallAfter time.Duration

	mu       sync.Mutex
	inflight map[string]struct{}

	now func() time.Time
}

func NewService(opts Options) *Service {
	if opts.Cache == nil {
		opts.Cache = lookstore.NewMemoryCache()
	}
	if opts.Assembler == nil {
		opts.Assembler = outfit.NewAssembler(nil)
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = lookstore.DefaultCacheTTL
	}
	if opts.StallAfter <= 0 {
		opts.StallAfter = DefaultStallAfter
	}
	return &Service{
		store:      opts.Store,
		cache:      opts.Cache,
		searcher:   opts.Searcher,
		assembler:  opts.Assembler,
		archive:    opts.Archive,
		logger:     opts.Logger,
		cacheTTL:   opts.CacheTTL,
		stallAfter: opts.StallAfter,
		inflight:   make(map[string]struct{}),
		now:        time.Now,
	}
}

// Submit validates the plan, short-circuits on a fingerprint cache hit, and
// otherwise creates a queued job and starts the worker. The returned bool
// reports whether the result was served from cache.
//
// Two concurrent submissions with the same fingerprint arriving before
// either finishes may both spawn jobs; the cache is last-writer-wins. That
// race is accepted rather than closed with a lock around the whole pipeline.
func (s *Service) Submit(ctx context.Context, plan *domain.StylePlan) (*domain.Job, bool, error) {
	if err := checkPlan(plan); err != nil {
		return nil, false, err
	}
	if plan.LookID == "" {
		plan.LookID = uuid.NewString()
	}

	fp := lookstore.Fingerprint(plan)
	if cached, ok := s.cache.Get(fp); ok {
		obs.RecordCacheEvent("hit")
		if job, ok := s.store.Get(cached.LookID); ok {
			s.logger.Info().Str("job_id", job.ID).Msg("look: cache hit")
			return job, true, nil
		}
		// The original job was evicted; resurrect a terminal record under
		// its id so repeat polls keep working.
		plan.LookID = cached.LookID
		job := s.store.Create(plan)
		job, _ = s.store.Update(job.ID, func(j *domain.Job) {
			j.Status = cached.Status
			j.Result = cached
			j.Logs = append(j.Logs, "served from fingerprint cache")
		})
		s.logger.Info().Str("job_id", job.ID).Msg("look: cache hit, job restored")
		return job, true, nil
	}
	obs.RecordCacheEvent("miss")

	job := s.store.Create(plan)
	s.logger.Info().
		Str("job_id", job.ID).
		Int("slots", len(plan.Slots)).
		Float64("budget", plan.Budget).
		Msg("look: job queued")
	s.start(job.ID)
	return job, false, nil
}

// Get returns the job and restarts it when it appears stalled: non-terminal,
// no update for longer than the stall threshold, and no worker currently
// holding the in-flight flag. The restart is idempotent; already-collected
// progress and error records are kept.
func (s *Service) Get(id string) (*domain.Job, error) {
	job, ok := s.store.Get(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	if job.Status.Terminal() || s.now().Sub(job.UpdatedAt) <= s.stallAfter || s.isInflight(id) {
		return job, nil
	}
	job, ok = s.store.Update(id, func(j *domain.Job) {
		j.Status = domain.JobStatusPartial
		j.Logs = append(j.Logs, "stalled; restarting worker")
	})
	if !ok {
		return nil, domain.ErrNotFound
	}
	s.logger.Warn().Str("job_id", id).Msg("look: stalled, restarting")
	s.start(id)
	return job, nil
}

// start launches the worker goroutine unless one is already in flight for
// this job.
func (s *Service) start(id string) {
	s.mu.Lock()
	if _, running := s.inflight[id]; running {
		s.mu.Unlock()
		return
	}
	s.inflight[id] = struct{}{}
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.inflight, id)
			s.mu.Unlock()
		}()
		s.run(context.Background(), id)
	}()
}

func (s *Service) isInflight(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.inflight[id]
	return ok
}

// failureSet collapses identical provider failures observed across slots,
// so one broken adapter yields a single error record per run.
type failureSet struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func newFailureSet() *failureSet {
	return &failureSet{seen: make(map[string]struct{})}
}

func (f *failureSet) first(provider, message string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := provider + "\x00" + message
	if _, ok := f.seen[key]; ok {
		return false
	}
	f.seen[key] = struct{}{}
	return true
}

// run executes the pipeline for one job: search every slot concurrently,
// validate, assemble, and settle the terminal status. Provider failures are
// absorbed into the job's error trail; only the assembled outcome decides
// complete versus partial.
func (s *Service) run(ctx context.Context, id string) {
	ctx, span := obs.Tracer("stylist-worker").Start(ctx, "look.generate")
	span.SetAttributes(attribute.String("look.job_id", id))
	defer span.End()

	start := s.now()
	job, ok := s.store.Update(id, func(j *domain.Job) {
		j.Status = domain.JobStatusRunning
		j.Logs = append(j.Logs, "worker started")
	})
	if !ok {
		return
	}
	plan := job.Plan

	var (
		poolMu sync.Mutex
		pool   = make(map[string][]domain.Product, len(plan.Slots))
		fails  = newFailureSet()
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxSlotWorkers)
	for _, slot := range plan.Slots {
		g.Go(func() error {
			products := s.searchSlot(gctx, id, plan, slot, fails)
			poolMu.Lock()
			pool[slot] = products
			poolMu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	assembly := s.assembler.Assemble(plan, pool)
	status := domain.JobStatusComplete
	if len(assembly.MissingSlots) > 0 {
		status = domain.JobStatusPartial
	}
	result := &domain.LookResult{
		LookID:       plan.LookID,
		Status:       status,
		Message:      outfit.RenderText(assembly),
		Slots:        assembly.Slots,
		TotalPrice:   assembly.TotalPrice,
		Currency:     plan.Currency,
		MissingSlots: assembly.MissingSlots,
		Note:         assembly.Note,
	}

	job, ok = s.store.Update(id, func(j *domain.Job) {
		j.Status = status
		j.Result = result
		j.Logs = append(j.Logs, fmt.Sprintf("settled as %s with %d slots", status, len(result.Slots)))
	})
	if !ok {
		return
	}
	s.cache.Set(lookstore.Fingerprint(plan), result, s.cacheTTL)
	span.SetAttributes(attribute.String("look.status", string(status)))
	obs.RecordLookJob(string(status), start)

	if s.archive != nil {
		if err := s.archive.SaveLook(ctx, job, result); err != nil {
			s.logger.Warn().Err(err).Str("job_id", id).Msg("look: archive write failed")
		}
	}
	s.logger.Info().
		Str("job_id", id).
		Str("status", string(status)).
		Int("slots", len(result.Slots)).
		Strs("missing", result.MissingSlots).
		Msg("look: job settled")
}

// searchSlot fans one slot's query out, validates everything that comes
// back, and records progress and absorbed failures on the job. An adapter
// failing the same way on every slot is recorded once, against the slot
// that hit it first.
func (s *Service) searchSlot(ctx context.Context, id string, plan *domain.StylePlan, slot string, fails *failureSet) []domain.Product {
	constraint := plan.Constraints[slot]
	opts := discovery.Options{
		Limit:     defaultCandidateLimit,
		Region:    plan.Region,
		Currency:  plan.Currency,
		MaxPrice:  plan.Budget,
		Slot:      slot,
		Keywords:  constraint.Keywords,
		Retailers: plan.Retailers,
	}
	results := s.searcher.Search(ctx, slotQuery(plan, slot), plan.Providers, opts)

	var products []domain.Product
	for _, r := range results {
		if r.Err != nil {
			if fails.first(r.Provider, r.Err.Error()) {
				s.store.AppendError(id, domain.JobError{
					Retailer: r.Provider,
					Slot:     slot,
					Message:  r.Err.Error(),
				})
			}
			obs.RecordAdapterFailure(r.Provider)
			s.logger.Debug().
				Str("job_id", id).
				Str("slot", slot).
				Str("provider", r.Provider).
				Err(r.Err).
				Msg("look: adapter failed")
			continue
		}
		for _, c := range r.Candidates {
			if c.Slot == "" {
				c.Slot = slot
			}
			product, reason := validate.Validate(c)
			if reason != validate.ReasonAccepted {
				obs.RecordValidationRejection(string(reason))
				continue
			}
			products = append(products, product)
		}
	}
	s.store.SetProgress(id, slot, len(products))
	s.store.AppendLog(id, fmt.Sprintf("slot %s: %d valid candidates", slot, len(products)))
	return products
}

// slotQuery resolves the search query for a slot, falling back to the plan
// aesthetic when the planner supplied none.
func slotQuery(plan *domain.StylePlan, slot string) string {
	if q := strings.TrimSpace(plan.Queries[slot]); q != "" {
		return q
	}
	return strings.TrimSpace(plan.Aesthetic + " " + slot)
}

// checkPlan rejects structurally invalid plans before any job exists.
func checkPlan(plan *domain.StylePlan) error {
	if plan == nil {
		return fmt.Errorf("%w: nil plan", domain.ErrInvalidPlan)
	}
	if len(plan.Slots) == 0 {
		return fmt.Errorf("%w: no required slots", domain.ErrInvalidPlan)
	}
	if plan.Budget <= 0 {
		return fmt.Errorf("%w: budget must be positive", domain.ErrInvalidPlan)
	}
	if strings.TrimSpace(plan.Currency) == "" {
		return fmt.Errorf("%w: missing currency", domain.ErrInvalidPlan)
	}
	return nil
}
