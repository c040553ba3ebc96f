package domain

import "time"

// Slot names shared by plans, candidates, and the seed catalog.
const (
	SlotAnchor    = "anchor"
	SlotTop       = "top"
	SlotBottom    = "bottom"
	SlotDress     = "dress"
	SlotShoe      = "shoe"
	SlotAccessory = "accessory"
)

// SlotConstraint narrows what may fill a single outfit slot.
type SlotConstraint struct {
	Keywords        []string `json:"keywords,omitempty"`
	Colors          []string `json:"colors,omitempty"`
	BannedMaterials []string `json:"banned_materials,omitempty"`
	MinPrice        float64  `json:"min_price,omitempty"`
	MaxPrice        float64  `json:"max_price,omitempty"`
}

// StylePlan is the immutable look request. It is owned by its Job and is
// never mutated after submission.
type StylePlan struct {
	LookID        string                    `json:"look_id"`
	Aesthetic     string                    `json:"aesthetic"`
	Slots         []string                  `json:"slots"`
	Constraints   map[string]SlotConstraint `json:"constraints,omitempty"`
	Budget        float64                   `json:"budget"`
	Currency      string                    `json:"currency"`
	BudgetSplit   map[string]float64        `json:"budget_split,omitempty"`
	Retailers     []string                  `json:"retailers,omitempty"`
	Providers     []string                  `json:"providers,omitempty"`
	Queries       map[string]string         `json:"queries"`
	StretchBudget bool                      `json:"stretch_budget,omitempty"`
	Region        string                    `json:"region,omitempty"`
	Preferences   map[string]string         `json:"preferences,omitempty"`
}

// JobStatus enumerates look job lifecycle states.
type JobStatus string

const (
	JobStatusQueued   JobStatus = "queued"
	JobStatusRunning  JobStatus = "running"
	JobStatusComplete JobStatus = "complete"
	JobStatusPartial  JobStatus = "partial"
	JobStatusFailed   JobStatus = "failed"
)

// Terminal reports whether a status will not change again on its own.
// Partial is re-entrant: a stalled job parked in partial may be restarted.
func (s JobStatus) Terminal() bool {
	return s == JobStatusComplete || s == JobStatusPartial || s == JobStatusFailed
}

// JobError records a single absorbed provider failure.
type JobError struct {
	Retailer string `json:"retailer"`
	Slot     string `json:"slot"`
	Message  string `json:"message"`
}

// Job is the mutable unit of work tracked by the look store. Only the look
// worker mutates it; the store itself never inspects plan contents.
type Job struct {
	ID        string         `json:"id"`
	Status    JobStatus      `json:"status"`
	Progress  map[string]int `json:"progress"`
	Errors    []JobError     `json:"errors"`
	Logs      []string       `json:"logs"`
	Plan      *StylePlan     `json:"-"`
	Result    *LookResult    `json:"result"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// SlotPick is one resolved outfit slot: a primary product plus an optional
// alternate when the candidate pool offered one.
type SlotPick struct {
	Slot      string   `json:"slot"`
	Primary   Product  `json:"primary"`
	Alternate *Product `json:"alternate,omitempty"`
}

// LookResult is the outcome attached to a job and the fingerprint cache.
// Immutable once written.
type LookResult struct {
	LookID       string     `json:"look_id"`
	Status       JobStatus  `json:"status"`
	Message      string     `json:"message"`
	Slots        []SlotPick `json:"slots"`
	TotalPrice   *float64   `json:"total_price"`
	Currency     string     `json:"currency"`
	MissingSlots []string   `json:"missing_slots"`
	Note         string     `json:"note,omitempty"`
}
