// Package registry holds the in-memory collection of extracurricular
// activities and implements the signup/unregister rules.
//
// The registry is seeded once at construction and lives for the process
// lifetime; there is no persistence. All mutation goes through a single
// mutex so the membership check and the list update happen atomically.
package registry

import (
	"errors"
	"slices"
	"sync"
)

// Sentinel errors returned by Signup and Unregister. Handlers map these
// to HTTP status codes.
var (
	ErrActivityNotFound = errors.New("activity not found")
	ErrAlreadySignedUp  = errors.New("student is already signed up for this activity")
	ErrNotSignedUp      = errors.New("student is not signed up for this activity")
)

// Activity is a single extracurricular offering.
//
// MaxParticipants is advisory: it is reported to clients but never
// enforced against the participant list.
type Activity struct {
	Description     string   `json:"description" yaml:"description"`
	Schedule        string   `json:"schedule" yaml:"schedule"`
	MaxParticipants int      `json:"max_participants" yaml:"max_participants"`
	Participants    []string `json:"participants" yaml:"participants"`
}

// Registry maps activity names to their records. Activities are never
// created or deleted after construction; only participant lists change.
type Registry struct {
	activities map[string]*Activity
	mu         sync.Mutex
}

// New creates a Registry from the given seed. Participant slices are
// copied so callers cannot alias the registry's internal state.
func New(seed map[string]Activity) *Registry {
	activities := make(map[string]*Activity, len(seed))
	for name, act := range seed {
		a := act
		a.Participants = slices.Clone(act.Participants)
		if a.Participants == nil {
			a.Participants = []string{}
		}
		activities[name] = &a
	}
	return &Registry{activities: activities}
}

// List returns a snapshot of every activity keyed by name. The returned
// map and its participant slices are copies; mutating them has no effect
// on the registry.
func (r *Registry) List() map[string]Activity {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make(map[string]Activity, len(r.activities))
	for name, act := range r.activities {
		a := *act
		a.Participants = slices.Clone(act.Participants)
		result[name] = a
	}
	return result
}

// Signup adds email to the named activity's participant list, preserving
// signup order. Returns ErrActivityNotFound if the activity does not
// exist and ErrAlreadySignedUp if the email is already on the list.
func (r *Registry) Signup(activity, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	act, ok := r.activities[activity]
	if !ok {
		return ErrActivityNotFound
	}
	if slices.Contains(act.Participants, email) {
		return ErrAlreadySignedUp
	}
	act.Participants = append(act.Participants, email)
	return nil
}

// Unregister removes email from the named activity's participant list.
// Returns ErrActivityNotFound if the activity does not exist and
// ErrNotSignedUp if the email is not on the list.
func (r *Registry) Unregister(activity, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	act, ok := r.activities[activity]
	if !ok {
		return ErrActivityNotFound
	}
	i := slices.Index(act.Participants, email)
	if i < 0 {
		return ErrNotSignedUp
	}
	act.Participants = slices.Delete(act.Participants, i, i+1)
	return nil
}
