// Package policy defines the small capability every strategy
// implementation exposes — (Observation, PolicyConfig) -> Result — and
// a registry mapping (version, street) to the function that handles it.
package policy

import (
	"github.com/lox/huengine/internal/observation"
	"github.com/lox/huengine/internal/rationale"
)

// Result is what a policy function returns before the Suggest Service
// translates a size tag into a chip amount, enforces min-reopen, and
// clamps to the legal window.
type Result struct {
	Action    string
	Amount    *int
	SizeTag   string
	Rationale []rationale.Item
	Meta      map[string]any
}

// Func is the policy capability every strategy implements.
type Func func(obs observation.Observation, cfg observation.PolicyConfig) Result

// Registry dispatches by (version, street) to the function that
// handles it, per the "registry over inheritance" design note.
type Registry map[string]map[string]Func

// Get returns the function registered for (version, street), and
// whether one was found.
func (r Registry) Get(version, street string) (Func, bool) {
	byStreet, ok := r[version]
	if !ok {
		return nil, false
	}
	fn, ok := byStreet[street]
	return fn, ok
}

// Register adds fn under (version, street), creating the inner map on
// first use.
func (r Registry) Register(version, street string, fn Func) {
	byStreet, ok := r[version]
	if !ok {
		byStreet = make(map[string]Func)
		r[version] = byStreet
	}
	byStreet[street] = fn
}
