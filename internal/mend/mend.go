// Package mend turns an analysis report into fixes: inferred props for
// interface declarations, missing type files from templates, and handler
// stubs for components.
package mend

import (
	"fmt"
	"strings"

	"typemend/internal/fix"
)

// Phase identifies one of the three fixing passes.
type Phase uint8

const (
	PhaseInterfaces Phase = iota
	PhaseTemplates
	PhaseStubs
)

var phaseNames = [...]string{
	PhaseInterfaces: "interfaces",
	PhaseTemplates:  "templates",
	PhaseStubs:      "stubs",
}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// Title is the heading printed above a phase's records.
func (p Phase) Title() string {
	switch p {
	case PhaseInterfaces:
		return "Phase 1: Adding Missing Props to Interfaces"
	case PhaseTemplates:
		return "Phase 2: Creating Missing Type Files"
	case PhaseStubs:
		return "Phase 3: Ensuring Function Declarations"
	default:
		return p.String()
	}
}

// Phases is a set of enabled phases.
type Phases uint8

// AllPhases enables every phase.
const AllPhases Phases = 1<<PhaseInterfaces | 1<<PhaseTemplates | 1<<PhaseStubs

// Has reports whether p is enabled.
func (s Phases) Has(p Phase) bool {
	return s&(1<<p) != 0
}

// ParsePhases parses a comma separated list such as "interfaces,stubs".
// An empty string enables every phase.
func ParsePhases(list string) (Phases, error) {
	if strings.TrimSpace(list) == "" {
		return AllPhases, nil
	}
	var s Phases
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(strings.ToLower(name))
		found := false
		for p, n := range phaseNames {
			if n == name {
				s |= 1 << p
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown phase %q (expected interfaces, templates or stubs)", name)
		}
	}
	return s, nil
}

// Status classifies a record.
type Status uint8

const (
	// StatusPlanned means a fix was produced.
	StatusPlanned Status = iota
	// StatusSkipped means there was nothing to do.
	StatusSkipped
	// StatusWarning means the item could not be handled automatically.
	StatusWarning
	// StatusError means a target file is missing.
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusPlanned:
		return "planned"
	case StatusSkipped:
		return "skipped"
	case StatusWarning:
		return "warning"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Record is one status line of the fix report.
type Record struct {
	Phase   Phase
	Status  Status
	Subject string
	Path    string
	Message string
	Items   []string
	FixID   string
}

// Plan is the set of fixes produced from one report, with a record for
// every item looked at.
type Plan struct {
	Fixes   []fix.Fix
	Records []Record
	// TemplateTargets is the number of configured template files.
	TemplateTargets int
}

func (p *Plan) add(r Record) {
	p.Records = append(p.Records, r)
}

// PhaseRecords returns the records of one phase in planning order.
func (p *Plan) PhaseRecords(phase Phase) []Record {
	out := make([]Record, 0)
	for _, r := range p.Records {
		if r.Phase == phase {
			out = append(out, r)
		}
	}
	return out
}

// Tally is the final summary of a run.
type Tally struct {
	PropsAdded       int
	StubsAdded       int
	TemplateTargets  int
	TemplatesCreated int
}

// Tally counts the planned records whose fix made it into cs.
func (p *Plan) Tally(cs *fix.Changeset) Tally {
	t := Tally{TemplateTargets: p.TemplateTargets}
	if cs == nil {
		return t
	}
	applied := make(map[string]bool, len(cs.Applied))
	for _, a := range cs.Applied {
		applied[a.ID] = true
	}
	for _, r := range p.Records {
		if r.Status != StatusPlanned || !applied[r.FixID] {
			continue
		}
		switch r.Phase {
		case PhaseInterfaces:
			t.PropsAdded += len(r.Items)
		case PhaseTemplates:
			t.TemplatesCreated++
		case PhaseStubs:
			t.StubsAdded += len(r.Items)
		}
	}
	return t
}
