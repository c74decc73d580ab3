package orchestration

import (
	"context"

	"github.com/genomix-mpc/genomix/internal/config"
	"github.com/genomix-mpc/genomix/internal/platform/gcp"
	"github.com/genomix-mpc/genomix/internal/study"
)

// State holds the shared results of provisioning phases. It is progressively
// populated as each phase completes and is read by subsequent phases.
type State struct {
	// Study is the snapshot the run operates on.
	Study *study.Study

	// Projects is the role-indexed project list: the coordinating server's
	// project at index 0, then one project per participant.
	Projects []string

	// ExternalIPs maps participant IDs to the public addresses of their
	// instances, populated by the instance phase.
	ExternalIPs map[string]string
}

// NewState creates an empty provisioning state.
func NewState() *State {
	return &State{
		ExternalIPs: make(map[string]string),
	}
}

// Context wraps all dependencies and state needed for a lifecycle run.
type Context struct {
	context.Context
	Config   *config.Config
	Timeouts *config.Timeouts
	State    *State
	Compute  gcp.ComputeManager
	Store    study.Store
	Observer Observer
}

// NewContext creates a new orchestration context.
func NewContext(
	ctx context.Context,
	cfg *config.Config,
	compute gcp.ComputeManager,
	store study.Store,
) *Context {
	return &Context{
		Context:  ctx,
		Config:   cfg,
		Timeouts: config.LoadTimeouts(),
		State:    NewState(),
		Compute:  compute,
		Store:    store,
		Observer: NewLogObserver(),
	}
}

// loadStudy reads the study snapshot and derives the role-indexed project
// list.
func (ctx *Context) loadStudy(studyID string) error {
	s, err := ctx.Store.Get(ctx, studyID)
	if err != nil {
		return err
	}
	ctx.State.Study = s
	ctx.State.Projects = s.ProjectList(ctx.Config.ServerProject)
	return nil
}
