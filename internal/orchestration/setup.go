package orchestration

import (
	"errors"
	"fmt"

	"github.com/genomix-mpc/genomix/internal/study"
)

// patchAttempts bounds retries when a write-back races another writer.
const patchAttempts = 3

// Setup provisions the full cloud footprint for a study: networks,
// firewall, role subnets, the peering mesh, and one instance per
// participant. Participants are marked as provisioning while the phases
// run. On success every participant is marked ready and their instance
// addresses are recorded; on failure the error is written to the study
// record before it is returned.
func Setup(ctx *Context, studyID string) error {
	if err := ctx.loadStudy(studyID); err != nil {
		return err
	}
	s := ctx.State.Study

	for _, participant := range s.Participants {
		if s.Params(participant).GCPProject.Value == "" {
			return fmt.Errorf("participant %s has no cloud project configured", participant)
		}
	}

	provisioning := study.Patch{Status: make(map[string]string, len(s.Participants))}
	for _, participant := range s.Participants {
		provisioning.Status[participant] = study.StatusProvisioning
	}
	if err := applyPatch(ctx, studyID, provisioning); err != nil {
		return err
	}

	phases := []Phase{
		networkPhase{},
		subnetPhase{},
		peeringPhase{},
		instancePhase{},
	}
	if err := RunPhases(ctx, phases); err != nil {
		markFailed(ctx, err)
		return err
	}

	return applyPatch(ctx, studyID, statusPatch(s, ctx.State.ExternalIPs))
}

// markFailed records a setup failure on every participant's status. The
// write is best effort; the provisioning error is what the caller sees.
func markFailed(ctx *Context, cause error) {
	s := ctx.State.Study
	if s == nil {
		return
	}
	patch := study.Patch{Status: make(map[string]string, len(s.Participants))}
	for _, participant := range s.Participants {
		patch.Status[participant] = study.StatusSetupFailed
	}
	if err := applyPatch(ctx, s.ID, patch); err != nil {
		ctx.Observer.Printf("failed to record setup failure (%v): %v", cause, err)
	}
}

// applyPatch applies a merge patch against the latest revision, re-reading
// and retrying when another writer got there first.
func applyPatch(ctx *Context, studyID string, patch study.Patch) error {
	var lastErr error
	for attempt := 0; attempt < patchAttempts; attempt++ {
		s, err := ctx.Store.Get(ctx, studyID)
		if err != nil {
			return err
		}
		if _, err := ctx.Store.Apply(ctx, studyID, s.Revision, patch); err != nil {
			if errors.Is(err, study.ErrRevisionConflict) {
				lastErr = err
				continue
			}
			return err
		}
		return nil
	}
	return fmt.Errorf("failed to update study %s: %w", studyID, lastErr)
}
