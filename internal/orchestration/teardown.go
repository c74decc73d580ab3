package orchestration

import (
	"context"
	"fmt"

	"github.com/genomix-mpc/genomix/internal/study"
	"github.com/genomix-mpc/genomix/internal/util/async"
	"github.com/genomix-mpc/genomix/internal/util/naming"
	"github.com/genomix-mpc/genomix/internal/util/retry"
)

// Restart returns a study to its pre-protocol state: instances and the
// ingress firewall are removed, recorded keys and addresses are cleared, and
// every participant's status is reset. Networks, subnets, and peerings stay
// in place so the next setup run is fast.
func Restart(ctx *Context, studyID string) error {
	if err := ctx.loadStudy(studyID); err != nil {
		return err
	}
	s := ctx.State.Study

	projects := distinctProjects(ctx.State.Projects)
	tasks := make([]async.Task, 0, len(projects))
	for _, project := range projects {
		project := project
		tasks = append(tasks, async.Task{
			Name: fmt.Sprintf("restart %s", project),
			Func: func(_ context.Context) error {
				if err := deleteStudyInstances(ctx, project, s.ID); err != nil {
					return err
				}
				return ctx.Compute.DeleteFirewall(ctx, project)
			},
		})
	}
	if err := async.RunParallel(ctx, tasks); err != nil {
		return err
	}

	patch := study.Patch{
		Status:      make(map[string]string, len(s.Participants)),
		PublicKeys:  make(map[string]string, len(s.Participants)),
		IPAddresses: make(map[string]string, len(s.Participants)),
	}
	for _, participant := range s.Participants {
		patch.Status[participant] = study.StatusInitial
		patch.PublicKeys[participant] = ""
		patch.IPAddresses[participant] = ""
	}
	return applyPatch(ctx, studyID, patch)
}

// Delete tears down the study's entire cloud footprint, revokes its
// authentication keys, and removes the study record. The record survives in
// the archive; it is only dropped from the live collection once every
// project's teardown succeeded, so a partial failure can be retried.
func Delete(ctx *Context, studyID string) error {
	if err := ctx.loadStudy(studyID); err != nil {
		return err
	}
	s := ctx.State.Study

	projects := distinctProjects(ctx.State.Projects)
	tasks := make([]async.Task, 0, len(projects))
	for _, project := range projects {
		project := project
		tasks = append(tasks, async.Task{
			Name: fmt.Sprintf("teardown %s", project),
			Func: func(_ context.Context) error {
				return deleteProjectFootprint(ctx, project, s.ID)
			},
		})
	}
	if err := async.RunParallel(ctx, tasks); err != nil {
		return err
	}

	var authKeys []string
	for _, participant := range s.Participants {
		if key := s.Params(participant).AuthKey.Value; key != "" {
			authKeys = append(authKeys, key)
		}
	}
	if err := ctx.Store.DeleteAuthKeys(ctx, authKeys); err != nil {
		return err
	}
	return ctx.Store.Delete(ctx, studyID)
}

// Stop powers off the study's instances without touching any network
// resource or the study record.
func Stop(ctx *Context, studyID string) error {
	if err := ctx.loadStudy(studyID); err != nil {
		return err
	}
	s := ctx.State.Study

	tasks := make([]async.Task, 0, len(s.Participants))
	for _, participant := range s.Participants {
		role := s.Role(participant)
		project := ctx.State.Projects[role]
		if project == "" {
			continue
		}
		name := naming.Instance(s.ID, role)
		tasks = append(tasks, async.Task{
			Name: fmt.Sprintf("stop %s", name),
			Func: func(_ context.Context) error {
				return ctx.Compute.StopInstance(ctx, project, name)
			},
		})
	}
	return async.RunParallel(ctx, tasks)
}

// deleteStudyInstances removes every instance in the project that belongs
// to the study.
func deleteStudyInstances(ctx *Context, project, studyID string) error {
	instances, err := ctx.Compute.ListInstances(ctx, project, "")
	if err != nil {
		return err
	}
	for _, instance := range instances {
		if !naming.BelongsToStudy(instance.Name, studyID) {
			continue
		}
		ctx.Observer.Printf("deleting instance %s in %s", instance.Name, project)
		if err := ctx.Compute.DeleteInstance(ctx, project, instance.Name); err != nil {
			return err
		}
	}
	return nil
}

// deleteProjectFootprint unwinds one project in dependency order: instances
// first, then the firewall, subnets, peerings, and finally the network.
func deleteProjectFootprint(ctx *Context, project, studyID string) error {
	if err := deleteStudyInstances(ctx, project, studyID); err != nil {
		return err
	}
	if err := ctx.Compute.DeleteFirewall(ctx, project); err != nil {
		return err
	}

	subnets, err := ctx.Compute.ListSubnets(ctx, project)
	if err != nil {
		return err
	}
	for _, subnet := range subnets {
		err := retry.WithFixedBackoff(ctx, func() error {
			return ctx.Compute.DeleteSubnet(ctx, project, subnet.Name)
		}, ctx.Timeouts.SubnetDeleteAttempts, ctx.Timeouts.SubnetDeleteDelay)
		if err != nil {
			return err
		}
	}

	peerings, err := ctx.Compute.ListPeerings(ctx, project)
	if err != nil {
		return err
	}
	for _, peering := range peerings {
		err := retry.WithFixedBackoff(ctx, func() error {
			return ctx.Compute.RemovePeering(ctx, project, peering.Name)
		}, ctx.Timeouts.PeeringAttempts, ctx.Timeouts.PeeringDelay)
		if err != nil {
			return err
		}
	}

	return ctx.Compute.DeleteNetwork(ctx, project)
}
