package orchestration

import (
	"fmt"
)

// networkPhase ensures the study network and its ingress firewall exist in
// every participating project.
type networkPhase struct{}

func (networkPhase) Name() string { return "network" }

func (networkPhase) Run(ctx *Context) error {
	for _, project := range distinctProjects(ctx.State.Projects) {
		if _, err := ctx.Compute.EnsureNetwork(ctx, project); err != nil {
			return fmt.Errorf("project %s: %w", project, err)
		}
		if err := ctx.Compute.EnsureFirewall(ctx, project); err != nil {
			return fmt.Errorf("project %s: %w", project, err)
		}
		ctx.Observer.Printf("network ready in %s", project)
	}
	return nil
}

// distinctProjects deduplicates the role-indexed project list while keeping
// first-seen order. Roles may share a project when a participant hosts the
// coordinating server. A participant who has not configured a project yet
// contributes an empty entry, which has nothing to provision or tear down.
func distinctProjects(projects []string) []string {
	seen := make(map[string]struct{}, len(projects))
	var out []string
	for _, project := range projects {
		if project == "" {
			continue
		}
		if _, ok := seen[project]; ok {
			continue
		}
		seen[project] = struct{}{}
		out = append(out, project)
	}
	return out
}
