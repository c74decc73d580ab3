package orchestration

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"sync"
	"text/template"

	"github.com/genomix-mpc/genomix/internal/platform/gcp"
	"github.com/genomix-mpc/genomix/internal/study"
	"github.com/genomix-mpc/genomix/internal/util/async"
	"github.com/genomix-mpc/genomix/internal/util/naming"
	"github.com/genomix-mpc/genomix/internal/util/netutil"
)

// Instance sizing defaults when a participant left the knobs unset.
const (
	defaultNumCPUs        = 16
	defaultBootDiskSizeGB = 10
)

//go:embed scripts/startup.sh.tmpl
var startupScriptTemplate string

//go:embed scripts/validate.sh.tmpl
var validateScriptTemplate string

var (
	startupTemplate  = template.Must(template.New("startup").Parse(startupScriptTemplate))
	validateTemplate = template.Must(template.New("validate").Parse(validateScriptTemplate))
)

// instancePhase creates one protocol VM per participant, in parallel across
// projects, and records the external addresses for write-back.
type instancePhase struct{}

func (instancePhase) Name() string { return "instances" }

func (instancePhase) Run(ctx *Context) error {
	s := ctx.State.Study

	// One task per project: participants sharing a project are provisioned
	// sequentially so mutating calls against it never interleave.
	groups := make(map[string][]string)
	var order []string
	for _, participant := range s.Participants {
		project := ctx.State.Projects[s.Role(participant)]
		if _, ok := groups[project]; !ok {
			order = append(order, project)
		}
		groups[project] = append(groups[project], participant)
	}

	var mu sync.Mutex
	ips := make(map[string]string, len(s.Participants))
	tasks := make([]async.Task, 0, len(order))
	for _, project := range order {
		participants := groups[project]
		tasks = append(tasks, async.Task{
			Name: fmt.Sprintf("instances in %s", project),
			Func: func(_ context.Context) error {
				for _, participant := range participants {
					ip, err := createParticipantInstance(ctx, participant)
					if err != nil {
						return err
					}
					mu.Lock()
					ips[participant] = ip
					mu.Unlock()
				}
				return nil
			},
		})
	}

	if err := async.RunParallel(ctx, tasks); err != nil {
		return err
	}

	for participant, ip := range ips {
		ctx.State.ExternalIPs[participant] = ip
	}
	return nil
}

// createParticipantInstance provisions a participant's VM in their project
// and returns its external address.
func createParticipantInstance(ctx *Context, participant string) (string, error) {
	s := ctx.State.Study
	role := s.Role(participant)
	params := s.Params(participant)
	project := ctx.State.Projects[role]

	networkIP, err := netutil.RoleInternalIP(role)
	if err != nil {
		return "", err
	}

	// Participants whose data has not passed validation boot into the
	// validation-runner variant, which checks the inputs before joining
	// the protocol.
	validate := params.DataValidated.Value != "true"
	script, err := renderStartupScript(s.ID, role, params.AuthKey.Value, validate)
	if err != nil {
		return "", err
	}

	name := naming.Instance(s.ID, role)
	opts := gcp.InstanceCreateOpts{
		Name:           name,
		NumCPUs:        params.NumCPUs.Int(defaultNumCPUs),
		BootDiskSizeGB: int64(params.BootDiskSize.Int(defaultBootDiskSizeGB)),
		Subnet:         naming.Subnet(role),
		NetworkIP:      networkIP,
		Metadata: map[string]string{
			"startup-script": script,
			"enable-oslogin": "TRUE",
		},
	}

	ctx.Observer.Printf("creating instance %s in %s", name, project)
	if err := ctx.Compute.CreateInstance(ctx, project, opts); err != nil {
		return "", fmt.Errorf("failed to create instance %s: %w", name, err)
	}
	return ctx.Compute.InstanceExternalIP(ctx, project, name)
}

type startupScriptData struct {
	StudyID string
	Role    int
	AuthKey string
}

func renderStartupScript(studyID string, role int, authKey string, validate bool) (string, error) {
	tmpl := startupTemplate
	if validate {
		tmpl = validateTemplate
	}
	var buf bytes.Buffer
	err := tmpl.Execute(&buf, startupScriptData{
		StudyID: studyID,
		Role:    role,
		AuthKey: authKey,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render startup script: %w", err)
	}
	return buf.String(), nil
}

// statusPatch assembles the post-setup write-back.
func statusPatch(s *study.Study, externalIPs map[string]string) study.Patch {
	patch := study.Patch{
		Status:      make(map[string]string, len(s.Participants)),
		IPAddresses: make(map[string]string, len(externalIPs)),
	}
	for _, participant := range s.Participants {
		patch.Status[participant] = study.StatusReadyToBegin
	}
	for participant, ip := range externalIPs {
		patch.IPAddresses[participant] = ip
	}
	return patch
}
