// Package handlers implements the execution logic behind the CLI commands.
//
// Handlers wire configuration, the compute client, and the study store into
// an orchestration context and delegate to the lifecycle operations. The
// factory variables exist so tests can substitute fakes.
package handlers

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/genomix-mpc/genomix/internal/config"
	"github.com/genomix-mpc/genomix/internal/orchestration"
	"github.com/genomix-mpc/genomix/internal/platform/gcp"
	"github.com/genomix-mpc/genomix/internal/study"
)

// defaultConfigPath is used when no --config flag is given.
const defaultConfigPath = "genomix.yaml"

// Factory function variables - can be replaced in tests.
var (
	newComputeClient = func(ctx context.Context, cfg *config.Config) (gcp.ComputeManager, error) {
		client, err := gcp.NewRealClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return client, nil
	}

	// One store per process so a created study is visible to the
	// lifecycle commands. A deployment backing this with a document
	// database replaces the factory.
	sharedStore = study.NewMemoryStore()

	newStore = func() study.Store {
		return sharedStore
	}

	runSetup   = orchestration.Setup
	runRestart = orchestration.Restart
	runDelete  = orchestration.Delete
	runStop    = orchestration.Stop
)

// Create handles the create command: it registers a new study record and
// prints the generated identifier.
func Create(ctx context.Context, title, studyType, owner string, participants []string) error {
	s := study.New(title, studyType, owner, participants)
	if err := newStore().Create(ctx, s); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"study": s.ID, "title": title}).Info("study created")
	fmt.Println(s.ID)
	return nil
}

// Setup handles the setup command.
func Setup(ctx context.Context, configPath, studyID string) error {
	logrus.WithField("study", studyID).Info("provisioning study")
	return run(ctx, configPath, studyID, runSetup)
}

// Restart handles the restart command.
func Restart(ctx context.Context, configPath, studyID string) error {
	logrus.WithField("study", studyID).Info("restarting study")
	return run(ctx, configPath, studyID, runRestart)
}

// Delete handles the delete command.
func Delete(ctx context.Context, configPath, studyID string) error {
	logrus.WithField("study", studyID).Info("deleting study")
	return run(ctx, configPath, studyID, runDelete)
}

// Stop handles the stop command.
func Stop(ctx context.Context, configPath, studyID string) error {
	logrus.WithField("study", studyID).Info("stopping study instances")
	return run(ctx, configPath, studyID, runStop)
}

func run(ctx context.Context, configPath, studyID string, op func(*orchestration.Context, string) error) error {
	if configPath == "" {
		configPath = defaultConfigPath
	}
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return err
	}

	compute, err := newComputeClient(ctx, cfg)
	if err != nil {
		return err
	}

	octx := orchestration.NewContext(ctx, cfg, compute, newStore())
	return op(octx, studyID)
}
