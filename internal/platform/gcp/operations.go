package gcp

import (
	"context"
	"fmt"
	"time"

	"github.com/genomix-mpc/genomix/internal/metrics"

	"google.golang.org/api/compute/v1"
)

const operationDone = "DONE"

// waitGlobal blocks until a global operation completes.
func (c *RealClient) waitGlobal(ctx context.Context, project string, op *compute.Operation) error {
	return c.wait(ctx, op, func(ctx context.Context) (*compute.Operation, error) {
		return c.service.GlobalOperations.Get(project, op.Name).Context(ctx).Do()
	})
}

// waitRegion blocks until a region-scoped operation completes.
func (c *RealClient) waitRegion(ctx context.Context, project string, op *compute.Operation) error {
	return c.wait(ctx, op, func(ctx context.Context) (*compute.Operation, error) {
		return c.service.RegionOperations.Get(project, c.cfg.Region, op.Name).Context(ctx).Do()
	})
}

// waitZone blocks until a zone-scoped operation completes.
func (c *RealClient) waitZone(ctx context.Context, project string, op *compute.Operation) error {
	return c.wait(ctx, op, func(ctx context.Context) (*compute.Operation, error) {
		return c.service.ZoneOperations.Get(project, c.cfg.Zone, op.Name).Context(ctx).Do()
	})
}

// wait polls an operation until it reaches DONE, the overall deadline
// expires, or the context is cancelled. A DONE operation carrying an error
// payload surfaces as *OperationError.
func (c *RealClient) wait(ctx context.Context, op *compute.Operation, poll func(context.Context) (*compute.Operation, error)) error {
	if op == nil {
		return nil
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Operation)
	defer cancel()

	current := op
	for {
		if current.Status == operationDone {
			metrics.ObserveOperationWait(current.OperationType, time.Since(start))
			return operationResult(current)
		}

		select {
		case <-ctx.Done():
			if ctx.Err() == context.DeadlineExceeded {
				return &OperationTimeoutError{Name: op.Name}
			}
			return ctx.Err()
		case <-time.After(c.timeouts.OperationPoll):
		}

		next, err := poll(ctx)
		if err != nil {
			if isTransient(err) {
				continue
			}
			return fmt.Errorf("failed to poll operation %s: %w", op.Name, err)
		}
		current = next
	}
}

func operationResult(op *compute.Operation) error {
	if op.Error != nil && len(op.Error.Errors) > 0 {
		return &OperationError{Name: op.Name, Errors: op.Error.Errors}
	}
	return nil
}
