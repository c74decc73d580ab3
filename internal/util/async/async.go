// Package async provides utilities for parallel task execution.
//
// This package contains generic helpers for running multiple operations
// concurrently, collecting results, and handling errors. It's used for the
// per-project teardown fanout and other concurrent workflows.
package async

import (
	"context"
	"errors"
	"fmt"
)

// Task represents an asynchronous operation with a name and function.
type Task struct {
	Name string
	Func func(context.Context) error
}

// RunParallel executes all tasks concurrently and waits for every one of
// them to finish before returning. A failing task never prevents the
// others from completing; all failures are joined into the returned error.
//
// Example:
//
//	tasks := []Task{
//	    {Name: "project-a", Func: teardownA},
//	    {Name: "project-b", Func: teardownB},
//	}
//	if err := async.RunParallel(ctx, tasks); err != nil {
//	    return err
//	}
func RunParallel(ctx context.Context, tasks []Task) error {
	if len(tasks) == 0 {
		return nil
	}

	type result struct {
		name string
		err  error
	}

	resultChan := make(chan result, len(tasks))

	for _, task := range tasks {
		task := task
		go func() {
			err := task.Func(ctx)
			resultChan <- result{name: task.Name, err: err}
		}()
	}

	var errs []error
	for i := 0; i < len(tasks); i++ {
		res := <-resultChan
		if res.err != nil {
			errs = append(errs, fmt.Errorf("task %s: %w", res.name, res.err))
		}
	}

	return errors.Join(errs...)
}
