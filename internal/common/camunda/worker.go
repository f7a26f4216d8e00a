// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"encoding/json"
	"time"

	"menu-workers/internal/common/errors"
	"menu-workers/internal/common/logger"
	"menu-workers/internal/common/metrics"
	"menu-workers/internal/common/observability"
	"menu-workers/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// JobHandler is implemented by every worker package's Handler.
type JobHandler interface {
	Handle(client worker.JobClient, job entities.Job)
}

// Runner carries what every worker needs to turn a job into a typed call:
// schema validation, a timeout, job metrics and error reporting.
type Runner struct {
	TaskType  string
	Timeout   time.Duration
	validator *validation.Validator
	obs       *observability.Observability
	logger    logger.Logger
	errs      *errors.ErrorHandler
}

func NewRunner(taskType string, timeout time.Duration, v *validation.Validator, obs *observability.Observability, log logger.Logger) *Runner {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	log = log.WithFields(map[string]interface{}{"taskType": taskType})
	return &Runner{
		TaskType:  taskType,
		Timeout:   timeout,
		validator: v,
		obs:       obs,
		logger:    log,
		errs:      errors.NewErrorHandler(log),
	}
}

// Support bundles what NewRunner needs besides the task type, so worker
// constructors take one argument for it.
type Support struct {
	Validator     *validation.Validator
	Observability *observability.Observability
	Logger        logger.Logger
}

func (s Support) Runner(taskType string, timeout time.Duration) *Runner {
	log := s.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return NewRunner(taskType, timeout, s.Validator, s.Observability, log)
}

// Logger returns the runner's task-scoped logger.
func (r *Runner) Logger() logger.Logger {
	return r.logger
}

// Decode validates job variables against the task schema and unmarshals them.
func Decode[In any](r *Runner, variables string) (*In, error) {
	raw := []byte(variables)
	if len(raw) == 0 {
		raw = []byte("{}")
	}
	if err := r.validator.Validate(r.TaskType, raw); err != nil {
		return nil, err
	}

	var in In
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, errors.NewInvalidInputError("parse input: " + err.Error())
	}
	return &in, nil
}

// Process runs exec for a single job and reports the outcome to Zeebe.
func Process[In any, Out any](r *Runner, client worker.JobClient, job entities.Job, exec func(context.Context, *In) (*Out, error)) {
	start := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(r.TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(r.TaskType).Dec()

	r.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), r.Timeout)
	defer cancel()

	out, err := run(ctx, r, job, exec)
	elapsed := time.Since(start)
	metrics.WorkerJobDuration.WithLabelValues(r.TaskType).Observe(elapsed.Seconds())

	if err != nil {
		code := string(errors.AsStandard(err).Code)
		metrics.WorkerJobsFailed.WithLabelValues(r.TaskType, code).Inc()
		r.obs.RecordJob(ctx, r.TaskType, "failed", elapsed)
		r.errs.HandleJobError(ctx, client, job, err)
		return
	}

	r.completeJob(ctx, client, job, out)
	metrics.WorkerJobsCompleted.WithLabelValues(r.TaskType).Inc()
	r.obs.RecordJob(ctx, r.TaskType, "completed", elapsed)
}

func run[In any, Out any](ctx context.Context, r *Runner, job entities.Job, exec func(context.Context, *In) (*Out, error)) (*Out, error) {
	in, err := Decode[In](r, job.Variables)
	if err != nil {
		return nil, err
	}
	return exec(ctx, in)
}

func (r *Runner) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output interface{}) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		r.logger.Error("failed to create complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err,
		})
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		r.logger.Error("failed to send complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err,
		})
		return
	}
	r.logger.Info("job completed successfully", map[string]interface{}{"jobKey": job.Key})
}

// CamundaWorker owns an open Zeebe job worker for one task type.
type CamundaWorker struct {
	worker   worker.JobWorker
	logger   logger.Logger
	taskType string
}

func NewWorker(client zbc.Client, taskType string, maxJobsActive int, timeout time.Duration, handler JobHandler, log logger.Logger) *CamundaWorker {
	jobWorker := client.NewJobWorker().
		JobType(taskType).
		Handler(handler.Handle).
		MaxJobsActive(maxJobsActive).
		Timeout(timeout).
		Open()

	log.Info("worker started", map[string]interface{}{
		"taskType":      taskType,
		"maxJobsActive": maxJobsActive,
	})

	return &CamundaWorker{
		worker:   jobWorker,
		logger:   log,
		taskType: taskType,
	}
}

func (w *CamundaWorker) TaskType() string {
	return w.taskType
}

// Stop closes the job worker and waits for in-flight handlers to return.
func (w *CamundaWorker) Stop() {
	w.logger.Info("stopping worker", map[string]interface{}{"taskType": w.taskType})
	w.worker.Close()
	w.worker.AwaitClose()
}
