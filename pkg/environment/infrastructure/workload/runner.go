package workload

import (
	"context"
	"fmt"
	"strconv"

	applogger "github.com/tss-calculator/go-lib/pkg/application/logger"

	"github.com/cloud-storage/tools/pkg/environment/application/model"
	"github.com/cloud-storage/tools/pkg/environment/application/service"
	"github.com/cloud-storage/tools/pkg/environment/infrastructure/command"
	"github.com/cloud-storage/tools/pkg/environment/infrastructure/compose"
	"github.com/cloud-storage/tools/pkg/environment/infrastructure/varfile"
)

func NewWorkloadRunner(
	logger applogger.Logger,
	runner command.Runner,
	variables varfile.Loader,
) service.WorkloadRunner {
	return &workloadRunner{
		logger:    logger,
		runner:    runner,
		variables: variables,
	}
}

type workloadRunner struct {
	logger    applogger.Logger
	runner    command.Runner
	variables varfile.Loader
}

func (runner workloadRunner) RunTests(ctx context.Context, environment model.Environment, mode model.TestMode) (model.WorkloadResult, error) {
	switch mode {
	case model.TestModeLocal:
		return runner.runLocalTests(ctx, environment)
	case model.TestModeContainerized:
		return runner.runContainerizedTests(ctx, environment)
	default:
		return model.WorkloadResult{}, fmt.Errorf("unexpected test mode %q", mode)
	}
}

func (runner workloadRunner) RunDev(ctx context.Context, environment model.Environment) (model.WorkloadResult, error) {
	if environment.ComposeFile == "" {
		return model.WorkloadResult{}, fmt.Errorf("environment %v defines no compose topology", environment.ID)
	}
	args := make([]string, 0)
	if environment.Workload.AppProfile != "" {
		args = append(args, "--profile", environment.Workload.AppProfile)
	}
	args = append(args, "up", "--build")
	return runner.runner.Execute(ctx, command.Command{
		Executable: compose.Executable,
		Args:       compose.Args(environment, args...),
	})
}

func (runner workloadRunner) RunServer(ctx context.Context, environment model.Environment) (model.WorkloadResult, error) {
	if environment.Workload.Migrate.Executable == "" {
		return model.WorkloadResult{}, fmt.Errorf("environment %v defines no migration command", environment.ID)
	}
	if environment.Workload.Server.Executable == "" {
		return model.WorkloadResult{}, fmt.Errorf("environment %v defines no server command", environment.ID)
	}
	variables, err := runner.variables.Load(environment.VarFile)
	if err != nil {
		return model.WorkloadResult{}, err
	}
	runner.logger.Info(fmt.Sprintf("apply schema migrations for environment \"%v\"...", environment.ID))
	result, err := runner.runner.Execute(ctx, command.Command{
		Executable: environment.Workload.Migrate.Executable,
		Args:       environment.Workload.Migrate.Args,
		Env:        variables,
	})
	if err != nil {
		return model.WorkloadResult{}, err
	}
	if !result.Succeeded() {
		runner.logger.Info(fmt.Sprintf("migrations exited with code %v, application server will not start", result.ExitCode))
		return result, nil
	}
	args := environment.Workload.Server.Args
	if environment.Workload.ServerPort > 0 {
		args = append(args, "--port", strconv.Itoa(environment.Workload.ServerPort))
	}
	runner.logger.Info(fmt.Sprintf("start application server on port %v...", environment.Workload.ServerPort))
	return runner.runner.Execute(ctx, command.Command{
		Executable: environment.Workload.Server.Executable,
		Args:       args,
		Env:        variables,
	})
}

func (runner workloadRunner) runLocalTests(ctx context.Context, environment model.Environment) (model.WorkloadResult, error) {
	if environment.Workload.Test.Executable == "" {
		return model.WorkloadResult{}, fmt.Errorf("environment %v defines no test command", environment.ID)
	}
	variables, err := runner.variables.Load(environment.VarFile)
	if err != nil {
		return model.WorkloadResult{}, err
	}
	return runner.runner.Execute(ctx, command.Command{
		Executable: environment.Workload.Test.Executable,
		Args:       environment.Workload.Test.Args,
		Env:        variables,
	})
}

// runContainerizedTests owns the full-stack teardown: the suite and its
// infrastructure share one compose invocation, so a down is issued
// whatever the suite's exit code was.
func (runner workloadRunner) runContainerizedTests(ctx context.Context, environment model.Environment) (model.WorkloadResult, error) {
	if environment.ComposeFile == "" {
		return model.WorkloadResult{}, fmt.Errorf("environment %v defines no compose topology", environment.ID)
	}
	if environment.Workload.TestService == "" {
		return model.WorkloadResult{}, fmt.Errorf("environment %v defines no test service", environment.ID)
	}
	defer func() {
		downArgs := make([]string, 0)
		if environment.Workload.TestProfile != "" {
			downArgs = append(downArgs, "--profile", environment.Workload.TestProfile)
		}
		downArgs = append(downArgs, "down", "-v", "--remove-orphans")
		downResult, downErr := runner.runner.Execute(ctx, command.Command{
			Executable: compose.Executable,
			Args:       compose.Args(environment, downArgs...),
		})
		if downErr != nil {
			runner.logger.Error(downErr, fmt.Sprintf("failed to tear down test stack for environment \"%v\"", environment.ID))
			return
		}
		if !downResult.Succeeded() {
			runner.logger.Error(
				model.InfraError{Environment: environment.ID, Op: "down", ExitCode: downResult.ExitCode},
				fmt.Sprintf("failed to tear down test stack for environment \"%v\"", environment.ID),
			)
		}
	}()
	args := make([]string, 0)
	if environment.Workload.TestProfile != "" {
		args = append(args, "--profile", environment.Workload.TestProfile)
	}
	args = append(args, "up", "--build", "--abort-on-container-exit", "--exit-code-from", environment.Workload.TestService)
	return runner.runner.Execute(ctx, command.Command{
		Executable: compose.Executable,
		Args:       compose.Args(environment, args...),
	})
}
