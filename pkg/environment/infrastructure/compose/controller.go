package compose

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/cloud-storage/tools/pkg/environment/application/model"
	"github.com/cloud-storage/tools/pkg/environment/application/service"
	"github.com/cloud-storage/tools/pkg/environment/infrastructure/command"
)

const Executable = "docker"

// Args assembles the docker compose argument list for an environment.
func Args(environment model.Environment, args ...string) []string {
	composeArgs := []string{"compose", "-p", ProjectName(environment), "-f", environment.ComposeFile}
	if environment.VarFile != "" {
		composeArgs = append(composeArgs, "--env-file", environment.VarFile)
	}
	return append(composeArgs, args...)
}

func ProjectName(environment model.Environment) string {
	return "cloud-storage-" + environment.ID
}

func NewInfraController(runner command.Runner) service.InfraController {
	return &infraController{
		runner: runner,
	}
}

type infraController struct {
	runner command.Runner
}

func (controller infraController) BringUp(ctx context.Context, environment model.Environment) error {
	if environment.ComposeFile == "" {
		return fmt.Errorf("environment %v defines no compose topology", environment.ID)
	}
	args := Args(environment, "up", "-d")
	args = append(args, environment.Services...)
	result, err := controller.runner.Execute(ctx, command.Command{
		Executable: Executable,
		Args:       args,
	})
	if err != nil {
		return errors.Wrapf(err, "failed to bring up infrastructure for environment %v", environment.ID)
	}
	if !result.Succeeded() {
		return model.InfraError{Environment: environment.ID, Op: "up", ExitCode: result.ExitCode}
	}
	return nil
}

func (controller infraController) TearDown(ctx context.Context, environment model.Environment) error {
	if environment.ComposeFile == "" {
		return fmt.Errorf("environment %v defines no compose topology", environment.ID)
	}
	result, err := controller.runner.Execute(ctx, command.Command{
		Executable: Executable,
		Args:       Args(environment, "down", "-v", "--remove-orphans"),
	})
	if err != nil {
		return errors.Wrapf(err, "failed to tear down infrastructure for environment %v", environment.ID)
	}
	if !result.Succeeded() {
		return model.InfraError{Environment: environment.ID, Op: "down", ExitCode: result.ExitCode}
	}
	return nil
}
