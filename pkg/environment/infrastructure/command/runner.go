package command

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"

	applogger "github.com/tss-calculator/go-lib/pkg/application/logger"

	"github.com/cloud-storage/tools/pkg/environment/application/model"
)

type Command struct {
	WorkDir    string
	Executable string
	Args       []string
	Env        model.VariableSet
}

type Runner interface {
	Execute(ctx context.Context, command Command) (model.WorkloadResult, error)
}

func NewCommandRunner(logger applogger.Logger) Runner {
	return &runner{
		logger: logger,
	}
}

type runner struct {
	logger applogger.Logger
}

func (r runner) Execute(ctx context.Context, command Command) (model.WorkloadResult, error) {
	if command.Executable == "" {
		return model.WorkloadResult{}, errors.New("command executable can not be empty")
	}
	// nolint:gosec
	cmd := exec.CommandContext(ctx, command.Executable, command.Args...)
	cmd.Dir = command.WorkDir
	cmd.Env = mergeEnviron(os.Environ(), command.Env)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	r.logger.Debug(cmd.String())
	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return model.WorkloadResult{ExitCode: exitErr.ExitCode()}, nil
		}
		return model.WorkloadResult{}, model.SpawnError{Executable: command.Executable, Err: err}
	}
	return model.WorkloadResult{}, nil
}

func mergeEnviron(ambient []string, variables model.VariableSet) []string {
	if len(variables) == 0 {
		return ambient
	}
	merged := make([]string, 0, len(ambient)+len(variables))
	for _, entry := range ambient {
		key, _, _ := strings.Cut(entry, "=")
		if _, ok := variables[key]; ok {
			continue
		}
		merged = append(merged, entry)
	}
	return append(merged, variables.Environ()...)
}
