package workload

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tss-calculator/go-lib/pkg/infrastructure/logger"

	"github.com/cloud-storage/tools/pkg/environment/application/model"
	"github.com/cloud-storage/tools/pkg/environment/infrastructure/command"
	"github.com/cloud-storage/tools/pkg/environment/infrastructure/compose"
)

type execution struct {
	result model.WorkloadResult
	err    error
}

type fakeRunner struct {
	commands   []command.Command
	executions []execution
}

func (r *fakeRunner) Execute(_ context.Context, cmd command.Command) (model.WorkloadResult, error) {
	r.commands = append(r.commands, cmd)
	if len(r.executions) == 0 {
		return model.WorkloadResult{}, nil
	}
	next := r.executions[0]
	r.executions = r.executions[1:]
	return next.result, next.err
}

type fakeVariables struct {
	paths     []string
	variables model.VariableSet
	err       error
}

func (v *fakeVariables) Load(path string) (model.VariableSet, error) {
	v.paths = append(v.paths, path)
	return v.variables, v.err
}

func testEnvironment() model.Environment {
	return model.Environment{
		ID:          model.EnvironmentTest,
		ComposeFile: "docker-compose-test.yml",
		VarFile:     "test.env",
		Services:    []model.ServiceID{"postgres", "redis", "minio"},
		Workload: model.Workload{
			Test:        model.Command{Executable: "pytest", Args: []string{"-v", "tests"}},
			TestService: "tests",
			TestProfile: "tests",
		},
	}
}

func devEnvironment() model.Environment {
	return model.Environment{
		ID:          model.EnvironmentDev,
		ComposeFile: "docker-compose-dev.yml",
		VarFile:     "dev.env",
		Services:    []model.ServiceID{"postgres", "redis", "minio"},
		Workload: model.Workload{
			Migrate:    model.Command{Executable: "alembic", Args: []string{"upgrade", "head"}},
			Server:     model.Command{Executable: "uvicorn", Args: []string{"--factory", "cloud_storage.main:create_app"}},
			ServerPort: 8000,
			AppProfile: "app",
		},
	}
}

func TestRunTests_Local(t *testing.T) {
	runner := &fakeRunner{executions: []execution{{result: model.WorkloadResult{ExitCode: 1}}}}
	variables := &fakeVariables{variables: model.VariableSet{"PORT": "5433"}}
	workloadRunner := NewWorkloadRunner(logger.NewTextLogger(), runner, variables)

	result, err := workloadRunner.RunTests(context.Background(), testEnvironment(), model.TestModeLocal)

	require.NoError(t, err)
	assert.Equal(t, 1, result.ExitCode)
	assert.Equal(t, []string{"test.env"}, variables.paths)
	require.Len(t, runner.commands, 1)
	assert.Equal(t, "pytest", runner.commands[0].Executable)
	assert.Equal(t, []string{"-v", "tests"}, runner.commands[0].Args)
	assert.Equal(t, model.VariableSet{"PORT": "5433"}, runner.commands[0].Env)
}

func TestRunTests_Local_VarFileFailure(t *testing.T) {
	runner := &fakeRunner{}
	variables := &fakeVariables{err: errors.New("no such file")}
	workloadRunner := NewWorkloadRunner(logger.NewTextLogger(), runner, variables)

	_, err := workloadRunner.RunTests(context.Background(), testEnvironment(), model.TestModeLocal)

	require.Error(t, err)
	assert.Empty(t, runner.commands)
}

func TestRunTests_Containerized_TearsDownAlways(t *testing.T) {
	tests := []struct {
		name     string
		upResult execution
	}{
		{"suite succeeds", execution{result: model.WorkloadResult{ExitCode: 0}}},
		{"suite fails", execution{result: model.WorkloadResult{ExitCode: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{executions: []execution{tt.upResult}}
			workloadRunner := NewWorkloadRunner(logger.NewTextLogger(), runner, &fakeVariables{})

			result, err := workloadRunner.RunTests(context.Background(), testEnvironment(), model.TestModeContainerized)

			require.NoError(t, err)
			assert.Equal(t, tt.upResult.result.ExitCode, result.ExitCode)
			require.Len(t, runner.commands, 2)
			assert.Equal(t, []string{
				"compose", "-p", "cloud-storage-test",
				"-f", "docker-compose-test.yml",
				"--env-file", "test.env",
				"--profile", "tests",
				"up", "--build", "--abort-on-container-exit", "--exit-code-from", "tests",
			}, runner.commands[0].Args)
			assert.Equal(t, []string{
				"compose", "-p", "cloud-storage-test",
				"-f", "docker-compose-test.yml",
				"--env-file", "test.env",
				"--profile", "tests",
				"down", "-v", "--remove-orphans",
			}, runner.commands[1].Args)
		})
	}
}

func TestRunTests_Containerized_TearsDownOnSpawnError(t *testing.T) {
	spawnErr := model.SpawnError{Executable: compose.Executable, Err: errors.New("not found")}
	runner := &fakeRunner{executions: []execution{{err: spawnErr}, {err: spawnErr}}}
	workloadRunner := NewWorkloadRunner(logger.NewTextLogger(), runner, &fakeVariables{})

	_, err := workloadRunner.RunTests(context.Background(), testEnvironment(), model.TestModeContainerized)

	require.Error(t, err)
	assert.Len(t, runner.commands, 2)
}

func TestRunServer(t *testing.T) {
	runner := &fakeRunner{}
	variables := &fakeVariables{variables: model.VariableSet{"POSTGRES_DB": "cloud_storage"}}
	workloadRunner := NewWorkloadRunner(logger.NewTextLogger(), runner, variables)

	result, err := workloadRunner.RunServer(context.Background(), devEnvironment())

	require.NoError(t, err)
	assert.True(t, result.Succeeded())
	require.Len(t, runner.commands, 2)
	assert.Equal(t, "alembic", runner.commands[0].Executable)
	assert.Equal(t, []string{"upgrade", "head"}, runner.commands[0].Args)
	assert.Equal(t, "uvicorn", runner.commands[1].Executable)
	assert.Equal(t, []string{"--factory", "cloud_storage.main:create_app", "--port", "8000"}, runner.commands[1].Args)
	assert.Equal(t, model.VariableSet{"POSTGRES_DB": "cloud_storage"}, runner.commands[1].Env)
}

func TestRunServer_MigrationFailureStopsServer(t *testing.T) {
	runner := &fakeRunner{executions: []execution{{result: model.WorkloadResult{ExitCode: 1}}}}
	workloadRunner := NewWorkloadRunner(logger.NewTextLogger(), runner, &fakeVariables{})

	result, err := workloadRunner.RunServer(context.Background(), devEnvironment())

	require.NoError(t, err)
	assert.Equal(t, 1, result.ExitCode)
	require.Len(t, runner.commands, 1, "server must not start when migrations fail")
	assert.Equal(t, "alembic", runner.commands[0].Executable)
}

func TestRunServer_MigrationSpawnError(t *testing.T) {
	spawnErr := model.SpawnError{Executable: "alembic", Err: errors.New("not found")}
	runner := &fakeRunner{executions: []execution{{err: spawnErr}}}
	workloadRunner := NewWorkloadRunner(logger.NewTextLogger(), runner, &fakeVariables{})

	_, err := workloadRunner.RunServer(context.Background(), devEnvironment())

	var unwrapped model.SpawnError
	require.ErrorAs(t, err, &unwrapped)
	assert.Len(t, runner.commands, 1)
}

func TestRunDev(t *testing.T) {
	runner := &fakeRunner{}
	workloadRunner := NewWorkloadRunner(logger.NewTextLogger(), runner, &fakeVariables{})

	_, err := workloadRunner.RunDev(context.Background(), devEnvironment())

	require.NoError(t, err)
	require.Len(t, runner.commands, 1)
	assert.Equal(t, compose.Executable, runner.commands[0].Executable)
	assert.Equal(t, []string{
		"compose", "-p", "cloud-storage-dev",
		"-f", "docker-compose-dev.yml",
		"--env-file", "dev.env",
		"--profile", "app",
		"up", "--build",
	}, runner.commands[0].Args)
}

func TestRunTests_UnexpectedMode(t *testing.T) {
	runner := &fakeRunner{}
	workloadRunner := NewWorkloadRunner(logger.NewTextLogger(), runner, &fakeVariables{})

	_, err := workloadRunner.RunTests(context.Background(), testEnvironment(), "remote")

	require.Error(t, err)
	assert.Empty(t, runner.commands)
}
