package service

import (
	"context"
	"fmt"
	"time"

	applogger "github.com/tss-calculator/go-lib/pkg/application/logger"

	"github.com/cloud-storage/tools/pkg/environment/application/model"
)

type InfraController interface {
	BringUp(ctx context.Context, environment model.Environment) error
	TearDown(ctx context.Context, environment model.Environment) error
}

type WorkloadRunner interface {
	RunTests(ctx context.Context, environment model.Environment, mode model.TestMode) (model.WorkloadResult, error)
	RunDev(ctx context.Context, environment model.Environment) (model.WorkloadResult, error)
	RunServer(ctx context.Context, environment model.Environment) (model.WorkloadResult, error)
}

type Lifecycle interface {
	InfraUp(ctx context.Context, environment model.EnvironmentID) error
	InfraDown(ctx context.Context, environment model.EnvironmentID) error
	TestLocal(ctx context.Context) (model.WorkloadResult, error)
	TestDocker(ctx context.Context) (model.WorkloadResult, error)
	DevRun(ctx context.Context) (model.WorkloadResult, error)
	StartApp(ctx context.Context) (model.WorkloadResult, error)
}

func NewLifecycleService(
	environments map[model.EnvironmentID]model.Environment,
	logger applogger.Logger,
	infraController InfraController,
	workloadRunner WorkloadRunner,
) Lifecycle {
	return &lifecycle{
		environments:    environments,
		logger:          logger,
		infraController: infraController,
		workloadRunner:  workloadRunner,
	}
}

type lifecycle struct {
	environments map[model.EnvironmentID]model.Environment

	logger          applogger.Logger
	infraController InfraController
	workloadRunner  WorkloadRunner
}

func (service lifecycle) InfraUp(ctx context.Context, environmentID model.EnvironmentID) error {
	environment, err := service.environment(environmentID)
	if err != nil {
		return err
	}
	service.logger.Info(fmt.Sprintf("bring up infrastructure for environment \"%v\"...", environmentID))
	start := time.Now()
	defer func() {
		service.logger.Info(fmt.Sprintf("done in %v", time.Since(start).String()))
	}()
	return service.infraController.BringUp(ctx, environment)
}

func (service lifecycle) InfraDown(ctx context.Context, environmentID model.EnvironmentID) error {
	environment, err := service.environment(environmentID)
	if err != nil {
		return err
	}
	service.logger.Info(fmt.Sprintf("tear down infrastructure for environment \"%v\"...", environmentID))
	start := time.Now()
	defer func() {
		service.logger.Info(fmt.Sprintf("done in %v", time.Since(start).String()))
	}()
	return service.infraController.TearDown(ctx, environment)
}

func (service lifecycle) TestLocal(ctx context.Context) (model.WorkloadResult, error) {
	environment, err := service.environment(model.EnvironmentTest)
	if err != nil {
		return model.WorkloadResult{}, err
	}
	upErr := service.infraController.BringUp(ctx, environment)
	defer func() {
		if downErr := service.infraController.TearDown(ctx, environment); downErr != nil {
			service.logger.Error(downErr, fmt.Sprintf("failed to tear down infrastructure for environment \"%v\"", environment.ID))
		}
	}()
	if upErr != nil {
		return model.WorkloadResult{}, upErr
	}
	return service.runTests(ctx, environment, model.TestModeLocal)
}

func (service lifecycle) TestDocker(ctx context.Context) (model.WorkloadResult, error) {
	environment, err := service.environment(model.EnvironmentTest)
	if err != nil {
		return model.WorkloadResult{}, err
	}
	return service.runTests(ctx, environment, model.TestModeContainerized)
}

func (service lifecycle) DevRun(ctx context.Context) (model.WorkloadResult, error) {
	environment, err := service.environment(model.EnvironmentDev)
	if err != nil {
		return model.WorkloadResult{}, err
	}
	service.logger.Info(fmt.Sprintf("run application for environment \"%v\"...", environment.ID))
	return service.workloadRunner.RunDev(ctx, environment)
}

func (service lifecycle) StartApp(ctx context.Context) (model.WorkloadResult, error) {
	environment, err := service.environment(model.EnvironmentDev)
	if err != nil {
		return model.WorkloadResult{}, err
	}
	return service.workloadRunner.RunServer(ctx, environment)
}

func (service lifecycle) runTests(ctx context.Context, environment model.Environment, mode model.TestMode) (model.WorkloadResult, error) {
	service.logger.Info(fmt.Sprintf("run test suite for environment \"%v\" (%v)...", environment.ID, mode))
	start := time.Now()
	defer func() {
		service.logger.Info(fmt.Sprintf("done in %v", time.Since(start).String()))
	}()
	return service.workloadRunner.RunTests(ctx, environment, mode)
}

func (service lifecycle) environment(id model.EnvironmentID) (model.Environment, error) {
	environment, ok := service.environments[id]
	if !ok {
		return model.Environment{}, model.UnknownEnvironmentError{ID: id}
	}
	return environment, nil
}
