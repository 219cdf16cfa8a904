package dependency

import (
	"context"
	"errors"

	applogger "github.com/tss-calculator/go-lib/pkg/application/logger"

	"github.com/cloud-storage/tools/pkg/environment/application/model"
	"github.com/cloud-storage/tools/pkg/environment/application/service"
	"github.com/cloud-storage/tools/pkg/environment/infrastructure/command"
	"github.com/cloud-storage/tools/pkg/environment/infrastructure/compose"
	"github.com/cloud-storage/tools/pkg/environment/infrastructure/varfile"
	"github.com/cloud-storage/tools/pkg/environment/infrastructure/workload"
)

var dependencyContainer = struct{}{}

type Container interface {
	Lifecycle() service.Lifecycle
}

func NewDependencyContainer(
	logger applogger.Logger,
	environments map[model.EnvironmentID]model.Environment,
) Container {
	runner := command.NewCommandRunner(logger)
	infraController := compose.NewInfraController(runner)
	workloadRunner := workload.NewWorkloadRunner(logger, runner, varfile.NewLoader())
	lifecycleService := service.NewLifecycleService(environments, logger, infraController, workloadRunner)

	return &container{
		lifecycle: lifecycleService,
	}
}

type container struct {
	lifecycle service.Lifecycle
}

func (c *container) Lifecycle() service.Lifecycle {
	return c.lifecycle
}

func ContainerFromContext(ctx context.Context) (Container, error) {
	v := ctx.Value(dependencyContainer)
	if c, ok := v.(Container); ok {
		return c, nil
	}
	return nil, errors.New("dependency container not found")
}

func ContainerToContext(ctx context.Context, c Container) context.Context {
	return context.WithValue(ctx, dependencyContainer, c)
}
