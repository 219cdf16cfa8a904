package main

import (
	stdcontext "context"

	"github.com/cloud-storage/tools/pkg/environment/infrastructure/dependency"
)

func infraDown(ctx stdcontext.Context, environment string) error {
	dependencyContainer, err := dependency.ContainerFromContext(ctx)
	if err != nil {
		return err
	}
	return dependencyContainer.Lifecycle().InfraDown(ctx, environment)
}
