package main

import (
	stdcontext "context"

	"github.com/cloud-storage/tools/pkg/environment/infrastructure/dependency"
)

func infraUp(ctx stdcontext.Context, environment string) error {
	dependencyContainer, err := dependency.ContainerFromContext(ctx)
	if err != nil {
		return err
	}
	return dependencyContainer.Lifecycle().InfraUp(ctx, environment)
}
