package main

import (
	stdcontext "context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/cloud-storage/tools/pkg/environment/infrastructure/dependency"
)

func testDocker(ctx stdcontext.Context) error {
	dependencyContainer, err := dependency.ContainerFromContext(ctx)
	if err != nil {
		return err
	}
	result, err := dependencyContainer.Lifecycle().TestDocker(ctx)
	if err != nil {
		return err
	}
	if !result.Succeeded() {
		return cli.Exit(fmt.Sprintf("test suite exited with code %d", result.ExitCode), result.ExitCode)
	}
	return nil
}
