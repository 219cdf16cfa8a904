package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/tss-calculator/go-lib/pkg/infrastructure/logger"

	"github.com/cloud-storage/tools/pkg/environment/infrastructure/config/envconfig"
	"github.com/cloud-storage/tools/pkg/environment/infrastructure/dependency"

	"github.com/urfave/cli/v2"
)

func main() {
	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()
	ctx = listenOSKillSignalsContext(ctx)
	mainLogger := logger.NewTextLogger()

	environments, err := envconfig.Load("environments.yaml")
	if err != nil {
		mainLogger.FatalError(err, "failed load environments config")
	}
	container := dependency.NewDependencyContainer(mainLogger, environments)
	ctx = dependency.ContainerToContext(ctx, container)

	app := &cli.App{
		Name: "environment",
		Commands: cli.Commands{
			&cli.Command{
				Name: "infra-up",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "env",
						Required: true,
					},
				},
				Action: func(c *cli.Context) error {
					return infraUp(c.Context, c.String("env"))
				},
			},
			&cli.Command{
				Name: "infra-down",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "env",
						Required: true,
					},
				},
				Action: func(c *cli.Context) error {
					return infraDown(c.Context, c.String("env"))
				},
			},
			&cli.Command{
				Name: "test-local",
				Action: func(c *cli.Context) error {
					return testLocal(c.Context)
				},
			},
			&cli.Command{
				Name: "test-docker",
				Action: func(c *cli.Context) error {
					return testDocker(c.Context)
				},
			},
			&cli.Command{
				Name: "dev-run",
				Action: func(c *cli.Context) error {
					return devRun(c.Context)
				},
			},
			&cli.Command{
				Name: "start-app",
				Action: func(c *cli.Context) error {
					return startApp(c.Context)
				},
			},
		},
	}
	err = app.RunContext(ctx, os.Args)
	if err != nil {
		mainLogger.FatalError(err, "failed execute command "+strings.Join(os.Args, " "))
	}
}

func listenOSKillSignalsContext(ctx context.Context) context.Context {
	var cancelFunc context.CancelFunc
	ctx, cancelFunc = context.WithCancel(ctx)
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT)
		select {
		case <-ch:
			cancelFunc()
		case <-ctx.Done():
			return
		}
	}()
	return ctx
}
