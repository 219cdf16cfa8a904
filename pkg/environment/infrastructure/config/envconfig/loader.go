package envconfig

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/cloud-storage/tools/pkg/environment/application/model"
)

type Command struct {
	Executable string   `yaml:"executable"`
	Args       []string `yaml:"args"`
}

type Workload struct {
	Test        Command `yaml:"test"`
	Migrate     Command `yaml:"migrate"`
	Server      Command `yaml:"server"`
	ServerPort  int     `yaml:"serverPort"`
	TestService string  `yaml:"testService"`
	TestProfile string  `yaml:"testProfile"`
	AppProfile  string  `yaml:"appProfile"`
}

type Environment struct {
	ComposeFile string   `yaml:"composeFile"`
	VarFile     string   `yaml:"varFile"`
	Services    []string `yaml:"services"`
	Workload    Workload `yaml:"workload"`
}

type Config struct {
	Environments map[string]Environment `yaml:"environments"`
}

func Load(filePath string) (map[model.EnvironmentID]model.Environment, error) {
	configBody, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %v", filePath)
	}
	var config Config
	err = yaml.Unmarshal(configBody, &config)
	if err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	err = assertEnvironments(config)
	if err != nil {
		return nil, err
	}
	return MapToEnvironments(config), nil
}

func MapToEnvironments(config Config) map[model.EnvironmentID]model.Environment {
	environments := make(map[model.EnvironmentID]model.Environment, len(config.Environments))
	for environmentID, environment := range config.Environments {
		environments[environmentID] = model.Environment{
			ID:          environmentID,
			ComposeFile: environment.ComposeFile,
			VarFile:     environment.VarFile,
			Services:    environment.Services,
			Workload: model.Workload{
				Test:        mapCommand(environment.Workload.Test),
				Migrate:     mapCommand(environment.Workload.Migrate),
				Server:      mapCommand(environment.Workload.Server),
				ServerPort:  environment.Workload.ServerPort,
				TestService: environment.Workload.TestService,
				TestProfile: environment.Workload.TestProfile,
				AppProfile:  environment.Workload.AppProfile,
			},
		}
	}
	return environments
}

func mapCommand(command Command) model.Command {
	return model.Command{
		Executable: command.Executable,
		Args:       command.Args,
	}
}

func assertEnvironments(config Config) error {
	known := map[string]struct{}{
		model.EnvironmentTest: {},
		model.EnvironmentDev:  {},
		model.EnvironmentProd: {},
	}
	for environmentID, environment := range config.Environments {
		if _, ok := known[environmentID]; !ok {
			return fmt.Errorf("unexpected environment %v", environmentID)
		}
		if len(environment.Services) > 0 && environment.ComposeFile == "" {
			return fmt.Errorf("environment %v declares services but no compose file", environmentID)
		}
	}
	return nil
}
