package model

type EnvironmentID = string

const (
	EnvironmentTest EnvironmentID = "test"
	EnvironmentDev  EnvironmentID = "dev"
	EnvironmentProd EnvironmentID = "prod"
)

type ServiceID = string

type Environment struct {
	ID          EnvironmentID
	ComposeFile string
	VarFile     string
	Services    []ServiceID
	Workload    Workload
}

type Command struct {
	Executable string
	Args       []string
}

type Workload struct {
	Test        Command
	Migrate     Command
	Server      Command
	ServerPort  int
	TestService ServiceID
	TestProfile string
	AppProfile  string
}

type TestMode = string

const (
	TestModeLocal         TestMode = "local"
	TestModeContainerized TestMode = "containerized"
)
