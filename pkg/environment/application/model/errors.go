package model

import "fmt"

type UnknownEnvironmentError struct {
	ID EnvironmentID
}

func (e UnknownEnvironmentError) Error() string {
	return fmt.Sprintf("unknown environment %q", e.ID)
}

type SpawnError struct {
	Executable string
	Err        error
}

func (e SpawnError) Error() string {
	return fmt.Sprintf("failed to start %q: %v", e.Executable, e.Err)
}

func (e SpawnError) Unwrap() error {
	return e.Err
}

type InfraError struct {
	Environment EnvironmentID
	Op          string
	ExitCode    int
}

func (e InfraError) Error() string {
	return fmt.Sprintf("compose %v for environment %v exited with code %v", e.Op, e.Environment, e.ExitCode)
}
