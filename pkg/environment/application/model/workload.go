package model

type WorkloadResult struct {
	ExitCode int
}

func (r WorkloadResult) Succeeded() bool {
	return r.ExitCode == 0
}
