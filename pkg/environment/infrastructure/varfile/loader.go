package varfile

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/cloud-storage/tools/pkg/environment/application/model"
)

type Loader interface {
	Load(path string) (model.VariableSet, error)
}

func NewLoader() Loader {
	return &loader{}
}

type loader struct{}

func (l loader) Load(path string) (model.VariableSet, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open variable file %v", path)
	}
	defer file.Close()

	variables := make(model.VariableSet)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("malformed line %q in variable file %v", line, path)
		}
		variables[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if err = scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to read variable file %v", path)
	}
	return variables, nil
}
