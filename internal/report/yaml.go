package report

import (
	"gopkg.in/yaml.v3"
)

func renderYAML(r *Report) ([]byte, error) {
	return yaml.Marshal(r)
}
