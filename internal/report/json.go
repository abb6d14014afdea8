package report

import (
	"encoding/json"
)

func renderJSON(r *Report) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}
