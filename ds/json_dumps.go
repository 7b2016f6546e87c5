package ds

import (
	"encoding/json"

	"github.com/pkg/errors"
)

func DumpJSON[T any](t T) string {
	tBytes, err := json.Marshal(t)
	if err != nil {
		return errors.Wrap(err, "DumpJSON error").Error()
	}

	return string(tBytes)
}

func DumpJSONIndent[T any](t T) string {
	tBytes, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return errors.Wrap(err, "DumpJSONIndent error").Error()
	}

	return string(tBytes)
}
