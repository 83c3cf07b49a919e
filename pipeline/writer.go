package pipeline

import (
	"fmt"
	"io"
	"os"

	"github.com/erraggy/oassamples/internal/fileutil"
	"github.com/erraggy/oassamples/oaserrors"
)

// checkOutputPath refuses to overwrite the input document.
func checkOutputPath(input, output string) error {
	same, err := fileutil.SamePath(input, output)
	if err != nil {
		return &oaserrors.ConfigError{Option: "output path", Value: output, Cause: err}
	}
	if same {
		return &oaserrors.ConfigError{Option: "output path", Value: output, Message: "refusing to overwrite the input document"}
	}
	return nil
}

// writeFile writes data with owner-only permissions. Symlink destinations
// are refused.
func writeFile(path string, data []byte) error {
	if err := fileutil.RejectSymlink(path); err != nil {
		return &oaserrors.WriteError{Destination: path, Cause: err}
	}
	if err := os.WriteFile(path, data, fileutil.OwnerReadWrite); err != nil {
		return &oaserrors.WriteError{Destination: path, Cause: err}
	}
	return nil
}

func writeTo(w io.Writer, data []byte) (int64, error) {
	n, err := w.Write(data)
	if err == nil && n < len(data) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return int64(n), &oaserrors.WriteError{Destination: fmt.Sprintf("%T", w), Cause: err}
	}
	return int64(n), nil
}
