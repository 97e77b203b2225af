package chart

import (
	"os/exec"
	"runtime"

	"github.com/rxtech-lab/fxgold/pkg/errors"
)

// Viewer displays a rendered chart.
type Viewer interface {
	Open(path string) error
}

// SystemViewer hands the file to the platform's default image viewer.
// It returns once the viewer process has been started.
type SystemViewer struct {
	goos  string
	start func(name string, args ...string) error
}

// NewSystemViewer creates a viewer for the current platform.
func NewSystemViewer() *SystemViewer {
	return &SystemViewer{
		goos: runtime.GOOS,
		start: func(name string, args ...string) error {
			return exec.Command(name, args...).Start()
		},
	}
}

// Open implements Viewer.
func (v *SystemViewer) Open(path string) error {
	name, args := openerCommand(v.goos, path)

	if err := v.start(name, args...); err != nil {
		return errors.Wrapf(errors.ErrCodeViewerFailed, err, "failed to run %s", name)
	}

	return nil
}

func openerCommand(goos string, path string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{path}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", path}
	default:
		return "xdg-open", []string{path}
	}
}
