package tools

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
)

// Launcher opens applications and URLs on the host.
type Launcher interface {
	OpenApp(ctx context.Context, app string) error
	OpenURL(ctx context.Context, url string) error
}

// SystemLauncher shells out to the platform opener and does not wait for
// the launched program.
type SystemLauncher struct {
	GOOS string
}

func NewSystemLauncher() SystemLauncher {
	return SystemLauncher{GOOS: runtime.GOOS}
}

func (l SystemLauncher) OpenApp(ctx context.Context, app string) error {
	name, args, err := l.appCommand(app)
	if err != nil {
		return err
	}
	return start(ctx, name, args...)
}

func (l SystemLauncher) OpenURL(ctx context.Context, url string) error {
	switch l.GOOS {
	case "darwin":
		return start(ctx, "open", url)
	case "windows":
		return start(ctx, "rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return start(ctx, "xdg-open", url)
	}
}

func (l SystemLauncher) appCommand(app string) (string, []string, error) {
	switch l.GOOS {
	case "darwin":
		return "open", []string{"-a", app}, nil
	case "linux":
		return "gtk-launch", []string{app}, nil
	default:
		return "", nil, fmt.Errorf("opening apps is not supported on %s", l.GOOS)
	}
}

// start detaches the child so it outlives the turn that launched it.
func start(ctx context.Context, name string, args ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("running %s: %w", name, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
