package fast

import (
	"context"
	"fmt"
	"strings"

	"tableflip.dev/fasttrack/pkg/store"
	"tableflip.dev/fasttrack/pkg/timeutil"
	"tableflip.dev/fasttrack/pkg/tracker"
)

type Window struct {
	Persistence store.Persistence

	// Split is a "fasting:eating" pair like "16:8". Preset names
	// ("omad") are resolved against the built-in presets first.
	Split string
}

func (n *Window) Do(ctx context.Context) error {
	fasting, eating, err := resolveSplit(n.Split)
	if err != nil {
		return err
	}

	t, err := tracker.New(ctx, n.Persistence)
	if err != nil {
		return err
	}

	if err := t.SetFastingWindow(fasting, eating); err != nil {
		return err
	}

	fmt.Printf("fasting window set to %d:%d\n", fasting, eating)
	return nil
}

func resolveSplit(s string) (int, int, error) {
	if strings.EqualFold(s, "omad") {
		s = "23:1"
	}
	for _, p := range tracker.Presets {
		if strings.EqualFold(p.Name, s) {
			return p.FastingHours, p.EatingHours, nil
		}
	}
	return timeutil.ParseSplit(s)
}
