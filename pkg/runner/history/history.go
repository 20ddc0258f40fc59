package history

import (
	"context"

	"tableflip.dev/fasttrack/pkg/printers"
	"tableflip.dev/fasttrack/pkg/store"
	"tableflip.dev/fasttrack/pkg/tracker"
)

type History struct {
	Persistence store.Persistence

	ShowID bool
}

func (n *History) Do(ctx context.Context) error {
	t, err := tracker.New(ctx, n.Persistence)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID}
	pp.Title("Fasting history")
	pp.History(t.History())
	return nil
}
