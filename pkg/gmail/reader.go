package gmail

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ListUnread returns one summary per unread message, in listing order. The
// per-message metadata fetches run concurrently; the first failure aborts the
// whole call and no partial list is returned. Zero unread messages yield an
// empty slice, not an error.
func ListUnread(ctx context.Context, p Provider) ([]UnreadSummary, error) {
	refs, err := p.ListUnread(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]UnreadSummary, len(refs))
	g, ctx := errgroup.WithContext(ctx)
	for i, ref := range refs {
		g.Go(func() error {
			msg, err := p.GetMessage(ctx, ref.ID, "From", "Subject")
			if err != nil {
				return err
			}
			summaries[i] = UnreadSummary{
				Sender:   msg.Header("From"),
				Subject:  msg.Header("Subject"),
				Body:     msg.Snippet,
				EmailID:  ref.ID,
				ThreadID: ref.ThreadID,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summaries, nil
}
