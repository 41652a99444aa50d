package provider

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

type ChatterEntry struct {
	Name    string
	Chatter IChatter
}

type groupChatter struct {
	items []ChatterEntry
}

// NewGroupChatter tries each chatter in order until one answers.
func NewGroupChatter(items []ChatterEntry) IChatter {
	if len(items) == 0 {
		return nil
	}
	return &groupChatter{items: items}
}

func (g *groupChatter) Chat(ctx context.Context, prompt string) (*Reply, error) {
	var lastErr error
	for i, item := range g.items {
		if item.Chatter == nil {
			continue
		}
		res, err := item.Chatter.Chat(ctx, prompt)
		if err == nil {
			return res, nil
		}
		lastErr = err
		logutil.GetLogger(ctx).Warn("chat provider failed",
			zap.Int("index", i), zap.String("name", item.Name), zap.Error(err))
	}
	if lastErr == nil {
		return nil, ErrUnavailable
	}
	return nil, lastErr
}
