package tasks

import (
	"context"
	"log/slog"

	"github.com/briefcast/briefcast/app/model"
)

// Popular topics are warmed at the default fetch size so interactive
// requests at that size hit the cache.
const warmFetchSize = 6

type WarmTopicTask struct {
	Task
	fetcher FetcherInterface
}

func NewWarmTopicTask(topicName string, fetcher FetcherInterface) *WarmTopicTask {
	return &WarmTopicTask{
		Task:    NewTask(TaskTypeWarmTopic, topicName),
		fetcher: fetcher,
	}
}

func (t *WarmTopicTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	result := t.fetcher.Run(ctx, t.Topic, model.GeoContext{}, warmFetchSize)

	if result.Note != "" {
		slog.Warn("Task skipped", "type", "WarmTopic", "topic", t.Topic, "note", result.Note)
		return nil
	}

	if len(result.Articles) == 0 {
		slog.Warn("Task completed with no articles", "type", "WarmTopic", "topic", t.Topic, "duration", t.GetDuration())
		return nil
	}

	slog.Info("Task completed",
		"type", "WarmTopic",
		"topic", t.Topic,
		"articles", len(result.Articles),
		"duration", t.GetDuration())

	return nil
}
