package tasks

import (
	"context"

	"github.com/briefcast/briefcast/app/model"
	"github.com/briefcast/briefcast/app/news"
)

// TaskSchedulerInterface defines the interface for task scheduling operations.
// Used by the main application to manage background task processing.
// Example usage:
//
//	scheduler := NewScheduler(fetcher)
//	scheduler.Start()
//	defer scheduler.Stop()
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}

// FetcherInterface is the slice of the article fetcher the warm tasks use.
type FetcherInterface interface {
	Run(ctx context.Context, topicName string, g model.GeoContext, maxResults int) news.Result
}
