package inbound

import (
	"context"
	"log/slog"

	"github.com/samber/lo"
	"github.com/shandysiswandi/backlink/internal/pkg/config"
	"github.com/shandysiswandi/backlink/internal/pkg/goroutine"
	"github.com/shandysiswandi/backlink/internal/pkg/instrument"
	"github.com/shandysiswandi/backlink/internal/pkg/messaging"
	"github.com/shandysiswandi/backlink/internal/pkg/uid"
	"github.com/shandysiswandi/backlink/internal/shared/event"
)

type consumer struct {
	name        string
	topic       string // destination where publisher sent message
	queueGroup  string
	concurrency int
	handler     messaging.Handler
}

func consumers(h *MQHandler, cfg config.Config) []consumer {
	all := []consumer{
		{
			name:        event.OTPIssuedConsumerNotification,
			topic:       event.OTPIssuedDestination,
			queueGroup:  event.OTPIssuedConsumerNotification,
			concurrency: max(cfg.GetInt("modules.notification.concurrency"), 1),
			handler:     h.OTPIssuedNotification,
		},
	}

	// An empty list enables every consumer.
	enabled := cfg.GetArray("modules.notification.consumer_names")
	if len(enabled) == 0 {
		return all
	}

	return lo.Filter(all, func(c consumer, _ int) bool {
		return lo.Contains(enabled, c.name)
	})
}

func RegisterMQConsumer(
	ctx context.Context,
	cfg config.Config,
	routine *goroutine.Manager,
	messenger messaging.Consumer,
	uuid uid.StringID,
	uc uc,
	ins instrument.Instrumentation,
) {
	mqHandler := &MQHandler{uc: uc, uuid: uuid, ins: ins}

	for _, c := range consumers(mqHandler, cfg) {
		routine.Go(ctx, func(pCtx context.Context) error {
			slog.InfoContext(ctx, "Running job for handling consumer", "consumer", c.name)
			return messenger.Consume(pCtx,
				c.topic,
				c.handler,
				messaging.WithQueueGroup(c.queueGroup),
				messaging.WithAutoAck(true),
				messaging.WithConcurrency(c.concurrency),
			)
		})
	}
}
