package consumer

import (
	"context"
	"encoding/json"

	"uni-leave-portal/internal/events"
	"uni-leave-portal/internal/timetable"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeSubstitutionFilled drops the cached day view for the affected date
// whenever a substitution slot fills, so the next dashboard load sees the
// cover assignment.
func ConsumeSubstitutionFilled(
	ctx context.Context,
	reader *kafkago.Reader,
	timetableService timetable.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.substitution_filled")
	log.Info("substitution filled consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("substitution filled consumer stopped")
				return
			}
			log.Error("fetch substitution filled message failed", zap.Error(err))
			continue
		}

		var event events.SubstitutionFilledEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode substitution_filled event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := timetableService.InvalidateDayView(ctx, event.Date); err != nil {
			log.Error("invalidate day view failed",
				zap.String("leave_id", event.LeaveID),
				zap.String("date", event.Date),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit substitution filled message failed", zap.Error(err))
			continue
		}

		log.Info("day view invalidated from substitution_filled event",
			zap.String("leave_id", event.LeaveID),
			zap.String("date", event.Date),
			zap.Int("slot", event.Slot),
			zap.Bool("force_assigned", event.ForceAssigned),
		)
	}
}
