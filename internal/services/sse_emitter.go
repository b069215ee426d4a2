package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/yungbote/brandcraft-backend/internal/carousel"
	"github.com/yungbote/brandcraft-backend/internal/observability"
	"github.com/yungbote/brandcraft-backend/internal/platform/logger"
	"github.com/yungbote/brandcraft-backend/internal/realtime"
	"github.com/yungbote/brandcraft-backend/internal/realtime/bus"
)

type SSEEmitter interface {
	Emit(ctx context.Context, msg realtime.SSEMessage)
}

type HubEmitter struct{ Hub *realtime.SSEHub }

func (e *HubEmitter) Emit(_ context.Context, msg realtime.SSEMessage) {
	e.Hub.Broadcast(msg)
}

type BusEmitter struct {
	Bus bus.Bus
	Log *logger.Logger
}

func (e *BusEmitter) Emit(ctx context.Context, msg realtime.SSEMessage) {
	if err := e.Bus.Publish(ctx, msg); err != nil && e.Log != nil {
		e.Log.Warn("SSE publish failed", "channel", msg.Channel, "event", msg.Event, "error", err)
	}
}

type nopEmitter struct{}

func (nopEmitter) Emit(context.Context, realtime.SSEMessage) {}

func emitterOrNop(e SSEEmitter) SSEEmitter {
	if e == nil {
		return nopEmitter{}
	}
	return e
}

func emitToUser(ctx context.Context, e SSEEmitter, userID uuid.UUID, event realtime.SSEEvent, data any) {
	if userID == uuid.Nil {
		return
	}
	e.Emit(ctx, realtime.SSEMessage{Channel: realtime.UserChannel(userID), Event: event, Data: data})
}

type ToastLevel string

const (
	ToastInfo    ToastLevel = "info"
	ToastSuccess ToastLevel = "success"
	ToastError   ToastLevel = "error"
)

type Toast struct {
	Level   ToastLevel `json:"level"`
	Message string     `json:"message"`
}

// userToastNotifier pushes carousel notifications to every open stream of
// one user.
type userToastNotifier struct {
	emit    SSEEmitter
	userID  uuid.UUID
	metrics *observability.Metrics
}

func NewUserToastNotifier(emit SSEEmitter, userID uuid.UUID, metrics *observability.Metrics) carousel.Notifier {
	return &userToastNotifier{emit: emitterOrNop(emit), userID: userID, metrics: metrics}
}

func (n *userToastNotifier) toast(ctx context.Context, level ToastLevel, msg string) {
	n.metrics.IncNotification(string(level))
	emitToUser(context.WithoutCancel(ctx), n.emit, n.userID, realtime.SSEEventToast, Toast{Level: level, Message: msg})
}

func (n *userToastNotifier) Info(ctx context.Context, msg string)    { n.toast(ctx, ToastInfo, msg) }
func (n *userToastNotifier) Success(ctx context.Context, msg string) { n.toast(ctx, ToastSuccess, msg) }
func (n *userToastNotifier) Error(ctx context.Context, msg string)   { n.toast(ctx, ToastError, msg) }
