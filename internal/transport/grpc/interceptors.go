package grpc

import (
	"context"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	grpcstatus "google.golang.org/grpc/status"

	"github.com/pribylovaa/go-govjobs/internal/pkg/log"
)

// callLogger - логгер вызова: request_id (x-request-id от балансировщика или новый UUID),
// method и peer. Кладётся в ctx.
func callLogger(ctx context.Context, base *slog.Logger, method string) (context.Context, *slog.Logger) {
	rid := ""
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if v := md.Get("x-request-id"); len(v) > 0 {
			rid = v[0]
		}
	}
	if rid == "" {
		rid = uuid.NewString()
	}

	from := "-"
	if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
		from = p.Addr.String()
	}

	l := base.With(
		slog.String("request_id", rid),
		slog.String("method", method),
		slog.String("peer", from),
	)

	return log.Into(ctx, l), l
}

// logCall пишет итог вызова. Успешные проверки идут каждые несколько секунд,
// поэтому OK - Debug, всё остальное - Warn.
func logCall(l *slog.Logger, err error, start time.Time) {
	code := grpcstatus.Code(err)
	lvl := slog.LevelDebug
	if code != codes.OK {
		lvl = slog.LevelWarn
	}

	l.Log(context.Background(), lvl, "health_call",
		slog.String("code", code.String()),
		slog.Duration("dur", time.Since(start)),
	)
}

func panicToStatus(l *slog.Logger, r any) error {
	l.Error("health_panic",
		slog.Any("panic", r),
		slog.String("stack", string(debug.Stack())),
	)

	return grpcstatus.Error(codes.Internal, "internal server error")
}

// unaryHealth - единственный unary-интерсептор health-сервера: логгер в ctx, таймаут
// (если клиент не прислал дедлайн), паника -> codes.Internal, одна запись на вызов.
func unaryHealth(base *slog.Logger, timeout time.Duration) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		start := time.Now()
		ctx, l := callLogger(ctx, base, info.FullMethod)

		if _, ok := ctx.Deadline(); !ok && timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		defer func() {
			if r := recover(); r != nil {
				resp, err = nil, panicToStatus(l, r)
			}
			logCall(l, err, start)
		}()

		return handler(ctx, req)
	}
}

// streamHealth обслуживает Health/Watch: поток живёт долго, поэтому без таймаута,
// только логгер, восстановление после паники и запись при закрытии.
func streamHealth(base *slog.Logger) grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) (err error) {
		start := time.Now()
		ctx, l := callLogger(ss.Context(), base, info.FullMethod)

		defer func() {
			if r := recover(); r != nil {
				err = panicToStatus(l, r)
			}
			logCall(l, err, start)
		}()

		return handler(srv, &loggedStream{ServerStream: ss, ctx: ctx})
	}
}

type loggedStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *loggedStream) Context() context.Context { return s.ctx }
