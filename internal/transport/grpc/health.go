// grpc - gRPC-сервер для health-проверок (mesh/k8s): grpc.health.v1 + метрики go-grpc-prometheus.
// Статус SERVING/NOT_SERVING следует за доступностью MongoDB.
package grpc

import (
	"context"
	"log/slog"
	"net"
	"sync/atomic"
	"time"

	grpc_prometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName - имя сервиса в grpc.health.v1 помимо общего "".
const ServiceName = "govjobs.Announcements"

// Pinger - зависимость, по которой судим о готовности (хранилище).
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthServer - gRPC-сервер с единственным сервисом health.
type HealthServer struct {
	srv    *grpc.Server
	health *health.Server
	pinger Pinger
	log    *slog.Logger
	ready  atomic.Bool
}

// NewHealthServer собирает сервер: unaryHealth/streamHealth, затем prometheus.
// Начальный статус - NOT_SERVING до первой успешной проверки.
func NewHealthServer(log *slog.Logger, timeout time.Duration, pinger Pinger) *HealthServer {
	if log == nil {
		log = slog.Default()
	}

	grpc_prometheus.EnableHandlingTimeHistogram()

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			unaryHealth(log, timeout),
			grpc_prometheus.UnaryServerInterceptor,
		),
		grpc.ChainStreamInterceptor(
			streamHealth(log),
			grpc_prometheus.StreamServerInterceptor,
		),
	)

	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	grpc_prometheus.Register(srv)

	h := &HealthServer{srv: srv, health: hs, pinger: pinger, log: log}
	h.set(false)

	return h
}

// Ready - последний известный статус (для HTTP /healthz).
func (h *HealthServer) Ready() bool {
	return h.ready.Load()
}

// Check пингует зависимость и обновляет статус. Возвращает новый статус.
func (h *HealthServer) Check(ctx context.Context) bool {
	ok := true
	if h.pinger != nil {
		if err := h.pinger.Ping(ctx); err != nil {
			ok = false
			if h.ready.Load() {
				h.log.Warn("health_ping_failed", slog.String("err", err.Error()))
			}
		}
	}

	if ok != h.ready.Load() {
		h.log.Info("health_status_changed", slog.Bool("serving", ok))
	}
	h.set(ok)

	return ok
}

// Watch вызывает Check сразу и затем каждые interval, пока ctx жив.
func (h *HealthServer) Watch(ctx context.Context, interval time.Duration, pingTimeout time.Duration) {
	check := func() {
		pctx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		h.Check(pctx)
	}

	check()

	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			check()
		}
	}
}

// Serve блокируется до остановки сервера.
func (h *HealthServer) Serve(lis net.Listener) error {
	err := h.srv.Serve(lis)
	if err == grpc.ErrServerStopped {
		return nil
	}

	return err
}

// Shutdown переводит статус в NOT_SERVING и останавливает сервер;
// по истечении ctx - принудительно.
func (h *HealthServer) Shutdown(ctx context.Context) {
	h.health.Shutdown()
	h.ready.Store(false)

	done := make(chan struct{})
	go func() {
		h.srv.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		h.log.Warn("grpc_force_stop")
		h.srv.Stop()
	}
}

func (h *HealthServer) set(ok bool) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if ok {
		st = healthpb.HealthCheckResponse_SERVING
	}

	h.ready.Store(ok)
	h.health.SetServingStatus("", st)
	h.health.SetServingStatus(ServiceName, st)
}
