// Command cdx-grpcd serves the BOM service and a CAS over gRPC.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"

	"xdao.co/sbom/codec"
	"xdao.co/sbom/model"
	"xdao.co/sbom/service"
	"xdao.co/sbom/storage"
	"xdao.co/sbom/storage/casconfig"
	"xdao.co/sbom/storage/casregistry"
	"xdao.co/sbom/storage/grpccas"

	_ "xdao.co/sbom/storage/localfs"
)

type options struct {
	Listen           string
	MetricsListen    string
	Backend          string
	Config           string
	PreferredBackend string
	LogLevel         string
	MaxDocumentSize  int64
	ListBackends     bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out, errOut io.Writer) int {
	var o options
	fs := flag.NewFlagSet("cdx-grpcd", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.StringVar(&o.Listen, "listen", "127.0.0.1:7777", "gRPC listen address")
	fs.StringVar(&o.MetricsListen, "metrics-listen", "", "Serve Prometheus metrics on this address (disabled when empty)")
	fs.StringVar(&o.Backend, "backend", "localfs", "CAS backend name")
	fs.StringVar(&o.Config, "config", "", "CAS config file (JSON or YAML); replaces --backend")
	fs.StringVar(&o.PreferredBackend, "preferred-backend", "", "With --config, the backend (name or id) that takes writes")
	fs.StringVar(&o.LogLevel, "log-level", "info", "Log level")
	fs.Int64Var(&o.MaxDocumentSize, "max-document-size", 0, "Largest BOM accepted in bytes; 0 uses the codec default")
	fs.BoolVar(&o.ListBackends, "list-backends", false, "List supported backends and exit")
	casregistry.RegisterFlags(fs, casregistry.UsageDaemon)

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if o.ListBackends {
		for _, b := range casregistry.List(casregistry.UsageDaemon) {
			if b.Description == "" {
				_, _ = fmt.Fprintf(out, "%s\n", b.Name)
				continue
			}
			_, _ = fmt.Fprintf(out, "%s\t%s\n", b.Name, b.Description)
		}
		return 0
	}

	log := logrus.New()
	log.SetOutput(errOut)
	lvl, err := logrus.ParseLevel(o.LogLevel)
	if err != nil {
		fmt.Fprintf(errOut, "--log-level: %v\n", err)
		return 2
	}
	log.SetLevel(lvl)

	cas, closeFn, err := openCAS(o)
	if err != nil {
		log.WithError(err).Error("open CAS")
		return 2
	}
	defer func() {
		if err := closeFn(); err != nil {
			log.WithError(err).Warn("close CAS")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := serve(ctx, o, cas, log); err != nil {
		log.WithError(err).Error("server stopped")
		return 1
	}
	return 0
}

func openCAS(o options) (storage.CAS, func() error, error) {
	var (
		cas     storage.CAS
		closeFn func() error
		err     error
	)
	if o.Config != "" {
		cfg, lerr := casconfig.LoadFile(o.Config)
		if lerr != nil {
			return nil, nil, lerr
		}
		cas, closeFn, err = cfg.Open(casregistry.UsageDaemon, o.PreferredBackend)
	} else {
		cas, closeFn, err = casregistry.Open(o.Backend, casregistry.UsageDaemon)
	}
	if err != nil {
		return nil, nil, err
	}
	if closeFn == nil {
		closeFn = func() error { return nil }
	}
	return cas, closeFn, nil
}

// newServer builds the gRPC server with both services registered and
// their metrics on reg.
func newServer(cas storage.CAS, limits codec.Limits, reg prometheus.Registerer, log logrus.FieldLogger) (*grpc.Server, error) {
	metrics, err := service.NewMetrics(reg)
	if err != nil {
		return nil, err
	}
	s := grpc.NewServer(grpc.ChainUnaryInterceptor(logRequests(log)))
	service.RegisterBOMServer(s, &service.Server{
		Options: model.Options{CAS: cas, Limits: limits},
		Metrics: metrics,
	})
	grpccas.RegisterCASServer(s, &grpccas.Server{CAS: cas})
	return s, nil
}

func logRequests(log logrus.FieldLogger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		entry := log.WithFields(logrus.Fields{
			"method":   info.FullMethod,
			"code":     status.Code(err).String(),
			"duration": time.Since(start),
		})
		if err != nil {
			entry.WithError(err).Warn("request failed")
		} else {
			entry.Debug("request")
		}
		return resp, err
	}
}

func serve(ctx context.Context, o options, cas storage.CAS, log logrus.FieldLogger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	srv, err := newServer(cas, codec.Limits{MaxDocumentSize: o.MaxDocumentSize}, reg, log)
	if err != nil {
		return err
	}
	lis, err := net.Listen("tcp", o.Listen)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.WithField("addr", lis.Addr().String()).WithField("backend", backendName(o)).Info("cdx-grpcd listening")
		return srv.Serve(lis)
	})

	var metricsSrv *http.Server
	if o.MetricsListen != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		metricsSrv = &http.Server{Addr: o.MetricsListen, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
		g.Go(func() error {
			log.WithField("addr", o.MetricsListen).Info("serving metrics")
			if err := metricsSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")
		srv.GracefulStop()
		if metricsSrv != nil {
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return metricsSrv.Shutdown(sctx)
		}
		return nil
	})
	return g.Wait()
}

func backendName(o options) string {
	if o.Config != "" {
		return o.Config
	}
	return o.Backend
}
