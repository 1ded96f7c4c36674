package telemetry

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/grafana/pyroscope-go"
	"go.uber.org/zap"
)

// Profile type names accepted in ProfilerConfig.ProfileTypes
const (
	ProfileTypeCPU        = "cpu"
	ProfileTypeAllocSpace = "alloc_space"
	ProfileTypeInuseSpace = "inuse_space"
	ProfileTypeGoroutines = "goroutines"
	ProfileTypeMutex      = "mutex"
	ProfileTypeBlock      = "block"
)

// DefaultProfileTypes are collected when no profile type is configured.
var DefaultProfileTypes = []string{ProfileTypeCPU, ProfileTypeAllocSpace, ProfileTypeInuseSpace}

// ProfilerConfig holds Pyroscope continuous profiling configuration.
type ProfilerConfig struct {
	Enabled           bool
	ServerAddress     string // e.g. "http://pyroscope:4040"
	ApplicationName   string
	BasicAuthUser     string
	BasicAuthPassword string
	ProfileTypes      []string
	// Sampling for the mutex and block profiles. Zero means 5.
	MutexProfileFraction int
	BlockProfileRate     int
}

// Profiler wraps the Pyroscope profiler with lifecycle management.
type Profiler struct {
	profiler *pyroscope.Profiler
	logger   *zap.Logger
	config   ProfilerConfig
	mu       sync.Mutex
	stopped  bool
}

// NewProfiler starts a Pyroscope profiler. A disabled config yields a
// profiler whose Stop is a no-op.
func NewProfiler(cfg ProfilerConfig, logger *zap.Logger) (*Profiler, error) {
	p := &Profiler{logger: logger, config: cfg}
	if !cfg.Enabled {
		logger.Info("Continuous profiling disabled")
		return p, nil
	}

	if cfg.ServerAddress == "" {
		return nil, fmt.Errorf("profiler server address is required when profiling is enabled")
	}
	if cfg.ApplicationName == "" {
		return nil, fmt.Errorf("profiler application name is required when profiling is enabled")
	}

	types, err := ParseProfileTypes(cfg.ProfileTypes)
	if err != nil {
		return nil, err
	}
	for _, t := range cfg.ProfileTypes {
		switch strings.ToLower(strings.TrimSpace(t)) {
		case ProfileTypeMutex:
			runtime.SetMutexProfileFraction(positiveOr(cfg.MutexProfileFraction, 5))
		case ProfileTypeBlock:
			runtime.SetBlockProfileRate(positiveOr(cfg.BlockProfileRate, 5))
		}
	}

	tags := map[string]string{}
	if hostname := os.Getenv("HOSTNAME"); hostname != "" {
		tags["hostname"] = hostname
	}
	if podName := os.Getenv("POD_NAME"); podName != "" {
		tags["pod"] = podName
	}

	pcfg := pyroscope.Config{
		ApplicationName: cfg.ApplicationName,
		ServerAddress:   cfg.ServerAddress,
		Logger:          pyroscopeLogger{logger.Named("pyroscope").Sugar()},
		Tags:            tags,
		ProfileTypes:    types,
	}
	if cfg.BasicAuthUser != "" && cfg.BasicAuthPassword != "" {
		pcfg.BasicAuthUser = cfg.BasicAuthUser
		pcfg.BasicAuthPassword = cfg.BasicAuthPassword
	}

	profiler, err := pyroscope.Start(pcfg)
	if err != nil {
		return nil, fmt.Errorf("failed to start Pyroscope profiler: %w", err)
	}
	p.profiler = profiler

	logger.Info("Pyroscope profiler started",
		zap.String("server_address", cfg.ServerAddress),
		zap.String("application_name", cfg.ApplicationName),
		zap.Int("profile_types", len(types)),
	)
	return p, nil
}

// ParseProfileTypes maps configured profile names onto Pyroscope profile
// types. An empty list selects DefaultProfileTypes. Mutex and block each
// expand into their count and duration profiles.
func ParseProfileTypes(names []string) ([]pyroscope.ProfileType, error) {
	if len(names) == 0 {
		names = DefaultProfileTypes
	}
	var types []pyroscope.ProfileType
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case ProfileTypeCPU:
			types = append(types, pyroscope.ProfileCPU)
		case ProfileTypeAllocSpace:
			types = append(types, pyroscope.ProfileAllocObjects, pyroscope.ProfileAllocSpace)
		case ProfileTypeInuseSpace:
			types = append(types, pyroscope.ProfileInuseObjects, pyroscope.ProfileInuseSpace)
		case ProfileTypeGoroutines:
			types = append(types, pyroscope.ProfileGoroutines)
		case ProfileTypeMutex:
			types = append(types, pyroscope.ProfileMutexCount, pyroscope.ProfileMutexDuration)
		case ProfileTypeBlock:
			types = append(types, pyroscope.ProfileBlockCount, pyroscope.ProfileBlockDuration)
		default:
			return nil, fmt.Errorf("unknown profile type %q", name)
		}
	}
	return types, nil
}

func positiveOr(v, fallback int) int {
	if v <= 0 {
		return fallback
	}
	return v
}

// Stop flushes pending profiles and stops the profiler. Safe to call twice.
func (p *Profiler) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped || p.profiler == nil {
		p.stopped = true
		return nil
	}
	p.stopped = true

	if err := p.profiler.Stop(); err != nil {
		p.logger.Error("Error stopping profiler", zap.Error(err))
		return fmt.Errorf("failed to stop profiler: %w", err)
	}
	p.logger.Info("Pyroscope profiler stopped")
	return nil
}

// IsEnabled returns whether profiles are being collected.
func (p *Profiler) IsEnabled() bool {
	return p.config.Enabled && p.profiler != nil
}

// pyroscopeLogger adapts zap to pyroscope.Logger
type pyroscopeLogger struct {
	s *zap.SugaredLogger
}

func (l pyroscopeLogger) Infof(format string, args ...any)  { l.s.Infof(format, args...) }
func (l pyroscopeLogger) Debugf(format string, args ...any) { l.s.Debugf(format, args...) }
func (l pyroscopeLogger) Errorf(format string, args ...any) { l.s.Errorf(format, args...) }
