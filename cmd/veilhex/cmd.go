package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	stdslog "log/slog"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/unkn0wn-root/veilhex"
	"github.com/unkn0wn-root/veilhex/batch"
	"github.com/unkn0wn-root/veilhex/codec"
	asynchook "github.com/unkn0wn-root/veilhex/hooks/async"
	vlogrus "github.com/unkn0wn-root/veilhex/log/logrus"
	vslog "github.com/unkn0wn-root/veilhex/log/slog"
	vzap "github.com/unkn0wn-root/veilhex/log/zap"
	pr "github.com/unkn0wn-root/veilhex/provider"
	"github.com/unkn0wn-root/veilhex/provider/bigcache"
	"github.com/unkn0wn-root/veilhex/provider/redis"
	"github.com/unkn0wn-root/veilhex/provider/ristretto"
	"github.com/unkn0wn-root/veilhex/sloghooks"
)

const version = "0.1.0"

func newCommand() *cli.Command {
	return &cli.Command{
		Name:      "veilhex",
		Usage:     "convert and validate a dataset of veiled hex entries",
		Version:   version,
		ArgsUsage: "<input.json>",
		Flags:     flags(),
		Action:    runAction,
	}
}

func flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "output-dir",
			Aliases: []string{"o"},
			Value:   "output",
			Usage:   "directory for output files",
			Sources: cli.EnvVars("VEILHEX_OUTPUT_DIR"),
		},
		&cli.BoolFlag{
			Name:    "debug",
			Usage:   "enable debug logging",
			Sources: cli.EnvVars("VEILHEX_DEBUG"),
		},
		&cli.StringFlag{
			Name:    "log-file",
			Usage:   "also write logs to this file (rotated)",
			Sources: cli.EnvVars("VEILHEX_LOG_FILE"),
		},
		&cli.StringFlag{
			Name:    "logger",
			Value:   "zap",
			Usage:   "log backend: zap, logrus or slog",
			Sources: cli.EnvVars("VEILHEX_LOGGER"),
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Value:   string(codec.FormatJSON),
			Usage:   "artifact format: " + strings.Join(codec.Formats(), ", "),
			Sources: cli.EnvVars("VEILHEX_FORMAT"),
		},
		&cli.BoolFlag{
			Name:    "veil",
			Usage:   "veil the artifact bytes with the codec",
			Sources: cli.EnvVars("VEILHEX_VEIL"),
		},
		&cli.StringFlag{
			Name:    "memo",
			Value:   "none",
			Usage:   "encode memo: none, ristretto, bigcache or redis",
			Sources: cli.EnvVars("VEILHEX_MEMO"),
		},
		&cli.StringFlag{
			Name:    "redis-url",
			Value:   "redis://localhost:6379/0",
			Usage:   "redis URL for --memo redis",
			Sources: cli.EnvVars("VEILHEX_REDIS_URL"),
		},
		&cli.DurationFlag{
			Name:    "memo-ttl",
			Value:   time.Hour,
			Usage:   "lifetime of memoised encodings",
			Sources: cli.EnvVars("VEILHEX_MEMO_TTL"),
		},
	}
}

func runAction(ctx context.Context, cmd *cli.Command) error {
	input := cmd.Args().First()
	if input == "" {
		return errors.New("input file is required")
	}

	out := io.Writer(os.Stderr)
	if path := cmd.String("log-file"); path != "" {
		lj := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    5,
			MaxBackups: 5,
			MaxAge:     30,
			Compress:   true,
		}
		defer lj.Close()
		out = io.MultiWriter(os.Stderr, lj)
	}

	log, flush, err := newLogger(cmd.String("logger"), cmd.Bool("debug"), out)
	if err != nil {
		return err
	}
	defer flush()

	hooks := asynchook.New(sloghooks.New(
		stdslog.New(stdslog.NewTextHandler(out, nil)),
		sloghooks.Options{EntryFailedEvery: 10},
	), 1, 1024)
	defer hooks.Close()

	memo, err := newMemo(ctx, cmd.String("memo"), cmd.String("redis-url"), cmd.Duration("memo-ttl"))
	if err != nil {
		return err
	}
	if memo != nil {
		defer memo.Close(context.Background())
	}

	p, err := batch.New(batch.Options{
		InputFile: input,
		OutputDir: cmd.String("output-dir"),
		Format:    codec.Format(cmd.String("format")),
		Veil:      cmd.Bool("veil"),
		Logger:    log,
		Hooks:     hooks,
		Memo:      memo,
		MemoTTL:   cmd.Duration("memo-ttl"),
	})
	if err != nil {
		return err
	}

	rep, err := p.Run(ctx)
	if err != nil {
		return err
	}
	log.Info("processing completed successfully", veilhex.Fields{
		"success_rate": rep.Summary.SuccessRate,
		"memo_hits":    rep.MemoHits,
		"hooks_lost":   hooks.Dropped(),
	})
	fmt.Fprintf(cmd.Root().Writer, "%d entries, %d failed, success rate %s\nsummary: %s\n",
		rep.Summary.TotalEntries, rep.Summary.FailedConversions, rep.Summary.SuccessRate, rep.SummaryPath)
	return nil
}

// newLogger builds the chosen backend writing to w. The returned func flushes
// buffered output.
func newLogger(kind string, debug bool, w io.Writer) (veilhex.Logger, func(), error) {
	switch kind {
	case "zap", "":
		level := zapcore.InfoLevel
		if debug {
			level = zapcore.DebugLevel
		}
		enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		l := zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), level))
		return vzap.New(l), func() { _ = l.Sync() }, nil
	case "logrus":
		l := logrus.New()
		l.SetOutput(w)
		if debug {
			l.SetLevel(logrus.DebugLevel)
		}
		return vlogrus.New(l), func() {}, nil
	case "slog":
		level := stdslog.LevelInfo
		if debug {
			level = stdslog.LevelDebug
		}
		h := stdslog.NewTextHandler(w, &stdslog.HandlerOptions{Level: level})
		return vslog.Logger{L: stdslog.New(h)}, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown logger %q (want zap, logrus or slog)", kind)
	}
}

// newMemo returns nil for "none". ttl bounds BigCache's global life window.
func newMemo(ctx context.Context, kind, redisURL string, ttl time.Duration) (pr.Provider, error) {
	switch kind {
	case "none", "":
		return nil, nil
	case "ristretto":
		return ristretto.New(ristretto.DefaultConfig())
	case "bigcache":
		return bigcache.New(ctx, bigcache.Config{LifeWindow: ttl})
	case "redis":
		return redis.Dial(ctx, redisURL)
	default:
		return nil, fmt.Errorf("unknown memo %q (want none, ristretto, bigcache or redis)", kind)
	}
}
