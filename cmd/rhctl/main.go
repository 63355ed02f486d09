package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/cheddar/hoodbot/pkg/config"
	"github.com/cheddar/hoodbot/pkg/logger"
	"github.com/cheddar/hoodbot/pkg/secretstore"
	"github.com/cheddar/hoodbot/pkg/shutdown"
	"github.com/cheddar/hoodbot/robinhood/client"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML config file (optional)")
		envPath    = flag.String("env", ".env", ".env file loaded into the environment when present")
		timeout    = flag.Duration("timeout", 2*time.Minute, "overall deadline of the command")
	)
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	if err := godotenv.Load(*envPath); err != nil && !os.IsNotExist(errors.Cause(err)) {
		fmt.Fprintf(os.Stderr, "warning: %s: %v\n", *envPath, err)
	}

	cfg, err := config.LoadFromFile(*configPath)
	if err != nil {
		fatal(err)
	}
	if err := logger.Init(logger.Config{
		Level:      cfg.Log.Level,
		OutputFile: cfg.Log.File,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
		Quiet:      cfg.Log.File != "",
	}); err != nil {
		fatal(err)
	}

	cmd, ok := lookupCommand(flag.Arg(0))
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", flag.Arg(0))
		usage()
		os.Exit(2)
	}

	sm := shutdown.NewManager()
	sm.OnShutdown("logger", func(context.Context) error { return logger.Close() })

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	ctx, cancel := context.WithTimeout(ctx, *timeout)

	runErr := run(ctx, cfg, sm, cmd, flag.Args()[1:])

	cancel()
	stop()
	closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
	_ = sm.Shutdown(closeCtx)
	closeCancel()

	if runErr != nil {
		fatal(runErr)
	}
}

func run(ctx context.Context, cfg *config.Config, sm *shutdown.Manager, cmd command, args []string) error {
	var creds client.Credentials
	if cmd.auth {
		var err error
		creds, err = resolveCredentials(cfg, sm)
		if err != nil {
			return err
		}
	}
	return cmd.run(ctx, newClient(cfg, creds), args, os.Stdout)
}

// resolveCredentials prefers the environment and config file, then falls
// back to the secret store.
func resolveCredentials(cfg *config.Config, sm *shutdown.Manager) (client.Credentials, error) {
	if cfg.HasCredentials() {
		return client.Credentials{Username: cfg.Credentials.Username, Password: cfg.Credentials.Password}, nil
	}

	key, err := secretstore.ParseKey(cfg.Secrets.Key)
	if err != nil {
		return client.Credentials{}, errors.Wrap(err, "secret key")
	}
	if key == nil {
		return client.Credentials{}, errors.Errorf("no credentials: set %s/%s or %s for the secret store",
			config.EnvUsername, config.EnvPassword, config.EnvSecretKey)
	}

	ss, err := secretstore.Open(secretstore.OpenOptions{Path: cfg.Secrets.DB, EncryptionKey: key, ReadOnly: true})
	if err != nil {
		return client.Credentials{}, err
	}
	sm.OnShutdown("secretstore", func(context.Context) error { return ss.Close() })

	user, pass, ok, err := ss.Credentials()
	if err != nil {
		return client.Credentials{}, err
	}
	if !ok {
		return client.Credentials{}, errors.Errorf("secret store %s holds no credentials", cfg.Secrets.DB)
	}
	return client.Credentials{Username: user, Password: pass}, nil
}

func newClient(cfg *config.Config, creds client.Credentials) *client.Client {
	cc := client.DefaultClientConfig()
	cc.BaseURL = cfg.HTTP.BaseURL
	cc.APIVersion = cfg.HTTP.APIVersion
	if cfg.HTTP.UserAgent != "" {
		cc.UserAgent = cfg.HTTP.UserAgent
	}
	cc.HTTP = client.TransportOptions{
		Timeout:           cfg.HTTP.Timeout(),
		RetryCount:        cfg.HTTP.RetryCount,
		Proxy:             cfg.HTTP.Proxy,
		RequestsPerSecond: cfg.HTTP.RequestsPerSecond,
		Debug:             cfg.HTTP.Debug,
		Logger:            logger.Component("robinhood.http"),
	}
	cc.MaxPages = cfg.Pagination.MaxPages
	cc.Logger = logger.Component("robinhood")
	return client.NewClientWithConfig(creds, cc)
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: rhctl [flags] <command> [args]\n\ncommands:\n")
	for _, c := range commands {
		fmt.Fprintf(os.Stderr, "  %-12s %s\n", c.name, c.usage)
	}
	fmt.Fprintf(os.Stderr, "\nflags:\n")
	flag.PrintDefaults()
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", strings.TrimSpace(err.Error()))
	os.Exit(1)
}
