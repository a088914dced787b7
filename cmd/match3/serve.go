package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/platform/tui"
	"github.com/vovakirdan/tui-match3/internal/platform/web"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagHTTPAddr    string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the match-3 SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with a mode picker menu.
Scores are stored per-server (all users share the same leaderboard);
unfinished boards are saved per SSH username.

With --http, a read-only JSON leaderboard is served as well:
  GET /api/modes
  GET /api/scores/{mode}?limit=10
  GET /api/stats
  GET /healthz

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.match3/host_key

Examples:
  match3 serve                           # Listen on :23234 with auto-generated key
  match3 serve --ssh :2222               # Listen on port 2222
  match3 serve --http :8080              # Also serve the JSON leaderboard
  match3 serve --host-key ./my_host_key  # Use specific host key
  match3 serve --db ./scores.db          # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP leaderboard address (disabled if empty)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	logger, closeLog := mustLogger("match3-ssh", false)
	defer closeLog()

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		Store:       store,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		TickRate:    flagFPS,
		Logger:      logger,
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpDone := make(chan error, 1)
	if flagHTTPAddr != "" {
		httpSrv := web.New(store, web.Config{
			Addr:   flagHTTPAddr,
			Logger: logger.WithPrefix("match3-http"),
		})
		go func() {
			err := httpSrv.ListenAndServe(ctx)
			if err != nil {
				stop() // take the SSH server down with it
			}
			httpDone <- err
		}()
	} else {
		close(httpDone)
	}

	fmt.Printf("Starting match-3 SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", port(cfg.Address))
	if flagHTTPAddr != "" {
		fmt.Printf("Leaderboard at http://localhost:%s/api/modes\n", port(flagHTTPAddr))
	}
	fmt.Println("Press Ctrl+C to stop")

	sshErr := server.ListenAndServe(ctx)
	stop()
	httpErr := <-httpDone

	if sshErr != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", sshErr)
		os.Exit(1)
	}
	if httpErr != nil {
		fmt.Fprintf(os.Stderr, "HTTP server error: %v\n", httpErr)
		os.Exit(1)
	}
}

// port returns the port part of a host:port address.
func port(addr string) string {
	if _, p, err := net.SplitHostPort(addr); err == nil {
		return p
	}
	return addr
}
