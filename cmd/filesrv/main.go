package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/shravanasati/filesrv/internal/config"
	"github.com/shravanasati/filesrv/internal/fallback"
	"github.com/shravanasati/filesrv/internal/files"
	"github.com/shravanasati/filesrv/internal/middleware"
	"github.com/shravanasati/filesrv/internal/resolve"
	"github.com/shravanasati/filesrv/internal/server"
)

var (
	errorColor = color.New(color.FgRed, color.Bold)
	warnColor  = color.New(color.FgYellow)
	infoColor  = color.New(color.FgCyan, color.Bold)
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "path to a TOML or YAML config file")
	addr := flag.String("addr", "", "address to listen on, overrides the config")
	root := flag.String("root", "", "directory to serve, overrides the config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		errorColor.Fprintln(os.Stderr, err)
		return 2
	}
	if *addr != "" {
		cfg.Address = *addr
	}
	if *root != "" {
		cfg.Root = *root
	}

	resolver, err := resolve.New(cfg.Root)
	if err != nil {
		errorColor.Fprintln(os.Stderr, err)
		return 2
	}

	info, err := fallback.Inspect(cfg.Fallback)
	if err != nil {
		warnColor.Fprintf(os.Stderr, "warning: %v; every miss will be a fatal error\n", err)
	}

	logging := middleware.Logging(log.Default())
	if cfg.LogColor {
		logging = middleware.LoggingColored(log.Default())
	}
	responder := files.NewResponder(resolver, cfg.Fallback)
	handler := server.Chain(responder.Handle, logging, middleware.RequestID)

	srv, err := server.Serve(cfg.ServerOpts(), handler)
	if err != nil {
		errorColor.Fprintf(os.Stderr, "Error starting server: %v\n", err)
		return 1
	}
	defer srv.Close()

	infoColor.Printf("Server running at %s\n", displayURL(cfg.Address))
	log.Printf("serving %s, on fatal: %s", resolver.Base(), cfg.OnFatal)
	if info != nil {
		log.Printf("fallback document %s (%q, %d bytes)", info.Path, info.Title, info.Size)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	return supervise(srv, cfg.OnFatal, sigChan)
}

// supervise blocks until the process should exit and returns its exit code:
// 0 on a signal or a clean stop, 1 on an accept failure or, when onFatal is
// "exit", on the first fatal response.
func supervise(srv *server.Server, onFatal string, sig <-chan os.Signal) int {
	for {
		select {
		case <-sig:
			log.Println("Server gracefully stopped")
			return 0

		case err := <-srv.Fatal():
			if onFatal == config.OnFatalExit {
				errorColor.Fprintf(os.Stderr, "exiting after fatal error: %v\n", err)
				return 1
			}

		case <-srv.Done():
			// a fatal shutdown closes the listener before Fatal is read
			if onFatal == config.OnFatalExit {
				select {
				case err := <-srv.Fatal():
					errorColor.Fprintf(os.Stderr, "exiting after fatal error: %v\n", err)
					return 1
				default:
				}
			}
			if err := srv.Wait(); err != nil {
				errorColor.Fprintf(os.Stderr, "server stopped: %v\n", err)
				return 1
			}
			return 0
		}
	}
}

// displayURL turns a listen address into something a browser can open.
func displayURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr + "/"
	}
	return "http://" + addr + "/"
}
