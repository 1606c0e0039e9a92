package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/isidore-books/isidore/internal/config"
	"github.com/isidore-books/isidore/internal/log"
	"github.com/isidore-books/isidore/internal/server"
	"github.com/isidore-books/isidore/internal/store"
	"github.com/isidore-books/isidore/internal/worker"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	greetingBanner = `
██ ███████ ██ ██████   ██████  ██████  ███████
██ ██      ██ ██   ██ ██    ██ ██   ██ ██
██ ███████ ██ ██   ██ ██    ██ ██████  █████
██      ██ ██ ██   ██ ██    ██ ██   ██ ██
██ ███████ ██ ██████   ██████  ██   ██ ███████
`
)

var (
	configFile string
	library    string
	host       string
	port       int

	rootCmd = &cobra.Command{
		Use:   "isidore",
		Short: "Isidore serves a Calibre library over HTTP and OPDS",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			if _, err := config.GetConfig(); err != nil {
				fmt.Println("Error loading config:", err)
				os.Exit(1)
			}
			if configFile != "" {
				if _, err := config.ParseFile(configFile); err != nil {
					fmt.Println("Error parsing config file:", err)
					os.Exit(1)
				}
			}
			if library != "" {
				config.Opts.Library = library
				config.Opts.MetaDSN = ""
				if _, err := config.GetConfig(); err != nil {
					fmt.Println("Error loading config:", err)
					os.Exit(1)
				}
			}
			if host != "" {
				config.Opts.Host = host
			}
			if port != 0 {
				config.Opts.Port = port
			}

			log.Logger = log.NewLogger()
			defer log.Logger.Sync()

			fmt.Print(greetingBanner)

			s, err := store.Open(config.Opts.MetaDSN, config.Opts.QueryTimeout)
			if err != nil {
				log.Error("Error opening Calibre library", zap.Error(err))
				os.Exit(1)
			}
			defer s.Close()

			log.Info("Calibre library opened",
				zap.String("path", config.Opts.MetaDSN),
				zap.Int("user_version", s.UserVersion()),
				zap.Time("last_modified", s.LastModified()),
				zap.Bool("has_notes", s.HasNotes()))

			pool := worker.NewPool(s, 1)
			go worker.Watch(ctx, s, pool, config.Opts.MetaDSN,
				time.Duration(config.Opts.WatchInterval)*time.Second)

			srv, err := server.StartServer(ctx, s)
			if err != nil {
				log.Error("Error creating server", zap.Error(err))
				os.Exit(1)
			}

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit

			log.Info("Shutting down")
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			srv.Shutdown(shutdownCtx)
		},
	}
)

func init() {
	rootCmd.Flags().StringVarP(&configFile, "config", "c", "", "config file")
	rootCmd.Flags().StringVarP(&library, "library", "l", "", "Calibre library directory")
	rootCmd.Flags().StringVar(&host, "host", "", "host to listen on")
	rootCmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
