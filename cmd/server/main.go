// Command server serves the viewer applications and the browser API.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/doclens/doclens/internal/server"
	"github.com/doclens/doclens/pkg/logging"
	"github.com/doclens/doclens/pkg/pipeline"
)

func main() {
	port := flag.Int("port", 0, "listen port (default from config)")
	staticRoot := flag.String("static", "", "static file root (default from config)")
	flag.Parse()

	config := pipeline.DefaultPipelineConfig()
	config.Logging = logging.ServerLogConfig()
	config.Server.Port = pipeline.EnvInt("PORT", config.Server.Port)
	if *port > 0 {
		config.Server.Port = *port
	}
	if *staticRoot != "" {
		config.Server.StaticRoot = *staticRoot
	}

	if err := logging.SetupLogger(config.Logging); err != nil {
		fmt.Printf("Failed to setup logging: %v\n", err)
		os.Exit(1)
	}
	logger := logging.GetServerLogger("main")

	app := server.NewApp(config)
	addr := fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)

	go func() {
		logger.Info().Str("addr", addr).Msg("Starting server")
		if err := app.Listen(addr); err != nil {
			logger.Fatal().Err(err).Msg("Server failed")
		}
	}()

	fmt.Printf("Serving at http://localhost:%d\n", config.Server.Port)
	fmt.Println()
	fmt.Println("Available applications:")
	fmt.Printf("  - Person Browser:    http://localhost:%d/person_browser.html\n", config.Server.Port)
	fmt.Printf("  - Network Viewer:    http://localhost:%d/network_map.html\n", config.Server.Port)
	fmt.Printf("  - Timeline Explorer: http://localhost:%d/timeline_explorer.html\n", config.Server.Port)
	fmt.Printf("  - Geographic Map:    http://localhost:%d/geographic_map.html\n", config.Server.Port)
	fmt.Println()
	fmt.Println("Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server")
	if err := app.Shutdown(); err != nil {
		logger.Error().Err(err).Msg("Shutdown error")
	}
}
