package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"exprCalc/internal/app"
)

func main() {
	envFile := flag.String("env", "", "path to .env file (overrides CALCULATOR_ENV_FILE)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(app.Version)
		return
	}
	if *envFile != "" {
		_ = os.Setenv(app.AppName+"_ENV_FILE", *envFile)
	}

	cfg, err := app.LoadCfg()
	if err != nil {
		slog.Error("config load failed", "error", err)
		os.Exit(1)
	}

	a := app.New(cfg)
	if err := a.Run(); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}
