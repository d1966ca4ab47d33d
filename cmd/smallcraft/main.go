package main

import (
	"errors"
	"flag"
	"fmt"
	"github.com/fatih/color"
	"github.com/half-nothing/smallcraft-designer/internal/base"
	"github.com/half-nothing/smallcraft-designer/internal/database"
	"github.com/half-nothing/smallcraft-designer/internal/http_server"
	"github.com/half-nothing/smallcraft-designer/internal/interfaces"
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/global"
	"github.com/half-nothing/smallcraft-designer/internal/maintenance"
	"os"
)

func recoverFromError() {
	if r := recover(); r != nil {
		fmt.Printf("It looks like there are some serious errors, the details are as follows: %v", r)
	}
}

func printBanner() {
	title := color.New(color.FgHiCyan, color.Bold)
	_, _ = title.Println("Small craft designer")
	_, _ = color.New(color.FgHiBlack).Printf("version %s, config version %s\n", global.AppVersion, global.ConfigVersion)
}

func main() {
	flag.Parse()

	if !*global.NoBanner {
		printBanner()
	}

	defer recoverFromError()

	logger := base.NewLogger()
	if err := logger.Init(*global.DebugMode, *global.LogFilePath); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error occurred while initializing logger: %v\n", err)
		os.Exit(1)
	}

	logger.InfoF("Small craft designer v%s initializing...", global.AppVersion)

	cleaner := base.NewCleaner(logger)
	cleaner.Init()
	defer cleaner.Clean()

	configManager := base.NewManager(logger)
	config := configManager.Config()

	shutdownCallback, databaseOperation, err := database.ConnectDatabase(logger, config, *global.DebugMode)
	if err != nil {
		logger.FatalF("Error occurred while initializing operation, details: %v", err)
		cleaner.SetExitCode(1)
		return
	}

	cleaner.Add(shutdownCallback)

	applicationContent := interfaces.NewApplicationContent(configManager, cleaner, logger, databaseOperation)

	if err := maintenance.Run(logger, applicationContent.DesignOperation(), maintenance.OptionsFromFlags()); !errors.Is(err, maintenance.ErrNoTask) {
		if err != nil {
			logger.ErrorF("Maintenance task failed: %v", err)
			cleaner.SetExitCode(1)
		}
		return
	}

	database.Bootstrap(logger, config.Bootstrap, applicationContent.DesignOperation())

	if !config.Server.HttpServer.Enabled {
		logger.Warn("Http server disabled, nothing else to do")
		return
	}

	if err := http_server.StartHttpServer(applicationContent); err != nil {
		cleaner.SetExitCode(1)
		return
	}

	// 服务器已被清理流程关闭, 等待Cleaner退出进程
	select {}
}
