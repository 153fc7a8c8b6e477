package main

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/seo-optimizer/seoreport/analyzer"
	"github.com/seo-optimizer/seoreport/storage"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *log.Logger
	Store    *storage.Store
	Analyzer *analyzer.Analyzer
	Now      func() time.Time
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config   string `help:"YAML configuration file" type:"path"`
	DataDir  string `name:"data-dir" help:"Directory holding saved analyses" type:"path"`
	LogLevel string `name:"log-level" help:"Log level (debug, info, warn, error)"`

	Analyze AnalyzeCmd `cmd:"" help:"Analyze a page and print or write the report"`
	List    ListCmd    `cmd:"" help:"List saved analyses, newest first"`
	Show    ShowCmd    `cmd:"" help:"Print a saved analysis"`
}

// AnalyzeCmd is the "analyze" subcommand.
type AnalyzeCmd struct {
	URL    string `arg:"" help:"Page URL"`
	Format string `short:"f" default:"json" enum:"${formats}" help:"Output format (${formats})"`
	Output string `short:"o" type:"path" help:"Write the report to this file"`
	Save   bool   `help:"Store the analysis in the data directory"`
	Notes  string `help:"Notes stored with --save"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	Filename string `arg:"" help:"Saved analysis filename as printed by list"`
	Format   string `short:"f" default:"json" enum:"${formats}" help:"Output format (${formats})"`
	Output   string `short:"o" type:"path" help:"Write the report to this file"`
}
