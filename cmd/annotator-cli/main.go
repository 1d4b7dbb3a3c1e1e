package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"yashubustudio/annotator/annotator"
)

type cliOptions struct {
	configPath   string
	tasksPath    string
	progressPath string
	exportPath   string
	stats        bool
	recent       int
}

func main() {
	opts := parseFlags()
	if err := run(opts); err != nil {
		log.Fatalf("annotator-cli: %v", err)
	}
}

func parseFlags() cliOptions {
	var opts cliOptions
	flag.StringVar(&opts.configPath, "config", "", "Path to config.json (default: ./config.json)")
	flag.StringVar(&opts.tasksPath, "tasks", "", "CSV file with the source tasks (overrides config)")
	flag.StringVar(&opts.progressPath, "progress", "", "CSV file holding annotation progress (overrides config)")
	flag.StringVar(&opts.exportPath, "export", "", "Write the full progress snapshot to this CSV file")
	flag.BoolVar(&opts.stats, "stats", false, "Print annotation progress statistics")
	flag.IntVar(&opts.recent, "recent", 0, "List the N most recently annotated rows")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [--stats] [--recent N] [--export FILE] [options]\n\n", filepath.Base(os.Args[0]))
		fmt.Fprintln(flag.CommandLine.Output(), "Running without an action flag initializes the progress file and prints stats.")
		fmt.Fprintln(flag.CommandLine.Output())
		flag.PrintDefaults()
	}
	flag.Parse()

	opts.configPath = strings.TrimSpace(opts.configPath)
	opts.tasksPath = strings.TrimSpace(opts.tasksPath)
	opts.progressPath = strings.TrimSpace(opts.progressPath)
	opts.exportPath = strings.TrimSpace(opts.exportPath)

	if opts.exportPath == "" && opts.recent <= 0 {
		opts.stats = true
	}
	return opts
}

func run(opts cliOptions) error {
	cfg, err := annotator.LoadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.tasksPath != "" {
		cfg.TasksPath = opts.tasksPath
	}
	if opts.progressPath != "" {
		cfg.ProgressPath = opts.progressPath
	}

	store, err := annotator.LoadOrInit(cfg.ProgressPath, cfg.TasksPath)
	if err != nil {
		return err
	}

	if opts.stats {
		printStats(store)
	}
	if opts.recent > 0 {
		printRecent(store, opts.recent)
	}
	if opts.exportPath != "" {
		if err := exportSnapshot(store, opts.exportPath); err != nil {
			return err
		}
		fmt.Printf("标注结果已保存到 %s\n", opts.exportPath)
	}
	return nil
}

func printStats(store *annotator.ProgressStore) {
	var annotated, notAWord int
	total := store.Len()
	for i := 0; i < total; i++ {
		row, err := store.Row(i)
		if err != nil {
			continue
		}
		switch annotator.StateOf(row.Corrected) {
		case annotator.StateAnnotated:
			annotated++
		case annotator.StateNotAWord:
			notAWord++
		}
	}
	done := annotated + notAWord
	percent := "0.0%"
	if total > 0 {
		percent = fmt.Sprintf("%.1f%%", float64(done)/float64(total)*100)
	}
	fmt.Println(renderTable(
		[]string{"指标", "数量"},
		[][]string{
			{"总行数", fmt.Sprintf("%d", total)},
			{"已校对", fmt.Sprintf("%d", annotated)},
			{"非词 (N/A)", fmt.Sprintf("%d", notAWord)},
			{"未校对", fmt.Sprintf("%d", total-done)},
			{"进度", percent},
		},
	))
}

func printRecent(store *annotator.ProgressStore, limit int) {
	entries := annotator.Recent(store, limit)
	if len(entries) == 0 {
		fmt.Println("目前还没有已校对的任务。")
		return
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{fmt.Sprintf("%d", e.Index+1), e.OriginalForm, e.Corrected})
	}
	fmt.Println(renderTable([]string{"行号", annotator.ColOriginalForm, annotator.ColCorrected}, rows))
}

func exportSnapshot(store *annotator.ProgressStore, path string) error {
	data, err := store.ExportCSV()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

func renderTable(headers []string, rows [][]string) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)
	for _, row := range rows {
		r := make(table.Row, len(row))
		for i, cell := range row {
			r[i] = cell
		}
		tw.AppendRow(r)
	}
	return tw.Render()
}
