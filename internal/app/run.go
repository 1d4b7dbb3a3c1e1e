package app

import (
	"fmt"
	"log"
	"os"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"yashubustudio/annotator/annotator"
)

const (
	fyneAppID   = "studio.yashubu.annotator"
	windowTitle = "繁简转换校对平台"
)

// Run loads configuration and data, then starts the desktop UI. Data-loading
// failures are fatal and surfaced in the window; annotation is meaningless
// without the dataset.
func Run() error {
	a := fyneapp.NewWithID(fyneAppID)
	w := a.NewWindow(windowTitle)
	w.Resize(fyne.NewSize(1100, 720))

	cfg, err := annotator.LoadConfig("")
	if err != nil {
		showFatalError(w, fmt.Errorf("配置读取失败: %w", err))
		return nil
	}
	store, err := annotator.LoadOrInit(cfg.ProgressPath, cfg.TasksPath)
	if err != nil {
		showFatalError(w, fmt.Errorf("数据读取失败: %w", err))
		return nil
	}
	logger := log.New(os.Stdout, "", log.LstdFlags)
	session := annotator.NewSession(store, cfg.Policy(), logger)

	u := buildUI(w, session, cfg)
	u.refresh()
	w.ShowAndRun()
	return nil
}

func showFatalError(w fyne.Window, err error) {
	w.SetContent(widget.NewLabel(err.Error()))
	dialog.ShowError(err, w)
	w.ShowAndRun()
}
