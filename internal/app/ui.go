package app

import (
	"fmt"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"yashubustudio/annotator/annotator"
)

// uiState wires the annotation session to the widgets. Every user gesture maps
// to one session transition followed by one refresh; the UI itself holds no
// annotation state.
type uiState struct {
	session *annotator.Session
	cfg     annotator.Config

	w            fyne.Window
	position     *widget.Label
	originLbl    *widget.Label
	preLbl       *widget.Label
	correctedLbl *widget.Label
	candidateBox *fyne.Container
	naBtn        *widget.Button
	progressLbl  *widget.Label
	recentList   *widget.List
	recent       []annotator.ReviewEntry
	status       *widget.Label
	log          *widget.Entry
	statusBind   binding.String
	logBind      binding.String
	logLines     []string
}

func buildUI(w fyne.Window, session *annotator.Session, cfg annotator.Config) *uiState {
	u := &uiState{session: session, cfg: cfg, w: w}

	u.statusBind = binding.NewString()
	_ = u.statusBind.Set("准备就绪")
	u.logBind = binding.NewString()

	u.position = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	u.originLbl = widget.NewLabel("")
	u.preLbl = widget.NewLabel("")
	u.correctedLbl = widget.NewLabel("")
	u.candidateBox = container.NewVBox()
	u.progressLbl = widget.NewLabel("")
	u.status = widget.NewLabelWithData(u.statusBind)

	u.log = widget.NewEntryWithData(u.logBind)
	u.log.MultiLine = true
	u.log.Wrapping = fyne.TextWrapWord
	u.log.SetPlaceHolder("操作日志")
	u.log.Disable()

	u.naBtn = widget.NewButton("", func() {
		u.session.ToggleNotAWord()
		u.refresh()
	})

	prevBtn := widget.NewButton("上一条", func() { u.dispatch(func() error { return u.session.Navigate(-1) }) })
	nextBtn := widget.NewButton("下一条", func() { u.dispatch(func() error { return u.session.Navigate(1) }) })
	saveBtn := widget.NewButton("暂存", func() {
		if err := u.session.Save(); err != nil {
			dialog.ShowError(err, u.w)
			u.appendLog(fmt.Sprintf("错误: %v", err))
		} else {
			u.setStatus("已暂存当前标注结果")
		}
		u.refresh()
	})
	exportBtn := widget.NewButton("下载", func() { u.onExport() })

	u.recentList = widget.NewList(
		func() int { return len(u.recent) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < 0 || id >= len(u.recent) {
				return
			}
			entry := u.recent[id]
			obj.(*widget.Label).SetText(fmt.Sprintf("%s (%s)", entry.OriginalForm, entry.Corrected))
		},
	)
	u.recentList.OnSelected = func(id widget.ListItemID) {
		u.recentList.UnselectAll()
		if id < 0 || id >= len(u.recent) {
			return
		}
		target := u.recent[id].Index
		u.dispatch(func() error { return u.session.Jump(target) })
	}

	detail := container.NewGridWithColumns(2,
		widget.NewLabelWithStyle("原形", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}), u.originLbl,
		widget.NewLabelWithStyle("校对前", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}), u.preLbl,
		widget.NewLabelWithStyle("校对后", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}), u.correctedLbl,
	)

	left := container.NewBorder(
		container.NewVBox(
			u.progressLbl,
			widget.NewSeparator(),
			widget.NewLabelWithStyle(fmt.Sprintf("已标注任务列表（最近%d条）", cfg.ReviewLimit), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		),
		nil, nil, nil,
		u.recentList,
	)

	top := container.NewVBox(
		widget.NewLabelWithStyle("任务详情", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		u.position,
		detail,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("候选项", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
	)
	bottom := container.NewVBox(
		u.naBtn,
		container.NewGridWithColumns(4, prevBtn, nextBtn, saveBtn, exportBtn),
		u.status,
		widget.NewSeparator(),
		container.NewMax(u.log),
	)
	right := container.NewBorder(top, bottom, nil, nil, container.NewVScroll(u.candidateBox))

	split := container.NewHSplit(left, right)
	split.Offset = 0.3
	w.SetContent(split)
	return u
}

// dispatch runs one state-machine transition and re-renders. Errors (in
// practice persistence failures) surface in a dialog; the in-memory state is
// still valid afterwards.
func (u *uiState) dispatch(op func() error) {
	if err := op(); err != nil {
		dialog.ShowError(err, u.w)
		u.appendLog(fmt.Sprintf("错误: %v", err))
	}
	u.refresh()
}

func (u *uiState) refresh() {
	row := u.session.CurrentRow()
	done, total := u.session.Progress()

	u.position.SetText(fmt.Sprintf("%d / %d", u.session.Index()+1, total))
	u.originLbl.SetText(row.OriginalForm)
	u.preLbl.SetText(row.PreCorrection)

	selected := u.session.Selected()
	if len(selected) == 0 {
		u.correctedLbl.SetText("暂无")
	} else {
		u.correctedLbl.SetText(strings.Join(selected, " "))
	}

	if u.session.IsSelected(annotator.NotAWord) {
		u.naBtn.SetText("取消 N/A 标记")
	} else {
		u.naBtn.SetText("标记为非词 (N/A)")
	}

	u.rebuildCandidates()
	u.progressLbl.SetText(fmt.Sprintf("进度: 已校对 %d/%d 条", done, total))
	u.recent = u.session.Recent(u.cfg.ReviewLimit)
	u.recentList.Refresh()
}

func (u *uiState) rebuildCandidates() {
	u.candidateBox.Objects = nil
	cands, err := u.session.Candidates()
	if err != nil {
		u.candidateBox.Add(widget.NewLabel(fmt.Sprintf("候选项数据错误: %v", err)))
		u.candidateBox.Refresh()
		return
	}
	if len(cands) == 0 {
		u.candidateBox.Add(widget.NewLabel("无候选项"))
	}
	for _, c := range cands {
		cand := c
		label := "选择"
		if u.session.IsSelected(cand.Text) {
			label = "取消"
		}
		btn := widget.NewButton(label, func() {
			u.session.Toggle(cand.Text)
			u.refresh()
		})
		u.candidateBox.Add(container.NewBorder(nil, nil, btn, nil,
			widget.NewLabel(fmt.Sprintf("%s : %s", cand.Text, cand.Freq))))
	}
	u.candidateBox.Refresh()
}

// onExport writes the durable-format snapshot to a user-chosen file. The
// snapshot reflects the last committed state, not the in-progress selection.
func (u *uiState) onExport() {
	data, err := u.session.ExportCSV()
	if err != nil {
		dialog.ShowError(err, u.w)
		return
	}
	fd := dialog.NewFileSave(func(uc fyne.URIWriteCloser, err error) {
		if err != nil || uc == nil {
			return
		}
		defer uc.Close()
		if _, err := uc.Write(data); err != nil {
			dialog.ShowError(err, u.w)
			return
		}
		u.appendLog(fmt.Sprintf("已导出标注结果 (%d 行)", u.session.Len()))
	}, u.w)
	fd.SetFileName("标注结果.csv")
	fd.Show()
}

func (u *uiState) setStatus(text string) {
	_ = u.statusBind.Set(text)
}

func (u *uiState) appendLog(msg string) {
	line := fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), msg)
	u.logLines = append(u.logLines, line)
	if len(u.logLines) > 200 {
		u.logLines = u.logLines[len(u.logLines)-200:]
	}
	_ = u.logBind.Set(strings.Join(u.logLines, "\n"))
}
