// Command zenkai-view shows a page in a window. Arrow keys move the focus
// among the children of the configured navigation container.
package main

import (
	"context"
	"fmt"
	"image"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"zenkai/internal/config"
	"zenkai/pkg/nav"
)

var arrowKeys = map[fyne.KeyName]nav.Direction{
	fyne.KeyUp:    nav.Up,
	fyne.KeyDown:  nav.Down,
	fyne.KeyLeft:  nav.Left,
	fyne.KeyRight: nav.Right,
}

func main() {
	var configPath string

	cmd := &cobra.Command{
		Use:          "zenkai-view [page]",
		Short:        "Show a page and navigate it with the arrow keys",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			level, _ := cfg.LogLevel()
			logger := log.NewWithOptions(os.Stderr, log.Options{
				ReportTimestamp: true,
				TimeFormat:      "15:04:05.00",
				Level:           level,
			})
			initial := ""
			if len(args) > 0 {
				initial = args[0]
			}
			run(cmd.Context(), cfg, logger, initial)
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "config file")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *log.Logger, initial string) {
	a := app.New()
	w := a.NewWindow("zenkai")
	w.Resize(fyne.NewSize(float32(cfg.Viewport.Width), float32(cfg.Viewport.Height)+60))

	blank := image.NewRGBA(image.Rect(0, 0, int(cfg.Viewport.Width), int(cfg.Viewport.Height)))
	canvasImg := canvas.NewImageFromImage(blank)
	canvasImg.FillMode = canvas.ImageFillOriginal
	status := widget.NewLabel("Enter a file or URL and press Enter")

	v := newViewer(ctx, cfg, logger)
	v.onPaint = func(f frame) {
		fyne.Do(func() {
			if f.err != nil {
				status.SetText("Error: " + f.err.Error())
				return
			}
			canvasImg.Image = f.image
			canvasImg.Refresh()
			status.SetText(f.status)
			w.SetTitle(fmt.Sprintf("zenkai - %s", f.page))
		})
	}

	entry := widget.NewEntry()
	entry.SetPlaceHolder("page.html or https://example.com")
	entry.OnSubmitted = func(page string) {
		status.SetText("Loading " + page + "...")
		// Arrow keys reach the canvas only while no widget has focus.
		w.Canvas().Unfocus()
		go v.open(page)
	}

	w.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if dir, ok := arrowKeys[ev.Name]; ok {
			go v.move(dir)
		}
	})

	content := container.NewBorder(entry, status, nil, nil, canvasImg)
	w.SetContent(content)

	if initial != "" {
		entry.SetText(initial)
		go v.open(initial)
	} else {
		w.Canvas().Focus(entry)
	}
	w.ShowAndRun()
}
