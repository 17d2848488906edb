package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/silbinarywolf/preferdiscretegpu"

	"portal-site/core"
	"portal-site/renderer"
	"portal-site/site"
)

// maxFrameDt caps the simulation step across hitches and debugger pauses so
// tweens jump at most this far in one tick.
const maxFrameDt = 0.1

func main() {
	configPath := flag.String("config", "", "path to a site config JSON file")
	width := flag.Int("width", 1280, "window width")
	height := flag.Int("height", 720, "window height")
	flag.Parse()

	info := log.New(os.Stdout, "INFO: ", log.Lshortfile)
	errlog := log.New(os.Stderr, "ERROR: ", log.Lshortfile)

	cfg := site.DefaultConfig()
	if *configPath != "" {
		loaded, err := site.LoadConfig(*configPath)
		if err != nil {
			errlog.Printf("config %q (continuing with defaults): %v", *configPath, err)
		} else {
			cfg = loaded
		}
	}

	windowConfig := core.DefaultWindowConfig()
	windowConfig.Title = cfg.Title
	windowConfig.Width = *width
	windowConfig.Height = *height

	window, err := core.NewWindow(windowConfig)
	if err != nil {
		errlog.Fatalf("create window: %v", err)
	}
	defer window.Destroy()

	engine, err := renderer.NewRenderEngine(window)
	if err != nil {
		errlog.Fatalf("create render engine: %v", err)
	}
	defer engine.Destroy()

	state := site.NewSceneState(cfg, window, engine, info, errlog)
	defer state.Teardown()

	printControls(cfg.Title)

	last := time.Now()
	frames := 0
	titleLast := last

	for !window.ShouldClose() {
		window.PollEvents()

		if window.IsKeyPressed(core.KeyEscape) {
			break
		}

		now := time.Now()
		dt := now.Sub(last).Seconds()
		last = now
		if dt > maxFrameDt {
			dt = maxFrameDt
		}

		state.Update(dt)

		if err := engine.Render(); err != nil {
			errlog.Printf("render: %v", err)
		}
		engine.DrawParticles(state.Pulse)
		state.Overlay.Draw()
		engine.Present()

		frames++
		if elapsed := now.Sub(titleLast); elapsed >= time.Second {
			fps := float64(frames) / elapsed.Seconds()
			window.SetTitle(fmt.Sprintf("%s | %.0f fps | scroll %.2f | %s",
				cfg.Title, fps, state.Scroll.Progress(), state.Columns.Category))
			frames = 0
			titleLast = now
		}
	}

	info.Printf("shutting down")
}

func printControls(title string) {
	fmt.Println("===========================================")
	fmt.Printf("  %s\n", title)
	fmt.Println("===========================================")
	fmt.Println("CONTROLS:")
	fmt.Println("  Mouse wheel / Up / Down  - Scroll the story")
	fmt.Println("  Home / End               - Jump to start / end")
	fmt.Println("  Click a portal           - Open / close its doors")
	fmt.Println("  Space                    - Toggle both portals")
	fmt.Println("  R                        - Rewind to the top")
	fmt.Println("  F3                       - Stats overlay")
	fmt.Println("  ESC                      - Quit")
	fmt.Println("===========================================")
}
