package app

import (
	"image"
	"time"

	"github.com/ayusman/depthmouse/internal/capture"
	"github.com/ayusman/depthmouse/internal/gesture"
	"github.com/ayusman/depthmouse/internal/log"
	"github.com/ayusman/depthmouse/internal/plugin"
	"github.com/ayusman/depthmouse/internal/store"
)

// HandleDepth runs one depth frame through detection and the gesture engine
// and applies the result. It must be called from a single goroutine.
func (a *App) HandleDepth(frame capture.DepthFrame) {
	if a.stop.Load() {
		return
	}

	var vis []byte
	if a.config.Tracking.ShowScreen {
		vis = a.vis
	}
	stats, err := a.detector.Detect(frame, vis)
	if err != nil {
		log.Warn("dropping depth frame", "error", err)
		return
	}
	if vis != nil {
		if err := a.exchange.PublishDepth(vis); err != nil {
			log.Warn("dropping depth visualization", "error", err)
		}
	}

	paused := a.paused.Load()
	if paused != a.wasPaused {
		a.engine.Reset()
		a.seenFrame = false
		a.wasPaused = paused
	}
	if paused {
		a.mu.Lock()
		a.status.Frames++
		a.mu.Unlock()
		return
	}

	res := a.engine.Process(stats)
	if a.config.Tracking.Debug {
		log.Debug("frame",
			"count", stats.Count,
			"farthest", stats.Farthest,
			"bounds", stats.Bounds(),
			"category", res.Category,
		)
	}
	a.apply(res)
}

// HandleVideo forwards a color frame to the preview.
func (a *App) HandleVideo(frame capture.VideoFrame) {
	if a.stop.Load() || !a.config.Tracking.ShowScreen {
		return
	}
	if err := a.exchange.PublishVideo(frame.RGB); err != nil {
		if !a.videoSizeWarned {
			log.Warn("dropping color frames", "width", frame.Width, "height", frame.Height, "error", err)
			a.videoSizeWarned = true
		}
		return
	}
}

func (a *App) apply(res gesture.Result) {
	if !a.seenFrame || res.Category != a.lastCategory {
		a.notifier.Status(res.Category.String())
		a.lastCategory = res.Category
		a.seenFrame = true
	}

	if res.Category.Valid() {
		a.notifier.Coord(res.Pointer)
		if res.Clicked {
			if err := a.injector.Click(res.Click); err != nil {
				log.Warn("click failed", "point", res.Click, "error", err)
			}
			a.notifier.Click(res.Click)
			a.dispatch(store.TriggerClick, &res.Click)
		}
		if err := a.injector.Move(res.Pointer); err != nil {
			log.Warn("move failed", "point", res.Pointer, "error", err)
		}
		if res.Rejected {
			log.Debug("stroke full, sample dropped", "point", res.Pointer)
		}
	}

	if res.Discarded > 0 {
		log.Debug("stroke discarded", "points", res.Discarded, "clicked", res.Clicked)
	}

	if res.Finalized {
		an := res.Analysis
		log.Debug("stroke evaluated",
			"points", an.Points,
			"mean", image.Pt(an.MeanX, an.MeanY),
			"hdev", an.HDev,
			"vdev", an.VDev,
			"swipe", an.Swipe,
		)
		if a.config.Tracking.DebugStop && a.debugIn != nil {
			if _, err := a.debugIn.ReadString('\n'); err != nil {
				log.Warn("pause at swipe disabled, input closed", "error", err)
				a.debugIn = nil
			}
		}
		if res.Swipe != "" {
			a.notifier.Swipe(string(res.Swipe))
			if res.Swipe != gesture.SwipeNone {
				a.dispatch(store.SwipeTrigger(string(res.Swipe)), nil)
			}
		}
	}

	st := a.engine.State()
	a.mu.Lock()
	a.status.Frames++
	a.status.Category = res.Category.String()
	a.status.HoverCycles = st.HoverCycles
	a.status.StrokeLen = st.StrokeLen
	if res.Category.Valid() {
		a.status.Pointer = res.Pointer
	}
	if res.Clicked {
		a.status.Clicks++
	}
	if res.Swipe != "" && res.Swipe != gesture.SwipeNone {
		a.status.Swipes++
		a.status.LastSwipe = string(res.Swipe)
		a.status.LastSwipeAt = time.Now()
	}
	a.mu.Unlock()
}

// dispatch runs every enabled binding for trigger in the background.
func (a *App) dispatch(trigger store.Trigger, p *image.Point) {
	if a.config.Store == nil {
		return
	}

	bindings, err := a.config.Store.Bindings().ListByTrigger(trigger)
	if err != nil {
		log.Error("failed to load bindings", "trigger", trigger, "error", err)
		return
	}

	for _, b := range bindings {
		plug, err := a.pluginMgr.Resolve(b.PluginName, b.ActionName)
		if err != nil {
			log.Warn("binding skipped", "binding", b.ID, "plugin", b.PluginName, "action", b.ActionName, "error", err)
			continue
		}

		req := &plugin.Request{
			Action:  b.ActionName,
			Trigger: string(trigger),
			Config:  b.Config,
		}
		if p != nil {
			req.Point = &plugin.Point{X: p.X, Y: p.Y}
		}

		a.wg.Add(1)
		go func(id string) {
			defer a.wg.Done()
			resp, err := a.pluginExec.Execute(a.ctx, plug, req)
			if err != nil {
				log.Warn("plugin action failed", "binding", id, "plugin", plug.Manifest.Name, "error", err)
				return
			}
			log.Debug("plugin action done", "binding", id, "plugin", plug.Manifest.Name, "success", resp.Success)
		}(b.ID)
	}
}
