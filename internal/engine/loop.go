package engine

import (
	"log"
	"time"

	"github.com/EricPostMaster/DeskFit/internal/exercise"
	"github.com/EricPostMaster/DeskFit/internal/overlay"
	"github.com/EricPostMaster/DeskFit/internal/pose"
)

// runLoop is the pipeline goroutine. It manages the idle/active frame
// rate based on motion detection and drives each frame through
// estimation, smoothing and the active session.
//
// Loop logic:
// 1. Start in idle mode (IdleFPS)
// 2. On motion detected, switch to active mode (ActiveFPS)
// 3. Run pose estimation on the frame
// 4. Smooth every detected keypoint
// 5. Feed the smoothed pose to the active session (calibration + detection)
// 6. Rebuild the overlay primitives for the stream
// 7. After 2s without motion, switch back to idle mode
//
// A frame with no usable pose (estimator not ready, nobody in view)
// skips detection but never stops the loop.
func (e *Engine) runLoop(stopCh chan struct{}) {
	activeMode := false
	lastMotionTime := time.Now()

	frameInterval := time.Second / time.Duration(IdleFPS)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !e.IsEnabled() {
				continue
			}

			frame, err := e.camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			motionDetected, _ := e.motion.Detect(frame)

			if motionDetected {
				lastMotionTime = time.Now()

				if !activeMode {
					activeMode = true
					e.camera.SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode {
				if time.Since(lastMotionTime) > time.Duration(IdleTimeoutMs)*time.Millisecond {
					activeMode = false
					e.camera.SetFPS(IdleFPS)
					frameInterval = time.Second / time.Duration(IdleFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to idle mode")
				}
			}

			e.mu.RLock()
			session := e.session
			estimator := e.estimator
			e.mu.RUnlock()

			// Without a session or estimator there is nothing to count.
			if session == nil || estimator == nil {
				frame.Close()
				continue
			}

			p, err := estimator.Estimate(frame)
			frame.Close()

			if err != nil {
				log.Printf("Error estimating pose: %v", err)
				continue
			}
			if p == nil {
				// No person in frame this iteration.
				continue
			}

			e.observe(session, p)
		}
	}
}

// observe runs one pose sample through smoothing and the session, then
// refreshes the overlay and fires callbacks. Estimation happens outside
// the engine lock; only the bookkeeping here holds it.
func (e *Engine) observe(session *exercise.Session, p *pose.Pose) {
	now := time.Now()
	smoothed := e.filters.Smooth(p, float64(now.UnixNano())/float64(time.Second))

	e.mu.Lock()
	if e.session != session {
		// The session was stopped or replaced while this frame was in
		// the estimator.
		e.mu.Unlock()
		return
	}

	accepted := session.Observe(smoothed, now)

	if e.drawOverlay {
		e.lastOverlay = overlay.Build(smoothed, session.Kind, session.Detector(),
			overlay.Transform{ScaleX: 1, ScaleY: 1})
	}

	status := statusOf(session)
	complete := session.Complete()
	if complete {
		e.finishSessionLocked()
	}
	e.mu.Unlock()

	if accepted > 0 && e.OnRep != nil {
		e.OnRep(status)
	}
	if complete && e.OnComplete != nil {
		e.OnComplete(status)
	}
}
