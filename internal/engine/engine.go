// Package engine orchestrates the rep-counting pipeline: camera frames
// through motion gating, pose estimation, smoothing and the active
// exercise session.
package engine

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/EricPostMaster/DeskFit/internal/capture"
	"github.com/EricPostMaster/DeskFit/internal/exercise"
	"github.com/EricPostMaster/DeskFit/internal/filter"
	"github.com/EricPostMaster/DeskFit/internal/overlay"
	"github.com/EricPostMaster/DeskFit/internal/pose"
	"github.com/EricPostMaster/DeskFit/internal/store"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate while no motion is detected.
	IdleFPS = 5
	// ActiveFPS is the frame rate while the user is moving.
	ActiveFPS = 15
	// IdleTimeoutMs is how long after the last motion the pipeline drops
	// back to idle frame rate.
	IdleTimeoutMs = 2000
)

// Config holds engine configuration.
type Config struct {
	Store        *store.Store
	CameraID     int
	MotionThresh float64
	Pose         pose.Config

	// Estimator, when set, is used instead of resolving a MoveNet
	// provider. Tests inject mocks here.
	Estimator pose.Estimator
}

// SessionStatus is a point-in-time snapshot of the active session,
// safe to hand to HTTP handlers and WebSocket pushes.
type SessionStatus struct {
	ID        string        `json:"id"`
	Exercise  exercise.Kind `json:"exercise"`
	Target    int           `json:"target"`
	Count     int           `json:"count"`
	Complete  bool          `json:"complete"`
	StartedAt time.Time     `json:"started_at"`
}

// Engine is the pipeline owner: one camera, one estimator, one filter
// bank and at most one exercise session at a time.
type Engine struct {
	config    Config
	camera    capture.Camera
	motion    *capture.MotionDetector
	estimator pose.Estimator
	filters   *filter.Bank

	mu          sync.RWMutex
	enabled     bool
	session     *exercise.Session
	stopCh      chan struct{}
	lastOverlay overlay.Frame
	drawOverlay bool

	// OnRep is invoked after every accepted rep, OnComplete once when
	// the session reaches its target. Both run on the pipeline
	// goroutine; set them before Start. OnStart fires when a session
	// begins, OnStop when one ends short of its target.
	OnRep      func(SessionStatus)
	OnComplete func(SessionStatus)
	OnStart    func(SessionStatus)
	OnStop     func(SessionStatus)
}

// New creates an engine with the given configuration. A missing pose
// model is a startup failure: counting cannot work without an estimator,
// so the error goes to the caller instead of degrading silently.
func New(config Config) (*Engine, error) {
	motionThreshold := config.MotionThresh
	if motionThreshold <= 0 {
		motionThreshold = 1.0 // Default threshold: 1% pixel change
	}

	e := &Engine{
		config:      config,
		camera:      capture.NewCamera(config.CameraID),
		motion:      capture.NewMotionDetector(motionThreshold),
		filters:     filter.NewBank(),
		drawOverlay: true,
	}

	if config.Estimator != nil {
		e.estimator = config.Estimator
		return e, nil
	}

	poseConfig := config.Pose
	if poseConfig.MinConfidence == 0 {
		poseConfig = pose.DefaultConfig()
	}
	mn, err := pose.NewMoveNetEstimator(poseConfig)
	if err != nil {
		return nil, fmt.Errorf("pose estimator: %w", err)
	}
	e.estimator = mn
	log.Println("Using MoveNet pose estimation")

	return e, nil
}

// SetEnabled enables or disables frame processing.
func (e *Engine) SetEnabled(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.enabled = enabled
}

// IsEnabled returns whether frame processing is currently enabled.
func (e *Engine) IsEnabled() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.enabled
}

// SetCamera swaps the camera implementation. Call before Start.
func (e *Engine) SetCamera(c capture.Camera) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.camera = c
}

// SetOverlay toggles overlay rendering. Counting is unaffected.
func (e *Engine) SetOverlay(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.drawOverlay = enabled
	if !enabled {
		e.lastOverlay = overlay.Frame{}
	}
}

// Camera returns the camera instance, e.g. for the MJPEG stream.
func (e *Engine) Camera() capture.Camera {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.camera
}

// MotionDetector returns the motion detector instance.
func (e *Engine) MotionDetector() *capture.MotionDetector {
	return e.motion
}

// CurrentOverlay returns the overlay primitives from the most recent
// processed frame, in intrinsic frame coordinates.
func (e *Engine) CurrentOverlay() overlay.Frame {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lastOverlay
}

// StartSession begins counting the given exercise toward target reps.
// Any previous session is stopped and persisted first.
func (e *Engine) StartSession(kind exercise.Kind, target int) (SessionStatus, error) {
	e.mu.Lock()

	session, err := exercise.NewSession(kind, target)
	if err != nil {
		e.mu.Unlock()
		return SessionStatus{}, err
	}

	prev, prevFinished := e.finishSessionLocked()

	e.filters.Reset()
	e.session = session
	e.enabled = true
	status := statusOf(session)
	e.mu.Unlock()

	log.Printf("Session started: %s x%d", kind, target)
	if prevFinished && !prev.Complete && e.OnStop != nil {
		e.OnStop(prev)
	}
	if e.OnStart != nil {
		e.OnStart(status)
	}
	return status, nil
}

// StopSession ends the active session, persisting the workout. It is a
// no-op when no session is running.
func (e *Engine) StopSession() {
	e.mu.Lock()
	status, finished := e.finishSessionLocked()
	e.mu.Unlock()

	if finished && !status.Complete && e.OnStop != nil {
		e.OnStop(status)
	}
}

// finishSessionLocked persists and clears the active session, returning
// its final status. Caller holds e.mu; callbacks are the caller's job.
func (e *Engine) finishSessionLocked() (SessionStatus, bool) {
	if e.session == nil {
		return SessionStatus{}, false
	}

	s := e.session
	e.session = nil
	e.lastOverlay = overlay.Frame{}
	e.filters.Reset()

	if e.config.Store != nil {
		w := &store.Workout{
			ID:        s.ID,
			Exercise:  string(s.Kind),
			Target:    s.Target,
			Reps:      s.Count(),
			Completed: s.Complete(),
			StartedAt: s.StartedAt,
			EndedAt:   time.Now(),
		}
		if err := e.config.Store.Workouts().Create(w); err != nil {
			log.Printf("Failed to persist workout: %v", err)
		}
	}

	log.Printf("Session ended: %s %d/%d", s.Kind, s.Count(), s.Target)
	return statusOf(s), true
}

// Status returns a snapshot of the active session, or an error when no
// session is running.
func (e *Engine) Status() (SessionStatus, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.session == nil {
		return SessionStatus{}, fmt.Errorf("no active session")
	}
	return statusOf(e.session), nil
}

func statusOf(s *exercise.Session) SessionStatus {
	return SessionStatus{
		ID:        s.ID,
		Exercise:  s.Kind,
		Target:    s.Target,
		Count:     s.Count(),
		Complete:  s.Complete(),
		StartedAt: s.StartedAt,
	}
}

// Start opens the camera and begins the pipeline goroutine.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	// Don't start if already running
	if e.stopCh != nil {
		return nil
	}

	if err := e.camera.Open(); err != nil {
		return err
	}

	e.camera.SetFPS(IdleFPS)

	e.stopCh = make(chan struct{})
	go e.runLoop(e.stopCh)

	log.Println("Detection pipeline started")
	return nil
}

// Stop halts the pipeline, persists any active session and releases the
// camera, motion detector and estimator.
func (e *Engine) Stop() {
	e.mu.Lock()

	if e.stopCh != nil {
		close(e.stopCh)
		e.stopCh = nil
	}

	status, finished := e.finishSessionLocked()

	if err := e.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	e.motion.Close()

	if e.estimator != nil {
		if err := e.estimator.Close(); err != nil {
			log.Printf("Error closing estimator: %v", err)
		}
	}
	e.mu.Unlock()

	if finished && !status.Complete && e.OnStop != nil {
		e.OnStop(status)
	}

	log.Println("Detection pipeline stopped")
}
