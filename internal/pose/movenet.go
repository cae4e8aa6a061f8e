package pose

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"gocv.io/x/gocv"
)

// MoveNetEstimator implements Estimator using a Python MoveNet subprocess.
// Frames are sent as length-prefixed JPEG data; keypoints come back as one
// JSON line per frame.
type MoveNetEstimator struct {
	config    Config
	provider  Provider
	cmd       *exec.Cmd
	stdin     io.WriteCloser
	stdout    *bufio.Reader
	mu        sync.Mutex
	started   bool
	closed    bool
	lastUsed  time.Time
	idleTimer *time.Timer
}

// idleShutdown is how long the Python process may sit unused before it is
// stopped. It restarts lazily on the next Estimate call.
const idleShutdown = 30 * time.Second

// NewMoveNetEstimator creates an estimator backed by the first usable
// provider. The Python process itself is started lazily on first use, but
// provider resolution happens here so that a missing model surfaces as a
// startup failure rather than a per-frame error.
func NewMoveNetEstimator(config Config) (*MoveNetEstimator, error) {
	provider, err := ResolveProvider(config)
	if err != nil {
		return nil, err
	}

	return &MoveNetEstimator{
		config:   config,
		provider: provider,
	}, nil
}

// Estimate analyzes a frame and returns the detected body pose.
func (e *MoveNetEstimator) Estimate(frame *gocv.Mat) (*Pose, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.ensureStarted(); err != nil {
		return nil, err
	}

	// Encode frame as JPEG
	buf, err := gocv.IMEncode(".jpg", *frame)
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	defer buf.Close()

	data := buf.GetBytes()

	// Write length (4 bytes big-endian) + data
	length := make([]byte, 4)
	binary.BigEndian.PutUint32(length, uint32(len(data)))

	if _, err := e.stdin.Write(length); err != nil {
		return nil, fmt.Errorf("write length: %w", err)
	}
	if _, err := e.stdin.Write(data); err != nil {
		return nil, fmt.Errorf("write data: %w", err)
	}

	// Read JSON response
	line, err := e.stdout.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var response struct {
		Keypoints []jsonKeypoint `json:"keypoints"`
		Width     int            `json:"width"`
		Height    int            `json:"height"`
	}
	if err := json.Unmarshal([]byte(line), &response); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	e.lastUsed = time.Now()
	e.resetIdleTimer()

	if len(response.Keypoints) == 0 {
		return nil, nil // no person in frame
	}

	return toPose(response.Keypoints, response.Width, response.Height, e.config.MinConfidence), nil
}

// Close shuts down the Python process for good. Unlike an idle
// shutdown, the estimator does not relaunch on the next Estimate call;
// a frame already in flight when the pipeline stops fails fast instead.
func (e *MoveNetEstimator) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	return e.shutdown()
}

func (e *MoveNetEstimator) ensureStarted() error {
	if e.closed {
		return ErrEstimatorClosed
	}
	if e.started {
		return nil
	}

	pythonPath := findVenvPython()
	if pythonPath == "" {
		pythonPath = "python3"
	}

	e.cmd = exec.Command(pythonPath, e.provider.Script, "--variant", e.provider.Variant)

	stdin, err := e.cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("create stdin pipe: %w", err)
	}

	stdout, err := e.cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("create stdout pipe: %w", err)
	}

	// Capture stderr for debugging
	e.cmd.Stderr = os.Stderr

	if err := e.cmd.Start(); err != nil {
		return fmt.Errorf("start movenet service: %w", err)
	}

	e.stdin = stdin
	e.stdout = bufio.NewReader(stdout)
	e.started = true
	e.lastUsed = time.Now()

	return nil
}

func (e *MoveNetEstimator) shutdown() error {
	if !e.started {
		return nil
	}

	if e.idleTimer != nil {
		e.idleTimer.Stop()
		e.idleTimer = nil
	}

	if e.stdin != nil {
		e.stdin.Close()
	}

	err := e.cmd.Wait()
	e.started = false
	e.cmd = nil
	e.stdin = nil
	e.stdout = nil

	return err
}

func (e *MoveNetEstimator) resetIdleTimer() {
	if e.idleTimer != nil {
		e.idleTimer.Stop()
	}
	e.idleTimer = time.AfterFunc(idleShutdown, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		e.shutdown()
	})
}

// jsonKeypoint represents the JSON structure from the Python service.
type jsonKeypoint struct {
	Name       string  `json:"name"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Confidence float64 `json:"confidence"`
}

// toPose converts service keypoints to a Pose, dropping keypoints below
// the confidence floor.
func toPose(keypoints []jsonKeypoint, width, height int, minConfidence float64) *Pose {
	p := NewPose(width, height)
	for _, kp := range keypoints {
		if kp.Confidence < minConfidence {
			continue
		}
		p.Set(Keypoint{
			Name:       Landmark(kp.Name),
			X:          kp.X,
			Y:          kp.Y,
			Confidence: kp.Confidence,
		})
	}
	return p
}
