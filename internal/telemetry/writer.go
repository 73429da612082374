// Package telemetry records a vehicle simulation session to disk: discrete
// drift-state events to a snappy-compressed JSON-lines log, and periodic
// CarState/DriftMetrics frame snapshots to a zstd-compressed binary stream.
// Both streams are cheap enough to run alongside a physics loop without
// perturbing its timing, since neither is ever read from inside a tick.
package telemetry

import (
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
)

var recorderNameCleaner = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

const defaultFrameInterval = 200 * time.Millisecond

// frameBlob stores frame metadata before it is persisted to disk.
type frameBlob struct {
	Tick       uint64
	SimTimeMs  int64
	CapturedAt time.Time
	Payload    []byte
}

// Recorder streams one simulation session's telemetry to disk: drift-state
// transitions and configuration errors as compressed JSON events, and
// CarState/DriftMetrics snapshots as a compressed binary frame stream.
type Recorder struct {
	mu            sync.Mutex
	dir           string
	now           func() time.Time
	frameInterval time.Duration
	eventFile     *os.File
	eventStream   *snappy.Writer
	frameFile     *os.File
	frameStream   *zstd.Encoder
	pending       []frameBlob
	lastFlush     time.Time
	headerPreset  string
	headerParams  Parameters
}

// Manifest describes a recorded session's file layout so tooling can locate artefacts.
type Manifest struct {
	Version         int    `json:"version"`
	CreatedAt       string `json:"created_at"`
	FrameIntervalMs int    `json:"frame_interval_ms"`
	EventsPath      string `json:"events_path"`
	FramesPath      string `json:"frames_path"`
}

// NewRecorder prepares a session directory under root and opens its
// compressed event/frame sinks. sessionName is sanitized into a filesystem-
// safe folder name; frameInterval controls the cadence AppendFrame batches
// are flushed at, defaulting to 200ms when zero.
func NewRecorder(root, sessionName string, frameInterval time.Duration, clock func() time.Time) (*Recorder, Manifest, error) {
	if root == "" {
		return nil, Manifest{}, fmt.Errorf("telemetry root must be provided")
	}
	if clock == nil {
		clock = time.Now
	}
	if frameInterval <= 0 {
		frameInterval = defaultFrameInterval
	}

	cleaned := recorderNameCleaner.ReplaceAllString(sessionName, "")
	if cleaned == "" {
		cleaned = "session"
	}
	created := clock().UTC()
	folder := fmt.Sprintf("%s-%s", cleaned, created.Format("20060102T150405Z"))
	path := filepath.Join(root, folder)

	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, Manifest{}, err
	}

	eventsPath := filepath.Join(path, "events.jsonl.sz")
	framesPath := filepath.Join(path, "frames.bin.zst")
	manifestPath := filepath.Join(path, "manifest.json")

	eventFile, err := os.Create(eventsPath)
	if err != nil {
		return nil, Manifest{}, err
	}
	eventStream := snappy.NewBufferedWriter(eventFile)

	frameFile, err := os.Create(framesPath)
	if err != nil {
		eventFile.Close()
		return nil, Manifest{}, err
	}
	frameStream, err := zstd.NewWriter(frameFile)
	if err != nil {
		eventStream.Close()
		eventFile.Close()
		frameFile.Close()
		return nil, Manifest{}, err
	}

	manifest := Manifest{
		Version:         1,
		CreatedAt:       created.Format(time.RFC3339Nano),
		FrameIntervalMs: int(frameInterval / time.Millisecond),
		EventsPath:      "events.jsonl.sz",
		FramesPath:      "frames.bin.zst",
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		frameStream.Close()
		frameFile.Close()
		eventStream.Close()
		eventFile.Close()
		return nil, Manifest{}, err
	}
	if err := os.WriteFile(manifestPath, data, 0o644); err != nil {
		frameStream.Close()
		frameFile.Close()
		eventStream.Close()
		eventFile.Close()
		return nil, Manifest{}, err
	}

	recorder := &Recorder{
		dir:           path,
		now:           clock,
		frameInterval: frameInterval,
		eventFile:     eventFile,
		eventStream:   eventStream,
		frameFile:     frameFile,
		frameStream:   frameStream,
	}

	return recorder, manifest, nil
}

// Directory exposes the directory backing the recorded session.
func (r *Recorder) Directory() string {
	if r == nil {
		return ""
	}
	return r.dir
}

// AppendEvent writes a single JSON event line to the compressed event log.
// eventType is a short tag such as "drift_regime_transition" or
// "config_error"; payload is caller-defined JSON describing the event.
func (r *Recorder) AppendEvent(tick uint64, simTimeMs int64, eventType string, payload []byte) error {
	if r == nil {
		return fmt.Errorf("recorder not initialised")
	}
	captured := r.now().UTC()

	r.mu.Lock()
	defer r.mu.Unlock()

	//1.- Encode the event payload with metadata so downstream JSONL parsers can stream it safely.
	record := struct {
		Tick       uint64 `json:"tick"`
		SimTimeMs  int64  `json:"sim_time_ms"`
		CapturedAt string `json:"captured_at"`
		Type       string `json:"type"`
		PayloadB64 string `json:"payload_b64"`
	}{
		Tick:       tick,
		SimTimeMs:  simTimeMs,
		CapturedAt: captured.Format(time.RFC3339Nano),
		Type:       eventType,
		PayloadB64: base64.StdEncoding.EncodeToString(payload),
	}
	line, err := json.Marshal(record)
	if err != nil {
		return err
	}
	if _, err := r.eventStream.Write(line); err != nil {
		return err
	}
	if _, err := r.eventStream.Write([]byte("\n")); err != nil {
		return err
	}
	return r.eventStream.Flush()
}

// AppendFrame buffers a binary CarState/DriftMetrics snapshot until the
// configured cadence is reached, then flushes the batch.
func (r *Recorder) AppendFrame(tick uint64, simTimeMs int64, payload []byte) error {
	if r == nil {
		return fmt.Errorf("recorder not initialised")
	}
	captured := r.now().UTC()
	clone := append([]byte(nil), payload...)

	r.mu.Lock()
	defer r.mu.Unlock()

	//1.- Stage the frame so cadence enforcement can persist batches together.
	r.pending = append(r.pending, frameBlob{Tick: tick, SimTimeMs: simTimeMs, CapturedAt: captured, Payload: clone})
	if r.lastFlush.IsZero() {
		r.lastFlush = captured
		return nil
	}
	if captured.Sub(r.lastFlush) >= r.frameInterval {
		if err := r.flushLocked(); err != nil {
			return err
		}
		r.lastFlush = captured
	}
	return nil
}

// SetHeaderMetadata configures the header persisted when the session closes.
func (r *Recorder) SetHeaderMetadata(configPreset string, params Parameters) {
	if r == nil {
		return
	}
	r.mu.Lock()
	//1.- Cache the preset name for later header emission when the recorder closes.
	r.headerPreset = configPreset
	//2.- Clone parameters to avoid retaining shared mutable references.
	r.headerParams = params.Clone()
	r.mu.Unlock()
}

// Flush forces pending frames to be written regardless of cadence.
func (r *Recorder) Flush() error {
	if r == nil {
		return fmt.Errorf("recorder not initialised")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	//1.- Persist pending frames then refresh the cadence anchor to avoid bursts.
	if err := r.flushLocked(); err != nil {
		return err
	}
	r.lastFlush = r.now().UTC()
	return nil
}

// Close synchronously flushes all buffers and releases file handles.
func (r *Recorder) Close() error {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	//1.- Persist the metadata header before dismantling the streaming sinks.
	var firstErr error
	headerPath := filepath.Join(r.dir, "header.json")
	header := Header{SchemaVersion: HeaderSchemaVersion, ConfigPreset: r.headerPreset, Parameters: r.headerParams.Clone(), FilePointer: "manifest.json"}
	if err := WriteHeader(headerPath, header); err != nil && firstErr == nil {
		firstErr = err
	}
	//2.- Attempt every flush/close and surface the first failure for callers to inspect.
	if err := r.flushLocked(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := r.eventStream.Flush(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := r.eventStream.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := r.eventFile.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := r.frameStream.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := r.frameFile.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// flushLocked writes buffered frames to the zstd stream; callers must hold the mutex.
func (r *Recorder) flushLocked() error {
	if len(r.pending) == 0 {
		return nil
	}
	//1.- Write length-prefixed frames so a reader can step through them efficiently.
	for _, frame := range r.pending {
		header := make([]byte, 8+8+8+4)
		binary.LittleEndian.PutUint64(header[0:8], frame.Tick)
		binary.LittleEndian.PutUint64(header[8:16], uint64(frame.SimTimeMs))
		binary.LittleEndian.PutUint64(header[16:24], uint64(frame.CapturedAt.UnixNano()))
		binary.LittleEndian.PutUint32(header[24:28], uint32(len(frame.Payload)))
		if _, err := r.frameStream.Write(header); err != nil {
			return err
		}
		if _, err := r.frameStream.Write(frame.Payload); err != nil {
			return err
		}
	}
	r.pending = r.pending[:0]
	return nil
}
