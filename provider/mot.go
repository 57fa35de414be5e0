package provider

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
)

// MOTDetection is one bounding-box detection line from an MOT-style
// tracking file: frame,track_id,bb_left,bb_top,bb_width,bb_height,
// confidence,class_id,visibility_ratio.
type MOTDetection struct {
	Frame           int64
	TrackID         int64
	BBLeft          float64
	BBTop           float64
	BBWidth         float64
	BBHeight        float64
	Confidence      float64
	ClassID         int64
	VisibilityRatio int64
}

// MOTFrameData groups every detection that shares a frame number — the
// unit of value the cache actually stores and prefetches.
type MOTFrameData struct {
	FrameNumber int64
	Detections  []MOTDetection
}

// Size implements policy.Sizer so size-based eviction policies (Largest,
// Smallest) have something to compare: one detection line is treated as a
// fixed-width unit.
func (f MOTFrameData) Size() int { return len(f.Detections) }

// MOTProvider loads MOTFrameData from a single MOT-format text file kept
// fully parsed in memory. It is the cache core's reference "concrete data
// provider" (spec.md §1 explicitly scopes these out of the core); loading
// is intentionally not lazy-per-line, matching how the original Python
// MOTDataProvider eagerly indexes the file once at construction.
type MOTProvider struct {
	mu     sync.RWMutex
	frames map[Key]MOTFrameData
}

// NewMOTProvider parses path and indexes every frame it finds.
func NewMOTProvider(path string) (*MOTProvider, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return newMOTProviderFromReader(f)
}

func newMOTProviderFromReader(r io.Reader) (*MOTProvider, error) {
	p := &MOTProvider{frames: make(map[Key]MOTFrameData)}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		det, err := parseMOTDetection(line)
		if err != nil {
			return nil, fmt.Errorf("provider: line %d: %w", lineNo, err)
		}
		fd := p.frames[det.Frame]
		fd.FrameNumber = det.Frame
		fd.Detections = append(fd.Detections, det)
		p.frames[det.Frame] = fd
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return p, nil
}

func parseMOTDetection(line string) (MOTDetection, error) {
	fields := strings.Split(line, ",")
	if len(fields) != 9 {
		return MOTDetection{}, fmt.Errorf("expected 9 comma-separated fields, got %d", len(fields))
	}
	ints := make([]int64, 0, 3)
	floats := make([]float64, 0, 5)
	parseInt := func(s string) (int64, error) { return strconv.ParseInt(strings.TrimSpace(s), 10, 64) }
	parseFloat := func(s string) (float64, error) { return strconv.ParseFloat(strings.TrimSpace(s), 64) }

	frame, err := parseInt(fields[0])
	if err != nil {
		return MOTDetection{}, fmt.Errorf("frame: %w", err)
	}
	trackID, err := parseInt(fields[1])
	if err != nil {
		return MOTDetection{}, fmt.Errorf("track_id: %w", err)
	}
	ints = append(ints, frame, trackID)

	for i := 2; i <= 6; i++ {
		v, err := parseFloat(fields[i])
		if err != nil {
			return MOTDetection{}, fmt.Errorf("field %d: %w", i, err)
		}
		floats = append(floats, v)
	}
	classID, err := parseInt(fields[7])
	if err != nil {
		return MOTDetection{}, fmt.Errorf("class_id: %w", err)
	}
	visibility, err := parseInt(fields[8])
	if err != nil {
		return MOTDetection{}, fmt.Errorf("visibility_ratio: %w", err)
	}
	ints = append(ints, classID, visibility)

	return MOTDetection{
		Frame:           ints[0],
		TrackID:         ints[1],
		BBLeft:          floats[0],
		BBTop:           floats[1],
		BBWidth:         floats[2],
		BBHeight:        floats[3],
		Confidence:      floats[4],
		ClassID:         ints[2],
		VisibilityRatio: ints[3],
	}, nil
}

// Load implements Provider[MOTFrameData].
func (p *MOTProvider) Load(ctx context.Context, key Key) (MOTFrameData, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	fd, ok := p.frames[key]
	if !ok {
		return MOTFrameData{}, ErrKeyNotFound
	}
	return fd, nil
}

// AvailableKeys implements Provider[MOTFrameData].
func (p *MOTProvider) AvailableKeys() []Key {
	p.mu.RLock()
	defer p.mu.RUnlock()
	keys := make([]Key, 0, len(p.frames))
	for k := range p.frames {
		keys = append(keys, k)
	}
	return keys
}

// TotalKeys implements Provider[MOTFrameData].
func (p *MOTProvider) TotalKeys() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.frames)
}

// Stats implements Provider[MOTFrameData].
func (p *MOTProvider) Stats() map[string]any {
	p.mu.RLock()
	defer p.mu.RUnlock()
	detections := 0
	for _, fd := range p.frames {
		detections += len(fd.Detections)
	}
	return map[string]any{
		"total_frames":     len(p.frames),
		"total_detections": detections,
	}
}

var _ Provider[MOTFrameData] = (*MOTProvider)(nil)
