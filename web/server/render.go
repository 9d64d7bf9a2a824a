package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/output"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// CompleteUpdate is the final event of a streamed render
type CompleteUpdate struct {
	Scene     string `json:"scene"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Format    string `json:"format"`
	ImageData string `json:"imageData"` // Base64 encoded image
	Stats     Stats  `json:"stats"`
	ElapsedMs int64  `json:"elapsedMs"`
}

// handleRenderStream renders a scene while streaming log lines via SSE,
// then sends the encoded image in a "complete" event
func (s *Server) handleRenderStream(w http.ResponseWriter, r *http.Request) {
	// Set SSE headers
	s.setSSEHeaders(w)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Create unified SSE event channel for thread-safe writing
	sseEventChan := make(chan SSEEvent, 100)

	// Start single SSE writer goroutine; it drains the channel before the handler returns
	writerDone := make(chan struct{})
	go func() {
		s.writeSSEEvents(w, ctx, sseEventChan)
		close(writerDone)
	}()
	defer func() {
		close(sseEventChan)
		<-writerDone
	}()

	// Parse and validate request
	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := s.createScene(req.Scene)
	if err != nil {
		s.handleError(ctx, sseEventChan, err.Error())
		return
	}

	// Setup console logging and streaming
	consoleChan, webLogger := s.setupConsoleLogging()
	consoleDone := make(chan struct{})
	go func() {
		s.streamConsoleMessages(ctx, consoleChan, sseEventChan)
		close(consoleDone)
	}()

	startTime := time.Now()
	img, stats, err := s.render(ctx, sceneObj, req, webLogger)

	// Rendering is finished, so nothing logs to the console channel any more
	close(consoleChan)
	<-consoleDone

	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Render error: %v", err))
		return
	}

	imageData, err := s.imageToBase64(img, req.Format)
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Failed to encode image: %v", err))
		return
	}

	if req.Upload {
		if err := s.upload(ctx, sceneObj.Name, img, req.Format); err != nil {
			log.Printf("Upload failed: %v", err)
			s.handleError(ctx, sseEventChan, "Upload failed")
			return
		}
	}

	update := CompleteUpdate{
		Scene:     sceneObj.Name,
		Width:     img.Width,
		Height:    img.Height,
		Format:    string(req.Format),
		ImageData: imageData,
		Stats:     newStats(stats),
		ElapsedMs: time.Since(startTime).Milliseconds(),
	}
	data, err := json.Marshal(update)
	if err != nil {
		s.handleError(ctx, sseEventChan, err.Error())
		return
	}
	s.sendEvent(ctx, sseEventChan, SSEEvent{Type: "complete", Data: string(data)})
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	webLogger := NewWebLogger(renderID, consoleChan)
	return consoleChan, webLogger
}

// writeSSEEvents handles writing all SSE events in a single goroutine (thread-safe)
func (s *Server) writeSSEEvents(w http.ResponseWriter, ctx context.Context, sseEventChan chan SSEEvent) {
	for {
		select {
		case event, ok := <-sseEventChan:
			if !ok {
				// Channel closed
				return
			}

			// Write SSE event
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
				// Client disconnected during write
				return
			}
			if flusher, ok := w.(http.Flusher); ok {
				flusher.Flush()
			}

		case <-ctx.Done():
			// Client disconnected
			return
		}
	}
}

// streamConsoleMessages forwards console messages until consoleChan is closed
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan chan ConsoleMessage, sseEventChan chan SSEEvent) {
	for consoleMsg := range consoleChan {
		data, err := json.Marshal(consoleMsg)
		if err != nil {
			log.Printf("Error marshaling console message: %v", err)
			continue
		}

		// Send to unified SSE channel
		select {
		case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
		case <-ctx.Done():
		default:
			// Channel full, skip message to avoid blocking
		}
	}
}

// sendEvent queues an event unless the client has gone away
func (s *Server) sendEvent(ctx context.Context, sseEventChan chan SSEEvent, event SSEEvent) {
	select {
	case sseEventChan <- event:
	case <-ctx.Done():
	}
}

// handleError sends an error event to the SSE channel
func (s *Server) handleError(ctx context.Context, sseEventChan chan SSEEvent, message string) {
	log.Printf("Render stream error: %s", message)
	s.sendEvent(ctx, sseEventChan, SSEEvent{Type: "error", Data: message})
}

// imageToBase64 encodes an image in format and base64-encodes the result
func (s *Server) imageToBase64(img *renderer.Image, format output.Format) (string, error) {
	data, err := encodeImage(img, format)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

func encodeImage(img *renderer.Image, format output.Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := output.Encode(&buf, img, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
