// Command digitize runs the full digitizer -> measurement -> classifier ->
// mapper pipeline over a single bitmap and prints the canonical JSON
// contract. PDF rasterization is the caller's
// responsibility; this entrypoint accepts an already-rasterized PNG or JPEG.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"

	"github.com/google/uuid"

	"ecgdigitizer/internal/config"
	"ecgdigitizer/internal/digitizer/domain"
	"ecgdigitizer/internal/logging"
	"ecgdigitizer/internal/orchestrator/application"
)

func main() {
	inputPath := flag.String("input", "", "path to a rasterized ECG bitmap (PNG or JPEG)")
	sessionID := flag.String("session-id", "", "session id to tag the output with (generated if empty)")
	development := flag.Bool("dev", false, "use human-readable development logging instead of JSON")
	flag.Parse()

	logger, err := logging.NewLogger(*development)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}

	bmp, err := loadBitmap(*inputPath)
	if err != nil {
		logger.Warn("falling back to empty bitmap", "error", err.Error())
		bmp = &domain.Bitmap{}
	}

	sid := *sessionID
	if sid == "" {
		sid = uuid.NewString()
	}

	orchestrator := application.NewOrchestrator(config.DefaultPipelineConfig(), logger)
	runResult := orchestrator.Run(bmp, sid)

	encoded, err := json.MarshalIndent(runResult.Contract, "", "  ")
	if err != nil {
		log.Fatalf("failed to marshal contract: %v", err)
	}
	fmt.Println(string(encoded))

	logger.Info("digitize run complete", "session_id", sid, "degraded", runResult.Contract.PipelineDegraded, "stage_count", len(runResult.Timings))
}

func loadBitmap(path string) (*domain.Bitmap, error) {
	if path == "" {
		return nil, fmt.Errorf("no -input path supplied")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			rgba.Set(x, y, img.At(x, y))
		}
	}
	return domain.NewBitmap(rgba), nil
}
