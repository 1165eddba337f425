// Package engine drives a countdown run: it fans frame indices out to a
// bounded pool of render workers and stops at the first failure.
package engine

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/sync/errgroup"

	"github.com/cmpilato/gen-countdown-frames/internal/composer"
	"github.com/cmpilato/gen-countdown-frames/internal/config"
	"github.com/cmpilato/gen-countdown-frames/internal/fonts"
	"github.com/cmpilato/gen-countdown-frames/internal/sequence"
	"github.com/cmpilato/gen-countdown-frames/internal/system"
)

const dirPerm = 0755

type CountdownProject struct {
	Config *config.Config
	// Font may be nil when text is disabled.
	Font   *fonts.Font
	Frames *sequence.Generator
	Host   system.Host
	Log    *log.Logger
}

func NewCountdownProject(cfg *config.Config, f *fonts.Font, frames *sequence.Generator) *CountdownProject {
	return &CountdownProject{
		Config: cfg,
		Font:   f,
		Frames: frames,
		Host:   system.Probe(),
		Log:    log.New(io.Discard, "", 0),
	}
}

// Stats summarizes a finished run.
type Stats struct {
	Frames  int
	Workers int
	Elapsed time.Duration
}

func (s Stats) FPS() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Frames) / s.Elapsed.Seconds()
}

func (s Stats) Report() string {
	return fmt.Sprintf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Frames: %d\n"+
			"Workers: %d\n"+
			"Total Time: %.2fs\n"+
			"Effective FPS: %.2f\n"+
			"----------------------------\n",
		s.Frames, s.Workers, s.Elapsed.Seconds(), s.FPS(),
	)
}

// Workers is the pool size Run will use.
func (p *CountdownProject) Workers() int {
	r := &p.Config.Render
	n := p.Host.Workers(p.Config.Workers, system.FrameBytes(r.Width, r.Height))
	if total := p.Frames.Total(); n > total {
		n = total
	}
	return n
}

// Run renders every frame into the output directory. With more than one
// worker frames finish out of order; the first error cancels the rest and
// is returned.
func (p *CountdownProject) Run(ctx context.Context) (Stats, error) {
	start := time.Now()
	stats := Stats{Frames: p.Frames.Total(), Workers: p.Workers()}

	if !p.Config.Render.DisableText && p.Font == nil {
		return stats, fmt.Errorf("%w: no font for text rendering", fonts.ErrFontLoad)
	}
	if err := os.MkdirAll(p.Config.OutputDir, dirPerm); err != nil {
		return stats, fmt.Errorf("create output directory: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	jobs := make(chan int, stats.Workers)

	g.Go(func() error {
		defer close(jobs)
		for i := 0; i < stats.Frames; i++ {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < stats.Workers; w++ {
		g.Go(func() error {
			return p.work(ctx, jobs)
		})
	}

	err := g.Wait()
	stats.Elapsed = time.Since(start)
	if err != nil {
		return stats, err
	}
	if p.Config.Verbose {
		p.Log.Println("Finished!")
	}
	return stats, nil
}

func (p *CountdownProject) work(ctx context.Context, jobs <-chan int) error {
	var face font.Face
	if !p.Config.Render.DisableText {
		var err error
		if face, err = p.Font.NewFace(); err != nil {
			return fmt.Errorf("%w: %v", fonts.ErrFontLoad, err)
		}
		defer face.Close()
	}
	c := composer.New(&p.Config.Render, face)

	for i := range jobs {
		if err := ctx.Err(); err != nil {
			return err
		}
		frame := p.Frames.Frame(i)
		path := filepath.Join(p.Config.OutputDir, frame.Filename)
		if err := c.Render(frame, path); err != nil {
			return err
		}
		if p.Config.Verbose {
			p.Log.Printf("Create file '%s' ... done.", path)
		}
	}
	return nil
}
