// pathtracer renders one of the built-in scenes to a PNG or PPM image.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/golang/glog"
	"github.com/spf13/cobra"
)

var cmdRoot = &cobra.Command{
	Use:           "pathtracer",
	Short:         "Render a built-in scene with a Monte Carlo path tracer",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// glog reads its flags from the Go flag set, which cobra has already filled
		return flag.CommandLine.Parse(nil)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		output := renderOutput
		if output == "" {
			output = defaultOutputPath(renderSceneID, time.Now())
		}

		return renderToFile(ctx, renderSceneID, output, renderer.Config{
			SamplesPerPixel: renderSamples,
			MaxDepth:        renderDepth,
			NumWorkers:      renderWorkers,
			Seed:            renderSeed,
		})
	},
}

var (
	renderSceneID string
	renderSamples int
	renderDepth   int
	renderWorkers int
	renderSeed    int64
	renderOutput  string
)

func init() {
	defaults := renderer.DefaultConfig()
	cmdRoot.Flags().StringVar(&renderSceneID, "scene", "cornell", "Scene to render (see the scenes command)")
	cmdRoot.Flags().IntVar(&renderSamples, "samples", 0, "Samples per pixel; 0 uses the scene's setting")
	cmdRoot.Flags().IntVar(&renderDepth, "depth", 0, "Maximum bounce depth; 0 uses the scene's setting")
	cmdRoot.Flags().IntVar(&renderWorkers, "workers", defaults.NumWorkers, "Rows rendered concurrently")
	cmdRoot.Flags().Int64Var(&renderSeed, "seed", defaults.Seed, "Base random seed")
	cmdRoot.Flags().StringVar(&renderOutput, "output", "", "Output file (.png or .ppm); defaults to output/<scene>/render_<timestamp>.png")
	cmdRoot.PersistentFlags().AddGoFlagSet(flag.CommandLine)
}

var cmdScenes = &cobra.Command{
	Use:   "scenes",
	Short: "List the built-in scenes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return listScenes(cmd.OutOrStdout())
	},
}

func listScenes(w io.Writer) error {
	for _, group := range scene.ListSceneGroups() {
		if _, err := fmt.Fprintf(w, "%s:\n", group.Name); err != nil {
			return err
		}
		for _, info := range group.Scenes {
			if _, err := fmt.Fprintf(w, "  %-20s %s\n", info.ID, info.Description); err != nil {
				return err
			}
		}
	}
	return nil
}

func defaultOutputPath(sceneID string, now time.Time) string {
	return filepath.Join("output", sceneID, fmt.Sprintf("render_%s.png", now.Format("20060102_150405")))
}

// renderToFile builds, preprocesses and renders a scene, then writes the frame to output
func renderToFile(ctx context.Context, sceneID, output string, config renderer.Config) error {
	s, err := scene.New(sceneID)
	if err != nil {
		return fmt.Errorf("while creating scene: %w", err)
	}

	if err := s.Preprocess(ctx, core.NewSeededSampler(config.Seed)); err != nil {
		return fmt.Errorf("while preprocessing scene %q: %w", sceneID, err)
	}
	glog.Infof("Scene %q: %d primitives, %d lights", sceneID, s.GetPrimitiveCount(), len(s.Lights))

	frame, _, err := renderer.NewRaytracer(s, config, renderer.NewGlogLogger()).Render(ctx)
	if err != nil {
		return fmt.Errorf("while rendering scene %q: %w", sceneID, err)
	}

	if err := frame.Save(output); err != nil {
		return fmt.Errorf("while saving render: %w", err)
	}
	glog.Infof("Render saved as %s", output)
	return nil
}

func main() {
	glog.CopyStandardLogTo("INFO")

	cmdRoot.AddCommand(cmdScenes)

	if err := cmdRoot.Execute(); err != nil {
		glog.Errorf("%v", err)
		glog.Flush()
		os.Exit(1)
	}
	glog.Flush()
}
