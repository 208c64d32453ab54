package commands

import (
	"github.com/lapisvisuals/lapis/concurrency/worker"
	"github.com/lapisvisuals/lapis/config"
	"github.com/lapisvisuals/lapis/imageopt"
	"github.com/spf13/cobra"
)

func newOptimizeImagesCommand(configFile *string) *cobra.Command {
	var (
		in, out, format string
		width, height   int
		quality         int
		recursive       bool
	)

	cmd := &cobra.Command{
		Use:     "optimize-images",
		Aliases: []string{"images"},
		Short:   "Resize and re-encode image assets",
		Example: "  lapis optimize-images --in public/images --out public/images/optimized --width 1920 --quality 80",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(*configFile)
			if err != nil {
				return err
			}
			ic := cfg.Images
			flags := cmd.Flags()
			if !flags.Changed("in") {
				in = ic.InputDir
			}
			if !flags.Changed("out") {
				out = ic.OutputDir
			}
			if !flags.Changed("width") {
				width = ic.Width
			}
			if !flags.Changed("height") {
				height = ic.Height
			}
			if !flags.Changed("quality") {
				quality = ic.Quality
			}
			if !flags.Changed("format") {
				format = ic.Format
			}

			pool, stop, err := worker.ProvidePool(&worker.Config{MaxWorkers: max(ic.Workers, 1), QueueSize: 64})
			if err != nil {
				return err
			}
			defer stop()

			cmd.Printf("Optimizing images from %s to %s\n", in, out)
			results, err := imageopt.OptimizeDir(cmd.Context(), pool, in, out, imageopt.Options{
				Width:     width,
				Height:    height,
				Quality:   quality,
				Format:    format,
				Recursive: recursive,
			})
			if err != nil {
				return err
			}

			var failed []imageopt.Result
			cmd.Printf("Processed %d files\n", len(results))
			for _, r := range results {
				if r.Success {
					cmd.Printf("- %s -> %s\n", r.File, r.OutputPath)
				} else {
					failed = append(failed, r)
				}
			}
			cmd.Printf("Successfully optimized: %d files\n", len(results)-len(failed))
			if len(failed) > 0 {
				cmd.Printf("Failed to optimize: %d files\n", len(failed))
				for _, r := range failed {
					cmd.Printf("- %s: %s\n", r.File, r.Error)
				}
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&in, "in", "", "input directory (default images.input_dir)")
	flags.StringVar(&out, "out", "", "output directory (default images.output_dir)")
	flags.IntVar(&width, "width", 0, "max width, 0 keeps the width")
	flags.IntVar(&height, "height", 0, "max height, 0 keeps the height")
	flags.IntVar(&quality, "quality", imageopt.DefaultQuality, "jpeg quality 1-100")
	flags.StringVar(&format, "format", "", "output format: jpeg or png (default keeps the source format)")
	flags.BoolVar(&recursive, "recursive", true, "walk subdirectories")
	return cmd
}
