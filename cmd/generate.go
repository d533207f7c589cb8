package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathgen/internal/config"
	"github.com/abhisek/mathgen/internal/imagegen"
	"github.com/abhisek/mathgen/internal/llm"
	"github.com/abhisek/mathgen/internal/questiongen"
	"github.com/abhisek/mathgen/internal/render"
	"github.com/abhisek/mathgen/internal/store"
	"github.com/abhisek/mathgen/internal/tagged"
)

// errNothingGenerated is returned when every base question failed.
var errNothingGenerated = errors.New("no questions were generated")

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate new questions from a base question file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		applyGenerateFlags(cmd, &cfg)
		if err := cfg.Validate(); err != nil {
			return err
		}

		st, err := openStore(cmd, cfg)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer st.Close()

		ctx := cmd.Context()
		provider, err := llm.NewProvider(ctx, cfg.LLM, st.EventRepo())
		if err != nil {
			return err
		}

		deps := pipelineDeps{
			provider: provider,
			runs:     st.RunRepo(),
			images:   st.EventRepo(),
			out:      cmd.OutOrStdout(),
			log:      cmd.ErrOrStderr(),
		}
		if !cfg.SkipImages {
			client, err := imagegen.NewClient(cfg.Image, imagegen.WithLog(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			deps.fetcher = client
		}

		preview, _ := cmd.Flags().GetBool("preview")
		deps.preview = preview
		return runPipeline(ctx, cfg, deps)
	},
}

func applyGenerateFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.Input, _ = flags.GetString("input")
	}
	if flags.Changed("output") {
		cfg.Output, _ = flags.GetString("output")
	}
	if flags.Changed("images") {
		cfg.ImagesDir, _ = flags.GetString("images")
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency, _ = flags.GetInt("concurrency")
	}
	if flags.Changed("no-images") {
		cfg.SkipImages, _ = flags.GetBool("no-images")
	}
	if flags.Changed("provider") {
		cfg.LLM.Provider, _ = flags.GetString("provider")
	}
}

// pipelineDeps are the collaborators of one generation run.
type pipelineDeps struct {
	provider llm.Provider
	// fetcher is nil when images are disabled.
	fetcher imagegen.Fetcher
	runs    store.RunRepo
	images  imagegen.ImageRecorder
	preview bool
	out     io.Writer
	log     io.Writer
}

// runPipeline loads base questions, generates and parses new ones, fetches
// their images and writes the PDF. Only startup failures and an entirely
// empty batch are returned as errors.
func runPipeline(ctx context.Context, cfg config.Config, deps pipelineDeps) error {
	items, err := questiongen.LoadBaseQuestions(cfg.Input)
	if err != nil {
		return err
	}

	run, err := deps.runs.StartRun(ctx, store.RunInput{
		InputPath:  cfg.Input,
		OutputPath: cfg.Output,
		Provider:   cfg.LLM.Provider,
		Model:      deps.provider.ModelID(),
		Items:      len(items),
	})
	if err != nil {
		return fmt.Errorf("start run: %w", err)
	}
	ctx = llm.WithRunID(ctx, run.ID)
	summary := store.RunSummary{Status: store.RunStatusFailed}
	defer func() {
		if ferr := deps.runs.FinishRun(context.WithoutCancel(ctx), run.ID, summary); ferr != nil {
			fmt.Fprintf(deps.log, "warning: failed to record run summary: %v\n", ferr)
		}
	}()

	fmt.Fprintf(deps.out, "Generating %d questions (run %s)...\n", len(items), run.ID)

	qcfg := questiongen.DefaultConfig()
	qcfg.MaxTokens = cfg.LLM.MaxTokens
	qcfg.Temperature = cfg.LLM.Temperature
	qcfg.Timeout = cfg.LLM.Timeout
	qcfg.Concurrency = cfg.Concurrency
	qcfg.Log = deps.log
	raws := questiongen.New(deps.provider, qcfg).BatchGenerate(ctx, items)

	for _, raw := range raws {
		if raw == "" {
			summary.GenerationFailed++
		} else {
			summary.Generated++
		}
	}
	if summary.Generated == 0 {
		return errNothingGenerated
	}
	fmt.Fprintf(deps.out, "Generated %d of %d questions.\n", summary.Generated, len(raws))
	fmt.Fprintf(deps.out, "Preview of first question:\n%s\n\n", raws[0])

	records := tagged.ParseAll(raws)

	if deps.fetcher != nil {
		pipe := imagegen.NewPipeline(deps.fetcher, cfg.ImagesDir,
			imagegen.WithConcurrency(cfg.Concurrency),
			imagegen.WithRecorder(deps.images, run.ID),
			imagegen.WithPipelineLog(deps.log),
		)
		isum := pipe.Run(ctx, tagged.ExtractImagePrompts(raws))
		summary.ImagesSucceeded = isum.Succeeded
		summary.ImagesFailed = isum.Failed
		summary.ImagesSkipped = isum.Skipped
		if isum.Succeeded > 0 {
			fmt.Fprintf(deps.out, "Images saved to %s\n", cfg.ImagesDir)
		}
	}

	if deps.preview {
		if err := render.Preview(deps.out, cfg.PDF.Title, records); err != nil {
			return err
		}
	}

	if err := render.WritePDF(cfg.Output, records, cfg.PDF); err != nil {
		return err
	}
	fmt.Fprintf(deps.out, "Questions saved to: %s\n", cfg.Output)

	summary.Status = store.RunStatusCompleted
	return nil
}

func init() {
	f := generateCmd.Flags()
	f.StringP("input", "i", "", "Base questions JSON file (default data/base_questions.json)")
	f.StringP("output", "o", "", "Output PDF path (default output/generated_questions.pdf)")
	f.String("images", "", "Directory for generated images (default images)")
	f.IntP("concurrency", "c", 1, "Number of questions and images processed at once")
	f.Bool("no-images", false, "Skip image generation")
	f.String("provider", "", "LLM provider: gemini, openai, anthropic, openrouter, mock")
	f.Bool("preview", false, "Print a styled preview of every parsed question")
}
