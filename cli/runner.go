// Command execution for CLI commands.
//
// Information Hiding:
// - Pipeline wiring (collect -> build -> validate -> dispatch -> extract) hidden
// - Provider and credential setup hidden
// - Output formatting hidden

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ngerold/shellsage/config"
	"github.com/ngerold/shellsage/llm"
	"github.com/ngerold/shellsage/pane"
	"github.com/ngerold/shellsage/prompt"
	"github.com/ngerold/shellsage/render"
	"github.com/ngerold/shellsage/storage"
)

// Options holds CLI execution options.
type Options struct {
	Provider     string
	Model        string
	Pane         string
	HistoryLines int
	Sassy        bool
	Theme        string
	Verbose      bool
	Stream       bool
	LogUsage     bool
}

// DefaultOptions returns default CLI options.
func DefaultOptions() Options {
	return Options{
		Provider: "anthropic",
		Pane:     pane.TargetCurrent,
	}
}

// Run executes one query invocation end to end. Every invocation ends with
// exactly one rendered answer or one reported error, never both.
func Run(ctx context.Context, query string, opts Options) error {
	if opts.Provider == "" {
		opts.Provider = "anthropic"
	}

	settings, err := config.New(opts.Provider)
	if err != nil {
		return err
	}
	if opts.Model == "" {
		opts.Model = settings.LLM.Model
	}
	if opts.HistoryLines == 0 {
		opts.HistoryLines = settings.CLI.HistoryLines
	}
	if opts.Theme == "" {
		opts.Theme = settings.CLI.CodeTheme
	}
	opts.LogUsage = opts.LogUsage || settings.CLI.LogUsage

	providerType, err := llm.ParseProviderType(settings.LLM.Provider)
	if err != nil {
		return err
	}
	if owner, ok := llm.ProviderForModel(opts.Model); ok && owner != providerType.String() {
		return fmt.Errorf("model %s belongs to provider %s, not %s", opts.Model, owner, providerType)
	}

	apiKey, err := config.APIKeyFor(settings.LLM.Provider)
	if err != nil {
		return err
	}
	provider, err := llm.NewProvider(providerType, apiKey, opts.Model)
	if err != nil {
		return err
	}

	promptText := collectContext(query, opts)

	messages, err := prompt.Build(promptText, prompt.Persona(opts.Sassy))
	if err != nil {
		return err
	}

	req, err := llm.NewRequest(opts.Model, messages, llm.RequestOptions{
		Temperature: settings.LLM.Temperature,
		MaxTokens:   settings.LLM.MaxTokens,
		Stream:      opts.Stream,
	})
	if err != nil {
		return err
	}

	usageLog := llm.NewUsageLog()
	client := llm.NewClient(provider, llm.WithUsageLog(usageLog))

	if opts.Stream {
		err = runStreaming(ctx, client, req)
	} else {
		err = runBlocking(ctx, client, req, opts.Theme)
	}
	if err != nil {
		return err
	}

	finishUsage(ctx, usageLog, provider, opts)
	return nil
}

// collectContext gathers the optional context fragments. Absence of a
// source (no tmux session, no piped stdin) omits its fragment.
func collectContext(query string, opts Options) string {
	history, err := pane.History(opts.HistoryLines, opts.Pane)
	if err != nil {
		if opts.Verbose {
			render.Noticef("terminal history unavailable: %v", err)
		}
		history = ""
	}

	stdin := ""
	if !render.IsStdinTTY() {
		data, err := io.ReadAll(os.Stdin)
		if err == nil {
			stdin = string(data)
		} else if opts.Verbose {
			render.Noticef("reading piped input: %v", err)
		}
	}

	return prompt.Collect(history, stdin, query)
}

func runBlocking(ctx context.Context, client *llm.Client, req *llm.ChatRequest, theme string) error {
	answer, err := client.Chat(ctx, req)
	if errors.Is(err, llm.ErrEmptyResponse) {
		// Degraded result, not a crash.
		render.Noticef("(the model returned no content)")
		return nil
	}
	if err != nil {
		return err
	}

	if render.IsStdoutTTY() {
		fmt.Print(render.Markdown(answer, theme))
	} else {
		fmt.Println(answer)
	}
	return nil
}

func runStreaming(ctx context.Context, client *llm.Client, req *llm.ChatRequest) error {
	stream := client.Stream(ctx, req)
	defer stream.Close()

	wrote := false
	for stream.Next() {
		fmt.Print(stream.Text())
		wrote = true
	}
	if err := stream.Err(); err != nil {
		if wrote {
			fmt.Println()
		}
		return err
	}
	if !wrote {
		render.Noticef("(the model returned no content)")
		return nil
	}
	fmt.Println()
	return nil
}

// finishUsage reports and persists usage accounting after a completed call.
// Persistence failures are reported but never fail the invocation.
func finishUsage(ctx context.Context, usageLog *llm.UsageLog, provider llm.Provider, opts Options) {
	records := usageLog.Records()
	if len(records) == 0 {
		return
	}
	total := usageLog.Total()

	cost := 0.0
	if pricing, ok := llm.PricingFor(provider.Model()); ok {
		cost = total.Cost(pricing)
	}

	if opts.Verbose {
		render.Noticef("tokens: %d in, %d out, %d cache write, %d cache read (est. $%.4f)",
			total.InputTokens, total.OutputTokens,
			total.CacheWriteTokens, total.CacheReadTokens, cost)
	}

	if !opts.LogUsage {
		return
	}
	dir, err := config.ConfigDir()
	if err != nil {
		render.Noticef("usage log unavailable: %v", err)
		return
	}
	store, err := storage.Open(storage.DefaultPath(dir))
	if err != nil {
		render.Noticef("usage log unavailable: %v", err)
		return
	}
	defer store.Close()

	err = store.Record(ctx, storage.Invocation{
		Provider: provider.Name(),
		Model:    provider.Model(),
		Usage:    total,
		Cost:     cost,
	})
	if err != nil {
		render.Noticef("usage log write failed: %v", err)
	}
}

// Setup stores an API key in the credential file.
func Setup(provider, apiKey string) error {
	if provider == "" {
		provider = "anthropic"
	}
	if err := config.SaveAPIKey(provider, apiKey); err != nil {
		return err
	}
	fmt.Printf("Saved %s API key.\n", provider)
	return nil
}

// ShowUsage prints recent usage history and totals.
func ShowUsage(ctx context.Context, limit int) error {
	dir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	store, err := storage.Open(storage.DefaultPath(dir))
	if err != nil {
		return err
	}
	defer store.Close()

	recent, err := store.Recent(ctx, limit)
	if err != nil {
		return err
	}
	if len(recent) == 0 {
		fmt.Println("No usage recorded. Enable with --log-usage or SSAGE_LOG_USAGE=true.")
		return nil
	}

	for _, inv := range recent {
		fmt.Printf("%s  %-9s %-28s %6d in %6d out  $%.4f\n",
			inv.Timestamp.Local().Format("2006-01-02 15:04"),
			inv.Provider, inv.Model,
			inv.Usage.InputTokens, inv.Usage.OutputTokens, inv.Cost)
	}

	total, cost, err := store.Totals(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("\nTotal: %d tokens, est. $%.4f\n", total.Total(), cost)
	return nil
}

// ListModels prints the model registry grouped by provider.
func ListModels() {
	byProvider := map[string][]string{}
	for _, id := range llm.Models() {
		provider, _ := llm.ProviderForModel(id)
		byProvider[provider] = append(byProvider[provider], id)
	}

	for _, provider := range []string{"anthropic", "openai", "deepseek", "gemini"} {
		ids := byProvider[provider]
		if len(ids) == 0 {
			continue
		}
		fmt.Printf("%s:\n", provider)
		for _, id := range ids {
			if pricing, ok := llm.PricingFor(id); ok {
				fmt.Printf("  %-30s $%.2f/$%.2f per Mtok\n", id, pricing.Input, pricing.Output)
			} else {
				fmt.Printf("  %s\n", id)
			}
		}
	}
}
