// Package claude delegates appraisal text to the claude CLI running in
// headless print mode.
package claude

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"unicode/utf8"

	"github.com/LanS10t/geminiMiner/internal/appraisal"
	"github.com/LanS10t/geminiMiner/internal/logging"
)

// RunesPerToken approximates how many runes one output token buys.
const RunesPerToken = 4

const systemPrompt = "Reply with the appraisal only. No preamble, no markdown."

// ErrCLIError is returned when the CLI reports is_error in its JSON output.
var ErrCLIError = errors.New("claude: CLI reported an error")

// cliResponse is the subset of `claude -p --output-format json` we read.
type cliResponse struct {
	Type         string  `json:"type"`
	IsError      bool    `json:"is_error"`
	Result       string  `json:"result"`
	TotalCostUSD float64 `json:"total_cost_usd"`
	DurationMs   int64   `json:"duration_ms"`
}

// Generator is an appraisal.Generator that shells out to the claude CLI.
type Generator struct {
	Path         string
	Model        string
	MaxBudgetUSD float64
	Logger       logging.Logger
}

var _ appraisal.Generator = (*Generator)(nil)

// buildEnv strips CLAUDECODE so the CLI can run nested inside another
// session, and disables MCP popups for headless use.
func buildEnv(base []string) []string {
	env := make([]string, 0, len(base)+1)
	for _, e := range base {
		if !strings.HasPrefix(e, "CLAUDECODE=") {
			env = append(env, e)
		}
	}
	env = append(env, "CLAUDE_CODE_DISABLE_MCP_POPUPS=1")
	return env
}

func (g *Generator) buildArgs(prompt string) []string {
	args := []string{
		"-p", prompt,
		"--output-format", "json",
		"--system-prompt", systemPrompt,
	}
	if g.Model != "" {
		args = append(args, "--model", g.Model)
	}
	if g.MaxBudgetUSD > 0 {
		args = append(args, "--max-budget-usd", fmt.Sprintf("%.2f", g.MaxBudgetUSD))
	}
	return args
}

// Generate runs the CLI once. The CLI has no temperature control, so only
// the token budget is honoured, by truncating the reply.
func (g *Generator) Generate(ctx context.Context, prompt string, opts appraisal.GenerateOptions) appraisal.Result {
	cmd := exec.CommandContext(ctx, g.Path, g.buildArgs(prompt)...)
	cmd.SysProcAttr = sessionAttr()
	cmd.Env = buildEnv(os.Environ())

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return appraisal.Err(fmt.Errorf("claude: invocation failed: %w: %s", err, strings.TrimSpace(stderr.String())))
	}

	resp, err := parseResponse(stdout.Bytes())
	if err != nil {
		return appraisal.Err(err)
	}

	logging.OrNop(g.Logger).Debug("claude responded",
		logging.Float64("cost_usd", resp.TotalCostUSD),
		logging.Int("duration_ms", int(resp.DurationMs)),
	)
	return appraisal.Ok(truncate(strings.TrimSpace(resp.Result), opts.MaxOutputTokens*RunesPerToken))
}

func parseResponse(raw []byte) (cliResponse, error) {
	var resp cliResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return cliResponse{}, fmt.Errorf("claude: parsing JSON output: %w", err)
	}
	if resp.IsError {
		return cliResponse{}, fmt.Errorf("%w: %s", ErrCLIError, resp.Result)
	}
	return resp, nil
}

// truncate cuts s to at most limit runes, preferring the last sentence end
// inside the limit. A non-positive limit leaves s unchanged.
func truncate(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	cut := string([]rune(s)[:limit])
	if i := strings.LastIndexAny(cut, ".!?"); i > 0 {
		return cut[:i+1]
	}
	return strings.TrimSpace(cut)
}

// Available reports whether the CLI resolves on PATH (or as a file path).
func (g *Generator) Available() bool {
	_, err := exec.LookPath(g.Path)
	return err == nil
}

// Validate runs `claude --version` to confirm the CLI works.
func (g *Generator) Validate() error {
	cmd := exec.Command(g.Path, "--version")
	cmd.Env = buildEnv(os.Environ())

	out, err := cmd.Output()
	if err != nil {
		return fmt.Errorf("claude CLI not found at %q: %w", g.Path, err)
	}
	logging.OrNop(g.Logger).Debug("claude CLI found", logging.String("version", strings.TrimSpace(string(out))))
	return nil
}
