package cli

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	builtindocs "github.com/aidanlsb/datekit/docs"
	"github.com/aidanlsb/datekit/internal/slugs"
	"github.com/aidanlsb/datekit/internal/ui"
)

const (
	docsRoot      = "guide"
	docsIndexPath = "guide/index.yaml"
)

var (
	docsSearchLimit int

	docsFS             fs.FS = builtindocs.FS
	docsMarkdownRender       = ui.RenderMarkdown
)

type docsTopic struct {
	ID    string `yaml:"id" json:"id"`
	Title string `yaml:"title" json:"title"`
	Path  string `yaml:"path" json:"path"`
}

type docsIndex struct {
	Topics []docsTopic `yaml:"topics"`
}

type docsSearchMatch struct {
	Topic   string `json:"topic"`
	Title   string `json:"title"`
	Line    int    `json:"line"`
	Snippet string `json:"snippet"`
}

var docsCmd = &cobra.Command{
	Use:   "docs [topic]",
	Short: "Read the bundled guide",
	Long: `Read the long-form guide bundled into the dk binary.

Without a topic, lists the topics. For command usage, use 'dk help <command>'.`,
	Example: `  dk docs
  dk docs parsing
  dk docs search fragments`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topics, err := loadDocsTopics(docsFS)
		if err != nil {
			return handleError(ErrInternal, err, "Rebuild dk so the bundled guide is available")
		}

		if len(args) == 0 {
			if isJSONOutput() {
				outputSuccess(topics, &Meta{Count: len(topics)})
				return nil
			}
			tbl := ui.NewTable("TOPIC", "TITLE")
			for _, t := range topics {
				tbl.AddRow(ui.Accent.Render(t.ID), t.Title)
			}
			fmt.Fprint(cmd.OutOrStdout(), tbl.String())
			return nil
		}

		topic, ok := findDocsTopic(topics, args[0])
		if !ok {
			ids := make([]string, len(topics))
			for i, t := range topics {
				ids[i] = t.ID
			}
			return handleError(ErrInvalidInput, fmt.Errorf("unknown docs topic %q", args[0]),
				"Topics: "+strings.Join(ids, ", "))
		}
		return outputDocsTopic(cmd, topic)
	},
}

var docsSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the bundled guide",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.TrimSpace(strings.Join(args, " "))
		if docsSearchLimit < 1 {
			return handleError(ErrInvalidInput, fmt.Errorf("--limit must be >= 1"), "")
		}
		matches, err := searchDocs(docsFS, query, docsSearchLimit)
		if err != nil {
			return handleError(ErrInvalidInput, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]any{"query": query, "matches": matches}, &Meta{Count: len(matches)})
			return nil
		}

		w := cmd.OutOrStdout()
		if len(matches) == 0 {
			fmt.Fprintf(w, "No docs matched %q.\n", query)
			return nil
		}
		for _, m := range matches {
			fmt.Fprintf(w, "%s:%d  %s\n", ui.Accent.Render(m.Topic), m.Line, m.Snippet)
		}
		return nil
	},
}

func outputDocsTopic(cmd *cobra.Command, topic docsTopic) error {
	content, err := fs.ReadFile(docsFS, path.Join(docsRoot, topic.Path))
	if err != nil {
		return handleError(ErrFileReadError, err, "")
	}

	if isJSONOutput() {
		outputSuccess(map[string]any{
			"topic":   topic.ID,
			"title":   topic.Title,
			"content": string(content),
		}, nil)
		return nil
	}

	w := cmd.OutOrStdout()
	rendered := string(content)
	display := ui.NewDisplayContextFor(w)
	if display.IsTTY {
		if out, err := docsMarkdownRender(rendered, display.AvailableWidth(ui.MarkdownRenderMargin)); err == nil {
			rendered = out
		}
	}
	fmt.Fprint(w, rendered)
	if !strings.HasSuffix(rendered, "\n") {
		fmt.Fprintln(w)
	}
	return nil
}

func loadDocsTopics(fsys fs.FS) ([]docsTopic, error) {
	data, err := fs.ReadFile(fsys, docsIndexPath)
	if err != nil {
		return nil, fmt.Errorf("read docs index: %w", err)
	}
	var idx docsIndex
	if err := yaml.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("parse docs index: %w", err)
	}
	for _, t := range idx.Topics {
		if t.ID == "" || t.Path == "" {
			return nil, fmt.Errorf("docs index: topic needs id and path")
		}
	}
	return idx.Topics, nil
}

func findDocsTopic(topics []docsTopic, raw string) (docsTopic, bool) {
	want := slugs.Name(raw)
	for _, t := range topics {
		if t.ID == want || (want != "" && strings.HasPrefix(t.ID, want)) {
			return t, true
		}
	}
	return docsTopic{}, false
}

func searchDocs(fsys fs.FS, query string, limit int) ([]docsSearchMatch, error) {
	if query == "" {
		return nil, fmt.Errorf("empty query")
	}
	topics, err := loadDocsTopics(fsys)
	if err != nil {
		return nil, err
	}

	queryLower := strings.ToLower(query)
	matches := make([]docsSearchMatch, 0, limit)
	for _, t := range topics {
		content, err := fs.ReadFile(fsys, path.Join(docsRoot, t.Path))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", t.Path, err)
		}
		for i, line := range strings.Split(string(content), "\n") {
			if !strings.Contains(strings.ToLower(line), queryLower) {
				continue
			}
			matches = append(matches, docsSearchMatch{
				Topic:   t.ID,
				Title:   t.Title,
				Line:    i + 1,
				Snippet: shortenDocsSnippet(line),
			})
			if len(matches) >= limit {
				return matches, nil
			}
		}
	}
	return matches, nil
}

func shortenDocsSnippet(line string) string {
	const maxLen = 120
	snippet := strings.TrimSpace(line)
	if len(snippet) <= maxLen {
		return snippet
	}
	return snippet[:maxLen-3] + "..."
}

func init() {
	docsSearchCmd.Flags().IntVar(&docsSearchLimit, "limit", 20, "Maximum matches to show")
	docsCmd.AddCommand(docsSearchCmd)
	rootCmd.AddCommand(docsCmd)
}
