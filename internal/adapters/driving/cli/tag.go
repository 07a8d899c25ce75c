package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	configfile "github.com/annolab/geotag/internal/adapters/driven/config/file"
	"github.com/annolab/geotag/internal/adapters/driven/gazetteer/httpchannel"
	"github.com/annolab/geotag/internal/adapters/driven/storage/memory"
	"github.com/annolab/geotag/internal/adapters/driven/storage/sqlite"
	"github.com/annolab/geotag/internal/core/domain"
	"github.com/annolab/geotag/internal/core/ports/driven"
	"github.com/annolab/geotag/internal/core/services"
	"github.com/annolab/geotag/internal/logger"
)

var (
	tagFile         string
	tagConfigPath   string
	tagEndpoint     string
	tagDataDir      string
	tagType         string
	tagMode         string
	tagSelection    string
	tagMaxDist      int
	tagStateLimit   int
	tagFeatureClass string
	tagFeatureCode  string
	tagCountryCode  string
	tagJSON         bool
	tagDryRun       bool
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Tag a document's annotations with GeoNames entities",
	Long: `Reads a document file, projects its annotations of the configured type
into a gazetteer query, and attaches the matched entities to the same spans.
With --db the document and its enrichments are persisted to SQLite instead
of being printed.`,
	RunE: runTag,
}

func init() {
	tagCmd.Flags().StringVarP(&tagFile, "file", "f", "", "document JSON file (required)")
	tagCmd.Flags().StringVarP(&tagConfigPath, "config", "c", "", "TOML config file")
	tagCmd.Flags().StringVar(&tagEndpoint, "endpoint", "", "gazetteer service base URL")
	tagCmd.Flags().StringVar(&tagDataDir, "db", "", "persist to a SQLite store in this directory")
	tagCmd.Flags().StringVarP(&tagType, "type", "t", "", "annotation type to tag")
	tagCmd.Flags().StringVarP(&tagMode, "mode", "m", "", "search mode: find, starts_with, fuzzy, levenshtein")
	tagCmd.Flags().StringVar(&tagSelection, "select", "", "result selection: first or all")
	tagCmd.Flags().IntVar(&tagMaxDist, "max-dist", 0, "maximum match distance (required for non-find modes)")
	tagCmd.Flags().IntVar(&tagStateLimit, "state-limit", 0, "transducer state limit (levenshtein only)")
	tagCmd.Flags().StringVar(&tagFeatureClass, "feature-class", "", "filter matches by feature class")
	tagCmd.Flags().StringVar(&tagFeatureCode, "feature-code", "", "filter matches by feature code")
	tagCmd.Flags().StringVar(&tagCountryCode, "country-code", "", "filter matches by country code")
	tagCmd.Flags().BoolVar(&tagJSON, "json", false, "print the enriched document as JSON")
	tagCmd.Flags().BoolVar(&tagDryRun, "dry-run", false, "print the query payload without calling the service")
	_ = tagCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(tagCmd)
}

func runTag(cmd *cobra.Command, _ []string) error {
	cfg, channelCfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	doc, err := loadDocument(tagFile)
	if err != nil {
		return err
	}
	logger.Section("Document")
	logger.Debug("Loaded %q: %d byte(s), %d annotation(s)", doc.URI, len(doc.Text), len(doc.Annotations))

	ctx := context.Background()

	var store driven.AnnotationStore
	var memStore *memory.AnnotationStore
	var dbStore *sqlite.Store
	if tagDataDir != "" {
		dbStore, err = sqlite.NewStore(tagDataDir)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer dbStore.Close()
		if err := dbStore.SaveDocument(ctx, doc); err != nil {
			return fmt.Errorf("save document: %w", err)
		}
		store = dbStore.AnnotationStore(doc.ID)
	} else {
		memStore = memory.NewAnnotationStore(*doc)
		store = memStore
	}

	channel := httpchannel.NewChannel(channelCfg)
	tagger := services.NewTaggerService(store, channel, doc.ID)

	if tagDryRun {
		payload, table, err := tagger.BuildQuery(ctx, cfg)
		if err != nil {
			return err
		}
		if table.Len() == 0 {
			logger.Warn("No annotations of type %q in document", cfg.AnnotationType)
		}
		cmd.Println(string(payload))
		return nil
	}

	report, err := tagger.Tag(ctx, cfg)
	if err != nil {
		return fmt.Errorf("tagging failed: %w", err)
	}

	if tagJSON && memStore != nil {
		return outputEnrichedJSON(cmd, memStore)
	}
	if tagJSON && dbStore != nil {
		anns, err := dbStore.GeoAnnotations(ctx, doc.ID)
		if err != nil {
			return err
		}
		return printJSON(cmd, anns)
	}

	cmd.Printf("Sent %d quer%s, added %d annotation%s\n",
		report.QueriesSent, plural(report.QueriesSent, "y", "ies"),
		report.AnnotationsAdded, plural(report.AnnotationsAdded, "", "s"))
	cmd.Printf("Modification: %s at %s",
		report.Modification.User,
		report.Modification.Timestamp.Format(time.RFC3339))
	if report.Modification.Comment != "" {
		cmd.Printf(" (%s)", report.Modification.Comment)
	}
	cmd.Println()
	return nil
}

// resolveConfig merges the optional TOML file with flag overrides.
// Flags win when explicitly set.
func resolveConfig(cmd *cobra.Command) (domain.TagConfig, httpchannel.Config, error) {
	var cfg domain.TagConfig
	var channelCfg httpchannel.Config

	if tagConfigPath != "" {
		fileCfg, err := configfile.Load(tagConfigPath)
		if err != nil {
			return cfg, channelCfg, err
		}
		cfg = fileCfg.TagConfig()
		channelCfg = fileCfg.ChannelConfig()
	}

	if cmd.Flags().Changed("type") {
		cfg.AnnotationType = tagType
	}
	if cmd.Flags().Changed("mode") {
		cfg.Mode = domain.SearchMode(tagMode)
	}
	if cmd.Flags().Changed("select") {
		cfg.ResultSelection = domain.ResultSelection(tagSelection)
	}
	if cmd.Flags().Changed("max-dist") {
		cfg.MaxDist = tagMaxDist
	}
	if cmd.Flags().Changed("state-limit") {
		cfg.StateLimit = tagStateLimit
	}
	if tagFeatureClass != "" || tagFeatureCode != "" || tagCountryCode != "" {
		cfg.Filter = &domain.ResultFilter{
			FeatureClass: tagFeatureClass,
			FeatureCode:  tagFeatureCode,
			CountryCode:  tagCountryCode,
		}
	}
	if cmd.Flags().Changed("endpoint") {
		channelCfg.BaseURL = tagEndpoint
	}
	return cfg, channelCfg, nil
}

// enrichedDocument is the JSON shape printed with --json.
type enrichedDocument struct {
	ID            string                        `json:"id"`
	URI           string                        `json:"uri"`
	Entities      []enrichedEntity              `json:"entities"`
	Modifications []domain.DocumentModification `json:"modifications"`
}

type enrichedEntity struct {
	Begin  int              `json:"begin"`
	End    int              `json:"end"`
	Text   string           `json:"text"`
	Entity domain.GeoEntity `json:"entity"`
}

func outputEnrichedJSON(cmd *cobra.Command, store *memory.AnnotationStore) error {
	doc := store.Document()
	out := enrichedDocument{
		ID:            doc.ID,
		URI:           doc.URI,
		Entities:      []enrichedEntity{},
		Modifications: store.Modifications(),
	}
	for _, ann := range store.Annotations() {
		e := enrichedEntity{
			Begin:  ann.Begin,
			End:    ann.End,
			Entity: ann.Entity,
		}
		if ann.Span != nil {
			e.Text = ann.Span.Text
		}
		out.Entities = append(out.Entities, e)
	}
	return printJSON(cmd, out)
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
