package cli

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/binhbb2204/Top-Movies/internal/forms"
	"github.com/binhbb2204/Top-Movies/internal/movie"
	"github.com/binhbb2204/Top-Movies/pkg/models"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	exportFormat string
	exportOutput string
	importInput  string
)

// exportEntry is the portable form of one movie.
type exportEntry struct {
	Title       string  `json:"title" yaml:"title"`
	Year        int     `json:"year" yaml:"year"`
	Description string  `json:"description" yaml:"description"`
	Rating      float64 `json:"rating" yaml:"rating"`
	Ranking     int     `json:"ranking,omitempty" yaml:"ranking,omitempty"`
	Review      string  `json:"review" yaml:"review"`
	ImgURL      string  `json:"img_url" yaml:"img_url"`
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export your list",
	Long:  `Export your ranked movie list to JSON, YAML or CSV.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, store, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		movies, err := store.ListRanked(cmd.Context())
		if err != nil {
			return err
		}

		entries := make([]exportEntry, 0, len(movies))
		for _, m := range movies {
			entries = append(entries, exportEntry{
				Title:       m.Title,
				Year:        m.Year,
				Description: m.Description,
				Rating:      m.Rating,
				Ranking:     m.Ranking,
				Review:      m.Review,
				ImgURL:      m.ImgURL,
			})
		}

		var outputData []byte
		switch strings.ToLower(exportFormat) {
		case "json":
			outputData, err = json.MarshalIndent(entries, "", "  ")
		case "yaml", "yml":
			outputData, err = yaml.Marshal(entries)
		case "csv":
			var buf bytes.Buffer
			w := csv.NewWriter(&buf)
			w.Write([]string{"Ranking", "Title", "Year", "Rating", "Review", "ImgURL"})
			for _, e := range entries {
				w.Write([]string{
					strconv.Itoa(e.Ranking),
					e.Title,
					strconv.Itoa(e.Year),
					strconv.FormatFloat(e.Rating, 'f', -1, 64),
					e.Review,
					e.ImgURL,
				})
			}
			w.Flush()
			outputData, err = buf.Bytes(), w.Error()
		default:
			return fmt.Errorf("unsupported format: %s", exportFormat)
		}
		if err != nil {
			return fmt.Errorf("failed to encode export: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, outputData, 0o644); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			printSuccess(cmd, fmt.Sprintf("Exported %d movies to %s", len(entries), exportOutput))
			return nil
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(outputData))
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import movies",
	Long:  `Import movies from a JSON or YAML file produced by "topmovies export". Titles already in the list are skipped.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(importInput)
		if err != nil {
			return fmt.Errorf("failed to read input file: %w", err)
		}

		var entries []exportEntry
		switch strings.ToLower(filepath.Ext(importInput)) {
		case ".yaml", ".yml":
			err = yaml.Unmarshal(data, &entries)
		default:
			err = json.Unmarshal(data, &entries)
		}
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", importInput, err)
		}

		db, store, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		ctx := cmd.Context()
		imported, skipped := 0, 0
		for _, e := range entries {
			in, err := forms.ParseAdd(e.Title)
			if err != nil {
				skipped++
				continue
			}

			created, err := store.Create(ctx, models.NewMovie{
				Title:       in.Title,
				Year:        e.Year,
				Description: e.Description,
				ImgURL:      e.ImgURL,
			})
			if err != nil {
				if errors.Is(err, movie.ErrDuplicateTitle) {
					skipped++
					continue
				}
				return err
			}

			if e.Review != "" {
				edit, err := forms.ParseEdit(strconv.FormatFloat(e.Rating, 'f', -1, 64), e.Review)
				if err == nil {
					if err := store.Update(ctx, created.ID, edit.Rating, edit.Review); err != nil {
						return err
					}
				}
			}
			imported++
		}

		printSuccess(cmd, fmt.Sprintf("Imported %d movies (%d skipped)", imported, skipped))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "Output format (json, yaml, csv)")
	exportCmd.Flags().StringVar(&exportOutput, "output", "", "Output file path")

	importCmd.Flags().StringVar(&importInput, "input", "", "Input file path (.json, .yaml)")
	importCmd.MarkFlagRequired("input")
}
