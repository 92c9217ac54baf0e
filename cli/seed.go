package cli

import (
	"errors"
	"fmt"

	"github.com/binhbb2204/Top-Movies/internal/movie"
	"github.com/binhbb2204/Top-Movies/pkg/models"
	"github.com/spf13/cobra"
)

var sampleMovie = models.NewMovie{
	Title: "Avatar The Way of Water",
	Year:  2022,
	Description: "Set more than a decade after the events of the first film, learn the story of the Sully family " +
		"(Jake, Neytiri, and their kids), the trouble that follows them, the lengths they go to keep each other safe, " +
		"the battles they fight to stay alive, and the tragedies they endure.",
	ImgURL: "https://image.tmdb.org/t/p/w500/t6HIqrRAclMCA60NsSmeqe9RmNV.jpg",
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert a sample movie",
	Long:  `Insert a rated sample movie so the list has something to show without a TMDB token.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, store, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		ctx := cmd.Context()
		created, err := store.Create(ctx, sampleMovie)
		if err != nil {
			if errors.Is(err, movie.ErrDuplicateTitle) {
				fmt.Fprintln(cmd.OutOrStdout(), "Sample movie already present, nothing to do")
				return nil
			}
			return err
		}

		if err := store.Update(ctx, created.ID, 7.3, "I liked the water."); err != nil {
			return err
		}

		printSuccess(cmd, fmt.Sprintf("Seeded %q with id %d", created.Title, created.ID))
		return nil
	},
}
