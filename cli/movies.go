package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/binhbb2204/Top-Movies/internal/forms"
	"github.com/binhbb2204/Top-Movies/internal/movie"
	"github.com/binhbb2204/Top-Movies/internal/tmdb"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var addPick int

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List your movies by rating",
	Long:  `List every stored movie ordered by rating, recomputing rankings.`,
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

		out := cmd.OutOrStdout()
		if len(movies) == 0 {
			fmt.Fprintln(out, "Your list is empty. Add one with: topmovies add <title>")
			return nil
		}

		for _, m := range movies {
			fmt.Fprintf(out, "#%d  %s (%d)  %s/10  [id %d]\n",
				m.Ranking, m.Title, m.Year, strconv.FormatFloat(m.Rating, 'f', -1, 64), m.ID)
			if m.Review != "" {
				fmt.Fprintf(out, "     %s\n", m.Review)
			}
		}
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search [title]",
	Short: "Search TMDB for a movie",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := forms.ParseAdd(strings.Join(args, " "))
		if err != nil {
			return err
		}

		source, err := newSource()
		if err != nil {
			return err
		}

		candidates, err := source.Search(cmd.Context(), in.Title)
		if err != nil {
			printError(cmd, "Search failed: movie database unreachable")
			return err
		}

		printCandidates(cmd, in.Title, candidates)
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Search TMDB and add a movie to your list",
	Long: `Search TMDB for the title, pick one of the results and store it.
When stdin is a terminal the results are offered interactively; otherwise --pick
selects a result (default: the first one).`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := forms.ParseAdd(strings.Join(args, " "))
		if err != nil {
			return err
		}

		source, err := newSource()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		candidates, err := source.Search(ctx, in.Title)
		if err != nil {
			printError(cmd, "Search failed: movie database unreachable")
			return err
		}
		if len(candidates) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No movies found for: %s\n", in.Title)
			return nil
		}

		choice := addPick
		if choice == 0 {
			if isTerminal(cmd) {
				printCandidates(cmd, in.Title, candidates)
				choice, err = promptChoice(cmd, len(candidates))
				if err != nil {
					return err
				}
			} else {
				choice = 1
			}
		}
		if choice < 1 || choice > len(candidates) {
			return fmt.Errorf("pick must be between 1 and %d", len(candidates))
		}

		picked := candidates[choice-1]
		detail, err := source.Details(ctx, strconv.FormatInt(picked.ID, 10))
		if err != nil {
			return err
		}

		db, store, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		created, err := store.Create(ctx, movie.NewMovieFromDetail(detail))
		if err != nil {
			printError(cmd, describeStoreError(err))
			return err
		}

		printSuccess(cmd, fmt.Sprintf("Added %q (%d) with id %d", created.Title, created.Year, created.ID))
		fmt.Fprintf(cmd.OutOrStdout(), "Rate it with: topmovies rate %d <rating> <review>\n", created.ID)
		return nil
	},
}

var rateCmd = &cobra.Command{
	Use:   "rate [id] [rating] [review...]",
	Short: "Set your rating and review for a movie",
	Args:  cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseMovieID(args[0])
		if err != nil {
			return err
		}

		in, err := forms.ParseEdit(args[1], strings.Join(args[2:], " "))
		if err != nil {
			return err
		}

		db, store, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := store.Update(cmd.Context(), id, in.Rating, in.Review); err != nil {
			printError(cmd, describeStoreError(err))
			return err
		}

		printSuccess(cmd, fmt.Sprintf("Rated movie %d: %s/10", id, strconv.FormatFloat(in.Rating, 'f', -1, 64)))
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Remove a movie from your list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseMovieID(args[0])
		if err != nil {
			return err
		}

		db, store, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := store.Delete(cmd.Context(), id); err != nil {
			printError(cmd, describeStoreError(err))
			return err
		}

		printSuccess(cmd, fmt.Sprintf("Deleted movie %d", id))
		return nil
	},
}

func init() {
	addCmd.Flags().IntVar(&addPick, "pick", 0, "1-based index of the search result to add")
}

func printCandidates(cmd *cobra.Command, query string, candidates []tmdb.Candidate) {
	out := cmd.OutOrStdout()
	if len(candidates) == 0 {
		fmt.Fprintf(out, "No movies found for: %s\n", query)
		return
	}

	fmt.Fprintf(out, "Found %d movie(s):\n\n", len(candidates))
	for i, c := range candidates {
		year := c.Year()
		if year == "" {
			year = "n/a"
		}
		fmt.Fprintf(out, "%d. %s (%s)  [tmdb %d]\n", i+1, c.Title, year, c.ID)
	}
}

func promptChoice(cmd *cobra.Command, n int) (int, error) {
	fmt.Fprintf(cmd.OutOrStdout(), "\nPick a movie [1-%d]: ", n)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return 0, fmt.Errorf("no selection made: %w", err)
	}
	choice, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, errors.New("selection must be a number")
	}
	return choice, nil
}

// isTerminal reports whether the command reads from an interactive terminal.
func isTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.InOrStdin().(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func parseMovieID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid movie id %q", s)
	}
	return id, nil
}
