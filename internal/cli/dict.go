package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/inscribe/pkg/httputil"
	"github.com/matzehuels/inscribe/pkg/phonetic"
)

const (
	// dictionaryURL is the CMU pronouncing dictionary.
	dictionaryURL = "https://raw.githubusercontent.com/cmusphinx/cmudict/master/cmudict.dict"

	dictionaryTTL = 90 * 24 * time.Hour
)

func newDownloader() (*httputil.Downloader, error) {
	dir, err := cacheDir()
	if err != nil {
		return nil, err
	}
	return httputil.NewDownloader(filepath.Join(dir, "data"), dictionaryTTL), nil
}

func (c *CLI) dictCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dict",
		Short: "Manage the pronunciation dictionary",
		Long: `Manage the pronunciation dictionary.

Without a dictionary every word is approximated from its spelling. Once
fetched, the CMU dictionary is used automatically unless the config file
names another one.`,
	}
	cmd.AddCommand(c.dictFetchCommand())
	cmd.AddCommand(c.dictPathCommand())
	return cmd
}

func (c *CLI) dictFetchCommand() *cobra.Command {
	var (
		url     string
		refresh bool
	)
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download the CMU pronouncing dictionary",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := newDownloader()
			if err != nil {
				return err
			}

			spinner := newSpinnerWithContext(cmd.Context(), "Downloading dictionary...")
			spinner.Start()
			path, err := d.Fetch(cmd.Context(), url, dictionaryFile, refresh)
			if err != nil {
				spinner.StopWithError("Download failed")
				return err
			}
			spinner.StopWithSuccess("Downloaded")

			dict, err := phonetic.OpenDictionary(path)
			if err != nil {
				return fmt.Errorf("downloaded file is not a dictionary: %w", err)
			}
			printSuccess("Dictionary ready (%d words)", len(dict))
			printFile(path)
			return nil
		},
	}
	cmd.Flags().StringVar(&url, "url", dictionaryURL, "dictionary URL")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "download even if a fresh copy exists")
	return cmd
}

func (c *CLI) dictPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the dictionary location",
		RunE: func(cmd *cobra.Command, args []string) error {
			if p := c.Config.Tokenizer.Dictionary; p != "" {
				fmt.Println(p)
				return nil
			}
			d, err := newDownloader()
			if err != nil {
				return err
			}
			fmt.Println(d.Path(dictionaryFile))
			return nil
		},
	}
}
