package main

import (
	"strings"

	"github.com/meshwup/meshwup/internal/download"
	"github.com/spf13/cobra"
)

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download the MeSH N-Triples dump",
	Long: `Download the MeSH RDF dump (N-Triples, gzip) from NLM.

The file is written to the configured source path (nt_data/mesh2025.nt.gz by
default) and the download is skipped when it already exists. Failed transfers
are retried with exponential backoff.`,
	Args: cobra.NoArgs,
	RunE: runDownload,
}

var (
	downloadURL    string
	downloadDest   string
	downloadGunzip bool
)

func init() {
	rootCmd.AddCommand(downloadCmd)

	downloadCmd.Flags().StringVar(&downloadURL, "url", "", "Dump URL (default from config)")
	downloadCmd.Flags().StringVar(&downloadDest, "dest", "", "Destination file (default: configured source)")
	downloadCmd.Flags().BoolVar(&downloadGunzip, "gunzip", false, "Also write a decompressed copy next to the download")
}

// DownloadResponse is the response for the download command.
type DownloadResponse struct {
	Download download.Result  `json:"download"`
	Gunzip   *download.Result `json:"gunzip,omitempty"`
}

func runDownload(cmd *cobra.Command, args []string) error {
	url := cfg.DownloadURL
	if downloadURL != "" {
		url = downloadURL
	}
	dest := cfg.Source
	if downloadDest != "" {
		dest = downloadDest
	}

	client := download.NewClient(download.WithLogger(logger))
	res, err := client.Fetch(cmd.Context(), url, dest)
	if err != nil {
		exitWithError(exitCodeFor(err), "%v", err)
	}
	resp := DownloadResponse{Download: res}

	if downloadGunzip && strings.HasSuffix(dest, ".gz") {
		gz, err := download.Gunzip(dest, strings.TrimSuffix(dest, ".gz"))
		if err != nil {
			exitWithError(ExitDataError, "%v", err)
		}
		resp.Gunzip = &gz
	}

	if humanOutput {
		if res.Skipped {
			outputHuman("Already present: %s (%s)\n", res.Path, formatBytes(res.Bytes))
		} else {
			outputHuman("Downloaded %s (%s, %d attempt(s))\n", res.Path, formatBytes(res.Bytes), res.Attempts)
		}
		if resp.Gunzip != nil {
			outputHuman("Decompressed to %s (%s)\n", resp.Gunzip.Path, formatBytes(resp.Gunzip.Bytes))
		}
		return nil
	}
	return outputJSON(resp)
}
