package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"storefront-whatsapp-contact/internal/storefront"

	"github.com/spf13/cobra"
)

var errNothingUpdated = errors.New("no config files found or updated")

func main() {
	if err := buildRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// buildRootCmd creates the command that writes the GraphQL endpoint into the
// storefront config files.
func buildRootCmd() *cobra.Command {
	var (
		dir    string
		appURL string
	)

	cmd := &cobra.Command{
		Use:           "configure",
		Short:         "Write the WhatsApp GraphQL endpoint into config.json and demo-config.json",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runConfigure(cmd.InOrStdin(), cmd.OutOrStdout(), dir, appURL, cmd.Flags().Changed("url"))
			if err != nil && !errors.Is(err, errNothingUpdated) {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "Project root containing config.json")
	cmd.Flags().StringVar(&appURL, "url", "", "WhatsApp app base URL (prompted when omitted)")

	return cmd
}

func runConfigure(in io.Reader, out io.Writer, dir, appURL string, urlGiven bool) error {
	fmt.Fprintln(out, "WhatsApp Contact - configure GraphQL endpoint")
	fmt.Fprintln(out)

	if !urlGiven {
		fmt.Fprint(out, "Enter the WhatsApp app URL (e.g. https://XXXXX-whatsappcontact.adobeioruntime.net): ")
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		appURL = line
	}

	endpoint := storefront.BuildGraphQLEndpoint(appURL)
	if endpoint == "" {
		fmt.Fprintln(out, "No URL entered. Exiting.")
		return nil
	}
	fmt.Fprintf(out, "Using endpoint: %s\n\n", endpoint)

	updated := 0
	for _, name := range storefront.ConfigFiles {
		ok, err := storefront.UpdateConfigFile(filepath.Join(dir, name), endpoint)
		if err != nil {
			fmt.Fprintf(out, "Warning: %s: %v\n", name, err)
			continue
		}
		if ok {
			fmt.Fprintf(out, "Updated %s\n", name)
			updated++
		}
	}

	if updated == 0 {
		fmt.Fprintf(out, "No config files found or updated. Run this from your project root where %s exists.\n",
			strings.Join(storefront.ConfigFiles, " (or ")+")")
		return errNothingUpdated
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Done. You can change the endpoint later by re-running this command or editing the config files.")
	return nil
}
