// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/walteh/slidetext/cmd/slidetext/commands"
)

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:   "slidetext",
		Short: "Search and replace text in slide decks",
		Long: `slidetext finds and replaces text inside slide decks whose paragraphs
are chunked into independently formatted runs. Matching happens against the
paragraph's full visible text; formatting outside the match is preserved.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
		},
	}

	// Add shared flags
	addRootFlags(rootCmd)

	// Add commands
	rootCmd.AddCommand(
		commands.NewReplaceCmd(rootOpts()),
		commands.NewApplyCmd(rootOpts()),
		commands.NewTextCmd(rootOpts()),
	)

	ctx := log.Logger.WithContext(context.Background())
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
