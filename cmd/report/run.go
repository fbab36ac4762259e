// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirseerhq/sirseer-report/internal/config"
	"github.com/spf13/cobra"
)

// runFlags are the flags shared by both sweep commands.
type runFlags struct {
	configPath string
	jobFile    string
	token      string
	reportDir  string

	// endpoint overrides the API base URL the sweep talks to: the REST
	// endpoint for "all", the GraphQL endpoint for "filtered".
	endpoint string
}

// loadRun resolves tool configuration and the per-run job file into a
// single validated pair. repoArg, when non-empty, is an <owner>/<repo>
// positional argument overriding the job file's repository. Token
// precedence: --token flag, then the job file, then the environment
// variable named by the tool config.
func loadRun(flags runFlags, repoArg string) (*config.Config, *config.Job, error) {
	cfg, err := config.LoadConfig(flags.configPath)
	if err != nil {
		return nil, nil, err
	}
	if flags.reportDir != "" {
		cfg.Defaults.ReportDir = flags.reportDir
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	job, err := config.LoadJob(flags.jobFile)
	if err != nil {
		return nil, nil, err
	}
	if repoArg != "" {
		if job.Owner, job.Repo, err = parseRepository(repoArg); err != nil {
			return nil, nil, err
		}
	}
	if flags.token != "" {
		job.Token = flags.token
	}
	if job.Token == "" {
		job.Token = os.Getenv(cfg.GitHub.TokenEnv)
	}

	if err := job.RequireRepo(); err != nil {
		return nil, nil, err
	}
	return cfg, job, nil
}

// parseRepository parses an org/repo string into owner and repo components
func parseRepository(repoArg string) (owner, repo string, err error) {
	parts := strings.Split(repoArg, "/")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid repository format. Expected: <org>/<repo>, got: %s", repoArg)
	}

	owner = strings.TrimSpace(parts[0])
	repo = strings.TrimSpace(parts[1])

	if owner == "" || repo == "" {
		return "", "", fmt.Errorf("invalid repository format. Expected: <org>/<repo>, got: %s", repoArg)
	}

	return owner, repo, nil
}

// registerRunFlags attaches the shared flags to a sweep command.
func registerRunFlags(cmd *cobra.Command, flags *runFlags) {
	cmd.Flags().StringVar(&flags.configPath, "config", "", "Path to tool config file (default: search standard locations)")
	cmd.Flags().StringVar(&flags.jobFile, "job-file", "", "Path to key=value job file with credentials and repository")
	cmd.Flags().StringVar(&flags.token, "token", "", "GitHub personal access token (overrides job file and environment)")
	cmd.Flags().StringVar(&flags.reportDir, "report-dir", "", "Directory for the CSV report (overrides tool config)")
	cmd.Flags().StringVar(&flags.endpoint, "endpoint", "", "API endpoint base URL, e.g. for GitHub Enterprise (overrides tool config)")
	_ = cmd.MarkFlagRequired("job-file")
}
