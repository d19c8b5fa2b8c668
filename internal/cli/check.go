package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/lqcheck/internal/config"
	"github.com/vvka-141/lqcheck/internal/files/filesystem"
	"github.com/vvka-141/lqcheck/internal/logging"
	"github.com/vvka-141/lqcheck/internal/report"
	"github.com/vvka-141/lqcheck/internal/services"
	"github.com/vvka-141/lqcheck/pkg/lqcheck"
)

var checkCmd = &cobra.Command{
	Use:   "check [project_path]",
	Short: "Check Liquibase changelogs against the project conventions",
	Long: `Check scans every resource folder of the project and validates each
databaseChangeLog XML file it finds.

Arguments:
  project_path    Project root (default: current directory)
                  Relative resource folders are resolved against it

Resource folders, first match wins:
  1. --resource flags
  2. resources in lqcheck.yaml
  3. $LQCHECK_RESOURCES (path list; also read from project_path/.env,
     then ./.env, without overriding the environment)
  4. src/main/resources

Include and exclude patterns are Ant-style globs relative to each resource
folder ("**" spans directories, "*" stays within one, a trailing "/" means
everything below). --include and --exclude replace the configured patterns
of every folder. When nothing configures includes, **/*.xml is used.

Examples:
  # Check the Maven resources of the current project
  lqcheck check

  # Check two resource folders, skipping generated changelogs
  lqcheck check ./service -r src/main/resources -r src/test/resources \
    -e "**/generated/**"

  # Machine-readable report for CI
  lqcheck check ./service --json > lqcheck-report.json`,
	Args: OptionalProjectPath,
	RunE: runCheck,
}

type checkFlagValues struct {
	resources []string
	includes  []string
	excludes  []string
	json      bool
}

var checkFlags checkFlagValues

func init() {
	rootCmd.AddCommand(checkCmd)

	// StringArray keeps brace patterns such as "{a,b}/*.xml" intact.
	checkCmd.Flags().StringArrayVarP(&checkFlags.resources, "resource", "r", nil,
		"Resource folder to scan, relative to project_path (can be specified multiple times)\n"+
			"Precedence: --resource > lqcheck.yaml > $LQCHECK_RESOURCES > src/main/resources")
	checkCmd.Flags().StringArrayVarP(&checkFlags.includes, "include", "i", nil,
		"Include glob (can be specified multiple times)\n"+
			"Replaces configured includes for every folder (default **/*.xml)")
	checkCmd.Flags().StringArrayVarP(&checkFlags.excludes, "exclude", "e", nil,
		"Exclude glob (can be specified multiple times)\n"+
			"Replaces configured excludes for every folder")
	checkCmd.Flags().BoolVar(&checkFlags.json, "json", false,
		"Write the report as JSON to stdout")
}

func runCheck(cmd *cobra.Command, args []string) error {
	projectPath := projectPathFromArgs(args)
	verbose := getVerboseFlag(cmd)

	folders, err := resolveCheckFolders(projectPath)
	if err != nil {
		return err
	}

	checker := services.NewCheckService(filesystem.NewOSFileSystem(), logging.NewConsoleLogger(verbose))
	result, checkErr := checker.Check(folders)
	if checkErr != nil && !errors.Is(checkErr, lqcheck.ErrViolationsFound) {
		return checkErr
	}

	if err := writeReport(cmd.OutOrStdout(), result); err != nil {
		return err
	}
	return checkErr
}

// resolveCheckFolders loads .env files and lqcheck.yaml and builds the folder list.
func resolveCheckFolders(projectPath string) ([]lqcheck.ResourceFolder, error) {
	info, err := os.Stat(projectPath)
	if err != nil {
		return nil, fmt.Errorf("project path %s: %w: %w", projectPath, lqcheck.ErrInvalidConfig, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project path %s is not a directory: %w", projectPath, lqcheck.ErrInvalidConfig)
	}

	// Project .env first: godotenv never overrides a variable that is already set.
	_ = godotenv.Load(filepath.Join(projectPath, ".env"))
	_ = godotenv.Load()

	projectCfg, err := config.Load(projectPath)
	if err != nil {
		if !errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("failed to load %s: %w", config.ConfigFileName, err)
		}
		projectCfg = nil
	}

	overrides := config.Overrides{
		Resources: checkFlags.resources,
		Includes:  checkFlags.includes,
		Excludes:  checkFlags.excludes,
	}
	return config.ResolveFolders(projectPath, projectCfg, overrides, os.Getenv(lqcheck.EnvResources)), nil
}

func writeReport(w io.Writer, result lqcheck.Report) error {
	if checkFlags.json {
		return report.JSON(w, result)
	}
	f, _ := w.(*os.File)
	return report.Text(w, result, report.ShouldStyle(f))
}
