package main

import (
	"bufio"
	"context"
	_ "embed" // this is required in order for go:embed to work
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"

	"github.com/sitetest/browser-test-harness/config"
	"github.com/sitetest/browser-test-harness/framework"
	"github.com/sitetest/browser-test-harness/framework/artifacts"
	"github.com/sitetest/browser-test-harness/framework/btest"
	"github.com/sitetest/browser-test-harness/framework/harness"
	"github.com/sitetest/browser-test-harness/webtests"
)

//go:embed VERSION
var versionString string // comes from the VERSION file which we update for each release

func main() {
	fmt.Printf("browser-test-harness v%s\n", strings.TrimSpace(versionString))

	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}

	results, err := run(params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !results.OK() {
		os.Exit(1)
	}
}

func run(params commandParams) (*btest.Results, error) {
	if params.skipFile != "" {
		if err := loadSuppressions(&params); err != nil {
			return nil, err
		}
	}

	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		mainDebugLogger = log.New(os.Stdout, "", log.LstdFlags)
	}

	env := config.Load(mainDebugLogger)
	applyOverrides(&env, params)

	if params.installFirst {
		fmt.Printf("Installing %s\n", env.Browser)
		if err := harness.InstallBrowsers(env.Browser); err != nil {
			return nil, err
		}
	}

	baseURL := env.BaseURL
	if baseURL == "" {
		demoSite, err := harness.StartDemoSite(mainDebugLogger)
		if err != nil {
			return nil, err
		}
		defer demoSite.Close()
		baseURL = demoSite.BaseURL()
		fmt.Printf("No site URL configured; using bundled demo site at %s\n", baseURL)
	}

	store, err := artifacts.NewStore(env.ArtifactDir, mainDebugLogger)
	if err != nil {
		return nil, err
	}
	if env.S3Bucket != "" {
		uploader, err := artifacts.NewS3Uploader(context.Background(), env.S3Bucket, env.S3Prefix)
		if err != nil {
			return nil, err
		}
		store.WithUploader(uploader)
	}

	options := []harness.BrowserHarnessOption{
		harness.OptionBrowserName(env.Browser),
		harness.OptionArtifacts(store),
	}
	if !env.Headless {
		options = append(options, harness.OptionHeaded())
	}
	if params.slowMo > 0 {
		options = append(options, harness.OptionSlowMo(params.slowMo))
	}
	if params.debugAll {
		options = append(options,
			harness.OptionSpanReporter(framework.LogSpanReporter{Logger: mainDebugLogger}))
	}

	browserHarness, err := harness.NewBrowserHarness(baseURL, mainDebugLogger, options...)
	if err != nil {
		return nil, err
	}
	defer browserHarness.Close()

	var testLogger btest.TestLogger
	consoleLogger := btest.ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}
	if params.jUnitFile == "" {
		testLogger = consoleLogger
	} else {
		testLogger = &btest.MultiTestLogger{Loggers: []btest.TestLogger{
			consoleLogger,
			btest.NewJUnitTestLogger(params.jUnitFile, env.Tag, params.filters),
		}}
	}

	results := webtests.RunBrowserTestSuite(browserHarness, env.Tag, params.filters, testLogger)

	fmt.Println()
	logErr := testLogger.EndLog(results)

	if err := store.Flush(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to upload some artifacts: %s\n", err)
	}

	if logErr != nil {
		return nil, fmt.Errorf("error writing log: %v", logErr)
	}

	if params.recordFailures != "" {
		f, err := os.Create(params.recordFailures)
		if err != nil {
			return nil, fmt.Errorf("cannot create suppression file: %v", err)
		}
		for _, test := range results.Failures {
			fmt.Fprintln(f, test.TestID)
		}
		_ = f.Close()
	}

	return &results, nil
}

// applyOverrides lets command-line flags win over environment settings.
func applyOverrides(env *config.Environment, params commandParams) {
	if params.baseURL != "" {
		env.BaseURL = params.baseURL
	}
	if params.environmentTag != "" {
		env.Tag = params.environmentTag
	}
	if params.browser != "" {
		env.Browser = params.browser
	}
	if params.headed {
		env.Headless = false
	}
	if params.artifactDir != "" {
		env.ArtifactDir = params.artifactDir
	}
	if params.s3Bucket != "" {
		env.S3Bucket = params.s3Bucket
	}
	if params.s3Prefix != "" {
		env.S3Prefix = params.s3Prefix
	}
}

func loadSuppressions(params *commandParams) error {
	file, err := os.Open(params.skipFile)
	if err != nil {
		return fmt.Errorf("cannot open provided suppression file: %v", err)
	}
	defer func() { _ = file.Close() }()
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		// Ignore blank lines
		if strings.TrimSpace(line) == "" {
			continue
		}
		escaped := regexp.QuoteMeta(line)
		if err := params.filters.MustNotMatch.Set(escaped); err != nil {
			return fmt.Errorf("cannot parse suppression: %v", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("while processing suppression file: %v", err)
	}
	return nil
}
